package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/automate-backend/internal/data/repos"
	types "github.com/yungbote/automate-backend/internal/domain"
	"github.com/yungbote/automate-backend/internal/pkg/dbctx"
	domainErrs "github.com/yungbote/automate-backend/internal/pkg/errors"
	"github.com/yungbote/automate-backend/internal/platform/apierr"
	"github.com/yungbote/automate-backend/internal/platform/ctxutil"
	"github.com/yungbote/automate-backend/internal/platform/logger"
)

type JWTClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Phone    string `json:"phone" validate:"required,max=32"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	AdminKey string `json:"admin_key"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	Role         string `json:"role"`
}

type AdminSeed struct {
	Name     string
	Email    string
	Password string
	AdminKey string
}

type AuthService interface {
	RegisterUser(ctx context.Context, in RegisterInput) (*types.User, error)
	Login(ctx context.Context, in LoginInput) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	EnsureDefaultAdmin(ctx context.Context, seed AdminSeed) error
	GetAccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	adminRepo     repos.AdminRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

var errInvalidCredentials = apierr.New(http.StatusUnauthorized, "invalid_credentials", errors.New("invalid email or password"))

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	adminRepo repos.AdminRepo,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:            db,
		log:           log.With("service", "AuthService"),
		userRepo:      userRepo,
		adminRepo:     adminRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) RegisterUser(ctx context.Context, in RegisterInput) (*types.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &types.User{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Password: string(hash),
	}
	if _, err := as.userRepo.Create(dbctx.Context{Ctx: ctx}, []*types.User{user}); err != nil {
		if errors.Is(err, domainErrs.ErrConflict) {
			return nil, apierr.New(http.StatusConflict, "email_taken", errors.New("email already registered"))
		}
		return nil, err
	}
	as.log.Info("User registered", "user_id", user.ID)
	return user, nil
}

// Login authenticates a user first. When no user matches, the credentials
// plus admin key are checked against the admins table.
func (as *authService) Login(ctx context.Context, in LoginInput) (*TokenPair, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	dbc := dbctx.Context{Ctx: ctx}

	users, err := as.userRepo.GetByEmails(dbc, []string{in.Email})
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if len(users) > 0 && bcrypt.CompareHashAndPassword([]byte(users[0].Password), []byte(in.Password)) == nil {
		return as.issueTokens(ctx, types.SubjectUser, users[0].ID)
	}

	if strings.TrimSpace(in.AdminKey) == "" {
		return nil, errInvalidCredentials
	}
	admins, err := as.adminRepo.GetByEmails(dbc, []string{in.Email})
	if err != nil {
		return nil, fmt.Errorf("lookup admin: %w", err)
	}
	if len(admins) == 0 {
		return nil, errInvalidCredentials
	}
	admin := admins[0]
	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(in.Password)) != nil ||
		bcrypt.CompareHashAndPassword([]byte(admin.AdminKey), []byte(in.AdminKey)) != nil {
		return nil, errInvalidCredentials
	}
	return as.issueTokens(ctx, types.SubjectAdmin, admin.ID)
}

func (as *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil, badRequest("invalid_request", "refresh_token is required")
	}

	var pair *TokenPair
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		found, err := as.userTokenRepo.GetByRefreshTokens(dbc, []string{refreshToken})
		if err != nil {
			return fmt.Errorf("lookup refresh token: %w", err)
		}
		if len(found) == 0 {
			return apierr.New(http.StatusUnauthorized, "invalid_refresh_token", errors.New("refresh token not recognised"))
		}
		existing := found[0]
		if existing.ExpiresAt.Before(time.Now()) {
			if err := as.userTokenRepo.DeleteByIDs(dbc, []uint{existing.ID}); err != nil {
				return err
			}
			return apierr.New(http.StatusUnauthorized, "refresh_token_expired", errors.New("refresh token expired"))
		}
		p, tok, err := as.newTokens(existing.SubjectType, existing.SubjectID)
		if err != nil {
			return err
		}
		if _, err := as.userTokenRepo.Create(dbc, []*types.UserToken{tok}); err != nil {
			return fmt.Errorf("create user token: %w", err)
		}
		if err := as.userTokenRepo.DeleteByIDs(dbc, []uint{existing.ID}); err != nil {
			return fmt.Errorf("remove old refresh token: %w", err)
		}
		pair = p
		return nil
	})
	if err != nil {
		as.log.Warn("Token refresh failed", "error", err)
		return nil, err
	}
	return pair, nil
}

func (as *authService) Logout(ctx context.Context) error {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		return fmt.Errorf("logout: %w", domainErrs.ErrUnauthorized)
	}
	found, err := as.userTokenRepo.GetByAccessTokens(dbctx.Context{Ctx: ctx}, []string{rd.TokenString})
	if err != nil {
		return fmt.Errorf("lookup access token: %w", err)
	}
	if len(found) == 0 {
		return nil
	}
	return as.userTokenRepo.DeleteByIDs(dbctx.Context{Ctx: ctx}, []uint{found[0].ID})
}

// SetContextFromToken verifies a bearer token and attaches the principal to
// ctx. Tokens whose session row was deleted (logout, rotation) are rejected.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, fmt.Errorf("missing token: %w", domainErrs.ErrUnauthorized)
	}
	claims := &JWTClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return ctx, fmt.Errorf("invalid or expired token: %w", domainErrs.ErrUnauthorized)
	}
	subjectID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || subjectID == 0 {
		return ctx, fmt.Errorf("invalid subject in token: %w", domainErrs.ErrUnauthorized)
	}
	if claims.Role != ctxutil.RoleUser && claims.Role != ctxutil.RoleAdmin {
		return ctx, fmt.Errorf("invalid role in token: %w", domainErrs.ErrUnauthorized)
	}
	found, err := as.userTokenRepo.GetByAccessTokens(dbctx.Context{Ctx: ctx}, []string{tokenString})
	if err != nil {
		return ctx, fmt.Errorf("lookup access token: %w", err)
	}
	if len(found) == 0 {
		return ctx, fmt.Errorf("session revoked: %w", domainErrs.ErrUnauthorized)
	}
	rd := &ctxutil.RequestData{
		TokenString: tokenString,
		SubjectID:   uint(subjectID),
		Role:        claims.Role,
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

// EnsureDefaultAdmin creates the seed admin when no admin with that email
// exists yet.
func (as *authService) EnsureDefaultAdmin(ctx context.Context, seed AdminSeed) error {
	email := normalizeEmail(seed.Email)
	if email == "" || seed.Password == "" || seed.AdminKey == "" {
		as.log.Warn("Admin seed incomplete; skipping")
		return nil
	}
	dbc := dbctx.Context{Ctx: ctx}
	existing, err := as.adminRepo.GetByEmails(dbc, []string{email})
	if err != nil {
		return fmt.Errorf("lookup admin: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	pw, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	key, err := bcrypt.GenerateFromPassword([]byte(seed.AdminKey), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin key: %w", err)
	}
	name := strings.TrimSpace(seed.Name)
	if name == "" {
		name = "Admin"
	}
	admin := &types.Admin{Name: name, Email: email, Password: string(pw), AdminKey: string(key)}
	if _, err := as.adminRepo.Create(dbc, []*types.Admin{admin}); err != nil {
		if errors.Is(err, domainErrs.ErrConflict) {
			return nil
		}
		return fmt.Errorf("create admin: %w", err)
	}
	as.log.Info("Seeded default admin", "admin_id", admin.ID)
	return nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}

func (as *authService) issueTokens(ctx context.Context, subjectType string, subjectID uint) (*TokenPair, error) {
	pair, tok, err := as.newTokens(subjectType, subjectID)
	if err != nil {
		return nil, err
	}
	if _, err := as.userTokenRepo.Create(dbctx.Context{Ctx: ctx}, []*types.UserToken{tok}); err != nil {
		as.log.Warn("Create User Token Error", "error", err)
		return nil, fmt.Errorf("create user token: %w", err)
	}
	return pair, nil
}

func (as *authService) newTokens(subjectType string, subjectID uint) (*TokenPair, *types.UserToken, error) {
	role := ctxutil.RoleUser
	if subjectType == types.SubjectAdmin {
		role = ctxutil.RoleAdmin
	}
	now := time.Now()
	claims := JWTClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(subjectID), 10),
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return nil, nil, fmt.Errorf("sign access token: %w", err)
	}
	tok := &types.UserToken{
		SubjectID:    subjectID,
		SubjectType:  subjectType,
		AccessToken:  access,
		RefreshToken: uuid.NewString(),
		ExpiresAt:    now.Add(as.refreshTTL),
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: tok.RefreshToken,
		ExpiresIn:    int64(as.accessTTL / time.Second),
		Role:         role,
	}, tok, nil
}
