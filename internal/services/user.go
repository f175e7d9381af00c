package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/yungbote/automate-backend/internal/data/repos"
	types "github.com/yungbote/automate-backend/internal/domain"
	"github.com/yungbote/automate-backend/internal/pkg/dbctx"
	domainErrs "github.com/yungbote/automate-backend/internal/pkg/errors"
	"github.com/yungbote/automate-backend/internal/platform/apierr"
	"github.com/yungbote/automate-backend/internal/platform/ctxutil"
	"github.com/yungbote/automate-backend/internal/platform/logger"
)

// Profile is the account view returned for both users and admins.
type Profile struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`
}

type ProfileInput struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email,max=255"`
	Phone string `json:"phone" validate:"required,max=32"`
}

type UserService interface {
	GetMe(ctx context.Context) (*Profile, error)
	UpdateProfile(ctx context.Context, in ProfileInput) (*Profile, error)
}

type userService struct {
	log       *logger.Logger
	userRepo  repos.UserRepo
	adminRepo repos.AdminRepo
}

func NewUserService(log *logger.Logger, userRepo repos.UserRepo, adminRepo repos.AdminRepo) UserService {
	return &userService{
		log:       log.With("service", "UserService"),
		userRepo:  userRepo,
		adminRepo: adminRepo,
	}
}

func (us *userService) GetMe(ctx context.Context) (*Profile, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.SubjectID == 0 {
		return nil, fmt.Errorf("request data not set in context: %w", domainErrs.ErrUnauthorized)
	}
	dbc := dbctx.Context{Ctx: ctx}
	if rd.IsAdmin() {
		found, err := us.adminRepo.GetByIDs(dbc, []uint{rd.SubjectID})
		if err != nil {
			return nil, fmt.Errorf("error fetching admin: %w", err)
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("admin %d: %w", rd.SubjectID, domainErrs.ErrNotFound)
		}
		a := found[0]
		return &Profile{ID: a.ID, Name: a.Name, Email: a.Email, Role: ctxutil.RoleAdmin}, nil
	}
	u, err := us.loadUser(dbc, rd.SubjectID)
	if err != nil {
		return nil, err
	}
	return userProfile(u), nil
}

func (us *userService) UpdateProfile(ctx context.Context, in ProfileInput) (*Profile, error) {
	rd := ctxutil.GetRequestData(ctx)
	if !rd.IsUser() {
		return nil, fmt.Errorf("only users have editable profiles: %w", domainErrs.ErrForbidden)
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	if err := us.userRepo.UpdateProfile(dbc, rd.SubjectID, in.Name, in.Email, in.Phone); err != nil {
		if errors.Is(err, domainErrs.ErrConflict) {
			return nil, apierr.New(http.StatusConflict, "email_taken", errors.New("email already registered"))
		}
		return nil, err
	}
	us.log.Info("Profile updated", "user_id", rd.SubjectID)
	u, err := us.loadUser(dbc, rd.SubjectID)
	if err != nil {
		return nil, err
	}
	return userProfile(u), nil
}

func (us *userService) loadUser(dbc dbctx.Context, id uint) (*types.User, error) {
	found, err := us.userRepo.GetByIDs(dbc, []uint{id})
	if err != nil {
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, fmt.Errorf("user %d: %w", id, domainErrs.ErrNotFound)
	}
	return found[0], nil
}

func userProfile(u *types.User) *Profile {
	return &Profile{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, Role: ctxutil.RoleUser}
}

// requireUser returns the caller's user id or an unauthorized error.
func requireUser(ctx context.Context) (uint, error) {
	rd := ctxutil.GetRequestData(ctx)
	if !rd.IsUser() {
		return 0, fmt.Errorf("user session required: %w", domainErrs.ErrUnauthorized)
	}
	return rd.SubjectID, nil
}

func requireAdmin(ctx context.Context) error {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return fmt.Errorf("admin session required: %w", domainErrs.ErrUnauthorized)
	}
	if !rd.IsAdmin() {
		return fmt.Errorf("admin role required: %w", domainErrs.ErrForbidden)
	}
	return nil
}
