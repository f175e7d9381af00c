package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	domainErrs "github.com/yungbote/automate-backend/internal/pkg/errors"
	"github.com/yungbote/automate-backend/internal/platform/apierr"
	"github.com/yungbote/automate-backend/internal/platform/ctxutil"
)

func statusOf(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	return apierr.From(err, "internal").Status
}

func TestRegisterLoginAndResolveToken(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	id := e.register(t, "Dana@Example.com ")

	pair, err := e.auth.Login(ctx, LoginInput{Email: "dana@example.com", Password: "hunter22"})
	require.NoError(t, err)
	require.Equal(t, ctxutil.RoleUser, pair.Role)
	require.NotEmpty(t, pair.RefreshToken)
	require.EqualValues(t, 15*60, pair.ExpiresIn)

	authed, err := e.auth.SetContextFromToken(ctx, pair.AccessToken)
	require.NoError(t, err)
	rd := ctxutil.GetRequestData(authed)
	require.True(t, rd.IsUser())
	require.Equal(t, id, rd.SubjectID)

	me, err := e.users.GetMe(authed)
	require.NoError(t, err)
	require.Equal(t, "dana@example.com", me.Email)
	require.Equal(t, "Dana Driver", me.Name)
}

func TestRegisterRejectsDuplicatesAndBadInput(t *testing.T) {
	e := newEnv(t)
	e.register(t, "dup@example.com")

	_, err := e.auth.RegisterUser(context.Background(), RegisterInput{Name: "X", Email: "DUP@example.com", Phone: "1", Password: "secret1"})
	require.Equal(t, http.StatusConflict, statusOf(t, err))

	_, err = e.auth.RegisterUser(context.Background(), RegisterInput{Name: "X", Email: "not-an-email", Phone: "1", Password: "secret1"})
	require.Equal(t, http.StatusBadRequest, statusOf(t, err))
	require.Contains(t, err.Error(), "email")

	_, err = e.auth.RegisterUser(context.Background(), RegisterInput{Name: "X", Email: "x@example.com", Phone: "1", Password: "abc"})
	require.Equal(t, http.StatusBadRequest, statusOf(t, err))
	require.Contains(t, err.Error(), "password must be at least 6 characters")
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	e := newEnv(t)
	e.register(t, "dana@example.com")

	_, err := e.auth.Login(context.Background(), LoginInput{Email: "dana@example.com", Password: "nope"})
	require.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	_, err = e.auth.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "hunter22"})
	require.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}

func TestAdminLoginRequiresKey(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	seed := AdminSeed{Name: "Admin", Email: "admin@example.com", Password: "admin123", AdminKey: "supersecretkey"}
	require.NoError(t, e.auth.EnsureDefaultAdmin(ctx, seed))
	require.NoError(t, e.auth.EnsureDefaultAdmin(ctx, seed))

	_, err := e.auth.Login(ctx, LoginInput{Email: "admin@example.com", Password: "admin123"})
	require.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	_, err = e.auth.Login(ctx, LoginInput{Email: "admin@example.com", Password: "admin123", AdminKey: "wrong"})
	require.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	pair, err := e.auth.Login(ctx, LoginInput{Email: "admin@example.com", Password: "admin123", AdminKey: "supersecretkey"})
	require.NoError(t, err)
	require.Equal(t, ctxutil.RoleAdmin, pair.Role)

	authed, err := e.auth.SetContextFromToken(ctx, pair.AccessToken)
	require.NoError(t, err)
	require.True(t, ctxutil.GetRequestData(authed).IsAdmin())

	me, err := e.users.GetMe(authed)
	require.NoError(t, err)
	require.Equal(t, ctxutil.RoleAdmin, me.Role)
}

func TestRefreshRotatesAndLogoutRevokes(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.register(t, "dana@example.com")

	first, err := e.auth.Login(ctx, LoginInput{Email: "dana@example.com", Password: "hunter22"})
	require.NoError(t, err)

	second, err := e.auth.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = e.auth.SetContextFromToken(ctx, first.AccessToken)
	require.True(t, errors.Is(err, domainErrs.ErrUnauthorized))

	_, err = e.auth.Refresh(ctx, first.RefreshToken)
	require.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	authed, err := e.auth.SetContextFromToken(ctx, second.AccessToken)
	require.NoError(t, err)
	require.NoError(t, e.auth.Logout(authed))

	_, err = e.auth.SetContextFromToken(ctx, second.AccessToken)
	require.True(t, errors.Is(err, domainErrs.ErrUnauthorized))
}

func TestSetContextFromTokenRejectsGarbage(t *testing.T) {
	e := newEnv(t)
	_, err := e.auth.SetContextFromToken(context.Background(), "not.a.jwt")
	require.True(t, errors.Is(err, domainErrs.ErrUnauthorized))
	_, err = e.auth.SetContextFromToken(context.Background(), "")
	require.True(t, errors.Is(err, domainErrs.ErrUnauthorized))
}

func TestUpdateProfile(t *testing.T) {
	e := newEnv(t)
	id := e.register(t, "dana@example.com")
	e.register(t, "taken@example.com")

	p, err := e.users.UpdateProfile(userCtx(id), ProfileInput{Name: "Dana R", Email: "dana.r@example.com", Phone: "555-0199"})
	require.NoError(t, err)
	require.Equal(t, "dana.r@example.com", p.Email)
	require.Equal(t, "555-0199", p.Phone)

	_, err = e.users.UpdateProfile(userCtx(id), ProfileInput{Name: "Dana R", Email: "taken@example.com", Phone: "1"})
	require.Equal(t, http.StatusConflict, statusOf(t, err))

	_, err = e.users.UpdateProfile(userCtx(id), ProfileInput{Name: "", Email: "dana.r@example.com", Phone: "1"})
	require.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = e.users.UpdateProfile(adminCtx(1), ProfileInput{Name: "A", Email: "a@example.com", Phone: "1"})
	require.Equal(t, http.StatusForbidden, statusOf(t, err))
}
