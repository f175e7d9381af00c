package auth

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/automate-backend/internal/data/repos/testutil"
	types "github.com/yungbote/automate-backend/internal/domain"
	"github.com/yungbote/automate-backend/internal/pkg/dbctx"
)

func TestUserTokenRepo(t *testing.T) {
	db := testutil.DB(t)
	repo := NewUserTokenRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}

	created, err := repo.Create(dbc, []*types.UserToken{
		{SubjectID: 1, SubjectType: types.SubjectUser, AccessToken: "a1", RefreshToken: "r1", ExpiresAt: time.Now().Add(time.Hour)},
		{SubjectID: 1, SubjectType: types.SubjectUser, AccessToken: "a2", RefreshToken: "r2", ExpiresAt: time.Now().Add(time.Hour)},
		{SubjectID: 1, SubjectType: types.SubjectAdmin, AccessToken: "a3", RefreshToken: "r3", ExpiresAt: time.Now().Add(time.Hour)},
	})
	if err != nil || len(created) != 3 {
		t.Fatalf("Create: %v (%d)", err, len(created))
	}

	byAccess, err := repo.GetByAccessTokens(dbc, []string{"a1"})
	if err != nil || len(byAccess) != 1 || byAccess[0].RefreshToken != "r1" {
		t.Fatalf("GetByAccessTokens: %v %+v", err, byAccess)
	}
	byRefresh, err := repo.GetByRefreshTokens(dbc, []string{"r2"})
	if err != nil || len(byRefresh) != 1 || byRefresh[0].AccessToken != "a2" {
		t.Fatalf("GetByRefreshTokens: %v %+v", err, byRefresh)
	}

	if err := repo.DeleteByIDs(dbc, []uint{byAccess[0].ID}); err != nil {
		t.Fatalf("DeleteByIDs: %v", err)
	}
	if got, _ := repo.GetByAccessTokens(dbc, []string{"a1"}); len(got) != 0 {
		t.Fatalf("DeleteByIDs: token still present")
	}

	if err := repo.DeleteBySubject(dbc, types.SubjectUser, 1); err != nil {
		t.Fatalf("DeleteBySubject: %v", err)
	}
	if got, _ := repo.GetByAccessTokens(dbc, []string{"a2", "a3"}); len(got) != 1 || got[0].SubjectType != types.SubjectAdmin {
		t.Fatalf("DeleteBySubject: expected only the admin token to remain, got %+v", got)
	}
}
