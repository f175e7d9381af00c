package notification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/automate-backend/internal/data/repos/testutil"
	types "github.com/yungbote/automate-backend/internal/domain"
	"github.com/yungbote/automate-backend/internal/pkg/dbctx"
)

func TestNotificationRepoNewestFirst(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewNotificationRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx}

	u := testutil.SeedUser(t, ctx, db, "notify@example.com")
	for _, msg := range []string{"first", "second", "third"} {
		_, err := repo.Create(dbc, []*types.Notification{{UserID: u.ID, Message: msg}})
		require.NoError(t, err)
	}

	got, err := repo.GetByUserID(dbc, u.ID, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "third", got[0].Message)
	assert.Equal(t, "second", got[1].Message)
}
