package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "wireshell/internal/domain/models/content"
)

func TestUserService_ListUsers(t *testing.T) {
	repo := &fakeUserRepo{users: []models.User{
		{Name: "admin", Roles: []string{"guest", "superuser"}},
		{Name: "editor", Roles: []string{"editor", "guest"}},
	}}
	svc := NewUserService(repo, testLogger())

	users, err := svc.ListUsers(context.Background(), " editor ")
	require.NoError(t, err)

	assert.Equal(t, "editor", repo.gotRole)
	assert.Len(t, users, 2)
	assert.True(t, users[0].IsSuperuser())
	assert.False(t, users[1].IsSuperuser())
}
