package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fathima-sithara/socialnet/internal/models"
	"github.com/fathima-sithara/socialnet/internal/repository"
)

func newGroupFixture(groups ...*models.Group) (*GroupService, *fakeGroupRepo) {
	repo := newFakeGroupRepo(groups...)
	return NewGroupService(repo, zap.NewNop()), repo
}

func TestCreateGroup(t *testing.T) {
	svc, _ := newGroupFixture()

	g, err := svc.Create(context.Background(), "alice", "Weekend Crew", "plans", "",
		[]string{"bob", "alice", "carol"})
	require.NoError(t, err)
	assert.Equal(t, "alice", g.CreatedBy)
	require.Len(t, g.Members, 3)
	assert.Equal(t, models.GroupMember{UserID: "alice", Role: models.RoleAdmin}, g.Members[0])
	assert.Equal(t, models.RoleMember, g.Members[1].Role)

	_, err = svc.Create(context.Background(), "alice", "", "", "", nil)
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestAddMemberRequiresAdmin(t *testing.T) {
	svc, repo := newGroupFixture(&models.Group{
		ID: "g1", Name: "Crew", CreatedBy: "alice",
		Members: []models.GroupMember{
			{UserID: "alice", Role: models.RoleAdmin},
			{UserID: "bob", Role: models.RoleMember},
		},
	})

	assert.ErrorIs(t, svc.AddMember(context.Background(), "bob", "g1", "carol"), ErrNotGroupAdmin)

	require.NoError(t, svc.AddMember(context.Background(), "alice", "g1", "carol"))
	assert.True(t, repo.groups["g1"].HasMember("carol"))

	assert.ErrorIs(t, svc.AddMember(context.Background(), "alice", "missing", "carol"), repository.ErrGroupNotFound)
}

func TestRemoveMember(t *testing.T) {
	svc, repo := newGroupFixture(&models.Group{
		ID: "g1", Name: "Crew", CreatedBy: "alice",
		Members: []models.GroupMember{
			{UserID: "alice", Role: models.RoleAdmin},
			{UserID: "bob", Role: models.RoleMember},
			{UserID: "carol", Role: models.RoleMember},
		},
	})

	// a member cannot remove someone else
	assert.ErrorIs(t, svc.RemoveMember(context.Background(), "bob", "g1", "carol"), ErrNotGroupAdmin)

	// but can leave on their own
	require.NoError(t, svc.RemoveMember(context.Background(), "bob", "g1", "bob"))
	assert.False(t, repo.groups["g1"].HasMember("bob"))

	// and an admin can remove anyone
	require.NoError(t, svc.RemoveMember(context.Background(), "alice", "g1", "carol"))
	assert.False(t, repo.groups["g1"].HasMember("carol"))
}

func TestListGroupsForUser(t *testing.T) {
	svc, _ := newGroupFixture(
		&models.Group{ID: "g1", Name: "Crew", Members: []models.GroupMember{{UserID: "alice", Role: models.RoleAdmin}}},
		&models.Group{ID: "g2", Name: "Other", Members: []models.GroupMember{{UserID: "bob", Role: models.RoleAdmin}}},
	)

	groups, err := svc.ListForUser(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Crew", groups[0].Name)
}
