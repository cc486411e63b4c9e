package controller_test

import (
	"net/http"
	"testing"

	"ai-workspace-be/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberAdd(t *testing.T) {
	env := testutil.NewEnv(t)
	owner := env.Signup(t, "Owner")
	member := env.Signup(t, "Member")
	wsId := env.CreateWorkspace(t, owner, "Team")

	env.AddMember(t, owner, wsId, member, "member")

	t.Run("already a member", func(t *testing.T) {
		status, res := env.Do(t, http.MethodPost, "/api/members", map[string]string{
			"workspaceId": wsId, "email": member.Email, "role": "viewer",
		}, owner.Token)
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "MEMBER_EXISTS", res.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		status, res := env.Do(t, http.MethodPost, "/api/members", map[string]string{
			"workspaceId": wsId, "email": "ghost@example.com", "role": "member",
		}, owner.Token)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "USER_NOT_FOUND", res.Code)
	})

	t.Run("invalid role", func(t *testing.T) {
		status, _ := env.Do(t, http.MethodPost, "/api/members", map[string]string{
			"workspaceId": wsId, "email": member.Email, "role": "owner",
		}, owner.Token)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("plain member cannot invite", func(t *testing.T) {
		other := env.Signup(t, "Other")
		status, _ := env.Do(t, http.MethodPost, "/api/members", map[string]string{
			"workspaceId": wsId, "email": other.Email, "role": "member",
		}, member.Token)
		assert.Equal(t, http.StatusForbidden, status)
	})

	status, res := env.Do(t, http.MethodGet, "/api/members?workspaceId="+wsId, nil, member.Token)
	require.Equal(t, http.StatusOK, status)
	var members []struct {
		UserId string `json:"userId"`
		Role   string `json:"role"`
	}
	res.Decode(t, &members)
	require.Len(t, members, 2)
	assert.Equal(t, owner.Id, members[0].UserId)
	assert.Equal(t, member.Id, members[1].UserId)
}

func TestMemberRoles(t *testing.T) {
	env := testutil.NewEnv(t)
	owner := env.Signup(t, "Owner")
	admin := env.Signup(t, "Admin")
	member := env.Signup(t, "Member")
	wsId := env.CreateWorkspace(t, owner, "Team")
	env.AddMember(t, owner, wsId, admin, "admin")
	env.AddMember(t, owner, wsId, member, "member")

	path := func(u testutil.User) string { return "/api/members/" + wsId + "/" + u.Id }

	t.Run("owner role is fixed", func(t *testing.T) {
		status, _ := env.Do(t, http.MethodPut, path(owner), map[string]string{"role": "member"}, admin.Token)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("admin cannot grant admin", func(t *testing.T) {
		status, _ := env.Do(t, http.MethodPut, path(member), map[string]string{"role": "admin"}, admin.Token)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("admin can demote a member to viewer", func(t *testing.T) {
		status, res := env.Do(t, http.MethodPut, path(member), map[string]string{"role": "viewer"}, admin.Token)
		require.Equal(t, http.StatusOK, status)
		var m struct {
			Role string `json:"role"`
		}
		res.Decode(t, &m)
		assert.Equal(t, "viewer", m.Role)
	})

	t.Run("owner can grant admin", func(t *testing.T) {
		status, _ := env.Do(t, http.MethodPut, path(member), map[string]string{"role": "admin"}, owner.Token)
		assert.Equal(t, http.StatusOK, status)
	})
}

func TestMemberRemove(t *testing.T) {
	env := testutil.NewEnv(t)
	owner := env.Signup(t, "Owner")
	admin := env.Signup(t, "Admin")
	member := env.Signup(t, "Member")
	leaver := env.Signup(t, "Leaver")
	wsId := env.CreateWorkspace(t, owner, "Team")
	env.AddMember(t, owner, wsId, admin, "admin")
	env.AddMember(t, owner, wsId, member, "member")
	env.AddMember(t, owner, wsId, leaver, "viewer")

	path := func(u testutil.User) string { return "/api/members/" + wsId + "/" + u.Id }

	status, _ := env.Do(t, http.MethodDelete, path(owner), nil, admin.Token)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = env.Do(t, http.MethodDelete, path(admin), nil, member.Token)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = env.Do(t, http.MethodDelete, path(leaver), nil, leaver.Token)
	assert.Equal(t, http.StatusOK, status)

	status, _ = env.Do(t, http.MethodDelete, path(member), nil, admin.Token)
	assert.Equal(t, http.StatusOK, status)

	assert.Equal(t, int64(2), env.Count(t, "workspace_members", "workspace_id = ?", wsId))

	status, _ = env.Do(t, http.MethodGet, "/api/workspaces/"+wsId, nil, member.Token)
	assert.Equal(t, http.StatusForbidden, status)
}
