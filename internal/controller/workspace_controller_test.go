package controller_test

import (
	"net/http"
	"testing"
	"time"

	"ai-workspace-be/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workspaceData struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	MemberCount int64  `json:"memberCount"`
	Members     []struct {
		UserId string `json:"userId"`
		Role   string `json:"role"`
	} `json:"members"`
}

type pageData[T any] struct {
	Items      []T `json:"items"`
	Pagination struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int   `json:"totalPages"`
		HasNext    bool  `json:"hasNext"`
		HasPrev    bool  `json:"hasPrev"`
	} `json:"pagination"`
}

func TestWorkspaceLifecycle(t *testing.T) {
	env := testutil.NewEnv(t)
	owner := env.Signup(t, "Owner")

	wsId := env.CreateWorkspace(t, owner, "Research")

	status, res := env.Do(t, http.MethodGet, "/api/workspaces/"+wsId, nil, owner.Token)
	require.Equal(t, http.StatusOK, status)
	var ws workspaceData
	res.Decode(t, &ws)
	assert.Equal(t, "Research", ws.Name)
	assert.Equal(t, "owner", ws.Role)
	require.Len(t, ws.Members, 1)
	assert.Equal(t, owner.Id, ws.Members[0].UserId)
	assert.Equal(t, "owner", ws.Members[0].Role)

	status, res = env.Do(t, http.MethodPut, "/api/workspaces/"+wsId, map[string]string{"name": "Renamed"}, owner.Token)
	require.Equal(t, http.StatusOK, status)
	res.Decode(t, &ws)
	assert.Equal(t, "Renamed", ws.Name)

	status, res = env.Do(t, http.MethodGet, "/api/workspaces", nil, owner.Token)
	require.Equal(t, http.StatusOK, status)
	var list pageData[workspaceData]
	res.Decode(t, &list)
	require.Len(t, list.Items, 1)
	assert.Equal(t, int64(1), list.Items[0].MemberCount)
	assert.Equal(t, "owner", list.Items[0].Role)
}

func TestWorkspaceAccessRules(t *testing.T) {
	env := testutil.NewEnv(t)
	owner := env.Signup(t, "Owner")
	admin := env.Signup(t, "Admin")
	outsider := env.Signup(t, "Outsider")
	wsId := env.CreateWorkspace(t, owner, "Team")
	env.AddMember(t, owner, wsId, admin, "admin")

	t.Run("non member gets 403", func(t *testing.T) {
		status, res := env.Do(t, http.MethodGet, "/api/workspaces/"+wsId, nil, outsider.Token)
		assert.Equal(t, http.StatusForbidden, status)
		assert.False(t, res.Success)

		status, _ = env.Do(t, http.MethodGet, "/api/workspaces/"+wsId+"/activity", nil, outsider.Token)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("missing workspace gets 404", func(t *testing.T) {
		status, _ := env.Do(t, http.MethodGet, "/api/workspaces/"+uuid.NewString(), nil, owner.Token)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("malformed id gets 400", func(t *testing.T) {
		status, res := env.Do(t, http.MethodGet, "/api/workspaces/not-an-id", nil, owner.Token)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "INVALID_ID", res.Code)
	})

	t.Run("admin may update but not delete", func(t *testing.T) {
		status, _ := env.Do(t, http.MethodPut, "/api/workspaces/"+wsId, map[string]string{"description": "d"}, admin.Token)
		assert.Equal(t, http.StatusOK, status)

		status, _ = env.Do(t, http.MethodDelete, "/api/workspaces/"+wsId, nil, admin.Token)
		assert.Equal(t, http.StatusForbidden, status)
	})
}

func TestWorkspaceDeleteCascades(t *testing.T) {
	env := testutil.NewEnv(t)
	owner := env.Signup(t, "Owner")
	member := env.Signup(t, "Member")
	wsId := env.CreateWorkspace(t, owner, "Doomed")
	env.AddMember(t, owner, wsId, member, "member")

	status, _ := env.Do(t, http.MethodPost, "/api/notes", map[string]string{"title": "n", "workspaceId": wsId}, member.Token)
	require.Equal(t, http.StatusCreated, status)
	status, _ = env.Do(t, http.MethodPost, "/api/documents", map[string]string{"title": "d", "content": "body", "workspaceId": wsId}, owner.Token)
	require.Equal(t, http.StatusCreated, status)

	status, _ = env.Do(t, http.MethodDelete, "/api/workspaces/"+wsId, nil, owner.Token)
	require.Equal(t, http.StatusOK, status)

	assert.Zero(t, env.Count(t, "workspaces", "id = ?", wsId))
	assert.Zero(t, env.Count(t, "workspace_members", "workspace_id = ?", wsId))
	assert.Zero(t, env.Count(t, "notes", "workspace_id = ?", wsId))
	assert.Zero(t, env.Count(t, "documents", "workspace_id = ?", wsId))

	status, _ = env.Do(t, http.MethodGet, "/api/workspaces/"+wsId, nil, owner.Token)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestWorkspaceDeleteDetachesChatContexts(t *testing.T) {
	env := testutil.NewEnv(t)
	owner := env.Signup(t, "Owner")
	wsId := env.CreateWorkspace(t, owner, "Shortlived")

	note := createNote(t, env, owner, map[string]interface{}{"title": "Agenda", "workspaceId": wsId})
	status, res := env.Do(t, http.MethodPost, "/api/documents", map[string]string{"title": "Brief", "content": "body", "workspaceId": wsId}, owner.Token)
	require.Equal(t, http.StatusCreated, status, res.Error)
	var doc struct {
		Id string `json:"id"`
	}
	res.Decode(t, &doc)
	personal := createNote(t, env, owner, map[string]interface{}{"title": "Mine"})

	noteChat := createChat(t, env, owner, map[string]interface{}{"contextType": "note", "contextId": note.Id})
	docChat := createChat(t, env, owner, map[string]interface{}{"contextType": "document", "contextId": doc.Id})
	keptChat := createChat(t, env, owner, map[string]interface{}{"contextType": "note", "contextId": personal.Id})

	status, _ = env.Do(t, http.MethodDelete, "/api/workspaces/"+wsId, nil, owner.Token)
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, int64(1), env.Count(t, "chats", "id = ? AND context_id IS NULL", noteChat.Id))
	assert.Equal(t, int64(1), env.Count(t, "chats", "id = ? AND context_id IS NULL", docChat.Id))
	assert.Equal(t, int64(1), env.Count(t, "chats", "id = ? AND context_id = ?", keptChat.Id, personal.Id))

	status, _ = env.Do(t, http.MethodGet, "/api/chats/"+noteChat.Id, nil, owner.Token)
	assert.Equal(t, http.StatusOK, status)
}

func TestWorkspaceActivityFeed(t *testing.T) {
	env := testutil.NewEnv(t)
	owner := env.Signup(t, "Owner")
	member := env.Signup(t, "Member")
	wsId := env.CreateWorkspace(t, owner, "Feed")
	env.AddMember(t, owner, wsId, member, "member")

	status, _ := env.Do(t, http.MethodPost, "/api/notes", map[string]string{"title": "Plan", "workspaceId": wsId}, member.Token)
	require.Equal(t, http.StatusCreated, status)

	// Activity is written by the event consumer.
	require.Eventually(t, func() bool {
		return env.Count(t, "activities", "workspace_id = ?", wsId) >= 3
	}, 2*time.Second, 20*time.Millisecond)

	status, res := env.Do(t, http.MethodGet, "/api/workspaces/"+wsId+"/activity", nil, member.Token)
	require.Equal(t, http.StatusOK, status)

	var feed pageData[struct {
		Type      string `json:"type"`
		ActorName string `json:"actorName"`
		Subject   string `json:"subject"`
	}]
	res.Decode(t, &feed)
	require.GreaterOrEqual(t, len(feed.Items), 3)

	types := make([]string, 0, len(feed.Items))
	for _, item := range feed.Items {
		types = append(types, item.Type)
	}
	assert.Contains(t, types, "WORKSPACE_CREATED")
	assert.Contains(t, types, "MEMBER_ADDED")
	assert.Contains(t, types, "NOTE_CREATED")
}

func TestWorkspacePagination(t *testing.T) {
	env := testutil.NewEnv(t)
	owner := env.Signup(t, "Owner")
	for i := 0; i < 5; i++ {
		env.CreateWorkspace(t, owner, "W")
	}

	cases := []struct {
		query   string
		items   int
		hasNext bool
		hasPrev bool
		pages   int
	}{
		{"?page=1&limit=2", 2, true, false, 3},
		{"?page=2&limit=2", 2, true, true, 3},
		{"?page=3&limit=2", 1, false, true, 3},
		{"?page=4&limit=2", 0, false, true, 3},
		{"?limit=10", 5, false, false, 1},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			status, res := env.Do(t, http.MethodGet, "/api/workspaces"+tc.query, nil, owner.Token)
			require.Equal(t, http.StatusOK, status)

			var page pageData[workspaceData]
			res.Decode(t, &page)
			assert.Len(t, page.Items, tc.items)
			assert.Equal(t, int64(5), page.Pagination.Total)
			assert.Equal(t, tc.pages, page.Pagination.TotalPages)
			assert.Equal(t, tc.hasNext, page.Pagination.HasNext)
			assert.Equal(t, tc.hasPrev, page.Pagination.HasPrev)
		})
	}

	t.Run("limit above maximum is rejected", func(t *testing.T) {
		status, _ := env.Do(t, http.MethodGet, "/api/workspaces?limit=500", nil, owner.Token)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}
