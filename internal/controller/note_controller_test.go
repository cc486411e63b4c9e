package controller_test

import (
	"net/http"
	"testing"

	"ai-workspace-be/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteData struct {
	Id          string   `json:"id"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags"`
	WorkspaceId *string  `json:"workspaceId"`
	IsPinned    bool     `json:"isPinned"`
	IsArchived  bool     `json:"isArchived"`
}

func createNote(t *testing.T, env *testutil.Env, user testutil.User, body map[string]interface{}) noteData {
	t.Helper()
	status, res := env.Do(t, http.MethodPost, "/api/notes", body, user.Token)
	require.Equal(t, http.StatusCreated, status, res.Error)
	var n noteData
	res.Decode(t, &n)
	return n
}

func TestNoteCRUD(t *testing.T) {
	env := testutil.NewEnv(t)
	user := env.Signup(t, "Ann")

	note := createNote(t, env, user, map[string]interface{}{
		"title":   "  Groceries ",
		"content": "milk",
		"tags":    []string{"home", " home ", "errands"},
	})
	assert.Equal(t, "Groceries", note.Title)
	assert.ElementsMatch(t, []string{"home", "errands"}, note.Tags)
	assert.Nil(t, note.WorkspaceId)

	status, res := env.Do(t, http.MethodPut, "/api/notes/"+note.Id, map[string]interface{}{
		"title": "Groceries", "content": "milk, eggs", "tags": []string{"home"},
	}, user.Token)
	require.Equal(t, http.StatusOK, status)
	res.Decode(t, &note)
	assert.Equal(t, "milk, eggs", note.Content)

	status, res = env.Do(t, http.MethodPatch, "/api/notes/"+note.Id, map[string]interface{}{"isPinned": true}, user.Token)
	require.Equal(t, http.StatusOK, status)
	res.Decode(t, &note)
	assert.True(t, note.IsPinned)
	assert.Equal(t, "milk, eggs", note.Content)

	status, res = env.Do(t, http.MethodGet, "/api/notes/"+note.Id, nil, user.Token)
	require.Equal(t, http.StatusOK, status)
	res.Decode(t, &note)
	assert.Equal(t, []string{"home"}, note.Tags)

	status, _ = env.Do(t, http.MethodDelete, "/api/notes/"+note.Id, nil, user.Token)
	require.Equal(t, http.StatusOK, status)

	status, _ = env.Do(t, http.MethodGet, "/api/notes/"+note.Id, nil, user.Token)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestNoteListFiltersAndOrder(t *testing.T) {
	env := testutil.NewEnv(t)
	user := env.Signup(t, "Ann")

	first := createNote(t, env, user, map[string]interface{}{"title": "Alpha", "tags": []string{"work"}})
	createNote(t, env, user, map[string]interface{}{"title": "Beta", "content": "100% sure"})
	archived := createNote(t, env, user, map[string]interface{}{"title": "Old"})

	status, _ := env.Do(t, http.MethodPatch, "/api/notes/"+first.Id, map[string]interface{}{"isPinned": true}, user.Token)
	require.Equal(t, http.StatusOK, status)
	status, _ = env.Do(t, http.MethodPatch, "/api/notes/"+archived.Id, map[string]interface{}{"isArchived": true}, user.Token)
	require.Equal(t, http.StatusOK, status)

	list := func(query string) []noteData {
		status, res := env.Do(t, http.MethodGet, "/api/notes"+query, nil, user.Token)
		require.Equal(t, http.StatusOK, status)
		var page pageData[noteData]
		res.Decode(t, &page)
		return page.Items
	}

	items := list("")
	require.Len(t, items, 2)
	assert.Equal(t, "Alpha", items[0].Title, "pinned notes come first")

	items = list("?archived=true")
	require.Len(t, items, 1)
	assert.Equal(t, "Old", items[0].Title)

	items = list("?tag=work")
	require.Len(t, items, 1)
	assert.Equal(t, "Alpha", items[0].Title)

	items = list("?q=BETA")
	require.Len(t, items, 1)

	// LIKE wildcards in q match literally.
	items = list("?q=100%25")
	require.Len(t, items, 1)
	assert.Equal(t, "Beta", items[0].Title)
	assert.Empty(t, list("?q=%25%25%25zz"))
}

func TestNoteWorkspaceRoles(t *testing.T) {
	env := testutil.NewEnv(t)
	owner := env.Signup(t, "Owner")
	member := env.Signup(t, "Member")
	viewer := env.Signup(t, "Viewer")
	outsider := env.Signup(t, "Outsider")
	wsId := env.CreateWorkspace(t, owner, "Team")
	env.AddMember(t, owner, wsId, member, "member")
	env.AddMember(t, owner, wsId, viewer, "viewer")

	t.Run("viewer cannot create", func(t *testing.T) {
		status, _ := env.Do(t, http.MethodPost, "/api/notes", map[string]interface{}{"title": "x", "workspaceId": wsId}, viewer.Token)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("outsider cannot create", func(t *testing.T) {
		status, _ := env.Do(t, http.MethodPost, "/api/notes", map[string]interface{}{"title": "x", "workspaceId": wsId}, outsider.Token)
		assert.Equal(t, http.StatusForbidden, status)
	})

	note := createNote(t, env, member, map[string]interface{}{"title": "Shared", "workspaceId": wsId})

	t.Run("viewer can read", func(t *testing.T) {
		status, _ := env.Do(t, http.MethodGet, "/api/notes/"+note.Id, nil, viewer.Token)
		assert.Equal(t, http.StatusOK, status)

		status, res := env.Do(t, http.MethodGet, "/api/notes?workspaceId="+wsId, nil, viewer.Token)
		require.Equal(t, http.StatusOK, status)
		var page pageData[noteData]
		res.Decode(t, &page)
		assert.Len(t, page.Items, 1)
	})

	t.Run("viewer cannot modify", func(t *testing.T) {
		status, _ := env.Do(t, http.MethodPatch, "/api/notes/"+note.Id, map[string]interface{}{"title": "mine"}, viewer.Token)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("outsider cannot read", func(t *testing.T) {
		status, _ := env.Do(t, http.MethodGet, "/api/notes/"+note.Id, nil, outsider.Token)
		assert.Equal(t, http.StatusForbidden, status)

		status, _ = env.Do(t, http.MethodGet, "/api/notes?workspaceId="+wsId, nil, outsider.Token)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("owner can delete a member's note", func(t *testing.T) {
		status, _ := env.Do(t, http.MethodDelete, "/api/notes/"+note.Id, nil, owner.Token)
		assert.Equal(t, http.StatusOK, status)
	})
}

func TestNoteDeleteKeepsChats(t *testing.T) {
	env := testutil.NewEnv(t)
	user := env.Signup(t, "Ann")
	note := createNote(t, env, user, map[string]interface{}{"title": "Context"})

	status, res := env.Do(t, http.MethodPost, "/api/chats", map[string]interface{}{
		"contextType": "note", "contextId": note.Id,
	}, user.Token)
	require.Equal(t, http.StatusCreated, status, res.Error)
	var chat struct {
		Id    string `json:"id"`
		Title string `json:"title"`
	}
	res.Decode(t, &chat)
	assert.Equal(t, "Context", chat.Title)

	status, _ = env.Do(t, http.MethodDelete, "/api/notes/"+note.Id, nil, user.Token)
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, int64(1), env.Count(t, "chats", "id = ?", chat.Id))
	assert.Zero(t, env.Count(t, "chats", "context_id = ?", note.Id))
}
