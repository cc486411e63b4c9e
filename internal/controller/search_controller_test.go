package controller_test

import (
	"net/http"
	"testing"

	"ai-workspace-be/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchData struct {
	Query   string `json:"query"`
	Type    string `json:"type"`
	Total   int    `json:"total"`
	Results struct {
		Notes     []noteData     `json:"notes"`
		Documents []documentData `json:"documents"`
		Members   []struct {
			Id   string `json:"id"`
			Name string `json:"name"`
		} `json:"members"`
		Workspaces []workspaceData `json:"workspaces"`
	} `json:"results"`
}

func TestSearchScopesResultsToCaller(t *testing.T) {
	env := testutil.NewEnv(t)
	ann := env.Signup(t, "Ann Planner")
	bob := env.Signup(t, "Bob Planner")
	eve := env.Signup(t, "Eve Planner")

	ws := env.CreateWorkspace(t, ann, "Planning team")
	env.AddMember(t, ann, ws, bob, "member")

	createNote(t, env, ann, map[string]interface{}{"title": "Planning notes"})
	createNote(t, env, bob, map[string]interface{}{"title": "Shared planning", "workspaceId": ws})
	createNote(t, env, eve, map[string]interface{}{"title": "Eve planning"})

	search := func(user testutil.User, query string) searchData {
		t.Helper()
		status, res := env.Do(t, http.MethodGet, "/api/search"+query, nil, user.Token)
		require.Equal(t, http.StatusOK, status, res.Error)
		var out searchData
		res.Decode(t, &out)
		return out
	}

	out := search(ann, "?q=plann")
	assert.Equal(t, "all", out.Type)
	assert.Len(t, out.Results.Notes, 2)
	for _, n := range out.Results.Notes {
		assert.NotEqual(t, "Eve planning", n.Title)
	}
	require.Len(t, out.Results.Workspaces, 1)
	assert.Equal(t, "Planning team", out.Results.Workspaces[0].Name)
	memberIds := []string{}
	for _, m := range out.Results.Members {
		memberIds = append(memberIds, m.Id)
	}
	assert.ElementsMatch(t, []string{ann.Id, bob.Id}, memberIds)
	assert.Equal(t, 5, out.Total)

	out = search(eve, "?q=planning&type=notes")
	require.Len(t, out.Results.Notes, 1)
	assert.Equal(t, "Eve planning", out.Results.Notes[0].Title)
	assert.Empty(t, out.Results.Workspaces)
	assert.Equal(t, 1, out.Total)

	out = search(ann, "?q=PLANNING&type=workspaces")
	assert.Empty(t, out.Results.Notes)
	assert.Len(t, out.Results.Workspaces, 1)
}

func TestSearchRejectsShortAndBadQueries(t *testing.T) {
	env := testutil.NewEnv(t)
	ann := env.Signup(t, "Ann")

	for _, query := range []string{"", "?q=a", "?q=%20%20b%20", "?q=ok&type=cards", "?q=ok&limit=100"} {
		status, _ := env.Do(t, http.MethodGet, "/api/search"+query, nil, ann.Token)
		assert.Equal(t, http.StatusBadRequest, status, query)
	}

	status, _ := env.Do(t, http.MethodGet, "/api/search?q=ok", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestSearchTreatsWildcardsLiterally(t *testing.T) {
	env := testutil.NewEnv(t)
	ann := env.Signup(t, "Ann")
	createNote(t, env, ann, map[string]interface{}{"title": "50% done"})
	createNote(t, env, ann, map[string]interface{}{"title": "500 done"})
	createNote(t, env, ann, map[string]interface{}{"title": "snake_case"})
	createNote(t, env, ann, map[string]interface{}{"title": "snakeXcase"})

	for query, want := range map[string]string{"0%25": "50% done", "e_c": "snake_case"} {
		status, res := env.Do(t, http.MethodGet, "/api/search?type=notes&q="+query, nil, ann.Token)
		require.Equal(t, http.StatusOK, status)
		var out searchData
		res.Decode(t, &out)
		require.Len(t, out.Results.Notes, 1, query)
		assert.Equal(t, want, out.Results.Notes[0].Title)
	}
}
