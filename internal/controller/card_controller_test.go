package controller_test

import (
	"net/http"
	"testing"

	"ai-workspace-be/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cardData struct {
	Id            string   `json:"id"`
	Title         string   `json:"title"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	LikeCount     int      `json:"likeCount"`
	BookmarkCount int      `json:"bookmarkCount"`
	Liked         bool     `json:"liked"`
	Bookmarked    bool     `json:"bookmarked"`
}

func createCard(t *testing.T, env *testutil.Env, user testutil.User, body map[string]interface{}) cardData {
	t.Helper()
	status, res := env.Do(t, http.MethodPost, "/api/cards", body, user.Token)
	require.Equal(t, http.StatusCreated, status, res.Error)
	var c cardData
	res.Decode(t, &c)
	return c
}

func TestCardToggleKeepsCountersInSync(t *testing.T) {
	env := testutil.NewEnv(t)
	author := env.Signup(t, "Author")
	fan := env.Signup(t, "Fan")
	card := createCard(t, env, author, map[string]interface{}{"title": "Tip"})

	toggle := func(user testutil.User, kind string) cardData {
		status, res := env.Do(t, http.MethodPost, "/api/cards/"+card.Id+"/"+kind, nil, user.Token)
		require.Equal(t, http.StatusOK, status, res.Error)
		var c cardData
		res.Decode(t, &c)
		return c
	}

	c := toggle(fan, "like")
	assert.True(t, c.Liked)
	assert.Equal(t, 1, c.LikeCount)

	c = toggle(author, "like")
	assert.Equal(t, 2, c.LikeCount)

	c = toggle(fan, "like")
	assert.False(t, c.Liked)
	assert.Equal(t, 1, c.LikeCount)

	c = toggle(fan, "bookmark")
	assert.True(t, c.Bookmarked)
	assert.Equal(t, 1, c.BookmarkCount)

	status, res := env.Do(t, http.MethodGet, "/api/cards/bookmarks", nil, fan.Token)
	require.Equal(t, http.StatusOK, status)
	var page pageData[cardData]
	res.Decode(t, &page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, card.Id, page.Items[0].Id)
	assert.True(t, page.Items[0].Bookmarked)
	assert.False(t, page.Items[0].Liked)
}

func TestCardDeleteRemovesReactions(t *testing.T) {
	env := testutil.NewEnv(t)
	author := env.Signup(t, "Author")
	fans := []testutil.User{env.Signup(t, "Ava"), env.Signup(t, "Ben")}
	card := createCard(t, env, author, map[string]interface{}{"title": "Doomed"})

	for _, fan := range fans {
		for _, kind := range []string{"like", "bookmark"} {
			status, _ := env.Do(t, http.MethodPost, "/api/cards/"+card.Id+"/"+kind, nil, fan.Token)
			require.Equal(t, http.StatusOK, status)
		}
	}
	require.Equal(t, int64(2), env.Count(t, "card_likes", "card_id = ?", card.Id))

	status, _ := env.Do(t, http.MethodDelete, "/api/cards/"+card.Id, nil, fans[0].Token)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = env.Do(t, http.MethodDelete, "/api/cards/"+card.Id, nil, author.Token)
	require.Equal(t, http.StatusOK, status)

	assert.Zero(t, env.Count(t, "cards", "id = ?", card.Id))
	assert.Zero(t, env.Count(t, "card_likes", "card_id = ?", card.Id))
	assert.Zero(t, env.Count(t, "card_bookmarks", "card_id = ?", card.Id))
}

func TestCardListAndUpdate(t *testing.T) {
	env := testutil.NewEnv(t)
	author := env.Signup(t, "Author")
	reader := env.Signup(t, "Reader")

	go1 := createCard(t, env, author, map[string]interface{}{"title": "Go tips", "category": "dev", "tags": []string{"go"}})
	createCard(t, env, author, map[string]interface{}{"title": "Baking", "category": "food"})

	list := func(query string) []cardData {
		status, res := env.Do(t, http.MethodGet, "/api/cards"+query, nil, reader.Token)
		require.Equal(t, http.StatusOK, status)
		var page pageData[cardData]
		res.Decode(t, &page)
		return page.Items
	}

	assert.Len(t, list(""), 2)
	assert.Len(t, list("?category=dev"), 1)
	assert.Len(t, list("?tag=go"), 1)
	assert.Len(t, list("?q=bak"), 1)

	status, _ := env.Do(t, http.MethodPut, "/api/cards/"+go1.Id, map[string]interface{}{"title": "Hijack"}, reader.Token)
	assert.Equal(t, http.StatusForbidden, status)

	status, res := env.Do(t, http.MethodPut, "/api/cards/"+go1.Id, map[string]interface{}{"category": "golang"}, author.Token)
	require.Equal(t, http.StatusOK, status)
	var updated cardData
	res.Decode(t, &updated)
	assert.Equal(t, "Go tips", updated.Title)
	assert.Equal(t, "golang", updated.Category)
}
