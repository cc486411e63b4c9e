package controller_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"ai-workspace-be/internal/testutil"
	"ai-workspace-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type chatData struct {
	Id           string `json:"id"`
	Title        string `json:"title"`
	CreatedBy    string `json:"createdBy"`
	Participants []struct {
		UserId string `json:"userId"`
	} `json:"participants"`
	Messages []messageData `json:"messages"`
}

type messageData struct {
	Id         string  `json:"id"`
	SenderId   *string `json:"senderId"`
	SenderName string  `json:"senderName"`
	Role       string  `json:"role"`
	Content    string  `json:"content"`
}

func createChat(t *testing.T, env *testutil.Env, user testutil.User, body map[string]interface{}) chatData {
	t.Helper()
	status, res := env.Do(t, http.MethodPost, "/api/chats", body, user.Token)
	require.Equal(t, http.StatusCreated, status, res.Error)
	var c chatData
	res.Decode(t, &c)
	return c
}

func TestChatCreateAndMessages(t *testing.T) {
	env := testutil.NewEnv(t)
	ann := env.Signup(t, "Ann")
	bob := env.Signup(t, "Bob")
	eve := env.Signup(t, "Eve")

	chat := createChat(t, env, ann, map[string]interface{}{
		"participantIds": []string{bob.Id, bob.Id, ann.Id},
	})
	assert.Equal(t, "New chat", chat.Title)
	assert.Len(t, chat.Participants, 2)

	status, res := env.Do(t, http.MethodPost, "/api/chats/"+chat.Id+"/messages", map[string]string{"content": "hello"}, bob.Token)
	require.Equal(t, http.StatusCreated, status, res.Error)
	var msg messageData
	res.Decode(t, &msg)
	assert.Equal(t, "Bob", msg.SenderName)
	assert.Equal(t, "user", msg.Role)

	status, _ = env.Do(t, http.MethodPost, "/api/chats/"+chat.Id+"/messages", map[string]string{"content": "hi"}, ann.Token)
	require.Equal(t, http.StatusCreated, status)

	status, res = env.Do(t, http.MethodGet, "/api/chats/"+chat.Id, nil, ann.Token)
	require.Equal(t, http.StatusOK, status)
	res.Decode(t, &chat)
	require.Len(t, chat.Messages, 2)
	assert.Equal(t, "hello", chat.Messages[0].Content)
	assert.Equal(t, "hi", chat.Messages[1].Content)

	t.Run("non participant", func(t *testing.T) {
		status, _ := env.Do(t, http.MethodGet, "/api/chats/"+chat.Id, nil, eve.Token)
		assert.Equal(t, http.StatusForbidden, status)

		status, _ = env.Do(t, http.MethodPost, "/api/chats/"+chat.Id+"/messages", map[string]string{"content": "x"}, eve.Token)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("empty message", func(t *testing.T) {
		status, _ := env.Do(t, http.MethodPost, "/api/chats/"+chat.Id+"/messages", map[string]string{"content": ""}, ann.Token)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("listing", func(t *testing.T) {
		status, res := env.Do(t, http.MethodGet, "/api/chats", nil, bob.Token)
		require.Equal(t, http.StatusOK, status)
		var page pageData[chatData]
		res.Decode(t, &page)
		assert.Len(t, page.Items, 1)

		status, res = env.Do(t, http.MethodGet, "/api/chats", nil, eve.Token)
		require.Equal(t, http.StatusOK, status)
		res.Decode(t, &page)
		assert.Empty(t, page.Items)
	})
}

func TestChatCreateValidation(t *testing.T) {
	env := testutil.NewEnv(t)
	ann := env.Signup(t, "Ann")
	bob := env.Signup(t, "Bob")
	private := createNote(t, env, bob, map[string]interface{}{"title": "Private"})

	status, res := env.Do(t, http.MethodPost, "/api/chats", map[string]interface{}{
		"participantIds": []string{uuid.NewString()},
	}, ann.Token)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "USER_NOT_FOUND", res.Code)

	status, _ = env.Do(t, http.MethodPost, "/api/chats", map[string]interface{}{
		"contextType": "note", "contextId": private.Id,
	}, ann.Token)
	assert.Equal(t, http.StatusForbidden, status)

	status, res = env.Do(t, http.MethodPost, "/api/chats", map[string]interface{}{"contextType": "note"}, ann.Token)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "MISSING_FIELDS", res.Code)

	assert.Zero(t, env.Count(t, "chats", "1 = 1"))
}

func TestChatAskAI(t *testing.T) {
	env := testutil.NewEnv(t)
	ann := env.Signup(t, "Ann")
	note := createNote(t, env, ann, map[string]interface{}{"title": "Recipe", "content": "Flour and water"})
	chat := createChat(t, env, ann, map[string]interface{}{"contextType": "note", "contextId": note.Id})

	for i := 0; i < 12; i++ {
		status, _ := env.Do(t, http.MethodPost, "/api/chats/"+chat.Id+"/messages", map[string]string{"content": fmt.Sprintf("m%d", i)}, ann.Token)
		require.Equal(t, http.StatusCreated, status)
	}

	var seen []llm.Message
	env.LLM.On("Chat", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { seen = args.Get(1).([]llm.Message) }).
		Return("Mix them.", nil).Once()

	status, res := env.Do(t, http.MethodPost, "/api/chats/"+chat.Id+"/ai", map[string]string{"prompt": "How?"}, ann.Token)
	require.Equal(t, http.StatusCreated, status, res.Error)

	var out struct {
		UserMessage      messageData `json:"userMessage"`
		AssistantMessage messageData `json:"assistantMessage"`
	}
	res.Decode(t, &out)
	assert.Equal(t, "How?", out.UserMessage.Content)
	assert.Equal(t, "assistant", out.AssistantMessage.Role)
	assert.Equal(t, "Mix them.", out.AssistantMessage.Content)
	assert.Nil(t, out.AssistantMessage.SenderId)

	// system prompt, reference note, last 10 messages, prompt
	require.Len(t, seen, 13)
	assert.Equal(t, "system", seen[1].Role)
	assert.Contains(t, seen[1].Content, "Flour and water")
	assert.Equal(t, "m2", seen[2].Content)
	assert.Equal(t, "m11", seen[11].Content)
	assert.Equal(t, "How?", seen[12].Content)

	assert.Equal(t, int64(14), env.Count(t, "chat_messages", "chat_id = ?", chat.Id))

	t.Run("failure stores nothing", func(t *testing.T) {
		env.LLM.On("Chat", mock.Anything, mock.Anything).Return("", errors.New("down")).Once()

		status, _ := env.Do(t, http.MethodPost, "/api/chats/"+chat.Id+"/ai", map[string]string{"prompt": "Again?"}, ann.Token)
		assert.Equal(t, http.StatusBadGateway, status)
		assert.Equal(t, int64(14), env.Count(t, "chat_messages", "chat_id = ?", chat.Id))
	})
}

func TestChatAskAIOmitsContextHiddenFromCaller(t *testing.T) {
	env := testutil.NewEnv(t)
	ann := env.Signup(t, "Ann")
	bob := env.Signup(t, "Bob")
	note := createNote(t, env, ann, map[string]interface{}{"title": "Diary", "content": "Private thoughts"})
	chat := createChat(t, env, ann, map[string]interface{}{
		"contextType": "note", "contextId": note.Id, "participantIds": []string{bob.Id},
	})

	var seen []llm.Message
	env.LLM.On("Chat", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { seen = args.Get(1).([]llm.Message) }).
		Return("Sure.", nil).Once()

	status, res := env.Do(t, http.MethodPost, "/api/chats/"+chat.Id+"/ai", map[string]string{"prompt": "Summarize"}, bob.Token)
	require.Equal(t, http.StatusCreated, status, res.Error)

	// system prompt, prompt
	require.Len(t, seen, 2)
	for _, m := range seen {
		assert.NotContains(t, m.Content, "Private thoughts")
	}

	env.LLM.On("Chat", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { seen = args.Get(1).([]llm.Message) }).
		Return("Done.", nil).Once()

	status, res = env.Do(t, http.MethodPost, "/api/chats/"+chat.Id+"/ai", map[string]string{"prompt": "Again"}, ann.Token)
	require.Equal(t, http.StatusCreated, status, res.Error)

	// system prompt, reference note, two stored messages, prompt
	require.Len(t, seen, 5)
	assert.Contains(t, seen[1].Content, "Private thoughts")
}

func TestChatDelete(t *testing.T) {
	env := testutil.NewEnv(t)
	ann := env.Signup(t, "Ann")
	bob := env.Signup(t, "Bob")
	chat := createChat(t, env, ann, map[string]interface{}{"participantIds": []string{bob.Id}})

	status, _ := env.Do(t, http.MethodPost, "/api/chats/"+chat.Id+"/messages", map[string]string{"content": "bye"}, bob.Token)
	require.Equal(t, http.StatusCreated, status)

	status, _ = env.Do(t, http.MethodDelete, "/api/chats/"+chat.Id, nil, bob.Token)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = env.Do(t, http.MethodDelete, "/api/chats/"+chat.Id, nil, ann.Token)
	require.Equal(t, http.StatusOK, status)

	assert.Zero(t, env.Count(t, "chats", "id = ?", chat.Id))
	assert.Zero(t, env.Count(t, "chat_messages", "chat_id = ?", chat.Id))
	assert.Zero(t, env.Count(t, "chat_participants", "chat_id = ?", chat.Id))
}

func TestChatWebsocketRequiresToken(t *testing.T) {
	env := testutil.NewEnv(t)

	status, _ := env.Do(t, http.MethodGet, "/api/chats/ws", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	user := env.Signup(t, "Ann")
	req := newRawRequest(http.MethodGet, "/api/chats/ws?token="+user.Token, "", "")
	status, _ = env.Send(t, req, "")
	assert.Equal(t, http.StatusBadRequest, status)
}
