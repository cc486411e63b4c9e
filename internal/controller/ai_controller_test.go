package controller_test

import (
	"fmt"
	"net/http"
	"testing"

	"ai-workspace-be/internal/testutil"
	"ai-workspace-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAISummarizeText(t *testing.T) {
	env := testutil.NewEnv(t)
	user := env.Signup(t, "Ann")

	env.LLM.On("Chat", mock.Anything, mock.Anything).
		Return("Short version.\n1. First point\n2. Second point", nil).Once()

	status, res := env.Do(t, http.MethodPost, "/api/ai/summarize", map[string]string{"text": "long text"}, user.Token)
	require.Equal(t, http.StatusOK, status, res.Error)

	var summary struct {
		Summary   string   `json:"summary"`
		KeyPoints []string `json:"keyPoints"`
	}
	res.Decode(t, &summary)
	assert.Equal(t, "Short version.", summary.Summary)
	assert.Equal(t, []string{"First point", "Second point"}, summary.KeyPoints)
}

func TestAISummarizeNote(t *testing.T) {
	env := testutil.NewEnv(t)
	user := env.Signup(t, "Ann")
	other := env.Signup(t, "Other")
	note := createNote(t, env, user, map[string]interface{}{"title": "Trip", "content": "Pack boots"})

	env.LLM.On("Chat", mock.Anything, mock.MatchedBy(func(h []llm.Message) bool {
		return testutil.LastUserMessage(h) == "Trip\n\nPack boots"
	})).Return("Bring boots.", nil).Once()

	status, _ := env.Do(t, http.MethodPost, "/api/ai/summarize", map[string]string{"noteId": note.Id}, user.Token)
	assert.Equal(t, http.StatusOK, status)

	status, _ = env.Do(t, http.MethodPost, "/api/ai/summarize", map[string]string{"noteId": note.Id}, other.Token)
	assert.Equal(t, http.StatusForbidden, status)

	env.LLM.AssertExpectations(t)
}

func TestAISummarizeValidation(t *testing.T) {
	env := testutil.NewEnv(t)
	user := env.Signup(t, "Ann")

	status, res := env.Do(t, http.MethodPost, "/api/ai/summarize", map[string]string{}, user.Token)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "MISSING_FIELDS", res.Code)
	env.LLM.AssertNotCalled(t, "Chat", mock.Anything, mock.Anything)
}

func TestAIComplete(t *testing.T) {
	env := testutil.NewEnv(t)
	user := env.Signup(t, "Ann")

	env.LLM.On("Chat", mock.Anything, mock.MatchedBy(func(h []llm.Message) bool {
		return len(h) == 2 && h[0].Content == "Be brief." && h[1].Content == "Say hi"
	})).Return("  Hi!  ", nil).Once()

	status, res := env.Do(t, http.MethodPost, "/api/ai/complete", map[string]string{
		"prompt": "Say hi", "system": "Be brief.",
	}, user.Token)
	require.Equal(t, http.StatusOK, status, res.Error)

	var out struct {
		Text string `json:"text"`
	}
	res.Decode(t, &out)
	assert.Equal(t, "Hi!", out.Text)
}

func TestAIErrors(t *testing.T) {
	env := testutil.NewEnv(t)
	user := env.Signup(t, "Ann")

	cases := []struct {
		name   string
		out    string
		err    error
		status int
	}{
		{"breaker open", "", fmt.Errorf("llm-openai: %w", llm.ErrUnavailable), http.StatusServiceUnavailable},
		{"upstream failure", "", fmt.Errorf("status 500"), http.StatusBadGateway},
		{"empty answer", "   ", nil, http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env.LLM.On("Chat", mock.Anything, mock.Anything).Return(tc.out, tc.err).Once()

			status, res := env.Do(t, http.MethodPost, "/api/ai/complete", map[string]string{"prompt": "x"}, user.Token)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, "AI_UNAVAILABLE", res.Code)
		})
	}
}
