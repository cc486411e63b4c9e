package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	// ChatHistoryWindow is how many recent messages go into an AI reply.
	ChatHistoryWindow = 10

	// AIMaxInputChars bounds the text sent for summarization.
	AIMaxInputChars = 24000

	SummarizeSystemPrompt = `You are a concise assistant inside a knowledge workspace.
Summarize the text the user provides.

RESPONSE FORMAT
- First line: a one or two sentence summary.
- Then a blank line.
- Then 3 to 7 key points, one per line, each starting with "- ".
- No headings, no closing remarks.`

	CompleteSystemPrompt = `You are a helpful writing assistant inside a knowledge workspace.
Answer directly. Keep formatting simple.`

	ChatSystemPrompt = `You are a helpful assistant taking part in a team chat inside a knowledge workspace.
Answer the latest user message. Use the reference material when it is relevant and say so when it does not contain the answer.`

	// ChatContextTemplate wraps the note or document a chat is attached to.
	// Args: kind, title, content.
	ChatContextTemplate = `REFERENCE %s: "%s"
---
%s
---`
)
