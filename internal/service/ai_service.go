package service

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"ai-workspace-be/internal/constant"
	"ai-workspace-be/internal/dto"
	"ai-workspace-be/internal/pkg/apperror"
	"ai-workspace-be/internal/pkg/logger"
	"ai-workspace-be/internal/pkg/metrics"
	"ai-workspace-be/internal/repository/specification"
	"ai-workspace-be/internal/repository/unitofwork"
	"ai-workspace-be/pkg/llm"

	"github.com/google/uuid"
)

type IAIService interface {
	Summarize(ctx context.Context, userId uuid.UUID, req *dto.SummarizeRequest) (*dto.SummaryResponse, error)
	SummarizeText(ctx context.Context, text string) (*dto.SummaryResponse, error)
	Complete(ctx context.Context, req *dto.CompleteRequest) (*dto.CompleteResponse, error)
	// Reply answers the last message of a chat history.
	Reply(ctx context.Context, history []llm.Message) (string, error)
}

type aiService struct {
	uowFactory unitofwork.RepositoryFactory
	provider   llm.LLMProvider
	metrics    *metrics.Collector
	logger     logger.ILogger
}

func NewAIService(
	uowFactory unitofwork.RepositoryFactory,
	provider llm.LLMProvider,
	metrics *metrics.Collector,
	logger logger.ILogger,
) IAIService {
	return &aiService{
		uowFactory: uowFactory,
		provider:   provider,
		metrics:    metrics,
		logger:     logger,
	}
}

func (s *aiService) Summarize(ctx context.Context, userId uuid.UUID, req *dto.SummarizeRequest) (*dto.SummaryResponse, error) {
	text := req.Text
	if text == "" {
		var err error
		text, err = s.loadSource(ctx, userId, req)
		if err != nil {
			return nil, err
		}
	}
	return s.SummarizeText(ctx, text)
}

func (s *aiService) SummarizeText(ctx context.Context, text string) (*dto.SummaryResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperror.Validation("", "There is no text to summarize")
	}
	if len(text) > constant.AIMaxInputChars {
		text = truncateRunes(text, constant.AIMaxInputChars)
	}

	out, err := s.call(ctx, "summarize", []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: constant.SummarizeSystemPrompt},
		{Role: constant.ChatMessageRoleUser, Content: text},
	})
	if err != nil {
		return nil, err
	}

	summary, keyPoints := parseSummary(out)
	return &dto.SummaryResponse{
		Summary:   summary,
		KeyPoints: keyPoints,
	}, nil
}

func (s *aiService) Complete(ctx context.Context, req *dto.CompleteRequest) (*dto.CompleteResponse, error) {
	system := strings.TrimSpace(req.System)
	if system == "" {
		system = constant.CompleteSystemPrompt
	}

	out, err := s.call(ctx, "complete", []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: system},
		{Role: constant.ChatMessageRoleUser, Content: req.Prompt},
	})
	if err != nil {
		return nil, err
	}
	return &dto.CompleteResponse{Text: strings.TrimSpace(out)}, nil
}

func (s *aiService) Reply(ctx context.Context, history []llm.Message) (string, error) {
	out, err := s.call(ctx, "chat", history)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (s *aiService) call(ctx context.Context, operation string, history []llm.Message) (string, error) {
	out, err := s.provider.Chat(ctx, history)
	if err == nil && strings.TrimSpace(out) == "" {
		err = llm.ErrEmptyResponse
	}
	if s.metrics != nil {
		s.metrics.ObserveAICall(operation, err)
	}
	if err != nil {
		s.logger.Warn("AI", "Provider call failed", map[string]interface{}{
			"operation": operation,
			"error":     err.Error(),
		})
		return "", mapAIError(err)
	}
	return out, nil
}

func (s *aiService) loadSource(ctx context.Context, userId uuid.UUID, req *dto.SummarizeRequest) (string, error) {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return "", err
	}

	if req.NoteId != "" {
		noteId, err := uuid.Parse(req.NoteId)
		if err != nil {
			return "", apperror.Validation(apperror.CodeInvalidID, "Invalid noteId")
		}
		note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: noteId})
		if err != nil {
			return "", err
		}
		if note == nil {
			return "", apperror.NotFound("", "Note not found")
		}
		ok, err := canRead(ctx, uow, userId, note.AuthorId, note.WorkspaceId)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", apperror.Forbidden("You do not have access to this note")
		}
		return note.Title + "\n\n" + note.Content, nil
	}

	documentId, err := uuid.Parse(req.DocumentId)
	if err != nil {
		return "", apperror.Validation(apperror.CodeInvalidID, "Invalid documentId")
	}
	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		return "", err
	}
	if document == nil {
		return "", apperror.NotFound("", "Document not found")
	}
	ok, err := canRead(ctx, uow, userId, document.AuthorId, document.WorkspaceId)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperror.Forbidden("You do not have access to this document")
	}
	return document.Title + "\n\n" + document.Content, nil
}

func mapAIError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, llm.ErrUnavailable):
		return apperror.Unavailable(apperror.CodeAIUnavailable, "AI service is temporarily unavailable", err)
	default:
		return apperror.Upstream("AI service request failed", err)
	}
}

// parseSummary splits provider output into the leading summary paragraph
// and the bullet or numbered lines that follow it.
func parseSummary(out string) (string, []string) {
	var (
		summaryLines []string
		keyPoints    = []string{}
	)

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if point, ok := bulletText(line); ok {
			if point != "" {
				keyPoints = append(keyPoints, point)
			}
			continue
		}
		if len(keyPoints) == 0 {
			summaryLines = append(summaryLines, line)
		} else {
			keyPoints = append(keyPoints, line)
		}
	}

	summary := strings.Join(summaryLines, " ")
	if summary == "" && len(keyPoints) > 0 {
		summary = keyPoints[0]
	}
	return summary, keyPoints
}

func bulletText(line string) (string, bool) {
	for _, marker := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(strings.TrimPrefix(line, marker)), true
		}
	}

	// "1." or "1)"
	i := 0
	for i < len(line) && unicode.IsDigit(rune(line[i])) {
		i++
	}
	if i > 0 && i+1 < len(line) && (line[i] == '.' || line[i] == ')') && line[i+1] == ' ' {
		return strings.TrimSpace(line[i+1:]), true
	}
	return "", false
}

// formatSummary is the stored form of a summary.
func formatSummary(res *dto.SummaryResponse) string {
	var b strings.Builder
	b.WriteString(res.Summary)
	if len(res.KeyPoints) > 0 {
		b.WriteString("\n")
		for _, point := range res.KeyPoints {
			b.WriteString("\n- ")
			b.WriteString(point)
		}
	}
	return b.String()
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
