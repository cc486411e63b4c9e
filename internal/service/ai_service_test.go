package service

import (
	"testing"

	"ai-workspace-be/internal/dto"

	"github.com/stretchr/testify/assert"
)

func TestParseSummary(t *testing.T) {
	tests := []struct {
		name      string
		out       string
		summary   string
		keyPoints []string
	}{
		{
			name:      "summary then bullets",
			out:       "Sales grew.\n\n- Revenue up\n* Costs flat\n• Margin wider",
			summary:   "Sales grew.",
			keyPoints: []string{"Revenue up", "Costs flat", "Margin wider"},
		},
		{
			name:      "numbered points",
			out:       "Plan is set.\n1. Book hotel\n2) Rent car",
			summary:   "Plan is set.",
			keyPoints: []string{"Book hotel", "Rent car"},
		},
		{
			name:      "multi line summary",
			out:       "First line.\nSecond line.",
			summary:   "First line. Second line.",
			keyPoints: []string{},
		},
		{
			name:      "decimals are not markers",
			out:       "Growth was\n3.5 percent",
			summary:   "Growth was 3.5 percent",
			keyPoints: []string{},
		},
		{
			name:      "bullets only",
			out:       "- Only point\n- Second",
			summary:   "Only point",
			keyPoints: []string{"Only point", "Second"},
		},
		{
			name:      "empty",
			out:       "  \n",
			summary:   "",
			keyPoints: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, keyPoints := parseSummary(tt.out)
			assert.Equal(t, tt.summary, summary)
			assert.Equal(t, tt.keyPoints, keyPoints)
		})
	}
}

func TestFormatSummary(t *testing.T) {
	assert.Equal(t, "Done.", formatSummary(&dto.SummaryResponse{Summary: "Done.", KeyPoints: []string{}}))
	assert.Equal(t, "Done.\n\n- a\n- b", formatSummary(&dto.SummaryResponse{Summary: "Done.", KeyPoints: []string{"a", "b"}}))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "héll", truncateRunes("héllo", 4))
	assert.Equal(t, "abc", truncateRunes("abc", 10))
}

func TestCleanTags(t *testing.T) {
	assert.Equal(t, []string{"go", "web"}, cleanTags([]string{" go", "", "web", "go "}))
	assert.Equal(t, []string{}, cleanTags(nil))
}
