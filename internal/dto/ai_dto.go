package dto

type SummarizeRequest struct {
	Text       string `json:"text" validate:"required_without_all=NoteId DocumentId,omitempty,max=100000"`
	NoteId     string `json:"noteId" validate:"omitempty,uuid"`
	DocumentId string `json:"documentId" validate:"omitempty,uuid"`
}

type SummaryResponse struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"keyPoints"`
}

type CompleteRequest struct {
	Prompt string `json:"prompt" validate:"required,min=1,max=10000"`
	System string `json:"system" validate:"max=2000"`
}

type CompleteResponse struct {
	Text string `json:"text"`
}
