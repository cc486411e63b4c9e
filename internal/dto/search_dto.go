package dto

const (
	SearchTypeAll        = "all"
	SearchTypeNotes      = "notes"
	SearchTypeDocuments  = "documents"
	SearchTypeMembers    = "members"
	SearchTypeWorkspaces = "workspaces"

	SearchMinQueryLength = 2
	SearchDefaultLimit   = 10
)

type SearchQuery struct {
	Q     string `query:"q"`
	Type  string `query:"type" validate:"omitempty,oneof=all notes documents members workspaces"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=50"`
}

type SearchResults struct {
	Notes      []NoteResponse       `json:"notes"`
	Documents  []DocumentResponse   `json:"documents"`
	Members    []PublicUserResponse `json:"members"`
	Workspaces []WorkspaceResponse  `json:"workspaces"`
}

type SearchResponse struct {
	Query   string        `json:"query"`
	Type    string        `json:"type"`
	Results SearchResults `json:"results"`
	Total   int           `json:"total"`
}
