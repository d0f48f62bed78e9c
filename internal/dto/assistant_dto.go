package dto

type AskRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Question  string `json:"question" validate:"required"`
}

type AskResponse struct {
	SessionId          string `json:"session_id"`
	Question           string `json:"question"`
	StandaloneQuestion string `json:"standalone_question,omitempty"`
	Intent             string `json:"intent,omitempty"`
	Answer             string `json:"answer"`
	Rejected           bool   `json:"rejected,omitempty"`
}

type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type GetHistoryResponse struct {
	SessionId string           `json:"session_id"`
	Messages  []HistoryMessage `json:"messages"`
}
