package voice

type PlaceCallInput struct {
	To       string            `json:"to"`
	Script   string            `json:"script"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type PlaceCallResponse struct {
	CallID string         `json:"call_id"`
	Status string         `json:"status"`
	Error  *ErrorResponse `json:"error,omitempty"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}
