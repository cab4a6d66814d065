package models

// Turn roles in a conversation transcript.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single utterance in a session transcript.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ChatRequest is the payload coming into POST /chat.
type ChatRequest struct {
	Message   string         `json:"message" binding:"required"`
	SessionID string         `json:"session_id,omitempty"`
	Context   map[string]any `json:"context,omitempty"`
}

// ChatResponse is the agent's reply, echoing the (possibly generated) session id.
type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}
