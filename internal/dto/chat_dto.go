package dto

// ChatRequest is the body of POST /chat. Both fields are optional: a blank
// session falls back to the default session and a blank message short-
// circuits to a prompt reply without touching the pipeline.
type ChatRequest struct {
	Session string `json:"session" validate:"omitempty,max=128"`
	Message string `json:"message" validate:"omitempty,max=4000"`
}

const DefaultSessionID = "default-session"

// StoryResponse reports a new-story result (or its refusal).
type StoryResponse struct {
	Type              string `json:"type"`
	Story             string `json:"story"`
	InternalRevisions int    `json:"internal_revisions"`
	Status            string `json:"status"` // "story" or "refusal"
}

// RefinedResponse reports a refinement result. A rejected (unsafe)
// refinement is reported in this same envelope.
type RefinedResponse struct {
	Type  string `json:"type"`
	Story string `json:"story"`
}

// ChatReplyResponse reports a plain conversational reply.
type ChatReplyResponse struct {
	Type  string `json:"type"`
	Reply string `json:"reply"`
}

type HealthResponse struct {
	Ok bool `json:"ok"`
}
