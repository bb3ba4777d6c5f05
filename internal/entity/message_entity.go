package entity

// Role is the closed set of message authors stored in a session history.
type Role string

const (
	RoleHuman     Role = "human"
	RoleAssistant Role = "assistant"
)

// Message is a single entry in a session's ordered history.
// FinalStory tags the assistant message holding the session's current
// canonical story; at most the most recent tagged message is active.
type Message struct {
	Role       Role   `json:"role"`
	Content    string `json:"content"`
	FinalStory bool   `json:"final_story,omitempty"`
}

// LastStory returns the content of the most recent final-story message,
// scanning from the end of the history.
func LastStory(history []Message) (string, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == RoleAssistant && history[i].FinalStory {
			return history[i].Content, true
		}
	}
	return "", false
}

// HasStory reports whether an active story exists in the history.
func HasStory(history []Message) bool {
	_, ok := LastStory(history)
	return ok
}
