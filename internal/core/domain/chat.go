package domain

// Role identifies the author of a conversation turn.
type Role string

// Conversation roles.
const (
	RoleStudent   Role = "student"
	RoleAssistant Role = "assistant"
)

// Turn is one prior message passed along as history.
type Turn struct {
	Role Role
	Text string
}

// Question is a student's request to the tutor.
type Question struct {
	// Username identifies the asker for the audit log.
	Username string

	// Text is the raw question.
	Text string

	// History holds earlier turns, oldest first. It is passed to the model as text only.
	History []Turn

	// FirstTurn marks the opening message of a conversation.
	FirstTurn bool
}

// Answer is the tutor's reply to a Question.
type Answer struct {
	// RequestID correlates the reply with log output.
	RequestID string

	// Text is the formatted reply.
	Text string

	Scope Scope
	Type  string

	// Context is the retrieved transcript snippet shown to the model, if any.
	Context string

	// Canonical is true when the reply came from the canonical table.
	Canonical bool

	// Model names the model tier that produced the text, empty for canned replies.
	Model string

	// Degraded is true when generation failed and the safe default was returned.
	Degraded bool
}
