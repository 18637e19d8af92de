// Package messages defines Bubbletea message types for the chat UI.
package messages

import (
	"github.com/custodia-labs/tutor/internal/core/domain"
)

// AnswerReceived carries the tutor's reply to a question.
type AnswerReceived struct {
	Question string
	Answer   *domain.Answer
	Err      error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// ConversationReset starts a fresh conversation.
type ConversationReset struct{}
