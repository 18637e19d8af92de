package mcp

import (
	"github.com/custodia-labs/tutor/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Chat answers and classifies questions.
	Chat driving.ChatService

	// History reads the interaction log. Optional.
	History driving.HistoryService

	// Corpus exposes the loaded transcript. Optional.
	Corpus driving.CorpusService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	return nil
}
