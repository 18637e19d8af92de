// Package mcp provides an MCP (Model Context Protocol) server adapter for the tutor.
// It lets AI assistants ask course questions and read the interaction log.
package mcp

import "errors"

// ErrMissingChatService is returned when the chat service is not provided.
var ErrMissingChatService = errors.New("mcp: chat service is required")
