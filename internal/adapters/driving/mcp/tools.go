package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/tutor/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question  string      `json:"question" jsonschema:"the student's question"`
	Username  string      `json:"username,omitempty" jsonschema:"who is asking, recorded in the interaction log"`
	History   []TurnInput `json:"history,omitempty" jsonschema:"earlier turns of the conversation, oldest first"`
	FirstTurn bool        `json:"first_turn,omitempty" jsonschema:"true for the opening message of a conversation"`
}

// TurnInput is one earlier conversation turn.
type TurnInput struct {
	Role string `json:"role" jsonschema:"student or assistant"`
	Text string `json:"text"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer    string `json:"answer"`
	Scope     string `json:"scope"`
	Type      string `json:"type"`
	Canonical bool   `json:"canonical"`
	Model     string `json:"model,omitempty"`
	Degraded  bool   `json:"degraded,omitempty"`
	RequestID string `json:"request_id"`
}

// ClassifyInput is the input schema for the classify and retrieve tools.
type ClassifyInput struct {
	Question string `json:"question" jsonschema:"the question to inspect"`
}

// ClassifyOutput is the output schema for the classify tool.
type ClassifyOutput struct {
	Scope string `json:"scope"`
	Type  string `json:"type"`
}

// RetrieveOutput is the output schema for the retrieve tool.
type RetrieveOutput struct {
	Blocks  []BlockOutput `json:"blocks"`
	Context string        `json:"context"`
}

// BlockOutput is one ranked transcript block.
type BlockOutput struct {
	Position int      `json:"position"`
	Score    int      `json:"score"`
	Tags     []string `json:"tags"`
	Content  string   `json:"content"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Ask the course tutor a question and get an HTML-formatted answer",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "classify",
		Description: "Report whether a question is in scope for the course and its prompt type",
	}, s.handleClassify)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "retrieve",
		Description: "Show the transcript blocks that would be used as context for a question",
	}, s.handleRetrieve)
}

func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	q := domain.Question{
		Username:  input.Username,
		Text:      input.Question,
		FirstTurn: input.FirstTurn,
	}
	for _, turn := range input.History {
		role := domain.RoleStudent
		if turn.Role == string(domain.RoleAssistant) {
			role = domain.RoleAssistant
		}
		q.History = append(q.History, domain.Turn{Role: role, Text: turn.Text})
	}

	answer, err := s.ports.Chat.Ask(ctx, q)
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{
		Answer:    answer.Text,
		Scope:     answer.Scope.String(),
		Type:      answer.Type,
		Canonical: answer.Canonical,
		Model:     answer.Model,
		Degraded:  answer.Degraded,
		RequestID: answer.RequestID,
	}, nil
}

func (s *Server) handleClassify(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ClassifyInput,
) (*mcp.CallToolResult, ClassifyOutput, error) {
	result := s.ports.Chat.Classify(input.Question)
	return nil, ClassifyOutput{Scope: result.Scope.String(), Type: result.Type}, nil
}

func (s *Server) handleRetrieve(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ClassifyInput,
) (*mcp.CallToolResult, RetrieveOutput, error) {
	ranked, snippet := s.ports.Chat.Retrieve(input.Question)

	output := RetrieveOutput{
		Blocks:  make([]BlockOutput, len(ranked)),
		Context: snippet,
	}
	for i := range ranked {
		output.Blocks[i] = BlockOutput{
			Position: ranked[i].Position,
			Score:    ranked[i].Score,
			Tags:     ranked[i].Block.Tags,
			Content:  ranked[i].Block.Content,
		}
	}
	return nil, output, nil
}
