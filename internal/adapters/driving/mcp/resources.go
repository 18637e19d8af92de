package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	uriScheme = "tutor://"

	recentURI = uriScheme + "interactions/recent"

	defaultRecentLimit = 20
	maxRecentLimit     = 500
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         recentURI,
		Name:        "recent-interactions",
		Description: "The most recent answered questions, newest first",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: recentURI + "/{limit}",
		Name:        "recent-interactions-limited",
		Description: "Up to {limit} recent answered questions, newest first",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "corpus/topics",
		Name:        "corpus-topics",
		Description: "Topic blocks of the loaded course transcript",
		MIMEType:    "application/json",
	}, s.handleTopicsResource)
}

type interactionInfo struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Context    string `json:"context_snippet,omitempty"`
	PromptType string `json:"prompt_type"`
	Timestamp  string `json:"timestamp"`
}

// handleRecentResource returns recent interaction records as JSON.
func (s *Server) handleRecentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	limit, ok := extractLimit(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if s.ports.History == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	records, err := s.ports.History.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing interactions: %w", err)
	}

	infos := make([]interactionInfo, len(records))
	for i := range records {
		infos[i] = interactionInfo{
			ID:         records[i].ID,
			Username:   records[i].Username,
			Question:   records[i].Question,
			Answer:     records[i].Answer,
			Context:    records[i].ContextSnippet,
			PromptType: records[i].PromptType,
			Timestamp:  records[i].Timestamp.UTC().Format(time.RFC3339),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling interactions: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

// handleTopicsResource lists the tags and sizes of each transcript block.
func (s *Server) handleTopicsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Corpus == nil || s.ports.Corpus.Snapshot() == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	type topicInfo struct {
		Position int      `json:"position"`
		Tags     []string `json:"tags"`
		Length   int      `json:"length"`
	}

	blocks := s.ports.Corpus.Snapshot().Blocks
	infos := make([]topicInfo, len(blocks))
	for i := range blocks {
		infos[i] = topicInfo{
			Position: i,
			Tags:     blocks[i].Tags,
			Length:   len([]rune(blocks[i].Content)),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling topics: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// extractLimit parses tutor://interactions/recent[/{limit}].
// The limit is clamped to maxRecentLimit.
func extractLimit(uri string) (int, bool) {
	if uri == recentURI {
		return defaultRecentLimit, true
	}

	raw, found := strings.CutPrefix(uri, recentURI+"/")
	if !found {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	return min(n, maxRecentLimit), true
}
