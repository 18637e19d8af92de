package web

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/tutor/internal/adapters/driving/csvexport"
	"github.com/custodia-labs/tutor/internal/core/domain"
	"github.com/custodia-labs/tutor/internal/logger"
)

const (
	maxBodySize = 64 << 10 // 64KB

	defaultLimit = 20
	maxLimit     = 500
)

type turnRequest struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type askRequest struct {
	Question  string        `json:"question"`
	History   []turnRequest `json:"history"`
	FirstTurn bool          `json:"first_turn"`
}

type askResponse struct {
	Answer    string `json:"answer"`
	Scope     string `json:"scope"`
	Type      string `json:"type"`
	Canonical bool   `json:"canonical"`
	Model     string `json:"model,omitempty"`
	Degraded  bool   `json:"degraded,omitempty"`
	RequestID string `json:"request_id"`
}

type interactionResponse struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	Question       string `json:"question"`
	Answer         string `json:"answer"`
	ContextSnippet string `json:"context_snippet"`
	PromptType     string `json:"prompt_type"`
	Timestamp      string `json:"timestamp"`
}

func (s *Server) handleHealth(c *gin.Context) {
	if s.ports.Corpus == nil || s.ports.Corpus.Snapshot() == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "corpus not loaded"})
		return
	}
	stats := s.ports.Corpus.Stats()
	c.JSON(http.StatusOK, gin.H{"status": "ok", "blocks": stats.Blocks})
}

func (s *Server) handleAsk(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)

	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	q := domain.Question{
		Username:  c.GetString(usernameKey),
		Text:      req.Question,
		FirstTurn: req.FirstTurn,
	}
	for _, turn := range req.History {
		role := domain.RoleStudent
		if turn.Role == string(domain.RoleAssistant) {
			role = domain.RoleAssistant
		}
		q.History = append(q.History, domain.Turn{Role: role, Text: turn.Text})
	}

	answer, err := s.ports.Chat.Ask(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, askResponse{
		Answer:    answer.Text,
		Scope:     answer.Scope.String(),
		Type:      answer.Type,
		Canonical: answer.Canonical,
		Model:     answer.Model,
		Degraded:  answer.Degraded,
		RequestID: answer.RequestID,
	})
}

func (s *Server) handleInteractions(c *gin.Context) {
	if s.ports.History == nil {
		c.JSON(http.StatusOK, []interactionResponse{})
		return
	}

	limit, ok := parseLimit(c)
	if !ok {
		return
	}

	records, err := s.ports.History.Recent(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]interactionResponse, len(records))
	for i := range records {
		out[i] = interactionResponse{
			ID:             records[i].ID,
			Username:       records[i].Username,
			Question:       records[i].Question,
			Answer:         records[i].Answer,
			ContextSnippet: records[i].ContextSnippet,
			PromptType:     records[i].PromptType,
			Timestamp:      records[i].Timestamp.UTC().Format(time.RFC3339),
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleExport(c *gin.Context) {
	if s.ports.History == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "interaction log not configured"})
		return
	}

	var (
		records []domain.InteractionRecord
		err     error
	)
	switch c.DefaultQuery("scope", "recent") {
	case "recent":
		limit, ok := parseLimit(c)
		if !ok {
			return
		}
		records, err = s.ports.History.Recent(c.Request.Context(), limit)
	case "all":
		records, err = s.ports.History.All(c.Request.Context())
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "scope must be recent or all"})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := csvexport.Write(&buf, records); err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="interactions.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// parseLimit reads ?limit=N, writing a 400 when it is malformed.
func parseLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return defaultLimit, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return 0, false
	}
	return min(n, maxLimit), true
}

// writeError maps domain errors to status codes. Internal details stay in the log.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	default:
		logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
