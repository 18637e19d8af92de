// Package web provides the JSON HTTP surface of the tutor on gin.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/tutor/internal/core/ports/driven"
	"github.com/custodia-labs/tutor/internal/core/ports/driving"
)

// ErrMissingChatService is returned when the chat service is not provided.
var ErrMissingChatService = errors.New("web: chat service is required")

// Ports aggregates what the HTTP server drives.
type Ports struct {
	Chat    driving.ChatService
	History driving.HistoryService
	Corpus  driving.CorpusService

	// Verifier maps bearer tokens to usernames. Required.
	Verifier driven.TokenVerifier
}

// Server is the tutor web server.
type Server struct {
	ports  *Ports
	router *gin.Engine
}

// NewServer creates a web server with all routes registered.
func NewServer(ports *Ports) (*Server, error) {
	if ports.Chat == nil {
		return nil, ErrMissingChatService
	}
	if ports.Verifier == nil {
		return nil, errors.New("web: token verifier is required")
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	s := &Server{
		ports:  ports,
		router: router,
	}

	router.GET("/healthz", s.handleHealth)

	api := router.Group("/api", s.authenticate)
	{
		api.POST("/ask", s.handleAsk)
		api.GET("/interactions", s.handleInteractions)
		api.GET("/interactions/export.csv", s.handleExport)
	}

	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves HTTP on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
