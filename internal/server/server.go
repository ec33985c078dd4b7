// Package server exposes the voice pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/voxpense/vocal/internal/common"
	"github.com/voxpense/vocal/internal/engine"
)

// maxAudioBytes caps uploads; transcription providers reject anything near
// this size anyway.
const maxAudioBytes = 25 << 20

// Server wires the pipeline engine into a gin router.
type Server struct {
	engine *engine.Engine
	logger *slog.Logger
	router *gin.Engine
}

// New builds a Server with all routes registered.
func New(eng *engine.Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine: eng,
		logger: logger,
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.requestLogger())

	v1 := router.Group("/api/v1")
	{
		v1.POST("/voice", s.handleVoice)
		v1.GET("/health", s.handleHealth)
	}

	s.router = router
	return s
}

// Handler returns the underlying http.Handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("server listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

type voiceJSONRequest struct {
	Text   string `json:"text" binding:"required"`
	UserID string `json:"user_id"`
	Date   string `json:"date"`
}

// handleVoice accepts either a multipart upload (audio file plus form
// fields) or a JSON body with pre-transcribed text.
func (s *Server) handleVoice(c *gin.Context) {
	req, err := s.parseVoiceRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.engine.ProcessVoice(c.Request.Context(), req)
	if err != nil {
		var userErr *common.UserError
		if errors.As(err, &userErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": userErr.UserMessage})
			return
		}
		s.logger.Error("voice processing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "processing failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) parseVoiceRequest(c *gin.Context) (engine.Request, error) {
	contentType := c.ContentType()

	if strings.HasPrefix(contentType, "multipart/form-data") {
		return s.parseMultipart(c)
	}

	var body voiceJSONRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		return engine.Request{}, err
	}
	date, err := parseDate(body.Date)
	if err != nil {
		return engine.Request{}, err
	}
	return engine.Request{
		UserID: userIDOrDefault(body.UserID),
		Text:   body.Text,
		Date:   date,
	}, nil
}

func (s *Server) parseMultipart(c *gin.Context) (engine.Request, error) {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return engine.Request{}, errors.New("audio file is required")
	}
	if fileHeader.Size > maxAudioBytes {
		return engine.Request{}, errors.New("audio file too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return engine.Request{}, err
	}
	defer func() { _ = file.Close() }()

	audio, err := io.ReadAll(io.LimitReader(file, maxAudioBytes))
	if err != nil {
		return engine.Request{}, err
	}

	date, err := parseDate(c.PostForm("date"))
	if err != nil {
		return engine.Request{}, err
	}

	return engine.Request{
		UserID:   userIDOrDefault(c.PostForm("user_id")),
		Audio:    audio,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Date:     date,
	}, nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, errors.New("date must be in YYYY-MM-DD format")
	}
	return date, nil
}

func userIDOrDefault(userID string) string {
	if strings.TrimSpace(userID) == "" {
		return "default"
	}
	return userID
}
