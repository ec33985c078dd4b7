package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxpense/vocal/internal/budget"
	"github.com/voxpense/vocal/internal/classify"
	"github.com/voxpense/vocal/internal/common"
	"github.com/voxpense/vocal/internal/engine"
	"github.com/voxpense/vocal/internal/model"
	"github.com/voxpense/vocal/internal/server"
	"github.com/voxpense/vocal/internal/testutil"
)

type stubTranscriber struct {
	err  error
	text string
}

func (s *stubTranscriber) Transcribe(_ context.Context, _ []byte, _ string) (string, string, error) {
	return s.text, "stub", s.err
}

type stubExtractor struct{}

func (stubExtractor) Extract(_ context.Context, _ string) ([]model.CandidateItem, error) {
	return nil, common.ErrExtractionInvalid
}

func newTestServer(t *testing.T, transcriber engine.Transcriber) *server.Server {
	t.Helper()
	store := testutil.SetupTestDB(t)
	eng := engine.New(
		store,
		transcriber,
		stubExtractor{},
		classify.NewClassifier(store, nil),
		budget.NewEvaluator(store, nil),
		nil,
	)
	return server.New(eng, nil)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubTranscriber{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestVoiceJSONText(t *testing.T) {
	srv := newTestServer(t, &stubTranscriber{})

	body := `{"text": "coffee 5 dollars", "user_id": "u1", "date": "2025-04-10"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/voice", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result model.VoiceResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Expenses, 1)
	assert.Equal(t, "Coffee", result.Expenses[0].Description)
	assert.InDelta(t, 5.0, result.Expenses[0].Amount, 0.001)
}

func TestVoiceMultipartAudio(t *testing.T) {
	srv := newTestServer(t, &stubTranscriber{text: "taxi 12"})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("audio", "note.wav")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake audio"))
	require.NoError(t, err)
	require.NoError(t, w.WriteField("user_id", "u1"))
	require.NoError(t, w.WriteField("date", "2025-04-10"))
	require.NoError(t, w.Close())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/voice", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result model.VoiceResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "taxi 12", result.Transcription)
	require.Len(t, result.Expenses, 1)
	assert.Equal(t, "Taxi", result.Expenses[0].Description)
}

func TestVoiceMultipartMissingAudio(t *testing.T) {
	srv := newTestServer(t, &stubTranscriber{})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("user_id", "u1"))
	require.NoError(t, w.Close())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/voice", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "audio file is required")
}

func TestVoiceBadDate(t *testing.T) {
	srv := newTestServer(t, &stubTranscriber{})

	body := `{"text": "coffee 5", "date": "April 10th"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/voice", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "YYYY-MM-DD")
}

func TestVoiceTranscriptionFailureReturns422(t *testing.T) {
	srv := newTestServer(t, &stubTranscriber{err: common.ErrTranscriptionFailed})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("audio", "note.wav")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake audio"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/voice", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "manual entry")
}
