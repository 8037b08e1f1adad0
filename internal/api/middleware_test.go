package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newChainedServer() (*MockStore, http.Handler) {
	mockStore := new(MockStore)
	server := &HTTPServer{store: mockStore, events: &recordingPublisher{}}
	return mockStore, server.Router(DefaultMiddlewares("https://games.example.com")...)
}

func TestCORS_Preflight(t *testing.T) {
	mockStore, h := newChainedServer()

	req := httptest.NewRequest(http.MethodOptions, "/games/1", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://games.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	mockStore.AssertNotCalled(t, "GetGame", mock.Anything, mock.Anything)
}

func TestRequestID(t *testing.T) {
	mockStore, h := newChainedServer()
	mockStore.On("GetGame", mock.Anything, int64(1)).Return(Game{ID: 1}, nil)

	t.Run("assigned when missing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/games/1", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, rec.Header().Get(middleware.RequestIDHeader), 36)
	})

	t.Run("kept when supplied", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/games/1", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-42")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "req-42", rec.Header().Get(middleware.RequestIDHeader))
	})
}

func TestBodySizeLimit(t *testing.T) {
	mockStore, h := newChainedServer()

	body := `{"name":"` + strings.Repeat("a", maxBodyBytes) + `","price":1}`
	req := httptest.NewRequest(http.MethodPost, "/games", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	mockStore.AssertNotCalled(t, "CreateGame", mock.Anything, mock.Anything)
}

func TestRecoverer(t *testing.T) {
	mockStore, h := newChainedServer()
	mockStore.On("GetGame", mock.Anything, int64(1)).Run(func(mock.Arguments) {
		panic("boom")
	}).Return(Game{}, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/games/1", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestBodySizeLimit_Chunked(t *testing.T) {
	mockStore, h := newChainedServer()

	body := `{"name":"` + strings.Repeat("a", maxBodyBytes) + `","price":1}`
	req := httptest.NewRequest(http.MethodPost, "/games", strings.NewReader(body))
	req.ContentLength = -1
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.JSONEq(t, `{"error":"request body too large"}`, rec.Body.String())
	mockStore.AssertNotCalled(t, "CreateGame", mock.Anything, mock.Anything)
}
