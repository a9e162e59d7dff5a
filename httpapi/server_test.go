package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tourguide "github.com/locatour/tourguide"
)

func testServer(t *testing.T) http.Handler {
	t.Helper()
	assistant, err := tourguide.NewAssistant(tourguide.WithSessionTimeout(time.Hour))
	require.NoError(t, err)
	t.Cleanup(func() { assistant.Close() })
	return NewServer(assistant).Routes()
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reqBody *strings.Reader
	if body == "" {
		reqBody = strings.NewReader("")
	} else {
		reqBody = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reqBody)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Body.String(), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestChatEndpoint(t *testing.T) {
	handler := testServer(t)

	t.Run("successful chat", func(t *testing.T) {
		rec, body := doJSON(t, handler, http.MethodPost, "/chat",
			`{"message": "beaches in Pagudpud"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, body["session_id"])
		assert.NotEmpty(t, body["response"])
	})

	t.Run("empty message", func(t *testing.T) {
		rec, body := doJSON(t, handler, http.MethodPost, "/chat", `{"message": "  "}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.NotEmpty(t, body["error"])
	})

	t.Run("malformed body", func(t *testing.T) {
		rec, _ := doJSON(t, handler, http.MethodPost, "/chat", `{`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("session is reused", func(t *testing.T) {
		_, first := doJSON(t, handler, http.MethodPost, "/chat",
			`{"session_id": "web-1", "message": "empanada in Batac"}`)
		assert.Equal(t, "web-1", first["session_id"])

		rec, _ := doJSON(t, handler, http.MethodGet, "/sessions/web-1/summary", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var summary map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
		assert.EqualValues(t, 1, summary["turn_count"])
	})
}

func TestResetEndpoint(t *testing.T) {
	handler := testServer(t)

	doJSON(t, handler, http.MethodPost, "/chat",
		`{"session_id": "web-r", "message": "beaches in Pagudpud"}`)

	rec, body := doJSON(t, handler, http.MethodPost, "/sessions/web-r/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "reset", body["status"])

	rec, _ = doJSON(t, handler, http.MethodGet, "/sessions/web-r/summary", "")
	var summary map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.EqualValues(t, 0, summary["turn_count"])
}

func TestHistoryEndpoint(t *testing.T) {
	handler := testServer(t)

	doJSON(t, handler, http.MethodPost, "/chat",
		`{"session_id": "web-h", "message": "where can I eat bagnet?"}`)

	req := httptest.NewRequest(http.MethodGet, "/sessions/web-h/history", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
}

func TestRouteEndpoint(t *testing.T) {
	handler := testServer(t)

	t.Run("plans a route", func(t *testing.T) {
		rec, body := doJSON(t, handler, http.MethodGet,
			"/route?lat=18.1984&lon=120.5936&destination_id=TS01", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Saud Beach", body["destination_name"])
	})

	t.Run("missing params", func(t *testing.T) {
		rec, _ := doJSON(t, handler, http.MethodGet, "/route?lat=18.0", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown destination", func(t *testing.T) {
		rec, _ := doJSON(t, handler, http.MethodGet,
			"/route?lat=18.0&lon=120.5&destination_id=nope", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestNearbyEndpoint(t *testing.T) {
	handler := testServer(t)

	t.Run("finds nearby places", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/nearby?lat=18.1984&lon=120.5936&radius_km=10", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var places []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &places))
		assert.NotEmpty(t, places)
	})

	t.Run("invalid radius", func(t *testing.T) {
		rec, _ := doJSON(t, handler, http.MethodGet, "/nearby?lat=18&lon=120&radius_km=abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHealthEndpoint(t *testing.T) {
	handler := testServer(t)
	rec, body := doJSON(t, handler, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}
