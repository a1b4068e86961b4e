package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestServerQueryFailure(t *testing.T) {
	c := &config{dbDir: t.TempDir(), separator: "."}
	db, err := openDB(c, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, db.Close())

	h := NewServer(db, zap.NewNop()).Handler(prometheus.NewRegistry())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/query?q=name+%3D%3D+%22x%22", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServer(t *testing.T) {
	c := &config{dbDir: t.TempDir(), separator: "."}
	db, err := openDB(c, zap.NewNop())
	require.NoError(t, err)
	defer db.Close()

	h := NewServer(db, zap.NewNop()).Handler(prometheus.NewRegistry())
	do := func(method, target, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	var created struct {
		ID string `json:"id"`
	}

	t.Run("PutDoc", func(t *testing.T) {
		rec := do(http.MethodPost, "/docs", `{"name": "bernard", "address": {"code": 3000}}`)
		require.Equal(t, http.StatusCreated, rec.Code)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		require.NotEmpty(t, created.ID)

		rec = do(http.MethodPost, "/docs", `[1]`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		rec = do(http.MethodPost, "/docs", `{"a": `)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("GetDoc", func(t *testing.T) {
		rec := do(http.MethodGet, "/docs/"+created.ID, "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"id":"`+created.ID+`","doc":{"name":"bernard","address.code":3000}}`, rec.Body.String())

		rec = do(http.MethodGet, "/docs/00000000-0000-0000-0000-000000000000", "")
		require.Equal(t, http.StatusNotFound, rec.Code)

		rec = do(http.MethodGet, "/docs/foo", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("FindDocs", func(t *testing.T) {
		rec := do(http.MethodGet, "/docs?path=name&path=address.code", "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `["`+created.ID+`"]`, rec.Body.String())

		rec = do(http.MethodGet, "/docs", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Query", func(t *testing.T) {
		rec := do(http.MethodGet, "/query?q=address.code+%3E+1000&limit=10", "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `[{"id":"`+created.ID+`","doc":{"name":"bernard","address.code":3000}}]`, rec.Body.String())

		rec = do(http.MethodGet, "/query?q=address.code+%3E+1000&limit=x", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)

		rec = do(http.MethodGet, "/query?q=%28name+%3D%3D+%22bernard%22", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("DeleteDoc", func(t *testing.T) {
		rec := do(http.MethodDelete, "/docs/"+created.ID, "")
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = do(http.MethodDelete, "/docs/"+created.ID, "")
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Metrics", func(t *testing.T) {
		rec := do(http.MethodGet, "/metrics", "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "flatdoc_http_requests_total")
	})
}
