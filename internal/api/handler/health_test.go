package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesk14/helpdesk/internal/api/handler"
)

type stubPinger struct {
	err error
}

func (p *stubPinger) Ping(context.Context) error { return p.err }

func TestHealth_Healthy(t *testing.T) {
	h := handler.NewHealthHandler(&stubPinger{}, "1.2.3")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Data struct {
			Status   string `json:"status"`
			Version  string `json:"version"`
			Database struct {
				Connected bool `json:"connected"`
			} `json:"database"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	assert.Equal(t, "healthy", env.Data.Status)
	assert.Equal(t, "1.2.3", env.Data.Version)
	assert.True(t, env.Data.Database.Connected)
}

func TestHealth_Degraded(t *testing.T) {
	h := handler.NewHealthHandler(&stubPinger{err: errors.New("connection refused")}, "1.2.3")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "degraded", env.Data.Status)
}
