package httptransport

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewServerAppliesConfig(t *testing.T) {
	cfg := DefaultServerConfig(":8501")
	srv := NewServer(cfg, http.NotFoundHandler())

	require.Equal(t, ":8501", srv.Addr)
	require.Equal(t, cfg.ReadTimeout, srv.ReadTimeout)
	require.Equal(t, cfg.WriteTimeout, srv.WriteTimeout)
	require.Equal(t, cfg.IdleTimeout, srv.IdleTimeout)
}

func TestRequestLoggerRecordsStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := RequestLogger(zap.New(core), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/runs", nil))

	require.Equal(t, http.StatusTeapot, rr.Code)
	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "POST", fields["method"])
	require.Equal(t, "/v1/runs", fields["path"])
	require.EqualValues(t, http.StatusTeapot, fields["status"])
}
