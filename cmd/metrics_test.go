package cmd

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lifewheel/internal/metrics"
)

func TestMetricsServerExposesPlayCounters(t *testing.T) {
	metrics.Default().PersistFailed()

	addr, stop, err := startMetricsServer("127.0.0.1:0", slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	defer stop()

	resp, err := http.Get("http://" + addr.String() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "lifewheel_entry_persist_failures_total")
}

func TestMetricsServerBadAddress(t *testing.T) {
	_, _, err := startMetricsServer("not-an-address", slog.New(slog.DiscardHandler))
	assert.Error(t, err)
}
