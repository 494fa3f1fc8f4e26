package statistics_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/datapipe/xzreader/internal/statistics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteStreamMetric(t *testing.T) {
	streams := testutil.ToFloat64(statistics.Metrics.StreamsTotal.WithLabelValues("lz"))
	bytes := testutil.ToFloat64(statistics.Metrics.DecompressedBytesTotal.WithLabelValues("lz"))

	statistics.WriteStreamMetric("lz", 42)

	assert.Equal(t, streams+1, testutil.ToFloat64(statistics.Metrics.StreamsTotal.WithLabelValues("lz")))
	assert.Equal(t, bytes+42, testutil.ToFloat64(statistics.Metrics.DecompressedBytesTotal.WithLabelValues("lz")))
}

func TestWriteDecodeFailureMetric(t *testing.T) {
	before := testutil.ToFloat64(statistics.Metrics.DecodeFailuresTotal.WithLabelValues("lz"))
	statistics.WriteDecodeFailureMetric("lz")
	assert.Equal(t, before+1, testutil.ToFloat64(statistics.Metrics.DecodeFailuresTotal.WithLabelValues("lz")))
}

func TestWriteTextfile(t *testing.T) {
	statistics.WriteStreamMetric("xz", 5)
	path := filepath.Join(t.TempDir(), "xzreader.prom")

	require.NoError(t, statistics.WriteTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `xzreader_streams_total{format="xz"}`)
	assert.NotContains(t, string(content), "go_goroutines")
}

func TestWriteTextfile_EmptyPathIsNoop(t *testing.T) {
	assert.NoError(t, statistics.WriteTextfile(""))
}
