package statistics

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/wal-g/tracelog"
)

type metrics struct {
	StreamsTotal           *prometheus.CounterVec
	DecompressedBytesTotal *prometheus.CounterVec
	DecodeFailuresTotal    *prometheus.CounterVec
}

var (
	MetricsPrefix = "xzreader_"

	Metrics = metrics{
		StreamsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricsPrefix + "streams_total",
				Help: "Number of decompressed streams produced.",
			},
			[]string{"format"},
		),
		DecompressedBytesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricsPrefix + "decompressed_bytes_total",
				Help: "Amount of decompressed bytes read by consumers.",
			},
			[]string{"format"},
		),
		DecodeFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricsPrefix + "decode_failures_total",
				Help: "Number of streams that could not be decompressed.",
			},
			[]string{"format"},
		),
	}

	// Only our own collectors: no process or go runtime metrics in the textfile.
	Registry = prometheus.NewRegistry()
)

func init() {
	Registry.MustRegister(Metrics.StreamsTotal)
	Registry.MustRegister(Metrics.DecompressedBytesTotal)
	Registry.MustRegister(Metrics.DecodeFailuresTotal)
}

func WriteStreamMetric(format string, decompressedBytes int64) {
	Metrics.StreamsTotal.WithLabelValues(format).Inc()
	Metrics.DecompressedBytesTotal.WithLabelValues(format).Add(float64(decompressedBytes))
}

func WriteDecodeFailureMetric(format string) {
	Metrics.DecodeFailuresTotal.WithLabelValues(format).Inc()
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
// An empty path disables the export.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	tracelog.DebugLogger.Printf("Writing metrics to %s", path)
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return errors.Wrapf(err, "failed to write metrics to '%s'", path)
	}
	return nil
}
