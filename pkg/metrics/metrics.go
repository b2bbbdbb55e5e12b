// Package metrics defines the Prometheus metrics exported by the verification service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/erc7824/nitrolite/multisig/pkg/sign"
)

// Values of the "result" label.
const (
	ResultValid    = "valid"
	ResultInvalid  = "invalid"
	ResultDisabled = "disabled"
)

// SchemeLegacy labels verifications of the untagged legacy signature.
const SchemeLegacy = "legacy"

// Metrics holds the verification metrics.
type Metrics struct {
	// Verifications counts checked signatures by scheme and result.
	Verifications *prometheus.CounterVec
	// VerificationDuration observes the time spent in a single verification by scheme.
	VerificationDuration *prometheus.HistogramVec
	// BatchSize observes the number of items per batch.
	BatchSize prometheus.Histogram
	// LegacyFallbacks counts legacy signatures accepted only as Ed25519.
	LegacyFallbacks prometheus.Counter
}

// New registers the metrics with the default registerer.
func New(namespace string) *Metrics {
	return NewWithRegistry(namespace, nil)
}

// NewWithRegistry registers the metrics with registry, or the default registerer if nil.
func NewWithRegistry(namespace string, registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		Verifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verifications_total",
			Help:      "The total number of signature verifications",
		}, []string{"scheme", "result"}),
		VerificationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "verification_duration_seconds",
			Help:      "Time spent verifying a single signature",
			Buckets:   []float64{.00001, .000025, .00005, .0001, .00025, .0005, .001, .0025, .005, .01},
		}, []string{"scheme"}),
		BatchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of signatures per verification batch",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		LegacyFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "legacy_fallbacks_total",
			Help:      "The total number of legacy signatures that verified as ed25519 after failing as sr25519",
		}),
	}
}

// RecordVerification counts one verification under scheme and observes its duration.
func (m *Metrics) RecordVerification(scheme string, valid bool, elapsed time.Duration) {
	result := ResultInvalid
	if valid {
		result = ResultValid
	}
	m.Verifications.WithLabelValues(scheme, result).Inc()
	m.VerificationDuration.WithLabelValues(scheme).Observe(elapsed.Seconds())
}

// RecordDisabled counts a signature refused because its scheme is disabled.
func (m *Metrics) RecordDisabled(t sign.Type) {
	m.Verifications.WithLabelValues(t.String(), ResultDisabled).Inc()
}
