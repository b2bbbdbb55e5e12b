package verifier

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/erc7824/nitrolite/multisig/pkg/config"
	"github.com/erc7824/nitrolite/multisig/pkg/log"
	"github.com/erc7824/nitrolite/multisig/pkg/metrics"
	"github.com/erc7824/nitrolite/multisig/pkg/multisig"
	"github.com/erc7824/nitrolite/multisig/pkg/sign"
)

const tracerName = "github.com/erc7824/nitrolite/multisig/pkg/verifier"

// Item is one signature to check in a batch.
type Item struct {
	Signature multisig.MultiSignature
	Message   multisig.Lazy
	Account   multisig.AccountID
}

// Service verifies signatures under the configured policy, with logging, metrics and
// tracing around the multisig engine. It is safe for concurrent use.
type Service struct {
	engine      *multisig.Verifier
	enabled     map[sign.Type]bool
	legacy      bool
	concurrency int
	ss58Prefix  uint16

	logger  log.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithEngine replaces the default multisig verifier.
func WithEngine(v *multisig.Verifier) Option {
	return func(s *Service) { s.engine = v }
}

// WithTracer replaces the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

// New creates a Service. A nil m registers fresh metrics with a private registry.
func New(cfg *config.Config, logger log.Logger, m *metrics.Metrics, opts ...Option) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	if m == nil {
		m = metrics.NewWithRegistry(cfg.MetricsNamespace, prometheus.NewRegistry())
	}

	schemes, err := cfg.Schemes()
	if err != nil {
		return nil, err
	}
	enabled := make(map[sign.Type]bool, len(schemes))
	for _, t := range schemes {
		enabled[t] = true
	}

	concurrency := cfg.BatchConcurrency
	if concurrency < 1 {
		concurrency = 1
	}

	s := &Service{
		engine:      multisig.DefaultVerifier(),
		enabled:     enabled,
		legacy:      cfg.LegacyEnabled,
		concurrency: concurrency,
		ss58Prefix:  cfg.SS58Prefix,
		logger:      logger.WithName("verifier"),
		metrics:     m,
		tracer:      otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Verify reports whether sig is a valid signature of msg by who. Signatures under a
// disabled scheme are rejected without being checked.
func (s *Service) Verify(ctx context.Context, sig multisig.MultiSignature, msg multisig.Lazy, who multisig.AccountID) bool {
	scheme := sig.Type()
	ctx, span := s.tracer.Start(ctx, "multisig.verify", trace.WithAttributes(
		attribute.String("scheme", scheme.String()),
		attribute.String("account", who.SS58(s.ss58Prefix)),
	))
	defer span.End()
	logger := log.FromContext(log.SetContextLogger(ctx, s.logger))

	if !s.enabled[scheme] {
		logger.Warn("signature scheme disabled", "scheme", scheme, "account", who.SS58(s.ss58Prefix))
		s.metrics.RecordDisabled(scheme)
		span.SetAttributes(attribute.String("result", metrics.ResultDisabled))
		return false
	}

	start := time.Now()
	ok, cause := s.engine.VerifyDetailed(sig, msg, who)
	s.metrics.RecordVerification(scheme.String(), ok, time.Since(start))
	span.SetAttributes(attribute.Bool("valid", ok))

	if cause != nil {
		logger.Debug("signature rejected", "scheme", scheme, "account", who.SS58(s.ss58Prefix), "cause", cause)
	} else {
		logger.Debug("signature checked", "scheme", scheme, "account", who.SS58(s.ss58Prefix), "valid", ok)
	}
	return ok
}

// VerifyAny checks a legacy untagged signature, trying Sr25519 before Ed25519.
// It always fails when legacy signatures are disabled.
func (s *Service) VerifyAny(ctx context.Context, sig multisig.AnySignature, msg multisig.Lazy, signer sign.Sr25519Public) bool {
	ctx, span := s.tracer.Start(ctx, "multisig.verify_any", trace.WithAttributes(
		attribute.String("signer", signer.SS58(s.ss58Prefix)),
	))
	defer span.End()
	logger := log.FromContext(log.SetContextLogger(ctx, s.logger))

	if !s.legacy {
		logger.Warn("legacy signatures disabled", "signer", signer.SS58(s.ss58Prefix))
		s.metrics.Verifications.WithLabelValues(metrics.SchemeLegacy, metrics.ResultDisabled).Inc()
		return false
	}

	start := time.Now()
	accepted := s.engine.VerifyAnyDetailed(sig, msg, signer)
	ok := accepted != sign.TypeUnknown
	s.metrics.RecordVerification(metrics.SchemeLegacy, ok, time.Since(start))
	if accepted == sign.TypeEd25519 {
		s.metrics.LegacyFallbacks.Inc()
	}
	span.SetAttributes(attribute.Bool("valid", ok), attribute.String("accepted_as", accepted.String()))

	logger.Debug("legacy signature checked", "signer", signer.SS58(s.ss58Prefix), "valid", ok, "acceptedAs", accepted)
	return ok
}

// VerifyBatch verifies items concurrently and returns one result per item, in order.
// If ctx is cancelled before all items are checked it returns ctx.Err().
func (s *Service) VerifyBatch(ctx context.Context, items []Item) ([]bool, error) {
	batchID := uuid.NewString()
	ctx, span := s.tracer.Start(ctx, "multisig.verify_batch", trace.WithAttributes(
		attribute.String("batch_id", batchID),
		attribute.Int("items", len(items)),
	))
	defer span.End()
	logger := log.FromContext(log.SetContextLogger(ctx, s.logger.WithKV("batchId", batchID)))

	s.metrics.BatchSize.Observe(float64(len(items)))
	results := make([]bool, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, item := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.Verify(gctx, item.Signature, item.Message, item.Account)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Warn("batch aborted", "items", len(items), "err", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		logger.Warn("batch aborted", "items", len(items), "err", err)
		return nil, err
	}

	logger.Debug("batch verified", "items", len(items), "valid", countValid(results))
	return results, nil
}

// AllValid reports whether every result is true. An empty batch is valid.
func AllValid(results []bool) bool {
	for _, ok := range results {
		if !ok {
			return false
		}
	}
	return true
}

func countValid(results []bool) int {
	n := 0
	for _, ok := range results {
		if ok {
			n++
		}
	}
	return n
}
