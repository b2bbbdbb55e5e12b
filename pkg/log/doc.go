// Package log is the structured logging layer of the module.
//
// Components receive a Logger explicitly, or pull one from a context with
// FromContext. ZapLogger is the production implementation and NoopLogger the one
// used where output is unwanted, for example in tests.
//
// When a logger is stored in a context that carries an OpenTelemetry span, it is
// wrapped in a SpanLogger: each entry is then also added to the span as an event, and
// entries at error level set the span status to Error. Log lines written this way
// carry trace_id and span_id fields.
//
//	logger := log.NewZapLogger(log.Config{Format: "logfmt", Level: log.LevelDebug})
//	ctx = log.SetContextLogger(ctx, logger.WithName("verifier"))
//
//	log.FromContext(ctx).Debug("signature checked", "scheme", sign.TypeSr25519, "valid", true)
//
// Config carries env tags for cleanenv: MULTISIG_LOG_FORMAT (console, logfmt or json),
// MULTISIG_LOG_LEVEL and MULTISIG_LOG_OUTPUT (stderr, stdout or a file path).
package log
