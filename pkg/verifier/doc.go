// Package verifier exposes the multisig engine as a service: scheme policy from
// configuration, structured logs, Prometheus metrics, OpenTelemetry spans and
// concurrent batch verification.
//
//	cfg, err := config.Load(logger)
//	if err != nil {
//	    return err
//	}
//	svc, err := verifier.New(cfg, logger, metrics.New(cfg.MetricsNamespace))
//	if err != nil {
//	    return err
//	}
//
//	results, err := svc.VerifyBatch(ctx, items)
//	if err != nil {
//	    return err
//	}
//	if !verifier.AllValid(results) {
//	    return errors.New("batch contains an invalid signature")
//	}
package verifier
