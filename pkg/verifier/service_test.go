package verifier_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/erc7824/nitrolite/multisig/pkg/config"
	"github.com/erc7824/nitrolite/multisig/pkg/log"
	"github.com/erc7824/nitrolite/multisig/pkg/metrics"
	"github.com/erc7824/nitrolite/multisig/pkg/multisig"
	"github.com/erc7824/nitrolite/multisig/pkg/sign"
	"github.com/erc7824/nitrolite/multisig/pkg/verifier"
)

const (
	testEd25519Seed        = "0x9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"
	aliceSr25519MiniSecret = "0xe5be9a5092b81bca64be81d212e7f2f9eba183bb7a90954f7b76361f6edb5c0a"
	aliceEcdsaPrivKey      = "0xcb6df9de1efca7a3998a8ead4e02159d5fa99c3e0d4fd6432667390bb4726854"
)

var testMessage = []byte("transfer 100 units")

func testConfig() *config.Config {
	return &config.Config{
		EnabledSchemes:   []string{"ed25519", "sr25519", "ecdsa"},
		LegacyEnabled:    true,
		BatchConcurrency: 4,
		SS58Prefix:       42,
		MetricsNamespace: "test",
	}
}

type testEnv struct {
	svc     *verifier.Service
	metrics *metrics.Metrics
}

func setupService(t *testing.T, cfg *config.Config, opts ...verifier.Option) testEnv {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(cfg.MetricsNamespace, reg)
	svc, err := verifier.New(cfg, log.NewNoopLogger(), m, opts...)
	require.NoError(t, err)
	return testEnv{svc: svc, metrics: m}
}

func (e testEnv) count(scheme, result string) float64 {
	return testutil.ToFloat64(e.metrics.Verifications.WithLabelValues(scheme, result))
}

// signedItems returns one valid item per scheme, in discriminant order.
func signedItems(t *testing.T, msg []byte) []verifier.Item {
	t.Helper()

	ed, err := sign.NewEd25519Signer(testEd25519Seed)
	require.NoError(t, err)
	sr, err := sign.NewSr25519Signer(aliceSr25519MiniSecret)
	require.NoError(t, err)
	ec, err := sign.NewEcdsaSigner(aliceEcdsaPrivKey)
	require.NoError(t, err)

	srSig, err := sr.SignSr25519(msg)
	require.NoError(t, err)
	ecSig, err := ec.SignEcdsa(msg)
	require.NoError(t, err)

	return []verifier.Item{
		{
			Signature: multisig.SignatureFromEd25519(ed.SignEd25519(msg)),
			Message:   multisig.Message(msg),
			Account:   multisig.SignerFromEd25519(ed.Public()).IntoAccount(),
		},
		{
			Signature: multisig.SignatureFromSr25519(srSig),
			Message:   multisig.Message(msg),
			Account:   multisig.SignerFromSr25519(sr.Public()).IntoAccount(),
		},
		{
			Signature: multisig.SignatureFromEcdsa(ecSig),
			Message:   multisig.Message(msg),
			Account:   multisig.SignerFromEcdsa(ec.Public()).IntoAccount(),
		},
	}
}

func TestNew(t *testing.T) {
	t.Run("Nil config", func(t *testing.T) {
		_, err := verifier.New(nil, log.NewNoopLogger(), nil)
		assert.Error(t, err)
	})

	t.Run("Unknown scheme", func(t *testing.T) {
		cfg := testConfig()
		cfg.EnabledSchemes = []string{"ed25519", "rsa"}
		_, err := verifier.New(cfg, log.NewNoopLogger(), nil)
		assert.ErrorIs(t, err, sign.ErrUnsupportedType)
	})

	t.Run("Defaults for logger and metrics", func(t *testing.T) {
		svc, err := verifier.New(testConfig(), nil, nil)
		require.NoError(t, err)
		item := signedItems(t, testMessage)[0]
		assert.True(t, svc.Verify(context.Background(), item.Signature, item.Message, item.Account))
	})
}

func TestServiceVerify(t *testing.T) {
	env := setupService(t, testConfig())
	ctx := context.Background()

	for _, item := range signedItems(t, testMessage) {
		scheme := item.Signature.Type().String()
		t.Run(scheme, func(t *testing.T) {
			assert.True(t, env.svc.Verify(ctx, item.Signature, item.Message, item.Account))
			assert.False(t, env.svc.Verify(ctx, item.Signature, multisig.Message([]byte("tampered")), item.Account))

			assert.Equal(t, 1.0, env.count(scheme, metrics.ResultValid))
			assert.Equal(t, 1.0, env.count(scheme, metrics.ResultInvalid))
		})
	}

	assert.Equal(t, 3, testutil.CollectAndCount(env.metrics.VerificationDuration))
}

func TestServiceVerifyDisabledScheme(t *testing.T) {
	cfg := testConfig()
	cfg.EnabledSchemes = []string{"sr25519"}

	edMock := sign.NewMockScheme(sign.TypeEd25519)
	env := setupService(t, cfg, verifier.WithEngine(multisig.NewVerifier(multisig.WithEd25519(edMock))))

	item := signedItems(t, testMessage)[0]
	assert.False(t, env.svc.Verify(context.Background(), item.Signature, item.Message, item.Account))

	assert.Empty(t, edMock.Calls())
	assert.Equal(t, 1.0, env.count("ed25519", metrics.ResultDisabled))
	assert.Equal(t, 0.0, env.count("ed25519", metrics.ResultValid))
}

func TestServiceVerifyZeroSignature(t *testing.T) {
	env := setupService(t, testConfig())
	assert.False(t, env.svc.Verify(context.Background(), multisig.MultiSignature{}, multisig.Message(testMessage), multisig.AccountID{}))
	assert.Equal(t, 1.0, env.count("unknown", metrics.ResultDisabled))
}

func TestServiceVerifyEcdsaRecoveryFailure(t *testing.T) {
	env := setupService(t, testConfig())
	item := signedItems(t, testMessage)[2]

	raw, err := item.Signature.Ecdsa()
	require.NoError(t, err)
	raw[64] = 9

	assert.False(t, env.svc.Verify(context.Background(), multisig.SignatureFromEcdsa(raw), item.Message, item.Account))
	assert.Equal(t, 1.0, env.count("ecdsa", metrics.ResultInvalid))
}

func TestServiceVerifyAny(t *testing.T) {
	ed, err := sign.NewEd25519Signer(testEd25519Seed)
	require.NoError(t, err)
	sr, err := sign.NewSr25519Signer(aliceSr25519MiniSecret)
	require.NoError(t, err)

	srSig, err := sr.SignSr25519(testMessage)
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("Enabled", func(t *testing.T) {
		env := setupService(t, testConfig())

		assert.True(t, env.svc.VerifyAny(ctx, multisig.AnySignatureFromSr25519(srSig), multisig.Message(testMessage), sr.Public()))
		assert.Equal(t, 0.0, testutil.ToFloat64(env.metrics.LegacyFallbacks))

		edSig := multisig.AnySignatureFromEd25519(ed.SignEd25519(testMessage))
		assert.True(t, env.svc.VerifyAny(ctx, edSig, multisig.Message(testMessage), sign.Sr25519Public(ed.Public())))
		assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.LegacyFallbacks))

		assert.False(t, env.svc.VerifyAny(ctx, edSig, multisig.Message([]byte("tampered")), sign.Sr25519Public(ed.Public())))

		assert.Equal(t, 2.0, env.count(metrics.SchemeLegacy, metrics.ResultValid))
		assert.Equal(t, 1.0, env.count(metrics.SchemeLegacy, metrics.ResultInvalid))
	})

	t.Run("Disabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.LegacyEnabled = false
		env := setupService(t, cfg)

		assert.False(t, env.svc.VerifyAny(ctx, multisig.AnySignatureFromSr25519(srSig), multisig.Message(testMessage), sr.Public()))
		assert.Equal(t, 1.0, env.count(metrics.SchemeLegacy, metrics.ResultDisabled))
	})
}

func TestServiceVerifyBatch(t *testing.T) {
	env := setupService(t, testConfig())
	items := signedItems(t, testMessage)

	bad := items[1]
	bad.Message = multisig.Message([]byte("tampered"))
	items = append(items, bad, items[0])

	results, err := env.svc.VerifyBatch(context.Background(), items)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, true, false, true}, results)
	assert.False(t, verifier.AllValid(results))
	assert.True(t, verifier.AllValid(results[:3]))
	assert.Equal(t, 1, testutil.CollectAndCount(env.metrics.BatchSize))

	t.Run("Empty", func(t *testing.T) {
		results, err := env.svc.VerifyBatch(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, results)
		assert.True(t, verifier.AllValid(results))
	})
}

func TestServiceVerifyBatchCancellation(t *testing.T) {
	items := signedItems(t, testMessage)

	t.Run("Cancelled before start", func(t *testing.T) {
		env := setupService(t, testConfig())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		results, err := env.svc.VerifyBatch(ctx, items)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, results)
	})

	t.Run("Cancelled while running", func(t *testing.T) {
		cfg := testConfig()
		cfg.BatchConcurrency = 1
		env := setupService(t, cfg)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		batch := make([]verifier.Item, 0, 10)
		for i := 0; i < 10; i++ {
			item := items[i%len(items)]
			if i == 0 {
				msg := item.Message
				item.Message = func() []byte {
					cancel()
					return msg()
				}
			}
			batch = append(batch, item)
		}

		results, err := env.svc.VerifyBatch(ctx, batch)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, results)
	})
}

func TestServiceVerifyBatchConcurrencyLimit(t *testing.T) {
	var inFlight, peak atomic.Int32
	mock := sign.NewMockScheme(sign.TypeSr25519)
	mock.Accept = func(sig, msg, pub []byte) bool {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		inFlight.Add(-1)
		return true
	}

	cfg := testConfig()
	cfg.BatchConcurrency = 2
	env := setupService(t, cfg, verifier.WithEngine(multisig.NewVerifier(multisig.WithSr25519(mock))))

	items := make([]verifier.Item, 16)
	for i := range items {
		items[i] = verifier.Item{
			Signature: multisig.SignatureFromSr25519(sign.Sr25519Signature{byte(i)}),
			Message:   multisig.Message(testMessage),
		}
	}

	results, err := env.svc.VerifyBatch(context.Background(), items)
	require.NoError(t, err)
	assert.True(t, verifier.AllValid(results))
	assert.LessOrEqual(t, peak.Load(), int32(2))
	assert.Equal(t, 16, mock.CallCount("verify"))
}

func TestServiceTracing(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	cfg := testConfig()
	cfg.EnabledSchemes = []string{"sr25519", "ecdsa"}
	env := setupService(t, cfg, verifier.WithTracer(provider.Tracer("test")))

	items := signedItems(t, testMessage)
	_, err := env.svc.VerifyBatch(context.Background(), items)
	require.NoError(t, err)

	spans := recorder.Ended()
	names := make(map[string]int)
	for _, span := range spans {
		names[span.Name()]++
	}
	assert.Equal(t, 1, names["multisig.verify_batch"])
	assert.Equal(t, 3, names["multisig.verify"])

	var disabledEvents int
	for _, span := range spans {
		if span.Name() != "multisig.verify" {
			continue
		}
		for _, ev := range span.Events() {
			if ev.Name == "signature scheme disabled" {
				disabledEvents++
			}
		}
	}
	assert.Equal(t, 1, disabledEvents)
}

func TestAllValid(t *testing.T) {
	assert.True(t, verifier.AllValid(nil))
	assert.True(t, verifier.AllValid([]bool{true, true}))
	assert.False(t, verifier.AllValid([]bool{true, false}))
}
