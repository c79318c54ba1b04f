package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/kbukum/asrdrop/bootstrap"
	"github.com/kbukum/asrdrop/logger"
	"github.com/kbukum/asrdrop/observability"
	"github.com/kbukum/asrdrop/provider"
	"github.com/kbukum/asrdrop/transcription"
	"github.com/kbukum/asrdrop/transcription/sensevoice"
)

// setupTelemetry installs the OTLP tracer and meter providers when export is
// enabled and registers their shutdown. It returns the invocation metrics,
// which record against the no-op meter when export is off.
func setupTelemetry(ctx context.Context, app *bootstrap.App[*AppConfig]) (*observability.Metrics, error) {
	cfg := app.Cfg
	if cfg.Observability.Enabled {
		tp, err := observability.InitTracer(ctx, cfg.Observability.TracerConfig(cfg.Name, cfg.Version, cfg.Environment))
		if err != nil {
			return nil, err
		}
		mp, err := observability.InitMeter(ctx, cfg.Observability.MeterConfig(cfg.Name, cfg.Version, cfg.Environment))
		if err != nil {
			_ = tp.Shutdown(ctx)
			return nil, err
		}
		app.OnStop(func(ctx context.Context) error {
			return errors.Join(mp.Shutdown(ctx), tp.Shutdown(ctx))
		})
	}

	metrics, err := observability.NewMetrics(observability.Meter())
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	return metrics, nil
}

// newProvider builds the SenseVoice provider through the transcription
// registry and wraps it with tracing, logging and metrics. The registry is
// closed on shutdown.
func newProvider(app *bootstrap.App[*AppConfig], metrics *observability.Metrics) (transcription.Provider, error) {
	reg := transcription.NewRegistry()
	reg.RegisterFactory(sensevoice.ProviderName, sensevoice.Factory(
		sensevoice.WithLogger(app.Logger),
	))

	asr := app.Cfg.ASR
	p, err := reg.GetOrCreate(sensevoice.ProviderName, map[string]any{
		"url":       asr.URL,
		"input_dir": asr.InputDir,
		"timeout":   asr.Timeout,
		"tls":       asr.TLS,
	})
	if err != nil {
		return nil, err
	}
	app.OnStop(closeRegistry(reg))

	app.Logger.Info("Provider ready", logger.Fields(
		"provider", p.Name(),
		"url", asr.URL,
		"input_dir", asr.InputDir,
		"timeout", asr.Timeout.String(),
	))
	return instrument(p, app.Logger, metrics), nil
}

func instrument(p transcription.Provider, log *logger.Logger, metrics *observability.Metrics) transcription.Provider {
	return transcription.Chain(
		transcription.WithTracing(),
		transcription.WithLogging(log.WithComponent("transcription")),
		transcription.WithMetrics(metrics),
	)(p)
}

func closeRegistry(reg *provider.Registry[transcription.Provider]) bootstrap.Hook {
	return func(ctx context.Context) error {
		return reg.Close(ctx)
	}
}
