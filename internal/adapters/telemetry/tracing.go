// Package telemetry installs the OpenTelemetry tracer provider used by the
// tutoring session spans.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterFile   = "file"
)

var ErrUnknownExporter = errors.New("unknown trace exporter")

type Config struct {
	Exporter       string `mapstructure:"exporter" validate:"omitempty,oneof=none stdout file"`
	Path           string `mapstructure:"path"`
	ServiceVersion string `mapstructure:"-"`
}

// ShutdownFunc flushes pending spans and releases the exporter.
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Init builds a provider from cfg and installs it globally. With the "none"
// exporter the global no-op provider is left in place.
func Init(cfg Config) (ShutdownFunc, error) {
	provider, shutdown, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	if provider != nil {
		otel.SetTracerProvider(provider)
	}
	return shutdown, nil
}

// NewProvider returns a nil provider for the "none" exporter.
func NewProvider(cfg Config) (*sdktrace.TracerProvider, ShutdownFunc, error) {
	var (
		out    io.Writer
		closer io.Closer
	)

	switch cfg.Exporter {
	case "", ExporterNone:
		return nil, noopShutdown, nil
	case ExporterStdout:
		out = os.Stdout
	case ExporterFile:
		if cfg.Path == "" {
			return nil, nil, errors.New("trace file path is empty")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o700); err != nil {
			return nil, nil, fmt.Errorf("create trace directory: %w", err)
		}
		file, err := os.OpenFile(cfg.Path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open trace file: %w", err)
		}
		out, closer = file, file
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownExporter, cfg.Exporter)
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(out))
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, nil, fmt.Errorf("create trace exporter: %w", err)
	}

	version := cfg.ServiceVersion
	if version == "" {
		version = "dev"
	}
	res := resource.NewWithAttributes(
		"",
		attribute.String("service.name", "sparky"),
		attribute.String("service.version", version),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	shutdown := func(ctx context.Context) error {
		err := provider.Shutdown(ctx)
		if closer != nil {
			if closeErr := closer.Close(); closeErr != nil {
				err = errors.Join(err, fmt.Errorf("close trace file: %w", closeErr))
			}
		}
		return err
	}

	return provider, shutdown, nil
}
