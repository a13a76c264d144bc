package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys for dataset operations.
const (
	AttrDatasetPath = "dataset.path"
	AttrDatasetKind = "dataset.kind"
	AttrDatasetRows = "dataset.rows"
	AttrDatasetCols = "dataset.cols"
)

// StartLoad begins a span covering an initial dataset load.
func StartLoad(ctx context.Context, tracer trace.Tracer, path, kind string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "dataset.load", trace.WithAttributes(
		attribute.String(AttrDatasetPath, path),
		attribute.String(AttrDatasetKind, kind),
	))
}

// StartReload begins a span covering a watcher-triggered reload.
func StartReload(ctx context.Context, tracer trace.Tracer, path string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "dataset.reload", trace.WithAttributes(
		attribute.String(AttrDatasetPath, path),
	))
}

// EndLoad records the resulting dataset shape and closes the span.
func EndLoad(span trace.Span, rows, cols int) {
	span.SetAttributes(
		attribute.Int(AttrDatasetRows, rows),
		attribute.Int(AttrDatasetCols, cols),
	)
	span.End()
}
