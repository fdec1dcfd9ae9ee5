package logging

import (
	"context"
	"log/slog"

	"vqasset/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldDataset is the standardized key for dataset labels.
	FieldDataset = "dataset"
	// FieldAsset is the standardized key for asset identifiers.
	FieldAsset = "asset"
	// FieldWorkdir is the standardized key for asset scratch directories.
	FieldWorkdir = "workdir"
	// FieldCorrelationID is the standardized structured logging key for request correlation identifiers.
	FieldCorrelationID = "correlation_id"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if ds, ok := services.DatasetFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldDataset, ds))
	}
	if id, ok := services.AssetFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldAsset, id))
	}
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCorrelationID, rid))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
