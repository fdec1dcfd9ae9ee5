package services

import "context"

type contextKey string

const (
	datasetKey   contextKey = "dataset"
	assetKey     contextKey = "asset"
	requestIDKey contextKey = "request_id"
)

// WithDataset annotates context with the dataset label being processed.
func WithDataset(ctx context.Context, dataset string) context.Context {
	if dataset == "" {
		return ctx
	}
	return context.WithValue(ctx, datasetKey, dataset)
}

// DatasetFromContext returns the dataset label if present.
func DatasetFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(datasetKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithAsset annotates context with the asset identifier.
func WithAsset(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, assetKey, id)
}

// AssetFromContext returns the asset identifier if present.
func AssetFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(assetKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
