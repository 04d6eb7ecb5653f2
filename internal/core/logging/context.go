package logging

import "context"

type contextKey string

const (
	widgetKey    contextKey = "widget"
	requestIDKey contextKey = "request_id"
)

// WithWidget adds the id of the settings widget issuing a request.
func WithWidget(ctx context.Context, widget string) context.Context {
	return context.WithValue(ctx, widgetKey, widget)
}

// WithRequestID adds a preference request ID to the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetWidget returns the widget id, or empty string if not present.
func GetWidget(ctx context.Context) string {
	if w, ok := ctx.Value(widgetKey).(string); ok {
		return w
	}
	return ""
}

// GetRequestID returns the request ID, or empty string if not present.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
