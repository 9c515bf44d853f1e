package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

// The CLI stores its configured logger in the command context. Work on a
// single component narrows it with WithComponent so every entry names the file.

type (
	loggerKey    struct{}
	componentKey struct{}
)

// WithLogger returns ctx carrying logger.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger carried by ctx, or Default when there is none.
func FromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(loggerKey{}).(*log.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}

// WithComponent scopes ctx to the component at path: its logger gains a path
// field. Scoping an already scoped context to the same path is a no-op.
func WithComponent(ctx context.Context, path string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if ComponentPath(ctx) == path {
		return ctx
	}
	ctx = context.WithValue(ctx, componentKey{}, path)
	return WithLogger(ctx, FromContext(ctx).With(FieldPath, path))
}

// ComponentPath returns the path ctx was scoped to, or "".
func ComponentPath(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	path, _ := ctx.Value(componentKey{}).(string)
	return path
}
