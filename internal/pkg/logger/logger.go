package logger

import (
	"io"
	"log/slog"

	"github.com/go-chi/httplog/v3"
)

// New returns a JSON logger using the ECS field names that the request logger emits.
func New(w io.Writer, level slog.Level, env string) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(env != "development")
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "wage-tracker"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)
}
