package safe

import (
	"context"
	"io"
	"log/slog"

	"github.com/secmon-lab/jsmconf/pkg/utils/logging"
)

// Close closes an io.Closer and logs the error instead of returning it.
// A nil closer is ignored.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Warn("Failed to close", slog.Any("error", err))
	}
}
