package safe

import (
	"context"
	"io"
	"log/slog"

	"github.com/secmon-lab/nudger/pkg/utils/logging"
)

// Close safely closes an io.Closer and logs any errors.
// It handles nil closers gracefully.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Error("Failed to close", slog.Any("error", err))
	}
}

// MaxDrainSize caps how much of a remaining body Drain reads before closing
const MaxDrainSize = 64 << 10

// Drain discards up to MaxDrainSize bytes of r so the underlying connection
// can be reused, then closes it. A longer body is closed without reuse.
func Drain(ctx context.Context, r io.ReadCloser) {
	if r == nil {
		return
	}
	if _, err := io.Copy(io.Discard, io.LimitReader(r, MaxDrainSize)); err != nil {
		logging.From(ctx).Debug("Failed to drain", slog.Any("error", err))
	}
	Close(ctx, r)
}
