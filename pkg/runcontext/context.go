package runcontext

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type KeyContext string

var (
	keyRunID     KeyContext = "run_id"
	keyStage     KeyContext = "stage"
	keyStartTime KeyContext = "run_start_time"
)

// RunBegin initializes a pipeline run context with a run id and deadline.
// The deadline is the only cancellation mechanism for a run; batch
// components observe ctx.Done() between items but never cancel mid-item.
func RunBegin(parentCtx context.Context, runID string, timeout time.Duration) (context.Context, context.CancelFunc) {
	if runID == "" {
		runID = uuid.New().String()
	}

	ctx, cancel := context.WithTimeout(parentCtx, timeout)
	ctx = context.WithValue(ctx, keyRunID, runID)
	ctx = context.WithValue(ctx, keyStartTime, time.Now())

	return ctx, cancel
}

// GetRunID extracts the run id from context, generating one when absent so
// that log correlation never silently drops
func GetRunID(ctx context.Context) string {
	if id, ok := ctx.Value(keyRunID).(string); ok && id != "" {
		return id
	}
	return uuid.New().String()
}

// WithStage annotates the context with the current pipeline stage
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, keyStage, stage)
}

// GetStage extracts the current pipeline stage from context
func GetStage(ctx context.Context) string {
	if stage, ok := ctx.Value(keyStage).(string); ok {
		return stage
	}
	return ""
}

// Elapsed returns the time since the run began, zero when unknown
func Elapsed(ctx context.Context) time.Duration {
	if start, ok := ctx.Value(keyStartTime).(time.Time); ok {
		return time.Since(start)
	}
	return 0
}
