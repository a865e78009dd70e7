// Package commands holds the task and area write handlers.
package commands

import (
	"context"

	"github.com/google/uuid"
)

// ScoreInvalidator drops cached scores after a task changes. Implementations
// log their own failures; handlers do not fail on them.
type ScoreInvalidator interface {
	Invalidate(ctx context.Context, userID uuid.UUID) error
}
