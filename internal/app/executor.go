package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quotebox/internal/domain"
)

// Collection mutations follow Validate → Perform → Archive → Commit.
//
//  1. VALIDATE - Check inputs before anything changes
//  2. PERFORM  - Build the next collection from the current one
//  3. ARCHIVE  - Persist the next collection to durable storage
//  4. COMMIT   - Replace the in-memory collection
//
// The in-memory collection is only replaced after the archive step succeeds,
// so a storage failure leaves memory and storage in agreement.

// MutationStep represents a step of a collection mutation.
type MutationStep string

const (
	StepValidate MutationStep = "validate"
	StepPerform  MutationStep = "perform"
	StepArchive  MutationStep = "archive"
)

// MutationError wraps errors with the step where they occurred.
type MutationError struct {
	Operation string
	Step      MutationStep
	Cause     error
}

// Error implements the error interface.
func (e *MutationError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Operation, e.Step, e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *MutationError) Unwrap() error {
	return e.Cause
}

// mutation describes one change to the collection.
type mutation struct {
	// name identifies the mutation for logging.
	name string

	// validate checks inputs. Nil means always valid.
	validate func() error

	// perform returns the next collection. It must not modify current.
	perform func(current domain.Collection) (domain.Collection, error)
}

// mutator runs mutations against a collection holder.
type mutator struct {
	bridge *StorageBridge
	logger *slog.Logger
}

// run executes m against current and returns the collection to commit.
// On error the caller keeps current.
func (x *mutator) run(ctx context.Context, m mutation, current domain.Collection) (domain.Collection, error) {
	logger := x.logger.With(slog.String("operation", m.name))
	start := time.Now()

	if m.validate != nil {
		if err := m.validate(); err != nil {
			logger.DebugContext(ctx, "validation failed", slog.Any("error", err))

			return nil, &MutationError{Operation: m.name, Step: StepValidate, Cause: err}
		}
	}

	next, err := m.perform(current)
	if err != nil {
		logger.WarnContext(ctx, "perform failed", slog.Any("error", err))

		return nil, &MutationError{Operation: m.name, Step: StepPerform, Cause: err}
	}

	if err := x.bridge.Save(ctx, next); err != nil {
		logger.ErrorContext(ctx, "archive failed", slog.Any("error", err))

		return nil, &MutationError{Operation: m.name, Step: StepArchive, Cause: err}
	}

	logger.InfoContext(ctx, "mutation committed",
		slog.Int("size", next.Len()),
		slog.Duration("duration", time.Since(start)),
	)

	return next, nil
}

// IsMutationError checks if an error occurred while mutating the collection.
func IsMutationError(err error) bool {
	var mutErr *MutationError

	return errors.As(err, &mutErr)
}

// GetMutationStep extracts the failed step from a mutation error.
func GetMutationStep(err error) (MutationStep, bool) {
	var mutErr *MutationError
	if errors.As(err, &mutErr) {
		return mutErr.Step, true
	}

	return "", false
}
