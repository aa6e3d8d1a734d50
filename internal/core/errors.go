package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Scaling errors.
	ErrQueryFailed         = errors.New("inventory query failed")
	ErrCommandFailed       = errors.New("lifecycle command failed")
	ErrInvalidDesiredCount = errors.New("desired count must not be negative")
	ErrRunInProgress       = errors.New("another scaling run is in progress")

	// Wiring errors.
	ErrUnknownProvider = errors.New("unknown provider")
)

// QueryFailure means the inventory could not be retrieved. Nothing is emitted after it.
type QueryFailure struct {
	Provider string
	Cause    error
}

func (e *QueryFailure) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrQueryFailed, e.Provider, e.Cause)
}

func (e *QueryFailure) Unwrap() []error {
	return []error{ErrQueryFailed, e.Cause}
}

// CommandFailure means one lifecycle batch failed. The other batch's effect stands.
type CommandFailure struct {
	Batch       Batch
	InstanceIDs []string
	Cause       error
}

func (e *CommandFailure) Error() string {
	return fmt.Sprintf("%s: %s batch [%s]: %s",
		ErrCommandFailed, e.Batch, strings.Join(e.InstanceIDs, " "), e.Cause)
}

func (e *CommandFailure) Unwrap() []error {
	return []error{ErrCommandFailed, e.Cause}
}

// FailedBatches returns every batch that failed within err, in start, stop order.
func FailedBatches(err error) []Batch {
	var batches []Batch

	for _, batch := range []Batch{BatchStart, BatchStop} {
		if failure := BatchFailure(err, batch); failure != nil {
			batches = append(batches, batch)
		}
	}

	return batches
}

// BatchFailure finds the CommandFailure of the given batch inside a wrapped or joined error.
func BatchFailure(err error, batch Batch) *CommandFailure {
	switch e := err.(type) { //nolint:errorlint
	case nil:
		return nil
	case *CommandFailure:
		if e.Batch == batch {
			return e
		}

		return nil
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			if failure := BatchFailure(inner, batch); failure != nil {
				return failure
			}
		}
	case interface{ Unwrap() error }:
		return BatchFailure(e.Unwrap(), batch)
	}

	return nil
}

func IsQueryFailure(err error) bool {
	return errors.Is(err, ErrQueryFailed)
}

func IsCommandFailure(err error) bool {
	return errors.Is(err, ErrCommandFailed)
}
