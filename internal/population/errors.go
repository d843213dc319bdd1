package population

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition marks a proposed transition that is not an edge
	// of the configured model type, or whose from-state does not match the
	// individual's current state. Always a module defect, fatal to the run.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrAlreadyInactive marks a second deactivation of the same individual
	ErrAlreadyInactive = errors.New("individual already inactive")

	// ErrUnknownIndividual marks a reference to an identifier the store has
	// never issued
	ErrUnknownIndividual = errors.New("unknown individual")
)

// InvalidTransitionError reports a transition rejected by the store
type InvalidTransitionError struct {
	ID      int
	From    State
	To      State
	Current State
	Model   ModelType
	Step    int
}

func (e *InvalidTransitionError) Error() string {
	if e.From != e.Current {
		return fmt.Sprintf("invalid transition for individual %d at step %d: proposed %s -> %s but current state is %s",
			e.ID, e.Step, e.From, e.To, e.Current)
	}
	return fmt.Sprintf("invalid transition for individual %d at step %d: %s -> %s is not permitted by model %s",
		e.ID, e.Step, e.From, e.To, e.Model)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// AlreadyInactiveError reports a double deactivation
type AlreadyInactiveError struct {
	ID       int
	ExitStep int
	Step     int
}

func (e *AlreadyInactiveError) Error() string {
	return fmt.Sprintf("individual %d deactivated at step %d but was already inactive since step %d",
		e.ID, e.Step, e.ExitStep)
}

func (e *AlreadyInactiveError) Unwrap() error {
	return ErrAlreadyInactive
}
