package transport

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Status represents the lifecycle state of a transport job.
// It implements a state machine with defined transitions:
//
//	Planned ──> Started ──> Completed
//	   ▲  │         │
//	   │  └─────────┴──> Failed
//	   │                   │
//	   └───────────────────┘
//	      (requeue, from any non-Planned state)
//
// Completed and Failed are terminal except for the explicit Requeue
// transition, which exists because in-flight carriers are not persisted:
// after a restore every surviving job goes back to Planned.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Planned is the initial status: the job sits in the FIFO queue
	// waiting for a carrier to pick it up.
	Planned

	// Started indicates a carrier has been assigned and the cargo
	// is in transit.
	Started

	// Completed indicates the cargo arrived and the delivered amount
	// has been recorded.
	Completed

	// Failed indicates the job was aborted (carrier lost, source or
	// destination demolished, manual cancellation).
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Planned:   "Planned",
		Started:   "Started",
		Completed: "Completed",
		Failed:    "Failed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Planned:   "Planned",
		Started:   "Started",
		Completed: "Completed",
		Failed:    "Failed",
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Planned, Started, Completed, Failed.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// It is safe to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status admits no forward transition.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Failed
}

// Start transitions the status to Started.
//
// Valid transitions:
//   - Planned -> Started (carrier assigned)
//
// Returns:
//   - (Started, nil) on valid transition
//   - (0, error) if transition is not allowed from current status
func (s Status) Start() (Status, error) {
	if s != Planned {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to start", s.String()),
		)
	}

	return Started, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - Started -> Completed (cargo delivered)
//
// Returns:
//   - (Completed, nil) on valid transition
//   - (0, error) if transition is not allowed from current status
func (s Status) Complete() (Status, error) {
	if s != Started {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}

	return Completed, nil
}

// Fail transitions the status to Failed.
//
// Valid transitions:
//   - Planned -> Failed
//   - Started -> Failed
//
// Terminal jobs cannot fail again; the failure event must fire at most
// once per job so the demand restored to the order stays conserved.
func (s Status) Fail() (Status, error) {
	if s.IsTerminal() || s == Unknown {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to fail", s.String()),
		)
	}

	return Failed, nil
}

// Requeue transitions the status back to Planned.
//
// Valid transitions:
//   - Started -> Planned
//   - Completed -> Planned
//   - Failed -> Planned
//
// This is the only backward transition in the machine. It exists for
// restore-from-snapshot, where every surviving job re-enters the queue.
func (s Status) Requeue() (Status, error) {
	if s == Planned || s == Unknown {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to requeue", s.String()),
		)
	}

	return Planned, nil
}
