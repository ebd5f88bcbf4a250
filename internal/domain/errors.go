package domain

import "errors"

var (
	// ErrInvalidIdentifier is returned when a snapshot identifier carries no YYYYMMDD_HHMMSS timestamp
	ErrInvalidIdentifier = errors.New("invalid snapshot identifier")

	// ErrUnknownOfficer is returned when a town roster references a resident missing from the same snapshot
	ErrUnknownOfficer = errors.New("officer is not a known resident")

	// ErrNoSnapshots is returned when a batch is started without any snapshot
	ErrNoSnapshots = errors.New("no snapshots to evaluate")

	// ErrUnknownSink is returned when the configuration names a result sink that does not exist
	ErrUnknownSink = errors.New("unknown result sink")
)
