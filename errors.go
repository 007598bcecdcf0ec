package qcnn

import "errors"

var (
	// ErrInvalidInput covers malformed caller data: feature vectors of the
	// wrong length, labels outside {0,1}, or a zero-norm embedding input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrQubitOutOfRange signals a gate targeting a qubit index outside [0, n).
	ErrQubitOutOfRange = errors.New("qubit index out of range")

	// ErrNotUnitary signals a gate matrix that fails the unitarity check.
	// This is a construction bug, never a runtime condition to recover from.
	ErrNotUnitary = errors.New("gate matrix is not unitary")

	// ErrNumericalInstability signals an expectation value outside [-1, 1]
	// beyond floating-point tolerance.
	ErrNumericalInstability = errors.New("numerical instability detected")

	// ErrDiverged signals a non-finite loss during training. The reference
	// procedure has no recovery path: no clipping, no early stop.
	ErrDiverged = errors.New("optimization diverged")
)
