package repository

import "errors"

var (
	// ErrSymbolNotFound means the ticker is well formed but the provider has
	// no record of it.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrProvider means the upstream call failed (network, timeout, non-OK
	// status or an undecodable body).
	ErrProvider = errors.New("provider error")
)
