package domain

import "errors"

// Catalog errors.
var (
	ErrPermissionNotFound = errors.New("permission not found")
)

// ErrContractViolation marks malformed input that the type system does not rule out.
var ErrContractViolation = errors.New("contract violation")
