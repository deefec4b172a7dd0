package services

import "errors"

// Validation errors surfaced to callers before any state mutation.
var (
	ErrVesselRequired       = errors.New("vesselId is required")
	ErrNoWorkersNamed       = errors.New("at least one worker name is required")
	ErrNoContainers         = errors.New("at least one container is required")
	ErrContainerNotReleased = errors.New("container is missing customs declarations and cannot be tallied")
	ErrNoReportsSelected    = errors.New("no report ids given")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrAccountLocked        = errors.New("account locked")
)
