package model

import "errors"

// Common errors used across the application
var (
	// Participant errors
	ErrParticipantNotFound = errors.New("participant not found")
	ErrParticipantExists   = errors.New("participant already exists")
	ErrEmptyParticipantID  = errors.New("participant id must not be empty")

	// Validation errors
	ErrMalformedColour      = errors.New("malformed colour: want #RRGGBB")
	ErrMalformedCountryCode = errors.New("malformed country code: want two letters")

	// Store errors
	ErrStoreNotFound = errors.New("visit store does not exist")

	// User errors
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameExists = errors.New("username already exists")
)
