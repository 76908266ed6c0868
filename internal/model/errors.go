package model

import "github.com/rotisserie/eris"

// Sentinel errors for the acquisition and scoring pipeline. Components wrap
// these with context; callers classify with errors.Is.
var (
	// ErrCredentialMissing means a required external credential is absent.
	// Raised before any network call is made.
	ErrCredentialMissing = eris.New("credential missing")

	// ErrAcquisition means the provider returned an unexpected or malformed payload.
	ErrAcquisition = eris.New("acquisition failed")

	// ErrPollTimeout means the result location never reported success within
	// the attempt ceiling.
	ErrPollTimeout = eris.New("poll timeout")

	// ErrQualitativeUnavailable is never returned past the analyzer. It marks
	// the reason an empty analysis was produced.
	ErrQualitativeUnavailable = eris.New("qualitative analysis unavailable")

	// ErrNoData means no listing was acquired, so no report can be produced.
	ErrNoData = eris.New("no listing data")

	// ErrInvalidRequest means the inbound request is missing required fields.
	ErrInvalidRequest = eris.New("invalid request")
)
