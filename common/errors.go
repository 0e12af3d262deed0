package common

import (
	"fmt"
	"time"
)

// ErrorInvalidToken the presented capability token matches no broadcast slot
type ErrorInvalidToken struct{}

func (e ErrorInvalidToken) Error() string {
	return "broadcast link is not valid"
}

// ErrorTokenExpired the capability token is past its expiry
type ErrorTokenExpired struct {
	// ExpiredAt when the token stopped being valid
	ExpiredAt time.Time
}

func (e ErrorTokenExpired) Error() string {
	return fmt.Sprintf("broadcast link expired at %s", e.ExpiredAt.Format(time.RFC3339))
}

// ErrorNotYetOpen go-live attempted before the gating window opened
type ErrorNotYetOpen struct {
	// OpensAt when the go-live window opens
	OpensAt time.Time
}

func (e ErrorNotYetOpen) Error() string {
	return fmt.Sprintf("go live opens at %s", e.OpensAt.Format(time.Kitchen))
}

// ErrorWindowClosed go-live attempted after the booked window ended
type ErrorWindowClosed struct {
	// ClosedAt when the go-live window closed
	ClosedAt time.Time
}

func (e ErrorWindowClosed) Error() string {
	return fmt.Sprintf("go live window closed at %s", e.ClosedAt.Format(time.Kitchen))
}

// ErrorInvalidTransition the requested status change is not an edge of the slot state machine
type ErrorInvalidTransition struct {
	// From current slot status
	From SlotStatus
	// To requested slot status
	To SlotStatus
}

func (e ErrorInvalidTransition) Error() string {
	return fmt.Sprintf("slot status can not move from '%s' to '%s'", e.From, e.To)
}

// ErrorAlreadyLive another performer already holds the live claim on the slot
type ErrorAlreadyLive struct {
	// LiveDJUserID account ID currently holding the claim
	LiveDJUserID string
}

func (e ErrorAlreadyLive) Error() string {
	return "another performer is already live on this slot"
}

// ErrorTransportUnavailable a media transport request could not be completed
type ErrorTransportUnavailable struct {
	// Op the transport operation that failed
	Op string
	// Cause underlying failure
	Cause error
}

func (e ErrorTransportUnavailable) Error() string {
	return fmt.Sprintf("media transport '%s' request failed", e.Op)
}

// Unwrap expose the underlying failure
func (e ErrorTransportUnavailable) Unwrap() error {
	return e.Cause
}
