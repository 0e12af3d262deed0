package control

import (
	"time"

	"github.com/beatwave/onair/common"
)

// DefaultGoLiveLeadTime how long before the booked start the go-live window opens
const DefaultGoLiveLeadTime = time.Minute

// All guards here are pure functions of the slot entry and an explicit timestamp.
// Only the reconciliation timer and the HTTP layer read the wall clock.

/*
GoLiveWindow the interval within which go-live is permitted

	@param slot common.BroadcastSlot - slot entry
	@param leadTime time.Duration - how long before the booked start the window opens
	@returns window open and close instants
*/
func GoLiveWindow(slot common.BroadcastSlot, leadTime time.Duration) (time.Time, time.Time) {
	return slot.StartTime.Add(-leadTime), slot.EndTime
}

/*
EvaluateSchedule where a timestamp sits relative to a slot's booked window

Only meaningful for a slot no one has gone live on yet.

	@param slot common.BroadcastSlot - slot entry
	@param leadTime time.Duration - go-live lead time
	@param currentTime time.Time - timestamp to evaluate at
	@returns schedule position
*/
func EvaluateSchedule(
	slot common.BroadcastSlot, leadTime time.Duration, currentTime time.Time,
) common.ScheduleStatus {
	if slot.Status != common.SlotStatusScheduled {
		return common.ScheduleStatusNA
	}
	opensAt, closesAt := GoLiveWindow(slot, leadTime)
	switch {
	case currentTime.Before(opensAt):
		return common.ScheduleStatusEarly
	case currentTime.After(closesAt):
		return common.ScheduleStatusNA
	case !currentTime.Before(slot.StartTime):
		// The booked start itself already counts as running late
		return common.ScheduleStatusLate
	default:
		return common.ScheduleStatusOnTime
	}
}

/*
CheckToken whether the slot's capability token is still valid

	@param slot common.BroadcastSlot - slot entry
	@param currentTime time.Time - timestamp to evaluate at
*/
func CheckToken(slot common.BroadcastSlot, currentTime time.Time) error {
	if currentTime.After(slot.TokenExpiresAt) {
		return common.ErrorTokenExpired{ExpiredAt: slot.TokenExpiresAt}
	}
	return nil
}

/*
CheckGoLive whether a go-live attempt is permitted at a timestamp

	@param slot common.BroadcastSlot - slot entry
	@param leadTime time.Duration - go-live lead time
	@param currentTime time.Time - timestamp to evaluate at
*/
func CheckGoLive(slot common.BroadcastSlot, leadTime time.Duration, currentTime time.Time) error {
	if slot.Status != common.SlotStatusScheduled {
		return common.ErrorInvalidTransition{From: slot.Status, To: common.SlotStatusLive}
	}
	opensAt, closesAt := GoLiveWindow(slot, leadTime)
	if currentTime.Before(opensAt) {
		return common.ErrorNotYetOpen{OpensAt: opensAt}
	}
	if currentTime.After(closesAt) {
		return common.ErrorWindowClosed{ClosedAt: closesAt}
	}
	return nil
}

/*
CheckResume whether a resume attempt is permitted at a timestamp

Resume never re-checks the go-live lead window. The only timing bound is
the booked window end.

	@param slot common.BroadcastSlot - slot entry
	@param currentTime time.Time - timestamp to evaluate at
*/
func CheckResume(slot common.BroadcastSlot, currentTime time.Time) error {
	if slot.Status != common.SlotStatusPaused {
		return common.ErrorInvalidTransition{From: slot.Status, To: common.SlotStatusLive}
	}
	if currentTime.After(slot.EndTime) {
		return common.ErrorWindowClosed{ClosedAt: slot.EndTime}
	}
	return nil
}

/*
CheckPause whether a pause report is permitted

	@param slot common.BroadcastSlot - slot entry
*/
func CheckPause(slot common.BroadcastSlot) error {
	if slot.Status != common.SlotStatusLive {
		return common.ErrorInvalidTransition{From: slot.Status, To: common.SlotStatusPaused}
	}
	return nil
}

/*
CheckEnd whether an explicit broadcast end is permitted

	@param slot common.BroadcastSlot - slot entry
*/
func CheckEnd(slot common.BroadcastSlot) error {
	if slot.Status != common.SlotStatusLive && slot.Status != common.SlotStatusPaused {
		return common.ErrorInvalidTransition{From: slot.Status, To: common.SlotStatusCompleted}
	}
	return nil
}
