package control

import (
	"time"

	"github.com/beatwave/onair/common"
)

/*
ActiveDJSlot the DJ slot whose interval covers a timestamp

Single performer slots and coverage gaps within a lineup resolve to nil.

	@param slot common.BroadcastSlot - slot entry
	@param currentTime time.Time - timestamp to evaluate at
	@returns the covering DJ slot, if any
*/
func ActiveDJSlot(slot common.BroadcastSlot, currentTime time.Time) *common.DJSlot {
	lineup, ok := slot.Lineup().(common.MultiDJ)
	if !ok {
		return nil
	}
	for idx := range lineup.Slots {
		if lineup.Slots[idx].Covers(currentTime) {
			active := lineup.Slots[idx]
			return &active
		}
	}
	return nil
}

/*
SlotChanged whether the active DJ slot differs from the one last claimed

Always false before the first claim is made.

	@param slot common.BroadcastSlot - slot entry
	@param active *common.DJSlot - the DJ slot currently covering the clock
	@returns whether the claimed DJ slot is no longer the active one
*/
func SlotChanged(slot common.BroadcastSlot, active *common.DJSlot) bool {
	if slot.CurrentDJSlotID == nil {
		return false
	}
	if active == nil {
		return true
	}
	return active.ID != *slot.CurrentDJSlotID
}
