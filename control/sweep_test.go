package control_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/beatwave/onair/common"
	"github.com/beatwave/onair/control"
	"github.com/beatwave/onair/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestReconciliationSweep(t *testing.T) {
	assert := assert.New(t)

	mockDB := mocks.NewPersistenceManager(t)
	mockRecordings := mocks.NewRecordingTracker(t)
	mockBroadcast := mocks.NewBroadcaster(t)

	utCtxt := context.Background()

	// Long interval so only the explicit RunSweep calls below execute
	uut, err := control.NewReconciliationSweeper(
		utCtxt, mockDB, mockRecordings, mockBroadcast, time.Hour, nil,
	)
	assert.Nil(err)
	defer func() {
		assert.Nil(uut.Stop(utCtxt))
	}()

	currentTime := time.Now().UTC()

	// Case 0: nothing overdue
	mockDB.On(
		"ListOverdueBroadcastSlots", mock.Anything, currentTime,
	).Return([]common.BroadcastSlot{}, nil).Once()
	assert.Nil(uut.RunSweep(utCtxt, currentTime))

	// Case 1: an abandoned live slot completes, a never-live slot is missed
	{
		wentLive := currentTime.Add(-time.Hour * 2)
		abandonedSlot := buildTestSlot(currentTime)
		abandonedSlot.Status = common.SlotStatusLive
		abandonedSlot.EndTime = currentTime.Add(-time.Minute * 30)
		abandonedSlot.WentLiveAt = &wentLive

		noShowSlot := buildTestSlot(currentTime)
		noShowSlot.EndTime = currentTime.Add(-time.Minute * 10)

		mockDB.On(
			"ListOverdueBroadcastSlots", mock.Anything, currentTime,
		).Return([]common.BroadcastSlot{abandonedSlot, noShowSlot}, nil).Once()

		completedSlot := abandonedSlot
		completedSlot.Status = common.SlotStatusCompleted
		mockRecordings.On(
			"StopRecording", mock.Anything, abandonedSlot.ID, currentTime,
		).Return(nil).Once()
		mockDB.On(
			"TransitionSlotStatus",
			mock.Anything,
			abandonedSlot.ID,
			[]common.SlotStatus{
				common.SlotStatusScheduled, common.SlotStatusLive, common.SlotStatusPaused,
			},
			common.SlotStatusCompleted,
			(*common.LiveClaim)(nil),
			currentTime,
		).Return(completedSlot, nil).Once()

		missedSlot := noShowSlot
		missedSlot.Status = common.SlotStatusMissed
		mockDB.On(
			"TransitionSlotStatus",
			mock.Anything,
			noShowSlot.ID,
			[]common.SlotStatus{
				common.SlotStatusScheduled, common.SlotStatusLive, common.SlotStatusPaused,
			},
			common.SlotStatusMissed,
			(*common.LiveClaim)(nil),
			currentTime,
		).Return(missedSlot, nil).Once()

		mockBroadcast.On(
			"Broadcast", mock.Anything, mock.AnythingOfType("*ipc.SlotStatusReport"),
		).Return(nil).Twice()

		assert.Nil(uut.RunSweep(utCtxt, currentTime))
	}

	// Case 2: a lost write on one slot does not block the rest of the pass
	{
		lostSlot := buildTestSlot(currentTime)
		lostSlot.EndTime = currentTime.Add(-time.Minute * 20)

		otherSlot := buildTestSlot(currentTime)
		otherSlot.EndTime = currentTime.Add(-time.Minute * 20)

		mockDB.On(
			"ListOverdueBroadcastSlots", mock.Anything, currentTime,
		).Return([]common.BroadcastSlot{lostSlot, otherSlot}, nil).Once()

		raced := lostSlot
		raced.Status = common.SlotStatusMissed
		mockDB.On(
			"TransitionSlotStatus",
			mock.Anything,
			lostSlot.ID,
			mock.Anything,
			common.SlotStatusMissed,
			(*common.LiveClaim)(nil),
			currentTime,
		).Return(raced, common.ErrorInvalidTransition{
			From: common.SlotStatusMissed, To: common.SlotStatusMissed,
		}).Once()

		finalized := otherSlot
		finalized.Status = common.SlotStatusMissed
		mockDB.On(
			"TransitionSlotStatus",
			mock.Anything,
			otherSlot.ID,
			mock.Anything,
			common.SlotStatusMissed,
			(*common.LiveClaim)(nil),
			currentTime,
		).Return(finalized, nil).Once()

		mockBroadcast.On(
			"Broadcast", mock.Anything, mock.AnythingOfType("*ipc.SlotStatusReport"),
		).Return(nil).Once()

		assert.Nil(uut.RunSweep(utCtxt, currentTime))
	}

	// Case 3: listing failure surfaces
	mockDB.On(
		"ListOverdueBroadcastSlots", mock.Anything, currentTime,
	).Return(nil, fmt.Errorf("dummy error")).Once()
	assert.NotNil(uut.RunSweep(utCtxt, currentTime))
}
