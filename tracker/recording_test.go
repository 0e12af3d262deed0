package tracker_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/beatwave/onair/common"
	"github.com/beatwave/onair/mocks"
	"github.com/beatwave/onair/tracker"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestRecordingTrackerStart(t *testing.T) {
	assert := assert.New(t)

	mockDB := mocks.NewPersistenceManager(t)
	mockTransport := mocks.NewMediaTransport(t)
	mockBroadcast := mocks.NewBroadcaster(t)

	utCtxt := context.Background()

	uut, err := tracker.NewRecordingTracker(mockDB, mockTransport, mockBroadcast)
	assert.Nil(err)

	currentTime := time.Now().UTC()
	slotID := uuid.NewString()
	roomID := slotID

	// Case 0: transport refuses the egress
	mockTransport.On(
		"StartEgress", mock.Anything, roomID,
	).Return("", common.ErrorTransportUnavailable{
		Op: "start-egress", Cause: fmt.Errorf("dummy error"),
	}).Once()
	{
		_, err := uut.StartRecording(utCtxt, slotID, roomID, currentTime)
		assert.NotNil(err)
		assert.IsType(common.ErrorTransportUnavailable{}, err)
	}

	// Case 1: clean start
	egressID := ulid.Make().String()
	recordingID := ulid.Make().String()
	{
		mockTransport.On("StartEgress", mock.Anything, roomID).Return(egressID, nil).Once()
		mockDB.On(
			"RecordRecordingStart", mock.Anything, slotID, egressID, currentTime,
		).Return(recordingID, nil).Once()
		mockBroadcast.On(
			"Broadcast", mock.Anything, mock.AnythingOfType("*ipc.RecordingStatusReport"),
		).Return(nil).Once()

		newID, err := uut.StartRecording(utCtxt, slotID, roomID, currentTime)
		assert.Nil(err)
		assert.Equal(recordingID, newID)
	}

	// Case 2: persistence failure stops the now orphaned egress
	{
		orphanEgress := ulid.Make().String()
		mockTransport.On("StartEgress", mock.Anything, roomID).Return(orphanEgress, nil).Once()
		mockDB.On(
			"RecordRecordingStart", mock.Anything, slotID, orphanEgress, currentTime,
		).Return("", fmt.Errorf("dummy error")).Once()
		mockTransport.On("StopEgress", mock.Anything, orphanEgress).Return(nil).Once()

		_, err := uut.StartRecording(utCtxt, slotID, roomID, currentTime)
		assert.NotNil(err)
	}
}

func TestRecordingTrackerStop(t *testing.T) {
	assert := assert.New(t)

	mockDB := mocks.NewPersistenceManager(t)
	mockTransport := mocks.NewMediaTransport(t)
	mockBroadcast := mocks.NewBroadcaster(t)

	utCtxt := context.Background()

	uut, err := tracker.NewRecordingTracker(mockDB, mockTransport, mockBroadcast)
	assert.Nil(err)

	currentTime := time.Now().UTC()
	slotID := uuid.NewString()

	// Case 0: no segments at all
	mockDB.On("ListRecordings", mock.Anything, slotID).Return([]common.Recording{}, nil).Once()
	assert.Nil(uut.StopRecording(utCtxt, slotID, currentTime))

	// Case 1: only the active segment is touched, finalized ones are left alone
	{
		endedAt := currentTime.Add(-time.Minute * 30)
		doneSegment := common.Recording{
			ID:              ulid.Make().String(),
			BroadcastSlotID: slotID,
			EgressID:        ulid.Make().String(),
			Status:          common.RecordingStatusReady,
			StartedAt:       currentTime.Add(-time.Hour),
			EndedAt:         &endedAt,
		}
		activeSegment := common.Recording{
			ID:              ulid.Make().String(),
			BroadcastSlotID: slotID,
			EgressID:        ulid.Make().String(),
			Status:          common.RecordingStatusRecording,
			StartedAt:       currentTime.Add(-time.Minute * 10),
		}
		mockDB.On(
			"ListRecordings", mock.Anything, slotID,
		).Return([]common.Recording{doneSegment, activeSegment}, nil).Once()
		mockTransport.On("StopEgress", mock.Anything, activeSegment.EgressID).Return(nil).Once()
		mockDB.On(
			"UpdateRecordingStatus",
			mock.Anything,
			activeSegment.ID,
			common.RecordingStatusProcessing,
			mock.AnythingOfType("*time.Time"),
			(*int)(nil),
			(*string)(nil),
		).Return(nil).Once()
		mockBroadcast.On(
			"Broadcast", mock.Anything, mock.AnythingOfType("*ipc.RecordingStatusReport"),
		).Return(nil).Once()

		assert.Nil(uut.StopRecording(utCtxt, slotID, currentTime))
	}

	// Case 2: egress stop failure still marks the segment as processing
	{
		activeSegment := common.Recording{
			ID:              ulid.Make().String(),
			BroadcastSlotID: slotID,
			EgressID:        ulid.Make().String(),
			Status:          common.RecordingStatusRecording,
			StartedAt:       currentTime.Add(-time.Minute * 10),
		}
		mockDB.On(
			"ListRecordings", mock.Anything, slotID,
		).Return([]common.Recording{activeSegment}, nil).Once()
		mockTransport.On(
			"StopEgress", mock.Anything, activeSegment.EgressID,
		).Return(common.ErrorTransportUnavailable{
			Op: "stop-egress", Cause: fmt.Errorf("dummy error"),
		}).Once()
		mockDB.On(
			"UpdateRecordingStatus",
			mock.Anything,
			activeSegment.ID,
			common.RecordingStatusProcessing,
			mock.AnythingOfType("*time.Time"),
			(*int)(nil),
			(*string)(nil),
		).Return(nil).Once()
		mockBroadcast.On(
			"Broadcast", mock.Anything, mock.AnythingOfType("*ipc.RecordingStatusReport"),
		).Return(nil).Once()

		assert.Nil(uut.StopRecording(utCtxt, slotID, currentTime))
	}
}

func TestRecordingTrackerEgressUpdates(t *testing.T) {
	assert := assert.New(t)

	mockDB := mocks.NewPersistenceManager(t)
	mockTransport := mocks.NewMediaTransport(t)
	mockBroadcast := mocks.NewBroadcaster(t)

	utCtxt := context.Background()

	uut, err := tracker.NewRecordingTracker(mockDB, mockTransport, mockBroadcast)
	assert.Nil(err)

	currentTime := time.Now().UTC()
	slotID := uuid.NewString()

	// Case 0: unknown egress handles are dropped without error
	{
		unknownEgress := ulid.Make().String()
		mockDB.On(
			"GetRecordingByEgressID", mock.Anything, unknownEgress,
		).Return(common.Recording{}, gorm.ErrRecordNotFound).Once()

		assert.Nil(uut.HandleEgressUpdate(utCtxt, common.EgressStatusUpdate{
			EgressID: unknownEgress, State: common.EgressStateComplete,
		}, currentTime))
	}

	activeSegment := common.Recording{
		ID:              ulid.Make().String(),
		BroadcastSlotID: slotID,
		EgressID:        ulid.Make().String(),
		Status:          common.RecordingStatusRecording,
		StartedAt:       currentTime.Add(-time.Minute * 30),
	}

	// Case 1: heartbeat is a no-op
	mockDB.On(
		"GetRecordingByEgressID", mock.Anything, activeSegment.EgressID,
	).Return(activeSegment, nil).Once()
	assert.Nil(uut.HandleEgressUpdate(utCtxt, common.EgressStatusUpdate{
		EgressID: activeSegment.EgressID, State: common.EgressStateActive,
	}, currentTime))

	// Case 2: completion finalizes the segment with the reported metadata
	{
		endedAt := currentTime.Add(-time.Second * 10)
		duration := 1790
		fileURL := fmt.Sprintf("recordings/%s.mp4", activeSegment.ID)
		mockDB.On(
			"GetRecordingByEgressID", mock.Anything, activeSegment.EgressID,
		).Return(activeSegment, nil).Once()
		mockDB.On(
			"UpdateRecordingStatus",
			mock.Anything,
			activeSegment.ID,
			common.RecordingStatusReady,
			&endedAt,
			&duration,
			&fileURL,
		).Return(nil).Once()
		mockBroadcast.On(
			"Broadcast", mock.Anything, mock.AnythingOfType("*ipc.RecordingStatusReport"),
		).Return(nil).Once()

		assert.Nil(uut.HandleEgressUpdate(utCtxt, common.EgressStatusUpdate{
			EgressID:      activeSegment.EgressID,
			State:         common.EgressStateComplete,
			EndedAt:       &endedAt,
			DurationInSec: &duration,
			FileURL:       &fileURL,
		}, currentTime))
	}

	// Case 3: failure state without an end timestamp falls back to the call time
	{
		mockDB.On(
			"GetRecordingByEgressID", mock.Anything, activeSegment.EgressID,
		).Return(activeSegment, nil).Once()
		mockDB.On(
			"UpdateRecordingStatus",
			mock.Anything,
			activeSegment.ID,
			common.RecordingStatusFailed,
			&currentTime,
			(*int)(nil),
			(*string)(nil),
		).Return(nil).Once()
		mockBroadcast.On(
			"Broadcast", mock.Anything, mock.AnythingOfType("*ipc.RecordingStatusReport"),
		).Return(nil).Once()

		assert.Nil(uut.HandleEgressUpdate(utCtxt, common.EgressStatusUpdate{
			EgressID: activeSegment.EgressID, State: common.EgressStateFailed,
		}, currentTime))
	}

	// Case 4: terminal segments ignore further updates
	{
		doneSegment := activeSegment
		doneSegment.Status = common.RecordingStatusReady
		mockDB.On(
			"GetRecordingByEgressID", mock.Anything, doneSegment.EgressID,
		).Return(doneSegment, nil).Once()

		assert.Nil(uut.HandleEgressUpdate(utCtxt, common.EgressStatusUpdate{
			EgressID: doneSegment.EgressID, State: common.EgressStateFailed,
		}, currentTime))
	}
}
