package tracker

import (
	"context"
	"errors"
	"time"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/beatwave/onair/common"
	"github.com/beatwave/onair/common/ipc"
	"github.com/beatwave/onair/db"
	"github.com/beatwave/onair/transport"
	"github.com/beatwave/onair/utils"
	"gorm.io/gorm"
)

// RecordingTracker manage recording segments of broadcast slots
//
// Recording is best-effort. No operation here may block or reverse a slot
// status transition; callers treat every error as degraded capture, not
// as a failed broadcast.
type RecordingTracker interface {
	/*
		StartRecording begin a new capture segment for a slot

			@param ctxt context.Context - execution context
			@param slotID string - broadcast slot entry ID
			@param roomID string - media transport room holding the live session
			@param currentTime time.Time - current timestamp
			@returns new recording entry ID
	*/
	StartRecording(
		ctxt context.Context, slotID, roomID string, currentTime time.Time,
	) (string, error)

	/*
		StopRecording stop the active capture segments of a slot

		Idempotent. A slot with no active segment is a no-op.

			@param ctxt context.Context - execution context
			@param slotID string - broadcast slot entry ID
			@param currentTime time.Time - current timestamp
	*/
	StopRecording(ctxt context.Context, slotID string, currentTime time.Time) error

	/*
		HandleEgressUpdate process an egress status callback from the media transport

		Updates referring to an unknown egress handle are logged and dropped. Updates
		against a segment already in a terminal state are no-ops.

			@param ctxt context.Context - execution context
			@param update common.EgressStatusUpdate - callback payload
			@param currentTime time.Time - current timestamp
	*/
	HandleEgressUpdate(
		ctxt context.Context, update common.EgressStatusUpdate, currentTime time.Time,
	) error
}

// recordingTrackerImpl implements RecordingTracker
type recordingTrackerImpl struct {
	goutils.Component
	db          db.PersistenceManager
	transport   transport.MediaTransport
	broadcaster utils.Broadcaster
}

/*
NewRecordingTracker define a new recording tracker

	@param dbClient db.PersistenceManager - persistence manager
	@param transportClient transport.MediaTransport - media transport control client
	@param broadcaster utils.Broadcaster - recording event broadcast client
	@returns new tracker
*/
func NewRecordingTracker(
	dbClient db.PersistenceManager,
	transportClient transport.MediaTransport,
	broadcaster utils.Broadcaster,
) (RecordingTracker, error) {
	logTags := log.Fields{"module": "tracker", "component": "recording-tracker"}
	return &recordingTrackerImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		db:          dbClient,
		transport:   transportClient,
		broadcaster: broadcaster,
	}, nil
}

// reportRecordingStatus broadcast a recording status change. Failures only log.
func (t *recordingTrackerImpl) reportRecordingStatus(
	ctxt context.Context,
	slotID, recordingID string,
	status common.RecordingStatus,
	timestamp time.Time,
) {
	logTags := t.GetLogTagsForContext(ctxt)
	if t.broadcaster == nil {
		return
	}
	report := ipc.NewRecordingStatusReport(slotID, recordingID, status, timestamp)
	if err := t.broadcaster.Broadcast(ctxt, &report); err != nil {
		log.
			WithError(err).
			WithFields(logTags).
			WithField("recording-id", recordingID).
			Warn("Recording status broadcast failed")
	}
}

func (t *recordingTrackerImpl) StartRecording(
	ctxt context.Context, slotID, roomID string, currentTime time.Time,
) (string, error) {
	logTags := t.GetLogTagsForContext(ctxt)

	egressID, err := t.transport.StartEgress(ctxt, roomID)
	if err != nil {
		log.
			WithError(err).
			WithFields(logTags).
			WithField("slot-id", slotID).
			WithField("room-id", roomID).
			Warn("Capture egress did not start")
		return "", err
	}

	recordingID, err := t.db.RecordRecordingStart(ctxt, slotID, egressID, currentTime)
	if err != nil {
		log.
			WithError(err).
			WithFields(logTags).
			WithField("slot-id", slotID).
			WithField("egress-id", egressID).
			Error("Unable to record new capture segment")
		// Do not leave an untracked egress running
		if stopErr := t.transport.StopEgress(ctxt, egressID); stopErr != nil {
			log.
				WithError(stopErr).
				WithFields(logTags).
				WithField("egress-id", egressID).
				Warn("Orphaned egress stop failed")
		}
		return "", err
	}

	t.reportRecordingStatus(ctxt, slotID, recordingID, common.RecordingStatusRecording, currentTime)

	log.
		WithFields(logTags).
		WithField("slot-id", slotID).
		WithField("egress-id", egressID).
		WithField("recording-id", recordingID).
		Info("Started recording segment")
	return recordingID, nil
}

func (t *recordingTrackerImpl) StopRecording(
	ctxt context.Context, slotID string, currentTime time.Time,
) error {
	logTags := t.GetLogTagsForContext(ctxt)

	segments, err := t.db.ListRecordings(ctxt, slotID)
	if err != nil {
		return err
	}

	for _, segment := range segments {
		if segment.Status != common.RecordingStatusRecording {
			continue
		}

		if err := t.transport.StopEgress(ctxt, segment.EgressID); err != nil {
			// The transport callback can still finalize the segment later
			log.
				WithError(err).
				WithFields(logTags).
				WithField("slot-id", slotID).
				WithField("egress-id", segment.EgressID).
				Warn("Egress stop failed")
		}

		endedAt := currentTime
		if err := t.db.UpdateRecordingStatus(
			ctxt, segment.ID, common.RecordingStatusProcessing, &endedAt, nil, nil,
		); err != nil {
			log.
				WithError(err).
				WithFields(logTags).
				WithField("slot-id", slotID).
				WithField("recording-id", segment.ID).
				Error("Unable to mark capture segment as processing")
			continue
		}

		t.reportRecordingStatus(
			ctxt, slotID, segment.ID, common.RecordingStatusProcessing, currentTime,
		)

		log.
			WithFields(logTags).
			WithField("slot-id", slotID).
			WithField("recording-id", segment.ID).
			Info("Stopped recording segment")
	}

	return nil
}

func (t *recordingTrackerImpl) HandleEgressUpdate(
	ctxt context.Context, update common.EgressStatusUpdate, currentTime time.Time,
) error {
	logTags := t.GetLogTagsForContext(ctxt)

	segment, err := t.db.GetRecordingByEgressID(ctxt, update.EgressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Callback for an egress this node never tracked
			log.
				WithFields(logTags).
				WithField("egress-id", update.EgressID).
				WithField("state", update.State).
				Warn("Dropping egress update for unknown egress")
			return nil
		}
		return err
	}

	if segment.Status.Terminal() {
		log.
			WithFields(logTags).
			WithField("egress-id", update.EgressID).
			WithField("recording-id", segment.ID).
			WithField("state", update.State).
			Debug("Dropping egress update for finalized segment")
		return nil
	}

	var newStatus common.RecordingStatus
	switch update.State {
	case common.EgressStateActive:
		// Heartbeat, nothing to record
		return nil
	case common.EgressStateComplete:
		newStatus = common.RecordingStatusReady
	case common.EgressStateFailed:
		newStatus = common.RecordingStatusFailed
	default:
		log.
			WithFields(logTags).
			WithField("egress-id", update.EgressID).
			WithField("state", update.State).
			Warn("Dropping egress update with unknown state")
		return nil
	}

	endedAt := update.EndedAt
	if endedAt == nil {
		endedAt = &currentTime
	}
	if err := t.db.UpdateRecordingStatus(
		ctxt, segment.ID, newStatus, endedAt, update.DurationInSec, update.FileURL,
	); err != nil {
		log.
			WithError(err).
			WithFields(logTags).
			WithField("recording-id", segment.ID).
			WithField("status", newStatus).
			Error("Unable to finalize capture segment")
		return err
	}

	t.reportRecordingStatus(
		ctxt, segment.BroadcastSlotID, segment.ID, newStatus, currentTime,
	)

	log.
		WithFields(logTags).
		WithField("recording-id", segment.ID).
		WithField("status", newStatus).
		Info("Finalized recording segment")
	return nil
}
