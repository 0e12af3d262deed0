package control

import (
	"context"
	"errors"
	"time"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/beatwave/onair/common"
	"github.com/beatwave/onair/common/ipc"
	"github.com/beatwave/onair/db"
	"github.com/beatwave/onair/tracker"
	"github.com/beatwave/onair/transport"
	"github.com/beatwave/onair/utils"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// SessionManager broadcast session orchestration
//
// Every operation takes the evaluation timestamp explicitly. Guards run as pure
// functions of (slot, timestamp) before any side effect, and the slot status
// write is the single synchronization point between competing callers.
type SessionManager interface {
	/*
		Ready check whether the manager is ready

			@param ctxt context.Context - execution context
	*/
	Ready(ctxt context.Context) error

	/*
		ValidateToken resolve a capability token into its broadcast slot

		No side effects.

			@param ctxt context.Context - execution context
			@param token string - capability token
			@param currentTime time.Time - current timestamp
			@returns the slot with its computed schedule position
	*/
	ValidateToken(
		ctxt context.Context, token string, currentTime time.Time,
	) (common.BroadcastSlot, common.ScheduleStatus, error)

	/*
		GoLive take a scheduled slot live

		The media transport session is admitted first. The status write only happens
		after admission succeeds, so a transport failure leaves the slot untouched.
		A lost status write against a performer already holding the claim with the
		same identity is an idempotent success.

			@param ctxt context.Context - execution context
			@param token string - capability token
			@param claim common.LiveClaim - performer identity going live
			@param withRecording bool - whether to start a capture egress
			@param currentTime time.Time - current timestamp
			@returns handle to the admitted session
	*/
	GoLive(
		ctxt context.Context,
		token string,
		claim common.LiveClaim,
		withRecording bool,
		currentTime time.Time,
	) (common.SessionHandle, error)

	/*
		Resume take a paused slot back live after a disconnect

		Resume never re-checks the go-live lead window, only the booked window end.

			@param ctxt context.Context - execution context
			@param token string - capability token
			@param claim common.LiveClaim - performer identity resuming
			@param withRecording bool - whether to start a new capture egress
			@param currentTime time.Time - current timestamp
			@returns handle to the admitted session
	*/
	Resume(
		ctxt context.Context,
		token string,
		claim common.LiveClaim,
		withRecording bool,
		currentTime time.Time,
	) (common.SessionHandle, error)

	/*
		ReportDisconnect record that the live session dropped without an explicit end

			@param ctxt context.Context - execution context
			@param token string - capability token
			@param currentTime time.Time - current timestamp
	*/
	ReportDisconnect(ctxt context.Context, token string, currentTime time.Time) error

	/*
		EndBroadcast explicitly finish a broadcast

			@param ctxt context.Context - execution context
			@param token string - capability token
			@param currentTime time.Time - current timestamp
	*/
	EndBroadcast(ctxt context.Context, token string, currentTime time.Time) error

	/*
		SubmitPromo attach promo content to the broadcast

		Lands on the claimed DJ slot when one is held, otherwise on the show itself.

			@param ctxt context.Context - execution context
			@param token string - capability token
			@param content string - promo content
			@param currentTime time.Time - current timestamp
	*/
	SubmitPromo(ctxt context.Context, token, content string, currentTime time.Time) error

	/*
		SubmitThankYou attach a thank-you message to the broadcast

			@param ctxt context.Context - execution context
			@param token string - capability token
			@param message string - thank-you message
			@param currentTime time.Time - current timestamp
	*/
	SubmitThankYou(ctxt context.Context, token, message string, currentTime time.Time) error

	/*
		Tick compute the observable slot state for a polling caller

		No side effects.

			@param ctxt context.Context - execution context
			@param token string - capability token
			@param currentTime time.Time - current timestamp
			@returns observable slot state
	*/
	Tick(ctxt context.Context, token string, currentTime time.Time) (common.SlotView, error)
}

// sessionManagerImpl implements SessionManager
type sessionManagerImpl struct {
	goutils.Component
	db          db.PersistenceManager
	transport   transport.MediaTransport
	recordings  tracker.RecordingTracker
	broadcaster utils.Broadcaster
	leadTime    time.Duration

	/* Metrics Collection Agents */
	sessionActionMetrics *prometheus.CounterVec
}

/*
NewSessionManager define a new session manager

	@param ctxt context.Context - execution context
	@param dbClient db.PersistenceManager - persistence manager
	@param transportClient transport.MediaTransport - media transport control client
	@param recordings tracker.RecordingTracker - recording tracker
	@param broadcaster utils.Broadcaster - slot event broadcast client
	@param leadTime time.Duration - how long before the booked start go-live opens
	@param metrics goutils.MetricsCollector - metrics framework client
	@returns new manager
*/
func NewSessionManager(
	ctxt context.Context,
	dbClient db.PersistenceManager,
	transportClient transport.MediaTransport,
	recordings tracker.RecordingTracker,
	broadcaster utils.Broadcaster,
	leadTime time.Duration,
	metrics goutils.MetricsCollector,
) (SessionManager, error) {
	logTags := log.Fields{"module": "control", "component": "session-manager"}

	if leadTime <= 0 {
		leadTime = DefaultGoLiveLeadTime
	}

	instance := &sessionManagerImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		db:                   dbClient,
		transport:            transportClient,
		recordings:           recordings,
		broadcaster:          broadcaster,
		leadTime:             leadTime,
		sessionActionMetrics: nil,
	}

	// Install metrics
	if metrics != nil {
		var err error
		instance.sessionActionMetrics, err = metrics.InstallCustomCounterVecMetrics(
			ctxt,
			utils.MetricsNameSessionActionCount,
			"Tracking session orchestration actions",
			[]string{"action", "outcome"},
		)
		if err != nil {
			log.WithError(err).WithFields(logTags).Error("Unable to install metrics")
			return nil, err
		}
	}

	return instance, nil
}

func (m *sessionManagerImpl) Ready(ctxt context.Context) error {
	return m.db.Ready(ctxt)
}

// recordAction update the session action metrics
func (m *sessionManagerImpl) recordAction(action string, err error) {
	if m.sessionActionMetrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.sessionActionMetrics.With(prometheus.Labels{"action": action, "outcome": outcome}).Inc()
}

// reportSlotStatus broadcast a slot status change. Failures only log.
func (m *sessionManagerImpl) reportSlotStatus(
	ctxt context.Context, slot common.BroadcastSlot, timestamp time.Time,
) {
	logTags := m.GetLogTagsForContext(ctxt)
	if m.broadcaster == nil {
		return
	}
	report := ipc.NewSlotStatusReport(slot.ID, slot.Status, slot.LiveDJUserID, timestamp)
	if err := m.broadcaster.Broadcast(ctxt, &report); err != nil {
		log.
			WithError(err).
			WithFields(logTags).
			WithField("slot-id", slot.ID).
			Warn("Slot status broadcast failed")
	}
}

// resolveToken fetch the slot behind a capability token and verify token validity
func (m *sessionManagerImpl) resolveToken(
	ctxt context.Context, token string, currentTime time.Time,
) (common.BroadcastSlot, error) {
	slot, err := m.db.GetBroadcastSlotByToken(ctxt, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.BroadcastSlot{}, common.ErrorInvalidToken{}
		}
		return common.BroadcastSlot{}, err
	}
	if err := CheckToken(slot, currentTime); err != nil {
		return common.BroadcastSlot{}, err
	}
	return slot, nil
}

func (m *sessionManagerImpl) ValidateToken(
	ctxt context.Context, token string, currentTime time.Time,
) (common.BroadcastSlot, common.ScheduleStatus, error) {
	slot, err := m.resolveToken(ctxt, token, currentTime)
	if err != nil {
		return common.BroadcastSlot{}, common.ScheduleStatusNA, err
	}
	return slot, EvaluateSchedule(slot, m.leadTime, currentTime), nil
}

func (m *sessionManagerImpl) GoLive(
	ctxt context.Context,
	token string,
	claim common.LiveClaim,
	withRecording bool,
	currentTime time.Time,
) (result common.SessionHandle, err error) {
	logTags := m.GetLogTagsForContext(ctxt)
	defer func() { m.recordAction("go-live", err) }()

	slot, err := m.resolveToken(ctxt, token, currentTime)
	if err != nil {
		return common.SessionHandle{}, err
	}

	// Guards before side effects
	if err = CheckGoLive(slot, m.leadTime, currentTime); err != nil {
		return common.SessionHandle{}, err
	}

	// Pin the claim to the DJ slot covering the clock, if the lineup has one
	if active := ActiveDJSlot(slot, currentTime); active != nil {
		claim.DJSlotID = &active.ID
	}

	// Admit the transport session first. The status write is deferred until the
	// transport accepted the performer.
	sessionRef, err := m.transport.AdmitSession(ctxt, slot.RoomID(), claim)
	if err != nil {
		return common.SessionHandle{}, err
	}

	updated, err := m.db.TransitionSlotStatus(
		ctxt,
		slot.ID,
		[]common.SlotStatus{common.SlotStatusScheduled},
		common.SlotStatusLive,
		&claim,
		currentTime,
	)
	if err != nil {
		var transitionErr common.ErrorInvalidTransition
		if errors.As(err, &transitionErr) &&
			updated.Status == common.SlotStatusLive &&
			updated.LiveDJUserID != nil && *updated.LiveDJUserID == claim.UserID {
			// Same performer raced themselves. First write wins, this one rides along.
			log.
				WithFields(logTags).
				WithField("slot-id", slot.ID).
				WithField("user-id", claim.UserID).
				Info("Duplicate go-live from claim holder")
			err = nil
			return common.SessionHandle{
				SlotID: slot.ID, RoomID: slot.RoomID(), SessionRef: sessionRef,
			}, nil
		}

		// Lost to someone else. Withdraw the admitted session.
		if closeErr := m.transport.CloseSession(ctxt, slot.RoomID(), sessionRef); closeErr != nil {
			log.
				WithError(closeErr).
				WithFields(logTags).
				WithField("slot-id", slot.ID).
				Warn("Unable to withdraw admitted session after lost go-live")
		}
		if errors.As(err, &transitionErr) && updated.LiveDJUserID != nil {
			err = common.ErrorAlreadyLive{LiveDJUserID: *updated.LiveDJUserID}
			return common.SessionHandle{}, err
		}
		return common.SessionHandle{}, err
	}

	m.reportSlotStatus(ctxt, updated, currentTime)

	result = common.SessionHandle{
		SlotID: slot.ID, RoomID: slot.RoomID(), SessionRef: sessionRef,
	}

	// Recording is best-effort. A failed egress degrades to live-without-recording.
	if withRecording {
		if _, recErr := m.recordings.StartRecording(
			ctxt, slot.ID, slot.RoomID(), currentTime,
		); recErr != nil {
			log.
				WithError(recErr).
				WithFields(logTags).
				WithField("slot-id", slot.ID).
				Warn("Going live without recording")
		} else {
			result.Recording = true
		}
	}

	log.
		WithFields(logTags).
		WithField("slot-id", slot.ID).
		WithField("user-id", claim.UserID).
		WithField("recording", result.Recording).
		Info("Slot went live")
	return result, nil
}

func (m *sessionManagerImpl) Resume(
	ctxt context.Context,
	token string,
	claim common.LiveClaim,
	withRecording bool,
	currentTime time.Time,
) (result common.SessionHandle, err error) {
	logTags := m.GetLogTagsForContext(ctxt)
	defer func() { m.recordAction("resume", err) }()

	slot, err := m.resolveToken(ctxt, token, currentTime)
	if err != nil {
		return common.SessionHandle{}, err
	}

	// Guards before side effects
	if err = CheckResume(slot, currentTime); err != nil {
		return common.SessionHandle{}, err
	}
	// Only the claim holder resumes a paused slot
	if slot.LiveDJUserID != nil && *slot.LiveDJUserID != claim.UserID {
		err = common.ErrorAlreadyLive{LiveDJUserID: *slot.LiveDJUserID}
		return common.SessionHandle{}, err
	}

	// The claim may move to the DJ slot now covering the clock
	if active := ActiveDJSlot(slot, currentTime); active != nil {
		claim.DJSlotID = &active.ID
	}

	sessionRef, err := m.transport.AdmitSession(ctxt, slot.RoomID(), claim)
	if err != nil {
		return common.SessionHandle{}, err
	}

	updated, err := m.db.TransitionSlotStatus(
		ctxt,
		slot.ID,
		[]common.SlotStatus{common.SlotStatusPaused},
		common.SlotStatusLive,
		&claim,
		currentTime,
	)
	if err != nil {
		if closeErr := m.transport.CloseSession(ctxt, slot.RoomID(), sessionRef); closeErr != nil {
			log.
				WithError(closeErr).
				WithFields(logTags).
				WithField("slot-id", slot.ID).
				Warn("Unable to withdraw admitted session after lost resume")
		}
		return common.SessionHandle{}, err
	}

	m.reportSlotStatus(ctxt, updated, currentTime)

	result = common.SessionHandle{
		SlotID: slot.ID, RoomID: slot.RoomID(), SessionRef: sessionRef,
	}

	if withRecording {
		if _, recErr := m.recordings.StartRecording(
			ctxt, slot.ID, slot.RoomID(), currentTime,
		); recErr != nil {
			log.
				WithError(recErr).
				WithFields(logTags).
				WithField("slot-id", slot.ID).
				Warn("Resuming without recording")
		} else {
			result.Recording = true
		}
	}

	log.
		WithFields(logTags).
		WithField("slot-id", slot.ID).
		WithField("user-id", claim.UserID).
		Info("Slot resumed")
	return result, nil
}

func (m *sessionManagerImpl) ReportDisconnect(
	ctxt context.Context, token string, currentTime time.Time,
) (err error) {
	logTags := m.GetLogTagsForContext(ctxt)
	defer func() { m.recordAction("disconnect", err) }()

	slot, err := m.resolveToken(ctxt, token, currentTime)
	if err != nil {
		return err
	}

	if err = CheckPause(slot); err != nil {
		return err
	}

	// Capture pauses with the session
	if recErr := m.recordings.StopRecording(ctxt, slot.ID, currentTime); recErr != nil {
		log.
			WithError(recErr).
			WithFields(logTags).
			WithField("slot-id", slot.ID).
			Warn("Recording stop failed during disconnect")
	}

	updated, err := m.db.TransitionSlotStatus(
		ctxt,
		slot.ID,
		[]common.SlotStatus{common.SlotStatusLive},
		common.SlotStatusPaused,
		nil,
		currentTime,
	)
	if err != nil {
		return err
	}

	m.reportSlotStatus(ctxt, updated, currentTime)

	log.WithFields(logTags).WithField("slot-id", slot.ID).Info("Slot paused after disconnect")
	return nil
}

func (m *sessionManagerImpl) EndBroadcast(
	ctxt context.Context, token string, currentTime time.Time,
) (err error) {
	logTags := m.GetLogTagsForContext(ctxt)
	defer func() { m.recordAction("end", err) }()

	slot, err := m.resolveToken(ctxt, token, currentTime)
	if err != nil {
		return err
	}

	if err = CheckEnd(slot); err != nil {
		return err
	}

	if recErr := m.recordings.StopRecording(ctxt, slot.ID, currentTime); recErr != nil {
		log.
			WithError(recErr).
			WithFields(logTags).
			WithField("slot-id", slot.ID).
			Warn("Recording stop failed during broadcast end")
	}

	updated, err := m.db.TransitionSlotStatus(
		ctxt,
		slot.ID,
		[]common.SlotStatus{common.SlotStatusLive, common.SlotStatusPaused},
		common.SlotStatusCompleted,
		nil,
		currentTime,
	)
	if err != nil {
		return err
	}

	m.reportSlotStatus(ctxt, updated, currentTime)

	// Room teardown must not undo the completed broadcast
	if closeErr := m.transport.CloseRoom(ctxt, slot.RoomID()); closeErr != nil {
		log.
			WithError(closeErr).
			WithFields(logTags).
			WithField("slot-id", slot.ID).
			Warn("Room teardown failed after broadcast end")
	}

	log.WithFields(logTags).WithField("slot-id", slot.ID).Info("Broadcast ended")
	return nil
}

func (m *sessionManagerImpl) SubmitPromo(
	ctxt context.Context, token, content string, currentTime time.Time,
) (err error) {
	defer func() { m.recordAction("promo", err) }()

	slot, err := m.resolveToken(ctxt, token, currentTime)
	if err != nil {
		return err
	}
	if slot.Status.Terminal() {
		err = common.ErrorInvalidTransition{From: slot.Status, To: slot.Status}
		return err
	}

	if slot.CurrentDJSlotID != nil {
		err = m.db.UpdateDJSlotPromo(ctxt, *slot.CurrentDJSlotID, content)
		return err
	}
	err = m.db.UpdateSlotPromo(ctxt, slot.ID, content)
	return err
}

func (m *sessionManagerImpl) SubmitThankYou(
	ctxt context.Context, token, message string, currentTime time.Time,
) (err error) {
	defer func() { m.recordAction("thank-you", err) }()

	slot, err := m.resolveToken(ctxt, token, currentTime)
	if err != nil {
		return err
	}
	if slot.Status.Terminal() {
		err = common.ErrorInvalidTransition{From: slot.Status, To: slot.Status}
		return err
	}

	if slot.CurrentDJSlotID != nil {
		err = m.db.UpdateDJSlotThankYou(ctxt, *slot.CurrentDJSlotID, message)
		return err
	}
	err = m.db.UpdateSlotThankYou(ctxt, slot.ID, message)
	return err
}

func (m *sessionManagerImpl) Tick(
	ctxt context.Context, token string, currentTime time.Time,
) (common.SlotView, error) {
	slot, err := m.resolveToken(ctxt, token, currentTime)
	if err != nil {
		return common.SlotView{}, err
	}

	active := ActiveDJSlot(slot, currentTime)
	view := common.SlotView{
		SlotID:         slot.ID,
		Status:         slot.Status,
		ScheduleStatus: EvaluateSchedule(slot, m.leadTime, currentTime),
		ActiveDJSlot:   active,
		SlotChanged:    SlotChanged(slot, active),
	}

	if gateErr := CheckGoLive(slot, m.leadTime, currentTime); gateErr == nil {
		view.CanGoLive = true
	} else {
		view.GateMessage = gateErr.Error()
	}

	return view, nil
}
