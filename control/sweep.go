package control

import (
	"context"
	"sync"
	"time"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/beatwave/onair/common"
	"github.com/beatwave/onair/common/ipc"
	"github.com/beatwave/onair/db"
	"github.com/beatwave/onair/tracker"
	"github.com/beatwave/onair/utils"
	"github.com/prometheus/client_golang/prometheus"
)

// ReconciliationSweeper periodic pass finalizing slots whose window has passed
//
// The sweep is the only authority allowed to move a slot to `missed`, and the
// backstop for sessions which vanished without an explicit end. Each run is
// idempotent, and failures on one slot never block the rest of the pass.
type ReconciliationSweeper interface {
	/*
		RunSweep finalize all slots whose booked window passed before a timestamp

		Slots which went live at least once become `completed`, the rest `missed`.

			@param ctxt context.Context - execution context
			@param currentTime time.Time - timestamp to evaluate the windows against
	*/
	RunSweep(ctxt context.Context, currentTime time.Time) error

	/*
		Stop end the periodic sweep

			@param ctxt context.Context - execution context
	*/
	Stop(ctxt context.Context) error
}

// reconciliationSweeperImpl implements ReconciliationSweeper
type reconciliationSweeperImpl struct {
	goutils.Component
	db            db.PersistenceManager
	recordings    tracker.RecordingTracker
	broadcaster   utils.Broadcaster
	sweepTimer    goutils.IntervalTimer
	workerContext context.Context
	contextCancel context.CancelFunc
	wg            sync.WaitGroup

	/* Metrics Collection Agents */
	sweepTransitionMetrics *prometheus.CounterVec
}

/*
NewReconciliationSweeper define a new reconciliation sweeper and start its timer

	@param parentContext context.Context - parent context from which a worker context is
		defined for the sweep runs
	@param dbClient db.PersistenceManager - persistence manager
	@param recordings tracker.RecordingTracker - recording tracker
	@param broadcaster utils.Broadcaster - slot event broadcast client
	@param sweepInterval time.Duration - time between sweep runs
	@param metrics goutils.MetricsCollector - metrics framework client
	@returns new sweeper
*/
func NewReconciliationSweeper(
	parentContext context.Context,
	dbClient db.PersistenceManager,
	recordings tracker.RecordingTracker,
	broadcaster utils.Broadcaster,
	sweepInterval time.Duration,
	metrics goutils.MetricsCollector,
) (ReconciliationSweeper, error) {
	logTags := log.Fields{"module": "control", "component": "reconciliation-sweeper"}

	workerCtxt, cancel := context.WithCancel(parentContext)

	instance := &reconciliationSweeperImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		db:                     dbClient,
		recordings:             recordings,
		broadcaster:            broadcaster,
		workerContext:          workerCtxt,
		contextCancel:          cancel,
		wg:                     sync.WaitGroup{},
		sweepTransitionMetrics: nil,
	}

	// Install metrics
	if metrics != nil {
		var err error
		instance.sweepTransitionMetrics, err = metrics.InstallCustomCounterVecMetrics(
			parentContext,
			utils.MetricsNameSweepTransitionCount,
			"Tracking slot transitions made by the reconciliation sweep",
			[]string{"status"},
		)
		if err != nil {
			log.WithError(err).WithFields(logTags).Error("Unable to install metrics")
			cancel()
			return nil, err
		}
	}

	timer, err := goutils.GetIntervalTimerInstance(parentContext, &instance.wg, logTags)
	if err != nil {
		log.WithError(err).WithFields(logTags).Error("Unable to define sweep timer")
		cancel()
		return nil, err
	}
	instance.sweepTimer = timer

	// The timer is the one place the sweep reads the wall clock
	if err := timer.Start(sweepInterval, func() error {
		return instance.RunSweep(workerCtxt, time.Now().UTC())
	}, false); err != nil {
		log.WithError(err).WithFields(logTags).Error("Unable to start sweep timer")
		cancel()
		return nil, err
	}

	return instance, nil
}

func (s *reconciliationSweeperImpl) RunSweep(
	ctxt context.Context, currentTime time.Time,
) error {
	logTags := s.GetLogTagsForContext(ctxt)

	overdue, err := s.db.ListOverdueBroadcastSlots(ctxt, currentTime)
	if err != nil {
		log.WithError(err).WithFields(logTags).Error("Unable to list overdue slots")
		return err
	}

	finalized := 0
	for _, slot := range overdue {
		if s.finalizeSlot(ctxt, slot, currentTime) {
			finalized++
		}
	}

	if len(overdue) > 0 {
		log.
			WithFields(logTags).
			Infof("Finalized [%d] of [%d] overdue slots", finalized, len(overdue))
	}
	return nil
}

// finalizeSlot force one overdue slot into its terminal status. Failures only log,
// the next sweep run retries.
func (s *reconciliationSweeperImpl) finalizeSlot(
	ctxt context.Context, slot common.BroadcastSlot, currentTime time.Time,
) bool {
	logTags := s.GetLogTagsForContext(ctxt)

	targetStatus := common.SlotStatusMissed
	if slot.WentLiveAt != nil {
		targetStatus = common.SlotStatusCompleted
	}

	// Close out any capture still marked running
	if slot.Status == common.SlotStatusLive || slot.Status == common.SlotStatusPaused {
		if err := s.recordings.StopRecording(ctxt, slot.ID, currentTime); err != nil {
			log.
				WithError(err).
				WithFields(logTags).
				WithField("slot-id", slot.ID).
				Warn("Recording stop failed during sweep")
		}
	}

	updated, err := s.db.TransitionSlotStatus(
		ctxt,
		slot.ID,
		[]common.SlotStatus{
			common.SlotStatusScheduled, common.SlotStatusLive, common.SlotStatusPaused,
		},
		targetStatus,
		nil,
		currentTime,
	)
	if err != nil {
		// A lost write means someone else finalized the slot first
		log.
			WithError(err).
			WithFields(logTags).
			WithField("slot-id", slot.ID).
			WithField("target", targetStatus).
			Warn("Sweep could not finalize slot")
		return false
	}

	if s.broadcaster != nil {
		report := ipc.NewSlotStatusReport(updated.ID, updated.Status, updated.LiveDJUserID, currentTime)
		if err := s.broadcaster.Broadcast(ctxt, &report); err != nil {
			log.
				WithError(err).
				WithFields(logTags).
				WithField("slot-id", slot.ID).
				Warn("Slot status broadcast failed")
		}
	}

	// Update metrics
	if s.sweepTransitionMetrics != nil {
		s.sweepTransitionMetrics.With(prometheus.Labels{"status": string(targetStatus)}).Inc()
	}

	log.
		WithFields(logTags).
		WithField("slot-id", slot.ID).
		WithField("status", targetStatus).
		Info("Sweep finalized overdue slot")
	return true
}

func (s *reconciliationSweeperImpl) Stop(ctxt context.Context) error {
	s.contextCancel()
	if s.sweepTimer != nil {
		if err := s.sweepTimer.Stop(); err != nil {
			return err
		}
	}
	s.wg.Wait()
	return nil
}
