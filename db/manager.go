package db

import (
	"context"
	"time"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/beatwave/onair/common"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PersistenceManager database access layer
type PersistenceManager interface {
	/*
		Ready check whether the DB connection is working

			@param ctxt context.Context - execution context
	*/
	Ready(ctxt context.Context) error

	// =====================================================================================
	// Broadcast slots

	/*
		DefineBroadcastSlot create new broadcast slot booking

		The entry status is forced to `scheduled`, and the entry ID is assigned here. Any
		DJ slots attached to the entry are inserted alongside it.

			@param ctxt context.Context - execution context
			@param entry common.BroadcastSlot - slot parameters
			@returns new slot entry ID
	*/
	DefineBroadcastSlot(ctxt context.Context, entry common.BroadcastSlot) (string, error)

	/*
		GetBroadcastSlot retrieve a broadcast slot with its DJ slots and recordings

			@param ctxt context.Context - execution context
			@param id string - slot entry ID
			@returns slot entry
	*/
	GetBroadcastSlot(ctxt context.Context, id string) (common.BroadcastSlot, error)

	/*
		GetBroadcastSlotByToken retrieve a broadcast slot by its capability token

			@param ctxt context.Context - execution context
			@param token string - capability token
			@returns slot entry
	*/
	GetBroadcastSlotByToken(ctxt context.Context, token string) (common.BroadcastSlot, error)

	/*
		ListBroadcastSlots list broadcast slots, optionally for one station only

			@param ctxt context.Context - execution context
			@param stationID *string - optionally, the station to filter by
			@returns slot entries
	*/
	ListBroadcastSlots(ctxt context.Context, stationID *string) ([]common.BroadcastSlot, error)

	/*
		ListOverdueBroadcastSlots list non-terminal slots whose booked window has passed

			@param ctxt context.Context - execution context
			@param currentTime time.Time - timestamp to compare the window end against
			@returns slot entries
	*/
	ListOverdueBroadcastSlots(
		ctxt context.Context, currentTime time.Time,
	) ([]common.BroadcastSlot, error)

	/*
		DeleteBroadcastSlot delete a broadcast slot with its DJ slots and recordings

			@param ctxt context.Context - execution context
			@param id string - slot entry ID
	*/
	DeleteBroadcastSlot(ctxt context.Context, id string) error

	/*
		ReplaceSlotLineup replace the DJ slot lineup of a broadcast slot

			@param ctxt context.Context - execution context
			@param slotID string - slot entry ID
			@param lineup []common.DJSlot - new performer sub-intervals in play order
			@returns new DJ slot entry IDs in play order
	*/
	ReplaceSlotLineup(
		ctxt context.Context, slotID string, lineup []common.DJSlot,
	) ([]string, error)

	/*
		TransitionSlotStatus conditionally move a broadcast slot between statuses

		The status write only lands when the slot currently holds one of the `from`
		statuses. This conditional write is the synchronization point between competing
		session actions and the reconciliation sweep. When the write is lost, the entry
		is re-read and returned along with ErrorInvalidTransition so the caller can
		inspect who won.

			@param ctxt context.Context - execution context
			@param id string - slot entry ID
			@param from []common.SlotStatus - statuses the slot must currently hold
			@param to common.SlotStatus - target status
			@param claim *common.LiveClaim - performer claim to record, if any
			@param timestamp time.Time - transition timestamp
			@returns the slot entry after the attempt
	*/
	TransitionSlotStatus(
		ctxt context.Context,
		id string,
		from []common.SlotStatus,
		to common.SlotStatus,
		claim *common.LiveClaim,
		timestamp time.Time,
	) (common.BroadcastSlot, error)

	/*
		UpdateSlotPromo set the show level promo content of a broadcast slot

			@param ctxt context.Context - execution context
			@param id string - slot entry ID
			@param promo string - promo content
	*/
	UpdateSlotPromo(ctxt context.Context, id, promo string) error

	/*
		UpdateSlotThankYou set the show level thank-you message of a broadcast slot

			@param ctxt context.Context - execution context
			@param id string - slot entry ID
			@param message string - thank-you message
	*/
	UpdateSlotThankYou(ctxt context.Context, id, message string) error

	/*
		UpdateDJSlotPromo set the per-performer promo override of a DJ slot

			@param ctxt context.Context - execution context
			@param djSlotID string - DJ slot entry ID
			@param promo string - promo content
	*/
	UpdateDJSlotPromo(ctxt context.Context, djSlotID, promo string) error

	/*
		UpdateDJSlotThankYou set the per-performer thank-you override of a DJ slot

			@param ctxt context.Context - execution context
			@param djSlotID string - DJ slot entry ID
			@param message string - thank-you message
	*/
	UpdateDJSlotThankYou(ctxt context.Context, djSlotID, message string) error

	// =====================================================================================
	// Recordings

	/*
		RecordRecordingStart append a new recording segment in `recording` state

			@param ctxt context.Context - execution context
			@param slotID string - parent slot entry ID
			@param egressID string - egress handle assigned by the media transport
			@param startedAt time.Time - when capture began
			@returns new recording entry ID
	*/
	RecordRecordingStart(
		ctxt context.Context, slotID, egressID string, startedAt time.Time,
	) (string, error)

	/*
		GetRecording retrieve a recording segment

			@param ctxt context.Context - execution context
			@param id string - recording entry ID
			@returns recording entry
	*/
	GetRecording(ctxt context.Context, id string) (common.Recording, error)

	/*
		GetRecordingByEgressID retrieve a recording segment by its egress handle

			@param ctxt context.Context - execution context
			@param egressID string - egress handle assigned by the media transport
			@returns recording entry
	*/
	GetRecordingByEgressID(ctxt context.Context, egressID string) (common.Recording, error)

	/*
		UpdateRecordingStatus update the lifecycle state of a recording segment

			@param ctxt context.Context - execution context
			@param id string - recording entry ID
			@param newStatus common.RecordingStatus - new lifecycle state
			@param endedAt *time.Time - when capture stopped, if known
			@param durationInSec *int - capture length, if known
			@param url *string - playback URL, if available
	*/
	UpdateRecordingStatus(
		ctxt context.Context,
		id string,
		newStatus common.RecordingStatus,
		endedAt *time.Time,
		durationInSec *int,
		url *string,
	) error

	/*
		ListRecordings list the recording segments of a broadcast slot

			@param ctxt context.Context - execution context
			@param slotID string - parent slot entry ID
			@returns recording entries in capture order
	*/
	ListRecordings(ctxt context.Context, slotID string) ([]common.Recording, error)
}

// persistenceManagerImpl implements PersistenceManager
type persistenceManagerImpl struct {
	goutils.Component
	db        *gorm.DB
	validator *validator.Validate
}

/*
NewManager define a new DB access manager

	@param dbDialector gorm.Dialector - GORM SQL dialector
	@param logLevel logger.LogLevel - SQL log level
	@returns new manager
*/
func NewManager(dbDialector gorm.Dialector, logLevel logger.LogLevel) (PersistenceManager, error) {
	db, err := gorm.Open(dbDialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logLevel),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, err
	}

	// Prepare the databases
	if err := db.AutoMigrate(&broadcastSlot{}); err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&djSlot{}); err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&recording{}); err != nil {
		return nil, err
	}

	logTags := log.Fields{"module": "db", "component": "manager", "instance": dbDialector.Name()}
	return &persistenceManagerImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		db:        db,
		validator: validator.New(),
	}, nil
}

func (m *persistenceManagerImpl) Ready(ctxt context.Context) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		tmp := tx.Find(&[]broadcastSlot{}).Limit(1)
		return tmp.Error
	})
}

// =====================================================================================
// Broadcast slots

func (m *persistenceManagerImpl) DefineBroadcastSlot(
	ctxt context.Context, entry common.BroadcastSlot,
) (string, error) {
	newEntryID := ""
	return newEntryID, m.db.Transaction(func(tx *gorm.DB) error {
		logTags := m.GetLogTagsForContext(ctxt)

		// Prepare new entry
		newEntryID = uuid.NewString()
		entry.ID = newEntryID
		entry.Status = common.SlotStatusScheduled
		newEntry := broadcastSlot{BroadcastSlot: entry}
		for idx, sub := range entry.DJSlots {
			sub.ID = uuid.NewString()
			sub.BroadcastSlotID = newEntryID
			sub.Position = idx
			newEntry.DJSlots = append(newEntry.DJSlots, djSlot{DJSlot: sub})
		}

		// Verify data
		if err := m.validator.Struct(&newEntry); err != nil {
			return err
		}

		// Insert entry
		if tmp := tx.Create(&newEntry); tmp.Error != nil {
			return tmp.Error
		}

		log.
			WithFields(logTags).
			WithField("station", entry.StationID).
			WithField("broadcast-type", entry.BroadcastType).
			WithField("start", entry.StartTime).
			WithField("id", newEntryID).
			Info("Defined new broadcast slot")
		return nil
	})
}

// fetchBroadcastSlot read one slot with its DJ slots and recordings within a transaction
func fetchBroadcastSlot(tx *gorm.DB, query string, arg interface{}) (common.BroadcastSlot, error) {
	var entry broadcastSlot
	if tmp := tx.
		Preload("DJSlots", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Recordings", func(db *gorm.DB) *gorm.DB { return db.Order("started_at") }).
		First(&entry, query, arg); tmp.Error != nil {
		return common.BroadcastSlot{}, tmp.Error
	}
	result := entry.BroadcastSlot
	for _, sub := range entry.DJSlots {
		result.DJSlots = append(result.DJSlots, sub.DJSlot)
	}
	for _, seg := range entry.Recordings {
		result.Recordings = append(result.Recordings, seg.Recording)
	}
	return result, nil
}

func (m *persistenceManagerImpl) GetBroadcastSlot(
	ctxt context.Context, id string,
) (common.BroadcastSlot, error) {
	var result common.BroadcastSlot
	return result, m.db.Transaction(func(tx *gorm.DB) error {
		entry, err := fetchBroadcastSlot(tx, "id = ?", id)
		if err != nil {
			return err
		}
		result = entry
		return nil
	})
}

func (m *persistenceManagerImpl) GetBroadcastSlotByToken(
	ctxt context.Context, token string,
) (common.BroadcastSlot, error) {
	var result common.BroadcastSlot
	return result, m.db.Transaction(func(tx *gorm.DB) error {
		entry, err := fetchBroadcastSlot(tx, "broadcast_token = ?", token)
		if err != nil {
			return err
		}
		result = entry
		return nil
	})
}

func (m *persistenceManagerImpl) ListBroadcastSlots(
	ctxt context.Context, stationID *string,
) ([]common.BroadcastSlot, error) {
	var result []common.BroadcastSlot
	return result, m.db.Transaction(func(tx *gorm.DB) error {
		var entries []broadcastSlot
		query := tx.Order("start_ts")
		if stationID != nil {
			query = query.Where("station = ?", *stationID)
		}
		if tmp := query.Find(&entries); tmp.Error != nil {
			return tmp.Error
		}
		for _, entry := range entries {
			result = append(result, entry.BroadcastSlot)
		}
		return nil
	})
}

func (m *persistenceManagerImpl) ListOverdueBroadcastSlots(
	ctxt context.Context, currentTime time.Time,
) ([]common.BroadcastSlot, error) {
	var result []common.BroadcastSlot
	return result, m.db.Transaction(func(tx *gorm.DB) error {
		var entries []broadcastSlot
		if tmp := tx.
			Where("end_ts < ?", currentTime).
			Where("status IN ?", []common.SlotStatus{
				common.SlotStatusScheduled, common.SlotStatusLive, common.SlotStatusPaused,
			}).
			Order("end_ts").
			Find(&entries); tmp.Error != nil {
			return tmp.Error
		}
		for _, entry := range entries {
			result = append(result, entry.BroadcastSlot)
		}
		return nil
	})
}

func (m *persistenceManagerImpl) DeleteBroadcastSlot(ctxt context.Context, id string) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		logTags := m.GetLogTagsForContext(ctxt)
		if tmp := tx.Where("broadcast_slot = ?", id).Delete(&djSlot{}); tmp.Error != nil {
			return tmp.Error
		}
		if tmp := tx.Where("broadcast_slot = ?", id).Delete(&recording{}); tmp.Error != nil {
			return tmp.Error
		}
		if tmp := tx.Delete(&broadcastSlot{
			BroadcastSlot: common.BroadcastSlot{ID: id},
		}); tmp.Error != nil {
			return tmp.Error
		}
		log.WithFields(logTags).WithField("id", id).Info("Deleted broadcast slot")
		return nil
	})
}

func (m *persistenceManagerImpl) ReplaceSlotLineup(
	ctxt context.Context, slotID string, lineup []common.DJSlot,
) ([]string, error) {
	newIDs := []string{}
	return newIDs, m.db.Transaction(func(tx *gorm.DB) error {
		logTags := m.GetLogTagsForContext(ctxt)

		// The parent slot must exist
		var parent broadcastSlot
		if tmp := tx.First(&parent, "id = ?", slotID); tmp.Error != nil {
			return tmp.Error
		}

		// Prepare replacement entries
		newEntries := []djSlot{}
		for idx, sub := range lineup {
			sub.ID = uuid.NewString()
			sub.BroadcastSlotID = slotID
			sub.Position = idx
			newEntry := djSlot{DJSlot: sub}
			// Verify data
			if err := m.validator.Struct(&newEntry); err != nil {
				return err
			}
			newEntries = append(newEntries, newEntry)
			newIDs = append(newIDs, sub.ID)
		}

		// Swap the lineup
		if tmp := tx.Where("broadcast_slot = ?", slotID).Delete(&djSlot{}); tmp.Error != nil {
			return tmp.Error
		}
		if len(newEntries) > 0 {
			if tmp := tx.Create(&newEntries); tmp.Error != nil {
				return tmp.Error
			}
		}

		log.
			WithFields(logTags).
			WithField("slot-id", slotID).
			WithField("dj-slots", len(newEntries)).
			Info("Replaced slot lineup")
		return nil
	})
}

func (m *persistenceManagerImpl) TransitionSlotStatus(
	ctxt context.Context,
	id string,
	from []common.SlotStatus,
	to common.SlotStatus,
	claim *common.LiveClaim,
	timestamp time.Time,
) (common.BroadcastSlot, error) {
	var result common.BroadcastSlot
	return result, m.db.Transaction(func(tx *gorm.DB) error {
		logTags := m.GetLogTagsForContext(ctxt)

		updates := map[string]interface{}{"status": to}
		if claim != nil {
			updates["live_dj_user_id"] = claim.UserID
			updates["live_dj_username"] = claim.Username
			updates["current_dj_slot"] = claim.DJSlotID
		}
		if to == common.SlotStatusLive {
			// Only the first successful go-live sets the instant
			updates["went_live_at"] = gorm.Expr("COALESCE(went_live_at, ?)", timestamp)
		}

		// The status write only lands when the slot still holds an expected status
		tmp := tx.
			Model(&broadcastSlot{}).
			Where("id = ?", id).
			Where("status IN ?", from).
			Updates(updates)
		if tmp.Error != nil {
			return tmp.Error
		}

		current, err := fetchBroadcastSlot(tx, "id = ?", id)
		if err != nil {
			return err
		}
		result = current

		if tmp.RowsAffected == 0 {
			// Lost the write. Report the status which won.
			log.
				WithFields(logTags).
				WithField("slot-id", id).
				WithField("requested", to).
				WithField("current", current.Status).
				Debug("Slot status transition lost")
			return common.ErrorInvalidTransition{From: current.Status, To: to}
		}

		log.
			WithFields(logTags).
			WithField("slot-id", id).
			WithField("status", to).
			Info("Slot status transitioned")
		return nil
	})
}

func (m *persistenceManagerImpl) UpdateSlotPromo(ctxt context.Context, id, promo string) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		tmp := tx.
			Model(&broadcastSlot{}).
			Where("id = ?", id).
			Update("promo", promo)
		if tmp.Error != nil {
			return tmp.Error
		}
		if tmp.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (m *persistenceManagerImpl) UpdateSlotThankYou(ctxt context.Context, id, message string) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		tmp := tx.
			Model(&broadcastSlot{}).
			Where("id = ?", id).
			Update("thank_you", message)
		if tmp.Error != nil {
			return tmp.Error
		}
		if tmp.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (m *persistenceManagerImpl) UpdateDJSlotPromo(
	ctxt context.Context, djSlotID, promo string,
) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		tmp := tx.
			Model(&djSlot{}).
			Where("id = ?", djSlotID).
			Update("promo", promo)
		if tmp.Error != nil {
			return tmp.Error
		}
		if tmp.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (m *persistenceManagerImpl) UpdateDJSlotThankYou(
	ctxt context.Context, djSlotID, message string,
) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		tmp := tx.
			Model(&djSlot{}).
			Where("id = ?", djSlotID).
			Update("thank_you", message)
		if tmp.Error != nil {
			return tmp.Error
		}
		if tmp.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// =====================================================================================
// Recordings

func (m *persistenceManagerImpl) RecordRecordingStart(
	ctxt context.Context, slotID, egressID string, startedAt time.Time,
) (string, error) {
	var newID string
	return newID, m.db.Transaction(func(tx *gorm.DB) error {
		logTags := m.GetLogTagsForContext(ctxt)

		newID = ulid.Make().String()
		newEntry := recording{
			Recording: common.Recording{
				ID:              newID,
				BroadcastSlotID: slotID,
				EgressID:        egressID,
				Status:          common.RecordingStatusRecording,
				StartedAt:       startedAt,
			},
		}

		// Verify data
		if err := m.validator.Struct(&newEntry); err != nil {
			return err
		}

		// Insert entry
		if tmp := tx.Create(&newEntry); tmp.Error != nil {
			return tmp.Error
		}

		log.
			WithFields(logTags).
			WithField("slot-id", slotID).
			WithField("egress-id", egressID).
			WithField("id", newID).
			Info("Recorded new recording segment")
		return nil
	})
}

func (m *persistenceManagerImpl) GetRecording(
	ctxt context.Context, id string,
) (common.Recording, error) {
	var result common.Recording
	return result, m.db.Transaction(func(tx *gorm.DB) error {
		var entry recording
		if tmp := tx.First(&entry, "id = ?", id); tmp.Error != nil {
			return tmp.Error
		}
		result = entry.Recording
		return nil
	})
}

func (m *persistenceManagerImpl) GetRecordingByEgressID(
	ctxt context.Context, egressID string,
) (common.Recording, error) {
	var result common.Recording
	return result, m.db.Transaction(func(tx *gorm.DB) error {
		var entry recording
		if tmp := tx.First(&entry, "egress_id = ?", egressID); tmp.Error != nil {
			return tmp.Error
		}
		result = entry.Recording
		return nil
	})
}

func (m *persistenceManagerImpl) UpdateRecordingStatus(
	ctxt context.Context,
	id string,
	newStatus common.RecordingStatus,
	endedAt *time.Time,
	durationInSec *int,
	url *string,
) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		logTags := m.GetLogTagsForContext(ctxt)

		updates := map[string]interface{}{"status": newStatus}
		if endedAt != nil {
			updates["ended_at"] = *endedAt
		}
		if durationInSec != nil {
			updates["duration"] = *durationInSec
		}
		if url != nil {
			updates["url"] = *url
		}

		tmp := tx.Model(&recording{}).Where("id = ?", id).Updates(updates)
		if tmp.Error != nil {
			return tmp.Error
		}
		if tmp.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		log.
			WithFields(logTags).
			WithField("id", id).
			WithField("status", newStatus).
			Info("Updated recording segment status")
		return nil
	})
}

func (m *persistenceManagerImpl) ListRecordings(
	ctxt context.Context, slotID string,
) ([]common.Recording, error) {
	var result []common.Recording
	return result, m.db.Transaction(func(tx *gorm.DB) error {
		var entries []recording
		if tmp := tx.
			Where("broadcast_slot = ?", slotID).
			Order("started_at").
			Find(&entries); tmp.Error != nil {
			return tmp.Error
		}
		for _, entry := range entries {
			result = append(result, entry.Recording)
		}
		return nil
	})
}
