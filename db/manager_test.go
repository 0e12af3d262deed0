package db_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/beatwave/onair/common"
	"github.com/beatwave/onair/db"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
)

func buildTestVenueSlot(startTime time.Time, window time.Duration) common.BroadcastSlot {
	venueSlug := fmt.Sprintf("venue-%s", uuid.NewString())
	return common.BroadcastSlot{
		StationID:      fmt.Sprintf("station-%s", uuid.NewString()),
		BroadcastType:  common.BroadcastTypeVenue,
		StartTime:      startTime,
		EndTime:        startTime.Add(window),
		BroadcastToken: ulid.Make().String(),
		TokenExpiresAt: startTime.Add(window).Add(time.Hour),
		VenueSlug:      &venueSlug,
	}
}

func TestDBManagerBroadcastSlot(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	testInstance := fmt.Sprintf("ut-%s", uuid.NewString())
	testDB := fmt.Sprintf("/tmp/%s.db", testInstance)
	uut, err := db.NewManager(db.GetSqliteDialector(testDB), logger.Info)
	assert.Nil(err)

	log.Debugf("Using %s", testDB)

	utCtxt := context.Background()

	assert.Nil(uut.Ready(utCtxt))

	// Case 0: no slots
	{
		_, err := uut.GetBroadcastSlot(utCtxt, uuid.NewString())
		assert.NotNil(err)
		result, err := uut.ListBroadcastSlots(utCtxt, nil)
		assert.Nil(err)
		assert.Len(result, 0)
	}

	startTime := time.Now().UTC().Truncate(time.Second).Add(time.Hour)

	// Case 1: create venue slot
	slot1 := buildTestVenueSlot(startTime, time.Hour*2)
	slotID1, err := uut.DefineBroadcastSlot(utCtxt, slot1)
	assert.Nil(err)
	log.Debugf("Slot ID1 %s", slotID1)
	{
		entry, err := uut.GetBroadcastSlot(utCtxt, slotID1)
		assert.Nil(err)
		assert.Equal(slot1.StationID, entry.StationID)
		assert.Equal(common.SlotStatusScheduled, entry.Status)
		assert.Equal(common.BroadcastTypeVenue, entry.BroadcastType)
		assert.Equal(*slot1.VenueSlug, *entry.VenueSlug)
		assert.Len(entry.DJSlots, 0)
	}

	// Case 2: fetch by capability token
	{
		entry, err := uut.GetBroadcastSlotByToken(utCtxt, slot1.BroadcastToken)
		assert.Nil(err)
		assert.Equal(slotID1, entry.ID)
	}
	{
		_, err := uut.GetBroadcastSlotByToken(utCtxt, ulid.Make().String())
		assert.NotNil(err)
	}

	// Case 3: second slot on another station
	slot2 := buildTestVenueSlot(startTime.Add(time.Hour*3), time.Hour)
	slotID2, err := uut.DefineBroadcastSlot(utCtxt, slot2)
	assert.Nil(err)
	{
		entries, err := uut.ListBroadcastSlots(utCtxt, nil)
		assert.Nil(err)
		assert.Len(entries, 2)
		entries, err = uut.ListBroadcastSlots(utCtxt, &slot2.StationID)
		assert.Nil(err)
		assert.Len(entries, 1)
		assert.Equal(slotID2, entries[0].ID)
	}

	// Case 4: install lineup
	lineup := []common.DJSlot{
		{
			StartTime: slot1.StartTime,
			EndTime:   slot1.StartTime.Add(time.Hour),
			Performers: []common.PerformerProfile{
				{DJName: "DJ One"},
			},
		},
		{
			StartTime: slot1.StartTime.Add(time.Hour),
			EndTime:   slot1.EndTime,
			Performers: []common.PerformerProfile{
				{DJName: "DJ Two"}, {DJName: "DJ Three"},
			},
		},
	}
	djSlotIDs, err := uut.ReplaceSlotLineup(utCtxt, slotID1, lineup)
	assert.Nil(err)
	assert.Len(djSlotIDs, 2)
	{
		entry, err := uut.GetBroadcastSlot(utCtxt, slotID1)
		assert.Nil(err)
		assert.Len(entry.DJSlots, 2)
		assert.Equal(djSlotIDs[0], entry.DJSlots[0].ID)
		assert.Equal(djSlotIDs[1], entry.DJSlots[1].ID)
		assert.Equal(0, entry.DJSlots[0].Position)
		assert.Equal(1, entry.DJSlots[1].Position)
		assert.Len(entry.DJSlots[1].Performers, 2)
	}

	// Case 5: replace lineup again
	newIDs, err := uut.ReplaceSlotLineup(utCtxt, slotID1, lineup[:1])
	assert.Nil(err)
	assert.Len(newIDs, 1)
	{
		entry, err := uut.GetBroadcastSlot(utCtxt, slotID1)
		assert.Nil(err)
		assert.Len(entry.DJSlots, 1)
		assert.NotEqual(djSlotIDs[0], entry.DJSlots[0].ID)
	}

	// Case 6: lineup replacement on unknown slot
	{
		_, err := uut.ReplaceSlotLineup(utCtxt, uuid.NewString(), lineup)
		assert.NotNil(err)
	}

	// Case 7: promo and thank-you updates
	assert.Nil(uut.UpdateSlotPromo(utCtxt, slotID1, "Friday night takeover"))
	assert.Nil(uut.UpdateSlotThankYou(utCtxt, slotID1, "thanks for tuning in"))
	{
		entry, err := uut.GetBroadcastSlot(utCtxt, slotID1)
		assert.Nil(err)
		assert.Equal("Friday night takeover", *entry.PromoContent)
		assert.Equal("thanks for tuning in", *entry.ThankYouMessage)
		assert.Nil(uut.UpdateDJSlotPromo(utCtxt, entry.DJSlots[0].ID, "opening set"))
		entry, err = uut.GetBroadcastSlot(utCtxt, slotID1)
		assert.Nil(err)
		assert.Equal("opening set", *entry.DJSlots[0].PromoContent)
	}
	assert.NotNil(uut.UpdateSlotPromo(utCtxt, uuid.NewString(), "nope"))
	assert.NotNil(uut.UpdateDJSlotThankYou(utCtxt, uuid.NewString(), "nope"))

	// Case 8: delete slot
	assert.Nil(uut.DeleteBroadcastSlot(utCtxt, slotID1))
	{
		_, err := uut.GetBroadcastSlot(utCtxt, slotID1)
		assert.NotNil(err)
		entries, err := uut.ListBroadcastSlots(utCtxt, nil)
		assert.Nil(err)
		assert.Len(entries, 1)
	}
}

func TestDBManagerSlotStatusTransition(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	testInstance := fmt.Sprintf("ut-%s", uuid.NewString())
	testDB := fmt.Sprintf("/tmp/%s.db", testInstance)
	uut, err := db.NewManager(db.GetSqliteDialector(testDB), logger.Info)
	assert.Nil(err)

	utCtxt := context.Background()

	currentTime := time.Now().UTC().Truncate(time.Second)
	slotID, err := uut.DefineBroadcastSlot(
		utCtxt, buildTestVenueSlot(currentTime.Add(-time.Minute), time.Hour),
	)
	assert.Nil(err)

	claim := common.LiveClaim{UserID: uuid.NewString(), Username: "dj-resident"}

	// Case 0: go live from scheduled
	goLiveAt := currentTime
	{
		entry, err := uut.TransitionSlotStatus(
			utCtxt,
			slotID,
			[]common.SlotStatus{common.SlotStatusScheduled},
			common.SlotStatusLive,
			&claim,
			goLiveAt,
		)
		assert.Nil(err)
		assert.Equal(common.SlotStatusLive, entry.Status)
		assert.Equal(claim.UserID, *entry.LiveDJUserID)
		assert.NotNil(entry.WentLiveAt)
		assert.Equal(goLiveAt, entry.WentLiveAt.UTC())
	}

	// Case 1: second go-live loses the conditional write
	{
		entry, err := uut.TransitionSlotStatus(
			utCtxt,
			slotID,
			[]common.SlotStatus{common.SlotStatusScheduled},
			common.SlotStatusLive,
			&common.LiveClaim{UserID: uuid.NewString(), Username: "dj-late"},
			currentTime.Add(time.Second),
		)
		assert.NotNil(err)
		assert.IsType(common.ErrorInvalidTransition{}, err)
		assert.Equal(common.SlotStatusLive, entry.Status)
		assert.Equal(claim.UserID, *entry.LiveDJUserID)
	}

	// Case 2: pause, then resume. The go-live instant must not move.
	{
		entry, err := uut.TransitionSlotStatus(
			utCtxt,
			slotID,
			[]common.SlotStatus{common.SlotStatusLive},
			common.SlotStatusPaused,
			nil,
			currentTime.Add(time.Minute),
		)
		assert.Nil(err)
		assert.Equal(common.SlotStatusPaused, entry.Status)
		assert.Equal(claim.UserID, *entry.LiveDJUserID)

		entry, err = uut.TransitionSlotStatus(
			utCtxt,
			slotID,
			[]common.SlotStatus{common.SlotStatusPaused},
			common.SlotStatusLive,
			&claim,
			currentTime.Add(time.Minute*2),
		)
		assert.Nil(err)
		assert.Equal(common.SlotStatusLive, entry.Status)
		assert.Equal(goLiveAt, entry.WentLiveAt.UTC())
	}

	// Case 3: complete
	{
		entry, err := uut.TransitionSlotStatus(
			utCtxt,
			slotID,
			[]common.SlotStatus{common.SlotStatusLive, common.SlotStatusPaused},
			common.SlotStatusCompleted,
			nil,
			currentTime.Add(time.Minute*30),
		)
		assert.Nil(err)
		assert.Equal(common.SlotStatusCompleted, entry.Status)
	}

	// Case 4: no transitions out of a terminal status
	{
		entry, err := uut.TransitionSlotStatus(
			utCtxt,
			slotID,
			[]common.SlotStatus{common.SlotStatusScheduled, common.SlotStatusPaused},
			common.SlotStatusLive,
			&claim,
			currentTime.Add(time.Minute*31),
		)
		assert.NotNil(err)
		assert.IsType(common.ErrorInvalidTransition{}, err)
		assert.Equal(common.SlotStatusCompleted, entry.Status)
	}

	// Case 5: unknown slot
	{
		_, err := uut.TransitionSlotStatus(
			utCtxt,
			uuid.NewString(),
			[]common.SlotStatus{common.SlotStatusScheduled},
			common.SlotStatusLive,
			&claim,
			currentTime,
		)
		assert.NotNil(err)
	}

	// Case 6: overdue listing only reports non-terminal slots past their window
	overdueID, err := uut.DefineBroadcastSlot(
		utCtxt, buildTestVenueSlot(currentTime.Add(-time.Hour*3), time.Hour),
	)
	assert.Nil(err)
	_, err = uut.DefineBroadcastSlot(
		utCtxt, buildTestVenueSlot(currentTime.Add(time.Hour), time.Hour),
	)
	assert.Nil(err)
	{
		entries, err := uut.ListOverdueBroadcastSlots(utCtxt, currentTime)
		assert.Nil(err)
		assert.Len(entries, 1)
		assert.Equal(overdueID, entries[0].ID)
	}
}

func TestDBManagerRecording(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	testInstance := fmt.Sprintf("ut-%s", uuid.NewString())
	testDB := fmt.Sprintf("/tmp/%s.db", testInstance)
	uut, err := db.NewManager(db.GetSqliteDialector(testDB), logger.Info)
	assert.Nil(err)

	utCtxt := context.Background()

	currentTime := time.Now().UTC().Truncate(time.Second)
	slotID, err := uut.DefineBroadcastSlot(
		utCtxt, buildTestVenueSlot(currentTime, time.Hour),
	)
	assert.Nil(err)

	// Case 0: no recordings
	{
		entries, err := uut.ListRecordings(utCtxt, slotID)
		assert.Nil(err)
		assert.Len(entries, 0)
		_, err = uut.GetRecordingByEgressID(utCtxt, ulid.Make().String())
		assert.NotNil(err)
	}

	// Case 1: start a recording segment
	egressID1 := fmt.Sprintf("egress-%s", ulid.Make().String())
	recordingID1, err := uut.RecordRecordingStart(utCtxt, slotID, egressID1, currentTime)
	assert.Nil(err)
	{
		entry, err := uut.GetRecording(utCtxt, recordingID1)
		assert.Nil(err)
		assert.Equal(common.RecordingStatusRecording, entry.Status)
		assert.Equal(egressID1, entry.EgressID)
		entry, err = uut.GetRecordingByEgressID(utCtxt, egressID1)
		assert.Nil(err)
		assert.Equal(recordingID1, entry.ID)
	}

	// Case 2: duplicate egress handle rejected
	{
		_, err := uut.RecordRecordingStart(utCtxt, slotID, egressID1, currentTime)
		assert.NotNil(err)
	}

	// Case 3: walk the segment through its lifecycle
	endedAt := currentTime.Add(time.Minute * 20)
	assert.Nil(uut.UpdateRecordingStatus(
		utCtxt, recordingID1, common.RecordingStatusProcessing, &endedAt, nil, nil,
	))
	duration := 1200
	playbackURL := "s3://recordings/show-1.ogg"
	assert.Nil(uut.UpdateRecordingStatus(
		utCtxt, recordingID1, common.RecordingStatusReady, nil, &duration, &playbackURL,
	))
	{
		entry, err := uut.GetRecording(utCtxt, recordingID1)
		assert.Nil(err)
		assert.Equal(common.RecordingStatusReady, entry.Status)
		assert.Equal(endedAt, entry.EndedAt.UTC())
		assert.Equal(duration, *entry.DurationInSec)
		assert.Equal(playbackURL, *entry.URL)
	}

	// Case 4: second segment after a resume
	egressID2 := fmt.Sprintf("egress-%s", ulid.Make().String())
	recordingID2, err := uut.RecordRecordingStart(
		utCtxt, slotID, egressID2, currentTime.Add(time.Minute*25),
	)
	assert.Nil(err)
	{
		entries, err := uut.ListRecordings(utCtxt, slotID)
		assert.Nil(err)
		assert.Len(entries, 2)
		assert.Equal(recordingID1, entries[0].ID)
		assert.Equal(recordingID2, entries[1].ID)
	}

	// Case 5: update on unknown entry
	assert.NotNil(uut.UpdateRecordingStatus(
		utCtxt, uuid.NewString(), common.RecordingStatusFailed, nil, nil, nil,
	))

	// Case 6: slot and recordings fetched together
	{
		entry, err := uut.GetBroadcastSlot(utCtxt, slotID)
		assert.Nil(err)
		assert.Len(entry.Recordings, 2)
	}
}
