package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/beatwave/onair/api"
	"github.com/beatwave/onair/common"
	"github.com/beatwave/onair/mocks"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func buildTestManagementHandler(
	t *testing.T, mockDB *mocks.PersistenceManager, mockStore *mocks.RecordingStore,
) (api.SlotManagementHandler, error) {
	return api.NewSlotManagementHandler(
		mockDB,
		nil,
		mockStore,
		common.RecordingStorageConfig{StorageBucket: "recordings", SignedURLTTLInSec: 300},
		common.SlotGatingConfig{GoLiveLeadTimeInSec: 600, TokenGraceInSec: 3600},
		common.HTTPRequestLogging{RequestIDHeader: "X-Request-ID", DoNotLogHeaders: []string{}},
	)
}

func TestManagementDefineNewBroadcastSlot(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	mockDB := mocks.NewPersistenceManager(t)

	uut, err := buildTestManagementHandler(t, mockDB, nil)
	assert.Nil(err)

	// Case 0: no payload
	{
		req, err := http.NewRequest("POST", "/v1/slot", nil)
		assert.Nil(err)

		router := mux.NewRouter()
		respRecorder := httptest.NewRecorder()
		router.HandleFunc("/v1/slot", uut.LoggingMiddleware(uut.DefineNewBroadcastSlotHandler()))

		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusBadRequest, respRecorder.Code)
	}

	// Case 1: payload is not JSON
	{
		req, err := http.NewRequest("POST", "/v1/slot", bytes.NewBufferString("hello world"))
		assert.Nil(err)

		router := mux.NewRouter()
		respRecorder := httptest.NewRecorder()
		router.HandleFunc("/v1/slot", uut.LoggingMiddleware(uut.DefineNewBroadcastSlotHandler()))

		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusBadRequest, respRecorder.Code)
	}

	currentTime := time.Now().UTC()

	// Case 2: remote slot without a performer name
	{
		params := api.NewBroadcastSlotRequest{
			StationID:     uuid.NewString(),
			BroadcastType: common.BroadcastTypeRemote,
			StartTime:     currentTime.Add(time.Hour),
			EndTime:       currentTime.Add(time.Hour * 2),
		}
		payload, err := json.Marshal(&params)
		assert.Nil(err)
		req, err := http.NewRequest("POST", "/v1/slot", bytes.NewBuffer(payload))
		assert.Nil(err)

		router := mux.NewRouter()
		respRecorder := httptest.NewRecorder()
		router.HandleFunc("/v1/slot", uut.LoggingMiddleware(uut.DefineNewBroadcastSlotHandler()))

		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusBadRequest, respRecorder.Code)
	}

	// Case 3: slot window ends before it starts
	{
		djName := "dj-nova"
		params := api.NewBroadcastSlotRequest{
			StationID:     uuid.NewString(),
			BroadcastType: common.BroadcastTypeRemote,
			StartTime:     currentTime.Add(time.Hour * 2),
			EndTime:       currentTime.Add(time.Hour),
			DJName:        &djName,
		}
		payload, err := json.Marshal(&params)
		assert.Nil(err)
		req, err := http.NewRequest("POST", "/v1/slot", bytes.NewBuffer(payload))
		assert.Nil(err)

		router := mux.NewRouter()
		respRecorder := httptest.NewRecorder()
		router.HandleFunc("/v1/slot", uut.LoggingMiddleware(uut.DefineNewBroadcastSlotHandler()))

		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusBadRequest, respRecorder.Code)
	}

	// Case 4: valid remote slot
	{
		djName := "dj-nova"
		stationID := uuid.NewString()
		params := api.NewBroadcastSlotRequest{
			StationID:     stationID,
			BroadcastType: common.BroadcastTypeRemote,
			StartTime:     currentTime.Add(time.Hour),
			EndTime:       currentTime.Add(time.Hour * 2),
			DJName:        &djName,
		}
		payload, err := json.Marshal(&params)
		assert.Nil(err)
		req, err := http.NewRequest("POST", "/v1/slot", bytes.NewBuffer(payload))
		assert.Nil(err)

		router := mux.NewRouter()
		respRecorder := httptest.NewRecorder()
		router.HandleFunc("/v1/slot", uut.LoggingMiddleware(uut.DefineNewBroadcastSlotHandler()))

		slotID := uuid.NewString()
		var mintedToken string
		mockDB.On(
			"DefineBroadcastSlot",
			mock.AnythingOfType("*context.valueCtx"),
			mock.AnythingOfType("common.BroadcastSlot"),
		).Run(func(args mock.Arguments) {
			entry := args.Get(1).(common.BroadcastSlot)
			assert.Equal(stationID, entry.StationID)
			assert.Equal(common.BroadcastTypeRemote, entry.BroadcastType)
			assert.NotEmpty(entry.BroadcastToken)
			assert.Equal(params.EndTime.Add(time.Hour), entry.TokenExpiresAt)
			mintedToken = entry.BroadcastToken
		}).Return(slotID, nil).Once()
		mockDB.On(
			"GetBroadcastSlot",
			mock.AnythingOfType("*context.valueCtx"),
			slotID,
		).Return(common.BroadcastSlot{
			ID:        slotID,
			StationID: stationID,
			Status:    common.SlotStatusScheduled,
		}, nil).Once()

		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusOK, respRecorder.Code)
		var resp api.BroadcastSlotResponse
		assert.Nil(json.NewDecoder(respRecorder.Body).Decode(&resp))
		assert.Equal(slotID, resp.Slot.ID)
		assert.Equal(mintedToken, resp.BroadcastToken)
	}
}

func TestManagementLineupConstraints(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	mockDB := mocks.NewPersistenceManager(t)

	uut, err := buildTestManagementHandler(t, mockDB, nil)
	assert.Nil(err)

	currentTime := time.Now().UTC()
	venueSlug := "club-luna"

	defineSlot := func(params api.NewBroadcastSlotRequest) *httptest.ResponseRecorder {
		payload, err := json.Marshal(&params)
		assert.Nil(err)
		req, err := http.NewRequest("POST", "/v1/slot", bytes.NewBuffer(payload))
		assert.Nil(err)

		router := mux.NewRouter()
		respRecorder := httptest.NewRecorder()
		router.HandleFunc("/v1/slot", uut.LoggingMiddleware(uut.DefineNewBroadcastSlotHandler()))

		router.ServeHTTP(respRecorder, req)
		return respRecorder
	}

	performers := []common.PerformerProfile{{DJName: "dj-nova"}}

	// Case 0: remote slot can not carry a lineup
	{
		djName := "dj-nova"
		respRecorder := defineSlot(api.NewBroadcastSlotRequest{
			StationID:     uuid.NewString(),
			BroadcastType: common.BroadcastTypeRemote,
			StartTime:     currentTime.Add(time.Hour),
			EndTime:       currentTime.Add(time.Hour * 2),
			DJName:        &djName,
			Lineup: []api.NewDJSlotRequest{{
				StartTime:  currentTime.Add(time.Hour),
				EndTime:    currentTime.Add(time.Hour * 2),
				Performers: performers,
			}},
		})
		assert.Equal(http.StatusBadRequest, respRecorder.Code)
	}

	// Case 1: venue slot without a lineup
	{
		respRecorder := defineSlot(api.NewBroadcastSlotRequest{
			StationID:     uuid.NewString(),
			BroadcastType: common.BroadcastTypeVenue,
			StartTime:     currentTime.Add(time.Hour),
			EndTime:       currentTime.Add(time.Hour * 2),
			VenueSlug:     &venueSlug,
		})
		assert.Equal(http.StatusBadRequest, respRecorder.Code)
	}

	// Case 2: venue slot with a top level performer name
	{
		djName := "dj-nova"
		respRecorder := defineSlot(api.NewBroadcastSlotRequest{
			StationID:     uuid.NewString(),
			BroadcastType: common.BroadcastTypeVenue,
			StartTime:     currentTime.Add(time.Hour),
			EndTime:       currentTime.Add(time.Hour * 2),
			VenueSlug:     &venueSlug,
			DJName:        &djName,
			Lineup: []api.NewDJSlotRequest{{
				StartTime:  currentTime.Add(time.Hour),
				EndTime:    currentTime.Add(time.Hour * 2),
				Performers: performers,
			}},
		})
		assert.Equal(http.StatusBadRequest, respRecorder.Code)
	}

	// Case 3: overlapping DJ slot intervals
	{
		respRecorder := defineSlot(api.NewBroadcastSlotRequest{
			StationID:     uuid.NewString(),
			BroadcastType: common.BroadcastTypeVenue,
			StartTime:     currentTime.Add(time.Hour),
			EndTime:       currentTime.Add(time.Hour * 2),
			VenueSlug:     &venueSlug,
			Lineup: []api.NewDJSlotRequest{
				{
					StartTime:  currentTime.Add(time.Hour),
					EndTime:    currentTime.Add(time.Hour + time.Minute*40),
					Performers: performers,
				},
				{
					StartTime:  currentTime.Add(time.Hour + time.Minute*30),
					EndTime:    currentTime.Add(time.Hour * 2),
					Performers: []common.PerformerProfile{{DJName: "dj-atlas"}},
				},
			},
		})
		assert.Equal(http.StatusBadRequest, respRecorder.Code)
	}

	// Case 4: DJ slot intervals out of order
	{
		respRecorder := defineSlot(api.NewBroadcastSlotRequest{
			StationID:     uuid.NewString(),
			BroadcastType: common.BroadcastTypeVenue,
			StartTime:     currentTime.Add(time.Hour),
			EndTime:       currentTime.Add(time.Hour * 2),
			VenueSlug:     &venueSlug,
			Lineup: []api.NewDJSlotRequest{
				{
					StartTime:  currentTime.Add(time.Hour + time.Minute*30),
					EndTime:    currentTime.Add(time.Hour * 2),
					Performers: performers,
				},
				{
					StartTime:  currentTime.Add(time.Hour),
					EndTime:    currentTime.Add(time.Hour + time.Minute*30),
					Performers: []common.PerformerProfile{{DJName: "dj-atlas"}},
				},
			},
		})
		assert.Equal(http.StatusBadRequest, respRecorder.Code)
	}

	// Case 5: DJ slot interval extends past the slot window
	{
		respRecorder := defineSlot(api.NewBroadcastSlotRequest{
			StationID:     uuid.NewString(),
			BroadcastType: common.BroadcastTypeVenue,
			StartTime:     currentTime.Add(time.Hour),
			EndTime:       currentTime.Add(time.Hour * 2),
			VenueSlug:     &venueSlug,
			Lineup: []api.NewDJSlotRequest{{
				StartTime:  currentTime.Add(time.Hour),
				EndTime:    currentTime.Add(time.Hour * 3),
				Performers: performers,
			}},
		})
		assert.Equal(http.StatusBadRequest, respRecorder.Code)
	}

	// Case 6: valid venue slot with ordered disjoint lineup
	{
		slotID := uuid.NewString()
		mockDB.On(
			"DefineBroadcastSlot",
			mock.AnythingOfType("*context.valueCtx"),
			mock.AnythingOfType("common.BroadcastSlot"),
		).Run(func(args mock.Arguments) {
			entry := args.Get(1).(common.BroadcastSlot)
			assert.Equal(common.BroadcastTypeVenue, entry.BroadcastType)
			assert.Nil(entry.DJName)
			assert.Len(entry.DJSlots, 2)
		}).Return(slotID, nil).Once()
		mockDB.On(
			"GetBroadcastSlot",
			mock.AnythingOfType("*context.valueCtx"),
			slotID,
		).Return(common.BroadcastSlot{
			ID:            slotID,
			BroadcastType: common.BroadcastTypeVenue,
			Status:        common.SlotStatusScheduled,
		}, nil).Once()

		respRecorder := defineSlot(api.NewBroadcastSlotRequest{
			StationID:     uuid.NewString(),
			BroadcastType: common.BroadcastTypeVenue,
			StartTime:     currentTime.Add(time.Hour),
			EndTime:       currentTime.Add(time.Hour * 2),
			VenueSlug:     &venueSlug,
			Lineup: []api.NewDJSlotRequest{
				{
					StartTime:  currentTime.Add(time.Hour),
					EndTime:    currentTime.Add(time.Hour + time.Minute*30),
					Performers: performers,
				},
				{
					StartTime:  currentTime.Add(time.Hour + time.Minute*30),
					EndTime:    currentTime.Add(time.Hour * 2),
					Performers: []common.PerformerProfile{{DJName: "dj-atlas"}},
				},
			},
		})
		assert.Equal(http.StatusOK, respRecorder.Code)
	}

	replaceLineup := func(
		slotID string, params api.ReplaceSlotLineupRequest,
	) *httptest.ResponseRecorder {
		payload, err := json.Marshal(&params)
		assert.Nil(err)
		req, err := http.NewRequest(
			"PUT", fmt.Sprintf("/v1/slot/%s/lineup", slotID), bytes.NewBuffer(payload),
		)
		assert.Nil(err)

		router := mux.NewRouter()
		respRecorder := httptest.NewRecorder()
		router.HandleFunc(
			"/v1/slot/{slotID}/lineup", uut.LoggingMiddleware(uut.ReplaceSlotLineupHandler()),
		)

		router.ServeHTTP(respRecorder, req)
		return respRecorder
	}

	// Case 7: lineup replacement targeting a remote slot
	{
		slotID := uuid.NewString()
		djName := "dj-nova"
		mockDB.On(
			"GetBroadcastSlot",
			mock.AnythingOfType("*context.valueCtx"),
			slotID,
		).Return(common.BroadcastSlot{
			ID:            slotID,
			BroadcastType: common.BroadcastTypeRemote,
			Status:        common.SlotStatusScheduled,
			StartTime:     currentTime.Add(time.Hour),
			EndTime:       currentTime.Add(time.Hour * 2),
			DJName:        &djName,
		}, nil).Once()

		respRecorder := replaceLineup(slotID, api.ReplaceSlotLineupRequest{
			Lineup: []api.NewDJSlotRequest{{
				StartTime:  currentTime.Add(time.Hour),
				EndTime:    currentTime.Add(time.Hour * 2),
				Performers: performers,
			}},
		})
		assert.Equal(http.StatusBadRequest, respRecorder.Code)
	}

	// Case 8: replacement lineup falls outside the slot window
	{
		slotID := uuid.NewString()
		mockDB.On(
			"GetBroadcastSlot",
			mock.AnythingOfType("*context.valueCtx"),
			slotID,
		).Return(common.BroadcastSlot{
			ID:            slotID,
			BroadcastType: common.BroadcastTypeVenue,
			Status:        common.SlotStatusScheduled,
			StartTime:     currentTime.Add(time.Hour),
			EndTime:       currentTime.Add(time.Hour * 2),
			VenueSlug:     &venueSlug,
		}, nil).Once()

		respRecorder := replaceLineup(slotID, api.ReplaceSlotLineupRequest{
			Lineup: []api.NewDJSlotRequest{{
				StartTime:  currentTime.Add(time.Minute * 30),
				EndTime:    currentTime.Add(time.Hour + time.Minute*30),
				Performers: performers,
			}},
		})
		assert.Equal(http.StatusBadRequest, respRecorder.Code)
	}
}

func TestManagementSlotFetchAndDelete(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	mockDB := mocks.NewPersistenceManager(t)

	uut, err := buildTestManagementHandler(t, mockDB, nil)
	assert.Nil(err)

	// Case 0: unknown slot
	{
		slotID := uuid.NewString()
		req, err := http.NewRequest("GET", fmt.Sprintf("/v1/slot/%s", slotID), nil)
		assert.Nil(err)

		router := mux.NewRouter()
		respRecorder := httptest.NewRecorder()
		router.HandleFunc(
			"/v1/slot/{slotID}", uut.LoggingMiddleware(uut.GetBroadcastSlotHandler()),
		)

		mockDB.On(
			"GetBroadcastSlot",
			mock.AnythingOfType("*context.valueCtx"),
			slotID,
		).Return(common.BroadcastSlot{}, gorm.ErrRecordNotFound).Once()

		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusNotFound, respRecorder.Code)
	}

	// Case 1: known slot with lineup
	{
		slotID := uuid.NewString()
		req, err := http.NewRequest("GET", fmt.Sprintf("/v1/slot/%s", slotID), nil)
		assert.Nil(err)

		router := mux.NewRouter()
		respRecorder := httptest.NewRecorder()
		router.HandleFunc(
			"/v1/slot/{slotID}", uut.LoggingMiddleware(uut.GetBroadcastSlotHandler()),
		)

		venueSlug := "club-luna"
		mockDB.On(
			"GetBroadcastSlot",
			mock.AnythingOfType("*context.valueCtx"),
			slotID,
		).Return(common.BroadcastSlot{
			ID:            slotID,
			StationID:     uuid.NewString(),
			BroadcastType: common.BroadcastTypeVenue,
			Status:        common.SlotStatusScheduled,
			VenueSlug:     &venueSlug,
			DJSlots: []common.DJSlot{
				{ID: uuid.NewString(), Position: 0},
				{ID: uuid.NewString(), Position: 1},
			},
		}, nil).Once()

		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusOK, respRecorder.Code)
		var resp api.BroadcastSlotResponse
		assert.Nil(json.NewDecoder(respRecorder.Body).Decode(&resp))
		assert.Equal(slotID, resp.Slot.ID)
		assert.Len(resp.Slot.DJSlots, 2)
		assert.Empty(resp.BroadcastToken)
	}

	// Case 2: delete slot
	{
		slotID := uuid.NewString()
		req, err := http.NewRequest("DELETE", fmt.Sprintf("/v1/slot/%s", slotID), nil)
		assert.Nil(err)

		router := mux.NewRouter()
		respRecorder := httptest.NewRecorder()
		router.HandleFunc(
			"/v1/slot/{slotID}", uut.LoggingMiddleware(uut.DeleteBroadcastSlotHandler()),
		)

		mockDB.On(
			"DeleteBroadcastSlot",
			mock.AnythingOfType("*context.valueCtx"),
			slotID,
		).Return(nil).Once()

		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusOK, respRecorder.Code)
	}

	// Case 3: list slots of one station
	{
		stationID := uuid.NewString()
		req, err := http.NewRequest("GET", fmt.Sprintf("/v1/slot?station=%s", stationID), nil)
		assert.Nil(err)

		router := mux.NewRouter()
		respRecorder := httptest.NewRecorder()
		router.HandleFunc("/v1/slot", uut.LoggingMiddleware(uut.ListBroadcastSlotsHandler()))

		mockDB.On(
			"ListBroadcastSlots",
			mock.AnythingOfType("*context.valueCtx"),
			&stationID,
		).Return([]common.BroadcastSlot{
			{ID: uuid.NewString(), StationID: stationID},
			{ID: uuid.NewString(), StationID: stationID},
		}, nil).Once()

		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusOK, respRecorder.Code)
		var resp api.BroadcastSlotListResponse
		assert.Nil(json.NewDecoder(respRecorder.Body).Decode(&resp))
		assert.Len(resp.Slots, 2)
	}
}

func TestManagementReplaceSlotLineup(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	mockDB := mocks.NewPersistenceManager(t)

	uut, err := buildTestManagementHandler(t, mockDB, nil)
	assert.Nil(err)

	slotID := uuid.NewString()
	currentTime := time.Now().UTC()

	// Case 0: empty lineup rejected
	{
		payload, err := json.Marshal(&api.ReplaceSlotLineupRequest{Lineup: []api.NewDJSlotRequest{}})
		assert.Nil(err)
		req, err := http.NewRequest(
			"PUT", fmt.Sprintf("/v1/slot/%s/lineup", slotID), bytes.NewBuffer(payload),
		)
		assert.Nil(err)

		router := mux.NewRouter()
		respRecorder := httptest.NewRecorder()
		router.HandleFunc(
			"/v1/slot/{slotID}/lineup", uut.LoggingMiddleware(uut.ReplaceSlotLineupHandler()),
		)

		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusBadRequest, respRecorder.Code)
	}

	// Case 1: lineup replaced and slot read back
	{
		params := api.ReplaceSlotLineupRequest{Lineup: []api.NewDJSlotRequest{
			{
				StartTime: currentTime.Add(time.Hour),
				EndTime:   currentTime.Add(time.Hour + time.Minute*30),
				Performers: []common.PerformerProfile{
					{DJName: "dj-nova"},
				},
			},
			{
				StartTime: currentTime.Add(time.Hour + time.Minute*30),
				EndTime:   currentTime.Add(time.Hour * 2),
				Performers: []common.PerformerProfile{
					{DJName: "dj-atlas"},
				},
			},
		}}
		payload, err := json.Marshal(&params)
		assert.Nil(err)
		req, err := http.NewRequest(
			"PUT", fmt.Sprintf("/v1/slot/%s/lineup", slotID), bytes.NewBuffer(payload),
		)
		assert.Nil(err)

		router := mux.NewRouter()
		respRecorder := httptest.NewRecorder()
		router.HandleFunc(
			"/v1/slot/{slotID}/lineup", uut.LoggingMiddleware(uut.ReplaceSlotLineupHandler()),
		)

		mockDB.On(
			"ReplaceSlotLineup",
			mock.AnythingOfType("*context.valueCtx"),
			slotID,
			mock.AnythingOfType("[]common.DJSlot"),
		).Run(func(args mock.Arguments) {
			lineup := args.Get(2).([]common.DJSlot)
			assert.Len(lineup, 2)
			assert.Equal(0, lineup[0].Position)
			assert.Equal(1, lineup[1].Position)
			assert.Equal("dj-atlas", lineup[1].Performers[0].DJName)
		}).Return([]string{uuid.NewString(), uuid.NewString()}, nil).Once()
		// Fetched once to check the lineup against the slot window, once for read back
		mockDB.On(
			"GetBroadcastSlot",
			mock.AnythingOfType("*context.valueCtx"),
			slotID,
		).Return(common.BroadcastSlot{
			ID:            slotID,
			BroadcastType: common.BroadcastTypeVenue,
			Status:        common.SlotStatusScheduled,
			StartTime:     currentTime.Add(time.Hour),
			EndTime:       currentTime.Add(time.Hour * 2),
		}, nil).Twice()

		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusOK, respRecorder.Code)
	}
}

func TestManagementListSlotRecordings(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	mockDB := mocks.NewPersistenceManager(t)
	mockStore := mocks.NewRecordingStore(t)

	uut, err := buildTestManagementHandler(t, mockDB, mockStore)
	assert.Nil(err)

	slotID := uuid.NewString()

	// Case 0: ready segments carry signed URLs, others pass through untouched
	{
		req, err := http.NewRequest("GET", fmt.Sprintf("/v1/slot/%s/recording", slotID), nil)
		assert.Nil(err)

		router := mux.NewRouter()
		respRecorder := httptest.NewRecorder()
		router.HandleFunc(
			"/v1/slot/{slotID}/recording", uut.LoggingMiddleware(uut.ListSlotRecordingsHandler()),
		)

		objectKey := fmt.Sprintf("%s/segment-0.mp4", slotID)
		readyID := uuid.NewString()
		mockDB.On(
			"ListRecordings",
			mock.AnythingOfType("*context.valueCtx"),
			slotID,
		).Return([]common.Recording{
			{ID: readyID, BroadcastSlotID: slotID, Status: common.RecordingStatusReady, URL: &objectKey},
			{ID: uuid.NewString(), BroadcastSlotID: slotID, Status: common.RecordingStatusProcessing},
		}, nil).Once()
		signedURL := fmt.Sprintf("https://minio.local/recordings/%s?sig=abc", objectKey)
		mockStore.On(
			"SignPlaybackURL",
			mock.AnythingOfType("*context.valueCtx"),
			"recordings",
			objectKey,
			time.Second*300,
		).Return(signedURL, nil).Once()

		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusOK, respRecorder.Code)
		var resp api.RecordingListResponse
		assert.Nil(json.NewDecoder(respRecorder.Body).Decode(&resp))
		assert.Len(resp.Recordings, 2)
		for _, entry := range resp.Recordings {
			if entry.ID == readyID {
				assert.NotNil(entry.URL)
				assert.Equal(signedURL, *entry.URL)
			} else {
				assert.Nil(entry.URL)
			}
		}
	}

	// Case 1: signing failure drops the URL instead of failing the listing
	{
		req, err := http.NewRequest("GET", fmt.Sprintf("/v1/slot/%s/recording", slotID), nil)
		assert.Nil(err)

		router := mux.NewRouter()
		respRecorder := httptest.NewRecorder()
		router.HandleFunc(
			"/v1/slot/{slotID}/recording", uut.LoggingMiddleware(uut.ListSlotRecordingsHandler()),
		)

		objectKey := fmt.Sprintf("%s/segment-1.mp4", slotID)
		mockDB.On(
			"ListRecordings",
			mock.AnythingOfType("*context.valueCtx"),
			slotID,
		).Return([]common.Recording{
			{ID: uuid.NewString(), BroadcastSlotID: slotID, Status: common.RecordingStatusReady, URL: &objectKey},
		}, nil).Once()
		mockStore.On(
			"SignPlaybackURL",
			mock.AnythingOfType("*context.valueCtx"),
			"recordings",
			objectKey,
			time.Second*300,
		).Return("", fmt.Errorf("dummy error")).Once()

		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusOK, respRecorder.Code)
		var resp api.RecordingListResponse
		assert.Nil(json.NewDecoder(respRecorder.Body).Decode(&resp))
		assert.Len(resp.Recordings, 1)
		assert.Nil(resp.Recordings[0].URL)
	}
}

func TestEgressCallbackAPI(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	mockTracker := mocks.NewRecordingTracker(t)

	uut, err := api.NewEgressCallbackHandler(mockTracker, common.HTTPRequestLogging{
		RequestIDHeader: "X-Request-ID", DoNotLogHeaders: []string{},
	})
	assert.Nil(err)

	// Case 0: payload is not JSON
	{
		req, err := http.NewRequest(
			"POST", "/v1/egress/status", bytes.NewBufferString("hello world"),
		)
		assert.Nil(err)

		router := mux.NewRouter()
		respRecorder := httptest.NewRecorder()
		router.HandleFunc(
			"/v1/egress/status", uut.LoggingMiddleware(uut.ReportEgressStatusHandler()),
		)

		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusBadRequest, respRecorder.Code)
	}

	// Case 1: well formed update forwarded to the tracker
	{
		update := common.EgressStatusUpdate{
			EgressID: uuid.NewString(), State: common.EgressStateComplete,
		}
		payload, err := json.Marshal(&update)
		assert.Nil(err)
		req, err := http.NewRequest("POST", "/v1/egress/status", bytes.NewBuffer(payload))
		assert.Nil(err)

		router := mux.NewRouter()
		respRecorder := httptest.NewRecorder()
		router.HandleFunc(
			"/v1/egress/status", uut.LoggingMiddleware(uut.ReportEgressStatusHandler()),
		)

		mockTracker.On(
			"HandleEgressUpdate",
			mock.AnythingOfType("*context.valueCtx"),
			mock.AnythingOfType("common.EgressStatusUpdate"),
			mock.AnythingOfType("time.Time"),
		).Run(func(args mock.Arguments) {
			received := args.Get(1).(common.EgressStatusUpdate)
			assert.Equal(update.EgressID, received.EgressID)
			assert.Equal(common.EgressStateComplete, received.State)
		}).Return(nil).Once()

		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusOK, respRecorder.Code)
	}
}
