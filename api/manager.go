package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/beatwave/onair/auth"
	"github.com/beatwave/onair/common"
	"github.com/beatwave/onair/db"
	"github.com/beatwave/onair/schedule"
	"github.com/beatwave/onair/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// SlotManagementHandler REST API for broadcast slot management
//
// This is only meant to be used by station staff tooling, never the performer console.
type SlotManagementHandler struct {
	goutils.RestAPIHandler
	validate *validator.Validate
	db       db.PersistenceManager
	profiles schedule.ProfileResolver
	store    utils.RecordingStore
	storage  common.RecordingStorageConfig
	gating   common.SlotGatingConfig
}

/*
NewSlotManagementHandler define a new slot management REST API handler

	@param dbClient db.PersistenceManager - persistence manager
	@param profiles schedule.ProfileResolver - performer profile resolver
	@param store utils.RecordingStore - recording playback object store
	@param storage common.RecordingStorageConfig - recording storage settings
	@param gating common.SlotGatingConfig - go-live window and token settings
	@param logConfig common.HTTPRequestLogging - handler log settings
	@returns new SlotManagementHandler
*/
func NewSlotManagementHandler(
	dbClient db.PersistenceManager,
	profiles schedule.ProfileResolver,
	store utils.RecordingStore,
	storage common.RecordingStorageConfig,
	gating common.SlotGatingConfig,
	logConfig common.HTTPRequestLogging,
) (SlotManagementHandler, error) {
	return SlotManagementHandler{
		RestAPIHandler: goutils.RestAPIHandler{
			Component: goutils.Component{
				LogTags: log.Fields{"module": "api", "component": "slot-management-handler"},
				LogTagModifiers: []goutils.LogMetadataModifier{
					goutils.ModifyLogMetadataByRestRequestParam,
				},
			},
			CallRequestIDHeaderField: &logConfig.RequestIDHeader,
			DoNotLogHeaders: func() map[string]bool {
				result := map[string]bool{}
				for _, v := range logConfig.DoNotLogHeaders {
					result[v] = true
				}
				return result
			}(),
			LogLevel: logConfig.LogLevel,
		},
		validate: validator.New(),
		db:       dbClient,
		profiles: profiles,
		store:    store,
		storage:  storage,
		gating:   gating,
	}, nil
}

// ====================================================================================
// Broadcast Slot CRUD

// NewDJSlotRequest parameters defining one performer sub-interval
type NewDJSlotRequest struct {
	StartTime  time.Time                 `json:"start_ts" validate:"required"`
	EndTime    time.Time                 `json:"end_ts" validate:"required"`
	Performers []common.PerformerProfile `json:"performers" validate:"required,gte=1,dive"`
}

// NewBroadcastSlotRequest parameters to define a new broadcast slot
type NewBroadcastSlotRequest struct {
	StationID     string               `json:"station" validate:"required"`
	BroadcastType common.BroadcastType `json:"broadcast_type" validate:"required,oneof=venue remote"`
	StartTime     time.Time            `json:"start_ts" validate:"required"`
	EndTime       time.Time            `json:"end_ts" validate:"required"`
	VenueSlug     *string              `json:"venue_slug,omitempty"`
	DJName        *string              `json:"dj_name,omitempty"`
	Lineup        []NewDJSlotRequest   `json:"lineup,omitempty" validate:"omitempty,dive"`
}

// BroadcastSlotResponse response containing one broadcast slot
type BroadcastSlotResponse struct {
	goutils.RestAPIBaseResponse
	// Slot the broadcast slot
	Slot common.BroadcastSlot `json:"slot" validate:"required,dive"`
	// BroadcastToken capability token for the slot. Only set on slot creation.
	BroadcastToken string `json:"broadcast_token,omitempty"`
}

/*
checkLineupIntervals verify DJ slot intervals are ordered, disjoint, and inside
the parent slot window

	@param requests []NewDJSlotRequest - requested performer sub-intervals
	@param windowStart time.Time - parent slot window start
	@param windowEnd time.Time - parent slot window end
*/
func checkLineupIntervals(
	requests []NewDJSlotRequest, windowStart, windowEnd time.Time,
) error {
	for idx, djSlotParam := range requests {
		if !djSlotParam.EndTime.After(djSlotParam.StartTime) {
			return fmt.Errorf("DJ slot %d window end must come after its start", idx)
		}
		if djSlotParam.StartTime.Before(windowStart) || djSlotParam.EndTime.After(windowEnd) {
			return fmt.Errorf("DJ slot %d extends outside the broadcast slot window", idx)
		}
		if idx > 0 && djSlotParam.StartTime.Before(requests[idx-1].EndTime) {
			return fmt.Errorf("DJ slot %d overlaps or is out of order with DJ slot %d", idx, idx-1)
		}
	}
	return nil
}

// buildLineup convert DJ slot requests into domain DJ slots with resolved profiles
func (h SlotManagementHandler) buildLineup(
	r *http.Request, requests []NewDJSlotRequest,
) []common.DJSlot {
	lineup := make([]common.DJSlot, 0, len(requests))
	for idx, djSlotParam := range requests {
		lineup = append(lineup, common.DJSlot{
			Position:   idx,
			StartTime:  djSlotParam.StartTime,
			EndTime:    djSlotParam.EndTime,
			Performers: djSlotParam.Performers,
		})
	}
	if h.profiles != nil {
		lineup = h.profiles.ResolveLineupProfiles(r.Context(), lineup)
	}
	return lineup
}

// DefineNewBroadcastSlot godoc
// @Summary Define a new broadcast slot
// @Description Define a new broadcast slot and mint its capability token. The token
// @Description is only returned from this call.
// @tags management
// @Accept json
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Param param body NewBroadcastSlotRequest true "Broadcast slot parameters"
// @Success 200 {object} BroadcastSlotResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {string} string "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/slot [post]
func (h SlotManagementHandler) DefineNewBroadcastSlot(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() {
		if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to form response")
		}
	}()

	if r.Body == nil {
		msg := "no payload provided to define new broadcast slot"
		log.WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, msg)
		return
	}

	// Parse the create parameters
	var params NewBroadcastSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		msg := "unable to parse new broadcast slot parameters from request"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, err.Error())
		return
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.WithError(err).WithFields(logTags).Error("Request body close error")
		}
	}()

	// Validate parameters
	if err := h.validate.Struct(&params); err != nil {
		msg := "missing required values to define new broadcast slot"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, err.Error())
		return
	}
	if !params.EndTime.After(params.StartTime) {
		msg := "broadcast slot window end must come after its start"
		log.WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, msg)
		return
	}
	if params.BroadcastType == common.BroadcastTypeRemote && params.DJName == nil {
		msg := "remote broadcast slot requires a performer name"
		log.WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, msg)
		return
	}
	if params.BroadcastType == common.BroadcastTypeRemote && len(params.Lineup) > 0 {
		msg := "remote broadcast slot can not carry a DJ lineup"
		log.WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, msg)
		return
	}
	if params.BroadcastType == common.BroadcastTypeVenue && params.VenueSlug == nil {
		msg := "venue broadcast slot requires a venue slug"
		log.WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, msg)
		return
	}
	if params.BroadcastType == common.BroadcastTypeVenue {
		if len(params.Lineup) == 0 {
			msg := "venue broadcast slot requires a DJ lineup"
			log.WithFields(logTags).Error(msg)
			respCode = http.StatusBadRequest
			response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, msg)
			return
		}
		if params.DJName != nil {
			msg := "venue broadcast slot performers are defined through the lineup"
			log.WithFields(logTags).Error(msg)
			respCode = http.StatusBadRequest
			response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, msg)
			return
		}
	}
	if err := checkLineupIntervals(params.Lineup, params.StartTime, params.EndTime); err != nil {
		msg := "broadcast slot lineup is not valid"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, err.Error())
		return
	}

	// Mint the capability token for the new slot
	broadcastToken := auth.MintBroadcastToken()

	newEntry := common.BroadcastSlot{
		StationID:      params.StationID,
		BroadcastType:  params.BroadcastType,
		StartTime:      params.StartTime,
		EndTime:        params.EndTime,
		VenueSlug:      params.VenueSlug,
		DJName:         params.DJName,
		BroadcastToken: broadcastToken,
		TokenExpiresAt: auth.ComputeTokenExpiry(params.EndTime, h.gating.TokenGrace()),
		DJSlots:        h.buildLineup(r, params.Lineup),
	}

	entryID, err := h.db.DefineBroadcastSlot(r.Context(), newEntry)
	if err != nil {
		msg := "failed to define new broadcast slot"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = http.StatusInternalServerError
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusInternalServerError, msg, err.Error())
		return
	}

	// Read back the new slot
	entry, err := h.db.GetBroadcastSlot(r.Context(), entryID)
	if err != nil {
		msg := "failed to read back the new broadcast slot entry"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = http.StatusInternalServerError
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusInternalServerError, msg, err.Error())
		return
	}

	respCode = http.StatusOK
	response = BroadcastSlotResponse{
		RestAPIBaseResponse: h.GetStdRESTSuccessMsg(r.Context()),
		Slot:                entry,
		BroadcastToken:      broadcastToken,
	}
}

// DefineNewBroadcastSlotHandler Wrapper around DefineNewBroadcastSlot
func (h SlotManagementHandler) DefineNewBroadcastSlotHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.DefineNewBroadcastSlot(w, r)
	}
}

// ------------------------------------------------------------------------------------

// BroadcastSlotListResponse response containing list of broadcast slots
type BroadcastSlotListResponse struct {
	goutils.RestAPIBaseResponse
	// Slots list of broadcast slots
	Slots []common.BroadcastSlot `json:"slots" validate:"required,dive"`
}

// ListBroadcastSlots godoc
// @Summary List known broadcast slots
// @Description Fetch list of known broadcast slots, optionally limited to one station
// @tags management
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Param station query string false "Limit listing to one station"
// @Success 200 {object} BroadcastSlotListResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {string} string "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/slot [get]
func (h SlotManagementHandler) ListBroadcastSlots(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() {
		if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to form response")
		}
	}()

	var stationID *string
	if station := r.URL.Query().Get("station"); station != "" {
		stationID = &station
	}

	entries, err := h.db.ListBroadcastSlots(r.Context(), stationID)
	if err != nil {
		msg := "failed to list known broadcast slots"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = http.StatusInternalServerError
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusInternalServerError, msg, err.Error())
		return
	}

	respCode = http.StatusOK
	response = BroadcastSlotListResponse{
		RestAPIBaseResponse: h.GetStdRESTSuccessMsg(r.Context()), Slots: entries,
	}
}

// ListBroadcastSlotsHandler Wrapper around ListBroadcastSlots
func (h SlotManagementHandler) ListBroadcastSlotsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.ListBroadcastSlots(w, r)
	}
}

// ------------------------------------------------------------------------------------

// GetBroadcastSlot godoc
// @Summary Fetch broadcast slot
// @Description Fetch one broadcast slot with its lineup and recordings
// @tags management
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Param slotID path string true "Broadcast slot ID"
// @Success 200 {object} BroadcastSlotResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {string} string "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/slot/{slotID} [get]
func (h SlotManagementHandler) GetBroadcastSlot(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() {
		if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to form response")
		}
	}()

	vars := mux.Vars(r)
	slotID, ok := vars["slotID"]
	if !ok {
		msg := "broadcast slot ID missing from request URL"
		log.WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, msg)
		return
	}

	entry, err := h.db.GetBroadcastSlot(r.Context(), slotID)
	if err != nil {
		msg := "failed to fetch broadcast slot info"
		log.WithError(err).WithFields(logTags).WithField("slot-id", slotID).Error(msg)
		respCode = statusCodeForError(err)
		response = h.GetStdRESTErrorMsg(r.Context(), respCode, msg, err.Error())
		return
	}

	respCode = http.StatusOK
	response = BroadcastSlotResponse{
		RestAPIBaseResponse: h.GetStdRESTSuccessMsg(r.Context()), Slot: entry,
	}
}

// GetBroadcastSlotHandler Wrapper around GetBroadcastSlot
func (h SlotManagementHandler) GetBroadcastSlotHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.GetBroadcastSlot(w, r)
	}
}

// ------------------------------------------------------------------------------------

// DeleteBroadcastSlot godoc
// @Summary Delete a broadcast slot
// @Description Delete a broadcast slot with its lineup and recording entries
// @tags management
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Param slotID path string true "Broadcast slot ID"
// @Success 200 {object} goutils.RestAPIBaseResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {string} string "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/slot/{slotID} [delete]
func (h SlotManagementHandler) DeleteBroadcastSlot(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() {
		if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to form response")
		}
	}()

	vars := mux.Vars(r)
	slotID, ok := vars["slotID"]
	if !ok {
		msg := "broadcast slot ID missing from request URL"
		log.WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, msg)
		return
	}

	if err := h.db.DeleteBroadcastSlot(r.Context(), slotID); err != nil {
		msg := "failed to delete broadcast slot"
		log.WithError(err).WithFields(logTags).WithField("slot-id", slotID).Error(msg)
		respCode = statusCodeForError(err)
		response = h.GetStdRESTErrorMsg(r.Context(), respCode, msg, err.Error())
		return
	}

	respCode = http.StatusOK
	response = h.GetStdRESTSuccessMsg(r.Context())
}

// DeleteBroadcastSlotHandler Wrapper around DeleteBroadcastSlot
func (h SlotManagementHandler) DeleteBroadcastSlotHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.DeleteBroadcastSlot(w, r)
	}
}

// ------------------------------------------------------------------------------------

// ReplaceSlotLineupRequest parameters replacing the lineup of a venue slot
type ReplaceSlotLineupRequest struct {
	Lineup []NewDJSlotRequest `json:"lineup" validate:"required,gte=1,dive"`
}

// ReplaceSlotLineup godoc
// @Summary Replace the lineup of a broadcast slot
// @Description Replace the performer sub-intervals of a venue broadcast slot
// @tags management
// @Accept json
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Param slotID path string true "Broadcast slot ID"
// @Param param body ReplaceSlotLineupRequest true "New lineup"
// @Success 200 {object} BroadcastSlotResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {string} string "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/slot/{slotID}/lineup [put]
func (h SlotManagementHandler) ReplaceSlotLineup(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() {
		if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to form response")
		}
	}()

	vars := mux.Vars(r)
	slotID, ok := vars["slotID"]
	if !ok {
		msg := "broadcast slot ID missing from request URL"
		log.WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, msg)
		return
	}

	if r.Body == nil {
		msg := "no payload provided to replace slot lineup"
		log.WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, msg)
		return
	}

	var params ReplaceSlotLineupRequest
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		msg := "unable to parse slot lineup from request"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, err.Error())
		return
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.WithError(err).WithFields(logTags).Error("Request body close error")
		}
	}()
	if err := h.validate.Struct(&params); err != nil {
		msg := "missing required values to replace slot lineup"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, err.Error())
		return
	}

	// The new lineup must fit the parent slot window
	parent, err := h.db.GetBroadcastSlot(r.Context(), slotID)
	if err != nil {
		msg := "failed to fetch broadcast slot info"
		log.WithError(err).WithFields(logTags).WithField("slot-id", slotID).Error(msg)
		respCode = statusCodeForError(err)
		response = h.GetStdRESTErrorMsg(r.Context(), respCode, msg, err.Error())
		return
	}
	if parent.BroadcastType != common.BroadcastTypeVenue {
		msg := "only venue broadcast slots carry a DJ lineup"
		log.WithFields(logTags).WithField("slot-id", slotID).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, msg)
		return
	}
	if err := checkLineupIntervals(params.Lineup, parent.StartTime, parent.EndTime); err != nil {
		msg := "broadcast slot lineup is not valid"
		log.WithError(err).WithFields(logTags).WithField("slot-id", slotID).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, err.Error())
		return
	}

	if _, err := h.db.ReplaceSlotLineup(
		r.Context(), slotID, h.buildLineup(r, params.Lineup),
	); err != nil {
		msg := "failed to replace slot lineup"
		log.WithError(err).WithFields(logTags).WithField("slot-id", slotID).Error(msg)
		respCode = statusCodeForError(err)
		response = h.GetStdRESTErrorMsg(r.Context(), respCode, msg, err.Error())
		return
	}

	// Read back the updated slot
	entry, err := h.db.GetBroadcastSlot(r.Context(), slotID)
	if err != nil {
		msg := "failed to read back the updated broadcast slot entry"
		log.WithError(err).WithFields(logTags).WithField("slot-id", slotID).Error(msg)
		respCode = http.StatusInternalServerError
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusInternalServerError, msg, err.Error())
		return
	}

	respCode = http.StatusOK
	response = BroadcastSlotResponse{
		RestAPIBaseResponse: h.GetStdRESTSuccessMsg(r.Context()), Slot: entry,
	}
}

// ReplaceSlotLineupHandler Wrapper around ReplaceSlotLineup
func (h SlotManagementHandler) ReplaceSlotLineupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.ReplaceSlotLineup(w, r)
	}
}

// ====================================================================================
// Slot Recordings

// RecordingListResponse response containing recordings of one broadcast slot
type RecordingListResponse struct {
	goutils.RestAPIBaseResponse
	// Recordings capture segments of the slot with playback URLs where available
	Recordings []common.Recording `json:"recordings" validate:"required,dive"`
}

// ListSlotRecordings godoc
// @Summary List recordings of a broadcast slot
// @Description Fetch recording segments of a slot. Segments in ready state carry a
// @Description time limited signed playback URL.
// @tags management
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Param slotID path string true "Broadcast slot ID"
// @Success 200 {object} RecordingListResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {string} string "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/slot/{slotID}/recording [get]
func (h SlotManagementHandler) ListSlotRecordings(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() {
		if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to form response")
		}
	}()

	vars := mux.Vars(r)
	slotID, ok := vars["slotID"]
	if !ok {
		msg := "broadcast slot ID missing from request URL"
		log.WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, msg)
		return
	}

	entries, err := h.db.ListRecordings(r.Context(), slotID)
	if err != nil {
		msg := "failed to list slot recordings"
		log.WithError(err).WithFields(logTags).WithField("slot-id", slotID).Error(msg)
		respCode = statusCodeForError(err)
		response = h.GetStdRESTErrorMsg(r.Context(), respCode, msg, err.Error())
		return
	}

	// Swap stored object keys for time limited playback URLs
	for idx, entry := range entries {
		if entry.Status != common.RecordingStatusReady || entry.URL == nil || h.store == nil {
			continue
		}
		signedURL, err := h.store.SignPlaybackURL(
			r.Context(), h.storage.StorageBucket, *entry.URL, h.storage.SignedURLTTL(),
		)
		if err != nil {
			log.
				WithError(err).
				WithFields(logTags).
				WithField("recording-id", entry.ID).
				Warn("Unable to sign recording playback URL")
			entries[idx].URL = nil
			continue
		}
		entries[idx].URL = &signedURL
	}

	respCode = http.StatusOK
	response = RecordingListResponse{
		RestAPIBaseResponse: h.GetStdRESTSuccessMsg(r.Context()), Recordings: entries,
	}
}

// ListSlotRecordingsHandler Wrapper around ListSlotRecordings
func (h SlotManagementHandler) ListSlotRecordingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.ListSlotRecordings(w, r)
	}
}

// ====================================================================================
// Utilities

// Alive godoc
// @Summary Slot management API liveness check
// @Description Will return success to indicate slot management REST API module is live
// @tags util,management
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Success 200 {object} goutils.RestAPIBaseResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {string} string "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/alive [get]
func (h SlotManagementHandler) Alive(w http.ResponseWriter, r *http.Request) {
	logTags := h.GetLogTagsForContext(r.Context())
	if err := h.WriteRESTResponse(
		w, http.StatusOK, h.GetStdRESTSuccessMsg(r.Context()), nil,
	); err != nil {
		log.WithError(err).WithFields(logTags).Error("Failed to form response")
	}
}

// AliveHandler Wrapper around Alive
func (h SlotManagementHandler) AliveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.Alive(w, r)
	}
}

// -----------------------------------------------------------------------

// Ready godoc
// @Summary Slot management API readiness check
// @Description Will return success if slot management REST API module is ready for use
// @tags util,management
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Success 200 {object} goutils.RestAPIBaseResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {string} string "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/ready [get]
func (h SlotManagementHandler) Ready(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() {
		if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to form response")
		}
	}()
	if err := h.db.Ready(r.Context()); err != nil {
		respCode = http.StatusInternalServerError
		response = h.GetStdRESTErrorMsg(
			r.Context(), http.StatusInternalServerError, "not ready", err.Error(),
		)
	} else {
		respCode = http.StatusOK
		response = h.GetStdRESTSuccessMsg(r.Context())
	}
}

// ReadyHandler Wrapper around Ready
func (h SlotManagementHandler) ReadyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.Ready(w, r)
	}
}
