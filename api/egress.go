package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/beatwave/onair/common"
	"github.com/beatwave/onair/tracker"
	"github.com/go-playground/validator/v10"
)

// EgressCallbackHandler REST API receiving egress status callbacks from the media transport
type EgressCallbackHandler struct {
	goutils.RestAPIHandler
	validate   *validator.Validate
	recordings tracker.RecordingTracker
}

/*
NewEgressCallbackHandler define a new egress callback REST API handler

	@param recordings tracker.RecordingTracker - recording tracker
	@param logConfig common.HTTPRequestLogging - handler log settings
	@returns new EgressCallbackHandler
*/
func NewEgressCallbackHandler(
	recordings tracker.RecordingTracker, logConfig common.HTTPRequestLogging,
) (EgressCallbackHandler, error) {
	return EgressCallbackHandler{
		RestAPIHandler: goutils.RestAPIHandler{
			Component: goutils.Component{
				LogTags: log.Fields{"module": "api", "component": "egress-callback-handler"},
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
		}, validate: validator.New(), recordings: recordings,
	}, nil
}

// ReportEgressStatus godoc
// @Summary Receive an egress status callback
// @Description Process a recording egress status update pushed by the media transport.
// @Description Updates for unknown egress handles are acknowledged and dropped.
// @tags management
// @Accept json
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Param param body common.EgressStatusUpdate true "Egress status update"
// @Success 200 {object} goutils.RestAPIBaseResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {string} string "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/egress/status [post]
func (h EgressCallbackHandler) ReportEgressStatus(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() {
		if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to form response")
		}
	}()

	if r.Body == nil {
		msg := "no payload provided with egress status callback"
		log.WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, msg)
		return
	}

	var update common.EgressStatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		msg := "unable to parse egress status callback"
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

	if err := h.validate.Struct(&update); err != nil {
		msg := "missing required values in egress status callback"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, err.Error())
		return
	}

	if err := h.recordings.HandleEgressUpdate(r.Context(), update, time.Now().UTC()); err != nil {
		msg := "egress status callback processing failed"
		log.WithError(err).WithFields(logTags).WithField("egress-id", update.EgressID).Error(msg)
		respCode = http.StatusInternalServerError
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusInternalServerError, msg, err.Error())
		return
	}

	respCode = http.StatusOK
	response = h.GetStdRESTSuccessMsg(r.Context())
}

// ReportEgressStatusHandler Wrapper around ReportEgressStatus
func (h EgressCallbackHandler) ReportEgressStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.ReportEgressStatus(w, r)
	}
}
