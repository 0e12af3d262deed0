package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/beatwave/onair/auth"
	"github.com/beatwave/onair/common"
	"github.com/beatwave/onair/control"
	"github.com/go-playground/validator/v10"
)

// SessionHandler REST API interface to SessionManager
//
// This is the browser facing surface used by the performer console.
type SessionHandler struct {
	goutils.RestAPIHandler
	validate *validator.Validate
	sessions control.SessionManager
	identity auth.IdentityVerifier
}

/*
NewSessionHandler define a new session API handler

	@param sessions control.SessionManager - session orchestration manager
	@param identity auth.IdentityVerifier - platform session identity verifier
	@param logConfig common.HTTPRequestLogging - handler log settings
	@returns new SessionHandler
*/
func NewSessionHandler(
	sessions control.SessionManager,
	identity auth.IdentityVerifier,
	logConfig common.HTTPRequestLogging,
) (SessionHandler, error) {
	return SessionHandler{
		RestAPIHandler: goutils.RestAPIHandler{
			Component: goutils.Component{
				LogTags: log.Fields{"module": "api", "component": "session-handler"},
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
		}, validate: validator.New(), sessions: sessions, identity: identity,
	}, nil
}

// extractBroadcastToken pull the capability token from the request query
func extractBroadcastToken(r *http.Request) string {
	return r.URL.Query().Get("token")
}

// extractIdentity pull and verify the performer identity from the Authorization header
func (h SessionHandler) extractIdentity(
	r *http.Request, currentTime time.Time,
) (common.LiveClaim, error) {
	rawHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(rawHeader, "Bearer ") {
		return common.LiveClaim{}, common.ErrorInvalidToken{}
	}
	return h.identity.ParseIdentity(strings.TrimPrefix(rawHeader, "Bearer "), currentTime)
}

// ====================================================================================
// Session surface

// SlotValidationResponse response to a capability token validation
type SlotValidationResponse struct {
	goutils.RestAPIBaseResponse
	// Slot the broadcast slot the token authorizes
	Slot common.BroadcastSlot `json:"slot" validate:"required,dive"`
	// ScheduleStatus schedule position relative to the current time
	ScheduleStatus common.ScheduleStatus `json:"schedule_status"`
}

// ValidateSession godoc
// @Summary Validate a broadcast capability token
// @Description Resolve a capability token into its broadcast slot and schedule position.
// @tags session
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Param token query string true "Broadcast capability token"
// @Success 200 {object} SlotValidationResponse "success"
// @Failure 401 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {string} string "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/session/validate [get]
func (h SessionHandler) ValidateSession(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() {
		if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to form response")
		}
	}()

	currentTime := time.Now().UTC()

	slot, scheduleStatus, err := h.sessions.ValidateToken(
		r.Context(), extractBroadcastToken(r), currentTime,
	)
	if err != nil {
		msg := "capability token validation failed"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = statusCodeForError(err)
		response = h.GetStdRESTErrorMsg(r.Context(), respCode, msg, err.Error())
		return
	}

	respCode = http.StatusOK
	response = SlotValidationResponse{
		RestAPIBaseResponse: h.GetStdRESTSuccessMsg(r.Context()),
		Slot:                slot,
		ScheduleStatus:      scheduleStatus,
	}
}

// ValidateSessionHandler Wrapper around ValidateSession
func (h SessionHandler) ValidateSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.ValidateSession(w, r)
	}
}

// ------------------------------------------------------------------------------------

// GoLiveRequest parameters of a go-live or resume call
type GoLiveRequest struct {
	// WithRecording whether to start a capture egress alongside the session
	WithRecording bool `json:"with_recording"`
}

// SessionHandleResponse response carrying an admitted session handle
type SessionHandleResponse struct {
	goutils.RestAPIBaseResponse
	// Session handle to the admitted media transport session
	Session common.SessionHandle `json:"session" validate:"required,dive"`
}

// GoLive godoc
// @Summary Take a scheduled slot live
// @Description Admit the performer into the slot's room and mark the slot live.
// @tags session
// @Accept json
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Param Authorization header string true "Platform session identity (Bearer JWT)"
// @Param token query string true "Broadcast capability token"
// @Param param body GoLiveRequest false "Go-live parameters"
// @Success 200 {object} SessionHandleResponse "success"
// @Failure 401 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {string} string "error"
// @Failure 409 {object} goutils.RestAPIBaseResponse "error"
// @Failure 502 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/session/go-live [post]
func (h SessionHandler) GoLive(w http.ResponseWriter, r *http.Request) {
	h.admitSession(w, r, h.sessions.GoLive)
}

// GoLiveHandler Wrapper around GoLive
func (h SessionHandler) GoLiveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.GoLive(w, r)
	}
}

// ResumeSession godoc
// @Summary Resume a paused slot
// @Description Re-admit the claim holder after a disconnect and mark the slot live again.
// @tags session
// @Accept json
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Param Authorization header string true "Platform session identity (Bearer JWT)"
// @Param token query string true "Broadcast capability token"
// @Param param body GoLiveRequest false "Resume parameters"
// @Success 200 {object} SessionHandleResponse "success"
// @Failure 401 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {string} string "error"
// @Failure 409 {object} goutils.RestAPIBaseResponse "error"
// @Failure 502 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/session/resume [post]
func (h SessionHandler) ResumeSession(w http.ResponseWriter, r *http.Request) {
	h.admitSession(w, r, h.sessions.Resume)
}

// ResumeSessionHandler Wrapper around ResumeSession
func (h SessionHandler) ResumeSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.ResumeSession(w, r)
	}
}

// admitSession shared request plumbing for GoLive and ResumeSession
func (h SessionHandler) admitSession(
	w http.ResponseWriter,
	r *http.Request,
	action func(
		ctxt context.Context,
		token string,
		claim common.LiveClaim,
		withRecording bool,
		currentTime time.Time,
	) (common.SessionHandle, error),
) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() {
		if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to form response")
		}
	}()

	currentTime := time.Now().UTC()

	claim, err := h.extractIdentity(r, currentTime)
	if err != nil {
		msg := "performer identity verification failed"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = http.StatusUnauthorized
		response = h.GetStdRESTErrorMsg(r.Context(), respCode, msg, err.Error())
		return
	}

	// The body is optional, absence means no recording
	var params GoLiveRequest
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil && !errors.Is(err, io.EOF) {
			msg := "unable to parse go-live parameters from request"
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
	}

	handle, err := action(
		r.Context(), extractBroadcastToken(r), claim, params.WithRecording, currentTime,
	)
	if err != nil {
		msg := "session admission failed"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = statusCodeForError(err)
		response = h.GetStdRESTErrorMsg(r.Context(), respCode, msg, err.Error())
		return
	}

	respCode = http.StatusOK
	response = SessionHandleResponse{
		RestAPIBaseResponse: h.GetStdRESTSuccessMsg(r.Context()), Session: handle,
	}
}

// ------------------------------------------------------------------------------------

// ReportDisconnect godoc
// @Summary Report a dropped live session
// @Description Mark the slot paused after the live session dropped without an explicit end.
// @tags session
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Param token query string true "Broadcast capability token"
// @Success 200 {object} goutils.RestAPIBaseResponse "success"
// @Failure 401 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {string} string "error"
// @Failure 409 {object} goutils.RestAPIBaseResponse "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/session/disconnect [post]
func (h SessionHandler) ReportDisconnect(w http.ResponseWriter, r *http.Request) {
	h.tokenOnlyAction(w, r, "disconnect report failed", h.sessions.ReportDisconnect)
}

// ReportDisconnectHandler Wrapper around ReportDisconnect
func (h SessionHandler) ReportDisconnectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.ReportDisconnect(w, r)
	}
}

// EndBroadcast godoc
// @Summary Explicitly finish a broadcast
// @Description Complete the slot and tear down its media transport room.
// @tags session
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Param token query string true "Broadcast capability token"
// @Success 200 {object} goutils.RestAPIBaseResponse "success"
// @Failure 401 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {string} string "error"
// @Failure 409 {object} goutils.RestAPIBaseResponse "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/session/end [post]
func (h SessionHandler) EndBroadcast(w http.ResponseWriter, r *http.Request) {
	h.tokenOnlyAction(w, r, "broadcast end failed", h.sessions.EndBroadcast)
}

// EndBroadcastHandler Wrapper around EndBroadcast
func (h SessionHandler) EndBroadcastHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.EndBroadcast(w, r)
	}
}

// tokenOnlyAction shared request plumbing for actions needing only the capability token
func (h SessionHandler) tokenOnlyAction(
	w http.ResponseWriter,
	r *http.Request,
	failureMsg string,
	action func(ctxt context.Context, token string, currentTime time.Time) error,
) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() {
		if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to form response")
		}
	}()

	currentTime := time.Now().UTC()

	if err := action(r.Context(), extractBroadcastToken(r), currentTime); err != nil {
		log.WithError(err).WithFields(logTags).Error(failureMsg)
		respCode = statusCodeForError(err)
		response = h.GetStdRESTErrorMsg(r.Context(), respCode, failureMsg, err.Error())
		return
	}

	respCode = http.StatusOK
	response = h.GetStdRESTSuccessMsg(r.Context())
}

// ------------------------------------------------------------------------------------

// PromoContentRequest promo content submission
type PromoContentRequest struct {
	Content string `json:"content" validate:"required"`
}

// SubmitPromo godoc
// @Summary Submit promo content
// @Description Attach promo content to the broadcast, or the claimed DJ slot when one is held.
// @tags session
// @Accept json
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Param token query string true "Broadcast capability token"
// @Param param body PromoContentRequest true "Promo content"
// @Success 200 {object} goutils.RestAPIBaseResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 401 {object} goutils.RestAPIBaseResponse "error"
// @Failure 409 {object} goutils.RestAPIBaseResponse "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/session/promo [put]
func (h SessionHandler) SubmitPromo(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() {
		if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to form response")
		}
	}()

	currentTime := time.Now().UTC()

	var params PromoContentRequest
	if r.Body == nil {
		msg := "no payload provided for promo submission"
		log.WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, msg)
		return
	}
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		msg := "unable to parse promo content from request"
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
		msg := "missing required values for promo submission"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, err.Error())
		return
	}

	if err := h.sessions.SubmitPromo(
		r.Context(), extractBroadcastToken(r), params.Content, currentTime,
	); err != nil {
		msg := "promo submission failed"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = statusCodeForError(err)
		response = h.GetStdRESTErrorMsg(r.Context(), respCode, msg, err.Error())
		return
	}

	respCode = http.StatusOK
	response = h.GetStdRESTSuccessMsg(r.Context())
}

// SubmitPromoHandler Wrapper around SubmitPromo
func (h SessionHandler) SubmitPromoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.SubmitPromo(w, r)
	}
}

// ------------------------------------------------------------------------------------

// ThankYouMessageRequest thank-you message submission
type ThankYouMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

// SubmitThankYou godoc
// @Summary Submit a thank-you message
// @Description Attach a thank-you message to the broadcast, or the claimed DJ slot when one is held.
// @tags session
// @Accept json
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Param token query string true "Broadcast capability token"
// @Param param body ThankYouMessageRequest true "Thank-you message"
// @Success 200 {object} goutils.RestAPIBaseResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 401 {object} goutils.RestAPIBaseResponse "error"
// @Failure 409 {object} goutils.RestAPIBaseResponse "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/session/thank-you [put]
func (h SessionHandler) SubmitThankYou(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() {
		if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to form response")
		}
	}()

	currentTime := time.Now().UTC()

	var params ThankYouMessageRequest
	if r.Body == nil {
		msg := "no payload provided for thank-you submission"
		log.WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, msg)
		return
	}
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		msg := "unable to parse thank-you message from request"
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
		msg := "missing required values for thank-you submission"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, err.Error())
		return
	}

	if err := h.sessions.SubmitThankYou(
		r.Context(), extractBroadcastToken(r), params.Message, currentTime,
	); err != nil {
		msg := "thank-you submission failed"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = statusCodeForError(err)
		response = h.GetStdRESTErrorMsg(r.Context(), respCode, msg, err.Error())
		return
	}

	respCode = http.StatusOK
	response = h.GetStdRESTSuccessMsg(r.Context())
}

// SubmitThankYouHandler Wrapper around SubmitThankYou
func (h SessionHandler) SubmitThankYouHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.SubmitThankYou(w, r)
	}
}

// ------------------------------------------------------------------------------------

// SlotViewResponse response carrying the observable slot state
type SlotViewResponse struct {
	goutils.RestAPIBaseResponse
	// View observable slot state for the polling console
	View common.SlotView `json:"view" validate:"required,dive"`
}

// SessionTick godoc
// @Summary Poll the observable slot state
// @Description Compute the slot state the performer console renders from.
// @tags session
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Param token query string true "Broadcast capability token"
// @Success 200 {object} SlotViewResponse "success"
// @Failure 401 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {string} string "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/session/tick [get]
func (h SessionHandler) SessionTick(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() {
		if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to form response")
		}
	}()

	currentTime := time.Now().UTC()

	view, err := h.sessions.Tick(r.Context(), extractBroadcastToken(r), currentTime)
	if err != nil {
		msg := "slot state poll failed"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = statusCodeForError(err)
		response = h.GetStdRESTErrorMsg(r.Context(), respCode, msg, err.Error())
		return
	}

	respCode = http.StatusOK
	response = SlotViewResponse{
		RestAPIBaseResponse: h.GetStdRESTSuccessMsg(r.Context()), View: view,
	}
}

// SessionTickHandler Wrapper around SessionTick
func (h SessionHandler) SessionTickHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.SessionTick(w, r)
	}
}

// ====================================================================================
// Utilities

// Alive godoc
// @Summary Session API liveness check
// @Description Will return success to indicate session REST API module is live
// @tags util,session
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Success 200 {object} goutils.RestAPIBaseResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {string} string "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/alive [get]
func (h SessionHandler) Alive(w http.ResponseWriter, r *http.Request) {
	logTags := h.GetLogTagsForContext(r.Context())
	if err := h.WriteRESTResponse(
		w, http.StatusOK, h.GetStdRESTSuccessMsg(r.Context()), nil,
	); err != nil {
		log.WithError(err).WithFields(logTags).Error("Failed to form response")
	}
}

// AliveHandler Wrapper around Alive
func (h SessionHandler) AliveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.Alive(w, r)
	}
}

// -----------------------------------------------------------------------

// Ready godoc
// @Summary Session API readiness check
// @Description Will return success if session REST API module is ready for use
// @tags util,session
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Success 200 {object} goutils.RestAPIBaseResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {string} string "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/ready [get]
func (h SessionHandler) Ready(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() {
		if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to form response")
		}
	}()
	if err := h.sessions.Ready(r.Context()); err != nil {
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
func (h SessionHandler) ReadyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.Ready(w, r)
	}
}
