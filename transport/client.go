package transport

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/beatwave/onair/common"
	"github.com/go-resty/resty/v2"
	"github.com/oklog/ulid/v2"
)

// MediaTransport control surface of the external media transport service
type MediaTransport interface {
	/*
		AdmitSession admit a performer session into a room

			@param ctxt context.Context - execution context
			@param roomID string - the room to admit into
			@param claim common.LiveClaim - the performer identity being admitted
			@returns opaque session reference
	*/
	AdmitSession(ctxt context.Context, roomID string, claim common.LiveClaim) (string, error)

	/*
		CloseSession close one admitted session

			@param ctxt context.Context - execution context
			@param roomID string - the room the session belongs to
			@param sessionRef string - opaque session reference
	*/
	CloseSession(ctxt context.Context, roomID, sessionRef string) error

	/*
		CloseRoom tear down a room with all its sessions

			@param ctxt context.Context - execution context
			@param roomID string - the room to tear down
	*/
	CloseRoom(ctxt context.Context, roomID string) error

	/*
		StartEgress begin capturing a room

			@param ctxt context.Context - execution context
			@param roomID string - the room to capture
			@returns egress handle assigned by the transport
	*/
	StartEgress(ctxt context.Context, roomID string) (string, error)

	/*
		StopEgress stop a running capture

			@param ctxt context.Context - execution context
			@param egressID string - egress handle assigned by the transport
	*/
	StopEgress(ctxt context.Context, egressID string) error
}

// SessionAdmitResponse transport response payload carrying a new session reference
type SessionAdmitResponse struct {
	goutils.RestAPIBaseResponse
	// SessionRef opaque session reference
	SessionRef string `json:"session_ref" validate:"required"`
}

// EgressStartResponse transport response payload carrying a new egress handle
type EgressStartResponse struct {
	goutils.RestAPIBaseResponse
	// EgressID egress handle assigned by the transport
	EgressID string `json:"egress_id" validate:"required"`
}

// restMediaTransportImpl implements MediaTransport against a REST control API
type restMediaTransportImpl struct {
	goutils.Component
	transportBaseURI *url.URL
	requestIDHeader  string
	requestTimeout   time.Duration
	keySource        APIKeySource
	client           *resty.Client
}

/*
NewRestMediaTransport define a new media transport control client based on REST

	@param ctxt context.Context - execution context
	@param transportBaseURI *url.URL - media transport control API base URL
	@param requestIDHeader string - HTTP header to set for the request ID
	@param requestTimeout time.Duration - bound on each transport round trip
	@param keySource APIKeySource - source of the transport API credential
	@param httpClient *resty.Client - HTTP client to use
	@return new client
*/
func NewRestMediaTransport(
	ctxt context.Context,
	transportBaseURI *url.URL,
	requestIDHeader string,
	requestTimeout time.Duration,
	keySource APIKeySource,
	httpClient *resty.Client,
) (MediaTransport, error) {
	logTags := log.Fields{
		"module":    "transport",
		"component": "media-transport-rest-client",
		"instance":  transportBaseURI.String(),
	}

	return &restMediaTransportImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		transportBaseURI: transportBaseURI,
		requestIDHeader:  requestIDHeader,
		requestTimeout:   requestTimeout,
		keySource:        keySource,
		client:           httpClient,
	}, nil
}

// respError translate a non-2xx transport response into an error
func respError(resp *resty.Response) error {
	respError, ok := resp.Error().(*goutils.RestAPIBaseResponse)
	if ok && respError.Error != nil {
		return fmt.Errorf("%s", respError.Error.Detail)
	}
	return fmt.Errorf("status code %d", resp.StatusCode())
}

func (c *restMediaTransportImpl) AdmitSession(
	ctxt context.Context, roomID string, claim common.LiveClaim,
) (string, error) {
	logTags := c.GetLogTagsForContext(ctxt)

	reqID := ulid.Make().String()
	reqCtxt, cancel := context.WithTimeout(ctxt, c.requestTimeout)
	defer cancel()

	requestURL := c.transportBaseURI.JoinPath(fmt.Sprintf("/v1/room/%s/session", roomID))
	resp, err := c.client.R().
		SetContext(reqCtxt).
		SetHeader(c.requestIDHeader, reqID).
		SetAuthToken(c.keySource.Key()).
		SetBody(&claim).
		SetResult(&SessionAdmitResponse{}).
		SetError(goutils.RestAPIBaseResponse{}).
		Post(requestURL.String())

	if err != nil {
		log.
			WithError(err).
			WithFields(logTags).
			WithField("room-id", roomID).
			Error("Session admit request failed on call")
		return "", common.ErrorTransportUnavailable{Op: "admit-session", Cause: err}
	}

	if !resp.IsSuccess() {
		err := respError(resp)
		log.
			WithError(err).
			WithFields(logTags).
			WithField("room-id", roomID).
			WithField("outbound-request-id", reqID).
			Error("Session admit failed")
		return "", common.ErrorTransportUnavailable{Op: "admit-session", Cause: err}
	}

	// Process the response
	admitResp, ok := resp.Result().(*SessionAdmitResponse)
	if !ok || admitResp.SessionRef == "" {
		err := fmt.Errorf("failed to parse session admit response")
		log.
			WithError(err).
			WithFields(logTags).
			WithField("room-id", roomID).
			WithField("outbound-request-id", reqID).
			Error("Session admit failed")
		return "", common.ErrorTransportUnavailable{Op: "admit-session", Cause: err}
	}

	log.
		WithFields(logTags).
		WithField("room-id", roomID).
		WithField("session-ref", admitResp.SessionRef).
		Info("Admitted session")
	return admitResp.SessionRef, nil
}

func (c *restMediaTransportImpl) CloseSession(
	ctxt context.Context, roomID, sessionRef string,
) error {
	logTags := c.GetLogTagsForContext(ctxt)

	reqID := ulid.Make().String()
	reqCtxt, cancel := context.WithTimeout(ctxt, c.requestTimeout)
	defer cancel()

	requestURL := c.transportBaseURI.JoinPath(
		fmt.Sprintf("/v1/room/%s/session/%s", roomID, sessionRef),
	)
	resp, err := c.client.R().
		SetContext(reqCtxt).
		SetHeader(c.requestIDHeader, reqID).
		SetAuthToken(c.keySource.Key()).
		SetError(goutils.RestAPIBaseResponse{}).
		Delete(requestURL.String())

	if err != nil {
		log.
			WithError(err).
			WithFields(logTags).
			WithField("room-id", roomID).
			WithField("session-ref", sessionRef).
			Error("Session close request failed on call")
		return common.ErrorTransportUnavailable{Op: "close-session", Cause: err}
	}

	if !resp.IsSuccess() {
		err := respError(resp)
		log.
			WithError(err).
			WithFields(logTags).
			WithField("room-id", roomID).
			WithField("session-ref", sessionRef).
			WithField("outbound-request-id", reqID).
			Error("Session close failed")
		return common.ErrorTransportUnavailable{Op: "close-session", Cause: err}
	}

	return nil
}

func (c *restMediaTransportImpl) CloseRoom(ctxt context.Context, roomID string) error {
	logTags := c.GetLogTagsForContext(ctxt)

	reqID := ulid.Make().String()
	reqCtxt, cancel := context.WithTimeout(ctxt, c.requestTimeout)
	defer cancel()

	requestURL := c.transportBaseURI.JoinPath(fmt.Sprintf("/v1/room/%s", roomID))
	resp, err := c.client.R().
		SetContext(reqCtxt).
		SetHeader(c.requestIDHeader, reqID).
		SetAuthToken(c.keySource.Key()).
		SetError(goutils.RestAPIBaseResponse{}).
		Delete(requestURL.String())

	if err != nil {
		log.
			WithError(err).
			WithFields(logTags).
			WithField("room-id", roomID).
			Error("Room close request failed on call")
		return common.ErrorTransportUnavailable{Op: "close-room", Cause: err}
	}

	if !resp.IsSuccess() {
		err := respError(resp)
		log.
			WithError(err).
			WithFields(logTags).
			WithField("room-id", roomID).
			WithField("outbound-request-id", reqID).
			Error("Room close failed")
		return common.ErrorTransportUnavailable{Op: "close-room", Cause: err}
	}

	log.WithFields(logTags).WithField("room-id", roomID).Info("Closed room")
	return nil
}

func (c *restMediaTransportImpl) StartEgress(
	ctxt context.Context, roomID string,
) (string, error) {
	logTags := c.GetLogTagsForContext(ctxt)

	reqID := ulid.Make().String()
	reqCtxt, cancel := context.WithTimeout(ctxt, c.requestTimeout)
	defer cancel()

	requestURL := c.transportBaseURI.JoinPath(fmt.Sprintf("/v1/room/%s/egress", roomID))
	resp, err := c.client.R().
		SetContext(reqCtxt).
		SetHeader(c.requestIDHeader, reqID).
		SetAuthToken(c.keySource.Key()).
		SetResult(&EgressStartResponse{}).
		SetError(goutils.RestAPIBaseResponse{}).
		Post(requestURL.String())

	if err != nil {
		log.
			WithError(err).
			WithFields(logTags).
			WithField("room-id", roomID).
			Error("Egress start request failed on call")
		return "", common.ErrorTransportUnavailable{Op: "start-egress", Cause: err}
	}

	if !resp.IsSuccess() {
		err := respError(resp)
		log.
			WithError(err).
			WithFields(logTags).
			WithField("room-id", roomID).
			WithField("outbound-request-id", reqID).
			Error("Egress start failed")
		return "", common.ErrorTransportUnavailable{Op: "start-egress", Cause: err}
	}

	// Process the response
	egressResp, ok := resp.Result().(*EgressStartResponse)
	if !ok || egressResp.EgressID == "" {
		err := fmt.Errorf("failed to parse egress start response")
		log.
			WithError(err).
			WithFields(logTags).
			WithField("room-id", roomID).
			WithField("outbound-request-id", reqID).
			Error("Egress start failed")
		return "", common.ErrorTransportUnavailable{Op: "start-egress", Cause: err}
	}

	log.
		WithFields(logTags).
		WithField("room-id", roomID).
		WithField("egress-id", egressResp.EgressID).
		Info("Started egress")
	return egressResp.EgressID, nil
}

func (c *restMediaTransportImpl) StopEgress(ctxt context.Context, egressID string) error {
	logTags := c.GetLogTagsForContext(ctxt)

	reqID := ulid.Make().String()
	reqCtxt, cancel := context.WithTimeout(ctxt, c.requestTimeout)
	defer cancel()

	requestURL := c.transportBaseURI.JoinPath(fmt.Sprintf("/v1/egress/%s", egressID))
	resp, err := c.client.R().
		SetContext(reqCtxt).
		SetHeader(c.requestIDHeader, reqID).
		SetAuthToken(c.keySource.Key()).
		SetError(goutils.RestAPIBaseResponse{}).
		Delete(requestURL.String())

	if err != nil {
		log.
			WithError(err).
			WithFields(logTags).
			WithField("egress-id", egressID).
			Error("Egress stop request failed on call")
		return common.ErrorTransportUnavailable{Op: "stop-egress", Cause: err}
	}

	if !resp.IsSuccess() {
		err := respError(resp)
		log.
			WithError(err).
			WithFields(logTags).
			WithField("egress-id", egressID).
			WithField("outbound-request-id", reqID).
			Error("Egress stop failed")
		return common.ErrorTransportUnavailable{Op: "stop-egress", Cause: err}
	}

	return nil
}
