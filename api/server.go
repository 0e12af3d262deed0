package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/beatwave/onair/auth"
	"github.com/beatwave/onair/common"
	"github.com/beatwave/onair/control"
	"github.com/beatwave/onair/db"
	"github.com/beatwave/onair/schedule"
	"github.com/beatwave/onair/tracker"
	"github.com/beatwave/onair/utils"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// ====================================================================================
// Slot Management Server

/*
BuildSlotManagementServer create slot management API server

	@param httpCfg common.APIServerConfig - HTTP server configuration
	@param dbClient db.PersistenceManager - persistence manager
	@param profiles schedule.ProfileResolver - performer profile resolver
	@param recordings tracker.RecordingTracker - recording tracker
	@param store utils.RecordingStore - recording playback object store
	@param storage common.RecordingStorageConfig - recording storage settings
	@param gating common.SlotGatingConfig - go-live window and token settings
	@returns HTTP server instance
*/
func BuildSlotManagementServer(
	httpCfg common.APIServerConfig,
	dbClient db.PersistenceManager,
	profiles schedule.ProfileResolver,
	recordings tracker.RecordingTracker,
	store utils.RecordingStore,
	storage common.RecordingStorageConfig,
	gating common.SlotGatingConfig,
) (*http.Server, error) {
	httpHandler, err := NewSlotManagementHandler(
		dbClient, profiles, store, storage, gating, httpCfg.APIs.RequestLogging,
	)
	if err != nil {
		return nil, err
	}
	egressHandler, err := NewEgressCallbackHandler(recordings, httpCfg.APIs.RequestLogging)
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	mainRouter := registerPathPrefix(router, httpCfg.APIs.Endpoint.PathPrefix, nil)
	v1Router := registerPathPrefix(mainRouter, "/v1", nil)

	// --------------------------------------------------------------------------------
	// Health check
	_ = registerPathPrefix(v1Router, "/alive", map[string]http.HandlerFunc{
		"get": httpHandler.AliveHandler(),
	})
	_ = registerPathPrefix(v1Router, "/ready", map[string]http.HandlerFunc{
		"get": httpHandler.ReadyHandler(),
	})

	// --------------------------------------------------------------------------------
	// Broadcast slot
	slotRouter := registerPathPrefix(v1Router, "/slot", map[string]http.HandlerFunc{
		"post": httpHandler.DefineNewBroadcastSlotHandler(),
		"get":  httpHandler.ListBroadcastSlotsHandler(),
	})

	perSlotRouter := registerPathPrefix(
		slotRouter, "/{slotID}", map[string]http.HandlerFunc{
			"get":    httpHandler.GetBroadcastSlotHandler(),
			"delete": httpHandler.DeleteBroadcastSlotHandler(),
		},
	)

	_ = registerPathPrefix(perSlotRouter, "/lineup", map[string]http.HandlerFunc{
		"put": httpHandler.ReplaceSlotLineupHandler(),
	})

	_ = registerPathPrefix(perSlotRouter, "/recording", map[string]http.HandlerFunc{
		"get": httpHandler.ListSlotRecordingsHandler(),
	})

	// --------------------------------------------------------------------------------
	// Egress status callback
	egressRouter := registerPathPrefix(v1Router, "/egress", nil)
	_ = registerPathPrefix(egressRouter, "/status", map[string]http.HandlerFunc{
		"post": egressHandler.ReportEgressStatusHandler(),
	})

	// --------------------------------------------------------------------------------
	// Middleware

	router.Use(func(next http.Handler) http.Handler {
		return httpHandler.LoggingMiddleware(next.ServeHTTP)
	})

	// --------------------------------------------------------------------------------
	// HTTP Server

	serverListen := fmt.Sprintf(
		"%s:%d", httpCfg.Server.ListenOn, httpCfg.Server.Port,
	)
	httpSrv := &http.Server{
		Addr:         serverListen,
		WriteTimeout: time.Second * time.Duration(httpCfg.Server.Timeouts.WriteTimeout),
		ReadTimeout:  time.Second * time.Duration(httpCfg.Server.Timeouts.ReadTimeout),
		IdleTimeout:  time.Second * time.Duration(httpCfg.Server.Timeouts.IdleTimeout),
		Handler:      h2c.NewHandler(router, &http2.Server{}),
	}

	return httpSrv, nil
}

// ====================================================================================
// Session API Server

/*
BuildSessionAPIServer create browser facing session API server

	@param httpCfg common.SessionAPIServerConfig - HTTP server configuration
	@param sessions control.SessionManager - session orchestration manager
	@param identity auth.IdentityVerifier - platform session identity verifier
	@returns HTTP server instance
*/
func BuildSessionAPIServer(
	httpCfg common.SessionAPIServerConfig,
	sessions control.SessionManager,
	identity auth.IdentityVerifier,
) (*http.Server, error) {
	httpHandler, err := NewSessionHandler(sessions, identity, httpCfg.APIs.RequestLogging)
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	mainRouter := registerPathPrefix(router, httpCfg.APIs.Endpoint.PathPrefix, nil)
	v1Router := registerPathPrefix(mainRouter, "/v1", nil)

	// --------------------------------------------------------------------------------
	// Health check
	_ = registerPathPrefix(v1Router, "/alive", map[string]http.HandlerFunc{
		"get": httpHandler.AliveHandler(),
	})
	_ = registerPathPrefix(v1Router, "/ready", map[string]http.HandlerFunc{
		"get": httpHandler.ReadyHandler(),
	})

	// --------------------------------------------------------------------------------
	// Session surface
	sessionRouter := registerPathPrefix(v1Router, "/session", nil)

	_ = registerPathPrefix(sessionRouter, "/validate", map[string]http.HandlerFunc{
		"get": httpHandler.ValidateSessionHandler(),
	})
	_ = registerPathPrefix(sessionRouter, "/go-live", map[string]http.HandlerFunc{
		"post": httpHandler.GoLiveHandler(),
	})
	_ = registerPathPrefix(sessionRouter, "/resume", map[string]http.HandlerFunc{
		"post": httpHandler.ResumeSessionHandler(),
	})
	_ = registerPathPrefix(sessionRouter, "/disconnect", map[string]http.HandlerFunc{
		"post": httpHandler.ReportDisconnectHandler(),
	})
	_ = registerPathPrefix(sessionRouter, "/end", map[string]http.HandlerFunc{
		"post": httpHandler.EndBroadcastHandler(),
	})
	_ = registerPathPrefix(sessionRouter, "/promo", map[string]http.HandlerFunc{
		"put": httpHandler.SubmitPromoHandler(),
	})
	_ = registerPathPrefix(sessionRouter, "/thank-you", map[string]http.HandlerFunc{
		"put": httpHandler.SubmitThankYouHandler(),
	})
	_ = registerPathPrefix(sessionRouter, "/tick", map[string]http.HandlerFunc{
		"get": httpHandler.SessionTickHandler(),
	})

	// --------------------------------------------------------------------------------
	// Middleware

	router.Use(func(next http.Handler) http.Handler {
		return httpHandler.LoggingMiddleware(next.ServeHTTP)
	})

	// The session API is called from the performer console in a browser
	corsWrapper := cors.New(cors.Options{
		AllowedOrigins: httpCfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
	})

	// --------------------------------------------------------------------------------
	// HTTP Server

	serverListen := fmt.Sprintf(
		"%s:%d", httpCfg.Server.ListenOn, httpCfg.Server.Port,
	)
	httpSrv := &http.Server{
		Addr:         serverListen,
		WriteTimeout: time.Second * time.Duration(httpCfg.Server.Timeouts.WriteTimeout),
		ReadTimeout:  time.Second * time.Duration(httpCfg.Server.Timeouts.ReadTimeout),
		IdleTimeout:  time.Second * time.Duration(httpCfg.Server.Timeouts.IdleTimeout),
		Handler:      h2c.NewHandler(corsWrapper.Handler(router), &http2.Server{}),
	}

	return httpSrv, nil
}
