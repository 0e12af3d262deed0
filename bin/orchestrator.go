package bin

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/beatwave/onair/api"
	"github.com/beatwave/onair/auth"
	"github.com/beatwave/onair/common"
	"github.com/beatwave/onair/control"
	"github.com/beatwave/onair/db"
	"github.com/beatwave/onair/schedule"
	"github.com/beatwave/onair/tracker"
	"github.com/beatwave/onair/transport"
	"github.com/beatwave/onair/utils"
	"github.com/gorilla/mux"
	"gorm.io/gorm/logger"
)

// OrchestratorNode broadcast slot orchestrator node
type OrchestratorNode struct {
	psClient         goutils.PubSubClient
	keySource        transport.APIKeySource
	sweeper          control.ReconciliationSweeper
	MgmtAPIServer    *http.Server
	SessionAPIServer *http.Server
	MetricsServer    *http.Server
}

/*
Cleanup stop and clean up the orchestrator node

	@param ctxt context.Context - execution context
*/
func (n OrchestratorNode) Cleanup(ctxt context.Context) error {
	if n.sweeper != nil {
		if err := n.sweeper.Stop(ctxt); err != nil {
			return err
		}
	}
	if n.keySource != nil {
		if err := n.keySource.Stop(ctxt); err != nil {
			return err
		}
	}
	if n.psClient != nil {
		return n.psClient.Close(ctxt)
	}
	return nil
}

/*
DefineOrchestratorNode setup new broadcast slot orchestrator node

	@param parentCtxt context.Context - parent execution context
	@param nodeName string - orchestrator node name
	@param config common.OrchestratorNodeConfig - orchestrator node configuration
	@param psqlPassword string - Postgres SQL user password
	@param identitySecret []byte - HMAC secret validating platform session identity JWTs
	@returns new orchestrator node
*/
func DefineOrchestratorNode(
	parentCtxt context.Context,
	nodeName string,
	config common.OrchestratorNodeConfig,
	psqlPassword string,
	identitySecret []byte,
) (OrchestratorNode, error) {
	/*
		Steps for preparing the orchestrator node are

		* Prepare database
		* Prepare metrics collection
		* Prepare slot event broadcast client
		* Prepare media transport control client
		* Prepare recording tracker
		* Prepare schedule aggregator profile resolver
		* Prepare session manager and reconciliation sweeper
		* Prepare HTTP servers
	*/

	theNode := OrchestratorNode{}

	sqlDialector := db.GetPostgresDialector(config.Postgres, psqlPassword)

	// Define the persistence manager
	dbManager, err := db.NewManager(sqlDialector, logger.Error)
	if err != nil {
		log.WithError(err).Error("Failed to define persistence manager")
		return theNode, err
	}

	// Define metrics collection framework
	metrics, err := goutils.GetNewMetricsCollector(
		log.Fields{"module": "goutils", "component": "metrics-core", "instance": nodeName},
		[]goutils.LogMetadataModifier{goutils.ModifyLogMetadataByRestRequestParam},
	)
	if err != nil {
		log.WithError(err).Error("Failed to define metrics collection framework")
		return theNode, err
	}
	metrics.InstallApplicationMetrics()

	// Define slot event broadcast client
	psClient, broadcaster, err := buildSlotEventBroadcaster(parentCtxt, config.BroadcastSystem)
	if err != nil {
		log.WithError(err).Error("Slot event broadcast client initialization failed")
		return theNode, err
	}
	theNode.psClient = psClient

	// Define media transport control client
	keySource, err := transport.NewFileAPIKeySource(parentCtxt, config.Transport.APIKeyFile)
	if err != nil {
		log.WithError(err).Error("Failed to define media transport API key source")
		return theNode, err
	}
	theNode.keySource = keySource
	transportHTTPClient, err := utils.DefineHTTPClient(config.Transport.Client)
	if err != nil {
		log.WithError(err).Error("Failed to define media transport HTTP client")
		return theNode, err
	}
	transportBaseURI, err := url.Parse(config.Transport.BaseURL)
	if err != nil {
		log.WithError(err).Error("Unable to parse media transport base URL")
		return theNode, err
	}
	transportClient, err := transport.NewRestMediaTransport(
		parentCtxt,
		transportBaseURI,
		config.Transport.RequestIDHeader,
		config.Transport.RequestTimeout(),
		keySource,
		transportHTTPClient,
	)
	if err != nil {
		log.WithError(err).Error("Failed to define media transport control client")
		return theNode, err
	}

	// Define recording tracker
	recordingTracker, err := tracker.NewRecordingTracker(dbManager, transportClient, broadcaster)
	if err != nil {
		log.WithError(err).Error("Failed to define recording tracker")
		return theNode, err
	}

	// Define performer profile cache. Use memcached when servers are listed.
	var profileCache utils.ProfileCache
	if len(config.Aggregator.Cache.MemcachedServers) > 0 {
		profileCache, err = utils.NewMemcachedProfileCache(config.Aggregator.Cache.MemcachedServers)
	} else {
		profileCache, err = utils.NewLocalProfileCache(
			parentCtxt, config.Aggregator.Cache.RetentionCheckInt(),
		)
	}
	if err != nil {
		log.WithError(err).Error("Failed to define performer profile cache")
		return theNode, err
	}

	// Define schedule aggregator profile resolver
	aggregatorHTTPClient, err := utils.DefineHTTPClient(config.Aggregator.Client)
	if err != nil {
		log.WithError(err).Error("Failed to define schedule aggregator HTTP client")
		return theNode, err
	}
	profileResolver, err := schedule.NewRestProfileResolver(
		parentCtxt, config.Aggregator, profileCache, aggregatorHTTPClient,
	)
	if err != nil {
		log.WithError(err).Error("Failed to define schedule aggregator profile resolver")
		return theNode, err
	}

	// Define recording playback object store
	recordingStore, err := utils.NewRecordingStore(config.RecordingStorage.S3)
	if err != nil {
		log.WithError(err).Error("Failed to define recording playback object store")
		return theNode, err
	}

	// Define session manager
	sessionManager, err := control.NewSessionManager(
		parentCtxt,
		dbManager,
		transportClient,
		recordingTracker,
		broadcaster,
		config.Sessions.Gating.GoLiveLeadTime(),
		metrics,
	)
	if err != nil {
		log.WithError(err).Error("Failed to define session manager")
		return theNode, err
	}

	// Define reconciliation sweeper
	sweeper, err := control.NewReconciliationSweeper(
		parentCtxt,
		dbManager,
		recordingTracker,
		broadcaster,
		config.Sessions.Reconciliation.SweepInt(),
		metrics,
	)
	if err != nil {
		log.WithError(err).Error("Failed to define reconciliation sweeper")
		return theNode, err
	}
	theNode.sweeper = sweeper

	// Define platform session identity verifier
	identityVerifier, err := auth.NewHMACIdentityVerifier(identitySecret)
	if err != nil {
		log.WithError(err).Error("Failed to define session identity verifier")
		return theNode, err
	}

	// Define slot management API HTTP server
	mgmtAPIServer, err := api.BuildSlotManagementServer(
		config.Management,
		dbManager,
		profileResolver,
		recordingTracker,
		recordingStore,
		config.RecordingStorage,
		config.Sessions.Gating,
	)
	if err != nil {
		log.WithError(err).Error("Failed to create slot management API HTTP server")
		return theNode, err
	}
	theNode.MgmtAPIServer = mgmtAPIServer

	// Define session API HTTP server
	sessionAPIServer, err := api.BuildSessionAPIServer(
		config.Sessions.APIServer, sessionManager, identityVerifier,
	)
	if err != nil {
		log.WithError(err).Error("Failed to create session API HTTP server")
		return theNode, err
	}
	theNode.SessionAPIServer = sessionAPIServer

	// Define metrics collection HTTP server
	metricsRouter := mux.NewRouter()
	metrics.ExposeCollectionEndpoint(
		metricsRouter, config.Metrics.MetricsEndpoint, config.Metrics.MaxRequests,
	)
	theNode.MetricsServer = &http.Server{
		Addr: fmt.Sprintf(
			"%s:%d", config.Metrics.Server.ListenOn, config.Metrics.Server.Port,
		),
		WriteTimeout: time.Second * time.Duration(config.Metrics.Server.Timeouts.WriteTimeout),
		ReadTimeout:  time.Second * time.Duration(config.Metrics.Server.Timeouts.ReadTimeout),
		IdleTimeout:  time.Second * time.Duration(config.Metrics.Server.Timeouts.IdleTimeout),
		Handler:      metricsRouter,
	}

	return theNode, nil
}
