package common

import (
	"time"

	"github.com/alwitt/goutils"
	"github.com/spf13/viper"
)

// ===============================================================================
// Common Submodule Config

// HTTPServerTimeoutConfig defines the timeout settings for HTTP server
type HTTPServerTimeoutConfig struct {
	// ReadTimeout is the maximum duration for reading the entire
	// request, including the body in seconds. A zero or negative
	// value means there will be no timeout.
	ReadTimeout int `mapstructure:"read" json:"read" validate:"gte=0"`
	// WriteTimeout is the maximum duration before timing out
	// writes of the response in seconds. A zero or negative value
	// means there will be no timeout.
	WriteTimeout int `mapstructure:"write" json:"write" validate:"gte=0"`
	// IdleTimeout is the maximum amount of time to wait for the
	// next request when keep-alives are enabled in seconds. If
	// IdleTimeout is zero, the value of ReadTimeout is used. If
	// both are zero, there is no timeout.
	IdleTimeout int `mapstructure:"idle" json:"idle" validate:"gte=0"`
}

// HTTPServerConfig defines the HTTP server parameters
type HTTPServerConfig struct {
	// ListenOn is the interface the HTTP server will listen on
	ListenOn string `mapstructure:"listenOn" json:"listenOn" validate:"required,ip"`
	// Port is the port the HTTP server will listen on
	Port uint16 `mapstructure:"appPort" json:"appPort" validate:"required,gt=0,lt=65536"`
	// Timeouts sets the HTTP timeout settings
	Timeouts HTTPServerTimeoutConfig `mapstructure:"timeoutSecs" json:"timeoutSecs" validate:"required,dive"`
}

// HTTPRequestLogging defines HTTP request logging parameters
type HTTPRequestLogging struct {
	// LogLevel output request logs at this level
	LogLevel goutils.HTTPRequestLogLevel `mapstructure:"logLevel" json:"logLevel" validate:"oneof=warn info debug"`
	// HealthLogLevel output health check logs at this level
	HealthLogLevel goutils.HTTPRequestLogLevel `mapstructure:"healthLogLevel" json:"healthLogLevel" validate:"oneof=warn info debug"`
	// RequestIDHeader is the HTTP header containing the API request ID
	RequestIDHeader string `mapstructure:"requestIDHeader" json:"requestIDHeader"`
	// DoNotLogHeaders is the list of headers to not include in logging metadata
	DoNotLogHeaders []string `mapstructure:"skipHeaders" json:"skipHeaders"`
}

// EndpointConfig defines API endpoint config
type EndpointConfig struct {
	// PathPrefix is the end-point path prefix for the APIs
	PathPrefix string `mapstructure:"pathPrefix" json:"pathPrefix" validate:"required"`
}

// APIConfig defines API settings for a submodule
type APIConfig struct {
	// Endpoint sets API endpoint related parameters
	Endpoint EndpointConfig `mapstructure:"endPoint" json:"endPoint" validate:"required,dive"`
	// RequestLogging sets API request logging parameters
	RequestLogging HTTPRequestLogging `mapstructure:"requestLogging" json:"requestLogging" validate:"required,dive"`
}

// APIServerConfig defines HTTP API / server parameters
type APIServerConfig struct {
	// Enabled whether this API is enabled
	Enabled bool `mapstructure:"enabled" json:"enabled"`
	// Server defines HTTP server parameters
	Server HTTPServerConfig `mapstructure:"service" json:"service" validate:"required_with=Enabled,dive"`
	// APIs defines API settings for a submodule
	APIs APIConfig `mapstructure:"apis" json:"apis" validate:"required_with=Enabled,dive"`
}

// SessionAPIServerConfig browser facing session API server parameters
type SessionAPIServerConfig struct {
	APIServerConfig `mapstructure:",squash"`
	// AllowedOrigins CORS origins permitted to call the session API
	AllowedOrigins []string `mapstructure:"allowedOrigins" json:"allowedOrigins" validate:"required,gte=1"`
}

// HTTPClientRetryConfig HTTP client config retry configuration
type HTTPClientRetryConfig struct {
	// MaxAttempts max number of retry attempts
	MaxAttempts int `mapstructure:"maxAttempts" json:"maxAttempts" validate:"gte=0"`
	// InitWaitTimeInSec wait time before the first wait retry
	InitWaitTimeInSec uint32 `mapstructure:"initialWaitTimeInSec" json:"initialWaitTimeInSec" validate:"gte=1"`
	// MaxWaitTimeInSec max wait time
	MaxWaitTimeInSec uint32 `mapstructure:"maxWaitTimeInSec" json:"maxWaitTimeInSec" validate:"gte=1"`
}

// InitWaitTime convert InitWaitTimeInSec to time.Duration
func (c HTTPClientRetryConfig) InitWaitTime() time.Duration {
	return time.Second * time.Duration(c.InitWaitTimeInSec)
}

// MaxWaitTime convert MaxWaitTimeInSec to time.Duration
func (c HTTPClientRetryConfig) MaxWaitTime() time.Duration {
	return time.Second * time.Duration(c.MaxWaitTimeInSec)
}

// HTTPClientConfig HTTP client config targeting `go-resty`
type HTTPClientConfig struct {
	// Retry client retry configuration. See https://github.com/go-resty/resty#retries for details
	Retry HTTPClientRetryConfig `mapstructure:"retry" json:"retry" validate:"required,dive"`
}

// MetricsConfig application metrics config
type MetricsConfig struct {
	// Server defines HTTP server parameters
	Server HTTPServerConfig `mapstructure:"service" json:"service" validate:"required,dive"`
	// MetricsEndpoint path to host the Prometheus metrics endpoint
	MetricsEndpoint string `mapstructure:"metricsEndpoint" json:"metricsEndpoint" validate:"required"`
	// MaxRequests max number of metrics requests in parallel to support
	MaxRequests int `mapstructure:"maxRequests" json:"maxRequests" validate:"gte=1"`
}

// ===============================================================================
// Persistence Configuration Structures

// PostgresSSLConfig Postgres connection SSL config
type PostgresSSLConfig struct {
	// Enabled whether to enable SSL when connecting to Postgres
	Enabled bool `mapstructure:"enabled" json:"enabled"`
	// CAFile the CA cert file to challenge remote with
	CAFile *string `mapstructure:"caFile" json:"caFile,omitempty" validate:"omitempty,file"`
}

// PostgresConfig Postgres connection config
type PostgresConfig struct {
	// Host Postgres server host
	Host string `mapstructure:"host" json:"host" validate:"required"`
	// Port Postgres server port
	Port uint16 `mapstructure:"port" json:"port" validate:"lte=65535,gte=0"`
	// Database the specific database to use
	Database string `mapstructure:"db" json:"db" validate:"required"`
	// User the user to connect with
	User string `mapstructure:"user" json:"user" validate:"required"`
	// SSL the connection SSL settings
	SSL PostgresSSLConfig `mapstructure:"ssl" json:"ssl" validate:"required,dive"`
}

// SqliteConfig sqlite config
type SqliteConfig struct {
	// DBFile the sqlite DB file path
	DBFile string `mapstructure:"db" json:"db" validate:"required"`
}

// S3Credentials S3 credentials
type S3Credentials struct {
	// AccessKey user access key
	AccessKey string
	// SecretAccessKey user secret access key
	SecretAccessKey string
}

// S3Config S3 object store config
type S3Config struct {
	// ServerEndpoint S3 server endpoint
	ServerEndpoint string `mapstructure:"endpoint" json:"endpoint" validate:"required"`
	// UseTLS whether to TLS when connecting
	UseTLS bool `mapstructure:"useTLS" json:"useTLS"`
	// Creds S3 credentials
	Creds *S3Credentials `mapstructure:"creds" json:"creds,omitempty" validate:"omitempty,dive"`
}

// RecordingStorageConfig recording playback storage config
type RecordingStorageConfig struct {
	// S3 object store config
	S3 S3Config `mapstructure:"s3" json:"s3" validate:"required,dive"`
	// StorageBucket the bucket the media transport writes finished recordings into
	StorageBucket string `mapstructure:"bucket" json:"bucket" validate:"required"`
	// SignedURLTTLInSec lifetime of presigned recording playback URLs in secs
	SignedURLTTLInSec uint32 `mapstructure:"signedURLTTLInSec" json:"signedURLTTLInSec" validate:"gte=60,lte=604800"`
}

// SignedURLTTL convert SignedURLTTLInSec to time.Duration
func (c RecordingStorageConfig) SignedURLTTL() time.Duration {
	return time.Second * time.Duration(c.SignedURLTTLInSec)
}

// ===============================================================================
// GCP PubSub Configuration Structures

// PubSubSubcriptionConfig PubSub subscription config
type PubSubSubcriptionConfig struct {
	// Topic the pubsub topic to subscribe to
	Topic string `mapstructure:"topic" json:"topic" validate:"required"`
	// MsgTTLInSec message retention within the subscription in secs
	MsgTTLInSec uint32 `mapstructure:"msgTTL" json:"msgTTL" validate:"gte=600,lte=604800"`
}

// MsgTTL convert MsgTTLInSec to time.Duration
func (c PubSubSubcriptionConfig) MsgTTL() time.Duration {
	return time.Second * time.Duration(c.MsgTTLInSec)
}

// BroadcastSystemConfig slot event fan-out channel configuration
type BroadcastSystemConfig struct {
	// GCPProject the GCP project to operate in
	GCPProject string `mapstructure:"gcpProject" json:"gcpProject" validate:"required"`
	// PubSub broadcast PubSub settings
	PubSub PubSubSubcriptionConfig `mapstructure:"pubsub" json:"pubsub" validate:"required,dive"`
}

// ===============================================================================
// Media Transport Configuration Structures

// MediaTransportConfig media transport collaborator config
type MediaTransportConfig struct {
	// BaseURL media transport control API base URL
	BaseURL string `mapstructure:"baseURL" json:"baseURL" validate:"required,url"`
	// APIKeyFile file holding the transport API key. Watched for rotation.
	APIKeyFile string `mapstructure:"apiKeyFile" json:"apiKeyFile" validate:"required,file"`
	// RequestIDHeader request ID header name to set on outbound calls
	RequestIDHeader string `mapstructure:"requestIDHeader" json:"requestIDHeader" validate:"required"`
	// RequestTimeoutInSec bound on each transport round trip in secs
	RequestTimeoutInSec uint32 `mapstructure:"requestTimeoutInSec" json:"requestTimeoutInSec" validate:"gte=1,lte=60"`
	// Client HTTP client config. This is designed to support `go-resty`
	Client HTTPClientConfig `mapstructure:"client" json:"client" validate:"required,dive"`
}

// RequestTimeout convert RequestTimeoutInSec to time.Duration
func (c MediaTransportConfig) RequestTimeout() time.Duration {
	return time.Second * time.Duration(c.RequestTimeoutInSec)
}

// ===============================================================================
// Schedule Aggregator Configuration Structures

// ProfileCacheConfig resolved performer profile cache config
type ProfileCacheConfig struct {
	// MemcachedServers memcached servers to connect with. When empty an
	// in-process cache with retention enforcement is used instead.
	MemcachedServers []string `mapstructure:"memcachedServers" json:"memcachedServers"`
	// RetentionCheckIntInSec in-process cache entry retention check interval in secs
	RetentionCheckIntInSec uint32 `mapstructure:"retentionCheckIntInSec" json:"retentionCheckIntInSec" validate:"gte=10,lte=300"`
	// EntryTTLInSec cached profile lifetime in secs
	EntryTTLInSec uint32 `mapstructure:"entryTTLInSec" json:"entryTTLInSec" validate:"gte=60,lte=86400"`
}

// RetentionCheckInt convert RetentionCheckIntInSec to time.Duration
func (c ProfileCacheConfig) RetentionCheckInt() time.Duration {
	return time.Second * time.Duration(c.RetentionCheckIntInSec)
}

// EntryTTL convert EntryTTLInSec to time.Duration
func (c ProfileCacheConfig) EntryTTL() time.Duration {
	return time.Second * time.Duration(c.EntryTTLInSec)
}

// ScheduleAggregatorConfig third-party schedule aggregator client config
type ScheduleAggregatorConfig struct {
	// BaseURL aggregator API base URL
	BaseURL string `mapstructure:"baseURL" json:"baseURL" validate:"required,url"`
	// RequestIDHeader request ID header name to set on outbound calls
	RequestIDHeader string `mapstructure:"requestIDHeader" json:"requestIDHeader" validate:"required"`
	// Client HTTP client config. This is designed to support `go-resty`
	Client HTTPClientConfig `mapstructure:"client" json:"client" validate:"required,dive"`
	// Cache resolved performer profile cache config
	Cache ProfileCacheConfig `mapstructure:"cache" json:"cache" validate:"required,dive"`
}

// ===============================================================================
// Major System Component Configuration Structures

// SlotGatingConfig go-live window and token settings
type SlotGatingConfig struct {
	// GoLiveLeadTimeInSec how long before startTime the go-live window opens in secs
	GoLiveLeadTimeInSec uint32 `mapstructure:"goLiveLeadTimeInSec" json:"goLiveLeadTimeInSec" validate:"gte=10,lte=3600"`
	// TokenGraceInSec capability token validity beyond endTime in secs
	TokenGraceInSec uint32 `mapstructure:"tokenGraceInSec" json:"tokenGraceInSec" validate:"gte=60,lte=86400"`
}

// GoLiveLeadTime convert GoLiveLeadTimeInSec to time.Duration
func (c SlotGatingConfig) GoLiveLeadTime() time.Duration {
	return time.Second * time.Duration(c.GoLiveLeadTimeInSec)
}

// TokenGrace convert TokenGraceInSec to time.Duration
func (c SlotGatingConfig) TokenGrace() time.Duration {
	return time.Second * time.Duration(c.TokenGraceInSec)
}

// ReconciliationConfig stale slot reconciliation sweep settings
type ReconciliationConfig struct {
	// SweepIntInSec the number of seconds between reconciliation sweep runs. During
	// each run, slots past endTime are force-transitioned to completed or missed.
	SweepIntInSec uint32 `mapstructure:"sweepIntInSec" json:"sweepIntInSec" validate:"required,gte=5,lte=300"`
}

// SweepInt convert SweepIntInSec to time.Duration
func (c ReconciliationConfig) SweepInt() time.Duration {
	return time.Second * time.Duration(c.SweepIntInSec)
}

// SessionManagementConfig session orchestration sub-module config
type SessionManagementConfig struct {
	// APIServer browser facing session API server config
	APIServer SessionAPIServerConfig `mapstructure:"api" json:"api" validate:"required,dive"`
	// Gating go-live window and token settings
	Gating SlotGatingConfig `mapstructure:"gating" json:"gating" validate:"required,dive"`
	// Reconciliation stale slot sweep settings
	Reconciliation ReconciliationConfig `mapstructure:"reconciliation" json:"reconciliation" validate:"required,dive"`
}

// ===============================================================================
// Complete Configuration Structures

// OrchestratorNodeConfig define orchestrator node settings and behavior
type OrchestratorNodeConfig struct {
	// Metrics metrics framework configuration
	Metrics MetricsConfig `mapstructure:"metrics" json:"metrics" validate:"required,dive"`
	// Postgres postgres DB configuration
	Postgres PostgresConfig `mapstructure:"postgres" json:"postgres" validate:"required,dive"`
	// Management management REST API server config
	Management APIServerConfig `mapstructure:"management" json:"management" validate:"required,dive"`
	// Sessions session orchestration config
	Sessions SessionManagementConfig `mapstructure:"sessions" json:"sessions" validate:"required,dive"`
	// Transport media transport collaborator config
	Transport MediaTransportConfig `mapstructure:"transport" json:"transport" validate:"required,dive"`
	// Aggregator third-party schedule aggregator client config
	Aggregator ScheduleAggregatorConfig `mapstructure:"aggregator" json:"aggregator" validate:"required,dive"`
	// RecordingStorage recording playback storage config
	RecordingStorage RecordingStorageConfig `mapstructure:"recordingStorage" json:"recordingStorage" validate:"required,dive"`
	// BroadcastSystem slot event fan-out channel configuration
	BroadcastSystem BroadcastSystemConfig `mapstructure:"broadcast" json:"broadcast" validate:"required,dive"`
}

// ===============================================================================
// Default Configuration Setter

// InstallDefaultOrchestratorConfigValues installs default config parameters in viper
// for the orchestrator node
func InstallDefaultOrchestratorConfigValues() {
	// Default metrics config
	viper.SetDefault("metrics.metricsEndpoint", "/metrics")
	viper.SetDefault("metrics.maxRequests", 4)
	// Default metrics HTTP server config
	viper.SetDefault("metrics.service.listenOn", "0.0.0.0")
	viper.SetDefault("metrics.service.appPort", 3001)
	viper.SetDefault("metrics.service.timeoutSecs.read", 60)
	viper.SetDefault("metrics.service.timeoutSecs.write", 60)
	viper.SetDefault("metrics.service.timeoutSecs.idle", 60)

	// Default Postgres config
	viper.SetDefault("postgres.port", 5432)
	viper.SetDefault("postgres.ssl.enabled", false)

	// Default management HTTP server config
	viper.SetDefault("management.enabled", true)
	viper.SetDefault("management.service.listenOn", "0.0.0.0")
	viper.SetDefault("management.service.appPort", 8080)
	viper.SetDefault("management.service.timeoutSecs.read", 60)
	viper.SetDefault("management.service.timeoutSecs.write", 60)
	viper.SetDefault("management.service.timeoutSecs.idle", 60)
	viper.SetDefault("management.apis.endPoint.pathPrefix", "/")
	viper.SetDefault("management.apis.requestLogging.logLevel", "warn")
	viper.SetDefault("management.apis.requestLogging.healthLogLevel", "debug")
	viper.SetDefault("management.apis.requestLogging.requestIDHeader", "X-Request-ID")
	viper.SetDefault("management.apis.requestLogging.skipHeaders", []string{
		"WWW-Authenticate", "Authorization", "Proxy-Authenticate", "Proxy-Authorization",
	})

	// Default session API server config
	viper.SetDefault("sessions.api.enabled", true)
	viper.SetDefault("sessions.api.service.listenOn", "0.0.0.0")
	viper.SetDefault("sessions.api.service.appPort", 8081)
	viper.SetDefault("sessions.api.service.timeoutSecs.read", 60)
	viper.SetDefault("sessions.api.service.timeoutSecs.write", 60)
	viper.SetDefault("sessions.api.service.timeoutSecs.idle", 60)
	viper.SetDefault("sessions.api.apis.endPoint.pathPrefix", "/")
	viper.SetDefault("sessions.api.apis.requestLogging.logLevel", "info")
	viper.SetDefault("sessions.api.apis.requestLogging.healthLogLevel", "debug")
	viper.SetDefault("sessions.api.apis.requestLogging.requestIDHeader", "X-Request-ID")
	viper.SetDefault("sessions.api.apis.requestLogging.skipHeaders", []string{
		"WWW-Authenticate", "Authorization", "Proxy-Authenticate", "Proxy-Authorization",
	})
	viper.SetDefault("sessions.api.allowedOrigins", []string{"*"})
	// Default gating config
	viper.SetDefault("sessions.gating.goLiveLeadTimeInSec", 60)
	viper.SetDefault("sessions.gating.tokenGraceInSec", 900)
	// Default reconciliation sweep config
	viper.SetDefault("sessions.reconciliation.sweepIntInSec", 15)

	// Default media transport config
	viper.SetDefault("transport.requestIDHeader", "X-Request-ID")
	viper.SetDefault("transport.requestTimeoutInSec", 10)
	viper.SetDefault("transport.client.retry.maxAttempts", 3)
	viper.SetDefault("transport.client.retry.initialWaitTimeInSec", 1)
	viper.SetDefault("transport.client.retry.maxWaitTimeInSec", 10)

	// Default schedule aggregator config
	viper.SetDefault("aggregator.requestIDHeader", "X-Request-ID")
	viper.SetDefault("aggregator.client.retry.maxAttempts", 5)
	viper.SetDefault("aggregator.client.retry.initialWaitTimeInSec", 2)
	viper.SetDefault("aggregator.client.retry.maxWaitTimeInSec", 30)
	viper.SetDefault("aggregator.cache.retentionCheckIntInSec", 60)
	viper.SetDefault("aggregator.cache.entryTTLInSec", 3600)

	// Default recording storage config
	viper.SetDefault("recordingStorage.signedURLTTLInSec", 3600)

	// Default broadcast channel config
	viper.SetDefault("broadcast.pubsub.msgTTL", 600)
}
