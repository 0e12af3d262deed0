package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/apex/log"
	apexJSON "github.com/apex/log/handlers/json"
	"github.com/beatwave/onair/bin"
	"github.com/beatwave/onair/common"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

type orchestratorCliArgs struct {
	ConfigFile     string `validate:"required,file"`
	DBPassword     string
	IdentitySecret string `validate:"required"`
}

type cliArgs struct {
	JSONLog      bool
	LogLevel     string `validate:"required,oneof=debug info warn error"`
	Hostname     string
	GCPCredsFile string `validate:"required,file"`
}

var s3CredsArgs common.S3Credentials

var orchestratorArgs orchestratorCliArgs

var cmdArgs cliArgs

var logTags log.Fields

// @title onair
// @version v0.1.0
// @description Broadcast slot lifecycle and live session orchestrator

// @host localhost:8080
// @BasePath /
// @query.collection.format multi
func main() {
	hostname, err := os.Hostname()
	if err != nil {
		log.WithError(err).Fatal("Unable to read hostname")
	}
	cmdArgs.Hostname = hostname
	logTags = log.Fields{
		"module":    "main",
		"component": "main",
		"instance":  hostname,
	}

	app := &cli.App{
		Version:     "v0.1.0",
		Usage:       "application entrypoint",
		Description: "Broadcast slot lifecycle and live session orchestrator",
		Flags: []cli.Flag{
			// LOGGING
			&cli.BoolFlag{
				Name:        "json-log",
				Usage:       "Whether to log in JSON format",
				Aliases:     []string{"j"},
				EnvVars:     []string{"LOG_AS_JSON"},
				Value:       false,
				DefaultText: "false",
				Destination: &cmdArgs.JSONLog,
				Required:    false,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "Logging level: [debug info warn error]",
				Aliases:     []string{"l"},
				EnvVars:     []string{"LOG_LEVEL"},
				Value:       "warn",
				DefaultText: "warn",
				Destination: &cmdArgs.LogLevel,
				Required:    false,
			},
			// GCP Cred
			&cli.PathFlag{
				Name:        "gcp-cred",
				Usage:       "Not directly used by the application, this option provides GCP cred to SDK.",
				EnvVars:     []string{"GOOGLE_APPLICATION_CREDENTIALS"},
				Destination: &cmdArgs.GCPCredsFile,
				Required:    true,
			},
			// S3 Creds
			&cli.StringFlag{
				Name:        "s3-access-key",
				Usage:       "S3 user access key",
				EnvVars:     []string{"AWS_ACCESS_KEY_ID"},
				Destination: &s3CredsArgs.AccessKey,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "s3-secret-access-key",
				Usage:       "S3 user secret access key",
				EnvVars:     []string{"AWS_SECRET_ACCESS_KEY"},
				Destination: &s3CredsArgs.SecretAccessKey,
				Required:    true,
			},
		},
		Commands: []*cli.Command{
			{
				Name:        "orchestrator",
				Aliases:     []string{"orch"},
				Usage:       "Run broadcast slot orchestrator node",
				Description: "Start the broadcast slot orchestrator node and its various API servers.",
				Flags: []cli.Flag{
					// Config file
					&cli.StringFlag{
						Name:        "config-file",
						Usage:       "Application config file",
						Aliases:     []string{"c"},
						EnvVars:     []string{"CONFIG_FILE"},
						Destination: &orchestratorArgs.ConfigFile,
						Required:    true,
					},
					&cli.StringFlag{
						Name:        "db-password",
						Usage:       "Database user password",
						Aliases:     []string{"p"},
						EnvVars:     []string{"DB_USER_PASSWORD"},
						Value:       "",
						DefaultText: "",
						Destination: &orchestratorArgs.DBPassword,
						Required:    false,
					},
					&cli.StringFlag{
						Name:        "identity-secret",
						Usage:       "HMAC secret validating platform session identity JWTs",
						Aliases:     []string{"s"},
						EnvVars:     []string{"SESSION_IDENTITY_SECRET"},
						Destination: &orchestratorArgs.IdentitySecret,
						Required:    true,
					},
				},
				Action: startOrchestratorNode,
			},
		},
	}

	err = app.Run(os.Args)
	if err != nil {
		log.WithError(err).WithFields(logTags).Fatal("Program shutdown")
	}
}

// setupLogging helper function to prepare the app logging
func setupLogging() {
	if cmdArgs.JSONLog {
		log.SetHandler(apexJSON.New(os.Stderr))
	}
	switch cmdArgs.LogLevel {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.ErrorLevel)
	}
}

func startOrchestratorNode(c *cli.Context) error {
	validate := validator.New()

	// Validate general config
	if err := validate.Struct(&cmdArgs); err != nil {
		return err
	}

	setupLogging()

	// ================================================================================
	// Process orchestrator node config
	if err := validate.Struct(&orchestratorArgs); err != nil {
		log.
			WithError(err).
			WithFields(logTags).
			Error("Invalid parameters provided to start orchestrator node")
		return err
	}

	// Process the config file
	common.InstallDefaultOrchestratorConfigValues()
	var configs common.OrchestratorNodeConfig
	viper.SetConfigFile(orchestratorArgs.ConfigFile)
	if err := viper.ReadInConfig(); err != nil {
		log.WithError(err).WithFields(logTags).Error("Failed to load orchestrator node config")
		return err
	}
	if err := viper.Unmarshal(&configs); err != nil {
		log.WithError(err).WithFields(logTags).Error("Failed to parse orchestrator node config")
		return err
	}

	// Validate orchestrator node config
	if err := validate.Struct(&configs); err != nil {
		log.WithError(err).WithFields(logTags).Error("Orchestrator node config file is not valid")
		return err
	}

	{
		t, _ := json.MarshalIndent(&configs, "", "  ")
		log.WithFields(logTags).Debugf("Running with config:\n%s", string(t))
	}

	// ================================================================================
	// Define orchestrator node

	runtimeCtxt, cancel := context.WithCancel(context.Background())
	defer cancel()

	configs.RecordingStorage.S3.Creds = &s3CredsArgs

	orchNode, err := bin.DefineOrchestratorNode(
		runtimeCtxt,
		cmdArgs.Hostname,
		configs,
		orchestratorArgs.DBPassword,
		[]byte(orchestratorArgs.IdentitySecret),
	)
	if err != nil {
		log.WithError(err).WithFields(logTags).Error("Unable to define and start orchestrator node")
		return err
	}
	defer func() {
		if err := orchNode.Cleanup(runtimeCtxt); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failure during orchestrator node clean up")
		}
	}()

	// ================================================================================
	// Start HTTP servers

	wg := sync.WaitGroup{}
	defer wg.Wait()
	apiServers := map[string]*http.Server{}

	defer func() {
		// Shutdown the servers
		for svrInstance, svr := range apiServers {
			ctx, cancel := context.WithTimeout(runtimeCtxt, time.Second*10)
			if err := svr.Shutdown(ctx); err != nil {
				log.
					WithError(err).
					WithFields(logTags).
					Errorf("Failure during HTTP Server %s shutdown", svrInstance)
			}
			cancel()
		}
	}()

	// Start slot management HTTP server
	{
		svr := orchNode.MgmtAPIServer
		apiServers["mgmt-api"] = svr
		// Start the server
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := svr.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.WithError(err).Error("Slot management API HTTP server failure")
			}
		}()
	}
	// Start session HTTP server
	{
		svr := orchNode.SessionAPIServer
		apiServers["session-api"] = svr
		// Start the server
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := svr.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.WithError(err).Error("Session API HTTP server failure")
			}
		}()
	}
	// Start metrics HTTP server
	{
		svr := orchNode.MetricsServer
		apiServers["metrics-api"] = svr
		// Start the server
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := svr.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.WithError(err).Error("Metrics API HTTP server failure")
			}
		}()
	}

	// ------------------------------------------------------------------------------------
	// Wait for termination

	cc := make(chan os.Signal, 1)
	// We'll accept graceful shutdowns when quit via SIGINT (Ctrl+C)
	// SIGKILL, SIGQUIT or SIGTERM (Ctrl+/) will not be caught.
	signal.Notify(cc, os.Interrupt)
	<-cc

	return nil
}
