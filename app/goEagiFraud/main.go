package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/superfeelapi/goEagi"
	"github.com/superfeelapi/goEagiFraud/business/dialogue"
	"github.com/superfeelapi/goEagiFraud/business/verify"
	"github.com/superfeelapi/goEagiFraud/business/web/casesapi"
	"github.com/superfeelapi/goEagiFraud/business/worker"
	"github.com/superfeelapi/goEagiFraud/foundation/config"
	"github.com/superfeelapi/goEagiFraud/foundation/logger"
	"github.com/superfeelapi/goEagiFraud/foundation/redis"
	"go.uber.org/zap"
)

var (
	actor     = "agent"
	version   string
	buildTime string
)

type appConfig struct {
	conf.Version
	Call struct {
		ID    string
		Actor string
	}
	Eagi struct {
		Enabled bool `conf:"default:false"`
	}
	Agent struct {
		ProfilePath string `conf:"default:/etc/goEagiFraud/profiles.yaml"`
		ProfileID   string `conf:"default:default"`
	}
	Store struct {
		Kind       string `conf:"default:json"`
		Path       string `conf:"default:../shared-data/fraud_cases.json"`
		SQLitePath string `conf:"default:fraud_cases.db"`
		SeedPath   string
	}
	Redis struct {
		Address         string
		Password        string `conf:"noprint"`
		DecisionChannel string `conf:"default:fraud:decisions"`
		KeyPrefix       string `conf:"default:fraud:case:"`
	}
	Speech struct {
		Mode   string `conf:"default:console"`
		Scheme string `conf:"default:ws"`
		Host   string `conf:"default:localhost:8080"`
		Path   string `conf:"default:/speech"`
		ApiKey string `conf:"noprint"`
	}
	Admin struct {
		Host string
	}
	Logger struct {
		LogDirectory string
	}
}

func main() {
	// =================================================================================================================
	// Configuration

	cfg := appConfig{
		Version: conf.Version{
			Build: version,
			Desc:  buildTime,
		},
	}

	// Configuration Parsing
	help, err := conf.Parse("", &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}

	// =================================================================================================================
	// Set Actor

	// --version and --help are answered by conf.Parse above.
	if cfg.Call.Actor == "" {
		cfg.Call.Actor = actor
	}

	if err := validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}

	// =================================================================================================================
	// Eagi Environment Variables

	var eagi *goEagi.Eagi
	if cfg.Eagi.Enabled {
		eagi, err = goEagi.New()
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			os.Exit(1)
		}

		if id := strings.TrimSpace(eagi.Env["arg_1"]); id != "" {
			cfg.Call.ID = id
		}
		if id := strings.TrimSpace(eagi.Env["arg_2"]); id != "" {
			cfg.Agent.ProfileID = id
		}
	}

	if cfg.Call.ID == "" {
		cfg.Call.ID = uuid.New().String()
	}

	// =================================================================================================================
	// Application Logger

	log, err := logger.New(cfg.Logger.LogDirectory, cfg.Agent.ProfileID, strings.ToLower(cfg.Call.Actor))
	if err != nil {
		if eagi != nil {
			eagi.Verbose(fmt.Sprintf("ERROR: %s\n", err.Error()))
		}
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
	log = log.With("call", cfg.Call.ID)

	if err := run(log, cfg); err != nil {
		log.Errorw("shutdown", "ERROR", err)
		if eagi != nil {
			eagi.Verbose(fmt.Sprintf("ERROR: %s\n", err.Error()))
		}
		log.Sync()
		os.Exit(1)
	}
	log.Sync()
}

func run(log *zap.SugaredLogger, cfg appConfig) error {
	ctx := context.Background()

	// =================================================================================================================
	// Configuration Stringify

	out, err := conf.String(&cfg)
	if err != nil {
		log.Errorw("startup", "ERROR", err)
	}
	log.Infow("startup", "config", out)

	// =================================================================================================================
	// Agent Profile

	profile := config.Default()
	if cfg.Agent.ProfilePath != "" {
		p, err := config.GetProfile(cfg.Agent.ProfilePath, cfg.Agent.ProfileID)
		if err != nil {
			log.Warnw("startup: profile not loaded, using defaults", "ERROR", err)
		} else {
			profile = p
		}
	}
	log.Infow("startup", "profile", profile.ID, "bank", profile.BankName, "maxAttempts", profile.MaxAttempts)

	// =================================================================================================================
	// Redis

	var redisClient *redis.Redis
	if cfg.Redis.Address != "" {
		redisClient, err = redis.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DecisionChannel, log)
		if err != nil {
			log.Errorw("startup", "ERROR", err)
		} else {
			defer redisClient.Close()
		}
	}

	// =================================================================================================================
	// Case Store

	store, closeStore, err := openStore(ctx, log, cfg, redisClient)
	if err != nil {
		return fmt.Errorf("case store: %w", err)
	}
	defer closeStore()

	// =================================================================================================================
	// Call State Machine

	machine := dialogue.New(dialogue.Config{
		Store:      store,
		Verifier:   verify.New(profile.MaxAttempts),
		Classifier: dialogue.NewClassifier(profile.Keywords.Affirmative, profile.Keywords.Negative),
		Script:     dialogue.Script{BankName: profile.BankName},
		Logger:     log,
	})

	// =================================================================================================================
	// Speech

	listener, speaker, closeSpeech, err := openSpeech(ctx, cfg, profile)
	if err != nil {
		return fmt.Errorf("speech: %w", err)
	}
	defer closeSpeech()

	// =================================================================================================================
	// Inspection API

	if cfg.Admin.Host != "" {
		r := chi.NewRouter()
		casesapi.NewHandler(store, machine, log).Routes(r)

		srv := http.Server{
			Addr:              cfg.Admin.Host,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			log.Infow("startup", "status", "inspection api started", "host", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Errorw("inspection api", "ERROR", err)
			}
		}()

		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(ctx)
		}()
	}

	// =================================================================================================================
	// Run Worker

	workerCh := worker.Run(worker.Settings{
		Logger:   log,
		Machine:  machine,
		Listener: listener,
		Speaker:  speaker,
		Redis:    redisClient,
		Config: worker.Config{
			CallID:    cfg.Call.ID,
			Actor:     strings.ToLower(cfg.Call.Actor),
			ProfileID: profile.ID,
		},
	})

	// Blocking main and waiting for error or shutdown.
	err = <-workerCh

	log.Infow("shutdown", "status", "shutdown started", "outcome", machine.Outcome().Reason)
	defer log.Infow("shutdown", "status", "shutdown complete")

	return err
}
