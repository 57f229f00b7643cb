package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/superfeelapi/goEagiFraud/business/casestore"
	"github.com/superfeelapi/goEagiFraud/business/worker"
	"github.com/superfeelapi/goEagiFraud/foundation/config"
	"github.com/superfeelapi/goEagiFraud/foundation/redis"
	"github.com/superfeelapi/goEagiFraud/foundation/speech"
	"go.uber.org/zap"
)

// validate rejects settings that cannot work together. Under EAGI, stdin and
// stdout carry the AGI protocol, so neither speech nor logs may use them.
func validate(cfg appConfig) error {
	var errs []error

	switch cfg.Speech.Mode {
	case "console", "gateway":
	default:
		errs = append(errs, fmt.Errorf("unknown speech mode %q", cfg.Speech.Mode))
	}

	if cfg.Eagi.Enabled {
		if cfg.Speech.Mode == "console" {
			errs = append(errs, errors.New("speech mode console reads stdin, which carries AGI under eagi; use gateway"))
		}
		if cfg.Logger.LogDirectory == "" {
			errs = append(errs, errors.New("logger writes to stdout, which carries AGI under eagi; set a log directory"))
		}
	}

	return errors.Join(errs...)
}

// openStore builds the configured case store and seeds it when a seed
// document is given.
func openStore(ctx context.Context, log *zap.SugaredLogger, cfg appConfig, r *redis.Redis) (casestore.Storer, func(), error) {
	var (
		store     casestore.Storer
		closeFunc = func() {}
	)

	switch cfg.Store.Kind {
	case "json":
		s, err := casestore.OpenJSON(cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		store = s
		log.Infow("startup: case store", "kind", "json", "path", s.Path())

	case "memory":
		store = casestore.NewMemoryStore()

	case "sqlite":
		s, err := casestore.OpenSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		store = s
		closeFunc = func() { s.Close() }

	case "redis":
		if r == nil {
			return nil, nil, fmt.Errorf("redis store requires a reachable redis")
		}
		store = casestore.NewRedisStore(r.Client, cfg.Redis.KeyPrefix)

	default:
		return nil, nil, fmt.Errorf("unknown store kind %q", cfg.Store.Kind)
	}

	if cfg.Store.SeedPath != "" {
		cases, err := casestore.LoadDocument(cfg.Store.SeedPath)
		if err != nil {
			closeFunc()
			return nil, nil, err
		}
		if err := casestore.Seed(ctx, store, cases); err != nil {
			closeFunc()
			return nil, nil, err
		}
		log.Infow("startup: case store seeded", "kind", cfg.Store.Kind, "cases", len(cases))
	}

	return store, closeFunc, nil
}

// openSpeech connects the call to the speech gateway, or to the terminal in
// console mode.
func openSpeech(ctx context.Context, cfg appConfig, profile config.Profile) (worker.Listener, worker.Speaker, func(), error) {
	switch cfg.Speech.Mode {
	case "console":
		c := speech.NewConsole(os.Stdin, os.Stdout)
		return c, c, func() { c.Close() }, nil

	case "gateway":
		u := url.URL{
			Scheme: cfg.Speech.Scheme,
			Host:   cfg.Speech.Host,
			Path:   cfg.Speech.Path,
		}

		g, err := speech.Dial(ctx, u, cfg.Speech.ApiKey, []string{profile.Language})
		if err != nil {
			return nil, nil, nil, err
		}
		return g, g, func() { g.Close() }, nil
	}

	return nil, nil, nil, fmt.Errorf("unknown speech mode %q", cfg.Speech.Mode)
}
