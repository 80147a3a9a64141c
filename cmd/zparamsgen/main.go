// main.go - Parameter-generation entry point.
//
// Drives parameter assembly end-to-end for every configured transaction
// shape: circuit constraint count -> required SRS degree -> cached or fresh
// SRS -> UserParams bundle. Cache files land in the configured directory so
// later process instances reuse rather than regenerate the trusted setup.
//
// Usage:
//   zparamsgen -config zparams.json

package main

import (
	"crypto/rand"
	"flag"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/findora-crypto/zei/setup"
	"github.com/findora-crypto/zei/xfr"
)

func main() {
	configPath := flag.String("config", "zparams.json", "path to the generator configuration")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("loading configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(level)
	}

	opts := []setup.StoreOption{setup.WithLogger(log)}
	if cfg.AllowRegenerate {
		opts = append(opts, setup.WithRegenerate())
	}
	store, err := setup.NewStore(cfg.CacheDir, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("opening parameter store")
	}

	// Shapes of equal degree contend on the same cache key; the store's
	// per-key lock makes sure only one of them generates.
	var g errgroup.Group
	for _, shape := range cfg.Shapes {
		g.Go(func() error {
			params, err := xfr.SetupUserParams(shape, store, rand.Reader)
			if err != nil {
				return err
			}
			log.Info().
				Int("n_payers", shape.NPayers).
				Int("n_payees", shape.NPayees).
				Int("tree_depth", shape.TreeDepth).
				Int("constraints", params.ConstraintCount).
				Int("degree", params.Degree).
				Msg("parameters ready")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("parameter generation failed")
	}
	log.Info().Str("cache_dir", cfg.CacheDir).Int("shapes", len(cfg.Shapes)).Msg("all parameter bundles assembled")
}
