package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	pitchdeck "github.com/alnah/go-pitchdeck"
	"github.com/alnah/go-pitchdeck/internal/assets"
	"github.com/alnah/go-pitchdeck/internal/config"
	"github.com/alnah/go-pitchdeck/internal/logger"
	"github.com/alnah/go-pitchdeck/internal/session"
	"github.com/alnah/go-pitchdeck/internal/web"
)

// runServe starts the web application and blocks until ctx is done.
func runServe(ctx context.Context, args []string, env *Environment) error {
	f, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(&f.common, env, func(cfg *config.Config) {
		applyGenerationFlags(&f.generation, cfg)
		applyExportFlags(&f.export, cfg)
		setString(&cfg.Server.Addr, f.addr)
		setString(&cfg.Logging.Format, f.logFormat)
		if f.workers > 0 {
			cfg.Export.Workers = f.workers
		}
	})
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if f.common.quiet {
		level = "error"
	}
	log := logger.Init(env.Stderr, level, cfg.Logging.Format)
	if !strings.EqualFold(level, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	client, err := newClient(ctx, env, cfg, log)
	if err != nil {
		return err
	}

	renderer, err := pitchdeck.NewRenderer(rendererOptions(cfg)...)
	if err != nil {
		return withHint(err)
	}
	loader, err := assets.NewAssetResolver(cfg.Assets.BasePath)
	if err != nil {
		return fmt.Errorf("%w: %v", pitchdeck.ErrInvalidAssetPath, err)
	}

	poolOpts := []pitchdeck.ExporterOption{
		pitchdeck.WithRenderer(renderer),
		pitchdeck.WithLogger(log),
	}
	if cfg.Export.Timeout > 0 {
		poolOpts = append(poolOpts, pitchdeck.WithTimeout(cfg.Export.Timeout))
	}
	pool := pitchdeck.NewExporterPool(pitchdeck.ResolvePoolSize(cfg.Export.Workers), poolOpts...)
	defer func() { _ = pool.Close() }()

	srv, err := web.New(client, pool, renderer,
		web.WithStore(session.NewStore(cfg.Server.SessionTTL)),
		web.WithLogger(log),
		web.WithAssetLoader(loader),
	)
	if err != nil {
		return err
	}

	log.Info("serving pitch deck generator",
		"addr", cfg.Server.Addr,
		"provider", client.Backend(),
		"export_workers", pool.Size(),
		"version", Version,
	)
	return srv.Run(ctx, cfg.Server.Addr)
}
