// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.


// Command pulsereport serves the Pulse Report news site from a headless CMS.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"pulsereport/internal/cache"
	"pulsereport/internal/cms"
	"pulsereport/internal/config"
	"pulsereport/internal/handlers"
	"pulsereport/internal/middleware"
	"pulsereport/internal/render"
	"pulsereport/internal/router"
	"pulsereport/internal/selection"
	"pulsereport/internal/seo"
	"pulsereport/internal/session"
)

// shutdownTimeout bounds graceful shutdown of in-flight requests.
const shutdownTimeout = 30 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pulsereport",
		Short:         "Server-rendered news front-end for a headless CMS",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// A missing .env is normal outside local development.
			if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("load .env: %w", err)
			}
			return nil
		},
	}
	root.AddCommand(newServeCmd(), newSitemapCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
}

func newSitemapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sitemap",
		Short: "Print the sitemap XML to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client := cms.New(cms.Config{URL: cfg.CMSURL, Token: cfg.CMSToken, Timeout: cfg.CMSTimeout})
			slugs, err := client.AllSlugs(cmd.Context())
			if err != nil {
				slog.Error("failed to list slugs, sitemap has the home URL only", "error", err)
			}
			body, err := seo.Sitemap(cfg.SiteURL, slugs, time.Now())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(body)
			return err
		},
	}
}

// loadConfig reads the configuration and installs the default logger:
// text in development, JSON otherwise.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler = slog.NewJSONHandler(os.Stderr, opts)
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"cms_configured", cfg.CMSConfigured(),
	)
	return cfg, nil
}

func serve(cfg *config.Config) error {
	valkeyClient, err := cache.ConnectValkey(cache.ConnectOptions{
		URL:      cfg.ValkeyURL,
		Host:     cfg.ValkeyHost,
		Port:     cfg.ValkeyPort,
		Password: cfg.ValkeyPassword,
	})
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		return err
	}
	defer valkeyClient.Close()

	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)
	pageCache := cache.NewPageCache(valkeyClient, cfg.CacheTTL)
	queryCache := cache.NewQueryCache(valkeyClient, cache.DefaultQueryTTL)

	client := cms.New(
		cms.Config{URL: cfg.CMSURL, Token: cfg.CMSToken, Timeout: cfg.CMSTimeout},
		cms.WithResponseCache(queryCache),
	)

	stores := selection.NewRegistry(client, cfg.StoreIdleTTL)
	defer stores.Close()

	renderer, err := render.New(render.Options{
		SiteName:  cfg.SiteName,
		SiteURL:   cfg.SiteURL,
		MediaBase: client.BaseURL(),
		DevMode:   cfg.IsDev(),
	})
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		return err
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer limiter.Stop()

	public := handlers.NewPublic(client, stores, renderer, pageCache, sessionStore, handlers.PublicConfig{
		SiteURL:        cfg.SiteURL,
		DefaultColumns: cfg.GridDefaultColumns,
		SelectWait:     cfg.SelectWait,
	})
	if cfg.WebhookSecret == "" {
		slog.Warn("WEBHOOK_SECRET not set, CMS webhook invalidation disabled")
	}
	webhook := handlers.NewWebhook(cfg.WebhookSecret, pageCache, queryCache)

	r := router.New(router.Deps{
		Sessions:    sessionStore,
		Public:      public,
		Webhook:     webhook,
		RateLimiter: limiter,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		slog.Error("server failed to start", "error", err)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		return err
	}

	slog.Info("server stopped gracefully")
	return nil
}
