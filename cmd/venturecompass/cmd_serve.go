package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/1234bibhash/venture-idea-compass/internal/businessplan"
	"github.com/1234bibhash/venture-idea-compass/internal/ideaanalysis"
	"github.com/1234bibhash/venture-idea-compass/internal/subscription"
	"github.com/1234bibhash/venture-idea-compass/internal/telemetry"
	"github.com/1234bibhash/venture-idea-compass/internal/webapp"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the VentureCompass web API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg
	log := a.logger

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.WithError(err).Warn("flush traces")
		}
	}()

	backend, err := openStore(cfg.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer backend.Close()

	var limiter *rate.Limiter
	if cfg.RateLimit.RPM > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RateLimit.RPM)/60), cfg.RateLimit.Burst)
	}
	var pdf businessplan.PDFRenderer
	if cfg.PDF.Enabled {
		layout, err := cfg.PDF.Layout()
		if err != nil {
			return err
		}
		pdf = businessplan.NewChromiumPDFRenderer(cfg.PDF.ChromePath, layout)
	}

	web := webapp.New(webapp.Options{
		Synthesizer:   ideaanalysis.NewSynthesizer(),
		Store:         backend,
		Tracker:       subscription.NewTracker(backend, cfg.FreeIdeaLimit),
		PDFRenderer:   pdf,
		Limiter:       limiter,
		Logger:        log,
		WebDir:        cfg.WebDir,
		AnalysisDelay: cfg.AnalysisDelay,
	})
	if cfg.StateFile != "" {
		n, err := web.LoadState(ctx, cfg.StateFile)
		if err != nil {
			web.Close()
			return fmt.Errorf("load state: %w", err)
		}
		log.WithField("submissions", n).Info("state restored")
	}

	srv := &http.Server{Addr: cfg.Addr, Handler: web, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"addr":   cfg.Addr,
			"store":  cfg.Store.Driver,
			"web":    cfg.WebDir,
			"delay":  cfg.AnalysisDelay.String(),
			"pdf":    cfg.PDF.Enabled,
			"traces": cfg.Telemetry.Enabled,
		}).Info("venturecompass listening")
		errCh <- srv.ListenAndServe()
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			serveErr = err
		}
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.WithError(err).Warn("http shutdown")
	}
	web.Close()

	if cfg.StateFile != "" {
		if err := web.SaveState(cfg.StateFile); err != nil {
			log.WithError(err).Error("save state")
		}
	}
	return serveErr
}
