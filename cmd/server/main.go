// Package main starts the renovation site web server.
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

	"remontzbt.dev/internal/config"
	"remontzbt.dev/internal/handlers"
	"remontzbt.dev/internal/logging"
	"remontzbt.dev/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	if err := logging.Init(logging.Options{
		ServiceName: "remont-web",
		Level:       cfg.Log.Level,
		File:        cfg.Log.File,
		MaxSizeMB:   cfg.Log.MaxSizeMB,
		MaxBackups:  cfg.Log.MaxBackups,
		MaxAgeDays:  cfg.Log.MaxAgeDays,
		Compress:    cfg.Log.Compress,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "init logging: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logging.Logger); err != nil {
		logging.Logger.WithError(err).Fatal("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	var loader services.ProjectLoader = services.NewFileLoader(cfg.ProjectsPath)
	source := cfg.ProjectsPath
	if cfg.ProjectsURL != "" {
		loader = services.NewHTTPLoader(cfg.ProjectsURL, cfg.LoadTimeout)
		source = cfg.ProjectsURL
	}

	handler, err := handlers.SetupRoutes(cfg, handlers.Services{
		Projects: services.NewProjectService(loader, log),
		Contact:  services.NewContactService(newSubmitter(cfg, log), log),
	}, log)
	if err != nil {
		return fmt.Errorf("setup routes: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Contact.SubmitTimeout + 10*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"addr":      cfg.ServerAddr,
			"base_path": cfg.BasePath,
			"projects":  source,
			"contact":   cfg.Contact.Mode,
		}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newSubmitter(cfg *config.Config, log logrus.FieldLogger) services.Submitter {
	if cfg.Contact.Mode != "smtp" {
		return services.SimulatedSubmitter{Delay: cfg.Contact.SimulatedDelay}
	}
	relay := services.NewSMTPSubmitter(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, cfg.SMTP.To)
	return services.NewBreakerSubmitter(relay, cfg.Contact.BreakerFailures, cfg.Contact.BreakerTimeout, log)
}
