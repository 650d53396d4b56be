/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/flamego/csrf"
	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"
	"github.com/urfave/cli/v3"

	"github.com/humaidq/labdash/ocr"
	"github.com/humaidq/labdash/routes"
	"github.com/humaidq/labdash/static"
	"github.com/humaidq/labdash/templates"
)

const shutdownTimeout = 5 * time.Second

var CmdStart = &cli.Command{
	Name:    "start",
	Aliases: []string{"run"},
	Usage:   "Start the web server",
	Flags:   startFlags(),
	Action:  start,
}

func startFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "port",
			Value:   "8080",
			Sources: cli.EnvVars("PORT"),
			Usage:   "the web server port",
		},
		&cli.StringFlag{
			Name:    "env",
			Value:   string(envDevelopment),
			Sources: cli.EnvVars(runtimeEnvVar),
			Usage:   "runtime environment (development or production)",
		},
		&cli.StringFlag{
			Name:    "csrf-secret",
			Sources: cli.EnvVars(csrfSecretEnvVar),
			Usage:   "secret used to sign CSRF tokens (required in production)",
		},
		&cli.DurationFlag{
			Name:    "ocr-delay",
			Value:   ocr.DefaultDelay,
			Sources: cli.EnvVars("OCR_DELAY"),
			Usage:   "how long a simulated recognition takes",
		},
		&cli.Int64Flag{
			Name:    "upload-max-bytes",
			Value:   routes.DefaultUploadMaxBytes,
			Sources: cli.EnvVars("UPLOAD_MAX_BYTES"),
			Usage:   "maximum accepted size of an uploaded image",
		},
		&cli.StringFlag{
			Name:    "site-title",
			Value:   "Lab Report OCR",
			Sources: cli.EnvVars("SITE_TITLE"),
			Usage:   "title shown in the navigation bar",
		},
	}
}

// appOptions are the dependencies of the web application.
type appOptions struct {
	CSRFSecret string
	SiteTitle  string
	Uploads    *ocr.Store
	Upload     routes.UploadConfig
}

func newApp(opts appOptions) (*flamego.Flame, error) {
	fs, err := template.EmbedFS(templates.Templates, ".", []string{".html"})
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	f := flamego.New()
	f.Use(flamego.Recovery())
	f.Use(routes.RequestLogger)
	f.Use(session.Sessioner())
	f.Use(csrf.Csrfer(csrf.Options{
		Secret: opts.CSRFSecret,
	}))
	f.Use(template.Templater(template.Options{
		FileSystem: fs,
	}))
	f.Use(flamego.Static(flamego.StaticOptions{
		FileSystem: http.FS(static.Static),
		Prefix:     "static",
	}))
	f.Use(routes.NoCacheHeaders())
	f.Use(routes.CSRFInjector())
	f.Use(routes.SiteInjector(opts.SiteTitle))
	f.Use(routes.FlashInjector)

	f.Map(opts.Uploads)
	f.Map(opts.Upload)

	f.Get("/healthz", routes.Healthz)

	f.Get("/", routes.DiscardUpload, routes.Dashboard)
	f.Get("/indicator/{id}", routes.DiscardUpload, routes.ViewIndicator)
	f.Get("/report", routes.DiscardUpload, routes.Report)

	f.Group("/upload", func() {
		f.Get("", routes.UploadForm)
		f.Post("", routes.LimitUploadBody, csrf.Validate, routes.Upload)
		f.Post("/dismiss", csrf.Validate, routes.DismissUpload)
		f.Post("/cancel", csrf.Validate, routes.CancelUpload)
		f.Post("/confirm", csrf.Validate, routes.ConfirmUpload)
		f.Post("/photo", csrf.Validate, routes.TakePhoto)
		f.Get("/image/{id}", routes.UploadImage)
	})

	f.NotFound(routes.NotFound)

	return f, nil
}

func start(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadServerConfig(cmd)
	if err != nil {
		return err
	}

	uploads := ocr.NewStore(ocr.NewRecognizer(cfg.OCRDelay), routes.UploadImagePath)
	defer uploads.Close()

	f, err := newApp(appOptions{
		CSRFSecret: cfg.CSRFSecret,
		SiteTitle:  cfg.SiteTitle,
		Uploads:    uploads,
		Upload:     routes.UploadConfig{MaxBytes: cfg.UploadMaxBytes},
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%s", cfg.Port),
		Handler:      f,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		ErrorLog:     requestStdLogger,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("Starting web server", "port", cfg.Port, "env", cfg.Env, "ocr_delay", cfg.OCRDelay)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web server failed: %w", err)
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down web server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down web server: %w", err)
	}

	return nil
}
