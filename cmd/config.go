/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
)

const (
	runtimeEnvVar    = "LABDASH_ENV"
	csrfSecretEnvVar = "CSRF_SECRET"
)

type runtimeEnv string

const (
	envDevelopment runtimeEnv = "development"
	envProduction  runtimeEnv = "production"
)

func parseRuntimeEnv(raw string) (runtimeEnv, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "development", "dev":
		return envDevelopment, nil
	case "production", "prod":
		return envProduction, nil
	default:
		return "", fmt.Errorf("%w: %q", errInvalidRuntimeEnv, raw)
	}
}

// serverConfig is the resolved configuration of the web server.
type serverConfig struct {
	Port           string
	Env            runtimeEnv
	CSRFSecret     string
	OCRDelay       time.Duration
	UploadMaxBytes int64
	SiteTitle      string
}

func loadServerConfig(cmd *cli.Command) (serverConfig, error) {
	env, err := parseRuntimeEnv(cmd.String("env"))
	if err != nil {
		return serverConfig{}, err
	}

	cfg := serverConfig{
		Port:           cmd.String("port"),
		Env:            env,
		CSRFSecret:     strings.TrimSpace(cmd.String("csrf-secret")),
		OCRDelay:       cmd.Duration("ocr-delay"),
		UploadMaxBytes: cmd.Int64("upload-max-bytes"),
		SiteTitle:      strings.TrimSpace(cmd.String("site-title")),
	}

	if cfg.OCRDelay < 0 {
		return serverConfig{}, errInvalidOCRDelay
	}
	if cfg.UploadMaxBytes <= 0 {
		return serverConfig{}, errInvalidUploadLimit
	}

	if cfg.CSRFSecret == "" {
		if cfg.Env == envProduction {
			return serverConfig{}, errCSRFSecretRequired
		}

		cfg.CSRFSecret, err = randomSecret()
		if err != nil {
			return serverConfig{}, fmt.Errorf("failed to generate CSRF secret: %w", err)
		}
		appLogger.Warn("No CSRF secret configured, using a random one for this run")
	}

	return cfg, nil
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
