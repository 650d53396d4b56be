/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import "errors"

var (
	errCSRFSecretRequired = errors.New(csrfSecretEnvVar + " is required in production")
	errInvalidRuntimeEnv  = errors.New(runtimeEnvVar + " must be one of: development, dev, production, prod")
	errInvalidOCRDelay    = errors.New("ocr-delay must not be negative")
	errInvalidUploadLimit = errors.New("upload-max-bytes must be positive")
)
