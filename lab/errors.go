/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package lab

import "errors"

var (
	// ErrIndicatorNotFound is returned when no indicator has the requested ID.
	ErrIndicatorNotFound = errors.New("indicator not found")

	errUnknownCategory = errors.New("unknown category")
	errUnknownTab      = errors.New("unknown tab")
	errInvalidRange    = errors.New("invalid range")
)
