/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package ocr

import "errors"

var (
	// ErrNotImage is returned when the declared media type is not an image.
	ErrNotImage = errors.New("not an image file")
	// ErrCanceled is the outcome of a task cancelled before it finished.
	ErrCanceled = errors.New("recognition canceled")
	// ErrPending is returned when reading a task that has not finished.
	ErrPending = errors.New("recognition pending")
	// ErrNoUpload is returned when a session has no upload in its slot.
	ErrNoUpload = errors.New("no upload for session")
	// ErrStoreClosed is returned by Begin after Close.
	ErrStoreClosed = errors.New("upload store closed")

	errEmptySessionID = errors.New("empty session id")
)
