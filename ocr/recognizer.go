/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package ocr

import (
	"context"
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultDelay is how long a simulated recognition takes.
const DefaultDelay = 2 * time.Second

// Status is the outcome reported with a recognition result.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Field is one value extracted from a lab report image.
type Field struct {
	Name       string
	Value      string
	Confidence float64
}

// Result is the recognition output shown on the upload page.
type Result struct {
	Status   Status
	ImageURL string
	Fields   []Field
}

// Image is an uploaded file held only for the lifetime of its upload slot.
type Image struct {
	Name        string
	ContentType string
	Data        []byte
}

// ExtractFunc produces the fields for an image once the delay has passed.
type ExtractFunc func(ctx context.Context, img Image) ([]Field, error)

// ValidateImage checks that a declared media type is an image type.
func ValidateImage(contentType string) error {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	major, minor, ok := strings.Cut(mediaType, "/")
	if !ok || major != "image" || minor == "" {
		return fmt.Errorf("%w: %q", ErrNotImage, contentType)
	}
	return nil
}

// FixedFields returns the simulated extraction: always the same three fields,
// whatever the image contains.
func FixedFields(context.Context, Image) ([]Field, error) {
	return []Field{
		{Name: "White Blood Cell Count", Value: "11.2 ×10^9/L", Confidence: 0.92},
		{Name: "Hemoglobin", Value: "125 g/L", Confidence: 0.89},
		{Name: "Platelet Count", Value: "210 ×10^9/L", Confidence: 0.95},
	}, nil
}

// Recognizer runs simulated recognitions.
type Recognizer struct {
	Delay   time.Duration
	Extract ExtractFunc
}

// NewRecognizer returns a recognizer producing FixedFields after delay.
func NewRecognizer(delay time.Duration) *Recognizer {
	return &Recognizer{Delay: delay, Extract: FixedFields}
}

// Start validates the image and begins a recognition bound to ctx. The task
// ends early with ErrCanceled when ctx is done or the task is cancelled.
func (r *Recognizer) Start(ctx context.Context, img Image) (*Task, error) {
	if err := ValidateImage(img.ContentType); err != nil {
		return nil, err
	}

	extract := r.Extract
	if extract == nil {
		extract = FixedFields
	}

	taskCtx, cancel := context.WithCancel(ctx)
	t := &Task{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	go t.run(taskCtx, r.Delay, extract, img)

	return t, nil
}

// Task is a single in-flight or finished recognition.
type Task struct {
	ID        string
	StartedAt time.Time

	cancel context.CancelFunc
	done   chan struct{}

	// Written once before done is closed.
	fields []Field
	err    error
}

func (t *Task) run(ctx context.Context, delay time.Duration, extract ExtractFunc, img Image) {
	defer close(t.done)
	defer t.cancel()

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		t.err = ErrCanceled
		return
	case <-timer.C:
	}

	fields, err := extract(ctx, img)
	if ctx.Err() != nil {
		t.err = ErrCanceled
		return
	}
	if err != nil {
		t.err = fmt.Errorf("failed to recognize %q: %w", img.Name, err)
		return
	}

	t.fields = fields
}

// Done is closed once the task has a result or an error.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Cancel stops a pending task. It has no effect on a finished one.
func (t *Task) Cancel() {
	t.cancel()
}

// Fields returns the outcome without blocking, or ErrPending.
func (t *Task) Fields() ([]Field, error) {
	select {
	case <-t.done:
	default:
		return nil, ErrPending
	}

	if t.err != nil {
		return nil, t.err
	}
	return append([]Field(nil), t.fields...), nil
}

// Wait blocks until the task finishes or ctx is done.
func (t *Task) Wait(ctx context.Context) ([]Field, error) {
	select {
	case <-t.done:
		return t.Fields()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
