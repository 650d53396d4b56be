/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package ocr

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/humaidq/labdash/logging"
)

var logger = logging.Logger(logging.SourceOCR)

// DefaultSlotTTL bounds how long an abandoned upload slot is kept.
const DefaultSlotTTL = 30 * time.Minute

// State is the phase of a session's upload slot.
type State int

const (
	StateIdle State = iota
	StateProcessing
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateProcessing:
		return "processing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Snapshot is a point-in-time view of an upload slot.
type Snapshot struct {
	State    State
	TaskID   string
	FileName string
	Result   *Result
	Err      error
}

type slot struct {
	task  *Task
	image Image
}

// Store holds at most one upload per session. Tasks started through the
// store are cancelled when replaced, discarded, or when the store closes.
type Store struct {
	recognizer *Recognizer
	imagePath  string
	ttl        time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	slots  map[string]*slot
	closed bool
}

// NewStore creates a store. imagePath is prefixed to task IDs to build the
// preview URL of a result.
func NewStore(r *Recognizer, imagePath string) *Store {
	ctx, cancel := context.WithCancel(context.Background())

	return &Store{
		recognizer: r,
		imagePath:  imagePath,
		ttl:        DefaultSlotTTL,
		ctx:        ctx,
		cancel:     cancel,
		slots:      make(map[string]*slot),
	}
}

// Begin validates img and starts its recognition in the session's slot,
// cancelling whatever the slot held before.
func (s *Store) Begin(sessionID string, img Image) (*Task, error) {
	if sessionID == "" {
		return nil, errEmptySessionID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	task, err := s.recognizer.Start(s.ctx, img)
	if err != nil {
		return nil, err
	}

	if prev, ok := s.slots[sessionID]; ok {
		prev.task.Cancel()
		logger.Info("Replaced pending upload", "task_id", prev.task.ID, "session", shortID(sessionID))
	}

	s.sweepLocked(time.Now())
	s.slots[sessionID] = &slot{task: task, image: img}

	logger.Info("Started recognition",
		"task_id", task.ID,
		"file", img.Name,
		"content_type", img.ContentType,
		"bytes", len(img.Data),
	)

	return task, nil
}

// Current reports the state of the session's slot.
func (s *Store) Current(sessionID string) Snapshot {
	s.mu.Lock()
	s.sweepLocked(time.Now())
	sl, ok := s.slots[sessionID]
	s.mu.Unlock()

	if !ok {
		return Snapshot{State: StateIdle}
	}

	snap := Snapshot{TaskID: sl.task.ID, FileName: sl.image.Name}

	fields, err := sl.task.Fields()
	switch {
	case errors.Is(err, ErrPending):
		snap.State = StateProcessing
	case err != nil:
		snap.State = StateFailed
		snap.Err = err
	default:
		snap.State = StateDone
		snap.Result = &Result{
			Status:   StatusSuccess,
			ImageURL: s.imagePath + sl.task.ID,
			Fields:   fields,
		}
	}

	return snap
}

// Discard cancels and drops the session's upload. It reports whether the
// slot held anything.
func (s *Store) Discard(sessionID string) bool {
	s.mu.Lock()
	sl, ok := s.slots[sessionID]
	delete(s.slots, sessionID)
	s.mu.Unlock()

	if !ok {
		return false
	}

	sl.task.Cancel()
	logger.Debug("Discarded upload", "task_id", sl.task.ID)

	return true
}

// Image returns the uploaded file of the session's current task.
func (s *Store) Image(sessionID, taskID string) (Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl, ok := s.slots[sessionID]
	if !ok || sl.task.ID != taskID {
		return Image{}, ErrNoUpload
	}
	return sl.image, nil
}

// Len returns the number of occupied slots.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.slots)
}

// Close cancels every task and rejects new uploads.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.slots = make(map[string]*slot)
	s.mu.Unlock()

	s.cancel()
}

func (s *Store) sweepLocked(now time.Time) {
	for id, sl := range s.slots {
		if now.Sub(sl.task.StartedAt) > s.ttl {
			sl.task.Cancel()
			delete(s.slots, id)
		}
	}
}

// shortID keeps session identifiers out of logs in full.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
