// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/humaidq/labdash/ocr"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n")

func waitForState(t *testing.T, uploads *ocr.Store, sessionID string, want ocr.State) ocr.Snapshot {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for {
		snap := uploads.Current(sessionID)
		if snap.State == want {
			return snap
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for state %s, last state %s", want, snap.State)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestUploadRejectsNonImage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
	}{
		{name: "pdf", contentType: "application/pdf"},
		{name: "text", contentType: "text/plain"},
		{name: "empty", contentType: ""},
		{name: "major type only", contentType: "image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestSession()
			uploads := newTestStore(t, time.Millisecond)
			f := newTestApp(t, s, uploads)

			rec := performUpload(t, f, uploadFormField, "report.pdf", tt.contentType, []byte("%PDF-1.4"))
			assertRedirect(t, rec, "/upload")
			assertFlash(t, s, FlashError, uploadNotImageMessage)

			if uploads.Len() != 0 {
				t.Fatalf("expected no upload slot, got %d", uploads.Len())
			}
		})
	}
}

func TestUploadMissingFile(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	uploads := newTestStore(t, time.Millisecond)
	f := newTestApp(t, s, uploads)

	rec := performUpload(t, f, "other_field", "report.png", "image/png", pngHeader)
	assertRedirect(t, rec, "/upload")
	assertFlash(t, s, FlashError, "No file uploaded or invalid file")

	if uploads.Len() != 0 {
		t.Fatalf("expected no upload slot, got %d", uploads.Len())
	}
}

func TestUploadTooLarge(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	uploads := newTestStore(t, time.Millisecond)
	f := newTestApp(t, s, uploads)

	content := make([]byte, 2<<20)
	rec := performUpload(t, f, uploadFormField, "large.png", "image/png", content)
	assertRedirect(t, rec, "/upload")

	msg, ok := s.flash.(FlashMessage)
	if !ok || msg.Type != FlashError {
		t.Fatalf("expected error flash, got %#v", s.flash)
	}

	if uploads.Len() != 0 {
		t.Fatalf("expected no upload slot, got %d", uploads.Len())
	}
}

func TestUploadRecognizesFixedFields(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	uploads := newTestStore(t, time.Millisecond)
	f := newTestApp(t, s, uploads)

	rec := performUpload(t, f, uploadFormField, "report.png", "image/png", pngHeader)
	assertRedirect(t, rec, "/upload")
	assertNoFlash(t, s)

	snap := waitForState(t, uploads, s.ID(), ocr.StateDone)
	if snap.Result == nil || snap.Result.Status != ocr.StatusSuccess {
		t.Fatalf("expected successful result, got %#v", snap.Result)
	}

	body := assertOK(t, performGET(t, f, "/upload"))

	wantOrder := []string{
		"White Blood Cell Count", "92.0%", "11.2 ×10^9/L",
		"Hemoglobin", "89.0%", "125 g/L",
		"Platelet Count", "95.0%", "210 ×10^9/L",
	}
	pos := 0
	for _, want := range wantOrder {
		idx := strings.Index(body[pos:], want)
		if idx == -1 {
			t.Fatalf("expected %q after offset %d in upload page", want, pos)
		}
		pos += idx + len(want)
	}

	if !strings.Contains(body, `src="`+snap.Result.ImageURL+`"`) {
		t.Fatalf("expected preview image %q in upload page", snap.Result.ImageURL)
	}
	if !strings.Contains(body, "Lab report recognized") {
		t.Fatal("expected recognition notice on first render")
	}

	body = assertOK(t, performGET(t, f, "/upload"))
	if strings.Contains(body, "Lab report recognized") {
		t.Fatal("expected recognition notice only once per task")
	}
	if !strings.Contains(body, "Recognition Result") {
		t.Fatal("expected the result to stay visible")
	}
}

func TestUploadProcessingRefreshes(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	uploads := newTestStore(t, time.Hour)
	f := newTestApp(t, s, uploads)

	assertRedirect(t, performUpload(t, f, uploadFormField, "report.jpg", "image/jpeg", pngHeader), "/upload")

	body := assertOK(t, performGET(t, f, "/upload"))
	if !strings.Contains(body, `http-equiv="refresh"`) {
		t.Fatal("expected processing page to refresh")
	}
	if !strings.Contains(body, `data-state="processing"`) {
		t.Fatal("expected processing state")
	}
	if strings.Contains(body, "Recognition Result") {
		t.Fatal("expected no result while processing")
	}
}

func TestDismissUploadReturnsToIdle(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	uploads := newTestStore(t, time.Millisecond)
	f := newTestApp(t, s, uploads)

	assertRedirect(t, performUpload(t, f, uploadFormField, "report.png", "image/png", pngHeader), "/upload")
	waitForState(t, uploads, s.ID(), ocr.StateDone)

	assertRedirect(t, performPOST(t, f, "/upload/dismiss"), "/upload")

	body := assertOK(t, performGET(t, f, "/upload"))
	if !strings.Contains(body, `data-state="idle"`) {
		t.Fatal("expected idle upload page after dismiss")
	}
	if strings.Contains(body, "Recognition Result") {
		t.Fatal("expected no result after dismiss")
	}
	if uploads.Len() != 0 {
		t.Fatalf("expected upload slot to be dropped, got %d", uploads.Len())
	}
}

func TestCancelUploadStopsPendingTask(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	uploads := newTestStore(t, time.Hour)
	f := newTestApp(t, s, uploads)

	assertRedirect(t, performUpload(t, f, uploadFormField, "report.png", "image/png", pngHeader), "/upload")

	assertRedirect(t, performPOST(t, f, "/upload/cancel"), "/")
	assertFlash(t, s, FlashInfo, "Upload cancelled")

	if snap := uploads.Current(s.ID()); snap.State != ocr.StateIdle {
		t.Fatalf("expected idle state after cancel, got %s", snap.State)
	}
}

func TestCancelWithoutUpload(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	f := newTestApp(t, s, newTestStore(t, time.Millisecond))

	assertRedirect(t, performPOST(t, f, "/upload/cancel"), "/")
	assertNoFlash(t, s)
}

func TestConfirmUpload(t *testing.T) {
	t.Parallel()

	t.Run("nothing to confirm", func(t *testing.T) {
		t.Parallel()

		s := newTestSession()
		f := newTestApp(t, s, newTestStore(t, time.Millisecond))

		assertRedirect(t, performPOST(t, f, "/upload/confirm"), "/upload")
		assertFlash(t, s, FlashWarning, "Nothing to confirm yet")
	})

	t.Run("recognized result", func(t *testing.T) {
		t.Parallel()

		s := newTestSession()
		uploads := newTestStore(t, time.Millisecond)
		f := newTestApp(t, s, uploads)

		assertRedirect(t, performUpload(t, f, uploadFormField, "report.png", "image/png", pngHeader), "/upload")
		waitForState(t, uploads, s.ID(), ocr.StateDone)

		assertRedirect(t, performPOST(t, f, "/upload/confirm"), "/")
		assertFlash(t, s, FlashSuccess, "Lab report confirmed")

		if uploads.Len() != 0 {
			t.Fatalf("expected upload slot to be dropped, got %d", uploads.Len())
		}
	})
}

func TestUploadFailureShowsRetryMessage(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	uploads := ocr.NewStore(&ocr.Recognizer{
		Delay: time.Millisecond,
		Extract: func(context.Context, ocr.Image) ([]ocr.Field, error) {
			return nil, errors.New("scanner offline")
		},
	}, UploadImagePath)
	t.Cleanup(uploads.Close)
	f := newTestApp(t, s, uploads)

	assertRedirect(t, performUpload(t, f, uploadFormField, "report.png", "image/png", pngHeader), "/upload")
	waitForState(t, uploads, s.ID(), ocr.StateFailed)

	body := assertOK(t, performGET(t, f, "/upload"))
	if !strings.Contains(body, uploadFailedMessage) {
		t.Fatal("expected generic failure message")
	}
	if strings.Contains(body, "scanner offline") {
		t.Fatal("expected internal error to stay hidden")
	}

	body = assertOK(t, performGET(t, f, "/upload"))
	if strings.Contains(body, uploadFailedMessage) {
		t.Fatal("expected failure message only once")
	}
}

func TestNavigationDiscardsUpload(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/", "/report", "/indicator/1"} {
		t.Run(path, func(t *testing.T) {
			t.Parallel()

			s := newTestSession()
			uploads := newTestStore(t, time.Hour)
			f := newTestApp(t, s, uploads)

			assertRedirect(t, performUpload(t, f, uploadFormField, "report.png", "image/png", pngHeader), "/upload")
			if uploads.Len() != 1 {
				t.Fatalf("expected one upload slot, got %d", uploads.Len())
			}

			assertOK(t, performGET(t, f, path))

			if uploads.Len() != 0 {
				t.Fatalf("expected upload slot to be dropped after visiting %s", path)
			}
		})
	}
}

func TestUploadImage(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	uploads := newTestStore(t, time.Millisecond)
	f := newTestApp(t, s, uploads)

	assertRedirect(t, performUpload(t, f, uploadFormField, "report.png", "image/png", pngHeader), "/upload")
	snap := waitForState(t, uploads, s.ID(), ocr.StateDone)

	rec := performGET(t, f, UploadImagePath+snap.TaskID)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "image/png" {
		t.Fatalf("unexpected content type %q", got)
	}
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("unexpected X-Content-Type-Options %q", got)
	}
	if rec.Body.String() != string(pngHeader) {
		t.Fatal("expected uploaded bytes to be served back")
	}

	rec = performGET(t, f, UploadImagePath+"unknown")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestUploadImageOtherSession(t *testing.T) {
	t.Parallel()

	owner := newTestSession()
	uploads := newTestStore(t, time.Millisecond)
	assertRedirect(t, performUpload(t, newTestApp(t, owner, uploads), uploadFormField, "report.png", "image/png", pngHeader), "/upload")
	snap := waitForState(t, uploads, owner.ID(), ocr.StateDone)

	other := newTestSession()
	other.id = "other-session"

	rec := performGET(t, newTestApp(t, other, uploads), UploadImagePath+snap.TaskID)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestTakePhoto(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	f := newTestApp(t, s, newTestStore(t, time.Millisecond))

	assertRedirect(t, performPOST(t, f, "/upload/photo"), "/upload")
	assertFlash(t, s, FlashInfo, "Photo capture needs to be tested on a real device")
}

func TestFormatConfidence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{in: 0.92, want: "92.0%"},
		{in: 0.89, want: "89.0%"},
		{in: 0.955, want: "95.5%"},
		{in: 1, want: "100.0%"},
	}

	for _, tt := range tests {
		if got := formatConfidence(tt.in); got != tt.want {
			t.Fatalf("formatConfidence(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUploadConfigMaxBytes(t *testing.T) {
	t.Parallel()

	if got := (UploadConfig{}).maxBytes(); got != DefaultUploadMaxBytes {
		t.Fatalf("expected default limit, got %d", got)
	}
	if got := (UploadConfig{MaxBytes: 42}).maxBytes(); got != 42 {
		t.Fatalf("expected configured limit, got %d", got)
	}
}
