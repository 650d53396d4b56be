/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/labdash/ocr"
)

const (
	// UploadImagePath prefixes the preview URL of an uploaded image.
	UploadImagePath = "/upload/image/"

	// DefaultUploadMaxBytes caps the size of an uploaded image.
	DefaultUploadMaxBytes int64 = 10 << 20

	uploadFormField       = "report_image"
	uploadNotifiedKey     = "upload_notified_task"
	uploadRefreshSeconds  = 1
	uploadNotImageMessage = "Please upload an image file"
	uploadFailedMessage   = "Recognition failed, please retry"
)

// UploadConfig carries the upload settings handlers need.
type UploadConfig struct {
	MaxBytes int64
}

// FieldView is one recognized field as rendered on the result panel.
type FieldView struct {
	Name       string
	Value      string
	Confidence string
}

func fieldViews(fields []ocr.Field) []FieldView {
	views := make([]FieldView, 0, len(fields))
	for _, f := range fields {
		views = append(views, FieldView{
			Name:       f.Name,
			Value:      f.Value,
			Confidence: formatConfidence(f.Confidence),
		})
	}
	return views
}

func formatConfidence(c float64) string {
	return strconv.FormatFloat(c*100, 'f', 1, 64) + "%"
}

// UploadForm renders the upload page in whatever state the session's upload
// slot is in.
func UploadForm(s session.Session, uploads *ocr.Store, t template.Template, data template.Data) {
	data["Page"] = pageUpload
	data["Title"] = "Upload Lab Report"
	data["UploadField"] = uploadFormField

	snap := uploads.Current(s.ID())
	data["State"] = snap.State.String()

	switch snap.State {
	case ocr.StateProcessing:
		data["Processing"] = true
		data["RefreshSeconds"] = uploadRefreshSeconds
		data["FileName"] = snap.FileName

	case ocr.StateDone:
		data["Result"] = snap.Result
		data["Fields"] = fieldViews(snap.Result.Fields)
		data["FileName"] = snap.FileName

		if notified, _ := s.Get(uploadNotifiedKey).(string); notified != snap.TaskID {
			s.Set(uploadNotifiedKey, snap.TaskID)
			data["Recognized"] = true
		}

	case ocr.StateFailed:
		if !errors.Is(snap.Err, ocr.ErrCanceled) {
			logger.Error("Recognition failed", "task_id", snap.TaskID, "error", snap.Err)
			data["Error"] = uploadFailedMessage
		}
		uploads.Discard(s.ID())
		data["State"] = ocr.StateIdle.String()
	}

	t.HTML(http.StatusOK, "upload")
}

func (cfg UploadConfig) maxBytes() int64 {
	if cfg.MaxBytes <= 0 {
		return DefaultUploadMaxBytes
	}
	return cfg.MaxBytes
}

// LimitUploadBody caps the request body before anything reads the form.
func LimitUploadBody(c flamego.Context, cfg UploadConfig) {
	req := c.Request().Request
	req.Body = http.MaxBytesReader(c.ResponseWriter(), req.Body, cfg.maxBytes())
	c.Next()
}

// Upload accepts a lab report image and starts its recognition.
func Upload(c flamego.Context, s session.Session, uploads *ocr.Store, cfg UploadConfig) {
	maxBytes := cfg.maxBytes()
	req := c.Request().Request

	if err := req.ParseMultipartForm(maxBytes); err != nil {
		logger.Error("Error parsing upload form", "error", err)

		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			SetErrorFlash(s, fmt.Sprintf("File is too large (limit %d MB)", maxBytes>>20))
		} else {
			SetErrorFlash(s, "Failed to parse upload form")
		}

		c.Redirect("/upload", http.StatusSeeOther)
		return
	}

	file, header, err := req.FormFile(uploadFormField)
	if err != nil {
		logger.Error("Error reading upload file", "error", err)
		SetErrorFlash(s, "No file uploaded or invalid file")
		c.Redirect("/upload", http.StatusSeeOther)
		return
	}

	defer func() {
		if err := file.Close(); err != nil {
			logger.Error("Error closing upload file", "error", err)
		}
	}()

	contentType := header.Header.Get("Content-Type")
	if err := ocr.ValidateImage(contentType); err != nil {
		logger.Warn("Rejected upload", "file", header.Filename, "content_type", contentType)
		SetErrorFlash(s, uploadNotImageMessage)
		c.Redirect("/upload", http.StatusSeeOther)
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		logger.Error("Error reading upload content", "file", header.Filename, "error", err)
		SetErrorFlash(s, uploadFailedMessage)
		c.Redirect("/upload", http.StatusSeeOther)
		return
	}

	_, err = uploads.Begin(s.ID(), ocr.Image{
		Name:        header.Filename,
		ContentType: contentType,
		Data:        content,
	})
	if err != nil {
		logger.Error("Error starting recognition", "file", header.Filename, "error", err)
		if errors.Is(err, ocr.ErrNotImage) {
			SetErrorFlash(s, uploadNotImageMessage)
		} else {
			SetErrorFlash(s, uploadFailedMessage)
		}
		c.Redirect("/upload", http.StatusSeeOther)
		return
	}

	c.Redirect("/upload", http.StatusSeeOther)
}

// DismissUpload drops the result and returns to the empty upload page.
func DismissUpload(c flamego.Context, s session.Session, uploads *ocr.Store) {
	uploads.Discard(s.ID())
	c.Redirect("/upload", http.StatusSeeOther)
}

// CancelUpload abandons the upload, pending or not, and leaves the page.
func CancelUpload(c flamego.Context, s session.Session, uploads *ocr.Store) {
	if uploads.Discard(s.ID()) {
		SetInfoFlash(s, "Upload cancelled")
	}
	c.Redirect("/", http.StatusSeeOther)
}

// ConfirmUpload accepts a recognized result and returns to the dashboard.
func ConfirmUpload(c flamego.Context, s session.Session, uploads *ocr.Store) {
	if snap := uploads.Current(s.ID()); snap.State != ocr.StateDone {
		SetWarningFlash(s, "Nothing to confirm yet")
		c.Redirect("/upload", http.StatusSeeOther)
		return
	}

	uploads.Discard(s.ID())
	SetSuccessFlash(s, "Lab report confirmed")
	c.Redirect("/", http.StatusSeeOther)
}

// TakePhoto reports that camera capture is not available from the server.
func TakePhoto(c flamego.Context, s session.Session) {
	SetInfoFlash(s, "Photo capture needs to be tested on a real device")
	c.Redirect("/upload", http.StatusSeeOther)
}

// UploadImage serves the uploaded image back to the session that owns it.
func UploadImage(c flamego.Context, s session.Session, uploads *ocr.Store) {
	img, err := uploads.Image(s.ID(), c.Param("id"))
	if err != nil {
		c.ResponseWriter().WriteHeader(http.StatusNotFound)
		return
	}

	headers := c.ResponseWriter().Header()
	headers.Set("Content-Type", img.ContentType)
	headers.Set("Content-Length", strconv.Itoa(len(img.Data)))
	headers.Set("X-Content-Type-Options", "nosniff")
	headers.Set("Content-Security-Policy", "default-src 'none'; sandbox")
	headers.Set("Cache-Control", "no-store, max-age=0")

	c.ResponseWriter().WriteHeader(http.StatusOK)
	if _, err := c.ResponseWriter().Write(img.Data); err != nil {
		logger.Error("Error writing upload image", "error", err)
	}
}

// DiscardUpload drops the session's upload when navigating to another view.
func DiscardUpload(c flamego.Context, s session.Session, uploads *ocr.Store) {
	uploads.Discard(s.ID())
	c.Next()
}
