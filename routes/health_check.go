/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"

	"github.com/flamego/flamego"
)

// Healthz is the liveness probe.
func Healthz(c flamego.Context) {
	c.ResponseWriter().Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.ResponseWriter().WriteHeader(http.StatusOK)
	_, _ = c.ResponseWriter().Write([]byte("ok"))
}

// NotFound answers unknown routes with an empty 404.
func NotFound(c flamego.Context) {
	c.ResponseWriter().WriteHeader(http.StatusNotFound)
}
