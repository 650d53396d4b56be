/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

const (
	pageDashboard = "dashboard"
	pageUpload    = "upload"
	pageReport    = "report"
)

// BreadcrumbItem represents a single breadcrumb navigation item
type BreadcrumbItem struct {
	Name      string
	URL       string
	IsCurrent bool
}
