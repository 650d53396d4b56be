/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"errors"
	"net/http"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/labdash/lab"
)

// Dashboard renders the indicator list for the selected category and tab.
func Dashboard(c flamego.Context, s session.Session, t template.Template, data template.Data) {
	category, catErr := lab.ParseCategory(c.Query("category"))
	tab, tabErr := lab.ParseTab(c.Query("tab"))
	if catErr != nil || tabErr != nil {
		logger.Warn("Invalid dashboard selection", "category_error", catErr, "tab_error", tabErr)
		SetWarningFlash(s, "Unknown filter, showing defaults")
		c.Redirect(dashboardURL(category, tab), http.StatusSeeOther)
		return
	}

	data["Page"] = pageDashboard
	data["Title"] = "Health Dashboard"
	data["Categories"] = categoryNav(category, tab)
	data["Tabs"] = tabNav(category, tab)
	data["Category"] = string(category)
	data["Tab"] = string(tab)

	indicators := lab.FilterIndicators(category, lab.Indicators())
	cards := make([]IndicatorCard, 0, len(indicators))
	for _, ind := range indicators {
		card, err := newIndicatorCard(ind, tab)
		if err != nil {
			logger.Error("Error rendering indicator chart", "indicator", ind.ID, "error", err)
		}
		cards = append(cards, card)
	}
	data["Cards"] = cards

	t.HTML(http.StatusOK, "dashboard")
}

// ViewIndicator renders a single indicator card.
func ViewIndicator(c flamego.Context, s session.Session, t template.Template, data template.Data) {
	id := c.Param("id")

	tab, err := lab.ParseTab(c.Query("tab"))
	if err != nil {
		tab = lab.TabLatest
	}

	ind, err := lab.IndicatorByID(id)
	if err != nil {
		if !errors.Is(err, lab.ErrIndicatorNotFound) {
			logger.Error("Error loading indicator", "indicator", id, "error", err)
		}
		SetErrorFlash(s, "Indicator not found")
		c.Redirect("/", http.StatusSeeOther)
		return
	}

	card, err := newIndicatorCard(ind, tab)
	if err != nil {
		logger.Error("Error rendering indicator chart", "indicator", id, "error", err)
	}

	data["Page"] = pageDashboard
	data["Title"] = ind.Name
	data["Card"] = card
	data["Breadcrumbs"] = []BreadcrumbItem{
		{Name: "Dashboard", URL: dashboardURL(lab.FilterCategory(ind.Category), lab.TabLatest)},
		{Name: ind.Name, IsCurrent: true},
	}

	t.HTML(http.StatusOK, "indicator")
}
