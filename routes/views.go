/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"fmt"
	htmltemplate "html/template"
	"math"
	"net/url"

	"github.com/humaidq/labdash/lab"
)

// NavItem is a link in one of the dashboard selectors.
type NavItem struct {
	Label  string
	URL    string
	Active bool
}

// HistoryRow is one line of the history table.
type HistoryRow struct {
	Date  string
	Value float64
	Delta string
}

// IndicatorCard is the view model of a single indicator.
type IndicatorCard struct {
	lab.Indicator

	Tab           lab.Tab
	Chart         htmltemplate.HTML
	Rows          []HistoryRow
	Forecast      float64
	HasForecast   bool
	CategoryLabel string
}

// Highlighted reports whether the card gets the abnormal treatment.
func (c IndicatorCard) Highlighted() bool {
	return c.IsAbnormal
}

// CardClass returns the CSS classes of the card container.
func (c IndicatorCard) CardClass() string {
	if c.Highlighted() {
		return "card card-abnormal"
	}
	return "card"
}

// ValueClass returns the CSS class of the current value.
func (c IndicatorCard) ValueClass() string {
	if c.Highlighted() {
		return "value value-abnormal"
	}
	return "value"
}

// RangeClass returns the CSS class of the normal-range badge.
func (c IndicatorCard) RangeClass() string {
	if c.Highlighted() {
		return "badge badge-abnormal"
	}
	return "badge"
}

func newIndicatorCard(ind lab.Indicator, tab lab.Tab) (IndicatorCard, error) {
	card := IndicatorCard{
		Indicator:     ind,
		Tab:           tab,
		CategoryLabel: ind.Category.DisplayName(),
	}

	chart, err := generateIndicatorChart(ind, tab)
	if err != nil {
		return card, err
	}
	card.Chart = htmltemplate.HTML(chart)

	if tab == lab.TabHistory {
		card.Rows = historyRows(ind.History)
	}

	if tab == lab.TabTrend {
		if next, ok := lab.ProjectNext(ind.History); ok {
			card.Forecast = roundTo(next, 2)
			card.HasForecast = true
		}
	}

	return card, nil
}

func historyRows(history []lab.HistoryPoint) []HistoryRow {
	rows := make([]HistoryRow, 0, len(history))
	for i, p := range history {
		row := HistoryRow{Date: p.Date.Format("2006-01-02"), Value: p.Value}
		if i > 0 {
			row.Delta = formatDelta(p.Value - history[i-1].Value)
		}
		rows = append(rows, row)
	}
	return rows
}

func formatDelta(d float64) string {
	d = roundTo(d, 2)
	switch {
	case d > 0:
		return fmt.Sprintf("+%g", d)
	case d < 0:
		return fmt.Sprintf("%g", d)
	default:
		return "0"
	}
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

func dashboardURL(category lab.CategoryFilter, tab lab.Tab) string {
	q := url.Values{}
	if category != lab.FilterAll {
		q.Set("category", string(category))
	}
	if tab != lab.TabLatest {
		q.Set("tab", string(tab))
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}

func categoryNav(active lab.CategoryFilter, tab lab.Tab) []NavItem {
	items := make([]NavItem, 0, len(lab.CategoryFilters))
	for _, f := range lab.CategoryFilters {
		items = append(items, NavItem{
			Label:  f.Label(),
			URL:    dashboardURL(f, tab),
			Active: f == active,
		})
	}
	return items
}

func tabNav(category lab.CategoryFilter, active lab.Tab) []NavItem {
	items := make([]NavItem, 0, len(lab.Tabs))
	for _, t := range lab.Tabs {
		items = append(items, NavItem{
			Label:  t.Label(),
			URL:    dashboardURL(category, t),
			Active: t == active,
		})
	}
	return items
}
