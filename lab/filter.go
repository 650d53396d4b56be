/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package lab

import (
	"fmt"
	"strings"
)

// CategoryFilter selects which indicators the dashboard shows.
type CategoryFilter string

const (
	FilterAll          CategoryFilter = "all"
	FilterBlood        CategoryFilter = CategoryFilter(CategoryBlood)
	FilterUrine        CategoryFilter = CategoryFilter(CategoryUrine)
	FilterBiochemistry CategoryFilter = CategoryFilter(CategoryBiochemistry)
)

// CategoryFilters lists every filter in navigation order.
var CategoryFilters = []CategoryFilter{FilterAll, FilterBlood, FilterUrine, FilterBiochemistry}

// ParseCategory parses a filter name. The empty string selects FilterAll.
func ParseCategory(raw string) (CategoryFilter, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return FilterAll, nil
	}

	for _, f := range CategoryFilters {
		if string(f) == value {
			return f, nil
		}
	}

	return FilterAll, fmt.Errorf("%w: %q", errUnknownCategory, raw)
}

// FilterCategory returns the filter selecting a single category.
func FilterCategory(c Category) CategoryFilter {
	return CategoryFilter(c)
}

// Label returns the navigation label for the filter.
func (f CategoryFilter) Label() string {
	if f == FilterAll {
		return "All"
	}
	return Category(f).DisplayName()
}

// Matches reports whether an indicator passes the filter.
func (f CategoryFilter) Matches(ind Indicator) bool {
	return f == FilterAll || Category(f) == ind.Category
}

// FilterIndicators returns the indicators matching the filter, keeping order.
func FilterIndicators(f CategoryFilter, list []Indicator) []Indicator {
	out := make([]Indicator, 0, len(list))
	for _, ind := range list {
		if f.Matches(ind) {
			out = append(out, ind)
		}
	}
	return out
}

// Tab selects how each indicator is presented on the dashboard.
type Tab string

const (
	TabLatest  Tab = "latest"
	TabHistory Tab = "history"
	TabTrend   Tab = "trend"
)

// Tabs lists every dashboard tab in navigation order.
var Tabs = []Tab{TabLatest, TabHistory, TabTrend}

// ParseTab parses a tab name. The empty string selects TabLatest.
func ParseTab(raw string) (Tab, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return TabLatest, nil
	}

	for _, t := range Tabs {
		if string(t) == value {
			return t, nil
		}
	}

	return TabLatest, fmt.Errorf("%w: %q", errUnknownTab, raw)
}

// Label returns the navigation label for the tab.
func (t Tab) Label() string {
	switch t {
	case TabHistory:
		return "History"
	case TabTrend:
		return "Trend Forecast"
	default:
		return "Latest"
	}
}
