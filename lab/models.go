/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package lab

import "time"

// Category groups indicators by the panel they belong to.
type Category string

const (
	CategoryBlood        Category = "blood"
	CategoryUrine        Category = "urine"
	CategoryBiochemistry Category = "biochemistry"
)

// Trend is the direction an indicator moved over its history.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// HistoryPoint is a single dated reading of an indicator.
type HistoryPoint struct {
	Date  time.Time
	Value float64
}

// Indicator is a lab measurement tracked over time.
type Indicator struct {
	ID          string
	Name        string
	Value       float64
	Unit        string
	NormalRange string
	IsAbnormal  bool
	Trend       Trend
	Category    Category
	History     []HistoryPoint
}

// HealthReport is the summarized analysis of the indicator set.
type HealthReport struct {
	Overview    string
	RiskFactors []string
	Suggestions []string
	// ModelData drives the marker model on the report page; values are in [0, 1].
	ModelData []float64
}

// clone returns a deep copy so callers cannot mutate the dataset.
func (i Indicator) clone() Indicator {
	out := i
	out.History = append([]HistoryPoint(nil), i.History...)
	return out
}

func (r HealthReport) clone() HealthReport {
	return HealthReport{
		Overview:    r.Overview,
		RiskFactors: append([]string(nil), r.RiskFactors...),
		Suggestions: append([]string(nil), r.Suggestions...),
		ModelData:   append([]float64(nil), r.ModelData...),
	}
}

// DisplayName returns the label used for a category in navigation.
func (c Category) DisplayName() string {
	switch c {
	case CategoryBlood:
		return "Blood Panel"
	case CategoryUrine:
		return "Urinalysis"
	case CategoryBiochemistry:
		return "Biochemistry"
	default:
		return string(c)
	}
}

// Color returns the chart line color for a trend.
func (t Trend) Color() string {
	switch t {
	case TrendUp:
		return "#EF4444"
	case TrendDown:
		return "#10B981"
	default:
		return "#3B82F6"
	}
}
