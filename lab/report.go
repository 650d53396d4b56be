/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package lab

import (
	"math"
	"strings"
)

const (
	markerRadius = 3.0
	markerHeight = 10.0
	markerBase   = -5.0
)

// Marker is one point of the report model, placed on a circle around the
// vertical axis with its height driven by the model value.
type Marker struct {
	Index int
	Value float64
	X     float64
	Y     float64
	Z     float64
}

// MarkerLayout places one marker per model value. Marker i sits at angle
// 2πi/n; values in [0, 1] keep every marker inside [-3,3]×[-5,5]×[-3,3].
func MarkerLayout(series []float64) []Marker {
	markers := make([]Marker, 0, len(series))
	for i, v := range series {
		angle := float64(i) / float64(len(series)) * 2 * math.Pi
		markers = append(markers, Marker{
			Index: i,
			Value: v,
			X:     math.Cos(angle) * markerRadius,
			Y:     v*markerHeight + markerBase,
			Z:     math.Sin(angle) * markerRadius,
		})
	}
	return markers
}

// RiskFactorForMarker maps a marker index onto the risk-factor list
// cyclically. Negative indexes and an empty list select nothing.
func RiskFactorForMarker(r HealthReport, index int) (int, string, bool) {
	if index < 0 || len(r.RiskFactors) == 0 {
		return 0, "", false
	}

	i := index % len(r.RiskFactors)
	return i, r.RiskFactors[i], true
}

// RiskFactorSubject returns the part of a risk factor before its
// parenthesized measurement.
func RiskFactorSubject(riskFactor string) string {
	subject, _, _ := strings.Cut(riskFactor, "(")
	return strings.TrimSpace(subject)
}

// IndicatorForRiskFactor finds the indicator whose name prefixes the risk
// factor text. Risk factors are not linked to indicators in any other way.
func IndicatorForRiskFactor(riskFactor string, list []Indicator) (Indicator, bool) {
	for _, ind := range list {
		if ind.Name != "" && strings.HasPrefix(riskFactor, ind.Name) {
			return ind, true
		}
	}
	return Indicator{}, false
}
