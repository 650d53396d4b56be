/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package lab

import "time"

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func quarterly(values ...float64) []HistoryPoint {
	months := []time.Month{time.January, time.April, time.July, time.October}
	points := make([]HistoryPoint, 0, len(values))
	for i, v := range values {
		points = append(points, HistoryPoint{Date: day(2023, months[i%len(months)], 1), Value: v})
	}
	return points
}

var indicators = []Indicator{
	{
		ID:          "1",
		Name:        "White Blood Cell Count",
		Value:       11.2,
		Unit:        "×10^9/L",
		NormalRange: "3.5-9.5",
		IsAbnormal:  true,
		Trend:       TrendUp,
		Category:    CategoryBlood,
		History:     quarterly(5.2, 7.8, 9.1, 11.2),
	},
	{
		ID:          "2",
		Name:        "Hemoglobin",
		Value:       125,
		Unit:        "g/L",
		NormalRange: "130-175",
		IsAbnormal:  true,
		Trend:       TrendStable,
		Category:    CategoryBlood,
		History:     quarterly(132, 128, 126, 125),
	},
	{
		ID:          "3",
		Name:        "Urine Protein",
		Value:       0,
		Unit:        "g/L",
		NormalRange: "Negative",
		IsAbnormal:  false,
		Trend:       TrendStable,
		Category:    CategoryUrine,
		History:     quarterly(0, 0, 0, 0),
	},
}

var report = HealthReport{
	Overview: "Based on a combined analysis of your lab data, your overall health is good, " +
		"with signs of a mild inflammatory response and a tendency towards anemia. " +
		"The elevated white blood cell count may indicate an infection or inflammation, " +
		"and hemoglobin is slightly below the normal range.",
	RiskFactors: []string{
		"White Blood Cell Count elevated (11.2 ×10^9/L)",
		"Hemoglobin low (125 g/L)",
		"Platelet Count within normal range",
	},
	Suggestions: []string{
		"Repeat a complete blood count in 1-2 weeks",
		"Eat more iron-rich foods",
		"Keep a regular sleep schedule and avoid overexertion",
		"Seek medical care promptly if fever or other symptoms appear",
	},
	ModelData: []float64{0.8, 0.6, 0.7, 0.9, 0.5, 0.8, 0.7, 0.6},
}

// Indicators returns a copy of the indicator dataset in display order.
func Indicators() []Indicator {
	out := make([]Indicator, 0, len(indicators))
	for _, ind := range indicators {
		out = append(out, ind.clone())
	}
	return out
}

// IndicatorByID looks up a single indicator.
func IndicatorByID(id string) (Indicator, error) {
	for _, ind := range indicators {
		if ind.ID == id {
			return ind.clone(), nil
		}
	}
	return Indicator{}, ErrIndicatorNotFound
}

// Report returns a copy of the health report.
func Report() HealthReport {
	return report.clone()
}
