/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	htmltemplate "html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/labdash/lab"
)

// RiskFactorView is a risk factor line on the report page.
type RiskFactorView struct {
	Text         string
	Highlighted  bool
	IndicatorURL string
}

// MarkerView is a selectable marker of the report model.
type MarkerView struct {
	Number   int
	URL      string
	Value    float64
	Selected bool
}

// MarkerSelection describes the marker the user picked.
type MarkerSelection struct {
	Number    int
	RiskIndex int
	Subject   string
}

// parseMarker reads the marker query parameter. Only markers present in the
// model are accepted.
func parseMarker(raw string, count int) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return -1, true
	}

	idx, err := strconv.Atoi(raw)
	if err != nil || idx < 0 || idx >= count {
		return -1, false
	}
	return idx, true
}

// Report renders the health report with its marker model.
func Report(c flamego.Context, s session.Session, t template.Template, data template.Data) {
	report := lab.Report()
	markers := lab.MarkerLayout(report.ModelData)

	selected, ok := parseMarker(c.Query("marker"), len(markers))
	if !ok {
		logger.Warn("Invalid marker selection", "marker", c.Query("marker"))
		SetWarningFlash(s, "Unknown marker")
		c.Redirect("/report", http.StatusSeeOther)
		return
	}

	highlighted := -1
	if selected >= 0 {
		if riskIdx, factor, ok := lab.RiskFactorForMarker(report, selected); ok {
			highlighted = riskIdx
			data["Selection"] = MarkerSelection{
				Number:    selected + 1,
				RiskIndex: riskIdx,
				Subject:   lab.RiskFactorSubject(factor),
			}
		}
	}

	indicators := lab.Indicators()
	riskFactors := make([]RiskFactorView, 0, len(report.RiskFactors))
	for i, text := range report.RiskFactors {
		view := RiskFactorView{Text: text, Highlighted: i == highlighted}
		if ind, ok := lab.IndicatorForRiskFactor(text, indicators); ok {
			view.IndicatorURL = "/indicator/" + ind.ID
		}
		riskFactors = append(riskFactors, view)
	}

	markerViews := make([]MarkerView, 0, len(markers))
	for _, m := range markers {
		markerViews = append(markerViews, MarkerView{
			Number:   m.Index + 1,
			URL:      "/report?marker=" + strconv.Itoa(m.Index),
			Value:    m.Value,
			Selected: m.Index == selected,
		})
	}

	chart, err := generateMarkerChart(markers, selected)
	if err != nil {
		logger.Error("Error rendering marker chart", "error", err)
	}

	data["Page"] = pageReport
	data["Title"] = "Health Report"
	data["Overview"] = report.Overview
	data["RiskFactors"] = riskFactors
	data["Suggestions"] = report.Suggestions
	data["Markers"] = markerViews
	data["ModelChart"] = htmltemplate.HTML(chart)

	t.HTML(http.StatusOK, "report")
}
