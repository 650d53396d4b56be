/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/event"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/humaidq/labdash/lab"
)

const (
	chartBackground = "#1F2937"
	markerColor     = "#03FCF8"
	markerActive    = "#F87171"

	// Clicking a point selects the marker with the same index.
	markerClickHandler = `function (params) { window.location.href = "/report?marker=" + params.dataIndex; }`
)

// generateIndicatorChart renders the history line chart of one indicator.
// The trend tab adds a dashed forecast segment to the projected next reading.
func generateIndicatorChart(ind lab.Indicator, tab lab.Tab) (string, error) {
	if len(ind.History) == 0 {
		return "", nil
	}

	xAxis := make([]string, 0, len(ind.History)+1)
	yData := make([]opts.LineData, 0, len(ind.History))
	for _, p := range ind.History {
		xAxis = append(xAxis, p.Date.Format("2006-01-02"))
		yData = append(yData, opts.LineData{Value: p.Value})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:           "100%",
			Height:          "300px",
			BackgroundColor: chartBackground,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: ind.Name,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: ind.Unit,
		}),
	)

	seriesOpts := []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{
			Smooth:     opts.Bool(true),
			ShowSymbol: opts.Bool(true),
		}),
		charts.WithLineStyleOpts(opts.LineStyle{
			Color: ind.Trend.Color(),
			Width: 2,
		}),
		charts.WithItemStyleOpts(opts.ItemStyle{
			Color: ind.Trend.Color(),
		}),
	}

	if r, ok := lab.ParseRange(ind.NormalRange); ok {
		markLineItems := []interface{}{
			opts.MarkLineNameYAxisItem{Name: "Normal Min", YAxis: r.Min},
			opts.MarkLineNameYAxisItem{Name: "Normal Max", YAxis: r.Max},
		}

		seriesOpts = append(seriesOpts, func(s *charts.SingleSeries) {
			s.MarkLines = &opts.MarkLines{
				Data: markLineItems,
				MarkLineStyle: opts.MarkLineStyle{
					Symbol: []string{"none", "none"},
					LineStyle: &opts.LineStyle{
						Color: "rgba(128, 128, 128, 0.6)",
						Type:  "dashed",
						Width: 1.5,
					},
				},
			}
		})
	}

	line.SetXAxis(xAxis).
		AddSeries(ind.Name, yData).
		SetSeriesOptions(seriesOpts...)

	if tab == lab.TabTrend {
		if next, ok := lab.ProjectNext(ind.History); ok {
			line.SetXAxis(append(xAxis, "Forecast"))
			line.AddSeries("Forecast", forecastData(ind.History, next),
				charts.WithLineStyleOpts(opts.LineStyle{
					Color: ind.Trend.Color(),
					Type:  "dashed",
					Width: 2,
				}),
			)
		}
	}

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", fmt.Errorf("failed to render chart for %s: %w", ind.Name, err)
	}

	return buf.String(), nil
}

// forecastData leaves every point but the last reading empty so the
// forecast series only draws the projected segment.
func forecastData(history []lab.HistoryPoint, next float64) []opts.LineData {
	data := make([]opts.LineData, 0, len(history)+1)
	for i := 0; i < len(history)-1; i++ {
		data = append(data, opts.LineData{Value: "-"})
	}
	data = append(data,
		opts.LineData{Value: history[len(history)-1].Value},
		opts.LineData{Value: roundTo(next, 2)},
	)
	return data
}

// generateMarkerChart renders the report markers as a 3D scatter. The chart
// vertical axis carries the marker height.
func generateMarkerChart(markers []lab.Marker, selected int) (string, error) {
	if len(markers) == 0 {
		return "", nil
	}

	data := make([]opts.Chart3DData, 0, len(markers))
	for _, m := range markers {
		color := markerColor
		if m.Index == selected {
			color = markerActive
		}

		data = append(data, opts.Chart3DData{
			Name:      fmt.Sprintf("Marker %d", m.Index+1),
			Value:     []interface{}{roundTo(m.X, 3), roundTo(m.Z, 3), roundTo(m.Y, 3)},
			ItemStyle: &opts.ItemStyle{Color: color},
		})
	}

	scatter := charts.NewScatter3D()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:           "100%",
			Height:          "500px",
			BackgroundColor: "#0F172A",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: "X", Min: -5, Max: 5}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: "Z", Min: -5, Max: 5}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: "Y", Min: -5, Max: 5}),
		charts.WithEventListeners(event.Listener{
			EventName: "click",
			Handler:   opts.FuncOpts(markerClickHandler),
		}),
	)
	scatter.AddSeries("Markers", data)

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		return "", fmt.Errorf("failed to render marker chart: %w", err)
	}

	return buf.String(), nil
}
