/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package lab

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is a numeric normal range.
type Range struct {
	Min float64
	Max float64
}

// ParseRange parses a normal range of the form "min-max". Qualitative ranges
// such as "Negative" return ok == false.
func ParseRange(text string) (Range, bool) {
	r, err := parseRange(text)
	if err != nil {
		return Range{}, false
	}
	return r, true
}

func parseRange(text string) (Range, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Range{}, fmt.Errorf("%w: %q", errInvalidRange, text)
	}

	// The separator is the first dash after a possible leading sign.
	sep := strings.Index(trimmed[1:], "-")
	if sep == -1 {
		return Range{}, fmt.Errorf("%w: %q", errInvalidRange, text)
	}
	lo, hi := trimmed[:sep+1], trimmed[sep+2:]

	minVal, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q", errInvalidRange, text)
	}

	maxVal, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q", errInvalidRange, text)
	}

	if minVal > maxVal {
		return Range{}, fmt.Errorf("%w: %q", errInvalidRange, text)
	}

	return Range{Min: minVal, Max: maxVal}, nil
}

// Contains reports whether v lies within the range, bounds included.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// ProjectNext fits a least-squares line over the history (x is the reading
// index) and returns the value it predicts for the next reading.
func ProjectNext(history []HistoryPoint) (float64, bool) {
	n := float64(len(history))
	if len(history) < 2 {
		return 0, false
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, p := range history {
		x := float64(i)
		sumX += x
		sumY += p.Value
		sumXY += x * p.Value
		sumXX += x * x
	}

	slope := (n*sumXY - sumX*sumY) / (n*sumXX - sumX*sumX)
	intercept := (sumY - slope*sumX) / n

	return intercept + slope*n, true
}
