package parser

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// Parse converts a raw report into the normalized view model. Pure and
// idempotent: the same input document always yields the same output.
func Parse(raw *RawReport) *ParsedReport {
	if raw == nil {
		raw = &RawReport{}
	}

	endpoints := Normalize(raw.Suites)
	status, stats := Classify(endpoints, raw.Errors)

	if len(endpoints) == 0 {
		// The runner may fail before enumerating a single test (e.g. a
		// compilation error); fall back to its own counters so the stats
		// still reflect what it claims to have seen.
		stats.TotalTests = raw.Stats.Expected + raw.Stats.Unexpected +
			raw.Stats.Skipped + raw.Stats.Flaky
	}

	stats.Flaky = raw.Stats.Flaky
	stats.StartTime = raw.Stats.StartTime
	stats.Duration = runDuration(raw)

	if endpoints == nil {
		endpoints = []EndpointResult{}
	}
	rawErrors := raw.Errors
	if rawErrors == nil {
		rawErrors = []RawError{}
	}

	return &ParsedReport{
		Stats:      stats,
		Endpoints:  endpoints,
		Errors:     rawErrors,
		Status:     status,
		ErrorCount: len(rawErrors),
	}
}

// ParseJSON decodes a raw report document and parses it.
func ParseJSON(data []byte) (*ParsedReport, error) {
	var raw RawReport

	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "couldn't unmarshal raw report")
	}

	return Parse(&raw), nil
}

// EmptyRawReport returns the document served when no report exists yet.
func EmptyRawReport() *RawReport {
	return &RawReport{
		Suites: []Suite{},
		Errors: []RawError{},
		Stats: RawStats{
			StartTime: time.Now().Format(time.RFC3339),
		},
	}
}

// runDuration prefers the explicit run-level start/end pair, floored at
// zero to guard against clock skew, then the run-level duration override,
// then the runner's own reported duration.
func runDuration(raw *RawReport) float64 {
	if raw.RunStartTime != "" && raw.RunEndTime != "" {
		start, startErr := time.Parse(time.RFC3339Nano, raw.RunStartTime)
		end, endErr := time.Parse(time.RFC3339Nano, raw.RunEndTime)

		if startErr == nil && endErr == nil {
			duration := float64(end.Sub(start).Milliseconds())
			if duration < 0 {
				duration = 0
			}

			return duration
		}
	}

	if raw.RunDurationMs > 0 {
		return raw.RunDurationMs
	}

	return raw.Stats.Duration
}
