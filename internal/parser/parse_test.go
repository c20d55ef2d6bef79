package parser

import (
	"reflect"
	"testing"
)

func TestParseSingleSpecReport(t *testing.T) {
	raw := &RawReport{
		Suites: []Suite{{
			Specs: []Spec{{
				Title: "POST /pokemon/ should create",
				File:  "a.spec.ts",
				Line:  10,
				Tests: []Test{{Results: []TestResult{{Status: "passed", Duration: 120}}}},
			}},
		}},
		Errors: []RawError{},
		Stats: RawStats{
			StartTime: "2024-01-01T00:00:00Z",
			Duration:  120,
			Expected:  1,
		},
	}

	parsed := Parse(raw)

	if parsed.Status != StatusPassed {
		t.Fatalf("got status %s, want passed", parsed.Status)
	}
	if parsed.Stats.Passed != 1 || parsed.Stats.TotalTests != 1 {
		t.Fatalf("got passed=%d totalTests=%d, want 1/1", parsed.Stats.Passed, parsed.Stats.TotalTests)
	}
	if parsed.Stats.PassRate != 100 {
		t.Fatalf("got passRate=%v, want 100", parsed.Stats.PassRate)
	}
	if parsed.Stats.StartTime != "2024-01-01T00:00:00Z" || parsed.Stats.Duration != 120 {
		t.Fatalf("got startTime=%s duration=%v", parsed.Stats.StartTime, parsed.Stats.Duration)
	}

	endpoint := parsed.Endpoints[0]
	if endpoint.Method != "POST" {
		t.Fatalf("got method %s, want POST", endpoint.Method)
	}
	if endpoint.Endpoint != "/pokemon/" {
		t.Fatalf("got endpoint %s, want /pokemon/", endpoint.Endpoint)
	}

	if err := ValidateParsedReport(parsed); err != nil {
		t.Fatalf("parsed report must be valid: %v", err)
	}
}

func TestParseIdempotence(t *testing.T) {
	raw := &RawReport{
		Suites: []Suite{{
			Specs: []Spec{
				{
					Title: "GET /pokemon/{id}/ - should return 404",
					File:  "pokemon.spec.ts",
					Line:  33,
					Tests: []Test{{Results: []TestResult{
						{Status: "failed", Error: &RawError{Message: "expected 404"}},
					}}},
				},
				{
					Title: "DELETE /team/{id}",
					File:  "team.spec.ts",
					Line:  8,
					Tests: []Test{{Results: []TestResult{{Status: "passed", Duration: 15}}}},
				},
			},
		}},
		Errors: []RawError{{Message: "warning-ish error"}},
		Stats:  RawStats{StartTime: "2024-01-01T00:00:00Z", Duration: 300},
	}

	first := Parse(raw)
	second := Parse(raw)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("parsing the same report twice must yield identical output:\n%+v\n%+v", first, second)
	}
}

func TestParseTotalTestsFallback(t *testing.T) {
	raw := &RawReport{
		Errors: []RawError{{Message: "SyntaxError: unexpected token"}},
		Stats:  RawStats{Expected: 2, Unexpected: 1, Skipped: 1, Flaky: 1},
	}

	parsed := Parse(raw)

	if parsed.Status != StatusCompilationError {
		t.Fatalf("got status %s, want compilation_error", parsed.Status)
	}
	// no endpoints were enumerated, so the runner's own counters win
	if parsed.Stats.TotalTests != 5 {
		t.Fatalf("got totalTests=%d, want 5", parsed.Stats.TotalTests)
	}
	if parsed.Stats.PassRate != 0 {
		t.Fatalf("got passRate=%v, want 0", parsed.Stats.PassRate)
	}
	if parsed.ErrorCount != 1 {
		t.Fatalf("got errorCount=%d, want 1", parsed.ErrorCount)
	}
}

func TestParseTotalTestsMatchesEndpoints(t *testing.T) {
	raw := &RawReport{
		Suites: []Suite{{
			Specs: []Spec{{
				Title: "GET /users/",
				Tests: []Test{
					{Results: []TestResult{{Status: "passed"}}},
					{Results: []TestResult{{Status: "failed"}}},
				},
			}},
		}},
		// deliberately inconsistent runner counters must be ignored
		Stats: RawStats{Expected: 9, Unexpected: 9},
	}

	parsed := Parse(raw)
	if parsed.Stats.TotalTests != len(parsed.Endpoints) {
		t.Fatalf("totalTests=%d must equal endpoints=%d", parsed.Stats.TotalTests, len(parsed.Endpoints))
	}
}

func TestRunDuration(t *testing.T) {
	tests := []struct {
		name     string
		raw      *RawReport
		duration float64
	}{
		{
			name: "run-level pair wins over everything",
			raw: &RawReport{
				RunStartTime:  "2024-01-01T00:00:00Z",
				RunEndTime:    "2024-01-01T00:00:02Z",
				RunDurationMs: 999,
				Stats:         RawStats{Duration: 555},
			},
			duration: 2000,
		},
		{
			name: "clock skew floors at zero",
			raw: &RawReport{
				RunStartTime: "2024-01-01T00:00:05Z",
				RunEndTime:   "2024-01-01T00:00:00Z",
				Stats:        RawStats{Duration: 555},
			},
			duration: 0,
		},
		{
			name: "unparseable pair falls through",
			raw: &RawReport{
				RunStartTime: "not-a-time",
				RunEndTime:   "2024-01-01T00:00:00Z",
				Stats:        RawStats{Duration: 555},
			},
			duration: 555,
		},
		{
			name:     "duration override without a pair",
			raw:      &RawReport{RunDurationMs: 321, Stats: RawStats{Duration: 555}},
			duration: 321,
		},
		{
			name:     "runner duration as last resort",
			raw:      &RawReport{Stats: RawStats{Duration: 555}},
			duration: 555,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if duration := runDuration(test.raw); duration != test.duration {
				t.Fatalf("got %v, want %v", duration, test.duration)
			}
		})
	}
}

func TestParseJSON(t *testing.T) {
	data := []byte(`{
		"suites": [{
			"title": "pokemon.spec.ts",
			"specs": [{
				"title": "GET /pokemon/{id}/ - should return 404",
				"file": "pokemon.spec.ts",
				"line": 21,
				"tests": [{"results": [{"status": "passed", "duration": 35}]}]
			}]
		}],
		"errors": [],
		"stats": {"startTime": "2024-01-01T00:00:00Z", "duration": 35, "expected": 1}
	}`)

	parsed, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("got an error while parsing: %v", err)
	}

	if parsed.Status != StatusPassed {
		t.Fatalf("got status %s, want passed", parsed.Status)
	}
	if parsed.Endpoints[0].Method != "GET" || parsed.Endpoints[0].Endpoint != "/pokemon/{id}/" {
		t.Fatalf("got %s %s, want GET /pokemon/{id}/", parsed.Endpoints[0].Method, parsed.Endpoints[0].Endpoint)
	}
}

func TestParseJSONSparseDocument(t *testing.T) {
	parsed, err := ParseJSON([]byte(`{}`))
	if err != nil {
		t.Fatalf("a well-typed but empty document must parse: %v", err)
	}

	if parsed.Status != StatusNoTests {
		t.Fatalf("got status %s, want no_tests", parsed.Status)
	}
	if parsed.Endpoints == nil || parsed.Errors == nil {
		t.Fatal("endpoints and errors must serialize as [] rather than null")
	}
}

func TestParseJSONMalformed(t *testing.T) {
	if _, err := ParseJSON([]byte(`{"suites": "nope"`)); err == nil {
		t.Fatal("malformed JSON must return an error")
	}
}

func TestParseNilReport(t *testing.T) {
	parsed := Parse(nil)
	if parsed.Status != StatusNoTests {
		t.Fatalf("got status %s, want no_tests", parsed.Status)
	}
}
