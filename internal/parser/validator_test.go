package parser

import "testing"

func validParsedReport() *ParsedReport {
	return Parse(&RawReport{
		Suites: []Suite{{
			Specs: []Spec{{
				Title: "GET /pokemon/",
				File:  "pokemon.spec.ts",
				Line:  5,
				Tests: []Test{{Results: []TestResult{{Status: "passed", Duration: 10}}}},
			}},
		}},
	})
}

func TestValidateParsedReport(t *testing.T) {
	if err := ValidateParsedReport(validParsedReport()); err != nil {
		t.Fatalf("valid report must pass validation: %v", err)
	}
}

func TestValidateParsedReportBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(parsed *ParsedReport)
	}{
		{"bad status", func(p *ParsedReport) { p.Status = "exploded" }},
		{"bad method", func(p *ParsedReport) { p.Endpoints[0].Method = "FETCH" }},
		{"bad endpoint path", func(p *ParsedReport) { p.Endpoints[0].Endpoint = "pokemon" }},
		{"bad endpoint status", func(p *ParsedReport) { p.Endpoints[0].Status = "flaky" }},
		{"bad id", func(p *ParsedReport) { p.Endpoints[0].ID = "spaces are not ok" }},
		{"pass rate out of range", func(p *ParsedReport) { p.Stats.PassRate = 146 }},
		{"negative counter", func(p *ParsedReport) { p.Stats.Failed = -1 }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			parsed := validParsedReport()
			test.mutate(parsed)

			if err := ValidateParsedReport(parsed); err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}
