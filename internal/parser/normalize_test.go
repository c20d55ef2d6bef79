package parser

import "testing"

func TestInferMethod(t *testing.T) {
	tests := []struct {
		title  string
		method string
	}{
		{"GET /pokemon/{id}/ - should return 404", "GET"},
		{"POST /pokemon/ should create", "POST"},
		{"put /team/{id} updates the team", "PUT"},
		{"PATCH /users/{id}/email", "PATCH"},
		{"DELETE /pokemon/{id}", "DELETE"},
		{"HEAD /health", "HEAD"},
		{"OPTIONS /pokemon", "OPTIONS"},
		{"should create a pokemon", "GET"},
		{"", "GET"},
		// several verb tokens resolve by the fixed priority list, not by
		// textual order
		{"should return 404 if POST before GET", "GET"},
		{"DELETE after POST", "POST"},
	}

	for _, test := range tests {
		if method := inferMethod(test.title); method != test.method {
			t.Fatalf("title %q: got %s, want %s", test.title, method, test.method)
		}
	}
}

func TestInferEndpoint(t *testing.T) {
	tests := []struct {
		title    string
		endpoint string
	}{
		{"GET /pokemon/{id}/ - should return 404", "/pokemon/{id}/"},
		{"POST /pokemon/ should create", "/pokemon/"},
		{"GET /team/:teamId/members", "/team/:teamId/members"},
		{"should create a pokemon", "/"},
		{"", "/"},
		{"GET /user_profiles/{id} then /other", "/user_profiles/{id}"},
	}

	for _, test := range tests {
		if endpoint := inferEndpoint(test.title); endpoint != test.endpoint {
			t.Fatalf("title %q: got %s, want %s", test.title, endpoint, test.endpoint)
		}
	}
}

func TestEndpointID(t *testing.T) {
	tests := []struct {
		file  string
		line  int
		title string
		id    string
	}{
		{"a.spec.ts", 10, "POST /pokemon/ should create", "a_spec_ts-10-POST__pokemon__shoul"},
		{"users.spec.ts", 3, "short", "users_spec_ts-3-short"},
		{"t.ts", 1, "", "t_ts-1-"},
	}

	for _, test := range tests {
		if id := endpointID(test.file, test.line, test.title); id != test.id {
			t.Fatalf("got %s, want %s", id, test.id)
		}
	}
}

func TestNormalizeRetryCollapsing(t *testing.T) {
	suites := []Suite{{
		Specs: []Spec{{
			Title: "GET /pokemon/ lists pokemons",
			File:  "pokemon.spec.ts",
			Line:  12,
			Tests: []Test{{
				Results: []TestResult{
					{Status: "failed", Duration: 90, Error: &RawError{Message: "boom"}},
					{Status: "passed", Duration: 42},
				},
			}},
		}},
	}}

	endpoints := Normalize(suites)
	if len(endpoints) != 1 {
		t.Fatalf("got %d endpoints, want 1", len(endpoints))
	}

	endpoint := endpoints[0]
	if endpoint.Status != ResultPassed {
		t.Fatalf("got status %s, want passed", endpoint.Status)
	}
	if endpoint.Duration != 42 {
		t.Fatalf("got duration %v, want 42 (last attempt only)", endpoint.Duration)
	}
	if endpoint.Error != nil {
		t.Fatalf("error must come from the last attempt only, got %v", endpoint.Error)
	}
}

func TestNormalizeStatusCollapsing(t *testing.T) {
	tests := []struct {
		rawStatus string
		status    ResultStatus
	}{
		{"passed", ResultPassed},
		{"skipped", ResultSkipped},
		{"failed", ResultFailed},
		{"timedOut", ResultFailed},
		{"interrupted", ResultFailed},
		{"", ResultFailed},
	}

	for _, test := range tests {
		suites := []Suite{{
			Specs: []Spec{{
				Title: "GET /pokemon/",
				Tests: []Test{{Results: []TestResult{{Status: test.rawStatus}}}},
			}},
		}}

		endpoints := Normalize(suites)
		if endpoints[0].Status != test.status {
			t.Fatalf("raw status %q: got %s, want %s", test.rawStatus, endpoints[0].Status, test.status)
		}
	}
}

func TestNormalizeEmptyResultsMeansSkipped(t *testing.T) {
	suites := []Suite{{
		Specs: []Spec{{Title: "GET /pokemon/", Tests: []Test{{}}}},
	}}

	endpoints := Normalize(suites)
	if len(endpoints) != 1 {
		t.Fatalf("got %d endpoints, want 1", len(endpoints))
	}
	if endpoints[0].Status != ResultSkipped {
		t.Fatalf("got status %s, want skipped", endpoints[0].Status)
	}
}

func TestNormalizeOrderPreservation(t *testing.T) {
	spec := func(title string) Spec {
		return Spec{
			Title: title,
			Tests: []Test{{Results: []TestResult{{Status: "passed"}}}},
		}
	}

	// specs of a suite come before any nested suites, regardless of depth
	suites := []Suite{
		{
			Specs: []Spec{spec("first"), spec("second")},
			Suites: []Suite{
				{
					Specs: []Spec{spec("third")},
					Suites: []Suite{
						{Specs: []Spec{spec("fourth")}},
					},
				},
				{Specs: []Spec{spec("fifth")}},
			},
		},
		{Specs: []Spec{spec("sixth")}},
	}

	endpoints := Normalize(suites)

	want := []string{"first", "second", "third", "fourth", "fifth", "sixth"}
	if len(endpoints) != len(want) {
		t.Fatalf("got %d endpoints, want %d", len(endpoints), len(want))
	}
	for i, name := range want {
		if endpoints[i].Name != name {
			t.Fatalf("position %d: got %s, want %s", i, endpoints[i].Name, name)
		}
	}
}

func TestNormalizeSparseTree(t *testing.T) {
	suites := []Suite{
		{},
		{Suites: []Suite{{}, {Specs: []Spec{{Title: "no tests at all"}}}}},
		{Specs: []Spec{}},
	}

	endpoints := Normalize(suites)
	if len(endpoints) != 0 {
		t.Fatalf("sparse tree must yield no endpoints, got %d", len(endpoints))
	}
}

func TestNormalizeProvenanceFromSpec(t *testing.T) {
	suites := []Suite{{
		File: "suite-level.spec.ts",
		Line: 1,
		Specs: []Spec{{
			Title: "GET /team/",
			File:  "team.spec.ts",
			Line:  27,
			Tests: []Test{{Results: []TestResult{{Status: "passed"}}}},
		}},
	}}

	endpoint := Normalize(suites)[0]
	if endpoint.File != "team.spec.ts" || endpoint.Line != 27 {
		t.Fatalf("provenance must come from the owning spec, got %s:%d", endpoint.File, endpoint.Line)
	}
}
