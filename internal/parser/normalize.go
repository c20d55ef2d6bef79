package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// httpMethods is the fixed inference priority. A title containing several
// verb tokens resolves to the first verb in this list, not the first in the
// title. Known heuristic artifact, kept on purpose.
var httpMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}

var (
	endpointRegex = regexp.MustCompile(`/[a-zA-Z0-9\-_/:{}]*`)
	idCharsRegex  = regexp.MustCompile(`[^a-zA-Z0-9-]`)
)

const idTitleLength = 20

// Normalize flattens the suite tree into endpoint-level results in
// depth-first pre-order: each suite's own specs first, then its child
// suites. Sparse nodes (no specs, no results) are tolerated, the walk
// never fails.
func Normalize(suites []Suite) []EndpointResult {
	var endpoints []EndpointResult

	for i := range suites {
		endpoints = walkSuite(&suites[i], endpoints)
	}

	return endpoints
}

func walkSuite(suite *Suite, acc []EndpointResult) []EndpointResult {
	for i := range suite.Specs {
		spec := &suite.Specs[i]
		for j := range spec.Tests {
			acc = append(acc, flattenTest(spec, &spec.Tests[j]))
		}
	}

	for i := range suite.Suites {
		acc = walkSuite(&suite.Suites[i], acc)
	}

	return acc
}

// flattenTest collapses a test's retry history into one record. Only the
// last attempt counts, earlier retries are discarded.
func flattenTest(spec *Spec, test *Test) EndpointResult {
	result := EndpointResult{
		ID:       endpointID(spec.File, spec.Line, spec.Title),
		Name:     spec.Title,
		Method:   inferMethod(spec.Title),
		Endpoint: inferEndpoint(spec.Title),
		Status:   ResultSkipped,
		File:     spec.File,
		Line:     spec.Line,
	}

	if len(test.Results) == 0 {
		// no attempts recorded, the test never ran
		return result
	}

	last := test.Results[len(test.Results)-1]
	result.Duration = last.Duration
	result.Error = last.Error

	switch last.Status {
	case "passed":
		result.Status = ResultPassed
	case "skipped":
		result.Status = ResultSkipped
	default:
		// failed, timedOut or anything unexpected
		result.Status = ResultFailed
	}

	return result
}

// inferMethod guesses the HTTP method from the test title by
// case-insensitive substring search. Best effort only, defaults to GET.
func inferMethod(title string) string {
	upper := strings.ToUpper(title)

	for _, method := range httpMethods {
		if strings.Contains(upper, method) {
			return method
		}
	}

	return "GET"
}

// inferEndpoint extracts the first leading-slash path-like substring from
// the title. Defaults to "/" when the title carries no path.
func inferEndpoint(title string) string {
	if match := endpointRegex.FindString(title); match != "" {
		return match
	}

	return "/"
}

// endpointID synthesizes a stable id from the owning spec's provenance and
// the first 20 characters of its title. Deterministic across re-parses of
// the same report, collision-prone across reports.
func endpointID(file string, line int, title string) string {
	if len(title) > idTitleLength {
		title = title[:idTitleLength]
	}

	return idCharsRegex.ReplaceAllString(fmt.Sprintf("%s-%d-%s", file, line, title), "_")
}
