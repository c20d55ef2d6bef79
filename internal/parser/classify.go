package parser

// Classify derives the aggregate status and summary counters for a
// flattened report. Rules are evaluated in strict priority order, the
// first match wins:
//
//  1. errors present and no test results at all: the run never got to
//     execute anything, i.e. a compilation/collection failure;
//  2. any failed test or any top-level error: failed, even alongside
//     passes;
//  3. any passed test: passed;
//  4. nothing at all: no_tests;
//  5. otherwise unknown (an all-skipped run lands here; deliberately not
//     reported as passed).
func Classify(endpoints []EndpointResult, rawErrors []RawError) (Status, Stats) {
	var stats Stats

	for i := range endpoints {
		switch endpoints[i].Status {
		case ResultPassed:
			stats.Passed++
		case ResultSkipped:
			stats.Skipped++
		default:
			stats.Failed++
		}
	}

	stats.TotalTests = len(endpoints)
	if stats.TotalTests > 0 {
		stats.PassRate = float64(stats.Passed) / float64(stats.TotalTests) * 100
	}

	errorCount := len(rawErrors)

	var status Status
	switch {
	case errorCount > 0 && stats.TotalTests == 0:
		status = StatusCompilationError
	case stats.Failed > 0 || errorCount > 0:
		status = StatusFailed
	case stats.Passed > 0:
		status = StatusPassed
	case stats.TotalTests == 0:
		status = StatusNoTests
	default:
		status = StatusUnknown
	}

	return status, stats
}
