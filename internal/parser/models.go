package parser

// Raw input types matching the Playwright JSON reporter document. Every
// field is optional on the wire; absent arrays stay nil and are tolerated
// by the walk.

type RawReport struct {
	Suites []Suite    `json:"suites"`
	Errors []RawError `json:"errors"`
	Stats  RawStats   `json:"stats"`

	// Optional run-level timing override written by the dashboard runner.
	RunStartTime  string  `json:"runStartTime,omitempty"`
	RunEndTime    string  `json:"runEndTime,omitempty"`
	RunDurationMs float64 `json:"runDurationMs,omitempty"`
}

type Suite struct {
	Title  string  `json:"title"`
	File   string  `json:"file"`
	Line   int     `json:"line"`
	Column int     `json:"column"`
	Specs  []Spec  `json:"specs,omitempty"`
	Suites []Suite `json:"suites,omitempty"`
}

type Spec struct {
	Title  string `json:"title"`
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Tests  []Test `json:"tests,omitempty"`
}

type Test struct {
	// The last element is the authoritative attempt, earlier ones are
	// discarded retries.
	Results []TestResult `json:"results,omitempty"`
}

type TestResult struct {
	Status   string    `json:"status"`
	Duration float64   `json:"duration"`
	Error    *RawError `json:"error,omitempty"`
}

type RawError struct {
	Message  string    `json:"message"`
	Stack    string    `json:"stack,omitempty"`
	Location *Location `json:"location,omitempty"`
	Snippet  string    `json:"snippet,omitempty"`
}

type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type RawStats struct {
	StartTime  string  `json:"startTime"`
	Duration   float64 `json:"duration"`
	Expected   int     `json:"expected"`
	Unexpected int     `json:"unexpected"`
	Skipped    int     `json:"skipped"`
	Flaky      int     `json:"flaky"`
}

// ResultStatus is the three-bucket per-test status. The runner's richer
// statuses (timedOut, interrupted) collapse into ResultFailed.
type ResultStatus string

const (
	ResultPassed  ResultStatus = "passed"
	ResultFailed  ResultStatus = "failed"
	ResultSkipped ResultStatus = "skipped"
)

// Status is the aggregate classification of a whole report.
type Status string

const (
	StatusPassed           Status = "passed"
	StatusFailed           Status = "failed"
	StatusCompilationError Status = "compilation_error"
	StatusNoTests          Status = "no_tests"
	StatusUnknown          Status = "unknown"
)

// EndpointResult is the flattened per-test-leaf summary record.
type EndpointResult struct {
	ID       string       `json:"id" validate:"required,endpoint_id"`
	Name     string       `json:"name"`
	Method   string       `json:"method" validate:"http_method"`
	Endpoint string       `json:"endpoint" validate:"endpoint_path"`
	Status   ResultStatus `json:"status" validate:"oneof=passed failed skipped"`
	Duration float64      `json:"duration"`
	Error    *RawError    `json:"error,omitempty"`
	File     string       `json:"file"`
	Line     int          `json:"line"`
}

type Stats struct {
	Passed     int     `json:"passed" validate:"min=0"`
	Failed     int     `json:"failed" validate:"min=0"`
	Skipped    int     `json:"skipped" validate:"min=0"`
	Flaky      int     `json:"flaky" validate:"min=0"`
	TotalTests int     `json:"totalTests" validate:"min=0"`
	PassRate   float64 `json:"passRate" validate:"min=0,max=100"`
	Duration   float64 `json:"duration" validate:"min=0"`
	StartTime  string  `json:"startTime"`
}

// ParsedReport is the normalized view model consumed by the dashboard and
// the report renderers.
type ParsedReport struct {
	Stats      Stats            `json:"stats"`
	Endpoints  []EndpointResult `json:"endpoints" validate:"dive"`
	Errors     []RawError       `json:"errors"`
	Status     Status           `json:"status" validate:"report_status"`
	ErrorCount int              `json:"errorCount" validate:"min=0"`
}
