package runner

import (
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// maxOutputLines bounds the captured runner output; only the tail is kept.
const maxOutputLines = 500

var ErrRunInProgress = errors.New("a test run is already in progress")

type RunStatus string

const (
	RunIdle      RunStatus = "idle"
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// Snapshot is a point-in-time copy of the run state served to the
// dashboard's status endpoint.
type Snapshot struct {
	Status    RunStatus `json:"status"`
	Message   string    `json:"message"`
	Output    string    `json:"output,omitempty"`
	StartTime string    `json:"startTime,omitempty"`
	EndTime   string    `json:"endTime,omitempty"`
	Duration  string    `json:"duration,omitempty"`

	ExitCode   *int     `json:"exitCode,omitempty"`
	Command    string   `json:"command,omitempty"`
	ReportPath string   `json:"reportPath,omitempty"`
	SpecFiles  []string `json:"specFiles,omitempty"`
}

// State tracks the current/last test run. All access goes through the
// mutex, the dashboard polls it while the runner goroutine updates it.
type State struct {
	sync.Mutex

	status      RunStatus
	message     string
	outputLines []string
	startTime   time.Time
	endTime     time.Time

	exitCode   *int
	command    string
	reportPath string
	specFiles  []string
}

func NewState() *State {
	return &State{status: RunIdle}
}

// begin transitions the state into a fresh running run. Only one run may
// be in flight at a time.
func (s *State) begin(command string) error {
	s.Lock()
	defer s.Unlock()

	if s.status == RunRunning {
		return ErrRunInProgress
	}

	s.status = RunRunning
	s.message = "Running Playwright tests..."
	s.outputLines = nil
	s.startTime = time.Now()
	s.endTime = time.Time{}
	s.exitCode = nil
	s.command = command
	s.reportPath = ""
	s.specFiles = nil

	return nil
}

func (s *State) appendOutput(line string) {
	s.Lock()
	defer s.Unlock()

	s.outputLines = append(s.outputLines, line)
	if len(s.outputLines) > maxOutputLines {
		s.outputLines = s.outputLines[len(s.outputLines)-maxOutputLines:]
	}
}

func (s *State) complete(exitCode int, message, reportPath string, specFiles []string) {
	s.Lock()
	defer s.Unlock()

	s.status = RunCompleted
	s.message = message
	s.endTime = time.Now()
	s.exitCode = &exitCode
	s.reportPath = reportPath
	s.specFiles = specFiles
}

func (s *State) fail(err error) {
	s.Lock()
	defer s.Unlock()

	s.status = RunFailed
	s.message = err.Error()
	s.endTime = time.Now()
}

// Snapshot returns a copy safe to serialize without holding the lock.
func (s *State) Snapshot() Snapshot {
	s.Lock()
	defer s.Unlock()

	snapshot := Snapshot{
		Status:     s.status,
		Message:    s.message,
		Output:     strings.Join(s.outputLines, "\n"),
		ExitCode:   s.exitCode,
		Command:    s.command,
		ReportPath: s.reportPath,
		SpecFiles:  append([]string(nil), s.specFiles...),
	}

	if !s.startTime.IsZero() {
		snapshot.StartTime = s.startTime.Format(time.RFC3339)
	}
	if !s.endTime.IsZero() {
		snapshot.EndTime = s.endTime.Format(time.RFC3339)
		snapshot.Duration = s.endTime.Sub(s.startTime).Round(10 * time.Millisecond).String()
	}

	return snapshot
}

func (s *State) Status() RunStatus {
	s.Lock()
	defer s.Unlock()

	return s.status
}
