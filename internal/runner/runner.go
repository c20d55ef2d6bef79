package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Mahen037/Automated-API-Testing-with-an-Agent/internal/config"
	"github.com/Mahen037/Automated-API-Testing-with-an-Agent/internal/helpers"
	"github.com/Mahen037/Automated-API-Testing-with-an-Agent/internal/platform"
	"github.com/Mahen037/Automated-API-Testing-with-an-Agent/internal/specs"
)

// Runner shells out to the external Playwright CLI and tracks the run
// lifecycle. The report itself is written by Playwright's JSON reporter,
// the runner only annotates it with run-level timing afterwards.
type Runner struct {
	logger *logrus.Logger
	cfg    *config.Config
	state  *State
}

func New(logger *logrus.Logger, cfg *config.Config) *Runner {
	return &Runner{
		logger: logger,
		cfg:    cfg,
		state:  NewState(),
	}
}

func (r *Runner) State() *State {
	return r.state
}

// Start launches a test run in the background. Returns ErrRunInProgress
// when a run is already in flight.
func (r *Runner) Start(ctx context.Context) error {
	if err := r.state.begin(r.cfg.PlaywrightCmd); err != nil {
		return err
	}

	go func() {
		if err := r.execute(ctx, false); err != nil {
			r.logger.WithError(err).Error("test run failed")
		}
	}()

	return nil
}

// Run executes a test run synchronously with console progress. Used by the
// one-shot CLI mode.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.state.begin(r.cfg.PlaywrightCmd); err != nil {
		return err
	}

	return r.execute(ctx, true)
}

func (r *Runner) execute(ctx context.Context, showProgress bool) error {
	start := time.Now()

	if r.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(r.cfg.RunTimeout)*time.Second)
		defer cancel()
	}

	parts := strings.Fields(r.cfg.PlaywrightCmd)
	if len(parts) == 0 {
		err := errors.New("playwright command is empty")
		r.state.fail(err)

		return err
	}

	r.logger.WithField("command", r.cfg.PlaywrightCmd).Info("test run started")

	// keep the previous report around until the new run has produced one
	if _, err := os.Stat(r.cfg.ReportFile); err == nil {
		previous := filepath.Join(filepath.Dir(r.cfg.ReportFile), "previous.json")
		if err := helpers.FileMove(r.cfg.ReportFile, previous); err != nil {
			r.logger.WithError(err).Warn("couldn't archive previous report")
		}
	}

	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
	cmd.Dir = r.cfg.WorkDir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		r.state.fail(err)

		return errors.Wrap(err, "couldn't open stdout pipe")
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		r.state.fail(err)

		return errors.Wrap(err, "couldn't start test run")
	}

	bar := platform.NewProgressBar()

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		r.state.appendOutput(scanner.Text())
		if showProgress {
			bar.Add(1)
		}
	}

	err = cmd.Wait()
	if showProgress {
		bar.Finish()
	}

	end := time.Now()

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			runErr := errors.Wrap(err, "test run did not finish")
			r.state.fail(runErr)

			return runErr
		}
	}

	if err := r.annotateReport(start, end); err != nil {
		// the report stays usable without the timing override
		r.logger.WithError(err).Warn("couldn't annotate report with run timing")
	}

	specFiles, err := specs.ListSpecFileNames(r.cfg.TestsDir)
	if err != nil {
		r.logger.WithError(err).Warn("couldn't list spec files")
	}

	message := "Tests completed successfully!"
	if exitCode != 0 {
		message = fmt.Sprintf("Tests finished with exit code %d", exitCode)
	}

	r.state.complete(exitCode, message, r.cfg.ReportFile, specFiles)

	r.logger.WithFields(logrus.Fields{
		"exitCode": exitCode,
		"duration": end.Sub(start),
	}).Info("test run finished")

	return nil
}

// annotateReport writes the run-level timing override into the report
// document produced by the JSON reporter.
func (r *Runner) annotateReport(start, end time.Time) error {
	data, err := os.ReadFile(r.cfg.ReportFile)
	if err != nil {
		return errors.Wrap(err, "couldn't read report file")
	}

	var document map[string]interface{}
	if err := json.Unmarshal(data, &document); err != nil {
		return errors.Wrap(err, "couldn't unmarshal report file")
	}

	document["runStartTime"] = start.Format(time.RFC3339Nano)
	document["runEndTime"] = end.Format(time.RFC3339Nano)
	document["runDurationMs"] = float64(end.Sub(start).Milliseconds())

	annotated, err := json.Marshal(document)
	if err != nil {
		return errors.Wrap(err, "couldn't marshal annotated report")
	}

	return os.WriteFile(r.cfg.ReportFile, annotated, 0o644)
}
