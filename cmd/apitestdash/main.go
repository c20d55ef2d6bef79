package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Mahen037/Automated-API-Testing-with-an-Agent/internal/config"
	"github.com/Mahen037/Automated-API-Testing-with-an-Agent/internal/dashboard"
	"github.com/Mahen037/Automated-API-Testing-with-an-Agent/internal/helpers"
	"github.com/Mahen037/Automated-API-Testing-with-an-Agent/internal/parser"
	"github.com/Mahen037/Automated-API-Testing-with-an-Agent/internal/report"
	"github.com/Mahen037/Automated-API-Testing-with-an-Agent/internal/runner"
	"github.com/Mahen037/Automated-API-Testing-with-an-Agent/internal/version"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := logrus.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-shutdown
		logger.WithField("signal", sig).Info("shutting down")
		cancel()
	}()

	args, err := parseFlags()
	if err != nil {
		logger.WithError(err).Error("couldn't parse flags")
		os.Exit(1)
	}

	logger.SetLevel(logLevel)
	if logFormat == jsonLogFormat {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	if quiet {
		logger.SetOutput(io.Discard)
	}

	cfg, err := loadConfig()
	if err != nil {
		logger.WithError(err).Error("couldn't load config")
		os.Exit(1)
	}

	cfg.Args = args

	if err := run(ctx, cfg, logger); err != nil {
		logger.WithError(err).Error("caught error in main function")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	logger.WithFields(logrus.Fields{
		"version": version.Version,
		"mode":    mode,
	}).Info("apitestdash started")

	testRunner := runner.New(logger, cfg)

	switch mode {
	case serveMode:
		return serve(ctx, cfg, logger, testRunner)

	case runMode:
		if err := testRunner.Run(ctx); err != nil {
			return errors.Wrap(err, "test run failed")
		}

		return exportResults(ctx, cfg, logger)

	case parseMode:
		return exportResults(ctx, cfg, logger)
	}

	return nil
}

// serve runs the dashboard HTTP API until the context is canceled.
func serve(ctx context.Context, cfg *config.Config, logger *logrus.Logger, testRunner *runner.Runner) error {
	srv := dashboard.NewServer(ctx, logger, cfg, testRunner).HTTPServer()

	errCh := make(chan error, 1)

	go func() {
		logger.WithField("addr", cfg.ListenAddr).Info("dashboard API listening")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "dashboard API failed")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "couldn't shut down dashboard API")
	}

	logger.Info("dashboard API stopped")

	return nil
}

// exportResults parses the report file and renders it to the console and the
// configured export formats.
func exportResults(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	data, err := os.ReadFile(cfg.ReportFile)
	if err != nil {
		return errors.Wrap(err, "couldn't read report file")
	}

	parsed, err := parser.ParseJSON(data)
	if err != nil {
		return errors.Wrap(err, "couldn't parse report file")
	}

	_, err = os.Stat(cfg.ReportPath)
	if os.IsNotExist(err) {
		if makeErr := os.Mkdir(cfg.ReportPath, 0700); makeErr != nil {
			return errors.Wrap(makeErr, "creating dir")
		}
	}

	reportTime := time.Now()
	reportName := reportTime.Format(cfg.ReportName)

	reportFile := filepath.Join(cfg.ReportPath, reportName)

	err = report.RenderConsoleReport(parsed, reportTime, cfg.ProjectName, cfg.Args, logFormat)
	if err != nil {
		return err
	}

	reportFiles, err := report.ExportReport(
		parsed, reportFile, reportTime, cfg.ProjectName, cfg.Args, cfg.ReportFormat,
	)
	if err != nil {
		return errors.Wrap(err, "couldn't export report")
	}

	for _, file := range reportFiles {
		reportExt := strings.ToUpper(strings.Trim(filepath.Ext(file), "."))
		logger.WithField("filename", file).Infof("Export %s report", reportExt)
	}

	if !cfg.NoEmailReport {
		email := cfg.Email

		if email == "" {
			fmt.Print("Email to send the report (ENTER to skip): ")
			fmt.Scanln(&email)

			email = strings.TrimSpace(email)
			if email == "" {
				logger.Info("Skip report sending to email")

				return nil
			}

			email, err = helpers.ValidateEmail(email)
			if err != nil {
				return errors.Wrap(err, "couldn't validate email")
			}
		}

		err = report.SendReportByEmail(ctx, parsed, email, reportTime, cfg.ProjectName, cfg.Args)
		if err != nil {
			return errors.Wrap(err, "couldn't send report by email")
		}

		logger.WithField("email", email).Info("The report has been sent to the specified email")
	}

	return nil
}
