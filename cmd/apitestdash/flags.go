package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/crypto/ssh/terminal"
	"golang.org/x/exp/maps"

	"github.com/Mahen037/Automated-API-Testing-with-an-Agent/internal/config"
	"github.com/Mahen037/Automated-API-Testing-with-an-Agent/internal/helpers"
	"github.com/Mahen037/Automated-API-Testing-with-an-Agent/internal/report"
	"github.com/Mahen037/Automated-API-Testing-with-an-Agent/internal/version"
)

const (
	textLogFormat = "text"
	jsonLogFormat = "json"
)

var (
	logFormatsSet = map[string]any{
		textLogFormat: nil,
		jsonLogFormat: nil,
	}
	logFormats = maps.Keys(logFormatsSet)
)

const (
	serveMode = "serve"
	parseMode = "parse"
	runMode   = "run"
)

var (
	modesSet = map[string]any{
		serveMode: nil,
		parseMode: nil,
		runMode:   nil,
	}
	modes = maps.Keys(modesSet)
)

const (
	maxReportFilenameLength = 249 // 255 (max length) - 5 (".html") - 1 (to be sure)

	defaultListenAddr = ":9000"

	defaultArtifactsDir = ".api-tests"
	defaultReportPath   = "reports"
	defaultReportName   = "api-test-report-2006-January-02-15-04-05"
	defaultConfigPath   = "config.yaml"

	defaultPlaywrightCmd = "npx playwright test --reporter=json"

	projectName = "api-tests"
)

const cliDescription = `apitestdash parses Playwright JSON reports into normalized endpoint
results and serves them to the results dashboard. It can also trigger test
runs and export reports in several formats.

Usage: %s [OPTIONS] [serve|parse|run]

Modes:
  serve  Start the dashboard HTTP API (default)
  parse  Parse the report file and export it once
  run    Run the Playwright suite, then parse and export the report

Options:
`

var (
	configPath string
	quiet      bool
	logLevel   logrus.Level
	logFormat  string
	mode       string
)

var usage = func() {
	flag.CommandLine.SetOutput(os.Stdout)
	usage := cliDescription
	fmt.Fprintf(os.Stdout, usage, os.Args[0])
	flag.PrintDefaults()
}

// parseFlags parses all apitestdash CLI flags
func parseFlags() (args []string, err error) {
	reportPath := filepath.Join(defaultArtifactsDir, defaultReportPath)
	reportFile := filepath.Join(reportPath, "index.json")
	testsDir := filepath.Join(defaultArtifactsDir, "tests")
	routesDir := filepath.Join(defaultArtifactsDir, "routes")

	flag.Usage = usage

	// General parameters
	flag.StringVar(&configPath, "configPath", defaultConfigPath, "Path to the config file")
	flag.BoolVar(&quiet, "quiet", false, "If present, disable verbose logging")
	logLvl := flag.String("logLevel", "info", "Logging level: panic, fatal, error, warn, info, debug, trace")
	flag.StringVar(&logFormat, "logFormat", textLogFormat, "Set logging format: "+strings.Join(logFormats, ", "))
	showVersion := flag.Bool("version", false, "Show apitestdash version and exit")

	// Dashboard API settings
	flag.String("listenAddr", defaultListenAddr, "Address for the dashboard API to listen on")
	flag.StringSlice("corsOrigins", []string{"http://localhost:5173", "http://localhost:5174"}, "Origins allowed to call the dashboard API")

	// Test artifact locations
	flag.String("reportFile", reportFile, "Path to the Playwright JSON report")
	flag.String("testsDir", testsDir, "Directory with generated .spec.ts test files")
	flag.String("routesDir", routesDir, "Directory with discovered route JSON files")

	// Test runner settings
	flag.String("playwrightCmd", defaultPlaywrightCmd, "Command used to run the Playwright suite")
	flag.String("workDir", ".", "Working directory for the Playwright command")
	flag.Int("runTimeout", 600, "Timeout in seconds for a single test run, 0 to disable")

	// Report settings
	flag.String("projectName", projectName, "Name of the tested project shown in reports")
	flag.String("reportPath", reportPath, "A directory to store exported reports")
	reportName := flag.String("reportName", defaultReportName, "Report file name. Supports `time' package template format")
	reportFormat := flag.StringSlice("reportFormat", []string{report.JsonFormat}, "Export report in the following formats: "+strings.Join(report.ReportFormats, ", "))
	noEmailReport := flag.Bool("noEmailReport", false, "Save report locally")
	email := flag.String("email", "", "E-mail to which the report will be sent")

	flag.Parse()

	// show version and exit
	if *showVersion == true {
		fmt.Fprintf(os.Stderr, "apitestdash %s\n", version.Version)
		os.Exit(0)
	}

	mode = serveMode
	if flag.NArg() > 0 {
		mode = flag.Arg(0)
	}
	if err = validateMode(mode); err != nil {
		return nil, err
	}

	if mode != serveMode && !terminal.IsTerminal(int(os.Stdin.Fd())) {
		if *noEmailReport == false && *email == "" {
			return nil, errors.New(
				"apitestdash is running in a non-interactive session. " +
					"Please use the '--email' (or '--noEmailReport') option",
			)
		}
	}

	if *noEmailReport == false && *email != "" {
		*email, err = helpers.ValidateEmail(*email)
		if err != nil {
			return nil, errors.Wrap(err, "couldn't validate email")
		}
	}

	logrusLogLvl, err := logrus.ParseLevel(*logLvl)
	if err != nil {
		return nil, err
	}
	logLevel = logrusLogLvl

	if err = validateLogFormat(logFormat); err != nil {
		return nil, err
	}

	if err = report.ValidateReportFormat(*reportFormat); err != nil {
		return nil, err
	}

	_, reportFileName := filepath.Split(*reportName)
	if len(reportFileName) > maxReportFilenameLength {
		return nil, errors.New("report filename too long")
	}

	args, err = normalizeArgs()
	if err != nil {
		return nil, errors.Wrap(err, "couldn't normalize args")
	}

	return args, nil
}

func validateMode(mode string) error {
	if _, ok := modesSet[mode]; !ok {
		return fmt.Errorf("unknown mode: %s, must be one of: %s", mode, strings.Join(modes, ", "))
	}

	return nil
}

func validateLogFormat(format string) error {
	if _, ok := logFormatsSet[format]; !ok {
		return fmt.Errorf("unknown log format: %s", format)
	}

	return nil
}

// normalizeArgs returns string with used CLI args in a unified from.
func normalizeArgs() ([]string, error) {
	// disable lexicographical order
	flag.CommandLine.SortFlags = false

	var (
		args []string
		err  error
	)

	fn := func(f *flag.Flag) {
		// skip if flag wasn't changed
		if !f.Changed {
			return
		}

		var (
			value string
			arg   string
		)

		// all types listed in parseFlags function
		argType := f.Value.Type()
		switch argType {
		case "string":
			value = strings.TrimSpace(f.Value.String())

			if strings.Contains(value, " ") {
				value = `"` + value + `"`
			}

			arg = fmt.Sprintf("--%s=%s", f.Name, value)

		case "stringSlice":
			// remove square brackets: [json,yaml] -> json,yaml
			value = strings.Trim(f.Value.String(), "[]")
			arg = fmt.Sprintf("--%s=%s", f.Name, value)

		case "bool":
			arg = fmt.Sprintf("--%s", f.Name)

		case "int":
			value = f.Value.String()
			arg = fmt.Sprintf("--%s=%s", f.Name, value)

		default:
			err = multierror.Append(err, fmt.Errorf("unknown CLI argument type: %s", argType))
		}

		args = append(args, arg)
	}

	// get all changed flags
	flag.Visit(fn)

	if err != nil {
		return nil, err
	}

	return args, nil
}

// loadConfig loads the specified config file and merges it with the parameters passed via CLI
func loadConfig() (cfg *config.Config, err error) {
	err = viper.BindPFlags(flag.CommandLine)
	if err != nil {
		return nil, err
	}
	viper.AddConfigPath(".")
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	// the config file is optional, flags and env vars are enough on their own
	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, err
		}
	}
	err = viper.Unmarshal(&cfg)
	return
}
