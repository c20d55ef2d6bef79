package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"github.com/Mahen037/Automated-API-Testing-with-an-Agent/internal/parser"
)

// The minimum length of each column in a console table report.
const colMinWidth = 12

// RenderConsoleReport prints a console report in selected format.
func RenderConsoleReport(
	parsed *parser.ParsedReport,
	reportTime time.Time,
	projectName string,
	args []string,
	format string,
) error {
	switch format {
	case consoleReportTextFormat:
		printConsoleReportTable(parsed, reportTime, projectName)
	case consoleReportJsonFormat:
		err := printConsoleReportJson(parsed, reportTime, projectName, args)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown report format: %s", format)
	}

	return nil
}

// printConsoleReportTable prepares and prints a console report in tabular format.
func printConsoleReportTable(
	parsed *parser.ParsedReport,
	reportTime time.Time,
	projectName string,
) {
	header := []string{"Method", "Endpoint", "Test", "Status", "Duration, ms"}

	var buffer strings.Builder

	fmt.Fprintf(&buffer, "Endpoint results:\n")

	table := tablewriter.NewWriter(&buffer)
	table.SetHeader(header)
	for index := range header {
		table.SetColMinWidth(index, colMinWidth)
	}

	for _, endpoint := range parsed.Endpoints {
		table.Append([]string{
			endpoint.Method,
			endpoint.Endpoint,
			endpoint.Name,
			string(endpoint.Status),
			fmt.Sprintf("%.0f", endpoint.Duration),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Date:\n%s", reportTime.Format("2006-01-02")),
		fmt.Sprintf("Project Name:\n%s", projectName),
		fmt.Sprintf("Status:\n%s", parsed.Status),
		fmt.Sprintf("Pass rate:\n%.2f%%", parsed.Stats.PassRate),
		fmt.Sprintf("Tests:\n%d/%d/%d of %d",
			parsed.Stats.Passed,
			parsed.Stats.Failed,
			parsed.Stats.Skipped,
			parsed.Stats.TotalTests,
		),
	})
	table.Render()

	if parsed.ErrorCount > 0 {
		fmt.Fprintf(&buffer, "\nCollection errors:\n")
		for _, rawError := range parsed.Errors {
			fmt.Fprintf(&buffer, "  - %s\n", firstLine(rawError.Message))
		}
	}

	fmt.Println(buffer.String())
}

// printConsoleReportJson prepares and prints the report document in JSON format.
func printConsoleReportJson(
	parsed *parser.ParsedReport,
	reportTime time.Time,
	projectName string,
	args []string,
) error {
	reportData := buildReportDocument(parsed, reportTime, projectName, args)

	jsonBytes, err := json.Marshal(reportData)
	if err != nil {
		return errors.Wrap(err, "couldn't dump report to JSON")
	}

	fmt.Println(string(jsonBytes))

	return nil
}

func firstLine(s string) string {
	if index := strings.IndexByte(s, '\n'); index >= 0 {
		return s[:index]
	}

	return s
}
