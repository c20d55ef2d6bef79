package report

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/Mahen037/Automated-API-Testing-with-an-Agent/internal/parser"
)

// printReportToJson writes the report document in JSON format to the file.
func printReportToJson(
	parsed *parser.ParsedReport, reportFile string, reportTime time.Time,
	projectName string, args []string,
) error {
	reportData := buildReportDocument(parsed, reportTime, projectName, args)

	jsonBytes, err := json.MarshalIndent(reportData, "", "    ")
	if err != nil {
		return errors.Wrap(err, "couldn't export report to JSON")
	}

	file, err := os.Create(reportFile)
	if err != nil {
		return errors.Wrap(err, "couldn't create file")
	}
	defer file.Close()

	file.Write(jsonBytes)

	return nil
}
