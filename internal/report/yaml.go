package report

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/Mahen037/Automated-API-Testing-with-an-Agent/internal/parser"
)

// printReportToYaml writes the report document in YAML format to the file.
func printReportToYaml(
	parsed *parser.ParsedReport, reportFile string, reportTime time.Time,
	projectName string, args []string,
) error {
	reportData := buildReportDocument(parsed, reportTime, projectName, args)

	yamlBytes, err := yaml.Marshal(reportData)
	if err != nil {
		return errors.Wrap(err, "couldn't export report to YAML")
	}

	file, err := os.Create(reportFile)
	if err != nil {
		return errors.Wrap(err, "couldn't create file")
	}
	defer file.Close()

	file.Write(yamlBytes)

	return nil
}
