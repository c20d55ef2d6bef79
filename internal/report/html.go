package report

import (
	_ "embed"
	"html/template"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/Mahen037/Automated-API-Testing-with-an-Agent/internal/parser"
	"github.com/Mahen037/Automated-API-Testing-with-an-Agent/internal/version"
)

//go:embed report_template.html
var htmlTemplate string

var statusCSSSuffixes = map[parser.Status]string{
	parser.StatusPassed:           "passed",
	parser.StatusFailed:           "failed",
	parser.StatusCompilationError: "error",
	parser.StatusNoTests:          "empty",
	parser.StatusUnknown:          "empty",
}

// HtmlReport represents the data required to render a report in HTML format.
type HtmlReport struct {
	Date             string
	ProjectName      string
	DashboardVersion string

	Status          parser.Status
	StatusCSSSuffix string

	Stats      parser.Stats
	Endpoints  []parser.EndpointResult
	Errors     []parser.RawError
	ErrorCount int

	// JS code to render the chart, nil when the run produced no tests.
	Chart *string
}

func prepareHTMLReport(
	parsed *parser.ParsedReport, reportTime time.Time, projectName string,
) (*HtmlReport, error) {
	reportData := &HtmlReport{
		Date:             reportTime.Format(time.ANSIC),
		ProjectName:      projectName,
		DashboardVersion: version.Version,
		Status:           parsed.Status,
		StatusCSSSuffix:  statusCSSSuffixes[parsed.Status],
		Stats:            parsed.Stats,
		Endpoints:        parsed.Endpoints,
		Errors:           parsed.Errors,
		ErrorCount:       parsed.ErrorCount,
	}

	if parsed.Stats.TotalTests > 0 {
		chart, err := generateChart(parsed.Stats)
		if err != nil {
			return nil, errors.Wrap(err, "couldn't generate status chart")
		}

		reportData.Chart = chart
	}

	return reportData, nil
}

// printReportToHtml prepares and prints a report in HTML format to the file.
func printReportToHtml(
	parsed *parser.ParsedReport, reportFile string, reportTime time.Time,
	projectName string,
) error {
	reportData, err := prepareHTMLReport(parsed, reportTime, projectName)
	if err != nil {
		return errors.Wrap(err, "couldn't prepare data for HTML report")
	}

	file, err := os.Create(reportFile)
	if err != nil {
		return errors.Wrap(err, "couldn't create file")
	}
	defer file.Close()

	templ := template.Must(
		template.New("report").
			Funcs(template.FuncMap{
				"RenderChart": renderChart,
			}).Parse(htmlTemplate))

	err = templ.Execute(file, reportData)
	if err != nil {
		return errors.Wrap(err, "couldn't execute template")
	}

	return nil
}

// renderChart marks the generated chart script as safe to embed.
func renderChart(script *string) template.HTML {
	if script == nil {
		return ""
	}

	return template.HTML(*script)
}
