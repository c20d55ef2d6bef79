package report

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"

	"github.com/Mahen037/Automated-API-Testing-with-an-Agent/internal/parser"
)

const (
	maxReportFilenameLength = 249 // 255 (max length) - 5 (".yaml") - 1 (to be sure)

	consoleReportTextFormat = "text"
	consoleReportJsonFormat = "json"
)

const (
	NoneFormat = "none"
	JsonFormat = "json"
	YamlFormat = "yaml"
	HtmlFormat = "html"
)

var (
	ReportFormatsSet = map[string]any{
		NoneFormat: nil,
		JsonFormat: nil,
		YamlFormat: nil,
		HtmlFormat: nil,
	}
	ReportFormats = maps.Keys(ReportFormatsSet)
)

// reportDocument is the envelope written by the JSON and YAML renderers.
type reportDocument struct {
	Date        string                  `json:"date" yaml:"date"`
	ProjectName string                  `json:"project_name" yaml:"project_name"`
	Args        string                  `json:"args,omitempty" yaml:"args,omitempty"`
	Status      parser.Status           `json:"status" yaml:"status"`
	Stats       parser.Stats            `json:"stats" yaml:"stats"`
	Endpoints   []parser.EndpointResult `json:"endpoints" yaml:"endpoints"`
	Errors      []parser.RawError       `json:"errors" yaml:"errors"`
	ErrorCount  int                     `json:"errorCount" yaml:"errorCount"`
}

func buildReportDocument(
	parsed *parser.ParsedReport, reportTime time.Time, projectName string, args []string,
) *reportDocument {
	return &reportDocument{
		Date:        reportTime.Format(time.ANSIC),
		ProjectName: projectName,
		Args:        strings.Join(args, " "),
		Status:      parsed.Status,
		Stats:       parsed.Stats,
		Endpoints:   parsed.Endpoints,
		Errors:      parsed.Errors,
		ErrorCount:  parsed.ErrorCount,
	}
}

// SendReportByEmail posts the report document to the report delivery
// service for the given recipient.
func SendReportByEmail(
	ctx context.Context, parsed *parser.ParsedReport, email string,
	reportTime time.Time, projectName string, args []string,
) error {
	if err := parser.ValidateParsedReport(parsed); err != nil {
		return errors.Wrap(err, "couldn't prepare data for email report")
	}

	reportData := buildReportDocument(parsed, reportTime, projectName, args)

	err := sendEmail(ctx, reportData, email)
	if err != nil {
		return err
	}

	return nil
}

// ExportReport saves the parsed report on disk in different formats: JSON, YAML, HTML.
func ExportReport(
	parsed *parser.ParsedReport, reportFile string, reportTime time.Time,
	projectName string, args []string, formats []string,
) (reportFileNames []string, err error) {
	_, reportFileName := filepath.Split(reportFile)
	if len(reportFileName) > maxReportFilenameLength {
		return nil, errors.New("report filename too long")
	}

	if err = parser.ValidateParsedReport(parsed); err != nil {
		return nil, errors.Wrap(err, "couldn't validate report before export")
	}

	for _, format := range formats {
		switch format {
		case JsonFormat:
			reportFileName = reportFile + ".json"
			err = printReportToJson(parsed, reportFileName, reportTime, projectName, args)
			if err != nil {
				return nil, err
			}

		case YamlFormat:
			reportFileName = reportFile + ".yaml"
			err = printReportToYaml(parsed, reportFileName, reportTime, projectName, args)
			if err != nil {
				return nil, err
			}

		case HtmlFormat:
			reportFileName = reportFile + ".html"
			err = printReportToHtml(parsed, reportFileName, reportTime, projectName)
			if err != nil {
				return nil, err
			}

		case NoneFormat:
			return nil, nil

		default:
			return nil, fmt.Errorf("unknown report format: %s", format)
		}

		reportFileNames = append(reportFileNames, reportFileName)
	}

	return reportFileNames, nil
}

func ValidateReportFormat(formats []string) error {
	if len(formats) == 0 {
		return errors.New("no report format specified")
	}

	// Convert slice to set (map)
	set := make(map[string]any)
	for _, s := range formats {
		if _, ok := ReportFormatsSet[s]; !ok {
			return fmt.Errorf("unknown report format: %s", s)
		}

		set[s] = nil
	}

	// Check for duplicating values
	if len(set) != len(formats) {
		return errors.New("report format value is duplicated")
	}

	// If the none format is selected, it must be the only value
	if _, ok := set[NoneFormat]; ok && len(formats) != 1 {
		return fmt.Errorf("'%s' report format must be the only value", NoneFormat)
	}

	return nil
}
