package report

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"

	"github.com/Mahen037/Automated-API-Testing-with-an-Agent/internal/parser"
)

const (
	titleColor = "#000000"

	passedColor  = "#2f9e44"
	failedColor  = "#e03131"
	skippedColor = "#f08c00"
)

// generateChart generates JS code to render the status breakdown chart in
// the HTML report.
func generateChart(stats parser.Stats) (*string, error) {
	var buffer bytes.Buffer

	re := regexp.MustCompile(`<script type="text/javascript">(\n|.)*</script>`)
	reRenderer := regexp.MustCompile(`(echarts\.init\()(.*)(\))`)

	chart := charts.NewPie()
	chart.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Test results",
			Right: "center",
			TitleStyle: &opts.TextStyle{
				Color: titleColor,
			},
		}),
		charts.WithInitializationOpts(opts.Initialization{
			ChartID: "status_chart",
		}),
	)

	items := []opts.PieData{
		{
			Name:      fmt.Sprintf("passed: %d", stats.Passed),
			Value:     stats.Passed,
			ItemStyle: &opts.ItemStyle{Color: passedColor},
		},
		{
			Name:      fmt.Sprintf("failed: %d", stats.Failed),
			Value:     stats.Failed,
			ItemStyle: &opts.ItemStyle{Color: failedColor},
		},
		{
			Name:      fmt.Sprintf("skipped: %d", stats.Skipped),
			Value:     stats.Skipped,
			ItemStyle: &opts.ItemStyle{Color: skippedColor},
		},
	}

	chart.AddSeries("results", items)

	err := chart.Render(&buffer)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't render chart")
	}

	scriptParts := re.FindAllString(buffer.String(), -1)
	if len(scriptParts) != 1 {
		return nil, errors.New("couldn't get chart script")
	}

	script := reRenderer.ReplaceAllString(scriptParts[0], "$1$2, {renderer: \"svg\"}$3")

	return &script, nil
}
