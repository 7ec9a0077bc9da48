package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/wolfeidau/gominify/internal/logger"
	"github.com/wolfeidau/gominify/internal/minify"
	"github.com/wolfeidau/gominify/internal/report"
)

// ErrReductionTooLow indicates the minified output did not shrink by the required percentage
var ErrReductionTooLow = errors.New("reduction below minimum")

// ActionCmd runs one compressor from GitHub Action inputs and publishes the
// results as step outputs and a job summary.
type ActionCmd struct {
	Compressor    string  `help:"Compressor to use" env:"INPUT_COMPRESSOR" required:""`
	Input         string  `help:"Input files, comma or newline separated" env:"INPUT_INPUT" required:""`
	Output        string  `help:"Output file or $1 pattern" env:"INPUT_OUTPUT" required:""`
	Type          string  `help:"Content type (js, css)" env:"INPUT_TYPE"`
	Options       string  `help:"Compressor options as a JSON object" env:"INPUT_OPTIONS"`
	ReportSummary bool    `help:"Write a job summary" env:"INPUT_REPORT-SUMMARY" default:"true" negatable:""`
	IncludeGzip   bool    `help:"Publish the gzip size" env:"INPUT_INCLUDE-GZIP" default:"true" negatable:""`
	MinReduction  float64 `help:"Fail when the total reduction in percent is lower" env:"INPUT_MIN-REDUCTION" default:"0"`
	GithubOutput  string  `help:"File receiving step outputs" env:"GITHUB_OUTPUT"`
	StepSummary   string  `help:"File receiving the job summary" env:"GITHUB_STEP_SUMMARY"`

	Tools ToolsFlags `embed:""`

	Stdout io.Writer `kong:"-"`
}

func (a *ActionCmd) Run(ctx context.Context, globals *Globals) error {
	log := logger.Setup(globals.Debug)
	ctx = log.WithContext(ctx)

	opts, err := parseOptions(a.Options)
	if err != nil {
		return err
	}

	settings := minify.Settings{
		Input:   pathsValue(splitList(a.Input)),
		Output:  a.Output,
		Type:    a.Type,
		Options: opts,
	}

	e := newEngine(log, a.Tools, false)
	stats, err := e.runAll(ctx, []string{a.Compressor}, settings)
	if err != nil {
		a.annotate(err)
		return err
	}

	total := report.Totals(stats)

	if err := a.writeOutputs(total); err != nil {
		return err
	}

	if a.ReportSummary && a.StepSummary != "" {
		if err := appendFile(a.StepSummary, "## Minification report\n\n"+report.Markdown(stats)+"\n"); err != nil {
			return fmt.Errorf("failed to write step summary: %w", err)
		}
	}

	zerolog.Ctx(ctx).Info().
		Int64("original_bytes", total.OriginalSize).
		Int64("minified_bytes", total.MinifiedSize).
		Float64("reduction_pct", total.Reduction).
		Msg("Minification complete")

	if a.MinReduction > 0 && total.Reduction < a.MinReduction {
		err := fmt.Errorf("%w: %.2f%% < %.2f%%", ErrReductionTooLow, total.Reduction, a.MinReduction)
		a.annotate(err)
		return err
	}

	return nil
}

func (a *ActionCmd) writeOutputs(total *report.Stats) error {
	outputs := [][2]string{
		{"original-size", strconv.FormatInt(total.OriginalSize, 10)},
		{"minified-size", strconv.FormatInt(total.MinifiedSize, 10)},
		{"reduction-percent", strconv.FormatFloat(total.Reduction, 'f', 2, 64)},
		{"time-ms", strconv.FormatInt(total.Duration.Milliseconds(), 10)},
	}
	if a.IncludeGzip {
		outputs = append(outputs, [2]string{"gzip-size", strconv.FormatInt(total.GzipSize, 10)})
	}

	var b strings.Builder
	for _, kv := range outputs {
		fmt.Fprintf(&b, "%s=%s\n", kv[0], kv[1])
	}

	if a.GithubOutput == "" {
		_, err := io.WriteString(stdout(a.Stdout), b.String())
		return err
	}
	if err := appendFile(a.GithubOutput, b.String()); err != nil {
		return fmt.Errorf("failed to write step outputs: %w", err)
	}
	return nil
}

// annotate prints an error workflow command so the failure shows on the run.
func (a *ActionCmd) annotate(err error) {
	msg := strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A").Replace(err.Error())
	fmt.Fprintf(stdout(a.Stdout), "::error::%s\n", msg)
}

func splitList(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	return lo.Compact(lo.Map(parts, func(p string, _ int) string {
		return strings.TrimSpace(p)
	}))
}

func appendFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
