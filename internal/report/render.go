package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
)

// Totals sums the sizes and durations of stats. Compressor and File are left
// empty and Fingerprint is not computed.
func Totals(stats []*Stats) *Stats {
	total := &Stats{}
	for _, s := range stats {
		total.OriginalSize += s.OriginalSize
		total.MinifiedSize += s.MinifiedSize
		total.GzipSize += s.GzipSize
		total.BrotliSize += s.BrotliSize
		total.ZstdSize += s.ZstdSize
		total.Duration += s.Duration
	}
	total.Reduction = Reduction(total.OriginalSize, total.MinifiedSize)
	return total
}

// WriteTable renders stats as an aligned plain text table.
func WriteTable(w io.Writer, stats []*Stats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "COMPRESSOR\tFILE\tORIGINAL\tMINIFIED\tREDUCTION\tGZIP\tBROTLI\tZSTD\tTIME\tFINGERPRINT")
	for _, s := range stats {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.1f%%\t%s\t%s\t%s\t%s\t%s\n",
			s.Compressor,
			s.File,
			HumanSize(s.OriginalSize),
			HumanSize(s.MinifiedSize),
			s.Reduction,
			HumanSize(s.GzipSize),
			HumanSize(s.BrotliSize),
			HumanSize(s.ZstdSize),
			s.Duration.Round(time.Millisecond),
			s.Fingerprint,
		)
	}

	return tw.Flush()
}

// Markdown renders stats as a GitHub flavoured markdown table with a totals
// row when there is more than one file.
func Markdown(stats []*Stats) string {
	var b strings.Builder

	b.WriteString("| File | Compressor | Original | Minified | Reduction | Gzip | Brotli | Time |\n")
	b.WriteString("|------|------------|---------:|---------:|----------:|-----:|-------:|-----:|\n")

	row := func(file, compressor string, s *Stats) {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %.1f%% | %s | %s | %dms |\n",
			file,
			compressor,
			HumanSize(s.OriginalSize),
			HumanSize(s.MinifiedSize),
			s.Reduction,
			HumanSize(s.GzipSize),
			HumanSize(s.BrotliSize),
			s.Duration.Milliseconds(),
		)
	}

	for _, s := range stats {
		row("`"+s.File+"`", s.Compressor, s)
	}
	if len(stats) > 1 {
		row("**Total**", "", Totals(stats))
	}

	return b.String()
}

// HumanSize formats n bytes using binary units.
func HumanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
