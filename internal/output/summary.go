package output

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
)

// ExportSummary describes a finished export for the console.
type ExportSummary struct {
	RepoPath string
	Backend  string
	Head     string
	Visited  int
	Accepted int
	Merges   int
	Roots    int
	MaxCount int
	Filter   string
	Output   string
	Elapsed  time.Duration
}

// WriteSummary prints the summary to w, typically stderr since stdout carries the stream.
func WriteSummary(w io.Writer, s ExportSummary) error {
	title := color.New(color.FgGreen)
	if _, err := title.Fprintln(w, "Git Log Export"); err != nil {
		return err
	}

	dest := s.Output
	if dest == "" {
		dest = "stdout"
	}
	filterText := s.Filter
	if filterText == "" {
		filterText = "none"
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Repository:\t%s\n", s.RepoPath)
	fmt.Fprintf(tw, "Backend:\t%s\n", s.Backend)
	fmt.Fprintf(tw, "Head:\t%s\n", s.Head)
	fmt.Fprintf(tw, "Filter:\t%s\n", filterText)
	fmt.Fprintf(tw, "Commits visited:\t%d\n", s.Visited)
	fmt.Fprintf(tw, "Rows written:\t%d (max %d)\n", s.Accepted, s.MaxCount)
	fmt.Fprintf(tw, "Merge commits:\t%d\n", s.Merges)
	fmt.Fprintf(tw, "Root commits:\t%d\n", s.Roots)
	fmt.Fprintf(tw, "Output:\t%s\n", dest)
	if err := tw.Flush(); err != nil {
		return err
	}

	if s.Accepted == s.MaxCount {
		if _, err := color.New(color.FgYellow).Fprintln(w, "Row limit reached; older commits were not exported."); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\nCompleted in %s\n", s.Elapsed)
	return err
}
