// Package formatter renders catalog data for the non-interactive commands.
package formatter

import (
	"fmt"
	"strings"

	"github.com/afrotie/ethio/internal/catalog"
)

// Report is one command's worth of output. Empty sections are skipped.
type Report struct {
	Title    string
	Listings []catalog.Listing
	Jobs     []catalog.JobListing
	Chats    []catalog.ChatPreview

	// Saved and Applied hold listing and job ids
	Saved   map[string]bool
	Applied map[string]bool
}

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(r *Report) ([]byte, error)
}

// Formats lists the accepted --output values
var Formats = []string{"text", "json", "markdown", "csv"}

// New returns the formatter for format. color only affects text output.
func New(format string, color bool) (Formatter, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return NewTerminal(color), nil
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "csv":
		return NewCSV(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (must be one of: %s)", format, strings.Join(Formats, ", "))
	}
}

// formatNumber formats numbers with commas for readability
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return addCommas(fmt.Sprintf("%d", n))
}

// addCommas adds commas to number strings
func addCommas(s string) string {
	if len(s) <= 3 {
		return s
	}
	return addCommas(s[:len(s)-3]) + "," + s[len(s)-3:]
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
