package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

// csvFormatter writes one row per record with a leading kind column
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

var csvHeaders = []string{"Kind", "ID", "Title", "Price", "Location", "Category", "Party", "Posted", "Flag"}

func (f *csvFormatter) Format(r *Report) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	if err := writer.Write(csvHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, l := range r.Listings {
		record := []string{"listing", l.ID, l.Title, priceLabel(l), l.Location, string(l.Category),
			l.Seller.Name, l.PostedAt, strconv.FormatBool(r.Saved[l.ID])}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	for _, j := range r.Jobs {
		record := []string{"job", j.ID, j.Title, j.Salary, j.Location, string(j.Type),
			j.Company, j.PostedAt, strconv.FormatBool(r.Applied[j.ID])}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	for _, c := range r.Chats {
		record := []string{"chat", c.ID, c.Name, "", "", "", strings.TrimSpace(c.LastMessage),
			c.Timestamp, strconv.Itoa(c.Unread)}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	return b.Bytes(), nil
}
