// Package csvio reads and writes lead spreadsheets.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// Columns is the export layout. Import accepts these in any order.
var Columns = []string{"name", "email", "phone", "company", "status", "source", "notes", "created_at"}

var ErrMissingNameColumn = errors.New("csv header must contain a name column")

// Record is one data row. Line is the 1-based line in the file.
type Record struct {
	Line    int
	Name    string
	Email   string
	Phone   string
	Company string
	Status  string
	Source  string
	Notes   string
}

// Decode reads a header row followed by data rows. Unknown columns are ignored
// and rows with every field empty are skipped.
func Decode(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrMissingNameColumn
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	index := map[string]int{}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	if _, ok := index["name"]; !ok {
		return nil, ErrMissingNameColumn
	}

	field := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line, _ := cr.FieldPos(0)

		rec := Record{
			Line:    line,
			Name:    field(row, "name"),
			Email:   field(row, "email"),
			Phone:   field(row, "phone"),
			Company: field(row, "company"),
			Status:  field(row, "status"),
			Source:  field(row, "source"),
			Notes:   field(row, "notes"),
		}
		if rec == (Record{Line: line}) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// Encode writes leads with the Columns header.
func Encode(w io.Writer, leads []entity.Lead) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, l := range leads {
		row := []string{
			l.Name, l.Email, l.Phone, l.Company, string(l.Status), l.Source, l.Notes,
			l.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFilename names an export taken on day.
func ExportFilename(day time.Time) string {
	return fmt.Sprintf("leads_%s.csv", day.Format("2006-01-02"))
}
