// Package extract reads the "summary of business results" figures from an
// EDINET CSV export (document type 5) of a securities report.
package extract

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/corporate-reports/internal/common"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrExportNotFound is returned when a directory holds no jpcrp CSV export.
var ErrExportNotFound = errors.New("EDINET CSV export not found")

// YearCurrent is the Summary key of the reported fiscal year.
const YearCurrent = "current"

// Header names of the EDINET CSV export columns.
const (
	columnElementID = "要素ID"
	columnContextID = "コンテキストID"
	columnValue     = "値"
)

// Value is one extracted figure. Number is set when the cell parses as a
// number; otherwise Text holds the raw cell (e.g. "－").
type Value struct {
	Number *float64
	Text   string
}

// MarshalJSON encodes a Value as a JSON number or string.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Number != nil {
		return json.Marshal(*v.Number)
	}
	return json.Marshal(v.Text)
}

// UnmarshalJSON accepts a JSON number or string.
func (v *Value) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		v.Number = &n
		v.Text = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*v = parseValue(s)
	return nil
}

// Summary maps a fiscal-year label (current, prior1..prior4) to metric values.
type Summary map[string]map[string]Value

// Extractor reads EDINET CSV exports.
type Extractor struct {
	logger arbor.ILogger
}

// NewExtractor creates a new Extractor. A nil logger uses the global default.
func NewExtractor(logger arbor.ILogger) *Extractor {
	if logger == nil {
		logger = common.GetLogger()
	}
	return &Extractor{
		logger: logger,
	}
}

// Extract locates the jpcrp CSV under dir and reads its summary figures.
func (e *Extractor) Extract(dir string) (Summary, error) {
	path, err := FindExport(dir)
	if err != nil {
		return nil, err
	}
	return e.ExtractFile(path)
}

// ExtractFile reads summary figures from one CSV export file.
func (e *Extractor) ExtractFile(path string) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open export: %w", err)
	}
	defer f.Close()

	summary, rows, err := readSummary(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	e.logger.Debug().
		Str("file", path).
		Int("rows", rows).
		Int("years", len(summary)).
		Msg("Extracted summary of business results")

	return summary, nil
}

// FindExport walks dir for CSV files whose name starts with "jpcrp" and returns
// the lexicographically first path.
func FindExport(dir string) (string, error) {
	var found []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, "jpcrp") && strings.EqualFold(filepath.Ext(name), ".csv") {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrExportNotFound, dir)
		}
		return "", fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	if len(found) == 0 {
		return "", fmt.Errorf("%w: %s", ErrExportNotFound, dir)
	}
	sort.Strings(found)
	return found[0], nil
}

// readSummary decodes a UTF-16 tab-separated export. Consolidated values win;
// non-consolidated values fill metrics with no consolidated figure.
func readSummary(r io.Reader) (Summary, int, error) {
	decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	reader := csv.NewReader(transform.NewReader(r, decoder))
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read header: %w", err)
	}
	elemCol, ctxCol, valCol := -1, -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case columnElementID:
			elemCol = i
		case columnContextID:
			ctxCol = i
		case columnValue:
			valCol = i
		}
	}
	if elemCol < 0 || ctxCol < 0 || valCol < 0 {
		return nil, 0, fmt.Errorf("missing columns %q, %q or %q in header", columnElementID, columnContextID, columnValue)
	}

	consolidated := Summary{}
	nonConsolidated := Summary{}
	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, rows, fmt.Errorf("failed to read row %d: %w", rows+2, err)
		}
		rows++
		if len(record) <= elemCol || len(record) <= ctxCol || len(record) <= valCol {
			continue
		}

		metric, ok := summaryElements[record[elemCol]]
		if !ok {
			continue
		}
		year, isConsolidated, ok := parseContext(record[ctxCol])
		if !ok {
			continue
		}
		raw := strings.TrimSpace(record[valCol])
		if raw == "" {
			continue
		}

		target := nonConsolidated
		if isConsolidated {
			target = consolidated
		}
		if target[year] == nil {
			target[year] = map[string]Value{}
		}
		if _, seen := target[year][metric]; !seen {
			target[year][metric] = parseValue(raw)
		}
	}

	for year, metrics := range nonConsolidated {
		if consolidated[year] == nil {
			consolidated[year] = map[string]Value{}
		}
		for metric, v := range metrics {
			if _, ok := consolidated[year][metric]; !ok {
				consolidated[year][metric] = v
			}
		}
	}

	return consolidated, rows, nil
}

func parseValue(raw string) Value {
	cleaned := strings.ReplaceAll(raw, ",", "")
	if n, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return Value{Number: &n}
	}
	return Value{Text: raw}
}
