package csvhist

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

// Kind is an inferred column type.
type Kind int

// Column kinds.
const (
	KindText Kind = iota
	KindNumber
)

func (k Kind) String() string {
	if k == KindNumber {
		return "number"
	}

	return "text"
}

// missingValues are cell values (lowercased) treated as absent.
var missingValues = map[string]bool{
	"":          true,
	"na":        true,
	"n/a":       true,
	"#n/a":      true,
	"<na>":      true,
	"null":      true,
	"none":      true,
	"nan":       true,
	"-nan":      true,
	"undefined": true,
}

func isMissing(cell string) bool {
	return missingValues[strings.ToLower(strings.TrimSpace(cell))]
}

// Table is an immutable in-memory table loaded from delimited text.
type Table struct {
	t *table.Table
}

// Load reads comma-separated data from a file.
func Load(path string) (*Table, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	if fi.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrFileNotFound, path)
	}

	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}
	defer f.Close() //nolint:errcheck

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}

const utf8BOM = "\xef\xbb\xbf"

// Read parses comma-separated data, first record is a header with column names.
//
// Every record must have as many fields as the header.
// A column is numeric if every non-missing cell parses as a number.
// A leading UTF-8 byte order mark is skipped.
func Read(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	if bom, err := br.Peek(len(utf8BOM)); err == nil && string(bom) == utf8BOM {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: no columns to parse", ErrEmptyData)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	cells := make([][]string, len(header))

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}

		for i, c := range rec {
			cells[i] = append(cells[i], c)
		}
	}

	b := new(table.Builder)

	for i, name := range columnNames(header) {
		if cells[i] == nil {
			cells[i] = []string{}
		}

		b.Add(name, coerce(cells[i]))
	}

	return &Table{t: b.Done()}, nil
}

// columnNames fills blank names and disambiguates duplicates.
func columnNames(header []string) []string {
	names := make([]string, len(header))
	used := make(map[string]bool, len(header))

	for i, h := range header {
		if strings.TrimSpace(h) == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}

		name := h
		for n := 1; used[name]; n++ {
			name = h + "." + strconv.Itoa(n)
		}

		used[name] = true
		names[i] = name
	}

	return names
}

// coerce converts raw cells to []int, []float64 or leaves them as []string.
func coerce(col []string) table.Slice {
	if len(col) == 0 {
		return col
	}

	ints := make([]int, 0, len(col))
	floats := make([]float64, len(col))
	isInts := true

	for i, c := range col {
		if isMissing(c) {
			floats[i] = math.NaN()
			isInts = false

			continue
		}

		c = strings.TrimSpace(c)

		if isInts {
			if v, err := strconv.Atoi(c); err == nil {
				ints = append(ints, v)
				floats[i] = float64(v)

				continue
			}

			isInts = false
		}

		v, err := strconv.ParseFloat(c, 64)
		if err != nil {
			return col
		}

		floats[i] = v
	}

	if isInts {
		return ints
	}

	return floats
}

// Len returns number of rows.
func (t *Table) Len() int {
	return t.t.Len()
}

// Columns returns column names in header order.
func (t *Table) Columns() []string {
	return t.t.Columns()
}

// Kind returns inferred type of a column, KindText for unknown columns.
func (t *Table) Kind(name string) Kind {
	switch t.t.Column(name).(type) {
	case []int, []float64:
		return KindNumber
	default:
		return KindText
	}
}

// Fprint writes aligned table contents.
func (t *Table) Fprint(w io.Writer) error {
	return table.Fprint(w, t.t)
}

// Column returns a copy of column values as numbers.
//
// Missing and non-numeric cells are NaN.
func (t *Table) Column(name string) ([]float64, error) {
	col := t.t.Column(name)
	if col == nil {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}

	var res []float64

	switch v := col.(type) {
	case []string:
		res = make([]float64, len(v))

		for i, c := range v {
			res[i] = math.NaN()

			if isMissing(c) {
				continue
			}

			if f, err := strconv.ParseFloat(strings.TrimSpace(c), 64); err == nil {
				res[i] = f
			}
		}
	case []float64:
		res = make([]float64, len(v))
		copy(res, v)
	default:
		slice.Convert(&res, col)
	}

	return res, nil
}
