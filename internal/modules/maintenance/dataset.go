package maintenance

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

const (
	ColMake             = "make"
	ColModel            = "model"
	ColEngineType       = "engine_type"
	ColDrivingCondition = "driving_condition"
	ColMileage          = "mileage"
	ColYear             = "year"
	ColLabel            = "maintenance_labels"
)

var requiredColumns = []string{
	ColMake, ColModel, ColEngineType, ColDrivingCondition, ColMileage, ColYear, ColLabel,
}

// Record is one labelled row of the training corpus.
type Record struct {
	Make             string
	Model            string
	EngineType       string
	DrivingCondition string
	Mileage          float64
	Year             float64
	Label            string
}

// Cell spellings treated as missing, matching common CSV null markers.
var nullMarkers = map[string]struct{}{
	"": {}, "NA": {}, "N/A": {}, "n/a": {}, "NaN": {}, "nan": {}, "-NaN": {}, "-nan": {},
	"null": {}, "NULL": {}, "None": {}, "<NA>": {}, "#N/A": {}, "#NA": {},
}

func isMissing(cell string) bool {
	_, ok := nullMarkers[strings.TrimSpace(cell)]
	return ok
}

// LoadDataset reads the ISO-8859-1 encoded training CSV at path.
func LoadDataset(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, path)
		}
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer f.Close()
	return ReadDataset(f)
}

// ReadDataset parses ISO-8859-1 CSV from r. Rows whose label is missing are
// dropped; if none remain ErrEmptyDataset is returned.
func ReadDataset(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(r))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: no header row", ErrEmptyDataset)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	var out []Record
	line := 1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidDataset, line, err)
		}
		get := func(col string) string {
			i := idx[col]
			if i >= len(row) {
				return ""
			}
			return row[i]
		}

		label := get(ColLabel)
		if isMissing(label) {
			continue
		}
		mileage, err := parseNumericCell(get(ColMileage))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d column %s: %v", ErrInvalidDataset, line, ColMileage, err)
		}
		year, err := parseNumericCell(get(ColYear))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d column %s: %v", ErrInvalidDataset, line, ColYear, err)
		}
		out = append(out, Record{
			Make:             categoricalCell(get(ColMake)),
			Model:            categoricalCell(get(ColModel)),
			EngineType:       categoricalCell(get(ColEngineType)),
			DrivingCondition: categoricalCell(get(ColDrivingCondition)),
			Mileage:          mileage,
			Year:             year,
			Label:            label,
		})
	}
	if len(out) == 0 {
		return nil, ErrEmptyDataset
	}
	return out, nil
}

// categoricalCell folds every null marker into the empty category.
func categoricalCell(cell string) string {
	if isMissing(cell) {
		return ""
	}
	return cell
}

func parseNumericCell(cell string) (float64, error) {
	if isMissing(cell) {
		return 0, fmt.Errorf("missing value")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", cell)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %q", cell)
	}
	return v, nil
}
