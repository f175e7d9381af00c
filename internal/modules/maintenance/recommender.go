package maintenance

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// FeatureOrder is the column order used for both training and inference.
var FeatureOrder = []string{ColMileage, ColYear, ColDrivingCondition}

// encodedColumns lists every categorical column that gets an encoder.
var encodedColumns = []string{ColMake, ColModel, ColEngineType, ColDrivingCondition, ColLabel}

// ModelBundle is a fitted tree plus the encoders fitted on the same corpus.
// It is immutable after Train and safe for concurrent use.
type ModelBundle struct {
	tree     *DecisionTree
	encoders map[string]*LabelEncoder
	stats    TrainingStats
}

type TrainingStats struct {
	Rows     int           `json:"rows"`
	Classes  int           `json:"classes"`
	Depth    int           `json:"depth"`
	Leaves   int           `json:"leaves"`
	Duration time.Duration `json:"duration"`
}

// LoadModel reads the dataset at path and trains a bundle from it.
func LoadModel(path string) (*ModelBundle, error) {
	records, err := LoadDataset(path)
	if err != nil {
		return nil, err
	}
	return Train(records)
}

func Train(records []Record) (*ModelBundle, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}
	start := time.Now()

	columns := map[string][]string{}
	for _, r := range records {
		columns[ColMake] = append(columns[ColMake], r.Make)
		columns[ColModel] = append(columns[ColModel], r.Model)
		columns[ColEngineType] = append(columns[ColEngineType], r.EngineType)
		columns[ColDrivingCondition] = append(columns[ColDrivingCondition], r.DrivingCondition)
		columns[ColLabel] = append(columns[ColLabel], r.Label)
	}
	encoders := make(map[string]*LabelEncoder, len(encodedColumns))
	for _, col := range encodedColumns {
		encoders[col] = FitLabelEncoder(columns[col])
	}

	conditions := encoders[ColDrivingCondition]
	labels := encoders[ColLabel]
	X := make([][]float64, len(records))
	y := make([]int, len(records))
	for i, r := range records {
		X[i] = []float64{r.Mileage, r.Year, float64(conditions.Code(r.DrivingCondition))}
		y[i] = labels.Code(r.Label)
	}

	tree, err := FitDecisionTree(X, y, labels.Len())
	if err != nil {
		return nil, fmt.Errorf("train maintenance model: %w", err)
	}
	return &ModelBundle{
		tree:     tree,
		encoders: encoders,
		stats: TrainingStats{
			Rows:     len(records),
			Classes:  labels.Len(),
			Depth:    tree.Depth(),
			Leaves:   tree.Leaves(),
			Duration: time.Since(start),
		},
	}, nil
}

// Recommend predicts the maintenance label for carDetails, which must carry
// mileage, year and driving_condition. Other keys are ignored. An unseen
// driving_condition is encoded as UnseenCode rather than rejected.
func (m *ModelBundle) Recommend(carDetails map[string]any) (string, error) {
	for _, key := range FeatureOrder {
		if _, ok := carDetails[key]; !ok {
			return "", fmt.Errorf("%w: %s", ErrMissingFeature, key)
		}
	}
	mileage, err := numericFeature(ColMileage, carDetails[ColMileage])
	if err != nil {
		return "", err
	}
	year, err := numericFeature(ColYear, carDetails[ColYear])
	if err != nil {
		return "", err
	}
	condition, err := categoricalFeature(ColDrivingCondition, carDetails[ColDrivingCondition])
	if err != nil {
		return "", err
	}

	x := []float64{mileage, year, float64(m.encoders[ColDrivingCondition].Code(condition))}
	code, err := m.tree.Predict(x)
	if err != nil {
		return "", err
	}
	return m.encoders[ColLabel].Decode(code)
}

// Encoder returns the fitted encoder for a categorical column, or nil.
func (m *ModelBundle) Encoder(column string) *LabelEncoder {
	return m.encoders[column]
}

// Labels lists every maintenance label the model can return.
func (m *ModelBundle) Labels() []string {
	return m.encoders[ColLabel].Classes()
}

func (m *ModelBundle) Stats() TrainingStats { return m.stats }

func numericFeature(name string, v any) (float64, error) {
	if v == nil {
		return 0, fmt.Errorf("%w: %s is null", ErrInvalidValue, name)
	}
	var f float64
	switch t := v.(type) {
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %s is not numeric", ErrInvalidValue, name)
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s is not numeric", ErrInvalidValue, name)
		}
		f = parsed
	case bool:
		return 0, fmt.Errorf("%w: %s is not numeric", ErrInvalidValue, name)
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			f = float64(rv.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			f = float64(rv.Uint())
		case reflect.Float32, reflect.Float64:
			f = rv.Float()
		case reflect.Pointer:
			if rv.IsNil() {
				return 0, fmt.Errorf("%w: %s is null", ErrInvalidValue, name)
			}
			return numericFeature(name, rv.Elem().Interface())
		default:
			return 0, fmt.Errorf("%w: %s is not numeric", ErrInvalidValue, name)
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s is not a finite number", ErrInvalidValue, name)
	}
	return f, nil
}

func categoricalFeature(name string, v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", fmt.Errorf("%w: %s is null", ErrInvalidValue, name)
	case string:
		return t, nil
	case float64:
		if math.IsNaN(t) {
			return "", fmt.Errorf("%w: %s is NaN", ErrInvalidValue, name)
		}
	case float32:
		if math.IsNaN(float64(t)) {
			return "", fmt.Errorf("%w: %s is NaN", ErrInvalidValue, name)
		}
	case *string:
		if t == nil {
			return "", fmt.Errorf("%w: %s is null", ErrInvalidValue, name)
		}
		return *t, nil
	}
	return fmt.Sprint(v), nil
}
