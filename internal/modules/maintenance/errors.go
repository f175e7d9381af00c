package maintenance

import "errors"

var (
	// ErrDatasetNotFound is returned when the training CSV does not exist.
	ErrDatasetNotFound = errors.New("maintenance dataset not found")
	// ErrEmptyDataset is returned when no labelled rows remain after cleaning.
	ErrEmptyDataset = errors.New("maintenance dataset is empty after removing rows without a label")
	// ErrMissingColumn is returned when a required CSV column is absent.
	ErrMissingColumn = errors.New("maintenance dataset is missing a required column")
	// ErrInvalidDataset is returned for malformed CSV content.
	ErrInvalidDataset = errors.New("invalid maintenance dataset")

	// ErrMissingFeature is returned by Recommend when a required key is absent.
	ErrMissingFeature = errors.New("missing required feature")
	// ErrInvalidValue is returned by Recommend for null, NaN or non-numeric input.
	ErrInvalidValue = errors.New("invalid feature value")
)
