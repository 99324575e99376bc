package domain

import "errors"

var (
	// ErrMalformedInput reports an issue instant that cannot be parsed.
	// Window generation fails loudly instead of returning an empty list.
	ErrMalformedInput = errors.New("malformed issue time")

	// ErrMissingField reports a physical variable absent from the dataset.
	// Fatal for the calculators that depend on it; the enclosing window is
	// skipped and the run continues.
	ErrMissingField = errors.New("field not present in dataset")

	// ErrNoLevelAxis reports a pressure-level selection against a dataset
	// without an isobaric axis. Fatal for the cloud calculator only.
	ErrNoLevelAxis = errors.New("dataset has no pressure level axis")
)
