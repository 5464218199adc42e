// Package uid provides small generators for unique identifiers.
//
// NumberID produces sortable numeric IDs for database rows; StringID produces
// opaque string IDs for correlation and token identifiers.
package uid

// NumberID generates unique numeric identifiers.
type NumberID interface {
	Generate() uint64
}

// StringID generates unique string identifiers.
type StringID interface {
	Generate() string
}
