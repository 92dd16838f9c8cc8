// Package uid generates unique identifiers: snowflake int64 IDs for database
// rows and UUID strings for token and correlation IDs.
package uid

// NumberID generates unique int64 identifiers.
type NumberID interface {
	Generate() int64
}

// StringID generates unique string identifiers.
type StringID interface {
	Generate() string
}
