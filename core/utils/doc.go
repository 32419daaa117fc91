// Package utils provides loose type coercion helpers for values coming from
// spreadsheet cells and JSON payloads, where numbers arrive as strings or
// float64 depending on the producer.
package utils
