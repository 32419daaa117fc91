// Package importer implements the import reconciler: it converts raw tabular
// rows (the fixed CSV export or generic spreadsheet input) into merged,
// deduplicated catalog records.
//
// Reconcile is a pure function from rows to (records, entries, result) with
// no hidden accumulator; the Service decides whether a batch replaces the
// catalog (CSV layout, destructive) or merges into it (tabular layout,
// additive with collision checks). Errors are collected per row - import is
// best-effort, never atomic across rows.
package importer
