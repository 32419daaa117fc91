package importer

import (
	"fmt"
	"strings"

	"catalog-manager/core/utils"
	"catalog-manager/feature/library"
	"catalog-manager/feature/library/models"
)

// Header row counts for the two import layouts. The fixed CSV export carries
// three banner rows above the column header; generic tabular input has a
// single header row.
const (
	CSVHeaderRows     = 4
	TabularHeaderRows = 1
)

// Row is one raw tabular row as string cells: column 0 is the book code,
// column 1 the title. One row represents one physical copy unless a copies
// column overrides that.
type Row []string

// Options control one reconcile batch.
type Options struct {
	// HeaderRows is the number of leading rows to skip.
	HeaderRows int
	// DefaultYear is the publication year applied to every record.
	DefaultYear int
	// DefaultCopies is the copy count per row when no copies column applies.
	DefaultCopies int
	// CopiesColumn is the index of an optional per-row copies cell; -1 when
	// the layout has none.
	CopiesColumn int
	// ExistingCodes are codes already persisted in the live catalog. Rows
	// whose code collides are rejected; leave nil for a destructive batch
	// that replaces the catalog anyway.
	ExistingCodes map[string]struct{}
}

// CSVOptions is the configuration for the fixed CSV layout: batch-wide year
// and copy constants, destructive replace, no collision set.
func CSVOptions(settings models.Settings) Options {
	return Options{
		HeaderRows:    CSVHeaderRows,
		DefaultYear:   settings.DefaultYear,
		DefaultCopies: defaultCopies(settings),
		CopiesColumn:  -1,
	}
}

// TabularOptions is the configuration for generic tabular import: additive
// merge, optional copies in column 2, collision check against the live
// catalog.
func TabularOptions(settings models.Settings, existing map[string]struct{}) Options {
	return Options{
		HeaderRows:    TabularHeaderRows,
		DefaultYear:   settings.DefaultYear,
		DefaultCopies: defaultCopies(settings),
		CopiesColumn:  2,
		ExistingCodes: existing,
	}
}

func defaultCopies(settings models.Settings) int {
	if settings.DefaultCopies < 1 {
		return 1
	}
	return settings.DefaultCopies
}

// Result summarizes one import batch. Import is best-effort: errors are
// collected per row alongside the partial success count, never aborting the
// batch.
type Result struct {
	SuccessCount int      `json:"successCount"`
	ErrorCount   int      `json:"errorCount"`
	Errors       []string `json:"errors"`
}

func (r *Result) reject(line int, format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf("row %d: %s", line, fmt.Sprintf(format, args...)))
	r.ErrorCount++
}

// Reconcile merges raw rows into deduplicated title records. It is pure: the
// records are built on a staging store, and the accepted entries are returned
// alongside them so the caller can either replace the live catalog with the
// records (CSV path) or replay the entries into it additively (tabular path).
//
// Per-row rules: blank rows and rows with a blank first cell are skipped;
// invalid codes are rejected; rows with an empty title are skipped silently;
// a code seen earlier in the batch is rejected as a duplicate, whether it
// reappears under the same title or a different one; codes colliding with
// opts.ExistingCodes are rejected.
func Reconcile(rows []Row, opts Options) ([]models.BookRecord, []library.MergeItem, Result) {
	staging := library.NewStore()
	var entries []library.MergeItem
	var res Result

	for i, row := range rows {
		if i < opts.HeaderRows {
			continue
		}
		line := i + 1

		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		raw := strings.TrimSpace(row[0])
		code := library.NormalizeCode(raw)

		if !library.ValidateCode(code) {
			res.reject(line, "invalid code %q", raw)
			continue
		}

		title := ""
		if len(row) > 1 {
			title = strings.TrimSpace(row[1])
		}
		if title == "" {
			continue
		}

		if _, taken := opts.ExistingCodes[code]; taken {
			res.reject(line, "code %s already in catalog", code)
			continue
		}
		if prior, ok := staging.FindByCode(code); ok {
			if prior.Title == title {
				res.reject(line, "duplicate code %s for %q", code, title)
			} else {
				res.reject(line, "code %s already used by %q", code, prior.Title)
			}
			continue
		}

		copies := opts.DefaultCopies
		if opts.CopiesColumn >= 0 && len(row) > opts.CopiesColumn {
			if n := utils.ToInt(row[opts.CopiesColumn]); n > 0 {
				copies = n
			}
		}

		staging.UpsertMerged(code, title, opts.DefaultYear, copies)
		entries = append(entries, library.MergeItem{
			Code:   code,
			Title:  title,
			Year:   opts.DefaultYear,
			Copies: copies,
		})
		res.SuccessCount++
	}

	return staging.List(), entries, res
}
