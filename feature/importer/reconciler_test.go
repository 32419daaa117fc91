package importer_test

import (
	"testing"

	"catalog-manager/feature/importer"
	"catalog-manager/feature/library/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csvOpts() importer.Options {
	return importer.CSVOptions(models.Settings{DefaultYear: 2020, DefaultCopies: 1})
}

// header pads a batch with the fixed CSV banner rows.
func withCSVHeader(rows ...importer.Row) []importer.Row {
	out := []importer.Row{
		{"Library Export"},
		{""},
		{"Generated 2026-03-01"},
		{"code", "title"},
	}
	return append(out, rows...)
}

func TestReconcileMergesSameTitle(t *testing.T) {
	rows := withCSVHeader(
		importer.Row{"A0001", "Gruffalo"},
		importer.Row{"A0002", "Gruffalo"},
		importer.Row{"B0001", "Holes"},
	)

	records, entries, res := importer.Reconcile(rows, csvOpts())

	assert.Equal(t, 3, res.SuccessCount)
	assert.Equal(t, 0, res.ErrorCount)
	require.Len(t, records, 2)
	require.Len(t, entries, 3)

	assert.Equal(t, "A0001", records[0].ID)
	assert.Equal(t, []string{"A0001", "A0002"}, records[0].BookIDs)
	assert.Equal(t, 2, records[0].Copies)
	assert.Equal(t, 2, records[0].AvailableCopies)
	assert.Equal(t, models.GenrePictureBook, records[0].Genre)
	assert.Equal(t, 2020, records[0].Year)

	assert.Equal(t, "B0001", records[1].ID)
	assert.Equal(t, 1, records[1].Copies)
}

func TestReconcileRowRules(t *testing.T) {
	t.Run("Header And Blank Rows Skipped", func(t *testing.T) {
		rows := withCSVHeader(
			importer.Row{},
			importer.Row{"   "},
			importer.Row{"A0001", "Gruffalo"},
		)
		records, _, res := importer.Reconcile(rows, csvOpts())
		assert.Equal(t, 1, res.SuccessCount)
		assert.Equal(t, 0, res.ErrorCount)
		assert.Len(t, records, 1)
	})

	t.Run("Invalid Code Rejected", func(t *testing.T) {
		rows := withCSVHeader(importer.Row{"X123", "Nope"})
		records, _, res := importer.Reconcile(rows, csvOpts())
		assert.Empty(t, records)
		assert.Equal(t, 1, res.ErrorCount)
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0], "row 5")
		assert.Contains(t, res.Errors[0], "invalid code")
	})

	t.Run("Empty Title Skipped Silently", func(t *testing.T) {
		rows := withCSVHeader(
			importer.Row{"A0001"},
			importer.Row{"A0002", "  "},
		)
		records, _, res := importer.Reconcile(rows, csvOpts())
		assert.Empty(t, records)
		assert.Equal(t, 0, res.SuccessCount)
		assert.Equal(t, 0, res.ErrorCount)
	})

	t.Run("Duplicate Code Same Title Rejected", func(t *testing.T) {
		rows := withCSVHeader(
			importer.Row{"A0001", "Gruffalo"},
			importer.Row{"A0001", "Gruffalo"},
		)
		records, _, res := importer.Reconcile(rows, csvOpts())
		require.Len(t, records, 1)
		assert.Equal(t, 1, records[0].Copies)
		assert.Equal(t, 1, res.SuccessCount)
		assert.Equal(t, 1, res.ErrorCount)
	})

	t.Run("Duplicate Code Across Titles Rejected", func(t *testing.T) {
		rows := withCSVHeader(
			importer.Row{"A0001", "Gruffalo"},
			importer.Row{"A0001", "Holes"},
		)
		records, _, res := importer.Reconcile(rows, csvOpts())
		require.Len(t, records, 1)
		assert.Equal(t, "Gruffalo", records[0].Title)
		assert.Equal(t, 1, res.ErrorCount)
		assert.Contains(t, res.Errors[0], `already used by "Gruffalo"`)
	})

	t.Run("Codes Are Normalized", func(t *testing.T) {
		rows := withCSVHeader(importer.Row{" a0001 ", "Gruffalo"})
		records, _, res := importer.Reconcile(rows, csvOpts())
		require.Len(t, records, 1)
		assert.Equal(t, "A0001", records[0].ID)
		assert.Equal(t, 1, res.SuccessCount)
	})
}

func TestReconcileTabular(t *testing.T) {
	settings := models.Settings{DefaultYear: 2020, DefaultCopies: 1}

	t.Run("Copies Column", func(t *testing.T) {
		rows := []importer.Row{
			{"code", "title", "copies"},
			{"A0001", "Gruffalo", "3"},
			{"B0001", "Holes", ""},
			{"C0001", "Matilda"},
		}
		records, entries, res := importer.Reconcile(rows, importer.TabularOptions(settings, nil))
		assert.Equal(t, 3, res.SuccessCount)
		require.Len(t, records, 3)
		assert.Equal(t, 3, records[0].Copies)
		assert.Equal(t, 1, records[1].Copies)
		assert.Equal(t, 1, records[2].Copies)
		assert.Equal(t, 3, entries[0].Copies)
	})

	t.Run("Existing Code Collision Rejected", func(t *testing.T) {
		existing := map[string]struct{}{"A0001": {}}
		rows := []importer.Row{
			{"code", "title"},
			{"A0001", "Gruffalo"},
			{"A0002", "Holes"},
		}
		records, entries, res := importer.Reconcile(rows, importer.TabularOptions(settings, existing))
		assert.Equal(t, 1, res.SuccessCount)
		assert.Equal(t, 1, res.ErrorCount)
		assert.Contains(t, res.Errors[0], "already in catalog")
		require.Len(t, records, 1)
		assert.Equal(t, "A0002", records[0].ID)
		require.Len(t, entries, 1)
	})
}
