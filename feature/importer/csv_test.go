package importer_test

import (
	"strings"
	"testing"

	"catalog-manager/feature/importer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	t.Run("Keeps Blank Lines As Empty Rows", func(t *testing.T) {
		input := "Library Export\n" +
			"\n" +
			"Generated 2026-03-01\n" +
			"code,title\n" +
			"A0001,Gruffalo\n"

		rows, err := importer.ParseCSV(strings.NewReader(input))
		require.NoError(t, err)

		// One row per physical line, so a fixed header count lands on
		// the first data row even when the banner has blank lines.
		require.Len(t, rows, 5)
		assert.Empty(t, rows[1])
		assert.Equal(t, importer.Row{"A0001", "Gruffalo"}, rows[4])
	})

	t.Run("Varying Cell Counts", func(t *testing.T) {
		rows, err := importer.ParseCSV(strings.NewReader("A0001,Gruffalo,3\nB0001\n"))
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, importer.Row{"A0001", "Gruffalo", "3"}, rows[0])
		assert.Equal(t, importer.Row{"B0001"}, rows[1])
	})

	t.Run("Unterminated Quote", func(t *testing.T) {
		_, err := importer.ParseCSV(strings.NewReader("a,\"unterminated\n"))
		assert.ErrorContains(t, err, "line 1")
	})
}
