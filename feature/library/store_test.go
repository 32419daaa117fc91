package library_test

import (
	"testing"

	"catalog-manager/feature/library"
	"catalog-manager/feature/library/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreUpsertMerged(t *testing.T) {
	t.Run("New Title", func(t *testing.T) {
		s := library.NewStore()
		rec := s.UpsertMerged("A0001", "Gruffalo", 1999, 1)

		assert.Equal(t, "A0001", rec.ID)
		assert.Equal(t, []string{"A0001"}, rec.BookIDs)
		assert.Equal(t, models.GenrePictureBook, rec.Genre)
		assert.Equal(t, 1, rec.Copies)
		assert.Equal(t, 1, rec.AvailableCopies)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("Same Title Merges Copies", func(t *testing.T) {
		s := library.NewStore()
		s.UpsertMerged("A0001", "Gruffalo", 1999, 1)
		rec := s.UpsertMerged("A0002", "Gruffalo", 1999, 1)

		assert.Equal(t, "A0001", rec.ID)
		assert.Equal(t, []string{"A0001", "A0002"}, rec.BookIDs)
		assert.Equal(t, 2, rec.Copies)
		assert.Equal(t, 2, rec.AvailableCopies)
		assert.Equal(t, 1, s.Len())

		// Both codes resolve to the merged record.
		byMerged, ok := s.FindByCode("A0002")
		require.True(t, ok)
		assert.Equal(t, rec, byMerged)
	})

	t.Run("Same Code Same Title Is NoOp", func(t *testing.T) {
		s := library.NewStore()
		s.UpsertMerged("A0001", "Gruffalo", 1999, 1)
		rec := s.UpsertMerged("A0001", "Gruffalo", 1999, 1)

		assert.Equal(t, 1, rec.Copies)
		assert.Equal(t, []string{"A0001"}, rec.BookIDs)
	})
}

func TestStoreInsertDistinct(t *testing.T) {
	t.Run("Duplicate Code Rejected", func(t *testing.T) {
		s := library.NewStore()
		require.NoError(t, s.InsertDistinct(models.BookRecord{ID: "A0001", Title: "Gruffalo", Copies: 1, AvailableCopies: 1}))

		err := s.InsertDistinct(models.BookRecord{ID: "A0001", Title: "Another", Copies: 1, AvailableCopies: 1})
		assert.ErrorIs(t, err, library.ErrDuplicateCode)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("Collision With Merged Code Rejected", func(t *testing.T) {
		s := library.NewStore()
		s.UpsertMerged("A0001", "Gruffalo", 1999, 1)
		s.UpsertMerged("A0002", "Gruffalo", 1999, 1)

		err := s.InsertDistinct(models.BookRecord{ID: "A0002", Title: "Another", Copies: 1, AvailableCopies: 1})
		assert.ErrorIs(t, err, library.ErrDuplicateCode)
	})

	t.Run("Normalizes Code", func(t *testing.T) {
		s := library.NewStore()
		require.NoError(t, s.InsertDistinct(models.BookRecord{ID: " a0001 ", Title: "Gruffalo", Copies: 1, AvailableCopies: 1}))

		rec, ok := s.FindByCode("A0001")
		require.True(t, ok)
		assert.Equal(t, "A0001", rec.ID)
	})
}

func TestStoreAdjustAvailability(t *testing.T) {
	s := library.NewStore()
	s.UpsertMerged("A0001", "Gruffalo", 1999, 2)

	t.Run("Down And Up", func(t *testing.T) {
		require.NoError(t, s.AdjustAvailability("A0001", -1))
		require.NoError(t, s.AdjustAvailability("A0001", -1))
		require.NoError(t, s.AdjustAvailability("A0001", +1))

		rec, _ := s.FindByCode("A0001")
		assert.Equal(t, 1, rec.AvailableCopies)
	})

	t.Run("Below Zero Fails Without Mutating", func(t *testing.T) {
		err := s.AdjustAvailability("A0001", -2)
		assert.ErrorIs(t, err, library.ErrInvariantViolation)

		rec, _ := s.FindByCode("A0001")
		assert.Equal(t, 1, rec.AvailableCopies)
	})

	t.Run("Above Copies Fails", func(t *testing.T) {
		err := s.AdjustAvailability("A0001", +2)
		assert.ErrorIs(t, err, library.ErrInvariantViolation)
	})

	t.Run("Unknown Code", func(t *testing.T) {
		err := s.AdjustAvailability("C9999", -1)
		assert.ErrorIs(t, err, library.ErrNotFound)
	})
}

func TestStoreRemove(t *testing.T) {
	s := library.NewStore()
	s.UpsertMerged("A0001", "Gruffalo", 1999, 1)
	s.UpsertMerged("A0002", "Gruffalo", 1999, 1)
	s.UpsertMerged("B0001", "Holes", 1998, 1)

	require.NoError(t, s.Remove("A0002"))

	// Removing by a merged code unindexes every code of the record.
	_, ok := s.FindByCode("A0001")
	assert.False(t, ok)
	_, ok = s.FindByCode("A0002")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())

	assert.ErrorIs(t, s.Remove("A0001"), library.ErrNotFound)
}

func TestStoreReplaceAll(t *testing.T) {
	s := library.NewStore()
	s.UpsertMerged("A0001", "Gruffalo", 1999, 1)

	s.ReplaceAll([]models.BookRecord{
		{ID: "B0001", BookIDs: []string{"B0001", "B0002"}, Title: "Holes", Copies: 2, AvailableCopies: 2},
		{ID: "C0001", Title: "Matilda", Copies: 1, AvailableCopies: 1},
	})

	assert.Equal(t, 2, s.Len())
	_, ok := s.FindByCode("A0001")
	assert.False(t, ok)
	_, ok = s.FindByCode("B0002")
	assert.True(t, ok)

	// Missing BookIDs defaults to the record's own ID.
	rec, ok := s.FindByCode("C0001")
	require.True(t, ok)
	assert.Equal(t, []string{"C0001"}, rec.BookIDs)

	assert.Equal(t, []string{"B0001", "B0002", "C0001"}, s.SortedCodes())
}

func TestStoreListReturnsCopies(t *testing.T) {
	s := library.NewStore()
	s.UpsertMerged("A0001", "Gruffalo", 1999, 1)

	list := s.List()
	list[0].AvailableCopies = 99

	rec, _ := s.FindByCode("A0001")
	assert.Equal(t, 1, rec.AvailableCopies)
}
