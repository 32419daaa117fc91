package library

import (
	"fmt"
	"sort"

	"catalog-manager/feature/library/models"
)

// Store is the in-memory catalog of book records. Records are kept in
// insertion order for stable listings, with secondary indices by code and by
// title. The store is not safe for concurrent use on its own; the owning
// State serializes all access.
type Store struct {
	records []*models.BookRecord
	byCode  map[string]*models.BookRecord
	byTitle map[string]*models.BookRecord
}

// NewStore creates an empty catalog store.
func NewStore() *Store {
	return &Store{
		byCode:  make(map[string]*models.BookRecord),
		byTitle: make(map[string]*models.BookRecord),
	}
}

// UpsertMerged merges one physical copy into the catalog. If a record with
// the same title already exists, the code joins its BookIDs and the copy
// counts grow by copies; merging a code that is already present under the
// title is a no-op. Otherwise a fresh record is created with the code as its
// ID.
func (s *Store) UpsertMerged(code, title string, year, copies int) *models.BookRecord {
	code = NormalizeCode(code)

	if rec, ok := s.byTitle[title]; ok {
		for _, existing := range rec.BookIDs {
			if existing == code {
				return rec
			}
		}
		rec.BookIDs = append(rec.BookIDs, code)
		rec.Copies += copies
		rec.AvailableCopies += copies
		s.byCode[code] = rec
		return rec
	}

	rec := &models.BookRecord{
		ID:              code,
		BookIDs:         []string{code},
		Title:           title,
		Genre:           GenreOf(code),
		Year:            year,
		Copies:          copies,
		AvailableCopies: copies,
	}
	s.records = append(s.records, rec)
	s.byCode[code] = rec
	s.byTitle[title] = rec
	return rec
}

// InsertDistinct adds a record as its own title entry. It fails with
// ErrDuplicateCode if the record's ID or any of its BookIDs collides with a
// code already in the store. No partial mutation happens on failure.
func (s *Store) InsertDistinct(rec models.BookRecord) error {
	rec.ID = NormalizeCode(rec.ID)
	if len(rec.BookIDs) == 0 {
		rec.BookIDs = []string{rec.ID}
	}
	for i, code := range rec.BookIDs {
		rec.BookIDs[i] = NormalizeCode(code)
	}

	for _, code := range rec.BookIDs {
		if _, exists := s.byCode[code]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateCode, code)
		}
	}

	stored := rec.Clone()
	s.records = append(s.records, &stored)
	for _, code := range stored.BookIDs {
		s.byCode[code] = &stored
	}
	s.byTitle[stored.Title] = &stored
	return nil
}

// FindByCode looks up the record owning code, whether as its ID or as a
// merged entry in BookIDs. The second result is false when absent.
func (s *Store) FindByCode(code string) (*models.BookRecord, bool) {
	rec, ok := s.byCode[NormalizeCode(code)]
	return rec, ok
}

// AdjustAvailability applies a delta to a record's available-copy count.
// Clamping is the caller's responsibility; the store only asserts the
// post-condition 0 <= AvailableCopies <= Copies and fails with
// ErrInvariantViolation without mutating when it would not hold.
func (s *Store) AdjustAvailability(code string, delta int) error {
	rec, ok := s.byCode[NormalizeCode(code)]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, code)
	}
	next := rec.AvailableCopies + delta
	if next < 0 || next > rec.Copies {
		return fmt.Errorf("%w: %s would have %d of %d available", ErrInvariantViolation, rec.ID, next, rec.Copies)
	}
	rec.AvailableCopies = next
	return nil
}

// Remove deletes the record owning code, unindexing every merged code. The
// open-loan check is a cross-component concern performed by the caller; the
// store itself only deletes.
func (s *Store) Remove(code string) error {
	rec, ok := s.byCode[NormalizeCode(code)]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, code)
	}
	for i, r := range s.records {
		if r == rec {
			s.records = append(s.records[:i], s.records[i+1:]...)
			break
		}
	}
	for _, c := range rec.BookIDs {
		delete(s.byCode, c)
	}
	if s.byTitle[rec.Title] == rec {
		delete(s.byTitle, rec.Title)
	}
	return nil
}

// ReplaceAll discards the whole catalog and installs records in its place.
// Used when an import batch or a remote pull is authoritative.
func (s *Store) ReplaceAll(records []models.BookRecord) {
	s.records = s.records[:0]
	s.byCode = make(map[string]*models.BookRecord, len(records))
	s.byTitle = make(map[string]*models.BookRecord, len(records))
	for _, rec := range records {
		stored := rec.Clone()
		stored.ID = NormalizeCode(stored.ID)
		if len(stored.BookIDs) == 0 {
			stored.BookIDs = []string{stored.ID}
		}
		for i, code := range stored.BookIDs {
			stored.BookIDs[i] = NormalizeCode(code)
		}
		s.records = append(s.records, &stored)
		for _, code := range stored.BookIDs {
			s.byCode[code] = &stored
		}
		s.byTitle[stored.Title] = &stored
	}
}

// List returns a copy of every record in insertion order.
func (s *Store) List() []models.BookRecord {
	out := make([]models.BookRecord, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec.Clone())
	}
	return out
}

// Len returns the number of title records.
func (s *Store) Len() int {
	return len(s.records)
}

// Codes returns the set of every code in use across IDs and merged BookIDs.
func (s *Store) Codes() map[string]struct{} {
	out := make(map[string]struct{}, len(s.byCode))
	for code := range s.byCode {
		out[code] = struct{}{}
	}
	return out
}

// SortedCodes returns every code in use in lexical order, for deterministic
// reporting.
func (s *Store) SortedCodes() []string {
	out := make([]string, 0, len(s.byCode))
	for code := range s.byCode {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}
