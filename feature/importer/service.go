package importer

import (
	"io"

	"catalog-manager/feature/library"

	"go.uber.org/zap"
)

// Service applies import batches to the live library state.
type Service struct {
	state  *library.State
	logger *zap.Logger
}

// NewService creates a new importer service.
func NewService(state *library.State, logger *zap.Logger) *Service {
	return &Service{state: state, logger: logger}
}

// ImportCSV runs the destructive CSV path: the reconciled records replace the
// whole catalog.
func (s *Service) ImportCSV(r io.Reader) (Result, error) {
	rows, err := ParseCSV(r)
	if err != nil {
		return Result{}, err
	}

	records, _, res := Reconcile(rows, CSVOptions(s.state.Settings()))
	s.state.ReplaceBooks(records, library.OriginLocal)

	s.logger.Info("CSV import applied",
		zap.Int("records", len(records)),
		zap.Int("success", res.SuccessCount),
		zap.Int("errors", res.ErrorCount))
	return res, nil
}

// MergeCSV runs the additive path over a fixed-layout CSV export: the same
// banner skipping as ImportCSV, but accepted entries merge into the existing
// catalog and rows colliding with persisted codes are rejected.
func (s *Service) MergeCSV(r io.Reader) (Result, error) {
	rows, err := ParseCSV(r)
	if err != nil {
		return Result{}, err
	}

	opts := CSVOptions(s.state.Settings())
	opts.ExistingCodes = s.state.Codes()
	_, entries, res := Reconcile(rows, opts)
	s.state.MergeBooks(entries, library.OriginLocal)

	s.logger.Info("CSV merge applied",
		zap.Int("entries", len(entries)),
		zap.Int("success", res.SuccessCount),
		zap.Int("errors", res.ErrorCount))
	return res, nil
}

// ImportRows runs the additive tabular path: accepted entries merge into the
// existing catalog, and rows colliding with persisted codes are rejected.
func (s *Service) ImportRows(rows []Row) Result {
	_, entries, res := Reconcile(rows, TabularOptions(s.state.Settings(), s.state.Codes()))
	s.state.MergeBooks(entries, library.OriginLocal)

	s.logger.Info("tabular import applied",
		zap.Int("entries", len(entries)),
		zap.Int("success", res.SuccessCount),
		zap.Int("errors", res.ErrorCount))
	return res
}
