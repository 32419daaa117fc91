package library

import (
	"time"

	"catalog-manager/feature/library/models"

	"go.uber.org/zap"
)

// Service exposes library operations to the HTTP handler and the CLI. It is
// a thin layer over State that owns timestamping and operational logging.
type Service struct {
	state  *State
	logger *zap.Logger
}

// NewService creates a new library service.
func NewService(state *State, logger *zap.Logger) *Service {
	return &Service{state: state, logger: logger}
}

// State exposes the underlying application state for wiring (subscriptions,
// persistence).
func (s *Service) State() *State {
	return s.state
}

// ListBooks returns the catalog.
func (s *Service) ListBooks() []models.BookRecord {
	return s.state.Books()
}

// AddBook inserts a distinct title, generating a code from prefix when code
// is empty.
func (s *Service) AddBook(code, prefix, title string, year, copies int) (models.BookRecord, error) {
	rec, err := s.state.AddBook(code, prefix, title, year, copies)
	if err != nil {
		return models.BookRecord{}, err
	}
	s.logger.Info("book added", zap.String("code", rec.ID), zap.String("title", rec.Title))
	return rec, nil
}

// RemoveBook deletes a title after the open-loan check.
func (s *Service) RemoveBook(code string) error {
	if err := s.state.RemoveBook(code); err != nil {
		return err
	}
	s.logger.Info("book removed", zap.String("code", NormalizeCode(code)))
	return nil
}

// Borrow lends one copy to userID.
func (s *Service) Borrow(code, userID string) (models.LoanRecord, error) {
	loan, err := s.state.Borrow(code, userID, time.Now())
	if err != nil {
		return models.LoanRecord{}, err
	}
	s.logger.Info("book borrowed",
		zap.String("code", loan.BookID),
		zap.String("user", loan.UserID),
		zap.Time("due", loan.DueDate))
	return loan, nil
}

// Return closes a loan.
func (s *Service) Return(loanID string) (models.LoanRecord, error) {
	loan, err := s.state.Return(loanID, time.Now())
	if err != nil {
		return models.LoanRecord{}, err
	}
	s.logger.Info("book returned", zap.String("loan", loan.ID), zap.String("code", loan.BookID))
	return loan, nil
}

// Loans returns the listing projection for a user and role.
func (s *Service) Loans(userID, role string) []models.LoanRecord {
	return s.state.LoansVisibleTo(userID, role)
}

// Users returns the user registry.
func (s *Service) Users() []models.User {
	return s.state.Users()
}

// AddUser registers or updates a user. Unknown roles become member.
func (s *Service) AddUser(u models.User) models.User {
	switch u.Role {
	case models.RoleStaff, models.RoleMember, models.RoleGuest:
	default:
		u.Role = models.RoleMember
	}
	s.state.AddUser(u)
	return u
}

// Settings returns the current settings.
func (s *Service) Settings() models.Settings {
	return s.state.Settings()
}

// UpdateSettings replaces the settings.
func (s *Service) UpdateSettings(settings models.Settings) {
	s.state.UpdateSettings(settings, OriginLocal)
	s.logger.Info("settings updated", zap.Int("loan_days", settings.LoanDays))
}
