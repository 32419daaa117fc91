package library

import "catalog-manager/feature/library/models"

// Config holds the configuration defaults for library settings. Persisted
// settings override these once loaded.
type Config struct {
	// LoanDays is the default loan period length in days.
	LoanDays int `mapstructure:"loan_days" default:"14"`
	// GuestBorrow allows the guest role to borrow.
	GuestBorrow bool `mapstructure:"guest_borrow" default:"false"`
	// DefaultCopies is the per-row copy count assumed by imports.
	DefaultCopies int `mapstructure:"default_copies" default:"1"`
	// DefaultYear is the publication year assumed by imports when the source
	// carries none.
	DefaultYear int `mapstructure:"default_year" default:"0"`
}

// Settings converts the configuration defaults into an initial settings
// value. Sync-related settings are seeded separately by the sync feature.
func (c Config) Settings() models.Settings {
	return models.Settings{
		LoanDays:      c.LoanDays,
		GuestBorrow:   c.GuestBorrow,
		DefaultCopies: c.DefaultCopies,
		DefaultYear:   c.DefaultYear,
	}
}
