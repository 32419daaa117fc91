package models

import "time"

// Genre is the book category encoded in the leading letter of a book code.
type Genre string

const (
	GenrePictureBook Genre = "picture book"
	GenreBridgeBook  Genre = "bridge book"
	GenreTextBook    Genre = "text book"
	GenreUnknown     Genre = "unknown"
)

// BookRecord is one title in the catalog. Physical copies sharing a title are
// merged into a single record; every merged copy keeps its own code in
// BookIDs, and ID is the first code encountered for the title.
//
// Invariant: 0 <= AvailableCopies <= Copies.
type BookRecord struct {
	ID              string   `json:"id"`
	BookIDs         []string `json:"bookIds"`
	Title           string   `json:"title"`
	Genre           Genre    `json:"genre"`
	Year            int      `json:"year"`
	Copies          int      `json:"copies"`
	AvailableCopies int      `json:"availableCopies"`
}

// Clone returns a deep copy so callers can hand records across the state
// boundary without aliasing the live catalog.
func (b BookRecord) Clone() BookRecord {
	out := b
	out.BookIDs = append([]string(nil), b.BookIDs...)
	return out
}

// LoanRecord is one borrow event. It is created by a successful borrow,
// mutated exactly once by a return (setting ReturnedAt), and never deleted.
type LoanRecord struct {
	ID         string     `json:"id"`
	BookID     string     `json:"bookId"`
	BookTitle  string     `json:"bookTitle"`
	UserID     string     `json:"userId"`
	BorrowDate time.Time  `json:"borrowDate"`
	DueDate    time.Time  `json:"dueDate"`
	ReturnedAt *time.Time `json:"returnedAt"`
}

// Open reports whether the loan has not been returned yet.
func (l LoanRecord) Open() bool {
	return l.ReturnedAt == nil
}

// User roles. Staff see every open loan; guests may be barred from borrowing
// via the GuestBorrow setting.
const (
	RoleStaff  = "staff"
	RoleMember = "member"
	RoleGuest  = "guest"
)

// User is a registered borrower. There is no authentication; any user may
// claim a name.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Settings holds the runtime-adjustable library settings. They are persisted
// under the "settings" key and seeded from configuration defaults.
type Settings struct {
	// LoanDays is the loan period length in days.
	LoanDays int `json:"loanDays"`
	// GuestBorrow allows the guest role to borrow when true.
	GuestBorrow bool `json:"guestBorrow"`
	// DefaultCopies is the per-row copy count assumed by imports.
	DefaultCopies int `json:"defaultCopies"`
	// DefaultYear is the publication year assumed by imports.
	DefaultYear int `json:"defaultYear"`
	// AutoUpdateInterval is the automatic pull period in milliseconds.
	// Zero disables polling.
	AutoUpdateInterval int `json:"autoUpdateInterval"`
	// RemoteURL is the sync endpoint. Empty disables sync entirely.
	RemoteURL string `json:"remoteUrl"`
}
