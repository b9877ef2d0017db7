package domain

import (
	"time"

	"github.com/google/uuid"
)

// Book is a catalog record tracking the evaluation status of a textbook.
// Code is globally unique; CreatedBy is the sole denormalized ownership
// link used by the access policy.
type Book struct {
	ID           int64
	Code         string
	Title        string
	LearningArea string
	GradeLevel   int
	Publisher    string
	Status       BookStatus
	IsNew        bool
	TargetDate   *time.Time
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Remarks and RemarksCount are derived at query time, never stored.
	Remarks      []Remark
	RemarksCount int
}

// Remark is a timestamped history entry attached to exactly one book.
// Deleting a book cascades to its remarks; renaming a book code cascades
// the rename to the owning-code field of all its remarks.
type Remark struct {
	ID        uuid.UUID
	BookCode  string
	Text      string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time

	Transfer *Transfer
}

// Transfer holds optional transfer metadata on a remark. Status,
// TransferDays and OverdueDays are derived from the date range when the
// remark is created or updated; they are stored for listing but recomputed
// on every write.
type Transfer struct {
	FromParty    string
	ToParty      string
	StartDate    *time.Time
	EndDate      *time.Time
	Status       TransferStatus
	TransferDays int
	OverdueDays  int
}

// Derive recomputes the derived transfer fields against now.
// Elapsed days run from StartDate to EndDate when set, otherwise to now;
// OverdueDays counts elapsed days beyond windowDays.
func (t *Transfer) Derive(now time.Time, windowDays int) {
	if t.StartDate == nil {
		t.Status = TransferStatusInTransit
		t.TransferDays = 0
		t.OverdueDays = 0
		return
	}

	end := now
	if t.EndDate != nil {
		end = *t.EndDate
	}

	days := int(end.Sub(*t.StartDate).Hours() / 24)
	if days < 0 {
		days = 0
	}
	t.TransferDays = days

	t.OverdueDays = 0
	if windowDays > 0 && days > windowDays {
		t.OverdueDays = days - windowDays
	}

	switch {
	case t.EndDate != nil:
		t.Status = TransferStatusCompleted
	case t.OverdueDays > 0:
		t.Status = TransferStatusOverdue
	default:
		t.Status = TransferStatusInTransit
	}
}
