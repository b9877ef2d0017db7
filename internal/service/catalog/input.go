package catalog

import (
	"strings"
	"time"

	"github.com/mdelrosario/textbook-catalog-backend/internal/domain"
)

const (
	maxTitleLen  = 500
	maxRemarkLen = 5000
	minGrade     = 1
	maxGrade     = 12
)

// CreateBookInput holds the parameters for creating a catalog record.
// Code is optional; a unique one is generated when empty.
type CreateBookInput struct {
	Code         string
	Title        string
	LearningArea string
	GradeLevel   int
	Publisher    string
	Status       string
	IsNew        bool
	TargetDate   *time.Time
}

// Validate checks all fields and collects all errors.
func (i *CreateBookInput) Validate() error {
	var errs []domain.FieldError

	errs = append(errs, validateBookFields(i.Title, i.LearningArea, i.GradeLevel, i.Publisher)...)

	if i.Status != "" && !domain.BookStatus(i.Status).IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateBookInput holds the full replacement state for a catalog record.
// Code is the record's new code; supplying a different one renames the
// record and cascades to its remarks.
type UpdateBookInput struct {
	Code         string
	Title        string
	LearningArea string
	GradeLevel   int
	Publisher    string
	Status       string
	IsNew        bool
	TargetDate   *time.Time
}

// Validate checks all fields and collects all errors.
func (i *UpdateBookInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Code) == "" {
		errs = append(errs, domain.FieldError{Field: "code", Message: "required"})
	}
	errs = append(errs, validateBookFields(i.Title, i.LearningArea, i.GradeLevel, i.Publisher)...)

	if !domain.BookStatus(i.Status).IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateBookFields(title, area string, grade int, publisher string) []domain.FieldError {
	var errs []domain.FieldError

	if strings.TrimSpace(title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if len(title) > maxTitleLen {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long (max 500)"})
	}
	if strings.TrimSpace(area) == "" {
		errs = append(errs, domain.FieldError{Field: "learning_area", Message: "required"})
	}
	if grade < minGrade || grade > maxGrade {
		errs = append(errs, domain.FieldError{Field: "grade_level", Message: "must be between 1 and 12"})
	}
	if strings.TrimSpace(publisher) == "" {
		errs = append(errs, domain.FieldError{Field: "publisher", Message: "required"})
	}

	return errs
}

// TransferInput holds optional transfer metadata on a remark. Status and
// day counters are derived server-side, never accepted from the caller.
type TransferInput struct {
	FromParty string
	ToParty   string
	StartDate *time.Time
	EndDate   *time.Time
}

// RemarkInput holds the parameters for creating or updating a remark.
type RemarkInput struct {
	Text     string
	Transfer *TransferInput
}

// Validate checks all fields and collects all errors.
func (i *RemarkInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Text) == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	}
	if len(i.Text) > maxRemarkLen {
		errs = append(errs, domain.FieldError{Field: "text", Message: "too long (max 5000)"})
	}

	if t := i.Transfer; t != nil {
		if strings.TrimSpace(t.FromParty) == "" {
			errs = append(errs, domain.FieldError{Field: "transfer.from_party", Message: "required"})
		}
		if strings.TrimSpace(t.ToParty) == "" {
			errs = append(errs, domain.FieldError{Field: "transfer.to_party", Message: "required"})
		}
		if t.StartDate != nil && t.EndDate != nil && t.EndDate.Before(*t.StartDate) {
			errs = append(errs, domain.FieldError{Field: "transfer.end_date", Message: "before start date"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (t *TransferInput) toDomain() *domain.Transfer {
	if t == nil {
		return nil
	}
	return &domain.Transfer{
		FromParty: strings.TrimSpace(t.FromParty),
		ToParty:   strings.TrimSpace(t.ToParty),
		StartDate: t.StartDate,
		EndDate:   t.EndDate,
	}
}
