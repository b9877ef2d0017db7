package domain

// BookStatus represents the evaluation status of a catalog record.
type BookStatus string

const (
	BookStatusForEvaluation     BookStatus = "For Evaluation"
	BookStatusOngoingEvaluation BookStatus = "Ongoing Evaluation"
	BookStatusApproved          BookStatus = "Approved"
	BookStatusDisapproved       BookStatus = "Disapproved"
	BookStatusWithdrawn         BookStatus = "Withdrawn"
)

func (s BookStatus) String() string { return string(s) }

func (s BookStatus) IsValid() bool {
	switch s {
	case BookStatusForEvaluation, BookStatusOngoingEvaluation,
		BookStatusApproved, BookStatusDisapproved, BookStatusWithdrawn:
		return true
	}
	return false
}

// UserRole represents the authorization level of a user.
type UserRole string

const (
	UserRoleAdministrator UserRole = "Administrator"
	UserRoleEvaluator     UserRole = "Evaluator"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdministrator, UserRoleEvaluator:
		return true
	}
	return false
}

// TransferStatus is the derived state of a remark's transfer metadata.
type TransferStatus string

const (
	TransferStatusInTransit TransferStatus = "In Transit"
	TransferStatusCompleted TransferStatus = "Completed"
	TransferStatusOverdue   TransferStatus = "Overdue"
)

func (s TransferStatus) String() string { return string(s) }
