package http

import (
	"time"

	"github.com/mdelrosario/textbook-catalog-backend/internal/domain"
	"github.com/mdelrosario/textbook-catalog-backend/internal/service/catalog"
)

// ---------------------------------------------------------------------------
// Requests
// ---------------------------------------------------------------------------

// listBooksQuery binds the listing query string. Repeatable parameters
// (status, learningArea, gradeLevel, publisher) bind into slices.
type listBooksQuery struct {
	Search        string   `form:"search"`
	Statuses      []string `form:"status"`
	LearningAreas []string `form:"learningArea"`
	GradeLevels   []int    `form:"gradeLevel"`
	Publishers    []string `form:"publisher"`
	HasRemarks    *bool    `form:"hasRemarks"`
	AdminView     bool     `form:"adminView"`
	SortBy        string   `form:"sortBy"`
	SortOrder     string   `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
	Page          int      `form:"page" binding:"omitempty,min=1"`
	Limit         int      `form:"limit" binding:"omitempty,min=1,max=100"`
	Cursor        *string  `form:"cursor"`
}

func (q *listBooksQuery) toFilter() domain.BookFilter {
	f := domain.BookFilter{
		LearningAreas: q.LearningAreas,
		GradeLevels:   q.GradeLevels,
		Publishers:    q.Publishers,
		HasRemarks:    q.HasRemarks,
		AdminView:     q.AdminView,
		SortBy:        q.SortBy,
		SortOrder:     q.SortOrder,
		Page:          q.Page,
		Limit:         q.Limit,
		Cursor:        q.Cursor,
	}
	if q.Search != "" {
		s := q.Search
		f.Search = &s
	}
	for _, s := range q.Statuses {
		f.Statuses = append(f.Statuses, domain.BookStatus(s))
	}
	return f
}

type createBookRequest struct {
	Code         string     `json:"code"`
	Title        string     `json:"title" binding:"required"`
	LearningArea string     `json:"learningArea" binding:"required"`
	GradeLevel   int        `json:"gradeLevel" binding:"required,min=1,max=12"`
	Publisher    string     `json:"publisher" binding:"required"`
	Status       string     `json:"status"`
	IsNew        bool       `json:"isNew"`
	TargetDate   *time.Time `json:"targetDate"`
}

func (r *createBookRequest) toInput() catalog.CreateBookInput {
	return catalog.CreateBookInput{
		Code:         r.Code,
		Title:        r.Title,
		LearningArea: r.LearningArea,
		GradeLevel:   r.GradeLevel,
		Publisher:    r.Publisher,
		Status:       r.Status,
		IsNew:        r.IsNew,
		TargetDate:   r.TargetDate,
	}
}

type updateBookRequest struct {
	Code         string     `json:"code" binding:"required"`
	Title        string     `json:"title" binding:"required"`
	LearningArea string     `json:"learningArea" binding:"required"`
	GradeLevel   int        `json:"gradeLevel" binding:"required,min=1,max=12"`
	Publisher    string     `json:"publisher" binding:"required"`
	Status       string     `json:"status" binding:"required"`
	IsNew        bool       `json:"isNew"`
	TargetDate   *time.Time `json:"targetDate"`
}

func (r *updateBookRequest) toInput() catalog.UpdateBookInput {
	return catalog.UpdateBookInput{
		Code:         r.Code,
		Title:        r.Title,
		LearningArea: r.LearningArea,
		GradeLevel:   r.GradeLevel,
		Publisher:    r.Publisher,
		Status:       r.Status,
		IsNew:        r.IsNew,
		TargetDate:   r.TargetDate,
	}
}

type transferRequest struct {
	FromParty string     `json:"fromParty" binding:"required"`
	ToParty   string     `json:"toParty" binding:"required"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

type remarkRequest struct {
	Text     string           `json:"text" binding:"required"`
	Transfer *transferRequest `json:"transfer"`
}

func (r *remarkRequest) toInput() catalog.RemarkInput {
	in := catalog.RemarkInput{Text: r.Text}
	if r.Transfer != nil {
		in.Transfer = &catalog.TransferInput{
			FromParty: r.Transfer.FromParty,
			ToParty:   r.Transfer.ToParty,
			StartDate: r.Transfer.StartDate,
			EndDate:   r.Transfer.EndDate,
		}
	}
	return in
}

// ---------------------------------------------------------------------------
// Responses
// ---------------------------------------------------------------------------

type transferResponse struct {
	FromParty    string     `json:"fromParty"`
	ToParty      string     `json:"toParty"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	Status       string     `json:"status"`
	TransferDays int        `json:"transferDays"`
	OverdueDays  int        `json:"overdueDays"`
}

type remarkResponse struct {
	ID        string            `json:"id"`
	BookCode  string            `json:"bookCode"`
	Text      string            `json:"text"`
	CreatedBy string            `json:"createdBy"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	Transfer  *transferResponse `json:"transfer,omitempty"`
}

type bookResponse struct {
	Code         string           `json:"code"`
	Title        string           `json:"title"`
	LearningArea string           `json:"learningArea"`
	GradeLevel   int              `json:"gradeLevel"`
	Publisher    string           `json:"publisher"`
	Status       string           `json:"status"`
	IsNew        bool             `json:"isNew"`
	TargetDate   *time.Time       `json:"targetDate,omitempty"`
	CreatedBy    string           `json:"createdBy"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
	Remarks      []remarkResponse `json:"remarks"`
	RemarksCount int              `json:"remarksCount"`
}

type listBooksResponse struct {
	Data       []bookResponse       `json:"data"`
	Pagination domain.Pagination    `json:"pagination"`
	Filters    domain.FilterOptions `json:"filters"`
}

func toRemarkResponse(rem domain.Remark) remarkResponse {
	out := remarkResponse{
		ID:        rem.ID.String(),
		BookCode:  rem.BookCode,
		Text:      rem.Text,
		CreatedBy: rem.CreatedBy,
		CreatedAt: rem.CreatedAt,
		UpdatedAt: rem.UpdatedAt,
	}
	if t := rem.Transfer; t != nil {
		out.Transfer = &transferResponse{
			FromParty:    t.FromParty,
			ToParty:      t.ToParty,
			StartDate:    t.StartDate,
			EndDate:      t.EndDate,
			Status:       t.Status.String(),
			TransferDays: t.TransferDays,
			OverdueDays:  t.OverdueDays,
		}
	}
	return out
}

func toBookResponse(b domain.Book) bookResponse {
	remarks := make([]remarkResponse, 0, len(b.Remarks))
	for _, rem := range b.Remarks {
		remarks = append(remarks, toRemarkResponse(rem))
	}
	return bookResponse{
		Code:         b.Code,
		Title:        b.Title,
		LearningArea: b.LearningArea,
		GradeLevel:   b.GradeLevel,
		Publisher:    b.Publisher,
		Status:       b.Status.String(),
		IsNew:        b.IsNew,
		TargetDate:   b.TargetDate,
		CreatedBy:    b.CreatedBy,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
		Remarks:      remarks,
		RemarksCount: b.RemarksCount,
	}
}

func toListResponse(res *catalog.ListResult) listBooksResponse {
	data := make([]bookResponse, 0, len(res.Books))
	for _, b := range res.Books {
		data = append(data, toBookResponse(b))
	}
	return listBooksResponse{
		Data:       data,
		Pagination: res.Pagination,
		Filters:    res.Filters,
	}
}
