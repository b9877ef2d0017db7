package catalog

import (
	"github.com/mdelrosario/textbook-catalog-backend/internal/domain"
)

// ListResult is the complete listing payload: the page of records with
// remarks attached, pagination metadata, and the filter option sets. It is
// what the result cache stores, so every field must survive a JSON round
// trip.
type ListResult struct {
	Books      []domain.Book        `json:"books"`
	Pagination domain.Pagination    `json:"pagination"`
	Filters    domain.FilterOptions `json:"filters"`
}
