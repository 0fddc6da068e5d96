package domain

import (
	"time"

	"github.com/leandrostclaradev/delicias-da-katie/pkg/errs"
)

// Promotion advertises one product for a date window. Pure CRUD data; no
// pricing rules derive from it.
type Promotion struct {
	ID          int64  `json:"id"`
	ProductID   *int64 `json:"catalogItemId,omitempty"`
	Description string `json:"description"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
}

func (p Promotion) Validate() error {
	for _, d := range []string{p.StartDate, p.EndDate} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(DateLayout, d); err != nil {
			return errs.Invalidf("invalid date %q", d)
		}
	}
	return nil
}
