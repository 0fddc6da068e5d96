package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/leandrostclaradev/delicias-da-katie/pkg/errs"
)

const DateLayout = "2006-01-02"

// Product is a sellable catalog item. ExpirationDate is an optional calendar
// date kept in its wire form ("2006-01-02"); nothing computes on it.
type Product struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	ExpirationDate string          `json:"expirationDate,omitempty"`
}

func (p Product) Validate() error {
	if p.Name == "" {
		return errs.Invalidf("product name is required")
	}
	if p.UnitPrice.IsNegative() {
		return errs.Invalidf("product unit price must not be negative")
	}
	if p.ExpirationDate != "" {
		if _, err := time.Parse(DateLayout, p.ExpirationDate); err != nil {
			return errs.Invalidf("invalid expiration date %q", p.ExpirationDate)
		}
	}
	return nil
}
