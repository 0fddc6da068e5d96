package domain

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/leandrostclaradev/delicias-da-katie/pkg/errs"
)

// Direction marks whether money entered or left the till.
type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToUpper(strings.TrimSpace(s))) {
	case DirectionIn:
		return DirectionIn, nil
	case DirectionOut:
		return DirectionOut, nil
	}
	return "", errs.Invalidf("unknown direction %q", s)
}

// Entry is one cash-flow ledger row. TotalAmount is stored as supplied, not
// derived from unit price and quantity.
type Entry struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	Direction   Direction       `json:"direction"`
}

func (e *Entry) Validate() error {
	d, err := ParseDirection(string(e.Direction))
	if err != nil {
		return err
	}
	e.Direction = d
	return nil
}
