package domain

import (
	"strings"

	"github.com/leandrostclaradev/delicias-da-katie/pkg/errs"
)

// Status is the lifecycle shared by sales and commissions. Transitions are
// deliberately unconstrained: any status may replace any other, including
// moving out of DELIVERED or CANCELLED. Creation always starts at PENDING.
type Status string

const (
	StatusPending       Status = "PENDING"
	StatusInPreparation Status = "IN_PREPARATION"
	StatusReady         Status = "READY"
	StatusDelivered     Status = "DELIVERED"
	StatusCancelled     Status = "CANCELLED"
)

// ParseStatus accepts any of the five status names case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusInPreparation:
		return StatusInPreparation, nil
	case StatusReady:
		return StatusReady, nil
	case StatusDelivered:
		return StatusDelivered, nil
	case StatusCancelled:
		return StatusCancelled, nil
	}
	return "", errs.Invalidf("unknown status %q", s)
}
