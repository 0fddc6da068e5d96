package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leandrostclaradev/delicias-da-katie/pkg/errs"
)

func TestProductValidate(t *testing.T) {
	valid := Product{Name: "Bolo", UnitPrice: decimal.NewFromInt(50)}
	require.NoError(t, valid.Validate())

	withExpiry := Product{Name: "Bolo", UnitPrice: decimal.NewFromInt(50), ExpirationDate: "2026-12-24"}
	require.NoError(t, withExpiry.Validate())

	for name, p := range map[string]Product{
		"missing name":   {UnitPrice: decimal.NewFromInt(50)},
		"negative price": {Name: "Bolo", UnitPrice: decimal.NewFromInt(-1)},
		"bad expiry":     {Name: "Bolo", UnitPrice: decimal.NewFromInt(50), ExpirationDate: "24/12/2026"},
	} {
		err := p.Validate()
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, errs.ErrInvalidInput), name)
	}
}

func TestPromotionValidate(t *testing.T) {
	id := int64(1)
	valid := Promotion{ProductID: &id, Description: "natal", StartDate: "2026-12-01", EndDate: "2026-12-24"}
	require.NoError(t, valid.Validate())

	bad := Promotion{ProductID: &id, StartDate: "december", EndDate: "2026-12-24"}
	err := bad.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrInvalidInput))
}
