package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	c := NewCustomer(CustomerAttrs{Name: "Acme", Email: "sales@acme.com"})

	assert.True(t, c.IsActive)
	assert.Nil(t, c.PreviousVersion)
	assert.Nil(t, c.ReplacedBy)
	assert.Equal(t, "Acme", c.Name)
	assert.False(t, c.CreatedAt.IsZero())
}

func TestCustomerSuccessor(t *testing.T) {
	head := NewCustomer(CustomerAttrs{Name: "Acme"})
	next := head.Successor(CustomerAttrs{Name: "Acme Corp"})

	assert.NotEqual(t, head.ID, next.ID)
	require.NotNil(t, next.PreviousVersion)
	assert.Equal(t, head.ID, *next.PreviousVersion)
	assert.True(t, next.IsActive)
	assert.Nil(t, next.ReplacedBy)
	assert.Equal(t, "Acme Corp", next.Name)
}

func TestCustomerAttrsValidate(t *testing.T) {
	attrs := CustomerAttrs{Name: "  Acme  ", Email: "sales@acme.com"}
	require.NoError(t, attrs.Validate())
	assert.Equal(t, "Acme", attrs.Name, "validation trims whitespace")

	attrs = CustomerAttrs{Name: ""}
	assert.Error(t, attrs.Validate())

	attrs = CustomerAttrs{Name: "Acme", Email: "not-an-email"}
	assert.Error(t, attrs.Validate())
}

func TestExpenseRequestValidate(t *testing.T) {
	req := ExpenseRequest{Category: "rent", AmountCents: 120000, IncurredOn: "2025-08-01"}
	incurredOn, err := req.Validate()
	require.NoError(t, err)
	assert.Equal(t, 2025, incurredOn.Year())

	req = ExpenseRequest{Category: "rent", AmountCents: 0, IncurredOn: "2025-08-01"}
	_, err = req.Validate()
	assert.Error(t, err)

	req = ExpenseRequest{Category: "rent", AmountCents: 100, IncurredOn: "01-08-2025"}
	_, err = req.Validate()
	assert.Error(t, err)
}
