package service

import (
	"net/http"
	"testing"

	"orbit/cmd/internal/contract"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseService_RejectsNonPositiveAmount(t *testing.T) {
	f := newFixture(t)
	svc := NewExpenseService(f.expenses, f.prefs, NopNotifier{}, f.validate)

	for _, amount := range []string{"0", "-4.5", "10000000000"} {
		_, apierr := svc.CreateExpense(f.user, &contract.ExpenseRequest{Amount: decimal.RequireFromString(amount)})
		require.NotNil(t, apierr, amount)
		assert.Equal(t, http.StatusBadRequest, apierr.Code())
	}
}

func TestExpenseService_CreateDefaults(t *testing.T) {
	f := newFixture(t)
	svc := NewExpenseService(f.expenses, f.prefs, NopNotifier{}, f.validate)

	expense, apierr := svc.CreateExpense(f.user, &contract.ExpenseRequest{Amount: decimal.RequireFromString("12.345")})
	require.Nil(t, apierr)
	assert.Equal(t, "OTHER", expense.Category)
	assert.True(t, expense.Amount.Equal(decimal.RequireFromString("12.35")))
}

func TestExpenseService_Summary(t *testing.T) {
	f := newFixture(t)
	svc := NewExpenseService(f.expenses, f.prefs, NopNotifier{}, f.validate)

	create := func(amount, category, date string) {
		_, apierr := svc.CreateExpense(f.user, &contract.ExpenseRequest{
			Amount:   decimal.RequireFromString(amount),
			Category: category,
			Date:     ptr(date),
		})
		require.Nil(t, apierr)
	}
	create("100", "FOOD", "2024-05-01")
	create("50.50", "FOOD", "2024-05-31")
	create("300", "BILLS", "2024-05-15")
	create("999", "BILLS", "2024-06-01")

	summary, apierr := svc.GetSummary(f.user, "2024-05")
	require.Nil(t, apierr)
	assert.Equal(t, "2024-05", summary.Month)
	assert.True(t, summary.Total.Equal(decimal.RequireFromString("450.50")), summary.Total.String())
	assert.True(t, summary.Budget.Equal(decimal.NewFromInt(2000)))
	assert.True(t, summary.Remaining.Equal(decimal.RequireFromString("1549.50")))
	assert.Equal(t, "USD", summary.Currency)

	require.Len(t, summary.Categories, 2)
	assert.Equal(t, "BILLS", summary.Categories[0].Category)
	assert.Equal(t, 2, summary.Categories[1].Count)

	listed, apierr := svc.GetExpenses(f.user, "2024-06")
	require.Nil(t, apierr)
	assert.Len(t, listed, 1)

	_, apierr = svc.GetSummary(f.user, "May 2024")
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusBadRequest, apierr.Code())
}
