package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack-server/src/models"
)

func testCategories() []models.Category {
	return []models.Category{
		{ID: 9, Name: "Salary", Type: models.TypeIncome},
		{ID: 5, Name: "Groceries", Type: models.TypeExpense},
		{ID: 1, Name: "Dividends", Type: models.TypeIncome},
		{ID: 3, Name: "Stocks", Type: models.TypeInvestment},
		{ID: 7, Name: "Rent", Type: models.TypeExpense},
	}
}

func TestAdmissibleCategories_MatchesType(t *testing.T) {
	cats := testCategories()

	for _, typ := range []models.TransactionType{models.TypeExpense, models.TypeIncome, models.TypeInvestment} {
		for _, c := range AdmissibleCategories(cats, typ) {
			assert.Equal(t, typ, c.Type)
		}
	}
}

func TestAdmissibleCategories_RefundUsesExpense(t *testing.T) {
	cats := testCategories()

	admissible := AdmissibleCategories(cats, models.TypeRefund)
	require.Len(t, admissible, 2)
	for _, c := range admissible {
		assert.Equal(t, models.TypeExpense, c.Type)
	}
}

func TestFirstByType_LowestIDWins(t *testing.T) {
	cats := testCategories()

	first, err := FirstByType(cats, models.TypeIncome)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)

	first, err = FirstByType(cats, models.TypeExpense)
	require.NoError(t, err)
	assert.Equal(t, int64(5), first.ID)
}

func TestFirstByType_RefundResolvesExpense(t *testing.T) {
	first, err := FirstByType(testCategories(), models.TypeRefund)
	require.NoError(t, err)
	assert.Equal(t, models.TypeExpense, first.Type)
	assert.Equal(t, int64(5), first.ID)
}

func TestFirstByType_EmptySet(t *testing.T) {
	cats := []models.Category{{ID: 1, Name: "Salary", Type: models.TypeIncome}}

	_, err := FirstByType(cats, models.TypeInvestment)
	assert.True(t, errors.Is(err, ErrNoCategoryAvailable))

	_, err = FirstByType(nil, models.TypeExpense)
	assert.True(t, errors.Is(err, ErrNoCategoryAvailable))
}

func TestCategoryByID(t *testing.T) {
	cats := testCategories()

	c, ok := CategoryByID(cats, 3)
	require.True(t, ok)
	assert.Equal(t, "Stocks", c.Name)

	_, ok = CategoryByID(cats, 42)
	assert.False(t, ok)
}
