package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack-server/src/models"
)

func TestChartSeries_SortedByName(t *testing.T) {
	series := ChartSeries(map[string]int64{
		"Rent":      120000,
		"Groceries": 45000,
		"Salary":    500000,
	})

	require.Len(t, series, 3)
	assert.Equal(t, ChartPoint{Name: "Groceries", Value: 45000}, series[0])
	assert.Equal(t, ChartPoint{Name: "Rent", Value: 120000}, series[1])
	assert.Equal(t, ChartPoint{Name: "Salary", Value: 500000}, series[2])
}

func TestChartSeries_Empty(t *testing.T) {
	assert.Empty(t, ChartSeries(nil))
}

func TestTableRows_ResolvesAndSorts(t *testing.T) {
	cats := testCategories()
	rows := TableRows(map[int64]int64{
		7: 120000,
		1: 3000,
		5: 45000,
	}, cats)

	require.Len(t, rows, 3)
	assert.Equal(t, TableRow{CategoryID: 1, CategoryName: "Dividends", Type: models.TypeIncome, Total: 3000}, rows[0])
	assert.Equal(t, TableRow{CategoryID: 5, CategoryName: "Groceries", Type: models.TypeExpense, Total: 45000}, rows[1])
	assert.Equal(t, TableRow{CategoryID: 7, CategoryName: "Rent", Type: models.TypeExpense, Total: 120000}, rows[2])
}

func TestTableRows_UnknownCategoryDropped(t *testing.T) {
	rows := TableRows(map[int64]int64{42: 100}, testCategories())
	assert.Empty(t, rows)
}

func TestSummarize(t *testing.T) {
	s := Summarize([]TableRow{
		{Type: models.TypeIncome, Total: 500000},
		{Type: models.TypeIncome, Total: 3000},
		{Type: models.TypeExpense, Total: 45000},
		{Type: models.TypeExpense, Total: 120000},
		{Type: models.TypeInvestment, Total: 20000},
	})

	assert.Equal(t, int64(503000), s.Income)
	assert.Equal(t, int64(165000), s.Expenses)
	assert.Equal(t, int64(20000), s.Investments)
	assert.Equal(t, int64(318000), s.Net)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
}
