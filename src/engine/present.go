package engine

import (
	"sort"

	"fintrack-server/src/models"
)

// ChartPoint is one slice of a category breakdown chart.
type ChartPoint struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// ChartSeries turns a category-name→total map into a chart-ready series,
// sorted by name for stable output.
func ChartSeries(totals map[string]int64) []ChartPoint {
	series := make([]ChartPoint, 0, len(totals))
	for name, value := range totals {
		series = append(series, ChartPoint{Name: name, Value: value})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Name < series[j].Name })
	return series
}

// TableRow is one per-category line of the date-range aggregate table.
type TableRow struct {
	CategoryID   int64                  `json:"category_id"`
	CategoryName string                 `json:"category_name"`
	Type         models.TransactionType `json:"type"`
	Total        int64                  `json:"total"`
}

// TableRows resolves category totals against the category list, sorted by
// category ID. Totals for unknown categories are dropped.
func TableRows(totals map[int64]int64, categories []models.Category) []TableRow {
	rows := make([]TableRow, 0, len(totals))
	for id, total := range totals {
		cat, ok := CategoryByID(categories, id)
		if !ok {
			continue
		}
		rows = append(rows, TableRow{
			CategoryID:   cat.ID,
			CategoryName: cat.Name,
			Type:         cat.Type,
			Total:        total,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CategoryID < rows[j].CategoryID })
	return rows
}

// Summary are the headline totals over an aggregate-table response.
type Summary struct {
	Income      int64 `json:"income"`
	Expenses    int64 `json:"expenses"`
	Investments int64 `json:"investments"`
	Net         int64 `json:"net"`
}

// Summarize folds table rows into headline totals. Net is income less
// expenses and investments.
func Summarize(rows []TableRow) Summary {
	var s Summary
	for _, row := range rows {
		switch row.Type {
		case models.TypeIncome:
			s.Income += row.Total
		case models.TypeExpense:
			s.Expenses += row.Total
		case models.TypeInvestment:
			s.Investments += row.Total
		}
	}
	s.Net = s.Income - s.Expenses - s.Investments
	return s
}
