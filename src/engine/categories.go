// Package engine holds the transaction consistency rules: which categories a
// transaction type admits, which bank-account pairs are legal, when a refund
// group balances, and how a transaction moves between types. Everything here
// is pure; handlers run these checks before any database write.
package engine

import (
	"fmt"

	"fintrack-server/src/models"
)

// RequiredCategoryType maps a transaction type to the category type it
// admits. Refund rows always classify against expense categories.
func RequiredCategoryType(t models.TransactionType) models.TransactionType {
	if t == models.TypeRefund {
		return models.TypeExpense
	}
	return t
}

// AdmissibleCategories returns the categories a transaction of the given type
// may use.
func AdmissibleCategories(categories []models.Category, t models.TransactionType) []models.Category {
	required := RequiredCategoryType(t)
	var out []models.Category
	for _, c := range categories {
		if c.Type == required {
			out = append(out, c)
		}
	}
	return out
}

// FirstByType returns the admissible category with the lowest ID, used as the
// default when a type change leaves no compatible selection.
func FirstByType(categories []models.Category, t models.TransactionType) (models.Category, error) {
	var best models.Category
	found := false
	for _, c := range AdmissibleCategories(categories, t) {
		if !found || c.ID < best.ID {
			best = c
			found = true
		}
	}
	if !found {
		return models.Category{}, fmt.Errorf("type %s: %w", t, ErrNoCategoryAvailable)
	}
	return best, nil
}

// CategoryByID finds a category in the given list.
func CategoryByID(categories []models.Category, id int64) (models.Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return models.Category{}, false
}
