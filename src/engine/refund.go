package engine

import (
	"fmt"

	"fintrack-server/src/models"
)

type RefundVerdict string

const (
	VerdictBalanced    RefundVerdict = "balanced"
	VerdictUnderfilled RefundVerdict = "underfilled"
	VerdictOverfilled  RefundVerdict = "overfilled"
)

type RefundBalance struct {
	ChildrenSum int64         `json:"children_sum"`
	Remaining   int64         `json:"remaining"`
	Verdict     RefundVerdict `json:"verdict"`
}

// Balance compares a refund parent's amount against its children. Total over
// any finite list, including the empty one.
func Balance(parentAmount int64, children []models.RefundChildInput) RefundBalance {
	var sum int64
	for _, c := range children {
		sum += c.Amount
	}
	b := RefundBalance{ChildrenSum: sum, Remaining: parentAmount - sum}
	switch {
	case b.Remaining == 0:
		b.Verdict = VerdictBalanced
	case b.Remaining > 0:
		b.Verdict = VerdictUnderfilled
	default:
		b.Verdict = VerdictOverfilled
	}
	return b
}

// ValidateGroup enforces the at-rest refund invariant: at least one child,
// every child amount positive, and child amounts summing exactly to the
// parent amount.
func ValidateGroup(parentAmount int64, children []models.RefundChildInput) error {
	if len(children) == 0 {
		return fmt.Errorf("refund group has no children: %w", ErrUnbalancedRefund)
	}
	for _, c := range children {
		if c.Amount <= 0 {
			return fmt.Errorf("child amounts must be positive: %w", ErrUnbalancedRefund)
		}
	}
	if b := Balance(parentAmount, children); b.Verdict != VerdictBalanced {
		return fmt.Errorf("%s by %d: %w", b.Verdict, abs(b.Remaining), ErrUnbalancedRefund)
	}
	return nil
}

// ValidateChildCategories checks that every refund child references an
// expense-typed category from the given list.
func ValidateChildCategories(children []models.RefundChildInput, categories []models.Category) error {
	for _, child := range children {
		cat, ok := CategoryByID(categories, child.CategoryID)
		if !ok {
			return fmt.Errorf("category %d not found: %w", child.CategoryID, ErrCategoryTypeMismatch)
		}
		if cat.Type != models.TypeExpense {
			return fmt.Errorf("category %d is %s: %w", cat.ID, cat.Type, ErrCategoryTypeMismatch)
		}
	}
	return nil
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
