package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"fintrack-server/src/models"
)

func TestBalance_Balanced(t *testing.T) {
	b := Balance(100, []models.RefundChildInput{{Amount: 40}, {Amount: 60}})
	assert.Equal(t, int64(100), b.ChildrenSum)
	assert.Equal(t, int64(0), b.Remaining)
	assert.Equal(t, VerdictBalanced, b.Verdict)
}

func TestBalance_Underfilled(t *testing.T) {
	b := Balance(100, []models.RefundChildInput{{Amount: 40}})
	assert.Equal(t, int64(40), b.ChildrenSum)
	assert.Equal(t, int64(60), b.Remaining)
	assert.Equal(t, VerdictUnderfilled, b.Verdict)
}

func TestBalance_Overfilled(t *testing.T) {
	b := Balance(100, []models.RefundChildInput{{Amount: 80}, {Amount: 30}})
	assert.Equal(t, int64(110), b.ChildrenSum)
	assert.Equal(t, int64(-10), b.Remaining)
	assert.Equal(t, VerdictOverfilled, b.Verdict)
}

func TestBalance_EmptyList(t *testing.T) {
	b := Balance(100, nil)
	assert.Equal(t, int64(0), b.ChildrenSum)
	assert.Equal(t, int64(100), b.Remaining)
	assert.Equal(t, VerdictUnderfilled, b.Verdict)

	// A zero parent with no children balances trivially.
	assert.Equal(t, VerdictBalanced, Balance(0, nil).Verdict)
}

func TestBalance_RemainingIsDifference(t *testing.T) {
	cases := []struct {
		parent   int64
		children []int64
	}{
		{0, nil},
		{1, []int64{1}},
		{250, []int64{100, 100, 50}},
		{99, []int64{33, 33, 33}},
		{500, []int64{700}},
	}
	for _, tc := range cases {
		var children []models.RefundChildInput
		var sum int64
		for _, amount := range tc.children {
			children = append(children, models.RefundChildInput{Amount: amount})
			sum += amount
		}
		b := Balance(tc.parent, children)
		assert.Equal(t, tc.parent-sum, b.Remaining)
		assert.Equal(t, b.Remaining == 0, b.Verdict == VerdictBalanced)
	}
}

func TestValidateGroup(t *testing.T) {
	assert.NoError(t, ValidateGroup(100, []models.RefundChildInput{{Amount: 40}, {Amount: 60}}))

	err := ValidateGroup(100, []models.RefundChildInput{{Amount: 40}})
	assert.True(t, errors.Is(err, ErrUnbalancedRefund))

	err = ValidateGroup(100, nil)
	assert.True(t, errors.Is(err, ErrUnbalancedRefund))

	// A zero-amount parent still needs at least one child.
	err = ValidateGroup(0, nil)
	assert.True(t, errors.Is(err, ErrUnbalancedRefund))
}

func TestValidateGroup_ChildAmountsMustBePositive(t *testing.T) {
	err := ValidateGroup(100, []models.RefundChildInput{{Amount: 100}, {Amount: 0}})
	assert.True(t, errors.Is(err, ErrUnbalancedRefund))

	err = ValidateGroup(100, []models.RefundChildInput{{Amount: 150}, {Amount: -50}})
	assert.True(t, errors.Is(err, ErrUnbalancedRefund))
}

func TestValidateChildCategories(t *testing.T) {
	cats := testCategories()

	assert.NoError(t, ValidateChildCategories([]models.RefundChildInput{
		{Amount: 40, CategoryID: 5},
		{Amount: 60, CategoryID: 7},
	}, cats))

	// Income category on a refund child.
	err := ValidateChildCategories([]models.RefundChildInput{{Amount: 40, CategoryID: 9}}, cats)
	assert.True(t, errors.Is(err, ErrCategoryTypeMismatch))

	// Unknown category.
	err = ValidateChildCategories([]models.RefundChildInput{{Amount: 40, CategoryID: 42}}, cats)
	assert.True(t, errors.Is(err, ErrCategoryTypeMismatch))
}
