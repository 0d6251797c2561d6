package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack-server/src/models"
)

func TestApplyConfirmed_ReplacesExisting(t *testing.T) {
	prior := []models.Transaction{
		{ID: 1, Amount: 100, Type: models.TypeExpense},
		{ID: 2, Amount: 200, Type: models.TypeIncome},
	}

	next := ApplyConfirmed(prior, models.Transaction{ID: 2, Amount: 250, Type: models.TypeIncome})
	require.Len(t, next, 2)
	assert.Equal(t, int64(1), next[0].ID)
	assert.Equal(t, int64(250), next[1].Amount)

	// The prior slice is left untouched.
	assert.Equal(t, int64(200), prior[1].Amount)
}

func TestApplyConfirmed_AppendsNew(t *testing.T) {
	prior := []models.Transaction{{ID: 1, Amount: 100, Type: models.TypeExpense}}

	next := ApplyConfirmed(prior, models.Transaction{ID: 3, Amount: 50, Type: models.TypeExpense})
	require.Len(t, next, 2)
	assert.Equal(t, int64(3), next[1].ID)
}

func TestApplyConfirmed_EmptyPrior(t *testing.T) {
	next := ApplyConfirmed(nil, models.Transaction{ID: 1, Amount: 100, Type: models.TypeExpense})
	require.Len(t, next, 1)
	assert.Equal(t, int64(1), next[0].ID)
}

func TestRemoveByID(t *testing.T) {
	prior := []models.Transaction{
		{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4},
	}

	next := RemoveByID(prior, 2, 4)
	require.Len(t, next, 2)
	assert.Equal(t, int64(1), next[0].ID)
	assert.Equal(t, int64(3), next[1].ID)
}

func TestRemoveByID_UnknownIDsIgnored(t *testing.T) {
	prior := []models.Transaction{{ID: 1}, {ID: 2}}

	next := RemoveByID(prior, 42)
	assert.Len(t, next, 2)

	next = RemoveByID(nil, 1)
	assert.Empty(t, next)
}
