package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack-server/src/models"
)

func TestTransactionMatchesKey(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	tx := models.Transaction{ID: 1, UserID: 1, Type: models.TypeExpense, Amount: 100, Date: date}

	assert.True(t, transactionMatchesKey(TransactionsCacheKey(1, "", "", ""), tx))
	assert.True(t, transactionMatchesKey(TransactionsCacheKey(1, "expense", "", ""), tx))
	assert.True(t, transactionMatchesKey(TransactionsCacheKey(1, "", "2026-03-01", "2026-03-31"), tx))
	assert.True(t, transactionMatchesKey(TransactionsCacheKey(1, "expense", "2026-03-10", "2026-03-10"), tx))

	assert.False(t, transactionMatchesKey(TransactionsCacheKey(1, "income", "", ""), tx))
	assert.False(t, transactionMatchesKey(TransactionsCacheKey(2, "expense", "", ""), tx))
	assert.False(t, transactionMatchesKey(TransactionsCacheKey(1, "", "2026-03-11", ""), tx))
	assert.False(t, transactionMatchesKey(TransactionsCacheKey(1, "", "", "2026-03-09"), tx))
	assert.False(t, transactionMatchesKey("categories:1", tx))
	assert.False(t, transactionMatchesKey("not a key", tx))
}

func TestPatchTransactionCaches_SkipsNonMatchingLists(t *testing.T) {
	InitCache()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	income := models.Transaction{ID: 1, UserID: 1, Type: models.TypeIncome, Amount: 100, Date: date}

	incomeKey := TransactionsCacheKey(1, "income", "", "")
	allKey := TransactionsCacheKey(1, "", "", "")
	SetTransactionCache(incomeKey, []models.Transaction{income})
	SetTransactionCache(allKey, []models.Transaction{income})
	Cache.Wait()

	expense := models.Transaction{ID: 2, UserID: 1, Type: models.TypeExpense, Amount: 50, Date: date}
	PatchTransactionCaches(expense)
	Cache.Wait()

	list, ok := GetTransactionCache(incomeKey)
	require.True(t, ok)
	require.Len(t, list, 1)
	assert.Equal(t, models.TypeIncome, list[0].Type)

	list, ok = GetTransactionCache(allKey)
	require.True(t, ok)
	require.Len(t, list, 2)

	ClearAllTransactionCaches()
}

func TestPatchTransactionCaches_TypeChangeMovesRow(t *testing.T) {
	InitCache()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	row := models.Transaction{ID: 1, UserID: 1, Type: models.TypeIncome, Amount: 100, Date: date}

	incomeKey := TransactionsCacheKey(1, "income", "", "")
	expenseKey := TransactionsCacheKey(1, "expense", "", "")
	allKey := TransactionsCacheKey(1, "", "", "")
	SetTransactionCache(incomeKey, []models.Transaction{row})
	SetTransactionCache(expenseKey, []models.Transaction{})
	SetTransactionCache(allKey, []models.Transaction{row})
	Cache.Wait()

	changed := row
	changed.Type = models.TypeExpense
	PatchTransactionCaches(changed)
	Cache.Wait()

	list, ok := GetTransactionCache(incomeKey)
	require.True(t, ok)
	assert.Empty(t, list)

	list, ok = GetTransactionCache(expenseKey)
	require.True(t, ok)
	require.Len(t, list, 1)
	assert.Equal(t, models.TypeExpense, list[0].Type)

	list, ok = GetTransactionCache(allKey)
	require.True(t, ok)
	require.Len(t, list, 1)
	assert.Equal(t, models.TypeExpense, list[0].Type)

	ClearAllTransactionCaches()
}

func TestDropFromTransactionCaches(t *testing.T) {
	InitCache()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	rows := []models.Transaction{
		{ID: 1, UserID: 1, Type: models.TypeExpense, Amount: 100, Date: date},
		{ID: 2, UserID: 1, Type: models.TypeExpense, Amount: 50, Date: date},
	}

	key := TransactionsCacheKey(1, "expense", "", "")
	SetTransactionCache(key, rows)
	Cache.Wait()

	DropFromTransactionCaches(1)
	Cache.Wait()

	list, ok := GetTransactionCache(key)
	require.True(t, ok)
	require.Len(t, list, 1)
	assert.Equal(t, int64(2), list[0].ID)

	ClearAllTransactionCaches()
}
