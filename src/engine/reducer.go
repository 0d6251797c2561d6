package engine

import "fintrack-server/src/models"

// ApplyConfirmed folds a server-confirmed transaction into a previously
// fetched list: replace the row with the same ID, or append when it is new.
// Cached lists are only ever patched from confirmed rows, never from request
// payloads, so the cache cannot drift ahead of the database.
func ApplyConfirmed(prior []models.Transaction, confirmed models.Transaction) []models.Transaction {
	next := make([]models.Transaction, 0, len(prior)+1)
	replaced := false
	for _, tx := range prior {
		if tx.ID == confirmed.ID {
			next = append(next, confirmed)
			replaced = true
			continue
		}
		next = append(next, tx)
	}
	if !replaced {
		next = append(next, confirmed)
	}
	return next
}

// RemoveByID drops the rows with the given IDs from a previously fetched
// list. Unknown IDs are ignored.
func RemoveByID(prior []models.Transaction, ids ...int64) []models.Transaction {
	drop := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	next := make([]models.Transaction, 0, len(prior))
	for _, tx := range prior {
		if _, gone := drop[tx.ID]; gone {
			continue
		}
		next = append(next, tx)
	}
	return next
}
