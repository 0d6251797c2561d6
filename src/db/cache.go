package db

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"

	"fintrack-server/src/engine"
	"fintrack-server/src/models"
)

// Storing cache keys in concurrent data structures to allow for clearing or
// patching all caches of a certain type.
var (
	Cache                *ristretto.Cache
	TransactionCacheKeys = struct {
		sync.RWMutex
		m map[string]struct{}
	}{m: make(map[string]struct{})}
	CategoryCacheKeys = struct {
		sync.RWMutex
		m map[string]struct{}
	}{m: make(map[string]struct{})}
	AccountCacheKeys = struct {
		sync.RWMutex
		m map[string]struct{}
	}{m: make(map[string]struct{})}
)

func InitCache() {
	var err error
	Cache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}
}

const transactionKeyPrefix = "transactions"

// TransactionsCacheKey identifies one filtered transaction list. Empty
// strings mean the filter is unset. transactionMatchesKey parses this exact
// layout, so the two must change together.
func TransactionsCacheKey(userID int64, txType, startDate, endDate string) string {
	return fmt.Sprintf("%s:%d:%s:%s:%s", transactionKeyPrefix, userID, txType, startDate, endDate)
}

// transactionMatchesKey reports whether a row belongs under the filter a
// transaction list key encodes. Unparseable keys match nothing.
func transactionMatchesKey(key string, tx models.Transaction) bool {
	parts := strings.Split(key, ":")
	if len(parts) != 5 || parts[0] != transactionKeyPrefix {
		return false
	}
	userID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || userID != tx.UserID {
		return false
	}
	if parts[2] != "" && parts[2] != string(tx.Type) {
		return false
	}
	if parts[3] != "" {
		start, err := time.Parse("2006-01-02", parts[3])
		if err != nil || tx.Date.Before(start) {
			return false
		}
	}
	if parts[4] != "" {
		end, err := time.Parse("2006-01-02", parts[4])
		if err != nil || tx.Date.After(end) {
			return false
		}
	}
	return true
}

// Transaction Cache Functions
func SetTransactionCache(cacheKey string, value []models.Transaction) {
	TransactionCacheKeys.Lock()
	TransactionCacheKeys.m[cacheKey] = struct{}{}
	TransactionCacheKeys.Unlock()
	Cache.Set(cacheKey, value, 1)
}

func GetTransactionCache(cacheKey string) ([]models.Transaction, bool) {
	value, found := Cache.Get(cacheKey)
	if !found {
		return nil, false
	}
	list, ok := value.([]models.Transaction)
	return list, ok
}

// PatchTransactionCaches folds a confirmed row into every tracked
// transaction list. The cached lists are filter-specific: the row is
// replaced or appended in lists whose filter it satisfies and removed from
// the rest, so a type or date change moves it between cached lists the same
// way a re-read would.
func PatchTransactionCaches(confirmed models.Transaction) {
	TransactionCacheKeys.RLock()
	defer TransactionCacheKeys.RUnlock()
	for key := range TransactionCacheKeys.m {
		list, ok := GetTransactionCache(key)
		if !ok {
			continue
		}
		if transactionMatchesKey(key, confirmed) {
			Cache.Set(key, engine.ApplyConfirmed(list, confirmed), 1)
		} else {
			Cache.Set(key, engine.RemoveByID(list, confirmed.ID), 1)
		}
	}
}

// DropFromTransactionCaches removes deleted rows from every tracked
// transaction list.
func DropFromTransactionCaches(ids ...int64) {
	TransactionCacheKeys.RLock()
	defer TransactionCacheKeys.RUnlock()
	for key := range TransactionCacheKeys.m {
		if list, ok := GetTransactionCache(key); ok {
			Cache.Set(key, engine.RemoveByID(list, ids...), 1)
		}
	}
}

func ClearAllTransactionCaches() {
	TransactionCacheKeys.Lock()
	for key := range TransactionCacheKeys.m {
		Cache.Del(key)
	}
	TransactionCacheKeys.m = make(map[string]struct{})
	TransactionCacheKeys.Unlock()
}

// Category Cache Functions
func SetCategoryCache(cacheKey string, value []models.Category) {
	CategoryCacheKeys.Lock()
	CategoryCacheKeys.m[cacheKey] = struct{}{}
	CategoryCacheKeys.Unlock()
	Cache.Set(cacheKey, value, 1)
}

func GetCategoryCache(cacheKey string) ([]models.Category, bool) {
	value, found := Cache.Get(cacheKey)
	if !found {
		return nil, false
	}
	list, ok := value.([]models.Category)
	return list, ok
}

func ClearAllCategoryCaches() {
	CategoryCacheKeys.Lock()
	for key := range CategoryCacheKeys.m {
		Cache.Del(key)
	}
	CategoryCacheKeys.m = make(map[string]struct{})
	CategoryCacheKeys.Unlock()
}

// Bank Account Cache Functions
func SetAccountCache(cacheKey string, value []models.BankAccount) {
	AccountCacheKeys.Lock()
	AccountCacheKeys.m[cacheKey] = struct{}{}
	AccountCacheKeys.Unlock()
	Cache.Set(cacheKey, value, 1)
}

func GetAccountCache(cacheKey string) ([]models.BankAccount, bool) {
	value, found := Cache.Get(cacheKey)
	if !found {
		return nil, false
	}
	list, ok := value.([]models.BankAccount)
	return list, ok
}

func ClearAllAccountCaches() {
	AccountCacheKeys.Lock()
	for key := range AccountCacheKeys.m {
		Cache.Del(key)
	}
	AccountCacheKeys.m = make(map[string]struct{})
	AccountCacheKeys.Unlock()
}
