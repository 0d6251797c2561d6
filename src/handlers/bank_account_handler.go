package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	cache "fintrack-server/src/db"
	db "fintrack-server/src/db/sql"
	"fintrack-server/src/models"
)

func accountsCacheKey(userID int64, includeInactive bool) string {
	return fmt.Sprintf("bank_accounts:%d:%t", userID, includeInactive)
}

// loadBankAccounts returns the user's bank accounts, served from the
// ristretto cache when present.
func loadBankAccounts(ctx context.Context, pool *pgxpool.Pool, userID int64, includeInactive bool) ([]models.BankAccount, error) {
	key := accountsCacheKey(userID, includeInactive)
	if cached, ok := cache.GetAccountCache(key); ok {
		return cached, nil
	}
	accounts, err := db.GetAllBankAccounts(ctx, pool, userID, includeInactive)
	if err != nil {
		return nil, err
	}
	cache.SetAccountCache(key, accounts)
	return accounts, nil
}

func GetAllBankAccounts(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		includeInactive := r.URL.Query().Get("include_inactive") == "true"

		accounts, err := loadBankAccounts(r.Context(), pool, userID, includeInactive)
		if err != nil {
			log.Printf("ERROR: Failed to get bank accounts for user %d: %v", userID, err)
			http.Error(w, "failed to get bank accounts", http.StatusInternalServerError)
			return
		}
		if accounts == nil {
			accounts = []models.BankAccount{}
		}
		writeJSON(w, http.StatusOK, accounts)
	}
}

type bankAccountRequest struct {
	Name          string  `json:"name"`
	BankName      string  `json:"bank_name"`
	AccountNumber *string `json:"account_number"`
	AccountType   string  `json:"account_type"`
	Balance       int64   `json:"balance"`
	IsActive      *bool   `json:"is_active"`
}

func CreateBankAccount(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		var req bankAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create bank account request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Name == "" || req.BankName == "" {
			http.Error(w, "name and bank_name are required", http.StatusBadRequest)
			return
		}
		isActive := true
		if req.IsActive != nil {
			isActive = *req.IsActive
		}
		created, err := db.CreateBankAccount(r.Context(), pool, &models.BankAccount{
			UserID:        userID,
			Name:          req.Name,
			BankName:      req.BankName,
			AccountNumber: req.AccountNumber,
			AccountType:   req.AccountType,
			Balance:       req.Balance,
			IsActive:      isActive,
		})
		if err != nil {
			log.Printf("ERROR: Failed to create bank account for user %d: %v", userID, err)
			http.Error(w, "failed to create bank account", http.StatusInternalServerError)
			return
		}
		cache.ClearAllAccountCaches()
		log.Printf("INFO: Created bank account id %d for user %d", created.ID, userID)
		writeJSON(w, http.StatusCreated, created)
	}
}

func UpdateBankAccount(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		accountID, err := strconv.ParseInt(chi.URLParam(r, "account_id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid bank account id", http.StatusBadRequest)
			return
		}
		var req bankAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update bank account request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		isActive := true
		if req.IsActive != nil {
			isActive = *req.IsActive
		}
		updated, err := db.UpdateBankAccount(r.Context(), pool, &models.BankAccount{
			ID:            accountID,
			UserID:        userID,
			Name:          req.Name,
			BankName:      req.BankName,
			AccountNumber: req.AccountNumber,
			AccountType:   req.AccountType,
			Balance:       req.Balance,
			IsActive:      isActive,
		})
		if err != nil {
			log.Printf("ERROR: Failed to update bank account id %d for user %d: %v", accountID, userID, err)
			http.Error(w, "bank account not found", http.StatusNotFound)
			return
		}
		cache.ClearAllAccountCaches()
		log.Printf("INFO: Updated bank account id %d for user %d", updated.ID, userID)
		writeJSON(w, http.StatusOK, updated)
	}
}

func DeleteBankAccount(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		accountID, err := strconv.ParseInt(chi.URLParam(r, "account_id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid bank account id", http.StatusBadRequest)
			return
		}
		if err := db.DeleteBankAccount(r.Context(), pool, userID, accountID); err != nil {
			log.Printf("ERROR: Failed to delete bank account id %d for user %d: %v", accountID, userID, err)
			http.Error(w, "failed to delete bank account", http.StatusConflict)
			return
		}
		cache.ClearAllAccountCaches()
		log.Printf("INFO: Deleted bank account id %d for user %d", accountID, userID)
		writeJSON(w, http.StatusOK, map[string]string{"message": "bank account deleted"})
	}
}
