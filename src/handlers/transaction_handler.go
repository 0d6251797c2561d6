package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	cache "fintrack-server/src/db"
	db "fintrack-server/src/db/sql"
	"fintrack-server/src/engine"
	"fintrack-server/src/models"
)

type transactionRequest struct {
	TransactionID            *string                `json:"transaction_id"`
	Amount                   int64                  `json:"amount"`
	Type                     models.TransactionType `json:"type"`
	CategoryID               *int64                 `json:"category_id"`
	BankAccountID            int64                  `json:"bank_account_id"`
	DestinationBankAccountID *int64                 `json:"destination_bank_account_id"`
	Date                     string                 `json:"date"`
	Description              string                 `json:"description"`
}

func transactionsCacheKey(userID int64, filter db.TransactionFilter) string {
	start, end := "", ""
	if filter.StartDate != nil {
		start = filter.StartDate.Format("2006-01-02")
	}
	if filter.EndDate != nil {
		end = filter.EndDate.Format("2006-01-02")
	}
	return cache.TransactionsCacheKey(userID, string(filter.Type), start, end)
}

func accountBelongs(accounts []models.BankAccount, id int64) bool {
	for _, a := range accounts {
		if a.ID == id {
			return true
		}
	}
	return false
}

// buildTransaction turns a request into a row ready for validation: the
// date is parsed, the destination-driven type promotion applied, and
// uncategorized types have their category forced to null.
func buildTransaction(ctx context.Context, pool *pgxpool.Pool, userID int64, req transactionRequest) (*models.Transaction, *models.Category, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", req.Date)
	}

	resolvedType, err := engine.ResolveType(req.Type, req.DestinationBankAccountID != nil)
	if err != nil {
		return nil, nil, err
	}

	tx := &models.Transaction{
		TransactionID:            req.TransactionID,
		UserID:                   userID,
		Amount:                   req.Amount,
		Type:                     resolvedType,
		CategoryID:               req.CategoryID,
		BankAccountID:            req.BankAccountID,
		DestinationBankAccountID: req.DestinationBankAccountID,
		Date:                     date,
		Description:              req.Description,
	}
	if tx.Type == models.TypeTransfer {
		tx.CategoryID = nil
	}

	accounts, err := loadBankAccounts(ctx, pool, userID, true)
	if err != nil {
		return nil, nil, err
	}
	if !accountBelongs(accounts, tx.BankAccountID) {
		return nil, nil, fmt.Errorf("bank account %d not found", tx.BankAccountID)
	}
	if tx.DestinationBankAccountID != nil && !accountBelongs(accounts, *tx.DestinationBankAccountID) {
		return nil, nil, fmt.Errorf("bank account %d not found", *tx.DestinationBankAccountID)
	}

	var cat *models.Category
	if tx.CategoryID != nil {
		categories, err := loadCategories(ctx, pool, userID)
		if err != nil {
			return nil, nil, err
		}
		if found, ok := engine.CategoryByID(categories, *tx.CategoryID); ok {
			cat = &found
		}
	}
	return tx, cat, nil
}

func GetTransactions(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		var filter db.TransactionFilter
		if t := r.URL.Query().Get("type"); t != "" {
			filter.Type = models.TransactionType(t)
			if !filter.Type.Valid() {
				http.Error(w, "invalid transaction type filter", http.StatusBadRequest)
				return
			}
		}
		if s := r.URL.Query().Get("start_date"); s != "" {
			start, err := parseDate(s)
			if err != nil {
				http.Error(w, "invalid start_date", http.StatusBadRequest)
				return
			}
			filter.StartDate = &start
		}
		if s := r.URL.Query().Get("end_date"); s != "" {
			end, err := parseDate(s)
			if err != nil {
				http.Error(w, "invalid end_date", http.StatusBadRequest)
				return
			}
			filter.EndDate = &end
		}

		key := transactionsCacheKey(userID, filter)
		if cached, ok := cache.GetTransactionCache(key); ok {
			writeJSON(w, http.StatusOK, cached)
			return
		}

		transactions, err := db.GetTransactionsSQL(r.Context(), pool, userID, filter)
		if err != nil {
			log.Printf("ERROR: Failed to get transactions for user %d: %v", userID, err)
			http.Error(w, "failed to get transactions", http.StatusInternalServerError)
			return
		}
		if transactions == nil {
			transactions = []models.Transaction{}
		}
		cache.SetTransactionCache(key, transactions)
		writeJSON(w, http.StatusOK, transactions)
	}
}

func GetTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		transactionID, err := strconv.ParseInt(chi.URLParam(r, "transaction_id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid transaction id", http.StatusBadRequest)
			return
		}
		tx, err := db.GetTransactionByID(r.Context(), pool, userID, transactionID)
		if err != nil {
			log.Printf("ERROR: Transaction id %d not found for user %d: %v", transactionID, userID, err)
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, tx)
	}
}

func CreateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		var req transactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create transaction request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Type == models.TypeRefund {
			http.Error(w, "refund groups are created through the refunds endpoint", http.StatusUnprocessableEntity)
			return
		}

		tx, cat, err := buildTransaction(r.Context(), pool, userID, req)
		if err != nil {
			if writeConsistencyError(w, err) {
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := engine.ValidateTransaction(tx, cat); err != nil {
			if writeConsistencyError(w, err) {
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		created, err := db.CreateTransaction(r.Context(), pool, tx)
		if err != nil {
			log.Printf("ERROR: Failed to create transaction for user %d: %v", userID, err)
			http.Error(w, "failed to create transaction", http.StatusInternalServerError)
			return
		}
		cache.PatchTransactionCaches(*created)
		log.Printf("INFO: Created transaction id %d for user %d, type %s", created.ID, userID, created.Type)
		writeJSON(w, http.StatusCreated, created)
	}
}

func UpdateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		transactionID, err := strconv.ParseInt(chi.URLParam(r, "transaction_id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid transaction id", http.StatusBadRequest)
			return
		}

		existing, err := db.GetTransactionByID(r.Context(), pool, userID, transactionID)
		if err != nil {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}
		if existing.Type == models.TypeRefund {
			http.Error(w, "refund rows are edited through the refunds endpoints", http.StatusUnprocessableEntity)
			return
		}

		var req transactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update transaction request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Type == models.TypeRefund {
			http.Error(w, fmt.Sprintf("cannot change type to refund directly: %v", engine.ErrUnsupportedDirectTransition), http.StatusUnprocessableEntity)
			return
		}

		tx, cat, err := buildTransaction(r.Context(), pool, userID, req)
		if err != nil {
			if writeConsistencyError(w, err) {
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		tx.ID = transactionID
		if err := engine.ValidateTransaction(tx, cat); err != nil {
			if writeConsistencyError(w, err) {
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		updated, err := db.UpdateTransaction(r.Context(), pool, tx)
		if err != nil {
			log.Printf("ERROR: Failed to update transaction id %d for user %d: %v", transactionID, userID, err)
			http.Error(w, "failed to update transaction", http.StatusInternalServerError)
			return
		}
		cache.PatchTransactionCaches(*updated)
		log.Printf("INFO: Updated transaction id %d for user %d", updated.ID, userID)
		writeJSON(w, http.StatusOK, updated)
	}
}

// ChangeTransactionCategory reassigns a transaction's category, holding the
// category-type/transaction-type pairing invariant.
func ChangeTransactionCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		transactionID, err := strconv.ParseInt(chi.URLParam(r, "transaction_id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid transaction id", http.StatusBadRequest)
			return
		}
		var req struct {
			CategoryID int64 `json:"category_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		tx, err := db.GetTransactionByID(r.Context(), pool, userID, transactionID)
		if err != nil {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}
		categories, err := loadCategories(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get categories for user %d: %v", userID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		patch, err := engine.ChangeCategory(tx, req.CategoryID, categories)
		if err != nil {
			if writeConsistencyError(w, err) {
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		updated, err := db.UpdateTransactionCategory(r.Context(), pool, userID, transactionID, patch.CategoryID)
		if err != nil {
			log.Printf("ERROR: Failed to change category for transaction %d, user %d: %v", transactionID, userID, err)
			http.Error(w, "failed to update transaction", http.StatusInternalServerError)
			return
		}
		cache.PatchTransactionCaches(*updated)
		writeJSON(w, http.StatusOK, updated)
	}
}

// ChangeTransactionType switches between expense, income and investment.
// Transfer and refund are only reachable through the conversion endpoints.
func ChangeTransactionType(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		transactionID, err := strconv.ParseInt(chi.URLParam(r, "transaction_id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid transaction id", http.StatusBadRequest)
			return
		}
		var req struct {
			Type models.TransactionType `json:"type"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		tx, err := db.GetTransactionByID(r.Context(), pool, userID, transactionID)
		if err != nil {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}
		if tx.Type == models.TypeRefund {
			http.Error(w, fmt.Sprintf("refund rows change type through conversion: %v", engine.ErrUnsupportedDirectTransition), http.StatusUnprocessableEntity)
			return
		}
		categories, err := loadCategories(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get categories for user %d: %v", userID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		patch, err := engine.ChangeType(tx, req.Type, categories)
		if err != nil {
			if writeConsistencyError(w, err) {
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		updated, err := db.UpdateTransactionType(r.Context(), pool, userID, transactionID, patch.Type, patch.CategoryID)
		if err != nil {
			log.Printf("ERROR: Failed to change type for transaction %d, user %d: %v", transactionID, userID, err)
			http.Error(w, "failed to update transaction", http.StatusInternalServerError)
			return
		}
		cache.PatchTransactionCaches(*updated)
		log.Printf("INFO: Changed transaction %d to type %s for user %d", transactionID, patch.Type, userID)
		writeJSON(w, http.StatusOK, updated)
	}
}

// ChangeTransactionBankAccount reassigns the source or destination account.
// Attaching a distinct destination promotes the row to a transfer; clearing
// a transfer's destination requires an explicit fallback_type in the same
// request, because there is no sensible default to revert to.
func ChangeTransactionBankAccount(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		transactionID, err := strconv.ParseInt(chi.URLParam(r, "transaction_id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid transaction id", http.StatusBadRequest)
			return
		}
		var req struct {
			Field         engine.AccountField    `json:"field"`
			BankAccountID *int64                 `json:"bank_account_id"`
			FallbackType  models.TransactionType `json:"fallback_type"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		tx, err := db.GetTransactionByID(r.Context(), pool, userID, transactionID)
		if err != nil {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}
		if tx.Type == models.TypeRefund {
			http.Error(w, "refund rows are edited through the refunds endpoints", http.StatusUnprocessableEntity)
			return
		}

		if req.BankAccountID != nil {
			accounts, err := loadBankAccounts(r.Context(), pool, userID, true)
			if err != nil {
				log.Printf("ERROR: Failed to get bank accounts for user %d: %v", userID, err)
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			if !accountBelongs(accounts, *req.BankAccountID) {
				http.Error(w, "bank account not found", http.StatusBadRequest)
				return
			}
		}

		plan, err := engine.ChangeBankAccounts(tx, req.Field, req.BankAccountID)
		if err != nil {
			if writeConsistencyError(w, err) {
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		newType := plan.ResultingType
		categoryID := tx.CategoryID
		if plan.RequiresTypeSelection {
			if req.FallbackType == "" {
				http.Error(w, engine.ErrTypeSelectionRequired.Error(), http.StatusUnprocessableEntity)
				return
			}
			categories, err := loadCategories(r.Context(), pool, userID)
			if err != nil {
				log.Printf("ERROR: Failed to get categories for user %d: %v", userID, err)
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			patch, err := engine.ChangeType(tx, req.FallbackType, categories)
			if err != nil {
				if writeConsistencyError(w, err) {
					return
				}
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			newType = patch.Type
			categoryID = &patch.CategoryID
		}
		if newType == models.TypeTransfer {
			categoryID = nil
		}

		updated, err := db.UpdateTransactionAccounts(r.Context(), pool, userID, transactionID, plan.SourceID, plan.DestinationID, newType, categoryID)
		if err != nil {
			log.Printf("ERROR: Failed to change accounts for transaction %d, user %d: %v", transactionID, userID, err)
			http.Error(w, "failed to update transaction", http.StatusInternalServerError)
			return
		}
		cache.PatchTransactionCaches(*updated)
		log.Printf("INFO: Changed %s account of transaction %d for user %d", req.Field, transactionID, userID)
		writeJSON(w, http.StatusOK, updated)
	}
}

// ConvertTransactionToRefund turns a standalone transaction into a refund
// group with one seeded child covering the full amount.
func ConvertTransactionToRefund(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		transactionID, err := strconv.ParseInt(chi.URLParam(r, "transaction_id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid transaction id", http.StatusBadRequest)
			return
		}

		tx, err := db.GetTransactionByID(r.Context(), pool, userID, transactionID)
		if err != nil {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}
		categories, err := loadCategories(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get categories for user %d: %v", userID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		seed, err := engine.ConvertToRefund(tx, categories)
		if err != nil {
			if writeConsistencyError(w, err) {
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		group, err := db.ConvertTransactionToRefund(r.Context(), pool, userID, transactionID, seed)
		if err != nil {
			log.Printf("ERROR: Failed to convert transaction %d to refund for user %d: %v", transactionID, userID, err)
			http.Error(w, "failed to convert transaction", http.StatusInternalServerError)
			return
		}
		cache.PatchTransactionCaches(group.Parent)
		for _, child := range group.Children {
			cache.PatchTransactionCaches(child)
		}
		log.Printf("INFO: Converted transaction %d to refund group for user %d", transactionID, userID)
		writeJSON(w, http.StatusOK, group)
	}
}

// ConvertTransactionFromRefund turns a refund parent back into an ordinary
// transaction. All children of the group are destroyed; the client is
// expected to have warned the user.
func ConvertTransactionFromRefund(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		transactionID, err := strconv.ParseInt(chi.URLParam(r, "transaction_id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid transaction id", http.StatusBadRequest)
			return
		}
		var req struct {
			Type models.TransactionType `json:"type"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		tx, err := db.GetTransactionByID(r.Context(), pool, userID, transactionID)
		if err != nil {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}
		accounts, err := loadBankAccounts(r.Context(), pool, userID, true)
		if err != nil {
			log.Printf("ERROR: Failed to get bank accounts for user %d: %v", userID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		categories, err := loadCategories(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get categories for user %d: %v", userID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		plan, err := engine.ConvertFromRefund(tx, req.Type, accounts, categories)
		if err != nil {
			if writeConsistencyError(w, err) {
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		converted, childIDs, err := db.ConvertTransactionFromRefund(r.Context(), pool, userID, transactionID, plan)
		if err != nil {
			log.Printf("ERROR: Failed to convert refund %d for user %d: %v", transactionID, userID, err)
			http.Error(w, "failed to convert refund", http.StatusInternalServerError)
			return
		}
		cache.DropFromTransactionCaches(childIDs...)
		cache.PatchTransactionCaches(*converted)
		log.Printf("INFO: Converted refund %d to %s for user %d, %d children removed", transactionID, converted.Type, userID, len(childIDs))
		writeJSON(w, http.StatusOK, converted)
	}
}

func DeleteTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		transactionID, err := strconv.ParseInt(chi.URLParam(r, "transaction_id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid transaction id", http.StatusBadRequest)
			return
		}
		cascade := r.URL.Query().Get("cascade") == "true"

		tx, err := db.GetTransactionByID(r.Context(), pool, userID, transactionID)
		if err != nil {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		var children []models.Transaction
		if tx.IsRefundParent() {
			children, err = db.GetRefundChildren(r.Context(), pool, userID, transactionID)
			if err != nil {
				log.Printf("ERROR: Failed to get refund children for transaction %d, user %d: %v", transactionID, userID, err)
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
		}
		if err := engine.CheckDeletable(tx, len(children), cascade); err != nil {
			if errors.Is(err, engine.ErrCascadeRequired) {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			if writeConsistencyError(w, err) {
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		deletedIDs := []int64{transactionID}
		for _, child := range children {
			deletedIDs = append(deletedIDs, child.ID)
		}

		if err := db.DeleteTransaction(r.Context(), pool, userID, transactionID); err != nil {
			log.Printf("ERROR: Failed to delete transaction %d for user %d: %v", transactionID, userID, err)
			http.Error(w, "failed to delete transaction", http.StatusInternalServerError)
			return
		}
		cache.DropFromTransactionCaches(deletedIDs...)
		log.Printf("INFO: Deleted transaction %d for user %d (cascade=%t)", transactionID, userID, cascade)
		writeJSON(w, http.StatusOK, map[string]string{"message": "transaction deleted"})
	}
}

func BulkCreateTransactions(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		var reqs []transactionRequest
		if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
			log.Printf("ERROR: Failed to decode bulk create request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if len(reqs) == 0 {
			http.Error(w, "empty transaction list", http.StatusBadRequest)
			return
		}

		rows := make([]models.Transaction, 0, len(reqs))
		for i, req := range reqs {
			if req.Type == models.TypeRefund {
				http.Error(w, fmt.Sprintf("item %d: refund groups are created through the refunds endpoint", i), http.StatusUnprocessableEntity)
				return
			}
			tx, cat, err := buildTransaction(r.Context(), pool, userID, req)
			if err == nil {
				err = engine.ValidateTransaction(tx, cat)
			}
			if err != nil {
				if writeConsistencyError(w, fmt.Errorf("item %d: %w", i, err)) {
					return
				}
				http.Error(w, fmt.Sprintf("item %d: %v", i, err), http.StatusBadRequest)
				return
			}
			rows = append(rows, *tx)
		}

		created, err := db.BulkCreateTransactions(r.Context(), pool, rows)
		if err != nil {
			log.Printf("ERROR: Failed to bulk create %d transactions for user %d: %v", len(rows), userID, err)
			http.Error(w, "failed to create transactions", http.StatusInternalServerError)
			return
		}
		for _, tx := range created {
			cache.PatchTransactionCaches(tx)
		}
		log.Printf("INFO: Bulk created %d transactions for user %d", len(created), userID)
		writeJSON(w, http.StatusCreated, created)
	}
}

func BulkDeleteTransactions(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		var req struct {
			IDs []int64 `json:"ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.IDs) == 0 {
			http.Error(w, "a non-empty ids list is required", http.StatusBadRequest)
			return
		}
		cascade := r.URL.Query().Get("cascade") == "true"

		rows, err := db.GetTransactionsByIDs(r.Context(), pool, userID, req.IDs)
		if err != nil {
			log.Printf("ERROR: Failed to get transactions for bulk delete, user %d: %v", userID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		for _, tx := range rows {
			childCount := 0
			if tx.IsRefundParent() {
				children, err := db.GetRefundChildren(r.Context(), pool, userID, tx.ID)
				if err != nil {
					log.Printf("ERROR: Failed to get refund children for transaction %d, user %d: %v", tx.ID, userID, err)
					http.Error(w, "internal error", http.StatusInternalServerError)
					return
				}
				childCount = len(children)
			}
			if err := engine.CheckDeletable(&tx, childCount, cascade); err != nil {
				if errors.Is(err, engine.ErrCascadeRequired) {
					http.Error(w, err.Error(), http.StatusConflict)
					return
				}
				if writeConsistencyError(w, err) {
					return
				}
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}

		deleted, err := db.BulkDeleteTransactions(r.Context(), pool, userID, req.IDs)
		if err != nil {
			log.Printf("ERROR: Failed to bulk delete transactions for user %d: %v", userID, err)
			http.Error(w, "failed to delete transactions", http.StatusInternalServerError)
			return
		}
		// Refund parents in the batch take their children with them through
		// the FK cascade, so per-ID patching would leave orphans in the
		// cached lists.
		cache.ClearAllTransactionCaches()
		log.Printf("INFO: Bulk deleted %d transactions for user %d", deleted, userID)
		writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
	}
}
