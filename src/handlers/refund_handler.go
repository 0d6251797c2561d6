package handlers

import (
	"encoding/json"
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

// validateRefundRequest runs the group through the engine: balanced children,
// expense-typed child categories, an owned bank account.
func validateRefundRequest(w http.ResponseWriter, r *http.Request, pool *pgxpool.Pool, userID, amount, bankAccountID int64, children []models.RefundChildInput) bool {
	if amount <= 0 {
		http.Error(w, "amount must be positive", http.StatusBadRequest)
		return false
	}
	if err := engine.ValidateGroup(amount, children); err != nil {
		writeConsistencyError(w, err)
		return false
	}

	categories, err := loadCategories(r.Context(), pool, userID)
	if err != nil {
		log.Printf("ERROR: Failed to get categories for user %d: %v", userID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return false
	}
	if err := engine.ValidateChildCategories(children, categories); err != nil {
		writeConsistencyError(w, err)
		return false
	}

	accounts, err := loadBankAccounts(r.Context(), pool, userID, true)
	if err != nil {
		log.Printf("ERROR: Failed to get bank accounts for user %d: %v", userID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return false
	}
	if !accountBelongs(accounts, bankAccountID) {
		http.Error(w, "bank account not found", http.StatusBadRequest)
		return false
	}
	return true
}

func CreateRefund(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		var req models.CreateRefundRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create refund request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		date, err := parseDate(req.Date)
		if err != nil {
			http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		if !validateRefundRequest(w, r, pool, userID, req.Amount, req.BankAccountID, req.Children) {
			return
		}

		group, err := db.CreateRefundGroup(r.Context(), pool, userID, req, date)
		if err != nil {
			log.Printf("ERROR: Failed to create refund group for user %d: %v", userID, err)
			http.Error(w, "failed to create refund", http.StatusInternalServerError)
			return
		}
		cache.PatchTransactionCaches(group.Parent)
		for _, child := range group.Children {
			cache.PatchTransactionCaches(child)
		}
		log.Printf("INFO: Created refund group %d with %d children for user %d", group.Parent.ID, len(group.Children), userID)
		writeJSON(w, http.StatusCreated, group)
	}
}

// UpdateRefund replaces the parent fields and the entire children set of an
// existing refund group atomically.
func UpdateRefund(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		refundID, err := strconv.ParseInt(chi.URLParam(r, "refund_id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid refund id", http.StatusBadRequest)
			return
		}
		var req models.UpdateRefundRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update refund request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		date, err := parseDate(req.Date)
		if err != nil {
			http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		existing, err := db.GetTransactionByID(r.Context(), pool, userID, refundID)
		if err != nil {
			http.Error(w, "refund not found", http.StatusNotFound)
			return
		}
		if !existing.IsRefundParent() {
			http.Error(w, "transaction is not a refund parent", http.StatusUnprocessableEntity)
			return
		}
		if !validateRefundRequest(w, r, pool, userID, req.Amount, req.BankAccountID, req.Children) {
			return
		}

		group, err := db.ReplaceRefundGroup(r.Context(), pool, userID, refundID, req, date)
		if err != nil {
			log.Printf("ERROR: Failed to replace refund group %d for user %d: %v", refundID, userID, err)
			http.Error(w, "failed to update refund", http.StatusInternalServerError)
			return
		}
		// The old children set is gone and the new one has fresh IDs.
		cache.ClearAllTransactionCaches()
		log.Printf("INFO: Replaced refund group %d with %d children for user %d", refundID, len(group.Children), userID)
		writeJSON(w, http.StatusOK, group)
	}
}

func GetRefunds(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		var filter db.RefundFilter
		if s := r.URL.Query().Get("bank_account_id"); s != "" {
			id, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				http.Error(w, "invalid bank_account_id", http.StatusBadRequest)
				return
			}
			filter.BankAccountID = id
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

		groups, err := db.GetRefundGroups(r.Context(), pool, userID, filter)
		if err != nil {
			log.Printf("ERROR: Failed to get refund groups for user %d: %v", userID, err)
			http.Error(w, "failed to get refunds", http.StatusInternalServerError)
			return
		}
		if groups == nil {
			groups = []models.RefundGroup{}
		}
		writeJSON(w, http.StatusOK, groups)
	}
}
