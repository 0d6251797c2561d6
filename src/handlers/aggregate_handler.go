package handlers

import (
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	db "fintrack-server/src/db/sql"
	"fintrack-server/src/engine"
	"fintrack-server/src/models"
)

// GetAggregate returns whole-history totals by category as a chart-ready
// series.
func GetAggregate(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		totals, err := db.GetTotalsByCategoryName(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get aggregate totals for user %d: %v", userID, err)
			http.Error(w, "failed to get aggregate", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"series": engine.ChartSeries(totals),
		})
	}
}

// GetAggregateTable returns per-category totals within a date range, split
// by type, plus headline summary totals.
func GetAggregateTable(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		start, err := parseDate(r.URL.Query().Get("start_date"))
		if err != nil {
			http.Error(w, "invalid start_date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		end, err := parseDate(r.URL.Query().Get("end_date"))
		if err != nil {
			http.Error(w, "invalid end_date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		categories, err := loadCategories(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get categories for user %d: %v", userID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		sections := make(map[string][]engine.TableRow, 3)
		var all []engine.TableRow
		for _, txType := range []models.TransactionType{models.TypeIncome, models.TypeExpense, models.TypeInvestment} {
			totals, err := db.GetTotalsByCategoryID(r.Context(), pool, userID, txType, start, end)
			if err != nil {
				log.Printf("ERROR: Failed to get %s totals for user %d: %v", txType, userID, err)
				http.Error(w, "failed to get aggregate table", http.StatusInternalServerError)
				return
			}
			rows := engine.TableRows(totals, categories)
			sections[string(txType)] = rows
			all = append(all, rows...)
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"income":      sections[string(models.TypeIncome)],
			"expenses":    sections[string(models.TypeExpense)],
			"investments": sections[string(models.TypeInvestment)],
			"summary":     engine.Summarize(all),
		})
	}
}
