package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/plaid/plaid-go/v41/plaid"

	"fintrack-server/src/handlers"
	"fintrack-server/src/middleware"
)

func NewRouter(pool *pgxpool.Pool, plaidClient *plaid.APIClient, isDemo bool) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Use(middleware.DemoModeMiddleware(isDemo))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","time":"` + time.Now().UTC().Format(time.RFC3339) + `"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", handlers.Login(pool))
		r.Post("/signup", handlers.Register(pool))

		// Protected routes
		r.With(middleware.JWTAuthMiddleware).Group(func(r chi.Router) {
			// Transactions
			r.Get("/transactions", handlers.GetTransactions(pool))
			r.Post("/transactions", handlers.CreateTransaction(pool))
			r.Post("/transactions/bulk", handlers.BulkCreateTransactions(pool))
			r.Post("/transactions/bulk-delete", handlers.BulkDeleteTransactions(pool))
			r.Get("/transactions/{transaction_id}", handlers.GetTransaction(pool))
			r.Put("/transactions/{transaction_id}", handlers.UpdateTransaction(pool))
			r.Delete("/transactions/{transaction_id}", handlers.DeleteTransaction(pool))
			r.Patch("/transactions/{transaction_id}/category", handlers.ChangeTransactionCategory(pool))
			r.Post("/transactions/{transaction_id}/type", handlers.ChangeTransactionType(pool))
			r.Post("/transactions/{transaction_id}/bank-account", handlers.ChangeTransactionBankAccount(pool))
			r.Post("/transactions/{transaction_id}/convert-to-refund", handlers.ConvertTransactionToRefund(pool))
			r.Post("/transactions/{transaction_id}/convert-from-refund", handlers.ConvertTransactionFromRefund(pool))

			// Refund groups
			r.Post("/refunds", handlers.CreateRefund(pool))
			r.Get("/refunds", handlers.GetRefunds(pool))
			r.Put("/refunds/{refund_id}", handlers.UpdateRefund(pool))

			// Categories
			r.Get("/categories", handlers.GetAllCategories(pool))
			r.Post("/categories", handlers.CreateCategory(pool))
			r.Put("/categories/{category_id}", handlers.UpdateCategory(pool))
			r.Delete("/categories/{category_id}", handlers.DeleteCategory(pool))

			// Bank accounts
			r.Get("/bank-accounts", handlers.GetAllBankAccounts(pool))
			r.Post("/bank-accounts", handlers.CreateBankAccount(pool))
			r.Put("/bank-accounts/{account_id}", handlers.UpdateBankAccount(pool))
			r.Delete("/bank-accounts/{account_id}", handlers.DeleteBankAccount(pool))
			r.Post("/bank-accounts/link", handlers.CreateLinkToken(plaidClient, pool))
			r.Post("/bank-accounts/link/exchange", handlers.ExchangePublicToken(plaidClient, pool))

			// Aggregates
			r.Get("/aggregate", handlers.GetAggregate(pool))
			r.Get("/aggregate/table", handlers.GetAggregateTable(pool))
		})
	})

	return r
}
