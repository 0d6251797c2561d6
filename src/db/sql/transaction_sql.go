package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fintrack-server/src/models"
)

const transactionColumns = `id, transaction_id, user_id, amount, type, category_id, bank_account_id, destination_bank_account_id, parent_transaction_id, date, description, created_at, updated_at`

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(
		&t.ID,
		&t.TransactionID,
		&t.UserID,
		&t.Amount,
		&t.Type,
		&t.CategoryID,
		&t.BankAccountID,
		&t.DestinationBankAccountID,
		&t.ParentTransactionID,
		&t.Date,
		&t.Description,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func collectTransactions(rows pgx.Rows) ([]models.Transaction, error) {
	defer rows.Close()
	var transactions []models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *t)
	}
	return transactions, rows.Err()
}

// TransactionFilter narrows a transaction listing. Zero values mean "no
// constraint".
type TransactionFilter struct {
	Type      models.TransactionType
	StartDate *time.Time
	EndDate   *time.Time
}

func GetTransactionsSQL(ctx context.Context, pool *pgxpool.Pool, userID int64, filter TransactionFilter) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	query += " ORDER BY date DESC, id DESC"

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectTransactions(rows)
}

func GetTransactionByID(ctx context.Context, pool *pgxpool.Pool, userID, transactionID int64) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 AND user_id = $2`
	return scanTransaction(pool.QueryRow(ctx, query, transactionID, userID))
}

func CreateTransaction(ctx context.Context, pool *pgxpool.Pool, t *models.Transaction) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (transaction_id, user_id, amount, type, category_id, bank_account_id, destination_bank_account_id, parent_transaction_id, date, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + transactionColumns
	return scanTransaction(pool.QueryRow(ctx, query,
		t.TransactionID,
		t.UserID,
		t.Amount,
		t.Type,
		t.CategoryID,
		t.BankAccountID,
		t.DestinationBankAccountID,
		t.ParentTransactionID,
		t.Date,
		t.Description,
	))
}

func UpdateTransaction(ctx context.Context, pool *pgxpool.Pool, t *models.Transaction) (*models.Transaction, error) {
	query := `
		UPDATE transactions
		SET transaction_id = $1, amount = $2, type = $3, category_id = $4, bank_account_id = $5,
			destination_bank_account_id = $6, date = $7, description = $8, updated_at = NOW()
		WHERE id = $9 AND user_id = $10
		RETURNING ` + transactionColumns
	return scanTransaction(pool.QueryRow(ctx, query,
		t.TransactionID,
		t.Amount,
		t.Type,
		t.CategoryID,
		t.BankAccountID,
		t.DestinationBankAccountID,
		t.Date,
		t.Description,
		t.ID,
		t.UserID,
	))
}

func UpdateTransactionCategory(ctx context.Context, pool *pgxpool.Pool, userID, transactionID, categoryID int64) (*models.Transaction, error) {
	query := `
		UPDATE transactions
		SET category_id = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
		RETURNING ` + transactionColumns
	return scanTransaction(pool.QueryRow(ctx, query, categoryID, transactionID, userID))
}

// UpdateTransactionType applies a direct type change. The destination account
// is cleared so a stale transfer destination is never retained.
func UpdateTransactionType(ctx context.Context, pool *pgxpool.Pool, userID, transactionID int64, newType models.TransactionType, categoryID int64) (*models.Transaction, error) {
	query := `
		UPDATE transactions
		SET type = $1, category_id = $2, destination_bank_account_id = NULL, updated_at = NOW()
		WHERE id = $3 AND user_id = $4
		RETURNING ` + transactionColumns
	return scanTransaction(pool.QueryRow(ctx, query, newType, categoryID, transactionID, userID))
}

// UpdateTransactionAccounts applies an account-pair plan: source,
// destination and the type the pair implies.
func UpdateTransactionAccounts(ctx context.Context, pool *pgxpool.Pool, userID, transactionID int64, sourceID int64, destID *int64, newType models.TransactionType, categoryID *int64) (*models.Transaction, error) {
	query := `
		UPDATE transactions
		SET bank_account_id = $1, destination_bank_account_id = $2, type = $3, category_id = $4, updated_at = NOW()
		WHERE id = $5 AND user_id = $6
		RETURNING ` + transactionColumns
	return scanTransaction(pool.QueryRow(ctx, query, sourceID, destID, newType, categoryID, transactionID, userID))
}

func GetTransactionsByIDs(ctx context.Context, pool *pgxpool.Pool, userID int64, ids []int64) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 AND id = ANY($2) ORDER BY id`
	rows, err := pool.Query(ctx, query, userID, ids)
	if err != nil {
		return nil, err
	}
	return collectTransactions(rows)
}

func GetRefundChildren(ctx context.Context, pool *pgxpool.Pool, userID, parentID int64) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE parent_transaction_id = $1 AND user_id = $2 ORDER BY id`
	rows, err := pool.Query(ctx, query, parentID, userID)
	if err != nil {
		return nil, err
	}
	return collectTransactions(rows)
}

// DeleteTransaction removes a single transaction. Children of a refund
// parent go with it through the FK cascade; the handler is responsible for
// requiring the explicit cascade flag first.
func DeleteTransaction(ctx context.Context, pool *pgxpool.Pool, userID, transactionID int64) error {
	query := `DELETE FROM transactions WHERE id = $1 AND user_id = $2`
	cmd, err := pool.Exec(ctx, query, transactionID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("transaction not found")
	}
	return nil
}

func BulkCreateTransactions(ctx context.Context, pool *pgxpool.Pool, transactions []models.Transaction) ([]models.Transaction, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO transactions (transaction_id, user_id, amount, type, category_id, bank_account_id, destination_bank_account_id, parent_transaction_id, date, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + transactionColumns

	created := make([]models.Transaction, 0, len(transactions))
	for _, t := range transactions {
		row, err := scanTransaction(tx.QueryRow(ctx, query,
			t.TransactionID,
			t.UserID,
			t.Amount,
			t.Type,
			t.CategoryID,
			t.BankAccountID,
			t.DestinationBankAccountID,
			t.ParentTransactionID,
			t.Date,
			t.Description,
		))
		if err != nil {
			return nil, err
		}
		created = append(created, *row)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func BulkDeleteTransactions(ctx context.Context, pool *pgxpool.Pool, userID int64, ids []int64) (int64, error) {
	query := `DELETE FROM transactions WHERE user_id = $1 AND id = ANY($2)`
	cmd, err := pool.Exec(ctx, query, userID, ids)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
