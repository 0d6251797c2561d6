package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fintrack-server/src/engine"
	"fintrack-server/src/models"
)

func insertRefundChild(ctx context.Context, tx pgx.Tx, userID, parentID, bankAccountID int64, date time.Time, child models.RefundChildInput) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, amount, type, category_id, bank_account_id, parent_transaction_id, date, description)
		VALUES ($1, $2, 'refund', $3, $4, $5, $6, $7)
		RETURNING ` + transactionColumns
	return scanTransaction(tx.QueryRow(ctx, query,
		userID,
		child.Amount,
		child.CategoryID,
		bankAccountID,
		parentID,
		date,
		child.Description,
	))
}

// CreateRefundGroup inserts a refund parent and its children in one
// transaction so the group is never observable half-written. The group must
// already have passed engine.ValidateGroup.
func CreateRefundGroup(ctx context.Context, pool *pgxpool.Pool, userID int64, req models.CreateRefundRequest, date time.Time) (*models.RefundGroup, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	parentQuery := `
		INSERT INTO transactions (transaction_id, user_id, amount, type, bank_account_id, date, description)
		VALUES ($1, $2, $3, 'refund', $4, $5, $6)
		RETURNING ` + transactionColumns
	parent, err := scanTransaction(tx.QueryRow(ctx, parentQuery,
		req.TransactionID,
		userID,
		req.Amount,
		req.BankAccountID,
		date,
		req.Description,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert refund parent: %w", err)
	}

	group := &models.RefundGroup{Parent: *parent}
	for _, child := range req.Children {
		row, err := insertRefundChild(ctx, tx, userID, parent.ID, req.BankAccountID, date, child)
		if err != nil {
			return nil, fmt.Errorf("failed to insert refund child: %w", err)
		}
		group.Children = append(group.Children, *row)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return group, nil
}

// ReplaceRefundGroup updates the parent and atomically replaces the entire
// children set.
func ReplaceRefundGroup(ctx context.Context, pool *pgxpool.Pool, userID, parentID int64, req models.UpdateRefundRequest, date time.Time) (*models.RefundGroup, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	parentQuery := `
		UPDATE transactions
		SET amount = $1, bank_account_id = $2, date = $3, description = $4, updated_at = NOW()
		WHERE id = $5 AND user_id = $6 AND type = 'refund' AND parent_transaction_id IS NULL
		RETURNING ` + transactionColumns
	parent, err := scanTransaction(tx.QueryRow(ctx, parentQuery,
		req.Amount,
		req.BankAccountID,
		date,
		req.Description,
		parentID,
		userID,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to update refund parent: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE parent_transaction_id = $1 AND user_id = $2`, parentID, userID); err != nil {
		return nil, fmt.Errorf("failed to clear refund children: %w", err)
	}

	group := &models.RefundGroup{Parent: *parent}
	for _, child := range req.Children {
		row, err := insertRefundChild(ctx, tx, userID, parent.ID, req.BankAccountID, date, child)
		if err != nil {
			return nil, fmt.Errorf("failed to insert refund child: %w", err)
		}
		group.Children = append(group.Children, *row)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return group, nil
}

// RefundFilter narrows a refund-group listing.
type RefundFilter struct {
	BankAccountID int64
	StartDate     *time.Time
	EndDate       *time.Time
}

func GetRefundGroups(ctx context.Context, pool *pgxpool.Pool, userID int64, filter RefundFilter) ([]models.RefundGroup, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 AND type = 'refund' AND parent_transaction_id IS NULL`
	args := []interface{}{userID}

	if filter.BankAccountID != 0 {
		args = append(args, filter.BankAccountID)
		query += fmt.Sprintf(" AND bank_account_id = $%d", len(args))
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
	parents, err := collectTransactions(rows)
	if err != nil {
		return nil, err
	}

	groups := make([]models.RefundGroup, 0, len(parents))
	for _, parent := range parents {
		children, err := GetRefundChildren(ctx, pool, userID, parent.ID)
		if err != nil {
			return nil, err
		}
		groups = append(groups, models.RefundGroup{Parent: parent, Children: children})
	}
	return groups, nil
}

// ConvertTransactionToRefund rewrites a standalone transaction as a refund
// parent and seeds the single child produced by the engine, atomically.
func ConvertTransactionToRefund(ctx context.Context, pool *pgxpool.Pool, userID, transactionID int64, seed engine.RefundSeed) (*models.RefundGroup, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	parentQuery := `
		UPDATE transactions
		SET type = 'refund', category_id = NULL, destination_bank_account_id = NULL, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + transactionColumns
	parent, err := scanTransaction(tx.QueryRow(ctx, parentQuery, transactionID, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to convert transaction to refund: %w", err)
	}

	child, err := insertRefundChild(ctx, tx, userID, parent.ID, parent.BankAccountID, parent.Date, seed.Child)
	if err != nil {
		return nil, fmt.Errorf("failed to seed refund child: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &models.RefundGroup{Parent: *parent, Children: []models.Transaction{*child}}, nil
}

// ConvertTransactionFromRefund applies a conversion plan to a refund parent
// and destroys its children in the same transaction.
func ConvertTransactionFromRefund(ctx context.Context, pool *pgxpool.Pool, userID, transactionID int64, plan engine.ConversionPlan) (*models.Transaction, []int64, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	childRows, err := tx.Query(ctx, `SELECT id FROM transactions WHERE parent_transaction_id = $1 AND user_id = $2`, transactionID, userID)
	if err != nil {
		return nil, nil, err
	}
	var childIDs []int64
	for childRows.Next() {
		var id int64
		if err := childRows.Scan(&id); err != nil {
			childRows.Close()
			return nil, nil, err
		}
		childIDs = append(childIDs, id)
	}
	childRows.Close()
	if err := childRows.Err(); err != nil {
		return nil, nil, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE parent_transaction_id = $1 AND user_id = $2`, transactionID, userID); err != nil {
		return nil, nil, fmt.Errorf("failed to delete refund children: %w", err)
	}

	query := `
		UPDATE transactions
		SET type = $1, category_id = $2, destination_bank_account_id = $3, updated_at = NOW()
		WHERE id = $4 AND user_id = $5
		RETURNING ` + transactionColumns
	converted, err := scanTransaction(tx.QueryRow(ctx, query, plan.Type, plan.CategoryID, plan.DestinationBankAccountID, transactionID, userID))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to convert refund parent: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return converted, childIDs, nil
}
