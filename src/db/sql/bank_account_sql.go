package db

import (
	"context"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/plaid/plaid-go/v41/plaid"

	"fintrack-server/src/models"
)

// centsFromFloat converts a currency-unit amount to cents, rounding half
// away from zero rather than truncating.
func centsFromFloat(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func GetAllBankAccounts(ctx context.Context, pool *pgxpool.Pool, userID int64, includeInactive bool) ([]models.BankAccount, error) {
	query := `
		SELECT id, user_id, name, bank_name, account_number, account_type, balance, is_active, created_at, updated_at
		FROM bank_accounts
		WHERE user_id = $1 AND (is_active OR $2)
		ORDER BY id
	`
	rows, err := pool.Query(ctx, query, userID, includeInactive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.BankAccount
	for rows.Next() {
		var a models.BankAccount
		err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.BankName, &a.AccountNumber, &a.AccountType, &a.Balance, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func CreateBankAccount(ctx context.Context, pool *pgxpool.Pool, account *models.BankAccount) (*models.BankAccount, error) {
	query := `
		INSERT INTO bank_accounts (user_id, name, bank_name, account_number, account_type, balance, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, name, bank_name, account_number, account_type, balance, is_active, created_at, updated_at
	`
	var a models.BankAccount
	err := pool.QueryRow(ctx, query, account.UserID, account.Name, account.BankName, account.AccountNumber, account.AccountType, account.Balance, account.IsActive).
		Scan(&a.ID, &a.UserID, &a.Name, &a.BankName, &a.AccountNumber, &a.AccountType, &a.Balance, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func UpdateBankAccount(ctx context.Context, pool *pgxpool.Pool, account *models.BankAccount) (*models.BankAccount, error) {
	query := `
		UPDATE bank_accounts
		SET name = $1, bank_name = $2, account_number = $3, account_type = $4, balance = $5, is_active = $6, updated_at = NOW()
		WHERE id = $7 AND user_id = $8
		RETURNING id, user_id, name, bank_name, account_number, account_type, balance, is_active, created_at, updated_at
	`
	var a models.BankAccount
	err := pool.QueryRow(ctx, query, account.Name, account.BankName, account.AccountNumber, account.AccountType, account.Balance, account.IsActive, account.ID, account.UserID).
		Scan(&a.ID, &a.UserID, &a.Name, &a.BankName, &a.AccountNumber, &a.AccountType, &a.Balance, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func DeleteBankAccount(ctx context.Context, pool *pgxpool.Pool, userID, accountID int64) error {
	query := `DELETE FROM bank_accounts WHERE id = $1 AND user_id = $2`
	cmd, err := pool.Exec(ctx, query, accountID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("bank account not found")
	}
	return nil
}

// SaveLinkedAccounts materializes accounts pulled from Plaid as bank_accounts
// rows. Balances come back in currency units; stored in cents.
func SaveLinkedAccounts(ctx context.Context, pool *pgxpool.Pool, userID int64, institutionName string, accounts []plaid.AccountBase) error {
	for _, acc := range accounts {
		var balance int64
		if current := acc.GetBalances().Current.Get(); current != nil {
			balance = centsFromFloat(*current)
		}
		mask := acc.GetMask()

		query := `
			INSERT INTO bank_accounts (user_id, name, bank_name, account_number, account_type, balance, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		`
		_, err := pool.Exec(ctx, query,
			userID,
			acc.GetName(),
			institutionName,
			mask,
			string(acc.GetType()),
			balance,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
