package db

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	username TEXT NOT NULL UNIQUE,
	password_hash BYTEA NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS categories (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	type TEXT NOT NULL CHECK (type IN ('expense', 'income', 'investment')),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (user_id, name, type)
);

CREATE TABLE IF NOT EXISTS bank_accounts (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	bank_name TEXT NOT NULL,
	account_number TEXT,
	account_type TEXT NOT NULL,
	balance BIGINT NOT NULL DEFAULT 0,
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS transactions (
	id BIGSERIAL PRIMARY KEY,
	transaction_id TEXT,
	user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	amount BIGINT NOT NULL CHECK (amount > 0),
	type TEXT NOT NULL CHECK (type IN ('expense', 'income', 'investment', 'transfer', 'refund')),
	category_id BIGINT REFERENCES categories(id),
	bank_account_id BIGINT NOT NULL REFERENCES bank_accounts(id),
	destination_bank_account_id BIGINT REFERENCES bank_accounts(id),
	parent_transaction_id BIGINT REFERENCES transactions(id) ON DELETE CASCADE,
	date DATE NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CHECK (destination_bank_account_id IS NULL OR destination_bank_account_id <> bank_account_id)
);

CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions (user_id, date);
CREATE INDEX IF NOT EXISTS idx_transactions_parent ON transactions (parent_transaction_id);
`
