package storage

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// Queries holds the SQL used by SQLiteRepository. Rows map 1:1 to tables;
// timestamps are unix seconds.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    int64
}

type Transaction struct {
	ID          int64
	Type        string
	Category    string
	AmountCents int64
	Description string
	Receipt     string
	UserID      int64
	CreatedAt   int64
	UpdatedAt   int64
}

type Session struct {
	ID        string
	UserID    int64
	CreatedAt int64
	ExpiresAt int64
}

const createUser = `INSERT INTO users (username, password_hash, created_at)
VALUES (?, ?, ?)
RETURNING id, username, password_hash, created_at`

type CreateUserParams struct {
	Username     string
	PasswordHash string
	CreatedAt    int64
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRowContext(ctx, createUser, arg.Username, arg.PasswordHash, arg.CreatedAt)
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

const getUser = `SELECT id, username, password_hash, created_at FROM users WHERE id = ?`

func (q *Queries) GetUser(ctx context.Context, id int64) (User, error) {
	row := q.db.QueryRowContext(ctx, getUser, id)
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

const getUserByUsername = `SELECT id, username, password_hash, created_at FROM users WHERE username = ?`

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByUsername, username)
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

const createSession = `INSERT INTO sessions (id, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)`

func (q *Queries) CreateSession(ctx context.Context, arg Session) error {
	_, err := q.db.ExecContext(ctx, createSession, arg.ID, arg.UserID, arg.CreatedAt, arg.ExpiresAt)
	return err
}

const getSession = `SELECT id, user_id, created_at, expires_at FROM sessions WHERE id = ?`

func (q *Queries) GetSession(ctx context.Context, id string) (Session, error) {
	row := q.db.QueryRowContext(ctx, getSession, id)
	var s Session
	err := row.Scan(&s.ID, &s.UserID, &s.CreatedAt, &s.ExpiresAt)
	return s, err
}

const deleteSession = `DELETE FROM sessions WHERE id = ?`

func (q *Queries) DeleteSession(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteSession, id)
	return err
}

const deleteExpiredSessions = `DELETE FROM sessions WHERE expires_at <= ?`

func (q *Queries) DeleteExpiredSessions(ctx context.Context, now int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteExpiredSessions, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const transactionColumns = `id, type, category, amount_cents, description, receipt, user_id, created_at, updated_at`

const createTransaction = `INSERT INTO transactions (type, category, amount_cents, description, receipt, user_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + transactionColumns

type CreateTransactionParams struct {
	Type        string
	Category    string
	AmountCents int64
	Description string
	Receipt     string
	UserID      int64
	CreatedAt   int64
}

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) (Transaction, error) {
	row := q.db.QueryRowContext(ctx, createTransaction,
		arg.Type, arg.Category, arg.AmountCents, arg.Description, arg.Receipt,
		arg.UserID, arg.CreatedAt, arg.CreatedAt)
	return scanTransaction(row)
}

const getTransaction = `SELECT ` + transactionColumns + ` FROM transactions WHERE id = ?`

func (q *Queries) GetTransaction(ctx context.Context, id int64) (Transaction, error) {
	return scanTransaction(q.db.QueryRowContext(ctx, getTransaction, id))
}

const listTransactionsByUser = `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = ? ORDER BY id`

func (q *Queries) ListTransactionsByUser(ctx context.Context, userID int64) ([]Transaction, error) {
	rows, err := q.db.QueryContext(ctx, listTransactionsByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateTransaction = `UPDATE transactions
SET type = ?, category = ?, amount_cents = ?, description = ?, receipt = ?, updated_at = ?
WHERE id = ?`

type UpdateTransactionParams struct {
	ID          int64
	Type        string
	Category    string
	AmountCents int64
	Description string
	Receipt     string
	UpdatedAt   int64
}

func (q *Queries) UpdateTransaction(ctx context.Context, arg UpdateTransactionParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateTransaction,
		arg.Type, arg.Category, arg.AmountCents, arg.Description, arg.Receipt, arg.UpdatedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteTransaction = `DELETE FROM transactions WHERE id = ?`

func (q *Queries) DeleteTransaction(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteTransaction, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row rowScanner) (Transaction, error) {
	var t Transaction
	err := row.Scan(&t.ID, &t.Type, &t.Category, &t.AmountCents, &t.Description,
		&t.Receipt, &t.UserID, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}
