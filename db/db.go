package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/nemopss/fin-ng/ledger/models"
)

// Поддерживаемые значения DATABASE_CLIENT (имена драйверов database/sql).
const (
	Postgres = "postgres"
	PGX      = "pgx"
	SQLite   = "sqlite3"
)

type Storage struct {
	DB *sql.DB
}

func NewStorage(driver, connStr string) (*Storage, error) {
	schema, ok := schemas[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database client %q", driver)
	}

	db, err := sql.Open(driver, connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if driver == SQLite {
		// in-memory база живёт, пока жив хотя бы один коннект
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) Close() {
	s.DB.Close()
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *Storage) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	_, err := s.DB.ExecContext(ctx,
		"INSERT INTO transactions (id, title, amount, session_id, created_at) VALUES ($1, $2, $3, $4, $5)",
		t.ID, t.Title, t.Amount, t.SessionID, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetTransactions возвращает транзакции сессии в естественном порядке хранения.
func (s *Storage) GetTransactions(ctx context.Context, sessionID string) ([]models.Transaction, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT id, title, amount, session_id, created_at FROM transactions WHERE session_id = $1",
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("select transactions: %w", err)
	}
	defer rows.Close()

	var transactions = []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.Title, &t.Amount, &t.SessionID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return transactions, nil
}

// GetTransaction ищет транзакцию по id в пределах сессии.
// Чужая или несуществующая транзакция - это (nil, nil).
func (s *Storage) GetTransaction(ctx context.Context, id uuid.UUID, sessionID string) (*models.Transaction, error) {
	var t models.Transaction
	err := s.DB.QueryRowContext(ctx,
		"SELECT id, title, amount, session_id, created_at FROM transactions WHERE id = $1 AND session_id = $2",
		id, sessionID).Scan(&t.ID, &t.Title, &t.Amount, &t.SessionID, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select transaction: %w", err)
	}
	return &t, nil
}

// GetSummary суммирует amount по сессии в decimal, без округлений драйвера.
// Для сессии без транзакций сумма равна 0.
func (s *Storage) GetSummary(ctx context.Context, sessionID string) (models.Summary, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT amount FROM transactions WHERE session_id = $1",
		sessionID)
	if err != nil {
		return models.Summary{}, fmt.Errorf("sum transactions: %w", err)
	}
	defer rows.Close()

	summary := models.Summary{Amount: decimal.Zero}
	for rows.Next() {
		var amount decimal.Decimal
		if err := rows.Scan(&amount); err != nil {
			return models.Summary{}, fmt.Errorf("scan amount: %w", err)
		}
		summary.Amount = summary.Amount.Add(amount)
	}
	if err := rows.Err(); err != nil {
		return models.Summary{}, fmt.Errorf("sum transactions: %w", err)
	}
	return summary, nil
}
