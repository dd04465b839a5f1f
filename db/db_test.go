package db

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nemopss/fin-ng/ledger/models"
)

// setupTestDB открывает отдельное хранилище на каждый тест. Если задан
// POSTGRES_TEST_URL, используется Postgres с очисткой таблицы, иначе -
// именованная in-memory база SQLite.
func setupTestDB(t *testing.T) *Storage {
	t.Helper()

	if connStr := os.Getenv("POSTGRES_TEST_URL"); connStr != "" {
		store, err := NewStorage(Postgres, connStr)
		if err != nil {
			t.Fatalf("Failed to connect to test database: %v", err)
		}
		if _, err := store.DB.Exec("TRUNCATE TABLE transactions"); err != nil {
			t.Fatalf("Failed to truncate table: %v", err)
		}
		return store
	}

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	store, err := NewStorage(SQLite, fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	return store
}

func newTransaction(title string, amount int64, sessionID string) *models.Transaction {
	return &models.Transaction{
		ID:        uuid.New(),
		Title:     title,
		Amount:    decimal.NewFromInt(amount),
		SessionID: sessionID,
		CreatedAt: time.Now().UTC(),
	}
}

func TestNewStorageUnsupportedClient(t *testing.T) {
	_, err := NewStorage("mysql", "whatever")
	if err == nil || err.Error() != `unsupported database client "mysql"` {
		t.Errorf("Expected unsupported client error, got %v", err)
	}
}

func TestNewStorageIsIdempotent(t *testing.T) {
	store := setupTestDB(t)
	defer store.Close()

	// Повторное создание схемы не должно падать
	for _, stmt := range schemas[SQLite] {
		if _, err := store.DB.Exec(stmt); err != nil {
			t.Fatalf("Expected schema bootstrap to be repeatable, got %v", err)
		}
	}
}

func TestCreateAndGetTransactions(t *testing.T) {
	store := setupTestDB(t)
	defer store.Close()
	ctx := context.Background()
	session := uuid.NewString()

	salary := newTransaction("Salário", 3000, session)
	rent := newTransaction("Aluguel", -1000, session)
	for _, tx := range []*models.Transaction{salary, rent} {
		if err := store.CreateTransaction(ctx, tx); err != nil {
			t.Fatalf("Failed to create transaction: %v", err)
		}
	}

	transactions, err := store.GetTransactions(ctx, session)
	if err != nil {
		t.Fatalf("Failed to get transactions: %v", err)
	}
	if len(transactions) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(transactions))
	}

	// Порядок вставки сохраняется
	if transactions[0].ID != salary.ID || transactions[1].ID != rent.ID {
		t.Errorf("Expected insertion order [%s, %s], got [%s, %s]", salary.ID, rent.ID, transactions[0].ID, transactions[1].ID)
	}
	if transactions[0].Title != "Salário" || !transactions[0].Amount.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("Expected {Title: Salário, Amount: 3000}, got %+v", transactions[0])
	}
	if !transactions[1].Amount.Equal(decimal.NewFromInt(-1000)) {
		t.Errorf("Expected debit stored as -1000, got %s", transactions[1].Amount)
	}
	if transactions[0].SessionID != session {
		t.Errorf("Expected session_id %s, got %s", session, transactions[0].SessionID)
	}
	if transactions[0].CreatedAt.IsZero() {
		t.Error("Expected created_at to be set")
	}
}

func TestGetTransactionsEmpty(t *testing.T) {
	store := setupTestDB(t)
	defer store.Close()

	transactions, err := store.GetTransactions(context.Background(), uuid.NewString())
	if err != nil {
		t.Fatalf("Failed to get transactions: %v", err)
	}
	// Пустой список, а не nil: в JSON это [] вместо null
	if transactions == nil || len(transactions) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", transactions)
	}
}

func TestGetTransaction(t *testing.T) {
	store := setupTestDB(t)
	defer store.Close()
	ctx := context.Background()
	owner := uuid.NewString()

	tx := newTransaction("Freela", 2000, owner)
	if err := store.CreateTransaction(ctx, tx); err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}

	fetched, err := store.GetTransaction(ctx, tx.ID, owner)
	if err != nil {
		t.Fatalf("Failed to get transaction: %v", err)
	}
	if fetched == nil {
		t.Fatal("Expected transaction, got nil")
	}
	if fetched.ID != tx.ID || fetched.Title != "Freela" || !fetched.Amount.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("Expected transaction {Title: Freela, Amount: 2000}, got %+v", fetched)
	}

	// Чужая сессия не видит транзакцию
	fetched, err = store.GetTransaction(ctx, tx.ID, uuid.NewString())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if fetched != nil {
		t.Errorf("Expected nil transaction for another session, got %+v", fetched)
	}

	// Несуществующая транзакция
	fetched, err = store.GetTransaction(ctx, uuid.New(), owner)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if fetched != nil {
		t.Errorf("Expected nil transaction, got %+v", fetched)
	}
}

func TestGetSummary(t *testing.T) {
	store := setupTestDB(t)
	defer store.Close()
	ctx := context.Background()
	session := uuid.NewString()
	other := uuid.NewString()

	for _, tx := range []*models.Transaction{
		newTransaction("Salário", 3000, session),
		newTransaction("Freela", 2000, session),
		newTransaction("Aluguel", -1000, session),
		newTransaction("Other", 500, other),
	} {
		if err := store.CreateTransaction(ctx, tx); err != nil {
			t.Fatalf("Failed to create transaction: %v", err)
		}
	}

	summary, err := store.GetSummary(ctx, session)
	if err != nil {
		t.Fatalf("Failed to get summary: %v", err)
	}
	if !summary.Amount.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("Expected summary 4000, got %s", summary.Amount)
	}
}

func TestGetSummaryWithoutTransactions(t *testing.T) {
	store := setupTestDB(t)
	defer store.Close()

	summary, err := store.GetSummary(context.Background(), uuid.NewString())
	if err != nil {
		t.Fatalf("Failed to get summary: %v", err)
	}
	if !summary.Amount.IsZero() {
		t.Errorf("Expected summary 0 for empty session, got %s", summary.Amount)
	}
}

func TestDecimalAmounts(t *testing.T) {
	store := setupTestDB(t)
	defer store.Close()
	ctx := context.Background()
	session := uuid.NewString()

	tx := newTransaction("Café", 0, session)
	tx.Amount = decimal.RequireFromString("12.5")
	if err := store.CreateTransaction(ctx, tx); err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}

	fetched, err := store.GetTransaction(ctx, tx.ID, session)
	if err != nil || fetched == nil {
		t.Fatalf("Failed to get transaction: %v", err)
	}
	if !fetched.Amount.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("Expected amount 12.5, got %s", fetched.Amount)
	}
}

func TestGetSummaryFractionalAmounts(t *testing.T) {
	store := setupTestDB(t)
	defer store.Close()
	ctx := context.Background()
	session := uuid.NewString()

	// Дробные суммы складываются точно, без ошибки float
	for _, amount := range []string{"0.1", "0.2"} {
		tx := newTransaction("Troco", 0, session)
		tx.Amount = decimal.RequireFromString(amount)
		if err := store.CreateTransaction(ctx, tx); err != nil {
			t.Fatalf("Failed to create transaction: %v", err)
		}
	}
	debit := newTransaction("Café", 0, session)
	debit.Amount = decimal.RequireFromString("-0.05")
	if err := store.CreateTransaction(ctx, debit); err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}

	summary, err := store.GetSummary(ctx, session)
	if err != nil {
		t.Fatalf("Failed to get summary: %v", err)
	}
	if summary.Amount.String() != "0.25" {
		t.Errorf("Expected summary 0.25, got %s", summary.Amount)
	}
}
