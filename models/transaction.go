package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Суммы отдаются клиенту числом, а не строкой
	decimal.MarshalJSONWithoutQuotes = true
}

type TransactionType string

const (
	Credit TransactionType = "credit"
	Debit  TransactionType = "debit"
)

// Transaction - строка таблицы transactions. Знак Amount кодирует тип:
// credit хранится положительным, debit - отрицательным.
type Transaction struct {
	ID        uuid.UUID       `json:"id" swaggertype:"string" format:"uuid" example:"5f0c8a34-2d0e-4a8e-9c1a-3d4f5b6c7d8e"`
	Title     string          `json:"title" example:"Salário"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"number" example:"3000"`
	SessionID string          `json:"session_id" example:"0b7a4c2e-8f1d-4e6a-b3c5-9d2e1f0a7b6c"`
	CreatedAt time.Time       `json:"created_at" example:"2024-01-02T15:04:05Z"`
}

type Summary struct {
	Amount decimal.Decimal `json:"amount" swaggertype:"number" example:"2000"`
}
