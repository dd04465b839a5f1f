package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateTransaction struct {
	Title  string          `json:"title" validate:"required" example:"Salário"`
	Amount float64         `json:"amount" validate:"required,gt=0,lt=10000000000,cents" example:"3000"`
	Type   TransactionType `json:"type" validate:"required,oneof=credit debit" enums:"credit,debit" example:"credit"`
}

// NewTransaction - проверенный запрос на создание с уже знаковой суммой.
type NewTransaction struct {
	Title  string
	Amount decimal.Decimal
}

// Validate проверяет запрос и вычисляет знаковую сумму:
// +amount для credit, -amount для debit.
func (r CreateTransaction) Validate() (NewTransaction, error) {
	if err := validate.Struct(r); err != nil {
		return NewTransaction{}, err
	}

	amount := decimal.NewFromFloat(r.Amount)
	if r.Type == Debit {
		amount = amount.Neg()
	}

	return NewTransaction{Title: r.Title, Amount: amount}, nil
}

type transactionParams struct {
	ID string `json:"id" validate:"required,uuid"`
}

// ParseTransactionID принимает только канонический вид UUID (8-4-4-4-12).
func ParseTransactionID(raw string) (uuid.UUID, error) {
	if err := validate.Struct(transactionParams{ID: strings.ToLower(raw)}); err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(raw)
}
