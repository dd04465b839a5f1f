package models

type TransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}

type TransactionResponse struct {
	Transaction *Transaction `json:"transaction"`
}

type SummaryResponse struct {
	Summary Summary `json:"summary"`
}

type HealthResponse struct {
	OK bool `json:"ok" example:"true"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"Unauthorized"`
}
