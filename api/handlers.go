package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nemopss/fin-ng/ledger/db"
	"github.com/nemopss/fin-ng/ledger/models"
	"github.com/nemopss/fin-ng/ledger/session"
)

type Handler struct {
	storage *db.Storage
	logger  zerolog.Logger
}

func NewHandler(s *db.Storage, logger zerolog.Logger) *Handler {
	return &Handler{storage: s, logger: logger}
}

// CreateTransaction godoc
// @Summary Create a transaction
// @Description Stores a credit (+amount) or a debit (-amount). Requests without a sessionId cookie get a new session in Set-Cookie.
// @Tags transactions
// @Accept json
// @Param transaction body models.CreateTransaction true "Transaction"
// @Success 201 "Created"
// @Header 201 {string} Set-Cookie "sessionId=<uuid>; Path=/; Max-Age=604800"
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /transactions [post]
func (h *Handler) CreateTransaction(c *gin.Context) {
	var req models.CreateTransaction
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: models.ValidationMessage(err)})
		return
	}

	input, err := req.Validate()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: models.ValidationMessage(err)})
		return
	}

	existing, _ := c.Cookie(session.CookieName)
	sessionID, minted := session.Resolve(existing)

	transaction := models.Transaction{
		ID:        uuid.New(),
		Title:     input.Title,
		Amount:    input.Amount,
		SessionID: sessionID,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.storage.CreateTransaction(c.Request.Context(), &transaction); err != nil {
		h.internalError(c, err)
		return
	}

	if minted {
		c.SetCookie(session.CookieName, sessionID, session.MaxAgeSeconds, session.CookiePath, "", false, false)
	}
	c.Status(http.StatusCreated)
}

// GetTransactions godoc
// @Summary List transactions of the current session
// @Tags transactions
// @Produce json
// @Success 200 {object} models.TransactionsResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /transactions [get]
func (h *Handler) GetTransactions(c *gin.Context) {
	transactions, err := h.storage.GetTransactions(c.Request.Context(), sessionFrom(c))
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.TransactionsResponse{Transactions: transactions})
}

// GetTransaction godoc
// @Summary Get a transaction by id
// @Description Transactions of other sessions are reported as null, not as an authorization error.
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID" format(uuid)
// @Success 200 {object} models.TransactionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /transactions/{id} [get]
func (h *Handler) GetTransaction(c *gin.Context) {
	id, err := models.ParseTransactionID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: models.ValidationMessage(err)})
		return
	}

	transaction, err := h.storage.GetTransaction(c.Request.Context(), id, sessionFrom(c))
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.TransactionResponse{Transaction: transaction})
}

// GetSummary godoc
// @Summary Balance of the current session
// @Description Sum of all signed amounts; 0 when the session has no transactions.
// @Tags transactions
// @Produce json
// @Success 200 {object} models.SummaryResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /transactions/summary [get]
func (h *Handler) GetSummary(c *gin.Context) {
	summary, err := h.storage.GetSummary(c.Request.Context(), sessionFrom(c))
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SummaryResponse{Summary: summary})
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Failure 503 {object} models.HealthResponse
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	if err := h.storage.Ping(c.Request.Context()); err != nil {
		h.logger.Error().Err(err).Msg("database ping failed")
		c.JSON(http.StatusServiceUnavailable, models.HealthResponse{OK: false})
		return
	}
	c.JSON(http.StatusOK, models.HealthResponse{OK: true})
}

func (h *Handler) internalError(c *gin.Context, err error) {
	h.logger.Error().Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("request failed")
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error"})
}
