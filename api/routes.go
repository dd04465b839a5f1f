package api

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.Health)

	transactions := r.Group("/transactions")
	transactions.POST("", h.CreateTransaction)

	protected := transactions.Group("", h.SessionMiddleware())
	protected.GET("", h.GetTransactions)
	protected.GET("/summary", h.GetSummary)
	protected.GET("/:id", h.GetTransaction)
}
