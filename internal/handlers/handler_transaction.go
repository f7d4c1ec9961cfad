package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/team_cfo_backend/internal/core/ports/services"
	"github.com/SscSPs/team_cfo_backend/internal/dto"
)

// transactionHandler handles HTTP requests related to the team ledger.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := &transactionHandler{transactionService: transactionService}

	txns := rg.Group("/transactions")
	{
		txns.POST("", h.createTransaction)
		txns.GET("", h.listTransactions)
		txns.GET("/:transactionID", h.getTransaction)
		txns.POST("/:transactionID/revalidate", h.revalidateTransaction)
		txns.POST("/:transactionID/resolve", h.resolveTransaction)
	}
}

// createTransaction godoc
// @Summary Record a ledger transaction
// @Description Records a manual entry and runs the compliance rules against it.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   teamID path string true "Team ID"
// @Param   transaction body dto.CreateTransactionRequest true "Transaction"
// @Success 201 {object} domain.Transaction
// @Failure 400 {object} dto.ErrorResponse "Malformed request"
// @Failure 422 {object} dto.ErrorResponse "Invalid amount or references"
// @Failure 500 {object} dto.ErrorResponse "Failed to record transaction"
// @Security BearerAuth
// @Router /teams/{teamID}/transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger, userID, teamID, ok := teamScope(c)
	if !ok {
		return
	}
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), teamID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to record transaction")
		return
	}
	logger.Info("Transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("status", string(txn.Status)))
	c.JSON(http.StatusCreated, txn)
}

// listTransactions godoc
// @Summary List ledger transactions
// @Tags transactions
// @Produce  json
// @Param   teamID path string true "Team ID"
// @Param   status query string false "Filter by status"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 500 {object} dto.ErrorResponse "Failed to list transactions"
// @Security BearerAuth
// @Router /teams/{teamID}/transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger, userID, teamID, ok := teamScope(c)
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	txns, next, err := h.transactionService.ListTransactions(c.Request.Context(), teamID, userID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{Transactions: txns, NextToken: next})
}

// getTransaction godoc
// @Summary Get a ledger transaction
// @Tags transactions
// @Produce  json
// @Param   teamID path string true "Team ID"
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} domain.Transaction
// @Failure 404 {object} dto.ErrorResponse "Transaction not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve transaction"
// @Security BearerAuth
// @Router /teams/{teamID}/transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger, userID, teamID, ok := teamScope(c)
	if !ok {
		return
	}
	txn, err := h.transactionService.GetTransaction(c.Request.Context(), teamID, c.Param("transactionID"), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, txn)
}

// revalidateTransaction godoc
// @Summary Re-run compliance rules
// @Description Re-validates a transaction against the current policy and budget. Resolved transactions are returned unchanged.
// @Tags transactions
// @Produce  json
// @Param   teamID path string true "Team ID"
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} domain.Transaction
// @Failure 404 {object} dto.ErrorResponse "Transaction not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to revalidate transaction"
// @Security BearerAuth
// @Router /teams/{teamID}/transactions/{transactionID}/revalidate [post]
func (h *transactionHandler) revalidateTransaction(c *gin.Context) {
	logger, userID, teamID, ok := teamScope(c)
	if !ok {
		return
	}
	txn, err := h.transactionService.RevalidateTransaction(c.Request.Context(), teamID, c.Param("transactionID"), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to revalidate transaction")
		return
	}
	c.JSON(http.StatusOK, txn)
}

// resolveTransaction godoc
// @Summary Resolve an exception
// @Description Marks an EXCEPTION transaction RESOLVED. The violations stay on record.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   teamID path string true "Team ID"
// @Param   transactionID path string true "Transaction ID"
// @Param   resolution body dto.ResolveTransactionRequest true "Resolution note"
// @Success 200 {object} domain.Transaction
// @Failure 403 {object} dto.ErrorResponse "Caller cannot resolve exceptions"
// @Failure 404 {object} dto.ErrorResponse "Transaction not found"
// @Failure 409 {object} dto.ErrorResponse "Transaction is not an exception"
// @Failure 500 {object} dto.ErrorResponse "Failed to resolve transaction"
// @Security BearerAuth
// @Router /teams/{teamID}/transactions/{transactionID}/resolve [post]
func (h *transactionHandler) resolveTransaction(c *gin.Context) {
	logger, userID, teamID, ok := teamScope(c)
	if !ok {
		return
	}
	var req dto.ResolveTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	txn, err := h.transactionService.ResolveTransaction(c.Request.Context(), teamID, c.Param("transactionID"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to resolve transaction")
		return
	}
	logger.Info("Transaction resolved", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusOK, txn)
}
