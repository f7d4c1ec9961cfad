package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/team_cfo_backend/internal/core/ports/services"
	"github.com/SscSPs/team_cfo_backend/internal/dto"
)

// bankFeedHandler handles bank-feed ingestion, reconciliation and the exceptions they raise.
type bankFeedHandler struct {
	bankFeedService       portssvc.BankFeedSvcFacade
	reconciliationService portssvc.ReconciliationSvcFacade
}

func registerBankFeedRoutes(rg *gin.RouterGroup, bankFeedService portssvc.BankFeedSvcFacade, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := &bankFeedHandler{
		bankFeedService:       bankFeedService,
		reconciliationService: reconciliationService,
	}

	bank := rg.Group("/bank-transactions")
	{
		bank.POST("/ingest", h.ingest)
		bank.POST("/:externalID/reconcile", h.reconcile)
	}
	rg.GET("/policy-exceptions", h.listPolicyExceptions)
}

// ingest godoc
// @Summary Ingest bank-feed transactions
// @Description Upserts a batch by external id. Rows that fail are reported and never abort the batch.
// @Tags bank-transactions
// @Accept  json
// @Produce  json
// @Param   teamID path string true "Team ID"
// @Param   batch body dto.IngestBankTransactionsRequest true "Batch"
// @Success 200 {object} domain.IngestionResult
// @Failure 400 {object} dto.ErrorResponse "Malformed request"
// @Failure 403 {object} dto.ErrorResponse "Caller cannot ingest for this team"
// @Failure 500 {object} dto.ErrorResponse "Failed to ingest bank transactions"
// @Security BearerAuth
// @Router /teams/{teamID}/bank-transactions/ingest [post]
func (h *bankFeedHandler) ingest(c *gin.Context) {
	logger, userID, teamID, ok := teamScope(c)
	if !ok {
		return
	}
	var req dto.IngestBankTransactionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	result, err := h.bankFeedService.IngestBankTransactions(c.Request.Context(), teamID, req.Transactions, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to ingest bank transactions")
		return
	}
	logger.Info("Bank transactions ingested",
		slog.Int("inserted", result.Inserted),
		slog.Int("updated", result.Updated),
		slog.Int("errored", result.Errored))
	c.JSON(http.StatusOK, result)
}

// reconcile godoc
// @Summary Reconcile a bank transaction
// @Description Matches the bank transaction to a spend intent, records the ledger entry and runs the exception detectors. No match is a successful outcome.
// @Tags bank-transactions
// @Produce  json
// @Param   teamID path string true "Team ID"
// @Param   externalID path string true "Bank-feed transaction id"
// @Success 200 {object} domain.ReconciliationResult
// @Failure 404 {object} dto.ErrorResponse "Bank transaction not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to reconcile"
// @Security BearerAuth
// @Router /teams/{teamID}/bank-transactions/{externalID}/reconcile [post]
func (h *bankFeedHandler) reconcile(c *gin.Context) {
	logger, userID, teamID, ok := teamScope(c)
	if !ok {
		return
	}
	externalID := c.Param("externalID")
	result, err := h.reconciliationService.Reconcile(c.Request.Context(), teamID, externalID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to reconcile")
		return
	}
	logger.Info("Bank transaction reconciled",
		slog.String("external_id", externalID),
		slog.Bool("matched", result.Matched),
		slog.Int("exceptions", len(result.Exceptions)))
	c.JSON(http.StatusOK, result)
}

// listPolicyExceptions godoc
// @Summary List policy exceptions
// @Tags policy-exceptions
// @Produce  json
// @Param   teamID path string true "Team ID"
// @Param   type query string false "Filter by exception type"
// @Param   severity query string false "Filter by severity"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListPolicyExceptionsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 500 {object} dto.ErrorResponse "Failed to list policy exceptions"
// @Security BearerAuth
// @Router /teams/{teamID}/policy-exceptions [get]
func (h *bankFeedHandler) listPolicyExceptions(c *gin.Context) {
	logger, userID, teamID, ok := teamScope(c)
	if !ok {
		return
	}
	var params dto.ListPolicyExceptionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	exceptions, next, err := h.reconciliationService.ListPolicyExceptions(c.Request.Context(), teamID, userID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list policy exceptions")
		return
	}
	c.JSON(http.StatusOK, dto.ListPolicyExceptionsResponse{PolicyExceptions: exceptions, NextToken: next})
}
