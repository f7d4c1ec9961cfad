package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/team_cfo_backend/internal/core/ports/services"
	"github.com/SscSPs/team_cfo_backend/internal/dto"
)

// spendIntentHandler handles HTTP requests related to spend intents.
type spendIntentHandler struct {
	spendIntentService portssvc.SpendIntentSvcFacade
	approvalService    portssvc.ApprovalSvcFacade
}

func newSpendIntentHandler(ss portssvc.SpendIntentSvcFacade, as portssvc.ApprovalSvcFacade) *spendIntentHandler {
	return &spendIntentHandler{
		spendIntentService: ss,
		approvalService:    as,
	}
}

// registerSpendIntentRoutes registers spend intent and approval routes under a team group.
func registerSpendIntentRoutes(rg *gin.RouterGroup, spendIntentService portssvc.SpendIntentSvcFacade, approvalService portssvc.ApprovalSvcFacade) {
	h := newSpendIntentHandler(spendIntentService, approvalService)

	intents := rg.Group("/spend-intents")
	{
		intents.POST("", h.createSpendIntent)
		intents.GET("", h.listSpendIntents)
		intents.GET("/:spendIntentID", h.getSpendIntent)
		intents.PUT("/:spendIntentID/cheque", h.recordCheque)
		intents.POST("/:spendIntentID/approvals", h.submitApproval)
		intents.GET("/:spendIntentID/approvals", h.getApprovals)
	}
}

// createSpendIntent godoc
// @Summary Propose a spend
// @Description Evaluates the team's authorization rules. Standing authorizations are AUTHORIZED immediately, the rest wait for signer approvals.
// @Tags spend-intents
// @Accept  json
// @Produce  json
// @Param   teamID path string true "Team ID"
// @Param   intent body dto.CreateSpendIntentRequest true "Spend intent"
// @Success 201 {object} dto.CreateSpendIntentResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed request"
// @Failure 403 {object} dto.ErrorResponse "Not a member of the team"
// @Failure 422 {object} dto.ErrorResponse "Invalid amount, method or references"
// @Failure 500 {object} dto.ErrorResponse "Failed to create spend intent"
// @Security BearerAuth
// @Router /teams/{teamID}/spend-intents [post]
func (h *spendIntentHandler) createSpendIntent(c *gin.Context) {
	logger, userID, teamID, ok := teamScope(c)
	if !ok {
		return
	}
	var req dto.CreateSpendIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	logger.Info("Received request to create spend intent", slog.String("payment_method", req.PaymentMethod))
	created, err := h.spendIntentService.CreateSpendIntent(c.Request.Context(), teamID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create spend intent")
		return
	}

	logger.Info("Spend intent created",
		slog.String("spend_intent_id", created.Intent.SpendIntentID),
		slog.String("status", string(created.Intent.Status)))
	c.JSON(http.StatusCreated, dto.CreateSpendIntentResponse{
		SpendIntent:          dto.ToSpendIntentResponse(&created.Intent),
		Decision:             created.Decision,
		DualApprovalAdvisory: created.DualApprovalAdvisory,
	})
}

// listSpendIntents godoc
// @Summary List spend intents
// @Tags spend-intents
// @Produce  json
// @Param   teamID path string true "Team ID"
// @Param   status query string false "Filter by status"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListSpendIntentsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 403 {object} dto.ErrorResponse "Not a member of the team"
// @Failure 500 {object} dto.ErrorResponse "Failed to list spend intents"
// @Security BearerAuth
// @Router /teams/{teamID}/spend-intents [get]
func (h *spendIntentHandler) listSpendIntents(c *gin.Context) {
	logger, userID, teamID, ok := teamScope(c)
	if !ok {
		return
	}
	var params dto.ListSpendIntentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	intents, next, err := h.spendIntentService.ListSpendIntents(c.Request.Context(), teamID, userID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list spend intents")
		return
	}
	c.JSON(http.StatusOK, dto.ListSpendIntentsResponse{
		SpendIntents: dto.ToSpendIntentResponses(intents),
		NextToken:    next,
	})
}

// getSpendIntent godoc
// @Summary Get a spend intent
// @Tags spend-intents
// @Produce  json
// @Param   teamID path string true "Team ID"
// @Param   spendIntentID path string true "Spend intent ID"
// @Success 200 {object} dto.SpendIntentResponse
// @Failure 404 {object} dto.ErrorResponse "Spend intent not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve spend intent"
// @Security BearerAuth
// @Router /teams/{teamID}/spend-intents/{spendIntentID} [get]
func (h *spendIntentHandler) getSpendIntent(c *gin.Context) {
	logger, userID, teamID, ok := teamScope(c)
	if !ok {
		return
	}
	intent, err := h.spendIntentService.GetSpendIntent(c.Request.Context(), teamID, c.Param("spendIntentID"), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve spend intent")
		return
	}
	c.JSON(http.StatusOK, dto.ToSpendIntentResponse(intent))
}

// recordCheque godoc
// @Summary Record cheque evidence
// @Description Stores the cheque number, second signer and image reference of a CHEQUE spend intent.
// @Tags spend-intents
// @Accept  json
// @Produce  json
// @Param   teamID path string true "Team ID"
// @Param   spendIntentID path string true "Spend intent ID"
// @Param   cheque body dto.ChequeMetadataRequest true "Cheque evidence"
// @Success 200 {object} domain.ChequeMetadata
// @Failure 404 {object} dto.ErrorResponse "Spend intent not found"
// @Failure 409 {object} dto.ErrorResponse "Spend intent is not a cheque"
// @Failure 500 {object} dto.ErrorResponse "Failed to record cheque"
// @Security BearerAuth
// @Router /teams/{teamID}/spend-intents/{spendIntentID}/cheque [put]
func (h *spendIntentHandler) recordCheque(c *gin.Context) {
	logger, userID, teamID, ok := teamScope(c)
	if !ok {
		return
	}
	var req dto.ChequeMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	cheque, err := h.spendIntentService.RecordChequeMetadata(c.Request.Context(), teamID, c.Param("spendIntentID"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to record cheque")
		return
	}
	c.JSON(http.StatusOK, cheque)
}

// submitApproval godoc
// @Summary Approve a spend intent
// @Description Records the caller's approval. The intent becomes AUTHORIZED once the quorum of signers and independent parent reps is met.
// @Tags approvals
// @Accept  json
// @Produce  json
// @Param   teamID path string true "Team ID"
// @Param   spendIntentID path string true "Spend intent ID"
// @Param   approval body dto.SubmitApprovalRequest false "Optional note"
// @Success 201 {object} dto.SubmitApprovalResponse
// @Failure 403 {object} dto.ErrorResponse "Caller cannot approve this intent"
// @Failure 404 {object} dto.ErrorResponse "Spend intent not found"
// @Failure 409 {object} dto.ErrorResponse "Already approved or no longer pending"
// @Failure 500 {object} dto.ErrorResponse "Failed to record approval"
// @Security BearerAuth
// @Router /teams/{teamID}/spend-intents/{spendIntentID}/approvals [post]
func (h *spendIntentHandler) submitApproval(c *gin.Context) {
	logger, userID, teamID, ok := teamScope(c)
	if !ok {
		return
	}
	var req dto.SubmitApprovalRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, logger, err)
			return
		}
	}

	spendIntentID := c.Param("spendIntentID")
	outcome, err := h.approvalService.SubmitApproval(c.Request.Context(), teamID, spendIntentID, userID, req.Note)
	if err != nil {
		respondError(c, logger, err, "Failed to record approval")
		return
	}

	logger.Info("Approval recorded",
		slog.String("spend_intent_id", spendIntentID),
		slog.Bool("authorized", outcome.Transitioned))
	c.JSON(http.StatusCreated, dto.SubmitApprovalResponse{
		Approval: outcome.Approval,
		Summary:  outcome.Summary,
	})
}

// getApprovals godoc
// @Summary Get the approval state of a spend intent
// @Tags approvals
// @Produce  json
// @Param   teamID path string true "Team ID"
// @Param   spendIntentID path string true "Spend intent ID"
// @Success 200 {object} domain.ApprovalSummary
// @Failure 404 {object} dto.ErrorResponse "Spend intent not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve approvals"
// @Security BearerAuth
// @Router /teams/{teamID}/spend-intents/{spendIntentID}/approvals [get]
func (h *spendIntentHandler) getApprovals(c *gin.Context) {
	logger, userID, teamID, ok := teamScope(c)
	if !ok {
		return
	}
	summary, err := h.approvalService.GetApprovalSummary(c.Request.Context(), teamID, c.Param("spendIntentID"), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve approvals")
		return
	}
	c.JSON(http.StatusOK, summary)
}
