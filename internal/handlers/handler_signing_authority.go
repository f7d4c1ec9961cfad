package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/team_cfo_backend/internal/core/ports/services"
	"github.com/SscSPs/team_cfo_backend/internal/dto"
)

type signingAuthorityHandler struct {
	teamService portssvc.TeamSvcFacade
}

func registerSigningAuthorityRoutes(rg *gin.RouterGroup, teamService portssvc.TeamSvcFacade) {
	h := &signingAuthorityHandler{teamService: teamService}

	signers := rg.Group("/signing-authorities")
	{
		signers.POST("", h.appoint)
		signers.PATCH("/:userID", h.update)
	}
}

// appoint godoc
// @Summary Appoint a signer
// @Description Grants signing authority to a team member. Treasurer only.
// @Tags signing-authorities
// @Accept  json
// @Produce  json
// @Param   teamID path string true "Team ID"
// @Param   signer body dto.AppointSigningAuthorityRequest true "Signer"
// @Success 201 {object} domain.TeamSigningAuthority
// @Failure 403 {object} dto.ErrorResponse "Caller is not the treasurer"
// @Failure 409 {object} dto.ErrorResponse "User already holds signing authority"
// @Failure 500 {object} dto.ErrorResponse "Failed to appoint signer"
// @Security BearerAuth
// @Router /teams/{teamID}/signing-authorities [post]
func (h *signingAuthorityHandler) appoint(c *gin.Context) {
	logger, userID, teamID, ok := teamScope(c)
	if !ok {
		return
	}
	var req dto.AppointSigningAuthorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	authority, err := h.teamService.AppointSigningAuthority(c.Request.Context(), teamID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to appoint signer")
		return
	}
	logger.Info("Signer appointed", slog.String("signer_user_id", req.UserID))
	c.JSON(http.StatusCreated, authority)
}

// update godoc
// @Summary Update a signer
// @Description Changes a signer's flags. Approvals already recorded keep their snapshot.
// @Tags signing-authorities
// @Accept  json
// @Produce  json
// @Param   teamID path string true "Team ID"
// @Param   userID path string true "Signer user ID"
// @Param   signer body dto.UpdateSigningAuthorityRequest true "Changes"
// @Success 200 {object} domain.TeamSigningAuthority
// @Failure 403 {object} dto.ErrorResponse "Caller is not the treasurer"
// @Failure 404 {object} dto.ErrorResponse "Signer not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to update signer"
// @Security BearerAuth
// @Router /teams/{teamID}/signing-authorities/{userID} [patch]
func (h *signingAuthorityHandler) update(c *gin.Context) {
	logger, userID, teamID, ok := teamScope(c)
	if !ok {
		return
	}
	var req dto.UpdateSigningAuthorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	authority, err := h.teamService.UpdateSigningAuthority(c.Request.Context(), teamID, c.Param("userID"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update signer")
		return
	}
	c.JSON(http.StatusOK, authority)
}
