package api

import (
	"net/http"

	reqdto "storefront-api/internal/handler/dto/request"
	resdto "storefront-api/internal/handler/dto/response"
	"storefront-api/internal/handler/httperr"
	"storefront-api/internal/usecase/commands"
	"storefront-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReconciliationHandler exposes charges that were captured without an order.
type ReconciliationHandler struct {
	cmds commands.ReconciliationCommands
	q    queries.ReconciliationQueries
}

func NewReconciliationHandler(cmds commands.ReconciliationCommands, q queries.ReconciliationQueries) *ReconciliationHandler {
	return &ReconciliationHandler{cmds: cmds, q: q}
}

// @Summary List pending reconciliations
// @Tags reconciliation
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (max 100)"
// @Success 200 {array} resdto.ReconciliationJobResponse
// @Failure 403 {object} httperr.Response
// @Router /reconciliation [get]
func (h *ReconciliationHandler) ListPending(c *gin.Context) {
	limit, ok := intQuery(c, "limit")
	if !ok {
		return
	}
	jobs, err := h.q.ListPending(c.Request.Context(), limit)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromNotificationJobViews(jobs))
}

// @Summary Resolve reconciliation
// @Description Mark a captured-but-orderless charge as handled
// @Tags reconciliation
// @Accept json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Param request body reqdto.ResolveReconciliationRequest false "Resolution note"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /reconciliation/{id}/resolve [post]
func (h *ReconciliationHandler) Resolve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, httperr.CodeValidation, err, "Invalid id", nil)
		return
	}
	var req reqdto.ResolveReconciliationRequest
	if c.Request.ContentLength > 0 {
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, httperr.CodeValidation, bindErr, "Invalid request", nil)
			return
		}
	}

	if err := h.cmds.Resolve(c.Request.Context(), id, req.Note); err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
