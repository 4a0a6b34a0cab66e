package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/core/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// concilHandler handles HTTP requests related to reconciliation groups.
type concilHandler struct {
	concilService portssvc.ConcilSvc
	formats       services.Formatters
}

func registerConcilRoutes(rg *gin.RouterGroup, concilService portssvc.ConcilSvc, formats services.Formatters) {
	h := &concilHandler{concilService: concilService, formats: formats}

	concil := rg.Group("/concil")
	{
		concil.POST("", h.createGroup)
		concil.GET("/:id", h.getGroup)
		concil.DELETE("/:id", h.deleteGroup)
		concil.POST("/:id/members", h.addMember)
		concil.GET("/members/:type/:otherID", h.getGroupByMember)
	}
}

func (h *concilHandler) createGroup(c *gin.Context) {
	var req dto.CreateConcilRequest
	if !bindJSON(c, &req, "CreateConcil") {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	dvalue, err := h.formats.Dates.Parse(req.DValue)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid value date: " + req.DValue})
		return
	}

	group, err := h.concilService.CreateGroup(c.Request.Context(), dvalue, userID)
	if err != nil {
		respondError(c, err, "Failed to create reconciliation group")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Reconciliation group created", slog.Int64("concil_id", group.ID))
	c.JSON(http.StatusCreated, dto.ToConcilGroupResponse(group))
}

func (h *concilHandler) getGroup(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	group, err := h.concilService.GetGroup(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve reconciliation group")
		return
	}
	c.JSON(http.StatusOK, dto.ToConcilGroupResponse(group))
}

func (h *concilHandler) deleteGroup(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	if err := h.concilService.DeleteGroup(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete reconciliation group")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *concilHandler) addMember(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	var req dto.AddConcilMemberRequest
	if !bindJSON(c, &req, "AddConcilMember") {
		return
	}
	group, err := h.concilService.AddMember(c.Request.Context(), id, domain.ConcilMemberType(req.Type), req.OtherID)
	if err != nil {
		respondError(c, err, "Failed to add reconciliation member")
		return
	}
	c.JSON(http.StatusOK, dto.ToConcilGroupResponse(group))
}

func (h *concilHandler) getGroupByMember(c *gin.Context) {
	memberType, err := domain.ParseConcilMemberType(c.Param("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	otherID, ok := int64Param(c, "otherID")
	if !ok {
		return
	}
	group, err := h.concilService.GetGroupByMember(c.Request.Context(), memberType, otherID)
	if err != nil {
		respondError(c, err, "Failed to retrieve reconciliation group")
		return
	}
	c.JSON(http.StatusOK, dto.ToConcilGroupResponse(group))
}
