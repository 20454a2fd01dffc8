package handler

import (
	"net/http"
	"strconv"

	"workflowhub/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboard DashboardService
	types     TaskTypeService
}

func NewDashboardHandler(dashboard DashboardService, types TaskTypeService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, types: types}
}

// queryLimit reads an optional positive integer; 0 selects the service default.
func queryLimit(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   service.CodeValidation,
			Message: "Invalid " + name,
			Details: map[string]any{"field": name},
		})
		return 0, false
	}
	return n, true
}

// Overview возвращает сводку по проектам и задачам
// @Summary      Dashboard
// @Tags         Dashboard
// @Security     BearerAuth
// @Produce      json
// @Param        projects query int false "Active projects to include (default 5)"
// @Param        activity query int false "Recent activity entries (default 10)"
// @Success      200 {object} service.Dashboard
// @Router       /dashboard [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	projects, ok := queryLimit(c, "projects")
	if !ok {
		return
	}
	activity, ok := queryLimit(c, "activity")
	if !ok {
		return
	}

	dash, err := h.dashboard.Overview(c.Request.Context(), service.DashboardOptions{
		ActiveProjectLimit: projects,
		ActivityLimit:      activity,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

// RecentActivity возвращает последние события по всей системе
// @Summary      Recent activity
// @Tags         Activity
// @Security     BearerAuth
// @Produce      json
// @Param        limit query int false "Entries to return (default 10)"
// @Success      200 {array} audit.TimelineEntry
// @Router       /activity/recent [get]
func (h *DashboardHandler) RecentActivity(c *gin.Context) {
	limit, ok := queryLimit(c, "limit")
	if !ok {
		return
	}

	entries, err := h.dashboard.RecentActivity(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// TaskTypes возвращает активные типы задач
// @Summary      List task types
// @Tags         Tasks
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} model.TaskType
// @Router       /task-types [get]
func (h *DashboardHandler) TaskTypes(c *gin.Context) {
	types, err := h.types.ListTaskTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}
