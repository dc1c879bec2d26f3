package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/apperrors"
	portssvc "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/services"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/dto"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/middleware"
)

// roleHandler handles HTTP requests related to roles.
type roleHandler struct {
	roleService portssvc.RoleSvcFacade
}

func newRoleHandler(rs portssvc.RoleSvcFacade) *roleHandler {
	return &roleHandler{roleService: rs}
}

// RegisterRoleRoutes registers the role administration routes.
func RegisterRoleRoutes(rg *gin.RouterGroup, roleService portssvc.RoleSvcFacade) {
	h := newRoleHandler(roleService)

	rg.POST("/add-role", h.createRole)
	rg.POST("/map-role", h.mapRole)
	rg.POST("/all-roles", h.listRoles)
	rg.POST("/delete-role", h.deleteRole)
	rg.POST("/update-role", h.updateRole)
}

// createRole godoc
// @Summary Create a role
// @Tags roles
// @Accept json
// @Produce json
// @Param role body dto.CreateRoleRequest true "Role details"
// @Success 201 {object} dto.Response{data=dto.RoleResponse}
// @Failure 400 {object} dto.Response
// @Failure 409 {object} dto.Response "Role name taken"
// @Failure 500 {object} dto.Response
// @Security BearerAuth
// @Router /admin/add-role [post]
func (h *roleHandler) createRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRoleRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	logger.Info("Received request to create role", slog.String("role", req.Role))

	role, err := h.roleService.CreateRole(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "create role")
		return
	}

	logger.Info("Role created successfully", slog.String("role_id", role.ID))
	c.JSON(http.StatusCreated, dto.OK("Role created successfully", dto.ToRoleResponse(role)))
}

// mapRole godoc
// @Summary Assign users to a role
// @Tags roles
// @Accept json
// @Produce json
// @Param request body dto.MapRoleRequest true "Role and users"
// @Success 200 {object} dto.Response{data=dto.RoleResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Failure 500 {object} dto.Response
// @Security BearerAuth
// @Router /admin/map-role [post]
func (h *roleHandler) mapRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.MapRoleRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	role, err := h.roleService.MapUsersToRole(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "map users to role")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Role mapped successfully", dto.ToRoleResponse(role)))
}

// listRoles godoc
// @Summary List roles
// @Tags roles
// @Produce json
// @Success 200 {object} dto.Response{data=[]dto.RoleResponse}
// @Failure 500 {object} dto.Response
// @Security BearerAuth
// @Router /admin/all-roles [post]
func (h *roleHandler) listRoles(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	roles, err := h.roleService.ListRoles(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "list roles")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Roles fetched successfully", dto.ToRoleResponses(roles)))
}

// deleteRole godoc
// @Summary Delete a role and its permissions
// @Tags roles
// @Accept json
// @Produce json
// @Param request body dto.RoleIDRequest true "Role"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Failure 500 {object} dto.Response
// @Security BearerAuth
// @Router /admin/delete-role [post]
func (h *roleHandler) deleteRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RoleIDRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	if err := h.roleService.DeleteRole(c.Request.Context(), req.RoleID); err != nil {
		respondError(c, logger, err, "delete role")
		return
	}
	logger.Info("Role deleted", slog.String("role_id", req.RoleID))
	c.JSON(http.StatusOK, dto.OK("Role deleted successfully", []any{}))
}

// updateRole godoc
// @Summary Update a role
// @Description Omitted fields keep their value. Permissions no longer listed are deleted.
// @Tags roles
// @Accept json
// @Produce json
// @Param request body dto.UpdateRoleRequest true "Changes"
// @Success 200 {object} dto.Response{data=dto.RoleResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Failure 409 {object} dto.Response
// @Failure 500 {object} dto.Response
// @Security BearerAuth
// @Router /admin/update-role [post]
func (h *roleHandler) updateRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateRoleRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	role, err := h.roleService.UpdateRole(c.Request.Context(), req)
	if errors.Is(err, apperrors.ErrNotFound) {
		logger.Warn("Role not found", slog.String("role_id", req.RoleID))
		c.JSON(http.StatusNotFound, dto.Fail("Role not found"))
		return
	}
	if err != nil {
		respondError(c, logger, err, "update role")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Role updated successfully", dto.ToRoleResponse(role)))
}
