package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	portssvc "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/services"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/dto"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/middleware"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/validation"
)

const (
	projectLogoField = "projectLogo"
	maxLogoBytes     = 5 << 20
)

// projectHandler handles projects and their rosters.
type projectHandler struct {
	projectService     portssvc.ProjectSvcFacade
	projectTeamService portssvc.ProjectTeamSvcFacade
}

// RegisterProjectRoutes registers the /api/project routes.
func RegisterProjectRoutes(rg *gin.RouterGroup, projectService portssvc.ProjectSvcFacade) {
	h := &projectHandler{projectService: projectService}

	rg.POST("/add", h.createProject)
	rg.POST("/list", h.listProjects)
	rg.GET("/get/:id", h.getProject)
	rg.PUT("/update/:id", h.updateProject)
	rg.DELETE("/delete/:id", h.deleteProject)
}

// RegisterProjectTeamRoutes registers roster administration on the admin group.
func RegisterProjectTeamRoutes(rg *gin.RouterGroup, projectTeamService portssvc.ProjectTeamSvcFacade) {
	h := &projectHandler{projectTeamService: projectTeamService}

	rg.POST("/addprojectteam", h.createProjectTeam)
	rg.POST("/getprojectteams", h.listProjectTeams)
}

// bindProjectForm reads the multipart form and the optional logo.
// The caller must close the returned upload when it is not nil.
func bindProjectForm(c *gin.Context, logger *slog.Logger) (dto.ProjectForm, *dto.FileUpload, func(), bool) {
	var form dto.ProjectForm
	if err := c.ShouldBind(&form); err != nil {
		logger.Warn("Failed to bind project form", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail(validation.BindingMessage(err)))
		return form, nil, nil, false
	}

	header, err := c.FormFile(projectLogoField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return form, nil, func() {}, true
		}
		logger.Warn("Failed to read project logo", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid project logo"))
		return form, nil, nil, false
	}
	if header.Size > maxLogoBytes {
		c.JSON(http.StatusBadRequest, dto.Fail("Project logo must be at most 5MB"))
		return form, nil, nil, false
	}
	file, err := header.Open()
	if err != nil {
		logger.Error("Failed to open project logo", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Fail(internalErrorMessage))
		return form, nil, nil, false
	}
	closeFn := func() {
		if cerr := file.Close(); cerr != nil {
			logger.Warn("Failed to close project logo", slog.String("error", cerr.Error()))
		}
	}
	return form, &dto.FileUpload{Filename: header.Filename, Body: file}, closeFn, true
}

// createProject godoc
// @Summary Create a project
// @Tags projects
// @Accept multipart/form-data
// @Produce json
// @Param clientName formData string true "Client"
// @Param projectName formData string true "Project name"
// @Param projectLead formData string true "Lead user ID"
// @Param status formData string true "Status"
// @Param projectLogo formData file false "Logo"
// @Success 201 {object} dto.Response{data=domain.Project}
// @Failure 400 {object} dto.Response
// @Failure 503 {object} dto.Response "Uploads disabled"
// @Security BearerAuth
// @Router /project/add [post]
func (h *projectHandler) createProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	form, logo, closeLogo, ok := bindProjectForm(c, logger)
	if !ok {
		return
	}
	defer closeLogo()

	project, err := h.projectService.CreateProject(c.Request.Context(), form, logo)
	if err != nil {
		respondError(c, logger, err, "create project")
		return
	}
	logger.Info("Project created", slog.String("project_id", project.ID))
	c.JSON(http.StatusCreated, dto.OK("Project created successfully", project))
}

// listProjects godoc
// @Summary List projects
// @Tags projects
// @Accept json
// @Produce json
// @Param request body dto.ListProjectsRequest false "Filters and page"
// @Success 200 {object} dto.Response{data=dto.ListProjectsResponse}
// @Security BearerAuth
// @Router /project/list [post]
func (h *projectHandler) listProjects(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ListProjectsRequest
	if !bindOptionalJSON(c, logger, &req) {
		return
	}
	resp, err := h.projectService.ListProjects(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "list projects")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Projects fetched successfully", resp))
}

// getProject godoc
// @Summary Get a project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} dto.Response{data=domain.Project}
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /project/get/{id} [get]
func (h *projectHandler) getProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	project, err := h.projectService.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "get project")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Project fetched successfully", project))
}

// updateProject godoc
// @Summary Update a project
// @Description Replaces the project's fields. A new logo replaces the stored one.
// @Tags projects
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Project ID"
// @Param projectLogo formData file false "Logo"
// @Success 200 {object} dto.Response{data=domain.Project}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /project/update/{id} [put]
func (h *projectHandler) updateProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("project_id", c.Param("id")))
	form, logo, closeLogo, ok := bindProjectForm(c, logger)
	if !ok {
		return
	}
	defer closeLogo()

	project, err := h.projectService.UpdateProject(c.Request.Context(), c.Param("id"), form, logo)
	if err != nil {
		respondError(c, logger, err, "update project")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Project updated successfully", project))
}

// deleteProject godoc
// @Summary Delete a project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /project/delete/{id} [delete]
func (h *projectHandler) deleteProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("project_id", c.Param("id")))
	if err := h.projectService.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, logger, err, "delete project")
		return
	}
	logger.Info("Project deleted")
	c.JSON(http.StatusOK, dto.OK("Project deleted successfully", []any{}))
}

// createProjectTeam godoc
// @Summary Define a project roster
// @Tags project-teams
// @Accept json
// @Produce json
// @Param request body dto.CreateProjectTeamRequest true "Roster"
// @Success 201 {object} dto.Response{data=domain.ProjectTeam}
// @Failure 400 {object} dto.Response
// @Failure 409 {object} dto.Response
// @Security BearerAuth
// @Router /admin/addprojectteam [post]
func (h *projectHandler) createProjectTeam(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateProjectTeamRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	team, err := h.projectTeamService.CreateProjectTeam(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "create project team")
		return
	}
	c.JSON(http.StatusCreated, dto.OK("Project team created successfully", team))
}

// listProjectTeams godoc
// @Summary List project rosters
// @Tags project-teams
// @Accept json
// @Produce json
// @Param request body dto.PageRequest false "Page and limit"
// @Success 200 {object} dto.Response
// @Security BearerAuth
// @Router /admin/getprojectteams [post]
func (h *projectHandler) listProjectTeams(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PageRequest
	if !bindOptionalJSON(c, logger, &req) {
		return
	}
	teams, info, err := h.projectTeamService.ListProjectTeams(c.Request.Context(), domain.NewPagination(req.Page, req.Limit))
	if err != nil {
		respondError(c, logger, err, "list project teams")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Project teams fetched successfully", gin.H{
		"teams":      teams,
		"pagination": info,
	}))
}
