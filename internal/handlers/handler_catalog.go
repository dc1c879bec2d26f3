package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	portssvc "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/services"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/dto"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/middleware"
)

// catalogHandler serves task categories and subscriptions.
type catalogHandler struct {
	categoryService     portssvc.CategorySvcFacade
	subscriptionService portssvc.SubscriptionSvcFacade
}

// RegisterCatalogRoutes registers category and subscription administration.
func RegisterCatalogRoutes(rg *gin.RouterGroup, categories portssvc.CategorySvcFacade, subscriptions portssvc.SubscriptionSvcFacade) {
	h := &catalogHandler{categoryService: categories, subscriptionService: subscriptions}

	rg.POST("/addcategory", h.createCategory)
	rg.POST("/updatecategories", h.updateCategory)
	rg.POST("/addsubscription", h.createSubscription)
	rg.POST("/getsubscriptions", h.listSubscriptions)
	rg.POST("/getsubscription/:id", h.getSubscription)
}

// RegisterCategoryReadRoutes exposes the category list to every signed-in user.
func RegisterCategoryReadRoutes(rg *gin.RouterGroup, categories portssvc.CategorySvcFacade) {
	h := &catalogHandler{categoryService: categories}
	rg.POST("/getcategories", h.listCategories)
}

// createCategory godoc
// @Summary Add a task category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Category"
// @Success 201 {object} dto.Response{data=domain.Category}
// @Failure 400 {object} dto.Response
// @Failure 409 {object} dto.Response
// @Security BearerAuth
// @Router /admin/addcategory [post]
func (h *catalogHandler) createCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCategoryRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	category, err := h.categoryService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "create category")
		return
	}
	c.JSON(http.StatusCreated, dto.OK("Category created successfully", category))
}

// updateCategory godoc
// @Summary Rename a category or change its entry mode
// @Tags categories
// @Accept json
// @Produce json
// @Param request body dto.UpdateCategoryRequest true "Changes"
// @Success 200 {object} dto.Response{data=domain.Category}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /admin/updatecategories [post]
func (h *catalogHandler) updateCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateCategoryRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	category, err := h.categoryService.UpdateCategory(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "update category")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Category updated successfully", category))
}

// listCategories godoc
// @Summary List task categories
// @Tags categories
// @Produce json
// @Success 200 {object} dto.Response{data=[]domain.Category}
// @Security BearerAuth
// @Router /user/getcategories [post]
func (h *catalogHandler) listCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "list categories")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Categories fetched successfully", categories))
}

// createSubscription godoc
// @Summary Register a subscription
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param request body dto.CreateSubscriptionRequest true "Subscription"
// @Success 201 {object} dto.Response{data=domain.Subscription}
// @Failure 400 {object} dto.Response
// @Failure 409 {object} dto.Response
// @Security BearerAuth
// @Router /admin/addsubscription [post]
func (h *catalogHandler) createSubscription(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSubscriptionRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	sub, err := h.subscriptionService.CreateSubscription(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "create subscription")
		return
	}
	c.JSON(http.StatusCreated, dto.OK("Subscription created successfully", sub))
}

// listSubscriptions godoc
// @Summary List subscriptions
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param request body dto.PageRequest false "Page and limit"
// @Success 200 {object} dto.Response
// @Security BearerAuth
// @Router /admin/getsubscriptions [post]
func (h *catalogHandler) listSubscriptions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PageRequest
	if !bindOptionalJSON(c, logger, &req) {
		return
	}
	subs, info, err := h.subscriptionService.ListSubscriptions(c.Request.Context(), domain.NewPagination(req.Page, req.Limit))
	if err != nil {
		respondError(c, logger, err, "list subscriptions")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Subscriptions fetched successfully", gin.H{
		"subscriptions": subs,
		"pagination":    info,
	}))
}

// getSubscription godoc
// @Summary Get a subscription
// @Tags subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {object} dto.Response{data=domain.Subscription}
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /admin/getsubscription/{id} [post]
func (h *catalogHandler) getSubscription(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sub, err := h.subscriptionService.GetSubscription(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "get subscription")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Subscription fetched successfully", sub))
}
