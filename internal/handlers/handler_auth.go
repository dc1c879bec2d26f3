package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/apperrors"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	portssvc "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/services"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/dto"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/middleware"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/platform/config"
	"github.com/ulule/limiter/v3"
)

// AuthHandler handles sign-in and sign-out.
type AuthHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	googleOAuth  portssvc.GoogleOAuthSvcFacade
	cookieName   string
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(services *portssvc.ServiceContainer, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService:  services.User,
		tokenService: services.TokenService,
		googleOAuth:  services.GoogleOAuth,
		cookieName:   cfg.AuthCookieName,
		secureCookie: cfg.IsProduction,
	}
}

// registerAuthRoutes sets up the public authentication routes.
// Password login is rate limited per client IP.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer, loginLimiter *limiter.Limiter) {
	h := NewAuthHandler(services, cfg)

	auth := r.Group("/api/auth")
	{
		auth.POST("/login", middleware.RateLimit(loginLimiter), h.Login)
		auth.POST("/google/exchange-code", h.ExchangeCodeGoogle)
		auth.POST("/logout", h.Logout)
	}
}

// Login godoc
// @Summary User login
// @Description Authenticates a user with email and password and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.Response{data=dto.LoginResponse}
// @Failure 400 {object} dto.Response
// @Failure 401 {object} dto.Response
// @Failure 429 {object} dto.Response
// @Failure 500 {object} dto.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			logger.Warn("Login failed", slog.String("error", err.Error()))
			c.JSON(http.StatusUnauthorized, dto.Fail("Invalid email or password"))
			return
		}
		logger.Error("Failed to authenticate user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Fail(internalErrorMessage))
		return
	}

	h.issueToken(c, logger, user)
}

// ExchangeCodeGoogle godoc
// @Summary Exchange Google authorization code for a JWT
// @Description Exchanges the code from the Google sign-in popup for an application token. Only existing users may sign in.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.GoogleCodeExchangeRequest true "Authorization code"
// @Success 200 {object} dto.Response{data=dto.LoginResponse}
// @Failure 400 {object} dto.Response
// @Failure 401 {object} dto.Response
// @Failure 500 {object} dto.Response
// @Router /auth/google/exchange-code [post]
func (h *AuthHandler) ExchangeCodeGoogle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GoogleCodeExchangeRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	oauth2Token, err := h.googleOAuth.ExchangeCodeForToken(c.Request.Context(), req.Code)
	if err != nil {
		logger.Warn("Failed to exchange Google code", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, dto.Fail("Invalid or expired authorization code"))
		return
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		logger.Error("Google token response has no id_token")
		c.JSON(http.StatusInternalServerError, dto.Fail(internalErrorMessage))
		return
	}

	payload, err := h.googleOAuth.ValidateGoogleIDToken(c.Request.Context(), rawIDToken)
	if err != nil {
		logger.Warn("Google ID token rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, dto.Fail("Invalid Google token"))
		return
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		logger.Warn("Google ID token has no email claim")
		c.JSON(http.StatusUnauthorized, dto.Fail("Google account has no email"))
		return
	}

	user, err := h.userService.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Google sign-in for unknown user", slog.String("email", email))
			c.JSON(http.StatusUnauthorized, dto.Fail("User is not registered"))
			return
		}
		logger.Error("Failed to look up Google user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Fail(internalErrorMessage))
		return
	}
	if !user.IsActive {
		logger.Warn("Google sign-in for inactive user", slog.String("user_id", user.UserID))
		c.JSON(http.StatusUnauthorized, dto.Fail("User is not active"))
		return
	}

	h.issueToken(c, logger, user)
}

// Logout godoc
// @Summary Sign out
// @Description Clears the auth cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, dto.OK("Logged out successfully", []any{}))
}

func (h *AuthHandler) issueToken(c *gin.Context, logger *slog.Logger, user *domain.User) {
	token, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		logger.Error("Failed to generate token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to generate token"))
		return
	}

	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "Bearer "+token, maxAge, "/", "", h.secureCookie, true)

	logger.Info("User signed in", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.OK("Login successful", dto.LoginResponse{Token: token}))
}
