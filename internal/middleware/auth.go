package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/dto"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/utils"
)

// AuthConfig controls how the auth middleware finds and checks tokens.
type AuthConfig struct {
	JWTSecret  string
	Issuer     string
	CookieName string
}

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens.
// The token is read from the Authorization header, or from the auth cookie holding "Bearer <token>".
func AuthMiddleware(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		raw := c.GetHeader("Authorization")
		if raw == "" && cfg.CookieName != "" {
			if cookie, err := c.Cookie(cfg.CookieName); err == nil {
				raw = cookie
			}
		}
		if raw == "" {
			logger.Warn("Authorization token missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Authorization token required"))
			return
		}

		parts := strings.Fields(raw)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			logger.Warn("Authorization token format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Authorization format must be Bearer {token}"))
			return
		}

		claims, err := utils.ParseAndValidateJWT(parts[1], cfg.JWTSecret, cfg.Issuer)
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail(msg))
			return
		}

		userID := claims.Subject
		if userID == "" {
			logger.Error("User ID (subject) missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Invalid token claims"))
			return
		}

		enrichedLogger := logger.With(slog.String("user_id", userID))
		ctx := WithLogger(WithUserID(c.Request.Context(), userID), enrichedLogger)
		c.Request = c.Request.WithContext(ctx)
		c.Set(string(userIDKey), userID)

		c.Next()
	}
}
