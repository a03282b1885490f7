package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/plazafl/backend/internal/domain/identity"
	"go.uber.org/zap"
)

// RoleConfig holds configuration for role middleware
type RoleConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
	// OnDenied is called when access is denied (optional)
	OnDenied func(c *gin.Context, requiredRoles []identity.UserRole)
}

// RequireRole creates middleware that requires one of the specified roles.
// The JWT middleware must run first so claims are present in the context.
func RequireRole(roles ...identity.UserRole) gin.HandlerFunc {
	return RequireRoleWithConfig(RoleConfig{}, roles...)
}

// RequireRoleWithConfig creates role middleware with custom config
func RequireRoleWithConfig(cfg RoleConfig, roles ...identity.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handleRoleDenied(c, cfg, roles, "No authentication claims found")
			return
		}

		userRole := identity.UserRole(claims.Role)
		for _, role := range roles {
			if userRole == role {
				if cfg.Logger != nil {
					cfg.Logger.Debug("Role check passed",
						zap.String("user_id", claims.UserID),
						zap.String("role", claims.Role),
					)
				}
				c.Next()
				return
			}
		}

		handleRoleDenied(c, cfg, roles, "User role not permitted for this operation")
	}
}

// RequirePlazaStaff requires an OWNER or ADMIN role. BUSINESS users are
// restricted to their own business resources and cannot reach staff routes.
func RequirePlazaStaff() gin.HandlerFunc {
	return RequireRole(identity.UserRoleOwner, identity.UserRoleAdmin)
}

// RequireOwner requires the OWNER role
func RequireOwner() gin.HandlerFunc {
	return RequireRole(identity.UserRoleOwner)
}

func handleRoleDenied(c *gin.Context, cfg RoleConfig, roles []identity.UserRole, reason string) {
	if cfg.OnDenied != nil {
		cfg.OnDenied(c, roles)
		return
	}

	if cfg.Logger != nil {
		required := make([]string, 0, len(roles))
		for _, r := range roles {
			required = append(required, string(r))
		}
		cfg.Logger.Warn("Role check failed",
			zap.String("path", c.Request.URL.Path),
			zap.Strings("required_roles", required),
			zap.String("reason", reason),
		)
	}

	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "FORBIDDEN",
			"message": "You do not have permission to perform this action",
		},
	})
}
