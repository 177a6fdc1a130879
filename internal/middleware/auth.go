package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/afritrim-api/internal/audit"
	"github.com/BruksfildServices01/afritrim-api/internal/httperr"
	"github.com/BruksfildServices01/afritrim-api/internal/identity"
	"github.com/BruksfildServices01/afritrim-api/internal/models"
)

const (
	ContextUID      = "uid"
	ContextEmail    = "email"
	ContextClaims   = "claims"
	ContextPlatform = "platform"
)

func AuthMiddleware(verifier identity.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "Authorization header is required.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_authorization_header", "Expected a Bearer token.")
			return
		}

		tok, err := verifier.VerifyToken(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			switch httperr.KindOf(err) {
			case httperr.KindAuth, httperr.KindNotFound, httperr.KindValidation:
				httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Token could not be verified.")
			default:
				httperr.FromError(c, err)
				c.Abort()
			}
			return
		}

		c.Set(ContextUID, tok.UID)
		c.Set(ContextEmail, tok.Email)
		c.Set(ContextClaims, tok.Claims)
		c.Request = c.Request.WithContext(audit.WithActor(c.Request.Context(), tok.UID))

		c.Next()
	}
}

// PlatformOperators marks the listed uids as platform operators. Must run
// after AuthMiddleware.
func PlatformOperators(uids []string) gin.HandlerFunc {
	set := make(map[string]struct{}, len(uids))
	for _, uid := range uids {
		set[uid] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := set[UIDOf(c)]; ok {
			c.Set(ContextPlatform, true)
		}
		c.Next()
	}
}

// AdminLookup finds the admin row for a uid, or nil.
type AdminLookup interface {
	FindAdmin(ctx context.Context, uid string) (*models.Admin, error)
}

// RejectSuspended stops admins whose account was suspended. Platform
// operators pass so they can lift a suspension.
func RejectSuspended(admins AdminLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ClaimsOf(c).Has(identity.RoleAdmin) || IsPlatform(c) {
			c.Next()
			return
		}

		admin, err := admins.FindAdmin(c.Request.Context(), UIDOf(c))
		if err != nil {
			httperr.FromError(c, err)
			c.Abort()
			return
		}
		if admin != nil && !admin.IsActive {
			httperr.Abort(c, http.StatusForbidden, "account_suspended", "This admin account is suspended.")
			return
		}

		c.Next()
	}
}

// Authorizer answers whether a set of roles may call a route.
type Authorizer interface {
	Allowed(roles []identity.Role, path, method string) (bool, error)
}

// Authorize must run after AuthMiddleware.
func Authorize(a Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles := ClaimsOf(c).Roles()
		if IsPlatform(c) {
			roles = append(roles, identity.RolePlatform)
		}

		ok, err := a.Allowed(roles, c.Request.URL.Path, c.Request.Method)
		if err != nil {
			_ = c.Error(err)
			httperr.Abort(c, http.StatusInternalServerError, "authorization_failed", "Authorization could not be evaluated.")
			return
		}
		if !ok {
			httperr.Abort(c, http.StatusForbidden, "forbidden", "Not allowed for this role.")
			return
		}

		c.Next()
	}
}

func UIDOf(c *gin.Context) string {
	return c.GetString(ContextUID)
}

func ClaimsOf(c *gin.Context) identity.Claims {
	v, _ := c.Get(ContextClaims)
	claims, _ := v.(identity.Claims)
	return claims
}

func IsPlatform(c *gin.Context) bool {
	return c.GetBool(ContextPlatform)
}
