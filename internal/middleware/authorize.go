package middleware

import (
	"go-lms/internal/authz"
	"go-lms/internal/shared/apperror"
	"go-lms/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// PolicyEnforcer is a local interface so the middleware does not depend on the
// concrete guard construction.
type PolicyEnforcer interface {
	Authorize(claim authz.Claim, object, action string) error
}

// Authorize gates a route on the static role policy. Ownership-sensitive
// decisions (own requests, requester delete) stay in the services, which see
// the target record.
func Authorize(enforcer PolicyEnforcer, object, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claim, ok := CurrentClaim(c)
		if !ok {
			httpErr := apperror.ToHTTP(apperror.ErrUnauthorized)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			c.Abort()
			return
		}

		if err := enforcer.Authorize(claim, object, action); err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
