package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yourname/dreamcatcher/internal"
	"github.com/yourname/dreamcatcher/internal/response"
)

const userKey = "user"

func AuthMiddleware(provider Provider, logger internal.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			user, err := provider.Authenticate(c.Request.Context(), token)
			if err == nil {
				c.Set(userKey, user)
				c.Next()
				return
			}
			if !errors.Is(err, internal.ErrUnauthorized) {
				logger.Errorf("[request_id=%s] authentication failed: %v", c.GetString("request_id"), err)
			}
		}
		c.Header("WWW-Authenticate", "Bearer")
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Unauthorized("Could not validate credentials"))
	}
}

// CurrentUser returns the user stored by AuthMiddleware.
func CurrentUser(c *gin.Context) (*internal.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*internal.User)
	return user, ok && user != nil
}
