package middleware

import (
	"campusedge_payments/pkg"
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	AdminSecretHeader = "X-Admin-Secret"
	AdminSecretQuery  = "admin_secret"
)

var errForbidden = pkg.NewDomainErrorSimple("forbidden", "Forbidden", http.StatusForbidden)

// RequireAdminSecret rejects requests that do not carry the shared admin
// secret in the X-Admin-Secret header or the admin_secret query parameter.
func RequireAdminSecret(secret string, log logrus.FieldLogger) gin.HandlerFunc {
	want := []byte(secret)
	return func(c *gin.Context) {
		got := c.GetHeader(AdminSecretHeader)
		if got == "" {
			got = c.Query(AdminSecretQuery)
		}
		if len(want) == 0 || subtle.ConstantTimeCompare([]byte(got), want) != 1 {
			log.Warnf("[payment][middleware] admin secret rejected path=%s client_ip=%s", c.FullPath(), c.ClientIP())
			c.AbortWithStatusJSON(errForbidden.HTTPStatus, errForbidden.ToHTTPError())
			return
		}
		c.Next()
	}
}
