package access

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shareclass/accounts/internal/server/models"
)

const RequestContextKey = "requestContext"

// RequestContext stores the http.Request, and values derived from the request
// like the authenticated account. It also provides a database transaction.
type RequestContext struct {
	Request       *http.Request
	DBTxn         *gorm.DB
	Authenticated Authenticated
}

// Authenticated stores data about the authenticated account. If the Session
// or Account are nil, it indicates that no account was authenticated.
type Authenticated struct {
	Session *models.Session
	Account *models.Account
}

func GetRequestContext(c *gin.Context) RequestContext {
	raw, ok := c.Get(RequestContextKey)
	if !ok {
		return RequestContext{}
	}
	rCtx, ok := raw.(RequestContext)
	if !ok {
		return RequestContext{}
	}
	return rCtx
}
