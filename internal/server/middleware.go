package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shareclass/accounts/internal"
	"github.com/shareclass/accounts/internal/access"
	"github.com/shareclass/accounts/internal/logging"
	"github.com/shareclass/accounts/internal/server/data"
)

// TimeoutMiddleware adds a timeout to the request context within the Gin context.
// To correctly abort long-running requests, this depends on the users of the context to
// stop working when the context cancels.
// Note: The goroutine for the request is never halted; if the context is not
// passed down to lower packages and long-running tasks, then the app will not
// magically stop working on the request. No effort should be made to write
// an early http response here; it's up to the users of the context to watch for
// c.Request.Context().Err() or <-c.Request.Context().Done()
func TimeoutMiddleware(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// DatabaseMiddleware wraps the request in a database transaction, so handler
// writes either all commit or all roll back with the failed request.
func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
			c.Set("db", tx)
			c.Next()
			return nil
		})
		if err != nil {
			logging.Debugf(err.Error())
		}
	}
}

func getDB(c *gin.Context) *gorm.DB {
	db, ok := c.MustGet("db").(*gorm.DB)
	if !ok {
		return nil
	}
	return db
}

// AuthenticationMiddleware is applied to all routes that require an
// authenticated account. It validates the session cookie and stores the
// session and its account on the request context.
func AuthenticationMiddleware(a *API) gin.HandlerFunc {
	return func(c *gin.Context) {
		db := getDB(c)
		authned, err := requireSession(db, c.Request)
		if err != nil {
			sendAPIError(c, err)
			return
		}

		rCtx := access.RequestContext{
			Request:       c.Request,
			DBTxn:         db,
			Authenticated: authned,
		}
		c.Set(access.RequestContextKey, rCtx)
		c.Next()
	}
}

// UnauthenticatedMiddleware is applied to routes that work without a session.
// A valid session cookie is still resolved when one is present, so handlers
// can tell whether the caller is signed in.
func UnauthenticatedMiddleware(a *API) gin.HandlerFunc {
	return func(c *gin.Context) {
		db := getDB(c)

		rCtx := access.RequestContext{
			Request: c.Request,
			DBTxn:   db,
		}
		if authned, err := requireSession(db, c.Request); err == nil {
			rCtx.Authenticated = authned
		}

		c.Set(access.RequestContextKey, rCtx)
		c.Next()
	}
}

// requireSession checks the session cookie is present and valid
func requireSession(db *gorm.DB, req *http.Request) (access.Authenticated, error) {
	var u access.Authenticated

	token, err := getCookie(req, CookieAuthorizationName)
	if err != nil {
		return u, fmt.Errorf("%w: valid session not found in request", internal.ErrUnauthorized)
	}

	if strings.TrimSpace(token) == "" {
		return u, fmt.Errorf("%w: skipped validating empty session", internal.ErrUnauthorized)
	}

	session, err := data.GetSession(db, data.ByToken(token))
	switch {
	case errors.Is(err, internal.ErrNotFound):
		return u, fmt.Errorf("%w: invalid session", internal.ErrUnauthorized)
	case err != nil:
		return u, fmt.Errorf("session for request: %w", err)
	}

	if session.Expired(time.Now()) {
		return u, fmt.Errorf("%w: session expired", internal.ErrUnauthorized)
	}

	account, err := data.GetAccount(db, data.ByID(session.AccountID))
	if err != nil {
		return u, fmt.Errorf("account for session: %w", err)
	}

	u.Session = session
	u.Account = account
	return u, nil
}

func getCookie(req *http.Request, name string) (string, error) {
	cookie, err := req.Cookie(name)
	if err != nil {
		return "", err
	}
	return url.QueryUnescape(cookie.Value)
}
