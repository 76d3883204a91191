package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shareclass/accounts/internal"
	"github.com/shareclass/accounts/internal/logging"
	"github.com/shareclass/accounts/internal/validate"
	"github.com/shareclass/accounts/metrics"
)

// GenerateRoutes constructs the http.Handler for the primary http server.
// The handler includes gin middleware and the API routes.
//
// The order of routes in this function is important! Gin saves a route along
// with all the middleware that will apply to the route when the
// Router.{GET,POST,etc} method is called.
func (s *Server) GenerateRoutes() http.Handler {
	a := &API{server: s}
	router := gin.New()
	router.NoRoute(notFoundHandler)

	router.Use(gin.Recovery())
	router.GET("/healthz", healthHandler)

	router.Use(
		logging.Middleware(s.options.EnableLogSampling),
		TimeoutMiddleware(s.options.API.RequestTimeout),
	)

	api := router.Group("/",
		metrics.Middleware(s.metricsRegistry),
		DatabaseMiddleware(s.db), // must be after TimeoutMiddleware to time out db queries.
	)

	authn := api.Group("/", AuthenticationMiddleware(a))

	post(a, authn, "/api/logout", a.Logout)
	post(a, authn, "/api/change_password", a.ChangePassword)

	// these endpoints resolve the session when one is present, but do not
	// require it
	noAuthn := api.Group("/", UnauthenticatedMiddleware(a))

	post(a, noAuthn, "/api/register", a.Signup)
	post(a, noAuthn, "/api/login", a.Login)
	get(a, noAuthn, "/api/info", a.Info)

	post(a, noAuthn, "/api/forgot_password", a.ForgotPassword)
	get(a, noAuthn, "/api/reset_password/:token", a.GetResetPassword)
	post(a, noAuthn, "/api/reset_password/:token", a.ResetPassword)

	return router
}

// API exposes the HTTP handlers for the account service.
type API struct {
	server *Server
}

type ReqHandlerFunc[Req any] func(c *gin.Context, req *Req) error
type ReqResHandlerFunc[Req, Res any] func(c *gin.Context, req *Req) (Res, error)

func get[Req, Res any](a *API, r *gin.RouterGroup, route string, handler ReqResHandlerFunc[Req, Res]) {
	r.GET(route, func(c *gin.Context) {
		req := new(Req)
		if err := bind(c, req); err != nil {
			sendAPIError(c, err)
			return
		}

		resp, err := handler(c, req)
		if err != nil {
			sendAPIError(c, err)
			return
		}

		c.JSON(http.StatusOK, resp)
	})
}

func post[Req, Res any](a *API, r *gin.RouterGroup, route string, handler ReqResHandlerFunc[Req, Res]) {
	r.POST(route, func(c *gin.Context) {
		req := new(Req)
		if err := bind(c, req); err != nil {
			sendAPIError(c, err)
			return
		}

		resp, err := handler(c, req)
		if err != nil {
			sendAPIError(c, err)
			return
		}

		c.JSON(http.StatusCreated, resp)
	})
}

func bind(c *gin.Context, req any) error {
	if err := c.ShouldBindUri(req); err != nil {
		return fmt.Errorf("%w: %s", internal.ErrBadRequest, err)
	}

	if err := c.ShouldBindQuery(req); err != nil {
		return fmt.Errorf("%w: %s", internal.ErrBadRequest, err)
	}

	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBind(req); err != nil {
			return fmt.Errorf("%w: %s", internal.ErrBadRequest, err)
		}
	}

	if r, ok := req.(validate.Request); ok {
		if err := validate.Validate(r); err != nil {
			return err
		}
	}

	return nil
}

func init() {
	gin.DisableBindValidation()
}

func healthHandler(c *gin.Context) {
	c.Status(http.StatusOK)
}

func notFoundHandler(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api") {
		sendAPIError(c, internal.ErrNotFound)
		return
	}

	c.Status(http.StatusNotFound)
}
