package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/interview-assistant/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg              *config.Config
	botHandler       *Bot
	sessionHandler   *Session
	interviewHandler *Interview
	authMW           echo.MiddlewareFunc
	optionalAuthMW   echo.MiddlewareFunc
	ownerMW          echo.MiddlewareFunc
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	botHandler *Bot,
	sessionHandler *Session,
	interviewHandler *Interview,
	authMW echo.MiddlewareFunc,
	optionalAuthMW echo.MiddlewareFunc,
	ownerMW echo.MiddlewareFunc,
) *Router {
	return &Router{
		cfg:              cfg,
		botHandler:       botHandler,
		sessionHandler:   sessionHandler,
		interviewHandler: interviewHandler,
		authMW:           authMW,
		optionalAuthMW:   optionalAuthMW,
		ownerMW:          ownerMW,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	if !rt.cfg.IsProduction() {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupBotRoutes(v1)
	rt.setupSessionRoutes(v1)
	rt.setupInterviewRoutes(v1)
}

// setupBotRoutes configures bot management routes
func (rt *Router) setupBotRoutes(g *echo.Group) {
	bots := g.Group("/bots", rt.authMW)

	bots.POST("", rt.botHandler.CreateBot)
	bots.GET("", rt.botHandler.ListBots)
	bots.GET("/:id", rt.botHandler.GetBot)
}

// setupSessionRoutes configures owner-side session routes
func (rt *Router) setupSessionRoutes(g *echo.Group) {
	sessions := g.Group("/sessions", rt.authMW)

	sessions.POST("", rt.sessionHandler.CreateSession)
	sessions.GET("", rt.sessionHandler.ListSessions)
	sessions.GET("/:id", rt.sessionHandler.GetSession, rt.ownerMW)
}

// setupInterviewRoutes configures participant routes; the access token is the credential
func (rt *Router) setupInterviewRoutes(g *echo.Group) {
	interview := g.Group("/interview", rt.optionalAuthMW)

	interview.POST("/responses", rt.interviewHandler.SubmitResponse)
	interview.GET("/participants/:id/progress", rt.interviewHandler.GetProgress)

	interview.GET("/:token", rt.interviewHandler.Preview)
	interview.POST("/:token/join", rt.interviewHandler.Join)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
		"time":        time.Now().UTC().Format(time.RFC3339),
	})
}
