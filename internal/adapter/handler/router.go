package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tuananhdev/slack-assistant/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg             *config.Config
	botHandler      *Bot
	interactive     *Interactive
	calendarHandler *Calendar
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, botHandler *Bot, interactive *Interactive, calendarHandler *Calendar) *Router {
	return &Router{
		cfg:             cfg,
		botHandler:      botHandler,
		interactive:     interactive,
		calendarHandler: calendarHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/", rt.hello)
	e.GET("/health", rt.healthCheck)

	e.POST("/bot/events", rt.botHandler.Events)
	e.POST("/slack/interactive", rt.interactive.Callback)

	google := e.Group("/google")
	if rt.calendarHandler != nil {
		google.GET("/login", rt.calendarHandler.GoogleLogin)
		google.GET("/callback", rt.calendarHandler.GoogleCallback)
	} else {
		google.GET("/login", rt.notImplemented)
		google.GET("/callback", rt.notImplemented)
	}
}

// hello is the root liveness greeting
func (rt *Router) hello(c echo.Context) error {
	return c.String(http.StatusOK, "Hello hello!")
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":  "This endpoint is not yet implemented",
		"path":   c.Request().URL.Path,
		"method": c.Request().Method,
	})
}
