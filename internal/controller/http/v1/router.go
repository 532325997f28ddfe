package httpv1

import (
	"github.com/Egor213/Sawmill/internal/metrics"
	"github.com/Egor213/Sawmill/internal/service"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"
)

type RouterDependencies struct {
	Services     *service.Services
	Counters     *metrics.Counters
	SessionStore sessions.Store

	// SessionOptions are applied to every session started by a login. Nil
	// means gorilla's defaults.
	SessionOptions *sessions.Options
}

// DefaultSessionOptions mirrors what gorilla's stores use when nothing is
// configured.
func DefaultSessionOptions() *sessions.Options {
	return &sessions.Options{
		Path:   "/",
		MaxAge: 86400 * 30,
	}
}

func ConfigureRouter(handler *echo.Echo, deps RouterDependencies) error {
	renderer, err := NewTemplateRenderer()
	if err != nil {
		return err
	}
	handler.Renderer = renderer

	handler.Use(middleware.Recover())
	handler.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := log.WithFields(log.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency.String(),
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("Request failed")
				return nil
			}
			entry.Debug("Request handled")
			return nil
		},
	}))
	handler.Use(session.Middleware(deps.SessionStore))

	gate := NewAuthGate(deps.Services.Auth)
	handler.Use(gate.LoadSessionUser)

	sessOpts := deps.SessionOptions
	if sessOpts == nil {
		sessOpts = DefaultSessionOptions()
	}

	authCtl := NewAuthController(deps.Services.Auth, deps.Services.Option, deps.Counters, *sessOpts)
	entriesCtl := NewEntriesController(deps.Services.Log, deps.Services.Option)
	filterCtl := NewFilterController()
	intakeCtl := NewIntakeController(deps.Services.Log, deps.Counters)

	handler.GET("/login", authCtl.LoginForm)
	handler.POST("/login", authCtl.Login)
	handler.GET("/logout", authCtl.Logout)

	handler.GET("/", entriesCtl.Index, gate.RequireLogin)
	handler.POST("/apply_filters", filterCtl.Apply, gate.RequireLogin)

	handler.POST("/intake", intakeCtl.Intake, gate.RequireBasicOrSession())

	return nil
}
