package httpv1

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/Egor213/Sawmill/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"
)

const basicAuthRealm = "Sawmill"

// AuthGate resolves the caller either from the browser session or from an
// HTTP Basic Authorization header.
type AuthGate struct {
	authService service.Auth
}

func NewAuthGate(as service.Auth) *AuthGate {
	return &AuthGate{
		authService: as,
	}
}

// LoadSessionUser puts the session's user into the echo context when the
// session names a known user. A user that no longer exists is dropped from
// the session and the request continues anonymously.
func (g *AuthGate) LoadSessionUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess := getSession(c)
		email := sessionEmail(sess)
		if email == "" {
			return next(c)
		}

		user, err := g.authService.LoadUser(c.Request().Context(), email)
		switch {
		case err == nil:
			c.Set(contextUserKey, user)
		case errors.Is(err, service.ErrUserNotFound):
			log.WithField("email", email).Info("Session user no longer exists")
			dropSessionUser(sess)
			if err := sess.Save(c.Request(), c.Response()); err != nil {
				return err
			}
		default:
			return err
		}
		return next(c)
	}
}

// RequireLogin sends anonymous browsers to the login page.
func (g *AuthGate) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := currentUser(c); ok {
			return next(c)
		}
		target := "/login?next=" + url.QueryEscape(c.Request().URL.RequestURI())
		return c.Redirect(http.StatusFound, target)
	}
}

// RequireBasicOrSession lets session users through and asks everybody else
// for Basic credentials. Failures answer 401 without saying which part was
// wrong.
func (g *AuthGate) RequireBasicOrSession() echo.MiddlewareFunc {
	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Realm: basicAuthRealm,
		Skipper: func(c echo.Context) bool {
			_, ok := currentUser(c)
			return ok
		},
		Validator: func(email, password string, c echo.Context) (bool, error) {
			user, err := g.authService.Authenticate(c.Request().Context(), email, password)
			if err != nil {
				if errors.Is(err, service.ErrInvalidCredentials) {
					return false, nil
				}
				return false, err
			}
			c.Set(contextUserKey, user)
			return true, nil
		},
	})
}
