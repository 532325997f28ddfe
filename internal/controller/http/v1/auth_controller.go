package httpv1

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	logginghelper "github.com/Egor213/Sawmill/internal/controller/common/logging"
	"github.com/Egor213/Sawmill/internal/metrics"
	"github.com/Egor213/Sawmill/internal/service"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
)

// Shown for every failed login, whatever the cause.
const loginFailedMessage = "Username or Password is invalid"

type AuthController struct {
	authService   service.Auth
	optionService service.Option
	counters      *metrics.Counters

	// Cookie options a fresh login session starts with.
	sessionOptions sessions.Options
}

func NewAuthController(as service.Auth, opts service.Option, cnt *metrics.Counters, sessOpts sessions.Options) *AuthController {
	return &AuthController{
		authService:    as,
		optionService:  opts,
		counters:       cnt,
		sessionOptions: sessOpts,
	}
}

func (ctl *AuthController) LoginForm(c echo.Context) error {
	sess := getSession(c)

	var messages []string
	flashes := sess.Flashes(flashErrorKey)
	for _, f := range flashes {
		if msg, ok := f.(string); ok {
			messages = append(messages, msg)
		}
	}
	if len(flashes) > 0 {
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			return err
		}
	}

	return c.Render(http.StatusOK, "login.html", loginView{
		pageView: newPageView(c, ctl.optionService),
		Errors:   messages,
		Next:     safeNext(c.QueryParam("next")),
	})
}

func (ctl *AuthController) Login(c echo.Context) error {
	email := c.FormValue("email")
	password := c.FormValue("password")
	next := safeNext(c.QueryParam("next"))

	sess := getSession(c)

	user, err := ctl.authService.Authenticate(c.Request().Context(), email, password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			return err
		}
		ctl.counters.Logins.Inc("failure")
		logginghelper.LogLogin(email, false)

		sess.AddFlash(loginFailedMessage, flashErrorKey)
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			return err
		}
		target := "/login"
		if next != "" {
			target += "?next=" + url.QueryEscape(next)
		}
		return c.Redirect(http.StatusFound, target)
	}

	ctl.counters.Logins.Inc("success")
	logginghelper.LogLogin(user.Email, true)

	startSession(sess, user.Email, ctl.sessionOptions)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return err
	}

	if next == "" {
		next = "/"
	}
	return c.Redirect(http.StatusFound, next)
}

func (ctl *AuthController) Logout(c echo.Context) error {
	sess := getSession(c)
	endSession(sess)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/")
}

// safeNext keeps only local absolute paths so the login redirect cannot
// leave the site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return ""
	}
	return next
}
