package httpv1

import (
	"encoding/gob"

	"github.com/Egor213/Sawmill/internal/domain"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

const (
	SessionName = "sawmill"

	sessionUserKey     = "user"
	sessionServersKey  = "filter_servers"
	sessionLogNamesKey = "filter_log_names"

	flashErrorKey = "error"

	// echo context key holding the resolved domain.User.
	contextUserKey = "sawmill.user"
)

// Flashes are stored as []any inside the cookie.
func init() {
	gob.Register([]any{})
}

func getSession(c echo.Context) *sessions.Session {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		// Undecodable cookie (rotated key, tampering); gorilla still hands
		// back a fresh session.
		log.WithError(err).Debug("Cannot decode session")
	}
	return sess
}

func sessionEmail(sess *sessions.Session) string {
	email, _ := sess.Values[sessionUserKey].(string)
	return email
}

// startSession marks the session as belonging to email and resets its
// filter selection. The options are restored as well: the request's session
// may already have been marked for deletion earlier in the chain.
func startSession(sess *sessions.Session, email string, opts sessions.Options) {
	sess.Values = map[any]any{sessionUserKey: email}
	sess.Options = &opts
}

// dropSessionUser forgets the user and the filter but keeps the cookie.
func dropSessionUser(sess *sessions.Session) {
	sess.Values = map[any]any{}
}

func endSession(sess *sessions.Session) {
	sess.Values = map[any]any{}
	sess.Options.MaxAge = -1
}

func loadFilterState(sess *sessions.Session) domain.FilterState {
	servers, _ := sess.Values[sessionServersKey].([]string)
	logNames, _ := sess.Values[sessionLogNamesKey].([]string)
	return domain.NewFilterState(servers, logNames)
}

// storeFilterState replaces the stored selection; it never merges.
func storeFilterState(sess *sessions.Session, fs domain.FilterState) {
	if len(fs.Servers) == 0 {
		delete(sess.Values, sessionServersKey)
	} else {
		sess.Values[sessionServersKey] = fs.Servers
	}

	if len(fs.LogNames) == 0 {
		delete(sess.Values, sessionLogNamesKey)
	} else {
		sess.Values[sessionLogNamesKey] = fs.LogNames
	}
}

func currentUser(c echo.Context) (domain.User, bool) {
	user, ok := c.Get(contextUserKey).(domain.User)
	return user, ok
}
