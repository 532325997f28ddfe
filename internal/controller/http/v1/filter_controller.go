package httpv1

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/Egor213/Sawmill/internal/domain"
	"github.com/labstack/echo/v4"
)

const (
	serverKeyPrefix  = "server_"
	logNameKeyPrefix = "log_name_"

	serversField  = "servers"
	logNamesField = "log_names"
)

type FilterController struct{}

func NewFilterController() *FilterController {
	return &FilterController{}
}

// Apply replaces the session's filter with the submitted selection and
// returns to the listing. Submitting nothing clears the filter.
func (ctl *FilterController) Apply(c echo.Context) error {
	form, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form")
	}

	sess := getSession(c)
	storeFilterState(sess, ParseFilterForm(form))
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return err
	}

	return c.Redirect(http.StatusFound, "/")
}

// ParseFilterForm reads both the checkbox encoding of the listing page
// (server_<name>=on, log_name_<name>=on) and plain repeated
// servers=<name> / log_names=<name> fields.
func ParseFilterForm(form url.Values) domain.FilterState {
	var servers, logNames []string

	for key, values := range form {
		switch {
		case key == serversField:
			servers = append(servers, values...)
		case key == logNamesField:
			logNames = append(logNames, values...)
		case strings.HasPrefix(key, serverKeyPrefix) && isChecked(values):
			servers = append(servers, strings.TrimPrefix(key, serverKeyPrefix))
		case strings.HasPrefix(key, logNameKeyPrefix) && isChecked(values):
			logNames = append(logNames, strings.TrimPrefix(key, logNameKeyPrefix))
		}
	}

	return domain.NewFilterState(servers, logNames)
}

func isChecked(values []string) bool {
	if len(values) == 0 {
		return false
	}
	switch strings.ToLower(values[len(values)-1]) {
	case "off", "false", "0", "":
		return false
	}
	return true
}
