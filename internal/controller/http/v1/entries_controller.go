package httpv1

import (
	"net/http"

	"github.com/Egor213/Sawmill/internal/service"
	"github.com/labstack/echo/v4"
)

type EntriesController struct {
	logService    service.Log
	optionService service.Option
}

func NewEntriesController(ls service.Log, opts service.Option) *EntriesController {
	return &EntriesController{
		logService:    ls,
		optionService: opts,
	}
}

// Index renders one page of entries under the session's filter. The server
// query parameter narrows this render only, and only when no server filter
// is stored.
func (ctl *EntriesController) Index(c echo.Context) error {
	var page, perPage int
	var highlight string
	err := echo.QueryParamsBinder(c).
		Int("page", &page).
		Int("per_page", &perPage).
		String("server", &highlight).
		BindError()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "page and per_page must be integers")
	}

	fs := loadFilterState(getSession(c))
	if highlight != "" && len(fs.Servers) == 0 {
		fs.Servers = []string{highlight}
	}

	result, err := ctl.logService.ListEntries(c.Request().Context(), fs, page, perPage)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "index.html", indexView{
		pageView:  newPageView(c, ctl.optionService),
		Page:      result,
		Filter:    fs,
		Highlight: highlight,
	})
}
