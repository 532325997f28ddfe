package httpv1

import (
	"github.com/Egor213/Sawmill/internal/domain"
	"github.com/Egor213/Sawmill/internal/service"
	"github.com/labstack/echo/v4"
)

type pageView struct {
	Title    string
	Revision string
	User     *domain.User
}

func newPageView(c echo.Context, opts service.Option) pageView {
	v := pageView{
		Title:    opts.Title(c.Request().Context()),
		Revision: opts.Revision(),
	}
	if user, ok := currentUser(c); ok {
		v.User = &user
	}
	return v
}

type indexView struct {
	pageView
	Page      domain.EntryPage
	Filter    domain.FilterState
	Highlight string
}

func (v indexView) PrevPage() int {
	return v.Page.Page - 1
}

func (v indexView) NextPage() int {
	return v.Page.Page + 1
}

type loginView struct {
	pageView
	Errors []string
	Next   string
}
