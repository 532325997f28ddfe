package httpv1

import (
	"errors"
	"fmt"
	"net/http"

	logginghelper "github.com/Egor213/Sawmill/internal/controller/common/logging"
	"github.com/Egor213/Sawmill/internal/controller/http/validators"
	"github.com/Egor213/Sawmill/internal/metrics"
	"github.com/Egor213/Sawmill/internal/service"
	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
)

type IntakeController struct {
	logService service.Log
	counters   *metrics.Counters
}

func NewIntakeController(ls service.Log, cnt *metrics.Counters) *IntakeController {
	return &IntakeController{
		logService: ls,
		counters:   cnt,
	}
}

// Intake appends one entry and answers 204 with no body. Bad payloads are
// rejected with 400 before anything is written.
func (ctl *IntakeController) Intake(c echo.Context) error {
	ctl.counters.IntakeRequests.Inc("received")

	var req IntakeRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return ctl.reject(fmt.Errorf("malformed JSON body: %w", err))
	}

	if err := validators.Validate(req); err != nil {
		return ctl.reject(err)
	}

	entry, err := NewLogEntryFromRequest(&req)
	if err != nil {
		return ctl.reject(fmt.Errorf("unparseable @timestamp %q", req.Timestamp))
	}

	logginghelper.LogReceived(entry)

	id, err := ctl.logService.Intake(c.Request().Context(), entry)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return ctl.reject(err)
		}
		ctl.counters.IntakeRequests.Inc("failed")
		logginghelper.LogError(entry, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot store log entry").SetInternal(err)
	}

	logginghelper.LogSaved(entry, id)
	ctl.counters.IntakeRequests.Inc("ok")

	return c.NoContent(http.StatusNoContent)
}

func (ctl *IntakeController) reject(reason error) error {
	ctl.counters.IntakeRequests.Inc("invalid")
	logginghelper.LogRejected(reason)
	return echo.NewHTTPError(http.StatusBadRequest, reason.Error())
}
