package errorsUtils

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	CodeStringTooLong    = "22001"
	CodeInvalidDatetime  = "22007"
	CodeNotNullViolation = "23502"
)

func Is(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

func IsNotNullViolation(err error) bool {
	return Is(err, CodeNotNullViolation)
}

// IsDataViolation reports errors caused by the row itself rather than by the
// database: values too long for their column, bad datetimes, missing values.
func IsDataViolation(err error) bool {
	return Is(err, CodeStringTooLong) || Is(err, CodeInvalidDatetime) || IsNotNullViolation(err)
}

func WrapPathErr(err error) error {
	pc, _, line, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return fmt.Errorf("[%s:%d] %w", fn, line, err)
}
