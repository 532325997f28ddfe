package app

import (
	"errors"
	"net/url"
	"time"

	"github.com/Egor213/Sawmill/migrations"
	errorsUtils "github.com/Egor213/Sawmill/pkg/errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	log "github.com/sirupsen/logrus"
)

const (
	defaultAttempts = 10
	defaultTimeout  = time.Second
)

// Migrate brings the schema up to the latest bundled version. Running it on
// an initialised database is a no-op.
func Migrate(pgUrl string) error {
	pgUrl = withSSLModeDefault(pgUrl)

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}

	var mgrt *migrate.Migrate
	for connAttempts := defaultAttempts; connAttempts > 0; connAttempts-- {
		mgrt, err = migrate.NewWithSourceInstance("iofs", source, pgUrl)
		if err == nil {
			break
		}

		log.Infof("Postgres trying to connect, attempts left: %d", connAttempts-1)
		time.Sleep(defaultTimeout)
	}
	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}
	defer mgrt.Close()

	err = mgrt.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("Migration no change")
		return nil
	}
	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}

	log.Info("Migration successful up")
	return nil
}

// withSSLModeDefault disables TLS unless the URL asks for a mode itself.
func withSSLModeDefault(pgUrl string) string {
	u, err := url.Parse(pgUrl)
	if err != nil {
		return pgUrl
	}
	q := u.Query()
	if q.Get("sslmode") != "" {
		return pgUrl
	}
	q.Set("sslmode", "disable")
	u.RawQuery = q.Encode()
	return u.String()
}
