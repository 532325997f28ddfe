package app

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/Egor213/Sawmill/internal/config"
	"github.com/Egor213/Sawmill/internal/service"
	errorsUtils "github.com/Egor213/Sawmill/pkg/errors"
)

const secretKeyBytes = 24

// runAction performs the requested one-shot command. It reports false when
// no action was requested and the server should start.
func runAction(cfg *config.Config, out io.Writer) (bool, error) {
	switch {
	case cfg.Actions.CreateDB:
		return true, Migrate(cfg.PG.URL)
	case cfg.Actions.CreateSecretKey:
		key, err := newSecretKey()
		if err != nil {
			return true, err
		}
		_, err = fmt.Fprintln(out, key)
		return true, err
	case cfg.Actions.HashPassword != nil:
		hash, err := service.HashPassword(*cfg.Actions.HashPassword)
		if err != nil {
			return true, err
		}
		_, err = fmt.Fprintln(out, hash)
		return true, err
	}
	return false, nil
}

// newSecretKey returns 48 hex characters of randomness.
func newSecretKey() (string, error) {
	buf := make([]byte, secretKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errorsUtils.WrapPathErr(err)
	}
	return hex.EncodeToString(buf), nil
}
