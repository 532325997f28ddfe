package service

import (
	"context"
	"errors"

	"github.com/Egor213/Sawmill/internal/repo"
	"github.com/Egor213/Sawmill/internal/repo/repoerrs"
	errorsUtils "github.com/Egor213/Sawmill/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	OptionTitle  = "title"
	DefaultTitle = "Sawmill"
)

type OptionService struct {
	optionRepo repo.Option
	revision   string
}

func NewOptionService(or repo.Option, revision string) *OptionService {
	return &OptionService{
		optionRepo: or,
		revision:   revision,
	}
}

func (s *OptionService) Get(ctx context.Context, key, defaultValue string) (string, error) {
	value, err := s.optionRepo.GetOption(ctx, key)
	if err != nil {
		if errors.Is(err, repoerrs.ErrNotFound) {
			return defaultValue, nil
		}
		return defaultValue, errorsUtils.WrapPathErr(err)
	}
	return value, nil
}

func (s *OptionService) Title(ctx context.Context) string {
	title, err := s.Get(ctx, OptionTitle, DefaultTitle)
	if err != nil {
		log.WithError(err).Warn("Cannot read title option")
	}
	return title
}

func (s *OptionService) Revision() string {
	return s.revision
}
