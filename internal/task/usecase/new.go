package usecase

import (
	"boo-assistant/internal/proposal"
	"boo-assistant/internal/task/repository"
	"boo-assistant/pkg/gcalendar"
	pkgLog "boo-assistant/pkg/log"
	"boo-assistant/pkg/nlp"
)

type implUseCase struct {
	l          pkgLog.Logger
	parser     *nlp.Parser
	proposals  *proposal.Store
	repo       repository.Repository
	calendar   *gcalendar.Client // optional, nil disables calendar events
	calendarID string
	listLimit  int
}

// New creates a new task UseCase instance.
func New(
	l pkgLog.Logger,
	parser *nlp.Parser,
	proposals *proposal.Store,
	repo repository.Repository,
	calendar *gcalendar.Client,
	calendarID string,
	listLimit int,
) *implUseCase {
	return &implUseCase{
		l:          l,
		parser:     parser,
		proposals:  proposals,
		repo:       repo,
		calendar:   calendar,
		calendarID: calendarID,
		listLimit:  listLimit,
	}
}
