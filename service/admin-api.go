package service

import (
	"context"

	"campadmin/model/restmodel"
)

// AdminAPI is the remote admin REST surface the manager depends on.
type AdminAPI interface {
	GetSeasonEvents(ctx context.Context) ([]restmodel.SeasonEvent, error)
	CreateSeasonEvent(ctx context.Context, create restmodel.SeasonEventCreate) (*restmodel.SeasonEvent, error)
	DeleteSeasonEvent(ctx context.Context, eventId string) error
	GetFormConfigs(ctx context.Context) ([]restmodel.FormConfigEntry, error)
	PutFormConfig(ctx context.Context, entry restmodel.FormConfigEntry) (*restmodel.FormConfigEntry, error)
	GetTournamentConfigs(ctx context.Context) ([]restmodel.TournamentSpecificConfig, error)
	PutTournamentConfig(ctx context.Context, payload restmodel.TournamentConfigPayload) (*restmodel.TournamentSpecificConfig, error)
	GetTryoutConfigs(ctx context.Context) ([]restmodel.TryoutSpecificConfig, error)
	PutTryoutConfig(ctx context.Context, payload restmodel.TryoutConfigPayload) (*restmodel.TryoutSpecificConfig, error)
}
