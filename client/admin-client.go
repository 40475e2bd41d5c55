package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"campadmin/model/restmodel"
	"campadmin/utils"

	"golang.org/x/oauth2"
)

// AdminClient talks to the camp admin REST API.
type AdminClient struct {
	Client *HttpClient
}

func NewAdminClient(baseURL *url.URL, tokenSource oauth2.TokenSource, httpClient *http.Client) *AdminClient {
	return &AdminClient{
		Client: NewHttpClient(baseURL, "campadmin-console", tokenSource, httpClient),
	}
}

// Collection decodes either a JSON array of T or an object whose values are T.
// Object members are ordered by key so results are deterministic.
type Collection[T any] []T

func (c *Collection[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*c = Collection[T]{}
		return nil
	}
	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*c = items
		return nil
	}
	var keyed map[string]T
	if err := json.Unmarshal(trimmed, &keyed); err != nil {
		return err
	}
	*c = utils.Map(utils.SortedKeys(keyed), func(key string) T {
		return keyed[key]
	})
	return nil
}

func (c *AdminClient) GetSeasonEvents(ctx context.Context) ([]restmodel.SeasonEvent, error) {
	events, err := sendRequest[Collection[restmodel.SeasonEvent]](ctx, c.Client, "GetSeasonEvents", RequestArgs{
		Endpoint: "admin/season-events",
		Method:   http.MethodGet,
	})
	if err != nil {
		return nil, err
	}
	return *events, nil
}

// CreateSeasonEvent needs the created event back: without its eventId it cannot be selected.
func (c *AdminClient) CreateSeasonEvent(ctx context.Context, create restmodel.SeasonEventCreate) (*restmodel.SeasonEvent, error) {
	event, err := sendRequest[restmodel.SeasonEvent](ctx, c.Client, "CreateSeasonEvent", RequestArgs{
		Endpoint:      "admin/season-events",
		Method:        http.MethodPost,
		BodyRaw:       create,
		Authenticated: true,
	})
	if err != nil {
		return nil, err
	}
	if event.EventId == "" {
		return nil, &ClientError{
			Code:        "response_body_missing",
			Description: "created season event has no eventId",
		}
	}
	return event, nil
}

func (c *AdminClient) DeleteSeasonEvent(ctx context.Context, eventId string) error {
	_, err := sendRequest[json.RawMessage](ctx, c.Client, "DeleteSeasonEvent", RequestArgs{
		Endpoint:      "admin/season-events/%s",
		PathParams:    []string{eventId},
		Method:        http.MethodDelete,
		Authenticated: true,
	})
	return err
}

func (c *AdminClient) GetFormConfigs(ctx context.Context) ([]restmodel.FormConfigEntry, error) {
	entries, err := sendRequest[Collection[restmodel.FormConfigEntry]](ctx, c.Client, "GetFormConfigs", RequestArgs{
		Endpoint: "admin/form-configs",
		Method:   http.MethodGet,
	})
	if err != nil {
		return nil, err
	}
	return *entries, nil
}

// PutFormConfig echoes the sent entry when the backend answers without a body.
func (c *AdminClient) PutFormConfig(ctx context.Context, entry restmodel.FormConfigEntry) (*restmodel.FormConfigEntry, error) {
	saved, err := sendRequest[restmodel.FormConfigEntry](ctx, c.Client, "PutFormConfig", RequestArgs{
		Endpoint:      "admin/form-configs",
		Method:        http.MethodPut,
		BodyRaw:       entry,
		Authenticated: true,
	})
	if err != nil {
		return nil, err
	}
	if saved.EventId == "" {
		return &entry, nil
	}
	return saved, nil
}

func (c *AdminClient) GetTournamentConfigs(ctx context.Context) ([]restmodel.TournamentSpecificConfig, error) {
	configs, err := sendRequest[Collection[restmodel.TournamentSpecificConfig]](ctx, c.Client, "GetTournamentConfigs", RequestArgs{
		Endpoint: "admin/tournament-configs",
		Method:   http.MethodGet,
	})
	if err != nil {
		return nil, err
	}
	return *configs, nil
}

func (c *AdminClient) PutTournamentConfig(ctx context.Context, payload restmodel.TournamentConfigPayload) (*restmodel.TournamentSpecificConfig, error) {
	saved, err := sendRequest[restmodel.TournamentSpecificConfig](ctx, c.Client, "PutTournamentConfig", RequestArgs{
		Endpoint:      "admin/tournament-configs",
		Method:        http.MethodPut,
		BodyRaw:       payload,
		Authenticated: true,
	})
	if err != nil {
		return nil, err
	}
	if saved.TournamentName == "" {
		sent := payload.TournamentSpecificConfig
		return &sent, nil
	}
	return saved, nil
}

func (c *AdminClient) GetTryoutConfigs(ctx context.Context) ([]restmodel.TryoutSpecificConfig, error) {
	configs, err := sendRequest[Collection[restmodel.TryoutSpecificConfig]](ctx, c.Client, "GetTryoutConfigs", RequestArgs{
		Endpoint: "admin/tryout-configs",
		Method:   http.MethodGet,
	})
	if err != nil {
		return nil, err
	}
	return *configs, nil
}

func (c *AdminClient) PutTryoutConfig(ctx context.Context, payload restmodel.TryoutConfigPayload) (*restmodel.TryoutSpecificConfig, error) {
	saved, err := sendRequest[restmodel.TryoutSpecificConfig](ctx, c.Client, "PutTryoutConfig", RequestArgs{
		Endpoint:      "admin/tryout-configs",
		Method:        http.MethodPut,
		BodyRaw:       payload,
		Authenticated: true,
	})
	if err != nil {
		return nil, err
	}
	if saved.TryoutName == "" {
		sent := payload.TryoutSpecificConfig
		return &sent, nil
	}
	return saved, nil
}
