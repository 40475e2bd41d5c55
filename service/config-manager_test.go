package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"campadmin/model/restmodel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAdminAPI is an in-memory admin API. Per-collection errors and a block channel
// simulate failures and slow responses.
type fakeAdminAPI struct {
	mu              sync.Mutex
	seasonEvents    []restmodel.SeasonEvent
	formConfigs     []restmodel.FormConfigEntry
	tournaments     []restmodel.TournamentSpecificConfig
	tryouts         []restmodel.TryoutSpecificConfig
	seasonErr       error
	tournamentErr   error
	tryoutErr       error
	saveErr         error
	block           chan struct{}
	tournamentPuts  []restmodel.TournamentConfigPayload
	tryoutPuts      []restmodel.TryoutConfigPayload
	formConfigPuts  []restmodel.FormConfigEntry
	deletedEventIds []string
	nextEventId     string
}

func (f *fakeAdminAPI) wait(ctx context.Context) {
	if f.block == nil {
		return
	}
	select {
	case <-f.block:
	case <-ctx.Done():
	}
}

func (f *fakeAdminAPI) GetSeasonEvents(ctx context.Context) ([]restmodel.SeasonEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]restmodel.SeasonEvent{}, f.seasonEvents...), f.seasonErr
}

func (f *fakeAdminAPI) CreateSeasonEvent(ctx context.Context, create restmodel.SeasonEventCreate) (*restmodel.SeasonEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	event := restmodel.SeasonEvent{EventId: f.nextEventId, Season: create.Season, Year: create.Year, Description: create.Description}
	f.seasonEvents = append(f.seasonEvents, event)
	return &event, nil
}

func (f *fakeAdminAPI) DeleteSeasonEvent(ctx context.Context, eventId string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedEventIds = append(f.deletedEventIds, eventId)
	return f.saveErr
}

func (f *fakeAdminAPI) GetFormConfigs(ctx context.Context) ([]restmodel.FormConfigEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]restmodel.FormConfigEntry{}, f.formConfigs...), nil
}

func (f *fakeAdminAPI) PutFormConfig(ctx context.Context, entry restmodel.FormConfigEntry) (*restmodel.FormConfigEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.formConfigPuts = append(f.formConfigPuts, entry)
	return &entry, nil
}

func (f *fakeAdminAPI) GetTournamentConfigs(ctx context.Context) ([]restmodel.TournamentSpecificConfig, error) {
	f.wait(ctx)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tournamentErr != nil {
		return nil, f.tournamentErr
	}
	return append([]restmodel.TournamentSpecificConfig{}, f.tournaments...), nil
}

func (f *fakeAdminAPI) PutTournamentConfig(ctx context.Context, payload restmodel.TournamentConfigPayload) (*restmodel.TournamentSpecificConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.tournamentPuts = append(f.tournamentPuts, payload)
	saved := payload.TournamentSpecificConfig
	return &saved, nil
}

func (f *fakeAdminAPI) GetTryoutConfigs(ctx context.Context) ([]restmodel.TryoutSpecificConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tryoutErr != nil {
		return nil, f.tryoutErr
	}
	return append([]restmodel.TryoutSpecificConfig{}, f.tryouts...), nil
}

func (f *fakeAdminAPI) PutTryoutConfig(ctx context.Context, payload restmodel.TryoutConfigPayload) (*restmodel.TryoutSpecificConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.tryoutPuts = append(f.tryoutPuts, payload)
	saved := payload.TryoutSpecificConfig
	return &saved, nil
}

type recordingPublisher struct {
	changes chan ConfigChange
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{changes: make(chan ConfigChange, 16)}
}

func (p *recordingPublisher) Publish(ctx context.Context, change ConfigChange) error {
	p.changes <- change
	return nil
}

func (p *recordingPublisher) Close() error {
	return nil
}

func (p *recordingPublisher) next(t *testing.T) ConfigChange {
	select {
	case change := <-p.changes:
		return change
	case <-time.After(time.Second):
		t.Fatal("no change published")
		return ConfigChange{}
	}
}

func winterEvent() restmodel.SeasonEvent {
	return restmodel.SeasonEvent{EventId: "w25", Season: "Winter", Year: 2025}
}

func springCup() restmodel.TournamentSpecificConfig {
	config := restmodel.DefaultTournamentConfig(2025)
	config.TournamentName = "Spring Cup"
	config.TournamentFee = 250
	config.IsActive = true
	return config
}

func newTestManager(api AdminAPI) (*ConfigManager, *Notifier) {
	notifier := NewNotifier(time.Hour)
	manager := NewConfigManager(api, notifier, nil, ManagerOptions{LoadTimeout: time.Second})
	return manager, notifier
}

func TestLoadAllPopulatesCollections(t *testing.T) {
	config := restmodel.DefaultRegistrationFormConfig()
	config.IsActive = true
	api := &fakeAdminAPI{
		seasonEvents: []restmodel.SeasonEvent{winterEvent()},
		formConfigs:  []restmodel.FormConfigEntry{{EventId: "w25", Season: "Winter", Year: 2025, Config: config}},
		tournaments:  []restmodel.TournamentSpecificConfig{springCup()},
		tryouts:      []restmodel.TryoutSpecificConfig{{TryoutName: "Fall Tryout", TryoutYear: 2025}},
	}
	manager, notifier := newTestManager(api)

	require.NoError(t, manager.LoadAll(context.Background()))
	assert.False(t, manager.Loading())
	assert.Equal(t, []restmodel.SeasonEvent{winterEvent()}, manager.SeasonEvents())
	assert.Len(t, manager.Tournaments(), 1)
	assert.Len(t, manager.Tryouts(), 1)
	assert.Empty(t, notifier.Banners())

	training, ok := manager.TrainingConfigFor("Winter", 2025)
	require.True(t, ok)
	assert.True(t, training.IsActive)
	_, ok = manager.TrainingConfigFor("Summer", 2025)
	assert.False(t, ok)
}

func TestLoadAllSurvivesOptionalFailures(t *testing.T) {
	api := &fakeAdminAPI{
		seasonEvents:  []restmodel.SeasonEvent{winterEvent()},
		tournamentErr: errors.New("tournament configs unavailable"),
		tryoutErr:     errors.New("tryout configs unavailable"),
	}
	manager, notifier := newTestManager(api)

	require.NoError(t, manager.LoadAll(context.Background()))
	assert.Empty(t, manager.Tournaments())
	assert.Empty(t, manager.Tryouts())
	assert.Len(t, manager.SeasonEvents(), 1)
	assert.Empty(t, notifier.Banners())
}

func TestLoadAllSeasonFailureRaisesBanner(t *testing.T) {
	api := &fakeAdminAPI{
		seasonErr:   errors.New("connection refused"),
		tournaments: []restmodel.TournamentSpecificConfig{springCup()},
	}
	manager, notifier := newTestManager(api)

	err := manager.LoadAll(context.Background())
	assert.EqualError(t, err, "connection refused")
	assert.False(t, manager.Loading())
	assert.Empty(t, manager.SeasonEvents())
	assert.Len(t, manager.Tournaments(), 1)

	banners := notifier.Banners()
	require.Len(t, banners, 1)
	assert.Equal(t, BannerError, banners[0].Kind)
	assert.Contains(t, banners[0].Message, "connection refused")
}

func TestLoadAllTimeoutClearsLoadingAndAppliesLateResults(t *testing.T) {
	api := &fakeAdminAPI{
		seasonEvents: []restmodel.SeasonEvent{winterEvent()},
		tournaments:  []restmodel.TournamentSpecificConfig{springCup()},
		block:        make(chan struct{}),
	}
	manager := NewConfigManager(api, NewNotifier(time.Hour), nil, ManagerOptions{LoadTimeout: 50 * time.Millisecond})

	start := time.Now()
	require.NoError(t, manager.LoadAll(context.Background()))
	assert.Less(t, time.Since(start), time.Second)
	assert.False(t, manager.Loading())
	assert.Len(t, manager.SeasonEvents(), 1)
	assert.Empty(t, manager.Tournaments())

	close(api.block)
	assert.Eventually(t, func() bool {
		return len(manager.Tournaments()) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestReloadKeepsDrafts(t *testing.T) {
	api := &fakeAdminAPI{tournaments: []restmodel.TournamentSpecificConfig{springCup()}}
	manager, _ := newTestManager(api)
	require.NoError(t, manager.LoadAll(context.Background()))
	_, err := manager.CreateTournamentDraft(false)
	require.NoError(t, err)
	require.Len(t, manager.Tournaments(), 2)

	require.NoError(t, manager.LoadAll(context.Background()))
	listings := manager.Tournaments()
	require.Len(t, listings, 2)
	assert.False(t, listings[0].Draft)
	assert.True(t, listings[1].Draft)
	assert.True(t, listings[1].Selected)
}

func TestRenameReconciliation(t *testing.T) {
	api := &fakeAdminAPI{tournaments: []restmodel.TournamentSpecificConfig{springCup()}}
	manager, notifier := newTestManager(api)
	require.NoError(t, manager.LoadAll(context.Background()))

	editor, err := manager.SelectTournament(Persisted("Spring Cup"), false)
	require.NoError(t, err)
	editor.SetIdentity("Spring Classic")
	require.NoError(t, manager.SaveTournament(context.Background()))

	require.Len(t, api.tournamentPuts, 1)
	assert.Equal(t, "Spring Classic", api.tournamentPuts[0].TournamentName)
	assert.Equal(t, "Spring Cup", api.tournamentPuts[0].OriginalTournamentName)

	_, ok := manager.Tournament(Persisted("Spring Cup"))
	assert.False(t, ok)
	saved, ok := manager.Tournament(Persisted("Spring Classic"))
	require.True(t, ok)
	assert.Equal(t, 250.0, saved.TournamentFee)
	assert.Equal(t, Persisted("Spring Classic"), editor.Key())
	assert.Equal(t, Persisted("Spring Classic").String(), manager.Status().SelectedTournament)

	banners := notifier.Banners()
	require.Len(t, banners, 1)
	assert.Equal(t, BannerSuccess, banners[0].Kind)
}

func TestSaveWithoutRenameOmitsOriginalName(t *testing.T) {
	api := &fakeAdminAPI{tournaments: []restmodel.TournamentSpecificConfig{springCup()}}
	manager, _ := newTestManager(api)
	require.NoError(t, manager.LoadAll(context.Background()))
	editor, err := manager.SelectTournament(Persisted("Spring Cup"), false)
	require.NoError(t, err)
	editor.Apply(TournamentPatch{Description: ptr("  Spring season opener  ")})
	editor.AddListItem(ListDivisions, "U12")

	require.NoError(t, manager.SaveTournament(context.Background()))
	require.Len(t, api.tournamentPuts, 1)
	assert.Empty(t, api.tournamentPuts[0].OriginalTournamentName)
	assert.Equal(t, "Spring season opener", api.tournamentPuts[0].Description)
	assert.Equal(t, []string{"U12"}, api.tournamentPuts[0].Divisions)
}

func TestDraftKeyReplacedOnSave(t *testing.T) {
	api := &fakeAdminAPI{}
	publisher := newRecordingPublisher()
	manager := NewConfigManager(api, NewNotifier(time.Hour), publisher, ManagerOptions{})

	editor, err := manager.CreateTryoutDraft(false)
	require.NoError(t, err)
	draftKey := editor.Key()
	assert.True(t, draftKey.IsDraft())
	_, ok := manager.Tryout(draftKey)
	require.True(t, ok)

	editor.SetIdentity("Fall Tryout")
	require.NoError(t, manager.SaveTryout(context.Background()))

	require.Len(t, api.tryoutPuts, 1)
	assert.Empty(t, api.tryoutPuts[0].OriginalTryoutName)
	_, ok = manager.Tryout(draftKey)
	assert.False(t, ok)
	_, ok = manager.Tryout(Persisted("Fall Tryout"))
	assert.True(t, ok)
	assert.Equal(t, Persisted("Fall Tryout"), editor.Key())
	listings := manager.Tryouts()
	require.Len(t, listings, 1)
	assert.False(t, listings[0].Draft)

	change := publisher.next(t)
	assert.Equal(t, "tryout", change.Kind)
	assert.Equal(t, ActionSaved, change.Action)
	assert.Equal(t, "Fall Tryout", change.Key)
	assert.Equal(t, draftKey.String(), change.PreviousKey)
}

func TestSaveFailureRaisesPersistentBanner(t *testing.T) {
	api := &fakeAdminAPI{tournaments: []restmodel.TournamentSpecificConfig{springCup()}}
	manager, notifier := newTestManager(api)
	require.NoError(t, manager.LoadAll(context.Background()))
	editor, err := manager.SelectTournament(Persisted("Spring Cup"), false)
	require.NoError(t, err)
	editor.SetIdentity("Spring Classic")

	api.saveErr = errors.New("401 Unauthorized")
	assert.Error(t, manager.SaveTournament(context.Background()))
	assert.True(t, editor.HasUnsavedChanges())
	assert.Equal(t, StatusError, editor.Status())
	_, ok := manager.Tournament(Persisted("Spring Cup"))
	assert.True(t, ok)

	banners := notifier.Banners()
	require.Len(t, banners, 1)
	assert.Equal(t, BannerError, banners[0].Kind)
	assert.Nil(t, banners[0].ExpiresAt)
}

func TestSelectionGuardsUnsavedChanges(t *testing.T) {
	cup := springCup()
	other := springCup()
	other.TournamentName = "Summer Slam"
	api := &fakeAdminAPI{tournaments: []restmodel.TournamentSpecificConfig{cup, other}}
	manager, _ := newTestManager(api)
	require.NoError(t, manager.LoadAll(context.Background()))

	editor, err := manager.SelectTournament(Persisted("Spring Cup"), false)
	require.NoError(t, err)
	editor.Apply(TournamentPatch{IsActive: ptr(false)})
	assert.True(t, manager.HasUnsavedChanges())

	_, err = manager.SelectTournament(Persisted("Summer Slam"), false)
	assert.ErrorIs(t, err, ErrUnsavedChanges)
	_, err = manager.CreateTournamentDraft(false)
	assert.ErrorIs(t, err, ErrUnsavedChanges)

	next, err := manager.SelectTournament(Persisted("Summer Slam"), true)
	require.NoError(t, err)
	assert.Equal(t, "Summer Slam", next.Draft().TournamentName)
	assert.False(t, manager.HasUnsavedChanges())

	stored, _ := manager.Tournament(Persisted("Spring Cup"))
	assert.True(t, stored.IsActive)

	_, err = manager.SelectTournament(Persisted("Unknown"), true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSelectSeasonOpensDefaultDraft(t *testing.T) {
	api := &fakeAdminAPI{seasonEvents: []restmodel.SeasonEvent{winterEvent()}}
	manager, _ := newTestManager(api)
	require.NoError(t, manager.LoadAll(context.Background()))

	_, err := manager.TrainingEditor()
	assert.ErrorIs(t, err, ErrNoSelection)

	editor, err := manager.SelectSeason("w25", false)
	require.NoError(t, err)
	assert.False(t, editor.Draft().IsActive)
	assert.Empty(t, editor.Draft().Pricing.Packages)
	assert.Equal(t, PreviewTraining, manager.Mode())

	_, err = manager.SelectSeason("missing", false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateAndDeleteSeasonEvent(t *testing.T) {
	api := &fakeAdminAPI{nextEventId: "w25"}
	publisher := newRecordingPublisher()
	manager := NewConfigManager(api, NewNotifier(time.Hour), publisher, ManagerOptions{})

	_, err := manager.CreateSeasonEvent(context.Background(), restmodel.SeasonEventCreate{Season: " ", Year: 2025})
	var validation ValidationErrors
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation, "season")

	event, err := manager.CreateSeasonEvent(context.Background(), restmodel.SeasonEventCreate{Season: "Winter", Year: 2025})
	require.NoError(t, err)
	assert.Equal(t, "w25", event.EventId)
	assert.Equal(t, "w25", manager.Status().SelectedSeason)
	assert.Equal(t, ActionCreated, publisher.next(t).Action)

	require.NoError(t, manager.DeleteSeasonEvent(context.Background(), "w25"))
	assert.Equal(t, []string{"w25"}, api.deletedEventIds)
	assert.Empty(t, manager.SeasonEvents())
	_, err = manager.TrainingEditor()
	assert.ErrorIs(t, err, ErrNoSelection)
	assert.Equal(t, PreviewNone, manager.Mode())
	assert.Equal(t, ActionDeleted, publisher.next(t).Action)

	assert.ErrorIs(t, manager.DeleteSeasonEvent(context.Background(), "w25"), ErrNotFound)
}

func TestCreateSeasonEventKeepsDirtyTrainingEditor(t *testing.T) {
	api := &fakeAdminAPI{seasonEvents: []restmodel.SeasonEvent{winterEvent()}, nextEventId: "s25"}
	manager, _ := newTestManager(api)
	require.NoError(t, manager.LoadAll(context.Background()))
	editor, err := manager.SelectSeason("w25", false)
	require.NoError(t, err)
	editor.AddPackage(PackageCandidate{Name: "2x/Week", Price: 150})

	_, err = manager.CreateSeasonEvent(context.Background(), restmodel.SeasonEventCreate{Season: "Spring", Year: 2025})
	require.NoError(t, err)
	assert.Len(t, manager.SeasonEvents(), 2)
	assert.Equal(t, "w25", manager.Status().SelectedSeason)
}

func TestTrainingScenario(t *testing.T) {
	api := &fakeAdminAPI{nextEventId: "w25"}
	manager, _ := newTestManager(api)
	require.NoError(t, manager.LoadAll(context.Background()))

	_, err := manager.CreateSeasonEvent(context.Background(), restmodel.SeasonEventCreate{Season: "Winter", Year: 2025})
	require.NoError(t, err)
	editor, err := manager.TrainingEditor()
	require.NoError(t, err)
	require.True(t, editor.AddPackage(PackageCandidate{Name: "2x/Week", Price: 150}))
	require.NoError(t, manager.SaveTraining(context.Background()))

	require.Len(t, api.formConfigPuts, 1)
	put := api.formConfigPuts[0]
	assert.Equal(t, "w25", put.EventId)
	assert.Equal(t, "Winter", put.Season)
	assert.Equal(t, 2025, put.Year)

	preview := manager.ActivePreview()
	assert.Equal(t, PreviewTraining, preview.Mode)
	assert.Equal(t, "Available Packages (1)", preview.PricingHeading)
	require.Len(t, preview.Packages, 1)
	assert.Equal(t, "$150", preview.Packages[0].Price)

	stored, ok := manager.TrainingConfigFor("Winter", 2025)
	require.True(t, ok)
	assert.Len(t, stored.Pricing.Packages, 1)
}

func TestPreviewWithoutSelection(t *testing.T) {
	manager, _ := newTestManager(&fakeAdminAPI{})
	preview := manager.ActivePreview()
	assert.Equal(t, PreviewNone, preview.Mode)
	assert.Equal(t, NotConfigured, preview.Placeholder)
	assert.Equal(t, NotConfigured, manager.Preview(PreviewTournament).Placeholder)
}

func TestLoadedTimestampDeadlinesCanBeSaved(t *testing.T) {
	cup := springCup()
	cup.RegistrationDeadline = "2025-03-01T00:00:00.000Z"
	cup.TournamentDates = []string{"2025-04-12T00:00:00Z"}
	api := &fakeAdminAPI{tournaments: []restmodel.TournamentSpecificConfig{cup}}
	manager, _ := newTestManager(api)
	require.NoError(t, manager.LoadAll(context.Background()))

	editor, err := manager.SelectTournament(Persisted("Spring Cup"), false)
	require.NoError(t, err)
	assert.False(t, editor.HasUnsavedChanges())
	assert.Equal(t, "2025-03-01", editor.Draft().RegistrationDeadline)
	assert.True(t, editor.AddListItem(ListDates, "2025-04-13T09:00:00Z"))

	editor.Apply(TournamentPatch{TournamentFee: ptr(300.0)})
	require.NoError(t, manager.SaveTournament(context.Background()))
	require.Len(t, api.tournamentPuts, 1)
	assert.Equal(t, "2025-03-01", api.tournamentPuts[0].RegistrationDeadline)
	assert.Equal(t, []string{"2025-04-12", "2025-04-13"}, api.tournamentPuts[0].TournamentDates)
}

func TestNameWithDraftPrefixStaysSelectable(t *testing.T) {
	api := &fakeAdminAPI{}
	manager, _ := newTestManager(api)
	editor, err := manager.CreateTournamentDraft(false)
	require.NoError(t, err)
	editor.SetIdentity("draft: Summer Cup")
	require.NoError(t, manager.SaveTournament(context.Background()))

	listings := manager.Tournaments()
	require.Len(t, listings, 1)
	key, ok := ParseConfigKey(listings[0].Key)
	require.True(t, ok)
	selected, err := manager.SelectTournament(key, false)
	require.NoError(t, err)
	assert.Equal(t, "draft: Summer Cup", selected.Draft().TournamentName)
}

func TestLateLoadDoesNotUndoRename(t *testing.T) {
	api := &fakeAdminAPI{tournaments: []restmodel.TournamentSpecificConfig{springCup()}}
	manager := NewConfigManager(api, NewNotifier(time.Hour), nil, ManagerOptions{LoadTimeout: 50 * time.Millisecond})
	require.NoError(t, manager.LoadAll(context.Background()))

	api.block = make(chan struct{})
	require.NoError(t, manager.LoadAll(context.Background()))

	editor, err := manager.SelectTournament(Persisted("Spring Cup"), false)
	require.NoError(t, err)
	editor.SetIdentity("Spring Classic")
	require.NoError(t, manager.SaveTournament(context.Background()))

	// the blocked fetch still answers with the old name
	close(api.block)
	assert.Never(t, func() bool {
		_, ok := manager.Tournament(Persisted("Spring Cup"))
		return ok
	}, 200*time.Millisecond, 10*time.Millisecond)
	_, ok := manager.Tournament(Persisted("Spring Classic"))
	assert.True(t, ok)

	api.mu.Lock()
	api.block = nil
	api.tournaments = []restmodel.TournamentSpecificConfig{api.tournamentPuts[0].TournamentSpecificConfig}
	api.mu.Unlock()
	require.NoError(t, manager.LoadAll(context.Background()))
	listings := manager.Tournaments()
	require.Len(t, listings, 1)
	assert.Equal(t, "Spring Classic", listings[0].Name)
}

func TestCreateSeasonEventValidatesInput(t *testing.T) {
	manager, _ := newTestManager(&fakeAdminAPI{nextEventId: "w25"})
	_, err := manager.CreateSeasonEvent(context.Background(), restmodel.SeasonEventCreate{Season: "Winter"})
	var validation ValidationErrors
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Year is required", validation["year"])
	assert.NotContains(t, validation, "season")
}
