package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"campadmin/metrics"
	"campadmin/model/restmodel"
	"campadmin/utils"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	DefaultLoadTimeout = 10 * time.Second
	publishTimeout     = 5 * time.Second
)

type ManagerOptions struct {
	LoadTimeout   time.Duration
	SuccessWindow time.Duration
	Now           func() time.Time
}

// ConfigManager owns the season events and the three configuration collections, and the
// editor currently open for each kind.
type ConfigManager struct {
	api           AdminAPI
	notifier      *Notifier
	publisher     ChangePublisher
	loadTimeout   time.Duration
	successWindow time.Duration
	now           func() time.Time

	mu               sync.RWMutex
	loading          bool
	generation       int
	seasonEvents     []restmodel.SeasonEvent
	formConfigs      map[string]restmodel.FormConfigEntry
	tournaments      map[ConfigKey]restmodel.TournamentSpecificConfig
	tryouts          map[ConfigKey]restmodel.TryoutSpecificConfig
	tournamentSaves  map[ConfigKey]int
	tryoutSaves      map[ConfigKey]int
	trainingEditor   *TrainingEditor
	tournamentEditor *TournamentEditor
	tryoutEditor     *TryoutEditor
	mode             PreviewMode
}

func NewConfigManager(api AdminAPI, notifier *Notifier, publisher ChangePublisher, options ManagerOptions) *ConfigManager {
	if publisher == nil {
		publisher = NoopChangePublisher{}
	}
	if notifier == nil {
		notifier = NewNotifier(DefaultSuccessWindow)
	}
	if options.LoadTimeout <= 0 {
		options.LoadTimeout = DefaultLoadTimeout
	}
	if options.SuccessWindow <= 0 {
		options.SuccessWindow = DefaultSuccessWindow
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	return &ConfigManager{
		api:             api,
		notifier:        notifier,
		publisher:       publisher,
		loadTimeout:     options.LoadTimeout,
		successWindow:   options.SuccessWindow,
		now:             options.Now,
		seasonEvents:    []restmodel.SeasonEvent{},
		formConfigs:     make(map[string]restmodel.FormConfigEntry),
		tournaments:     make(map[ConfigKey]restmodel.TournamentSpecificConfig),
		tryouts:         make(map[ConfigKey]restmodel.TryoutSpecificConfig),
		tournamentSaves: make(map[ConfigKey]int),
		tryoutSaves:     make(map[ConfigKey]int),
		mode:            PreviewNone,
	}
}

type ManagerStatus struct {
	Loading            bool        `json:"loading"`
	Mode               PreviewMode `json:"mode"`
	SelectedSeason     string      `json:"selected_season,omitempty"`
	SelectedTournament string      `json:"selected_tournament,omitempty"`
	SelectedTryout     string      `json:"selected_tryout,omitempty"`
	UnsavedChanges     bool        `json:"unsaved_changes"`
	SeasonEvents       int         `json:"season_events"`
	TrainingConfigs    int         `json:"training_configs"`
	Tournaments        int         `json:"tournaments"`
	Tryouts            int         `json:"tryouts"`
}

// LoadAll fetches the four collections concurrently. It returns once they are all in or
// the load timeout passes, whichever comes first; results arriving after the timeout are
// still applied unless a newer load has started. Only a season events failure is an error.
func (m *ConfigManager) LoadAll(ctx context.Context) error {
	m.mu.Lock()
	m.loading = true
	m.generation++
	generation := m.generation
	m.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		timer := prometheus.NewTimer(metrics.BulkLoadDuration)
		defer timer.ObserveDuration()
		done <- m.fetchAll(context.WithoutCancel(ctx), generation)
	}()

	deadline := time.NewTimer(m.loadTimeout)
	defer deadline.Stop()
	select {
	case err := <-done:
		m.finishLoading(generation)
		return err
	case <-deadline.C:
		metrics.BulkLoadTimeouts.Inc()
		log.Printf("bulk load still running after %s, clearing loading state", m.loadTimeout)
		m.finishLoading(generation)
		return nil
	case <-ctx.Done():
		m.finishLoading(generation)
		return ctx.Err()
	}
}

func (m *ConfigManager) finishLoading(generation int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.generation == generation {
		m.loading = false
	}
}

func (m *ConfigManager) fetchAll(ctx context.Context, generation int) error {
	var seasonErr error
	wg := sync.WaitGroup{}
	wg.Add(4)
	go func() {
		defer wg.Done()
		events, err := m.api.GetSeasonEvents(ctx)
		if err != nil {
			seasonErr = err
			metrics.CollectionLoadFailures.WithLabelValues("season-events").Inc()
			log.Printf("Error loading season events: %v", err)
			m.notifier.Error("Failed to load season events: " + err.Error())
			return
		}
		m.applySeasonEvents(generation, events)
	}()
	go func() {
		defer wg.Done()
		entries, err := m.api.GetFormConfigs(ctx)
		if err != nil {
			optionalLoadFailed("form-configs", err)
		}
		m.applyFormConfigs(generation, entries)
	}()
	go func() {
		defer wg.Done()
		configs, err := m.api.GetTournamentConfigs(ctx)
		if err != nil {
			optionalLoadFailed("tournament-configs", err)
		}
		m.applyTournaments(generation, configs)
	}()
	go func() {
		defer wg.Done()
		configs, err := m.api.GetTryoutConfigs(ctx)
		if err != nil {
			optionalLoadFailed("tryout-configs", err)
		}
		m.applyTryouts(generation, configs)
	}()
	wg.Wait()
	return seasonErr
}

func optionalLoadFailed(collection string, err error) {
	metrics.CollectionLoadFailures.WithLabelValues(collection).Inc()
	log.Printf("Error loading %s, continuing without them: %v", collection, err)
}

func (m *ConfigManager) applySeasonEvents(generation int, events []restmodel.SeasonEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.generation != generation {
		return
	}
	m.seasonEvents = append([]restmodel.SeasonEvent{}, events...)
}

func (m *ConfigManager) applyFormConfigs(generation int, entries []restmodel.FormConfigEntry) {
	configs := make(map[string]restmodel.FormConfigEntry, len(entries))
	for _, entry := range entries {
		if entry.EventId == "" {
			log.Printf("skipping form config for %s %d without eventId", entry.Season, entry.Year)
			continue
		}
		entry.Config = entry.Config.Clone()
		configs[entry.EventId] = entry
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.generation != generation {
		return
	}
	m.formConfigs = configs
}

// applyTournaments replaces the persisted entries and keeps local drafts. Keys saved
// while this load was running keep their local state, loaded or not.
func (m *ConfigManager) applyTournaments(generation int, loaded []restmodel.TournamentSpecificConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.generation != generation {
		return
	}
	recent := recentSaves(m.tournamentSaves, generation)
	configs := make(map[ConfigKey]restmodel.TournamentSpecificConfig, len(loaded))
	for key, config := range m.tournaments {
		if key.IsDraft() || recent[key] {
			configs[key] = config
		}
	}
	for _, config := range loaded {
		if config.TournamentName == "" || recent[Persisted(config.TournamentName)] {
			continue
		}
		configs[Persisted(config.TournamentName)] = normalizeTournamentDates(config.Clone())
	}
	m.tournaments = configs
}

func (m *ConfigManager) applyTryouts(generation int, loaded []restmodel.TryoutSpecificConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.generation != generation {
		return
	}
	recent := recentSaves(m.tryoutSaves, generation)
	configs := make(map[ConfigKey]restmodel.TryoutSpecificConfig, len(loaded))
	for key, config := range m.tryouts {
		if key.IsDraft() || recent[key] {
			configs[key] = config
		}
	}
	for _, config := range loaded {
		if config.TryoutName == "" || recent[Persisted(config.TryoutName)] {
			continue
		}
		configs[Persisted(config.TryoutName)] = normalizeTryoutDates(config.Clone())
	}
	m.tryouts = configs
}

// recentSaves returns the keys saved since the given load started and forgets older saves,
// which that load already reflects.
func recentSaves(saves map[ConfigKey]int, generation int) map[ConfigKey]bool {
	recent := make(map[ConfigKey]bool, len(saves))
	for key, savedIn := range saves {
		if savedIn < generation {
			delete(saves, key)
			continue
		}
		recent[key] = true
	}
	return recent
}

func (m *ConfigManager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

func (m *ConfigManager) Status() ManagerStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	status := ManagerStatus{
		Loading:         m.loading,
		Mode:            m.mode,
		UnsavedChanges:  m.hasUnsavedChangesLocked(),
		SeasonEvents:    len(m.seasonEvents),
		TrainingConfigs: len(m.formConfigs),
		Tournaments:     len(m.tournaments),
		Tryouts:         len(m.tryouts),
	}
	if m.trainingEditor != nil {
		status.SelectedSeason = m.trainingEditor.Event.EventId
	}
	if m.tournamentEditor != nil {
		status.SelectedTournament = m.tournamentEditor.Key().String()
	}
	if m.tryoutEditor != nil {
		status.SelectedTryout = m.tryoutEditor.Key().String()
	}
	return status
}

func (m *ConfigManager) SeasonEvents() []restmodel.SeasonEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]restmodel.SeasonEvent{}, m.seasonEvents...)
}

func (m *ConfigManager) findSeasonEventLocked(eventId string) (restmodel.SeasonEvent, bool) {
	for _, event := range m.seasonEvents {
		if event.EventId == eventId {
			return event, true
		}
	}
	return restmodel.SeasonEvent{}, false
}

// TrainingConfigFor resolves a season name and year to the event's saved training config.
func (m *ConfigManager) TrainingConfigFor(season string, year int) (restmodel.RegistrationFormConfig, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, event := range m.seasonEvents {
		if strings.EqualFold(event.Season, season) && event.Year == year {
			entry, ok := m.formConfigs[event.EventId]
			if !ok {
				return restmodel.RegistrationFormConfig{}, false
			}
			return entry.Config.Clone(), true
		}
	}
	return restmodel.RegistrationFormConfig{}, false
}

// CreateSeasonEvent posts the event, appends it and selects it for training unless the
// training editor holds unsaved changes.
func (m *ConfigManager) CreateSeasonEvent(ctx context.Context, create restmodel.SeasonEventCreate) (*restmodel.SeasonEvent, error) {
	create.Season = strings.TrimSpace(create.Season)
	create.Description = strings.TrimSpace(create.Description)
	if errs := validateStruct(create); len(errs) > 0 {
		return nil, errs
	}

	event, err := m.api.CreateSeasonEvent(ctx, create)
	if err != nil {
		log.Printf("Error creating season event %s %d: %v", create.Season, create.Year, err)
		m.notifier.Error("Failed to create season event: " + err.Error())
		return nil, err
	}
	m.mu.Lock()
	m.seasonEvents = append(m.seasonEvents, *event)
	m.mu.Unlock()

	m.notifier.Success(fmt.Sprintf("Season %s %d created", event.Season, event.Year))
	m.publish(ConfigChange{Kind: "season-event", Action: ActionCreated, Key: event.EventId})
	if _, err := m.SelectSeason(event.EventId, false); err != nil {
		log.Printf("created season event %s was not selected: %v", event.EventId, err)
	}
	return event, nil
}

func (m *ConfigManager) DeleteSeasonEvent(ctx context.Context, eventId string) error {
	m.mu.RLock()
	event, ok := m.findSeasonEventLocked(eventId)
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	if err := m.api.DeleteSeasonEvent(ctx, eventId); err != nil {
		log.Printf("Error deleting season event %s: %v", eventId, err)
		m.notifier.Error("Failed to delete season event: " + err.Error())
		return err
	}

	m.mu.Lock()
	m.seasonEvents = utils.Filter(m.seasonEvents, func(e restmodel.SeasonEvent) bool {
		return e.EventId != eventId
	})
	delete(m.formConfigs, eventId)
	if m.trainingEditor != nil && m.trainingEditor.Event.EventId == eventId {
		m.trainingEditor = nil
		if m.mode == PreviewTraining {
			m.mode = PreviewNone
		}
	}
	m.mu.Unlock()

	m.notifier.Success(fmt.Sprintf("Season %s %d deleted", event.Season, event.Year))
	m.publish(ConfigChange{Kind: "season-event", Action: ActionDeleted, Key: eventId})
	return nil
}

// SelectSeason opens the training editor on the event's saved config, or on an inactive
// default when none is saved. A dirty training editor is only replaced when force is set.
func (m *ConfigManager) SelectSeason(eventId string, force bool) (*TrainingEditor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !force && m.trainingEditor != nil && m.trainingEditor.HasUnsavedChanges() {
		return nil, ErrUnsavedChanges
	}
	event, ok := m.findSeasonEventLocked(eventId)
	if !ok {
		return nil, ErrNotFound
	}
	config := restmodel.DefaultRegistrationFormConfig()
	if entry, ok := m.formConfigs[eventId]; ok {
		config = entry.Config
	}
	editor := NewTrainingEditor(event, config, m.saveTraining)
	editor.withClock(m.now, m.successWindow)
	m.trainingEditor = editor
	m.mode = PreviewTraining
	return editor, nil
}

func (m *ConfigManager) TrainingEditor() (*TrainingEditor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.trainingEditor == nil {
		return nil, ErrNoSelection
	}
	return m.trainingEditor, nil
}

func (m *ConfigManager) saveTraining(ctx context.Context, event restmodel.SeasonEvent, config restmodel.RegistrationFormConfig) (restmodel.RegistrationFormConfig, error) {
	entry := restmodel.FormConfigEntry{
		EventId: event.EventId,
		Season:  event.Season,
		Year:    event.Year,
		Config:  config,
	}
	saved, err := m.api.PutFormConfig(ctx, entry)
	if err != nil {
		m.saveFailed("training", err)
		return config, err
	}
	if saved.EventId == "" {
		saved.EventId = event.EventId
	}
	m.mu.Lock()
	m.formConfigs[saved.EventId] = *saved
	m.mu.Unlock()

	m.notifier.Success(fmt.Sprintf("Training configuration for %s %d saved", event.Season, event.Year))
	m.publish(ConfigChange{Kind: "training", Action: ActionSaved, Key: saved.EventId})
	return saved.Config, nil
}

func (m *ConfigManager) CreateTournamentDraft(force bool) (*TournamentEditor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !force && m.tournamentEditor != nil && m.tournamentEditor.HasUnsavedChanges() {
		return nil, ErrUnsavedChanges
	}
	key := NewDraftKey()
	config := restmodel.DefaultTournamentConfig(m.now().Year())
	m.tournaments[key] = config
	m.openTournamentLocked(key, config)
	return m.tournamentEditor, nil
}

func (m *ConfigManager) SelectTournament(key ConfigKey, force bool) (*TournamentEditor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !force && m.tournamentEditor != nil && m.tournamentEditor.HasUnsavedChanges() {
		return nil, ErrUnsavedChanges
	}
	config, ok := m.tournaments[key]
	if !ok {
		return nil, ErrNotFound
	}
	m.openTournamentLocked(key, config)
	return m.tournamentEditor, nil
}

func (m *ConfigManager) openTournamentLocked(key ConfigKey, config restmodel.TournamentSpecificConfig) {
	editor := NewTournamentEditor(key, config, m.saveTournament)
	editor.withClock(m.now, m.successWindow)
	m.tournamentEditor = editor
	m.mode = PreviewTournament
}

func (m *ConfigManager) TournamentEditor() (*TournamentEditor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.tournamentEditor == nil {
		return nil, ErrNoSelection
	}
	return m.tournamentEditor, nil
}

// saveTournament sends the cleaned config, with the previous name when a saved tournament
// was renamed, and moves the map entry from key to the returned name.
func (m *ConfigManager) saveTournament(ctx context.Context, config restmodel.TournamentSpecificConfig, key ConfigKey) (restmodel.TournamentSpecificConfig, ConfigKey, error) {
	payload := restmodel.TournamentConfigPayload{TournamentSpecificConfig: cleanTournament(config)}
	if !key.IsDraft() && key.Value != payload.TournamentName {
		payload.OriginalTournamentName = key.Value
	}
	saved, err := m.api.PutTournamentConfig(ctx, payload)
	if err != nil {
		m.saveFailed("tournament", err)
		return config, key, err
	}
	newKey := Persisted(saved.TournamentName)
	m.mu.Lock()
	delete(m.tournaments, key)
	m.tournaments[newKey] = saved.Clone()
	m.tournamentSaves[key] = m.generation
	m.tournamentSaves[newKey] = m.generation
	m.mu.Unlock()

	m.notifier.Success(fmt.Sprintf("Tournament %s saved", saved.TournamentName))
	m.publish(ConfigChange{Kind: "tournament", Action: ActionSaved, Key: newKey.Value, PreviousKey: previousKey(key, newKey)})
	return *saved, newKey, nil
}

func (m *ConfigManager) CreateTryoutDraft(force bool) (*TryoutEditor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !force && m.tryoutEditor != nil && m.tryoutEditor.HasUnsavedChanges() {
		return nil, ErrUnsavedChanges
	}
	key := NewDraftKey()
	config := restmodel.DefaultTryoutConfig(m.now().Year())
	m.tryouts[key] = config
	m.openTryoutLocked(key, config)
	return m.tryoutEditor, nil
}

func (m *ConfigManager) SelectTryout(key ConfigKey, force bool) (*TryoutEditor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !force && m.tryoutEditor != nil && m.tryoutEditor.HasUnsavedChanges() {
		return nil, ErrUnsavedChanges
	}
	config, ok := m.tryouts[key]
	if !ok {
		return nil, ErrNotFound
	}
	m.openTryoutLocked(key, config)
	return m.tryoutEditor, nil
}

func (m *ConfigManager) openTryoutLocked(key ConfigKey, config restmodel.TryoutSpecificConfig) {
	editor := NewTryoutEditor(key, config, m.saveTryout)
	editor.withClock(m.now, m.successWindow)
	m.tryoutEditor = editor
	m.mode = PreviewTryout
}

func (m *ConfigManager) TryoutEditor() (*TryoutEditor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.tryoutEditor == nil {
		return nil, ErrNoSelection
	}
	return m.tryoutEditor, nil
}

// BindTryoutSeason attaches the open tryout to a season event.
func (m *ConfigManager) BindTryoutSeason(eventId string) error {
	m.mu.RLock()
	editor := m.tryoutEditor
	event, ok := m.findSeasonEventLocked(eventId)
	m.mu.RUnlock()
	if editor == nil {
		return ErrNoSelection
	}
	if !ok {
		return ErrNotFound
	}
	editor.BindSeasonEvent(event)
	return nil
}

func (m *ConfigManager) saveTryout(ctx context.Context, config restmodel.TryoutSpecificConfig, key ConfigKey) (restmodel.TryoutSpecificConfig, ConfigKey, error) {
	payload := restmodel.TryoutConfigPayload{TryoutSpecificConfig: cleanTryout(config)}
	if !key.IsDraft() && key.Value != payload.TryoutName {
		payload.OriginalTryoutName = key.Value
	}
	saved, err := m.api.PutTryoutConfig(ctx, payload)
	if err != nil {
		m.saveFailed("tryout", err)
		return config, key, err
	}
	newKey := Persisted(saved.TryoutName)
	m.mu.Lock()
	delete(m.tryouts, key)
	m.tryouts[newKey] = saved.Clone()
	m.tryoutSaves[key] = m.generation
	m.tryoutSaves[newKey] = m.generation
	m.mu.Unlock()

	m.notifier.Success(fmt.Sprintf("Tryout %s saved", saved.TryoutName))
	m.publish(ConfigChange{Kind: "tryout", Action: ActionSaved, Key: newKey.Value, PreviousKey: previousKey(key, newKey)})
	return *saved, newKey, nil
}

func previousKey(key ConfigKey, newKey ConfigKey) string {
	if key == newKey {
		return ""
	}
	return key.String()
}

// SaveTraining, SaveTournament and SaveTryout save the open editor. Once sent, a save is
// not aborted when the caller's context ends.
func (m *ConfigManager) SaveTraining(ctx context.Context) error {
	editor, err := m.TrainingEditor()
	if err != nil {
		return err
	}
	return recordSave(editor.Kind(), editor.Save(context.WithoutCancel(ctx)))
}

func (m *ConfigManager) SaveTournament(ctx context.Context) error {
	editor, err := m.TournamentEditor()
	if err != nil {
		return err
	}
	return recordSave(editor.Kind(), editor.Save(context.WithoutCancel(ctx)))
}

func (m *ConfigManager) SaveTryout(ctx context.Context) error {
	editor, err := m.TryoutEditor()
	if err != nil {
		return err
	}
	return recordSave(editor.Kind(), editor.Save(context.WithoutCancel(ctx)))
}

func recordSave(kind string, err error) error {
	result := "success"
	var validation ValidationErrors
	switch {
	case err == nil:
	case errors.As(err, &validation):
		result = "invalid"
	case errors.Is(err, ErrSaveInProgress):
		result = "rejected"
	default:
		result = "error"
	}
	metrics.ConfigSaveCounter.WithLabelValues(kind, result).Inc()
	return err
}

func (m *ConfigManager) saveFailed(kind string, err error) {
	log.Printf("Error saving %s configuration: %v", kind, err)
	m.notifier.Error(fmt.Sprintf("Failed to save %s configuration: %v", kind, err))
}

func (m *ConfigManager) publish(change ConfigChange) {
	change.At = m.now()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := m.publisher.Publish(ctx, change); err != nil {
			metrics.ChangeNotificationErrors.Inc()
			log.Printf("Error publishing %s %s change for %s: %v", change.Kind, change.Action, change.Key, err)
		}
	}()
}

func (m *ConfigManager) HasUnsavedChanges() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hasUnsavedChangesLocked()
}

func (m *ConfigManager) hasUnsavedChangesLocked() bool {
	return (m.trainingEditor != nil && m.trainingEditor.HasUnsavedChanges()) ||
		(m.tournamentEditor != nil && m.tournamentEditor.HasUnsavedChanges()) ||
		(m.tryoutEditor != nil && m.tryoutEditor.HasUnsavedChanges())
}

type ConfigListing struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Year     int    `json:"year"`
	Draft    bool   `json:"draft"`
	Active   bool   `json:"active"`
	Selected bool   `json:"selected"`
}

func (m *ConfigManager) Tournaments() []ConfigListing {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var selected ConfigKey
	if m.tournamentEditor != nil {
		selected = m.tournamentEditor.Key()
	}
	listings := make([]ConfigListing, 0, len(m.tournaments))
	for key, config := range m.tournaments {
		listings = append(listings, listing(key, selected, config.TournamentName, config.TournamentYear, config.IsActive))
	}
	sortListings(listings)
	return listings
}

func (m *ConfigManager) Tryouts() []ConfigListing {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var selected ConfigKey
	if m.tryoutEditor != nil {
		selected = m.tryoutEditor.Key()
	}
	listings := make([]ConfigListing, 0, len(m.tryouts))
	for key, config := range m.tryouts {
		listings = append(listings, listing(key, selected, config.TryoutName, config.TryoutYear, config.IsActive))
	}
	sortListings(listings)
	return listings
}

func (m *ConfigManager) Tournament(key ConfigKey) (restmodel.TournamentSpecificConfig, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	config, ok := m.tournaments[key]
	return config.Clone(), ok
}

func (m *ConfigManager) Tryout(key ConfigKey) (restmodel.TryoutSpecificConfig, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	config, ok := m.tryouts[key]
	return config.Clone(), ok
}

func listing(key ConfigKey, selected ConfigKey, name string, year int, active bool) ConfigListing {
	return ConfigListing{
		Key:      key.String(),
		Name:     name,
		Year:     year,
		Draft:    key.IsDraft(),
		Active:   active,
		Selected: key == selected,
	}
}

// sortListings puts saved entries first, by name, then drafts.
func sortListings(listings []ConfigListing) {
	sort.Slice(listings, func(i, j int) bool {
		if listings[i].Draft != listings[j].Draft {
			return !listings[i].Draft
		}
		if listings[i].Name != listings[j].Name {
			return listings[i].Name < listings[j].Name
		}
		return listings[i].Key < listings[j].Key
	})
}

func (m *ConfigManager) Mode() PreviewMode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mode
}

// Preview projects the open editor's current draft of the given kind.
func (m *ConfigManager) Preview(mode PreviewMode) Preview {
	m.mu.RLock()
	trainingEditor := m.trainingEditor
	tournamentEditor := m.tournamentEditor
	tryoutEditor := m.tryoutEditor
	m.mu.RUnlock()

	input := PreviewInput{}
	switch mode {
	case PreviewTraining:
		if trainingEditor != nil {
			draft := trainingEditor.Draft()
			event := trainingEditor.Event
			input.Training = &draft
			input.SeasonEvent = &event
		}
	case PreviewTournament:
		if tournamentEditor != nil {
			draft := tournamentEditor.Draft()
			input.Tournament = &draft
		}
	case PreviewTryout:
		if tryoutEditor != nil {
			draft := tryoutEditor.Draft()
			input.Tryout = &draft
		}
	}
	return Project(input)
}

func (m *ConfigManager) ActivePreview() Preview {
	return m.Preview(m.Mode())
}
