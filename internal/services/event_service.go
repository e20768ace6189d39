package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lonsystemskt/evento-card-gestor-92/internal/constants"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/models"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/repository"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/utils"
	"go.uber.org/zap"
)

var (
	ErrNotLoaded            = errors.New("collections have not been loaded yet")
	ErrEventNotFound        = errors.New("event not found")
	ErrDemandNotFound       = errors.New("demand not found")
	ErrNameRequired         = errors.New("name is required")
	ErrTitleRequired        = errors.New("title is required")
	ErrSubjectRequired      = errors.New("subject is required")
	ErrDrafterNotConfigured = errors.New("demand drafting is not configured")
	ErrNoDraftedDemands     = errors.New("no demands could be drafted from the text")
)

// EventService owns the events and demands collections and every derived view
// over them.
type EventService struct {
	mu      sync.RWMutex
	cal     *utils.Calendar
	log     *zap.Logger
	events  *collection[models.Event]
	demands *collection[models.Demand]
	loaded  bool
	drafter DemandDrafter
}

// NewEventService creates an EventService. Load must be called before any mutation.
func NewEventService(store repository.KeyValueStore, cal *utils.Calendar, logger *zap.Logger) *EventService {
	log := logger.Named("event_service")
	return &EventService{
		cal:     cal,
		log:     log,
		events:  newCollection(constants.StorageKeyEvents, store, decodeEvents(cal), log),
		demands: newCollection(constants.StorageKeyDemands, store, decodeDemands(cal), log),
	}
}

// WithDrafter enables DraftDemands.
func (s *EventService) WithDrafter(d DemandDrafter) *EventService {
	s.drafter = d
	return s
}

// CreateEventInput represents input for creating an event
type CreateEventInput struct {
	Name string
	Logo *string
	Date time.Time
}

// UpdateEventInput represents a partial event update
type UpdateEventInput struct {
	Name       *string
	Logo       *string
	ClearLogo  bool
	Date       *time.Time
	IsArchived *bool
	IsPriority *bool
}

// CreateDemandInput represents input for creating a demand
type CreateDemandInput struct {
	EventID string
	Title   string
	Subject string
	Date    time.Time
}

// UpdateDemandInput represents a partial demand update
type UpdateDemandInput struct {
	EventID     *string
	Title       *string
	Subject     *string
	Date        *time.Time
	IsCompleted *bool
	IsArchived  *bool
}

// Summary holds the dashboard counters.
type Summary struct {
	ActiveEvents     int `json:"active_events"`
	ArchivedEvents   int `json:"archived_events"`
	PendingDemands   int `json:"pending_demands"`
	CompletedDemands int `json:"completed_demands"`
	OverdueDemands   int `json:"overdue_demands"`
}

// Load reads both collections from the store. Until it succeeds every
// mutation fails with ErrNotLoaded and nothing is written.
func (s *EventService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.events.load(ctx); err != nil {
		return err
	}
	if err := s.demands.load(ctx); err != nil {
		return err
	}
	s.loaded = true
	s.log.Info("Collections loaded",
		zap.Int("events", len(s.events.items)),
		zap.Int("demands", len(s.demands.items)),
	)
	return nil
}

// Refresh is called by the store watcher. It retries failed writes and
// reloads collections another process has rewritten.
func (s *EventService) Refresh(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return false, nil
	}
	eventsChanged, eventsErr := s.events.refresh(ctx)
	demandsChanged, demandsErr := s.demands.refresh(ctx)
	return eventsChanged || demandsChanged, errors.Join(eventsErr, demandsErr)
}

// PersistError returns the pending write failures, if any.
func (s *EventService) PersistError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return errors.Join(s.events.persistErr(), s.demands.persistErr())
}

// AddEvent creates an unarchived, unpinned event
func (s *EventService) AddEvent(ctx context.Context, input CreateEventInput) (*models.Event, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil, ErrNotLoaded
	}

	event := models.Event{
		ID:        utils.NewID(),
		Name:      name,
		Logo:      input.Logo,
		Date:      input.Date,
		CreatedAt: s.cal.Now(),
	}
	s.events.items = append(s.events.items, event.Clone())
	s.events.save(ctx)

	return &event, nil
}

// UpdateEvent merges the non-nil fields of input into the event
func (s *EventService) UpdateEvent(ctx context.Context, id string, input UpdateEventInput) (*models.Event, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil, ErrNotLoaded
	}

	i := s.findEvent(id)
	if i < 0 {
		return nil, ErrEventNotFound
	}
	event := &s.events.items[i]

	if input.Name != nil {
		event.Name = strings.TrimSpace(*input.Name)
	}
	if input.ClearLogo {
		event.Logo = nil
	} else if input.Logo != nil {
		logo := *input.Logo
		event.Logo = &logo
	}
	if input.Date != nil {
		event.Date = *input.Date
	}
	if input.IsArchived != nil {
		event.IsArchived = *input.IsArchived
	}
	if input.IsPriority != nil && *input.IsPriority != event.IsPriority {
		s.setPriority(i, *input.IsPriority)
	}

	s.events.save(ctx)
	updated := s.events.items[i].Clone()
	return &updated, nil
}

// DeleteEvent removes the event and every demand that references it
func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}

	i := s.findEvent(id)
	if i < 0 {
		return ErrEventNotFound
	}
	s.events.removeAt(i)

	kept := s.demands.items[:0]
	removed := 0
	for _, d := range s.demands.items {
		if d.EventID == id {
			removed++
			continue
		}
		kept = append(kept, d)
	}
	s.demands.items = kept

	s.events.save(ctx)
	s.demands.save(ctx)
	s.log.Debug("Event deleted", zap.String("event_id", id), zap.Int("demands_removed", removed))
	return nil
}

// ToggleEventPriority pins an unpinned event behind the current pins, or unpins it
func (s *EventService) ToggleEventPriority(ctx context.Context, id string) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil, ErrNotLoaded
	}

	i := s.findEvent(id)
	if i < 0 {
		return nil, ErrEventNotFound
	}
	s.setPriority(i, !s.events.items[i].IsPriority)
	s.events.save(ctx)

	updated := s.events.items[i].Clone()
	return &updated, nil
}

func (s *EventService) setPriority(i int, on bool) {
	event := &s.events.items[i]
	if !on {
		event.IsPriority = false
		event.PriorityOrder = nil
		return
	}
	order := nextPriorityOrder(s.events.items)
	event.IsPriority = true
	event.PriorityOrder = &order
}

// nextPriorityOrder returns one past the highest order among pinned events, starting at 1.
func nextPriorityOrder(events []models.Event) int {
	highest := 0
	for _, e := range events {
		if e.IsPriority && e.PriorityOrder != nil && *e.PriorityOrder > highest {
			highest = *e.PriorityOrder
		}
	}
	return highest + 1
}

// AddDemand creates a pending demand under an existing event
func (s *EventService) AddDemand(ctx context.Context, input CreateDemandInput) (*models.Demand, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	if s.findEvent(input.EventID) < 0 {
		return nil, ErrEventNotFound
	}

	demand := models.Demand{
		ID:        utils.NewID(),
		EventID:   input.EventID,
		Title:     title,
		Subject:   strings.TrimSpace(input.Subject),
		Date:      input.Date,
		CreatedAt: s.cal.Now(),
	}
	s.demands.items = append(s.demands.items, demand)
	s.demands.save(ctx)

	return &demand, nil
}

// UpdateDemand merges the non-nil fields of input into the demand
func (s *EventService) UpdateDemand(ctx context.Context, id string, input UpdateDemandInput) (*models.Demand, error) {
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return nil, ErrTitleRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil, ErrNotLoaded
	}

	i := s.findDemand(id)
	if i < 0 {
		return nil, ErrDemandNotFound
	}
	if input.EventID != nil && s.findEvent(*input.EventID) < 0 {
		return nil, ErrEventNotFound
	}

	demand := &s.demands.items[i]
	if input.EventID != nil {
		demand.EventID = *input.EventID
	}
	if input.Title != nil {
		demand.Title = strings.TrimSpace(*input.Title)
	}
	if input.Subject != nil {
		demand.Subject = strings.TrimSpace(*input.Subject)
	}
	if input.Date != nil {
		demand.Date = *input.Date
	}
	if input.IsCompleted != nil {
		demand.IsCompleted = *input.IsCompleted
	}
	if input.IsArchived != nil {
		demand.IsArchived = *input.IsArchived
	}

	s.demands.save(ctx)
	updated := *demand
	return &updated, nil
}

// DeleteDemand removes one demand
func (s *EventService) DeleteDemand(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}

	i := s.findDemand(id)
	if i < 0 {
		return ErrDemandNotFound
	}
	s.demands.removeAt(i)
	s.demands.save(ctx)
	return nil
}

// GetEvent returns a copy of one event
func (s *EventService) GetEvent(id string) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.findEvent(id)
	if i < 0 {
		return nil, ErrEventNotFound
	}
	event := s.events.items[i].Clone()
	return &event, nil
}

// GetDemand returns a copy of one demand
func (s *EventService) GetDemand(id string) (*models.Demand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.findDemand(id)
	if i < 0 {
		return nil, ErrDemandNotFound
	}
	demand := s.demands.items[i]
	return &demand, nil
}

// GetAllEvents returns every event in stored order
func (s *EventService) GetAllEvents() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterEvents(func(models.Event) bool { return true })
}

// GetAllDemands returns every demand in stored order
func (s *EventService) GetAllDemands() []models.Demand {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterDemands(func(models.Demand) bool { return true })
}

// GetActiveEvents returns unarchived events: pinned ones first by pin order,
// then the rest by date, most recent first.
func (s *EventService) GetActiveEvents() []models.Event {
	s.mu.RLock()
	events := s.filterEvents(func(e models.Event) bool { return !e.IsArchived })
	s.mu.RUnlock()

	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.IsPriority != b.IsPriority {
			return a.IsPriority
		}
		if a.IsPriority {
			return priorityOrder(a) < priorityOrder(b)
		}
		return a.Date.After(b.Date)
	})
	return events
}

func priorityOrder(e models.Event) int {
	if e.PriorityOrder == nil {
		return 0
	}
	return *e.PriorityOrder
}

// GetArchivedEvents returns archived events in stored order
func (s *EventService) GetArchivedEvents() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterEvents(func(e models.Event) bool { return e.IsArchived })
}

// GetActiveDemands returns pending, unarchived demands, most urgent tier first
// and soonest date first within a tier. An empty eventID means every event.
func (s *EventService) GetActiveDemands(eventID string) []models.Demand {
	s.mu.RLock()
	demands := s.filterDemands(func(d models.Demand) bool {
		return d.IsActive() && (eventID == "" || d.EventID == eventID)
	})
	s.mu.RUnlock()

	type scored struct {
		demand models.Demand
		score  int
	}
	ranked := make([]scored, len(demands))
	for i, d := range demands {
		ranked[i] = scored{demand: d, score: s.cal.Urgency(d.Date).Score()}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.score != b.score {
			return a.score > b.score
		}
		return a.demand.Date.Before(b.demand.Date)
	})

	for i := range ranked {
		demands[i] = ranked[i].demand
	}
	return demands
}

// GetCompletedDemands returns completed, unarchived demands, newest first.
// An empty eventID means every event.
func (s *EventService) GetCompletedDemands(eventID string) []models.Demand {
	s.mu.RLock()
	demands := s.filterDemands(func(d models.Demand) bool {
		return d.IsCompleted && !d.IsArchived && (eventID == "" || d.EventID == eventID)
	})
	s.mu.RUnlock()

	sort.SliceStable(demands, func(i, j int) bool {
		return demands[i].CreatedAt.After(demands[j].CreatedAt)
	})
	return demands
}

// DemandStatus classifies one demand against today
func (s *EventService) DemandStatus(d models.Demand) models.UrgencyTier {
	return s.cal.Urgency(d.Date)
}

// Summary counts the dashboard indicators
func (s *EventService) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum Summary
	for _, e := range s.events.items {
		if e.IsArchived {
			sum.ArchivedEvents++
		} else {
			sum.ActiveEvents++
		}
	}
	for _, d := range s.demands.items {
		switch {
		case d.IsArchived:
		case d.IsCompleted:
			sum.CompletedDemands++
		default:
			sum.PendingDemands++
			if s.cal.Urgency(d.Date) == models.UrgencyOverdue {
				sum.OverdueDemands++
			}
		}
	}
	return sum
}

func (s *EventService) findEvent(id string) int {
	return s.events.indexOf(func(e *models.Event) bool { return e.ID == id })
}

func (s *EventService) findDemand(id string) int {
	return s.demands.indexOf(func(d *models.Demand) bool { return d.ID == id })
}

func (s *EventService) filterEvents(keep func(models.Event) bool) []models.Event {
	out := make([]models.Event, 0, len(s.events.items))
	for _, e := range s.events.items {
		if keep(e) {
			out = append(out, e.Clone())
		}
	}
	return out
}

func (s *EventService) filterDemands(keep func(models.Demand) bool) []models.Demand {
	out := make([]models.Demand, 0, len(s.demands.items))
	for _, d := range s.demands.items {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}
