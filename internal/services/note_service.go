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
	ErrNoteNotFound = errors.New("note not found")
	ErrInvalidOwner = errors.New("owner is not one of the known note owners")
)

// NoteService manages the shared notes list
type NoteService struct {
	mu     sync.RWMutex
	cal    *utils.Calendar
	notes  *collection[models.Note]
	loaded bool
}

func NewNoteService(store repository.KeyValueStore, cal *utils.Calendar, logger *zap.Logger) *NoteService {
	log := logger.Named("note_service")
	return &NoteService{
		cal:   cal,
		notes: newCollection(constants.StorageKeyNotes, store, decodeNotes(cal), log),
	}
}

// CreateNoteInput represents input for creating a note. An empty owner means the default owner.
type CreateNoteInput struct {
	Subject      string
	PriorityDate time.Time
	Owner        models.NoteOwner
}

type UpdateNoteInput struct {
	Subject      *string
	PriorityDate *time.Time
	Owner        *models.NoteOwner
}

func (s *NoteService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.notes.load(ctx); err != nil {
		return err
	}
	s.loaded = true
	return nil
}

func (s *NoteService) Refresh(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return false, nil
	}
	return s.notes.refresh(ctx)
}

func (s *NoteService) PersistError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notes.persistErr()
}

// AddNote creates a note
func (s *NoteService) AddNote(ctx context.Context, input CreateNoteInput) (*models.Note, error) {
	subject := strings.TrimSpace(input.Subject)
	if subject == "" {
		return nil, ErrSubjectRequired
	}
	owner := input.Owner
	if owner == "" {
		owner = models.DefaultNoteOwner
	}
	if !owner.Valid() {
		return nil, ErrInvalidOwner
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil, ErrNotLoaded
	}

	note := models.Note{
		ID:           utils.NewID(),
		Subject:      subject,
		PriorityDate: input.PriorityDate,
		Owner:        owner,
		CreatedAt:    s.cal.Now(),
	}
	s.notes.items = append(s.notes.items, note)
	s.notes.save(ctx)

	return &note, nil
}

// UpdateNote merges the non-nil fields of input into the note
func (s *NoteService) UpdateNote(ctx context.Context, id string, input UpdateNoteInput) (*models.Note, error) {
	if input.Subject != nil && strings.TrimSpace(*input.Subject) == "" {
		return nil, ErrSubjectRequired
	}
	if input.Owner != nil && !input.Owner.Valid() {
		return nil, ErrInvalidOwner
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil, ErrNotLoaded
	}

	i := s.find(id)
	if i < 0 {
		return nil, ErrNoteNotFound
	}
	note := &s.notes.items[i]

	if input.Subject != nil {
		note.Subject = strings.TrimSpace(*input.Subject)
	}
	if input.PriorityDate != nil {
		note.PriorityDate = *input.PriorityDate
	}
	if input.Owner != nil {
		note.Owner = *input.Owner
	}

	s.notes.save(ctx)
	updated := *note
	return &updated, nil
}

// DeleteNote removes a note
func (s *NoteService) DeleteNote(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}

	i := s.find(id)
	if i < 0 {
		return ErrNoteNotFound
	}
	s.notes.removeAt(i)
	s.notes.save(ctx)
	return nil
}

func (s *NoteService) GetNote(id string) (*models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.find(id)
	if i < 0 {
		return nil, ErrNoteNotFound
	}
	note := s.notes.items[i]
	return &note, nil
}

// GetAllNotes returns every note, soonest priority date first
func (s *NoteService) GetAllNotes() []models.Note {
	return s.GetNotesByOwner("")
}

// GetNotesByOwner returns the notes of one owner, or all notes for an empty owner
func (s *NoteService) GetNotesByOwner(owner models.NoteOwner) []models.Note {
	s.mu.RLock()
	notes := make([]models.Note, 0, len(s.notes.items))
	for _, n := range s.notes.items {
		if owner == "" || n.Owner == owner {
			notes = append(notes, n)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].PriorityDate.Before(notes[j].PriorityDate)
	})
	return notes
}

func (s *NoteService) find(id string) int {
	return s.notes.indexOf(func(n *models.Note) bool { return n.ID == id })
}
