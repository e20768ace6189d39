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

var ErrContactNotFound = errors.New("contact not found")

// ContactService manages the CRM contact list
type ContactService struct {
	mu          sync.RWMutex
	cal         *utils.Calendar
	phoneRegion string
	contacts    *collection[models.CRMContact]
	loaded      bool
}

// NewContactService creates a ContactService. Phones are normalised for phoneRegion.
func NewContactService(store repository.KeyValueStore, cal *utils.Calendar, phoneRegion string, logger *zap.Logger) *ContactService {
	log := logger.Named("contact_service")
	return &ContactService{
		cal:         cal,
		phoneRegion: phoneRegion,
		contacts:    newCollection(constants.StorageKeyContacts, store, decodeContacts(cal), log),
	}
}

type CreateContactInput struct {
	Name         string
	Email        string
	Phone        string
	Subject      string
	PriorityDate time.Time
}

type UpdateContactInput struct {
	Name         *string
	Email        *string
	Phone        *string
	Subject      *string
	PriorityDate *time.Time
}

func (s *ContactService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.contacts.load(ctx); err != nil {
		return err
	}
	s.loaded = true
	return nil
}

func (s *ContactService) Refresh(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return false, nil
	}
	return s.contacts.refresh(ctx)
}

func (s *ContactService) PersistError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.contacts.persistErr()
}

// AddContact creates a contact
func (s *ContactService) AddContact(ctx context.Context, input CreateContactInput) (*models.CRMContact, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil, ErrNotLoaded
	}

	contact := models.CRMContact{
		ID:           utils.NewID(),
		Name:         name,
		Email:        strings.TrimSpace(input.Email),
		Phone:        utils.NormalizePhone(input.Phone, s.phoneRegion),
		Subject:      strings.TrimSpace(input.Subject),
		PriorityDate: input.PriorityDate,
		CreatedAt:    s.cal.Now(),
	}
	s.contacts.items = append(s.contacts.items, contact)
	s.contacts.save(ctx)

	return &contact, nil
}

// UpdateContact merges the non-nil fields of input into the contact
func (s *ContactService) UpdateContact(ctx context.Context, id string, input UpdateContactInput) (*models.CRMContact, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil, ErrNotLoaded
	}

	i := s.find(id)
	if i < 0 {
		return nil, ErrContactNotFound
	}
	contact := &s.contacts.items[i]

	if input.Name != nil {
		contact.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		contact.Email = strings.TrimSpace(*input.Email)
	}
	if input.Phone != nil {
		contact.Phone = utils.NormalizePhone(*input.Phone, s.phoneRegion)
	}
	if input.Subject != nil {
		contact.Subject = strings.TrimSpace(*input.Subject)
	}
	if input.PriorityDate != nil {
		contact.PriorityDate = *input.PriorityDate
	}

	s.contacts.save(ctx)
	updated := *contact
	return &updated, nil
}

// DeleteContact removes a contact
func (s *ContactService) DeleteContact(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}

	i := s.find(id)
	if i < 0 {
		return ErrContactNotFound
	}
	s.contacts.removeAt(i)
	s.contacts.save(ctx)
	return nil
}

func (s *ContactService) GetContact(id string) (*models.CRMContact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.find(id)
	if i < 0 {
		return nil, ErrContactNotFound
	}
	contact := s.contacts.items[i]
	return &contact, nil
}

// GetAllContacts returns every contact, soonest priority date first
func (s *ContactService) GetAllContacts() []models.CRMContact {
	s.mu.RLock()
	contacts := make([]models.CRMContact, len(s.contacts.items))
	copy(contacts, s.contacts.items)
	s.mu.RUnlock()

	sort.SliceStable(contacts, func(i, j int) bool {
		return contacts[i].PriorityDate.Before(contacts[j].PriorityDate)
	})
	return contacts
}

func (s *ContactService) find(id string) int {
	return s.contacts.indexOf(func(c *models.CRMContact) bool { return c.ID == id })
}
