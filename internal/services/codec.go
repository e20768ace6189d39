package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lonsystemskt/evento-card-gestor-92/internal/models"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/utils"
)

var jsonNull = []byte("null")

// flexBool accepts booleans written by older clients as strings or numbers.
// Missing and null values decode to false.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, jsonNull) {
		*b = false
		return nil
	}

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case bool:
		*b = flexBool(t)
	case float64:
		*b = t != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1":
			*b = true
		case "false", "0", "":
			*b = false
		default:
			return fmt.Errorf("invalid boolean %q", t)
		}
	default:
		return fmt.Errorf("invalid boolean %s", data)
	}
	return nil
}

// flexInt accepts a number or a numeric string. Null leaves it unset.
type flexInt struct {
	value *int
}

func (n *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, jsonNull) {
		n.value = nil
		return nil
	}

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case float64:
		i := int(t)
		n.value = &i
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return fmt.Errorf("invalid integer %q", t)
		}
		n.value = &i
	default:
		return fmt.Errorf("invalid integer %s", data)
	}
	return nil
}

// flexTime keeps the raw value until a calendar is available to resolve
// civil dates in the right zone.
type flexTime struct {
	raw json.RawMessage
}

func (f *flexTime) UnmarshalJSON(data []byte) error {
	f.raw = append(f.raw[:0], data...)
	return nil
}

func (f flexTime) resolve(cal *utils.Calendar) (time.Time, error) {
	data := bytes.TrimSpace(f.raw)
	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		return time.Time{}, fmt.Errorf("missing date")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return time.Time{}, err
		}
		return cal.ParseDate(s)
	}

	ms, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %s", data)
	}
	return time.UnixMilli(ms).In(cal.Location()), nil
}

type storedEvent struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Logo          *string  `json:"logo"`
	Date          flexTime `json:"date"`
	IsArchived    flexBool `json:"isArchived"`
	IsPriority    flexBool `json:"isPriority"`
	PriorityOrder flexInt  `json:"priorityOrder"`
	CreatedAt     flexTime `json:"createdAt"`
}

type storedDemand struct {
	ID          string   `json:"id"`
	EventID     string   `json:"eventId"`
	Title       string   `json:"title"`
	Subject     string   `json:"subject"`
	Date        flexTime `json:"date"`
	IsCompleted flexBool `json:"isCompleted"`
	IsArchived  flexBool `json:"isArchived"`
	CreatedAt   flexTime `json:"createdAt"`
}

type storedContact struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Subject      string   `json:"subject"`
	PriorityDate flexTime `json:"priorityDate"`
	CreatedAt    flexTime `json:"createdAt"`
}

type storedNote struct {
	ID           string   `json:"id"`
	Subject      string   `json:"subject"`
	PriorityDate flexTime `json:"priorityDate"`
	Owner        string   `json:"owner"`
	CreatedAt    flexTime `json:"createdAt"`
}

// idClaims hands out record ids while decoding. Blank ids and ids already
// claimed by an earlier record are replaced with fresh ones.
type idClaims map[string]struct{}

func (c idClaims) claim(id string) (string, bool) {
	fresh := false
	if _, taken := c[id]; id == "" || taken {
		id, fresh = utils.NewID(), true
	}
	c[id] = struct{}{}
	return id, fresh
}

type datePair struct {
	name string
	src  flexTime
	dst  *time.Time
}

// resolveDates resolves every pair in order and stops at the first failure.
func resolveDates(cal *utils.Calendar, id string, pairs ...datePair) error {
	for _, p := range pairs {
		t, err := p.src.resolve(cal)
		if err != nil {
			return fmt.Errorf("record %q: %s: %w", id, p.name, err)
		}
		*p.dst = t
	}
	return nil
}

func decodeEvents(cal *utils.Calendar) decodeFunc[models.Event] {
	return func(data []byte) ([]models.Event, bool, error) {
		var stored []storedEvent
		if err := json.Unmarshal(data, &stored); err != nil {
			return nil, false, err
		}
		ids, rewritten := idClaims{}, false

		events := make([]models.Event, 0, len(stored))
		for _, s := range stored {
			e := models.Event{
				ID:         s.ID,
				Name:       s.Name,
				Logo:       s.Logo,
				IsArchived: bool(s.IsArchived),
				IsPriority: bool(s.IsPriority),
			}
			if err := resolveDates(cal, s.ID,
				datePair{"date", s.Date, &e.Date},
				datePair{"createdAt", s.CreatedAt, &e.CreatedAt},
			); err != nil {
				return nil, false, err
			}
			if e.IsPriority {
				e.PriorityOrder = s.PriorityOrder.value
			}
			var fresh bool
			e.ID, fresh = ids.claim(e.ID)
			rewritten = rewritten || fresh
			events = append(events, e)
		}

		// Pinned events that lost their order go behind the ones that kept it.
		next := nextPriorityOrder(events)
		for i := range events {
			if events[i].IsPriority && events[i].PriorityOrder == nil {
				order := next
				events[i].PriorityOrder = &order
				next++
			}
		}
		return events, rewritten, nil
	}
}

func decodeDemands(cal *utils.Calendar) decodeFunc[models.Demand] {
	return func(data []byte) ([]models.Demand, bool, error) {
		var stored []storedDemand
		if err := json.Unmarshal(data, &stored); err != nil {
			return nil, false, err
		}
		ids, rewritten := idClaims{}, false

		demands := make([]models.Demand, 0, len(stored))
		for _, s := range stored {
			d := models.Demand{
				ID:          s.ID,
				EventID:     s.EventID,
				Title:       s.Title,
				Subject:     s.Subject,
				IsCompleted: bool(s.IsCompleted),
				IsArchived:  bool(s.IsArchived),
			}
			if err := resolveDates(cal, s.ID,
				datePair{"date", s.Date, &d.Date},
				datePair{"createdAt", s.CreatedAt, &d.CreatedAt},
			); err != nil {
				return nil, false, err
			}
			var fresh bool
			d.ID, fresh = ids.claim(d.ID)
			rewritten = rewritten || fresh
			demands = append(demands, d)
		}
		return demands, rewritten, nil
	}
}

func decodeContacts(cal *utils.Calendar) decodeFunc[models.CRMContact] {
	return func(data []byte) ([]models.CRMContact, bool, error) {
		var stored []storedContact
		if err := json.Unmarshal(data, &stored); err != nil {
			return nil, false, err
		}
		ids, rewritten := idClaims{}, false

		contacts := make([]models.CRMContact, 0, len(stored))
		for _, s := range stored {
			c := models.CRMContact{
				ID:      s.ID,
				Name:    s.Name,
				Email:   s.Email,
				Phone:   s.Phone,
				Subject: s.Subject,
			}
			if err := resolveDates(cal, s.ID,
				datePair{"priorityDate", s.PriorityDate, &c.PriorityDate},
				datePair{"createdAt", s.CreatedAt, &c.CreatedAt},
			); err != nil {
				return nil, false, err
			}
			var fresh bool
			c.ID, fresh = ids.claim(c.ID)
			rewritten = rewritten || fresh
			contacts = append(contacts, c)
		}
		return contacts, rewritten, nil
	}
}

func decodeNotes(cal *utils.Calendar) decodeFunc[models.Note] {
	return func(data []byte) ([]models.Note, bool, error) {
		var stored []storedNote
		if err := json.Unmarshal(data, &stored); err != nil {
			return nil, false, err
		}
		ids, rewritten := idClaims{}, false

		notes := make([]models.Note, 0, len(stored))
		for _, s := range stored {
			n := models.Note{
				ID:      s.ID,
				Subject: s.Subject,
				Owner:   models.NoteOwner(s.Owner),
			}
			if err := resolveDates(cal, s.ID,
				datePair{"priorityDate", s.PriorityDate, &n.PriorityDate},
				datePair{"createdAt", s.CreatedAt, &n.CreatedAt},
			); err != nil {
				return nil, false, err
			}
			if !n.Owner.Valid() {
				n.Owner = models.DefaultNoteOwner
			}
			var fresh bool
			n.ID, fresh = ids.claim(n.ID)
			rewritten = rewritten || fresh
			notes = append(notes, n)
		}
		return notes, rewritten, nil
	}
}
