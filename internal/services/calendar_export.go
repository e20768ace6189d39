package services

import (
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/models"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/utils"
)

const calendarProductID = "-//lonsystems//evento-card-gestor//PT"

// ExportDemandsICS renders demands as all-day VEVENTs, one per demand, with
// the urgency tier as category.
func ExportDemandsICS(cal *utils.Calendar, events []models.Event, demands []models.Demand) string {
	names := make(map[string]string, len(events))
	for _, e := range events {
		names[e.ID] = e.Name
	}

	feed := ics.NewCalendar()
	feed.SetMethod(ics.MethodPublish)
	feed.SetProductId(calendarProductID)
	feed.SetName("Demandas")
	feed.SetXWRTimezone(cal.Location().String())

	for _, d := range demands {
		day := cal.StartOfDay(d.Date)
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

		vevent := feed.AddEvent(d.ID + "@evento-card-gestor")
		vevent.SetCreatedTime(d.CreatedAt)
		vevent.SetDtStampTime(d.CreatedAt)
		vevent.SetAllDayStartAt(start)
		vevent.SetAllDayEndAt(start.AddDate(0, 0, 1))

		summary := d.Title
		if name, ok := names[d.EventID]; ok {
			summary = name + " — " + d.Title
		}
		vevent.SetSummary(summary)
		if d.Subject != "" {
			vevent.SetDescription(d.Subject)
		}

		switch {
		case d.IsCompleted:
			vevent.SetStatus(ics.ObjectStatusCompleted)
		default:
			vevent.SetStatus(ics.ObjectStatusNeedsAction)
		}
		vevent.AddCategory(string(cal.Urgency(d.Date)))
	}

	return feed.Serialize()
}
