package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lonsystemskt/evento-card-gestor-92/internal/constants"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/utils"
	"github.com/sashabaranov/go-openai"
)

// DemandDrafter turns free text into candidate demands for one event.
type DemandDrafter interface {
	Draft(ctx context.Context, req DraftRequest) ([]DraftedDemand, error)
}

// DraftRequest is what the drafter needs to know about the event.
type DraftRequest struct {
	EventName string
	EventDate string
	Today     string
	Text      string
}

// DraftedDemand is a proposal; nothing is saved until the client posts it back.
type DraftedDemand struct {
	Title   string     `json:"title"`
	Subject string     `json:"subject"`
	Date    *time.Time `json:"date"`
}

type rawDraftedDemand struct {
	Title   string  `json:"title"`
	Subject string  `json:"subject"`
	Date    *string `json:"date"`
}

type OpenAIDrafter struct {
	client *openai.Client
	model  string
	cal    *utils.Calendar
}

func NewOpenAIDrafter(apiKey string, cal *utils.Calendar) *OpenAIDrafter {
	return NewOpenAIDrafterWithConfig(openai.DefaultConfig(apiKey), cal)
}

// NewOpenAIDrafterWithConfig allows pointing the client at another base URL.
func NewOpenAIDrafterWithConfig(cfg openai.ClientConfig, cal *utils.Calendar) *OpenAIDrafter {
	return &OpenAIDrafter{
		client: openai.NewClientWithConfig(cfg),
		model:  openai.GPT4o,
		cal:    cal,
	}
}

// Draft asks the model for a JSON array of demands
func (d *OpenAIDrafter) Draft(ctx context.Context, req DraftRequest) ([]DraftedDemand, error) {
	prompt := fmt.Sprintf(`Você é um assistente que organiza demandas de eventos.
Extraia do texto abaixo as demandas (tarefas) do evento "%s" (data do evento: %s).

Data de hoje: %s

Texto:
%s

Responda somente com um array JSON no formato:
[
  {
    "title": "título curto da demanda",
    "subject": "assunto ou detalhes",
    "date": "prazo no formato YYYY-MM-DD, ou null se não houver"
  }
]

Regras:
- Se não houver demandas, responda []
- Converta prazos relativos ("amanhã", "semana que vem") em datas
- Não inclua nenhum texto fora do JSON`, req.EventName, req.EventDate, req.Today, req.Text)

	resp, err := d.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: d.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimSuffix(strings.TrimPrefix(content, "```"), "```")

	var raw []rawDraftedDemand
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	drafted := make([]DraftedDemand, 0, len(raw))
	for _, r := range raw {
		item := DraftedDemand{Title: r.Title, Subject: r.Subject}
		if r.Date != nil {
			if t, err := d.cal.ParseDate(*r.Date); err == nil {
				item.Date = &t
			}
		}
		drafted = append(drafted, item)
	}
	return drafted, nil
}

// DraftDemands proposes demands for an event from free text. Blank titles are
// dropped and dates before today are cleared.
func (s *EventService) DraftDemands(ctx context.Context, eventID, text string) ([]DraftedDemand, error) {
	if s.drafter == nil {
		return nil, ErrDrafterNotConfigured
	}

	event, err := s.GetEvent(eventID)
	if err != nil {
		return nil, err
	}

	today := s.cal.Today()
	drafted, err := s.drafter.Draft(ctx, DraftRequest{
		EventName: event.Name,
		EventDate: s.cal.FormatDate(event.Date),
		Today:     s.cal.FormatDate(today),
		Text:      text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to draft demands: %w", err)
	}
	if len(drafted) > constants.MaxDraftedDemands {
		return nil, fmt.Errorf("drafter proposed too many demands (max %d)", constants.MaxDraftedDemands)
	}

	valid := make([]DraftedDemand, 0, len(drafted))
	for _, d := range drafted {
		d.Title = strings.TrimSpace(d.Title)
		if d.Title == "" {
			continue
		}
		d.Subject = strings.TrimSpace(d.Subject)
		if d.Date != nil && s.cal.CivilDayDifference(*d.Date, today) < 0 {
			d.Date = nil
		}
		valid = append(valid, d)
	}
	if len(valid) == 0 {
		return nil, ErrNoDraftedDemands
	}
	return valid, nil
}
