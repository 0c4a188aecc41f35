// Package notify pushes reminder digests to the user over LINE.
package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/rs/zerolog"

	"github.com/pexkit/pexkit/internal/models"
	"github.com/pexkit/pexkit/internal/views"
)

// Notifier sends digest messages to a single LINE user.
type Notifier struct {
	bot *messaging_api.MessagingApiAPI
	to  string
	log zerolog.Logger
}

// New creates a notifier pushing to the given LINE user ID.
func New(channelToken, to string, log zerolog.Logger) (*Notifier, error) {
	bot, err := messaging_api.NewMessagingApiAPI(channelToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create LINE client: %w", err)
	}
	return &Notifier{bot: bot, to: to, log: log}, nil
}

// SendDigest pushes the current digest. It is a no-op when there is nothing
// to report.
func (n *Notifier) SendDigest(todos []models.Todo, birthdays []models.Birthday, now time.Time) error {
	text := BuildDigest(todos, birthdays, now)
	if text == "" {
		return nil
	}

	_, err := n.bot.PushMessage(&messaging_api.PushMessageRequest{
		To: n.to,
		Messages: []messaging_api.MessageInterface{
			&messaging_api.TextMessage{Text: text},
		},
	}, "")
	if err != nil {
		n.log.Error().Err(err).Msg("failed to push digest")
		return fmt.Errorf("failed to push digest: %w", err)
	}
	n.log.Info().Msg("digest sent")
	return nil
}

// BuildDigest formats today's birthdays and overdue todos into one message.
// It returns "" when both lists are empty.
func BuildDigest(todos []models.Todo, birthdays []models.Birthday, now time.Time) string {
	var sections []string

	if today := views.GroupBirthdays(birthdays, now).Today; len(today) > 0 {
		lines := make([]string, 0, len(today)+1)
		lines = append(lines, fmt.Sprintf("🎂 Birthdays today (%d)", len(today)))
		for _, b := range today {
			if age, ok := views.Age(b, now); ok {
				lines = append(lines, fmt.Sprintf("・%s (turning %d)", b.Name, age))
			} else {
				lines = append(lines, "・"+b.Name)
			}
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if overdue := views.FilterTodos(todos, views.FilterOverdue, now); len(overdue) > 0 {
		lines := make([]string, 0, len(overdue)+1)
		lines = append(lines, fmt.Sprintf("⏰ Overdue todos (%d)", len(overdue)))
		for _, t := range overdue {
			lines = append(lines, fmt.Sprintf("・%s (due %s)", t.Title, t.DueDate.Format("2006-01-02")))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	return strings.Join(sections, "\n\n")
}
