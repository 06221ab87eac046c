package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/lifeec/go-backend/internal/mailer"
	"github.com/lifeec/go-backend/internal/models"
)

type Outcome struct {
	Recipient Recipient
	Sent      bool
}

// Dispatcher fans one alert out to every recipient concurrently and waits
// for all sends to settle. A recipient's failure never aborts its siblings;
// the mailer's shared pool bounds actual transport concurrency.
type Dispatcher struct {
	sender mailer.Sender
}

func NewDispatcher(sender mailer.Sender) *Dispatcher {
	return &Dispatcher{sender: sender}
}

func (d *Dispatcher) Dispatch(ctx context.Context, alert *models.EmergencyAlert, recipients []Recipient) []Outcome {
	outcomes := make([]Outcome, len(recipients))

	var wg sync.WaitGroup
	for i, rcpt := range recipients {
		wg.Add(1)
		go func(i int, rcpt Recipient) {
			defer wg.Done()

			err := d.sender.SendEmergencyAlert(ctx, rcpt.Email, alert)
			outcomes[i] = Outcome{Recipient: rcpt, Sent: err == nil}
			if err != nil {
				slog.Error("emergency email delivery failed",
					"alert_id", alert.ID, "to", rcpt.Email, "category", rcpt.Category, "error", err)
			}
		}(i, rcpt)
	}
	wg.Wait()

	return outcomes
}
