package notify

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/lifeec/go-backend/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type slowSender struct {
	delay    time.Duration
	inFlight atomic.Int64
	peak     atomic.Int64
	failEven bool
	calls    atomic.Int64
}

func (s *slowSender) SendEmergencyAlert(ctx context.Context, to string, alert *models.EmergencyAlert) error {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}

	time.Sleep(s.delay)

	call := s.calls.Add(1)
	if s.failEven && call%2 == 0 {
		return errors.New("transient failure")
	}
	return nil
}

func (s *slowSender) SendOTP(ctx context.Context, to, code string) error {
	return nil
}

func TestDispatcher_SettlesAllRecipients(t *testing.T) {
	sender := &slowSender{delay: 10 * time.Millisecond, failEven: true}
	d := NewDispatcher(sender)

	recipients := make([]Recipient, 20)
	for i := range recipients {
		recipients[i] = Recipient{
			Email:    fmt.Sprintf("user%d@example.com", i),
			Category: CategoryStaff,
		}
	}

	alert := &models.EmergencyAlert{ID: "a1", ResidentName: "Test", Timestamp: time.Now().UTC()}
	outcomes := d.Dispatch(context.Background(), alert, recipients)

	if len(outcomes) != 20 {
		t.Fatalf("expected 20 outcomes, got %d", len(outcomes))
	}
	for i, o := range outcomes {
		if o.Recipient.Email != recipients[i].Email {
			t.Errorf("outcome %d belongs to %s, want %s", i, o.Recipient.Email, recipients[i].Email)
		}
	}

	sent := 0
	for _, o := range outcomes {
		if o.Sent {
			sent++
		}
	}
	if sent != 10 {
		t.Errorf("expected 10 successful sends with every other call failing, got %d", sent)
	}
}

func TestDispatcher_RunsConcurrently(t *testing.T) {
	sender := &slowSender{delay: 30 * time.Millisecond}
	d := NewDispatcher(sender)

	recipients := make([]Recipient, 8)
	for i := range recipients {
		recipients[i] = Recipient{Email: fmt.Sprintf("user%d@example.com", i), Category: CategoryRelative}
	}

	alert := &models.EmergencyAlert{ID: "a1", Timestamp: time.Now().UTC()}
	start := time.Now()
	d.Dispatch(context.Background(), alert, recipients)
	elapsed := time.Since(start)

	if sender.peak.Load() < 2 {
		t.Errorf("expected overlapping sends, peak in-flight was %d", sender.peak.Load())
	}
	// Serial execution would take 8 * 30ms.
	if elapsed > 200*time.Millisecond {
		t.Errorf("dispatch took %v, expected concurrent fan-out", elapsed)
	}
}

func TestDispatcher_NoRecipients(t *testing.T) {
	d := NewDispatcher(&slowSender{})
	alert := &models.EmergencyAlert{ID: "a1", Timestamp: time.Now().UTC()}
	outcomes := d.Dispatch(context.Background(), alert, nil)
	if len(outcomes) != 0 {
		t.Errorf("expected no outcomes, got %d", len(outcomes))
	}
}
