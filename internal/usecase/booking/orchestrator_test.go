package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	bookingdomain "github.com/rocker1166/skilllink/internal/domain/booking"
	"github.com/rocker1166/skilllink/internal/domain/notification"
)

type mockBookingRepo struct {
	created     []bookingdomain.Booking
	createErr   error
	transitions []string
	updateErr   error
}

func (m *mockBookingRepo) Create(_ context.Context, b bookingdomain.Booking) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, b)
	return nil
}

func (m *mockBookingRepo) GetByID(context.Context, uuid.UUID) (bookingdomain.Booking, error) {
	return bookingdomain.Booking{}, bookingdomain.ErrNotFound
}

func (m *mockBookingRepo) UpdateStatus(_ context.Context, _ uuid.UUID, from, to string) (bool, error) {
	if m.updateErr != nil {
		return false, m.updateErr
	}
	m.transitions = append(m.transitions, from+"->"+to)
	return true, nil
}

type mockNotificationRepo struct {
	created []notification.Notification
	err     error
}

func (m *mockNotificationRepo) Create(_ context.Context, n notification.Notification) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, n)
	return nil
}

func (m *mockNotificationRepo) ListByUser(context.Context, uuid.UUID) ([]notification.Notification, error) {
	return nil, nil
}

func (m *mockNotificationRepo) MarkRead(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

type mockPusher struct {
	pushed []notification.Notification
}

func (m *mockPusher) Push(_ uuid.UUID, n notification.Notification) {
	m.pushed = append(m.pushed, n)
}

// recordingSink records the interleaving of sink events and notification
// persistence so ordering can be asserted.
type recordingSink struct {
	repo   *mockNotificationRepo
	events []string
}

func (s *recordingSink) DialogClosed(Payload) {
	s.events = append(s.events, "dialog_closed")
}

func (s *recordingSink) PaymentRequested(Payload) {
	s.events = append(s.events, "payment_requested:notified="+boolStr(len(s.repo.created) > 0))
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func payload() Payload {
	return Payload{
		ID:            uuid.New(),
		ProviderID:    uuid.New(),
		RequesterID:   uuid.New(),
		RequesterName: "Alice",
		ServiceName:   "Guitar Lessons",
	}
}

func TestOrchestrator_Create_InvalidInput(t *testing.T) {
	o := NewOrchestrator(&mockBookingRepo{}, &mockNotificationRepo{}, nil, nil, 0)

	cases := []CreateInput{
		{ProviderID: uuid.Nil, RequesterID: uuid.New(), RequesterName: "A", ServiceName: "S"},
		{ProviderID: uuid.New(), RequesterID: uuid.Nil, RequesterName: "A", ServiceName: "S"},
		{ProviderID: uuid.New(), RequesterID: uuid.New(), RequesterName: "A", ServiceName: "  "},
		{ProviderID: uuid.New(), RequesterID: uuid.New(), RequesterName: "", ServiceName: "S"},
	}
	for i, in := range cases {
		if _, err := o.Create(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}

	self := uuid.New()
	if _, err := o.Create(context.Background(), CreateInput{ProviderID: self, RequesterID: self, RequesterName: "A", ServiceName: "S"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for self booking, got %v", err)
	}
}

func TestOrchestrator_Create_PersistsCreatedStatus(t *testing.T) {
	repo := &mockBookingRepo{}
	o := NewOrchestrator(repo, &mockNotificationRepo{}, nil, nil, 0)

	p, err := o.Create(context.Background(), CreateInput{
		ProviderID:    uuid.New(),
		RequesterID:   uuid.New(),
		RequesterName: "  Alice ",
		ServiceName:   " Guitar Lessons ",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(repo.created))
	}
	if repo.created[0].Status != bookingdomain.StatusCreated {
		t.Fatalf("expected status %q, got %q", bookingdomain.StatusCreated, repo.created[0].Status)
	}
	if p.RequesterName != "Alice" || p.ServiceName != "Guitar Lessons" {
		t.Fatalf("expected trimmed fields, got %q / %q", p.RequesterName, p.ServiceName)
	}
}

func TestOrchestrator_Orchestrate_NonSwap(t *testing.T) {
	bookings := &mockBookingRepo{}
	notifications := &mockNotificationRepo{}
	pusher := &mockPusher{}
	sink := &recordingSink{repo: notifications}
	o := NewOrchestrator(bookings, notifications, pusher, nil, 0)

	p := payload()
	out := o.Orchestrate(context.Background(), p, sink)

	if out.State != StateAwaitingPayment {
		t.Fatalf("expected state %q, got %q", StateAwaitingPayment, out.State)
	}
	if !out.PaymentRequired {
		t.Fatalf("expected payment required")
	}
	if out.Warning != "" {
		t.Fatalf("unexpected warning: %q", out.Warning)
	}
	if out.Ack.Message != "Your request has been sent successfully." {
		t.Fatalf("unexpected ack message: %q", out.Ack.Message)
	}

	if len(sink.events) != 2 || sink.events[0] != "dialog_closed" {
		t.Fatalf("expected dialog close before anything else, got %v", sink.events)
	}
	if sink.events[1] != "payment_requested:notified=true" {
		t.Fatalf("expected payment request after notification persisted, got %v", sink.events)
	}

	if len(notifications.created) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications.created))
	}
	n := notifications.created[0]
	if n.UserID != p.ProviderID {
		t.Fatalf("notification should target the provider")
	}
	if n.Type != notification.TypeNewBooking {
		t.Fatalf("expected type %q, got %q", notification.TypeNewBooking, n.Type)
	}
	if len(pusher.pushed) != 1 {
		t.Fatalf("expected 1 push, got %d", len(pusher.pushed))
	}

	if len(bookings.transitions) != 1 || bookings.transitions[0] != bookingdomain.StatusCreated+"->"+bookingdomain.StatusAwaitingPayment {
		t.Fatalf("unexpected transitions: %v", bookings.transitions)
	}
}

func TestOrchestrator_Orchestrate_SkillSwap(t *testing.T) {
	bookings := &mockBookingRepo{}
	notifications := &mockNotificationRepo{}
	sink := &recordingSink{repo: notifications}
	o := NewOrchestrator(bookings, notifications, nil, nil, 0)

	p := payload()
	p.IsSkillSwap = true
	out := o.Orchestrate(context.Background(), p, sink)

	if out.State != StateComplete {
		t.Fatalf("expected state %q, got %q", StateComplete, out.State)
	}
	if out.PaymentRequired {
		t.Fatalf("swap booking must not require payment")
	}
	for _, e := range sink.events {
		if e != "dialog_closed" {
			t.Fatalf("unexpected sink event for swap: %v", sink.events)
		}
	}
	if notifications.created[0].Type != notification.TypeSkillSwapRequest {
		t.Fatalf("expected swap notification type, got %q", notifications.created[0].Type)
	}
	if len(bookings.transitions) != 1 || bookings.transitions[0] != bookingdomain.StatusCreated+"->"+bookingdomain.StatusSwapAccepted {
		t.Fatalf("unexpected transitions: %v", bookings.transitions)
	}
}

func TestOrchestrator_Orchestrate_NotifyFailureStillProceeds(t *testing.T) {
	bookings := &mockBookingRepo{}
	notifications := &mockNotificationRepo{err: errors.New("store down")}
	pusher := &mockPusher{}
	sink := &recordingSink{repo: notifications}
	o := NewOrchestrator(bookings, notifications, pusher, nil, 0)

	out := o.Orchestrate(context.Background(), payload(), sink)

	if out.State != StateAwaitingPayment {
		t.Fatalf("expected state %q after notify failure, got %q", StateAwaitingPayment, out.State)
	}
	if out.Warning != "Booking created but notification could not be sent." {
		t.Fatalf("unexpected warning: %q", out.Warning)
	}
	if !out.PaymentRequired {
		t.Fatalf("payment step must still run after notify failure")
	}
	if len(pusher.pushed) != 0 {
		t.Fatalf("no push expected when persistence failed")
	}
	if sink.events[len(sink.events)-1] != "payment_requested:notified=false" {
		t.Fatalf("unexpected sink events: %v", sink.events)
	}
}

func TestOrchestrator_Orchestrate_NilSink(t *testing.T) {
	o := NewOrchestrator(&mockBookingRepo{}, &mockNotificationRepo{}, nil, nil, 0)
	out := o.Orchestrate(context.Background(), payload(), nil)
	if out.State != StateAwaitingPayment {
		t.Fatalf("expected state %q, got %q", StateAwaitingPayment, out.State)
	}
}
