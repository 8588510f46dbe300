package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/qrave1/BerrowBooks/internal/application/clock"
	"github.com/qrave1/BerrowBooks/internal/domain/events"
	"github.com/qrave1/BerrowBooks/internal/domain/models"
	"github.com/qrave1/BerrowBooks/internal/infra/adapters/memory"
)

var t0 = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

// recordingNotifier запоминает отправленные уведомления
type recordingNotifier struct {
	mu sync.Mutex

	newRequests []events.NewRequestNotice
	shipped     []events.ShippedNotice
	returned    []events.ReturnCompleteNotice
	reminders   []events.ReminderNotice
	failWith    error
}

func (n *recordingNotifier) NotifyNewRequest(_ context.Context, notice events.NewRequestNotice) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.newRequests = append(n.newRequests, notice)
	return n.failWith
}

func (n *recordingNotifier) NotifyShipped(_ context.Context, notice events.ShippedNotice) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.shipped = append(n.shipped, notice)
	return n.failWith
}

func (n *recordingNotifier) NotifyReturnComplete(_ context.Context, notice events.ReturnCompleteNotice) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.returned = append(n.returned, notice)
	return n.failWith
}

func (n *recordingNotifier) NotifyReminder(_ context.Context, notice events.ReminderNotice) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.reminders = append(n.reminders, notice)
	return n.failWith
}

func (n *recordingNotifier) total() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return len(n.newRequests) + len(n.shipped) + len(n.returned) + len(n.reminders)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.RoomEvent
}

func (p *recordingPublisher) Publish(event events.RoomEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)
}

var errMailDown = errors.New("mail provider is down")

type fixture struct {
	clock     *clock.FixedClock
	store     *memory.Store
	notifier  *recordingNotifier
	publisher *recordingPublisher

	access   AccessUsecase
	users    UserUsecase
	rooms    RoomUsecase
	admins   AdminUsecase
	requests RequestUsecase
}

func newFixture(t *testing.T, policy models.TransitionPolicy) *fixture {
	t.Helper()

	f := &fixture{
		clock:     clock.Fixed(t0),
		store:     memory.NewStore(),
		notifier:  &recordingNotifier{},
		publisher: &recordingPublisher{},
	}

	f.access = NewAccessUsecase(f.store.Rooms(), f.store.Admins())
	f.users = NewUserUsecase([]byte("test-secret"), f.clock, f.store.Users())
	f.rooms = NewRoomUsecase(f.clock, 5, f.access, f.store.Rooms(), f.store.Admins())
	f.admins = NewAdminUsecase(f.clock, f.access, f.store.Users(), f.store.Admins())
	f.requests = NewRequestUsecase(
		f.clock,
		policy,
		f.access,
		f.store.Users(),
		f.store.Rooms(),
		f.store.Requests(),
		f.notifier,
		f.publisher,
	)

	return f
}

func (f *fixture) identity(t *testing.T, email string) models.Identity {
	t.Helper()

	user, err := f.users.EnsureUser(context.Background(), email)
	if err != nil {
		t.Fatalf("ensure user %s: %v", email, err)
	}

	return models.Identity{UserID: user.ID, Email: user.Email}
}

func (f *fixture) room(t *testing.T, owner models.Identity) *models.Room {
	t.Helper()

	room, err := f.rooms.CreateRoom(context.Background(), owner, "Shelf", t0.Add(7*24*time.Hour).Format(time.RFC3339))
	if err != nil {
		t.Fatalf("create room: %v", err)
	}

	return room
}

func (f *fixture) request(t *testing.T, requester models.Identity, room *models.Room, title string) *models.BookRequest {
	t.Helper()

	req, err := f.requests.CreateRequest(context.Background(), requester, room.ID, title, room.Token)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}

	return req
}

// purchase переводит заявку в PURCHASED, чтобы строгая политика пустила дальше в SENT
func (f *fixture) purchase(t *testing.T, actor models.Identity, req *models.BookRequest) {
	t.Helper()

	if _, err := f.requests.UpdateStatus(context.Background(), actor, req.RoomID, req.ID, "PURCHASED", ""); err != nil {
		t.Fatalf("update to PURCHASED: %v", err)
	}
}
