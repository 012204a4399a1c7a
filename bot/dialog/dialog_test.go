package dialog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/apptbot/bot/domain"
	"github.com/m3rciful/apptbot/bot/geocode"
	"github.com/m3rciful/apptbot/core/telegram/state"
)

type fakeStore struct {
	mu       sync.Mutex
	saved    []domain.Appointment
	failNext int
	nextID   int64
}

func (s *fakeStore) Create(_ context.Context, a *domain.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failNext > 0 {
		s.failNext--
		return errors.New("connection refused")
	}
	s.nextID++
	a.ID = s.nextID
	s.saved = append(s.saved, *a)
	return nil
}

func (s *fakeStore) ListByChat(_ context.Context, chatID int64) ([]domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Appointment
	for _, a := range s.saved {
		if a.ChatID == chatID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeGeocoder struct {
	result geocode.Result
}

func (g *fakeGeocoder) Resolve(context.Context, float64, float64) geocode.Result {
	return g.result
}

type fakeNotifier struct {
	mu     sync.Mutex
	sent   []domain.Appointment
	failed bool
}

func (n *fakeNotifier) NotifyNewAppointment(_ context.Context, a *domain.Appointment) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failed {
		return errors.New("admin chat unreachable")
	}
	n.sent = append(n.sent, *a)
	return nil
}

type fixture struct {
	ctrl     *Controller
	store    *fakeStore
	geocoder *fakeGeocoder
	notifier *fakeNotifier
}

func newFixture() *fixture {
	store := &fakeStore{}
	geocoder := &fakeGeocoder{result: geocode.Result{
		ShortAddress: "Central Clinic",
		FullAddress:  "Central Clinic, 12 Main St, Springfield",
	}}
	notifier := &fakeNotifier{}
	ctrl := NewController(Options{
		Store:        store,
		Geocoder:     geocoder,
		Notifier:     notifier,
		ContactPhone: "+1-555-0100",
	})
	return &fixture{ctrl: ctrl, store: store, geocoder: geocoder, notifier: notifier}
}

var testUser = UserRef{UserID: 7, ChatID: 7}

func textEvent(text string) Event { return Event{Text: text} }

func (f *fixture) handle(t *testing.T, ev Event) *Reply {
	t.Helper()
	r, err := f.ctrl.Handle(context.Background(), testUser, ev)
	require.NoError(t, err)
	return r
}

func TestBookingWithLocation(t *testing.T) {
	f := newFixture()

	r, err := f.ctrl.NewAppointment(context.Background(), testUser, "John Smith")
	require.NoError(t, err)
	assert.Contains(t, r.Text, "John Smith")
	assert.Equal(t, StateConfirmName, f.ctrl.State(testUser.UserID))

	r = f.handle(t, textEvent(BtnYes))
	assert.Equal(t, textAskPhone, r.Text)
	assert.Equal(t, StateAskPhone, f.ctrl.State(testUser.UserID))

	r = f.handle(t, Event{Phone: "+15550001122"})
	assert.Equal(t, textAskAddress, r.Text)
	assert.Equal(t, StateAskAddress, f.ctrl.State(testUser.UserID))

	r = f.handle(t, Event{Location: &domain.Location{Latitude: 41.31, Longitude: 69.24}})
	assert.Contains(t, r.Text, "Central Clinic, 12 Main St, Springfield")
	assert.Equal(t, StateAskWeekday, f.ctrl.State(testUser.UserID))

	r = f.handle(t, textEvent(string(domain.Friday)))
	assert.Contains(t, r.Text, "John Smith")
	assert.Contains(t, r.Text, "+15550001122")
	assert.Contains(t, r.Text, "📍 Location: Central Clinic")
	assert.Contains(t, r.Text, "🏠 Full address: Central Clinic, 12 Main St, Springfield")
	assert.Contains(t, r.Text, string(domain.Friday))
	assert.Equal(t, StateConfirmAppointment, f.ctrl.State(testUser.UserID))

	r = f.handle(t, textEvent(BtnYes))
	assert.Equal(t, textSaved, r.Text)
	assert.False(t, f.ctrl.InProgress(testUser.UserID))

	require.Len(t, f.store.saved, 1)
	saved := f.store.saved[0]
	assert.Equal(t, testUser.ChatID, saved.ChatID)
	assert.Equal(t, "John Smith", saved.FullName)
	assert.Equal(t, "+15550001122", saved.Phone)
	assert.Equal(t, "Central Clinic", saved.Address)
	require.NotNil(t, saved.FullAddress)
	assert.Equal(t, "Central Clinic, 12 Main St, Springfield", *saved.FullAddress)
	require.True(t, saved.HasLocation())
	assert.Equal(t, 41.31, *saved.Latitude)
	assert.Equal(t, 69.24, *saved.Longitude)
	assert.Equal(t, domain.Friday, saved.Weekday)
	assert.False(t, saved.CreatedAt.IsZero())

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, saved.ID, f.notifier.sent[0].ID)
}

func TestBookingWithTypedAddress(t *testing.T) {
	f := newFixture()

	_, err := f.ctrl.NewAppointment(context.Background(), testUser, "John")
	require.NoError(t, err)

	r := f.handle(t, textEvent(BtnNo))
	assert.Equal(t, textAskName, r.Text)
	require.NotNil(t, r.Markup)
	assert.True(t, r.Markup.RemoveKeyboard)
	assert.Equal(t, StateAskName, f.ctrl.State(testUser.UserID))

	r = f.handle(t, textEvent("  Jane Doe  "))
	assert.Contains(t, r.Text, "Jane Doe")
	assert.Equal(t, StateAskPhone, f.ctrl.State(testUser.UserID))

	f.handle(t, Event{Phone: "+15550003344"})
	r = f.handle(t, textEvent("12 Main Street"))
	assert.Equal(t, textAskWeekday, r.Text)

	r = f.handle(t, textEvent(string(domain.Monday)))
	assert.Contains(t, r.Text, "📍 Address: 12 Main Street")
	assert.NotContains(t, r.Text, "🏠")

	f.handle(t, textEvent(BtnYes))

	require.Len(t, f.store.saved, 1)
	saved := f.store.saved[0]
	assert.Equal(t, "Jane Doe", saved.FullName)
	assert.Equal(t, "12 Main Street", saved.Address)
	assert.Nil(t, saved.FullAddress)
	assert.False(t, saved.HasLocation())
}

func TestDegradedGeocodeStillProceeds(t *testing.T) {
	f := newFixture()
	f.geocoder.result = geocode.Result{ShortAddress: geocode.UnknownLocation, Degraded: true}

	_, err := f.ctrl.NewAppointment(context.Background(), testUser, "John")
	require.NoError(t, err)
	f.handle(t, textEvent(BtnYes))
	f.handle(t, Event{Phone: "+15550001122"})

	r := f.handle(t, Event{Location: &domain.Location{Latitude: 1, Longitude: 2}})
	assert.Contains(t, r.Text, geocode.UnknownLocation)
	assert.Equal(t, StateAskWeekday, f.ctrl.State(testUser.UserID))

	f.handle(t, textEvent(string(domain.Sunday)))
	f.handle(t, textEvent(BtnYes))

	require.Len(t, f.store.saved, 1)
	saved := f.store.saved[0]
	assert.Equal(t, geocode.UnknownLocation, saved.Address)
	assert.Nil(t, saved.FullAddress)
	require.True(t, saved.HasLocation())
}

func TestInvalidWeekdayIsIgnored(t *testing.T) {
	f := newFixture()

	_, err := f.ctrl.NewAppointment(context.Background(), testUser, "John")
	require.NoError(t, err)
	f.handle(t, textEvent(BtnYes))
	f.handle(t, Event{Phone: "+15550001122"})
	f.handle(t, textEvent("12 Main Street"))

	r := f.handle(t, textEvent("someday"))
	assert.Nil(t, r)
	assert.Equal(t, StateAskWeekday, f.ctrl.State(testUser.UserID))
}

func TestCancelMidDialog(t *testing.T) {
	f := newFixture()

	_, err := f.ctrl.NewAppointment(context.Background(), testUser, "John")
	require.NoError(t, err)
	f.handle(t, textEvent(BtnYes))
	f.handle(t, Event{Phone: "+15550001122"})

	r := f.handle(t, textEvent(BtnCancel))
	assert.Equal(t, textBookingCanceled, r.Text)
	assert.False(t, f.ctrl.InProgress(testUser.UserID))
	assert.Empty(t, f.store.saved)

	// Cancelling again from the main menu is harmless.
	r, err = f.ctrl.Cancel(context.Background(), testUser)
	require.NoError(t, err)
	assert.Equal(t, textActionCanceled, r.Text)
	assert.False(t, f.ctrl.InProgress(testUser.UserID))
}

func TestPersistenceFailureKeepsConfirmation(t *testing.T) {
	f := newFixture()
	f.store.failNext = 1

	_, err := f.ctrl.NewAppointment(context.Background(), testUser, "John")
	require.NoError(t, err)
	f.handle(t, textEvent(BtnYes))
	f.handle(t, Event{Phone: "+15550001122"})
	f.handle(t, textEvent("12 Main Street"))
	f.handle(t, textEvent(string(domain.Tuesday)))

	r, err := f.ctrl.Handle(context.Background(), testUser, textEvent(BtnYes))
	require.Error(t, err)
	var de *Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "PERSISTENCE_ERROR", de.Code())
	assert.Equal(t, textError, r.Text)
	assert.Equal(t, StateConfirmAppointment, f.ctrl.State(testUser.UserID))
	assert.Empty(t, f.store.saved)
	assert.Empty(t, f.notifier.sent)

	// Retry succeeds from the same state.
	r = f.handle(t, textEvent(BtnYes))
	assert.Equal(t, textSaved, r.Text)
	require.Len(t, f.store.saved, 1)
	require.Len(t, f.notifier.sent, 1)
}

func TestNotificationFailureDoesNotUndoBooking(t *testing.T) {
	f := newFixture()
	f.notifier.failed = true

	_, err := f.ctrl.NewAppointment(context.Background(), testUser, "John")
	require.NoError(t, err)
	f.handle(t, textEvent(BtnYes))
	f.handle(t, Event{Phone: "+15550001122"})
	f.handle(t, textEvent("12 Main Street"))
	f.handle(t, textEvent(string(domain.Wednesday)))

	r := f.handle(t, textEvent(BtnYes))
	assert.Equal(t, textSaved, r.Text)
	require.Len(t, f.store.saved, 1)
	assert.False(t, f.ctrl.InProgress(testUser.UserID))
}

func TestMenuButtonsInterceptDialog(t *testing.T) {
	f := newFixture()

	_, err := f.ctrl.NewAppointment(context.Background(), testUser, "John")
	require.NoError(t, err)
	f.handle(t, textEvent(BtnYes))

	r := f.handle(t, textEvent(BtnMyAppointments))
	assert.Equal(t, textNoAppointments, r.Text)
	assert.False(t, f.ctrl.InProgress(testUser.UserID))

	_, err = f.ctrl.NewAppointment(context.Background(), testUser, "John")
	require.NoError(t, err)
	r = f.handle(t, textEvent(BtnHelp))
	assert.Equal(t, textHelp, r.Text)
	assert.False(t, f.ctrl.InProgress(testUser.UserID))

	r = f.handle(t, Event{Text: BtnNewAppointment, SenderName: "John Smith"})
	assert.Contains(t, r.Text, "John Smith")
	assert.Equal(t, StateConfirmName, f.ctrl.State(testUser.UserID))
}

func TestListAppointmentsPreservesInsertionOrder(t *testing.T) {
	f := newFixture()

	for i, wd := range []domain.Weekday{domain.Monday, domain.Tuesday, domain.Wednesday} {
		_, err := f.ctrl.NewAppointment(context.Background(), testUser, fmt.Sprintf("User %d", i+1))
		require.NoError(t, err)
		f.handle(t, textEvent(BtnYes))
		f.handle(t, Event{Phone: "+15550001122"})
		f.handle(t, textEvent("12 Main Street"))
		f.handle(t, textEvent(string(wd)))
		f.handle(t, textEvent(BtnYes))
	}

	r, err := f.ctrl.ListAppointments(context.Background(), testUser)
	require.NoError(t, err)

	first := strings.Index(r.Text, "User 1")
	second := strings.Index(r.Text, "User 2")
	third := strings.Index(r.Text, "User 3")
	require.GreaterOrEqual(t, first, 0)
	assert.Greater(t, second, first)
	assert.Greater(t, third, second)
	assert.True(t, strings.HasPrefix(r.Text, textListHeader))
}

func TestIdleTextIsIgnored(t *testing.T) {
	f := newFixture()

	r := f.handle(t, textEvent("hello there"))
	assert.Nil(t, r)
	assert.False(t, f.ctrl.InProgress(testUser.UserID))
}

func TestUnexpectedInputForStateIsIgnored(t *testing.T) {
	f := newFixture()

	_, err := f.ctrl.NewAppointment(context.Background(), testUser, "John")
	require.NoError(t, err)

	// Free text at the confirm step is neither yes nor no.
	r := f.handle(t, textEvent("maybe"))
	assert.Nil(t, r)
	assert.Equal(t, StateConfirmName, f.ctrl.State(testUser.UserID))
}

func TestTextAtPhoneStepReprompts(t *testing.T) {
	f := newFixture()

	_, err := f.ctrl.NewAppointment(context.Background(), testUser, "John")
	require.NoError(t, err)
	f.handle(t, textEvent(BtnYes))

	// Typing the number instead of sharing the contact card nudges again.
	r := f.handle(t, textEvent("my number is +1 555 0000"))
	require.NotNil(t, r)
	assert.Equal(t, textAskPhone, r.Text)
	require.NotNil(t, r.Markup)
	assert.Equal(t, StateAskPhone, f.ctrl.State(testUser.UserID))

	// A location at this step gets the same nudge.
	r = f.handle(t, Event{Location: &domain.Location{Latitude: 1, Longitude: 2}})
	require.NotNil(t, r)
	assert.Equal(t, textAskPhone, r.Text)
	assert.Equal(t, StateAskPhone, f.ctrl.State(testUser.UserID))

	// The contact card still advances the dialog.
	r = f.handle(t, Event{Phone: "+15550001122"})
	assert.Equal(t, textAskAddress, r.Text)
	assert.Equal(t, StateAskAddress, f.ctrl.State(testUser.UserID))
}

func TestConcurrentUpdatesFromSameUser(t *testing.T) {
	f := newFixture()

	_, err := f.ctrl.NewAppointment(context.Background(), testUser, "John")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f.ctrl.Handle(context.Background(), testUser, textEvent(BtnYes))
		}()
	}
	wg.Wait()

	// Whatever interleaving occurred, the dialog must land in a valid state.
	st := f.ctrl.State(testUser.UserID)
	assert.Contains(t, []state.State{StateAskPhone, state.StateIdle}, st)
}

func TestStartResetsDialog(t *testing.T) {
	f := newFixture()

	_, err := f.ctrl.NewAppointment(context.Background(), testUser, "John")
	require.NoError(t, err)
	require.True(t, f.ctrl.InProgress(testUser.UserID))

	r, err := f.ctrl.Start(context.Background(), testUser)
	require.NoError(t, err)
	assert.Equal(t, textWelcome, r.Text)
	assert.False(t, f.ctrl.InProgress(testUser.UserID))
}
