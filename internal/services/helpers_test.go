package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/automate-backend/internal/data/repos"
	"github.com/yungbote/automate-backend/internal/data/repos/testutil"
	"github.com/yungbote/automate-backend/internal/modules/faq"
	"github.com/yungbote/automate-backend/internal/modules/maintenance"
	"github.com/yungbote/automate-backend/internal/observability"
	"github.com/yungbote/automate-backend/internal/platform/ctxutil"
	"github.com/yungbote/automate-backend/internal/platform/sendgrid"
	"github.com/yungbote/automate-backend/internal/platform/twilio"
	"github.com/yungbote/automate-backend/internal/realtime"
)

// fixedNow is the clock used by every service under test.
var fixedNow = time.Date(2026, time.March, 10, 9, 30, 0, 0, time.Local)

type recordingEmitter struct {
	mu   sync.Mutex
	msgs []realtime.SSEMessage
}

func (e *recordingEmitter) Emit(ctx context.Context, msg realtime.SSEMessage) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.msgs = append(e.msgs, msg)
}

func (e *recordingEmitter) events() []realtime.SSEEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]realtime.SSEEvent, 0, len(e.msgs))
	for _, m := range e.msgs {
		out = append(out, m.Event)
	}
	return out
}

type fakeMailer struct {
	sent chan sendgrid.SendEmailRequest
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{sent: make(chan sendgrid.SendEmailRequest, 16)}
}

func (f *fakeMailer) Send(ctx context.Context, req sendgrid.SendEmailRequest) (*sendgrid.SendEmailResult, error) {
	f.sent <- req
	return &sendgrid.SendEmailResult{StatusCode: 202}, nil
}

type fakeSMS struct {
	sent chan string
}

func newFakeSMS() *fakeSMS {
	return &fakeSMS{sent: make(chan string, 16)}
}

func (f *fakeSMS) SendSMS(ctx context.Context, to, body string) (*twilio.Message, error) {
	f.sent <- to + ": " + body
	return &twilio.Message{SID: "SM-test", Status: "queued"}, nil
}

type env struct {
	db       *gorm.DB
	repos    envRepos
	emitter  *recordingEmitter
	mailer   *fakeMailer
	sms      *fakeSMS
	metrics  *observability.Metrics
	auth     AuthService
	users    UserService
	cars     CarService
	recs     RecommendationService
	notifs   NotificationService
	bookings BookingService
	chat     ChatService
	reminder ReminderService
	charts   ChartService
}

type envRepos struct {
	user         repos.UserRepo
	admin        repos.AdminRepo
	token        repos.UserTokenRepo
	car          repos.CarRepo
	booking      repos.BookingRepo
	notification repos.NotificationRepo
	recLog       repos.RecommendationLogRepo
	chat         repos.ChatMessageRepo
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	clock := func() time.Time { return fixedNow }

	r := envRepos{
		user:         repos.NewUserRepo(db, log),
		admin:        repos.NewAdminRepo(db, log),
		token:        repos.NewUserTokenRepo(db, log),
		car:          repos.NewCarRepo(db, log),
		booking:      repos.NewBookingRepo(db, log),
		notification: repos.NewNotificationRepo(db, log),
		recLog:       repos.NewRecommendationLogRepo(db, log),
		chat:         repos.NewChatMessageRepo(db, log),
	}
	model, err := maintenance.LoadModel(filepath.Join("..", "modules", "maintenance", "testdata", "maintenance.csv"))
	if err != nil {
		t.Fatalf("load model: %v", err)
	}
	corpus := []faq.Entry{
		{Question: "How often should I change oil?", Answer: "Every 5000 miles."},
		{Question: "When should I rotate my tires?", Answer: "Every 6000 to 8000 miles."},
	}

	e := &env{
		db:      db,
		repos:   r,
		emitter: &recordingEmitter{},
		mailer:  newFakeMailer(),
		sms:     newFakeSMS(),
		metrics: observability.NewMetrics(),
	}
	notifier := NewBookingNotifier(e.emitter)
	e.auth = NewAuthService(db, log, r.user, r.admin, r.token, "test-secret", 15*time.Minute, 24*time.Hour)
	e.users = NewUserService(log, r.user, r.admin)
	e.cars = NewCarService(log, r.car, clock)
	e.recs = NewRecommendationService(log, model, e.cars, r.recLog, e.metrics)
	e.notifs = NewNotificationService(log, r.notification, r.user, notifier, e.mailer, e.sms, e.metrics)
	e.bookings = NewBookingService(log, r.booking, e.cars, e.notifs, notifier, e.metrics, clock)
	e.chat = NewChatService(log, corpus, r.chat, e.metrics)
	e.reminder = NewReminderService(log, r.booking, e.notifs, e.metrics, clock)
	e.charts = NewChartService(log, e.bookings, "")
	return e
}

func userCtx(id uint) context.Context {
	return ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{SubjectID: id, Role: ctxutil.RoleUser})
}

func adminCtx(id uint) context.Context {
	return ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{SubjectID: id, Role: ctxutil.RoleAdmin})
}

func ptr[T any](v T) *T { return &v }

func (e *env) register(t *testing.T, email string) uint {
	t.Helper()
	u, err := e.auth.RegisterUser(context.Background(), RegisterInput{
		Name:     "Dana Driver",
		Email:    email,
		Phone:    "555-0101",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return u.ID
}

func (e *env) addCar(t *testing.T, userID uint) uint {
	t.Helper()
	car, err := e.cars.AddCar(userCtx(userID), CarInput{
		Make:             "Ford",
		Model:            "Focus",
		Year:             ptr(2011),
		Mileage:          ptr(100000),
		EngineType:       "Diesel",
		DrivingCondition: "Fair",
	})
	if err != nil {
		t.Fatalf("add car: %v", err)
	}
	return car.ID
}
