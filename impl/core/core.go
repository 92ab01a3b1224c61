package core

import (
	"DriveLine/entity"
	"DriveLine/internal/config"
	"DriveLine/internal/lib/sl"
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Repository is the persistence side the core touches directly: admin
// api-key storage.
type Repository interface {
	CheckApiKey(key string) (string, error)
	GenerateApiKey(username string) (string, error)
}

// Assistant is the completion provider: one round of persona + history +
// user text in, final text and/or tool calls out.
type Assistant interface {
	Complete(ctx context.Context, userText string, history []entity.ChatEntry) (entity.AiAnswer, error)
}

// Channel is the outbound message delivery side. Every method is
// fire-and-forget from the loop's perspective: failures are logged by the
// implementation and never retried here.
type Channel interface {
	SendText(userID, text string) error
	SendQuickReplies(userID, text string, replies []entity.QuickReply) error
	SendCarousel(userID string, cards []entity.Card) error
	SendTyping(userID string) error
}

// CatalogService is the sellable-inventory store. The chat side only
// reads; the admin CRUD API mutates.
type CatalogService interface {
	GetCarByID(ctx context.Context, id string) (*entity.CarModel, error)
	GetAllCars(ctx context.Context) ([]entity.CarModel, error)
	CreateCar(ctx context.Context, car *entity.CarModel) error
	UpdateCar(ctx context.Context, car *entity.CarModel) error
	DeleteCar(ctx context.Context, id string) error
}

// BookingService owns appointments. Booking failures surface as errors;
// a failed booking must never read as success.
type BookingService interface {
	CheckAvailability(ctx context.Context, date time.Time) ([]time.Time, error)
	Book(ctx context.Context, customer entity.CustomerInfo, car entity.CarModel, at time.Time) (*entity.Appointment, error)
	Cancel(ctx context.Context, id string) error
	Reschedule(ctx context.Context, id string, at time.Time) (*entity.Appointment, error)
	List(ctx context.Context) ([]entity.Appointment, error)
}

// HistoryStore is the append-only per-user turn log with bounded-recency
// reads (oldest first).
type HistoryStore interface {
	SaveTurn(userID, role, content string) error
	GetRecent(userID string, limit int) ([]entity.ChatTurn, error)
	ActiveChats() ([]entity.ChatSummary, error)
}

// PauseRegistry gates whether the assistant may answer a user at all.
type PauseRegistry interface {
	IsPaused(userID string) bool
	Pause(userID string, d time.Duration)
}

// Notifier pushes short admin alerts (bookings, handoffs).
type Notifier interface {
	Notify(text string)
}

// ChatFeed receives every persisted turn and typing signal for live
// admin dashboards.
type ChatFeed interface {
	BroadcastTurn(turn entity.ChatTurn)
	BroadcastTyping(userID string)
}

type Core struct {
	repo     Repository
	catalog  CatalogService
	booking  BookingService
	history  HistoryStore
	pause    PauseRegistry
	ass      Assistant
	channel  Channel
	notifier Notifier
	feed     ChatFeed

	tools map[string]toolDef
	keys  map[string]string

	metadataTag   string
	authKey       string
	historyLimit  int
	maxToolRounds int
	humanPause    time.Duration
	handoffPause  time.Duration

	log *slog.Logger
}

func New(conf *config.Config, log *slog.Logger) *Core {
	c := &Core{
		metadataTag:   conf.Facebook.MetadataTag,
		authKey:       conf.Listen.ApiKey,
		historyLimit:  conf.Dealership.HistoryLimit,
		maxToolRounds: conf.OpenAI.MaxToolRounds,
		humanPause:    time.Duration(conf.Dealership.HumanPauseMin) * time.Minute,
		handoffPause:  time.Duration(conf.Dealership.HandoffPauseMin) * time.Minute,
		keys:          make(map[string]string),
		log:           log.With(sl.Module("core")),
	}
	c.initTools()
	return c
}

func (c *Core) SetRepository(repo Repository) {
	c.repo = repo
}

func (c *Core) SetCatalogService(catalog CatalogService) {
	c.catalog = catalog
}

func (c *Core) SetBookingService(booking BookingService) {
	c.booking = booking
}

func (c *Core) SetHistoryStore(history HistoryStore) {
	c.history = history
}

func (c *Core) SetPauseRegistry(pause PauseRegistry) {
	c.pause = pause
}

func (c *Core) SetAssistant(ass Assistant) {
	c.ass = ass
}

func (c *Core) SetChannel(channel Channel) {
	c.channel = channel
}

func (c *Core) SetNotifier(notifier Notifier) {
	c.notifier = notifier
}

func (c *Core) SetChatFeed(feed ChatFeed) {
	c.feed = feed
}

// CheckApiKey authenticates an admin API bearer token: the static config
// key first, then keys issued at startup, then the api-keys collection.
func (c *Core) CheckApiKey(key string) (string, error) {
	if c.authKey != "" && key == c.authKey {
		return "admin", nil
	}
	if username, ok := c.keys[key]; ok {
		return username, nil
	}
	if c.repo != nil {
		username, err := c.repo.CheckApiKey(key)
		if err == nil && username != "" {
			return username, nil
		}
	}
	return "", errUnauthorized
}

// GenerateApiKey issues (or returns the existing) key for a username and
// caches it for auth checks. Called during startup wiring, before the
// server accepts requests.
func (c *Core) GenerateApiKey(username string) (string, error) {
	if c.repo == nil {
		return "", fmt.Errorf("repository is not set")
	}

	apiKey, err := c.repo.GenerateApiKey(username)
	if err != nil {
		return "", fmt.Errorf("failed to generate API key: %w", err)
	}

	c.keys[apiKey] = username
	return apiKey, nil
}

// GetAllCars exposes the catalog to the admin API.
func (c *Core) GetAllCars(ctx context.Context) ([]entity.CarModel, error) {
	return c.catalog.GetAllCars(ctx)
}

func (c *Core) GetCar(ctx context.Context, id string) (*entity.CarModel, error) {
	return c.catalog.GetCarByID(ctx, id)
}

func (c *Core) CreateCar(ctx context.Context, car *entity.CarModel) error {
	return c.catalog.CreateCar(ctx, car)
}

func (c *Core) UpdateCar(ctx context.Context, car *entity.CarModel) error {
	return c.catalog.UpdateCar(ctx, car)
}

func (c *Core) DeleteCar(ctx context.Context, id string) error {
	return c.catalog.DeleteCar(ctx, id)
}

// ListAppointments exposes booked appointments to the admin API.
func (c *Core) ListAppointments(ctx context.Context) ([]entity.Appointment, error) {
	return c.booking.List(ctx)
}

// ChatHistory returns a user's recent turns, oldest first.
func (c *Core) ChatHistory(userID string, limit int) ([]entity.ChatTurn, error) {
	if limit <= 0 {
		limit = c.historyLimit
	}
	return c.history.GetRecent(userID, limit)
}

// ActiveChats lists conversations for the admin dashboard, most recent
// first.
func (c *Core) ActiveChats() ([]entity.ChatSummary, error) {
	return c.history.ActiveChats()
}
