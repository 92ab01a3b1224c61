package main

import (
	"DriveLine/ai/gpt"
	"DriveLine/bot"
	"DriveLine/bot/messenger"
	"DriveLine/impl/core"
	"DriveLine/internal/config"
	repository "DriveLine/internal/database"
	"DriveLine/internal/http-server/api"
	"DriveLine/internal/lib/logger"
	"DriveLine/internal/lib/sl"
	"DriveLine/internal/service/booking"
	"DriveLine/internal/service/catalog"
	"DriveLine/internal/service/gcal"
	"DriveLine/internal/service/history"
	"DriveLine/internal/service/pause"
	"DriveLine/internal/service/sheets"
	"DriveLine/internal/ws"
	"context"
	"flag"
	"log/slog"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	// Initialize Telegram bot if enabled
	var tgBot *bot.TgBot
	if conf.Telegram.Enabled {
		var err error
		tgBot, err = bot.NewTgBot(conf.Telegram.BotName, conf.Telegram.ApiKey, conf.Telegram.AdminId, lg)
		if err != nil {
			lg.Error("failed to initialize telegram bot", slog.String("error", err.Error()))
		} else {
			lg = logger.SetupTelegramHandler(lg, tgBot, slog.LevelWarn)
			lg.With(
				slog.String("bot_name", conf.Telegram.BotName),
			).Info("telegram bot initialized")

			go func() {
				if err := tgBot.Start(); err != nil {
					lg.Error("telegram bot error", slog.String("error", err.Error()))
				}
			}()
		}
	}

	lg.Info("starting driveline", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	handler := core.New(conf, lg)

	catalogService := catalog.NewService(lg)
	bookingService := booking.NewService(conf, lg)
	historyService := history.NewService(lg)
	pauseRegistry := pause.NewRegistry(lg)

	db, err := repository.NewMongoClient(conf, lg)
	if err != nil {
		lg.With(
			sl.Err(err),
		).Error("mongo client")
	}
	if db != nil {
		handler.SetRepository(db)
		catalogService.SetRepository(db)
		bookingService.SetRepository(db)
		historyService.SetRepository(db)
		if err := db.EnsureChatTurnIndexes(); err != nil {
			lg.With(sl.Err(err)).Warn("chat turn indexes")
		}
		lg.With(
			slog.String("host", conf.Mongo.Host),
			slog.String("port", conf.Mongo.Port),
			slog.String("user", conf.Mongo.User),
			slog.String("database", conf.Mongo.Database),
		).Info("mongo client initialized")

		dashboardKey, err := handler.GenerateApiKey("dashboard")
		if err != nil {
			lg.With(
				sl.Err(err),
			).Error("generate dashboard api key")
		} else {
			lg.With(sl.Secret("api_key", dashboardKey)).Info("dashboard api key ready")
		}
	} else {
		bookingService.SetRepository(booking.NewMemoryStore())
		lg.Info("mongo disabled, using in-memory stores")
	}

	ctx := context.Background()

	calendarService, err := gcal.NewService(ctx, conf, lg)
	if err != nil {
		lg.With(sl.Err(err)).Error("calendar service")
	}
	if calendarService != nil {
		bookingService.SetCalendar(calendarService)
		lg.With(slog.String("calendar", conf.Google.CalendarId)).Info("calendar mirror initialized")
	}

	ledgerService, err := sheets.NewService(ctx, conf, lg)
	if err != nil {
		lg.With(sl.Err(err)).Error("sheets service")
	}
	if ledgerService != nil {
		bookingService.SetLedger(ledgerService)
		lg.With(slog.String("sheet", conf.Google.SheetId)).Info("sheet ledger initialized")
	}

	assistant := gpt.NewAssistant(conf, lg)
	assistant.SetTools(handler.ToolSpecs())
	lg.With(
		sl.Secret("openai_key", conf.OpenAI.ApiKey),
		slog.String("model", conf.OpenAI.Model),
	).Info("assistant initialized")

	channel := messenger.NewClient(conf, lg)

	hub := ws.NewHub(lg)
	go hub.Run()

	handler.SetCatalogService(catalogService)
	handler.SetBookingService(bookingService)
	handler.SetHistoryStore(historyService)
	handler.SetPauseRegistry(pauseRegistry)
	handler.SetAssistant(assistant)
	handler.SetChannel(channel)
	handler.SetChatFeed(hub)
	if tgBot != nil {
		handler.SetNotifier(tgBot)
		bookingService.SetNotifier(tgBot)
	}

	// *** blocking start with http server ***
	err = api.New(conf, lg, handler, hub)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}
