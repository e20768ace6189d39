package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/config"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/handlers"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/logger"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/middleware"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/repository"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/services"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/utils"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the configured store
	store, err := repository.Open(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("Failed to open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			zl.Warn("Failed to close store", zap.Error(err))
		}
	}()

	cal := utils.NewCalendar(cfg.Location)

	// Initialize services
	eventService := services.NewEventService(store, cal, zl)
	if cfg.OpenAIAPIKey != "" {
		eventService.WithDrafter(services.NewOpenAIDrafter(cfg.OpenAIAPIKey, cal))
	}
	contactService := services.NewContactService(store, cal, cfg.PhoneRegion, zl)
	noteService := services.NewNoteService(store, cal, zl)

	if err := eventService.Load(ctx); err != nil {
		zl.Fatal("Failed to load events", zap.Error(err))
	}
	if err := contactService.Load(ctx); err != nil {
		zl.Fatal("Failed to load contacts", zap.Error(err))
	}
	if err := noteService.Load(ctx); err != nil {
		zl.Fatal("Failed to load notes", zap.Error(err))
	}

	// Poll the store for changes made by other processes
	watcher := services.NewStoreWatcher(cfg.PollInterval, zl)
	watcher.Register("events", eventService)
	watcher.Register("contacts", contactService)
	watcher.Register("notes", noteService)
	if err := watcher.Start(); err != nil {
		zl.Fatal("Failed to start store watcher", zap.Error(err))
	}
	defer watcher.Stop()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(zl.Named("http")))

	// Initialize handlers
	eventHandler := handlers.NewEventHandler(eventService, cal)
	demandHandler := handlers.NewDemandHandler(eventService, cal)
	contactHandler := handlers.NewContactHandler(contactService, cal)
	noteHandler := handlers.NewNoteHandler(noteService, cal)
	systemHandler := handlers.NewSystemHandler(eventService, cal, map[string]handlers.PersistenceReporter{
		"events":   eventService,
		"contacts": contactService,
		"notes":    noteService,
	})

	r.GET("/health", systemHandler.Health)

	// API routes
	api := r.Group("/api")
	{
		api.GET("/status", systemHandler.Status)
		api.GET("/summary", systemHandler.Summary)
		api.GET("/calendar.ics", systemHandler.Calendar)

		events := api.Group("/events")
		{
			events.GET("", eventHandler.ListEvents)
			events.POST("", eventHandler.CreateEvent)
			events.GET("/:id", middleware.RequireEvent(eventService), eventHandler.GetEvent)
			events.PATCH("/:id", eventHandler.UpdateEvent)
			events.DELETE("/:id", eventHandler.DeleteEvent)
			events.POST("/:id/priority", eventHandler.TogglePriority)
			events.GET("/:id/demands", middleware.RequireEvent(eventService), eventHandler.ListEventDemands)
			events.POST("/:id/demands", eventHandler.CreateEventDemand)
			events.POST("/:id/demands/draft", eventHandler.DraftDemands)
		}

		demands := api.Group("/demands")
		{
			demands.GET("", demandHandler.ListDemands)
			demands.POST("", demandHandler.CreateDemand)
			demands.GET("/:id", demandHandler.GetDemand)
			demands.PATCH("/:id", demandHandler.UpdateDemand)
			demands.DELETE("/:id", demandHandler.DeleteDemand)
		}

		contacts := api.Group("/contacts")
		{
			contacts.GET("", contactHandler.ListContacts)
			contacts.POST("", contactHandler.CreateContact)
			contacts.GET("/:id", contactHandler.GetContact)
			contacts.PATCH("/:id", contactHandler.UpdateContact)
			contacts.DELETE("/:id", contactHandler.DeleteContact)
		}

		notes := api.Group("/notes")
		{
			notes.GET("", noteHandler.ListNotes)
			notes.POST("", noteHandler.CreateNote)
			notes.GET("/:id", noteHandler.GetNote)
			notes.PATCH("/:id", noteHandler.UpdateNote)
			notes.DELETE("/:id", noteHandler.DeleteNote)
		}
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("Server starting", zap.String("addr", cfg.ListenAddr), zap.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Error("Server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	zl.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Warn("Graceful shutdown failed", zap.Error(err))
	}

	// Retry writes that failed earlier before the store closes
	watcher.Poll(shutdownCtx)
}
