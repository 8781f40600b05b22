package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"gorm.io/gorm"

	"brandsmith/internal/config"
	"brandsmith/internal/database"
	"brandsmith/internal/events"
	"brandsmith/internal/llm/client"
	"brandsmith/internal/llm/images"
	"brandsmith/internal/mcp"
	"brandsmith/internal/media"
	"brandsmith/internal/models"
	"brandsmith/internal/services"
	"brandsmith/internal/transport"
)

// App owns the database and the services built on it.
type App struct {
	cfg       config.Config
	log       *slog.Logger
	db        *gorm.DB
	dbClose   func() error
	services  *services.DbServices
	keys      *services.KeyringService
	media     *media.Store
	localUser *models.User
}

func NewApp(cfg config.Config, log *slog.Logger) *App {
	return &App{cfg: cfg, log: log}
}

// openDB opens the database and the user service. Commands that do not
// talk to an LLM stop here.
func (a *App) openDB() error {
	if a.db != nil {
		return nil
	}
	db, err := database.Init(database.Config{
		Path:     a.cfg.DB.Path,
		LogLevel: database.ParseLogLevel(a.cfg.DB.LogLevel),
		Logger:   a.log,
	})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	a.db = db
	if sqlDB, err := db.DB(); err != nil {
		a.log.Error("failed to get sql.DB", "error", err)
	} else {
		a.dbClose = sqlDB.Close
	}
	return nil
}

func (a *App) keyring() *services.KeyringService {
	if a.keys != nil {
		return a.keys
	}
	keys, err := services.NewKeyringService()
	if err != nil {
		a.log.Warn("keyring unavailable", "error", err)
		return nil
	}
	a.keys = keys
	return keys
}

// apiKey returns the configured key for provider, else the stored one.
func (a *App) apiKey(provider, configured string) string {
	if configured != "" {
		return configured
	}
	keys := a.keyring()
	if keys == nil {
		return ""
	}
	key, err := keys.GetApiKey(provider)
	if err != nil {
		a.log.Warn("failed to read api key from keyring", "provider", provider, "error", err)
		return ""
	}
	return key
}

// startup wires every service. It must run before serving.
func (a *App) startup(ctx context.Context) error {
	if err := a.openDB(); err != nil {
		return err
	}
	events.EnableLogEmitter(a.log)

	llmCfg := a.cfg.LLM
	invoker, err := client.New(ctx, client.Config{
		Provider:  llmCfg.Provider,
		Model:     llmCfg.Model,
		APIKey:    a.apiKey(llmCfg.Provider, llmCfg.APIKey),
		BaseURL:   llmCfg.BaseURL,
		MaxTokens: llmCfg.MaxTokens,
	})
	if err != nil {
		return fmt.Errorf("configure llm: %w", err)
	}

	gen := services.Generators{LLM: invoker}
	moodboards, err := a.moodboards(ctx)
	if err != nil {
		return err
	}
	// a typed nil would make the concept generator call a nil renderer
	if moodboards != nil {
		gen.Moodboards = moodboards
	}

	a.services = services.NewDbServices(a.db, gen, a.log)

	if !a.cfg.Auth.Enabled {
		u, err := a.services.Users.EnsureLocal(ctx, a.cfg.Auth.DefaultUser)
		if err != nil {
			return fmt.Errorf("prepare local user: %w", err)
		}
		a.localUser = u
	}
	a.log.Info("services started",
		"llm", llmCfg.Provider,
		"images", a.cfg.Images.Provider,
		"auth", a.cfg.Auth.Enabled)
	return nil
}

func (a *App) moodboards(ctx context.Context) (*services.MoodboardService, error) {
	ic := a.cfg.Images
	var gen images.Generator
	switch ic.Provider {
	case images.ProviderGemini:
		g, err := images.NewGeminiGenerator(ctx, a.apiKey(images.ProviderGemini, ic.APIKey), ic.Model)
		if err != nil {
			return nil, fmt.Errorf("configure images: %w", err)
		}
		gen = g
	case images.ProviderOpenRouter:
		key := a.apiKey(images.ProviderOpenRouter, ic.APIKey)
		if key == "" {
			return nil, errors.New("configure images: openrouter api key is required")
		}
		gen = images.NewOpenRouterGenerator(key, ic.Model)
	default:
		return nil, nil
	}
	a.media = media.NewStore(ic.Dir, a.cfg.Server.BaseURL, ic.Format)
	return services.NewMoodboardService(gen, a.media), nil
}

func (a *App) localUserID() uint {
	if a.localUser == nil {
		return 0
	}
	return a.localUser.ID
}

func (a *App) mcpServer(mode string) *sdkmcp.Server {
	return mcp.NewServer(mcp.Config{
		Projects:      a.services.Projects,
		Conversations: a.services.Conversations,
		Users:         a.services.Users,
		AuthEnabled:   a.cfg.Auth.Enabled,
		TransportMode: mode,
		LocalUserID:   a.localUserID(),
		Version:       version,
		Logger:        a.log,
	})
}

func (a *App) httpHandler() http.Handler {
	cfg := transport.Config{
		Projects:      a.services.Projects,
		Conversations: a.services.Conversations,
		Users:         a.services.Users,
		AuthEnabled:   a.cfg.Auth.Enabled,
		LocalUserID:   a.localUserID(),
		Logger:        a.log,
	}
	if a.media != nil {
		cfg.Media = a.media.Handler()
	}
	if a.cfg.MCP.Enabled {
		cfg.MCP = mcp.NewHTTPHandler(a.mcpServer("http"))
	}
	return transport.NewServer(cfg)
}

// serve runs the HTTP server until ctx is cancelled.
func (a *App) serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.Server.Addr(),
		Handler:           a.httpHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// shutdown releases the database. It is safe to call more than once.
func (a *App) shutdown() {
	if a.dbClose != nil {
		if err := a.dbClose(); err != nil {
			a.log.Error("failed to close database", "error", err)
		} else {
			a.log.Info("database closed")
		}
		a.dbClose = nil
	}
}
