package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kotrik/roomwatch/internal/adapters/osuapi"
	"github.com/kotrik/roomwatch/internal/adapters/render/board"
	"github.com/kotrik/roomwatch/internal/application"
	"github.com/kotrik/roomwatch/internal/config"
	"github.com/kotrik/roomwatch/internal/obslog"
	"github.com/kotrik/roomwatch/internal/ports"
)

type app struct {
	cfg           *config.Config
	log           *zap.Logger
	newSource     func(token string) ports.RoomSource
	boardRenderer func(board.Board, board.RenderOptions) (string, error)
	now           func() time.Time
}

func wireApp() (*app, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := obslog.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	return &app{
		cfg: cfg,
		log: obslog.L(),
		newSource: func(token string) ports.RoomSource {
			return osuapi.NewClient(osuapi.Config{
				BaseURL:     cfg.APIBaseURL,
				ProxyPrefix: cfg.ProxyPrefix,
				Token:       token,
				HTTPClient:  httpClient,
				Logger:      obslog.L(),
			})
		},
		boardRenderer: board.Render,
		now:           ports.SystemClock{}.Now,
	}, nil
}

// newSession builds the session service for one (roomID, token) identity.
// Identity changes always go through here so no accumulated state survives.
func (a *app) newSession(roomID int64, token string) *application.Session {
	return application.NewSession(a.newSource(token), roomID, a.log)
}
