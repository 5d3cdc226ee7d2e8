package theme

import (
	"context"
	"strconv"
	"time"

	pkgerrors "github.com/dmarroquin/shopwindow-backend/pkg/errors"
	"github.com/dmarroquin/shopwindow-backend/pkg/logger"
	"github.com/dmarroquin/shopwindow-backend/pkg/redis"
)

// flagStore is the key-value surface the theme preference is persisted to.
type flagStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	ThemeKey(sessionID string) string
}

// FlagDTO is the API projection of the persisted preference.
type FlagDTO struct {
	DarkMode bool `json:"dark_mode"`
}

// Service reads and toggles the per-session dark mode flag. A session with no
// stored flag is light mode.
type Service interface {
	Get(ctx context.Context, sessionID string) (FlagDTO, error)
	Toggle(ctx context.Context, sessionID string) (FlagDTO, error)
}

type service struct {
	store flagStore
	ttl   time.Duration
	logg  *logger.Logger
}

// ServiceParams groups dependencies for the theme service.
type ServiceParams struct {
	Store  flagStore
	TTL    time.Duration
	Logger *logger.Logger
}

// NewService builds a theme service.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "theme store is required")
	}
	return &service{
		store: params.Store,
		ttl:   params.TTL,
		logg:  params.Logger,
	}, nil
}

// Get returns the session's current flag, defaulting to light mode when the
// key is absent or holds garbage.
func (s *service) Get(ctx context.Context, sessionID string) (FlagDTO, error) {
	raw, err := s.store.Get(ctx, s.store.ThemeKey(sessionID))
	if err != nil {
		if redis.IsNil(err) {
			return FlagDTO{DarkMode: false}, nil
		}
		return FlagDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read theme flag")
	}

	darkMode, err := strconv.ParseBool(raw)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "value", raw), "stored theme flag unreadable, resetting to light")
		}
		return FlagDTO{DarkMode: false}, nil
	}
	return FlagDTO{DarkMode: darkMode}, nil
}

// Toggle flips the flag and persists the new value.
func (s *service) Toggle(ctx context.Context, sessionID string) (FlagDTO, error) {
	current, err := s.Get(ctx, sessionID)
	if err != nil {
		return FlagDTO{}, err
	}

	next := FlagDTO{DarkMode: !current.DarkMode}
	key := s.store.ThemeKey(sessionID)
	if err := s.store.Set(ctx, key, strconv.FormatBool(next.DarkMode), s.ttl); err != nil {
		return FlagDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist theme flag")
	}
	return next, nil
}
