package usecase

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infrastructure/i18n"
	"marketplace/internal/infrastructure/kvstore"
	"marketplace/pkg/errors"
)

// SettingsStore keeps the site settings. Each category has its own update
// function and is replaced as a whole; no other category is touched.
type SettingsStore struct {
	storage    repository.Storage
	translator *i18n.Translator
	validate   *validator.Validate

	mu       sync.RWMutex
	settings entity.SiteSettings
}

func NewSettingsStore(ctx context.Context, storage repository.Storage, translator *i18n.Translator, validate *validator.Validate) *SettingsStore {
	s := &SettingsStore{
		storage:    storage,
		translator: translator,
		validate:   validate,
		settings:   entity.DefaultSiteSettings(),
	}

	var stored entity.SiteSettings
	if kvstore.LoadJSON(ctx, storage, repository.KeySiteSettings, &stored) {
		s.settings = stored
	}
	if translator != nil {
		translator.SetLanguage(s.settings.Appearance.DefaultLanguage)
	}
	return s
}

func (s *SettingsStore) Get() entity.SiteSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Category returns one section of the settings.
func (s *SettingsStore) Category(category entity.SettingsCategory) (interface{}, error) {
	settings := s.Get()
	switch category {
	case entity.SettingsGeneral:
		return settings.General, nil
	case entity.SettingsAppearance:
		return settings.Appearance, nil
	case entity.SettingsNotifications:
		return settings.Notifications, nil
	}
	return nil, errors.NotFound("Settings category", nil)
}

func (s *SettingsStore) UpdateGeneral(ctx context.Context, general entity.GeneralSettings) (entity.SiteSettings, error) {
	if err := s.validate.Struct(general); err != nil {
		return s.Get(), err
	}
	return s.update(ctx, func(st *entity.SiteSettings) { st.General = general }), nil
}

// UpdateAppearance also switches the active display language. Notifications
// already stored keep the text they were rendered with.
func (s *SettingsStore) UpdateAppearance(ctx context.Context, appearance entity.AppearanceSettings) (entity.SiteSettings, error) {
	if err := s.validate.Struct(appearance); err != nil {
		return s.Get(), err
	}
	updated := s.update(ctx, func(st *entity.SiteSettings) { st.Appearance = appearance })
	if s.translator != nil {
		s.translator.SetLanguage(appearance.DefaultLanguage)
	}
	return updated, nil
}

func (s *SettingsStore) UpdateNotifications(ctx context.Context, notifications entity.NotificationSettings) (entity.SiteSettings, error) {
	if err := s.validate.Struct(notifications); err != nil {
		return s.Get(), err
	}
	return s.update(ctx, func(st *entity.SiteSettings) { st.Notifications = notifications }), nil
}

func (s *SettingsStore) update(ctx context.Context, apply func(*entity.SiteSettings)) entity.SiteSettings {
	s.mu.Lock()
	defer s.mu.Unlock()

	apply(&s.settings)
	kvstore.SaveJSON(ctx, s.storage, repository.KeySiteSettings, s.settings)
	return s.settings
}

// GatePusher wraps p so realtime pushes stop while push is disabled in settings.
func (s *SettingsStore) GatePusher(p RealtimePusher) RealtimePusher {
	return &gatedPusher{next: p, settings: s}
}

type gatedPusher struct {
	next     RealtimePusher
	settings *SettingsStore
}

func (g *gatedPusher) Push(userID, eventType string, data interface{}) {
	if !g.settings.Get().Notifications.PushEnabled {
		return
	}
	g.next.Push(userID, eventType, data)
}
