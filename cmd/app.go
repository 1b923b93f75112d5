package cmd

import (
	"sync"

	"github.com/nutrisuggest/nutri/internal/api"
	"github.com/nutrisuggest/nutri/internal/appconfig"
	"github.com/nutrisuggest/nutri/internal/cache"
	"github.com/nutrisuggest/nutri/internal/events"
	"github.com/nutrisuggest/nutri/internal/nutrition"
	"github.com/nutrisuggest/nutri/internal/output"
	"github.com/nutrisuggest/nutri/internal/session"
)

// configTokens adapts the config-dir credential files to the token store
// interfaces of the api and session packages.
type configTokens struct{}

func (configTokens) Token() string          { return appconfig.Token() }
func (configTokens) Set(token string) error { return appconfig.SetToken(token) }
func (configTokens) Clear() error           { return appconfig.ClearToken() }

// app wires the client and state containers together once per invocation.
type app struct {
	bus       *events.Bus
	client    *api.Client
	session   *session.Store
	nutrition *nutrition.Store
}

var (
	appOnce   sync.Once
	sharedApp *app
	appErr    error
)

// getApp returns the lazily initialized shared wiring.
func getApp() (*app, error) {
	appOnce.Do(func() {
		tokens := configTokens{}
		bus := events.NewBus()
		bus.OnNetworkError(func(e events.NetworkError) {
			output.Warning("%s", e.Message)
		})

		client := api.New(appconfig.APIURL(), appconfig.RecommendationURL(), tokens, bus)
		sess := session.New(client, tokens, bus)

		sharedApp = &app{
			bus:       bus,
			client:    client,
			session:   sess,
			nutrition: nutrition.New(client, sess),
		}
	})
	return sharedApp, appErr
}

// openCache opens the recent-items cache; a nil cache disables quick-log
// suggestions rather than failing the command.
func openCache() *cache.Cache {
	dir, err := appconfig.ConfigDir()
	if err != nil {
		return nil
	}
	c, err := cache.Open(dir)
	if err != nil {
		return nil
	}
	return c
}
