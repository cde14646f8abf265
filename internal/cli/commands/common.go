package commands

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/shopd-dev/shopd/internal/cli/api"
	"github.com/shopd-dev/shopd/internal/cli/config"
	"github.com/shopd-dev/shopd/internal/cli/guard"
	"github.com/shopd-dev/shopd/internal/cli/routes"
	"github.com/shopd-dev/shopd/internal/cli/session"
	"github.com/shopd-dev/shopd/internal/cli/store"
	"github.com/shopd-dev/shopd/internal/cli/storeselect"
	"github.com/shopd-dev/shopd/internal/cli/tokenstore"
	"github.com/shopd-dev/shopd/internal/logger"
)

// App bundles the wired client core for one command invocation: resolved
// endpoint, session service, guard, dispatcher, and the typed services.
type App struct {
	Store      *config.Store
	Sessions   *session.Service
	Nav        routes.Navigator
	Guard      *guard.Guard
	Client     *api.Client
	Users      *store.Users
	Categories *store.Categories
	Products   *store.Products
	Carts      *store.Carts
	Logger     zerolog.Logger
}

// Option overrides parts of the app wiring, mainly for tests.
type Option func(*appConfig)

type appConfig struct {
	store     *config.Store
	durable   tokenstore.Backend
	ephemeral tokenstore.Backend
	nav       routes.Navigator
}

// WithStore skips shopd.json resolution and targets the given endpoint.
func WithStore(store *config.Store) Option {
	return func(c *appConfig) { c.store = store }
}

// WithTokenBackends replaces the keyring and session-file backends.
func WithTokenBackends(durable, ephemeral tokenstore.Backend) Option {
	return func(c *appConfig) {
		c.durable = durable
		c.ephemeral = ephemeral
	}
}

// WithNavigator replaces the route tracker.
func WithNavigator(nav routes.Navigator) Option {
	return func(c *appConfig) { c.nav = nav }
}

// newApp wires the client core for a command entering at the given route.
func newApp(entryRoute, storeAlias string, opts ...Option) (*App, error) {
	cfg := &appConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	log := logger.GetLogger()

	endpoint := cfg.store
	if endpoint == nil {
		projectConfig, err := config.LoadFromCurrentDir()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w\nRun 'shopd init' to create a configuration file", err)
		}
		endpoint, err = storeselect.ResolveStore(projectConfig, storeAlias)
		if err != nil {
			return nil, err
		}
	}
	if endpoint.URL == "" {
		return nil, fmt.Errorf("store URL is empty. Please edit %s and add a valid URL", config.ConfigFileName)
	}

	durable := cfg.durable
	ephemeral := cfg.ephemeral
	if durable == nil {
		durable = tokenstore.NewKeyring()
	}
	if ephemeral == nil {
		ephemeral = tokenstore.NewSessionFile("")
	}
	tokens := tokenstore.New(durable, ephemeral, log)

	sessions := session.NewService(tokens, log)

	nav := cfg.nav
	if nav == nil {
		nav = routes.NewTracker(entryRoute, log)
	}
	g := guard.New(sessions, nav, log)

	client := api.New(endpoint.URL, sessions, log)

	return &App{
		Store:      endpoint,
		Sessions:   sessions,
		Nav:        nav,
		Guard:      g,
		Client:     client,
		Users:      store.NewUsers(client),
		Categories: store.NewCategories(client),
		Products:   store.NewProducts(client),
		Carts:      store.NewCarts(client),
		Logger:     log,
	}, nil
}

// requireRole runs the guard for a protected command. A missing session is
// an actionable error; a role mismatch demotes to the storefront home view
// without failing the command.
func (a *App) requireRole(allow []string) (demoted bool, err error) {
	switch a.Guard.Check(allow) {
	case guard.DecisionLogin:
		return false, fmt.Errorf("not authenticated. Run 'shopd login' first")
	case guard.DecisionHome:
		return true, nil
	default:
		return false, nil
	}
}
