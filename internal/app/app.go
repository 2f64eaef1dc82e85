// Package app implements the application layer for tabby.
package app

import (
	"context"
	"fmt"

	"go.trai.ch/tabby/internal/adapters/cache"
	"go.trai.ch/tabby/internal/adapters/excel"
	"go.trai.ch/tabby/internal/core/domain"
	"go.trai.ch/tabby/internal/core/ports"
	"go.trai.ch/tabby/internal/engine/collector"
	"go.trai.ch/zerr"
)

// Overrides are command-line selections that take precedence over the
// profile's configured values. Zero values leave the profile untouched.
type Overrides struct {
	Strategy    string
	Sheet       string
	NoAggregate bool
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	telemetry    ports.Telemetry
	watcher      ports.Watcher
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, logger ports.Logger, telemetry ports.Telemetry, watcher ports.Watcher) *App {
	return &App{
		configLoader: loader,
		logger:       logger,
		telemetry:    telemetry,
		watcher:      watcher,
	}
}

// runtime is the per-profile object graph built for one operation.
type runtime struct {
	profile  *domain.Profile
	manager  *cache.Manager
	reader   *excel.Reader
	cacher   ports.Cacher
	strategy cache.Strategy
}

// loadProfile resolves the named profile from the configuration file.
func (a *App) loadProfile(configPath, profileName string) (*domain.Profile, error) {
	cfg, err := a.configLoader.Load(configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	profile, err := cfg.Profile(profileName)
	if err != nil {
		return nil, zerr.With(err, "profile", profileName)
	}
	return profile, nil
}

// buildRuntime constructs the cache manager, reader, cacher and strategy
// for one profile, with overrides applied.
func (a *App) buildRuntime(profile *domain.Profile, ov Overrides) (*runtime, error) {
	cacher, err := cache.ForFormat(profile.Format)
	if err != nil {
		return nil, err
	}

	strategyToken := profile.Strategy
	if ov.Strategy != "" {
		strategyToken = ov.Strategy
	}
	strategy, err := cache.ParseStrategy(strategyToken)
	if err != nil {
		return nil, err
	}

	var resolver cache.Resolver = cache.RootResolver{}
	if profile.CacheLocation == domain.LocationSystem {
		resolver = cache.SystemResolver{}
	}

	manager, err := cache.NewManager(profile.RootDir, profile.CacheDirHint, resolver)
	if err != nil {
		return nil, err
	}

	return &runtime{
		profile:  profile,
		manager:  manager,
		reader:   excel.NewReader(manager, a.logger),
		cacher:   cacher,
		strategy: strategy,
	}, nil
}

// newCollector builds the collector for a profile runtime.
func (a *App) newCollector(rt *runtime, noAggregate bool) *collector.Collector {
	return collector.New(rt.reader, rt.cacher, a.logger, a.telemetry, collector.Options{
		Glob:        rt.profile.Glob,
		Selector:    rt.profile.Selector,
		Output:      rt.profile.Output,
		NoAggregate: noAggregate,
	})
}

// Collect runs the named profile's collection and returns the aggregate
// dataset.
func (a *App) Collect(ctx context.Context, configPath, profileName string, ov Overrides) (domain.Dataset, error) {
	profile, err := a.loadProfile(configPath, profileName)
	if err != nil {
		return domain.Dataset{}, err
	}
	rt, err := a.buildRuntime(profile, ov)
	if err != nil {
		return domain.Dataset{}, err
	}
	return a.newCollector(rt, ov.NoAggregate).Collect(ctx, rt.strategy)
}

// Read reads the selected sheet(s) of one workbook through the profile's
// cache. The override sheet selector, when set, replaces the profile's.
func (a *App) Read(ctx context.Context, configPath, profileName, sourceFile string, ov Overrides) ([]excel.Sheet, error) {
	profile, err := a.loadProfile(configPath, profileName)
	if err != nil {
		return nil, err
	}
	rt, err := a.buildRuntime(profile, ov)
	if err != nil {
		return nil, err
	}

	selector := profile.Selector
	if ov.Sheet != "" {
		selector = domain.ParseSheetSelector(ov.Sheet)
	}

	if selector.All() {
		return rt.reader.ReadSheets(sourceFile, rt.cacher, rt.strategy)
	}
	ds, err := rt.reader.Read(sourceFile, selector, rt.cacher, rt.strategy)
	if err != nil {
		return nil, err
	}
	return []excel.Sheet{{Name: selector.String(), Data: ds}}, nil
}

// Clean removes the named profile's cache entries. Entries that could
// not be removed are logged and reported as an error.
func (a *App) Clean(configPath, profileName string) error {
	profile, err := a.loadProfile(configPath, profileName)
	if err != nil {
		return err
	}
	rt, err := a.buildRuntime(profile, Overrides{})
	if err != nil {
		return err
	}

	failed, err := rt.manager.ClearCache()
	for _, entry := range failed {
		a.logger.Warn("failed to remove cache entry: " + entry)
	}
	if err != nil {
		return err
	}
	a.logger.Info("cache cleared: " + rt.manager.CacheDir())
	return nil
}

// Watch collects once, then recollects whenever files under the
// profile's root directory change. It blocks until ctx is done.
func (a *App) Watch(ctx context.Context, configPath, profileName string, ov Overrides) error {
	profile, err := a.loadProfile(configPath, profileName)
	if err != nil {
		return err
	}
	rt, err := a.buildRuntime(profile, ov)
	if err != nil {
		return err
	}
	coll := a.newCollector(rt, ov.NoAggregate)

	if _, err := coll.Collect(ctx, rt.strategy); err != nil {
		return err
	}

	return a.watcher.Watch(ctx, rt.manager.RootDir(), func(paths []string) {
		a.logger.Info(fmt.Sprintf("%d file(s) changed, recollecting", len(paths)))
		if _, err := coll.Collect(ctx, rt.strategy); err != nil {
			a.logger.Error(err)
		}
	})
}

// Close releases long-lived resources held by the app.
func (a *App) Close() error {
	return a.telemetry.Close()
}
