package main

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/ytimocin/dapr-sdk-go/internal/expansion"
	"github.com/ytimocin/dapr-sdk-go/logger"
	"github.com/ytimocin/dapr-sdk-go/pkg/daprconfig"
	"github.com/ytimocin/dapr-sdk-go/pkg/property"
	"github.com/ytimocin/dapr-sdk-go/pkg/secrets"
	"github.com/ytimocin/dapr-sdk-go/pkg/sysprop"
)

// app carries the state of one CLI invocation.
type app struct {
	flags    Settings
	settings Settings

	store    *sysprop.Store
	registry *secrets.Registry
	props    *daprconfig.Properties
}

func newApp() *app {
	return &app{
		store:    sysprop.Global(),
		registry: secrets.Default,
	}
}

// setup resolves settings, registers secret loaders and fills the process
// property store. Loaders are registered before anything that may reference
// them is expanded.
func (a *app) setup(logOutput io.Writer, changed func(name string) bool) error {
	settings, err := loadSettings(a.flags, changed)
	if err != nil {
		return err
	}

	logger.Configure(logger.Options{
		Debug:   settings.Debug,
		Output:  logOutput,
		JSON:    settings.LogJSON,
		NoColor: settings.NoColor,
	})

	if err = settings.Secrets.RegisterFile(a.registry); err != nil {
		return err
	}
	if err = expansion.ExpandVariables(&settings.Secrets, a.registry.Resolve); err != nil {
		return errors.Wrap(err, "error expanding secret loader settings")
	}
	if err = settings.Secrets.RegisterRemote(a.registry); err != nil {
		return err
	}

	if len(settings.Files) > 0 {
		if err = a.store.Load(settings.Files...); err != nil {
			return err
		}
	}

	defines, err := a.definitions("-D", settings.Defines)
	if err != nil {
		return errors.Wrap(err, "invalid -D definition")
	}
	a.store.SetAll(defines)

	overrides, err := a.definitions("--override", settings.Overrides)
	if err != nil {
		return errors.Wrap(err, "invalid override")
	}

	a.props = daprconfig.NewProperties(overrides, daprconfig.WithSource(property.ProcessSource{Store: a.store}))
	a.settings = settings

	log.Debug().
		Int("properties", a.store.Len()).
		Int("overrides", len(overrides)).
		Str("loaders", strings.Join(a.registry.Prefixes(), ",")).
		Msg("Configuration loaded")
	return nil
}

func (a *app) definitions(origin string, defs []string) (map[string]string, error) {
	values, err := sysprop.ParseDefinitions(defs)
	if err != nil {
		return nil, err
	}
	if err = sysprop.ExpandReferences(origin, values, a.registry.Resolve); err != nil {
		return nil, err
	}
	return values, nil
}
