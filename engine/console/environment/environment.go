// Package environment wires the console settings into the interface loader and the codec.
package environment

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/smartcontractkit/deal-console/codec/calldata"
	"github.com/smartcontractkit/deal-console/codec/decimals"
	"github.com/smartcontractkit/deal-console/codec/descriptor"
	"github.com/smartcontractkit/deal-console/codec/render"
	"github.com/smartcontractkit/deal-console/contracts"
	"github.com/smartcontractkit/deal-console/engine/console/config"
	"github.com/smartcontractkit/deal-console/pkg/logger"
)

// InterfaceLoader loads versioned contract interfaces.
type InterfaceLoader interface {
	LoadContract(ctx context.Context, version, name string) (contracts.ContractInterface, error)
	LoadVersion(ctx context.Context, id string) (contracts.Version, error)
	AvailableVersions(ctx context.Context) ([]string, error)
}

var _ InterfaceLoader = (*contracts.Loader)(nil)

// Environment is everything a console command needs.
type Environment struct {
	Settings   *config.Config
	Logger     logger.Logger
	Interfaces InterfaceLoader
}

type loadOptions struct {
	source     contracts.Source
	httpClient *http.Client
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

// WithSource replaces the interface source derived from the settings.
func WithSource(src contracts.Source) LoadOption {
	return func(o *loadOptions) { o.source = src }
}

// WithHTTPClient sets the client used when interfaces are loaded from abi_base_url.
func WithHTTPClient(c *http.Client) LoadOption {
	return func(o *loadOptions) { o.httpClient = c }
}

// Load builds the environment described by settings. Interfaces are read from abi_base_url when
// set, from abi_dir otherwise.
func Load(settings *config.Config, lggr logger.Logger, opts ...LoadOption) (*Environment, error) {
	if settings == nil {
		return nil, errors.New("environment: settings are required")
	}
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	src := o.source
	if src == nil {
		src = newSource(settings, o.httpClient)
	}

	loaderOpts := []contracts.LoaderOption{contracts.WithLogger(lggr)}
	if settings.CacheSize == 0 {
		loaderOpts = append(loaderOpts,
			contracts.WithContractCache(contracts.NopCache[contracts.ContractInterface]{}),
			contracts.WithVersionCache(contracts.NopCache[contracts.Version]{}),
		)
	} else {
		cc, err := contracts.NewLRUCache[contracts.ContractInterface](settings.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create contract cache: %w", err)
		}
		vc, err := contracts.NewLRUCache[contracts.Version](settings.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create version cache: %w", err)
		}
		loaderOpts = append(loaderOpts, contracts.WithContractCache(cc), contracts.WithVersionCache(vc))
	}

	loader, err := contracts.NewLoader(src, loaderOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create interface loader: %w", err)
	}

	return &Environment{Settings: settings, Logger: lggr, Interfaces: loader}, nil
}

func newSource(settings *config.Config, client *http.Client) contracts.Source {
	if settings.ABIBaseURL == "" {
		return contracts.NewDirSource(settings.ABIDir)
	}
	var opts []contracts.HTTPOption
	if client != nil {
		opts = append(opts, contracts.WithHTTPClient(client))
	}

	return contracts.NewHTTPSource(settings.ABIBaseURL, opts...)
}

// Version returns id, or the newest available version when id is empty.
func (e *Environment) Version(ctx context.Context, id string) (string, error) {
	if id != "" {
		return id, nil
	}
	ids, err := e.Interfaces.AvailableVersions(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list interface versions: %w", err)
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("no interface versions: %w", contracts.ErrNotFound)
	}

	return ids[0], nil
}

// Contract loads contract name of version, the newest version when empty.
func (e *Environment) Contract(ctx context.Context, version, name string) (contracts.ContractInterface, error) {
	v, err := e.Version(ctx, version)
	if err != nil {
		return contracts.ContractInterface{}, err
	}
	c, err := e.Interfaces.LoadContract(ctx, v, name)
	if err != nil {
		return contracts.ContractInterface{}, fmt.Errorf("failed to load contract %s: %w", name, err)
	}

	return c, nil
}

// Function resolves a function of contract name by name or canonical signature.
func (e *Environment) Function(ctx context.Context, version, name, function string) (descriptor.ParsedFunction, error) {
	c, err := e.Contract(ctx, version, name)
	if err != nil {
		return descriptor.ParsedFunction{}, err
	}

	return c.Function(function)
}

// Policy returns the policy resolving the scale of amounts. A non negative decimalsOverride
// forces the scale of every amount.
func (e *Environment) Policy(decimalsOverride int) decimals.Policy {
	if decimalsOverride >= 0 {
		return decimals.NewPolicy(decimals.Fixed(decimalsOverride))
	}

	return decimals.NewPolicy(
		decimals.Explicit{},
		decimals.ParamNameHeuristic{},
		decimals.FunctionNameHeuristic{},
		decimals.Fixed(e.Settings.DefaultDecimals),
	)
}

// Query returns the decimals query of parameter param of function fn, carrying the configured
// asset decimals.
func (e *Environment) Query(fn, param string) decimals.Query {
	return decimals.Query{
		ParamName:         param,
		FunctionName:      fn,
		DealDecimals:      e.Settings.AssetDecimals,
		WaterfallDecimals: e.Settings.WaterfallDecimals,
	}
}

// CodecOptions returns the encoder and decoder options of the environment.
func (e *Environment) CodecOptions(decimalsOverride int) []calldata.Option {
	return []calldata.Option{
		calldata.WithLogger(e.Logger),
		calldata.WithDecimalsPolicy(e.Policy(decimalsOverride)),
		calldata.WithAssetDecimals(e.Settings.AssetDecimals, e.Settings.WaterfallDecimals),
	}
}

// LoaderFunc loads the environment of settings.
type LoaderFunc func(settings *config.Config, lggr logger.Logger) (*Environment, error)

// DefaultLoader loads the environment with the sources described by settings.
func DefaultLoader(settings *config.Config, lggr logger.Logger) (*Environment, error) {
	return Load(settings, lggr)
}

// Renderer returns the renderer for format, the configured output_format when empty.
func (e *Environment) Renderer(format string) (render.Renderer, error) {
	if format == "" {
		format = e.Settings.OutputFormat
	}

	return render.New(format)
}
