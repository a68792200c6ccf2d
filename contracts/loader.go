package contracts

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/sync/errgroup"

	"github.com/smartcontractkit/deal-console/codec/descriptor"
	"github.com/smartcontractkit/deal-console/pkg/logger"
)

const (
	DefaultCacheSize  = 256
	defaultPreloadMax = 4
)

// Loader loads contract interfaces and versions from a Source, caching the results.
type Loader struct {
	src       Source
	contracts Cache[ContractInterface]
	versions  Cache[Version]
	lggr      logger.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

func WithLogger(lggr logger.Logger) LoaderOption {
	return func(l *Loader) { l.lggr = lggr }
}

func WithContractCache(c Cache[ContractInterface]) LoaderOption {
	return func(l *Loader) { l.contracts = c }
}

func WithVersionCache(c Cache[Version]) LoaderOption {
	return func(l *Loader) { l.versions = c }
}

// NewLoader returns a Loader reading from src. Unless overridden, both caches are LRU caches of
// DefaultCacheSize entries.
func NewLoader(src Source, opts ...LoaderOption) (*Loader, error) {
	l := &Loader{src: src, lggr: logger.Nop()}
	for _, opt := range opts {
		opt(l)
	}

	if l.contracts == nil {
		c, err := NewLRUCache[ContractInterface](DefaultCacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create contract cache: %w", err)
		}
		l.contracts = c
	}
	if l.versions == nil {
		c, err := NewLRUCache[Version](DefaultCacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create version cache: %w", err)
		}
		l.versions = c
	}
	l.lggr = l.lggr.Named("loader")

	return l, nil
}

// LoadContract loads the interface of contract name in version.
func (l *Loader) LoadContract(ctx context.Context, version, name string) (ContractInterface, error) {
	key := version + ":" + name
	if c, ok := l.contracts.Get(key); ok {
		l.lggr.Debugw("Contract cache hit", "key", key)
		return c, nil
	}

	raw, err := l.src.ReadContract(ctx, version, name)
	if err != nil {
		return ContractInterface{}, err
	}
	c, err := ParseInterface(name, raw)
	if err != nil {
		return ContractInterface{}, err
	}
	for _, fn := range c.Functions() {
		if verr := descriptor.ValidateFunction(fn.ContractFunction); verr != nil {
			l.lggr.Warnw("Function definition is incomplete", "version", version, "contract", name,
				"function", fn.Name, "err", verr)
		}
	}

	l.contracts.Put(key, c)

	return c, nil
}

// LoadVersion loads every contract of version. Contracts that fail to load are skipped.
func (l *Loader) LoadVersion(ctx context.Context, id string) (Version, error) {
	if v, ok := l.versions.Get(id); ok {
		l.lggr.Debugw("Version cache hit", "version", id)
		return v, nil
	}

	names, err := l.src.Contracts(ctx, id)
	if err != nil {
		return Version{}, fmt.Errorf("failed to load version %s: %w", id, err)
	}

	v := Version{ID: id, Name: id, Version: id, Description: "Smart contracts version " + id}
	md, err := l.src.ReadMetadata(ctx, id)
	if err != nil {
		l.lggr.Warnw("Ignoring version metadata", "version", id, "err", err)
	}
	if md.Name != "" {
		v.Name = md.Name
	}
	if md.Description != "" {
		v.Description = md.Description
	}
	v.CreatedAt = md.CreatedAt

	v.Contracts = make([]ContractInterface, 0, len(names))
	for _, name := range names {
		c, cerr := l.LoadContract(ctx, id, name)
		if cerr != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Version{}, fmt.Errorf("failed to load version %s: %w", id, ctxErr)
			}
			l.lggr.Warnw("Skipping contract", "version", id, "contract", name, "err", cerr)

			continue
		}
		v.Contracts = append(v.Contracts, c)
	}

	l.versions.Put(id, v)

	return v, nil
}

// AvailableVersions lists the version ids of the source, newest first.
func (l *Loader) AvailableVersions(ctx context.Context) ([]string, error) {
	ids, err := l.src.Versions(ctx)
	if err != nil {
		return nil, err
	}
	ids = slices.Clone(ids)
	slices.SortStableFunc(ids, func(a, b string) int { return compareVersions(b, a) })

	return ids, nil
}

// LoadAllVersions loads every available version, newest first. Versions that fail to load are
// skipped.
func (l *Loader) LoadAllVersions(ctx context.Context) ([]Version, error) {
	ids, err := l.AvailableVersions(ctx)
	if err != nil {
		return nil, err
	}

	versions := make([]Version, 0, len(ids))
	for _, id := range ids {
		v, verr := l.LoadVersion(ctx, id)
		if verr != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			l.lggr.Errorw("Skipping version", "version", id, "err", verr)

			continue
		}
		versions = append(versions, v)
	}
	slices.SortStableFunc(versions, func(a, b Version) int { return compareVersions(b.Version, a.Version) })

	return versions, nil
}

// Preload loads the given versions concurrently into the cache. Failures are logged and
// returned joined; the versions that loaded stay cached.
func (l *Loader) Preload(ctx context.Context, ids ...string) error {
	errs := make([]error, len(ids))

	var g errgroup.Group
	g.SetLimit(defaultPreloadMax)
	for i, id := range ids {
		g.Go(func() error {
			if _, err := l.LoadVersion(ctx, id); err != nil {
				l.lggr.Errorw("Failed to preload version", "version", id, "err", err)
				errs[i] = err
			}

			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

// ClearCache drops every cached contract and version.
func (l *Loader) ClearCache() {
	l.contracts.Purge()
	l.versions.Purge()
}

var nonVersionChars = regexp.MustCompile(`[^\d.]`)

// compareVersions orders version ids by semantic version. Ids that are not semantic versions are
// compared by their dot separated numeric parts, missing parts counting as zero.
func compareVersions(a, b string) int {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	if errA == nil && errB == nil {
		return va.Compare(vb)
	}

	pa := numericParts(a)
	pb := numericParts(b)
	for i := range max(len(pa), len(pb)) {
		var x, y int
		if i < len(pa) {
			x = pa[i]
		}
		if i < len(pb) {
			y = pb[i]
		}
		if x != y {
			if x < y {
				return -1
			}

			return 1
		}
	}

	return 0
}

func numericParts(s string) []int {
	s = nonVersionChars.ReplaceAllString(s, "")
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ".")
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err == nil {
			nums[i] = n
		}
	}

	return nums
}
