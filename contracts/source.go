package contracts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// metadataFile is the optional per-version metadata file.
const metadataFile = "version.yaml"

// Source provides raw contract interface files.
type Source interface {
	// Versions lists the available versions, in no particular order.
	Versions(ctx context.Context) ([]string, error)
	// Contracts lists the contract names of a version.
	Contracts(ctx context.Context, version string) ([]string, error)
	// ReadContract returns the content of <version>/<name>.json.
	ReadContract(ctx context.Context, version, name string) ([]byte, error)
	// ReadMetadata returns the metadata of a version. Versions without metadata return the zero
	// value.
	ReadMetadata(ctx context.Context, version string) (VersionMetadata, error)
}

// VersionMetadata is the content of a version.yaml file.
type VersionMetadata struct {
	Name        string    `yaml:"name" json:"name"`
	Description string    `yaml:"description" json:"description"`
	CreatedAt   time.Time `yaml:"createdAt" json:"createdAt"`
}

func parseMetadata(raw []byte) (VersionMetadata, error) {
	var md VersionMetadata
	if err := yaml.Unmarshal(raw, &md); err != nil {
		return VersionMetadata{}, fmt.Errorf("failed to parse %s: %w", metadataFile, err)
	}

	return md, nil
}

// DirSource reads interface files from <root>/<version>/<Name>.json.
type DirSource struct {
	root string
}

var _ Source = (*DirSource)(nil)

func NewDirSource(root string) *DirSource {
	return &DirSource{root: root}
}

func (s *DirSource) Versions(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions in %s: %w", s.root, err)
	}

	var versions []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			versions = append(versions, e.Name())
		}
	}

	return versions, nil
}

func (s *DirSource) Contracts(_ context.Context, version string) ([]string, error) {
	if err := checkName(version); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(filepath.Join(s.root, version))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("version %s: %w", version, ErrNotFound)
		}

		return nil, fmt.Errorf("failed to list contracts of version %s: %w", version, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".json" {
			names = append(names, strings.TrimSuffix(e.Name(), ".json"))
		}
	}
	slices.Sort(names)

	return names, nil
}

func (s *DirSource) ReadContract(_ context.Context, version, name string) ([]byte, error) {
	if err := checkName(version); err != nil {
		return nil, err
	}
	if err := checkName(name); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(filepath.Join(s.root, version, name+".json"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("contract %s in version %s: %w", name, version, ErrNotFound)
		}

		return nil, fmt.Errorf("failed to read contract %s in version %s: %w", name, version, err)
	}

	return raw, nil
}

func (s *DirSource) ReadMetadata(_ context.Context, version string) (VersionMetadata, error) {
	if err := checkName(version); err != nil {
		return VersionMetadata{}, err
	}
	raw, err := os.ReadFile(filepath.Join(s.root, version, metadataFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return VersionMetadata{}, nil
		}

		return VersionMetadata{}, fmt.Errorf("failed to read metadata of version %s: %w", version, err)
	}

	return parseMetadata(raw)
}

// checkName rejects version and contract names that would escape their directory.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid name %q", name)
	}

	return nil
}
