// Package config defines the on-disk configuration object for the dfm CLI's
// deriver invocations, following the same small, TOML-backed configuration
// object pattern used throughout the ambient stack's own per-component
// configuration packages.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/dfmderiver/dfm/pkg/encoding"
)

// DefaultFanOut is used when a Configuration doesn't specify FanOut.
const DefaultFanOut = 256

// DefaultWriteConcurrency is used when a Configuration doesn't specify
// WriteConcurrency.
const DefaultWriteConcurrency = 1024

// Configuration is the TOML-based configuration object for a dfm deriver
// invocation.
type Configuration struct {
	// FanOut bounds the number of tree nodes concurrently in flight during a
	// single derivation's unfold/fold traversal.
	FanOut int `toml:"fanOut"`
	// WriteConcurrency bounds the number of manifest blob writes concurrently
	// in flight during a single derivation.
	WriteConcurrency int `toml:"writeConcurrency"`
	// BlobStorePath is the root directory for the disk-backed blob store. It
	// is ignored if BlobStoreAddress is set.
	BlobStorePath string `toml:"blobStorePath"`
	// BlobStoreAddress, if non-empty, is a host:port address for a remote
	// blob service, taking precedence over BlobStorePath.
	BlobStoreAddress string `toml:"blobStoreAddress"`
}

// Default returns a Configuration populated with this package's defaults.
func Default() *Configuration {
	return &Configuration{
		FanOut:           DefaultFanOut,
		WriteConcurrency: DefaultWriteConcurrency,
	}
}

// EnsureValid validates the configuration, returning an error describing the
// first violation encountered.
func (c *Configuration) EnsureValid() error {
	if c.FanOut <= 0 {
		return errors.New("fanOut must be positive")
	}
	if c.WriteConcurrency <= 0 {
		return errors.New("writeConcurrency must be positive")
	}
	if c.BlobStoreAddress == "" && c.BlobStorePath == "" {
		return errors.New("one of blobStoreAddress or blobStorePath must be set")
	}
	return nil
}

// Equal performs a value-based comparison of two configurations.
func (c *Configuration) Equal(other *Configuration) bool {
	if c == nil || other == nil {
		return c == other
	}
	return *c == *other
}

// Load reads and parses a TOML configuration file at path, filling in any
// zero-valued fields with this package's defaults.
func Load(path string) (*Configuration, error) {
	result := Default()
	if err := encoding.LoadAndUnmarshalTOML(path, result); err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return nil, fmt.Errorf("unable to load configuration: %w", err)
	}
	if result.FanOut == 0 {
		result.FanOut = DefaultFanOut
	}
	if result.WriteConcurrency == 0 {
		result.WriteConcurrency = DefaultWriteConcurrency
	}
	return result, nil
}

// DefaultPath returns the default location of the dfm CLI's configuration
// file, mirroring the ambient stack's own home-directory-relative global
// configuration path convention.
func DefaultPath() (string, error) {
	homeDirectoryPath, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("unable to compute path to home directory: %w", err)
	}
	return filepath.Join(homeDirectoryPath, ".dfm.toml"), nil
}
