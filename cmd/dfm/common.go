package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"google.golang.org/grpc"

	"github.com/dfmderiver/dfm/pkg/blobstore/diskstore"
	"github.com/dfmderiver/dfm/pkg/blobstore/grpcstore"
	"github.com/dfmderiver/dfm/pkg/changetree"
	"github.com/dfmderiver/dfm/pkg/config"
	"github.com/dfmderiver/dfm/pkg/encoding"
	"github.com/dfmderiver/dfm/pkg/logging"
	"github.com/dfmderiver/dfm/pkg/manifest"
	"github.com/dfmderiver/dfm/pkg/pathtree"
	"github.com/dfmderiver/dfm/pkg/stream"
)

// concurrentStderr serializes writes to standard error across the many
// goroutines the deriver's bounded traversal logs from concurrently.
var concurrentStderr io.Writer = stream.NewConcurrentWriter(os.Stderr)

// commonConfiguration stores the flags shared by every dfm subcommand.
var commonConfiguration struct {
	// configPath overrides the default configuration file location.
	configPath string
	// logLevel sets the verbosity of diagnostic output.
	logLevel string
}

// registerCommonFlags wires the flags shared across subcommands onto a
// command's flag set.
func registerCommonFlags(flags *pflag.FlagSet) {
	flags.StringVar(&commonConfiguration.configPath, "config", "", "Path to configuration file (defaults to ~/.dfm.toml)")
	flags.StringVar(&commonConfiguration.logLevel, "log-level", "info", "Log level (disabled|error|warn|info|debug|trace)")
}

// newLogger constructs the root logger for a subcommand invocation from the
// common --log-level flag, writing through a concurrency-safe writer since
// the deriver's bounded traversal logs from many goroutines at once.
func newLogger() (*logging.Logger, error) {
	level, ok := logging.NameToLevel(commonConfiguration.logLevel)
	if !ok {
		return nil, fmt.Errorf("invalid log level: %s", commonConfiguration.logLevel)
	}
	return logging.NewLogger(level, concurrentStderr), nil
}

// loadConfiguration resolves and loads the dfm configuration file, falling
// back to the default path if --config wasn't specified.
func loadConfiguration() (*config.Configuration, error) {
	path := commonConfiguration.configPath
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			return nil, errors.Wrap(err, "unable to compute default configuration path")
		}
		path = defaultPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to load configuration")
	}
	return cfg, nil
}

// openManifestStore constructs a manifest.Store from a loaded configuration,
// dialing a remote blob service if one is configured, or opening the local
// disk-backed store otherwise. The returned closer (which may be nil) must
// be invoked once the store is no longer needed.
func openManifestStore(cfg *config.Configuration, logger *logging.Logger) (*manifest.Store, func(), error) {
	var blobs manifest.BlobStore
	var closer func()

	if cfg.BlobStoreAddress != "" {
		conn, err := grpc.Dial(cfg.BlobStoreAddress, grpc.WithInsecure())
		if err != nil {
			return nil, nil, errors.Wrap(err, "unable to dial blob store service")
		}
		blobs = grpcstore.NewClient(conn)
		closer = func() { conn.Close() }
	} else {
		store, err := diskstore.New(cfg.BlobStorePath, logger)
		if err != nil {
			return nil, nil, errors.Wrap(err, "unable to open disk blob store")
		}
		blobs = store
	}

	return manifest.NewStore(blobs, nil, logger), closer, nil
}

// loadChangeTreeFixture parses a TOML change-tree fixture file, a flat
// mapping from root-relative path to change tag ("add", "remove", or
// "conflict"), into the path tree the deriver expects.
func loadChangeTreeFixture(path string) (*pathtree.Tree[changetree.PathChange], error) {
	var raw struct {
		Paths map[string]string `toml:"paths"`
	}
	if err := encoding.LoadAndUnmarshalTOML(path, &raw); err != nil {
		return nil, errors.Wrap(err, "unable to load change-tree fixture")
	}

	changes := make(map[string]changetree.PathChange, len(raw.Paths))
	for p, tag := range raw.Paths {
		change, err := changetree.ParsePathChange(tag)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid change-tree fixture entry for %q", p)
		}
		changes[p] = change
	}
	return pathtree.FromPairs(changes), nil
}
