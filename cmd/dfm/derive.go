package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/dfmderiver/dfm/cmd"
	"github.com/dfmderiver/dfm/pkg/deriver"
	"github.com/dfmderiver/dfm/pkg/manifest"
)

// deriveMain is the entry point for the derive command.
func deriveMain(_ *cobra.Command, arguments []string) error {
	fixturePath := arguments[0]

	if deriveConfiguration.changeset == "" {
		return errors.New("--changeset is required")
	}
	csID, err := manifest.ParseChangesetID(deriveConfiguration.changeset)
	if err != nil {
		return errors.Wrap(err, "invalid changeset id")
	}

	parents := make([]manifest.ManifestID, len(deriveConfiguration.parents))
	for i, raw := range deriveConfiguration.parents {
		id, err := manifest.ParseManifestID(raw)
		if err != nil {
			return errors.Wrapf(err, "invalid parent manifest id %q", raw)
		}
		parents[i] = id
	}

	changes, err := loadChangeTreeFixture(fixturePath)
	if err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}

	cfg, err := loadConfiguration()
	if err != nil {
		return err
	}
	if err := cfg.EnsureValid(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	store, closeStore, err := openManifestStore(cfg, logger)
	if err != nil {
		return err
	}
	if closeStore != nil {
		defer closeStore()
	}

	// Cancel the derivation cleanly on an interrupt rather than leaving the
	// write pipeline's goroutines to be killed mid-write by process exit.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, cmd.TerminationSignals...)
	defer signal.Stop(signals)
	go func() {
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}
	}()

	d := deriver.New(store,
		deriver.WithFanOut(cfg.FanOut),
		deriver.WithWriteConcurrency(cfg.WriteConcurrency),
		deriver.WithLogger(logger),
	)

	root, err := d.Derive(ctx, csID, parents, changes)
	if err != nil {
		return errors.Wrap(err, "derivation failed")
	}

	fmt.Println(root.String())
	return nil
}

// deriveCommand is the derive command.
var deriveCommand = &cobra.Command{
	Use:          "derive <fixture.toml>",
	Short:        "Derive a Deleted Files Manifest root from a change-tree fixture",
	Args:         cobra.ExactArgs(1),
	RunE:         deriveMain,
	SilenceUsage: true,
}

// deriveConfiguration stores configuration for the derive command.
var deriveConfiguration struct {
	// changeset is the hex-encoded id of the changeset being derived.
	changeset string
	// parents are the hex-encoded manifest ids of the changeset's parents'
	// previously derived roots.
	parents []string
}

func init() {
	flags := deriveCommand.Flags()
	flags.SortFlags = false

	registerCommonFlags(flags)

	flags.StringVar(&deriveConfiguration.changeset, "changeset", "", "Hex-encoded changeset id being derived")
	flags.StringSliceVar(&deriveConfiguration.parents, "parent", nil, "Hex-encoded manifest id of a parent root (may be specified multiple times)")
}
