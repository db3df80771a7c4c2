package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/dfmderiver/dfm/pkg/manifest"
)

// inspectMain is the entry point for the inspect command.
func inspectMain(_ *cobra.Command, arguments []string) error {
	id, err := manifest.ParseManifestID(arguments[0])
	if err != nil {
		return errors.Wrap(err, "invalid manifest id")
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

	return printNode(context.Background(), store, id, "", 0)
}

// printNode loads and prints a single manifest node, recursing into its
// subentries when --recursive is set.
func printNode(ctx context.Context, store *manifest.Store, id manifest.ManifestID, name string, depth int) error {
	node, err := store.Load(ctx, id)
	if err != nil {
		return errors.Wrapf(err, "unable to load %s", id)
	}

	indent := strings.Repeat("  ", depth)
	label := name
	if label == "" {
		label = "/"
	}

	status := "live"
	if node.IsDeleted() {
		status = fmt.Sprintf("deleted by %s", node.Linknode)
	}
	fmt.Printf("%s%s  %s  [%s]  (%s)\n", indent, label, id, status, humanize.Bytes(uint64(len(node.Encode()))))

	if !inspectConfiguration.recursive {
		return nil
	}
	for _, entry := range node.Subentries {
		if err := printNode(ctx, store, entry.ID, entry.Name, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// inspectCommand is the inspect command.
var inspectCommand = &cobra.Command{
	Use:          "inspect <manifest-id>",
	Short:        "Inspect a stored Deleted Files Manifest node",
	Args:         cobra.ExactArgs(1),
	RunE:         inspectMain,
	SilenceUsage: true,
}

// inspectConfiguration stores configuration for the inspect command.
var inspectConfiguration struct {
	// recursive causes the full reachable subtree to be printed.
	recursive bool
}

func init() {
	flags := inspectCommand.Flags()
	flags.SortFlags = false

	registerCommonFlags(flags)

	flags.BoolVarP(&inspectConfiguration.recursive, "recursive", "r", false, "Print the full reachable subtree")
}
