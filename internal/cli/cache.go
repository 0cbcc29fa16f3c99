package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/skillgraph/pkg/cache"
	"github.com/matzehuels/skillgraph/pkg/config"
	"github.com/matzehuels/skillgraph/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached layouts and renders",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts and renders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.clearCache(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func (c *CLI) clearCache(ctx context.Context, w io.Writer) error {
	opts := c.cacheOptions()
	switch opts.Backend {
	case config.BackendNone:
		printInfo(w, "Cache is disabled")
		return nil

	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, opts.RedisURL)
		if err != nil {
			return errors.Wrap(errors.ErrCodeCache, err, "connect to redis cache")
		}
		defer rc.Close()
		n, err := rc.Clear(ctx, cachePrefix+"*")
		if err != nil {
			return errors.Wrap(errors.ErrCodeCache, err, "clear redis cache")
		}
		printSuccess(w, "Cleared %d cached entries", n)
		printDetail(w, "Prefix: %s", cachePrefix)
		return nil

	default:
		if _, err := os.Stat(opts.Dir); os.IsNotExist(err) {
			printInfo(w, "Cache is empty")
			return nil
		}
		fc, err := cache.NewFileCache(opts.Dir)
		if err != nil {
			return errors.Wrap(errors.ErrCodeCache, err, "open cache")
		}
		n, err := fc.Clear()
		if err != nil {
			return errors.Wrap(errors.ErrCodeCache, err, "clear cache")
		}
		printSuccess(w, "Cleared %d cached entries", n)
		printDetail(w, "Directory: %s", fc.Dir())
		return nil
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.cacheOptions()
			switch opts.Backend {
			case config.BackendRedis:
				fmt.Fprintln(cmd.OutOrStdout(), opts.RedisURL)
			case config.BackendNone:
				fmt.Fprintln(cmd.OutOrStdout(), "none")
			default:
				fmt.Fprintln(cmd.OutOrStdout(), opts.Dir)
			}
			return nil
		},
	}
}
