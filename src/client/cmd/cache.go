package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/apimgr/swapi/src/client/cache"
	"github.com/apimgr/swapi/src/client/paths"
)

func (a *app) newCacheCmd() *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:         "cache",
		Short:       "Manage the response cache",
		Annotations: map[string]string{skipConfigCheck: "true"},
	}

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Show cache location and usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.openCache()
			if err != nil {
				return err
			}
			stats, err := c.Stats()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Enabled: %t\n", a.v.GetBool("cache.enabled"))
			fmt.Fprintf(out, "Directory: %s\n", paths.CacheDir())
			fmt.Fprintf(out, "Entries: %d\n", stats.Entries)
			fmt.Fprintf(out, "Size: %d bytes\n", stats.Bytes)
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.openCache()
			if err != nil {
				return err
			}
			if err := c.Clear(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cache cleared: %s\n", paths.CacheDir())
			return nil
		},
	}

	cacheCmd.AddCommand(infoCmd, clearCmd)
	return cacheCmd
}

// openCache opens the cache directory regardless of cache.enabled, so leftover
// entries can be inspected and removed
func (a *app) openCache() (*cache.Cache, error) {
	return cache.New(cache.Config{
		Enabled: true,
		TTL:     time.Duration(a.v.GetInt("cache.ttl")) * time.Second,
		MaxSize: int64(a.v.GetInt("cache.max_size")) << 20,
		Dir:     paths.CacheDir(),
	})
}
