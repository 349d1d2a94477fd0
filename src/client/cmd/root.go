// Package cmd implements the CLI commands for the Star Wars API client
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/apimgr/swapi/src/client/api"
	"github.com/apimgr/swapi/src/client/cache"
	"github.com/apimgr/swapi/src/client/logging"
	"github.com/apimgr/swapi/src/client/paths"
)

// ExitFailure is returned for every failed invocation, whatever the cause.
// POSIX shells observe it truncated to 173.
const ExitFailure = 0xBAD

// skipConfigCheck marks commands that must work with a missing or broken
// config file
const skipConfigCheck = "skip-config-check"

// app carries per-invocation state shared by the command tree
type app struct {
	v       *viper.Viper
	cfgFile string
	baseURL string
	timeout int
	noCache bool

	logger    *slog.Logger
	logCloser io.Closer
}

func newApp() *app {
	return &app{
		v:      viper.New(),
		logger: logging.Discard(),
	}
}

// Execute runs the CLI with args and returns the process exit code.
// Help and successful commands return 0; any error is printed to stderr as a
// single line and returns ExitFailure.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := newApp()
	defer a.close()

	root := a.newRootCmd()
	root.SetArgs(normalizeArgs(args))
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		a.logger.Error("command failed", "error", err)
		fmt.Fprintln(stderr, err)
		return ExitFailure
	}
	return 0
}

func (a *app) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   getBinaryName(),
		Short: "CLI client for the Star Wars API",
		Long: `swapi is a command-line client for the Star Wars API.

It looks up characters by id or searches them by name and prints their
name, birth year, height and eye color.`,
		Args:               cobra.ArbitraryArgs,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		SilenceErrors:      true,
		SilenceUsage:       true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file path")
	root.PersistentFlags().StringVar(&a.baseURL, "base-url", "", "API base URL (default "+api.DefaultBaseURL+")")
	root.PersistentFlags().IntVar(&a.timeout, "timeout", 0, "request timeout in seconds, 0 disables it")
	root.PersistentFlags().BoolVar(&a.noCache, "no-cache", false, "bypass the response cache")

	a.v.BindPFlag("api.base_url", root.PersistentFlags().Lookup("base-url"))
	a.v.BindPFlag("api.timeout", root.PersistentFlags().Lookup("timeout"))

	root.AddCommand(a.newCharactersCmd())
	root.AddCommand(a.newConfigCmd())
	root.AddCommand(a.newCacheCmd())
	root.AddCommand(a.newVersionCmd())
	root.AddCommand(a.newTUICmd())
	return root
}

// initConfig merges defaults, the config file and SWAPI_* environment
// variables, then sets up file logging
func (a *app) initConfig(cmd *cobra.Command) error {
	v := a.v
	setDefaults(v)
	v.SetEnvPrefix("SWAPI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	lenient := hasAnnotation(cmd, skipConfigCheck)
	if err := a.readConfigFile(); err != nil && !lenient {
		return err
	}

	logger, closer, err := logging.New(logging.Config{
		Level:    v.GetString("logging.level"),
		File:     v.GetString("logging.file"),
		MaxSize:  v.GetInt("logging.max_size"),
		MaxFiles: v.GetInt("logging.max_files"),
	})
	if err != nil {
		// logging is optional, commands still run without it
		return nil
	}
	a.logger = logger
	a.logCloser = closer
	return nil
}

func (a *app) readConfigFile() error {
	path := a.configPath()
	a.v.SetConfigFile(path)

	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if a.cfgFile == "" {
			return nil
		}
		return fmt.Errorf("config file not found: %s", path)
	}
	if err := a.v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return nil
}

func (a *app) configPath() string {
	return paths.ResolveConfigPath(a.cfgFile)
}

// newClient validates the effective settings and builds the API client
func (a *app) newClient() (*api.Client, error) {
	s, err := loadSettings(a.v)
	if err != nil {
		return nil, err
	}

	client := api.NewClient(s.API.BaseURL, s.API.Timeout)
	client.Logger = a.logger

	if s.Cache.Enabled && !a.noCache {
		c, err := cache.New(cache.Config{
			Enabled: true,
			TTL:     time.Duration(s.Cache.TTL) * time.Second,
			MaxSize: int64(s.Cache.MaxSize) << 20,
			Dir:     paths.CacheDir(),
		})
		if err != nil {
			a.logger.Warn("could not initialize cache", "error", err)
		} else {
			client.Cache = c
		}
	}
	return client, nil
}

func (a *app) close() {
	if a.logCloser != nil {
		a.logCloser.Close()
	}
}

func hasAnnotation(cmd *cobra.Command, key string) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[key]; ok {
			return true
		}
	}
	return false
}

// valueFlags take the next argument as their value
var valueFlags = map[string]bool{
	"-i": true, "--id": true,
	"-s": true, "--search": true,
	"-c": true, "--config": true,
	"--base-url": true, "--timeout": true,
}

// normalizeArgs maps the -? help alias onto --help, leaving flag values alone
func normalizeArgs(args []string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		if arg == "-?" && (i == 0 || !valueFlags[args[i-1]]) {
			out[i] = "--help"
			continue
		}
		out[i] = arg
	}
	return out
}

func getBinaryName() string {
	return filepath.Base(os.Args[0])
}
