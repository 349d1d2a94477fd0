package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/apimgr/swapi/src/client/paths"
)

const defaultConfig = `# swapi CLI configuration
api:
  base_url: https://swapi.dev/api
  # seconds, 0 disables the timeout
  timeout: 30

cache:
  enabled: false
  ttl: 300
  max_size: 100

logging:
  level: warn
  file: ""
  max_size: 10
  max_files: 5
`

func (a *app) newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:         "config",
		Short:       "Manage CLI configuration",
		Annotations: map[string]string{skipConfigCheck: "true"},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := yaml.Marshal(a.v.AllSettings())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := a.v.Get(args[0])
			if value == nil {
				return fmt.Errorf("key not found: %s", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			configPath := a.configPath()

			fileV, err := readConfigOnly(configPath)
			if err != nil {
				return err
			}
			typed, err := convertValue(key, value)
			if err != nil {
				return err
			}
			fileV.Set(key, typed)

			// validate what the file will hold on top of the defaults only
			merged := viper.New()
			setDefaults(merged)
			if err := merged.MergeConfigMap(fileV.AllSettings()); err != nil {
				return err
			}
			if _, err := loadSettings(merged); err != nil {
				return err
			}

			if err := paths.EnsureParent(configPath); err != nil {
				return err
			}
			if err := fileV.WriteConfigAs(configPath); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := a.configPath()

			if _, err := os.Stat(configPath); err == nil {
				return fmt.Errorf("config already exists: %s", configPath)
			}
			if err := paths.EnsureParent(configPath); err != nil {
				return err
			}
			if err := os.WriteFile(configPath, []byte(defaultConfig), 0600); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", configPath)
			return nil
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), a.configPath())
		},
	}

	configCmd.AddCommand(showCmd, getCmd, setCmd, initCmd, pathCmd)
	return configCmd
}

// readConfigOnly loads the config file alone, without defaults, environment
// or flags, so that writing it back persists nothing else
func readConfigOnly(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return v, nil
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return v, nil
}

// convertValue parses value into the type of the key's default
func convertValue(key, value string) (any, error) {
	defaults := viper.New()
	setDefaults(defaults)

	switch defaults.Get(key).(type) {
	case nil:
		return nil, fmt.Errorf("key not found: %s", key)
	case int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%s must be an integer, got %q", key, value)
		}
		return n, nil
	case bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%s must be true or false, got %q", key, value)
		}
		return b, nil
	default:
		return value, nil
	}
}
