package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/rolodex/pkg/sqlite"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend      string `yaml:"backend"`
	DataDir      string `yaml:"data_dir,omitempty"`
	PageSize     int    `yaml:"page_size"`
	HeaderLayout string `yaml:"header_layout"`
	Locale       string `yaml:"locale"`
	LogLevel     string `yaml:"log_level"`
}

func newInitCmd() *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize rolodex storage",
		Long: "Create the configuration and data directories, write a default config.yaml\n" +
			"if none exists, then initialize the store. With --seed an empty store is\n" +
			"filled with demo owners and records.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSettings()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(s.ConfigDir, 0o755); err != nil {
				return sysError(fmt.Errorf("create config directory: %w", err))
			}
			if err := writeConfigIfMissing(configPath(s.ConfigDir), s); err != nil {
				return sysError(fmt.Errorf("write config: %w", err))
			}

			logger := newLogger(cmd.ErrOrStderr(), s.LogLevel)
			store, err := sqlite.Open(types.Config{Backend: s.Backend, DataDir: s.DataDir, Seed: seed}, logger)
			if err != nil {
				return sysError(fmt.Errorf("initialize storage: %w", err))
			}
			if err := store.Detach(); err != nil {
				return sysError(fmt.Errorf("finalize storage: %w", err))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Rolodex initialized\nconfig: %s\ndata:   %s\n", configPath(s.ConfigDir), s.DataDir)
			return nil
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "load demo owners and records into an empty store")
	return cmd
}

// writeConfigIfMissing creates config.yaml from s if the file does not
// exist. An existing file is left untouched.
func writeConfigIfMissing(path string, s settings) error {
	if fileExists(path) {
		return nil
	}
	cfg := configFile{
		Backend:      s.Backend,
		DataDir:      flags.dataDir,
		PageSize:     s.PageSize,
		HeaderLayout: string(s.HeaderLayout),
		Locale:       s.Locale.String(),
		LogLevel:     s.LogLevel,
	}
	if cfg.DataDir != "" {
		cfg.DataDir = s.DataDir
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
