package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/mesh-intelligence/rolodex/pkg/tableview"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "ROLODEX"

	cfgKeyBackend      = "backend"
	cfgKeyDataDir      = "data_dir"
	cfgKeyPageSize     = "page_size"
	cfgKeyHeaderLayout = "header_layout"
	cfgKeyLocale       = "locale"
	cfgKeyLogLevel     = "log_level"

	defaultLocale   = "en"
	defaultLogLevel = "info"
)

// settings is the resolved configuration of one invocation.
type settings struct {
	ConfigDir    string
	Backend      string
	DataDir      string
	PageSize     int
	HeaderLayout types.HeaderLayout
	Locale       language.Tag
	LogLevel     string
}

// loadConfig reads config.yaml from configDir. A missing file is not an
// error; every key has a default and can be overridden with a ROLODEX_
// environment variable.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyPageSize, tableview.DefaultPageSize)
	v.SetDefault(cfgKeyHeaderLayout, string(types.HeaderPopover))
	v.SetDefault(cfgKeyLocale, defaultLocale)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// resolveSettings applies flags over config.yaml over defaults.
func resolveSettings() (settings, error) {
	configDir, err := resolveConfigDir()
	if err != nil {
		return settings{}, sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return settings{}, userError(err)
	}
	dataDir, err := resolveDataDir(v.GetString(cfgKeyDataDir))
	if err != nil {
		return settings{}, sysError(fmt.Errorf("resolve data dir: %w", err))
	}

	s := settings{
		ConfigDir:    configDir,
		Backend:      v.GetString(cfgKeyBackend),
		DataDir:      dataDir,
		PageSize:     v.GetInt(cfgKeyPageSize),
		HeaderLayout: types.HeaderLayout(v.GetString(cfgKeyHeaderLayout)),
		LogLevel:     v.GetString(cfgKeyLogLevel),
	}
	if flags.logLevel != "" {
		s.LogLevel = flags.logLevel
	}
	if s.PageSize <= 0 {
		return settings{}, userError(fmt.Errorf("%s: %w", cfgKeyPageSize, types.ErrInvalidPageSize))
	}
	if !s.HeaderLayout.Valid() {
		return settings{}, userError(fmt.Errorf("%s: %w", cfgKeyHeaderLayout, types.ErrInvalidHeaderLayout))
	}
	tag, err := language.Parse(v.GetString(cfgKeyLocale))
	if err != nil {
		return settings{}, userError(fmt.Errorf("%s: %w", cfgKeyLocale, err))
	}
	s.Locale = tag
	return s, nil
}

// configPath returns the location of config.yaml in configDir.
func configPath(configDir string) string {
	return filepath.Join(configDir, configFileExt)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
