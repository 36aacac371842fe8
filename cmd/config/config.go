package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/grove-labels/pkg/kv"
	"github.com/mattsolo1/grove-labels/pkg/labels"
	"github.com/mattsolo1/grove-labels/pkg/service"
	"github.com/mattsolo1/grove-labels/pkg/sync"
)

var (
	cfgFile string
	verbose bool
)

// InitConfig wires viper: an explicit --config file or
// $HOME/.config/nbl/config.yaml, NBL_* environment overrides and defaults.
func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "nbl")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("NBL")
	viper.AutomaticEnv()

	home, _ := os.UserHomeDir()
	viper.SetDefault("data_dir", filepath.Join(home, ".local", "share", "nbl"))
	viper.SetDefault("notes_dir", filepath.Join(home, "notes"))
	viper.SetDefault("remote_files", []string{})
	viper.SetDefault("labels.identity", string(labels.FlatIdentity))
	viper.SetDefault("filter.selection", string(labels.SelectVisible))
	viper.SetDefault("convert.link_pattern", "")

	// A missing config file is normal; defaults apply.
	_ = viper.ReadInConfig()
}

// Logger returns the process logger: warnings on stderr, debug with --verbose.
func Logger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel) // Keep it quiet unless there are issues.
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logrus.NewEntry(logger).WithField("app", "nbl")
}

// Sources decodes the configured remotes.
func Sources() ([]sync.Source, error) {
	return sync.DecodeSources(viper.Get("remotes"))
}

// RemoteDir is where synced envelopes land by default.
func RemoteDir() string {
	return filepath.Join(viper.GetString("data_dir"), "remote")
}

// ServiceConfig builds the service configuration from viper.
func ServiceConfig() (*service.Config, error) {
	identity, err := labels.ParseIdentityMode(viper.GetString("labels.identity"))
	if err != nil {
		return nil, err
	}
	selection, err := labels.ParseSelection(viper.GetString("filter.selection"))
	if err != nil {
		return nil, err
	}
	sources, err := Sources()
	if err != nil {
		return nil, err
	}

	remoteFiles := append([]string{}, viper.GetStringSlice("remote_files")...)
	remoteFiles = append(remoteFiles, sync.OutputFiles(sources, RemoteDir())...)

	return &service.Config{
		DataDir:     viper.GetString("data_dir"),
		NotesDir:    viper.GetString("notes_dir"),
		RemoteFiles: remoteFiles,
		Identity:    identity,
		Selection:   selection,
	}, nil
}

// InitService opens the activation database and builds the service.
func InitService(logger *logrus.Entry) (*service.Service, error) {
	cfg, err := ServiceConfig()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	backend, err := kv.OpenSQLite(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}

	svc, err := service.New(cfg, backend, logger)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return svc, nil
}

func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/nbl/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
