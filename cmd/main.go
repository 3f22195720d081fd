package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Abraxas-365/peoplehub/internal/config"
	"github.com/Abraxas-365/peoplehub/pkg/logx"
)

const app = "peoplehub"

var (
	cfgFile string

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "PeopleHub HR backend and resume matching pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./peoplehub.yaml when present)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: json or console")

	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			logx.Fatalf("reading config: %v", err)
		}
	}
}

// loadConfig decodes the configuration, validates what the subcommand needs
// and configures the global logger
func loadConfig(reqs ...config.Requirement) (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(reqs...); err != nil {
		return nil, err
	}
	if err := logx.Configure(cfg.Log.Options()); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logx.Errorf("%s: %v", app, err)
		_ = logx.Sync()
		os.Exit(1)
	}
	_ = logx.Sync()
}
