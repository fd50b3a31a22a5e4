package cmd

import (
	"errors"
	"io/fs"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/careerdeck/internal/storage"
)

const (
	app       = "careerdeck"
	envPrefix = "CAREERDECK"
)

type Config struct {
	Storage     *storage.Config `mapstructure:"storage"`
	CatalogFile string          `mapstructure:"catalog-file"`
	Digest      *DigestConfig   `mapstructure:"digest"`
}

type DigestConfig struct {
	// Timezone decides which calendar day "today" is. Defaults to local time.
	Timezone string `mapstructure:"timezone"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "careerdeck scores your résumé, matches jobs to your preferences and builds a daily digest",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is careerdeck.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("log-output", "stderr", "where logs go: stderr, stdout or a file path")
	rootCmd.PersistentFlags().String("storage", "", "storage backend: file, memory, redis or postgres")
	rootCmd.PersistentFlags().String("catalog-file", "", "json file with job listings (default is the built-in catalog)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("log-output", rootCmd.PersistentFlags().Lookup("log-output"))
	viper.BindPFlag("storage.backend", rootCmd.PersistentFlags().Lookup("storage"))
	viper.BindPFlag("catalog-file", rootCmd.PersistentFlags().Lookup("catalog-file"))

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()
	for _, key := range []string{"storage.path", "storage.redis.addr", "storage.redis.db", "storage.redis.prefix", "storage.redis.password-file", "storage.postgres.dsn-file", "storage.postgres.table", "digest.timezone"} {
		if err := viper.BindEnv(key); err != nil {
			log.Fatalf("binding %s environment variable: %v", key, err)
		}
	}
}

func initConfig() {
	// .env is optional, real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional, but we can't proceed if it exists and is broken.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}
	if config == nil {
		config = &Config{}
	}

	return config, nil
}
