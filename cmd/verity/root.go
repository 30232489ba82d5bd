package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/verity-go/verity/internal/logging"
	"github.com/verity-go/verity/message"
)

var rootCmd = &cobra.Command{
	Use:   "verity",
	Short: "Verity validates structured data against declarative schemas",
	Long: `Verity compiles declarative schema files and validates JSON or YAML
documents against them, reporting every failure with its JSON Pointer path.`,
}

var logger *slog.Logger = logging.NewNop()

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("lang", "en", "message language (en|ja)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug|info|warn|error)")
	_ = viper.BindPFlag("lang", rootCmd.PersistentFlags().Lookup("lang"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	viper.SetConfigName("verity")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetDefault("lang", "en")
	viper.SetDefault("log_level", "info")

	viper.SetEnvPrefix("VERITY")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "read config: %v\n", err)
			os.Exit(1)
		}
	}

	logger = logging.New(logging.ParseLevel(viper.GetString("log_level")))
	message.SetLanguage(viper.GetString("lang"))
}
