package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cicd-demo/board-service/internal/client"
)

const defaultAPIBaseURL = "http://localhost:3001"

var (
	cliConfig = viper.New()

	apiURLFlag  string
	timeoutFlag time.Duration
	formatFlag  string
)

var rootCmd = &cobra.Command{
	Use:           "boardctl",
	Short:         "boardctl - command line client for the board service",
	Long:          "boardctl lists and posts board messages and renders planned transit routes.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cliConfig.SetDefault("API_BASE_URL", defaultAPIBaseURL)
	_ = cliConfig.BindEnv("API_BASE_URL")

	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "",
		"Board service base URL (default: $API_BASE_URL or "+defaultAPIBaseURL+")")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 2*time.Minute,
		"Request timeout")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "human",
		"Output format (json, human)")
}

// apiBaseURL resolves the target URL. Precedence: --api-url > API_BASE_URL > default.
func apiBaseURL() string {
	if apiURLFlag != "" {
		return apiURLFlag
	}
	return cliConfig.GetString("API_BASE_URL")
}

func newClient() *client.Client {
	return client.New(apiBaseURL(), timeoutFlag)
}

func newContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
