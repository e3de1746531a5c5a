package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/praka2hb/synergi/internal/profile"
	"github.com/praka2hb/synergi/plugin/ai"
	"github.com/praka2hb/synergi/plugin/ai/agent"
	"github.com/praka2hb/synergi/plugin/ai/router"
	"github.com/praka2hb/synergi/plugin/sandbox"
	"github.com/praka2hb/synergi/plugin/weather"
	"github.com/praka2hb/synergi/plugin/websearch"
	"github.com/praka2hb/synergi/server"
	apiv1 "github.com/praka2hb/synergi/server/router/api/v1"
	"github.com/praka2hb/synergi/store"
	"github.com/praka2hb/synergi/store/db"
)

const greetingBanner = `
synergi - multi-agent chat server
`

var rootCmd = &cobra.Command{
	Use:   "synergi",
	Short: "A chat server that routes each message to a specialized agent",
	Run: func(_ *cobra.Command, _ []string) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		serverProfile := profileFromViper()
		if err := serverProfile.Validate(); err != nil {
			slog.Error("invalid profile", "error", err)
			os.Exit(1)
		}

		dbDriver, err := db.NewDBDriver(serverProfile)
		if err != nil {
			slog.Error("failed to create db driver", "error", err)
			os.Exit(1)
		}
		storeInstance := store.New(dbDriver, serverProfile)
		if err := storeInstance.Migrate(ctx); err != nil {
			slog.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}

		llmService, routerService := buildAIServices(serverProfile)
		agents := agent.NewRegistry(
			llmService,
			weather.NewClient(),
			websearch.NewClient(serverProfile.TavilyAPIKey),
			sandbox.NewClient(serverProfile.SandboxURL),
			serverProfile.ToolLoopMaxSteps,
		)

		apiService := apiv1.NewAPIV1Service(serverProfile, storeInstance, routerService, agents, llmService)
		s, err := server.NewServer(ctx, serverProfile, storeInstance, apiService)
		if err != nil {
			slog.Error("failed to create server", "error", err)
			os.Exit(1)
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			sig := <-sigCh
			slog.Info("received signal, shutting down", "signal", sig.String())
			s.Shutdown(ctx)
			cancel()
		}()

		printGreetings(serverProfile)
		if err := s.Start(ctx); err != nil {
			slog.Error("failed to start server", "error", err)
			cancel()
		}

		<-ctx.Done()
	},
}

func profileFromViper() *profile.Profile {
	return &profile.Profile{
		Mode:               viper.GetString("mode"),
		Addr:               viper.GetString("addr"),
		Port:               viper.GetInt("port"),
		Data:               viper.GetString("data"),
		Driver:             viper.GetString("driver"),
		DSN:                viper.GetString("dsn"),
		Version:            version,
		LLMProvider:        viper.GetString("llm-provider"),
		LLMAPIKey:          viper.GetString("llm-api-key"),
		LLMBaseURL:         viper.GetString("llm-base-url"),
		LLMModel:           viper.GetString("llm-model"),
		RouterModel:        viper.GetString("router-model"),
		TavilyAPIKey:       viper.GetString("tavily-api-key"),
		SandboxURL:         viper.GetString("sandbox-url"),
		ToolLoopMaxSteps:   viper.GetInt("tool-loop-max-steps"),
		MaxConcurrentTurns: viper.GetInt("max-concurrent-turns"),
	}
}

// buildAIServices wires the LLM backend and intent router. Without LLM
// credentials the server still runs: routing falls back to the keyword rule
// engine and chat turns are rejected with LLM_UNAVAILABLE.
func buildAIServices(p *profile.Profile) (ai.LLMService, *router.Service) {
	if !p.IsLLMConfigured() {
		slog.Warn("no LLM credentials configured, using rule-based routing only")
		return nil, router.NewService(router.NewRuleClassifier())
	}

	llmService, err := ai.NewLLMService(ai.NewConfigFromProfile(p))
	if err != nil {
		slog.Warn("failed to create LLM service, using rule-based routing only", "error", err)
		return nil, router.NewService(router.NewRuleClassifier())
	}

	classifier := router.NewDelegatedClassifier(router.NewOpenAIClient(router.OpenAIClientConfig{
		APIKey:  p.LLMAPIKey,
		BaseURL: p.LLMBaseURL,
		Model:   p.RouterModel,
	}))
	return llmService, router.NewService(classifier)
}

var version = "0.1.0"

func printGreetings(p *profile.Profile) {
	fmt.Print(greetingBanner)
	fmt.Printf("Version %s has been started on %s:%d in %s mode\n", p.Version, p.Addr, p.Port, p.Mode)
}

func init() {
	rootCmd.PersistentFlags().String("mode", "dev", `mode of the server, can be "prod" or "dev"`)
	rootCmd.PersistentFlags().String("addr", "", "address of the server")
	rootCmd.PersistentFlags().Int("port", 8192, "port of the server")
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", `database driver, can be "sqlite" or "postgres"`)
	rootCmd.PersistentFlags().String("dsn", "", "database source name (aka. DSN)")
	rootCmd.PersistentFlags().String("llm-provider", "openai", "LLM provider")
	rootCmd.PersistentFlags().String("llm-api-key", "", "LLM API key")
	rootCmd.PersistentFlags().String("llm-base-url", "", "base URL of an OpenAI-compatible API")
	rootCmd.PersistentFlags().String("llm-model", "", "model used for agent generation")
	rootCmd.PersistentFlags().String("router-model", "", "model used for intent classification")
	rootCmd.PersistentFlags().String("tavily-api-key", "", "Tavily API key for web search")
	rootCmd.PersistentFlags().String("sandbox-url", "http://localhost:8194", "URL of the code execution sandbox")
	rootCmd.PersistentFlags().Int("tool-loop-max-steps", 5, "max generation rounds in an agent tool loop")
	rootCmd.PersistentFlags().Int("max-concurrent-turns", 32, "max in-flight chat turns across all users")

	for _, flag := range []string{
		"mode", "addr", "port", "data", "driver", "dsn",
		"llm-provider", "llm-api-key", "llm-base-url", "llm-model", "router-model",
		"tavily-api-key", "sandbox-url", "tool-loop-max-steps", "max-concurrent-turns",
	} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}

	viper.SetEnvPrefix("synergi")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("failed to execute command", "error", err)
		os.Exit(1)
	}
}
