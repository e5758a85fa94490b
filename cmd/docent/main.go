package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/docent-ai/docent/internal/assistant"
	"github.com/docent-ai/docent/internal/document"
	"github.com/docent-ai/docent/internal/handler"
	appI18n "github.com/docent-ai/docent/internal/i18n"
	"github.com/docent-ai/docent/internal/llm"
	"github.com/docent-ai/docent/internal/model"
	"github.com/docent-ai/docent/internal/token"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "docent",
		Short: "Document Q&A and self-assessment powered by LLMs",
	}

	serve := serveCmd()
	root.AddCommand(serve, summarizeCmd())

	// Make "serve" the default when no subcommand is given.
	root.RunE = serve.RunE

	// Register serve flags on root so bare `docent --addr ...` still works.
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

func addLLMFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("llm-url", "https://api.openai.com/v1", "OpenAI-compatible API base URL")
	f.String("llm-key", "", "API key for LLM (or set DOCENT_LLM_KEY)")
	f.String("llm-model", "gpt-4o-mini", "Model for summary, Q&A and evaluation")
	f.String("question-model", "gpt-3.5-turbo", "Model for challenge question generation")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP assistant server",
		RunE:  runServe,
	}
	addLLMFlags(cmd)
	f := cmd.Flags()
	f.StringP("addr", "a", ":8080", "HTTP listen address")
	f.StringP("lang", "l", "en", "Default message language (en, ru)")
	f.IntP("num-questions", "n", 3, "Challenge questions per round")
	f.String("base-path", "", "URL prefix for sub-path deployments (e.g. /docent)")
	return cmd
}

func summarizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize FILE",
		Short: "Summarize a document file and exit",
		Args:  cobra.ExactArgs(1),
		RunE:  runSummarize,
	}
	addLLMFlags(cmd)
	return cmd
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("DOCENT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("docent")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/docent")
	v.AddConfigPath("/etc/docent")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

func buildAssistant(v *viper.Viper) (*assistant.Assistant, *llm.Client, model.AssistantConfig, error) {
	cfg := model.AssistantConfig{
		AnswerModel:   v.GetString("llm-model"),
		QuestionModel: v.GetString("question-model"),
		NumQuestions:  v.GetInt("num-questions"),
		BasePath:      v.GetString("base-path"),
	}

	budgeter, err := token.New()
	if err != nil {
		return nil, nil, cfg, fmt.Errorf("init tokenizer: %w", err)
	}

	gw := llm.New(v.GetString("llm-url"), v.GetString("llm-key"))
	return assistant.New(budgeter, gw, cfg), gw, cfg, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	a, gw, cfg, err := buildAssistant(v)
	if err != nil {
		return err
	}
	if err := gw.Ping(context.Background()); err != nil {
		return fmt.Errorf("LLM health check: %w", err)
	}
	slog.Info("LLM endpoint OK", "url", v.GetString("llm-url"), "model", cfg.AnswerModel)

	lang := v.GetString("lang")
	if err := appI18n.Init(lang); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}

	// Normalize base path.
	basePath := strings.TrimRight(cfg.BasePath, "/")
	if basePath != "" && !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}

	h := handler.New(a, cfg)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(appI18n.Middleware(lang))

	if basePath != "" {
		r.Route(basePath, func(sub chi.Router) {
			h.Routes(sub)
		})
	} else {
		h.Routes(r)
	}

	addr := v.GetString("addr")
	slog.Info("starting server",
		"addr", addr,
		"llm_url", v.GetString("llm-url"),
		"answer_model", cfg.AnswerModel,
		"question_model", cfg.QuestionModel,
		"num_questions", cfg.NumQuestions,
		"lang", lang,
		"base_path", basePath,
	)
	return http.ListenAndServe(addr, r)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	a, _, _, err := buildAssistant(v)
	if err != nil {
		return err
	}

	text, err := document.Load(args[0])
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	summary := a.Summarize(cmd.Context(), text)
	fmt.Printf("%s\n\n%s\n", filepath.Base(args[0]), summary)
	return nil
}
