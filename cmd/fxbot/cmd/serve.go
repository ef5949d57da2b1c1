package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rustyeddy/fxbot/config"
	"github.com/rustyeddy/fxbot/engine"
	"github.com/rustyeddy/fxbot/journal"
	"github.com/rustyeddy/fxbot/notify"
	"github.com/rustyeddy/fxbot/oanda"
	"github.com/rustyeddy/fxbot/strategies"
	"github.com/rustyeddy/fxbot/trailing"
	"github.com/rustyeddy/fxbot/webhook"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the trading daemon",
	Long: `Start the webhook server and the periodic strategy loop.

Broker and alert credentials come from the environment (or a .env file):
  OANDA_API_KEY       - OANDA REST API token (required)
  OANDA_ACCOUNT_ID    - OANDA account ID (required)
  DISCORD_WEBHOOK_URL - Discord alert webhook (optional)

Example:
  fxbot serve --config fxbot.yaml`,
	RunE: runServe,
}

var serveConfigPath string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "f", "", "path to config file (YAML or JSON)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Missing .env is fine, credentials may come from the real environment.
	godotenv.Load()

	log, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	cfg := config.Default()
	if serveConfigPath != "" {
		cfg, err = config.LoadFromFile(serveConfigPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	token := os.Getenv("OANDA_API_KEY")
	accountID := os.Getenv("OANDA_ACCOUNT_ID")
	if token == "" || accountID == "" {
		return errors.New("OANDA_API_KEY and OANDA_ACCOUNT_ID must be set")
	}

	baseURL, err := oanda.BaseURL(cfg.Broker.Env)
	if err != nil {
		return fmt.Errorf("broker env: %w", err)
	}
	broker := oanda.NewClient(baseURL, accountID, token, log)

	var j journal.Journal
	if cfg.Journal.Type == "sqlite" {
		j, err = journal.NewSQLite(cfg.Journal.DBPath)
	} else {
		j, err = journal.NewCSV(cfg.Journal.TradesFile)
	}
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer j.Close()

	notifier := notify.NewDiscord(os.Getenv("DISCORD_WEBHOOK_URL"), log)
	eng := engine.New(broker, j, notifier, log)

	signals := strategies.Combined{
		MA: strategies.MACross{
			ShortWindow: cfg.Strategy.ShortWindow,
			LongWindow:  cfg.Strategy.LongWindow,
		},
		RSI: strategies.RSIReversal{
			Period:     cfg.Strategy.RSIPeriod,
			Oversold:   cfg.Strategy.Oversold,
			Overbought: cfg.Strategy.Overbought,
		},
	}

	interval, err := cfg.Strategy.ParseInterval()
	if err != nil {
		return fmt.Errorf("strategy interval: %w", err)
	}

	loop := engine.NewLoop(engine.LoopConfig{
		Watchlist:   cfg.Strategy.Watchlist,
		Interval:    interval,
		Granularity: cfg.Strategy.Granularity,
		CandleCount: cfg.Strategy.CandleCount,
		StopPips:    cfg.Strategy.StopPips,
		RewardRatio: cfg.Strategy.RewardRatio,
	}, eng, broker, signals, trailing.New(broker, log), log)

	srv := &http.Server{
		Addr:    cfg.Server.Listen,
		Handler: webhook.NewRouter(eng, log),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info("webhook server listening", zap.String("addr", cfg.Server.Listen))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()
	go loop.Run(ctx)

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case serveErr = <-errc:
		stop()
		log.Error("server failed", zap.Error(serveErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return serveErr
}
