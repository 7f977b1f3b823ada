package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	tradeapp "github.com/muhammadheryan/car-traders/application/trade"
	userapp "github.com/muhammadheryan/car-traders/application/user"
	"github.com/muhammadheryan/car-traders/cmd/config"
	redisclient "github.com/muhammadheryan/car-traders/cmd/redis"
	redisRepo "github.com/muhammadheryan/car-traders/repository/redis"
	tradeRepo "github.com/muhammadheryan/car-traders/repository/trade"
	txRepo "github.com/muhammadheryan/car-traders/repository/tx"
	userRepo "github.com/muhammadheryan/car-traders/repository/user"
	"github.com/muhammadheryan/car-traders/thirdparty/rabbitmq"
	"github.com/muhammadheryan/car-traders/transport"
	"github.com/muhammadheryan/car-traders/utils/logger"
	validatorx "github.com/muhammadheryan/car-traders/utils/validator"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Starts the CarTraders HTTP server",
	RunE:  runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	// Load configuration from environment variables
	cfg := config.Load()

	if err := logger.Init(cfg.Environment); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	validatorx.Init()

	db, err := openDB(cfg)
	if err != nil {
		logger.Error("err connect db", zap.Error(err))
		return err
	}
	defer db.Close()

	rdb, err := redisclient.New(cfg)
	if err != nil {
		logger.Error("err connect redis", zap.Error(err))
		return err
	}
	defer rdb.Close()

	// A nil publisher drops events.
	var publisher *rabbitmq.Publisher
	if cfg.RabbitMQ.Enabled {
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
		if err != nil {
			logger.Error("err connect rabbitmq", zap.Error(err))
			return err
		}
		defer publisher.Close()
	}

	// Initialize repositories
	UserRepo := userRepo.NewUserRepository(db)
	TradeRepo := tradeRepo.NewTradeRepository(db)
	TxRepo := txRepo.NewTxRepository(db)
	RedisRepo := redisRepo.NewRepository(rdb)

	// Initialize application layers
	UserApp := userapp.NewUserApp(cfg, UserRepo, TradeRepo, TxRepo, RedisRepo, publisher)
	TradeApp := tradeapp.NewTradeApp(TradeRepo, publisher)

	httpTransport := transport.NewTransport(cfg, UserApp, TradeApp)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed server", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// openDB connects to MySQL and applies the pool settings.
func openDB(cfg *config.Config) (*sqlx.DB, error) {
	dsn, err := cfg.GetDSN()
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	return db, nil
}
