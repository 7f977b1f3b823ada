package main

import (
	"context"
	"fmt"

	"github.com/muhammadheryan/car-traders/cmd/config"
	"github.com/muhammadheryan/car-traders/constant"
	"github.com/muhammadheryan/car-traders/model"
	tradeRepo "github.com/muhammadheryan/car-traders/repository/trade"
	txRepo "github.com/muhammadheryan/car-traders/repository/tx"
	userRepo "github.com/muhammadheryan/car-traders/repository/user"
	"github.com/muhammadheryan/car-traders/utils/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace all data with the sample users and trades",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if err := logger.Init(cfg.Environment); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer logger.Close()

		return seed(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

type seedUser struct {
	password string
	entity   model.UserEntity
	trades   []model.TradeEntity
}

func strPtr(v string) *string { return &v }
func cash(v int64) *int64 { return &v }

var seedUsers = []seedUser{
	{
		password: "password",
		entity: model.UserEntity{
			Username: "moose", FirstName: "moose", LastName: "nassr",
			Email: "email@email.com", Phone: "7321111111", City: "Spotswood", State: "NJ",
		},
		trades: []model.TradeEntity{
			{Title: "2011 Lexus is 250c", Description: strPtr("Trading my 2011 Lexus is 250c for a 2014 Audi A4"), TradingFor: "2014 Audi A4", AskingCash: cash(700)},
			{Title: "2006 Acura MDX", Description: strPtr("Trading my 2006 Acura MDX for a 2014 Audi A4"), TradingFor: "2014 Audi A4", OfferingCash: cash(3500)},
			{Title: "2015 Kawasaki Ninja 650cc", Description: strPtr("Trading my 2015 Kawasaki Ninja 650cc for any truck"), OfferingCash: cash(1000)},
			{Title: "2014 Audi A4", Description: strPtr("Trading my 2014 Audi A4 for a 2011 Lexus is 250c"), TradingFor: "2011 Lexus is 250c"},
		},
	},
	{
		password: "password2",
		entity: model.UserEntity{
			Username: "moose2", FirstName: "moose2", LastName: "nassr2",
			Email: "email2@email2.com", Phone: "7321111112", City: "Spotswood", State: "NJ",
		},
		trades: []model.TradeEntity{
			{Title: "2002 Toyota Solara", Description: strPtr("Trading my 2002 Toyota Solara for a 2014 Audi A4"), TradingFor: "2014 Audi A4", OfferingCash: cash(6000)},
			{Title: "2014 Hyundai Elantra", Description: strPtr("Trading my 2014 Hyundai Elantra for a 2020 Mustang"), TradingFor: "2020 Mustang", OfferingCash: cash(6000)},
			{Title: "2006 Honda Pilot", Description: strPtr("Trading my 2006 Honda Pilot. I am open for trades!")},
		},
	},
	{
		password: "password3",
		entity: model.UserEntity{
			Username: "moose3", FirstName: "moose3", LastName: "nassr3",
			Email: "email3@email3.com", Phone: "7321111113", City: "San Diego", State: "CA",
		},
		trades: []model.TradeEntity{
			{Title: "2014 Audi A4", Description: strPtr("Trading my 2014 Audi A4 for a 2012 BMW i328"), TradingFor: "2012 BMW i328", AskingCash: cash(1200)},
		},
	},
}

func seed(ctx context.Context, cfg *config.Config) error {
	db, err := openDB(cfg)
	if err != nil {
		return fmt.Errorf("connect db failed: %w", err)
	}
	defer db.Close()

	users := userRepo.NewUserRepository(db)
	trades := tradeRepo.NewTradeRepository(db)
	txs := txRepo.NewTxRepository(db)

	// Wipe existing rows; trades go with their owners.
	tx, err := txs.BeginTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM trades"); err != nil {
		_ = txs.RollbackTx(tx)
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM users"); err != nil {
		_ = txs.RollbackTx(tx)
		return err
	}
	if err := txs.CommitTx(tx); err != nil {
		return err
	}

	for _, su := range seedUsers {
		hashed, err := bcrypt.GenerateFromPassword([]byte(su.password), cfg.Auth.BcryptCost)
		if err != nil {
			return err
		}

		user := su.entity
		user.PasswordHash = string(hashed)
		user.CoverPic = constant.DefaultCoverPic
		user.ProfilePic = constant.DefaultProfilePic
		created, err := users.Create(ctx, &user)
		if err != nil {
			return fmt.Errorf("create user %s: %w", user.Username, err)
		}

		for _, t := range su.trades {
			trade := t
			trade.UserID = created.ID
			trade.Available = true
			if trade.TradingFor == "" {
				trade.TradingFor = constant.DefaultTradingFor
			}
			trade.ImgURL = constant.DefaultTradeImage
			if _, err := trades.Create(ctx, &trade); err != nil {
				return fmt.Errorf("create trade %q: %w", trade.Title, err)
			}
		}
		logger.Info("seeded user", zap.String("username", created.Username), zap.Int("trades", len(su.trades)))
	}
	return nil
}
