package trade

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"
	"time"

	"github.com/muhammadheryan/car-traders/application/ownership"
	"github.com/muhammadheryan/car-traders/constant"
	"github.com/muhammadheryan/car-traders/model"
	traderepo "github.com/muhammadheryan/car-traders/repository/trade"
	"github.com/muhammadheryan/car-traders/thirdparty/rabbitmq"
	"github.com/muhammadheryan/car-traders/utils/errors"
	"github.com/muhammadheryan/car-traders/utils/logger"
	"go.uber.org/zap"
)

type TradeApp interface {
	Home(ctx context.Context, identity *model.Identity) ([]model.TradeDetail, error)
	Search(ctx context.Context, identity *model.Identity, filter model.TradeFilter) ([]model.TradeDetail, error)
	Create(ctx context.Context, identity *model.Identity, req *model.TradeRequest) (*model.TradeEntity, error)
	Get(ctx context.Context, id uint64) (*model.TradeDetail, error)
	GetForEdit(ctx context.Context, identity *model.Identity, id uint64) (*model.TradeDetail, error)
	Update(ctx context.Context, identity *model.Identity, id uint64, req *model.TradeRequest) (*model.TradeEntity, error)
	Delete(ctx context.Context, identity *model.Identity, id uint64) (*model.TradeDetail, error)
}

type tradeAppImpl struct {
	tradeRepo traderepo.TradeRepository
	publisher *rabbitmq.Publisher
}

func NewTradeApp(tradeRepo traderepo.TradeRepository, publisher *rabbitmq.Publisher) TradeApp {
	return &tradeAppImpl{
		tradeRepo: tradeRepo,
		publisher: publisher,
	}
}

// Home lists the newest trades in the viewer's state. Anonymous visitors get
// the landing page and no trades.
func (s *tradeAppImpl) Home(ctx context.Context, identity *model.Identity) ([]model.TradeDetail, error) {
	if identity == nil {
		return []model.TradeDetail{}, nil
	}
	return s.Search(ctx, identity, model.TradeFilter{})
}

func (s *tradeAppImpl) Search(ctx context.Context, identity *model.Identity, filter model.TradeFilter) ([]model.TradeDetail, error) {
	if filter.Location == "" {
		if identity == nil {
			return nil, errors.SetCustomError(constant.ErrUnauthorize)
		}
		filter.State = identity.State
	}
	filter.Limit = constant.SearchLimit

	trades, err := s.tradeRepo.Search(ctx, filter)
	if err != nil {
		logger.Error("[Search] err tradeRepo.Search", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return trades, nil
}

func (s *tradeAppImpl) Create(ctx context.Context, identity *model.Identity, req *model.TradeRequest) (*model.TradeEntity, error) {
	if identity == nil {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}

	trade := &model.TradeEntity{
		UserID:    identity.ID,
		Available: true,
	}
	applyRequest(trade, req)

	trade, err := s.tradeRepo.Create(ctx, trade)
	if err != nil {
		logger.Error("[CreateTrade] err tradeRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	s.publish(ctx, constant.EventTradeCreated, trade.ID, trade.UserID, trade.Title)
	logger.Info("[CreateTrade] trade created", zap.Uint64("trade_id", trade.ID), zap.Uint64("user_id", trade.UserID))
	return trade, nil
}

func (s *tradeAppImpl) Get(ctx context.Context, id uint64) (*model.TradeDetail, error) {
	trade, err := s.tradeRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[GetTrade] err tradeRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if trade == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	return trade, nil
}

func (s *tradeAppImpl) GetForEdit(ctx context.Context, identity *model.Identity, id uint64) (*model.TradeDetail, error) {
	trade, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ownership.Authorize(identity, trade.UserID, ownership.View); err != nil {
		return nil, err
	}
	return trade, nil
}

func (s *tradeAppImpl) Update(ctx context.Context, identity *model.Identity, id uint64, req *model.TradeRequest) (*model.TradeEntity, error) {
	detail, err := s.GetForEdit(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	trade := detail.TradeEntity
	applyRequest(&trade, req)
	if req.Available != nil {
		trade.Available = *req.Available
	}
	trade.SetStatus()

	if err := s.tradeRepo.Update(ctx, &trade); err != nil {
		// Deleted between the read and the write.
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.SetCustomError(constant.ErrNotFound)
		}
		logger.Error("[UpdateTrade] err tradeRepo.Update", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	s.publish(ctx, constant.EventTradeUpdated, trade.ID, trade.UserID, trade.Title)
	return &trade, nil
}

func (s *tradeAppImpl) Delete(ctx context.Context, identity *model.Identity, id uint64) (*model.TradeDetail, error) {
	trade, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ownership.Authorize(identity, trade.UserID, ownership.Action); err != nil {
		return nil, err
	}

	if err := s.tradeRepo.Delete(ctx, trade.ID); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.SetCustomError(constant.ErrNotFound)
		}
		logger.Error("[DeleteTrade] err tradeRepo.Delete", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	s.publish(ctx, constant.EventTradeDeleted, trade.ID, trade.UserID, trade.Title)
	logger.Info("[DeleteTrade] trade deleted", zap.Uint64("trade_id", trade.ID))
	return trade, nil
}

func (s *tradeAppImpl) publish(ctx context.Context, event constant.EventType, tradeID, userID uint64, title string) {
	err := s.publisher.PublishTradeEvent(ctx, model.TradeEvent{
		Event:      event,
		TradeID:    tradeID,
		UserID:     userID,
		Title:      title,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		logger.Error("[PublishTradeEvent] err publisher.PublishTradeEvent", zap.String("event", string(event)), zap.String("error", err.Error()))
	}
}

// applyRequest copies the editable fields, substituting placeholders for
// blank trading_for and image.
func applyRequest(trade *model.TradeEntity, req *model.TradeRequest) {
	trade.Title = strings.TrimSpace(req.Title)
	trade.Description = nil
	if d := strings.TrimSpace(req.Description); d != "" {
		trade.Description = &d
	}
	trade.TradingFor = orDefault(req.TradingFor, constant.DefaultTradingFor)
	trade.AskingCash = req.AskingCash
	trade.OfferingCash = req.OfferingCash
	trade.ImgURL = orDefault(req.ImgURL, constant.DefaultTradeImage)
}

func orDefault(v, fallback string) string {
	if v = strings.TrimSpace(v); v == "" {
		return fallback
	}
	return v
}
