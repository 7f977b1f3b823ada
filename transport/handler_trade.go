package transport

import (
	"fmt"
	"net/http"

	"github.com/muhammadheryan/car-traders/constant"
	"github.com/muhammadheryan/car-traders/model"
	"github.com/muhammadheryan/car-traders/utils/errors"
)

// AddTrade handler
// @Summary Add trade
// @Tags Trades
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param request body model.TradeRequest false "Trade form"
// @Success 200 {object} View
// @Success 303 "Redirect to the owner's profile"
// @Failure 400 {object} View
// @Router /trades/new [get]
// @Router /trades/new [post]
func (s *RestHandler) AddTrade(w http.ResponseWriter, req *Request) {
	if req.Method == http.MethodGet {
		s.render(w, req, http.StatusOK, viewTradeAddForm, map[string]any{"form": model.TradeRequest{}}, nil)
		return
	}

	var in model.TradeRequest
	fieldErrors, err := decodeInput(req.Request, &in)
	if err != nil {
		s.fail(w, req, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if fieldErrors != nil {
		s.render(w, req, http.StatusBadRequest, viewTradeAddForm, map[string]any{"form": in}, fieldErrors)
		return
	}

	if _, err := s.TradeApp.Create(req.Context(), req.Identity, &in); err != nil {
		s.fail(w, req, err)
		return
	}

	req.Flash(constant.NoticeSuccess, "Successfully added new trade")
	s.redirect(w, req, fmt.Sprintf("/%d", req.Identity.ID))
}

// GetTrade handler
// @Summary Trade detail
// @Description can_edit is true only for the trade's owner
// @Tags Trades
// @Produce json
// @Param id path int true "Trade ID"
// @Success 200 {object} View
// @Failure 404 {object} errorResponse
// @Router /trades/{id} [get]
func (s *RestHandler) GetTrade(w http.ResponseWriter, req *Request) {
	id, err := pathID(req)
	if err != nil {
		s.fail(w, req, err)
		return
	}

	trade, err := s.TradeApp.Get(req.Context(), id)
	if err != nil {
		s.fail(w, req, err)
		return
	}

	s.render(w, req, http.StatusOK, viewTrade, map[string]any{
		"trade":    trade,
		"can_edit": req.owns(trade.UserID),
	}, nil)
}

// EditTrade handler
// @Summary Edit trade
// @Description Only the owner may view the form or submit it; available=False marks the trade sold
// @Tags Trades
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param id path int true "Trade ID"
// @Param request body model.TradeRequest false "Trade form"
// @Success 200 {object} View
// @Success 303 "Redirect to /trades/{id}"
// @Failure 400 {object} View
// @Failure 404 {object} errorResponse
// @Router /trades/{id}/edit [get]
// @Router /trades/{id}/edit [post]
func (s *RestHandler) EditTrade(w http.ResponseWriter, req *Request) {
	id, err := pathID(req)
	if err != nil {
		s.fail(w, req, err)
		return
	}

	trade, err := s.TradeApp.GetForEdit(req.Context(), req.Identity, id)
	if err != nil {
		s.fail(w, req, err)
		return
	}

	if req.Method == http.MethodGet {
		s.render(w, req, http.StatusOK, viewTradeEditForm, map[string]any{
			"trade": trade,
			"form":  tradeForm(trade),
		}, nil)
		return
	}

	var in model.TradeRequest
	fieldErrors, err := decodeInput(req.Request, &in)
	if err != nil {
		s.fail(w, req, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if fieldErrors != nil {
		s.render(w, req, http.StatusBadRequest, viewTradeEditForm, map[string]any{"trade": trade, "form": in}, fieldErrors)
		return
	}

	updated, err := s.TradeApp.Update(req.Context(), req.Identity, id, &in)
	if err != nil {
		s.fail(w, req, err)
		return
	}

	req.Flash(constant.NoticeSuccess, "Successfully updated trade")
	s.redirect(w, req, fmt.Sprintf("/trades/%d", updated.ID))
}

// DeleteTrade handler
// @Summary Delete trade
// @Tags Trades
// @Param id path int true "Trade ID"
// @Success 303 "Redirect to the owner's profile"
// @Failure 404 {object} errorResponse
// @Router /trades/{id}/delete [post]
func (s *RestHandler) DeleteTrade(w http.ResponseWriter, req *Request) {
	id, err := pathID(req)
	if err != nil {
		s.fail(w, req, err)
		return
	}

	trade, err := s.TradeApp.Delete(req.Context(), req.Identity, id)
	if err != nil {
		s.fail(w, req, err)
		return
	}

	req.Flash(constant.NoticeInfo, "Trade successfully deleted")
	s.redirect(w, req, fmt.Sprintf("/%d", trade.UserID))
}

func tradeForm(trade *model.TradeDetail) model.TradeRequest {
	form := model.TradeRequest{
		Title:        trade.Title,
		TradingFor:   trade.TradingFor,
		AskingCash:   trade.AskingCash,
		OfferingCash: trade.OfferingCash,
		ImgURL:       trade.ImgURL,
	}
	if trade.Description != nil {
		form.Description = *trade.Description
	}
	available := trade.Available
	form.Available = &available
	return form
}
