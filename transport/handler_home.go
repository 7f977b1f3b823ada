package transport

import (
	"net/http"

	"github.com/muhammadheryan/car-traders/model"
)

// Home handler
// @Summary Home page
// @Description Landing page for visitors; the 100 newest trades in the viewer's state once logged in
// @Tags Trades
// @Produce json
// @Success 200 {object} View
// @Router / [get]
func (s *RestHandler) Home(w http.ResponseWriter, req *Request) {
	if req.Identity == nil {
		s.render(w, req, http.StatusOK, viewHomeAnon, nil, nil)
		return
	}

	trades, err := s.TradeApp.Home(req.Context(), req.Identity)
	if err != nil {
		s.fail(w, req, err)
		return
	}

	s.render(w, req, http.StatusOK, viewHome, map[string]any{"trades": trades}, nil)
}

// Search handler
// @Summary Search trades
// @Description Filters by owner location, title and trading_for. Without a location the viewer's state is used.
// @Tags Trades
// @Produce json
// @Param location query string false "City, state substring"
// @Param title query string false "Title substring"
// @Param trading_for query string false "Trading for substring"
// @Success 200 {object} View
// @Failure 303 "Redirect to /login"
// @Router /search [get]
func (s *RestHandler) Search(w http.ResponseWriter, req *Request) {
	filter := model.ParseTradeFilter(req.URL.Query())

	trades, err := s.TradeApp.Search(req.Context(), req.Identity, filter)
	if err != nil {
		s.fail(w, req, err)
		return
	}

	s.render(w, req, http.StatusOK, viewHome, map[string]any{"trades": trades}, nil)
}
