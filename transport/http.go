package transport

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	tradeapp "github.com/muhammadheryan/car-traders/application/trade"
	userapp "github.com/muhammadheryan/car-traders/application/user"
	"github.com/muhammadheryan/car-traders/cmd/config"
	"github.com/muhammadheryan/car-traders/constant"
	"github.com/muhammadheryan/car-traders/utils/errors"
	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	viewHomeAnon      = "home-anon"
	viewHome          = "home"
	viewSignup        = "users/signup"
	viewLogin         = "users/login"
	viewProfile       = "users/profile"
	viewUserEdit      = "users/edit"
	viewTradeAddForm  = "trades/add-form"
	viewTrade         = "trades/trade"
	viewTradeEditForm = "trades/edit-form"
)

type RestHandler struct {
	UserApp  userapp.UserApp
	TradeApp tradeapp.TradeApp

	cookieSecure bool
	sessionTTL   time.Duration
}

func NewTransport(cfg *config.Config, UserApp userapp.UserApp, TradeApp tradeapp.TradeApp) http.Handler {
	mux := mux.NewRouter()

	rh := &RestHandler{
		UserApp:      UserApp,
		TradeApp:     TradeApp,
		cookieSecure: cfg.Auth.CookieSecure,
		sessionTTL:   cfg.Auth.SessionExpTime,
	}

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	mux.HandleFunc("/healthz", rh.Healthz).Methods(http.MethodGet)

	// Public routes
	mux.HandleFunc("/", rh.public(rh.Home)).Methods(http.MethodGet)
	mux.HandleFunc("/signup", rh.public(rh.Signup)).Methods(http.MethodGet, http.MethodPost)
	mux.HandleFunc("/login", rh.public(rh.Login)).Methods(http.MethodGet, http.MethodPost)
	mux.HandleFunc("/logout", rh.public(rh.Logout)).Methods(http.MethodPost)

	// protected routes
	mux.HandleFunc("/search", rh.protected(rh.Search)).Methods(http.MethodGet)
	mux.HandleFunc("/trades/new", rh.protected(rh.AddTrade)).Methods(http.MethodGet, http.MethodPost)
	mux.HandleFunc("/trades/{id:[0-9]+}", rh.protected(rh.GetTrade)).Methods(http.MethodGet)
	mux.HandleFunc("/trades/{id:[0-9]+}/edit", rh.protected(rh.EditTrade)).Methods(http.MethodGet, http.MethodPost)
	mux.HandleFunc("/trades/{id:[0-9]+}/delete", rh.protected(rh.DeleteTrade)).Methods(http.MethodPost)
	mux.HandleFunc("/{id:[0-9]+}", rh.protected(rh.Profile)).Methods(http.MethodGet)
	mux.HandleFunc("/{id:[0-9]+}/edit", rh.protected(rh.EditUser)).Methods(http.MethodGet, http.MethodPost)
	mux.HandleFunc("/{id:[0-9]+}/delete", rh.protected(rh.DeleteUser)).Methods(http.MethodPost)

	// middleware
	mux.Use(LoggingMiddleware())
	mux.Use(SessionMiddleware(UserApp))

	return mux
}

func (s *RestHandler) public(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fn(w, newRequest(r))
	}
}

// protected sends anonymous visitors to the login page.
func (s *RestHandler) protected(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := newRequest(r)
		if req.Identity == nil {
			s.fail(w, req, errors.SetCustomError(constant.ErrUnauthorize))
			return
		}
		fn(w, req)
	}
}

// Healthz handler
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func (s *RestHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string]string{"status": "ok"})
}

// pathID reads the numeric {id} route variable.
func pathID(req *Request) (uint64, error) {
	id, err := strconv.ParseUint(mux.Vars(req.Request)["id"], 10, 64)
	if err != nil {
		return 0, errors.SetCustomError(constant.ErrNotFound)
	}
	return id, nil
}
