package model

import (
	"net/url"
	"strings"
	"time"

	"github.com/muhammadheryan/car-traders/constant"
)

// TradeEntity represents the trades table entity
type TradeEntity struct {
	ID           uint64               `db:"id" json:"id"`
	Title        string               `db:"title" json:"title"`
	Description  *string              `db:"description" json:"description,omitempty"`
	TradingFor   string               `db:"trading_for" json:"trading_for"`
	AskingCash   *int64               `db:"asking_cash" json:"asking_cash,omitempty"`
	OfferingCash *int64               `db:"offering_cash" json:"offering_cash,omitempty"`
	Available    bool                 `db:"available" json:"available"`
	ImgURL       string               `db:"img_url" json:"img_url"`
	CreatedAt    time.Time            `db:"created_at" json:"created_at"`
	UserID       uint64               `db:"user_id" json:"user_id"`
	Status       constant.TradeStatus `db:"-" json:"status"`
}

// SetStatus derives the display status from the availability flag.
func (t *TradeEntity) SetStatus() {
	if t.Available {
		t.Status = constant.TradeStatusAvailable
		return
	}
	t.Status = constant.TradeStatusSold
}

// TradeDetail is a trade joined with its owner.
type TradeDetail struct {
	TradeEntity
	OwnerUsername  string `db:"owner_username" json:"owner_username"`
	OwnerFirstName string `db:"owner_first_name" json:"owner_first_name"`
	OwnerCity      string `db:"owner_city" json:"owner_city"`
	OwnerState     string `db:"owner_state" json:"owner_state"`
}

// TradeRequest carries the mutable trade fields. Available is only honored
// on edit; nil keeps the stored value.
type TradeRequest struct {
	Title        string `json:"title" form:"title" validate:"required,max=70"`
	Description  string `json:"description" form:"description"`
	TradingFor   string `json:"trading_for" form:"trading_for" validate:"max=50"`
	AskingCash   *int64 `json:"asking_cash" form:"asking_cash" validate:"omitempty,min=0"`
	OfferingCash *int64 `json:"offering_cash" form:"offering_cash" validate:"omitempty,min=0"`
	ImgURL       string `json:"img_url" form:"img_url"`
	Available    *bool  `json:"available" form:"available"`
}

// TradeFilter drives the listing query. State is the implicit geographic
// scope and only applies when Location is blank.
type TradeFilter struct {
	State      string
	Location   string
	Title      string
	TradingFor string
	Limit      int
}

var searchParams = map[string]func(f *TradeFilter, v string){
	"location":    func(f *TradeFilter, v string) { f.Location = v },
	"title":       func(f *TradeFilter, v string) { f.Title = v },
	"trading_for": func(f *TradeFilter, v string) { f.TradingFor = v },
}

// ParseTradeFilter reads the recognized search parameters from a query
// string. Unknown parameters are ignored and blank values count as absent.
// Non-blank values are kept verbatim, surrounding whitespace included.
func ParseTradeFilter(values url.Values) TradeFilter {
	var f TradeFilter
	for name, set := range searchParams {
		if v := values.Get(name); strings.TrimSpace(v) != "" {
			set(&f, v)
		}
	}
	return f
}
