package constant

const (
	DefaultTradingFor = "Open to trades"
	DefaultTradeImage = "/static/images/default-car.png"
	DefaultCoverPic   = "/static/images/default_cover.jpg"
	DefaultProfilePic = "/static/images/default_profile.jpg"

	// SearchLimit caps every listing query; rows past it are unreachable.
	SearchLimit = 100
)

type TradeStatus string

const (
	TradeStatusAvailable TradeStatus = "available"
	TradeStatusSold      TradeStatus = "sold"
)

type EventType string

const (
	EventTradeCreated EventType = "trade.created"
	EventTradeUpdated EventType = "trade.updated"
	EventTradeDeleted EventType = "trade.deleted"
	EventUserDeleted  EventType = "user.deleted"
)
