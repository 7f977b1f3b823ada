package trade

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/car-traders/constant"
	"github.com/muhammadheryan/car-traders/model"
)

type SQL struct {
	conn *sqlx.DB
}

type TradeRepository interface {
	Create(ctx context.Context, req *model.TradeEntity) (*model.TradeEntity, error)
	GetByID(ctx context.Context, id uint64) (*model.TradeDetail, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.TradeDetail, error)
	Search(ctx context.Context, filter model.TradeFilter) ([]model.TradeDetail, error)
	Update(ctx context.Context, req *model.TradeEntity) error
	Delete(ctx context.Context, id uint64) error
	DeleteByUserTx(ctx context.Context, tx *sqlx.Tx, userID uint64) (int64, error)
}

func NewTradeRepository(conn *sqlx.DB) TradeRepository {
	return &SQL{conn: conn}
}

const (
	insertTradeQuery = `INSERT INTO trades (title, description, trading_for, asking_cash, offering_cash, available, img_url, user_id, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(6))`

	selectTradeDetail = `SELECT t.id, t.title, t.description, t.trading_for, t.asking_cash, t.offering_cash, t.available, t.img_url, t.created_at, t.user_id,
u.username AS owner_username, u.first_name AS owner_first_name, u.city AS owner_city, u.state AS owner_state
FROM trades t
JOIN users u ON u.id = t.user_id
WHERE true`

	orderByRecency = ` ORDER BY t.created_at DESC, t.id DESC`

	updateTradeQuery = `UPDATE trades SET title = ?, description = ?, trading_for = ?, asking_cash = ?, offering_cash = ?, available = ?, img_url = ?
WHERE id = ?`
	deleteTradeQuery        = `DELETE FROM trades WHERE id = ?`
	deleteTradesByUserQuery = `DELETE FROM trades WHERE user_id = ?`
)

// locationExpr is the owner's location as displayed, e.g. "Spotswood, NJ, USA".
const locationExpr = `LOWER(CONCAT(u.city, ', ', u.state, ', USA'))`

// substringFilters lists the trade columns a search may match against,
// keyed to the filter field that supplies the value.
var substringFilters = []struct {
	column string
	value  func(f model.TradeFilter) string
}{
	{column: "t.title", value: func(f model.TradeFilter) string { return f.Title }},
	{column: "t.trading_for", value: func(f model.TradeFilter) string { return f.TradingFor }},
}

func (s *SQL) Create(ctx context.Context, data *model.TradeEntity) (*model.TradeEntity, error) {
	result, err := s.conn.ExecContext(ctx, insertTradeQuery,
		data.Title, data.Description, data.TradingFor, data.AskingCash, data.OfferingCash,
		data.Available, data.ImgURL, data.UserID,
	)
	if err != nil {
		return nil, err
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	data.ID = uint64(lastID)
	data.SetStatus()
	return data, nil
}

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.TradeDetail, error) {
	var detail model.TradeDetail
	if err := s.conn.QueryRowxContext(ctx, selectTradeDetail+" AND t.id = ?", id).StructScan(&detail); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	detail.SetStatus()
	return &detail, nil
}

func (s *SQL) ListByUser(ctx context.Context, userID uint64) ([]model.TradeDetail, error) {
	return s.list(ctx, selectTradeDetail+" AND t.user_id = ?"+orderByRecency, userID)
}

func (s *SQL) Search(ctx context.Context, filter model.TradeFilter) ([]model.TradeDetail, error) {
	query, args := buildSearchQuery(filter)
	return s.list(ctx, query, args...)
}

func (s *SQL) Update(ctx context.Context, data *model.TradeEntity) error {
	result, err := s.conn.ExecContext(ctx, updateTradeQuery,
		data.Title, data.Description, data.TradingFor, data.AskingCash, data.OfferingCash,
		data.Available, data.ImgURL, data.ID,
	)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (s *SQL) Delete(ctx context.Context, id uint64) error {
	result, err := s.conn.ExecContext(ctx, deleteTradeQuery, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (s *SQL) DeleteByUserTx(ctx context.Context, tx *sqlx.Tx, userID uint64) (int64, error) {
	result, err := tx.ExecContext(ctx, deleteTradesByUserQuery, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (s *SQL) list(ctx context.Context, query string, args ...any) ([]model.TradeDetail, error) {
	rows, err := s.conn.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.TradeDetail, 0)
	for rows.Next() {
		var it model.TradeDetail
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		it.SetStatus()
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// buildSearchQuery turns a filter into one bounded, recency-ordered query.
// A location replaces the implicit state scope; every other non-blank
// field adds a case-insensitive substring match. All conditions are ANDed.
func buildSearchQuery(filter model.TradeFilter) (string, []any) {
	query := selectTradeDetail
	args := make([]any, 0, 4)

	if filter.Location != "" {
		query += " AND " + locationExpr + " LIKE ?"
		args = append(args, containsPattern(filter.Location))
	} else {
		query += " AND u.state = ?"
		args = append(args, filter.State)
	}

	for _, f := range substringFilters {
		v := f.value(filter)
		if v == "" {
			continue
		}
		query += " AND LOWER(" + f.column + ") LIKE ?"
		args = append(args, containsPattern(v))
	}

	limit := filter.Limit
	if limit <= 0 || limit > constant.SearchLimit {
		limit = constant.SearchLimit
	}
	query += orderByRecency + " LIMIT ?"
	args = append(args, limit)

	return query, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching v as a literal,
// lower-cased substring.
func containsPattern(v string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(v)) + "%"
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
