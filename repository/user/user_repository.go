package user

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/car-traders/model"
)

type SQL struct {
	conn *sqlx.DB
}

type UserRepository interface {
	Create(ctx context.Context, req *model.UserEntity) (*model.UserEntity, error)
	Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error)
	Update(ctx context.Context, req *model.UserEntity) error
	DeleteTx(ctx context.Context, tx *sqlx.Tx, id uint64) error
}

func NewUserRepository(conn *sqlx.DB) UserRepository {
	return &SQL{conn: conn}
}

const (
	insertUserQuery = `INSERT INTO users (username, password_hash, first_name, last_name, email, phone, city, state, cover_pic, profile_pic, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(6))`
	getUserBase = `SELECT id, username, password_hash, first_name, last_name, email, phone, city, state, cover_pic, profile_pic, created_at, updated_at
FROM users WHERE true`
	updateUserQuery = `UPDATE users SET first_name = ?, last_name = ?, email = ?, phone = ?, city = ?, state = ?, cover_pic = ?, profile_pic = ?, updated_at = NOW(6)
WHERE id = ?`
	deleteUserQuery = `DELETE FROM users WHERE id = ?`
)

func (s *SQL) Create(ctx context.Context, data *model.UserEntity) (*model.UserEntity, error) {
	result, err := s.conn.ExecContext(ctx, insertUserQuery,
		data.Username, data.PasswordHash, data.FirstName, data.LastName,
		data.Email, data.Phone, data.City, data.State, data.CoverPic, data.ProfilePic,
	)
	if err != nil {
		return nil, err
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	data.ID = uint64(lastID)
	return data, nil
}

func (s *SQL) Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error) {
	query, args := buildGetQuery(filter)

	var entity model.UserEntity
	if err := s.conn.QueryRowxContext(ctx, query, args...).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) Update(ctx context.Context, data *model.UserEntity) error {
	result, err := s.conn.ExecContext(ctx, updateUserQuery,
		data.FirstName, data.LastName, data.Email, data.Phone,
		data.City, data.State, data.CoverPic, data.ProfilePic, data.ID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *SQL) DeleteTx(ctx context.Context, tx *sqlx.Tx, id uint64) error {
	result, err := tx.ExecContext(ctx, deleteUserQuery, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func buildGetQuery(filter *model.UserFilter) (string, []any) {
	query := getUserBase
	args := make([]any, 0, 5)

	if filter.ID != 0 {
		query += " AND id = ?"
		args = append(args, filter.ID)
	}
	if filter.Username != "" {
		query += " AND username = ?"
		args = append(args, filter.Username)
	}
	if filter.Email != "" {
		query += " AND email = ?"
		args = append(args, filter.Email)
	}
	if filter.Phone != "" {
		query += " AND phone = ?"
		args = append(args, filter.Phone)
	}
	if filter.ExcludeID != 0 {
		query += " AND id <> ?"
		args = append(args, filter.ExcludeID)
	}
	return query + " LIMIT 1", args
}
