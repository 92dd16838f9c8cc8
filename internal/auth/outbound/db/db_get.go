package db

import (
	"context"

	"github.com/kodefy/authstep/internal/auth/entity"
)

const userColumns = `id, email, password_hash, twofa_secret, twofa_enabled, created_at, updated_at`

func (s *DB) GetUserByEmail(ctx context.Context, email string) (user *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByEmail")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)

	var u entity.User
	if err = s.mapError(row.Scan(
		&u.ID, &u.Email, &u.Password, &u.TOTPSecret, &u.TOTPEnabled, &u.CreatedAt, &u.UpdatedAt,
	)); err != nil {
		return nil, err
	}

	return &u, nil
}

func (s *DB) GetUserByID(ctx context.Context, id int64) (user *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	var u entity.User
	if err = s.mapError(row.Scan(
		&u.ID, &u.Email, &u.Password, &u.TOTPSecret, &u.TOTPEnabled, &u.CreatedAt, &u.UpdatedAt,
	)); err != nil {
		return nil, err
	}

	return &u, nil
}
