package db

import (
	"context"

	"github.com/kodefy/authstep/internal/auth/entity"
)

func (s *DB) CreateUser(ctx context.Context, in entity.NewUser) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3)`,
		in.ID, in.Email, in.Password,
	)

	return s.mapError(err)
}
