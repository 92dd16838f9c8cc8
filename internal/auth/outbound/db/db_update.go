package db

import (
	"context"

	"github.com/kodefy/authstep/internal/pkg/goerror"
)

// UpdateUserTOTP overwrites the stored secret and enabled flag in a single
// statement, so a reader never observes the flag set without its secret.
func (s *DB) UpdateUserTOTP(ctx context.Context, id int64, secret []byte, enabled bool) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateUserTOTP")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`UPDATE users SET twofa_secret = $1, twofa_enabled = $2, updated_at = now() WHERE id = $3`,
		secret, enabled, id,
	)
	if err != nil {
		return s.mapError(err)
	}

	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}
