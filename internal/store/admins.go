package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"PetRescue/internal/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const adminCols = `admin_id, email, password_hash, rescue_id`

func scanAdmin(row *sql.Row) (*models.Admin, error) {
	var a models.Admin
	var rescueID sql.NullInt64
	err := row.Scan(&a.AdminID, &a.Email, &a.PasswordHash, &rescueID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	a.RescueID = nullableID(rescueID)
	return &a, nil
}

func (s *Store) GetAdminByID(ctx context.Context, id int64) (*models.Admin, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+adminCols+` FROM admins WHERE admin_id = $1`, id)
	return scanAdmin(row)
}

// GetAdminByEmail resolves the session's current_admin value to an account.
func (s *Store) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+adminCols+` FROM admins WHERE email = $1`, email)
	return scanAdmin(row)
}

// Authenticate returns the admin iff an account with this email exists and
// the password matches its bcrypt hash. Unknown account and wrong password
// both come back as ErrAuthFailed; only the debug log tells them apart.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*models.Admin, error) {
	a, err := s.GetAdminByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		s.log.Debug("auth: unknown account", zap.String("email", email))
		return nil, ErrAuthFailed
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		s.log.Debug("auth: password mismatch", zap.String("email", email))
		return nil, ErrAuthFailed
	}
	return a, nil
}

// CreateAdmin inserts an account with a bcrypt-hashed password. There is
// no public signup flow; this serves the seed loader and operators.
func (s *Store) CreateAdmin(ctx context.Context, email, password string, rescueID *int64) (*models.Admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("store: hash password: %w", err)
	}
	var id int64
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO admins (email, password_hash, rescue_id) VALUES ($1, $2, $3) RETURNING admin_id`,
		email, string(hash), rescueID).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("store: insert admin: %w", err)
	}
	return s.GetAdminByID(ctx, id)
}

// SetAdminRescue associates the admin with their freshly created rescue.
func (s *Store) SetAdminRescue(ctx context.Context, adminID, rescueID int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE admins SET rescue_id = $1 WHERE admin_id = $2`, rescueID, adminID)
	if err != nil {
		return fmt.Errorf("store: set admin rescue: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// LastAdminAdded returns the admin with the highest id.
func (s *Store) LastAdminAdded(ctx context.Context) (*models.Admin, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+adminCols+` FROM admins ORDER BY admin_id DESC LIMIT 1`)
	return scanAdmin(row)
}
