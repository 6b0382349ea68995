package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"PetRescue/internal/images"
	"PetRescue/internal/models"

	"go.uber.org/zap"
)

const rescueCols = `rescue_id, name, phone, address, email, img_url`

func scanRescue(row *sql.Row) (*models.Rescue, error) {
	var r models.Rescue
	err := row.Scan(&r.RescueID, &r.Name, &r.Phone, &r.Address, &r.Email, &r.ImgURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetRescue looks a rescue up by primary key.
func (s *Store) GetRescue(ctx context.Context, id int64) (*models.Rescue, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+rescueCols+` FROM rescues WHERE rescue_id = $1`, id)
	return scanRescue(row)
}

// GetRescues lists every rescue for the homepage.
func (s *Store) GetRescues(ctx context.Context) ([]models.Rescue, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+rescueCols+` FROM rescues ORDER BY rescue_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Rescue
	for rows.Next() {
		var r models.Rescue
		if err := rows.Scan(&r.RescueID, &r.Name, &r.Phone, &r.Address, &r.Email, &r.ImgURL); err != nil {
			return nil, err
		}
		list = append(list, r)
	}
	return list, rows.Err()
}

// LastRescueAdded returns the rescue with the highest id, for the
// post-redirect confirmation view.
func (s *Store) LastRescueAdded(ctx context.Context) (*models.Rescue, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+rescueCols+` FROM rescues ORDER BY rescue_id DESC LIMIT 1`)
	return scanRescue(row)
}

// NewRescue carries the validated fields of a rescue-creation form.
type NewRescue struct {
	Name    string
	Phone   string
	Address string
	Email   string
}

// AddRescue inserts the rescue, stores its image under "{rescueID}.{ext}"
// and points img_url at it. The filename depends on the generated id, so
// this is a two-phase write: a crash after the insert leaves the default
// image in place, which the next successful upload overwrites.
func (s *Store) AddRescue(ctx context.Context, nr NewRescue, up images.Upload, imgs images.Store) (*models.Rescue, error) {
	ext, err := images.Ext(up.Name)
	if err != nil {
		return nil, err
	}

	var id int64
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO rescues (name, phone, address, email) VALUES ($1, $2, $3, $4) RETURNING rescue_id`,
		nr.Name, nr.Phone, nr.Address, nr.Email).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("store: insert rescue: %w", err)
	}

	key := fmt.Sprintf("%d.%s", id, ext)
	if err := imgs.Put(ctx, key, up.File); err != nil {
		return nil, fmt.Errorf("store: store rescue image: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE rescues SET img_url = $1 WHERE rescue_id = $2`, "/uploads/"+key, id); err != nil {
		return nil, fmt.Errorf("store: set rescue image: %w", err)
	}
	s.log.Info("rescue added", zap.Int64("rescue_id", id), zap.String("name", nr.Name))
	return s.GetRescue(ctx, id)
}
