package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"PetRescue/internal/models"
)

func (s *Store) lookupID(ctx context.Context, query, name string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, query, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLookup, name)
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GenderID resolves a gender name to its surrogate id.
func (s *Store) GenderID(ctx context.Context, name string) (int64, error) {
	return s.lookupID(ctx, `SELECT gender_id FROM genders WHERE gender_type = $1`, name)
}

func (s *Store) AgeID(ctx context.Context, name string) (int64, error) {
	return s.lookupID(ctx, `SELECT age_id FROM ages WHERE age_category = $1`, name)
}

func (s *Store) SizeID(ctx context.Context, name string) (int64, error) {
	return s.lookupID(ctx, `SELECT size_id FROM sizes WHERE size_category = $1`, name)
}

func (s *Store) BreedID(ctx context.Context, name string) (int64, error) {
	return s.lookupID(ctx, `SELECT breed_id FROM breeds WHERE breed_type = $1`, name)
}

// Genders lists all gender rows, for form dropdowns.
func (s *Store) Genders(ctx context.Context) ([]models.Gender, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT gender_id, gender_type FROM genders ORDER BY gender_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Gender
	for rows.Next() {
		var g models.Gender
		if err := rows.Scan(&g.GenderID, &g.GenderType); err != nil {
			return nil, err
		}
		list = append(list, g)
	}
	return list, rows.Err()
}

func (s *Store) Ages(ctx context.Context) ([]models.Age, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT age_id, age_category FROM ages ORDER BY age_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Age
	for rows.Next() {
		var a models.Age
		if err := rows.Scan(&a.AgeID, &a.AgeCategory); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (s *Store) Sizes(ctx context.Context) ([]models.Size, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT size_id, size_category FROM sizes ORDER BY size_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Size
	for rows.Next() {
		var sz models.Size
		if err := rows.Scan(&sz.SizeID, &sz.SizeCategory); err != nil {
			return nil, err
		}
		list = append(list, sz)
	}
	return list, rows.Err()
}

func (s *Store) Breeds(ctx context.Context) ([]models.Breed, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT breed_id, breed_type, species_id FROM breeds ORDER BY breed_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Breed
	for rows.Next() {
		var b models.Breed
		var speciesID sql.NullInt64
		if err := rows.Scan(&b.BreedID, &b.BreedType, &speciesID); err != nil {
			return nil, err
		}
		b.SpeciesID = nullableID(speciesID)
		list = append(list, b)
	}
	return list, rows.Err()
}
