package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"PetRescue/internal/images"
	"PetRescue/internal/models"

	"go.uber.org/zap"
)

// AvailablePageSize caps the available-for-adoption listing; the
// /handle-loading endpoint pages through further results.
const AvailablePageSize = 10

// GetAnimal fetches an animal joined with its lookup names. The joins are
// outer so an unset foreign key yields a nil field, not a missing row.
func (s *Store) GetAnimal(ctx context.Context, id int64) (*models.AnimalDetails, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT a.animal_id, a.name, a.img_url, a.bio, a.rescue_id,
		       g.gender_type, ag.age_category, sz.size_category, b.breed_type
		FROM animals a
		LEFT JOIN genders g ON g.gender_id = a.gender_id
		LEFT JOIN ages ag ON ag.age_id = a.age_id
		LEFT JOIN sizes sz ON sz.size_id = a.size_id
		LEFT JOIN breeds b ON b.breed_id = a.breed_id
		WHERE a.animal_id = $1`, id)

	var d models.AnimalDetails
	var gender, age, size, breed sql.NullString
	err := row.Scan(&d.AnimalID, &d.Name, &d.ImgURL, &d.Bio, &d.RescueID,
		&gender, &age, &size, &breed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	d.Gender = nullableString(gender)
	d.Age = nullableString(age)
	d.Size = nullableString(size)
	d.Breed = nullableString(breed)
	return &d, nil
}

// GetAvailableAnimals returns the first page of a rescue's adoptable
// animals: not adopted, visible, ordered by id.
func (s *Store) GetAvailableAnimals(ctx context.Context, rescueID int64) ([]models.Animal, error) {
	return s.GetAvailableAnimalsPage(ctx, rescueID, 0)
}

// GetAvailableAnimalsPage returns page N (0-based) of the same listing.
func (s *Store) GetAvailableAnimalsPage(ctx context.Context, rescueID int64, page int) ([]models.Animal, error) {
	if page < 0 {
		page = 0
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT animal_id, name, img_url, bio, is_adopted, is_visible,
		       rescue_id, gender_id, age_id, size_id, breed_id
		FROM animals
		WHERE rescue_id = $1 AND NOT is_adopted AND is_visible
		ORDER BY animal_id
		LIMIT $2 OFFSET $3`, rescueID, AvailablePageSize, page*AvailablePageSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Animal
	for rows.Next() {
		var a models.Animal
		var genderID, ageID, sizeID, breedID sql.NullInt64
		if err := rows.Scan(&a.AnimalID, &a.Name, &a.ImgURL, &a.Bio, &a.IsAdopted, &a.IsVisible,
			&a.RescueID, &genderID, &ageID, &sizeID, &breedID); err != nil {
			return nil, err
		}
		a.GenderID = nullableID(genderID)
		a.AgeID = nullableID(ageID)
		a.SizeID = nullableID(sizeID)
		a.BreedID = nullableID(breedID)
		list = append(list, a)
	}
	return list, rows.Err()
}

// NewAnimal carries the fields of an add-animal form. The descriptive
// attributes are the human-readable names submitted by the form; empty
// means "not set".
type NewAnimal struct {
	Name     string
	Bio      string
	Gender   string
	Age      string
	Size     string
	Breed    string
	RescueID int64
}

// resolveLookups maps the submitted names to lookup ids. An unmatched
// name fails the whole submission with ErrUnknownLookup.
func (s *Store) resolveLookups(ctx context.Context, na NewAnimal) (gender, age, size, breed *int64, err error) {
	resolve := func(name string, fn func(context.Context, string) (int64, error)) (*int64, error) {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, nil
		}
		id, err := fn(ctx, name)
		if err != nil {
			return nil, err
		}
		return &id, nil
	}
	if gender, err = resolve(na.Gender, s.GenderID); err != nil {
		return nil, nil, nil, nil, err
	}
	if age, err = resolve(na.Age, s.AgeID); err != nil {
		return nil, nil, nil, nil, err
	}
	if size, err = resolve(na.Size, s.SizeID); err != nil {
		return nil, nil, nil, nil, err
	}
	if breed, err = resolve(na.Breed, s.BreedID); err != nil {
		return nil, nil, nil, nil, err
	}
	return gender, age, size, breed, nil
}

// AddAnimal validates the upload, resolves the lookup names, inserts the
// row, then stores the image under "{rescueID}-{animalID}.{ext}" and
// points img_url at it. Same two-phase write as AddRescue: the filename
// needs the generated id, so the image lands after the insert.
func (s *Store) AddAnimal(ctx context.Context, na NewAnimal, up images.Upload, imgs images.Store) (*models.Animal, error) {
	ext, err := images.Ext(up.Name)
	if err != nil {
		return nil, err
	}
	genderID, ageID, sizeID, breedID, err := s.resolveLookups(ctx, na)
	if err != nil {
		return nil, err
	}

	var id int64
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO animals (name, bio, rescue_id, gender_id, age_id, size_id, breed_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING animal_id`,
		na.Name, na.Bio, na.RescueID, genderID, ageID, sizeID, breedID).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("store: insert animal: %w", err)
	}

	key := fmt.Sprintf("%d-%d.%s", na.RescueID, id, ext)
	if err := imgs.Put(ctx, key, up.File); err != nil {
		return nil, fmt.Errorf("store: store animal image: %w", err)
	}
	imgURL := "/uploads/" + key
	if _, err := s.db.ExecContext(ctx,
		`UPDATE animals SET img_url = $1 WHERE animal_id = $2`, imgURL, id); err != nil {
		return nil, fmt.Errorf("store: set animal image: %w", err)
	}
	s.log.Info("animal added",
		zap.Int64("animal_id", id),
		zap.Int64("rescue_id", na.RescueID),
		zap.String("name", na.Name))

	return &models.Animal{
		AnimalID:  id,
		Name:      na.Name,
		ImgURL:    imgURL,
		Bio:       na.Bio,
		IsVisible: true,
		RescueID:  na.RescueID,
		GenderID:  genderID,
		AgeID:     ageID,
		SizeID:    sizeID,
		BreedID:   breedID,
	}, nil
}
