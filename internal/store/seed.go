package store

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// LoadDir bulk-loads the pipe-delimited fixture files from dir, one file
// per table, in dependency order: lookup tables, then rescues, animals,
// admins. The leading id column of each line is ignored; rows take ids in
// file order from the autoincrement column, which is what the foreign-key
// columns in the fixtures refer to.
func (s *Store) LoadDir(ctx context.Context, dir string) error {
	loaders := []struct {
		file   string
		fields int
		insert func(context.Context, []string) error
	}{
		{"u.species", 2, s.seedSpecies},
		{"u.breeds", 3, s.seedBreed},
		{"u.age", 2, s.seedAge},
		{"u.gender", 2, s.seedGender},
		{"u.size", 2, s.seedSize},
		{"u.rescue", 5, s.seedRescue},
		{"u.animal", 7, s.seedAnimal},
		{"u.admin", 4, s.seedAdmin},
	}
	for _, l := range loaders {
		if err := s.loadFile(ctx, filepath.Join(dir, l.file), l.fields, l.insert); err != nil {
			return err
		}
	}
	s.log.Info("seed: fixtures loaded", zap.String("dir", dir))
	return nil
}

func (s *Store) loadFile(ctx context.Context, path string, fields int, insert func(context.Context, []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		row := strings.TrimRight(sc.Text(), "\r\n")
		if strings.TrimSpace(row) == "" {
			continue
		}
		parts := strings.Split(row, "|")
		if len(parts) != fields {
			return fmt.Errorf("seed: %s:%d: want %d fields, got %d", path, line, fields, len(parts))
		}
		if err := insert(ctx, parts); err != nil {
			return fmt.Errorf("seed: %s:%d: %w", path, line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("seed: read %s: %w", path, err)
	}
	return nil
}

// fkID parses a foreign-key column; empty means NULL.
func fkID(field string) (*int64, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(field, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad id %q", field)
	}
	return &id, nil
}

func (s *Store) seedSpecies(ctx context.Context, p []string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO species (species_type) VALUES ($1)`, p[1])
	return err
}

func (s *Store) seedBreed(ctx context.Context, p []string) error {
	speciesID, err := fkID(p[2])
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO breeds (breed_type, species_id) VALUES ($1, $2)`, p[1], speciesID)
	return err
}

func (s *Store) seedAge(ctx context.Context, p []string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ages (age_category) VALUES ($1)`, p[1])
	return err
}

func (s *Store) seedGender(ctx context.Context, p []string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO genders (gender_type) VALUES ($1)`, p[1])
	return err
}

func (s *Store) seedSize(ctx context.Context, p []string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sizes (size_category) VALUES ($1)`, p[1])
	return err
}

func (s *Store) seedRescue(ctx context.Context, p []string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO rescues (name, phone, address, email) VALUES ($1, $2, $3, $4)`,
		p[1], p[2], p[3], p[4])
	return err
}

func (s *Store) seedAnimal(ctx context.Context, p []string) error {
	rescueID, err := fkID(p[2])
	if err != nil {
		return err
	}
	if rescueID == nil {
		return fmt.Errorf("animal %q without rescue", p[1])
	}
	genderID, err := fkID(p[3])
	if err != nil {
		return err
	}
	ageID, err := fkID(p[4])
	if err != nil {
		return err
	}
	sizeID, err := fkID(p[5])
	if err != nil {
		return err
	}
	breedID, err := fkID(p[6])
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO animals (name, rescue_id, gender_id, age_id, size_id, breed_id)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p[1], *rescueID, genderID, ageID, sizeID, breedID)
	return err
}

// seedAdmin hashes the fixture's plaintext password before the insert;
// plaintext never reaches the table.
func (s *Store) seedAdmin(ctx context.Context, p []string) error {
	rescueID, err := fkID(p[3])
	if err != nil {
		return err
	}
	_, err = s.CreateAdmin(ctx, p[1], p[2], rescueID)
	return err
}
