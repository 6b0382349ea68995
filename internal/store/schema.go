package store

import "fmt"

// schema returns the table definitions in dependency order. The only
// dialect difference is the autoincrement primary key column; queries use
// $N placeholders, which both drivers accept.
func (s *Store) schema() []string {
	pk := "SERIAL PRIMARY KEY"
	if s.driver == "sqlite" {
		pk = "INTEGER PRIMARY KEY AUTOINCREMENT"
	}
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS species (
			species_id %s,
			species_type TEXT NOT NULL
		)`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS breeds (
			breed_id %s,
			breed_type TEXT NOT NULL,
			species_id INTEGER REFERENCES species (species_id)
		)`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS ages (
			age_id %s,
			age_category TEXT NOT NULL
		)`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS genders (
			gender_id %s,
			gender_type TEXT NOT NULL
		)`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS sizes (
			size_id %s,
			size_category TEXT NOT NULL
		)`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS rescues (
			rescue_id %s,
			name TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			img_url TEXT NOT NULL DEFAULT '/static/images/rescue.png'
		)`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS animals (
			animal_id %s,
			name TEXT NOT NULL,
			img_url TEXT NOT NULL DEFAULT '/static/images/dog.png',
			bio TEXT NOT NULL DEFAULT '',
			is_adopted BOOLEAN NOT NULL DEFAULT FALSE,
			is_visible BOOLEAN NOT NULL DEFAULT TRUE,
			rescue_id INTEGER NOT NULL REFERENCES rescues (rescue_id),
			gender_id INTEGER REFERENCES genders (gender_id),
			age_id INTEGER REFERENCES ages (age_id),
			size_id INTEGER REFERENCES sizes (size_id),
			breed_id INTEGER REFERENCES breeds (breed_id)
		)`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS admins (
			admin_id %s,
			email TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			rescue_id INTEGER REFERENCES rescues (rescue_id)
		)`, pk),
	}
}
