package models

// Rescue is an animal-rescue organization. A rescue owns its animal
// listings and is managed by a single admin account.
type Rescue struct {
	RescueID int64
	Name     string
	Phone    string
	Address  string
	Email    string
	ImgURL   string
}

// Admin is the administrator account for one rescue. RescueID is nil until the
// admin has created their rescue profile.
type Admin struct {
	AdminID      int64
	Email        string
	PasswordHash string
	RescueID     *int64
}

// Animal as stored in the animals table. The descriptive attributes are
// foreign keys into the lookup tables and may be unset.
type Animal struct {
	AnimalID  int64
	Name      string
	ImgURL    string
	Bio       string
	IsAdopted bool
	IsVisible bool
	RescueID  int64
	GenderID  *int64
	AgeID     *int64
	SizeID    *int64
	BreedID   *int64
}

// AnimalDetails is an animal joined with the names of its lookup rows.
// A lookup field is nil when the corresponding foreign key is unset.
type AnimalDetails struct {
	AnimalID int64
	Name     string
	ImgURL   string
	Bio      string
	RescueID int64
	Gender   *string
	Age      *string
	Size     *string
	Breed    *string
}

type Gender struct {
	GenderID   int64
	GenderType string
}

type Age struct {
	AgeID       int64
	AgeCategory string
}

type Size struct {
	SizeID       int64
	SizeCategory string
}

type Species struct {
	SpeciesID   int64
	SpeciesType string
}

// Breed optionally references a species.
type Breed struct {
	BreedID   int64
	BreedType string
	SpeciesID *int64
}
