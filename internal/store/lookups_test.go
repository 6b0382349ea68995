package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupResolution(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.GenderID(ctx, "male")
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)

	id, err = s.AgeID(ctx, "senior")
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)

	id, err = s.SizeID(ctx, "small")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	id, err = s.BreedID(ctx, "beagle")
	require.NoError(t, err)
	assert.Equal(t, int64(6), id)

	_, err = s.BreedID(ctx, "dragon")
	assert.ErrorIs(t, err, ErrUnknownLookup)
	_, err = s.GenderID(ctx, "")
	assert.ErrorIs(t, err, ErrUnknownLookup)
}

func TestLookupLists(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	genders, err := s.Genders(ctx)
	require.NoError(t, err)
	require.Len(t, genders, 2)
	assert.Equal(t, "female", genders[0].GenderType)

	ages, err := s.Ages(ctx)
	require.NoError(t, err)
	assert.Len(t, ages, 3)

	sizes, err := s.Sizes(ctx)
	require.NoError(t, err)
	assert.Len(t, sizes, 3)

	breeds, err := s.Breeds(ctx)
	require.NoError(t, err)
	require.Len(t, breeds, 6)
	require.NotNil(t, breeds[3].SpeciesID)
	assert.Equal(t, int64(2), *breeds[3].SpeciesID) // domestic shorthair is a cat
}
