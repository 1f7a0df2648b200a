package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepoCRUD(t *testing.T) {
	r := NewProductRepo()

	created := r.Create("Octopus Amigurumi", "Handmade purple octopus", 28.50, 10, []string{"octopus"})
	require.NotEmpty(t, created.ID)

	got, err := r.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	updated, err := r.Update(created.ID, "Octopus Amigurumi", "Now with hat", 30.00, 9, []string{"octopus", "hat"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 30.00, updated.Price)

	require.NoError(t, r.Delete(created.ID))
	_, err = r.Get(created.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductRepoUnknownID(t *testing.T) {
	r := NewProductRepo()
	_, err := r.Get("missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
	_, err = r.Update("missing", "x", "", 1, 1, nil)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.ErrorIs(t, r.Delete("missing"), ErrProductNotFound)
}

func TestProductRepoListSortedByName(t *testing.T) {
	r := NewProductRepo()
	r.Create("Dinosaur", "", 32, 7, nil)
	r.Create("Bunny", "", 24, 15, nil)
	r.Create("Octopus", "", 28.5, 10, nil)

	list := r.List()
	require.Len(t, list, 3)
	assert.Equal(t, "Bunny", list[0].Name)
	assert.Equal(t, "Dinosaur", list[1].Name)
	assert.Equal(t, "Octopus", list[2].Name)
}

func TestProductRepoSeedDemo(t *testing.T) {
	r := NewProductRepo()
	r.SeedDemo()
	assert.Len(t, r.List(), 3)
}
