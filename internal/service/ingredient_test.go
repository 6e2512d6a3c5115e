package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadIngredientsCSV(t *testing.T) {
	db := testDB(t)
	svc := NewIngredientService(db)

	n, err := svc.LoadIngredientsCSV(strings.NewReader("flour,g\neggs,pcs\nmilk,ml\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	ingredients, err := svc.ListIngredients("")
	require.NoError(t, err)
	require.Len(t, ingredients, 3)
	assert.Equal(t, "eggs", ingredients[0].Name)
	assert.Equal(t, "pcs", ingredients[0].MeasurementUnit)

	// a reload replaces the reference data wholesale
	n, err = svc.LoadIngredientsCSV(strings.NewReader("salt,g\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	ingredients, err = svc.ListIngredients("")
	require.NoError(t, err)
	require.Len(t, ingredients, 1)
	assert.Equal(t, "salt", ingredients[0].Name)
}

func TestLoadIngredientsCSVMalformed(t *testing.T) {
	db := testDB(t)
	svc := NewIngredientService(db)

	_, err := svc.LoadIngredientsCSV(strings.NewReader("flour,g,extra\n"))
	assert.Error(t, err)
}

func TestLoadTagsCSV(t *testing.T) {
	db := testDB(t)
	svc := NewIngredientService(db)

	n, err := svc.LoadTagsCSV(strings.NewReader("Breakfast,#E26C2D,breakfast\nDinner,#49B64E,dinner\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	tags, err := svc.ListTags()
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "breakfast", tags[0].Slug)
	assert.Equal(t, "#E26C2D", tags[0].Color)
}

func TestListIngredientsFilter(t *testing.T) {
	db := testDB(t)
	svc := NewIngredientService(db)

	testIngredient(t, db, "brown sugar", "g")
	testIngredient(t, db, "sugar", "g")
	testIngredient(t, db, "salt", "g")

	matches, err := svc.ListIngredients("Sugar")
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	matches, err = svc.ListIngredients("pepper")
	require.NoError(t, err)
	assert.Empty(t, matches)
}
