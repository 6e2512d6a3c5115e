package api

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListIngredients(t *testing.T) {
	router, db := setupTestRouter(t)
	seedIngredient(t, db, "brown sugar", "g")
	seedIngredient(t, db, "sugar", "g")
	seedIngredient(t, db, "salt", "g")

	w := doJSON(t, router, "GET", "/api/ingredients", "", nil)
	require.Equal(t, 200, w.Code)

	var results []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	assert.Len(t, results, 3)

	// substring match, case-insensitive
	w = doJSON(t, router, "GET", "/api/ingredients?name=SUG", "", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	assert.Len(t, results, 2)
}

func TestGetIngredient(t *testing.T) {
	router, db := setupTestRouter(t)
	ingID := seedIngredient(t, db, "flour", "g")

	w := doJSON(t, router, "GET", "/api/ingredients/"+ingID.String(), "", nil)
	require.Equal(t, 200, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "flour", body["name"])
	assert.Equal(t, "g", body["measurement_unit"])

	w = doJSON(t, router, "GET", "/api/ingredients/"+uuid.NewString(), "", nil)
	assert.Equal(t, 404, w.Code)
}

func TestListTags(t *testing.T) {
	router, db := setupTestRouter(t)
	seedTag(t, db, "Lunch", "lunch")
	seedTag(t, db, "Breakfast", "breakfast")

	w := doJSON(t, router, "GET", "/api/tags", "", nil)
	require.Equal(t, 200, w.Code)

	var results []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "breakfast", results[0]["slug"])
}

func TestGetTag(t *testing.T) {
	router, db := setupTestRouter(t)
	tagID := seedTag(t, db, "Dinner", "dinner")

	w := doJSON(t, router, "GET", "/api/tags/"+tagID.String(), "", nil)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "dinner", decodeBody(t, w)["slug"])

	w = doJSON(t, router, "GET", "/api/tags/"+uuid.NewString(), "", nil)
	assert.Equal(t, 404, w.Code)
}
