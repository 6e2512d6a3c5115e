package api

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteRecipe(t *testing.T) {
	router, db := setupTestRouter(t)
	_, token := registerAndLogin(t, router, "cook@example.com", "cook")
	ingID := seedIngredient(t, db, "flour", "g")
	recipeID := createRecipe(t, router, token, "Bread", []gin.H{{"id": ingID, "amount": 500}}, nil)

	w := doJSON(t, router, "POST", "/api/recipes/"+recipeID+"/favorite", token, nil)
	require.Equal(t, 201, w.Code, w.Body.String())

	// the short form, not the full recipe
	body := decodeBody(t, w)
	assert.Equal(t, "Bread", body["name"])
	assert.Contains(t, body, "image")
	assert.Contains(t, body, "cooking_time")
	assert.NotContains(t, body, "text")

	w = doJSON(t, router, "GET", "/api/recipes/"+recipeID, token, nil)
	assert.Equal(t, true, decodeBody(t, w)["is_favorited"])
}

func TestFavoriteRecipeTwice(t *testing.T) {
	router, db := setupTestRouter(t)
	_, token := registerAndLogin(t, router, "cook@example.com", "cook")
	ingID := seedIngredient(t, db, "flour", "g")
	recipeID := createRecipe(t, router, token, "Bread", []gin.H{{"id": ingID, "amount": 500}}, nil)

	w := doJSON(t, router, "POST", "/api/recipes/"+recipeID+"/favorite", token, nil)
	require.Equal(t, 201, w.Code)

	w = doJSON(t, router, "POST", "/api/recipes/"+recipeID+"/favorite", token, nil)
	assert.Equal(t, 400, w.Code)
}

func TestUnfavoriteRecipe(t *testing.T) {
	router, db := setupTestRouter(t)
	_, token := registerAndLogin(t, router, "cook@example.com", "cook")
	ingID := seedIngredient(t, db, "flour", "g")
	recipeID := createRecipe(t, router, token, "Bread", []gin.H{{"id": ingID, "amount": 500}}, nil)

	// never favorited
	w := doJSON(t, router, "DELETE", "/api/recipes/"+recipeID+"/favorite", token, nil)
	assert.Equal(t, 400, w.Code)

	w = doJSON(t, router, "POST", "/api/recipes/"+recipeID+"/favorite", token, nil)
	require.Equal(t, 201, w.Code)

	w = doJSON(t, router, "DELETE", "/api/recipes/"+recipeID+"/favorite", token, nil)
	assert.Equal(t, 204, w.Code)

	w = doJSON(t, router, "GET", "/api/recipes/"+recipeID, token, nil)
	assert.Equal(t, false, decodeBody(t, w)["is_favorited"])
}

func TestShoppingCartToggle(t *testing.T) {
	router, db := setupTestRouter(t)
	_, token := registerAndLogin(t, router, "cook@example.com", "cook")
	ingID := seedIngredient(t, db, "flour", "g")
	recipeID := createRecipe(t, router, token, "Bread", []gin.H{{"id": ingID, "amount": 500}}, nil)

	w := doJSON(t, router, "POST", "/api/recipes/"+recipeID+"/shopping_cart", token, nil)
	require.Equal(t, 201, w.Code)

	w = doJSON(t, router, "POST", "/api/recipes/"+recipeID+"/shopping_cart", token, nil)
	assert.Equal(t, 400, w.Code)

	w = doJSON(t, router, "GET", "/api/recipes/"+recipeID, token, nil)
	assert.Equal(t, true, decodeBody(t, w)["is_in_shopping_cart"])

	w = doJSON(t, router, "DELETE", "/api/recipes/"+recipeID+"/shopping_cart", token, nil)
	assert.Equal(t, 204, w.Code)

	w = doJSON(t, router, "DELETE", "/api/recipes/"+recipeID+"/shopping_cart", token, nil)
	assert.Equal(t, 400, w.Code)
}

func TestDownloadShoppingCart(t *testing.T) {
	router, db := setupTestRouter(t)
	_, token := registerAndLogin(t, router, "cook@example.com", "cook")

	eggsID := seedIngredient(t, db, "eggs", "pcs")
	milkID := seedIngredient(t, db, "milk", "ml")

	omelette := createRecipe(t, router, token, "Omelette", []gin.H{
		{"id": eggsID, "amount": 2},
		{"id": milkID, "amount": 100},
	}, nil)
	custard := createRecipe(t, router, token, "Custard", []gin.H{
		{"id": eggsID, "amount": 3},
	}, nil)

	for _, id := range []string{omelette, custard} {
		w := doJSON(t, router, "POST", "/api/recipes/"+id+"/shopping_cart", token, nil)
		require.Equal(t, 201, w.Code)
	}

	w := doJSON(t, router, "GET", "/api/recipes/download_shopping_cart", token, nil)
	require.Equal(t, 200, w.Code)

	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "shopping_cart.txt")

	// amounts are summed per ingredient, one line each, sorted by name
	assert.Equal(t, "eggs: (pcs) - 5, \nmilk: (ml) - 100, ", w.Body.String())
}

func TestDownloadEmptyShoppingCart(t *testing.T) {
	router, _ := setupTestRouter(t)
	_, token := registerAndLogin(t, router, "cook@example.com", "cook")

	w := doJSON(t, router, "GET", "/api/recipes/download_shopping_cart", token, nil)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "", w.Body.String())
}

func TestSubscribeViaRecipe(t *testing.T) {
	router, db := setupTestRouter(t)
	_, authorToken := registerAndLogin(t, router, "author@example.com", "author")
	_, readerToken := registerAndLogin(t, router, "reader@example.com", "reader")
	ingID := seedIngredient(t, db, "flour", "g")
	recipeID := createRecipe(t, router, authorToken, "Bread", []gin.H{{"id": ingID, "amount": 500}}, nil)

	w := doJSON(t, router, "POST", "/api/recipes/"+recipeID+"/subscribe", readerToken, nil)
	require.Equal(t, 201, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "author", body["username"])
	assert.Equal(t, true, body["is_subscribed"])

	// the recipe's author cannot follow themselves through their own recipe
	w = doJSON(t, router, "POST", "/api/recipes/"+recipeID+"/subscribe", authorToken, nil)
	assert.Equal(t, 400, w.Code)

	w = doJSON(t, router, "DELETE", "/api/recipes/"+recipeID+"/subscribe", readerToken, nil)
	assert.Equal(t, 204, w.Code)
}
