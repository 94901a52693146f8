package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/766ms/Glam-rent-v1/pkg/apperr"
)

func TestCartAddMergesDuplicates(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "shopper@example.com")
	dress := env.createProduct(t, "Perla Encantada", 249999, 12)

	_, err := env.cart.Add(user.ID, dress.ID, 2)
	require.NoError(t, err)
	item, err := env.cart.Add(user.ID, dress.ID, 3)
	require.NoError(t, err)

	assert.Equal(t, 5, item.Quantity)
	assert.Equal(t, int64(1), env.cartCount(t, user.ID))
}

func TestCartAddValidation(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "shopper@example.com")
	dress := env.createProduct(t, "Dama Carmesí", 189999, 10)

	_, err := env.cart.Add(user.ID, dress.ID, 0)
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = env.cart.Add(user.ID, 999, 1)
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestCartListPricesAtCurrentCatalogue(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "shopper@example.com")
	corset := env.createProduct(t, "Rosa de Ensueño", 219999, 11)
	dress := env.createProduct(t, "Jardín Secreto", 349999, 6)

	_, err := env.cart.Add(user.ID, corset.ID, 2)
	require.NoError(t, err)
	_, err = env.cart.Add(user.ID, dress.ID, 1)
	require.NoError(t, err)

	view, err := env.cart.List(user.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.Equal(t, float64(439998), view.Items[0].Subtotal)
	assert.Equal(t, float64(349999), view.Items[1].Subtotal)
	assert.Equal(t, float64(789997), view.Total)
}

func TestCartUpdateQuantity(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "shopper@example.com")
	dress := env.createProduct(t, "Susurro de Cielo", 159999, 9)

	item, err := env.cart.Add(user.ID, dress.ID, 1)
	require.NoError(t, err)

	require.NoError(t, env.cart.UpdateQuantity(user.ID, item.ID, 4))
	view, err := env.cart.List(user.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 4, view.Items[0].Quantity)

	// Zero removes the row rather than keeping an empty line.
	require.NoError(t, env.cart.UpdateQuantity(user.ID, item.ID, 0))
	assert.Equal(t, int64(0), env.cartCount(t, user.ID))
}

func TestCartUpdateNegativeRemoves(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "shopper@example.com")
	dress := env.createProduct(t, "Aurora de Cristal", 329999, 7)

	item, err := env.cart.Add(user.ID, dress.ID, 2)
	require.NoError(t, err)

	require.NoError(t, env.cart.UpdateQuantity(user.ID, item.ID, -3))
	assert.Equal(t, int64(0), env.cartCount(t, user.ID))
}

func TestCartOwnership(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice@example.com")
	bob := env.createUser(t, "bob@example.com")
	dress := env.createProduct(t, "Secret Envoy Dress", 199999, 15)

	item, err := env.cart.Add(alice.ID, dress.ID, 1)
	require.NoError(t, err)

	// Bob cannot touch Alice's rows.
	err = env.cart.UpdateQuantity(bob.ID, item.ID, 5)
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	err = env.cart.Remove(bob.ID, item.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	assert.Equal(t, int64(1), env.cartCount(t, alice.ID))
}

func TestCartReAddAfterRemoval(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "shopper@example.com")
	dress := env.createProduct(t, "Perla Encantada", 249999, 12)

	// Clear then re-add: the unique (user, product) index must not
	// trip over the removed row.
	_, err := env.cart.Add(user.ID, dress.ID, 2)
	require.NoError(t, err)
	require.NoError(t, env.cart.Clear(user.ID))

	item, err := env.cart.Add(user.ID, dress.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)

	// Same after a row-level removal.
	require.NoError(t, env.cart.Remove(user.ID, item.ID))
	item, err = env.cart.Add(user.ID, dress.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, int64(1), env.cartCount(t, user.ID))
}

func TestCartClearIdempotent(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "shopper@example.com")
	dress := env.createProduct(t, "Wings of Losie Corset Dress", 299999, 10)

	_, err := env.cart.Add(user.ID, dress.ID, 2)
	require.NoError(t, err)

	require.NoError(t, env.cart.Clear(user.ID))
	assert.Equal(t, int64(0), env.cartCount(t, user.ID))

	// Clearing again succeeds quietly.
	require.NoError(t, env.cart.Clear(user.ID))
}
