package ui

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yolomy/catalog/internal/app"
	"github.com/yolomy/catalog/internal/store"
)

// newTestController runs the real HTTP handler over an in-memory store and
// points a controller at it.
func newTestController(t *testing.T) (*Controller, func()) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	deps := app.SetupDependencies(store.NewInMemoryStore(), logger)
	server := httptest.NewServer(app.SetupHttpHandler(deps))
	controller := NewController(NewClient(server.URL, server.Client()), logger)
	return controller, server.Close
}

func Test_Controller_EndToEnd(t *testing.T) {
	// given
	c, closeServer := newTestController(t)
	defer closeServer()
	ctx := context.Background()

	// create a product through the API
	c.ToggleClick()
	assert.Equal(t, ShowingForm, c.View())
	c.SubmitCreate(ctx, ProductFields{Name: "Widget", Price: 9.99, Quantity: 3})

	// the form closes without merging the response: the new record is not
	// visible until the next reload
	assert.Equal(t, ShowingList, c.View())
	assert.Empty(t, c.Products())

	// reload shows the created record with a fresh identifier
	c.Load(ctx)
	require.Len(t, c.Products(), 1)
	created := c.Products()[0]
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Widget", created.Name)
	assert.Equal(t, 9.99, created.Price)
	assert.Equal(t, int32(3), created.Quantity)

	// select and buy twice: displayed quantity drops to 1
	c.Select(created.ID)
	assert.Equal(t, ShowingDetail, c.View())
	c.Buy(created.ID)
	c.Buy(created.ID)
	require.NotNil(t, c.Selected())
	assert.Equal(t, "1", displayQuantity(c.Selected().Quantity).String())

	// a third buy exhausts the stock: the display becomes the unavailable
	// sentinel without touching the store
	c.Buy(created.ID)
	assert.Equal(t, "Product is not Available", displayQuantity(c.Selected().Quantity).String())
	persisted, err := NewClient(c.client.baseURL, nil).List(ctx)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, int32(3), persisted[0].Quantity, "buys must not reach the store")

	// delete removes the product from subsequent listings
	c.SubmitDelete(ctx, created.ID)
	assert.Equal(t, ShowingList, c.View())
	assert.Empty(t, c.Products())
	c.Load(ctx)
	assert.Empty(t, c.Products())
}

func Test_Controller_ToggleTransitions(t *testing.T) {
	// given
	c, closeServer := newTestController(t)
	defer closeServer()
	ctx := context.Background()
	c.SubmitCreate(ctx, ProductFields{Name: "Widget", Price: 9.99, Quantity: 3})
	c.Load(ctx)
	id := c.Products()[0].ID

	// list <-> form
	assert.Equal(t, ShowingList, c.View())
	assert.Equal(t, "Add a product", c.ButtonLabel())
	c.ToggleClick()
	assert.Equal(t, ShowingForm, c.View())
	assert.Equal(t, "Back to product list", c.ButtonLabel())
	c.ToggleClick()
	assert.Equal(t, ShowingList, c.View())

	// list -> detail -> edit; the toggle unwinds edit before detail, so the
	// edit branch always wins while it is active
	c.Select(id)
	assert.Equal(t, ShowingDetail, c.View())
	assert.Equal(t, "Back to product list", c.ButtonLabel())
	c.EditClick()
	assert.Equal(t, ShowingEdit, c.View())
	assert.Equal(t, "Back to Product Detail", c.ButtonLabel())
	c.ToggleClick()
	assert.Equal(t, ShowingDetail, c.View())
	c.ToggleClick()
	assert.Equal(t, ShowingList, c.View())
	assert.Nil(t, c.Selected())
}

func Test_Controller_SelectUnknownID(t *testing.T) {
	c, closeServer := newTestController(t)
	defer closeServer()

	c.Select("does-not-exist")
	assert.Equal(t, ShowingList, c.View())
	assert.Nil(t, c.Selected())
}

func Test_Controller_EditClickOutsideDetail(t *testing.T) {
	c, closeServer := newTestController(t)
	defer closeServer()

	c.EditClick()
	assert.Equal(t, ShowingList, c.View())
}

func Test_Controller_SubmitEdit_Reloads(t *testing.T) {
	// given
	c, closeServer := newTestController(t)
	defer closeServer()
	ctx := context.Background()
	c.SubmitCreate(ctx, ProductFields{Name: "Widget", Price: 9.99, Quantity: 3})
	c.Load(ctx)
	id := c.Products()[0].ID

	c.Select(id)
	c.EditClick()
	require.Equal(t, ShowingEdit, c.View())

	// when
	c.SubmitEdit(ctx, ProductFields{Name: "Gadget", Price: 19.99, Quantity: 5})

	// then: state reset to the list and the list re-fetched
	assert.Equal(t, ShowingList, c.View())
	assert.Nil(t, c.Selected())
	require.Len(t, c.Products(), 1)
	assert.Equal(t, "Gadget", c.Products()[0].Name)
	assert.Equal(t, 19.99, c.Products()[0].Price)
	assert.Equal(t, int32(5), c.Products()[0].Quantity)
}

func Test_Controller_LoadFailure_LeavesListEmpty(t *testing.T) {
	// given: a server that is already gone
	c, closeServer := newTestController(t)
	closeServer()

	// when
	c.Load(context.Background())

	// then: the failure is swallowed and the list stays empty
	assert.Empty(t, c.Products())
	assert.Equal(t, ShowingList, c.View())
}

func Test_Controller_DeleteFailure_StillRemovesLocally(t *testing.T) {
	// given
	c, closeServer := newTestController(t)
	ctx := context.Background()
	c.SubmitCreate(ctx, ProductFields{Name: "Widget", Price: 9.99, Quantity: 3})
	c.Load(ctx)
	id := c.Products()[0].ID
	closeServer()

	// when: the DELETE fails on the network
	c.SubmitDelete(ctx, id)

	// then: local state already diverged, matching the optimistic removal
	assert.Empty(t, c.Products())
	assert.Equal(t, ShowingList, c.View())
	assert.Nil(t, c.Selected())
}
