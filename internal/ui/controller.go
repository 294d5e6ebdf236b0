package ui

import (
	"context"
	"log/slog"
	"strconv"
)

// ViewKind identifies the active view branch. Exactly one branch is active
// at a time, so no precedence rule between view flags is needed.
type ViewKind int

const (
	ShowingList ViewKind = iota
	ShowingForm
	ShowingDetail
	ShowingEdit
)

// unavailableLabel is the display sentinel shown once buys exhaust a
// product's cached quantity. It never reaches the store.
const unavailableLabel = "Product is not Available"

// DisplayQuantity is the displayed form of a product quantity: either an
// available count or the unavailable sentinel.
type DisplayQuantity struct {
	Count     int32
	Available bool
}

func (q DisplayQuantity) String() string {
	if !q.Available {
		return unavailableLabel
	}
	return strconv.FormatInt(int64(q.Count), 10)
}

// Controller orchestrates view selection and API calls. It holds a
// transient, possibly stale copy of the product list; mutations update the
// cache optimistically and failures are only logged, never surfaced.
type Controller struct {
	client *Client
	logger *slog.Logger

	products   []Product
	view       ViewKind
	selectedID string
}

// NewController creates a controller in the list view with an empty list.
func NewController(client *Client, logger *slog.Logger) *Controller {
	return &Controller{
		client: client,
		logger: logger.With("component", "controller"),
		view:   ShowingList,
	}
}

// Load fetches the product list. On failure the error is logged and the
// list stays empty.
func (c *Controller) Load(ctx context.Context) {
	products, err := c.client.List(ctx)
	if err != nil {
		c.logger.Error("Error fetching products", "error", err)
		return
	}
	c.products = products
}

// ToggleClick handles the single toggle button: editing returns to the
// detail view, a selection returns to the list, otherwise the new-product
// form is toggled.
func (c *Controller) ToggleClick() {
	switch c.view {
	case ShowingEdit:
		c.view = ShowingDetail
	case ShowingDetail:
		c.selectedID = ""
		c.view = ShowingList
	case ShowingForm:
		c.view = ShowingList
	default:
		c.view = ShowingForm
	}
}

// Select switches to the detail view of the product with the given ID.
// The product comes from the local list; no network round-trip happens.
// Unknown IDs leave the state unchanged.
func (c *Controller) Select(id string) {
	if c.indexOf(id) < 0 {
		return
	}
	c.selectedID = id
	c.view = ShowingDetail
}

// EditClick switches from the detail view to the edit form.
func (c *Controller) EditClick() {
	if c.view != ShowingDetail {
		return
	}
	c.view = ShowingEdit
}

// Buy decrements the selected product's cached quantity. The store is not
// touched: the decrement is display-only and is lost on reload.
func (c *Controller) Buy(id string) {
	i := c.indexOf(id)
	if i < 0 {
		return
	}
	c.products[i].Quantity--
}

// SubmitCreate posts a new product and closes the form. The created record
// is not merged into the local list, so it only appears after a reload.
func (c *Controller) SubmitCreate(ctx context.Context, fields ProductFields) {
	if _, err := c.client.Create(ctx, fields); err != nil {
		c.logger.Error("Error adding product", "error", err)
	}
	c.view = ShowingList
}

// SubmitDelete deletes a product and optimistically removes it from the
// local list, clearing any selection.
func (c *Controller) SubmitDelete(ctx context.Context, id string) {
	if err := c.client.Delete(ctx, id); err != nil {
		c.logger.Error("Error deleting product", "error", err)
	}
	if i := c.indexOf(id); i >= 0 {
		c.products = append(c.products[:i], c.products[i+1:]...)
	}
	c.selectedID = ""
	c.view = ShowingList
}

// SubmitEdit puts the given fields to the selected product, then resets to
// the list view and reloads the whole list.
func (c *Controller) SubmitEdit(ctx context.Context, fields ProductFields) {
	if c.selectedID == "" {
		return
	}
	if _, err := c.client.Update(ctx, c.selectedID, fields); err != nil {
		c.logger.Error("Error updating product", "error", err)
	}
	c.selectedID = ""
	c.view = ShowingList
	c.Load(ctx)
}

// View returns the active view branch.
func (c *Controller) View() ViewKind {
	return c.view
}

// Products returns the cached product list.
func (c *Controller) Products() []Product {
	return c.products
}

// Selected returns the selected product from the local cache, or nil when
// nothing is selected.
func (c *Controller) Selected() *Product {
	i := c.indexOf(c.selectedID)
	if i < 0 {
		return nil
	}
	return &c.products[i]
}

// ButtonLabel derives the toggle button label from the active view.
func (c *Controller) ButtonLabel() string {
	switch c.view {
	case ShowingEdit:
		return "Back to Product Detail"
	case ShowingDetail, ShowingForm:
		return "Back to product list"
	default:
		return "Add a product"
	}
}

func (c *Controller) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range c.products {
		if c.products[i].ID == id {
			return i
		}
	}
	return -1
}
