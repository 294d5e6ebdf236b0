package ui

import (
	"fmt"
	"strings"
)

// Presentational views render from their fields and report user intent
// through callbacks. They hold no state beyond transient input values.

// ListView renders selectable product rows.
type ListView struct {
	Products []Product
	OnSelect func(id string)
}

func (v ListView) Render() string {
	var b strings.Builder
	b.WriteString("Products:\n")
	for _, p := range v.Products {
		fmt.Fprintf(&b, "- %s (%s) $%.2f\n", p.Name, p.ID, p.Price)
	}
	return b.String()
}

// Select reports a row selection to the controller.
func (v ListView) Select(id string) {
	if v.OnSelect != nil {
		v.OnSelect(id)
	}
}

// DetailView renders one product with buy/edit/delete actions.
type DetailView struct {
	Product  Product
	OnBuy    func(id string)
	OnEdit   func()
	OnDelete func(id string)
}

func (v DetailView) Render() string {
	quantity := displayQuantity(v.Product.Quantity)
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", v.Product.Name)
	fmt.Fprintf(&b, "Price: $%.2f\n", v.Product.Price)
	fmt.Fprintf(&b, "Quantity: %s\n", quantity)
	if v.Product.Description != "" {
		fmt.Fprintf(&b, "%s\n", v.Product.Description)
	}
	return b.String()
}

func (v DetailView) Buy() {
	if v.OnBuy != nil {
		v.OnBuy(v.Product.ID)
	}
}

func (v DetailView) Edit() {
	if v.OnEdit != nil {
		v.OnEdit()
	}
}

func (v DetailView) Delete() {
	if v.OnDelete != nil {
		v.OnDelete(v.Product.ID)
	}
}

// NewProductForm collects fields for a new product.
type NewProductForm struct {
	OnCreate func(fields ProductFields)
}

func (v NewProductForm) Render() string {
	return "New product:\nname / price / quantity\n"
}

// Submit packages the entered fields and reports them upward.
func (v NewProductForm) Submit(fields ProductFields) {
	if v.OnCreate != nil {
		v.OnCreate(fields)
	}
}

// EditProductForm collects edited fields for an existing product.
type EditProductForm struct {
	Product Product
	OnEdit  func(fields ProductFields)
}

func (v EditProductForm) Render() string {
	return fmt.Sprintf("Edit %s:\nname / price / quantity\n", v.Product.Name)
}

func (v EditProductForm) Submit(fields ProductFields) {
	if v.OnEdit != nil {
		v.OnEdit(fields)
	}
}

// ToggleButton is the single mode-switching button; its label is computed
// by the controller from the active view.
type ToggleButton struct {
	Label   string
	OnClick func()
}

func (v ToggleButton) Render() string {
	return fmt.Sprintf("[%s]", v.Label)
}

func (v ToggleButton) Click() {
	if v.OnClick != nil {
		v.OnClick()
	}
}

// Render renders the toggle button plus the active view branch, wiring the
// view callbacks back into the controller.
func (c *Controller) Render() string {
	button := ToggleButton{Label: c.ButtonLabel(), OnClick: c.ToggleClick}
	var body string
	switch c.view {
	case ShowingEdit:
		if selected := c.Selected(); selected != nil {
			body = EditProductForm{Product: *selected}.Render()
		}
	case ShowingDetail:
		if selected := c.Selected(); selected != nil {
			body = DetailView{Product: *selected, OnBuy: c.Buy, OnEdit: c.EditClick}.Render()
		}
	case ShowingForm:
		body = NewProductForm{}.Render()
	default:
		body = ListView{Products: c.products, OnSelect: c.Select}.Render()
	}
	return button.Render() + "\n" + body
}

// displayQuantity derives the displayed quantity from the cached count.
func displayQuantity(count int32) DisplayQuantity {
	if count <= 0 {
		return DisplayQuantity{Available: false}
	}
	return DisplayQuantity{Count: count, Available: true}
}
