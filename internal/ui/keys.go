package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Escape     key.Binding

	// View switching
	ViewProducts key.Binding
	ViewCart     key.Binding
	ViewWishlist key.Binding
	ViewCheckout key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Product actions
	AddToCart      key.Binding
	CycleSize      key.Binding
	CycleColor     key.Binding
	Increase       key.Binding
	Decrease       key.Binding
	ToggleWishlist key.Binding

	// Cart and wishlist actions
	RemoveLine     key.Binding
	MoveToWishlist key.Binding
	Clear          key.Binding
	Promo          key.Binding
	GoToCheckout   key.Binding

	// Checkout
	PlaceOrder key.Binding

	// Input
	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next view"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous view"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back to products"),
		),

		// View switching
		ViewProducts: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Products"),
		),
		ViewCart: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Cart"),
		),
		ViewWishlist: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Wishlist"),
		),
		ViewCheckout: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "Checkout"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		// Product actions
		AddToCart: key.NewBinding(
			key.WithKeys("a", "enter"),
			key.WithHelp("a/enter", "Add to cart"),
		),
		CycleSize: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Cycle size"),
		),
		CycleColor: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Cycle color"),
		),
		Increase: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Quantity up"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Quantity down"),
		),
		ToggleWishlist: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "Toggle wishlist"),
		),

		// Cart and wishlist actions
		RemoveLine: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "Remove"),
		),
		MoveToWishlist: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Move to wishlist"),
		),
		Clear: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "Clear all"),
		),
		Promo: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Promo code"),
		),
		GoToCheckout: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Checkout"),
		),

		// Checkout
		PlaceOrder: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Place order"),
		),

		// Input
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// helpGroup is a titled section of the help overlay.
type helpGroup struct {
	title    string
	bindings []key.Binding
}

func (k keyMap) helpGroups() []helpGroup {
	return []helpGroup{
		{"Navigation", []key.Binding{k.Tab, k.ShiftTab, k.ViewProducts, k.ViewCart, k.ViewWishlist, k.ViewCheckout, k.Up, k.Down, k.Top, k.Bottom}},
		{"Products", []key.Binding{k.AddToCart, k.CycleSize, k.CycleColor, k.Increase, k.Decrease, k.ToggleWishlist}},
		{"Cart & Wishlist", []key.Binding{k.RemoveLine, k.MoveToWishlist, k.Clear, k.Promo, k.GoToCheckout}},
		{"Checkout", []key.Binding{k.PlaceOrder, k.Escape}},
		{"General", []key.Binding{k.CycleTheme, k.Help, k.Quit}},
	}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	groups := k.helpGroups()
	out := make([][]key.Binding, len(groups))
	for i, g := range groups {
		out[i] = g.bindings
	}
	return out
}

// viewHelp returns the bindings shown in the footer for v.
func (k keyMap) viewHelp(v View) []key.Binding {
	switch v {
	case ViewProducts:
		return []key.Binding{k.AddToCart, k.CycleSize, k.CycleColor, k.Increase, k.ToggleWishlist, k.Help, k.Quit}
	case ViewCart:
		return []key.Binding{k.Increase, k.Decrease, k.RemoveLine, k.MoveToWishlist, k.Promo, k.GoToCheckout, k.Help}
	case ViewWishlist:
		return []key.Binding{k.AddToCart, k.RemoveLine, k.Clear, k.Help, k.Quit}
	case ViewCheckout:
		return []key.Binding{k.PlaceOrder, k.Escape, k.Help, k.Quit}
	}
	return k.ShortHelp()
}
