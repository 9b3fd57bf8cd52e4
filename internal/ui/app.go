package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/storefront/internal/checkout"
	"github.com/five82/storefront/internal/notify"
	"github.com/five82/storefront/internal/prefs"
	"github.com/five82/storefront/internal/shop"
)

// View represents the current active view.
type View int

const (
	ViewProducts View = iota
	ViewCart
	ViewWishlist
	ViewCheckout
)

var viewOrder = []View{ViewProducts, ViewCart, ViewWishlist, ViewCheckout}

func (v View) String() string {
	switch v {
	case ViewProducts:
		return "Products"
	case ViewCart:
		return "Cart"
	case ViewWishlist:
		return "Wishlist"
	case ViewCheckout:
		return "Checkout"
	default:
		return "Unknown"
	}
}

// Options configures the UI.
type Options struct {
	Context context.Context
	Shop    *shop.Shop
	// Notices delivers facade notices as toasts. Nil disables toasts from
	// the engines; UI-local messages still show.
	Notices   *notify.Queue
	ThemeName string
	Logger    *zap.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx     context.Context
	shop    *shop.Shop
	notices *notify.Queue
	logger  *zap.Logger
	keys    keyMap
	help    help.Model

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Products state
	productRow int
	choices    map[string]choice

	// Cart state
	cartRow      int
	promo        string
	promoInput   textinput.Model
	editingPromo bool

	// Wishlist state
	wishlistRow int

	// Checkout state
	spinner     spinner.Model
	placing     bool
	cancelOrder context.CancelFunc
	order       *checkout.Order

	// Toasts
	toasts      []toast
	nextToastID int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Default().Theme
	}

	promo := textinput.New()
	promo.Placeholder = "Promo code"
	promo.Prompt = "› "
	promo.CharLimit = 32

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))

	return Model{
		ctx:         ctx,
		shop:        opts.Shop,
		notices:     opts.Notices,
		logger:      logger,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		theme:       GetTheme(themeName),
		currentView: ViewProducts,
		choices:     make(map[string]choice),
		promoInput:  promo,
		spinner:     spin,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen}
	if m.notices != nil {
		cmds = append(cmds, waitForNotice(m.notices))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case noticeMsg:
		cmd := m.pushToast(notify.Notice(msg))
		if m.notices != nil {
			cmd = tea.Batch(cmd, waitForNotice(m.notices))
		}
		return m, cmd

	case toastExpiredMsg:
		m.dropToast(int(msg))
		return m, nil

	case orderPlacedMsg:
		return m.handleOrderPlaced(msg)

	case spinner.TickMsg:
		if !m.placing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	// The promo field owns the keyboard while it is focused.
	if m.editingPromo {
		return m.handlePromoKey(msg)
	}

	if m.placing {
		switch {
		case msg.String() == "ctrl+c":
			m.abandonOrder()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Escape):
			m.abandonOrder()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.switchView(m.stepView(1))
		return m, nil

	case key.Matches(msg, m.keys.ShiftTab):
		m.switchView(m.stepView(-1))
		return m, nil

	case key.Matches(msg, m.keys.ViewProducts):
		m.switchView(ViewProducts)
		return m, nil

	case key.Matches(msg, m.keys.ViewCart):
		m.switchView(ViewCart)
		return m, nil

	case key.Matches(msg, m.keys.ViewWishlist):
		m.switchView(ViewWishlist)
		return m, nil

	case key.Matches(msg, m.keys.ViewCheckout):
		m.switchView(ViewCheckout)
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.switchView(ViewProducts)
		return m, nil
	}

	// View-specific keys
	switch m.currentView {
	case ViewProducts:
		return m.handleProductsKey(msg)
	case ViewCart:
		return m.handleCartKey(msg)
	case ViewWishlist:
		return m.handleWishlistKey(msg)
	case ViewCheckout:
		return m.handleCheckoutKey(msg)
	}

	return m, nil
}

// stepView returns the view delta steps away in tab order.
func (m Model) stepView(delta int) View {
	for i, v := range viewOrder {
		if v == m.currentView {
			n := len(viewOrder)
			return viewOrder[((i+delta)%n+n)%n]
		}
	}
	return ViewProducts
}

func (m *Model) switchView(v View) {
	if m.currentView == ViewCheckout && v != ViewCheckout {
		m.order = nil
	}
	m.currentView = v
}

// cycleTheme advances the theme and remembers the choice.
func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	if m.shop == nil {
		return
	}
	if err := prefs.Save(m.shop.Store, prefs.Prefs{Theme: m.theme.Name}); err != nil {
		m.logger.Warn("save prefs failed", zap.Error(err))
	}
}

// moveCursor applies the shared navigation keys to a cursor over n rows.
// It reports whether msg was a navigation key.
func (m Model) moveCursor(msg tea.KeyMsg, row *int, n int) bool {
	switch {
	case key.Matches(msg, m.keys.Down):
		if *row < n-1 {
			*row++
		}
	case key.Matches(msg, m.keys.Up):
		if *row > 0 {
			*row--
		}
	case key.Matches(msg, m.keys.Top):
		*row = 0
	case key.Matches(msg, m.keys.Bottom):
		*row = max(n-1, 0)
	default:
		return false
	}
	return true
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	b.WriteString(m.renderContent())
	b.WriteString("\n")

	if t := m.renderToasts(); t != "" {
		b.WriteString("\n")
		b.WriteString(t)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewProducts:
		return m.renderProducts()
	case ViewCart:
		return m.renderCart()
	case ViewWishlist:
		return m.renderWishlist()
	case ViewCheckout:
		return m.renderCheckout()
	default:
		return ""
	}
}

func (m Model) renderFooter() string {
	if m.editingPromo {
		return m.theme.Styles().Footer.Render("enter apply • esc cancel")
	}
	if m.placing {
		return m.theme.Styles().Footer.Render("esc cancel order")
	}
	return m.theme.Styles().Footer.Render(m.help.ShortHelpView(m.keys.viewHelp(m.currentView)))
}

// Messages

type noticeMsg notify.Notice

type toastExpiredMsg int

type orderPlacedMsg struct {
	order checkout.Order
	err   error
}

// Commands

func waitForNotice(q *notify.Queue) tea.Cmd {
	return func() tea.Msg {
		return noticeMsg(<-q.C())
	}
}

func expireToastCmd(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return toastExpiredMsg(id)
	})
}

func placeOrderCmd(ctx context.Context, svc *checkout.Service) tea.Cmd {
	return func() tea.Msg {
		order, err := svc.PlaceOrder(ctx)
		return orderPlacedMsg{order: order, err: err}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	return err
}
