// Package view renders the terminal storefront. It owns no state: it reads the
// session snapshot it is handed, the cart, and the catalog, and writes lines
// to its output.
package view

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.uber.org/zap"

	"github.com/atinyakov/FotoShop/internal/client/cart"
	"github.com/atinyakov/FotoShop/internal/client/session"
	"github.com/atinyakov/FotoShop/internal/models"
)

// CatalogSource lists the images on sale.
type CatalogSource interface {
	List(ctx context.Context) ([]models.Image, error)
}

// CartSource is the read side of the cart.
type CartSource interface {
	Lines() []cart.Line
	Total() float64
}

// Controller implements session.Notifier.
type Controller struct {
	catalog CatalogSource
	cart    CartSource
	log     *zap.Logger
	style   styles

	// Populate re-renders catalog and cart when a session becomes
	// authenticated.
	Populate bool

	mu  sync.Mutex
	out io.Writer
}

var _ session.Notifier = (*Controller)(nil)

func New(out io.Writer, catalog CatalogSource, c CartSource, log *zap.Logger) *Controller {
	return &Controller{
		catalog:  catalog,
		cart:     c,
		log:      log,
		style:    newStyles(lipgloss.NewRenderer(out)),
		Populate: true,
		out:      out,
	}
}

// SessionChanged shows the region matching next and, on a transition into
// the authenticated state, repopulates the catalog and the cart.
func (c *Controller) SessionChanged(ctx context.Context, prev, next session.State) {
	_, user, ok := next.Identity()
	if !ok {
		c.println(c.style.muted.Render("Not logged in.") + " " +
			c.style.control.Render("login") + " or " + c.style.control.Render("register") + " to shop.")
		return
	}

	c.println(c.style.title.Render("Logged in as") + " " +
		c.style.user.Render(user.Name) + " " + c.style.muted.Render("<"+user.Email+">") + "  " +
		c.style.control.Render("[logout]"))

	if c.Populate && !prev.IsAuthenticated() {
		_ = c.RenderCatalog(ctx)
		c.RenderCart()
	}
}

// Alert shows a user-facing error line.
func (c *Controller) Alert(msg string) {
	c.println(c.style.alert.Render("! " + msg))
}

// Notice shows a user-facing confirmation line.
func (c *Controller) Notice(msg string) {
	c.println(c.style.notice.Render(msg))
}

// RenderCatalog fetches and shows the catalog. A failure is shown inline,
// logged, and returned.
func (c *Controller) RenderCatalog(ctx context.Context) error {
	images, err := c.catalog.List(ctx)
	if err != nil {
		c.log.Warn("failed to load catalog", zap.Error(err))
		c.Alert("catalog unavailable: " + err.Error())
		return err
	}
	c.RenderImages(images)
	return nil
}

// RenderImages shows images as a table.
func (c *Controller) RenderImages(images []models.Image) {
	if len(images) == 0 {
		c.println(c.style.muted.Render("The catalog is empty."))
		return
	}
	t := c.newTable("ID", "Title", "Category", "Price", "Stock")
	for _, img := range images {
		t.Row(strconv.FormatInt(img.ID, 10), img.Title, img.Category, formatPrice(img.Price), strconv.Itoa(img.Stock))
	}
	c.println(c.style.title.Render("Catalog"))
	c.println(t.String())
}

// RenderCart shows the cart lines and total.
func (c *Controller) RenderCart() {
	lines := c.cart.Lines()
	if len(lines) == 0 {
		c.println(c.style.muted.Render("Your cart is empty."))
		return
	}
	t := c.newTable("ID", "Name", "Qty", "Unit", "Subtotal")
	for _, l := range lines {
		t.Row(strconv.FormatInt(l.ItemID, 10), l.Name, strconv.Itoa(l.Quantity), formatPrice(l.UnitPrice), formatPrice(l.Subtotal()))
	}
	c.println(c.style.title.Render("Cart"))
	c.println(t.String())
	c.println(c.style.total.Render("Total: " + formatPrice(c.cart.Total())))
}

// RenderOrder confirms a placed order.
func (c *Controller) RenderOrder(o models.Order) {
	c.Notice(fmt.Sprintf("Order #%d placed (%s), total %s", o.ID, o.Status, formatPrice(o.Total)))
}

func (c *Controller) newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(c.style.border).
		Headers(headers...)
}

func (c *Controller) println(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, s)
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
