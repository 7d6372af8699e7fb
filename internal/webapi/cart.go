package webapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/campusworks/campusmarket/internal/shop"
	"github.com/campusworks/campusmarket/internal/webserver"
	"github.com/campusworks/campusmarket/pkg/metrics"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type addToCartForm struct {
	ProductID int64 `form:"product_id" json:"product_id,string" validate:"required"`
	Quantity  int   `form:"quantity" json:"quantity"`
}

func addToCart(c echo.Context) error {
	uid, _ := webserver.CurrentUserID(c)
	var form addToCartForm
	if err := c.Bind(&form); err != nil {
		return err
	}
	if err := c.Validate(&form); err != nil {
		return err
	}

	err := shopService(c).AddToCart(c.Request().Context(), uid, form.ProductID, form.Quantity)
	if errors.Is(err, shop.ErrProductNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Product not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not add to cart"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Added to cart"})
}

type updateCartForm struct {
	EntryID  int64 `form:"entry_id" json:"entry_id,string" validate:"required"`
	Quantity int   `form:"quantity" json:"quantity"`
}

// updateCart sets a line's quantity; zero or less removes the line.
func updateCart(c echo.Context) error {
	uid, _ := webserver.CurrentUserID(c)
	var form updateCartForm
	if err := c.Bind(&form); err != nil {
		return err
	}
	if err := c.Validate(&form); err != nil {
		return err
	}
	if err := shopService(c).UpdateQuantity(c.Request().Context(), uid, form.EntryID, form.Quantity); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not update cart"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Cart updated"})
}

// flashReconciliation surfaces what the stock sweep changed.
func flashReconciliation(c echo.Context, rec *shop.Reconciliation) {
	for _, name := range rec.Dropped {
		webserver.Flash(c, "warning", fmt.Sprintf("%s is out of stock and was removed from your cart", name))
	}
	for _, name := range rec.Clamped {
		webserver.Flash(c, "warning", fmt.Sprintf("Quantity of %s was reduced to the available stock", name))
	}
	if rec.Removed > 0 {
		webserver.Flash(c, "info", "Some items are no longer available and were removed from your cart")
	}
}

func cartPage(c echo.Context) error {
	uid, _ := webserver.CurrentUserID(c)
	rec, err := shopService(c).Reconcile(c.Request().Context(), uid)
	if err != nil {
		zap.S().Errorf("failed to load cart for user %d: %s", uid, err)
		webserver.Flash(c, "danger", "Could not load your cart, please try again")
		return webserver.Render(c, "cart.tmpl", echo.Map{
			"Lines": nil,
			"Total": 0.0,
		})
	}
	flashReconciliation(c, rec)
	return webserver.Render(c, "cart.tmpl", echo.Map{
		"Lines": rec.Lines,
		"Total": rec.Total,
	})
}

func checkoutPage(c echo.Context) error {
	uid, _ := webserver.CurrentUserID(c)
	rec, err := shopService(c).Reconcile(c.Request().Context(), uid)
	if err != nil {
		zap.S().Errorf("failed to load cart for user %d: %s", uid, err)
		webserver.Flash(c, "danger", "Could not load your cart, please try again")
		return c.Redirect(http.StatusFound, "/cart")
	}
	if len(rec.Lines) == 0 {
		webserver.Flash(c, "warning", "Your cart is empty")
		return c.Redirect(http.StatusFound, "/cart")
	}
	flashReconciliation(c, rec)
	return webserver.Render(c, "checkout.tmpl", echo.Map{
		"Lines": rec.Lines,
		"Total": rec.Total,
	})
}

func checkoutSubmit(c echo.Context) error {
	uid, _ := webserver.CurrentUserID(c)
	payment := strings.TrimSpace(c.FormValue("payment_method"))
	address := c.FormValue("address")

	order, rec, err := shopService(c).Checkout(c.Request().Context(), uid, payment, address)
	switch {
	case errors.Is(err, shop.ErrAddressRequired):
		webserver.Flash(c, "danger", "Please provide a shipping address")
		return c.Redirect(http.StatusFound, "/checkout")
	case errors.Is(err, shop.ErrEmptyCart):
		webserver.Flash(c, "warning", "Your cart is empty")
		return c.Redirect(http.StatusFound, "/cart")
	case errors.Is(err, shop.ErrStockConflict):
		webserver.Flash(c, "danger", "An item sold out while you were checking out. Please review your cart.")
		return c.Redirect(http.StatusFound, "/cart")
	case err != nil:
		zap.S().Errorf("checkout failed for user %d: %s", uid, err)
		webserver.Flash(c, "danger", "Checkout failed, please try again")
		return c.Redirect(http.StatusFound, "/cart")
	}

	if rec != nil {
		flashReconciliation(c, rec)
	}
	metrics.Inc(metrics.MetricOrderPlaced)
	metrics.Inc(metrics.MetricCartCheckouts)
	webserver.AppCtx().Bus().Publish("order.created", order)

	webserver.Flash(c, "success", fmt.Sprintf("Order #%d placed successfully!", order.ID))
	return c.Redirect(http.StatusFound, fmt.Sprintf("/order/%d", order.ID))
}
