// Package webapi implements the storefront: registration and login,
// product browsing, the shopping cart, checkout and order history,
// profile management and the feedback forms.
package webapi

import (
	"github.com/campusworks/campusmarket/internal/shop"
	"github.com/campusworks/campusmarket/internal/webserver"
	"github.com/labstack/echo/v4"
)

// InitRoutes attaches every storefront route to the web server.
func InitRoutes() {
	webserver.WebGET("/", homePage)
	webserver.WebGET("/products", productsPage)
	webserver.WebGET("/product/:id", productDetailsPage)

	webserver.WebGET("/login", loginPage)
	webserver.WebPOST("/login", loginSubmit)
	webserver.WebGET("/register", registerPage)
	webserver.WebPOST("/register", registerSubmit)
	webserver.WebGET("/logout", logout)

	webserver.UserPOST("/add_to_cart", addToCart)
	webserver.UserPOST("/update_cart", updateCart)
	webserver.UserGET("/cart", cartPage)
	webserver.UserGET("/checkout", checkoutPage)
	webserver.UserPOST("/checkout", checkoutSubmit)
	webserver.UserGET("/orders", ordersPage)
	webserver.UserGET("/order/:id", orderDetailsPage)
	webserver.UserGET("/profile", profilePage)
	webserver.UserPOST("/update_profile", updateProfile)
	webserver.UserPOST("/add_feedback", addProductFeedback)

	webserver.WebGET("/feedback", feedbackPage)
	webserver.WebPOST("/feedback", feedbackSubmit)
	webserver.WebGET("/contact", contactPage)
	webserver.WebPOST("/contact", contactSubmit)

	webserver.JwtGET("/session", apiSession)
	webserver.JwtGET("/orders", apiOrders)
	webserver.JwtGET("/cart", apiCart)
}

// shopService builds the cart/checkout service over the request's
// database handle. Swapped out in tests.
var shopService = func(c echo.Context) *shop.Service {
	svc := shop.NewService(shop.NewGormStore(webserver.GetDB(c)))
	svc.SetQuantityLimit(func() int {
		return webserver.AppCtx().ConfigMgr().GetInt("shop", "MaxCartQuantity")
	})
	return svc
}
