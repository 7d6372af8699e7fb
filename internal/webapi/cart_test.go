package webapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/campusworks/campusmarket/internal/mocks"
	"github.com/campusworks/campusmarket/internal/shop"
	"github.com/campusworks/campusmarket/internal/webserver"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// stubShopService routes the package's service constructor to the
// given mock store for the duration of the test.
func stubShopService(t *testing.T, store *mocks.MockStore) {
	t.Helper()
	prev := shopService
	shopService = func(echo.Context) *shop.Service {
		return shop.NewService(store)
	}
	t.Cleanup(func() { shopService = prev })
}

func newCartRequest(e *echo.Echo, method, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withSession(h echo.HandlerFunc) echo.HandlerFunc {
	return session.Middleware(sessions.NewCookieStore([]byte("test-secret")))(h)
}

func TestCheckoutSubmit_StoreFailureRedirectsToCart(t *testing.T) {
	store := new(mocks.MockStore)
	store.On("PurgeStaleEntries", mock.Anything, mock.Anything).Return(int64(0), nil)
	store.On("CartLines", mock.Anything, mock.Anything).Return([]shop.CartLine{
		{EntryID: 1, ProductID: 10, Name: "Notebook", Price: 3.5, Stock: 5, Quantity: 1},
	}, nil)
	store.On("CreateOrder", mock.Anything, mock.Anything).
		Return(errors.New("connection reset by peer"))
	stubShopService(t, store)

	e := echo.New()
	form := url.Values{"payment_method": {"cash"}, "address": {"Dorm 5, Room 12"}}
	c, rec := newCartRequest(e, http.MethodPost, "/checkout", form)

	require.NoError(t, withSession(checkoutSubmit)(c))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/cart", rec.Header().Get("Location"))
	// the error notice was queued in the session
	assert.NotEmpty(t, rec.Header().Values("Set-Cookie"))
}

func TestCartPage_StoreFailureRendersEmptyCart(t *testing.T) {
	store := new(mocks.MockStore)
	store.On("PurgeStaleEntries", mock.Anything, mock.Anything).
		Return(int64(0), errors.New("dial tcp 127.0.0.1:5432: connection refused"))
	stubShopService(t, store)

	e := echo.New()
	e.Renderer = webserver.NewRenderer()
	c, rec := newCartRequest(e, http.MethodGet, "/cart", nil)

	require.NoError(t, withSession(cartPage)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Your Cart")
	assert.Contains(t, rec.Body.String(), "Could not load your cart")
}

func TestCheckoutPage_StoreFailureRedirectsToCart(t *testing.T) {
	store := new(mocks.MockStore)
	store.On("PurgeStaleEntries", mock.Anything, mock.Anything).
		Return(int64(0), errors.New("dial tcp 127.0.0.1:5432: connection refused"))
	stubShopService(t, store)

	e := echo.New()
	c, rec := newCartRequest(e, http.MethodGet, "/checkout", nil)

	require.NoError(t, withSession(checkoutPage)(c))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/cart", rec.Header().Get("Location"))
}
