package adminapi

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/campusworks/campusmarket/internal/domain"
	"github.com/campusworks/campusmarket/internal/webserver"
	"github.com/campusworks/campusmarket/pkg/common"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

func registerProductRoutes() {
	webserver.AdminGET("/products", adminProductsPage)
	webserver.AdminPOST("/products", createProduct)
	webserver.AdminGET("/product/:id/edit", editProductPage)
	webserver.AdminPOST("/product/:id/edit", updateProduct)
	webserver.AdminDELETE("/products/:id", deleteProduct)
	webserver.AdminGET("/api/products", listProducts)
}

func adminProductsPage(c echo.Context) error {
	var products []domain.Product
	if err := GetDB(c).Order("created_at desc").Find(&products).Error; err != nil {
		return err
	}
	return webserver.Render(c, "admin_products.tmpl", echo.Map{
		"Products": products,
		"LowStock": webserver.AppCtx().ConfigMgr().GetInt("shop", "LowStockThreshold"),
	})
}

// listProducts is the JSON listing used by page scripts, with the
// usual pagination, filter and whitelisted sorting.
func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	base := GetDB(c).Model(&domain.Product{})
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		base = base.Where("name ilike ?", "%"+q+"%")
	}
	if category := strings.TrimSpace(c.QueryParam("category")); category != "" {
		base = base.Where("category = ?", category)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	allowed := map[string]string{
		"id": "id", "name": "name", "price": "price",
		"stock": "stock", "created_at": "created_at",
	}
	sortCol, okCol := allowed[strings.TrimSpace(c.QueryParam("sort"))]
	if !okCol {
		sortCol = "id"
	}
	order := strings.ToUpper(strings.TrimSpace(c.QueryParam("order")))
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}

	var products []domain.Product
	if err := base.Order(sortCol + " " + order).
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&products).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return paged(c, products, total, page, pageSize)
}

// saveProductImage stores the uploaded image and returns its stored
// filename, or "" when no file was submitted.
func saveProductImage(c echo.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}
	if !common.AllowedImageFile(file.Filename) {
		return "", errors.New("only png, jpg, jpeg and gif images are allowed")
	}
	name := common.UploadFilename(file.Filename)
	dst := filepath.Join(webserver.AppCtx().Config().GetUploadDir(), name)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	if err := common.CopyToFile(dst, src); err != nil {
		return "", err
	}
	return name, nil
}

func createProduct(c echo.Context) error {
	uid, _ := webserver.CurrentUserID(c)

	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		webserver.Flash(c, "danger", "Product name is required")
		return c.Redirect(http.StatusFound, "/admin/products")
	}

	image, err := saveProductImage(c)
	if err != nil {
		webserver.Flash(c, "danger", err.Error())
		return c.Redirect(http.StatusFound, "/admin/products")
	}

	product := domain.Product{
		Name:        name,
		Description: c.FormValue("description"),
		Price:       cast.ToFloat64(c.FormValue("price")),
		Category:    strings.TrimSpace(c.FormValue("category")),
		Stock:       cast.ToInt(c.FormValue("stock")),
		SellerID:    uid,
	}
	if image != "" {
		product.Image = image
	}
	if err := GetDB(c).Create(&product).Error; err != nil {
		zap.S().Errorf("failed to create product %s: %s", name, err)
		webserver.Flash(c, "danger", "Failed to create product")
	} else {
		webserver.Flash(c, "success", "Product added")
	}
	return c.Redirect(http.StatusFound, "/admin/products")
}

func editProductPage(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	var product domain.Product
	if err := GetDB(c).First(&product, id).Error; err != nil {
		webserver.Flash(c, "warning", "Product not found")
		return c.Redirect(http.StatusFound, "/admin/products")
	}
	return webserver.Render(c, "admin_edit_product.tmpl", echo.Map{"Product": product})
}

func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	db := GetDB(c)

	var product domain.Product
	if err := db.First(&product, id).Error; err != nil {
		webserver.Flash(c, "warning", "Product not found")
		return c.Redirect(http.StatusFound, "/admin/products")
	}

	image, err := saveProductImage(c)
	if err != nil {
		webserver.Flash(c, "danger", err.Error())
		return c.Redirect(http.StatusFound, "/admin/product/"+c.Param("id")+"/edit")
	}

	updates := map[string]interface{}{
		"name":        strings.TrimSpace(c.FormValue("name")),
		"description": c.FormValue("description"),
		"price":       cast.ToFloat64(c.FormValue("price")),
		"category":    strings.TrimSpace(c.FormValue("category")),
		"stock":       cast.ToInt(c.FormValue("stock")),
	}
	if image != "" {
		updates["image"] = image
	}
	if err := db.Model(&product).Updates(updates).Error; err != nil {
		webserver.Flash(c, "danger", "Failed to update product")
	} else {
		webserver.Flash(c, "success", "Product updated")
	}
	return c.Redirect(http.StatusFound, "/admin/products")
}

// deleteProduct removes a product. Cart rows referencing it go with
// it; order history keeps its snapshots.
func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	result := GetDB(c).Delete(&domain.Product{}, id)
	if result.Error != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, echo.Map{"deleted": cast.ToString(id)})
}
