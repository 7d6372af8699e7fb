package webapi

import (
	"net/http"

	"github.com/campusworks/campusmarket/internal/domain"
	"github.com/campusworks/campusmarket/internal/webserver"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
)

// productRow is a product joined with its seller's display name.
type productRow struct {
	domain.Product
	SellerName string `gorm:"column:seller_name"`
}

// feedbackRow is product feedback joined with the author's name.
type feedbackRow struct {
	domain.Feedback
	UserName string `gorm:"column:user_name"`
}

func homePage(c echo.Context) error {
	var products []domain.Product
	webserver.GetDB(c).Order("created_at desc").Limit(8).Find(&products)
	return webserver.Render(c, "home.tmpl", echo.Map{"Products": products})
}

func productsPage(c echo.Context) error {
	search := c.QueryParam("search")
	category := c.QueryParam("category")

	query := webserver.GetDB(c).Table("products p").
		Select("p.*, u.name as seller_name").
		Joins("left join users u on u.id = p.seller_id")
	if search != "" {
		query = query.Where("p.name ilike ? or p.description ilike ?", "%"+search+"%", "%"+search+"%")
	}
	if category != "" {
		query = query.Where("p.category = ?", category)
	}

	var products []productRow
	if err := query.Order("p.created_at desc").Scan(&products).Error; err != nil {
		return err
	}
	return webserver.Render(c, "products.tmpl", echo.Map{
		"Products": products,
		"Search":   search,
		"Category": category,
	})
}

func productDetailsPage(c echo.Context) error {
	id := cast.ToInt64(c.Param("id"))
	db := webserver.GetDB(c)

	var product productRow
	err := db.Table("products p").
		Select("p.*, u.name as seller_name").
		Joins("left join users u on u.id = p.seller_id").
		Where("p.id = ?", id).
		Take(&product).Error
	if err != nil {
		webserver.Flash(c, "warning", "Product not found")
		return c.Redirect(http.StatusFound, "/products")
	}

	var feedbacks []feedbackRow
	db.Table("feedbacks f").
		Select("f.*, u.name as user_name").
		Joins("left join users u on u.id = f.user_id").
		Where("f.product_id = ?", id).
		Order("f.created_at desc").
		Scan(&feedbacks)

	return webserver.Render(c, "product_details.tmpl", echo.Map{
		"Product":    product.Product,
		"SellerName": product.SellerName,
		"Feedbacks":  feedbacks,
	})
}

type productFeedbackForm struct {
	ProductID int64  `form:"product_id" json:"product_id,string" validate:"required"`
	Rating    int    `form:"rating" json:"rating" validate:"required,min=1,max=5"`
	Comment   string `form:"comment" json:"comment"`
}

// addProductFeedback stores a rating for a product the user bought.
func addProductFeedback(c echo.Context) error {
	uid, _ := webserver.CurrentUserID(c)
	var form productFeedbackForm
	if err := c.Bind(&form); err != nil {
		return err
	}
	if err := c.Validate(&form); err != nil {
		return err
	}

	fb := domain.Feedback{
		UserID:    uid,
		ProductID: form.ProductID,
		Rating:    form.Rating,
		Comment:   form.Comment,
	}
	if err := webserver.GetDB(c).Create(&fb).Error; err != nil {
		webserver.Flash(c, "danger", "Could not save your feedback")
	} else {
		webserver.Flash(c, "success", "Thanks for your feedback!")
	}
	return c.Redirect(http.StatusFound, "/product/"+c.FormValue("product_id"))
}
