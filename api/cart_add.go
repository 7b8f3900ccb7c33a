package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"merchly/shop-api/internal/model"
	"merchly/shop-api/pkg/middleware"
)

type cartQuantityBody struct {
	Quantity int `json:"quantity"`
}

func (a *API) CartAdd(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		failWith(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var data cartQuantityBody
	_ = c.ShouldBind(&data)
	if data.Quantity <= 0 {
		data.Quantity = 1
	}

	product, err := a.Products.FindByID(c.Request.Context(), productID)
	if err != nil {
		fail(c, err)
		return
	}

	if product == nil {
		failWith(c, http.StatusNotFound, "Product not found")
		return
	}

	user := middleware.CurrentUser(c)

	if i := user.FindCartItem(productID); i > -1 {
		user.Cart[i].Quantity += data.Quantity
	} else {
		user.Cart = append(user.Cart, model.CartItem{
			ProductID: productID,
			Product:   *product,
			Quantity:  data.Quantity,
		})
	}

	if err := a.Users.Save(c.Request.Context(), user); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product added to cart",
	})
}
