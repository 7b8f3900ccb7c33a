package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"merchly/shop-api/pkg/middleware"
)

func (a *API) CartUpdate(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		failWith(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var data cartQuantityBody
	if err := c.ShouldBind(&data); err != nil {
		failWith(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user := middleware.CurrentUser(c)

	i := user.FindCartItem(productID)
	if i == -1 {
		failWith(c, http.StatusNotFound, "Product not found in cart")
		return
	}

	// A non-positive quantity removes the line entirely
	if data.Quantity <= 0 {
		user.Cart = append(user.Cart[:i], user.Cart[i+1:]...)
	} else {
		user.Cart[i].Quantity = data.Quantity
	}

	if err := a.Users.Save(c.Request.Context(), user); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cart item updated",
	})
}
