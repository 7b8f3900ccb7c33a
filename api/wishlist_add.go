package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"merchly/shop-api/internal/model"
	"merchly/shop-api/pkg/middleware"
)

func (a *API) WishlistAdd(c *gin.Context) {
	name := c.Param("wishlistName")

	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		failWith(c, http.StatusBadRequest, "Invalid product ID")
		return
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

	i := user.FindWishlist(name)
	if i == -1 {
		failWith(c, http.StatusNotFound, "Wishlist not found")
		return
	}

	for _, item := range user.Wishlists[i].Products {
		if item.ProductID == productID {
			failWith(c, http.StatusBadRequest, "Product already in wishlist")
			return
		}
	}

	user.Wishlists[i].Products = append(user.Wishlists[i].Products, model.WishlistItem{
		ProductID: productID,
		Product:   *product,
	})

	if err := a.Users.Save(c.Request.Context(), user); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product added to wishlist",
	})
}
