package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"merchly/shop-api/internal/model"
	"merchly/shop-api/pkg/middleware"
)

func (a *API) WishlistRemove(c *gin.Context) {
	name := c.Param("wishlistName")

	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		failWith(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	user := middleware.CurrentUser(c)

	i := user.FindWishlist(name)
	if i == -1 {
		failWith(c, http.StatusNotFound, "Wishlist not found")
		return
	}

	kept := []model.WishlistItem{}
	for _, item := range user.Wishlists[i].Products {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	user.Wishlists[i].Products = kept

	if err := a.Users.Save(c.Request.Context(), user); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product removed from wishlist",
	})
}
