package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"merchly/shop-api/pkg/middleware"
)

func (a *API) WishlistDelete(c *gin.Context) {
	name := c.Param("wishlistName")
	user := middleware.CurrentUser(c)

	i := user.FindWishlist(name)
	if i == -1 {
		failWith(c, http.StatusNotFound, "Wishlist not found")
		return
	}

	user.Wishlists = append(user.Wishlists[:i], user.Wishlists[i+1:]...)

	if err := a.Users.Save(c.Request.Context(), user); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Wishlist deleted",
	})
}
