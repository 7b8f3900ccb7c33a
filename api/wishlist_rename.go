package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"merchly/shop-api/pkg/middleware"
)

func (a *API) WishlistRename(c *gin.Context) {
	name := c.Param("wishlistName")

	var data wishlistNameBody
	if err := c.ShouldBind(&data); err != nil || data.Name == "" {
		failWith(c, http.StatusBadRequest, "Name is required")
		return
	}

	user := middleware.CurrentUser(c)

	i := user.FindWishlist(name)
	if i == -1 {
		failWith(c, http.StatusNotFound, "Wishlist not found")
		return
	}

	if user.FindWishlist(data.Name) > -1 {
		failWith(c, http.StatusBadRequest, "Wishlist with this name already exists")
		return
	}

	user.Wishlists[i].Name = data.Name

	if err := a.Users.Save(c.Request.Context(), user); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Wishlist name updated",
	})
}
