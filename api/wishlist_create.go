package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"merchly/shop-api/internal/model"
	"merchly/shop-api/pkg/middleware"
)

type wishlistNameBody struct {
	Name string `json:"name"`
}

func (a *API) WishlistCreate(c *gin.Context) {
	var data wishlistNameBody
	if err := c.ShouldBind(&data); err != nil || data.Name == "" {
		failWith(c, http.StatusBadRequest, "Name is required")
		return
	}

	user := middleware.CurrentUser(c)

	if user.FindWishlist(data.Name) > -1 {
		failWith(c, http.StatusBadRequest, "Wishlist with this name already exists")
		return
	}

	wishlist := model.Wishlist{Name: data.Name, Products: []model.WishlistItem{}}
	user.Wishlists = append(user.Wishlists, wishlist)

	if err := a.Users.Save(c.Request.Context(), user); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Wishlist created",
		"wishlist": wishlist,
	})
}
