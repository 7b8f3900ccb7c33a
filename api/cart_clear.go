package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"merchly/shop-api/internal/model"
	"merchly/shop-api/pkg/middleware"
)

func (a *API) CartClear(c *gin.Context) {
	user := middleware.CurrentUser(c)
	user.Cart = []model.CartItem{}

	if err := a.Users.Save(c.Request.Context(), user); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cart cleared",
	})
}
