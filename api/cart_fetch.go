package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"merchly/shop-api/pkg/middleware"
)

func (a *API) CartFetch(c *gin.Context) {
	user := middleware.CurrentUser(c)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"cart":    user.Cart,
	})
}
