package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"merchly/shop-api/pkg/middleware"
)

func (a *API) UserDelete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := a.Identity.DeleteAccount(c.Request.Context(), user); err != nil {
		fail(c, err)
		return
	}

	c.SetCookie("token", "", -1, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User deleted successfully",
	})
}
