package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"merchly/shop-api/pkg/middleware"
)

func (a *API) UserLogout(c *gin.Context) {
	user := middleware.CurrentUser(c)
	token := middleware.CurrentToken(c)

	if err := a.Identity.Logout(c.Request.Context(), user, token); err != nil {
		fail(c, err)
		return
	}

	c.SetCookie("token", "", -1, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}
