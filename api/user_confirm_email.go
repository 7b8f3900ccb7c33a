package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) UserConfirmEmail(c *gin.Context) {
	token := c.Param("token")

	if err := a.Identity.ConfirmEmail(c.Request.Context(), token); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Email confirmed",
	})
}
