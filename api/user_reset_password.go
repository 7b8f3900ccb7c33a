package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"merchly/shop-api/validators"
)

type resetPasswordBody struct {
	Password string `json:"password"`
}

func (a *API) UserResetPassword(c *gin.Context) {
	token := c.Param("token")

	var data resetPasswordBody
	if err := c.ShouldBind(&data); err != nil {
		failWith(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validators.PasswordValidator(data.Password); err != nil {
		failWith(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.Identity.ResetPassword(c.Request.Context(), token, data.Password); err != nil {
		fail(c, err)
		return
	}

	// A password change invalidates the browser's session indicator
	c.SetCookie("token", "", -1, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password updated successfully",
	})
}
