package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"merchly/shop-api/validators"
)

type forgotPasswordBody struct {
	Email string `json:"email"`
}

func (a *API) UserForgotPassword(c *gin.Context) {
	var data forgotPasswordBody
	if err := c.ShouldBind(&data); err != nil {
		failWith(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		failWith(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.Identity.ForgotPassword(c.Request.Context(), data.Email); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    "Email sent",
	})
}
