package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"merchly/shop-api/pkg/middleware"
	"merchly/shop-api/validators"
)

type updateUserBody struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

func (a *API) UserUpdate(c *gin.Context) {
	var data updateUserBody
	if err := c.ShouldBind(&data); err != nil {
		failWith(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if data.Email == "" && data.Username == "" {
		failWith(c, http.StatusBadRequest, "At least one field is required for update")
		return
	}

	if data.Email != "" {
		if err := validators.EmailValidator(data.Email); err != nil {
			failWith(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	if data.Username != "" {
		if err := validators.UsernameValidator(data.Username); err != nil {
			failWith(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	user := middleware.CurrentUser(c)

	if err := a.Identity.UpdateProfile(c.Request.Context(), user, data.Email, data.Username); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User updated successfully",
		"data":    user,
	})
}
