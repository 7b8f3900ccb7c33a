package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"merchly/shop-api/pkg/middleware"
)

func (a *API) UserFetch(c *gin.Context) {
	user := middleware.CurrentUser(c)

	// Reload so the response reflects the latest saved state, not the
	// document the auth middleware resolved.
	fresh, err := a.Identity.Profile(c.Request.Context(), user.ID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    fresh,
	})
}
