package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (a *API) ProductFetch(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		failWith(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := a.Products.FindByID(c.Request.Context(), productID)
	if err != nil {
		fail(c, err)
		return
	}

	if product == nil {
		failWith(c, http.StatusNotFound, "Product not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}
