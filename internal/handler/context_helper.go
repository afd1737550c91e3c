package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dreamstars/feedback-api/internal/middleware"
	"github.com/dreamstars/feedback-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// pageQuery reads the 1-indexed page query parameter, defaulting to 1.
func pageQuery(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
