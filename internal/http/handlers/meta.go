package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Root is the welcome card served at /.
func Root(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"message":  "Welcome to EduHub API",
		"version":  "1.0.0",
		"database": "MongoDB",
		"docs":     "/docs",
	})
}
