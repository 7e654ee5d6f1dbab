package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/vetlinkpe/vetlink-api/internal/middleware"
)

func staffID(c *gin.Context) uint {
	v, _ := c.Get(middleware.ContextStaffID)
	id, _ := v.(uint)
	return id
}

func staffIDPtr(c *gin.Context) *uint {
	id := staffID(c)
	if id == 0 {
		return nil
	}
	return &id
}

func clientID(c *gin.Context) uint {
	v, _ := c.Get(middleware.ContextClientID)
	id, _ := v.(uint)
	return id
}
