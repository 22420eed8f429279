package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/LunaStudioApps/salon-scheduler/internal/middleware"
)

func salonIDFrom(c *gin.Context) uint {
	return c.GetUint(middleware.ContextSalonID)
}

func userIDFrom(c *gin.Context) uint {
	return c.GetUint(middleware.ContextUserID)
}

func professionalIDFrom(c *gin.Context) uint {
	return c.GetUint(middleware.ContextProfessionalID)
}
