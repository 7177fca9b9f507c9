package endpoints

import (
	"github.com/gin-gonic/gin"

	"git.sr.ht/~jkovac/booking-api/assert"
	"git.sr.ht/~jkovac/booking-api/endpoints/blog"
	"git.sr.ht/~jkovac/booking-api/kernel"
)

// RegisterRoutes wires every route family onto the engine. main and
// the endpoint tests share this table.
func RegisterRoutes(r *gin.Engine, art *kernel.AppRuntime) {
	assert.NotNil(art, "app runtime is required")
	assert.NotNil(art.DatabaseClient, "database client is not initialized")

	r.POST("/api/register", Register)
	r.POST("/api/login", Login)

	r.POST("/api/slots", CreateSlot)
	r.GET("/api/slots", ListSlots)
	r.POST("/api/slots/book", BookSlot)
	r.PUT("/api/slots/book/:slotId", BookSlotById)

	r.POST("/data", CreateData)
	r.GET("/api/latestdata", LatestData)
	r.GET("/getData", ListData)

	blog.RegisterController(r)
}
