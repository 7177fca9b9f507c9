package endpoints

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	val "github.com/go-ozzo/ozzo-validation"
	"gorm.io/gorm"

	"git.sr.ht/~jkovac/booking-api/kernel"
	"git.sr.ht/~jkovac/booking-api/models"
)

type CreateDataDto struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Mode        string `json:"mode"`
	Email       string `json:"email"`
	IsSubmitted bool   `json:"isSubmitted"`
}

func (dto CreateDataDto) Validate() error {
	return val.ValidateStruct(&dto,
		val.Field(&dto.Name, val.Required),
		val.Field(&dto.Phone, val.Required),
		val.Field(&dto.Date, val.Required, val.Date(dateLayout)),
		val.Field(&dto.Time, val.Required),
		val.Field(&dto.Mode, val.Required),
		val.Field(&dto.Email, val.Required),
	)
}

func CreateData(c *gin.Context) {
	rt := c.MustGet("rt").(*kernel.RequestRuntime)
	rt.StepInto("data.create")

	var dto CreateDataDto
	if !rt.BindJSON(&dto) {
		return
	}
	if err := dto.Validate(); err != nil {
		rt.E(http.StatusBadRequest, err)
		return
	}
	day, _ := time.Parse(dateLayout, dto.Date)

	id, err := kernel.UuidV7()
	if err != nil {
		rt.Ef(http.StatusInternalServerError, "An error occurred")
		return
	}

	data := models.Data{
		ID:          id,
		Name:        dto.Name,
		Phone:       dto.Phone,
		Date:        day,
		Time:        dto.Time,
		Mode:        dto.Mode,
		Email:       dto.Email,
		IsSubmitted: dto.IsSubmitted,
	}
	if err := rt.DB.WithContext(rt.SpanContext).Create(&data).Error; err != nil {
		rt.Ef(http.StatusInternalServerError, "An error occurred")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Data saved successfully"})
	rt.StepBack()
}

// LatestData returns the newest submission not yet linked to a slot.
// The admin frontend polls this to find the next request to book.
func LatestData(c *gin.Context) {
	rt := c.MustGet("rt").(*kernel.RequestRuntime)
	rt.StepInto("data.latest")

	var data models.Data
	err := rt.DB.WithContext(rt.SpanContext).
		Where("is_submitted = ?", false).
		Order("created_at DESC").Order("id DESC").
		First(&data).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			rt.Ef(http.StatusNotFound, "No data found")
			return
		}
		rt.Ef(http.StatusInternalServerError, "An error occurred")
		return
	}

	c.JSON(http.StatusOK, data)
	rt.StepBack()
}

func ListData(c *gin.Context) {
	rt := c.MustGet("rt").(*kernel.RequestRuntime)
	rt.StepInto("data.list")

	data := make([]models.Data, 0)
	if err := rt.DB.WithContext(rt.SpanContext).Find(&data).Error; err != nil {
		rt.Ef(http.StatusInternalServerError, "An error occurred")
		return
	}

	c.JSON(http.StatusOK, data)
	rt.StepBack()
}
