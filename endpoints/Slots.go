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

const dateLayout = "2006-01-02"

// errSlotTaken marks the conditional update losing the booking race.
var errSlotTaken = errors.New("slot already booked")

type CreateSlotDto struct {
	Date      string `json:"date"`
	StartTime string `json:"starttime"`
	EndTime   string `json:"endtime"`
	Mode      string `json:"mode"`
}

func (dto CreateSlotDto) Validate() error {
	return val.ValidateStruct(&dto,
		val.Field(&dto.Date, val.Required, val.Date(dateLayout)),
		val.Field(&dto.StartTime, val.Required),
		val.Field(&dto.EndTime, val.Required),
		val.Field(&dto.Mode, val.Required),
	)
}

type BookSlotDto struct {
	SlotId string `json:"slotId" binding:"required"`
	DataId string `json:"dataId" binding:"required"`
}

func CreateSlot(c *gin.Context) {
	rt := c.MustGet("rt").(*kernel.RequestRuntime)
	rt.StepInto("slots.create")

	var dto CreateSlotDto
	if !rt.BindJSON(&dto) {
		return
	}
	if err := dto.Validate(); err != nil {
		rt.E(http.StatusBadRequest, err)
		return
	}
	day, _ := time.Parse(dateLayout, dto.Date)

	var existing models.Slot
	found, err := rt.First(&existing,
		"date = ? AND start_time = ? AND end_time = ? AND mode = ?",
		day, dto.StartTime, dto.EndTime, dto.Mode)
	if err != nil {
		rt.Ef(http.StatusInternalServerError, "Server error")
		return
	}
	if found {
		rt.Ef(http.StatusBadRequest, "Slot already exists for the given date and time")
		return
	}

	id, err := kernel.UuidV7()
	if err != nil {
		rt.Ef(http.StatusInternalServerError, "Server error")
		return
	}

	slot := models.Slot{
		ID:        id,
		Date:      day,
		StartTime: dto.StartTime,
		EndTime:   dto.EndTime,
		Mode:      dto.Mode,
	}
	if err := rt.DB.WithContext(rt.SpanContext).Create(&slot).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// unique index caught what the pre-check raced past
			rt.Ef(http.StatusBadRequest, "Slot already exists for the given date and time")
			return
		}
		rt.Ef(http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Slot added successfully"})
	rt.StepBack()
}

// ListSlots returns the slots of a single day. The window matches the
// store's original query: [date 00:00:00, date 23:59:59).
func ListSlots(c *gin.Context) {
	rt := c.MustGet("rt").(*kernel.RequestRuntime)
	rt.StepInto("slots.list")

	date := c.Query("date")
	if date == "" {
		rt.Ef(http.StatusBadRequest, "date query parameter is required")
		return
	}
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		rt.Ef(http.StatusBadRequest, "invalid date: %v", err)
		return
	}

	dayEnd := day.Add(23*time.Hour + 59*time.Minute + 59*time.Second)

	slots := make([]models.Slot, 0)
	if err := rt.DB.WithContext(rt.SpanContext).
		Where("date >= ? AND date < ?", day, dayEnd).
		Find(&slots).Error; err != nil {
		rt.Ef(http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, slots)
	rt.StepBack()
}

// BookSlot links an intake submission to a slot. The slot flip and
// the submission flip run in one transaction, with the flip itself a
// conditional update so concurrent bookings cannot both win.
func BookSlot(c *gin.Context) {
	rt := c.MustGet("rt").(*kernel.RequestRuntime)
	rt.StepInto("slots.book")

	var dto BookSlotDto
	if !rt.BindJSON(&dto) {
		return
	}

	var slot models.Slot
	found, err := rt.First(&slot, "id = ?", dto.SlotId)
	if err != nil {
		rt.Ef(http.StatusInternalServerError, "Server error")
		return
	}
	if !found {
		rt.Ef(http.StatusNotFound, "Slot not found")
		return
	}

	var data models.Data
	found, err = rt.First(&data, "id = ?", dto.DataId)
	if err != nil {
		rt.Ef(http.StatusInternalServerError, "Server error")
		return
	}
	if !found {
		rt.Ef(http.StatusNotFound, "Data not found")
		return
	}

	if slot.IsBooked {
		rt.Ef(http.StatusBadRequest, "Slot is already booked")
		return
	}

	err = rt.DB.WithContext(rt.SpanContext).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Slot{}).
			Where("id = ? AND is_booked = ?", dto.SlotId, false).
			Update("is_booked", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errSlotTaken
		}
		return tx.Model(&models.Data{}).
			Where("id = ?", dto.DataId).
			Update("is_submitted", true).Error
	})
	if err != nil {
		if errors.Is(err, errSlotTaken) {
			rt.Ef(http.StatusBadRequest, "Slot is already booked")
			return
		}
		rt.Ef(http.StatusInternalServerError, "Server error")
		return
	}

	slot.IsBooked = true
	c.JSON(http.StatusOK, gin.H{"message": "Slot booked successfully", "slot": slot})
	rt.StepBack()
}

// BookSlotById books a slot without an intake submission attached.
func BookSlotById(c *gin.Context) {
	rt := c.MustGet("rt").(*kernel.RequestRuntime)
	rt.StepInto("slots.book_by_id")

	slotId := c.Param("slotId")

	var slot models.Slot
	found, err := rt.First(&slot, "id = ?", slotId)
	if err != nil {
		rt.Ef(http.StatusInternalServerError, "Server error")
		return
	}
	if !found {
		rt.Ef(http.StatusNotFound, "Slot not found")
		return
	}

	res := rt.DB.WithContext(rt.SpanContext).Model(&models.Slot{}).
		Where("id = ? AND is_booked = ?", slotId, false).
		Update("is_booked", true)
	if res.Error != nil {
		rt.Ef(http.StatusInternalServerError, "Server error")
		return
	}
	if res.RowsAffected == 0 {
		rt.Ef(http.StatusBadRequest, "Slot is already booked")
		return
	}

	slot.IsBooked = true
	c.JSON(http.StatusOK, gin.H{"message": "Slot booked successfully", "slot": slot})
	rt.StepBack()
}
