package endpoints

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	val "github.com/go-ozzo/ozzo-validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"git.sr.ht/~jkovac/booking-api/kernel"
	"git.sr.ht/~jkovac/booking-api/models"
)

type CredentialsDto struct {
	Admin    string `json:"admin"`
	Password string `json:"password"`
}

func (dto CredentialsDto) Validate() error {
	return val.ValidateStruct(&dto,
		val.Field(&dto.Admin, val.Required),
		val.Field(&dto.Password, val.Required),
	)
}

func Register(c *gin.Context) {
	rt := c.MustGet("rt").(*kernel.RequestRuntime)
	rt.StepInto("auth.register")

	var dto CredentialsDto
	if !rt.BindJSON(&dto) {
		return
	}
	if err := dto.Validate(); err != nil {
		rt.E(http.StatusBadRequest, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		rt.Ef(http.StatusInternalServerError, "Server error")
		return
	}

	id, err := kernel.UuidV7()
	if err != nil {
		rt.Ef(http.StatusInternalServerError, "Server error")
		return
	}

	user := models.AdminUser{
		ID:           id,
		Admin:        dto.Admin,
		PasswordHash: string(hash),
	}
	if err := rt.DB.WithContext(rt.SpanContext).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			rt.Ef(http.StatusBadRequest, "admin already exists")
			return
		}
		rt.Ef(http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	rt.StepBack()
}

func Login(c *gin.Context) {
	rt := c.MustGet("rt").(*kernel.RequestRuntime)
	rt.StepInto("auth.login")

	var dto CredentialsDto
	if !rt.BindJSON(&dto) {
		return
	}
	if err := dto.Validate(); err != nil {
		rt.E(http.StatusBadRequest, err)
		return
	}

	var user models.AdminUser
	found, err := rt.First(&user, "admin = ?", dto.Admin)
	if err != nil {
		rt.Ef(http.StatusInternalServerError, "Server error")
		return
	}
	if !found {
		rt.Ef(http.StatusNotFound, "User not found")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(dto.Password)) != nil {
		rt.Ef(http.StatusUnauthorized, "Invalid password")
		return
	}

	// No token or session is issued; a 200 only proves the call.
	c.JSON(http.StatusOK, gin.H{"message": "Login successful"})
	rt.StepBack()
}
