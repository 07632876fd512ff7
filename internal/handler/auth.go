package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/arthurlfarjanes/PlanilhaGastos/internal/models"
	"github.com/arthurlfarjanes/PlanilhaGastos/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	DB        *gorm.DB
	Log       *logrus.Logger
	JWTSecret string
	TokenTTL  time.Duration
}

func NewAuthHandler(db *gorm.DB, log *logrus.Logger, jwtSecret string, ttlHours int) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 1
	}
	return &AuthHandler{
		DB:        db,
		Log:       log,
		JWTSecret: jwtSecret,
		TokenTTL:  time.Duration(ttlHours) * time.Hour,
	}
}

type registerReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "username and password are required")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || len(req.Username) > 64 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "username must be 1-64 characters")
		return
	}

	var count int64
	if err := h.DB.Model(&models.User{}).
		Where("username = ?", req.Username).
		Count(&count).Error; err != nil {
		h.Log.WithError(err).Error("register: check username")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal server error")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusConflict, util.CodeConflict, "username already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.Log.WithError(err).Error("register: hash password")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal server error")
		return
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
	}
	if err := h.DB.Create(&user).Error; err != nil {
		h.Log.WithError(err).Error("register: create user")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal server error")
		return
	}

	h.Log.WithField("user_id", user.ID).Info("user registered")
	util.Created(c, util.Response{
		"id":       user.ID,
		"username": user.Username,
	})
}

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "username and password are required")
		return
	}

	req.Username = strings.TrimSpace(req.Username)

	var user models.User
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			// same answer as a wrong password
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid credentials")
		} else {
			h.Log.WithError(err).Error("login: find user")
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal server error")
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid credentials")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, user.ID, user.Username, h.TokenTTL)
	if err != nil {
		h.Log.WithError(err).Error("login: generate token")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal server error")
		return
	}

	h.Log.WithField("user_id", user.ID).Info("user logged in")
	util.Success(c, util.Response{
		"token":    token,
		"username": user.Username,
	})
}
