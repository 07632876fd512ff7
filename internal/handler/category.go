package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/arthurlfarjanes/PlanilhaGastos/internal/ledger"
	"github.com/arthurlfarjanes/PlanilhaGastos/internal/middleware"
	"github.com/arthurlfarjanes/PlanilhaGastos/internal/models"
	"github.com/arthurlfarjanes/PlanilhaGastos/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CategoryHandler serves per-user category CRUD.
type CategoryHandler struct {
	DB  *gorm.DB
	Log *logrus.Logger
}

func NewCategoryHandler(db *gorm.DB, log *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{DB: db, Log: log}
}

type categoryReq struct {
	Nome string `json:"nome" binding:"required"`
}

type categoryResp struct {
	ID   uint   `json:"id"`
	Nome string `json:"nome"`
}

func toCategoryResp(cat *models.Category) categoryResp {
	return categoryResp{ID: cat.ID, Nome: cat.Name}
}

func (h *CategoryHandler) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	var cats []models.Category
	if err := h.DB.Where("user_id = ?", userID).
		Order("name ASC").
		Find(&cats).Error; err != nil {
		h.Log.WithError(err).Error("list categories")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal server error")
		return
	}

	items := make([]categoryResp, 0, len(cats))
	for i := range cats {
		items = append(items, toCategoryResp(&cats[i]))
	}
	util.Success(c, util.Response{"categorias": items})
}

func (h *CategoryHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "category name is required")
		return
	}
	req.Nome = strings.TrimSpace(req.Nome)
	if req.Nome == "" || len(req.Nome) > 64 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "category name must be 1-64 characters")
		return
	}

	cat := models.Category{UserID: userID, Name: req.Nome}
	if err := h.DB.Create(&cat).Error; err != nil {
		h.Log.WithError(err).Error("create category")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal server error")
		return
	}

	util.Created(c, util.Response{"categoria": toCategoryResp(&cat)})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid category id")
		return
	}

	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "category name is required")
		return
	}
	req.Nome = strings.TrimSpace(req.Nome)
	if req.Nome == "" || len(req.Nome) > 64 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "category name must be 1-64 characters")
		return
	}

	res := h.DB.Model(&models.Category{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("name", req.Nome)
	if res.Error != nil {
		h.Log.WithError(res.Error).Error("update category")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal server error")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "category not found")
		return
	}

	util.Success(c, util.Response{
		"categoria": categoryResp{ID: uint(id), Nome: req.Nome},
	})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid category id")
		return
	}

	if err := ledger.DeleteCategory(h.DB, userID, uint(id)); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "category not found")
			return
		}
		h.Log.WithError(err).Error("delete category")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal server error")
		return
	}

	util.NoContent(c)
}
