package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/arthurlfarjanes/PlanilhaGastos/internal/ledger"
	"github.com/arthurlfarjanes/PlanilhaGastos/internal/middleware"
	"github.com/arthurlfarjanes/PlanilhaGastos/internal/models"
	"github.com/arthurlfarjanes/PlanilhaGastos/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// TransactionHandler serves transaction CRUD, installment expansion and
// the comparison report.
type TransactionHandler struct {
	DB  *gorm.DB
	Log *logrus.Logger
}

func NewTransactionHandler(db *gorm.DB, log *logrus.Logger) *TransactionHandler {
	return &TransactionHandler{DB: db, Log: log}
}

// ---------- request/response shapes ----------

// amountStr accepts both quoted and bare JSON numbers; older clients
// sent the value unquoted.
type amountStr string

func (a *amountStr) UnmarshalJSON(b []byte) error {
	*a = amountStr(strings.Trim(string(b), `"`))
	return nil
}

type transactionReq struct {
	Descricao   string    `json:"descricao"`
	Valor       amountStr `json:"valor"`
	Tipo        string    `json:"tipo"`
	Data        string    `json:"data"`
	CategoriaID *uint     `json:"categoria_id"`
}

type transactionResp struct {
	ID            uint    `json:"id"`
	Descricao     string  `json:"descricao"`
	Valor         string  `json:"valor"`
	Tipo          string  `json:"tipo"`
	Data          string  `json:"data"`
	CategoriaID   *uint   `json:"categoria_id"`
	CategoriaNome *string `json:"categoria_nome,omitempty"`
}

func toTransactionResp(t *models.Transaction, categoryName *string) transactionResp {
	return transactionResp{
		ID:            t.ID,
		Descricao:     t.Description,
		Valor:         ledger.FormatCents(t.AmountCents),
		Tipo:          t.Kind,
		Data:          t.Date.Format(util.DateLayout),
		CategoriaID:   t.CategoryID,
		CategoriaNome: categoryName,
	}
}

// ---------- validation helpers ----------

// parseTransactionReq validates the common create/update body and
// returns the normalized values. CategoriaID is required for expenses
// and forced to nil for income.
func (h *TransactionHandler) parseTransactionReq(c *gin.Context, userID uint) (*models.Transaction, bool) {
	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "malformed request body")
		return nil, false
	}

	req.Descricao = strings.TrimSpace(req.Descricao)
	if err := util.ValidateDescription(req.Descricao); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return nil, false
	}

	if req.Tipo != models.KindIncome && req.Tipo != models.KindExpense {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "tipo must be receita or despesa")
		return nil, false
	}

	cents, err := ledger.ParseAmount(string(req.Valor))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return nil, false
	}

	date, err := util.ParseDate(req.Data)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return nil, false
	}

	var categoryID *uint
	if req.Tipo == models.KindExpense {
		if req.CategoriaID == nil || *req.CategoriaID == 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "categoria_id is required for expenses")
			return nil, false
		}
		if !h.categoryOwned(c, userID, *req.CategoriaID) {
			return nil, false
		}
		categoryID = req.CategoriaID
	} else if req.CategoriaID != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "categoria_id must be absent for income")
		return nil, false
	}

	return &models.Transaction{
		UserID:      userID,
		Description: req.Descricao,
		AmountCents: cents,
		Kind:        req.Tipo,
		Date:        date,
		CategoryID:  categoryID,
	}, true
}

// categoryOwned answers 404 itself when the category is absent or
// belongs to someone else; the two cases are indistinguishable.
func (h *TransactionHandler) categoryOwned(c *gin.Context, userID, categoryID uint) bool {
	var count int64
	if err := h.DB.Model(&models.Category{}).
		Where("id = ? AND user_id = ?", categoryID, userID).
		Count(&count).Error; err != nil {
		h.Log.WithError(err).Error("check category ownership")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal server error")
		return false
	}
	if count == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "category not found")
		return false
	}
	return true
}

// parseFilter maps the listing query parameters onto a ledger.Filter.
// Shared by the list, report-adjacent and export endpoints.
func parseFilter(c *gin.Context) (ledger.Filter, error) {
	var f ledger.Filter

	if tipo := c.Query("tipo"); tipo != "" {
		if tipo != models.KindIncome && tipo != models.KindExpense {
			return f, errors.New("tipo must be receita or despesa")
		}
		f.Kind = tipo
	}
	if s := c.Query("categoriaId"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil || id <= 0 {
			return f, errors.New("categoriaId must be a positive integer")
		}
		f.CategoryID = uint(id)
	}
	if s := c.Query("dataInicio"); s != "" {
		t, err := util.ParseDate(s)
		if err != nil {
			return f, err
		}
		f.DateFrom = t
	}
	if s := c.Query("dataFim"); s != "" {
		t, err := util.ParseDate(s)
		if err != nil {
			return f, err
		}
		f.DateTo = t
	}
	f.Description = strings.TrimSpace(c.Query("descricao"))

	return f, nil
}

// ---------- endpoints ----------

func (h *TransactionHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	tx, ok := h.parseTransactionReq(c, userID)
	if !ok {
		return
	}

	if err := h.DB.Create(tx).Error; err != nil {
		h.Log.WithError(err).Error("create transaction")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal server error")
		return
	}

	util.Created(c, util.Response{
		"transacao": toTransactionResp(tx, h.categoryName(tx.CategoryID)),
	})
}

func (h *TransactionHandler) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	f, err := parseFilter(c)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	rows, err := ledger.List(h.DB, userID, f)
	if err != nil {
		h.Log.WithError(err).Error("list transactions")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal server error")
		return
	}

	items := make([]transactionResp, 0, len(rows))
	for i := range rows {
		items = append(items, toTransactionResp(&rows[i].Transaction, rows[i].CategoryName))
	}
	util.Success(c, util.Response{"transacoes": items})
}

func (h *TransactionHandler) Update(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid transaction id")
		return
	}

	var existing models.Transaction
	if err := h.DB.Where("id = ? AND user_id = ?", id, userID).First(&existing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "transaction not found")
		} else {
			h.Log.WithError(err).Error("find transaction")
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal server error")
		}
		return
	}

	tx, ok := h.parseTransactionReq(c, userID)
	if !ok {
		return
	}

	existing.Description = tx.Description
	existing.AmountCents = tx.AmountCents
	existing.Kind = tx.Kind
	existing.Date = tx.Date
	existing.CategoryID = tx.CategoryID

	if err := h.DB.Save(&existing).Error; err != nil {
		h.Log.WithError(err).Error("update transaction")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal server error")
		return
	}

	util.Success(c, util.Response{
		"transacao": toTransactionResp(&existing, h.categoryName(existing.CategoryID)),
	})
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid transaction id")
		return
	}

	res := h.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Transaction{})
	if res.Error != nil {
		h.Log.WithError(res.Error).Error("delete transaction")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal server error")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "transaction not found")
		return
	}

	util.NoContent(c)
}

// ---------- installments ----------

type installmentReq struct {
	Descricao   string    `json:"descricao"`
	Valor       amountStr `json:"valor"`
	CategoriaID uint      `json:"categoria_id"`
	Data        string    `json:"data"`
	Parcelas    int       `json:"parcelas"`
}

// CreateInstallments expands one purchase into monthly expense rows,
// all inserted atomically.
func (h *TransactionHandler) CreateInstallments(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	var req installmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "malformed request body")
		return
	}

	req.Descricao = strings.TrimSpace(req.Descricao)
	if err := util.ValidateDescription(req.Descricao); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	cents, err := ledger.ParseAmount(string(req.Valor))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	var firstDate time.Time
	if firstDate, err = util.ParseDate(req.Data); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	rows, err := ledger.Expand(h.DB, ledger.InstallmentPlan{
		UserID:      userID,
		Description: req.Descricao,
		TotalCents:  cents,
		CategoryID:  req.CategoriaID,
		FirstDate:   firstDate,
		Count:       req.Parcelas,
	})
	if err != nil {
		var verr ledger.ValidationError
		switch {
		case errors.As(err, &verr):
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, verr.Error())
		case errors.Is(err, ledger.ErrNotFound):
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "category not found")
		default:
			h.Log.WithError(err).Error("expand installments")
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal server error")
		}
		return
	}

	name := h.categoryName(&req.CategoriaID)
	items := make([]transactionResp, 0, len(rows))
	for i := range rows {
		items = append(items, toTransactionResp(&rows[i], name))
	}

	util.Created(c, util.Response{
		"parcelas":   len(items),
		"transacoes": items,
	})
}

// ---------- comparison report ----------

// Report answers the revenue/expense comparison. The date window only
// applies when both bounds are present; a single bound is ignored.
func (h *TransactionHandler) Report(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	var w ledger.Window
	inicio, fim := c.Query("dataInicio"), c.Query("dataFim")
	if inicio != "" && fim != "" {
		from, err := util.ParseDate(inicio)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
		to, err := util.ParseDate(fim)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
		w = ledger.Window{From: from, To: to}
	}

	summary, err := ledger.Report(h.DB, userID, w)
	if err != nil {
		h.Log.WithError(err).Error("build report")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal server error")
		return
	}

	util.Success(c, util.Response{
		"totalReceitas":      summary.TotalIncome,
		"totalDespesas":      summary.TotalExpense,
		"balanco":            summary.Balance,
		"gastosPorCategoria": summary.ByCategory,
	})
}

// categoryName looks up a category's display name for responses; nil
// when the reference is absent or the row is gone.
func (h *TransactionHandler) categoryName(id *uint) *string {
	if id == nil || *id == 0 {
		return nil
	}
	var cat models.Category
	if err := h.DB.Select("name").First(&cat, *id).Error; err != nil {
		return nil
	}
	return &cat.Name
}
