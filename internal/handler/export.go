package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/arthurlfarjanes/PlanilhaGastos/internal/ledger"
	"github.com/arthurlfarjanes/PlanilhaGastos/internal/middleware"
	"github.com/arthurlfarjanes/PlanilhaGastos/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler downloads the current filtered transaction listing as
// CSV or XLSX. It accepts the same query parameters as the list
// endpoint.
type ExportHandler struct {
	DB  *gorm.DB
	Log *logrus.Logger
}

func NewExportHandler(db *gorm.DB, log *logrus.Logger) *ExportHandler {
	return &ExportHandler{DB: db, Log: log}
}

var exportHeader = []string{"descricao", "valor", "tipo", "data", "categoria"}

func exportRecord(row *ledger.Row) []string {
	category := ""
	if row.CategoryName != nil {
		category = *row.CategoryName
	}
	return []string{
		row.Description,
		ledger.FormatCents(row.AmountCents),
		row.Kind,
		row.Date.Format(util.DateLayout),
		category,
	}
}

func (h *ExportHandler) rows(c *gin.Context) ([]ledger.Row, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return nil, false
	}

	f, err := parseFilter(c)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return nil, false
	}

	rows, err := ledger.List(h.DB, userID, f)
	if err != nil {
		h.Log.WithError(err).Error("export: list transactions")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal server error")
		return nil, false
	}
	return rows, true
}

// ExportCSV streams the listing as a CSV attachment.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	rows, ok := h.rows(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transacoes_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeader)
	for i := range rows {
		writer.Write(exportRecord(&rows[i]))
	}
}

// ExportXLSX writes the listing as a spreadsheet attachment.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	rows, ok := h.rows(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Transacoes"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	for i := range rows {
		for col, value := range exportRecord(&rows[i]) {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transacoes_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		h.Log.WithError(err).Error("export: write xlsx")
	}
}
