package router

import (
	"github.com/arthurlfarjanes/PlanilhaGastos/internal/config"
	"github.com/arthurlfarjanes/PlanilhaGastos/internal/handler"
	"github.com/arthurlfarjanes/PlanilhaGastos/internal/middleware"
	"github.com/arthurlfarjanes/PlanilhaGastos/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and the full route table.
func SetupRouter(cfg *config.Config, db *gorm.DB, log *logrus.Logger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(middleware.RequestLog(log), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		util.Success(c, util.Response{"message": "API online"})
	})

	// public routes
	authHandler := handler.NewAuthHandler(db, log, cfg.JWT.Secret, cfg.JWT.ExpireHours)
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)

	// everything below requires a valid bearer token
	protected := r.Group("")
	protected.Use(middleware.AuthMiddleware(cfg.JWT.Secret))

	protected.GET("/me", handler.GetMe)

	categoryHandler := handler.NewCategoryHandler(db, log)
	protected.GET("/categorias", categoryHandler.List)
	protected.POST("/categorias", categoryHandler.Create)
	protected.PUT("/categorias/:id", categoryHandler.Update)
	protected.DELETE("/categorias/:id", categoryHandler.Delete)

	txHandler := handler.NewTransactionHandler(db, log)
	protected.GET("/transacoes", txHandler.List)
	protected.POST("/transacoes", txHandler.Create)
	protected.POST("/transacoes/parcelada", txHandler.CreateInstallments)
	protected.PUT("/transacoes/:id", txHandler.Update)
	protected.DELETE("/transacoes/:id", txHandler.Delete)
	protected.GET("/transacoes/comparativo", txHandler.Report)

	exportHandler := handler.NewExportHandler(db, log)
	protected.GET("/transacoes/export/csv", exportHandler.ExportCSV)
	protected.GET("/transacoes/export/xlsx", exportHandler.ExportXLSX)

	return r
}
