package router

import (
	"net/http"
	"strings"
	"time"

	"bizledger/api"
	"bizledger/config"
	_ "bizledger/docs"
	"bizledger/middleware"
	"bizledger/service"
	"bizledger/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS：全部放开，单机部署的前端可能从任意来源访问
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AddAllowHeaders("Accept", "Authorization")
	r.Use(cors.New(corsConfig))

	// 已注册路径上的未知方法回 405 而不是 404
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		api.Error(c, http.StatusMethodNotAllowed, "Unsupported method")
	})

	// 存取层只建一份，注入各处理器
	attachments := service.NewAttachmentStore(db, cfg.Uploads.Dir)
	records := service.NewRecordStore(db, attachments)
	settings := service.NewSettingsStore(db)
	summary := service.NewSummaryService(db, cfg.App.TaxYearStartMonth, cfg.App.TaxYearStartDay)
	scanner := service.NewScanService(cfg, settings)

	recordHandler := api.NewRecordHandler(records)
	attachmentHandler := api.NewAttachmentHandler(records, attachments)
	settingsHandler := api.NewSettingsHandler(settings)
	summaryHandler := api.NewSummaryHandler(summary)
	exportHandler := api.NewExportHandler(records)
	scanHandler := api.NewScanHandler(scanner, records, attachments)
	systemHandler := api.NewSystemHandler(cfg, records, attachments, settings)

	apiGroup := r.Group("/api")
	{
		// 静态段先于 :id 注册
		apiGroup.POST("/expenses/scan", middleware.RateLimit(10, time.Minute), scanHandler.Scan)

		for _, kind := range service.Kinds() {
			g := apiGroup.Group("/" + kind.String())
			{
				g.GET("", recordHandler.List(kind))
				g.POST("", recordHandler.Create(kind))
				g.DELETE("", recordHandler.Clear(kind))
				g.GET("/:id", recordHandler.Get(kind))
				g.PUT("/:id", recordHandler.Update(kind))
				g.DELETE("/:id", recordHandler.Delete(kind))
				if kind.SupportsAttachments() {
					g.GET("/:id/attachments", attachmentHandler.ListForRecord(kind))
					g.POST("/:id/attachments", attachmentHandler.Upload(kind))
				} else {
					g.GET("/:id/attachments", attachmentHandler.Unsupported)
					g.POST("/:id/attachments", attachmentHandler.Unsupported)
				}
			}
			apiGroup.GET("/"+kind.String()+".csv", exportHandler.CSV(kind))
		}

		// 附件详情不分种类
		apiGroup.GET("/attachments/:id", attachmentHandler.Get)
		apiGroup.DELETE("/attachments/:id", attachmentHandler.Delete)
		apiGroup.GET("/attachments/:id/download", attachmentHandler.Download)

		apiGroup.GET("/settings", settingsHandler.GetAll)
		apiGroup.PUT("/settings", settingsHandler.BulkPut)
		apiGroup.GET("/settings/:key", settingsHandler.Get)
		apiGroup.PUT("/settings/:key", settingsHandler.Put)
		apiGroup.DELETE("/settings/:key", settingsHandler.Delete)

		apiGroup.GET("/summary", summaryHandler.Summary)
		apiGroup.GET("/export.xlsx", exportHandler.Excel)
		apiGroup.POST("/factory-reset", systemHandler.FactoryReset)
		apiGroup.GET("/version", systemHandler.Version)
		apiGroup.GET("/ping", systemHandler.Ping)
	}

	// 上传文件直接静态托管
	r.Static("/uploads", cfg.Uploads.Dir)

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 内嵌的单页前端
	serveIndex := func(c *gin.Context) {
		content, err := web.StaticFS.ReadFile("index.html")
		if err != nil {
			c.String(http.StatusInternalServerError, "加载页面失败")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", content)
	}
	r.GET("/", serveIndex)

	// API 下未注册的路径按未知资源处理，其余路径回落到前端页
	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			api.NotFound(c, "Unknown resource")
			return
		}
		serveIndex(c)
	})

	return r
}
