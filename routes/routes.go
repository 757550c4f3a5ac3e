package routes

import (
	"log"

	"github.com/ammiagames/sonder-sub002/config"
	"github.com/ammiagames/sonder-sub002/controllers"
	"github.com/ammiagames/sonder-sub002/middlewares"
	"github.com/ammiagames/sonder-sub002/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	// shared services
	hub := services.NewSyncHub()
	push, err := services.NewPushService(config.DB)
	if err != nil {
		log.Printf("push service unavailable: %v", err)
		push = nil
	}
	services.InitChangeDeps(config.DB, hub)

	placeSvc := services.NewPlaceService()
	rek, err := services.NewRekognitionService()
	if err != nil {
		log.Printf("rekognition unavailable: %v", err)
		rek = nil
	}
	logSvc := services.NewLogService(placeSvc)
	tripSvc := services.NewTripService(push)
	gallerySvc := services.NewGalleryService(tripSvc)
	statsSvc := services.NewStatsService(config.DB)

	logCtl := controllers.NewLogController(logSvc)
	tripCtl := controllers.NewTripController(tripSvc)
	galleryCtl := controllers.NewGalleryController(gallerySvc)
	placeCtl := controllers.NewPlaceController(placeSvc, rek)
	statsCtl := controllers.NewStatsController(statsSvc)
	syncCtl := controllers.NewSyncController(hub)
	deviceCtl := controllers.NewDeviceController(push)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/verify-mfa", controllers.VerifyMFA)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
		user.DELETE("/account", controllers.DeleteAccount)
		user.PUT("/notifications", controllers.ToggleNotifications)
	}

	logs := r.Group("/logs")
	logs.Use(middlewares.AuthMiddleware())
	{
		logs.POST("", logCtl.Create)
		logs.GET("", logCtl.List)
		logs.GET("/recent", logCtl.Recent)
		logs.GET("/:id", logCtl.Get)
		logs.PUT("/:id", logCtl.Update)
		logs.DELETE("/:id", logCtl.Delete)
	}

	trips := r.Group("/trips")
	trips.Use(middlewares.AuthMiddleware())
	{
		trips.POST("", tripCtl.Create)
		trips.GET("", tripCtl.List)
		trips.GET("/:id", tripCtl.Get)
		trips.PUT("/:id", tripCtl.Update)
		trips.DELETE("/:id", tripCtl.Delete)
		trips.POST("/:id/collaborators", tripCtl.AddCollaborator)
		trips.DELETE("/:id/collaborators/:userId", tripCtl.RemoveCollaborator)
	}

	gallery := r.Group("/gallery")
	gallery.Use(middlewares.AuthMiddleware())
	{
		gallery.GET("/masonry", galleryCtl.GetMasonry)
		gallery.GET("/boarding-pass", galleryCtl.GetBoardingPass)
		gallery.GET("/feed", galleryCtl.GetFeed)
	}

	places := r.Group("/places")
	places.Use(middlewares.AuthMiddleware())
	{
		places.GET("/search", placeCtl.Search)
		places.GET("/:id", placeCtl.Get)
		places.POST("/suggest-tags", placeCtl.SuggestTags)
	}

	stats := r.Group("/stats")
	stats.Use(middlewares.AuthMiddleware())
	{
		stats.GET("/summary", statsCtl.GetSummary)
	}

	sync := r.Group("/sync")
	sync.Use(middlewares.AuthMiddleware())
	{
		sync.GET("/ws", syncCtl.ChangesWS)
		sync.GET("/changes", syncCtl.GetChanges)
	}

	devices := r.Group("/devices")
	devices.Use(middlewares.AuthMiddleware())
	{
		devices.POST("", deviceCtl.Register)
	}

	dev := r.Group("/dev")
	dev.Use(middlewares.AuthMiddleware())
	{
		dev.POST("/upload", controllers.DevUploadImage)
	}

	return r
}
