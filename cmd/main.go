package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sendgrid/sendgrid-go"

	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/app"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/config"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/controllers"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/middleware"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/repositories"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/routes"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/services"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)

	// 1) Config
	cfg := config.LoadConfig()

	// 2) Core application (DB pool + schema)
	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize application:", err)
	}
	defer application.Close()

	// 3) Repositories
	propRepo := repositories.NewPropertyRepository(application.DB)
	imageRepo := repositories.NewPropertyImageRepository(application.DB)
	msgRepo := repositories.NewMessageRepository(application.DB)

	if cfg.SeedTestData {
		if err := app.SeedTestData(context.Background(), propRepo, imageRepo); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to seed test data")
		}
	}

	// 4) Services. The TTL cache singleton lives here and nowhere else.
	cache := utils.NewMemoryCache(30 * time.Second)

	var sgClient *sendgrid.Client
	if cfg.SendgridAPIKey != "" {
		sgClient = sendgrid.NewSendClient(cfg.SendgridAPIKey)
	}

	propertyService := services.NewPropertyService(propRepo, imageRepo, cache)
	messageService := services.NewMessageService(msgRepo, propRepo, sgClient, cfg.ContactFrom, cfg.ContactNotify)
	importService := services.NewImportService(propRepo, imageRepo, cache)

	// 5) Controllers
	healthCtrl := controllers.NewHealthController()
	propCtrl := controllers.NewPropertiesController(propertyService)
	msgCtrl := controllers.NewMessagesController(messageService)
	importCtrl := controllers.NewImportController(importService)

	// 6) Router
	router := mux.NewRouter()
	router.HandleFunc(routes.Health, healthCtrl.HealthCheckHandler).Methods(http.MethodGet)

	// Public
	router.HandleFunc(routes.Properties, propCtrl.ListPublicHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.PropertyByID, propCtrl.GetPublicHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Messages, msgCtrl.SubmitHandler).Methods(http.MethodPost)

	// Admin (bearer token from the external authenticator)
	protected := middleware.RequireAdmin(cfg.AdminJWTSecret)
	adminHandle := func(path string, h http.HandlerFunc, method string) {
		router.Handle(path, protected(h)).Methods(method)
	}
	adminHandle(routes.AdminProperties, propCtrl.ListAdminHandler, http.MethodGet)
	adminHandle(routes.AdminProperties, propCtrl.CreateHandler, http.MethodPost)
	adminHandle(routes.AdminPropertyByID, propCtrl.GetAdminHandler, http.MethodGet)
	adminHandle(routes.AdminPropertyByID, propCtrl.UpdateHandler, http.MethodPut)
	adminHandle(routes.AdminPropertyByID, propCtrl.DeleteHandler, http.MethodDelete)
	adminHandle(routes.AdminPropertyImages, propCtrl.AddImageHandler, http.MethodPost)
	adminHandle(routes.AdminImagesOrder, propCtrl.ReorderImagesHandler, http.MethodPut)
	adminHandle(routes.AdminImageByID, propCtrl.DeleteImageHandler, http.MethodDelete)
	adminHandle(routes.AdminMessages, msgCtrl.ListHandler, http.MethodGet)
	adminHandle(routes.AdminMessageStatusByID, msgCtrl.UpdateStatusHandler, http.MethodPut)
	adminHandle(routes.AdminMessagePinByID, msgCtrl.PinHandler, http.MethodPut)
	adminHandle(routes.AdminMessageByID, msgCtrl.DeleteHandler, http.MethodDelete)
	adminHandle(routes.AdminImportCSV, importCtrl.ImportCSVHandler, http.MethodPost)
	adminHandle(routes.AdminImportJSON, importCtrl.ImportJSONHandler, http.MethodPost)

	// 7) CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AppUrl},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on :%s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, c.Handler(router)); err != nil {
		utils.Logger.Fatal("Server error:", err)
	}
}
