package server

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/jefftrojan/afritrade-rev/internal/ai"
	"github.com/jefftrojan/afritrade-rev/internal/auth"
	"github.com/jefftrojan/afritrade-rev/internal/config"
	"github.com/jefftrojan/afritrade-rev/internal/docstore"
	"github.com/jefftrojan/afritrade-rev/internal/handler"
	appmw "github.com/jefftrojan/afritrade-rev/internal/middleware"
	"github.com/jefftrojan/afritrade-rev/internal/model"
	"github.com/jefftrojan/afritrade-rev/internal/payment"
	"github.com/jefftrojan/afritrade-rev/internal/repository"
	"github.com/jefftrojan/afritrade-rev/internal/service"
	"github.com/jefftrojan/afritrade-rev/internal/storage"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

type Server struct {
	e           *echo.Echo
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	notifRepo   repository.NotificationRepository
	requestRepo docstore.DeliveryRequestRepository
	statusRepo  docstore.DeliveryStatusRepository
	profileRepo docstore.CourierProfileRepository
}

func New(cfg *config.Config, db *gorm.DB) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			host := u.Hostname()
			if strings.HasSuffix(host, "vercel.app") {
				return true, nil
			}
			return false, nil
		},
	}))

	ctx := context.Background()

	uploads, err := storage.NewUploader(ctx, cfg.StorageBucket)
	if err != nil {
		log.Printf("uploads unavailable: %v", err)
		uploads = nil
	}

	tokens := auth.NewManager(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)
	authMw := appmw.NewAuthMiddleware(tokens)

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	requestRepo := docstore.NewDeliveryRequestRepository(nil)
	statusRepo := docstore.NewDeliveryStatusRepository(nil)
	profileRepo := docstore.NewCourierProfileRepository(nil)

	notifSvc := service.NewNotificationService(notifRepo)
	authSvc := service.NewAuthService(userRepo, tokens)
	productSvc := service.NewProductService(productRepo, ai.NewDetailClient(cfg.GeminiModel))
	orderSvc := service.NewOrderService(orderRepo, productRepo, requestRepo, notifSvc)
	deliverySvc := service.NewDeliveryService(requestRepo, statusRepo, notifSvc)
	profileSvc := service.NewProfileService(profileRepo, uploads)

	authHandler := handler.NewAuthHandler(authSvc)
	productHandler := handler.NewProductHandler(productSvc)
	orderHandler := handler.NewOrderHandler(orderSvc)
	deliveryHandler := handler.NewDeliveryHandler(deliverySvc)
	profileHandler := handler.NewProfileHandler(profileSvc)
	uploadHandler := handler.NewUploadHandler(uploads)
	notifHandler := handler.NewNotificationHandler(notifSvc)
	legalHandler := handler.NewLegalHandler(ai.NewRagClient(cfg.RagBaseURL, nil))
	paymentHandler := handler.NewPaymentHandler(payment.NewClient(
		cfg.IremboPayBaseURL, cfg.IremboPaySecretKey, cfg.IremboPayPublicKey, cfg.IremboPayAccountID, nil))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "true"})
	})

	e.POST("/register/client", authHandler.RegisterClient)
	e.POST("/register/supplier", authHandler.RegisterSupplier)
	e.POST("/register/transporter", authHandler.RegisterTransporter)
	e.POST("/login", authHandler.Login)

	e.GET("/products", productHandler.List)
	e.POST("/products", productHandler.Create)
	e.PUT("/products", productHandler.Update)
	e.DELETE("/products", productHandler.Delete)
	e.POST("/upload-image", uploadHandler.UploadImage)

	e.POST("/orders", orderHandler.Create)
	e.GET("/orders", orderHandler.List)
	e.GET("/orders/:id", orderHandler.Get)
	e.POST("/orders/:id/status", orderHandler.UpdateStatus, authMw.RequireAuth)
	e.POST("/orders/:id/confirm", orderHandler.Confirm, authMw.RequireAuth)

	e.POST("/legal/ask", legalHandler.AskLegal)

	e.POST("/payments/invoices", paymentHandler.CreateInvoice, authMw.RequireAuth)
	e.GET("/payments/invoices/:number", paymentHandler.GetInvoice, authMw.RequireAuth)

	api := e.Group("/api")
	courierOnly := authMw.RequireRole(model.RoleCourier)
	api.GET("/delivery-requests", deliveryHandler.ListRequests, courierOnly)
	api.GET("/delivery-requests/confirmed", deliveryHandler.ListConfirmedRequests, courierOnly)
	api.POST("/delivery-requests", deliveryHandler.CreateRequest, authMw.RequireAuth)
	api.POST("/delivery-requests/:id/accept", deliveryHandler.Accept, courierOnly)
	api.POST("/delivery-requests/:id/decline", deliveryHandler.Decline, courierOnly)
	api.GET("/deliveries/active", deliveryHandler.ListActive, courierOnly)
	api.GET("/deliveries/delivered", deliveryHandler.ListDelivered, courierOnly)
	api.POST("/deliveries/:id/status", deliveryHandler.UpdateDeliveryState, courierOnly)
	api.GET("/courier/profile", profileHandler.Get, courierOnly)
	api.PUT("/courier/profile", profileHandler.Update, courierOnly)
	api.POST("/courier/profile/license", profileHandler.UploadLicense, courierOnly)
	api.GET("/notifications", notifHandler.List, authMw.RequireAuth)
	api.GET("/notifications/unread-count", notifHandler.CountUnread, authMw.RequireAuth)
	api.POST("/notifications/read", notifHandler.MarkAllRead, authMw.RequireAuth)

	return &Server{
		e:           e,
		userRepo:    userRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		notifRepo:   notifRepo,
		requestRepo: requestRepo,
		statusRepo:  statusRepo,
		profileRepo: profileRepo,
	}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

// SetDB injects the relational connection once it is up; the server starts
// serving before the database finishes connecting.
func (s *Server) SetDB(db *gorm.DB) {
	s.userRepo.SetDB(db)
	s.productRepo.SetDB(db)
	s.orderRepo.SetDB(db)
	s.notifRepo.SetDB(db)
}

// SetDocstore injects the Firestore client when it becomes available.
func (s *Server) SetDocstore(c *firestore.Client) {
	s.requestRepo.SetClient(c)
	s.statusRepo.SetClient(c)
	s.profileRepo.SetClient(c)
}
