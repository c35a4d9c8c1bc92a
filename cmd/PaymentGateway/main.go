package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"runtime/debug"
	"time"

	"github.com/joho/godotenv"
	"github.com/sebuszqo/PaymentGateway/internal/auth"
	"github.com/sebuszqo/PaymentGateway/internal/bank"
	database "github.com/sebuszqo/PaymentGateway/internal/db"
	"github.com/sebuszqo/PaymentGateway/internal/events"
	"github.com/sebuszqo/PaymentGateway/internal/payment"
	"github.com/sebuszqo/PaymentGateway/internal/permission"
	"github.com/sebuszqo/PaymentGateway/internal/user"
	"github.com/sebuszqo/PaymentGateway/internal/validation"
)

const defaultBankURI = "http://localhost:8080/bank"

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("Started %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("Completed %s in %v", r.URL.Path, time.Since(start))
	})
}

// recoverMiddleware turns panics into a bare 500. The stack goes to the log
// only, never into the response body.
func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("Panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				w.WriteHeader(http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func checkConfiguration() error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		return errors.New("no JWT_SECRET Provided")
	}
	return nil
}

type Server struct {
	router         *http.ServeMux
	dbService      *database.DBService
	authHandler    *auth.Handler
	authService    auth.Service
	userHandler    *user.Handler
	paymentHandler *payment.Handler
}

func NewServer(dbService *database.DBService, authHandler *auth.Handler, authService auth.Service, userHandler *user.Handler, paymentHandler *payment.Handler) *Server {
	return &Server{
		router:         http.NewServeMux(),
		dbService:      dbService,
		authHandler:    authHandler,
		authService:    authService,
		userHandler:    userHandler,
		paymentHandler: paymentHandler,
	}
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	health := s.dbService.Health()
	status := http.StatusOK
	if health["status"] != "up" {
		status = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(health)
}

func (s *Server) RegisterRoutes() {
	authenticated := s.authService.JWTAccessTokenMiddleware()
	requireView := s.authService.RequirePermissions(permission.PaymentView)
	requireViewAndCreate := s.authService.RequirePermissions(permission.PaymentView | permission.PaymentCreate)

	router := http.NewServeMux()

	// Public routes
	router.Handle("GET /ready", http.HandlerFunc(s.handleReady))
	router.Handle("POST /user/create", http.HandlerFunc(s.userHandler.HandleCreate))
	router.Handle("POST /user/login", http.HandlerFunc(s.authHandler.HandleLogin))

	// Bank simulator, stands in for the external settlement endpoint
	router.Handle("POST /bank", http.HandlerFunc(bank.SimulatorHandler))

	// User routes
	router.Handle("GET /user/signout", authenticated(http.HandlerFunc(s.authHandler.HandleSignout)))
	router.Handle("GET /user/all", authenticated(http.HandlerFunc(s.userHandler.HandleGetAll)))
	router.Handle("GET /user/{uid}", authenticated(http.HandlerFunc(s.userHandler.HandleGetByUid)))
	router.Handle("PATCH /user/{uid}/permissions/assign", authenticated(http.HandlerFunc(s.userHandler.HandleAssignPermissions)))

	// Payment routes
	router.Handle("POST /payment", authenticated(requireViewAndCreate(http.HandlerFunc(s.paymentHandler.HandleCreate))))
	router.Handle("GET /payment/all", authenticated(requireView(http.HandlerFunc(s.paymentHandler.HandleGetAll))))
	router.Handle("GET /payment/{uid}", authenticated(requireView(http.HandlerFunc(s.paymentHandler.HandleGetByUid))))

	s.router = router
}

func newGenerationStore() auth.GenerationStore {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		log.Printf("Using Redis token generation store at %s", addr)
		return auth.NewRedisGenerationStore(addr)
	}
	return auth.NewMemoryGenerationStore()
}

func newEventPublisher() events.Publisher {
	if broker := os.Getenv("KAFKA_BROKER"); broker != "" {
		log.Printf("Publishing payment events to Kafka at %s", broker)
		return events.NewKafkaPublisher(broker, "payments.completed")
	}
	return events.NoopPublisher{}
}

func main() {
	if err := checkConfiguration(); err != nil {
		log.Fatalf("Missing configuration, update to start server")
	}

	dbService, err := database.NewDBService()
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	validationConfig := validation.LoadConfig()

	bankURI := os.Getenv("EXTERNAL_BANK_URI")
	if bankURI == "" {
		bankURI = defaultBankURI
	}

	publisher := newEventPublisher()
	defer publisher.Close()

	userRepo := user.NewUserRepository(dbService.DB)
	userService := user.NewUserService(userRepo)

	jwtManager := auth.NewJWTManager()
	authService := auth.NewAuthService(userService, newGenerationStore(), jwtManager)
	authHandler := auth.NewHandler(authService, validation.NewUserValidator())

	userHandler := user.NewHandler(userService, validation.NewUserValidator(), authService)

	paymentRepo := payment.NewPaymentRepository(dbService.DB)
	paymentService := payment.NewPaymentService(paymentRepo, bank.NewClient(bankURI), publisher)
	paymentHandler := payment.NewHandler(paymentService, validation.NewPaymentValidator(validationConfig))

	server := NewServer(dbService, authHandler, authService, userHandler, paymentHandler)
	server.RegisterRoutes()

	handler := recoverMiddleware(loggingMiddleware(server.router))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s...", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
