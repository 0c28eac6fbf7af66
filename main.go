package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/crypto/bcrypt"

	"peopleflow/config"
	"peopleflow/database"
	"peopleflow/handlers"
	"peopleflow/middleware"
	"peopleflow/models"
	"peopleflow/store"
	"peopleflow/timeaccount"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize JWT secret
	middleware.SetJWTSecret(cfg.JWTSecret)

	// Initialize stores. DATABASE_URL=memory runs everything in-process,
	// which is handy for local frontend work without postgres.
	var (
		adjustments store.Adjustments
		employees   store.Employees
		users       store.Users
		activities  store.Activities
	)
	if cfg.DatabaseURL == "memory" {
		memUsers := store.NewMemoryUsers()
		seedMemoryAdmin(memUsers)
		adjustments = store.NewMemoryAdjustments()
		employees = store.NewMemoryEmployees()
		users = memUsers
		activities = store.NewMemoryActivities()
		log.Println("Running with in-memory stores")
	} else {
		if err := database.Init(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		db := database.GetDB()
		adjustments = store.NewGormAdjustments(db)
		employees = store.NewGormEmployees(db)
		users = store.NewGormUsers(db)
		activities = store.NewGormActivities(db)
	}

	timeAccounts := timeaccount.NewService(employees)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg, users)
	overtimeHandler := handlers.NewOvertimeHandler(adjustments, employees, activities, timeAccounts)
	timeTrackingHandler := handlers.NewTimeTrackingHandler(timeAccounts, activities)

	// Setup router
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.RequestID)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware)

			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/auth/me", authHandler.Me)

			// Every authenticated user may view adjustments and propose one
			r.Get("/overtime/employee/{employeeId}/adjustments", overtimeHandler.GetEmployeeAdjustments)
			r.Post("/overtime/employee/{employeeId}/adjustment", overtimeHandler.AddAdjustment)
			r.Get("/overtime/employee/{employeeId}/details", overtimeHandler.GetEmployeeOvertimeDetails)
			r.Get("/employees/{id}/name", overtimeHandler.GetEmployeeName)
			r.Post("/timetracking/employee/{employeeId}/overtime", timeTrackingHandler.RecalculateOvertime)

			// Admin and manager only routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin, models.RoleManager))
				r.Get("/overtime/adjustments/pending", overtimeHandler.GetPendingAdjustments)
				r.Post("/overtime/adjustments/{id}/approve", overtimeHandler.ResolveAdjustment)
				r.Delete("/overtime/adjustments/{id}", overtimeHandler.DeleteAdjustment)
				r.Get("/overtime/export", overtimeHandler.ExportCSV)
				r.Get("/activities", overtimeHandler.GetRecentActivities)
				r.Post("/timetracking/recalculate", timeTrackingHandler.RecalculateAllOvertime)
			})
		})
	})

	log.Printf("Server starting on port %s", cfg.ServerPort)
	log.Fatal(http.ListenAndServe(":"+cfg.ServerPort, router))
}

func seedMemoryAdmin(users *store.MemoryUsers) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}
	err = users.Create(context.Background(), &models.User{
		Username:     "admin",
		FullName:     "Administrator",
		PasswordHash: string(hashedPassword),
		Role:         models.RoleAdmin,
	})
	if err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}
	log.Println("Default admin user created (username: admin, password: admin)")
}
