package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AnuragDayal94/role-based-task-manager/handlers"
	"github.com/AnuragDayal94/role-based-task-manager/logging"
	"github.com/AnuragDayal94/role-based-task-manager/middleware"
	"github.com/AnuragDayal94/role-based-task-manager/repositories"
	"github.com/AnuragDayal94/role-based-task-manager/services"
)

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// newStoreBreaker builds the circuit breaker guarding one Mongo collection.
// Not-found and duplicate-key results are normal outcomes, only real store
// faults count against the breaker.
func newStoreBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, mongo.ErrNoDocuments) || mongo.IsDuplicateKeyError(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Warnf("Circuit breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})
}

func main() {
	logging.InitLogger()
	logging.Logger.Info("Starting task manager service...")

	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("No .env file loaded: %v", err)
	}

	jwtService, err := services.NewJWTService(os.Getenv("JWT_SECRET"))
	if err != nil {
		logging.Logger.Fatalf("JWT configuration error: %v", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB_NAME")
	if dbName == "" {
		dbName = "task_manager"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logging.Logger.Fatalf("Database connection failed: %v", err)
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("MongoDB ping failed: %v", err)
	}
	logging.Logger.Infof("Connected to MongoDB at %s", mongoURI)

	db := client.Database(dbName)
	userRepo := repositories.NewUserRepo(db.Collection("users"), newStoreBreaker("users-store"))
	taskRepo := repositories.NewTaskRepo(db.Collection("tasks"), newStoreBreaker("tasks-store"))

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		logging.Logger.Fatalf("Failed to create user indexes: %v", err)
	}

	userService := services.NewUserService(userRepo, jwtService)
	taskService := services.NewTaskService(taskRepo, userRepo)

	if err := userService.EnsureAdmin(ctx, os.Getenv("ADMIN_NAME"), os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD")); err != nil {
		logging.Logger.Fatalf("Admin bootstrap failed: %v", err)
	}

	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)
	authMiddleware := middleware.NewAuthMiddleware(jwtService, userRepo)

	r := handlers.NewRouter(userHandler, taskHandler, authMiddleware)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8000"
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", serverPort),
		Handler:      enableCORS(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	logging.Logger.Infof("Server running on http://localhost:%s", serverPort)
	if err := srv.ListenAndServe(); err != nil {
		logging.Logger.Fatalf("Server failed to start: %v", err)
	}
}
