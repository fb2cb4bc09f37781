package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	clerk "github.com/clerk/clerk-sdk-go/v2"
	gorilllaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/api/option"

	"focusmindAPI/handlers"
	"focusmindAPI/internal/ordering"
	"focusmindAPI/middleware"
	"focusmindAPI/services"

	_ "net/http/pprof"
)

var (
	firestoreClient *firestore.Client
	habitService    *services.HabitService
	statsService    *services.StatsService
	feedManager     *services.FeedManager
	reorderSessions *ordering.Manager
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	clerkSecretKey := os.Getenv("CLERK_SECRET_KEY")
	if clerkSecretKey == "" {
		log.Fatal("CLERK_SECRET_KEY environment variable is not set")
	}
	clerk.SetKey(clerkSecretKey)
	log.Println("Clerk initialized successfully")

	projectID := os.Getenv("FIREBASE_PROJECT_ID")
	if projectID == "" {
		log.Fatal("FIREBASE_PROJECT_ID environment variable is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var opts []option.ClientOption
	if credsFile := os.Getenv("FIREBASE_CREDENTIALS_FILE"); credsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		log.Fatal("Failed to initialize Firebase app:", err)
	}

	firestoreClient, err = app.Firestore(ctx)
	if err != nil {
		log.Fatal("Failed to create Firestore client:", err)
	}
	log.Println("Successfully connected to Firestore")

	habitService = services.NewHabitService(firestoreClient)
	statsService = services.NewStatsService(habitService)
	feedManager = services.NewFeedManager(firestoreClient)
	reorderSessions = ordering.NewManager()

	middleware.InitPrometheus()
}

func main() {
	defer func() {
		log.Println("Closing Firestore client...")
		firestoreClient.Close()
	}()

	// Initialize handlers
	habitHandler := handlers.NewHabitHandler(habitService)
	statsHandler := handlers.NewStatsHandler(statsService)
	reorderHandler := handlers.NewReorderHandler(habitService, reorderSessions)
	feedHandler := handlers.NewFeedHandler(feedManager)

	r := mux.NewRouter()

	r.HandleFunc("/api/v1/habits/ws", feedHandler.Connect)

	standardRouter := r.PathPrefix("/").Subrouter()

	go middleware.CleanupVisitors()

	standardRouter.Use(middleware.RateLimitMiddleware)
	standardRouter.Use(middleware.MonitorMiddleware)

	standardRouter.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))
	standardRouter.PathPrefix("/debug/pprof/").Handler(middleware.PprofSecurityMiddleware(http.DefaultServeMux))

	standardRouter.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "focusmind-api"}`))
	}).Methods("GET")

	// -------------------------------------------------------------------------
	// PROTECTED ROUTES (REQUIRE AUTH HEADER)
	// -------------------------------------------------------------------------
	api := standardRouter.PathPrefix("/api/v1").Subrouter()

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.ClerkAuthMiddleware)

	protected.HandleFunc("/habits", habitHandler.GetHabits).Methods("GET")
	protected.HandleFunc("/habits", habitHandler.CreateHabit).Methods("POST")

	// Static segments before {habitID} so mux does not swallow them
	protected.HandleFunc("/habits/summary", statsHandler.GetDaySummary).Methods("GET")
	protected.HandleFunc("/habits/week", statsHandler.GetWeek).Methods("GET")
	protected.HandleFunc("/habits/week/preview", statsHandler.PreviewWeek).Methods("POST")
	protected.HandleFunc("/habits/calendar", statsHandler.GetCalendar).Methods("GET")
	protected.HandleFunc("/habits/stats", statsHandler.GetStats).Methods("GET")

	protected.HandleFunc("/habits/reorder/start", reorderHandler.Start).Methods("POST")
	protected.HandleFunc("/habits/reorder/move", reorderHandler.Move).Methods("POST")
	protected.HandleFunc("/habits/reorder/commit", reorderHandler.Commit).Methods("POST")
	protected.HandleFunc("/habits/reorder/discard", reorderHandler.Discard).Methods("POST")

	protected.HandleFunc("/habits/{habitID}", habitHandler.RenameHabit).Methods("PUT")
	protected.HandleFunc("/habits/{habitID}", habitHandler.DeleteHabit).Methods("DELETE")
	protected.HandleFunc("/habits/{habitID}/goal", habitHandler.UpdateGoal).Methods("PUT")
	protected.HandleFunc("/habits/{habitID}/progress", habitHandler.UpdateProgress).Methods("PUT")
	protected.HandleFunc("/habits/{habitID}/hours", habitHandler.SaveHours).Methods("PUT")

	// CORS configuration
	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins([]string{"*"}),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Pprof-Secret"}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorilllaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r), // Pass the root router 'r'
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}
