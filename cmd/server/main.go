package main

import (
	"log"
	"net/http"
	"time"

	"marksapi/internal/auth"
	"marksapi/internal/config"
	"marksapi/internal/database"
	"marksapi/internal/filestore"
	"marksapi/internal/handler"
	"marksapi/internal/model"
	"marksapi/internal/service"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Configuration error: ", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("Database error: ", err)
	}

	store, err := filestore.New(cfg.UploadDir)
	if err != nil {
		log.Fatal("Failed to create uploads directory: ", err)
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.JWTExpHours)*time.Hour)

	// Services
	staffService := service.NewStaffService(db)
	studentService := service.NewStudentService(db)
	importService := service.NewImportService(db)

	// Handlers
	authHandler := handler.NewAuthHandler(staffService, tokens)
	uploadHandler := handler.NewUploadHandler(importService, store, cfg.MaxUploadMB)
	lookupHandler := handler.NewLookupHandler(studentService)
	adminHandler := handler.NewAdminHandler(importService, store)

	r := mux.NewRouter()
	r.HandleFunc("/api/health", handler.Health).Methods("GET")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/upload-marks",
		handler.RequireAuth(tokens, "", uploadHandler.UploadMarks)).Methods("POST")
	r.HandleFunc("/api/students/lookup", lookupHandler.Lookup).Methods("POST")
	r.HandleFunc("/api/admin/uploads",
		handler.RequireAuth(tokens, model.RoleAdmin, adminHandler.ListUploads)).Methods("GET")
	r.HandleFunc("/api/admin/uploads",
		handler.RequireAuth(tokens, model.RoleAdmin, adminHandler.DeleteUpload)).Methods("DELETE")

	corsOpts := []handlers.CORSOption{
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowedMethods([]string{"GET", "POST", "DELETE"}),
	}
	if len(cfg.CORSOrigins) > 0 {
		corsOpts = append(corsOpts, handlers.AllowedOrigins(cfg.CORSOrigins))
	}

	log.Println("Server running on port " + cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handlers.CORS(corsOpts...)(r)))
}
