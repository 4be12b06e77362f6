package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"linkfeed/internal/api"
	"linkfeed/internal/handler"
	"linkfeed/internal/middleware"
	"linkfeed/internal/session"
)

func main() {
	godotenv.Load()

	apiBase := os.Getenv("LINKFEED_API_BASE")
	if apiBase == "" {
		apiBase = "http://localhost:4000"
		log.Println("Warning: LINKFEED_API_BASE is not set. Using " + apiBase)
	}
	dbPath := os.Getenv("SESSION_DB_PATH")
	if dbPath == "" {
		dbPath = "./linkfeed.db"
	}
	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	secureCookies := os.Getenv("SECURE_COOKIES") == "true"

	store, err := session.Open(dbPath)
	if err != nil {
		log.Fatal("main(): Failed to open session store: ", err)
	}
	defer store.Close()

	if err := store.CleanupExpired(); err != nil {
		log.Printf("cleaning up expired sessions: %v", err)
	}
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		for range ticker.C {
			if err := store.CleanupExpired(); err != nil {
				log.Printf("cleaning up expired sessions: %v", err)
			}
		}
	}()

	h := handler.New(api.New(apiBase), store, "web/templates", secureCookies)

	router := gin.Default()
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	router.Use(cors.New(config))

	router.Static("/static", "web/static")

	router.GET("/", h.Root)
	router.GET("/signup", h.SignupPage)
	router.POST("/signup", h.Signup)
	router.GET("/signin", h.SigninPage)
	router.POST("/signin", h.Signin)
	router.GET("/logout", h.Logout)

	protected := router.Group("/").Use(middleware.RequireSession(store))
	{
		protected.GET("/home", h.Home)
		protected.POST("/posts", h.CreatePost)
		protected.POST("/posts/:id/like", h.LikePost)
		protected.GET("/posts/:id/delete", h.DeletePostPage)
		protected.POST("/posts/:id/delete", h.DeletePost)
		protected.GET("/profile", h.Profile)
		protected.GET("/edit-profile", h.EditProfilePage)
		protected.POST("/edit-profile", h.EditProfileAction)
	}

	log.Fatal(router.Run(addr))
}
