package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func SetUpMiddleware(r *gin.Engine) {
	key := os.Getenv("KEY")
	store := cookie.NewStore([]byte(key))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   60 * 60 * 240, // same lifetime as the issued JWT
		HttpOnly: true,
		Secure:   os.Getenv("PROD") == "true",
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("gavelsession", store))

	// CORS_ORIGINS narrows the allowed origins in deployments; the socket.io
	// endpoint configures its own CORS separately.
	origins := []string{"*"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
}
