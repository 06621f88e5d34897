package controllers

import (
	"net/http"
	"strings"

	models "Gavel/models/postgres"
	"Gavel/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// @Summary Endpoint just pings the server
// @Description Returns a basic message
// @Tags test
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /ping [get]
func Ping(c *gin.Context) {
	c.JSON(200, gin.H{"message": "pong"})
}

// @Summary Registers a new user account
// @Description Creates a User plus its AuctionProfile
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param email formData string true "Email"
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 201 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /signup [post]
func SignUp(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := strings.TrimSpace(c.PostForm("email"))
		username := strings.TrimSpace(c.PostForm("username"))
		password := c.PostForm("password")

		if email == "" || username == "" || strings.TrimSpace(password) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters can't be empty"})
			return
		}

		var existing models.User
		if err := db.Where("email = ? OR username = ?", email, username).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Email or username already registered"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
			return
		}

		user := models.User{
			Email:        email,
			Username:     username,
			PasswordHash: string(hash),
			AuctionProfile: models.AuctionProfile{
				Username: username,
			},
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create user"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "User created"})
	}
}

// @Summary Logs a user in
// @Description Validates credentials, opens a session and returns a JWT
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 200 {object} object{token=string,username=string}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Router /login [post]
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		email := c.PostForm("email")
		password := c.PostForm("password")

		// Minimum input sanitizing
		if strings.Trim(email, " ") == "" || strings.Trim(password, " ") == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters can't be empty"})
			return
		}

		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password!"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password!"})
			return
		}

		session.Set("Email", user.Email)
		if err := session.Save(); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No session!"})
			return
		}

		token, err := utils.GenerateToken(user.Email, user.Username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token, "username": user.Username})
	}
}

// Logout from server, deletes the session associated with the Email key
// @Summary Logs a user out
// @Tags auth
// @Produce json
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Router /auth/logout [delete]
func Logout(c *gin.Context) {
	session := sessions.Default(c)
	user := session.Get("Email")
	// There is no session for the user, won't delete nothing
	if user == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session token"})
		return
	}

	session.Delete("Email")
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

// @Summary Public profile of a user
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} object{username=string}
// @Failure 404 {object} object{error=string}
// @Router /users/{username} [get]
func GetUserPublicInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")

		var profile models.AuctionProfile
		if err := db.Where("username = ?", username).First(&profile).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"username":           profile.Username,
			"icon":               profile.UserIcon,
			"tournaments_played": profile.TournamentsPlayed,
			"tournaments_won":    profile.TournamentsWon,
		})
	}
}

// @Summary Private info of the logged-in user
// @Tags auth
// @Produce json
// @Success 200 {object} object{email=string,username=string}
// @Failure 401 {object} object{error=string}
// @Router /auth/me [get]
func GetUserPrivateInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")

		var user models.User
		if err := db.Preload("AuctionProfile").Where("email = ?", email).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"email":              user.Email,
			"username":           user.Username,
			"member_since":       user.MemberSince,
			"tournaments_played": user.AuctionProfile.TournamentsPlayed,
			"tournaments_won":    user.AuctionProfile.TournamentsWon,
		})
	}
}

// @Summary Tournament history of the logged-in user
// @Tags auth
// @Produce json
// @Success 200 {object} object{history=[]object}
// @Failure 401 {object} object{error=string}
// @Router /auth/history [get]
func GetUserHistory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")

		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		var records []models.WinRecord
		if err := db.Where("username = ?", user.Username).
			Order("played_at DESC").
			Find(&records).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load history"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"history": records})
	}
}
