package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"gg/database"
	"gg/middleware"
	"gg/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Bio      string `json:"bio"`
	Location string `json:"location"`
	Website  string `json:"website"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// randomSuffix mimics the signup username generator: name without spaces
// plus six hex characters.
func randomSuffix() (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Data not formatted properly", err)
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		fail(c, http.StatusBadRequest, "Data not formatted properly", nil)
		return
	}

	ctx, cancel := dbContext()
	defer cancel()

	var existing models.User
	err := database.Users.FindOne(ctx, bson.M{"email": req.Email}).Decode(&existing)
	if err == nil {
		fail(c, http.StatusForbidden, "Email already registered", nil)
		return
	}
	if err != mongo.ErrNoDocuments {
		fail(c, http.StatusInternalServerError, "Unable to register user", err)
		return
	}

	username := req.Username
	if username == "" {
		suffix, err := randomSuffix()
		if err != nil {
			fail(c, http.StatusInternalServerError, "Unable to register user", err)
			return
		}
		username = strings.ReplaceAll(req.Name, " ", "") + suffix
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Unable to register user", err)
		return
	}

	now := time.Now()
	user := models.User{
		ID:            primitive.NewObjectID(),
		Name:          req.Name,
		Email:         req.Email,
		Password:      string(hashed),
		Username:      username,
		Role:          "user",
		Bio:           req.Bio,
		Location:      req.Location,
		Website:       req.Website,
		Posts:         []primitive.ObjectID{},
		Following:     []primitive.ObjectID{},
		Followers:     []primitive.ObjectID{},
		Feed:          []primitive.ObjectID{},
		Notifications: []models.Notification{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := database.Users.InsertOne(ctx, user); err != nil {
		fail(c, http.StatusInternalServerError, "Unable to register user", err)
		return
	}

	token, err := middleware.SignToken(cfg.JWTSecret, user.ID.Hex(), user.Email)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Unable to register user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
		"token":   token,
	})
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Data not formatted properly", err)
		return
	}
	if req.Email == "" || req.Password == "" {
		fail(c, http.StatusBadRequest, "Data not formatted properly", nil)
		return
	}

	ctx, cancel := dbContext()
	defer cancel()

	var user models.User
	err := database.Users.FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		fail(c, http.StatusUnauthorized, "Email not found", nil)
		return
	}
	if err != nil {
		fail(c, http.StatusBadRequest, "User not found", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		fail(c, http.StatusUnauthorized, "Invalid password", nil)
		return
	}

	token, err := middleware.SignToken(cfg.JWTSecret, user.ID.Hex(), user.Email)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Unable to login", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login success",
		"user":    user,
		"token":   token,
	})
}
