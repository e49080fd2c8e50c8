package handlers

import (
	"net/http"
	"regexp"
	"time"

	"gg/database"
	"gg/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetUser returns the user with posts, feed and notifications populated.
func GetUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Error getting user", nil)
		return
	}

	ctx, cancel := dbContext()
	defer cancel()

	user, err := populateUser(ctx, bson.M{"_id": userID})
	if err == mongo.ErrNoDocuments {
		fail(c, http.StatusBadRequest, "Error getting user", nil)
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Error while retreiving user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// GetUserByUsername is the public profile lookup.
func GetUserByUsername(c *gin.Context) {
	username := c.Param("username")

	ctx, cancel := dbContext()
	defer cancel()

	user, err := populateUser(ctx, bson.M{"username": username})
	if err == mongo.ErrNoDocuments {
		fail(c, http.StatusBadRequest, "Error getting user", nil)
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Error while retreiving user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

type UpdateUserRequest struct {
	Name         *string    `json:"name"`
	Username     *string    `json:"username"`
	Bio          *string    `json:"bio"`
	Location     *string    `json:"location"`
	Website      *string    `json:"website"`
	ProfileImage *string    `json:"profileImage"`
	BannerImage  *string    `json:"bannerImage"`
	BirthDate    *time.Time `json:"birthDate"`
}

// UpdateUser applies a partial profile update and returns the updated user.
func UpdateUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Error getting user", nil)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Data not formatted properly", err)
		return
	}

	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Username != nil {
		set["username"] = *req.Username
	}
	if req.Bio != nil {
		set["bio"] = *req.Bio
	}
	if req.Location != nil {
		set["location"] = *req.Location
	}
	if req.Website != nil {
		set["website"] = *req.Website
	}
	if req.ProfileImage != nil {
		set["profileImage"] = *req.ProfileImage
	}
	if req.BannerImage != nil {
		set["bannerImage"] = *req.BannerImage
	}
	if req.BirthDate != nil {
		set["birthDate"] = *req.BirthDate
	}
	set["updatedAt"] = time.Now()

	ctx, cancel := dbContext()
	defer cancel()

	var user models.User
	err = database.Users.FindOneAndUpdate(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": set},
		mongoReturnUpdated(),
	).Decode(&user)
	if err == mongo.ErrNoDocuments {
		fail(c, http.StatusBadRequest, "Error getting user", nil)
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Unable to update user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// DeleteUser removes the user document. Posts authored by the user are
// kept, their author reference goes stale and is filtered at read time.
func DeleteUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Error getting user", nil)
		return
	}

	ctx, cancel := dbContext()
	defer cancel()

	var user models.User
	err = database.Users.FindOneAndDelete(ctx, bson.M{"_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		fail(c, http.StatusBadRequest, "Error getting user", nil)
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Unable to delete user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User deleted successfully",
		"user":    user,
		"deleted": true,
	})
}

// SearchUsers is a case-insensitive substring match on name or username.
func SearchUsers(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		fail(c, http.StatusBadRequest, "Search query cannot be empty", nil)
		return
	}

	ctx, cancel := dbContext()
	defer cancel()

	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	cursor, err := database.Users.Find(ctx, bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"username": pattern},
	}})
	if err != nil {
		fail(c, http.StatusInternalServerError, "Error while searching users", err)
		return
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		fail(c, http.StatusInternalServerError, "Error while searching users", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}
