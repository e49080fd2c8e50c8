package handlers

import (
	"net/http"
	"time"

	"gg/database"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// UploadImage stores a profile or banner image on Cloudinary and saves the
// resulting URL on the user document. Form fields: image (file), type
// ("profile" or "banner").
func UploadImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	imageType := c.PostForm("type")
	if imageType != "profile" && imageType != "banner" {
		fail(c, http.StatusBadRequest, "Image type must be profile or banner", nil)
		return
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		fail(c, http.StatusBadRequest, "No image file provided", err)
		return
	}
	defer file.Close()

	if cfg.CloudinaryURL == "" {
		fail(c, http.StatusInternalServerError, "Image uploads not configured", nil)
		return
	}

	cld, err := cloudinary.NewFromURL(cfg.CloudinaryURL)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Unable to upload image", err)
		return
	}

	ctx, cancel := dbContext()
	defer cancel()

	transformation := "c_limit,w_400,h_400,q_auto"
	if imageType == "banner" {
		transformation = "c_limit,w_1500,h_500,q_auto"
	}

	result, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         "gg/" + imageType,
		PublicID:       userID.Hex(),
		Transformation: transformation,
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "Unable to upload image", err)
		return
	}

	field := "profileImage"
	if imageType == "banner" {
		field = "bannerImage"
	}

	_, err = database.Users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{field: result.SecureURL, "updatedAt": time.Now()}},
	)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Unable to save image URL", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "url": result.SecureURL})
}
