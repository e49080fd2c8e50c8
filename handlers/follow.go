package handlers

import (
	"net/http"
	"time"

	"gg/database"
	"gg/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type FollowRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// The four relationship updates are built in one place so the two sides
// stay mirror images: whatever follow adds, unfollow removes.

func followActorUpdate(targetID primitive.ObjectID) bson.M {
	return bson.M{"$addToSet": bson.M{"following": targetID}}
}

func followTargetUpdate(actorID primitive.ObjectID, notif models.Notification) bson.M {
	update := prependNotification(notif)
	update["$addToSet"] = bson.M{"followers": actorID}
	return update
}

func unfollowActorUpdate(targetID primitive.ObjectID) bson.M {
	return bson.M{"$pull": bson.M{"following": targetID}}
}

func unfollowTargetUpdate(actorID primitive.ObjectID) bson.M {
	return bson.M{"$pull": bson.M{"followers": actorID}}
}

// Follow adds the target to the actor's following set and the actor to the
// target's followers set. The target also gets a follow notification,
// newest first. Both documents are written inside one transaction so the
// relationship cannot end up asymmetric.
func Follow(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Data not formatted properly", err)
		return
	}

	targetID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		fail(c, http.StatusBadRequest, "Error getting user", nil)
		return
	}
	if targetID == actorID {
		fail(c, http.StatusBadRequest, "Cannot follow yourself", nil)
		return
	}

	ctx, cancel := dbContext()
	defer cancel()

	target, err := findUserByID(ctx, targetID)
	if err == mongo.ErrNoDocuments {
		fail(c, http.StatusBadRequest, "Error getting user", nil)
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Error while retreiving user", err)
		return
	}

	actor, err := findUserByID(ctx, actorID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Error while retreiving user", err)
		return
	}

	notif := models.Notification{
		Type:      "follow",
		User:      actorID,
		CreatedAt: time.Now(),
	}

	session, err := database.Client.StartSession()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Unable to follow user", err)
		return
	}
	defer session.EndSession(ctx)

	notified := false
	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		if _, err := database.Users.UpdateOne(sessCtx,
			bson.M{"_id": actorID},
			followActorUpdate(targetID),
		); err != nil {
			return nil, err
		}

		// Only a first-time follower lands in the followers set and
		// triggers a notification.
		res, err := database.Users.UpdateOne(sessCtx,
			bson.M{"_id": targetID, "followers": bson.M{"$ne": actorID}},
			followTargetUpdate(actorID, notif),
		)
		if err != nil {
			return nil, err
		}
		notified = res.ModifiedCount > 0
		return nil, nil
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "Unable to follow user", err)
		return
	}

	if notified {
		deliver(targetID, "follow", actorID, actor.Name)
	}

	updated, err := findUserByID(ctx, actorID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Error while retreiving user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Followed " + target.Username,
		"user":     updated,
		"followed": target.ID,
	})
}

// Unfollow removes both sides of the relationship.
func Unfollow(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Data not formatted properly", err)
		return
	}

	targetID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		fail(c, http.StatusBadRequest, "Error getting user", nil)
		return
	}

	ctx, cancel := dbContext()
	defer cancel()

	target, err := findUserByID(ctx, targetID)
	if err == mongo.ErrNoDocuments {
		fail(c, http.StatusBadRequest, "Error getting user", nil)
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Error while retreiving user", err)
		return
	}

	session, err := database.Client.StartSession()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Unable to unfollow user", err)
		return
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		if _, err := database.Users.UpdateOne(sessCtx,
			bson.M{"_id": actorID},
			unfollowActorUpdate(targetID),
		); err != nil {
			return nil, err
		}
		if _, err := database.Users.UpdateOne(sessCtx,
			bson.M{"_id": targetID},
			unfollowTargetUpdate(actorID),
		); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "Unable to unfollow user", err)
		return
	}

	updated, err := findUserByID(ctx, actorID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Error while retreiving user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Unfollowed " + target.Username,
		"user":       updated,
		"unfollowed": target.ID,
	})
}
