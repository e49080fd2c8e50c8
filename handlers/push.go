package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"gg/database"
	"gg/models"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func GetVapidPublicKey(c *gin.Context) {
	if cfg.VAPIDPublicKey == "" {
		fail(c, http.StatusNotFound, "Push notifications not configured", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"publicKey": cfg.VAPIDPublicKey,
	})
}

// SubscribePush stores the caller's web-push subscription, one per user.
func SubscribePush(c *gin.Context) {
	var req struct {
		Endpoint string `json:"endpoint" binding:"required"`
		Keys     struct {
			P256dh string `json:"p256dh" binding:"required"`
			Auth   string `json:"auth" binding:"required"`
		} `json:"keys" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Data not formatted properly", err)
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := dbContext()
	defer cancel()

	sub := webpush.Subscription{
		Endpoint: req.Endpoint,
		Keys: webpush.Keys{
			P256dh: req.Keys.P256dh,
			Auth:   req.Keys.Auth,
		},
	}

	_, err := database.Subscriptions.UpdateOne(ctx,
		bson.M{"userId": userID},
		pushSubscriptionUpdate(userID, sub),
		options.Update().SetUpsert(true),
	)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to save subscription", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Push subscription saved"})
}

// pushSubscriptionUpdate builds the upsert document for a subscription.
// The _id goes under $setOnInsert: a re-subscribe matches the existing
// document and a $set on the immutable _id would make the write fail.
func pushSubscriptionUpdate(userID primitive.ObjectID, sub webpush.Subscription) bson.M {
	return bson.M{
		"$set":         bson.M{"userId": userID, "sub": sub},
		"$setOnInsert": bson.M{"_id": primitive.NewObjectID()},
	}
}

// sendPush delivers a web-push message in the background. Errors are
// logged, an expired subscription (410) is deleted.
func sendPush(userID primitive.ObjectID, body string) {
	if cfg == nil || cfg.VAPIDPrivateKey == "" {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[push] panic: %v", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var sub models.PushSubscription
		err := database.Subscriptions.FindOne(ctx, bson.M{"userId": userID}).Decode(&sub)
		if err == mongo.ErrNoDocuments {
			return
		}
		if err != nil {
			log.Printf("[push] find subscription for %s: %v", userID.Hex(), err)
			return
		}

		payload, err := json.Marshal(gin.H{"title": "GG", "body": body})
		if err != nil {
			return
		}

		resp, err := webpush.SendNotification(payload, &sub.Sub, &webpush.Options{
			Subscriber:      cfg.VAPIDSubscriber,
			VAPIDPublicKey:  cfg.VAPIDPublicKey,
			VAPIDPrivateKey: cfg.VAPIDPrivateKey,
			TTL:             30,
		})
		if err != nil {
			log.Printf("[push] send to %s: %v", userID.Hex(), err)
			if resp != nil && resp.StatusCode == http.StatusGone {
				if _, delErr := database.Subscriptions.DeleteOne(ctx, bson.M{"userId": userID}); delErr != nil {
					log.Printf("[push] delete expired subscription: %v", delErr)
				}
			}
			return
		}
		resp.Body.Close()
	}()
}
