package handlers

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Likes are a set, so the update must use $addToSet: a repeat like on the
// same post cannot add the user a second time.
func TestLikeUpdateUsesSetSemantics(t *testing.T) {
	userID := primitive.NewObjectID()
	update := likeUpdate(userID)

	added, ok := update["$addToSet"].(bson.M)
	if !ok {
		t.Fatalf("expected $addToSet in %v", update)
	}
	if added["likes"] != userID {
		t.Fatalf("expected the liking user in likes, got %v", added)
	}
	if _, ok := update["$push"]; ok {
		t.Fatal("likes must not be maintained with $push")
	}
}

func TestUnlikeUpdateMirrorsLike(t *testing.T) {
	userID := primitive.NewObjectID()

	added := likeUpdate(userID)["$addToSet"].(bson.M)
	removed, ok := unlikeUpdate(userID)["$pull"].(bson.M)
	if !ok {
		t.Fatalf("expected $pull in %v", unlikeUpdate(userID))
	}
	if removed["likes"] != added["likes"] {
		t.Fatalf("unlike must remove exactly what like added, got %v vs %v", removed, added)
	}
}
