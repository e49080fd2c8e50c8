package handlers

import (
	"testing"
	"time"

	"gg/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Follow must mirror unfollow exactly: the field and value one side adds
// are the field and value the other side removes, on both documents.
func TestFollowUnfollowUpdatesAreSymmetric(t *testing.T) {
	actorID := primitive.NewObjectID()
	targetID := primitive.NewObjectID()
	notif := models.Notification{Type: "follow", User: actorID, CreatedAt: time.Now()}

	added := followActorUpdate(targetID)["$addToSet"].(bson.M)
	removed := unfollowActorUpdate(targetID)["$pull"].(bson.M)
	if added["following"] != targetID {
		t.Fatalf("follow must add target to following, got %v", added)
	}
	if removed["following"] != targetID {
		t.Fatalf("unfollow must remove the same following entry, got %v", removed)
	}

	added = followTargetUpdate(actorID, notif)["$addToSet"].(bson.M)
	removed = unfollowTargetUpdate(actorID)["$pull"].(bson.M)
	if added["followers"] != actorID {
		t.Fatalf("follow must add actor to followers, got %v", added)
	}
	if removed["followers"] != actorID {
		t.Fatalf("unfollow must remove the same followers entry, got %v", removed)
	}
}

func TestFollowUsesSetSemantics(t *testing.T) {
	targetID := primitive.NewObjectID()
	update := followActorUpdate(targetID)

	if _, ok := update["$addToSet"]; !ok {
		t.Fatal("following must be maintained with $addToSet so a repeat follow cannot duplicate the entry")
	}
	if _, ok := update["$push"]; ok {
		t.Fatal("following must not be maintained with $push")
	}
}

func TestFollowTargetUpdatePrependsNotification(t *testing.T) {
	actorID := primitive.NewObjectID()
	notif := models.Notification{Type: "follow", User: actorID, CreatedAt: time.Now()}

	update := followTargetUpdate(actorID, notif)

	push, ok := update["$push"].(bson.M)
	if !ok {
		t.Fatalf("expected $push in %v", update)
	}
	spec, ok := push["notifications"].(bson.M)
	if !ok {
		t.Fatalf("expected notifications push in %v", push)
	}
	if spec["$position"] != 0 {
		t.Fatalf("notifications must be prepended, $position = %v", spec["$position"])
	}
	entries, ok := spec["$each"].([]models.Notification)
	if !ok || len(entries) != 1 {
		t.Fatalf("expected one notification entry, got %v", spec["$each"])
	}
	if entries[0].Type != "follow" || entries[0].User != actorID {
		t.Fatalf("unexpected notification %+v", entries[0])
	}
}

func TestUnfollowTargetUpdateLeavesNotificationsAlone(t *testing.T) {
	update := unfollowTargetUpdate(primitive.NewObjectID())
	if _, ok := update["$push"]; ok {
		t.Fatal("unfollow must not touch notifications")
	}
	pull := update["$pull"].(bson.M)
	if _, ok := pull["notifications"]; ok {
		t.Fatal("unfollow must not remove notifications")
	}
}
