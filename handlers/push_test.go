package handlers

import (
	"testing"

	"github.com/SherClockHolmes/webpush-go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// A re-subscribe matches an existing document, so the _id must only ever
// be written on insert. A $set on the immutable _id fails the whole upsert.
func TestPushSubscriptionUpdateKeepsIDImmutable(t *testing.T) {
	userID := primitive.NewObjectID()
	sub := webpush.Subscription{
		Endpoint: "https://push.example.com/endpoint",
		Keys:     webpush.Keys{P256dh: "p256dh-key", Auth: "auth-secret"},
	}

	update := pushSubscriptionUpdate(userID, sub)

	set, ok := update["$set"].(bson.M)
	if !ok {
		t.Fatalf("expected $set in %v", update)
	}
	if _, ok := set["_id"]; ok {
		t.Fatal("$set must not carry _id, updating an existing subscription would fail")
	}
	if set["userId"] != userID {
		t.Fatalf("expected userId in $set, got %v", set)
	}
	if got, ok := set["sub"].(webpush.Subscription); !ok || got.Endpoint != sub.Endpoint {
		t.Fatalf("expected subscription in $set, got %v", set["sub"])
	}

	onInsert, ok := update["$setOnInsert"].(bson.M)
	if !ok {
		t.Fatalf("expected $setOnInsert in %v", update)
	}
	id, ok := onInsert["_id"].(primitive.ObjectID)
	if !ok || id.IsZero() {
		t.Fatalf("expected a fresh _id under $setOnInsert, got %v", onInsert["_id"])
	}
}
