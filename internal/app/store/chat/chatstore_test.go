package chatstore

import (
	"testing"
	"time"

	"github.com/foliostack/folio/internal/domain/models"
	"github.com/foliostack/folio/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func msg(id, content, typ string) models.ChatMessage {
	return models.ChatMessage{
		ID:        id,
		Content:   content,
		Type:      typ,
		Timestamp: time.Now().UTC(),
	}
}

func TestStore_Get_Missing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Get(ctx, "nobody"); err != mongo.ErrNoDocuments {
		t.Errorf("Get() error = %v, want ErrNoDocuments", err)
	}
}

func TestStore_Append_CreatesAndExtends(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hist, err := store.Append(ctx, "visitor-1",
		msg("m1", "hello", models.ChatMessageUser),
		msg("m2", "Hi! How can I help?", models.ChatMessageBot),
	)
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if hist.UserID != "visitor-1" {
		t.Errorf("UserID = %v, want visitor-1", hist.UserID)
	}
	if len(hist.Messages) != 2 {
		t.Fatalf("Messages = %d, want 2", len(hist.Messages))
	}

	hist, err = store.Append(ctx, "visitor-1", msg("m3", "thanks", models.ChatMessageUser))
	if err != nil {
		t.Fatalf("second Append() error = %v", err)
	}
	if len(hist.Messages) != 3 {
		t.Fatalf("Messages after second append = %d, want 3", len(hist.Messages))
	}
	if hist.Messages[2].Content != "thanks" {
		t.Errorf("last message = %v, want thanks", hist.Messages[2].Content)
	}

	// Transcripts are isolated per visitor.
	other, err := store.Append(ctx, "visitor-2", msg("m1", "hey", models.ChatMessageUser))
	if err != nil {
		t.Fatalf("Append() for other visitor error = %v", err)
	}
	if len(other.Messages) != 1 {
		t.Errorf("other visitor Messages = %d, want 1", len(other.Messages))
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store.Append(ctx, "visitor-1", msg("m1", "hello", models.ChatMessageUser))

	if err := store.Delete(ctx, "visitor-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get(ctx, "visitor-1"); err != mongo.ErrNoDocuments {
		t.Errorf("Get() after delete error = %v, want ErrNoDocuments", err)
	}
}

func TestStore_DeleteStale(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store.Append(ctx, "fresh", msg("m1", "hi", models.ChatMessageUser))
	store.Append(ctx, "stale", msg("m1", "hi", models.ChatMessageUser))

	// Backdate the stale transcript past the TTL.
	old := time.Now().UTC().Add(-48 * time.Hour)
	if _, err := db.Collection("chat_histories").UpdateOne(ctx,
		bson.M{"user_id": "stale"},
		bson.M{"$set": bson.M{"updated_at": old}},
	); err != nil {
		t.Fatalf("backdating failed: %v", err)
	}

	removed, err := store.DeleteStale(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("DeleteStale() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("DeleteStale() removed = %d, want 1", removed)
	}

	if _, err := store.Get(ctx, "fresh"); err != nil {
		t.Errorf("fresh transcript was removed: %v", err)
	}
	if _, err := store.Get(ctx, "stale"); err != mongo.ErrNoDocuments {
		t.Errorf("stale transcript survived: %v", err)
	}
}
