package testimonialstore

import (
	"testing"

	"github.com/foliostack/folio/internal/domain/models"
	"github.com/foliostack/folio/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create_StartsPending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Testimonial{
		Author: "Alex Chen",
		Quote:  "Great work, delivered on time.",
		Rating: 5,
		// Status set by a hostile client must be overridden.
		Status: models.TestimonialApproved,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if created.Status != models.TestimonialPending {
		t.Errorf("Status = %v, want pending", created.Status)
	}
	if created.ID.IsZero() {
		t.Error("ID not assigned")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
}

func TestStore_ListApproved_FiltersStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, _ := store.Create(ctx, models.Testimonial{Author: "A", Quote: "one"})
	store.Create(ctx, models.Testimonial{Author: "B", Quote: "two"})
	c, _ := store.Create(ctx, models.Testimonial{Author: "C", Quote: "three"})

	store.SetStatus(ctx, a.ID, models.TestimonialApproved)
	store.SetStatus(ctx, c.ID, models.TestimonialRejected)

	approved, err := store.ListApproved(ctx)
	if err != nil {
		t.Fatalf("ListApproved() error = %v", err)
	}
	if len(approved) != 1 {
		t.Fatalf("ListApproved() = %d testimonials, want 1", len(approved))
	}
	if approved[0].Author != "A" {
		t.Errorf("approved author = %v, want A", approved[0].Author)
	}

	all, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("ListAll() = %d testimonials, want 3", len(all))
	}
}

func TestStore_SetStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, _ := store.Create(ctx, models.Testimonial{Author: "A", Quote: "q"})

	updated, err := store.SetStatus(ctx, created.ID, models.TestimonialApproved)
	if err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}
	if updated.Status != models.TestimonialApproved {
		t.Errorf("Status = %v, want approved", updated.Status)
	}

	// Moderation decisions are reversible.
	updated, err = store.SetStatus(ctx, created.ID, models.TestimonialPending)
	if err != nil {
		t.Fatalf("SetStatus() back to pending error = %v", err)
	}
	if updated.Status != models.TestimonialPending {
		t.Errorf("Status = %v, want pending", updated.Status)
	}

	if _, err := store.SetStatus(ctx, primitive.NewObjectID(), models.TestimonialApproved); err != mongo.ErrNoDocuments {
		t.Errorf("SetStatus() on missing id error = %v, want ErrNoDocuments", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, _ := store.Create(ctx, models.Testimonial{Author: "A", Quote: "q"})

	if err := store.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := store.Delete(ctx, created.ID); err != mongo.ErrNoDocuments {
		t.Errorf("second Delete() error = %v, want ErrNoDocuments", err)
	}
}
