package apikeystore

import (
	"strings"
	"testing"

	"github.com/foliostack/folio/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGenerateKey(t *testing.T) {
	key, prefix, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error = %v", err)
	}
	if !strings.HasPrefix(key, "fk_") {
		t.Errorf("key %q missing fk_ prefix", key)
	}
	if !strings.HasPrefix(key, prefix) || len(prefix) != 11 {
		t.Errorf("prefix %q does not match key %q", prefix, key)
	}

	other, _, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error = %v", err)
	}
	if key == other {
		t.Error("two generated keys are identical")
	}
}

func TestStore_Create_And_Validate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	result, err := store.Create(ctx, "dashboard")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if result.FullKey == "" {
		t.Fatal("Create() returned empty full key")
	}
	if !strings.HasPrefix(result.FullKey, result.Key.KeyPrefix) {
		t.Errorf("prefix %q is not a prefix of the full key", result.Key.KeyPrefix)
	}
	// Only the hash is stored.
	if result.Key.KeyHash == result.FullKey {
		t.Error("key stored in plaintext")
	}

	validated, err := store.Validate(ctx, result.FullKey)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if validated.Name != "dashboard" {
		t.Errorf("validated Name = %v, want dashboard", validated.Name)
	}

	if _, err := store.Validate(ctx, "fk_0000000000000000000000000000000000000000"); err != ErrInvalidKey {
		t.Errorf("Validate() with wrong key error = %v, want ErrInvalidKey", err)
	}
	if _, err := store.Validate(ctx, "short"); err != ErrInvalidKey {
		t.Errorf("Validate() with short key error = %v, want ErrInvalidKey", err)
	}
}

func TestStore_Check(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	result, err := store.Create(ctx, "ci")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := store.Check(ctx, result.FullKey); err != nil {
		t.Errorf("Check() error = %v", err)
	}
	if err := store.Check(ctx, "fk_not_a_real_key_value_here"); err == nil {
		t.Error("Check() accepted an invalid key")
	}
}

func TestStore_Create_DuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, "dashboard"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := store.Create(ctx, "dashboard"); err != ErrDuplicateName {
		t.Errorf("duplicate Create() error = %v, want ErrDuplicateName", err)
	}
}

func TestStore_Revoke(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	result, err := store.Create(ctx, "old-laptop")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := store.Revoke(ctx, result.Key.ID); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}

	// A revoked key no longer authenticates.
	if _, err := store.Validate(ctx, result.FullKey); err != ErrInvalidKey {
		t.Errorf("Validate() after revoke error = %v, want ErrInvalidKey", err)
	}

	// Revoking twice reports not found.
	if err := store.Revoke(ctx, result.Key.ID); err != ErrNotFound {
		t.Errorf("second Revoke() error = %v, want ErrNotFound", err)
	}

	if err := store.Revoke(ctx, primitive.NewObjectID()); err != ErrNotFound {
		t.Errorf("Revoke() of missing id error = %v, want ErrNotFound", err)
	}
}

func TestStore_List_And_CountActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, _ := store.Create(ctx, "a")
	store.Create(ctx, "b")
	store.Revoke(ctx, a.Key.ID)

	keys, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(keys) != 2 {
		t.Errorf("List() = %d keys, want 2", len(keys))
	}

	active, err := store.CountActive(ctx)
	if err != nil {
		t.Fatalf("CountActive() error = %v", err)
	}
	if active != 1 {
		t.Errorf("CountActive() = %d, want 1", active)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	result, _ := store.Create(ctx, "temp")

	if err := store.Delete(ctx, result.Key.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := store.Delete(ctx, result.Key.ID); err != ErrNotFound {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}
