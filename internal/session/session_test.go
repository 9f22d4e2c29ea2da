// session_test.go exercises the Valkey-backed session store end to end.
// Tests are skipped when Valkey is not reachable.
package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testClient returns a Valkey client on DB 15, skipping if unreachable.
func testClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, keyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

// requestWithCookies builds a request carrying the cookies a previous
// response set.
func requestWithCookies(rec *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestSessionLifecycle(t *testing.T) {
	store := NewStore(testClient(t), false)
	ctx := context.Background()

	rec := httptest.NewRecorder()
	id, err := store.Create(ctx, rec, &Data{AdminID: 42, Username: "admin"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(id) != idLength*2 {
		t.Errorf("session id length: got %d, want %d", len(id), idLength*2)
	}

	// Cookie must be HttpOnly and carry the session id.
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName {
		t.Fatalf("expected one %s cookie, got %v", CookieName, cookies)
	}
	if !cookies[0].HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
	if cookies[0].Value != id {
		t.Error("cookie value does not match session id")
	}

	// Get resolves the cookie back to the payload.
	data, err := store.Get(ctx, requestWithCookies(rec))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if data == nil {
		t.Fatal("expected session data, got nil")
	}
	if data.AdminID != 42 || data.Username != "admin" {
		t.Errorf("payload: got %+v", data)
	}
	if data.CreatedAt.IsZero() {
		t.Error("CreatedAt must be set on Create")
	}

	// Destroy removes it and expires the cookie.
	destroyRec := httptest.NewRecorder()
	if err := store.Destroy(ctx, destroyRec, requestWithCookies(rec)); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	expired := destroyRec.Result().Cookies()
	if len(expired) != 1 || expired[0].MaxAge != -1 {
		t.Error("Destroy must expire the cookie")
	}

	data, err = store.Get(ctx, requestWithCookies(rec))
	if err != nil {
		t.Fatalf("Get after destroy: %v", err)
	}
	if data != nil {
		t.Error("session survived Destroy")
	}
}

func TestSessionGetWithoutCookie(t *testing.T) {
	store := NewStore(testClient(t), false)

	data, err := store.Get(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if data != nil {
		t.Error("no cookie must mean no session, not an error")
	}
}

func TestSessionGetUnknownID(t *testing.T) {
	store := NewStore(testClient(t), false)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "deadbeef"})

	data, err := store.Get(context.Background(), r)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if data != nil {
		t.Error("unknown session id must resolve to nil")
	}
}

func TestSecureCookieFlag(t *testing.T) {
	store := NewStore(testClient(t), true)

	rec := httptest.NewRecorder()
	if _, err := store.Create(context.Background(), rec, &Data{AdminID: 1, Username: "a"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !rec.Result().Cookies()[0].Secure {
		t.Error("secure store must set Secure cookies")
	}
}
