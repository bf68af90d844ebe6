package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"velo/cmd/identity"
	"velo/cmd/security/digest"
)

// fakeAccessor is an in-memory identity.Accessor.
type fakeAccessor struct {
	ids     []identity.UserID
	listErr error
	calls   int
}

func (f *fakeAccessor) ListUserIDs(_ context.Context) ([]identity.UserID, error) {
	f.calls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.ids, nil
}

func (f *fakeAccessor) GetUserByID(_ context.Context, id identity.UserID) (identity.User, error) {
	for _, known := range f.ids {
		if known == id {
			return identity.User{ID: id}, nil
		}
	}
	return identity.User{}, identity.NotFoundError{Op: "fake.GetUserByID", Resource: "user"}
}

func testConfig() Config {
	cfg := DefaultConfig()
	return cfg
}

func testHasher() digest.Config {
	return digest.Config{Cost: bcrypt.MinCost}
}

func mustIssue(t *testing.T, cfg Config, h digest.Config, id identity.UserID) *http.Cookie {
	t.Helper()
	iss, err := NewIssuer(cfg, h)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	ck, err := iss.Issue(context.Background(), id)
	if err != nil {
		t.Fatalf("Issue(%d): %v", id, err)
	}
	return ck
}

func mustResolver(t *testing.T, cfg Config, h digest.Config, users identity.Accessor) *Resolver {
	t.Helper()
	r, err := NewResolver(cfg, h, users, slog.Default())
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	return r
}

func foreignCookie(name, value string) *http.Cookie {
	return &http.Cookie{Name: name, Value: value}
}

func TestResolve_RoundTrip(t *testing.T) {
	cfg, h := testConfig(), testHasher()
	users := &fakeAccessor{ids: []identity.UserID{1, 2, 3}}
	r := mustResolver(t, cfg, h, users)

	ck := mustIssue(t, cfg, h, 2)

	id, err := r.Resolve(context.Background(), []*http.Cookie{ck})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if id != 2 {
		t.Fatalf("resolved %d, want 2", id)
	}
}

func TestResolve_UnrelatedCookiesAnyPosition(t *testing.T) {
	cfg, h := testConfig(), testHasher()
	users := &fakeAccessor{ids: []identity.UserID{7}}
	r := mustResolver(t, cfg, h, users)

	ck := mustIssue(t, cfg, h, 7)
	noise := []*http.Cookie{
		foreignCookie("_ga", "GA1.2.12345"),
		foreignCookie("theme", "dark"),
		foreignCookie("csrf", "abc/def=="),
	}

	// Issued cookie first, middle, and last.
	sets := [][]*http.Cookie{
		{ck, noise[0], noise[1], noise[2]},
		{noise[0], ck, noise[1], noise[2]},
		{noise[0], noise[1], noise[2], ck},
	}
	for i, cookies := range sets {
		id, err := r.Resolve(context.Background(), cookies)
		if err != nil {
			t.Fatalf("set %d: Resolve: %v", i, err)
		}
		if id != 7 {
			t.Fatalf("set %d: resolved %d, want 7", i, id)
		}
	}
}

func TestResolve_ReissueBothResolveIndependently(t *testing.T) {
	cfg, h := testConfig(), testHasher()
	users := &fakeAccessor{ids: []identity.UserID{5}}
	r := mustResolver(t, cfg, h, users)

	first := mustIssue(t, cfg, h, 5)
	second := mustIssue(t, cfg, h, 5)

	if first.Name == second.Name {
		t.Fatalf("re-issue produced an identical cookie name")
	}
	if first.Value == second.Value {
		t.Fatalf("re-issue produced an identical cookie value")
	}

	for i, ck := range []*http.Cookie{first, second} {
		id, err := r.Resolve(context.Background(), []*http.Cookie{ck})
		if err != nil {
			t.Fatalf("cookie %d: Resolve: %v", i, err)
		}
		if id != 5 {
			t.Fatalf("cookie %d: resolved %d, want 5", i, id)
		}
	}
}

func TestResolve_NeverCrossResolves(t *testing.T) {
	cfg, h := testConfig(), testHasher()
	users := &fakeAccessor{ids: []identity.UserID{1, 2}}
	r := mustResolver(t, cfg, h, users)

	ck1 := mustIssue(t, cfg, h, 1)

	id, err := r.Resolve(context.Background(), []*http.Cookie{ck1})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if id != 1 {
		t.Fatalf("u1's cookie resolved to %d", id)
	}
}

func TestResolve_EmptyCookieSet(t *testing.T) {
	cfg, h := testConfig(), testHasher()
	r := mustResolver(t, cfg, h, &fakeAccessor{ids: []identity.UserID{1}})

	_, err := r.Resolve(context.Background(), nil)
	if !errors.Is(err, ErrNoCookies) {
		t.Fatalf("expected ErrNoCookies, got %v", err)
	}
}

func TestResolve_OnlyForeignCookies(t *testing.T) {
	cfg, h := testConfig(), testHasher()
	users := &fakeAccessor{ids: []identity.UserID{1}}
	r := mustResolver(t, cfg, h, users)

	_, err := r.Resolve(context.Background(), []*http.Cookie{
		foreignCookie("_ga", "GA1.2.12345"),
		foreignCookie("sid", "deadbeef"),
	})
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if users.calls != 0 {
		t.Fatalf("store consulted %d times with no name match", users.calls)
	}
}

func TestResolve_UserGoneFromStore(t *testing.T) {
	cfg, h := testConfig(), testHasher()
	users := &fakeAccessor{ids: []identity.UserID{2, 3}}
	r := mustResolver(t, cfg, h, users)

	// Cookie for a user whose row no longer exists.
	ck := mustIssue(t, cfg, h, 9)

	_, err := r.Resolve(context.Background(), []*http.Cookie{ck})
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestResolve_StoreErrorIsNotUnauthenticated(t *testing.T) {
	cfg, h := testConfig(), testHasher()
	boom := errors.New("connection refused")
	users := &fakeAccessor{listErr: boom}
	r := mustResolver(t, cfg, h, users)

	ck := mustIssue(t, cfg, h, 1)

	_, err := r.Resolve(context.Background(), []*http.Cookie{ck})
	if err == nil {
		t.Fatalf("expected error")
	}
	if errors.Is(err, ErrUnauthenticated) || errors.Is(err, ErrNoCookies) {
		t.Fatalf("store failure must not look like a denial: %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("store error not propagated: %v", err)
	}
}

func TestResolve_CandidateCap(t *testing.T) {
	cfg, h := testConfig(), testHasher()
	cfg.MaxCandidates = 2
	users := &fakeAccessor{ids: []identity.UserID{1, 2, 3}}
	r := mustResolver(t, cfg, h, users)

	// User 3 sits beyond the cap; its cookie must not resolve.
	ck := mustIssue(t, cfg, h, 3)

	_, err := r.Resolve(context.Background(), []*http.Cookie{ck})
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated beyond cap, got %v", err)
	}
}

func TestResolve_FreshSnapshotPerCall(t *testing.T) {
	cfg, h := testConfig(), testHasher()
	users := &fakeAccessor{ids: []identity.UserID{4}}
	r := mustResolver(t, cfg, h, users)

	ck := mustIssue(t, cfg, h, 4)

	for range 3 {
		if _, err := r.Resolve(context.Background(), []*http.Cookie{ck}); err != nil {
			t.Fatalf("Resolve: %v", err)
		}
	}
	if users.calls != 3 {
		t.Fatalf("expected 3 fresh store snapshots, got %d", users.calls)
	}
}
