package session

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"velo/cmd/identity"
)

func plainError(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}

func TestRequireSession_AttachesUserID(t *testing.T) {
	cfg, h := testConfig(), testHasher()
	users := &fakeAccessor{ids: []identity.UserID{11}}
	r := mustResolver(t, cfg, h, users)

	var got identity.UserID
	var ok bool
	next := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		got, ok = UserIDFromContext(req.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/data", nil)
	req.AddCookie(mustIssue(t, cfg, h, 11))
	rr := httptest.NewRecorder()

	RequireSession(r, plainError)(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if !ok || got != 11 {
		t.Fatalf("user id not attached: ok=%v id=%d", ok, got)
	}
}

func TestRequireSession_NoCookiesAndForeignCookiesLookAlike(t *testing.T) {
	cfg, h := testConfig(), testHasher()
	users := &fakeAccessor{ids: []identity.UserID{1}}
	r := mustResolver(t, cfg, h, users)

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatalf("handler must not run")
	})
	mw := RequireSession(r, plainError)(next)

	// Zero cookies.
	rr1 := httptest.NewRecorder()
	mw.ServeHTTP(rr1, httptest.NewRequest(http.MethodGet, "/data", nil))

	// Foreign cookies only.
	req2 := httptest.NewRequest(http.MethodGet, "/data", nil)
	req2.AddCookie(foreignCookie("sid", "deadbeef"))
	rr2 := httptest.NewRecorder()
	mw.ServeHTTP(rr2, req2)

	if rr1.Code != http.StatusUnauthorized || rr2.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", rr1.Code, rr2.Code)
	}
	if rr1.Body.String() != rr2.Body.String() {
		t.Fatalf("responses must be indistinguishable: %q vs %q", rr1.Body.String(), rr2.Body.String())
	}
}

func TestRequireSession_StoreFailureIs500(t *testing.T) {
	cfg, h := testConfig(), testHasher()
	users := &fakeAccessor{listErr: errors.New("connection refused")}
	r := mustResolver(t, cfg, h, users)

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatalf("handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/data", nil)
	req.AddCookie(mustIssue(t, cfg, h, 1))
	rr := httptest.NewRecorder()

	RequireSession(r, plainError)(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}
