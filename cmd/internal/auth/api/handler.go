package authapi

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"velo/cmd/identity"
	"velo/cmd/internal/auth/session"
	"velo/cmd/security/digest"
)

// Handler wires HTTP auth endpoints to the identity store and the
// cookie session protocol.
type Handler struct {
	log *slog.Logger
	cfg Config

	store  identity.Store
	hasher digest.Config

	issuer   *session.Issuer
	resolver *session.Resolver
	revoker  *session.Revoker

	limiter *ipLimiter

	dummyHash string
}

// NewHandler constructs an auth Handler on top of the given store.
func NewHandler(log *slog.Logger, store identity.Store, hasher digest.Config, cfg Config, sessCfg session.Config) (*Handler, error) {
	if log == nil {
		log = slog.Default()
	}
	if store == nil {
		return nil, errors.New("auth: nil identity store")
	}
	if err := sessCfg.Validate(); err != nil {
		return nil, err
	}

	issuer, err := session.NewIssuer(sessCfg, hasher)
	if err != nil {
		return nil, err
	}
	resolver, err := session.NewResolver(sessCfg, hasher, store, log)
	if err != nil {
		return nil, err
	}
	revoker, err := session.NewRevoker(sessCfg)
	if err != nil {
		return nil, err
	}

	h := &Handler{
		log:      log,
		cfg:      cfg,
		store:    store,
		hasher:   hasher,
		issuer:   issuer,
		resolver: resolver,
		revoker:  revoker,
		limiter:  newIPLimiter(cfg.AuthRPS, cfg.AuthBurst, cfg.LimiterIdleTTL),
	}

	// Dummy digest for timing-resistant login checks.
	if hash, err := hasher.Hash("dummy-password-for-timing-only"); err == nil {
		h.dummyHash = hash
	}

	return h, nil
}

// Register wires auth routes onto the provided mux.
func (h *Handler) Register(mux *http.ServeMux) {
	if h == nil || mux == nil {
		return
	}
	mux.HandleFunc("/register", h.handleRegister)
	mux.HandleFunc("/login", h.handleLogin)
	mux.HandleFunc("/logout", h.handleLogout)
	mux.Handle("/data", session.RequireSession(h.resolver, h.writeSessionError)(http.HandlerFunc(h.handleData)))
}

// ---- handlers ----

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !h.allowRequest(r) {
		writeRateLimited(w)
		return
	}

	var req registerRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}
	if fe := validateRegister(req); fe != nil {
		writeError(w, http.StatusBadRequest, "invalid_"+fe.Field, fe.Message)
		return
	}

	ctx := r.Context()
	email := identity.NormalizeEmail(req.Email)

	passwordHash, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.log.Error("auth.register.hash.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	in := identity.CreateUserInput{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         req.Name,
		Surname:      req.Surname,
		Now:          time.Now().UTC(),
	}
	if req.Phone != "" {
		phone := req.Phone
		in.Phone = &phone
	}

	user, err := h.store.CreateUser(ctx, in)
	if err != nil {
		if identity.IsConflict(err) {
			writeError(w, http.StatusConflict, "email_taken", "email is already registered")
			return
		}
		h.log.Error("auth.register.create.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	if err := h.issuer.SetCookie(ctx, w, user.ID); err != nil {
		h.log.Error("auth.register.issue.fail", "err", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	h.log.Info("auth.register.ok", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, sessionResponse{User: toUserResponse(user)})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !h.allowRequest(r) {
		writeRateLimited(w)
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}
	if fe := validateLogin(req); fe != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", fe.Message)
		return
	}

	ctx := r.Context()
	email := identity.NormalizeEmail(req.Email)

	auth, err := h.store.GetUserAuthByEmail(ctx, email)
	if err != nil {
		if identity.IsNotFound(err) {
			// Timing resistance: perform a dummy verify when user is missing.
			if h.dummyHash != "" {
				_ = h.hasher.Verify(req.Password, h.dummyHash)
			}
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
			return
		}
		h.log.Error("auth.login.lookup.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	if !h.hasher.Verify(req.Password, auth.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
		return
	}

	if err := h.issuer.SetCookie(ctx, w, auth.User.ID); err != nil {
		h.log.Error("auth.login.issue.fail", "err", err, "user_id", auth.User.ID)
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	h.log.Info("auth.login.ok", "user_id", auth.User.ID)
	writeJSON(w, http.StatusOK, sessionResponse{User: toUserResponse(auth.User)})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := h.revoker.RevokeAll(w, r.Cookies()); err != nil {
		if errors.Is(err, session.ErrNoCookies) {
			writeError(w, http.StatusBadRequest, "no_active_session", "no session cookie presented")
			return
		}
		h.log.Error("auth.logout.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "session closed"})
}

func (h *Handler) handleData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	userID, ok := session.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "invalid session")
		return
	}

	user, err := h.store.GetUserByID(r.Context(), userID)
	if err != nil {
		if identity.IsNotFound(err) {
			// The session digest matched an id that no longer has a
			// profile row. Treat it as any other failed resolution.
			writeError(w, http.StatusUnauthorized, "unauthenticated", "invalid session")
			return
		}
		h.log.Error("auth.data.lookup.fail", "err", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{User: toUserResponse(user)})
}

// ---- shared responses ----

func (h *Handler) writeSessionError(w http.ResponseWriter, status int) {
	switch status {
	case http.StatusUnauthorized:
		writeError(w, http.StatusUnauthorized, "unauthenticated", "invalid session")
	case http.StatusServiceUnavailable:
		writeError(w, http.StatusServiceUnavailable, "server_busy", "please retry later")
	default:
		writeError(w, status, "server_error", "internal error")
	}
}

func (h *Handler) allowRequest(r *http.Request) bool {
	if h.limiter == nil {
		return true
	}
	ip := clientIP(r, h.cfg.TrustProxy)
	if ip == nil {
		return true
	}
	return h.limiter.allow(ip.String(), time.Now())
}

func writeRateLimited(w http.ResponseWriter) {
	w.Header().Set("Retry-After", "1")
	writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests")
}
