package handlers

import (
	"net/http"

	"pathshala-backend/application/services"
	"pathshala-backend/domain/account"
	"pathshala-backend/domain/session"
	"pathshala-backend/interfaces/http/rest/middleware"
	"pathshala-backend/pkg/auth"
	"pathshala-backend/pkg/common"
	"pathshala-backend/pkg/utils"

	"go.uber.org/zap"
)

// AuthHandler exposes the authentication lifecycle over REST. Every
// operation seeds a session manager from the caller's cookies, runs the
// reconciler against the captured session, and installs the result
// through the manager's generation guard before writing cookies back.
type AuthHandler struct {
	reconciler *services.Reconciler
	codec      *middleware.SessionCodec
	logger     *zap.Logger
}

// NewAuthHandler creates an auth handler
func NewAuthHandler(reconciler *services.Reconciler, codec *middleware.SessionCodec, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		reconciler: reconciler,
		codec:      codec,
		logger:     logger,
	}
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required,max=100"`
	Role     string `json:"role" validate:"omitempty,oneof=student coach"`
}

type confirmSignUpRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type confirmForgotPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// sessionResponse is the client-facing view of a session. The token
// itself never appears in a response body; it travels only in the
// HttpOnly cookie.
type sessionResponse struct {
	Authenticated bool             `json:"authenticated"`
	State         string           `json:"state"`
	ExpiresAt     string           `json:"expiresAt,omitempty"`
	Profile       *account.Profile `json:"profile,omitempty"`
}

func newSessionResponse(sess session.Session) sessionResponse {
	resp := sessionResponse{
		Authenticated: sess.IsAuthenticated(),
		State:         string(sess.State),
	}
	if sess.IsAuthenticated() {
		snapshot := sess.Snapshot
		resp.Profile = &snapshot
		if !sess.ExpiresAt.IsZero() {
			resp.ExpiresAt = utils.FormatRFC3339(sess.ExpiresAt)
		}
	}
	return resp
}

// SignIn handles POST /auth/signin
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := common.ParseJSONBody(r, &req, maxRequestBody); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	mgr := services.NewSessionManager(auth.GetSessionFromContext(r.Context()))
	started := mgr.Current()
	next, err := h.reconciler.SignIn(r.Context(), started, req.Email, req.Password)
	sess := installSession(w, h.codec, mgr, started.Generation, next)
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, newSessionResponse(sess))
}

// SignUp handles POST /auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := common.ParseJSONBody(r, &req, maxRequestBody); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	role := account.DefaultRole
	if req.Role != "" {
		parsed, err := account.ParseRole(req.Role)
		if err != nil {
			respondBadRequest(w, "invalid role")
			return
		}
		role = parsed
	}

	mgr := services.NewSessionManager(auth.GetSessionFromContext(r.Context()))
	started := mgr.Current()
	next, err := h.reconciler.SignUp(r.Context(), started, req.Email, req.Password, req.Name, role)
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	sess := installSession(w, h.codec, mgr, started.Generation, next)

	common.RespondJSON(w, http.StatusCreated, newSessionResponse(sess))
}

// ConfirmSignUp handles POST /auth/signup/confirm
func (h *AuthHandler) ConfirmSignUp(w http.ResponseWriter, r *http.Request) {
	var req confirmSignUpRequest
	if err := common.ParseJSONBody(r, &req, maxRequestBody); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	mgr := services.NewSessionManager(auth.GetSessionFromContext(r.Context()))
	started := mgr.Current()
	next, err := h.reconciler.ConfirmSignUp(r.Context(), started, req.Email, req.Code)
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	sess := installSession(w, h.codec, mgr, started.Generation, next)

	common.RespondJSON(w, http.StatusOK, newSessionResponse(sess))
}

// SignOut handles POST /auth/signout. It always succeeds from the
// client's point of view; cookies are cleared regardless of what the
// identity provider said.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	mgr := services.NewSessionManager(auth.GetSessionFromContext(r.Context()))
	started := mgr.Current()
	next := h.reconciler.SignOut(r.Context(), started)
	sess := installSession(w, h.codec, mgr, started.Generation, next)

	common.RespondJSON(w, http.StatusOK, newSessionResponse(sess))
}

// ForgotPassword handles POST /auth/password/forgot
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := common.ParseJSONBody(r, &req, maxRequestBody); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	mgr := services.NewSessionManager(auth.GetSessionFromContext(r.Context()))
	started := mgr.Current()
	next, err := h.reconciler.ForgotPassword(r.Context(), started, req.Email)
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	sess := installSession(w, h.codec, mgr, started.Generation, next)

	common.RespondJSON(w, http.StatusOK, newSessionResponse(sess))
}

// ConfirmForgotPassword handles POST /auth/password/confirm
func (h *AuthHandler) ConfirmForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req confirmForgotPasswordRequest
	if err := common.ParseJSONBody(r, &req, maxRequestBody); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	mgr := services.NewSessionManager(auth.GetSessionFromContext(r.Context()))
	started := mgr.Current()
	next, err := h.reconciler.ConfirmForgotPassword(r.Context(), started, req.Email, req.Code, req.NewPassword)
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	sess := installSession(w, h.codec, mgr, started.Generation, next)

	common.RespondJSON(w, http.StatusOK, newSessionResponse(sess))
}

// Session handles GET /auth/session: revalidate whatever the cookies
// carry and report the outcome. This never fails; a rejected session
// just comes back anonymous.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	mgr := services.NewSessionManager(auth.GetSessionFromContext(r.Context()))
	started := mgr.Current()
	next := h.reconciler.ReconcileOnLoad(r.Context(), started)
	sess := installSession(w, h.codec, mgr, started.Generation, next)

	common.RespondJSON(w, http.StatusOK, newSessionResponse(sess))
}
