package handlers

import (
	"fmt"
	"net/http"

	"pathshala-backend/application/ports"
	"pathshala-backend/application/services"
	"pathshala-backend/domain/account"
	"pathshala-backend/interfaces/http/rest/middleware"
	"pathshala-backend/pkg/auth"
	"pathshala-backend/pkg/common"
	pkgerrors "pathshala-backend/pkg/errors"
	"pathshala-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProfileHandler serves the extended profile behind the session
type ProfileHandler struct {
	reconciler *services.Reconciler
	profiles   ports.ProfileStore
	images     ports.ImageStore
	codec      *middleware.SessionCodec
	logger     *zap.Logger
}

// NewProfileHandler creates a profile handler
func NewProfileHandler(reconciler *services.Reconciler, profiles ports.ProfileStore, images ports.ImageStore, codec *middleware.SessionCodec, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		reconciler: reconciler,
		profiles:   profiles,
		images:     images,
		codec:      codec,
		logger:     logger,
	}
}

type presignPictureRequest struct {
	ContentType string `json:"contentType" validate:"required,oneof=image/jpeg image/png image/webp"`
}

type uploadTargetResponse struct {
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
	Key       string `json:"key"`
}

type presignPictureResponse struct {
	// Thumbnail is what goes into the picture attribute; the full image
	// is profile-store only
	Thumbnail uploadTargetResponse `json:"thumbnail"`
	Full      uploadTargetResponse `json:"full"`
}

// Me handles GET /profile/me, returning the stored record rather than
// the cached snapshot
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	profile, found, err := h.profiles.Get(r.Context(), user.UserID)
	if err != nil {
		respondAppError(w, h.logger, pkgerrors.NewProfilePersistError("profile lookup failed").WithCause(err))
		return
	}
	if !found {
		respondAppError(w, h.logger, pkgerrors.NewNotFoundError("profile"))
		return
	}

	common.RespondJSON(w, http.StatusOK, profile)
}

// Update handles PATCH /profile/me. Absent fields keep their value, an
// explicit null clears, a value overwrites.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch account.Patch
	if err := common.ParseJSONBody(r, &patch, maxRequestBody); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	mgr := services.NewSessionManager(auth.GetSessionFromContext(r.Context()))
	started := mgr.Current()
	next, profile, err := h.reconciler.UpdateAttributes(r.Context(), started, patch)
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	installSession(w, h.codec, mgr, started.Generation, next)

	common.RespondJSON(w, http.StatusOK, profile)
}

// PresignPicture handles POST /profile/me/picture. It hands back two
// presigned upload slots; the client uploads both renditions and then
// patches the picture field with the thumbnail URL.
func (h *ProfileHandler) PresignPicture(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	var req presignPictureRequest
	if err := common.ParseJSONBody(r, &req, maxRequestBody); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	uploadID := uuid.New().String()
	thumbKey := fmt.Sprintf("users/%s/profile/%s-thumb", user.UserID, uploadID)
	fullKey := fmt.Sprintf("users/%s/profile/%s-full", user.UserID, uploadID)

	thumb, err := h.images.PresignUpload(r.Context(), thumbKey, req.ContentType)
	if err != nil {
		respondAppError(w, h.logger, pkgerrors.NewInternalError("failed to presign upload").WithCause(err))
		return
	}
	full, err := h.images.PresignUpload(r.Context(), fullKey, req.ContentType)
	if err != nil {
		respondAppError(w, h.logger, pkgerrors.NewInternalError("failed to presign upload").WithCause(err))
		return
	}

	common.RespondJSON(w, http.StatusOK, presignPictureResponse{
		Thumbnail: uploadTargetResponse{UploadURL: thumb.UploadURL, PublicURL: thumb.PublicURL, Key: thumb.Key},
		Full:      uploadTargetResponse{UploadURL: full.UploadURL, PublicURL: full.PublicURL, Key: full.Key},
	})
}
