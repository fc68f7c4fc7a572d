package http

import (
	"net/http"
	"strconv"

	"clubsphere-backend/internal/cache"
	"clubsphere-backend/internal/domain"
	"clubsphere-backend/internal/service"

	"github.com/gorilla/mux"
)

type ClubHandler struct {
	clubSvc     service.ClubService
	workflowSvc service.WorkflowService
	mirror      *cache.Mirror
}

func NewClubHandler(clubSvc service.ClubService, workflowSvc service.WorkflowService, mirror *cache.Mirror) *ClubHandler {
	return &ClubHandler{
		clubSvc:     clubSvc,
		workflowSvc: workflowSvc,
		mirror:      mirror,
	}
}

// ListAllClubs serves the public club list from the mirror; the mirror
// refreshes itself from the store when its copy is stale.
func (h *ClubHandler) ListAllClubs(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if !sess.Valid() {
		writeError(w, domain.ErrUnauthorized)
		return
	}

	clubs, err := h.mirror.ApprovedClubs(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"clubs": clubs})
}

func (h *ClubHandler) GetClub(w http.ResponseWriter, r *http.Request) {
	clubID, ok := pathID(w, r, "clubId")
	if !ok {
		return
	}
	club, err := h.clubSvc.GetClub(r.Context(), SessionFromContext(r.Context()), clubID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"club": club})
}

func (h *ClubHandler) ListMyClubs(w http.ResponseWriter, r *http.Request) {
	clubs, err := h.clubSvc.ListMyClubs(r.Context(), SessionFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"clubs": clubs})
}

func (h *ClubHandler) ListMyRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.clubSvc.ListMyMembershipRequests(r.Context(), SessionFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"requests": requests})
}

func (h *ClubHandler) CreateClub(w http.ResponseWriter, r *http.Request) {
	var draft domain.ClubDraft
	if !decodeBody(w, r, &draft) {
		return
	}

	club, err := h.workflowSvc.SubmitClub(r.Context(), SessionFromContext(r.Context()), draft)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"club": club})
}

type joinRequest struct {
	RequestMessage string `json:"requestMessage"`
}

func (h *ClubHandler) RequestMembership(w http.ResponseWriter, r *http.Request) {
	clubID, ok := pathID(w, r, "clubId")
	if !ok {
		return
	}
	var body joinRequest
	if r.ContentLength > 0 && !decodeBody(w, r, &body) {
		return
	}

	req, err := h.workflowSvc.SubmitMembershipRequest(r.Context(), SessionFromContext(r.Context()), clubID, body.RequestMessage)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"request": req})
}

// Admin queue reads answer from the authoritative store, never the mirror,
// so a queue entry another admin already decided disappears on the next
// fetch.

func (h *ClubHandler) ListPendingClubs(w http.ResponseWriter, r *http.Request) {
	clubs, err := h.clubSvc.ListPendingClubs(r.Context(), SessionFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"clubs": clubs})
}

func (h *ClubHandler) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.clubSvc.ListPendingMembershipRequests(r.Context(), SessionFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"requests": requests})
}

func (h *ClubHandler) ApproveClub(w http.ResponseWriter, r *http.Request) {
	h.decideClub(w, r, service.DecisionApprove)
}

func (h *ClubHandler) RejectClub(w http.ResponseWriter, r *http.Request) {
	h.decideClub(w, r, service.DecisionReject)
}

func (h *ClubHandler) decideClub(w http.ResponseWriter, r *http.Request, decision service.Decision) {
	clubID, ok := pathID(w, r, "clubId")
	if !ok {
		return
	}

	club, err := h.workflowSvc.DecideClub(r.Context(), SessionFromContext(r.Context()), clubID, decision)
	if err != nil {
		// A conflicting decision means the mirror's pending list is stale.
		h.mirror.OnDecisionError(r.Context(), err)
		writeError(w, err)
		return
	}

	h.mirror.CommitClubDecision(club)
	writeJSON(w, http.StatusOK, map[string]any{"club": club})
}

type rejectRequestBody struct {
	RejectionReason string `json:"rejectionReason"`
}

func (h *ClubHandler) ApproveMembershipRequest(w http.ResponseWriter, r *http.Request) {
	h.decideRequest(w, r, service.DecisionApprove, "")
}

func (h *ClubHandler) RejectMembershipRequest(w http.ResponseWriter, r *http.Request) {
	var body rejectRequestBody
	if r.ContentLength > 0 && !decodeBody(w, r, &body) {
		return
	}
	h.decideRequest(w, r, service.DecisionReject, body.RejectionReason)
}

func (h *ClubHandler) decideRequest(w http.ResponseWriter, r *http.Request, decision service.Decision, reason string) {
	requestID, ok := pathID(w, r, "requestId")
	if !ok {
		return
	}

	req, err := h.workflowSvc.DecideMembershipRequest(r.Context(), SessionFromContext(r.Context()), requestID, decision, reason)
	if err != nil {
		h.mirror.OnDecisionError(r.Context(), err)
		writeError(w, err)
		return
	}

	h.mirror.CommitRequestDecision(req)
	writeJSON(w, http.StatusOK, map[string]any{"request": req})
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int32, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid " + name})
		return 0, false
	}
	return int32(id), true
}
