package http

import (
	"net/http"

	"clubsphere-backend/internal/security"
	"clubsphere-backend/internal/telemetry"

	"github.com/gorilla/mux"
)

// NewRouter assembles the API. Auth routes are public; everything under
// /api/clubs and /api/notifications requires a valid access token. Role
// checks live in the services, not here.
func NewRouter(
	tokens security.TokenManager,
	authHandler *AuthHandler,
	clubHandler *ClubHandler,
	noteHandler *NotificationHandler,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(telemetry.HTTPMiddleware)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	auth := r.PathPrefix("/api/auth").Subrouter()
	auth.HandleFunc("/signup", authHandler.Signup).Methods(http.MethodPost)
	auth.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh", authHandler.Refresh).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(AuthMiddleware(tokens))

	clubs := api.PathPrefix("/clubs").Subrouter()
	clubs.HandleFunc("/allClubs", clubHandler.ListAllClubs).Methods(http.MethodGet)
	clubs.HandleFunc("/createClub", clubHandler.CreateClub).Methods(http.MethodPost)
	clubs.HandleFunc("/my-clubs", clubHandler.ListMyClubs).Methods(http.MethodGet)
	clubs.HandleFunc("/my-requests", clubHandler.ListMyRequests).Methods(http.MethodGet)
	clubs.HandleFunc("/pending", clubHandler.ListPendingClubs).Methods(http.MethodGet)
	clubs.HandleFunc("/approve/{clubId}", clubHandler.ApproveClub).Methods(http.MethodPut)
	clubs.HandleFunc("/reject/{clubId}", clubHandler.RejectClub).Methods(http.MethodPut)
	clubs.HandleFunc("/join/{clubId}", clubHandler.RequestMembership).Methods(http.MethodPost)
	clubs.HandleFunc("/membership-requests/pending", clubHandler.ListPendingRequests).Methods(http.MethodGet)
	clubs.HandleFunc("/membership-requests/approve/{requestId}", clubHandler.ApproveMembershipRequest).Methods(http.MethodPut)
	clubs.HandleFunc("/membership-requests/reject/{requestId}", clubHandler.RejectMembershipRequest).Methods(http.MethodPut)
	clubs.HandleFunc("/{clubId}", clubHandler.GetClub).Methods(http.MethodGet)

	notes := api.PathPrefix("/notifications").Subrouter()
	notes.HandleFunc("", noteHandler.List).Methods(http.MethodGet)
	notes.HandleFunc("/{notificationId}/read", noteHandler.MarkAsRead).Methods(http.MethodPut)

	return r
}
