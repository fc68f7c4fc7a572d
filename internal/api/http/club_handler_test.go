package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	apihttp "clubsphere-backend/internal/api/http"
	"clubsphere-backend/internal/cache"
	"clubsphere-backend/internal/domain"
	"clubsphere-backend/internal/security"
	"clubsphere-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Stub services let handler tests pin the exact service outcome per case.

type stubAuthService struct {
	loginFn func(ctx context.Context, email, password string) (*domain.User, string, string, error)
}

func (s *stubAuthService) Signup(ctx context.Context, name, email, college, password string) (*domain.User, string, string, error) {
	return &domain.User{ID: 7, Name: name, Email: email}, "access", "refresh", nil
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	if s.loginFn != nil {
		return s.loginFn(ctx, email, password)
	}
	return nil, "", "", service.ErrInvalidCredentials
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	return "", "", domain.ErrUnauthorized
}

type stubClubService struct {
	getClubFn func(ctx context.Context, sess *domain.Session, clubID int32) (*domain.Club, error)
}

func (s *stubClubService) ListApprovedClubs(ctx context.Context, sess *domain.Session) ([]domain.Club, error) {
	return nil, nil
}

func (s *stubClubService) GetClub(ctx context.Context, sess *domain.Session, clubID int32) (*domain.Club, error) {
	if s.getClubFn != nil {
		return s.getClubFn(ctx, sess, clubID)
	}
	return nil, domain.ErrNotFound
}

func (s *stubClubService) ListMyClubs(ctx context.Context, sess *domain.Session) ([]domain.Club, error) {
	return nil, nil
}

func (s *stubClubService) ListMyMembershipRequests(ctx context.Context, sess *domain.Session) ([]domain.MembershipRequest, error) {
	return nil, nil
}

func (s *stubClubService) ListPendingClubs(ctx context.Context, sess *domain.Session) ([]domain.Club, error) {
	if !sess.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return nil, nil
}

func (s *stubClubService) ListPendingMembershipRequests(ctx context.Context, sess *domain.Session) ([]domain.MembershipRequest, error) {
	return nil, nil
}

type stubWorkflowService struct {
	decideClubFn    func(ctx context.Context, sess *domain.Session, clubID int32, decision service.Decision) (*domain.Club, error)
	decideRequestFn func(ctx context.Context, sess *domain.Session, requestID int32, decision service.Decision, reason string) (*domain.MembershipRequest, error)
}

func (s *stubWorkflowService) SubmitClub(ctx context.Context, sess *domain.Session, draft domain.ClubDraft) (*domain.Club, error) {
	if draft.Name == "" {
		return nil, service.ErrEmptyDraft
	}
	return &domain.Club{ID: 1, Name: draft.Name, CreatedBy: sess.UserID, Status: domain.ClubStatusPending}, nil
}

func (s *stubWorkflowService) DecideClub(ctx context.Context, sess *domain.Session, clubID int32, decision service.Decision) (*domain.Club, error) {
	if s.decideClubFn != nil {
		return s.decideClubFn(ctx, sess, clubID, decision)
	}
	return nil, domain.ErrNotFound
}

func (s *stubWorkflowService) SubmitMembershipRequest(ctx context.Context, sess *domain.Session, clubID int32, message string) (*domain.MembershipRequest, error) {
	return &domain.MembershipRequest{ID: 9, ClubID: clubID, RequesterID: sess.UserID, Message: message, Status: domain.MembershipRequestStatusPending}, nil
}

func (s *stubWorkflowService) DecideMembershipRequest(ctx context.Context, sess *domain.Session, requestID int32, decision service.Decision, reason string) (*domain.MembershipRequest, error) {
	if s.decideRequestFn != nil {
		return s.decideRequestFn(ctx, sess, requestID, decision, reason)
	}
	return nil, domain.ErrNotFound
}

type stubNotificationService struct{}

func (s *stubNotificationService) List(ctx context.Context, sess *domain.Session) ([]domain.Notification, error) {
	return nil, nil
}

func (s *stubNotificationService) MarkAsRead(ctx context.Context, sess *domain.Session, notificationID int32) error {
	return nil
}

// countingClubRepo feeds the mirror and counts refresh round trips.
type countingClubRepo struct {
	calls   atomic.Int32
	pending []domain.Club
}

func (r *countingClubRepo) Create(ctx context.Context, c *domain.Club) error { return nil }
func (r *countingClubRepo) GetByID(ctx context.Context, id int32) (*domain.Club, error) {
	return nil, domain.ErrNotFound
}
func (r *countingClubRepo) ListByStatus(ctx context.Context, status domain.ClubStatus) ([]domain.Club, error) {
	r.calls.Add(1)
	if status == domain.ClubStatusPending {
		return append([]domain.Club(nil), r.pending...), nil
	}
	return nil, nil
}
func (r *countingClubRepo) ListByMember(ctx context.Context, userID int32) ([]domain.Club, error) {
	return nil, nil
}
func (r *countingClubRepo) ListMemberIDs(ctx context.Context, clubID int32) ([]int32, error) {
	return nil, nil
}
func (r *countingClubRepo) Decide(ctx context.Context, clubID int32, status domain.ClubStatus, decidedBy int32, addCreator bool) (*domain.Club, error) {
	return nil, domain.ErrNotFound
}

type emptyRequestRepo struct{}

func (emptyRequestRepo) Create(ctx context.Context, req *domain.MembershipRequest) error { return nil }
func (emptyRequestRepo) GetByID(ctx context.Context, id int32) (*domain.MembershipRequest, error) {
	return nil, domain.ErrNotFound
}
func (emptyRequestRepo) ListPending(ctx context.Context) ([]domain.MembershipRequest, error) {
	return nil, nil
}
func (emptyRequestRepo) ListByRequester(ctx context.Context, userID int32) ([]domain.MembershipRequest, error) {
	return nil, nil
}
func (emptyRequestRepo) CountActive(ctx context.Context, userID, clubID int32) (int32, error) {
	return 0, nil
}
func (emptyRequestRepo) Approve(ctx context.Context, id, decidedBy int32) (*domain.MembershipRequest, error) {
	return nil, domain.ErrNotFound
}
func (emptyRequestRepo) Reject(ctx context.Context, id, decidedBy int32, reason string) (*domain.MembershipRequest, error) {
	return nil, domain.ErrNotFound
}

type testServer struct {
	router   http.Handler
	tokens   security.TokenManager
	mirror   *cache.Mirror
	clubRepo *countingClubRepo
	workflow *stubWorkflowService
	clubSvc  *stubClubService
	auth     *stubAuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		tokens:   security.NewTokenManager("handler-test-secret", 15*time.Minute, 24*time.Hour),
		clubRepo: &countingClubRepo{},
		workflow: &stubWorkflowService{},
		clubSvc:  &stubClubService{},
		auth:     &stubAuthService{},
	}
	ts.mirror = cache.NewMirror(ts.clubRepo, emptyRequestRepo{}, time.Hour)
	require.NoError(t, ts.mirror.Refresh(context.Background(), "manual"))

	ts.router = apihttp.NewRouter(
		ts.tokens,
		apihttp.NewAuthHandler(ts.auth),
		apihttp.NewClubHandler(ts.clubSvc, ts.workflow, ts.mirror),
		apihttp.NewNotificationHandler(&stubNotificationService{}),
	)
	return ts
}

func (ts *testServer) tokenFor(t *testing.T, user *domain.User) string {
	t.Helper()
	token, err := ts.tokens.GenerateAccessToken(user)
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/clubs/allClubs", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/clubs/allClubs", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshTokenRejectedOnAPIRoutes(t *testing.T) {
	ts := newTestServer(t)
	refresh, err := ts.tokens.GenerateRefreshToken(&domain.User{ID: 7})
	require.NoError(t, err)

	rec := ts.do(t, http.MethodGet, "/api/clubs/allClubs", refresh, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestApproveClubRoute(t *testing.T) {
	admin := &domain.User{ID: 1, Name: "Admin", Email: "admin@example.com", Role: domain.UserRoleAdmin}

	t.Run("success commits the decision to the mirror", func(t *testing.T) {
		ts := newTestServer(t)
		ts.clubRepo.pending = []domain.Club{{ID: 42, Status: domain.ClubStatusPending}}
		require.NoError(t, ts.mirror.Refresh(context.Background(), "manual"))

		ts.workflow.decideClubFn = func(ctx context.Context, sess *domain.Session, clubID int32, decision service.Decision) (*domain.Club, error) {
			assert.True(t, sess.IsAdmin())
			assert.Equal(t, service.DecisionApprove, decision)
			return &domain.Club{ID: clubID, Name: "Chess Club", Status: domain.ClubStatusApproved}, nil
		}

		rec := ts.do(t, http.MethodPut, "/api/clubs/approve/42", ts.tokenFor(t, admin), nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		assert.Empty(t, ts.mirror.PendingClubs())
		clubs, err := ts.mirror.ApprovedClubs(context.Background())
		require.NoError(t, err)
		require.Len(t, clubs, 1)
		assert.Equal(t, int32(42), clubs[0].ID)
	})

	t.Run("conflicting decision maps to 409 and refreshes the mirror", func(t *testing.T) {
		ts := newTestServer(t)
		ts.workflow.decideClubFn = func(ctx context.Context, sess *domain.Session, clubID int32, decision service.Decision) (*domain.Club, error) {
			return nil, domain.ErrInvalidTransition
		}
		before := ts.clubRepo.calls.Load()

		rec := ts.do(t, http.MethodPut, "/api/clubs/reject/42", ts.tokenFor(t, admin), nil)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Greater(t, ts.clubRepo.calls.Load(), before)
	})

	t.Run("forbidden maps to 403", func(t *testing.T) {
		ts := newTestServer(t)
		ts.workflow.decideClubFn = func(ctx context.Context, sess *domain.Session, clubID int32, decision service.Decision) (*domain.Club, error) {
			return nil, domain.ErrForbidden
		}

		member := &domain.User{ID: 7, Role: domain.UserRoleMember}
		rec := ts.do(t, http.MethodPut, "/api/clubs/approve/42", ts.tokenFor(t, member), nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("non-numeric id maps to 400", func(t *testing.T) {
		ts := newTestServer(t)
		rec := ts.do(t, http.MethodPut, "/api/clubs/approve/not-a-number", ts.tokenFor(t, admin), nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRejectMembershipRequestRoute(t *testing.T) {
	ts := newTestServer(t)
	admin := &domain.User{ID: 1, Role: domain.UserRoleAdmin}

	ts.workflow.decideRequestFn = func(ctx context.Context, sess *domain.Session, requestID int32, decision service.Decision, reason string) (*domain.MembershipRequest, error) {
		assert.Equal(t, service.DecisionReject, decision)
		assert.Equal(t, "roster is full", reason)
		return &domain.MembershipRequest{ID: requestID, Status: domain.MembershipRequestStatusRejected, RejectionReason: reason}, nil
	}

	rec := ts.do(t, http.MethodPut, "/api/clubs/membership-requests/reject/9", ts.tokenFor(t, admin),
		map[string]string{"rejectionReason": "roster is full"})

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Request domain.MembershipRequest `json:"request"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "roster is full", body.Request.RejectionReason)
}

func TestCreateClubRoute(t *testing.T) {
	ts := newTestServer(t)
	member := &domain.User{ID: 7, Role: domain.UserRoleMember}

	t.Run("valid draft is created pending", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/clubs/createClub", ts.tokenFor(t, member),
			map[string]string{"name": "Chess Club", "category": "games"})
		assert.Equal(t, http.StatusCreated, rec.Code)

		var body struct {
			Club domain.Club `json:"club"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, domain.ClubStatusPending, body.Club.Status)
	})

	t.Run("empty draft maps to 400", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/clubs/createClub", ts.tokenFor(t, member),
			map[string]string{"description": "no name"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetClubRoute(t *testing.T) {
	ts := newTestServer(t)
	member := &domain.User{ID: 7, Role: domain.UserRoleMember}

	ts.clubSvc.getClubFn = func(ctx context.Context, sess *domain.Session, clubID int32) (*domain.Club, error) {
		if clubID == 42 {
			return &domain.Club{ID: 42, Name: "Chess Club", Status: domain.ClubStatusApproved}, nil
		}
		return nil, domain.ErrNotFound
	}

	rec := ts.do(t, http.MethodGet, "/api/clubs/42", ts.tokenFor(t, member), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/clubs/999", ts.tokenFor(t, member), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSignupRoute(t *testing.T) {
	ts := newTestServer(t)

	t.Run("valid signup returns the token pair", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/auth/signup", "",
			map[string]string{"userName": "Pat", "email": "pat@example.com", "password": "s3cret"})
		assert.Equal(t, http.StatusCreated, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotEmpty(t, body["token"])
		assert.NotEmpty(t, body["refreshToken"])
	})

	t.Run("missing fields map to 400", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/auth/signup", "",
			map[string]string{"email": "pat@example.com"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLoginRoute(t *testing.T) {
	ts := newTestServer(t)
	ts.auth.loginFn = func(ctx context.Context, email, password string) (*domain.User, string, string, error) {
		if password == "s3cret" {
			return &domain.User{ID: 7, Email: email}, "access", "refresh", nil
		}
		return nil, "", "", service.ErrInvalidCredentials
	}

	rec := ts.do(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "pat@example.com", "password": "s3cret"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "pat@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
