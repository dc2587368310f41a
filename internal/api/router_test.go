package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"golang.org/x/crypto/bcrypt"

	"github.com/jobtrackr/jobtracker-api/internal/core/domain"
	"github.com/jobtrackr/jobtracker-api/internal/core/ports"
	"github.com/jobtrackr/jobtracker-api/internal/core/service"
	"github.com/jobtrackr/jobtracker-api/internal/pkg/token"
)

// ---------------------------------------------------------------------------
// In-memory repositories backing the full HTTP stack
// ---------------------------------------------------------------------------

type memAuthRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newMemAuthRepo() *memAuthRepo {
	return &memAuthRepo{users: make(map[string]*domain.User)}
}

func (r *memAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	clone := *user
	clone.ID = "user_" + strconv.Itoa(r.nextID)
	stored := clone
	r.users[clone.ID] = &stored
	return &clone, nil
}

func (r *memAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memAuthRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memAuthRepo) Update(_ context.Context, id string, update ports.UserUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.PasswordHash != nil {
		u.PasswordHash = *update.PasswordHash
	}
	clone := *u
	return &clone, nil
}

func (r *memAuthRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type memJobRepo struct {
	jobs   map[string]*domain.Job
	nextID int
}

func newMemJobRepo() *memJobRepo {
	return &memJobRepo{jobs: make(map[string]*domain.Job)}
}

func (r *memJobRepo) Create(_ context.Context, job *domain.Job) (*domain.Job, error) {
	r.nextID++
	clone := *job
	clone.ID = "job_" + strconv.Itoa(r.nextID)
	stored := clone
	r.jobs[clone.ID] = &stored
	return &clone, nil
}

func (r *memJobRepo) List(_ context.Context, userID string) ([]*domain.Job, error) {
	out := []*domain.Job{}
	for _, j := range r.jobs {
		if j.UserID == userID {
			clone := *j
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out, nil
}

func (r *memJobRepo) FindByID(_ context.Context, userID, jobID string) (*domain.Job, error) {
	j, ok := r.jobs[jobID]
	if !ok || j.UserID != userID {
		return nil, domain.ErrJobNotFound
	}
	clone := *j
	return &clone, nil
}

func (r *memJobRepo) Update(_ context.Context, userID, jobID string, fields ports.JobFields) (int64, error) {
	j, ok := r.jobs[jobID]
	if !ok || j.UserID != userID {
		return 0, nil
	}
	if fields.CompanyName != nil {
		j.CompanyName = *fields.CompanyName
	}
	if fields.Role != nil {
		j.Role = *fields.Role
	}
	if fields.Status != nil {
		j.Status = *fields.Status
	}
	if fields.AppliedFrom != nil {
		j.AppliedFrom = *fields.AppliedFrom
	}
	if fields.AppliedDate != nil {
		j.AppliedDate = *fields.AppliedDate
	}
	if fields.Description != nil {
		j.Description = *fields.Description
	}
	j.UpdatedAt = time.Now().UTC()
	return 1, nil
}

func (r *memJobRepo) Delete(_ context.Context, userID, jobID string) (int64, error) {
	j, ok := r.jobs[jobID]
	if !ok || j.UserID != userID {
		return 0, nil
	}
	delete(r.jobs, jobID)
	return 1, nil
}

func (r *memJobRepo) DeleteByOwner(_ context.Context, userID string) (int64, error) {
	var n int64
	for id, j := range r.jobs {
		if j.UserID == userID {
			delete(r.jobs, id)
			n++
		}
	}
	return n, nil
}

func registerAndLogin(t *testing.T, h http.Handler, email, password string) (userID, signed string) {
	t.Helper()

	apitest.New().
		Handler(h).
		Post("/auth/register").
		JSON(`{"email":"` + email + `","password":"` + password + `","name":"Test"}`).
		Expect(t).
		Status(http.StatusCreated).
		End()

	result := apitest.New().
		Handler(h).
		Post("/auth/login").
		JSON(`{"email":"` + email + `","password":"` + password + `"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Present(`$.token`)).
		End()

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	decodeBody(t, result.Response, &resp)
	if resp.Token == "" || resp.User.ID == "" {
		t.Fatalf("login response missing token or user id")
	}
	return resp.User.ID, resp.Token
}

func decodeBody(t *testing.T, res *http.Response, out any) {
	t.Helper()
	defer res.Body.Close()
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// TestAPI_EndToEnd drives the whole stack (router, middleware, handlers,
// services) over in-memory repositories. It runs as a single function so the
// Prometheus HTTP middleware registers its collectors exactly once.
func TestAPI_EndToEnd(t *testing.T) {
	authRepo := newMemAuthRepo()
	jobRepo := newMemJobRepo()
	tokens := token.NewManager("secret", time.Hour)
	log := zerolog.Nop()

	e := NewRouter(Deps{
		AuthService: service.NewAuthService(authRepo, jobRepo, tokens, log),
		JobService:  service.NewJobService(jobRepo, nil, log),
		Tokens:      tokens,
		Logger:      log,
	})

	// --- Registration and login ---

	aliceID, aliceToken := registerAndLogin(t, e, "alice@example.com", "pw123")

	apitest.New().
		Handler(e).
		Post("/auth/register").
		JSON(`{"email":"alice@example.com","password":"other","name":"Impostor"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal(`$.error`, "User already exists")).
		End()

	// An unregistered email gets the same message as a wrong password.
	apitest.New().
		Handler(e).
		Post("/auth/login").
		JSON(`{"email":"nobody@example.com","password":"pw123"}`).
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal(`$.error`, "Invalid email or password")).
		End()

	apitest.New().
		Handler(e).
		Post("/auth/login").
		JSON(`{"email":"alice@example.com","password":"wrong"}`).
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal(`$.error`, "Invalid email or password")).
		End()

	// --- Job lifecycle under Alice's token ---

	createResult := apitest.New().
		Handler(e).
		Post("/api/jobs").
		Header("Authorization", "Bearer "+aliceToken).
		JSON(`{"companyName":"Acme","role":"Eng","status":"Applied","appliedFrom":"LinkedIn","appliedDate":"2024-01-01"}`).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Equal(`$.status`, "Applied")).
		Assert(jsonpath.Equal(`$.userId`, aliceID)).
		End()

	var created struct {
		ID string `json:"id"`
	}
	decodeBody(t, createResult.Response, &created)
	if created.ID == "" {
		t.Fatalf("create response missing job id")
	}

	apitest.New().
		Handler(e).
		Get("/api/jobs").
		Header("Authorization", "Bearer "+aliceToken).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len(`$`, 1)).
		Assert(jsonpath.Equal(`$[0].status`, "Applied")).
		End()

	apitest.New().
		Handler(e).
		Put("/api/jobs/"+created.ID).
		Header("Authorization", "Bearer "+aliceToken).
		JSON(`{"status":"Interviewing"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.updated`, float64(1))).
		End()

	apitest.New().
		Handler(e).
		Get("/api/jobs/"+created.ID).
		Header("Authorization", "Bearer "+aliceToken).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.status`, "Interviewing")).
		End()

	// --- Ownership isolation: Bob can't see or touch Alice's job ---

	_, bobToken := registerAndLogin(t, e, "bob@example.com", "hunter2")

	apitest.New().
		Handler(e).
		Get("/api/jobs/"+created.ID).
		Header("Authorization", "Bearer "+bobToken).
		Expect(t).
		Status(http.StatusNotFound).
		Assert(jsonpath.Equal(`$.error`, "Job not found")).
		End()

	apitest.New().
		Handler(e).
		Put("/api/jobs/"+created.ID).
		Header("Authorization", "Bearer "+bobToken).
		JSON(`{"status":"Closed"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.updated`, float64(0))).
		End()

	apitest.New().
		Handler(e).
		Delete("/api/jobs/"+created.ID).
		Header("Authorization", "Bearer "+bobToken).
		Expect(t).
		Status(http.StatusNoContent).
		End()

	// Alice's job survived Bob's update and delete untouched.
	apitest.New().
		Handler(e).
		Get("/api/jobs/"+created.ID).
		Header("Authorization", "Bearer "+aliceToken).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.status`, "Interviewing")).
		End()

	apitest.New().
		Handler(e).
		Get("/api/jobs").
		Header("Authorization", "Bearer "+bobToken).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len(`$`, 0)).
		End()

	// --- Auth gate rejects bad tokens before any handler runs ---

	apitest.New().
		Handler(e).
		Get("/api/jobs").
		Expect(t).
		Status(http.StatusUnauthorized).
		End()

	expiredToken, err := token.NewManager("secret", -time.Minute).Issue(&domain.User{ID: aliceID, Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("issue expired token: %v", err)
	}
	apitest.New().
		Handler(e).
		Get("/api/jobs").
		Header("Authorization", "Bearer "+expiredToken).
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal(`$.error`, "token expired")).
		End()

	forgedToken, err := token.NewManager("wrong-secret", time.Hour).Issue(&domain.User{ID: aliceID, Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("issue forged token: %v", err)
	}
	apitest.New().
		Handler(e).
		Get("/api/jobs").
		Header("Authorization", "Bearer "+forgedToken).
		Expect(t).
		Status(http.StatusUnauthorized).
		End()

	// --- Account maintenance is self-only ---

	apitest.New().
		Handler(e).
		Put("/auth/users/"+aliceID).
		Header("Authorization", "Bearer "+bobToken).
		JSON(`{"password":"stolen"}`).
		Expect(t).
		Status(http.StatusForbidden).
		End()

	apitest.New().
		Handler(e).
		Put("/auth/users/"+aliceID).
		Header("Authorization", "Bearer "+aliceToken).
		JSON(`{"password":"newpass"}`).
		Expect(t).
		Status(http.StatusOK).
		End()

	// The stored digest changed, never the plaintext.
	stored, err := authRepo.FindByID(context.Background(), aliceID)
	if err != nil {
		t.Fatalf("find alice: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newpass")) != nil {
		t.Fatalf("stored hash does not match new password")
	}

	apitest.New().
		Handler(e).
		Delete("/auth/users/"+aliceID).
		Header("Authorization", "Bearer "+aliceToken).
		Expect(t).
		Status(http.StatusNoContent).
		End()

	// Stateless tokens outlive the account: the gate still passes, and the
	// ownership filter now simply matches nothing.
	apitest.New().
		Handler(e).
		Get("/api/jobs").
		Header("Authorization", "Bearer "+aliceToken).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len(`$`, 0)).
		End()

	// --- Delete flow for the remaining account ---

	bobJob := apitest.New().
		Handler(e).
		Post("/api/jobs").
		Header("Authorization", "Bearer "+bobToken).
		JSON(`{"companyName":"Globex","role":"SRE"}`).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Equal(`$.status`, "Applied")).
		End()

	var bobCreated struct {
		ID string `json:"id"`
	}
	decodeBody(t, bobJob.Response, &bobCreated)

	apitest.New().
		Handler(e).
		Delete("/api/jobs/"+bobCreated.ID).
		Header("Authorization", "Bearer "+bobToken).
		Expect(t).
		Status(http.StatusNoContent).
		End()

	apitest.New().
		Handler(e).
		Get("/api/jobs/"+bobCreated.ID).
		Header("Authorization", "Bearer "+bobToken).
		Expect(t).
		Status(http.StatusNotFound).
		Assert(jsonpath.Equal(`$.error`, "Job not found")).
		End()
}
