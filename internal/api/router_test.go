package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quiz_api/internal/app/service"
	"quiz_api/internal/common"
	"quiz_api/internal/common/security"
	"quiz_api/internal/domain/model"
	"quiz_api/internal/platform/config"
)

type memUserRepo struct {
	users  []model.User
	nextID int64
}

func (r *memUserRepo) Create(ctx context.Context, user *model.User) error {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return common.ErrConflict
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.users = append(r.users, *user)
	return nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

type memCategoryRepo struct {
	categories []model.Category
	nextID     int64
}

func (r *memCategoryRepo) Create(ctx context.Context, category *model.Category) error {
	for _, c := range r.categories {
		if c.Name == category.Name {
			return common.ErrConflict
		}
	}
	r.nextID++
	category.ID = r.nextID
	category.CreatedAt = time.Now()
	r.categories = append(r.categories, *category)
	return nil
}

func (r *memCategoryRepo) List(ctx context.Context, skip, limit int) ([]model.Category, error) {
	out := r.categories
	if skip > len(out) {
		skip = len(out)
	}
	out = out[skip:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memQuestionRepo struct {
	questions []model.Question
	nextID    int64
}

func (r *memQuestionRepo) Create(ctx context.Context, question *model.Question) error {
	r.nextID++
	question.ID = r.nextID
	question.CreatedAt = time.Now()
	r.questions = append(r.questions, *question)
	return nil
}

func (r *memQuestionRepo) FindByID(ctx context.Context, id int64) (*model.Question, error) {
	for _, q := range r.questions {
		if q.ID == id {
			cp := q
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memQuestionRepo) List(ctx context.Context, categoryID *int64, skip, limit int) ([]model.Question, error) {
	out := []model.Question{}
	for _, q := range r.questions {
		if categoryID != nil && q.CategoryID != *categoryID {
			continue
		}
		out = append(out, q)
	}
	if skip > len(out) {
		skip = len(out)
	}
	out = out[skip:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type testEnv struct {
	server   *httptest.Server
	userRepo *memUserRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTKey:       []byte("test-secret"),
		JWTAlgorithm: "HS256",
		TokenExpiry:  30 * time.Minute,
	}
	security.InitJWT()

	userRepo := &memUserRepo{}
	authService := service.NewAuthService(userRepo, nil)
	categoryService := service.NewCategoryService(&memCategoryRepo{})
	questionService := service.NewQuestionService(&memQuestionRepo{})

	server := httptest.NewServer(NewRouter(authService, categoryService, questionService))
	t.Cleanup(server.Close)
	return &testEnv{server: server, userRepo: userRepo}
}

func (e *testEnv) seedUser(t *testing.T, username, email, password string, admin bool) {
	t.Helper()
	hash, err := security.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if err := e.userRepo.Create(context.Background(), &model.User{
		Username:       username,
		Email:          email,
		HashedPassword: hash,
		IsAdmin:        admin,
	}); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequest(method, e.server.URL+path, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return resp.StatusCode, payload
}

func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	status, body := e.do(t, http.MethodPost, "/token", "", map[string]string{
		"username": username, "password": password,
	})
	if status != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", status, body)
	}
	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("failed to decode token response: %v", err)
	}
	if resp.TokenType != "bearer" {
		t.Fatalf("expected token_type bearer, got %q", resp.TokenType)
	}
	return resp.AccessToken
}

func TestServiceDescriptor(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodGet, "/", "", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var descriptor map[string]string
	if err := json.Unmarshal(body, &descriptor); err != nil {
		t.Fatalf("descriptor is not a JSON object: %v", err)
	}
	if descriptor["title"] == "" || descriptor["status"] != "running" {
		t.Errorf("unexpected descriptor: %v", descriptor)
	}
}

func TestUserRegistration(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodPost, "/users/", "", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "pw123",
	})
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", status, body)
	}
	var user map[string]interface{}
	if err := json.Unmarshal(body, &user); err != nil {
		t.Fatalf("failed to decode user: %v", err)
	}
	if user["username"] != "alice" {
		t.Errorf("unexpected username: %v", user["username"])
	}
	if _, leaked := user["hashed_password"]; leaked {
		t.Error("response must not carry the password hash")
	}

	// Same email again conflicts; the first record stays intact.
	status, _ = env.do(t, http.MethodPost, "/users/", "", map[string]string{
		"username": "alice2", "email": "alice@example.com", "password": "pw456",
	})
	if status != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", status)
	}
	if _, err := env.userRepo.FindByUsername(context.Background(), "alice"); err != nil {
		t.Errorf("first user should be unaffected: %v", err)
	}
}

func TestTokenEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", "alice@example.com", "pw123", false)

	token := env.login(t, "alice", "pw123")
	if token == "" {
		t.Fatal("expected a token")
	}

	status, _ := env.do(t, http.MethodPost, "/token", "", map[string]string{
		"username": "alice", "password": "wrong",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", status)
	}

	// Query-parameter credentials are accepted too.
	status, _ = env.do(t, http.MethodPost, "/token?username=alice&password=pw123", "", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for query credentials, got %d", status)
	}
}

func TestCategoryCreationRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "admin", "admin@example.com", "adminpw", true)
	env.seedUser(t, "bob", "bob@example.com", "bobpw", false)

	payload := map[string]string{"name": "Science", "description": "Natural sciences"}

	status, _ := env.do(t, http.MethodPost, "/categories/", "", payload)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", status)
	}

	bobToken := env.login(t, "bob", "bobpw")
	status, _ = env.do(t, http.MethodPost, "/categories/", bobToken, payload)
	if status != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", status)
	}

	adminToken := env.login(t, "admin", "adminpw")
	status, body := env.do(t, http.MethodPost, "/categories/", adminToken, payload)
	if status != http.StatusCreated {
		t.Fatalf("expected 201 for admin, got %d: %s", status, body)
	}
	var created model.Category
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("failed to decode category: %v", err)
	}
	if created.Slug != "science" {
		t.Errorf("expected slug %q, got %q", "science", created.Slug)
	}

	status, body = env.do(t, http.MethodGet, "/categories/", "", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 listing categories, got %d", status)
	}
	var categories []model.Category
	if err := json.Unmarshal(body, &categories); err != nil {
		t.Fatalf("failed to decode category list: %v", err)
	}
	if len(categories) != 1 || categories[0].Name != "Science" {
		t.Errorf("created category not retrievable: %v", categories)
	}
}

func TestQuestionEndpoints(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "admin", "admin@example.com", "adminpw", true)
	adminToken := env.login(t, "admin", "adminpw")

	newQuestion := func(categoryID int64, text string) map[string]interface{} {
		return map[string]interface{}{
			"question_text":  text,
			"option_a":       "A",
			"option_b":       "B",
			"option_c":       "C",
			"option_d":       "D",
			"correct_answer": "option_b",
			"category_id":    categoryID,
		}
	}

	status, _ := env.do(t, http.MethodPost, "/questions/", "", newQuestion(1, "q"))
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", status)
	}

	status, body := env.do(t, http.MethodPost, "/questions/", adminToken, newQuestion(1, "first"))
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", status, body)
	}
	var created model.Question
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("failed to decode question: %v", err)
	}

	env.do(t, http.MethodPost, "/questions/", adminToken, newQuestion(1, "second"))
	env.do(t, http.MethodPost, "/questions/", adminToken, newQuestion(2, "third"))

	status, body = env.do(t, http.MethodGet, "/questions/", "", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var questions []model.Question
	if err := json.Unmarshal(body, &questions); err != nil {
		t.Fatalf("failed to decode question list: %v", err)
	}
	if len(questions) != 3 {
		t.Errorf("expected 3 questions unfiltered, got %d", len(questions))
	}

	status, body = env.do(t, http.MethodGet, "/questions/?category_id=1", "", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if err := json.Unmarshal(body, &questions); err != nil {
		t.Fatalf("failed to decode question list: %v", err)
	}
	if len(questions) != 2 {
		t.Errorf("expected 2 questions in category 1, got %d", len(questions))
	}
	for _, q := range questions {
		if q.CategoryID != 1 {
			t.Errorf("filter leaked question from category %d", q.CategoryID)
		}
	}

	status, body = env.do(t, http.MethodGet, "/questions/1", "", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for existing question, got %d", status)
	}
	var got model.Question
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("failed to decode question: %v", err)
	}
	if got.QuestionText != "first" || got.CorrectAnswer != "option_b" {
		t.Errorf("question fields do not match creation input: %+v", got)
	}

	status, _ = env.do(t, http.MethodGet, "/questions/999", "", nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for missing question, got %d", status)
	}

	status, _ = env.do(t, http.MethodGet, "/questions/not-a-number", "", nil)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", status)
	}
}
