package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/resumeready/backend/analysis"
	"github.com/resumeready/backend/auth"
	"github.com/resumeready/backend/models"
	"github.com/resumeready/backend/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := RegisterValidators(); err != nil {
		panic(err)
	}
}

// memStore is an in-memory UserStore, ResumeStore and ProfileStore
type memStore struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*models.User
	resumes []*models.Resume
	skills  []models.Skill
	certs   []models.Certification
	clock   time.Time
	err     error
}

func newMemStore() *memStore {
	return &memStore{
		users: map[uuid.UUID]*models.User{},
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Minute)
	return m.clock
}

func (m *memStore) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return storage.ErrDuplicateEmail
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Provider == "" {
		user.Provider = models.ProviderEmail
	}
	user.CreatedAt = m.tick()
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *memStore) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) UpdateUserName(ctx context.Context, id uuid.UUID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	u.Name = name
	return nil
}

func (m *memStore) LinkGoogleAccount(ctx context.Context, id uuid.UUID, googleID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	u.GoogleID = googleID
	return nil
}

func (m *memStore) SetResetToken(ctx context.Context, email, token string, expires time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			u.ResetToken = token
			u.ResetTokenExpires = &expires
			return nil
		}
	}
	return storage.ErrNotFound
}

func (m *memStore) ResetPassword(ctx context.Context, token, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if token != "" && u.ResetToken == token && u.ResetTokenExpires != nil && u.ResetTokenExpires.After(time.Now()) {
			u.PasswordHash = passwordHash
			u.ResetToken = ""
			u.ResetTokenExpires = nil
			return nil
		}
	}
	return storage.ErrInvalidResetToken
}

func (m *memStore) CreateResume(ctx context.Context, resume *models.Resume) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	resume.ID = uuid.New()
	resume.CreatedAt = m.tick()
	cp := *resume
	m.resumes = append(m.resumes, &cp)
	return nil
}

func (m *memStore) ListResumeSummaries(ctx context.Context, userID uuid.UUID) ([]models.ResumeSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	items := []models.ResumeSummary{}
	for _, r := range m.resumes {
		if r.UserID == userID {
			items = append(items, models.ResumeSummary{
				ID:             r.ID,
				ReadinessScore: r.ReadinessScore,
				Feedback:       r.Feedback,
				CreatedAt:      r.CreatedAt,
			})
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (m *memStore) GetResume(ctx context.Context, userID, id uuid.UUID) (*models.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.resumes {
		if r.ID == id && r.UserID == userID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *memStore) DeleteResume(ctx context.Context, userID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.resumes {
		if r.ID == id && r.UserID == userID {
			m.resumes = append(m.resumes[:i], m.resumes[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (m *memStore) AttachJobMatch(ctx context.Context, userID uuid.UUID, jobDescription string, matchScore int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *models.Resume
	for _, r := range m.resumes {
		if r.UserID == userID && (latest == nil || r.CreatedAt.After(latest.CreatedAt)) {
			latest = r
		}
	}
	if latest == nil {
		return storage.ErrNotFound
	}
	latest.JobDescription = &jobDescription
	latest.MatchScore = &matchScore
	return nil
}

func (m *memStore) ListSkills(ctx context.Context, userID uuid.UUID) ([]models.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Skill
	for i := len(m.skills) - 1; i >= 0; i-- {
		if m.skills[i].UserID == userID {
			out = append(out, m.skills[i])
		}
	}
	return out, nil
}

func (m *memStore) AddSkill(ctx context.Context, skill *models.Skill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	skill.ID = uuid.New()
	skill.AddedAt = m.tick()
	m.skills = append(m.skills, *skill)
	return nil
}

func (m *memStore) DeleteSkill(ctx context.Context, userID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.skills {
		if s.ID == id && s.UserID == userID {
			m.skills = append(m.skills[:i], m.skills[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (m *memStore) ListCertifications(ctx context.Context, userID uuid.UUID) ([]models.Certification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Certification
	for i := len(m.certs) - 1; i >= 0; i-- {
		if m.certs[i].UserID == userID {
			out = append(out, m.certs[i])
		}
	}
	return out, nil
}

func (m *memStore) AddCertification(ctx context.Context, cert *models.Certification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cert.ID = uuid.New()
	cert.AddedAt = m.tick()
	m.certs = append(m.certs, *cert)
	return nil
}

func (m *memStore) DeleteCertification(ctx context.Context, userID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.certs {
		if c.ID == id && c.UserID == userID {
			m.certs = append(m.certs[:i], m.certs[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

type fakeAnalyzer struct {
	result  *analysis.ResumeResult
	match   *models.MatchResult
	err     error
	lastJob string
}

func (f *fakeAnalyzer) AnalyzeResume(ctx context.Context, resumeText string) (*analysis.ResumeResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeAnalyzer) MatchResume(ctx context.Context, resumeText, jobDescription string) (*models.MatchResult, error) {
	f.lastJob = jobDescription
	if f.err != nil {
		return nil, f.err
	}
	return f.match, nil
}

type fakePages struct {
	pages map[string]string
}

func (f *fakePages) Fetch(ctx context.Context, pageURL string) (*models.JobPage, error) {
	text, ok := f.pages[pageURL]
	if !ok {
		return nil, errors.New("unexpected status 404")
	}
	return &models.JobPage{URL: pageURL, Text: text}, nil
}

type memBlobs struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemBlobs() *memBlobs {
	return &memBlobs{objects: map[string][]byte{}}
}

func (b *memBlobs) Put(ctx context.Context, key string, content []byte, contentType string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[key] = content
	return "mem://" + key, nil
}

func (b *memBlobs) Get(ctx context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	content, ok := b.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return content, nil
}

func (b *memBlobs) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, key)
	return nil
}

func (b *memBlobs) Close() error { return nil }

type captureMailer struct {
	to, subject, body string
	err               error
}

func (m *captureMailer) Send(ctx context.Context, to, subject, body string) error {
	m.to, m.subject, m.body = to, subject, body
	return m.err
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(ctx context.Context) error { return p.err }

// asUser authenticates every request as id
func asUser(id uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(auth.AuthClaimsKey, &auth.Claims{UserID: id.String()})
		c.Next()
	}
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
