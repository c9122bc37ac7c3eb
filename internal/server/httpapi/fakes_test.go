package httpapi

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/server/auth"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/services"
)

var testSecret = []byte("test-secret")

func mustToken(userID, email string, validity time.Duration) string {
	tok, err := auth.GenerateToken(userID, email, testSecret, validity)
	if err != nil {
		panic(err)
	}
	return tok
}

type fakeAuth struct {
	signinErr  error
	signupUser *models.User
	signupErr  error
	session    *services.Session
	verifyErr  error

	lastEmail  string
	lastSignup services.SignupRequest
	lastOTP    string
}

func (f *fakeAuth) RequestSigninOTP(_ context.Context, email string) error {
	f.lastEmail = email
	return f.signinErr
}

func (f *fakeAuth) RequestSignupOTP(_ context.Context, req services.SignupRequest) (*models.User, error) {
	f.lastSignup = req
	if f.signupErr != nil {
		return nil, f.signupErr
	}
	return f.signupUser, nil
}

func (f *fakeAuth) VerifyOTP(_ context.Context, email, code string) (*services.Session, error) {
	f.lastEmail, f.lastOTP = email, code
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.session, nil
}

func (f *fakeAuth) VerifyToken(token string) (*services.Identity, error) {
	claims, err := auth.ParseToken(token, testSecret)
	if err != nil {
		return nil, err
	}
	return &services.Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

// fakeNotes keeps notes per user in memory.
type fakeNotes struct {
	mu     sync.Mutex
	users  map[string]*models.User
	notes  map[string][]*models.Note
	nextID int
	err    error
}

func newFakeNotes(users ...*models.User) *fakeNotes {
	f := &fakeNotes{users: map[string]*models.User{}, notes: map[string][]*models.Note{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeNotes) list(userID string) []*models.Note {
	return append([]*models.Note{}, f.notes[userID]...)
}

func (f *fakeNotes) ListNotes(_ context.Context, userID string) (*services.NotesView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &services.NotesView{Name: u.Name, Email: u.Email, Notes: f.list(userID)}, nil
}

func (f *fakeNotes) AddNote(_ context.Context, userID, text string) ([]*models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if text == "" {
		return nil, common.ErrInvalidInput
	}
	if _, ok := f.users[userID]; !ok {
		return nil, common.ErrorNotFound
	}
	f.nextID++
	f.notes[userID] = append(f.notes[userID], &models.Note{
		ID:     string(rune('a' + f.nextID - 1)),
		UserID: userID,
		Text:   text,
	})
	return f.list(userID), nil
}

func (f *fakeNotes) RemoveNote(_ context.Context, userID, noteID string) ([]*models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.users[userID]; !ok {
		return nil, common.ErrorNotFound
	}
	kept := f.notes[userID][:0]
	for _, n := range f.notes[userID] {
		if n.ID != noteID {
			kept = append(kept, n)
		}
	}
	f.notes[userID] = kept
	return f.list(userID), nil
}

type fakePinger struct {
	err error
}

func (p fakePinger) PingContext(context.Context) error { return p.err }
