package usecase

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kodefy/authstep/internal/auth/entity"
	"github.com/kodefy/authstep/internal/pkg/goerror"
	"github.com/kodefy/authstep/internal/pkg/hash"
	"github.com/kodefy/authstep/internal/pkg/instrument"
	"github.com/kodefy/authstep/internal/pkg/jwt"
	"github.com/kodefy/authstep/internal/pkg/otp"
	"github.com/kodefy/authstep/internal/pkg/secretbox"
	"github.com/kodefy/authstep/internal/pkg/validator"
)

type fakeStore struct {
	mu      sync.Mutex
	users   map[int64]*entity.User
	byEmail map[string]int64

	getErr    error
	createErr error
	updateErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:   make(map[int64]*entity.User),
		byEmail: make(map[string]int64),
	}
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}

	id, ok := f.byEmail[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}

	u := *f.users[id]

	return &u, nil
}

func (f *fakeStore) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}

	u, ok := f.users[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}

	cp := *u

	return &cp, nil
}

func (f *fakeStore) CreateUser(_ context.Context, in entity.NewUser) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}

	if _, ok := f.byEmail[in.Email]; ok {
		return goerror.ErrConflict
	}

	f.users[in.ID] = &entity.User{ID: in.ID, Email: in.Email, Password: in.Password}
	f.byEmail[in.Email] = in.ID

	return nil
}

func (f *fakeStore) UpdateUserTOTP(_ context.Context, id int64, secret []byte, enabled bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updateErr != nil {
		return f.updateErr
	}

	u, ok := f.users[id]
	if !ok {
		return goerror.ErrNotFound
	}

	u.TOTPSecret = secret
	u.TOTPEnabled = enabled

	return nil
}

func (f *fakeStore) deleteUser(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if u, ok := f.users[id]; ok {
		delete(f.byEmail, u.Email)
		delete(f.users, id)
	}
}

type fakeMessaging struct {
	mu        sync.Mutex
	published []UserRegisteredEvent
	err       error
}

func (f *fakeMessaging) PublishUserRegistered(_ context.Context, msg UserRegisteredEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}

	f.published = append(f.published, msg)

	return nil
}

type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.t
}

func (c *fixedClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.t = c.t.Add(d)
}

type seqID struct {
	mu   sync.Mutex
	next int64
}

func (s *seqID) Generate() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++

	return s.next
}

type staticStringID struct{}

func (staticStringID) Generate() string { return "test-token-id" }

type fixture struct {
	uc    *Usecase
	store *fakeStore
	msg   *fakeMessaging
	clock *fixedClock
	totp  otp.OTP
	jwt   jwt.JWT
	box   secretbox.Box
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clk := &fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}

	v10, err := validator.NewV10Validator()
	require.NoError(t, err)

	signer, err := jwt.NewSymmetric(jwt.Config{
		Secret:     []byte(strings.Repeat("k", 64)),
		Issuer:     "authstep-test",
		PendingTTL: 5 * time.Minute,
		AccessTTL:  time.Hour,
		Clock:      clk,
		UID:        staticStringID{},
	})
	require.NoError(t, err)

	box, err := secretbox.NewAESGCM(bytes.Repeat([]byte{0x01}, 32))
	require.NoError(t, err)

	store := newFakeStore()
	msg := &fakeMessaging{}
	totpGen := otp.NewTOTP("authstep-test")

	uc := New(Dependency{
		RepoDB:        store,
		RepoMessaging: msg,
		Validator:     v10,
		Bcrypt:        hash.NewBcrypt(bcrypt.MinCost),
		Secrets:       box,
		UID:           &seqID{},
		Totp:          totpGen,
		Clock:         clk,
		JWT:           signer,
		Instrument:    instrument.NewNoop(),
	})

	return &fixture{
		uc:    uc,
		store: store,
		msg:   msg,
		clock: clk,
		totp:  totpGen,
		jwt:   signer,
		box:   box,
	}
}

// register is a helper that creates an account and fails the test on error.
func (f *fixture) register(t *testing.T, email, password string) *RegisterOutput {
	t.Helper()

	out, err := f.uc.Register(context.Background(), RegisterInput{Email: email, Password: password})
	require.NoError(t, err)

	return out
}

// login is a helper that authenticates and fails the test on error.
func (f *fixture) login(t *testing.T, email, password string) *LoginOutput {
	t.Helper()

	out, err := f.uc.Login(context.Background(), LoginInput{Email: email, Password: password})
	require.NoError(t, err)

	return out
}

func requireGoError(t *testing.T, err error, code goerror.Code) *goerror.Error {
	t.Helper()

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	require.Equal(t, code, gerr.Code())

	return gerr
}
