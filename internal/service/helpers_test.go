package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/diagnosis/parkingpro/internal/domain"
	"github.com/diagnosis/parkingpro/internal/otp"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// MockPublisher expects every Publish call to be declared with On.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

func (m *MockPublisher) Close() error { return nil }

// recordingPublisher accepts everything and keeps the subjects.
type recordingPublisher struct {
	mu       sync.Mutex
	subjects []string
	err      error
}

func (p *recordingPublisher) Publish(_ context.Context, subject string, _ interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subjects = append(p.subjects, subject)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type stubMailer struct {
	mu      sync.Mutex
	sent    map[string]int
	sendErr error
}

func newStubMailer() *stubMailer { return &stubMailer{sent: make(map[string]int)} }

func (m *stubMailer) Send(context.Context, string, string, string, string, string) (string, error) {
	return "stub", m.sendErr
}

func (m *stubMailer) SendOTP(_ context.Context, email string, code int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent[email] = code
	return nil
}

func (m *stubMailer) last(email string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[email]
}

var errStoreDown = errors.New("store unavailable")

// brokenUsers fails every call.
type brokenUsers struct{}

func (brokenUsers) Create(context.Context, *domain.User) (*domain.User, error) {
	return nil, errStoreDown
}
func (brokenUsers) FindByUsername(context.Context, string) (*domain.User, error) {
	return nil, errStoreDown
}
func (brokenUsers) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, errStoreDown
}

// brokenOTPStore fails every call.
type brokenOTPStore struct{}

func (brokenOTPStore) Put(context.Context, string, otp.Entry) error { return errStoreDown }
func (brokenOTPStore) Get(context.Context, string) (otp.Entry, bool, error) {
	return otp.Entry{}, false, errStoreDown
}
func (brokenOTPStore) Delete(context.Context, string) error { return errStoreDown }
