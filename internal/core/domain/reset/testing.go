package reset

import (
	"context"
	"fmt"
	"resetpoint/internal/core/domain/user"
	"sync"
)

type FakeRequestRepository struct {
	Requests    []Request
	ReturnError bool
	nextID      int
	lock        sync.Mutex
}

func NewFakeRequestRepository() *FakeRequestRepository {
	return &FakeRequestRepository{Requests: make([]Request, 0, 10)}
}

func (r *FakeRequestRepository) Create(ctx context.Context, input CreateInput) (req Request, err error) {
	if r.ReturnError {
		return req, fmt.Errorf("could not create reset request %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Requests {
		if existing.UserID == input.UserID && !existing.IsExpired(input.CreatedAt) {
			return req, ErrResetAlreadyPending
		}
	}
	kept := make([]Request, 0, len(r.Requests))
	for _, existing := range r.Requests {
		if existing.UserID != input.UserID {
			kept = append(kept, existing)
		}
	}
	r.Requests = kept
	r.nextID++
	req = Request{
		ID:          ID(fmt.Sprintf("request-%d", r.nextID)),
		UserID:      input.UserID,
		TokenDigest: input.TokenDigest,
		ExpiresAt:   input.ExpiresAt,
		CreatedAt:   input.CreatedAt,
	}
	r.Requests = append(r.Requests, req)
	return req, nil
}

func (r *FakeRequestRepository) GetByID(ctx context.Context, id ID) (req Request, err error) {
	if r.ReturnError {
		return req, fmt.Errorf("could not get reset request %v", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Requests {
		if existing.ID == id {
			return existing, nil
		}
	}
	return req, ErrRequestDoesNotExist
}

func (r *FakeRequestRepository) DeleteAllForUser(ctx context.Context, userID user.ID) ([]ID, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not delete reset requests for user %v", userID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	deleted := make([]ID, 0, 1)
	kept := r.Requests[:0]
	for _, existing := range r.Requests {
		if existing.UserID == userID {
			deleted = append(deleted, existing.ID)
			continue
		}
		kept = append(kept, existing)
	}
	r.Requests = kept
	return deleted, nil
}

type FakeTokenCodec struct {
	Token PlaintextToken
}

func NewFakeTokenCodec(token string) *FakeTokenCodec {
	return &FakeTokenCodec{Token: PlaintextToken(token)}
}

func (c *FakeTokenCodec) GenerateToken() PlaintextToken {
	return c.Token
}

func (c *FakeTokenCodec) DigestToken(token PlaintextToken) TokenDigest {
	return TokenDigest("digest::" + string(token))
}

func (c *FakeTokenCodec) VerifyToken(token PlaintextToken, stored TokenDigest) bool {
	return c.DigestToken(token) == stored
}

type SentResetLink struct {
	User  user.User
	ID    ID
	Token PlaintextToken
}

type FakeLinkSender struct {
	Sent        []SentResetLink
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeLinkSender() *FakeLinkSender {
	return &FakeLinkSender{}
}

func (s *FakeLinkSender) SendResetLink(ctx context.Context, u user.User, id ID, token PlaintextToken) error {
	if s.ReturnError {
		return fmt.Errorf("could not send reset link to user %v", u.ID)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, SentResetLink{User: u, ID: id, Token: token})
	return nil
}

func (s *FakeLinkSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}

func (s *FakeLinkSender) LastSent() SentResetLink {
	s.lock.Lock()
	defer s.lock.Unlock()
	l := len(s.Sent)
	if l == 0 {
		panic("Sent count is 0.")
	}
	return s.Sent[l-1]
}

type FakeChangedNotifier struct {
	Sent        []user.User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeChangedNotifier() *FakeChangedNotifier {
	return &FakeChangedNotifier{}
}

func (s *FakeChangedNotifier) SendPasswordChanged(ctx context.Context, u user.User) error {
	if s.ReturnError {
		return fmt.Errorf("could not send password changed notification to user %v", u.ID)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, u)
	return nil
}

func (s *FakeChangedNotifier) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}
