package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"ancestral-travel-be/internal/constant"
	"ancestral-travel-be/internal/entity"
	"ancestral-travel-be/internal/repository/contract"
	"ancestral-travel-be/internal/repository/specification"
	"ancestral-travel-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Store is a process-local row store implementing the repository contracts.
// It backs unit tests and local development; the production path uses the
// GORM implementations.
type Store struct {
	mu            sync.Mutex
	users         map[uuid.UUID]entity.User
	subscriptions []entity.UserSubscription
	sessions      map[uuid.UUID]entity.ChatSession
	messages      []entity.ChatMessage
	uploads       []entity.AncestryUpload
}

func NewStore() *Store {
	return &Store{
		users:    make(map[uuid.UUID]entity.User),
		sessions: make(map[uuid.UUID]entity.ChatSession),
	}
}

// SeedUser and SeedSubscription let tests arrange state directly.

func (s *Store) SeedUser(u entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.Id] = u
}

func (s *Store) SeedSubscription(sub entity.UserSubscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscriptions = append(s.subscriptions, sub)
}

func (s *Store) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &memoryUow{store: s}
}

type memoryUow struct {
	store *Store
}

// The in-memory store has no real transactions; Begin/Commit/Rollback are
// satisfied so callers can follow the same shape as the GORM path.
func (u *memoryUow) Begin(ctx context.Context) error { return nil }
func (u *memoryUow) Commit() error                   { return nil }
func (u *memoryUow) Rollback() error                 { return nil }

func (u *memoryUow) UserRepository() contract.UserRepository {
	return &memoryUserRepo{store: u.store}
}

func (u *memoryUow) SubscriptionRepository() contract.SubscriptionRepository {
	return &memorySubscriptionRepo{store: u.store}
}

func (u *memoryUow) ChatSessionRepository() contract.ChatSessionRepository {
	return &memorySessionRepo{store: u.store}
}

func (u *memoryUow) ChatMessageRepository() contract.ChatMessageRepository {
	return &memoryMessageRepo{store: u.store}
}

func (u *memoryUow) AncestryRepository() contract.AncestryRepository {
	return &memoryAncestryRepo{store: u.store}
}

// --- Users ---

type memoryUserRepo struct {
	store *Store
}

func (r *memoryUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			if u, found := r.store.users[byId.ID]; found {
				copy := u
				return &copy, nil
			}
		}
	}
	return nil, nil
}

func (r *memoryUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.users[user.Id] = *user
	return nil
}

// --- Subscriptions ---

type memorySubscriptionRepo struct {
	store *Store
}

func (r *memorySubscriptionRepo) FindActiveByUser(ctx context.Context, userId uuid.UUID) (*entity.UserSubscription, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	now := time.Now()
	for i := range r.store.subscriptions {
		sub := r.store.subscriptions[i]
		if sub.UserId == userId && sub.IsActive(now) {
			return &sub, nil
		}
	}
	return nil, nil
}

// --- Sessions ---

type memorySessionRepo struct {
	store *Store
}

func (r *memorySessionRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.sessions[session.Id] = *session
	return nil
}

func (r *memorySessionRepo) Update(ctx context.Context, session *entity.ChatSession) error {
	return r.Create(ctx, session)
}

func (r *memorySessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.sessions, id)
	return nil
}

func (r *memorySessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	sessions, err := r.FindAll(ctx, specs...)
	if err != nil || len(sessions) == 0 {
		return nil, err
	}
	return sessions[0], nil
}

func (r *memorySessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*entity.ChatSession
	for id := range r.store.sessions {
		sess := r.store.sessions[id]
		if sessionMatches(&sess, specs) {
			copy := sess
			out = append(out, &copy)
		}
	}

	for _, spec := range specs {
		if order, ok := spec.(specification.OrderBy); ok && order.Field == "created_at" {
			sort.Slice(out, func(i, j int) bool {
				if order.Desc {
					return out[i].CreatedAt.After(out[j].CreatedAt)
				}
				return out[i].CreatedAt.Before(out[j].CreatedAt)
			})
		}
	}
	return out, nil
}

func sessionMatches(sess *entity.ChatSession, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if sess.Id != s.ID {
				return false
			}
		case specification.UserOwnedBy:
			if sess.UserId != s.UserID {
				return false
			}
		}
	}
	return true
}

// --- Messages ---

type memoryMessageRepo struct {
	store *Store
}

func (r *memoryMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if message.Id == uuid.Nil {
		message.Id = uuid.New()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	r.store.messages = append(r.store.messages, *message)
	return nil
}

func (r *memoryMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*entity.ChatMessage
	for i := range r.store.messages {
		msg := r.store.messages[i]
		if messageMatches(&msg, specs) {
			copy := msg
			out = append(out, &copy)
		}
	}

	desc := false
	limit := 0
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.OrderBy:
			desc = s.Desc
		case specification.Limit:
			limit = s.Count
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if desc {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var count int64
	for i := range r.store.messages {
		if messageMatches(&r.store.messages[i], specs) {
			count++
		}
	}
	return count, nil
}

func (r *memoryMessageRepo) FindRecentBySession(ctx context.Context, userId, sessionId uuid.UUID, limit int) ([]*entity.ChatMessage, error) {
	messages, err := r.FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Limit{Count: limit},
	)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *memoryMessageRepo) CountUserMessagesSince(ctx context.Context, userId uuid.UUID, since time.Time) (int64, error) {
	return r.Count(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByRole{Role: constant.ChatMessageRoleUser},
		specification.CreatedSince{Since: since},
	)
}

func (r *memoryMessageRepo) DeleteByChatSessionId(ctx context.Context, sessionId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.messages[:0]
	for _, msg := range r.store.messages {
		if msg.ChatSessionId != sessionId {
			kept = append(kept, msg)
		}
	}
	r.store.messages = kept
	return nil
}

func messageMatches(msg *entity.ChatMessage, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.UserOwnedBy:
			if msg.UserId != s.UserID {
				return false
			}
		case specification.ByChatSessionID:
			if msg.ChatSessionId != s.ChatSessionID {
				return false
			}
		case specification.ByRole:
			if msg.Role != s.Role {
				return false
			}
		case specification.CreatedSince:
			if msg.CreatedAt.Before(s.Since) {
				return false
			}
		}
	}
	return true
}

// --- Ancestry ---

type memoryAncestryRepo struct {
	store *Store
}

func (r *memoryAncestryRepo) Create(ctx context.Context, upload *entity.AncestryUpload) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if upload.Id == uuid.Nil {
		upload.Id = uuid.New()
	}
	if upload.CreatedAt.IsZero() {
		upload.CreatedAt = time.Now()
	}
	r.store.uploads = append(r.store.uploads, *upload)
	return nil
}

func (r *memoryAncestryRepo) FindLatest(ctx context.Context, userId, sessionId uuid.UUID) (*entity.AncestryUpload, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var latest *entity.AncestryUpload
	for i := range r.store.uploads {
		u := r.store.uploads[i]
		if u.UserId != userId || u.ChatSessionId != sessionId {
			continue
		}
		if latest == nil || u.CreatedAt.After(latest.CreatedAt) {
			copy := u
			latest = &copy
		}
	}
	return latest, nil
}

func (r *memoryAncestryRepo) DeleteByChatSessionId(ctx context.Context, sessionId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.uploads[:0]
	for _, u := range r.store.uploads {
		if u.ChatSessionId != sessionId {
			kept = append(kept, u)
		}
	}
	r.store.uploads = kept
	return nil
}
