package usecase

import (
	"context"
	"fmt"
	"time"

	cache "go-linkup/internal/infrastructure/cache/port"
	friend "go-linkup/internal/pkg/friend/application/domain"
)

// fakeFriendRepo is an in-memory FriendRequestRepository for the use case
// tests. It enforces the unique-pair rule the way the store does.
type fakeFriendRepo struct {
	byID   map[string]friend.Request
	byPair map[string]string // pair key -> id
	nextID int
}

func newFakeFriendRepo() *fakeFriendRepo {
	return &fakeFriendRepo{
		byID:   make(map[string]friend.Request),
		byPair: make(map[string]string),
	}
}

func (f *fakeFriendRepo) Create(ctx context.Context, r friend.Request) (friend.Request, error) {
	key := friend.PairKey(r.CreatorID, r.ReceiverID)
	if _, ok := f.byPair[key]; ok {
		return friend.Request{}, friend.ErrDuplicateRequest
	}
	f.nextID++
	r.ID = fmt.Sprintf("req-%d", f.nextID)
	f.byID[r.ID] = r
	f.byPair[key] = r.ID
	return r, nil
}

func (f *fakeFriendRepo) FindByID(ctx context.Context, id string) (*friend.Request, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeFriendRepo) FindByPair(ctx context.Context, a, b string) (*friend.Request, error) {
	id, ok := f.byPair[friend.PairKey(a, b)]
	if !ok {
		return nil, nil
	}
	r := f.byID[id]
	return &r, nil
}

func (f *fakeFriendRepo) UpdateStatus(ctx context.Context, id string, s friend.Status) error {
	r, ok := f.byID[id]
	if !ok {
		return friend.ErrRequestNotFound
	}
	r.Status = s
	f.byID[id] = r
	return nil
}

func (f *fakeFriendRepo) ListForReceiver(ctx context.Context, receiverID string) ([]friend.Request, error) {
	var out []friend.Request
	for _, r := range f.byID {
		if r.ReceiverID == receiverID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeFriendRepo) ListAcceptedFor(ctx context.Context, userID string) ([]friend.Request, error) {
	var out []friend.Request
	for _, r := range f.byID {
		if r.Status == friend.StatusAccepted && (r.CreatorID == userID || r.ReceiverID == userID) {
			out = append(out, r)
		}
	}
	return out, nil
}

// fakeCache records gets, sets and deletes so tests can assert on the
// read-through and invalidation behavior.
type fakeCache struct {
	values  map[string]string
	deleted []string
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

var _ cache.Cache = (*fakeCache)(nil)

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	v, ok := f.values[key]
	if !ok {
		return "", cache.ErrMiss
	}
	return v, nil
}

func (f *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	f.values[key] = value
	f.sets++
	return nil
}

func (f *fakeCache) Del(ctx context.Context, keys ...string) (int64, error) {
	var n int64
	for _, k := range keys {
		if _, ok := f.values[k]; ok {
			delete(f.values, k)
			n++
		}
		f.deleted = append(f.deleted, k)
	}
	return n, nil
}

func (f *fakeCache) Ping(ctx context.Context) error { return nil }
func (f *fakeCache) Close() error                   { return nil }
