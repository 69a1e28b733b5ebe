package session

import "context"

// Store holds sessions keyed by platform user id. Get returns (nil, nil) for
// an unknown id; callers create sessions lazily.
type Store interface {
	Get(ctx context.Context, userID string) (*Session, error)
	Put(ctx context.Context, s *Session) error
	Clear(ctx context.Context, userID string) error
}
