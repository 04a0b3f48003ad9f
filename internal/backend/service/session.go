package service

import (
	"context"
	"errors"

	"github.com/hatchery/hatchd/internal/backend/domain"
	"github.com/hatchery/hatchd/internal/backend/store"
)

// SessionService resolves a verified token subject back to its account. The
// transport middleware owns signature and expiry checks; this layer owns the
// "does this user still exist" check.
type SessionService struct {
	Store store.Store
}

// ResolveSubject returns the user the subject names, or ErrUnknownSubject if
// the account has since disappeared.
func (s *SessionService) ResolveSubject(ctx context.Context, subject string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUnknownSubject
		}
		return domain.User{}, err
	}
	return u, nil
}
