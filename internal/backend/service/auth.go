package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hatchery/hatchd/internal/backend/domain"
	"github.com/hatchery/hatchd/internal/backend/mail"
	"github.com/hatchery/hatchd/internal/backend/store"
	"github.com/hatchery/hatchd/pkg/cryptox"
	"github.com/hatchery/hatchd/pkg/idx"
	"github.com/hatchery/hatchd/pkg/jwtx"
	"github.com/hatchery/hatchd/pkg/slogx"
)

// DefaultConfirmTokenTTL is how long a signup confirmation link stays valid.
const DefaultConfirmTokenTTL = 24 * time.Hour

// ConfirmResult distinguishes a first-time activation from a repeat visit to
// an already-consumed confirmation link.
type ConfirmResult struct {
	AlreadyConfirmed bool
}

type AuthService struct {
	Store  store.Store
	Signer jwtx.Signer
	Mailer mail.Mailer

	// ConfirmBaseURL is the frontend origin that confirmation links point at,
	// e.g. "https://app.example.com".
	ConfirmBaseURL string

	Issuer     string
	AccessTTL  time.Duration
	ConfirmTTL time.Duration
}

func (s *AuthService) confirmTTL() time.Duration {
	if s.ConfirmTTL <= 0 {
		return DefaultConfirmTokenTTL
	}
	return s.ConfirmTTL
}

// Signup registers an inactive account and emails a confirmation link.
// Username and email conflicts are distinguishable so the handler can tell
// the caller which field is taken.
func (s *AuthService) Signup(ctx context.Context, username, email, password string) error {
	l := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return err
	}

	token := uuid.NewString()
	expires := time.Now().UTC().Add(s.confirmTTL())

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 1. Pre-check both unique fields so the error names the right one.
		if _, err := tx.Users().GetUserByUsername(ctx, username); err == nil {
			return ErrUsernameTaken
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if _, err := tx.Users().GetUserByEmail(ctx, email); err == nil {
			return ErrEmailTaken
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		// 2. Insert the inactive account with its live confirmation token.
		u := domain.User{
			ID:                       idx.New().String(),
			Username:                 username,
			Email:                    email,
			PasswordHash:             hash,
			IsActive:                 false,
			ConfirmationToken:        &token,
			ConfirmationTokenExpires: &expires,
		}
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			// Raced with a concurrent signup between pre-check and insert;
			// look the fields up again so the error names the right one.
			if errors.Is(err, store.ErrAlreadyExists) {
				if _, lookupErr := tx.Users().GetUserByUsername(ctx, username); lookupErr == nil {
					return ErrUsernameTaken
				}
				if _, lookupErr := tx.Users().GetUserByEmail(ctx, email); lookupErr == nil {
					return ErrEmailTaken
				}
				return ErrUsernameTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	// 3. Deliver the confirmation email after the account is committed.
	// Delivery failure must not fail the signup: the account exists and the
	// user can ask for help, whereas rolling back would leave a dangling
	// "username taken" state from the caller's point of view.
	confirmURL := s.ConfirmBaseURL + "/confirm-signup?token=" + token
	if err := s.Mailer.SendConfirmation(ctx, email, username, confirmURL); err != nil {
		l.Error("failed to send confirmation email",
			slog.Any("error", err),
			slog.String("username", username),
		)
	}

	return nil
}

// Confirm activates the account holding the given confirmation token.
//
// Order matters here: an expired token must report expiry, a token that was
// already consumed must report success again (the user double-clicked the
// link), and everything else is invalid.
func (s *AuthService) Confirm(ctx context.Context, token string) (ConfirmResult, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return ConfirmResult{}, ErrInvalidConfirmationToken
	}

	now := time.Now().UTC()
	var result ConfirmResult

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 1. Live token path.
		u, err := tx.Users().GetUserByConfirmationToken(ctx, token)
		switch {
		case err == nil:
			if u.IsActive {
				// A live token on an active account shouldn't happen, but
				// treat it as the idempotent case rather than erroring.
				result = ConfirmResult{AlreadyConfirmed: true}
				return nil
			}
			if u.ConfirmationTokenExpires != nil && now.After(*u.ConfirmationTokenExpires) {
				return ErrConfirmationTokenExpired
			}
			result = ConfirmResult{}
			return tx.Users().ActivateUser(ctx, u.ID, cryptox.FingerprintToken(token))

		case errors.Is(err, store.ErrNotFound):
			// 2. Consumed token path: activation nulls the live token but
			// keeps its fingerprint, so a repeat visit succeeds idempotently.
			_, err := tx.Users().GetUserByConfirmedTokenHash(ctx, cryptox.FingerprintToken(token))
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidConfirmationToken
			}
			if err != nil {
				return err
			}
			result = ConfirmResult{AlreadyConfirmed: true}
			return nil

		default:
			return err
		}
	})
	if err != nil {
		return ConfirmResult{}, err
	}
	return result, nil
}

// Login verifies the credentials and issues a signed access token.
//
// Unknown usernames and wrong passwords are indistinguishable to the caller.
// An inactive account with correct credentials is the one case that gets its
// own error, so the user knows to go confirm their email.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.AccessToken, error) {
	l := slogx.FromContext(ctx)
	now := time.Now()

	u, err := s.Store.Users().GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn a hash comparison anyway so a missing user costs the
			// same as a wrong password.
			cryptox.CheckPassword(password, "")
			return domain.AccessToken{}, ErrInvalidCredentials
		}
		return domain.AccessToken{}, err
	}

	if !cryptox.CheckPassword(password, u.PasswordHash) {
		l.Info("login failed", slog.String("username", u.Username))
		return domain.AccessToken{}, ErrInvalidCredentials
	}

	if !u.IsActive {
		return domain.AccessToken{}, ErrAccountNotActivated
	}

	claims := jwtx.NewAccessClaims(u.Username, s.Issuer, s.AccessTTL, now)
	signed, err := s.Signer.Sign(claims)
	if err != nil {
		return domain.AccessToken{}, err
	}

	return domain.AccessToken{
		AccessToken: signed,
		TokenType:   "bearer",
	}, nil
}
