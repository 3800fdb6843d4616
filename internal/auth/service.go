package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Skotchmaster/furniture_supply/internal/clock"
	"github.com/Skotchmaster/furniture_supply/internal/domain"
	"github.com/Skotchmaster/furniture_supply/internal/logging"
	"github.com/Skotchmaster/furniture_supply/internal/models"
)

type StoreFinder interface {
	GetStoreByUsername(ctx context.Context, username string) (*models.StoreAccount, error)
}

type Service struct {
	Stores           StoreFinder
	Secret           []byte
	SupplierPassword string
	Clock            clock.Clock
}

type Session struct {
	Token     string `json:"access_token"`
	ExpiresAt int64  `json:"expires_at"`
	Role      Role   `json:"role"`
	StoreID   string `json:"store_id,omitempty"`
	StoreName string `json:"store_name,omitempty"`
}

var errBadCredentials = fmt.Errorf("%w: invalid username or password", domain.ErrUnauthorized)

// LoginStore accepts active store accounts only.
func (s *Service) LoginStore(ctx context.Context, username, password string) (*Session, error) {
	l := logging.FromContext(ctx).With("op", "auth.login_store")

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errBadCredentials
	}
	acc, err := s.Stores.GetStoreByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		l.Info("login_rejected", "reason", "unknown username")
		return nil, errBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if !CheckPassword(acc.PasswordHash, password) {
		l.Info("login_rejected", "reason", "bad password", "store_id", acc.ID)
		return nil, errBadCredentials
	}
	if !acc.IsActive {
		l.Info("login_rejected", "reason", "inactive", "store_id", acc.ID)
		return nil, fmt.Errorf("%w: store account is disabled", domain.ErrUnauthorized)
	}
	return s.issue(RoleStore, acc.ID, acc.Name)
}

func (s *Service) LoginSupplier(ctx context.Context, password string) (*Session, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.SupplierPassword)) != 1 {
		logging.FromContext(ctx).Info("login_rejected", "op", "auth.login_supplier")
		return nil, fmt.Errorf("%w: invalid password", domain.ErrUnauthorized)
	}
	return s.issue(RoleSupplier, SupplierSubject, "")
}

func (s *Service) issue(role Role, subject, storeName string) (*Session, error) {
	tok, exp, err := IssueToken(s.Secret, role, subject, storeName, s.now())
	if err != nil {
		return nil, err
	}
	sess := &Session{Token: tok, ExpiresAt: exp.Unix(), Role: role, StoreName: storeName}
	if role == RoleStore {
		sess.StoreID = subject
	}
	return sess, nil
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return clock.System{}.Now()
	}
	return s.Clock.Now()
}
