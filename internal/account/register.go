package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/abhisek/lifewheel/internal/store"
)

const (
	MinAge = 10
	MaxAge = 100
)

// ErrInvalidInput wraps every registration validation failure.
var ErrInvalidInput = errors.New("invalid registration")

// RegisterInput is the lead form.
type RegisterInput struct {
	Name   string
	Mobile string
	Age    int
	Email  string
}

// NormalizeMobile strips spaces, dashes and parentheses from a phone
// number, keeping a leading plus sign.
func NormalizeMobile(s string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(s) {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalize trims the input and canonicalizes the mobile number.
func (in RegisterInput) Normalize() RegisterInput {
	return RegisterInput{
		Name:   strings.TrimSpace(in.Name),
		Mobile: NormalizeMobile(in.Mobile),
		Age:    in.Age,
		Email:  strings.ToLower(strings.TrimSpace(in.Email)),
	}
}

// Validate checks a normalized input.
func (in RegisterInput) Validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	digits := strings.TrimPrefix(in.Mobile, "+")
	if len(digits) < 7 || len(digits) > 15 {
		return fmt.Errorf("%w: mobile must have 7 to 15 digits", ErrInvalidInput)
	}
	if in.Age < MinAge || in.Age > MaxAge {
		return fmt.Errorf("%w: age must be between %d and %d", ErrInvalidInput, MinAge, MaxAge)
	}
	if in.Email != "" {
		if _, err := mail.ParseAddress(in.Email); err != nil {
			return fmt.Errorf("%w: email address is not valid", ErrInvalidInput)
		}
	}
	return nil
}

// Service registers users against a UserRepo.
type Service struct {
	users  store.UserRepo
	policy AdminPolicy
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a registration service.
func NewService(users store.UserRepo, policy AdminPolicy, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{users: users, policy: policy, logger: logger, now: time.Now}
}

// Register creates the account for in.Mobile or refreshes the profile
// of the existing one. ID and role of an existing account never change.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Identity, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return Identity{}, err
	}

	u, err := s.users.Upsert(ctx, store.User{
		ID:        uuid.NewString(),
		Contact:   in.Mobile,
		Name:      in.Name,
		Age:       in.Age,
		Email:     in.Email,
		Role:      string(s.policy.RoleFor(in.Mobile)),
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return Identity{}, fmt.Errorf("register %s: %w", in.Mobile, err)
	}

	s.logger.Info("user registered", "user_id", u.ID, "role", u.Role)
	return IdentityOf(u), nil
}

// Lookup returns the identity stored for contact.
func (s *Service) Lookup(ctx context.Context, contact string) (Identity, error) {
	u, err := s.users.GetByContact(ctx, NormalizeMobile(contact))
	if err != nil {
		return Identity{}, err
	}
	return IdentityOf(u), nil
}

// IdentityOf converts a stored user.
func IdentityOf(u *store.User) Identity {
	return Identity{
		UserID:  u.ID,
		Name:    u.Name,
		Contact: u.Contact,
		Email:   u.Email,
		Role:    Role(u.Role),
	}
}
