package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/auth"
	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/user/entity"
	"github.com/ovaphlow/pitchfork/service-reservation-go/pkg/database"
)

// MobileNumberLength is the fixed length of a domestic mobile number, e.g. 01012345678.
const MobileNumberLength = 11

// MaxNameLength matches the users.name column width, in characters.
const MaxNameLength = 45

// PasswordHasher defines minimal hashing interface (abstract so we can swap to argon2 later).
type PasswordHasher interface {
	Hash(pw string) (hash string, algo string, err error)
	Verify(hash, pw string) bool
}

// BcryptHasher implementation.
type BcryptHasher struct{ Cost int }

func (b BcryptHasher) Hash(pw string) (string, string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", "", err
	}
	return string(h), fmt.Sprintf("bcrypt:%d", cost), nil
}

func (b BcryptHasher) Verify(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// Repo is the storage the service needs.
type Repo interface {
	Create(ctx context.Context, u *entity.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetContact(ctx context.Context, id int64) (*entity.Contact, error)
}

// UserService orchestrates sign up, sign in and identity lookups.
type UserService struct {
	repo   Repo
	hasher PasswordHasher
}

func NewUserService(r Repo, hasher PasswordHasher) *UserService {
	if hasher == nil {
		hasher = BcryptHasher{Cost: 12}
	}
	return &UserService{repo: r, hasher: hasher}
}

var (
	ErrMissingField   = errors.New("missing field")
	ErrInvalidMobile  = errors.New("invalid mobile number")
	ErrNameTooLong    = errors.New("name too long")
	ErrEmailTaken     = errors.New("email already registered")
	ErrBadCredentials = errors.New("invalid credentials")
)

// SignupInput is the validated sign up payload.
type SignupInput struct {
	Name         string
	Email        string
	MobileNumber string
	Password     string
}

// SignupUser creates a user with a hashed password and returns its id.
func (s *UserService) SignupUser(ctx context.Context, in SignupInput) (int64, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" || in.Password == "" || in.MobileNumber == "" {
		return 0, ErrMissingField
	}
	if utf8.RuneCountInString(in.MobileNumber) != MobileNumberLength {
		return 0, ErrInvalidMobile
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return 0, ErrNameTooLong
	}
	hash, algo, err := s.hasher.Hash(in.Password)
	if err != nil {
		return 0, err
	}
	u := &entity.User{
		Name:         name,
		Email:        email,
		MobileNumber: in.MobileNumber,
		PasswordHash: hash,
		PasswordAlgo: algo,
	}
	id, err := s.repo.Create(ctx, u)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return 0, ErrEmailTaken
		}
		return 0, err
	}
	return id, nil
}

// AuthenticatePassword returns the user id when email and password match.
func (s *UserService) AuthenticatePassword(ctx context.Context, email, password string) (int64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return 0, ErrBadCredentials
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		// same answer as a wrong password
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrBadCredentials
		}
		return 0, err
	}
	if !s.hasher.Verify(u.PasswordHash, password) {
		return 0, ErrBadCredentials
	}
	return u.ID, nil
}

// Identity resolves a verified token's user id for the auth middleware.
func (s *UserService) Identity(ctx context.Context, userID int64) (auth.Identity, error) {
	c, err := s.repo.GetContact(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auth.Identity{}, auth.ErrUnknownUser
		}
		return auth.Identity{}, fmt.Errorf("load user %d: %w", userID, err)
	}
	return auth.Identity{UserID: c.ID, Name: c.Name, MobileNumber: c.MobileNumber}, nil
}
