package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/squeegee-samurai/squeegee-api/config"
	"github.com/squeegee-samurai/squeegee-api/internal/domain/entity"
	repo "github.com/squeegee-samurai/squeegee-api/internal/domain/repository"
	"github.com/squeegee-samurai/squeegee-api/pkg/mailer"
	mailtpl "github.com/squeegee-samurai/squeegee-api/pkg/mailer/templates"
)

var (
	ErrInvalidInput    = errors.New("missing required fields")
	ErrEmailTaken      = errors.New("email already registered")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
)

// Hasher is satisfied by *helpers.PasswordHasher.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) (bool, error)
}

// JobPublisher is satisfied by *helpers.RabbitPublisher.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// UserIndexer pushes public profile data to the user directory.
type UserIndexer interface {
	IndexUser(ctx context.Context, u *entity.User) error
}

// Service holds the signup and login flows. Mail and Index are optional.
type Service struct {
	Repo   repo.UserRepository
	Hasher Hasher
	Mail   JobPublisher
	Index  UserIndexer
	Cfg    *config.Config
	Logger *logrus.Logger
}

func NewService(repo repo.UserRepository, hasher Hasher, mail JobPublisher, index UserIndexer, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		Repo:   repo,
		Hasher: hasher,
		Mail:   mail,
		Index:  index,
		Cfg:    cfg,
		Logger: logger,
	}
}

type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
	// Role is accepted from clients but never honored; signups are always CUSTOMER.
	Role string
}

// Profile is the public view returned by Login.
type Profile struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	FullName  string      `json:"fullName"`
	FirstName string      `json:"firstName"`
	Role      entity.Role `json:"role"`
	Phone     string      `json:"phone"`
}

func NewProfile(u *entity.User) *Profile {
	return &Profile{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName(),
		FirstName: u.FirstName,
		Role:      u.Role,
		Phone:     u.Phone,
	}
}

// Signup registers a CUSTOMER account. The insert itself is the uniqueness
// check, so concurrent signups for one email yield one row and ErrEmailTaken.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	email := entity.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" || strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return nil, ErrInvalidInput
	}
	if in.Role != "" && !strings.EqualFold(strings.TrimSpace(in.Role), string(entity.RoleCustomer)) {
		s.Logger.WithField("requested_role", in.Role).Debug("signup role ignored")
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &entity.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        email,
		Phone:        in.Phone,
		PasswordHash: hash,
		Role:         entity.RoleCustomer,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			signupConflicts.Add(1)
			return nil, ErrEmailTaken
		}
		s.Logger.WithError(err).Error("create user failed")
		return nil, fmt.Errorf("create user: %w", err)
	}
	signups.Add(1)
	s.Logger.WithField("user_id", u.ID).Info("user registered")

	s.enqueueWelcome(ctx, u)
	s.indexUser(ctx, u)
	return u, nil
}

// Login checks credentials and returns the public profile. Unknown email and
// wrong password are reported as distinct errors.
func (s *Service) Login(ctx context.Context, email, password string) (*Profile, error) {
	u, err := s.Repo.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			loginFailures.Add(1)
			return nil, ErrUserNotFound
		}
		s.Logger.WithError(err).Error("lookup user failed")
		return nil, fmt.Errorf("find user: %w", err)
	}

	ok, err := s.Hasher.Verify(u.PasswordHash, password)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("stored password hash unreadable")
	}
	if !ok {
		loginFailures.Add(1)
		return nil, ErrInvalidPassword
	}

	logins.Add(1)
	return NewProfile(u), nil
}

func (s *Service) enqueueWelcome(ctx context.Context, u *entity.User) {
	if s.Mail == nil || s.Cfg == nil || !s.Cfg.MailSendEnabled {
		return
	}
	job := mailer.EmailJob{
		ID:       uuid.NewString(),
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(s.Cfg, u.FirstName, u.FullName(), u.Email, mailtpl.WithTime(time.Now())),
	}
	if err := s.Mail.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("failed to publish welcome email")
	}
}

func (s *Service) indexUser(ctx context.Context, u *entity.User) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexUser(ctx, u); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("user index failed")
	}
}
