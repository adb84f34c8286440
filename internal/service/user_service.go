package service

import (
	"context"
	"fmt"
	"log"
	"net/url"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"reppup/internal/auth"
	"reppup/internal/errors"
	"reppup/internal/model"
	"reppup/internal/repository"
	"reppup/internal/storage"
)

const bcryptCost = 10

// Notifier dispatches account notifications over an external transport.
type Notifier interface {
	SendVerification(to, link string) error
}

// UserService exposes account lifecycle operations.
type UserService interface {
	Signup(ctx context.Context, username, email, password string) (token string, err error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, params UpdateParams) (*model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	UploadProfileImage(ctx context.Context, id uuid.UUID, localPath string) (*model.User, error)
}

type userService struct {
	repo        repository.UserRepository
	jwtService  *auth.JWTService
	notifier    Notifier
	images      storage.ImageStore
	frontendURL string
}

// NewUserService builds a UserService with its collaborators.
func NewUserService(
	repo repository.UserRepository,
	jwtService *auth.JWTService,
	notifier Notifier,
	images storage.ImageStore,
	frontendURL string,
) UserService {
	return &userService{
		repo:        repo,
		jwtService:  jwtService,
		notifier:    notifier,
		images:      images,
		frontendURL: frontendURL,
	}
}

// Signup creates a new account, dispatches the verification email in the
// background, and returns a one-hour session token for the new account.
func (s *userService) Signup(ctx context.Context, username, email, password string) (string, error) {
	// Check if a user with this email already exists. The check and the
	// insert are separate operations; the unique index on email backstops
	// the race between concurrent signups.
	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return "", errors.ErrUserAlreadyExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return "", fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:          username,
		Email:             email,
		Password:          string(hashedPassword),
		VerificationToken: auth.NewVerificationToken(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}

	// Fire-and-forget: the signup response never waits on mail delivery
	// and never sees its outcome.
	link := fmt.Sprintf("%s/verify-email?email=%s&token=%s",
		s.frontendURL, url.QueryEscape(user.Email), user.VerificationToken)
	go func() {
		if err := s.notifier.SendVerification(user.Email, link); err != nil {
			log.Printf("send verification email to %s: %v", user.Email, err)
		}
	}()

	token, err := s.jwtService.GenerateSessionToken(user.ID.String())
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return token, nil
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateParams carries a partial update. Nil pointers mean "leave the
// field untouched"; only fields present in the request body are applied.
type UpdateParams struct {
	Username       *string  `json:"username"`
	Email          *string  `json:"email"`
	Password       *string  `json:"password"`
	FirstName      *string  `json:"firstName"`
	LastName       *string  `json:"lastName"`
	ProfilePicture *string  `json:"profilePicture"`
	Age            *int     `json:"age"`
	Height         *float64 `json:"height"`
	Weight         *float64 `json:"weight"`
	ExerciseChoice *string  `json:"exerciseChoice"`
	City           *string  `json:"city"`
	State          *string  `json:"state"`
	ZipCode        *string  `json:"zipCode"`
	PhoneNumber    *string  `json:"phoneNumber"`
}

// fields flattens the present values into a column map and reports
// whether any profile field (anything beyond the credentials) was set.
func (p UpdateParams) fields() (map[string]interface{}, bool) {
	f := map[string]interface{}{}
	if p.Username != nil {
		f["username"] = *p.Username
	}
	if p.Email != nil {
		f["email"] = *p.Email
	}

	profile := false
	set := func(column string, v interface{}) {
		f[column] = v
		profile = true
	}
	if p.FirstName != nil {
		set("first_name", *p.FirstName)
	}
	if p.LastName != nil {
		set("last_name", *p.LastName)
	}
	if p.ProfilePicture != nil {
		set("profile_picture", *p.ProfilePicture)
	}
	if p.Age != nil {
		set("age", *p.Age)
	}
	if p.Height != nil {
		set("height", *p.Height)
	}
	if p.Weight != nil {
		set("weight", *p.Weight)
	}
	if p.ExerciseChoice != nil {
		set("exercise_choice", *p.ExerciseChoice)
	}
	if p.City != nil {
		set("city", *p.City)
	}
	if p.State != nil {
		set("state", *p.State)
	}
	if p.ZipCode != nil {
		set("zip_code", *p.ZipCode)
	}
	if p.PhoneNumber != nil {
		set("phone_number", *p.PhoneNumber)
	}
	return f, profile
}

// UpdateUser applies a merge-by-presence update: omitted fields keep
// their prior values. A supplied password is re-hashed before storage,
// and supplying any profile field forces profileCompleted true (it is
// never reset to false).
func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, params UpdateParams) (*model.User, error) {
	fields, profileTouched := params.fields()

	if params.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*params.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		fields["password"] = string(hashedPassword)
	}
	if profileTouched {
		fields["profile_completed"] = true
	}

	user, err := s.repo.UpdateFields(ctx, id, fields)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return err
	}
	return nil
}

// UploadProfileImage forwards the staged file to the image host and
// persists the derived delivery URL on the account. If the account is
// gone after a successful remote upload, the remote asset is left
// orphaned; no compensating deletion is attempted.
func (s *userService) UploadProfileImage(ctx context.Context, id uuid.UUID, localPath string) (*model.User, error) {
	deliveryURL, err := s.images.Upload(ctx, localPath)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	user, err := s.repo.UpdateFields(ctx, id, map[string]interface{}{
		"profile_picture": deliveryURL,
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
