package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/hospital-service/internal/auth"
	"github.com/spec-kit/hospital-service/internal/config"
	"github.com/spec-kit/hospital-service/internal/domain"
	"github.com/spec-kit/hospital-service/internal/events"
	"github.com/spec-kit/hospital-service/internal/persistence"
	"github.com/spec-kit/hospital-service/internal/repository"
	apperrors "github.com/spec-kit/hospital-service/pkg/util"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService coordinates credential verification, registration and password
// reset flows.
type AuthService struct {
	users      repository.UserRepository
	patients   repository.PatientRepository
	doctors    repository.DoctorRepository
	nurses     repository.NurseRepository
	tx         persistence.TxRunner
	dispatcher events.Dispatcher
	tokenMgr   *auth.TokenManager
	bcryptCost int
	resetTTL   time.Duration
}

// AuthDependencies encapsulates collaborator requirements for auth service.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	PatientRepo repository.PatientRepository
	DoctorRepo  repository.DoctorRepository
	NurseRepo   repository.NurseRepository
	TxRunner    persistence.TxRunner
	Dispatcher  events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		patients:   deps.PatientRepo,
		doctors:    deps.DoctorRepo,
		nurses:     deps.NurseRepo,
		tx:         deps.TxRunner,
		dispatcher: deps.Dispatcher,
		tokenMgr: auth.NewTokenManager(cfg.Auth.JWTSecret,
			cfg.Auth.SessionTTL(false), cfg.Auth.SessionTTL(true)),
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
	}
}

// NormalizeEmail lowercases and trims the case-insensitive lookup key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// LoginResult carries everything the handler needs after authentication.
type LoginResult struct {
	User       *domain.User
	Profile    any
	ProfileID  *string
	Token      string
	ExpiresAt  time.Time
	RememberMe bool
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password produce the same error; a deactivated account is reported
// distinctly since the caller already holds valid credentials for it.
func (s *AuthService) Login(ctx context.Context, email, password string, rememberMe bool) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, apperrors.NewMissingCredentials()
	}
	email = NormalizeEmail(email)
	if !emailPattern.MatchString(email) {
		return nil, apperrors.NewInvalidEmail()
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewInvalidCredentials()
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.NewAccountDeactivated()
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewInvalidCredentials()
	}

	now := time.Now()
	if err := s.users.UpdateLastLogin(ctx, user.ID.Hex(), now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	profile, profileID, err := s.profileFor(ctx, user)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokenMgr.Issue(user.ID.Hex(), user.Email, user.Role, profileID, rememberMe)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		User:       user,
		Profile:    profile,
		ProfileID:  profileID,
		Token:      token,
		ExpiresAt:  expiresAt,
		RememberMe: rememberMe,
	}, nil
}

// ProfileInput carries role-specific registration data.
type ProfileInput struct {
	PersonalInfo    domain.PersonalInfo
	ContactInfo     domain.ContactInfo
	BloodGroup      string
	Specialization  string
	Experience      int
	ConsultationFee float64
	Shift           domain.NurseShift
	DepartmentID    *primitive.ObjectID
}

// RegisterInput describes a registration request.
type RegisterInput struct {
	Email    string
	Password string
	Role     domain.Role
	Profile  *ProfileInput
}

// RegisterResult carries the created identity and its session.
type RegisterResult struct {
	User      *domain.User
	ProfileID *string
	Token     string
	ExpiresAt time.Time
}

// Register creates an identity and its role profile in one atomic unit. The
// unique index on users.email resolves concurrent duplicate attempts: exactly
// one insert wins, the loser observes the duplicate-key error.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	if input.Email == "" || input.Password == "" || input.Role == "" {
		return nil, apperrors.NewValidationError("Email, password and role are required", nil)
	}
	if len(input.Password) < 8 {
		return nil, apperrors.NewValidationError("Password must be at least 8 characters long", nil)
	}
	if !domain.ValidRole(input.Role) {
		return nil, apperrors.NewValidationError("Invalid role specified", map[string]any{"role": string(input.Role)})
	}
	email := NormalizeEmail(input.Email)
	if !emailPattern.MatchString(email) {
		return nil, apperrors.NewInvalidEmail()
	}
	if input.Role.HasProfile() && input.Profile == nil {
		return nil, apperrors.NewValidationError("Profile data is required for this role", map[string]any{"role": string(input.Role)})
	}

	// Pre-check for a friendly error; the unique index is the final arbiter.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewDuplicateAccount()
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         input.Role,
		IsActive:     true,
	}

	var profileID *string
	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.users.Create(txCtx, user); err != nil {
			return err
		}
		id, err := s.createProfile(txCtx, user, input.Profile)
		if err != nil {
			return err
		}
		profileID = id
		return nil
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.NewDuplicateAccount()
		}
		return nil, err
	}

	token, expiresAt, err := s.tokenMgr.Issue(user.ID.Hex(), user.Email, user.Role, profileID, false)
	if err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUserRegistered,
			Timestamp: time.Now(),
			Payload: events.UserRegisteredPayload{
				UserID:    user.ID.Hex(),
				Email:     user.Email,
				Role:      user.Role,
				ProfileID: profileID,
			},
		})
	}

	return &RegisterResult{User: user, ProfileID: profileID, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) createProfile(ctx context.Context, user *domain.User, input *ProfileInput) (*string, error) {
	switch user.Role {
	case domain.RolePatient:
		patient := &domain.Patient{
			UserID:       user.ID,
			PatientID:    "PAT-" + shortID(),
			PersonalInfo: input.PersonalInfo,
			ContactInfo:  input.ContactInfo,
			BloodGroup:   input.BloodGroup,
		}
		if err := s.patients.Create(ctx, patient); err != nil {
			return nil, err
		}
		id := patient.ID.Hex()
		return &id, nil
	case domain.RoleDoctor:
		doctor := &domain.Doctor{
			UserID:       user.ID,
			DoctorID:     "DOC-" + shortID(),
			PersonalInfo: input.PersonalInfo,
			ProfessionalInfo: domain.DoctorProfessionalInfo{
				Specialization:  input.Specialization,
				Experience:      input.Experience,
				ConsultationFee: input.ConsultationFee,
				DepartmentID:    input.DepartmentID,
			},
		}
		if err := s.doctors.Create(ctx, doctor); err != nil {
			return nil, err
		}
		id := doctor.ID.Hex()
		return &id, nil
	case domain.RoleNurse:
		nurse := &domain.Nurse{
			UserID:       user.ID,
			NurseID:      "NUR-" + shortID(),
			PersonalInfo: input.PersonalInfo,
			ProfessionalInfo: domain.NurseProfessionalInfo{
				Experience:   input.Experience,
				Shift:        input.Shift,
				DepartmentID: input.DepartmentID,
			},
		}
		if err := s.nurses.Create(ctx, nurse); err != nil {
			return nil, err
		}
		id := nurse.ID.Hex()
		return &id, nil
	default:
		// Admin, receptionist and pharmacist are identity-only.
		return nil, nil
	}
}

// Profile returns the identity and role profile for the authenticated user.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, any, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil, apperrors.NewNotFound("user", nil)
		}
		return nil, nil, err
	}
	profile, _, err := s.profileFor(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, profile, nil
}

// profileFor resolves the role-specific profile record, tolerating identities
// without one.
func (s *AuthService) profileFor(ctx context.Context, user *domain.User) (any, *string, error) {
	switch user.Role {
	case domain.RolePatient:
		patient, err := s.patients.GetByUserID(ctx, user.ID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, nil, nil
			}
			return nil, nil, err
		}
		id := patient.ID.Hex()
		return patient, &id, nil
	case domain.RoleDoctor:
		doctor, err := s.doctors.GetByUserID(ctx, user.ID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, nil, nil
			}
			return nil, nil, err
		}
		id := doctor.ID.Hex()
		return doctor, &id, nil
	case domain.RoleNurse:
		nurse, err := s.nurses.GetByUserID(ctx, user.ID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, nil, nil
			}
			return nil, nil, err
		}
		id := nurse.ID.Hex()
		return nurse, &id, nil
	}
	return nil, nil, nil
}

// EmailExists reports whether an identity is already registered under the
// email. Backs the registration form's availability check.
func (s *AuthService) EmailExists(ctx context.Context, email string) (bool, error) {
	email = NormalizeEmail(email)
	if !emailPattern.MatchString(email) {
		return false, apperrors.NewInvalidEmail()
	}
	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// RequestPasswordReset stores a hashed, short-lived reset token for the account.
// The raw token is returned for delivery; unknown emails report success to the
// caller so the endpoint cannot be used to enumerate accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = NormalizeEmail(email)
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil
		}
		return "", err
	}

	token := uuid.NewString()
	expires := time.Now().Add(s.resetTTL)
	user.ResetPasswordToken = hashResetToken(token)
	user.ResetPasswordExpires = &expires
	if err := s.users.Update(ctx, user); err != nil {
		return "", err
	}
	return token, nil
}

// ConfirmPasswordReset validates the reset token and updates the password hash.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 8 {
		return apperrors.NewValidationError("Password must be at least 8 characters long", nil)
	}

	user, err := s.users.GetByResetToken(ctx, hashResetToken(token))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NewTokenInvalid()
		}
		return err
	}
	if user.ResetPasswordExpires == nil || time.Now().After(*user.ResetPasswordExpires) {
		return apperrors.NewTokenInvalid()
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.ResetPasswordToken = ""
	user.ResetPasswordExpires = nil
	return s.users.Update(ctx, user)
}

// TokenManager exposes the underlying token manager for gate construction.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func shortID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
