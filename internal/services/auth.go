package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/SivakumaranJathurshan/CourseWork/internal/logging"
	"github.com/SivakumaranJathurshan/CourseWork/internal/middleware"
	"github.com/SivakumaranJathurshan/CourseWork/internal/models"
	"github.com/SivakumaranJathurshan/CourseWork/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/crypto/bcrypt"
)

var (
	tracer              = otel.Tracer("inventory-api")
	meter               = otel.Meter("inventory-api")
	registrationCounter metric.Int64Counter
	loginCounter        metric.Int64Counter
)

type JWTSettings struct {
	Key      string
	Issuer   string
	Audience string
	Expiry   time.Duration
}

type AuthService struct {
	users    repository.UserRepository
	settings JWTSettings
	log      zerolog.Logger
	now      func() time.Time
	hashCost int
}

func NewAuthService(users repository.UserRepository, settings JWTSettings, log zerolog.Logger) *AuthService {
	var err error
	registrationCounter, err = meter.Int64Counter(
		"auth.registration.total",
		metric.WithDescription("Total number of user registrations"),
	)
	if err != nil {
		logging.Logger().Error().Err(err).Msg("failed to create registration counter")
	}

	loginCounter, err = meter.Int64Counter(
		"auth.signin.attempts",
		metric.WithDescription("Total number of sign-in attempts"),
	)
	if err != nil {
		logging.Logger().Error().Err(err).Msg("failed to create sign-in counter")
	}

	if settings.Expiry <= 0 {
		settings.Expiry = 60 * time.Minute
	}

	return &AuthService{
		users:    users,
		settings: settings,
		log:      log,
		now:      utcNow,
		hashCost: bcrypt.DefaultCost,
	}
}

type RegisterInput struct {
	Email           string `json:"email" validate:"required,email"`
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type SigninInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SigninResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) error {
	ctx, span := tracer.Start(ctx, "user.register")
	defer span.End()

	span.SetAttributes(attribute.String("user.email", input.Email))

	if input.Password != input.ConfirmPassword {
		return ErrPasswordMismatch
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		span.SetAttributes(attribute.Bool("user.exists", true))
		return ErrUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return internal(ctx, s.log, "user.register", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return errors.Join(ErrValidation, err)
		}
		return internal(ctx, s.log, "user.register", err)
	}

	user := models.User{
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: string(hashedPassword),
		RegisteredOn: s.now(),
	}

	if err := s.users.Add(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrUserExists
		}
		return internal(ctx, s.log, "user.register", err)
	}

	if registrationCounter != nil {
		registrationCounter.Add(ctx, 1)
	}

	span.SetAttributes(attribute.Int64("user.id", int64(user.ID)))

	l := logging.Span(ctx, s.log)
	l.Info().
		Uint("user_id", user.ID).
		Str("email", user.Email).
		Msg("user registered")

	return nil
}

// Signin verifies the credentials and issues a signed bearer token. The
// signing key is checked before the credentials.
func (s *AuthService) Signin(ctx context.Context, input SigninInput) (*SigninResult, error) {
	ctx, span := tracer.Start(ctx, "user.signin")
	defer span.End()

	span.SetAttributes(attribute.String("user.email", input.Email))

	if loginCounter != nil {
		loginCounter.Add(ctx, 1)
	}

	if err := s.checkKey(); err != nil {
		l := logging.Span(ctx, s.log)
		l.Error().Err(err).Msg("JWT signing key rejected")
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			span.SetAttributes(attribute.Bool("signin.success", false))
			return nil, ErrInvalidCredentials
		}
		return nil, internal(ctx, s.log, "user.signin", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		span.SetAttributes(attribute.Bool("signin.success", false))
		return nil, ErrInvalidCredentials
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.settings.Expiry)

	token, err := s.generateToken(user, issuedAt, expiresAt)
	if err != nil {
		return nil, internal(ctx, s.log, "user.signin", err)
	}

	user.LastLoginOn = issuedAt
	if err := s.users.Update(ctx, user); err != nil {
		l := logging.Span(ctx, s.log)
		l.Warn().Err(err).Uint("user_id", user.ID).Msg("failed to record last login")
	}

	span.SetAttributes(
		attribute.Int64("user.id", int64(user.ID)),
		attribute.Bool("signin.success", true),
	)

	l := logging.Span(ctx, s.log)
	l.Info().
		Uint("user_id", user.ID).
		Str("email", user.Email).
		Msg("user signed in")

	return &SigninResult{Token: token, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "user.get_by_id")
	defer span.End()

	span.SetAttributes(attribute.Int64("user.id", int64(id)))

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(ctx, s.log, "user.get_by_id", err, ErrUserNotFound)
	}
	return user, nil
}

func (s *AuthService) checkKey() error {
	if s.settings.Key == "" {
		return ErrJWTKeyMissing
	}
	if len(s.settings.Key) < middleware.MinJWTKeyLength {
		return ErrJWTKeyTooShort
	}
	return nil
}

func (s *AuthService) generateToken(user *models.User, issuedAt, expiresAt time.Time) (string, error) {
	claims := middleware.JWTClaims{
		Name:  user.FirstName,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    s.settings.Issuer,
			Audience:  jwt.ClaimStrings{s.settings.Audience},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.settings.Key))
}

func utcNow() time.Time {
	return time.Now().UTC()
}
