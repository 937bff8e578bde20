package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/angelmondragon/aestheticmarket-backend/internal/sellers"
	pkgAuth "github.com/angelmondragon/aestheticmarket-backend/pkg/auth"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/config"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/db"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/aestheticmarket-backend/pkg/errors"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/logger"
	"github.com/angelmondragon/aestheticmarket-backend/pkg/security"
)

const minPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service registers sellers and exchanges credentials for access tokens.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Session, error)
	Login(ctx context.Context, req LoginRequest) (*Session, error)
}

type sellerStore interface {
	Create(ctx context.Context, dto sellers.CreateSellerDTO) (*models.Seller, error)
	FindByEmail(ctx context.Context, email string) (*models.Seller, error)
	Update(ctx context.Context, id int64, updates map[string]any) (*models.Seller, error)
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	Sellers        sellerStore
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
	Logger         *logger.Logger
	Now            func() time.Time
}

type service struct {
	sellers     sellerStore
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	logg        *logger.Logger
	now         func() time.Time
	// dummyHash is verified against when the email is unknown so both
	// login failures cost one hash comparison.
	dummyHash string
}

// NewService constructs the registration and login service.
func NewService(params ServiceParams) (Service, error) {
	if params.Sellers == nil {
		return nil, fmt.Errorf("seller repository is required")
	}
	if params.JWTConfig.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	dummy, err := security.HashPassword("aestheticmarket-placeholder", params.PasswordConfig)
	if err != nil {
		return nil, fmt.Errorf("prepare placeholder hash: %w", err)
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		sellers:     params.Sellers,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
		logg:        params.Logger,
		now:         now,
		dummyHash:   dummy,
	}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	seller, err := s.sellers.Create(ctx, sellers.CreateSellerDTO{
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, sellers.ErrEmailInUse(err)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create seller")
	}

	return s.issue(seller)
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	if req.Email == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Please provide email and password")
	}

	seller, err := s.sellers.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_, _ = security.VerifyPassword(req.Password, s.dummyHash)
			return nil, errInvalidCredentials()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup seller")
	}

	ok, err := security.VerifyPassword(req.Password, seller.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, errInvalidCredentials()
	}

	if security.NeedsRehash(seller.Password) {
		s.upgradeHash(ctx, seller.ID, req.Password)
	}

	return s.issue(seller)
}

func (s *service) issue(seller *models.Seller) (*Session, error) {
	token, err := pkgAuth.MintAccessToken(s.jwtCfg, s.now(), pkgAuth.AccessTokenPayload{
		SellerID: seller.ID,
		Email:    seller.Email,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	return &Session{Seller: sellers.FromModel(seller), Token: token}, nil
}

// upgradeHash replaces a legacy bcrypt hash with argon2id. Failure leaves the
// old hash in place; the next login retries.
func (s *service) upgradeHash(ctx context.Context, sellerID int64, password string) {
	hash, err := security.HashPassword(password, s.passwordCfg)
	if err == nil {
		_, err = s.sellers.Update(ctx, sellerID, map[string]any{"password": hash})
	}
	if err != nil && s.logg != nil {
		ctx = s.logg.WithFields(s.logg.WithSellerID(ctx, sellerID), map[string]any{"error": err.Error()})
		s.logg.Warn(ctx, "auth.rehash_failed")
	}
}

func validateRegistration(req RegisterRequest) error {
	switch {
	case req.FullName == "" || req.Email == "" || req.Phone == "" || req.Password == "" || req.ConfirmPassword == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "All fields are required")
	case !emailPattern.MatchString(req.Email):
		return pkgerrors.New(pkgerrors.CodeValidation, "Please provide a valid email address")
	case utf8.RuneCountInString(req.Password) < minPasswordLength:
		return pkgerrors.New(pkgerrors.CodeValidation, "Password must be at least 8 characters long")
	case req.Password != req.ConfirmPassword:
		return pkgerrors.New(pkgerrors.CodeValidation, "Passwords do not match")
	}
	return nil
}

// errInvalidCredentials is the only error login returns for an unknown email
// or a wrong password.
func errInvalidCredentials() error {
	return pkgerrors.New(pkgerrors.CodeUnauthorized, "Incorrect email or password")
}
