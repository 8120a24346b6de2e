package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	netmail "net/mail"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/mail"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/media"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type AuthService struct {
	users    repository.UserRepository
	tokens   repository.RefreshTokenRepository
	jwt      *TokenService
	mailer   mail.Sender
	uploader media.Uploader
	cfg      *config.Config
}

func NewAuthService(
	users repository.UserRepository,
	tokens repository.RefreshTokenRepository,
	jwt *TokenService,
	mailer mail.Sender,
	uploader media.Uploader,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		jwt:      jwt,
		mailer:   mailer,
		uploader: uploader,
		cfg:      cfg,
	}
}

// Register creates an unverified account, or refreshes an existing unverified
// one, and mails a verification link. The account write is rolled back when
// the mail cannot be sent.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" {
		return nil, validation("name is required")
	}
	if !plausibleEmail(email) {
		return nil, validation("a valid email is required")
	}
	if len(req.Password) < minPasswordLength {
		return nil, validation(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var user *models.User
	err = s.users.Transaction(ctx, func(tx repository.UserRepository) error {
		existing, err := tx.FindByEmail(ctx, email)
		switch {
		case err == nil && existing.Verified:
			return ErrEmailTaken
		case err == nil:
			if err := tx.Update(ctx, existing.ID, map[string]interface{}{
				"name":     name,
				"password": string(hash),
			}); err != nil {
				return err
			}
			existing.Name = name
			existing.Password = string(hash)
			user = existing
		case errors.Is(err, repository.ErrNotFound):
			user = &models.User{ID: uuid.New(), Name: name, Email: email, Password: string(hash)}
			if err := tx.Create(ctx, user); err != nil {
				if errors.Is(err, repository.ErrDuplicate) {
					return ErrEmailTaken
				}
				return fmt.Errorf("failed to create user: %w", err)
			}
		default:
			return err
		}

		return s.sendVerification(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *AuthService) sendVerification(ctx context.Context, user *models.User) error {
	token, err := s.jwt.IssueVerification(user.ID)
	if err != nil {
		return err
	}
	msg, err := mail.VerificationEmail(s.cfg.FrontendURL, user.Email, user.Name, token)
	if err != nil {
		return fmt.Errorf("failed to render verification email: %w", err)
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		slog.Error("verification email failed", "user_id", user.ID.String(), "error", err)
		return upstream("could not send verification email, please try again", err)
	}
	return nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	userID, err := s.jwt.Verify(token, PurposeEmailVerify)
	if err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}
	if user.Verified {
		return ErrAlreadyVerified
	}

	return s.users.MarkVerified(ctx, user.ID)
}

// Authenticate fails with ErrInvalidCredentials for unknown emails,
// unverified accounts and wrong passwords alike.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.Verified {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return s.generateTokenPair(ctx, user)
}

func (s *AuthService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	stored, err := s.tokens.FindActive(ctx, tokenHash)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if err := s.tokens.Revoke(ctx, tokenHash); err != nil {
		return nil, err
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, stored.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return s.generateTokenPair(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, req *dto.LogoutRequest) error {
	return s.tokens.Revoke(ctx, hashToken(req.RefreshToken))
}

func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// ProfileUpdate holds the optional profile changes; nil means unchanged.
type ProfileUpdate struct {
	Name         *string
	ProfileImage *media.File
	CoverImage   *media.File
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, upd ProfileUpdate) (*dto.UserResponse, error) {
	fields := map[string]interface{}{}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, validation("name cannot be empty")
		}
		fields["name"] = name
	}
	if upd.ProfileImage != nil {
		url, err := s.upload(ctx, "profiles", *upd.ProfileImage)
		if err != nil {
			return nil, err
		}
		fields["profile_image"] = url
	}
	if upd.CoverImage != nil {
		url, err := s.upload(ctx, "covers", *upd.CoverImage)
		if err != nil {
			return nil, err
		}
		fields["cover_image"] = url
	}

	if len(fields) > 0 {
		err := s.users.Update(ctx, userID, fields)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		if err != nil {
			return nil, err
		}
	}

	return s.GetProfile(ctx, userID)
}

func (s *AuthService) upload(ctx context.Context, folder string, f media.File) (string, error) {
	return uploadImage(ctx, s.uploader, folder, f)
}

// DeleteAccount soft-deletes the user after re-checking the password. Refresh
// tokens and saved entries go with it; authored recipes stay.
func (s *AuthService) DeleteAccount(ctx context.Context, userID uuid.UUID, password string) error {
	if password == "" {
		return validation("password is required")
	}

	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}

	if err := s.users.SoftDelete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *AuthService) generateTokenPair(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.jwt.IssueAccess(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         toUserResponse(user),
	}, nil
}

func (s *AuthService) generateRefreshToken(ctx context.Context, user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)
	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.tokens.Create(ctx, &record); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func toUserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Verified:     u.Verified,
		ProfileImage: u.ProfileImage,
		CoverImage:   u.CoverImage,
		CreatedAt:    u.CreatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func plausibleEmail(email string) bool {
	addr, err := netmail.ParseAddress(email)
	return err == nil && addr.Address == email && strings.Contains(email[strings.LastIndex(email, "@"):], ".")
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
