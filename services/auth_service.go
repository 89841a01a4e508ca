package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"ouardatie_server/database"
	"ouardatie_server/lib"
	"ouardatie_server/structs"
	"ouardatie_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"
)

var DefaultParams = &structs.ArgonParams{
	Memory:  64 * 1024, // 64 MB
	Time:    1,
	Threads: 4,
	KeyLen:  32,
	SaltLen: 16,
}

type AuthService struct {
	logger       *gecho.Logger
	cfg          *structs.Config
	db           *database.DB
	cacheService *CacheService
}

func NewAuthService(cfg *structs.Config, logger *gecho.Logger, db *database.DB, cacheService *CacheService) *AuthService {
	return &AuthService{
		logger:       logger,
		cfg:          cfg,
		db:           db,
		cacheService: cacheService,
	}
}

func (as *AuthService) Login(authRequest *structs.AuthRequest) (*tables.Profile, error) {
	profile, err := database.Query[tables.Profile](as.db).Where("email", authRequest.Email).First(context.Background())
	if err != nil {
		mappedErr := lib.MapPgError(err)

		// Only log as error if it's not a "not found" error
		if !lib.IsNotFound(mappedErr) {
			as.logger.Error("Unexpected database error during login",
				gecho.Field("error", mappedErr),
			)
		}

		// Always return invalid credentials (don't leak user existence)
		return nil, lib.ErrInvalidCredentials
	}

	// First() returns nil, nil for no results
	if profile == nil {
		as.logger.Debug("Profile not found during login attempt", gecho.Field("identifier", authRequest.Email))
		return nil, lib.ErrInvalidCredentials
	}

	valid, err := as.VerifyPassword(authRequest.Password, profile.PasswordHash)
	if err != nil {
		as.logger.Error("Failed to verify password hash",
			gecho.Field("error", err),
			gecho.Field("user_id", profile.ID),
		)
		return nil, err
	}
	if !valid {
		as.logger.Debug("Invalid password attempt",
			gecho.Field("identifier", authRequest.Email),
			gecho.Field("user_id", profile.ID),
		)
		return nil, lib.ErrInvalidCredentials
	}

	// Remove password hash before returning the profile
	profile.PasswordHash = ""

	if cacheErr := as.cacheService.SetProfileInCache(profile); cacheErr != nil {
		as.logger.Warn("Failed to cache profile after login", gecho.Field("error", cacheErr), gecho.Field("user_id", profile.ID))
	}

	return profile, nil
}

func (as *AuthService) Register(registerRequest *structs.RegisterRequest) (*tables.Profile, error) {
	passwordHash, err := as.HashPassword(registerRequest.Password, DefaultParams)
	if err != nil {
		as.logger.Error("Failed to hash password", gecho.Field("error", err))
		return nil, err
	}
	profile := &tables.Profile{
		Username:     registerRequest.Username,
		Email:        registerRequest.Email,
		PasswordHash: passwordHash,
	}
	profile, err = database.Query[tables.Profile](as.db).Insert(context.Background(), profile)
	if err != nil {
		mappedErr := lib.MapPgError(err)

		// Unique violations are user error, everything else is ours
		if lib.IsUniqueViolation(mappedErr) {
			as.logger.Warn("Registration failed - duplicate profile",
				gecho.Field("username", registerRequest.Username),
				gecho.Field("email", registerRequest.Email),
			)
		} else {
			as.logger.Error("Database error during registration",
				gecho.Field("error", mappedErr),
				gecho.Field("username", registerRequest.Username),
			)
		}

		return nil, mappedErr
	}

	profile.PasswordHash = ""

	return profile, nil
}

// HashPassword hashes a plain-text password and returns a string and possible error
func (as *AuthService) HashPassword(password string, p *structs.ArgonParams) (string, error) {
	salt, err := generateSalt(p.SaltLen)
	if err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLen)
	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)
	// format: $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
	params := fmt.Sprintf("m=%d,t=%d,p=%d", p.Memory, p.Time, p.Threads)
	encoded := fmt.Sprintf("$argon2id$v=19$%s$%s$%s", params, b64Salt, b64Hash)
	return encoded, nil
}

func generateSalt(n uint32) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}

// VerifyPassword verifies a plain-text password against a hashed password
func (as *AuthService) VerifyPassword(password, hashedPassword string) (bool, error) {
	parts, err := lib.DecodeArgon2Hash(hashedPassword)
	if err != nil {
		return false, err
	}

	// Hash the input password with the same parameters
	hash := argon2.IDKey([]byte(password), parts.Salt, parts.Time, parts.Memory, parts.Threads, parts.KeyLen)

	return lib.SecureCompare(hash, parts.Hash), nil
}

// GenerateAccessToken generates a JWT access token for the given profile
func (as *AuthService) GenerateAccessToken(profile *tables.Profile) (string, error) {
	return as.generateToken(profile, as.cfg.Auth.AccessTokenSecret, as.GetAccessTokenExpiration())
}

// GenerateRefreshToken generates a JWT refresh token for the given profile
func (as *AuthService) GenerateRefreshToken(profile *tables.Profile) (string, error) {
	return as.generateToken(profile, as.cfg.Auth.RefreshTokenSecret, as.GetRefreshTokenExpiration())
}

func (as *AuthService) generateToken(profile *tables.Profile, secret string, exp time.Time) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   profile.ID.String(),
		"email": profile.Email,
		"role":  profile.Role(),
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
		"jti":   uuid.New().String(),
	})
	return token.SignedString([]byte(secret))
}

// GetAccessTokenExpiration returns the expiration time for access tokens
func (as *AuthService) GetAccessTokenExpiration() time.Time {
	return time.Now().Add(as.cfg.Auth.AccessTokenExpiry)
}

// GetRefreshTokenExpiration returns the expiration time for refresh tokens
func (as *AuthService) GetRefreshTokenExpiration() time.Time {
	return time.Now().Add(as.cfg.Auth.RefreshTokenExpiry)
}

func (as *AuthService) RefreshAccessToken(refreshToken string) (*tables.AuthResponse, error) {
	claims, err := lib.ParseToken(refreshToken, as.cfg.Auth.RefreshTokenSecret)
	if err != nil {
		as.logger.Error("Failed to parse refresh token", gecho.Field("error", err))
		return nil, lib.ErrInvalidToken
	}

	if time.Now().After(claims.Exp) {
		as.logger.Warn("Refresh token has expired", gecho.Field("exp", claims.Exp))
		return nil, lib.ErrExpiredToken
	}

	isBlacklisted, err := as.cacheService.IsTokenBlacklisted(claims.Jti)
	if err != nil {
		as.logger.Error("Failed to check if token is blacklisted", gecho.Field("error", err), gecho.Field("jti", claims.Jti))
		return nil, err
	}

	if isBlacklisted {
		as.logger.Warn("Refresh token is blacklisted", gecho.Field("jti", claims.Jti))
		return nil, lib.ErrInvalidToken
	}

	profile, err := as.GetProfileByID(claims.Sub)
	if err != nil {
		as.logger.Error("Failed to get profile by ID during token refresh", gecho.Field("error", err), gecho.Field("user_id", claims.Sub))
		return nil, err
	}

	newAccessToken, err := as.GenerateAccessToken(profile)
	if err != nil {
		as.logger.Error("Failed to generate new access token during refresh", gecho.Field("error", err), gecho.Field("user_id", profile.ID))
		return nil, err
	}

	newRefreshToken, err := as.GenerateRefreshToken(profile)
	if err != nil {
		as.logger.Error("Failed to generate new refresh token during refresh", gecho.Field("error", err), gecho.Field("user_id", profile.ID))
		return nil, err
	}

	return &tables.AuthResponse{
		User:         profile,
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

func (as *AuthService) GetProfileByID(userID uuid.UUID) (*tables.Profile, error) {
	// Try cache first
	cached, err := as.cacheService.GetProfileFromCache(userID)
	if err != nil {
		as.logger.Warn("Failed to get profile from cache", gecho.Field("error", err), gecho.Field("user_id", userID))
	} else if cached != nil {
		return cached, nil
	}

	profile, err := database.Query[tables.Profile](as.db).Where("id", userID).First(context.Background())
	if err != nil {
		as.logger.Error("Failed to find profile by ID", gecho.Field("error", err), gecho.Field("user_id", userID))
		return nil, lib.MapPgError(err)
	}
	if profile == nil {
		return nil, lib.ErrNotFound
	}

	profile.PasswordHash = ""

	// Cache the profile asynchronously
	go func() {
		if err := as.cacheService.SetProfileInCache(profile); err != nil {
			as.logger.Warn("Failed to cache profile after DB fetch", gecho.Field("error", err), gecho.Field("user_id", userID))
		}
	}()

	return profile, nil
}

// ListProfiles returns all customer accounts for the admin back office
func (as *AuthService) ListProfiles(ctx context.Context, limit, offset int) ([]tables.Profile, int, error) {
	count, err := database.Query[tables.Profile](as.db).Count(ctx)
	if err != nil {
		return nil, 0, lib.MapPgError(err)
	}

	profiles, err := database.Query[tables.Profile](as.db).
		OrderBy("created_at", database.DESC).
		Limit(limit).
		Offset(offset).
		All(ctx)
	if err != nil {
		return nil, 0, lib.MapPgError(err)
	}

	for i := range profiles {
		profiles[i].PasswordHash = ""
	}

	return profiles, count, nil
}

func (as *AuthService) GetAccessTokenSecret() string {
	return as.cfg.Auth.AccessTokenSecret
}

func (as *AuthService) GetRefreshTokenSecret() string {
	return as.cfg.Auth.RefreshTokenSecret
}

func (as *AuthService) UpdateLastLogin(userID uuid.UUID) error {
	updates := map[string]any{
		"last_login": time.Now(),
	}
	_, err := database.Query[tables.Profile](as.db).Where("id", userID).Update(context.Background(), updates)
	if err != nil {
		return lib.MapPgError(err)
	}

	if cacheErr := as.cacheService.InvalidateProfileCache(userID); cacheErr != nil {
		as.logger.Warn("Failed to invalidate profile cache", gecho.Field("error", cacheErr), gecho.Field("user_id", userID))
	}

	return nil
}

// BlacklistToken revokes a token until its natural expiry
func (as *AuthService) BlacklistToken(jti uuid.UUID, exp time.Time) error {
	return as.cacheService.BlacklistToken(jti, exp)
}

// InvalidateProfileCache drops a cached profile so the next read sees
// fresh purchase stats
func (as *AuthService) InvalidateProfileCache(userID uuid.UUID) error {
	return as.cacheService.InvalidateProfileCache(userID)
}

// GetDB returns the database instance (helper method for accessing db)
func (as *AuthService) GetDB() *database.DB {
	return as.db
}
