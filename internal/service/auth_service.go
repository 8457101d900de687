package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"waveo-api/internal/model"
	"waveo-api/pkg/apierror"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// AccountStore is the slice of the persistence layer the auth service needs.
type AccountStore interface {
	FindByID(ctx context.Context, id string) (model.Account, error)
	FindByEmail(ctx context.Context, email string) (model.Account, error)
	FindLatest(ctx context.Context) (model.Account, error)
	Create(ctx context.Context, a model.Account) error
	Update(ctx context.Context, a model.Account) error
}

type AuthService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	accounts      AccountStore
	now           func() time.Time
}

func NewAuthService(accessSecret string, refreshSecret string, accessTTL time.Duration, refreshTTL time.Duration, accounts AccountStore) (*AuthService, error) {
	if strings.TrimSpace(accessSecret) == "" || strings.TrimSpace(refreshSecret) == "" {
		return nil, errors.New("both token secrets are required")
	}
	if accessSecret == refreshSecret {
		return nil, errors.New("access and refresh token secrets must differ")
	}

	return &AuthService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		accounts:      accounts,
		now:           time.Now,
	}, nil
}

func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (model.AccountView, error) {
	req.Prenom = strings.TrimSpace(req.Prenom)
	req.Nom = strings.TrimSpace(req.Nom)
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.SurfLevel = strings.ToLower(strings.TrimSpace(req.SurfLevel))

	if req.Prenom == "" || req.Nom == "" || req.Username == "" || req.Email == "" || req.Password == "" {
		return model.AccountView{}, apierror.New("BAD_REQUEST", "missing required fields", "", http.StatusBadRequest)
	}
	if req.SurfLevel != "" && !model.ValidSurfLevel(req.SurfLevel) {
		return model.AccountView{}, apierror.New("BAD_REQUEST", "invalid surf level", req.SurfLevel, http.StatusBadRequest)
	}
	if req.SurfLevel == "" {
		req.SurfLevel = "beginner"
	}

	hash, err := HashSecret(req.Password)
	if err != nil {
		return model.AccountView{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	account := model.Account{
		ID:           uuid.NewString(),
		Prenom:       req.Prenom,
		Nom:          req.Nom,
		Username:     req.Username,
		Email:        req.Email,
		Location:     strings.TrimSpace(req.Location),
		SurfLevel:    req.SurfLevel,
		PasswordHash: hash,
		Role:         model.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The store's unique index on lower(email) is what actually rejects a
	// duplicate; racing signups cannot both pass a pre-check here.
	if err := s.accounts.Create(ctx, account); err != nil {
		return model.AccountView{}, err
	}

	return account.View(), nil
}

// Login verifies the credentials and mints the access/refresh pair. It
// performs no persistence writes.
func (s *AuthService) Login(ctx context.Context, email string, password string) (model.TokenPair, error) {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return model.TokenPair{}, err
	}

	if !CheckSecret(password, account.PasswordHash) {
		return model.TokenPair{}, apierror.New("UNAUTHORIZED", "invalid credentials", "", http.StatusUnauthorized)
	}

	return s.issueTokenPair(account)
}

// Refresh exchanges a valid refresh token for a fresh pair. The account is
// re-fetched so role or profile changes since issuance propagate into the new
// access token. The refresh token is rotated on every call.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	claims, err := s.verifyToken(refreshToken, s.refreshSecret, tokenTypeRefresh)
	if err != nil {
		return model.TokenPair{}, err
	}

	account, err := s.accounts.FindByID(ctx, claims.AccountID)
	if err != nil {
		return model.TokenPair{}, err
	}

	return s.issueTokenPair(account)
}

func (s *AuthService) ChangePassword(ctx context.Context, accountID string, currentPassword string, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return apierror.New("BAD_REQUEST", "new password is required", "", http.StatusBadRequest)
	}

	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return err
	}

	if !CheckSecret(currentPassword, account.PasswordHash) {
		return apierror.New("UNAUTHORIZED", "invalid credentials", "", http.StatusUnauthorized)
	}

	hash, err := HashSecret(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	account.PasswordHash = hash
	account.UpdatedAt = s.now().UTC()
	return s.accounts.Update(ctx, account)
}

func (s *AuthService) GetAccount(ctx context.Context, accountID string) (model.AccountView, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return model.AccountView{}, err
	}
	return account.View(), nil
}

func (s *AuthService) GetLatestAccount(ctx context.Context) (model.AccountView, error) {
	account, err := s.accounts.FindLatest(ctx)
	if err != nil {
		return model.AccountView{}, err
	}
	return account.View(), nil
}

// VerifyAccessToken validates signature, expiry and token type against the
// access key.
func (s *AuthService) VerifyAccessToken(tokenString string) (*model.AuthClaims, error) {
	return s.verifyToken(tokenString, s.accessSecret, tokenTypeAccess)
}

func (s *AuthService) RefreshTTL() time.Duration {
	return s.refreshTTL
}

func (s *AuthService) issueTokenPair(account model.Account) (model.TokenPair, error) {
	now := s.now().UTC()

	// Access tokens stay minimal: id, email, role. Profile fields are looked
	// up from the store on each request so they can never go stale inside a
	// token.
	accessToken, err := s.signToken(jwt.MapClaims{
		"sub":   account.ID,
		"email": account.Email,
		"role":  account.Role,
		"typ":   tokenTypeAccess,
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(s.accessTTL).Unix(),
	}, s.accessSecret)
	if err != nil {
		return model.TokenPair{}, err
	}

	refreshToken, err := s.signToken(jwt.MapClaims{
		"sub": account.ID,
		"typ": tokenTypeRefresh,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(s.refreshTTL).Unix(),
	}, s.refreshSecret)
	if err != nil {
		return model.TokenPair{}, err
	}

	return model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
		User:         account.View(),
	}, nil
}

func (s *AuthService) signToken(claims jwt.MapClaims, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (s *AuthService) verifyToken(tokenString string, secret []byte, expectedType string) (*model.AuthClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return secret, nil
	}, jwt.WithTimeFunc(s.now))

	// Expired and malformed both reject; the split only matters for logs.
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, apierror.New("FORBIDDEN", "token expired", "", http.StatusForbidden)
	}
	if err != nil || !parsed.Valid {
		return nil, apierror.New("FORBIDDEN", "token invalid", "", http.StatusForbidden)
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apierror.New("FORBIDDEN", "token invalid", "", http.StatusForbidden)
	}

	typ, _ := claimsMap["typ"].(string)
	if typ != expectedType {
		return nil, apierror.New("FORBIDDEN", "wrong token type", "", http.StatusForbidden)
	}

	claims := &model.AuthClaims{Type: typ}
	claims.AccountID, _ = claimsMap["sub"].(string)
	claims.Email, _ = claimsMap["email"].(string)
	claims.Role, _ = claimsMap["role"].(string)
	claims.TokenID, _ = claimsMap["jti"].(string)

	if claims.AccountID == "" {
		return nil, apierror.New("FORBIDDEN", "token missing subject", "", http.StatusForbidden)
	}

	return claims, nil
}
