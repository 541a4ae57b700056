package user

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"smartpark/models"
	"smartpark/utils"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	googlePublicKeys  map[string]*rsa.PublicKey
	googleKeysMutex   sync.RWMutex
	googleKeysExpires time.Time
)

type googleJWK struct {
	Kid string `json:"kid"`
	Alg string `json:"alg"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type googleJWKResponse struct {
	Keys []googleJWK `json:"keys"`
}

// getGooglePublicKeys fetches and caches Google's public signing keys.
func getGooglePublicKeys() (map[string]*rsa.PublicKey, error) {
	googleKeysMutex.RLock()
	if time.Now().Before(googleKeysExpires) && googlePublicKeys != nil {
		defer googleKeysMutex.RUnlock()
		return googlePublicKeys, nil
	}
	googleKeysMutex.RUnlock()

	resp, err := http.Get("https://www.googleapis.com/oauth2/v3/certs")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch google keys: %w", err)
	}
	defer resp.Body.Close()

	var jwks googleJWKResponse
	if err := json.NewDecoder(resp.Body).Decode(&jwks); err != nil {
		return nil, fmt.Errorf("failed to decode google keys: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey)
	for _, k := range jwks.Keys {
		if k.Use != "sig" || k.Alg != "RS256" {
			continue
		}
		pub, err := jwkToRSAPublicKey(k)
		if err != nil {
			continue
		}
		keys[k.Kid] = pub
	}
	if len(keys) == 0 {
		return nil, errors.New("no usable google signing keys")
	}

	googleKeysMutex.Lock()
	googlePublicKeys = keys
	googleKeysExpires = time.Now().Add(time.Hour)
	googleKeysMutex.Unlock()

	return keys, nil
}

func jwkToRSAPublicKey(k googleJWK) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, err
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, err
	}

	e := 0
	for _, b := range eBytes {
		e = e<<8 | int(b)
	}
	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: e,
	}, nil
}

// verifyGoogleIDToken validates a Google ID token signature and standard
// claims, returning the holder's email and display name.
func verifyGoogleIDToken(idToken string) (email, name string, err error) {
	token, err := jwt.Parse(idToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token missing kid header")
		}
		keys, err := getGooglePublicKeys()
		if err != nil {
			return nil, err
		}
		key, ok := keys[kid]
		if !ok {
			return nil, fmt.Errorf("unknown google key id %s", kid)
		}
		return key, nil
	})
	if err != nil {
		return "", "", fmt.Errorf("invalid google id token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid google id token claims")
	}

	iss, _ := claims["iss"].(string)
	if iss != "https://accounts.google.com" && iss != "accounts.google.com" {
		return "", "", fmt.Errorf("unexpected token issuer %s", iss)
	}

	email, _ = claims["email"].(string)
	if email == "" {
		return "", "", errors.New("google id token carries no email")
	}
	name, _ = claims["name"].(string)
	return strings.ToLower(email), name, nil
}

// LoginWithGoogle signs a user in with a Google ID token, creating the
// account on first sign-in. Google-created accounts have no local password.
func (s *DefaultUserService) LoginWithGoogle(ctx context.Context, idToken string) (string, *models.User, error) {
	email, name, err := verifyGoogleIDToken(idToken)
	if err != nil {
		return "", nil, err
	}

	usr, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to look up user %s: %w", email, err)
	}
	if usr == nil {
		if name == "" {
			name = email
		}
		usr = &models.User{
			ID:        uuid.New().String(),
			Name:      name,
			Email:     email,
			Role:      models.RoleUser,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := s.Repo.Create(ctx, usr); err != nil {
			return "", nil, fmt.Errorf("failed to create user for %s: %w", email, err)
		}
	}

	token, err := utils.GenerateToken(usr.ID, usr.Email, usr.Role, utils.TokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	tokenHash := utils.HashToken(token)
	if err := s.Repo.UpdateTokenHash(ctx, usr.ID, tokenHash); err != nil {
		return "", nil, fmt.Errorf("failed to store session: %w", err)
	}
	cacheKey := utils.AuthCachePrefix + usr.ID
	if err := utils.GetAuthCacheClient().Set(ctx, cacheKey, tokenHash, utils.AuthCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("LoginWithGoogle: failed to prime auth cache", zap.Error(err))
	}
	return token, usr, nil
}
