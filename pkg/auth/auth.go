package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/G00gleKid/demo-code/pkg/database"
	"github.com/G00gleKid/demo-code/pkg/models"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// Sentinel errors returned by the authenticator
var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidToken       = errors.New("invalid token")
)

var jwtAlgorithm = jwt.SigningMethodHS256

// Claims represents the JWT claims
type Claims struct {
	UserID uint   `json:"uid"`
	TeamID uint   `json:"tid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// UserStore is what login and seeding need from the database
type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	CountUsers(ctx context.Context) (int64, error)
	CreateTeam(ctx context.Context, team *models.Team) error
	CreateUser(ctx context.Context, user *models.User) error
}

// Authenticator issues and checks bearer tokens
type Authenticator struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// New creates an authenticator signing with secret
func New(secret string, ttl time.Duration) *Authenticator {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Authenticator{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with its hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CreateToken creates a new JWT token for a user
func (a *Authenticator) CreateToken(user *models.User) (string, error) {
	now := a.now()
	claims := &Claims{
		UserID: user.ID,
		TeamID: user.TeamID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwtAlgorithm, claims)
	return token.SignedString(a.secret)
}

// VerifyToken verifies a JWT token
func (a *Authenticator) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwtAlgorithm {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Login checks credentials and returns the user with a fresh token
func (a *Authenticator) Login(ctx context.Context, store UserStore, email, password string) (*models.User, string, error) {
	user, err := store.FindUserByEmail(ctx, email)
	if errors.Is(err, database.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if !user.IsActive || !CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := a.CreateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// EnsureDefaultUser creates a team and a team lead when no user exists yet.
// It reports whether a user was created.
func EnsureDefaultUser(ctx context.Context, store UserStore, email, password, teamName string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}
	count, err := store.CountUsers(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if teamName == "" {
		teamName = "Default team"
	}

	team := &models.Team{Name: teamName}
	if err := store.CreateTeam(ctx, team); err != nil {
		return false, err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}
	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     "Team Lead",
		TeamID:       team.ID,
		IsActive:     true,
	}
	if err := store.CreateUser(ctx, user); err != nil {
		return false, err
	}
	return true, nil
}
