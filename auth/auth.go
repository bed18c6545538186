package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// Identity is the authenticated caller attached to each request
type Identity struct {
	UserID   int
	Username string
	Role     string
}

type AuthModule struct {
	db        *pgxpool.Pool
	redis     *redis.Client
	JWTSecret string
}

func NewAuthModule(db *pgxpool.Pool, redis *redis.Client, JWTSecret string) *AuthModule {
	return &AuthModule{
		db:        db,
		redis:     redis,
		JWTSecret: JWTSecret,
	}
}

func generateSecureToken(length int) (string, error) {
	randomBytes := make([]byte, length)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", err
	}

	return base64.URLEncoding.EncodeToString(randomBytes), nil
}

func (a *AuthModule) createUser(ctx context.Context, username, password string) (Identity, error) {
	var exists bool
	err := a.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)", username).Scan(&exists)
	if err != nil {
		return Identity{}, err
	}
	if exists {
		return Identity{}, errors.New("username already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Identity{}, err
	}

	// Self-registered accounts always start as plain users
	id := Identity{Username: username, Role: "user"}
	err = a.db.QueryRow(ctx,
		"INSERT INTO users (username, password, role) VALUES ($1, $2, $3) RETURNING id",
		username, string(hashedPassword), id.Role,
	).Scan(&id.UserID)
	if err != nil {
		return Identity{}, err
	}

	return id, nil
}

func (a *AuthModule) generateJWT(id Identity) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  id.UserID,
		"username": id.Username,
		"role":     id.Role,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(a.JWTSecret))
}

func (a *AuthModule) authenticateUser(ctx context.Context, username string, password string) (Identity, error) {
	var id Identity
	var passwordHash string
	err := a.db.QueryRow(ctx, "SELECT id, password, role FROM users WHERE username = $1", username).
		Scan(&id.UserID, &passwordHash, &id.Role)
	if err != nil {
		return Identity{}, errors.New("invalid credentials")
	}
	id.Username = username

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)); err != nil {
		return Identity{}, errors.New("invalid credentials")
	}

	return id, nil
}

func (a *AuthModule) RegisterWithJWT(ctx context.Context, username string, password string) (string, error) {
	id, err := a.createUser(ctx, username, password)
	if err != nil {
		return "", err
	}

	return a.generateJWT(id)
}

func (a *AuthModule) LoginWithJWT(ctx context.Context, username, password string) (string, error) {
	id, err := a.authenticateUser(ctx, username, password)
	if err != nil {
		return "", err
	}

	return a.generateJWT(id)
}

func (a *AuthModule) LoginWithSession(ctx context.Context, username, password string) (Identity, string, error) {
	id, err := a.authenticateUser(ctx, username, password)
	if err != nil {
		return Identity{}, "", err
	}

	token, err := generateSecureToken(32)
	if err != nil {
		return Identity{}, "", err
	}

	record, err := json.Marshal(id)
	if err != nil {
		return Identity{}, "", err
	}
	if err := a.redis.Set(ctx, "session:"+token, record, 24*time.Hour).Err(); err != nil {
		return Identity{}, "", err
	}

	return id, token, nil
}

func (a *AuthModule) ValidateTokenJWT(ctx context.Context, token string) (Identity, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(a.JWTSecret), nil
	})
	if err != nil {
		return Identity{}, err
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return Identity{}, errors.New("invalid token")
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return Identity{}, errors.New("invalid user_id in token")
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	return Identity{UserID: int(userIDFloat), Username: username, Role: role}, nil
}

func (a *AuthModule) ValidateTokenSession(ctx context.Context, token string) (Identity, error) {
	key := "session:" + token
	value, err := a.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return Identity{}, errors.New("invalid token")
	} else if err != nil {
		return Identity{}, err
	}

	var id Identity
	if err := json.Unmarshal([]byte(value), &id); err != nil {
		return Identity{}, errors.New("invalid session record")
	}

	// Sliding expiration, refreshed only once the session is older than
	// four hours to keep write traffic down
	ttl, err := a.redis.TTL(ctx, key).Result()
	if err != nil && err != redis.Nil {
		return Identity{}, err
	}
	if ttl < 20*time.Hour {
		if err := a.redis.Expire(ctx, key, 24*time.Hour).Err(); err != nil {
			return Identity{}, err
		}
	}
	return id, nil
}

func (a *AuthModule) LogoutSession(ctx context.Context, token string) error {
	key := "session:" + token
	return a.redis.Del(ctx, key).Err()
}

// ChangePassword changes the user's password after verifying the old password
func (a *AuthModule) ChangePassword(ctx context.Context, userID int, oldPassword, newPassword string) error {
	var passwordHash string
	err := a.db.QueryRow(ctx, "SELECT password FROM users WHERE id = $1", userID).Scan(&passwordHash)
	if err != nil {
		return errors.New("user not found")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(oldPassword)); err != nil {
		return errors.New("invalid old password")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = a.db.Exec(ctx, "UPDATE users SET password = $1 WHERE id = $2", string(hashedPassword), userID)
	return err
}
