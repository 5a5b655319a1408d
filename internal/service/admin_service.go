package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"royalty-core/internal/model"
	"royalty-core/pkg/errno"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const sessionKeyPrefix = "royalty:session:"

// AdminService authenticates back-office administrators. Sessions are
// opaque tokens in Redis; everything behind /api/v1 requires one.
type AdminService struct {
	db  *gorm.DB
	rdb *redis.Client
	ttl time.Duration
}

func NewAdminService(db *gorm.DB, rdb *redis.Client, ttl time.Duration) *AdminService {
	return &AdminService{db: db, rdb: rdb, ttl: ttl}
}

// CreateAdministrator registers a back-office account with a bcrypt hash.
// Exposed through the CLI only; there is no administrator CRUD API.
func (s *AdminService) CreateAdministrator(ctx context.Context, name, email, password, role string) (*model.Administrator, error) {
	if name == "" || email == "" || password == "" {
		return nil, errno.ErrValidation
	}
	if role == "" {
		role = "admin"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := model.Administrator{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.db.WithContext(ctx).Create(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// Login checks credentials and mints a session token.
func (s *AdminService) Login(ctx context.Context, email, password string) (string, *model.Administrator, error) {
	var admin model.Administrator
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, errno.ErrAdminNotFound
	}
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return "", nil, errno.ErrPasswordIncorrect
	}

	token := uuid.New().String()
	if err := s.rdb.Set(ctx, sessionKeyPrefix+token, admin.ID, s.ttl).Err(); err != nil {
		return "", nil, err
	}
	return token, &admin, nil
}

// Verify resolves a session token to an administrator id.
func (s *AdminService) Verify(ctx context.Context, token string) (uint64, error) {
	if token == "" {
		return 0, errno.ErrTokenInvalid
	}
	val, err := s.rdb.Get(ctx, sessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return 0, errno.ErrTokenInvalid
	}
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil || id == 0 {
		return 0, errno.ErrTokenInvalid
	}
	return id, nil
}

// Logout discards a session token.
func (s *AdminService) Logout(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+token).Err()
}
