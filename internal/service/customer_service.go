package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/shanture-next/internal/cache"
	"github.com/shanture-next/internal/config"
	"github.com/shanture-next/internal/logger"
	"github.com/shanture-next/internal/models"
	"github.com/shanture-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultCustomerJWTExpireHours = 720

// CustomerService 顾客注册、登录与资料服务
type CustomerService struct {
	db           *gorm.DB
	cfg          *config.Config
	customerRepo repository.CustomerRepository
}

// NewCustomerService 创建顾客服务
func NewCustomerService(db *gorm.DB, cfg *config.Config, customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{
		db:           db,
		cfg:          cfg,
		customerRepo: customerRepo,
	}
}

// CustomerJWTClaims 顾客 JWT 声明
type CustomerJWTClaims struct {
	CustomerID string `json:"id"`
	Username   string `json:"username"`
	jwt.RegisteredClaims
}

// RegisterInput 注册输入
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
	Phone    string
	Address  string
	Image    string
	Region   string
}

// UpdateProfileInput 资料更新输入，nil 表示不修改
type UpdateProfileInput struct {
	Username *string
	Email    *string
	FullName *string
	Phone    *string
	Address  *string
	Image    *string
	Region   *string
}

func (in UpdateProfileInput) empty() bool {
	return in.Username == nil && in.Email == nil && in.FullName == nil &&
		in.Phone == nil && in.Address == nil && in.Image == nil && in.Region == nil
}

// Register 注册顾客
func (s *CustomerService) Register(ctx context.Context, input RegisterInput) (*models.Customer, error) {
	username := strings.TrimSpace(input.Username)
	fullName := strings.TrimSpace(input.FullName)
	email, err := normalizeEmail(input.Email)
	if err != nil || username == "" || fullName == "" || input.Password == "" {
		return nil, ErrInvalidCustomerInput
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	customer := &models.Customer{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Phone:        strings.TrimSpace(input.Phone),
		Address:      strings.TrimSpace(input.Address),
		Image:        strings.TrimSpace(input.Image),
		Region:       strings.TrimSpace(input.Region),
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.customerRepo.WithTx(tx)
		if err := ensureUniqueIdentity(ctx, repo, "", username, email); err != nil {
			return err
		}
		return repo.Create(ctx, customer)
	})
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Infow("customer_registered", "customer_id", customer.ID, "username", customer.Username)
	return customer, nil
}

// Login 用户名密码登录
func (s *CustomerService) Login(ctx context.Context, username, password string) (*models.Customer, string, time.Time, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", time.Time{}, ErrInvalidCustomerInput
	}
	customer, err := s.customerRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if customer == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)); err != nil {
		logger.FromContext(ctx).Infow("customer_login_rejected", "customer_id", customer.ID)
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(customer)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if err := cache.SetCustomerAuthState(ctx, cache.BuildCustomerAuthState(customer)); err != nil {
		logger.FromContext(ctx).Warnw("customer_auth_state_cache_set_failed", "customer_id", customer.ID, "error", err)
	}
	logger.FromContext(ctx).Infow("customer_logged_in", "customer_id", customer.ID)
	return customer, token, expiresAt, nil
}

// GetProfile 获取顾客资料
func (s *CustomerService) GetProfile(ctx context.Context, customerID string) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}

// UpdateProfile 更新资料，只允许修改自己的资料
// 用户名或邮箱变化时返回新 token
func (s *CustomerService) UpdateProfile(ctx context.Context, callerID, targetID string, input UpdateProfileInput) (*models.Customer, string, error) {
	if strings.TrimSpace(targetID) == "" || callerID != targetID {
		return nil, "", ErrCustomerNotFound
	}
	if input.empty() {
		return nil, "", ErrNoProfileFields
	}

	var customer *models.Customer
	identityChanged := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.customerRepo.WithTx(tx)
		current, err := repo.GetByID(ctx, targetID)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrCustomerNotFound
		}

		username := current.Username
		if input.Username != nil {
			username = strings.TrimSpace(*input.Username)
			if username == "" {
				return ErrInvalidCustomerInput
			}
		}
		email := current.Email
		if input.Email != nil {
			normalized, err := normalizeEmail(*input.Email)
			if err != nil {
				return ErrInvalidCustomerInput
			}
			email = normalized
		}
		identityChanged = username != current.Username || email != current.Email
		if identityChanged {
			if err := ensureUniqueIdentity(ctx, repo, current.ID, username, email); err != nil {
				return err
			}
		}

		current.Username = username
		current.Email = email
		applyOptional(&current.FullName, input.FullName)
		applyOptional(&current.Phone, input.Phone)
		applyOptional(&current.Address, input.Address)
		applyOptional(&current.Image, input.Image)
		applyOptional(&current.Region, input.Region)
		current.UpdatedAt = time.Now()
		if err := repo.Update(ctx, current); err != nil {
			return err
		}
		customer = current
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	if err := cache.DelCustomerAuthState(ctx, customer.ID); err != nil {
		logger.FromContext(ctx).Warnw("customer_auth_state_cache_del_failed", "customer_id", customer.ID, "error", err)
	}
	logger.FromContext(ctx).Infow("customer_profile_updated", "customer_id", customer.ID, "identity_changed", identityChanged)

	if !identityChanged {
		return customer, "", nil
	}
	token, _, err := s.GenerateJWT(customer)
	if err != nil {
		return nil, "", err
	}
	return customer, token, nil
}

// GenerateJWT 生成顾客 JWT Token
func (s *CustomerService) GenerateJWT(customer *models.Customer) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(s.expireHours()) * time.Hour)
	claims := CustomerJWTClaims{
		CustomerID: customer.ID,
		Username:   customer.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   customer.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.UserJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT 解析顾客 JWT Token
func (s *CustomerService) ParseJWT(tokenString string) (*CustomerJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &CustomerJWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.UserJWT.SecretKey), nil
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*CustomerJWTClaims)
	if !ok || !token.Valid || strings.TrimSpace(claims.CustomerID) == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Authenticate 校验 token 并确认顾客仍然存在
func (s *CustomerService) Authenticate(ctx context.Context, tokenString string) (*CustomerJWTClaims, error) {
	claims, err := s.ParseJWT(tokenString)
	if err != nil {
		return nil, err
	}

	if state, hit, err := cache.GetCustomerAuthState(ctx, claims.CustomerID); err != nil {
		logger.FromContext(ctx).Warnw("customer_auth_state_cache_get_failed", "customer_id", claims.CustomerID, "error", err)
	} else if hit && state != nil {
		return claims, nil
	}

	customer, err := s.customerRepo.GetByID(ctx, claims.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	if err := cache.SetCustomerAuthState(ctx, cache.BuildCustomerAuthState(customer)); err != nil {
		logger.FromContext(ctx).Warnw("customer_auth_state_cache_set_failed", "customer_id", customer.ID, "error", err)
	}
	return claims, nil
}

func (s *CustomerService) expireHours() int {
	if s.cfg == nil || s.cfg.UserJWT.ExpireHours <= 0 {
		return defaultCustomerJWTExpireHours
	}
	return s.cfg.UserJWT.ExpireHours
}

func ensureUniqueIdentity(ctx context.Context, repo repository.CustomerRepository, selfID, username, email string) error {
	byUsername, err := repo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if byUsername != nil && byUsername.ID != selfID {
		return ErrUsernameExists
	}
	byEmail, err := repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if byEmail != nil && byEmail.ID != selfID {
		return ErrEmailExists
	}
	return nil
}

func normalizeEmail(raw string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return "", ErrInvalidCustomerInput
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", ErrInvalidCustomerInput
	}
	return trimmed, nil
}

func applyOptional(target *string, value *string) {
	if value != nil {
		*target = strings.TrimSpace(*value)
	}
}
