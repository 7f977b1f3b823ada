package user

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/muhammadheryan/car-traders/application/ownership"
	"github.com/muhammadheryan/car-traders/cmd/config"
	"github.com/muhammadheryan/car-traders/constant"
	"github.com/muhammadheryan/car-traders/model"
	redisrepo "github.com/muhammadheryan/car-traders/repository/redis"
	traderepo "github.com/muhammadheryan/car-traders/repository/trade"
	txrepo "github.com/muhammadheryan/car-traders/repository/tx"
	userrepo "github.com/muhammadheryan/car-traders/repository/user"
	"github.com/muhammadheryan/car-traders/thirdparty/rabbitmq"
	"github.com/muhammadheryan/car-traders/utils/errors"
	"github.com/muhammadheryan/car-traders/utils/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const mysqlErrDuplicateEntry = 1062

type UserApp interface {
	Signup(ctx context.Context, req *model.SignupRequest) (*model.SessionResponse, error)
	Authenticate(ctx context.Context, req *model.LoginRequest) (*model.SessionResponse, error)
	ResolveSession(ctx context.Context, token string) (*model.Identity, error)
	EndSession(ctx context.Context, token string) error
	GetProfile(ctx context.Context, id uint64) (*model.Profile, error)
	GetForEdit(ctx context.Context, identity *model.Identity, id uint64) (*model.UserEntity, error)
	UpdateProfile(ctx context.Context, identity *model.Identity, id uint64, req *model.UserEditRequest) (*model.UserEntity, error)
	DeleteAccount(ctx context.Context, identity *model.Identity, id uint64, token string) (*model.UserEntity, error)
}

type UserAppImpl struct {
	config    *config.Config
	userRepo  userrepo.UserRepository
	tradeRepo traderepo.TradeRepository
	txRepo    txrepo.TxRepository
	redisRepo redisrepo.Repository
	publisher *rabbitmq.Publisher

	dummyOnce sync.Once
	dummyHash []byte
}

func NewUserApp(config *config.Config, userRepo userrepo.UserRepository, tradeRepo traderepo.TradeRepository, txRepo txrepo.TxRepository, redisRepo redisrepo.Repository, publisher *rabbitmq.Publisher) UserApp {
	return &UserAppImpl{
		config:    config,
		userRepo:  userRepo,
		tradeRepo: tradeRepo,
		txRepo:    txRepo,
		redisRepo: redisRepo,
		publisher: publisher,
	}
}

func (s *UserAppImpl) Signup(ctx context.Context, req *model.SignupRequest) (*model.SessionResponse, error) {
	city, state, ok := model.SplitLocation(req.Location)
	if !ok {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	if err := s.checkUnique(ctx, "Signup", &model.UserFilter{Username: req.Username}, &model.UserFilter{Email: req.Email}, &model.UserFilter{Phone: req.Phone}); err != nil {
		return nil, err
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost())
	if err != nil {
		logger.Error("[Signup] err bcrypt.GenerateFromPassword", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	userEntity := &model.UserEntity{
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		City:         city,
		State:        state,
		CoverPic:     constant.DefaultCoverPic,
		ProfilePic:   constant.DefaultProfilePic,
	}

	userEntity, err = s.userRepo.Create(ctx, userEntity)
	if err != nil {
		if errType, dup := duplicateField(err); dup {
			return nil, errors.SetCustomError(errType)
		}
		logger.Error("[Signup] err userRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	token, err := s.startSession(ctx, userEntity.ID)
	if err != nil {
		logger.Error("[Signup] err startSession", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	logger.Info("[Signup] user created", zap.Uint64("user_id", userEntity.ID))
	return &model.SessionResponse{Token: token, User: userEntity}, nil
}

func (s *UserAppImpl) Authenticate(ctx context.Context, req *model.LoginRequest) (*model.SessionResponse, error) {
	user, err := s.userRepo.Get(ctx, &model.UserFilter{Username: req.Username})
	if err != nil {
		logger.Error("[Authenticate] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if user == nil {
		// Spend the same bcrypt work as a real comparison.
		_ = bcrypt.CompareHashAndPassword(s.dummyPasswordHash(), []byte(req.Password))
		return nil, errors.SetCustomError(constant.ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.SetCustomError(constant.ErrInvalidCredentials)
	}

	token, err := s.startSession(ctx, user.ID)
	if err != nil {
		logger.Error("[Authenticate] err startSession", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.SessionResponse{Token: token, User: user}, nil
}

func (s *UserAppImpl) ResolveSession(ctx context.Context, token string) (*model.Identity, error) {
	userID, jti, err := s.parseToken(token)
	if err != nil {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}

	// The Redis entry is the source of truth; a signed token whose session
	// was ended is rejected.
	sessionUserID, err := s.redisRepo.GetSession(ctx, jti)
	if err != nil || sessionUserID != userID {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}

	user, err := s.userRepo.Get(ctx, &model.UserFilter{ID: userID})
	if err != nil {
		logger.Error("[ResolveSession] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}

	return user.Identity(), nil
}

func (s *UserAppImpl) EndSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	_, jti, err := s.parseToken(token)
	if err != nil {
		return nil
	}
	if err := s.redisRepo.DeleteSession(ctx, jti); err != nil {
		logger.Error("[EndSession] err redisRepo.DeleteSession", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *UserAppImpl) GetProfile(ctx context.Context, id uint64) (*model.Profile, error) {
	user, err := s.getUser(ctx, "GetProfile", id)
	if err != nil {
		return nil, err
	}

	trades, err := s.tradeRepo.ListByUser(ctx, user.ID)
	if err != nil {
		logger.Error("[GetProfile] err tradeRepo.ListByUser", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.Profile{User: user, Trades: trades}, nil
}

func (s *UserAppImpl) GetForEdit(ctx context.Context, identity *model.Identity, id uint64) (*model.UserEntity, error) {
	user, err := s.getUser(ctx, "GetForEdit", id)
	if err != nil {
		return nil, err
	}
	if err := ownership.Authorize(identity, user.ID, ownership.View); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserAppImpl) UpdateProfile(ctx context.Context, identity *model.Identity, id uint64, req *model.UserEditRequest) (*model.UserEntity, error) {
	user, err := s.GetForEdit(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	city, state, ok := model.SplitLocation(req.Location)
	if !ok {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	if err := s.checkUnique(ctx, "UpdateProfile", &model.UserFilter{Email: req.Email, ExcludeID: user.ID}, &model.UserFilter{Phone: req.Phone, ExcludeID: user.ID}); err != nil {
		return nil, err
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Email = req.Email
	user.Phone = req.Phone
	user.City = city
	user.State = state
	user.CoverPic = orDefault(req.CoverPic, constant.DefaultCoverPic)
	user.ProfilePic = orDefault(req.ProfilePic, constant.DefaultProfilePic)

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errType, dup := duplicateField(err); dup {
			return nil, errors.SetCustomError(errType)
		}
		logger.Error("[UpdateProfile] err userRepo.Update", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return user, nil
}

func (s *UserAppImpl) DeleteAccount(ctx context.Context, identity *model.Identity, id uint64, token string) (*model.UserEntity, error) {
	user, err := s.getUser(ctx, "DeleteAccount", id)
	if err != nil {
		return nil, err
	}
	if err := ownership.Authorize(identity, user.ID, ownership.Action); err != nil {
		return nil, err
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[DeleteAccount] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	deleted, err := s.tradeRepo.DeleteByUserTx(ctx, tx, user.ID)
	if err != nil {
		logger.Error("[DeleteAccount] delete trades", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.userRepo.DeleteTx(ctx, tx, user.ID); err != nil {
		logger.Error("[DeleteAccount] delete user", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[DeleteAccount] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	// The account is gone either way; a stale session can no longer resolve.
	if err := s.EndSession(ctx, token); err != nil {
		logger.Warn("[DeleteAccount] end session", zap.Uint64("user_id", user.ID))
	}

	if err := s.publisher.PublishTradeEvent(ctx, model.TradeEvent{
		Event:      constant.EventUserDeleted,
		UserID:     user.ID,
		OccurredAt: time.Now().UTC(),
	}); err != nil {
		logger.Error("[DeleteAccount] publish user deleted", zap.String("error", err.Error()))
	}

	logger.Info("[DeleteAccount] user deleted", zap.Uint64("user_id", user.ID), zap.Int64("trades_deleted", deleted))
	return user, nil
}

func (s *UserAppImpl) getUser(ctx context.Context, op string, id uint64) (*model.UserEntity, error) {
	user, err := s.userRepo.Get(ctx, &model.UserFilter{ID: id})
	if err != nil {
		logger.Error("["+op+"] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	return user, nil
}

// checkUnique probes each filter in order and reports the first collision.
func (s *UserAppImpl) checkUnique(ctx context.Context, op string, filters ...*model.UserFilter) error {
	for _, filter := range filters {
		existing, err := s.userRepo.Get(ctx, filter)
		if err != nil {
			logger.Error("["+op+"] err userRepo.Get", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
		if existing == nil {
			continue
		}
		switch {
		case filter.Username != "":
			return errors.SetCustomError(constant.ErrUsernameExists)
		case filter.Email != "":
			return errors.SetCustomError(constant.ErrEmailExists)
		default:
			return errors.SetCustomError(constant.ErrPhoneExists)
		}
	}
	return nil
}

func (s *UserAppImpl) startSession(ctx context.Context, userID uint64) (string, error) {
	token, jti, err := s.generateJWT(userID)
	if err != nil {
		return "", err
	}
	if err := s.redisRepo.SetSession(ctx, jti, userID, s.config.Auth.SessionExpTime); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// generateJWT creates a session token for the user
func (s *UserAppImpl) generateJWT(userID uint64) (string, string, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate session id: %w", err)
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(userID, 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Auth.SessionExpTime)),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        newUUID.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Auth.JWTSecret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, claims.ID, nil
}

func (s *UserAppImpl) parseToken(tokenString string) (uint64, string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(s.config.Auth.JWTSecret), nil
	})
	if err != nil {
		return 0, "", fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return 0, "", fmt.Errorf("invalid claims")
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid user id in token")
	}
	if claims.ID == "" {
		return 0, "", fmt.Errorf("token missing jti")
	}
	return userID, claims.ID, nil
}

func (s *UserAppImpl) bcryptCost() int {
	cost := s.config.Auth.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return config.DefaultBcryptCost
	}
	if s.config.Environment == "production" && cost < config.MinBcryptCost {
		return config.MinBcryptCost
	}
	return cost
}

func (s *UserAppImpl) dummyPasswordHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte(uuid.NewString()), s.bcryptCost())
	})
	return s.dummyHash
}

// duplicateField maps a MySQL unique-index violation to the colliding field.
func duplicateField(err error) (constant.ErrorType, bool) {
	var me *mysql.MySQLError
	if !stderrors.As(err, &me) || me.Number != mysqlErrDuplicateEntry {
		return 0, false
	}
	switch {
	case strings.Contains(me.Message, "uq_users_username"):
		return constant.ErrUsernameExists, true
	case strings.Contains(me.Message, "uq_users_email"):
		return constant.ErrEmailExists, true
	case strings.Contains(me.Message, "uq_users_phone"):
		return constant.ErrPhoneExists, true
	}
	return 0, false
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
