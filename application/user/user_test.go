package user_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"
	appuser "github.com/muhammadheryan/car-traders/application/user"
	"github.com/muhammadheryan/car-traders/cmd/config"
	"github.com/muhammadheryan/car-traders/constant"
	redismocks "github.com/muhammadheryan/car-traders/mocks/repository/redis"
	trademocks "github.com/muhammadheryan/car-traders/mocks/repository/trade"
	txmocks "github.com/muhammadheryan/car-traders/mocks/repository/tx"
	usermocks "github.com/muhammadheryan/car-traders/mocks/repository/user"
	"github.com/muhammadheryan/car-traders/model"
	cerr "github.com/muhammadheryan/car-traders/utils/errors"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-for-session-signing"

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      testSecret,
			SessionExpTime: time.Hour,
			BcryptCost:     bcrypt.MinCost,
		},
	}
}

type fields struct {
	userRepo  *usermocks.UserRepository
	tradeRepo *trademocks.TradeRepository
	txRepo    *txmocks.TxRepository
	redisRepo *redismocks.RedisRepository
}

func newFields(t *testing.T) fields {
	return fields{
		userRepo:  usermocks.NewUserRepository(t),
		tradeRepo: trademocks.NewTradeRepository(t),
		txRepo:    txmocks.NewTxRepository(t),
		redisRepo: redismocks.NewRedisRepository(t),
	}
}

func (f fields) app() appuser.UserApp {
	return appuser.NewUserApp(testConfig(), f.userRepo, f.tradeRepo, f.txRepo, f.redisRepo, nil)
}

func assertErrCode(t *testing.T, err error, want constant.ErrorType) {
	t.Helper()
	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want CustomError", err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[want] {
		t.Fatalf("error code = %s (%s), want %s", ce.ErrorCode(), ce.Error(), constant.ErrorTypeCode[want])
	}
}

func signToken(t *testing.T, secret string, userID uint64, jti string, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(userID, 10),
		ID:        jti,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func aliceSignup() *model.SignupRequest {
	return &model.SignupRequest{
		Username:  "alice",
		Password:  "password",
		Confirm:   "password",
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "alice@example.com",
		Phone:     "7321111111",
		Location:  " Spotswood , NJ ",
	}
}

func TestUserApp_Signup(t *testing.T) {
	tests := []struct {
		name     string
		req      *model.SignupRequest
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: signup starts a session",
			req:  aliceSignup(),
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Username: "alice"}).Return(nil, nil).Once()
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Email: "alice@example.com"}).Return(nil, nil).Once()
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Phone: "7321111111"}).Return(nil, nil).Once()
				f.userRepo.
					On("Create", mock.Anything, mock.MatchedBy(func(ent *model.UserEntity) bool {
						return ent.Username == "alice" &&
							ent.City == "Spotswood" &&
							ent.State == "NJ" &&
							ent.CoverPic == constant.DefaultCoverPic &&
							ent.ProfilePic == constant.DefaultProfilePic &&
							ent.PasswordHash != "password" &&
							bcrypt.CompareHashAndPassword([]byte(ent.PasswordHash), []byte("password")) == nil
					})).
					Return(func(_ context.Context, ent *model.UserEntity) (*model.UserEntity, error) {
						ent.ID = 1
						return ent, nil
					}).
					Once()
				f.redisRepo.On("SetSession", mock.Anything, mock.AnythingOfType("string"), uint64(1), time.Hour).Return(nil).Once()
			},
		},
		{
			name: "error: username already exists",
			req:  aliceSignup(),
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Username: "alice"}).Return(&model.UserEntity{ID: 9, Username: "alice"}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrUsernameExists,
		},
		{
			name: "error: email already exists",
			req:  aliceSignup(),
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Username: "alice"}).Return(nil, nil).Once()
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Email: "alice@example.com"}).Return(&model.UserEntity{ID: 9}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrEmailExists,
		},
		{
			name: "error: phone already exists",
			req:  aliceSignup(),
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Username: "alice"}).Return(nil, nil).Once()
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Email: "alice@example.com"}).Return(nil, nil).Once()
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Phone: "7321111111"}).Return(&model.UserEntity{ID: 9}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrPhoneExists,
		},
		{
			name: "error: concurrent signup hits unique index",
			req:  aliceSignup(),
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, mock.AnythingOfType("*model.UserFilter")).Return(nil, nil).Times(3)
				f.userRepo.
					On("Create", mock.Anything, mock.AnythingOfType("*model.UserEntity")).
					Return(nil, &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'alice' for key 'users.uq_users_username'"}).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrUsernameExists,
		},
		{
			name: "error: repository Get returns error",
			req:  aliceSignup(),
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Username: "alice"}).Return(nil, errors.New("db error")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
		{
			name: "error: location without comma",
			req: func() *model.SignupRequest {
				r := aliceSignup()
				r.Location = "Spotswood NJ"
				return r
			}(),
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}

			got, err := f.app().Signup(context.Background(), tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Signup() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if got.Token == "" || got.User.ID != 1 {
				t.Fatalf("Signup() = %+v, want session for user 1", got)
			}
		})
	}
}

func TestUserApp_Authenticate(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	alice := &model.UserEntity{ID: 1, Username: "alice", FirstName: "Alice", State: "NJ", PasswordHash: string(hashed)}

	tests := []struct {
		name     string
		req      *model.LoginRequest
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: valid credentials",
			req:  &model.LoginRequest{Username: "alice", Password: "password"},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Username: "alice"}).Return(alice, nil).Once()
				f.redisRepo.On("SetSession", mock.Anything, mock.AnythingOfType("string"), uint64(1), time.Hour).Return(nil).Once()
			},
		},
		{
			name: "error: wrong password",
			req:  &model.LoginRequest{Username: "alice", Password: "wrong-password"},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Username: "alice"}).Return(alice, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidCredentials,
		},
		{
			name: "error: unknown username is indistinguishable",
			req:  &model.LoginRequest{Username: "nobody", Password: "password"},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Username: "nobody"}).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidCredentials,
		},
		{
			name: "error: session store unavailable",
			req:  &model.LoginRequest{Username: "alice", Password: "password"},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Username: "alice"}).Return(alice, nil).Once()
				f.redisRepo.On("SetSession", mock.Anything, mock.AnythingOfType("string"), uint64(1), time.Hour).Return(errors.New("redis down")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tt.mockCall(f)

			got, err := f.app().Authenticate(context.Background(), tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Authenticate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if got != nil {
					t.Fatalf("Authenticate() = %+v, want nil", got)
				}
				assertErrCode(t, err, tt.errCode)
				return
			}
			if got.Token == "" || got.User.ID != alice.ID {
				t.Fatalf("Authenticate() = %+v, want session for alice", got)
			}
		})
	}
}

func TestUserApp_ResolveSession(t *testing.T) {
	alice := &model.UserEntity{ID: 1, Username: "alice", FirstName: "Alice", City: "Spotswood", State: "NJ"}
	valid := signToken(t, testSecret, 1, "jti-1", time.Now().Add(time.Hour))

	tests := []struct {
		name     string
		token    string
		mockCall func(f fields)
		want     *model.Identity
		wantErr  bool
	}{
		{
			name:  "success: live session",
			token: valid,
			mockCall: func(f fields) {
				f.redisRepo.On("GetSession", mock.Anything, "jti-1").Return(uint64(1), nil).Once()
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 1}).Return(alice, nil).Once()
			},
			want: &model.Identity{ID: 1, Username: "alice", FirstName: "Alice", City: "Spotswood", State: "NJ"},
		},
		{
			name:  "error: ended session",
			token: valid,
			mockCall: func(f fields) {
				f.redisRepo.On("GetSession", mock.Anything, "jti-1").Return(uint64(0), errors.New("redis: nil")).Once()
			},
			wantErr: true,
		},
		{
			name:  "error: session bound to another user",
			token: valid,
			mockCall: func(f fields) {
				f.redisRepo.On("GetSession", mock.Anything, "jti-1").Return(uint64(2), nil).Once()
			},
			wantErr: true,
		},
		{
			name:    "error: signed with another secret",
			token:   signToken(t, "other-secret", 1, "jti-1", time.Now().Add(time.Hour)),
			wantErr: true,
		},
		{
			name:    "error: expired",
			token:   signToken(t, testSecret, 1, "jti-1", time.Now().Add(-time.Minute)),
			wantErr: true,
		},
		{
			name:    "error: garbage",
			token:   "not-a-token",
			wantErr: true,
		},
		{
			name:  "error: user no longer exists",
			token: valid,
			mockCall: func(f fields) {
				f.redisRepo.On("GetSession", mock.Anything, "jti-1").Return(uint64(1), nil).Once()
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 1}).Return(nil, nil).Once()
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}

			got, err := f.app().ResolveSession(context.Background(), tt.token)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveSession() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, constant.ErrUnauthorize)
				return
			}
			if *got != *tt.want {
				t.Fatalf("ResolveSession() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUserApp_EndSession(t *testing.T) {
	t.Run("anonymous is a no-op", func(t *testing.T) {
		f := newFields(t)
		if err := f.app().EndSession(context.Background(), ""); err != nil {
			t.Fatalf("EndSession() error = %v", err)
		}
	})

	t.Run("invalid token is a no-op", func(t *testing.T) {
		f := newFields(t)
		if err := f.app().EndSession(context.Background(), "garbage"); err != nil {
			t.Fatalf("EndSession() error = %v", err)
		}
	})

	t.Run("deletes the session", func(t *testing.T) {
		f := newFields(t)
		f.redisRepo.On("DeleteSession", mock.Anything, "jti-1").Return(nil).Once()

		token := signToken(t, testSecret, 1, "jti-1", time.Now().Add(time.Hour))
		if err := f.app().EndSession(context.Background(), token); err != nil {
			t.Fatalf("EndSession() error = %v", err)
		}
	})
}

func TestUserApp_GetProfile(t *testing.T) {
	t.Run("success: user with trades", func(t *testing.T) {
		f := newFields(t)
		user := &model.UserEntity{ID: 2, Username: "bob"}
		trades := []model.TradeDetail{{TradeEntity: model.TradeEntity{ID: 5, Title: "truck", UserID: 2}}}
		f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 2}).Return(user, nil).Once()
		f.tradeRepo.On("ListByUser", mock.Anything, uint64(2)).Return(trades, nil).Once()

		got, err := f.app().GetProfile(context.Background(), 2)
		if err != nil {
			t.Fatalf("GetProfile() error = %v", err)
		}
		if got.User != user || len(got.Trades) != 1 {
			t.Fatalf("GetProfile() = %+v", got)
		}
	})

	t.Run("error: not found", func(t *testing.T) {
		f := newFields(t)
		f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 404}).Return(nil, nil).Once()

		_, err := f.app().GetProfile(context.Background(), 404)
		assertErrCode(t, err, constant.ErrNotFound)
	})
}

func TestUserApp_UpdateProfile(t *testing.T) {
	alice := &model.Identity{ID: 1, Username: "alice", State: "NJ"}
	bob := &model.Identity{ID: 2, Username: "bob", State: "CA"}
	edit := &model.UserEditRequest{
		FirstName: "Alicia",
		LastName:  "Smith",
		Email:     "alicia@example.com",
		Phone:     "7321111111",
		Location:  "Trenton, NJ",
	}
	stored := func() *model.UserEntity {
		return &model.UserEntity{ID: 1, Username: "alice", FirstName: "Alice", Email: "alice@example.com", Phone: "7321111111", City: "Spotswood", State: "NJ", CoverPic: "/custom.jpg"}
	}

	tests := []struct {
		name     string
		identity *model.Identity
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:     "success: owner updates profile",
			identity: alice,
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 1}).Return(stored(), nil).Once()
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Email: "alicia@example.com", ExcludeID: 1}).Return(nil, nil).Once()
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Phone: "7321111111", ExcludeID: 1}).Return(nil, nil).Once()
				f.userRepo.
					On("Update", mock.Anything, mock.MatchedBy(func(u *model.UserEntity) bool {
						return u.FirstName == "Alicia" &&
							u.City == "Trenton" &&
							u.State == "NJ" &&
							u.Username == "alice" &&
							u.CoverPic == constant.DefaultCoverPic &&
							u.ProfilePic == constant.DefaultProfilePic
					})).
					Return(nil).
					Once()
			},
		},
		{
			name:     "error: another user is denied and nothing is written",
			identity: bob,
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 1}).Return(stored(), nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrUnauthorizedView,
		},
		{
			name:     "error: email belongs to someone else",
			identity: alice,
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 1}).Return(stored(), nil).Once()
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Email: "alicia@example.com", ExcludeID: 1}).Return(&model.UserEntity{ID: 3}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrEmailExists,
		},
		{
			name:     "error: user not found",
			identity: alice,
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 1}).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tt.mockCall(f)

			got, err := f.app().UpdateProfile(context.Background(), tt.identity, 1, edit)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UpdateProfile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				f.userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				return
			}
			if got.FirstName != "Alicia" {
				t.Fatalf("UpdateProfile() = %+v", got)
			}
		})
	}
}

func TestUserApp_DeleteAccount(t *testing.T) {
	alice := &model.Identity{ID: 1, Username: "alice"}
	bob := &model.Identity{ID: 2, Username: "bob"}
	token := signToken(t, testSecret, 1, "jti-1", time.Now().Add(time.Hour))
	tx := &sqlx.Tx{}

	tests := []struct {
		name     string
		identity *model.Identity
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:     "success: cascades trades, deletes user, ends session",
			identity: alice,
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 1}).Return(&model.UserEntity{ID: 1, Username: "alice"}, nil).Once()
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.tradeRepo.On("DeleteByUserTx", mock.Anything, tx, uint64(1)).Return(int64(3), nil).Once()
				f.userRepo.On("DeleteTx", mock.Anything, tx, uint64(1)).Return(nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.redisRepo.On("DeleteSession", mock.Anything, "jti-1").Return(nil).Once()
			},
		},
		{
			name:     "error: another user is denied",
			identity: bob,
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 1}).Return(&model.UserEntity{ID: 1, Username: "alice"}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrUnauthorizedAction,
		},
		{
			name:     "error: delete fails and rolls back",
			identity: alice,
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: 1}).Return(&model.UserEntity{ID: 1, Username: "alice"}, nil).Once()
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.tradeRepo.On("DeleteByUserTx", mock.Anything, tx, uint64(1)).Return(int64(3), nil).Once()
				f.userRepo.On("DeleteTx", mock.Anything, tx, uint64(1)).Return(errors.New("fk violation")).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tt.mockCall(f)

			got, err := f.app().DeleteAccount(context.Background(), tt.identity, 1, token)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DeleteAccount() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if got.Username != "alice" {
				t.Fatalf("DeleteAccount() = %+v", got)
			}
		})
	}
}
