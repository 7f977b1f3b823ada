package trade_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	apptrade "github.com/muhammadheryan/car-traders/application/trade"
	"github.com/muhammadheryan/car-traders/constant"
	trademocks "github.com/muhammadheryan/car-traders/mocks/repository/trade"
	"github.com/muhammadheryan/car-traders/model"
	cerr "github.com/muhammadheryan/car-traders/utils/errors"
	"github.com/stretchr/testify/mock"
)

var (
	alice = &model.Identity{ID: 1, Username: "alice", City: "Spotswood", State: "NJ"}
	bob   = &model.Identity{ID: 2, Username: "bob", City: "Fresno", State: "CA"}
)

func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool { return &v }

func aliceTruck() *model.TradeDetail {
	desc := "runs great"
	return &model.TradeDetail{
		TradeEntity: model.TradeEntity{
			ID:          10,
			Title:       "Old truck",
			Description: &desc,
			TradingFor:  "sedan",
			AskingCash:  int64Ptr(500),
			Available:   true,
			ImgURL:      "/img/truck.jpg",
			UserID:      alice.ID,
			Status:      constant.TradeStatusAvailable,
		},
		OwnerUsername: "alice",
		OwnerState:    "NJ",
	}
}

func assertErrType(t *testing.T, err error, want constant.ErrorType) {
	t.Helper()
	if !cerr.Is(err, want) {
		t.Fatalf("error = %v, want %s", err, constant.ErrorTypeMessage[want])
	}
}

func TestTradeApp_Home(t *testing.T) {
	tests := []struct {
		name     string
		identity *model.Identity
		mockCall func(repo *trademocks.TradeRepository)
		wantLen  int
		wantErr  bool
	}{
		{
			name:     "anonymous gets no trades",
			identity: nil,
		},
		{
			name:     "scoped to viewer state and capped",
			identity: bob,
			mockCall: func(repo *trademocks.TradeRepository) {
				repo.On("Search", mock.Anything, model.TradeFilter{State: "CA", Limit: constant.SearchLimit}).
					Return([]model.TradeDetail{{TradeEntity: model.TradeEntity{ID: 3}}, {TradeEntity: model.TradeEntity{ID: 2}}}, nil).
					Once()
			},
			wantLen: 2,
		},
		{
			name:     "repository error",
			identity: alice,
			mockCall: func(repo *trademocks.TradeRepository) {
				repo.On("Search", mock.Anything, mock.Anything).Return(nil, errors.New("db error")).Once()
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo := trademocks.NewTradeRepository(t)
			if tt.mockCall != nil {
				tt.mockCall(repo)
			}

			got, err := apptrade.NewTradeApp(repo, nil).Home(context.Background(), tt.identity)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Home() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrType(t, err, constant.ErrInternal)
				return
			}
			if got == nil || len(got) != tt.wantLen {
				t.Fatalf("Home() = %v, want %d trades", got, tt.wantLen)
			}
		})
	}
}

func TestTradeApp_Search(t *testing.T) {
	tests := []struct {
		name     string
		identity *model.Identity
		filter   model.TradeFilter
		want     model.TradeFilter
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:     "empty filter uses identity state",
			identity: alice,
			filter:   model.TradeFilter{},
			want:     model.TradeFilter{State: "NJ", Limit: constant.SearchLimit},
		},
		{
			name:     "location replaces state scope",
			identity: alice,
			filter:   model.TradeFilter{Location: "CA"},
			want:     model.TradeFilter{Location: "CA", Limit: constant.SearchLimit},
		},
		{
			name:     "filters are passed together",
			identity: bob,
			filter:   model.TradeFilter{Title: "truck", TradingFor: "sedan", Limit: 5000},
			want:     model.TradeFilter{State: "CA", Title: "truck", TradingFor: "sedan", Limit: constant.SearchLimit},
		},
		{
			name:     "anonymous without location",
			identity: nil,
			filter:   model.TradeFilter{Title: "truck"},
			wantErr:  true,
			errCode:  constant.ErrUnauthorize,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo := trademocks.NewTradeRepository(t)
			if !tt.wantErr {
				repo.On("Search", mock.Anything, tt.want).Return([]model.TradeDetail{}, nil).Once()
			}

			_, err := apptrade.NewTradeApp(repo, nil).Search(context.Background(), tt.identity, tt.filter)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Search() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrType(t, err, tt.errCode)
			}
		})
	}
}

func TestTradeApp_Create(t *testing.T) {
	tests := []struct {
		name     string
		identity *model.Identity
		req      *model.TradeRequest
		mockCall func(repo *trademocks.TradeRepository)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:     "success: blanks become placeholders",
			identity: alice,
			req:      &model.TradeRequest{Title: " Old truck ", TradingFor: "  ", AskingCash: int64Ptr(500), Available: boolPtr(false)},
			mockCall: func(repo *trademocks.TradeRepository) {
				repo.
					On("Create", mock.Anything, mock.MatchedBy(func(tr *model.TradeEntity) bool {
						return tr.Title == "Old truck" &&
							tr.Description == nil &&
							tr.TradingFor == constant.DefaultTradingFor &&
							tr.ImgURL == constant.DefaultTradeImage &&
							*tr.AskingCash == 500 &&
							tr.OfferingCash == nil &&
							tr.Available &&
							tr.UserID == alice.ID
					})).
					Return(func(_ context.Context, tr *model.TradeEntity) (*model.TradeEntity, error) {
						tr.ID = 10
						tr.SetStatus()
						return tr, nil
					}).
					Once()
			},
		},
		{
			name:     "error: anonymous",
			identity: nil,
			req:      &model.TradeRequest{Title: "Old truck"},
			wantErr:  true,
			errCode:  constant.ErrUnauthorize,
		},
		{
			name:     "error: repository",
			identity: alice,
			req:      &model.TradeRequest{Title: "Old truck"},
			mockCall: func(repo *trademocks.TradeRepository) {
				repo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db error")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo := trademocks.NewTradeRepository(t)
			if tt.mockCall != nil {
				tt.mockCall(repo)
			}

			got, err := apptrade.NewTradeApp(repo, nil).Create(context.Background(), tt.identity, tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Create() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrType(t, err, tt.errCode)
				return
			}
			if got.ID != 10 || got.Status != constant.TradeStatusAvailable {
				t.Fatalf("Create() = %+v", got)
			}
		})
	}
}

func TestTradeApp_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo := trademocks.NewTradeRepository(t)
		repo.On("GetByID", mock.Anything, uint64(10)).Return(aliceTruck(), nil).Once()

		got, err := apptrade.NewTradeApp(repo, nil).Get(context.Background(), 10)
		if err != nil || got.ID != 10 {
			t.Fatalf("Get() = %+v, %v", got, err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		repo := trademocks.NewTradeRepository(t)
		repo.On("GetByID", mock.Anything, uint64(404)).Return(nil, nil).Once()

		_, err := apptrade.NewTradeApp(repo, nil).Get(context.Background(), 404)
		assertErrType(t, err, constant.ErrNotFound)
	})
}

func TestTradeApp_Update(t *testing.T) {
	tests := []struct {
		name     string
		identity *model.Identity
		req      *model.TradeRequest
		mockCall func(repo *trademocks.TradeRepository)
		check    func(t *testing.T, got *model.TradeEntity)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:     "success: marking unavailable shows sold and keeps other fields",
			identity: alice,
			req: &model.TradeRequest{
				Title:       "Old truck",
				Description: "runs great",
				TradingFor:  "sedan",
				AskingCash:  int64Ptr(500),
				ImgURL:      "/img/truck.jpg",
				Available:   boolPtr(false),
			},
			mockCall: func(repo *trademocks.TradeRepository) {
				repo.On("GetByID", mock.Anything, uint64(10)).Return(aliceTruck(), nil).Once()
				repo.On("Update", mock.Anything, mock.MatchedBy(func(tr *model.TradeEntity) bool {
					return tr.ID == 10 && !tr.Available
				})).Return(nil).Once()
			},
			check: func(t *testing.T, got *model.TradeEntity) {
				want := aliceTruck().TradeEntity
				if got.Status != constant.TradeStatusSold || got.Available {
					t.Fatalf("status = %s, want sold", got.Status)
				}
				if got.Title != want.Title || *got.Description != *want.Description ||
					got.TradingFor != want.TradingFor || *got.AskingCash != *want.AskingCash ||
					got.ImgURL != want.ImgURL || got.UserID != want.UserID {
					t.Fatalf("Update() changed other fields: %+v", got)
				}
			},
		},
		{
			name:     "success: omitted availability keeps stored value",
			identity: alice,
			req:      &model.TradeRequest{Title: "New title"},
			mockCall: func(repo *trademocks.TradeRepository) {
				repo.On("GetByID", mock.Anything, uint64(10)).Return(aliceTruck(), nil).Once()
				repo.On("Update", mock.Anything, mock.AnythingOfType("*model.TradeEntity")).Return(nil).Once()
			},
			check: func(t *testing.T, got *model.TradeEntity) {
				if !got.Available || got.Title != "New title" || got.TradingFor != constant.DefaultTradingFor {
					t.Fatalf("Update() = %+v", got)
				}
			},
		},
		{
			name:     "error: non-owner is denied and nothing is written",
			identity: bob,
			req:      &model.TradeRequest{Title: "stolen"},
			mockCall: func(repo *trademocks.TradeRepository) {
				repo.On("GetByID", mock.Anything, uint64(10)).Return(aliceTruck(), nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrUnauthorizedView,
		},
		{
			name:     "error: trade vanished before write",
			identity: alice,
			req:      &model.TradeRequest{Title: "Old truck"},
			mockCall: func(repo *trademocks.TradeRepository) {
				repo.On("GetByID", mock.Anything, uint64(10)).Return(aliceTruck(), nil).Once()
				repo.On("Update", mock.Anything, mock.Anything).Return(sql.ErrNoRows).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo := trademocks.NewTradeRepository(t)
			tt.mockCall(repo)

			got, err := apptrade.NewTradeApp(repo, nil).Update(context.Background(), tt.identity, 10, tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Update() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrType(t, err, tt.errCode)
				if tt.errCode == constant.ErrUnauthorizedView {
					repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				}
				return
			}
			tt.check(t, got)
		})
	}
}

func TestTradeApp_Delete(t *testing.T) {
	tests := []struct {
		name     string
		identity *model.Identity
		mockCall func(repo *trademocks.TradeRepository)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:     "success: owner deletes",
			identity: alice,
			mockCall: func(repo *trademocks.TradeRepository) {
				repo.On("GetByID", mock.Anything, uint64(10)).Return(aliceTruck(), nil).Once()
				repo.On("Delete", mock.Anything, uint64(10)).Return(nil).Once()
			},
		},
		{
			name:     "error: non-owner denied with action framing",
			identity: bob,
			mockCall: func(repo *trademocks.TradeRepository) {
				repo.On("GetByID", mock.Anything, uint64(10)).Return(aliceTruck(), nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrUnauthorizedAction,
		},
		{
			name:     "error: not found",
			identity: alice,
			mockCall: func(repo *trademocks.TradeRepository) {
				repo.On("GetByID", mock.Anything, uint64(10)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo := trademocks.NewTradeRepository(t)
			tt.mockCall(repo)

			got, err := apptrade.NewTradeApp(repo, nil).Delete(context.Background(), tt.identity, 10)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Delete() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrType(t, err, tt.errCode)
				repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
				return
			}
			if got.ID != 10 {
				t.Fatalf("Delete() = %+v", got)
			}
		})
	}
}

// alice in NJ lists a truck; bob in CA does not see it on his home page and
// cannot edit it, while alice can.
func TestTradeApp_AliceBobScenario(t *testing.T) {
	repo := trademocks.NewTradeRepository(t)
	app := apptrade.NewTradeApp(repo, nil)
	ctx := context.Background()

	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.TradeEntity")).
		Return(func(_ context.Context, tr *model.TradeEntity) (*model.TradeEntity, error) {
			tr.ID = 10
			return tr, nil
		}).
		Once()
	created, err := app.Create(ctx, alice, &model.TradeRequest{Title: "Old truck"})
	if err != nil || created.UserID != alice.ID {
		t.Fatalf("Create() = %+v, %v", created, err)
	}

	repo.On("Search", mock.Anything, model.TradeFilter{State: "CA", Limit: constant.SearchLimit}).Return([]model.TradeDetail{}, nil).Once()
	home, err := app.Home(ctx, bob)
	if err != nil || len(home) != 0 {
		t.Fatalf("Home(bob) = %v, %v", home, err)
	}

	repo.On("GetByID", mock.Anything, uint64(10)).Return(aliceTruck(), nil).Times(2)
	if _, err := app.GetForEdit(ctx, bob, 10); !cerr.Is(err, constant.ErrUnauthorizedView) {
		t.Fatalf("GetForEdit(bob) error = %v, want unauthorized", err)
	}
	if _, err := app.GetForEdit(ctx, alice, 10); err != nil {
		t.Fatalf("GetForEdit(alice) error = %v", err)
	}
}
