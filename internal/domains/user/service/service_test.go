package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"stayledger/config"
	"stayledger/infras/otel/mocks"
	userMocks "stayledger/internal/domains/user/mocks"
	"stayledger/internal/domains/user/model"
	"stayledger/internal/domains/user/model/dto"
	"stayledger/internal/domains/user/service"
	"stayledger/shared/authz"
	"stayledger/shared/cache"
	cacheMocks "stayledger/shared/cache/mocks"
	"stayledger/shared/constant"
	gDto "stayledger/shared/dto"
	"stayledger/shared/failure"
)

var adminCtx = authz.WithCaller(context.Background(), authz.Caller{
	UserID: "admin-1",
	Email:  "admin@example.com",
	Role:   constant.RoleAdmin,
})

func setup(t *testing.T) (*userMocks.MockUser, *cacheMocks.MockRedisCache, service.User) {
	ctrl := gomock.NewController(t)

	repo := userMocks.NewMockUser(ctrl)
	redis := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	redis.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redis.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redis.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return repo, redis, service.New(repo, cfg, redis, mocks.NewOtel())
}

func TestUserService_Create(t *testing.T) {
	tests := []struct {
		name       string
		setupMock  func(repo *userMocks.MockUser)
		wantReason string
	}{
		{
			name: "success",
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user model.User) error {
						assert.Equal(t, constant.RoleGuest, user.Level)
						assert.Equal(t, "admin-1", user.CreatedBy)

						return nil
					})
			},
		},
		{
			name: "email taken",
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantReason: failure.ReasonConflict,
		},
		{
			name: "repository error",
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("db down"))
			},
			wantReason: failure.ReasonInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _, svc := setup(t)
			tt.setupMock(repo)

			err := svc.Create(adminCtx, dto.CreateUserRequest{Email: "new@example.com", Password: "password123"})

			if tt.wantReason == "" {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.wantReason, failure.GetReason(err))
			}

			time.Sleep(10 * time.Millisecond)
		})
	}
}

func TestUserService_Get(t *testing.T) {
	t.Run("cache hit", func(t *testing.T) {
		_, redis, svc := setup(t)

		redis.EXPECT().Get(gomock.Any(), "user:get:user-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				res := value.(*dto.UserResponse)
				res.ID = "user-1"

				return nil
			})

		res, err := svc.Get(adminCtx, "user-1")

		assert.NoError(t, err)
		assert.Equal(t, "user-1", res.ID)
	})

	t.Run("cache miss reads repository", func(t *testing.T) {
		repo, redis, svc := setup(t)

		redis.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "user-1", Email: "a@example.com", Active: true}, nil)

		res, err := svc.Get(adminCtx, "user-1")

		assert.NoError(t, err)
		assert.Equal(t, "a@example.com", res.Email)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("not found", func(t *testing.T) {
		repo, redis, svc := setup(t)

		redis.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

		_, err := svc.Get(adminCtx, "missing")

		assert.Equal(t, failure.ReasonNotFound, failure.GetReason(err))
	})
}

func TestUserService_GetAll(t *testing.T) {
	repo, redis, svc := setup(t)

	redis.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).Times(2)
	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.User{{ID: "1"}, {ID: "2"}}, nil)

	res, err := svc.GetAll(adminCtx, gDto.QueryParams{Page: 1, Limit: 2}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Len(t, res.Users, 2)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)

	time.Sleep(10 * time.Millisecond)
}

func TestUserService_Update(t *testing.T) {
	level := constant.RoleAffiliate

	tests := []struct {
		name       string
		req        dto.UpdateUserRequest
		setupMock  func(repo *userMocks.MockUser)
		wantReason string
	}{
		{
			name: "success",
			req:  dto.UpdateUserRequest{Level: &level},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, &level, fields[model.FieldLevel])
						assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])

						return nil
					})
			},
		},
		{
			name:       "empty request",
			req:        dto.UpdateUserRequest{},
			setupMock:  func(*userMocks.MockUser) {},
			wantReason: failure.ReasonValidation,
		},
		{
			name: "not found",
			req:  dto.UpdateUserRequest{Level: &level},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantReason: failure.ReasonNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _, svc := setup(t)
			tt.setupMock(repo)

			err := svc.Update(adminCtx, tt.req, "user-1")

			if tt.wantReason == "" {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.wantReason, failure.GetReason(err))
			}

			time.Sleep(10 * time.Millisecond)
		})
	}
}

func TestUserService_Deactivate(t *testing.T) {
	repo, _, svc := setup(t)

	repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			active, ok := fields[model.FieldActive].(*bool)
			assert.True(t, ok)
			assert.False(t, *active)

			return nil
		})

	assert.NoError(t, svc.Deactivate(adminCtx, "user-1"))

	time.Sleep(10 * time.Millisecond)
}

func TestUserService_UpdateProfile(t *testing.T) {
	name := "New Name"
	ctx := authz.WithCaller(context.Background(), authz.Caller{UserID: "user-1", Role: constant.RoleGuest})

	t.Run("updates own profile", func(t *testing.T) {
		repo, redis, svc := setup(t)

		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		redis.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "user-1", FullName: &name}, nil)

		res, err := svc.UpdateProfile(ctx, dto.UpdateProfileRequest{FullName: &name})

		assert.NoError(t, err)
		assert.Equal(t, &name, res.FullName)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("anonymous", func(t *testing.T) {
		_, _, svc := setup(t)

		_, err := svc.UpdateProfile(context.Background(), dto.UpdateProfileRequest{FullName: &name})

		assert.Equal(t, failure.ReasonUnauthorized, failure.GetReason(err))
	})

	t.Run("empty request", func(t *testing.T) {
		_, _, svc := setup(t)

		_, err := svc.UpdateProfile(ctx, dto.UpdateProfileRequest{})

		assert.Equal(t, failure.ReasonValidation, failure.GetReason(err))
	})
}

func TestUserService_Me(t *testing.T) {
	_, _, svc := setup(t)

	_, err := svc.Me(context.Background())

	assert.Equal(t, failure.ReasonUnauthorized, failure.GetReason(err))
}
