package user

import "context"

type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	ListByCompanyID(ctx context.Context, companyID string) ([]User, error)
	Update(ctx context.Context, companyID string, id string, req UpdateUserRequest) error

	GetSettings(ctx context.Context, userID string) (Settings, error)
	UpsertSettings(ctx context.Context, s Settings) (Settings, error)
}

type UserService interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	List(ctx context.Context) ([]UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) error
	UpdateSettings(ctx context.Context, id string, req UpdateSettingsRequest) error
}
