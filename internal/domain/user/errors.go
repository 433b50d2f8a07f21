package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrUsernameExists         = errors.New("username already taken")
	ErrEmailExists            = errors.New("email already registered in this company")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
	ErrUserInactive           = errors.New("user is deactivated")
	ErrSettingsNotFound       = errors.New("user settings not found")
)
