package util

import "errors"

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrUsernameTaken      = errors.New("该用户名已被注册")
	ErrPhoneRegistered    = errors.New("该手机号已被注册")
	ErrAccountExists      = errors.New("该用户名或手机号已被注册")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPhone       = errors.New("invalid phone number")
	ErrInvalidLinks       = errors.New("links 仅允许 instagram/snapchat/spotify/linkedin/github")
	ErrSelfFriend         = errors.New("不能添加自己为好友")
	ErrFriendshipExists   = errors.New("好友关系或申请已存在")
	ErrRequestNotFound    = errors.New("friend request not found")
	ErrFriendshipNotFound = errors.New("好友关系不存在")
	ErrLocationRequired   = errors.New("location required, update your location first")
	ErrLocationThrottled  = errors.New("location updated too frequently")
	ErrPermissionDenied   = errors.New("permission denied")
)
