package util

import "errors"

var (
	ErrUserNotFound     = errors.New("用户不存在")
	ErrEmailRegistered  = errors.New("该邮箱已被注册")
	ErrPermissionDenied = errors.New("permission denied")
	ErrChildNotFound    = errors.New("child not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrCourseNotFound   = errors.New("course not found")
	ErrNotEnrolled      = errors.New("child not enrolled in course")
	ErrCourseCodeTaken  = errors.New("course code already in use")
)
