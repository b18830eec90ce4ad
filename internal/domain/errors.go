package domain

import "errors"

var (
	ErrEmptyNote         = errors.New("milestone note is required")
	ErrEmptyName         = errors.New("name is required")
	ErrMilestoneNotFound = errors.New("milestone not found")
	ErrProjectNotFound   = errors.New("project not found")
	ErrShareNotFound     = errors.New("shared project not found")
)
