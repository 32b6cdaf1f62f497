package repository

import "errors"

var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateEmail   = errors.New("email already in use")
	ErrAlreadyFavorited = errors.New("wallpaper already in favorites")
)
