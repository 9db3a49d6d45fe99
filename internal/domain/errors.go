package domain

import "errors"

var (
	ErrRoomNotLoaded = errors.New("room not loaded")
)
