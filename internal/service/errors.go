package service

import "errors"

var (
	ErrEmptyUUID             = errors.New("item uuid is empty")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
