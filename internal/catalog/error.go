package catalog

import "errors"

var (
	ErrBrandNotFound = errors.New("brand not found")

	ErrFailedListAttributes = errors.New("failed to list attributes")
	ErrFailedListColors     = errors.New("failed to list colors")
	ErrFailedGetBrand       = errors.New("failed to get brand")
)
