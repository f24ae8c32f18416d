package stores

import "errors"

var (
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrEmptyCredentials    = errors.New("phone and password are required")
	ErrNotSignedIn         = errors.New("not signed in")
)
