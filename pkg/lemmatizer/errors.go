package lemmatizer

import "errors"

var (
	// ErrConfig marks invalid processor or loader configuration. It is
	// returned before any token is processed.
	ErrConfig = errors.New("lemmatizer: configuration error")

	// ErrResourceLoad marks a resource that exists but cannot be used,
	// such as a corrupt dictionary or analyzer model.
	ErrResourceLoad = errors.New("lemmatizer: resource load error")
)
