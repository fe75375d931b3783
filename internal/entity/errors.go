package entity

import "errors"

// Domain errors for bundles, rendering and study state.
var (
	ErrBundleNotFound       = errors.New("bundle not found")
	ErrInvalidBundleID      = errors.New("invalid bundle ID")
	ErrInvalidSourceType    = errors.New("invalid source type")
	ErrNoRenderer           = errors.New("no renderer available for bundle")
	ErrNoRenderableContent  = errors.New("bundle has no renderable content")
	ErrStudyWordNotFound    = errors.New("study word not found")
	ErrDuplicateStudyWord   = errors.New("study word already exists")
	ErrDuplicatePhrase      = errors.New("study phrase already exists")
	ErrInvalidStudyWordText = errors.New("invalid study word text")
	ErrStudyPhraseNotFound  = errors.New("study phrase not found")
	ErrInvalidStudyPhrase   = errors.New("invalid study phrase text")
	ErrInvalidUserID        = errors.New("invalid user ID")
	ErrInvalidUnclearChoice = errors.New("invalid unclear choice")
	ErrInvalidSentenceIndex = errors.New("invalid sentence index")
)
