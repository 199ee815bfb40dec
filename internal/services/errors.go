package services

import "errors"

// Validation errors: bad input, the caller corrects and resubmits
var (
	ErrTitleRequired       = errors.New("Poll title is required")
	ErrTitleTooLong        = errors.New("Poll title must be 100 characters or less")
	ErrDescriptionTooLong  = errors.New("Description must be 300 characters or less")
	ErrInsufficientOptions = errors.New("At least 2 options are required")
	ErrTooManyOptions      = errors.New("No more than 10 options are allowed")
	ErrOptionTooLong       = errors.New("Option text must be 100 characters or less")
	ErrInvalidStatus       = errors.New("Invalid poll status")
)

// Authorization errors
var (
	ErrUnauthenticated = errors.New("Authentication required")
	ErrNotOwner        = errors.New("Unauthorized")
)

// Conflict errors: terminal for this attempt with the same input
var (
	ErrPollNotActive     = errors.New("Poll is not active")
	ErrAlreadyVoted      = errors.New("You have already voted on this poll")
	ErrInvalidTransition = errors.New("Poll status cannot move backwards")
	ErrAlreadyBookmarked = errors.New("Poll is already bookmarked")
)

// Not-found errors
var (
	ErrPollNotFound     = errors.New("Poll not found")
	ErrOptionNotFound   = errors.New("Poll option not found")
	ErrProfileNotFound  = errors.New("Profile not found")
	ErrBookmarkNotFound = errors.New("Bookmark not found")
)

// Persistence errors: the store failed, possibly transiently; callers may
// retry without double-applying thanks to the compensating delete and the
// vote uniqueness constraint
var (
	ErrPollPersistence    = errors.New("Failed to create poll")
	ErrOptionsPersistence = errors.New("Failed to create poll options")
	ErrVotePersistence    = errors.New("Failed to record vote")
)
