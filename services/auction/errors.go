package auction

import "errors"

// Validation errors: the request referenced something that doesn't exist or
// carried a bad payload. Surfaced to the offending connection only.
var (
	ErrRoomExists         = errors.New("room already exists")
	ErrRoomNotFound       = errors.New("room not found")
	ErrInvalidCredentials = errors.New("invalid room credentials")
	ErrTeamNotFound       = errors.New("team not found")
	ErrTeamTaken          = errors.New("team already taken by another player")
	ErrAlreadyOwnsTeam    = errors.New("player already owns a team in this room")
)

// Authorization errors: wrong persistent identity for a privileged or
// team-bound action.
var ErrUnauthorized = errors.New("authorization failed")

// State conflict errors: the action is not valid for the current phase, lot
// or latch state. Never corrupts shared state; callers may surface or drop
// these silently.
var (
	ErrAuctionNotActive   = errors.New("auction not active")
	ErrAlreadyHighBidder  = errors.New("team is already the highest bidder")
	ErrBidTooLow          = errors.New("bid too low")
	ErrInsufficientBudget = errors.New("insufficient budget")
	ErrStateConflict      = errors.New("action not valid in current room state")
)
