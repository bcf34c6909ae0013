package app

import "errors"

// Precondition failures. They are answered privately to the actor and
// never logged as system errors.
var (
	ErrRoomExists      = errors.New("actor already has an active room")
	ErrNoRoom          = errors.New("actor has no active room")
	ErrCapacityReached = errors.New("room capacity reached")
	ErrAlreadyMember   = errors.New("member already in room")
	ErrKickOwner       = errors.New("owner cannot be kicked from own room")
	ErrInvalidCapacity = errors.New("capacity must be at least 1")
	ErrMissingTarget   = errors.New("command requires a target member")
	ErrUnknownCommand  = errors.New("unknown command")
)

// ErrRoomCreation wraps platform failures on the create-room critical path.
var ErrRoomCreation = errors.New("room creation failed")

func isPrecondition(err error) bool {
	for _, p := range []error{
		ErrRoomExists, ErrNoRoom, ErrCapacityReached, ErrAlreadyMember,
		ErrKickOwner, ErrInvalidCapacity, ErrMissingTarget, ErrUnknownCommand,
	} {
		if errors.Is(err, p) {
			return true
		}
	}
	return false
}
