package domain

// Member is a holder of a room's access role, as reported by the platform.
// Membership is never stored on the Room itself.
type Member struct {
	User User `json:"user"`
}

func NewMember(user User) Member {
	return Member{User: user}
}
