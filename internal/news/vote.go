package news

// Vote is a single adjustment applied to a votes counter.
type Vote int

const (
	VoteNone Vote = 0
	VoteUp   Vote = 1
	VoteDown Vote = -1
)

// ParseVote maps the VOTE query value to an adjustment.
// Only "UP" and "DOWN" count; every other value, including "", is VoteNone.
func ParseVote(raw string) Vote {
	switch raw {
	case "UP":
		return VoteUp
	case "DOWN":
		return VoteDown
	default:
		return VoteNone
	}
}

// Delta is the amount added to votes.
func (v Vote) Delta() int { return int(v) }

func (v Vote) String() string {
	switch v {
	case VoteUp:
		return "up"
	case VoteDown:
		return "down"
	default:
		return "none"
	}
}
