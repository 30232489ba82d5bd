package verity

// Presence tags a declared key as required or optional.
type Presence uint8

const (
	// PresenceDefault defers to the DefaultPresence compile option.
	PresenceDefault Presence = iota
	Required
	Optional
)

func (p Presence) String() string {
	switch p {
	case Required:
		return "required"
	case Optional:
		return "optional"
	default:
		return "default"
	}
}
