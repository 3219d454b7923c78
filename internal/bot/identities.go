package bot

import "strings"

const idPrefix = "bot:"

// Identity is one of the built-in bot profiles. The user id doubles as the
// seat occupant in the match handler, so it must never collide with a real
// Nakama user id; the prefix guarantees that.
type Identity struct {
	UserID   string
	Username string
	Level    BotLevel
}

var identities = []Identity{
	{UserID: idPrefix + "marcel", Username: "Marcel", Level: BotLevelPub},
	{UserID: idPrefix + "odette", Username: "Odette", Level: BotLevelCounty},
	{UserID: idPrefix + "gaston", Username: "Gaston", Level: BotLevelPub},
	{UserID: idPrefix + "suzanne", Username: "Suzanne", Level: BotLevelPro},
	{UserID: idPrefix + "raymond", Username: "Raymond", Level: BotLevelCounty},
	{UserID: idPrefix + "paulette", Username: "Paulette", Level: BotLevelPro},
}

// IsBot reports whether the given user id represents a bot seat.
func IsBot(userID string) bool {
	return strings.HasPrefix(userID, idPrefix)
}

// GetIdentity returns a stable identity for a seat index.
func GetIdentity(i int) Identity {
	if i < 0 {
		i = 0
	}
	return identities[i%len(identities)]
}

// UsernameFor resolves the display name of a bot user id; empty for unknown ids.
func UsernameFor(userID string) string {
	for _, identity := range identities {
		if identity.UserID == userID {
			return identity.Username
		}
	}
	return ""
}

// LevelFor resolves the skill level of a bot user id, defaulting to pub level.
func LevelFor(userID string) BotLevel {
	for _, identity := range identities {
		if identity.UserID == userID {
			return identity.Level
		}
	}
	return BotLevelPub
}
