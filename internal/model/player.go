package model

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// PlayerID uniquely identifies a player across the system
type PlayerID string

// MaxNicknameLength is the longest allowed display name
const MaxNicknameLength = 20

// Player represents a game participant
type Player struct {
	ID       PlayerID
	Nickname string
	Role     Role // RoleUnassigned until the session starts
	IsAlive  bool
	IsHost   bool
	// KnowsWord mirrors the role: true for villagers and knights
	KnowsWord bool
	JoinedAt  time.Time
}

// NewPlayer creates a player with a fresh UUID, alive and roleless
func NewPlayer(nickname string, isHost bool, now time.Time) *Player {
	return &Player{
		ID:       PlayerID(uuid.NewString()),
		Nickname: nickname,
		Role:     RoleUnassigned,
		IsAlive:  true,
		IsHost:   isHost,
		JoinedAt: now,
	}
}

// ValidateNickname trims and checks a raw nickname, returning the cleaned
// form. Rules: 1-20 characters, letters, digits and spaces only.
func ValidateNickname(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return "", ErrInvalidNickname
	}
	if len(cleaned) > MaxNicknameLength {
		return "", ErrInvalidNickname
	}
	for _, r := range cleaned {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ' ' {
			return "", ErrInvalidNickname
		}
	}
	return cleaned, nil
}
