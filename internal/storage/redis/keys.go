package redis

import (
	"fmt"

	"github.com/mcoot/dragonword-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "dragonword"

// sessionKey returns the Redis key for a Session
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// sessionKeyPattern matches every session key, for SCAN
func sessionKeyPattern() string {
	return fmt.Sprintf("%s:session:*", keyPrefix)
}

// wordPairsKey returns the Redis key for the word pair list
func wordPairsKey() string {
	return fmt.Sprintf("%s:wordpairs", keyPrefix)
}
