package model

import (
	"strings"

	"github.com/google/uuid"
)

const (
	UserIDPrefix     = "user_"
	ProgressIDPrefix = "prog_"
	EventIDPrefix    = "evt_"
)

// GenerateID returns a prefixed identifier such as "prog_3f2a9c1e".
func GenerateID(prefix string) string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return prefix + id[:12]
}
