package redis

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

const (
	KeyPrefixHallin = "hallin"

	KeyModuleTurnstile = "turnstile"
	KeyActionUsed      = "used"

	KeyModuleForms   = "forms"
	KeyActionSubmits = "submits"

	KeyModuleContent = "content"
	KeyActionStats   = "stats"
)

// Tokens are hashed so raw proof tokens never sit in redis.
func BuildUsedTokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%s:%s:%s:%s", KeyPrefixHallin, KeyModuleTurnstile, KeyActionUsed, hex.EncodeToString(sum[:]))
}

func BuildSubmitCounterKey(action, ip string) string {
	return fmt.Sprintf("%s:%s:%s:%s:%s", KeyPrefixHallin, KeyModuleForms, KeyActionSubmits, action, ip)
}

func BuildContentStatsKey(name string) string {
	return fmt.Sprintf("%s:%s:%s:%s", KeyPrefixHallin, KeyModuleContent, KeyActionStats, name)
}
