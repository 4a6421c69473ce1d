package tokencodec

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"resetpoint/internal/core/domain/reset"
)

// 32 random bytes give 256 bits of entropy per token.
const tokenByteLen = 32

type HMAC struct {
	secretKey []byte
}

func NewHMAC(secretKey string) *HMAC {
	if secretKey == "" {
		panic("secretKey must not be empty")
	}
	return &HMAC{secretKey: []byte(secretKey)}
}

func (h *HMAC) GenerateToken() reset.PlaintextToken {
	b := make([]byte, tokenByteLen)
	if _, err := rand.Read(b); err != nil {
		// No fallback: a broken CSPRNG must not produce tokens.
		panic(fmt.Sprintf("could not read random bytes: %v", err))
	}
	return reset.PlaintextToken(base64.RawURLEncoding.EncodeToString(b))
}

func (h *HMAC) DigestToken(token reset.PlaintextToken) reset.TokenDigest {
	mac := hmac.New(sha256.New, h.secretKey)
	mac.Write([]byte(token))
	return reset.TokenDigest(hex.EncodeToString(mac.Sum(nil)))
}

func (h *HMAC) VerifyToken(token reset.PlaintextToken, stored reset.TokenDigest) bool {
	expected := h.DigestToken(token)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(stored)) == 1
}
