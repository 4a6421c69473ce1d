package tokencodec

import (
	"fmt"
	"resetpoint/internal/core/domain/reset"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const SECRET_KEY = "test-secret-key"

type testSuite struct {
	suite.Suite
	codec *HMAC
}

func (suite *testSuite) SetupTest() {
	suite.codec = NewHMAC(SECRET_KEY)
}

func TestHMACTokenCodec(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestGeneratedTokenVerifies() {
	for i := 0; i < 10; i++ {
		s.Run(fmt.Sprint(i), func() {
			token := s.codec.GenerateToken()
			digest := s.codec.DigestToken(token)
			s.True(s.codec.VerifyToken(token, digest))
		})
	}
}

func (s *testSuite) TestDigestIsDeterministic() {
	token := s.codec.GenerateToken()
	s.Equal(s.codec.DigestToken(token), s.codec.DigestToken(token))
}

func (s *testSuite) TestTokenLengthAndCharset() {
	for i := 0; i < 100; i++ {
		token := string(s.codec.GenerateToken())
		s.Len(token, 43)
		for _, r := range token {
			s.True(
				strings.ContainsRune(
					"abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_",
					r,
				),
				"unexpected token character %q", r,
			)
		}
	}
}

func (s *testSuite) TestTokensAreUnique() {
	seen := make(map[reset.PlaintextToken]struct{})
	for i := 0; i < 1000; i++ {
		token := s.codec.GenerateToken()
		_, ok := seen[token]
		s.False(ok, "token %v generated twice", token)
		seen[token] = struct{}{}
	}
}

func (s *testSuite) TestVerifyFailCases() {
	token := s.codec.GenerateToken()
	digest := s.codec.DigestToken(token)

	cases := []struct {
		id     string
		token  reset.PlaintextToken
		stored reset.TokenDigest
	}{
		{id: "other token", token: s.codec.GenerateToken(), stored: digest},
		{id: "empty token", token: reset.PlaintextToken(""), stored: digest},
		{id: "empty digest", token: token, stored: reset.TokenDigest("")},
		{id: "truncated digest", token: token, stored: digest[:len(digest)-1]},
		{id: "token as digest", token: token, stored: reset.TokenDigest(token)},
	}
	for _, testcase := range cases {
		s.Run(testcase.id, func() {
			s.False(s.codec.VerifyToken(testcase.token, testcase.stored))
		})
	}
}

func (s *testSuite) TestVerifyFailsWithOtherSecret() {
	otherCodec := NewHMAC("other-secret-key")
	token := s.codec.GenerateToken()
	s.False(otherCodec.VerifyToken(token, s.codec.DigestToken(token)))
	s.False(s.codec.VerifyToken(token, otherCodec.DigestToken(token)))
}

func TestEmptySecretKeyPanics(t *testing.T) {
	require.Panics(t, func() { NewHMAC("") })
}
