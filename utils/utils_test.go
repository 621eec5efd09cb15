package utils

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateActivationCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := GenerateActivationCode(ActivationCodeLength)
		assert.Len(t, code, ActivationCodeLength)
		for _, r := range code {
			assert.Contains(t, codeAlphabet, string(r))
		}
		seen[code] = true
	}
	// 100 draws from a 32^8 space should not collide
	assert.Greater(t, len(seen), 95)
}

func TestGenerateActivationCodeConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				assert.Len(t, GenerateActivationCode(ActivationCodeLength), ActivationCodeLength)
			}
		}()
	}
	wg.Wait()
}

func TestCodeAlphabetOmitsAmbiguousCharacters(t *testing.T) {
	for _, banned := range []string{"0", "O", "1", "I"} {
		assert.NotContains(t, codeAlphabet, banned)
	}
	assert.Equal(t, strings.ToUpper(codeAlphabet), codeAlphabet)
}

func TestGenerateCertificateCode(t *testing.T) {
	code := GenerateCertificateCode()
	assert.True(t, strings.HasPrefix(code, "CERT-"))
	assert.GreaterOrEqual(t, len(code), 12)
	assert.NotEqual(t, code, GenerateCertificateCode())
}
