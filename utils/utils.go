package utils

import (
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

// ActivationCodeLength is the fixed length of enrollment activation codes.
const ActivationCodeLength = 8

// codeAlphabet deliberately omits 0/O, 1/I and lowercase so codes survive
// being read over the phone or typed from a printed letter.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateActivationCode generates a random activation code of the given
// length. The top-level rand functions are safe for concurrent callers.
func GenerateActivationCode(length int) string {
	var sb strings.Builder
	for i := 0; i < length; i++ {
		sb.WriteByte(codeAlphabet[rand.Intn(len(codeAlphabet))])
	}
	return sb.String()
}

// GenerateCertificateCode generates a globally unique certificate code
func GenerateCertificateCode() string {
	return "CERT-" + strings.ToUpper(uuid.NewString())
}
