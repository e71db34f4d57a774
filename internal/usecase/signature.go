package usecase

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// SignatureHeader carries "t=<unix>,v1=<hex hmac>".
const SignatureHeader = "Calendly-Webhook-Signature"

type SignatureOptions struct {
	// Tolerance bounds the age of the signed timestamp. Zero disables the check.
	Tolerance time.Duration
	Now       time.Time
}

type parsedSignature struct {
	timestamp  string
	signatures []string
}

// ComputeSignature returns hex(HMAC-SHA256(secret, "<timestamp>.<payload>")).
func ComputeSignature(secret, timestamp string, payload []byte) string {
	return hex.EncodeToString(signatureMAC(secret, timestamp, payload))
}

func signatureMAC(secret, timestamp string, payload []byte) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	return mac.Sum(nil)
}

func parseSignatureHeader(header string) (parsedSignature, bool) {
	var p parsedSignature
	for _, part := range strings.Split(header, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch key {
		case "t":
			p.timestamp = value
		case "v1":
			if value != "" {
				p.signatures = append(p.signatures, value)
			}
		}
	}
	if p.timestamp == "" || len(p.signatures) == 0 {
		return p, false
	}
	if _, err := strconv.ParseInt(p.timestamp, 10, 64); err != nil {
		return p, false
	}
	return p, true
}

// VerifySignature authenticates a raw webhook body against its signature
// header. Failures are *DomainError of kind KindAuthentication.
func VerifySignature(payload []byte, header, secret string, opts SignatureOptions) error {
	parsed, ok := parseSignatureHeader(header)
	if !ok {
		return &DomainError{
			Kind:    KindAuthentication,
			Code:    CodeInvalidSignatureFormat,
			Message: "signature header must contain t and v1",
		}
	}

	expected := signatureMAC(secret, parsed.timestamp, payload)
	matched := false
	for _, candidate := range parsed.signatures {
		given, err := hex.DecodeString(candidate)
		if err != nil {
			continue
		}
		if hmac.Equal(expected, given) {
			matched = true
		}
	}
	if !matched {
		return &DomainError{
			Kind:    KindAuthentication,
			Code:    CodeInvalidSignature,
			Message: "signature mismatch",
		}
	}

	if opts.Tolerance > 0 {
		unix, _ := strconv.ParseInt(parsed.timestamp, 10, 64)
		age := opts.Now.Sub(time.Unix(unix, 0))
		if age < 0 {
			age = -age
		}
		if age > opts.Tolerance {
			return &DomainError{
				Kind:    KindAuthentication,
				Code:    CodeSignatureExpired,
				Message: "signature timestamp outside tolerance window",
			}
		}
	}

	return nil
}
