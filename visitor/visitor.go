// Package visitor derives the pseudo-identity used for anonymous likes and
// comments. The token is a cheap placeholder and collides easily; it is not an
// authentication mechanism.
package visitor

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// ErrMissingIP is returned when the client IP header is absent.
var ErrMissingIP = errors.New("missing client IP")

// EncodeIP turns a dotted IPv4 address into a short base-36 token.
//
// The dots are dropped, the leading decimal digits are parsed, the value is
// shifted left by one bit in signed 32-bit arithmetic and rendered in base 36.
// Input without leading digits encodes to "0". Tokens stored by earlier
// deployments depend on the 32-bit wrap, so large values may yield negative
// tokens such as "-9rmk42".
func EncodeIP(ip string) string {
	digits := strings.ReplaceAll(strings.TrimSpace(ip), ".", "")

	negative := false
	if digits != "" && (digits[0] == '-' || digits[0] == '+') {
		negative = digits[0] == '-'
		digits = digits[1:]
	}

	var v uint32
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		if c < '0' || c > '9' {
			break
		}
		v = v*10 + uint32(c-'0')
	}
	if negative {
		v = -v
	}

	shifted := int32(v << 1)
	return strconv.FormatInt(int64(shifted), 36)
}

// Resolver reads the visitor IP from a trusted proxy header.
type Resolver struct {
	Header string
}

// NewResolver returns a Resolver for the given header name.
func NewResolver(header string) Resolver {
	return Resolver{Header: header}
}

// IP returns the raw client IP carried by the request.
func (r Resolver) IP(req *http.Request) (string, error) {
	ip := strings.TrimSpace(req.Header.Get(r.Header))
	if ip == "" {
		return "", ErrMissingIP
	}
	return ip, nil
}

// Token returns the encoded visitor token for the request.
func (r Resolver) Token(req *http.Request) (string, error) {
	ip, err := r.IP(req)
	if err != nil {
		return "", err
	}
	return EncodeIP(ip), nil
}
