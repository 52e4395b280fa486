package auth

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Millis is an instant in whole milliseconds since the Unix epoch.
//
// On the wire it is a JWT NumericDate: seconds, with a fraction of at most
// three digits when the instant is not on a whole second. Encoding works on
// the integer directly, so a value always decodes to itself.
type Millis int64

// MillisOf converts t to Millis.
func MillisOf(t time.Time) Millis {
	return Millis(t.UnixMilli())
}

// Time converts m back to a time.Time.
func (m Millis) Time() time.Time {
	return time.UnixMilli(int64(m))
}

func (m Millis) MarshalJSON() ([]byte, error) {
	v := int64(m)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	sec, frac := v/1000, v%1000
	if frac == 0 {
		return []byte(sign + strconv.FormatInt(sec, 10)), nil
	}
	fraction := strings.TrimRight(fmt.Sprintf("%03d", frac), "0")
	return []byte(sign + strconv.FormatInt(sec, 10) + "." + fraction), nil
}

func (m *Millis) UnmarshalJSON(b []byte) error {
	s := string(b)

	// Exponent forms only come from foreign issuers; go through float.
	if strings.ContainsAny(s, "eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("numeric date %q: %w", s, err)
		}
		ms := math.Round(f * 1000)
		if math.IsNaN(ms) || ms >= math.MaxInt64 || ms <= math.MinInt64 {
			return fmt.Errorf("numeric date %q: %w", s, errOutOfRange)
		}
		*m = Millis(ms)
		return nil
	}

	intPart, frac, _ := strings.Cut(s, ".")
	neg := strings.HasPrefix(intPart, "-")
	digits := strings.TrimPrefix(intPart, "-")
	if !isDigits(digits) || (frac != "" && !isDigits(frac)) || strings.HasSuffix(s, ".") {
		return fmt.Errorf("numeric date %q: %w", s, errNotNumeric)
	}

	sec, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return fmt.Errorf("numeric date %q: %w", s, err)
	}
	if sec > maxSeconds {
		return fmt.Errorf("numeric date %q: %w", s, errOutOfRange)
	}

	// Sub-millisecond digits are truncated.
	if len(frac) > 3 {
		frac = frac[:3]
	}
	frac += strings.Repeat("0", 3-len(frac))
	ms, _ := strconv.ParseInt(frac, 10, 64)

	total := sec*1000 + ms
	if neg {
		total = -total
	}
	*m = Millis(total)
	return nil
}

var (
	errNotNumeric = errors.New("not a number")
	errOutOfRange = errors.New("out of range")
)

// maxSeconds is the largest NumericDate whose millisecond count fits int64
// with room for a three-digit fraction.
const maxSeconds = math.MaxInt64/1000 - 1

// maxMillis is the largest Millis that survives a JSON round trip.
const maxMillis = maxSeconds*1000 + 999

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Claims is the token payload: who the token is for and its validity window.
type Claims struct {
	Subject   string  `json:"sub,omitempty"`
	IssuedAt  *Millis `json:"iat,omitempty"`
	ExpiresAt *Millis `json:"exp,omitempty"`
}

var _ jwt.Claims = (*Claims)(nil)

func (c *Claims) GetExpirationTime() (*jwt.NumericDate, error) {
	return numericDate(c.ExpiresAt), nil
}

func (c *Claims) GetIssuedAt() (*jwt.NumericDate, error) {
	return numericDate(c.IssuedAt), nil
}

func (c *Claims) GetNotBefore() (*jwt.NumericDate, error) { return nil, nil }

func (c *Claims) GetIssuer() (string, error) { return "", nil }

func (c *Claims) GetSubject() (string, error) { return c.Subject, nil }

func (c *Claims) GetAudience() (jwt.ClaimStrings, error) { return nil, nil }

func numericDate(m *Millis) *jwt.NumericDate {
	if m == nil {
		return nil
	}
	return &jwt.NumericDate{Time: m.Time()}
}
