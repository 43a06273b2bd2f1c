package export

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gbrlsnchs/jwt/v3"
	"github.com/skip2/go-qrcode"
)

// assemblyIssuer is the "iss" claim of assembly tokens. Tokens with any other
// issuer are not accepted as assembly tokens.
const assemblyIssuer = "tessella-assembly"

// DefaultTokenTTL is the validity of assembly tokens when no TTL is set.
const DefaultTokenTTL = 365 * 24 * time.Hour

// ErrInvalidToken is returned for assembly tokens which could not be verified.
var ErrInvalidToken = errors.New("invalid assembly token")

// AssemblyLink creates the links to the online assembly instructions which
// are printed on the cover of every pattern.
type AssemblyLink struct {
	// URLBase is the address to which the job ID is appended.
	URLBase string

	// Secret signs a token added to the link. Links have no token when it is
	// empty.
	Secret string

	// TTL is how long the token is valid. Zero means DefaultTokenTTL.
	TTL time.Duration
}

// URL returns the assembly link for a job.
func (l AssemblyLink) URL(jobID string, now time.Time) (string, error) {
	link := strings.TrimRight(l.URLBase, "/") + "/" + url.PathEscape(jobID)
	if l.Secret == "" {
		return link, nil
	}

	ttl := l.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	pl := jwt.Payload{
		Issuer:         assemblyIssuer,
		Subject:        jobID,
		IssuedAt:       jwt.NumericDate(now),
		ExpirationTime: jwt.NumericDate(now.Add(ttl)),
	}

	token, err := jwt.Sign(pl, jwt.NewHS256([]byte(l.Secret)))
	if err != nil {
		return "", fmt.Errorf("signing assembly token: %w", err)
	}

	return link + "?token=" + url.QueryEscape(string(token)), nil
}

// VerifyAssemblyToken checks a token created by AssemblyLink.URL and returns
// the job ID it was created for.
func VerifyAssemblyToken(secret, token string, now time.Time) (string, error) {
	if secret == "" {
		return "", ErrInvalidToken
	}

	var pl jwt.Payload
	_, err := jwt.Verify(
		[]byte(token),
		jwt.NewHS256([]byte(secret)),
		&pl,
		jwt.ValidatePayload(
			&pl,
			jwt.IssuerValidator(assemblyIssuer),
			jwt.ExpirationTimeValidator(now),
		),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}

	if pl.Subject == "" {
		return "", fmt.Errorf("%w: no job in token", ErrInvalidToken)
	}

	return pl.Subject, nil
}

// QRCode returns a PNG image of a QR code for content with the given side in
// pixels.
func QRCode(content string, size int) ([]byte, error) {
	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("creating QR code: %w", err)
	}

	png, err := qr.PNG(size)
	if err != nil {
		return nil, fmt.Errorf("encoding QR code: %w", err)
	}

	return png, nil
}
