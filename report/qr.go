package report

import (
	"net/url"

	"github.com/skip2/go-qrcode"
)

// QREncoder turns a payload into a PNG image.
type QREncoder interface {
	Encode(payload string) ([]byte, error)
}

// GoQR encodes with github.com/skip2/go-qrcode.
type GoQR struct {
	Level qrcode.RecoveryLevel
	Size  int
}

// DefaultQR is a medium recovery, 512 pixel encoder.
var DefaultQR = GoQR{Level: qrcode.Medium, Size: 512}

func (q GoQR) Encode(payload string) ([]byte, error) {
	size := q.Size
	if size <= 0 {
		size = 512
	}
	return qrcode.Encode(payload, q.Level, size)
}

// WithLeaveCode adds the leave code to an inquiry URL as the "code" query
// parameter. The fragment is kept, so hash-routed pages still work.
func WithLeaveCode(inquiry, code string) string {
	if code == "" {
		return inquiry
	}
	u, err := url.Parse(inquiry)
	if err != nil {
		return inquiry
	}
	q := u.Query()
	q.Set("code", code)
	u.RawQuery = q.Encode()
	return u.String()
}
