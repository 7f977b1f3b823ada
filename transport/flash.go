package transport

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/muhammadheryan/car-traders/model"
)

const flashCookie = "flash"

func encodeFlash(notices []model.Notice) (string, error) {
	raw, err := json.Marshal(notices)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func decodeFlash(value string) ([]model.Notice, error) {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, err
	}
	var notices []model.Notice
	if err := json.Unmarshal(raw, &notices); err != nil {
		return nil, err
	}
	return notices, nil
}

// readFlash returns the notices left by the previous response. A malformed
// cookie reads as empty.
func readFlash(r *http.Request) []model.Notice {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	notices, err := decodeFlash(c.Value)
	if err != nil {
		return nil
	}
	return notices
}

// writeFlash stores pending notices for the next request, or clears the
// cookie once its notices have been shown.
func (s *RestHandler) writeFlash(w http.ResponseWriter, req *Request, carry []model.Notice) {
	if len(carry) == 0 {
		if _, err := req.Cookie(flashCookie); err == nil {
			http.SetCookie(w, s.cookie(flashCookie, "", -1))
		}
		return
	}
	value, err := encodeFlash(carry)
	if err != nil {
		return
	}
	http.SetCookie(w, s.cookie(flashCookie, value, 0))
}
