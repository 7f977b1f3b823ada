package transport

import (
	"encoding/json"
	stderrors "errors"
	"mime"
	"net/http"

	"github.com/gorilla/schema"
	validatorx "github.com/muhammadheryan/car-traders/utils/validator"
)

var formDecoder = newFormDecoder()

func newFormDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.SetAliasTag("form")
	d.IgnoreUnknownKeys(true)
	return d
}

// decodeInput fills dst from a JSON or urlencoded body and validates it.
// The returned map is keyed by form field name; a non-nil error means the
// body itself could not be read.
func decodeInput(r *http.Request, dst any) (map[string]string, error) {
	fieldErrors := map[string]string{}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return nil, err
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		if err := formDecoder.Decode(dst, r.PostForm); err != nil {
			var multi schema.MultiError
			if !stderrors.As(err, &multi) {
				return nil, err
			}
			for field := range multi {
				fieldErrors[field] = "Not a valid value."
			}
		}
	}

	if err := validatorx.ValidateStruct(dst); err != nil {
		for field, msg := range validatorx.FieldErrors(err) {
			if _, exists := fieldErrors[field]; !exists {
				fieldErrors[field] = msg
			}
		}
	}

	if len(fieldErrors) == 0 {
		return nil, nil
	}
	return fieldErrors, nil
}
