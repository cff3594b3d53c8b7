package utilities

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

var ErrTrailingData = errors.New("unexpected data after JSON body")

// DecodeJSON decodes exactly one JSON value from r into v. Anything after
// that value, other than whitespace, is an error.
func DecodeJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return err
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return ErrTrailingData
	}
	return nil
}

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteMessage writes the {"message": code} envelope clients branch on.
func WriteMessage(w http.ResponseWriter, status int, code string) {
	WriteJSON(w, status, map[string]string{"message": code})
}
