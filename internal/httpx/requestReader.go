package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const maxBodyBytes = 1 << 20

var ErrEmptyBody = errors.New("request body is empty")

func ReadBody[InitType any](r *http.Request) (InitType, error) {
	var body InitType
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := decoder.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return body, ErrEmptyBody
		}
		return body, fmt.Errorf("decode body: %w", err)
	}
	return body, nil
}
