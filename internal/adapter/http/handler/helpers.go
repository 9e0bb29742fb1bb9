package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxBodyBytes bounds the size of accepted request bodies
const MaxBodyBytes = 1 << 20

var errNotObject = errors.New("request body is not a JSON object")

// decodeJSONObject reads the request body as a single JSON object.
// Numbers are kept as json.Number so out-of-range values surface as invalid numbers
// rather than decode errors.
func decodeJSONObject(c *gin.Context) (map[string]any, error) {
	if c.Request.Body == nil {
		return nil, io.EOF
	}
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes))
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, io.EOF
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after JSON value")
	}

	object, ok := value.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	return object, nil
}
