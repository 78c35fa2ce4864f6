package signer

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// responseShape names one of the accepted signer response encodings.
type responseShape string

const (
	shapeString        responseShape = "string"
	shapeSignature     responseShape = "signature"
	shapeData          responseShape = "data"
	shapeDataSignature responseShape = "data.signature"
)

type responseParser struct {
	shape responseShape
	parse func(raw json.RawMessage) (string, bool)
}

// responseParsers are tried in order, the first match wins.
var responseParsers = []responseParser{
	{shapeString, parseBareString},
	{shapeSignature, parseSignatureField},
	{shapeDataSignature, parseDataSignatureField},
	{shapeData, parseDataString},
}

func parseBareString(raw json.RawMessage) (string, bool) {
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil || s == nil {
		return "", false
	}
	return *s, true
}

func parseSignatureField(raw json.RawMessage) (string, bool) {
	var body struct {
		Signature *string `json:"signature"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || body.Signature == nil {
		return "", false
	}
	return *body.Signature, true
}

func parseDataString(raw json.RawMessage) (string, bool) {
	var body struct {
		Data *string `json:"data"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || body.Data == nil {
		return "", false
	}
	return *body.Data, true
}

func parseDataSignatureField(raw json.RawMessage) (string, bool) {
	var body struct {
		Data *struct {
			Signature *string `json:"signature"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || body.Data == nil || body.Data.Signature == nil {
		return "", false
	}
	return *body.Data.Signature, true
}

// ParseSignerResponse extracts the signature from any accepted response shape: a bare string,
// {"signature": s}, {"data": s} or {"data": {"signature": s}}. One leading 0x is stripped.
func ParseSignerResponse(raw json.RawMessage) (Signature, error) {
	for _, p := range responseParsers {
		value, ok := p.parse(raw)
		if !ok {
			continue
		}

		sig := strings.TrimPrefix(value, "0x")
		if len(sig) != SignatureHexLength {
			return "", errors.Wrapf(ErrInvalidSignatureLength, "got %d hex chars in %s response, want %d", len(sig), p.shape, SignatureHexLength)
		}

		return Signature(sig), nil
	}

	log.Warn().Str("shape", describeShape(raw)).Msg("Unrecognized signer response")

	return "", errors.Wrapf(ErrInvalidSignerResponse, "unrecognized shape %s", describeShape(raw))
}

// describeShape renders the JSON structure of raw without its values, so signatures never reach the logs.
func describeShape(raw json.RawMessage) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "non-json"
	}
	return shapeOf(v)
}

func shapeOf(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "bool"
	case []any:
		return "array"
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k, child := range t {
			keys = append(keys, k+":"+shapeOf(child))
		}
		sort.Strings(keys)
		return "{" + strings.Join(keys, ",") + "}"
	default:
		return "unknown"
	}
}
