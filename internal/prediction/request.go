package prediction

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/Pratyasha-Tapaja/cbpmodel/internal/intensity"
)

var (
	// ErrInvalidInput covers any missing, null or non-numeric request field.
	ErrInvalidInput = errors.New("invalid or missing input")
	// ErrNegativeWeight rejects a weight the intensity index is undefined for.
	ErrNegativeWeight = intensity.ErrNegativeWeight
)

// Request field names as they appear in the JSON payload.
const (
	FieldAge       = "Age"
	FieldGender    = "Gender"
	FieldHeight    = "Height"
	FieldWeight    = "Weight"
	FieldBMI       = "BMI"
	FieldDuration  = "Duration"
	FieldHeartRate = "Heart_Rate"
)

// Request is a fully parsed prediction input.
type Request struct {
	Age       int
	Gender    int // 0/1 encoded
	Height    float64
	Weight    float64
	BMI       float64
	Duration  float64 // minutes
	HeartRate float64 // beats per minute
}

// DecodeRequest reads a JSON object and coerces every required field. It
// returns either a complete Request or an error wrapping ErrInvalidInput or
// ErrNegativeWeight; never a partial Request.
func DecodeRequest(r io.Reader) (Request, error) {
	raw, err := decodeObject(r)
	if err != nil {
		return Request{}, err
	}
	return parseFields(raw)
}

func decodeObject(r io.Reader) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decode body: %v", ErrInvalidInput, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: body is not a JSON object", ErrInvalidInput)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after object", ErrInvalidInput)
	}
	return raw, nil
}

func parseFields(raw map[string]json.RawMessage) (Request, error) {
	var (
		req Request
		err error
	)
	if req.Age, err = intField(raw, FieldAge); err != nil {
		return Request{}, err
	}
	if req.Gender, err = intField(raw, FieldGender); err != nil {
		return Request{}, err
	}
	if req.Height, err = floatField(raw, FieldHeight); err != nil {
		return Request{}, err
	}
	if req.Weight, err = floatField(raw, FieldWeight); err != nil {
		return Request{}, err
	}
	if req.BMI, err = floatField(raw, FieldBMI); err != nil {
		return Request{}, err
	}
	if req.Duration, err = floatField(raw, FieldDuration); err != nil {
		return Request{}, err
	}
	if req.HeartRate, err = floatField(raw, FieldHeartRate); err != nil {
		return Request{}, err
	}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

// Validate applies the domain checks that parsing alone cannot.
func (r Request) Validate() error {
	if r.Weight < 0 {
		return ErrNegativeWeight
	}
	return nil
}

// scalar decodes one field into a number. Numbers, numeric strings and
// booleans are accepted; booleans count as 1 and 0.
func scalar(raw map[string]json.RawMessage, name string) (any, error) {
	msg, ok := raw[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s is required", ErrInvalidInput, name)
	}

	dec := json.NewDecoder(bytes.NewReader(msg))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidInput, name, err)
	}

	switch val := v.(type) {
	case json.Number, string:
		return val, nil
	case bool:
		if val {
			return json.Number("1"), nil
		}
		return json.Number("0"), nil
	case nil:
		return nil, fmt.Errorf("%w: %s is null", ErrInvalidInput, name)
	default:
		return nil, fmt.Errorf("%w: %s has type %T", ErrInvalidInput, name, v)
	}
}

func floatField(raw map[string]json.RawMessage, name string) (float64, error) {
	v, err := scalar(raw, name)
	if err != nil {
		return 0, err
	}

	var s string
	switch val := v.(type) {
	case json.Number:
		s = val.String()
	case string:
		s = strings.TrimSpace(val)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s=%q is not a finite number", ErrInvalidInput, name, s)
	}
	return f, nil
}

// intField accepts integral strings and any finite JSON number within the int
// range; fractional numbers are truncated toward zero. Fractional strings are
// rejected.
func intField(raw map[string]json.RawMessage, name string) (int, error) {
	v, err := scalar(raw, name)
	if err != nil {
		return 0, err
	}

	switch val := v.(type) {
	case json.Number:
		if n, err := strconv.Atoi(val.String()); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(val.String(), 64)
		if err != nil || math.IsNaN(f) || f < math.MinInt || f >= math.MaxInt {
			return 0, fmt.Errorf("%w: %s=%s is not an integer", ErrInvalidInput, name, val)
		}
		return int(math.Trunc(f)), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidInput, name, val)
		}
		return n, nil
	}
	return 0, fmt.Errorf("%w: %s is not an integer", ErrInvalidInput, name)
}

// IntensityRequest carries the three inputs the intensity index depends on.
type IntensityRequest struct {
	HeartRate float64
	Duration  float64
	Weight    float64
}

// DecodeIntensityRequest parses {Heart_Rate, Duration, Weight} with the same
// coercion rules as DecodeRequest.
func DecodeIntensityRequest(r io.Reader) (IntensityRequest, error) {
	raw, err := decodeObject(r)
	if err != nil {
		return IntensityRequest{}, err
	}

	var req IntensityRequest
	if req.HeartRate, err = floatField(raw, FieldHeartRate); err != nil {
		return IntensityRequest{}, err
	}
	if req.Duration, err = floatField(raw, FieldDuration); err != nil {
		return IntensityRequest{}, err
	}
	if req.Weight, err = floatField(raw, FieldWeight); err != nil {
		return IntensityRequest{}, err
	}
	if req.Weight < 0 {
		return IntensityRequest{}, ErrNegativeWeight
	}
	return req, nil
}
