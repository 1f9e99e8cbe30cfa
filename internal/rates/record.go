// Package rates decodes negotiated-rate records and reduces them to a
// single average rate.
package rates

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// PriceEntry is a single negotiated price.
type PriceEntry struct {
	NegotiatedRate float64 `json:"negotiated_rate"`
}

// RateGroup groups the prices negotiated under one arrangement.
type RateGroup struct {
	NegotiatedPrices []PriceEntry `json:"negotiated_prices"`
}

// Record is one decoded input line.
type Record struct {
	BillingCode     string      `json:"billing_code"`
	Name            string      `json:"name"`
	NegotiatedRates []RateGroup `json:"negotiated_rates"`
}

// MissingFieldError reports a required field that is absent or null.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field `%s`", e.Field)
}

// DuplicateFieldError reports a known field that appears twice in one object.
type DuplicateFieldError struct {
	Field string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("duplicate field `%s`", e.Field)
}

// FieldTypeError reports a value of the wrong JSON type.
type FieldTypeError struct {
	Field    string
	Expected string
	Found    string
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("invalid type for `%s`: expected %s, found %s", e.Field, e.Expected, e.Found)
}

var errTrailingData = errors.New("trailing characters after record")

// Decode parses one JSON object into a Record in a single pass. Required
// fields must be present exactly once, non-null and of the right type;
// unknown fields are skipped. Field names match exactly.
func Decode(data []byte) (Record, error) {
	d := &decoder{dec: json.NewDecoder(bytes.NewReader(data))}
	d.dec.UseNumber()

	rec, err := d.record()
	if err != nil {
		return Record{}, err
	}
	if _, err := d.dec.Token(); err != io.EOF {
		if err == nil {
			err = errTrailingData
		}
		return Record{}, err
	}
	return rec, nil
}

type decoder struct {
	dec *json.Decoder
}

// token is json.Decoder.Token, except that running out of input inside a
// record is an unexpected EOF.
func (d *decoder) token() (json.Token, error) {
	tok, err := d.dec.Token()
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return tok, err
}

func (d *decoder) record() (Record, error) {
	var rec Record
	var seen fields
	err := d.object("record", func(key string) error {
		var err error
		switch key {
		case "billing_code":
			if err = seen.add(key); err == nil {
				rec.BillingCode, err = d.str(key)
			}
		case "name":
			if err = seen.add(key); err == nil {
				rec.Name, err = d.str(key)
			}
		case "negotiated_rates":
			if err = seen.add(key); err == nil {
				rec.NegotiatedRates = []RateGroup{}
				err = d.array(key, func() error {
					g, err := d.rateGroup()
					rec.NegotiatedRates = append(rec.NegotiatedRates, g)
					return err
				})
			}
		default:
			err = d.skip()
		}
		return err
	})
	if err != nil {
		return Record{}, err
	}
	return rec, seen.require("billing_code", "name", "negotiated_rates")
}

func (d *decoder) rateGroup() (RateGroup, error) {
	var g RateGroup
	var seen fields
	err := d.object("negotiated_rates", func(key string) error {
		if key != "negotiated_prices" {
			return d.skip()
		}
		if err := seen.add(key); err != nil {
			return err
		}
		g.NegotiatedPrices = []PriceEntry{}
		return d.array(key, func() error {
			p, err := d.priceEntry()
			g.NegotiatedPrices = append(g.NegotiatedPrices, p)
			return err
		})
	})
	if err != nil {
		return RateGroup{}, err
	}
	return g, seen.require("negotiated_prices")
}

func (d *decoder) priceEntry() (PriceEntry, error) {
	var p PriceEntry
	var seen fields
	err := d.object("negotiated_prices", func(key string) error {
		if key != "negotiated_rate" {
			return d.skip()
		}
		if err := seen.add(key); err != nil {
			return err
		}
		var err error
		p.NegotiatedRate, err = d.number(key)
		return err
	})
	if err != nil {
		return PriceEntry{}, err
	}
	return p, seen.require("negotiated_rate")
}

// object reads one object, calling member for each key with the decoder
// positioned at its value. A null counts as an object with no members.
func (d *decoder) object(field string, member func(key string) error) error {
	tok, err := d.token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if tok != json.Delim('{') {
		return &FieldTypeError{Field: field, Expected: "an object", Found: kind(tok)}
	}
	for d.dec.More() {
		tok, err := d.token()
		if err != nil {
			return err
		}
		if err := member(tok.(string)); err != nil {
			return err
		}
	}
	_, err = d.token()
	return err
}

func (d *decoder) array(field string, elem func() error) error {
	tok, err := d.token()
	if err != nil {
		return err
	}
	if tok == nil {
		return &MissingFieldError{Field: field}
	}
	if tok != json.Delim('[') {
		return &FieldTypeError{Field: field, Expected: "an array", Found: kind(tok)}
	}
	for d.dec.More() {
		if err := elem(); err != nil {
			return err
		}
	}
	_, err = d.token()
	return err
}

func (d *decoder) str(field string) (string, error) {
	tok, err := d.token()
	if err != nil {
		return "", err
	}
	switch v := tok.(type) {
	case string:
		return v, nil
	case nil:
		return "", &MissingFieldError{Field: field}
	default:
		return "", &FieldTypeError{Field: field, Expected: "a string", Found: kind(tok)}
	}
}

func (d *decoder) number(field string) (float64, error) {
	tok, err := d.token()
	if err != nil {
		return 0, err
	}
	switch v := tok.(type) {
	case json.Number:
		f, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return 0, fmt.Errorf("field `%s`: %w", field, err)
		}
		return f, nil
	case nil:
		return 0, &MissingFieldError{Field: field}
	default:
		return 0, &FieldTypeError{Field: field, Expected: "a number", Found: kind(tok)}
	}
}

// skip consumes one value of any shape.
func (d *decoder) skip() error {
	depth := 0
	for {
		tok, err := d.token()
		if err != nil {
			return err
		}
		switch tok {
		case json.Delim('{'), json.Delim('['):
			depth++
		case json.Delim('}'), json.Delim(']'):
			depth--
		}
		if depth == 0 {
			return nil
		}
	}
}

func kind(tok json.Token) string {
	switch tok {
	case nil:
		return "null"
	case json.Delim('{'):
		return "an object"
	case json.Delim('['):
		return "an array"
	}
	switch tok.(type) {
	case string:
		return "a string"
	case json.Number:
		return "a number"
	case bool:
		return "a boolean"
	}
	return fmt.Sprintf("%v", tok)
}

// fields tracks which known fields an object has set.
type fields []string

func (f *fields) add(name string) error {
	for _, seen := range *f {
		if seen == name {
			return &DuplicateFieldError{Field: name}
		}
	}
	*f = append(*f, name)
	return nil
}

func (f fields) require(names ...string) error {
next:
	for _, name := range names {
		for _, seen := range f {
			if seen == name {
				continue next
			}
		}
		return &MissingFieldError{Field: name}
	}
	return nil
}
