package ast

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Value is a sealed interface over the typed literal payloads. Every
// implementation preserves the source text of the literal and exposes the
// closest general-purpose Go value through Native().
type Value interface {
	value()

	// Native returns the Go projection of the literal: nil, bool, string,
	// int64, float64, time.Time, uuid.UUID or []byte. Durations project to
	// their day count as float64.
	Native() any
}

// Null is the null literal.
type Null struct{}

func (Null) value()      {}
func (Null) Native() any { return nil }

// String is a single-quoted string literal with quote doubling already
// resolved.
type String struct {
	Val string
}

func (String) value()        {}
func (s String) Native() any { return s.Val }

// NumberKind distinguishes the lexical shape of a numeric literal.
type NumberKind uint8

const (
	Integer NumberKind = iota
	Decimal
	Float
)

// Number is a numeric literal. Text is the exact source spelling so that
// re-rendering introduces no precision or formatting drift.
type Number struct {
	Text string
	Kind NumberKind
}

func (Number) value() {}

func (n Number) Native() any {
	if n.Kind == Integer {
		v, err := strconv.ParseInt(n.Text, 10, 64)
		if err == nil {
			return v
		}
		// Out of int64 range, fall through to float.
	}
	v, _ := strconv.ParseFloat(n.Text, 64)
	return v
}

// Boolean is a true/false literal.
type Boolean struct {
	Val bool
}

func (Boolean) value()        {}
func (b Boolean) Native() any { return b.Val }

// Date is a calendar date literal in ISO form, e.g. 2024-01-31.
type Date struct {
	Val string
}

func (Date) value() {}

func (d Date) Native() any {
	t, _ := time.Parse("2006-01-02", d.Val)
	return t
}

// Time is a time-of-day literal, e.g. 14:30 or 14:30:05.123.
type Time struct {
	Val string
}

func (Time) value() {}

func (t Time) Native() any {
	for _, layout := range []string{"15:04:05.999999999999", "15:04:05", "15:04"} {
		if v, err := time.Parse(layout, t.Val); err == nil {
			return v
		}
	}
	return time.Time{}
}

// DateTime is a date-time literal with optional UTC offset, e.g.
// 2024-01-31T14:30:00Z.
type DateTime struct {
	Val string
}

func (DateTime) value() {}

func (d DateTime) Native() any {
	for _, layout := range []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999999999",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04Z07:00",
		"2006-01-02T15:04",
	} {
		if v, err := time.Parse(layout, d.Val); err == nil {
			return v
		}
	}
	return time.Time{}
}

var durationPattern = regexp.MustCompile(
	`^([+-])?P(?:(\d+)Y)?(?:(\d+)M)?(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// Duration is an ISO-8601-style duration literal. Val is the uppercased
// payload between the quotes, e.g. "P1Y2M3DT4H".
type Duration struct {
	Val string
}

func (Duration) value() {}

// NewDuration validates text as a duration payload. Components must appear
// in Y, M, D, H, M, S order with the time part behind a T separator.
func NewDuration(text string) (Duration, error) {
	up := strings.ToUpper(text)
	if !durationPattern.MatchString(up) {
		return Duration{}, fmt.Errorf("invalid duration %q", text)
	}
	return Duration{Val: up}, nil
}

// Native projects the duration onto its total day count as float64.
func (d Duration) Native() any { return d.Days() }

// Days returns the total elapsed days of the duration. Years and months use
// fixed-length approximations (365.25 and 30.44 days respectively) so that
// stored queries keep comparing consistently; this is intentionally not
// exact calendar arithmetic.
func (d Duration) Days() float64 {
	m := durationPattern.FindStringSubmatch(d.Val)
	if m == nil {
		return 0
	}
	num := func(s string) float64 {
		if s == "" {
			return 0
		}
		v, _ := strconv.ParseFloat(s, 64)
		return v
	}
	total := num(m[2])*365.25 +
		num(m[3])*30.44 +
		num(m[4]) +
		num(m[5])/24 +
		num(m[6])/1440 +
		num(m[7])/86400
	if m[1] == "-" {
		total = -total
	}
	return total
}

// Components splits the duration into its parts. Each component is the
// source digits without its unit letter, or "" when absent.
func (d Duration) Components() (sign, years, months, days, hours, minutes, seconds string) {
	m := durationPattern.FindStringSubmatch(d.Val)
	if m == nil {
		return
	}
	return m[1], m[2], m[3], m[4], m[5], m[6], m[7]
}

// GUID is a GUID literal in 8-4-4-4-12 hex form.
type GUID struct {
	Val string
}

func (GUID) value() {}

func (g GUID) Native() any {
	v, _ := uuid.Parse(g.Val)
	return v
}

// Binary is a binary literal carrying the base64url payload as written,
// with or without padding.
type Binary struct {
	Val string
}

func (Binary) value() {}

// Native decodes the payload to raw bytes.
func (b Binary) Native() any {
	enc := base64.RawURLEncoding
	if strings.HasSuffix(b.Val, "=") {
		enc = base64.URLEncoding
	}
	v, _ := enc.DecodeString(b.Val)
	return v
}

// Geography is a geography literal carrying its WKT payload, e.g.
// "SRID=4326;POINT(2.0 3.0)".
type Geography struct {
	Val string
}

func (Geography) value()        {}
func (g Geography) Native() any { return g.Val }
