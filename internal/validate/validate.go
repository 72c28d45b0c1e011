// Package validate holds the raw field predicates shared by every registry
// plus a small builder for composing ad-hoc checks.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ErrInvalidData is wrapped by every validation-gated mutation that rejects
// its input. Callers match it with errors.Is.
var ErrInvalidData = errors.New("invalid data")

var (
	mobileRe = regexp.MustCompile(`^\d{10}$`)
	emailRe  = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.[a-zA-Z]{2,6}$`)
)

// Number covers the numeric field types the entities use.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

func NotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

func Positive[T Number](v T) bool {
	return v > 0
}

// Mobile reports whether s is exactly ten digits.
func Mobile(s string) bool {
	return mobileRe.MatchString(s)
}

func Email(s string) bool {
	return emailRe.MatchString(s)
}

// FutureTime reports whether t is strictly after now. Zero times fail.
func FutureTime(t time.Time) bool {
	return !t.IsZero() && t.After(time.Now())
}

// Builder chains predicates over a single value and fails with a single
// message when any of them rejects it.
type Builder[T any] struct {
	value T
	rules []func(T) bool
	msg   string
}

func Value[T any](v T) *Builder[T] {
	return &Builder[T]{value: v, msg: "validation failed"}
}

func (b *Builder[T]) Must(rule func(T) bool) *Builder[T] {
	b.rules = append(b.rules, rule)
	return b
}

func (b *Builder[T]) WithMessage(msg string) *Builder[T] {
	b.msg = msg
	return b
}

func (b *Builder[T]) Validate() error {
	for _, rule := range b.rules {
		if !rule(b.value) {
			return fmt.Errorf("%s: %w", b.msg, ErrInvalidData)
		}
	}
	return nil
}
