// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package intent

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownValue is returned by the Parse functions for strings outside the
// closed enumerations.
var ErrUnknownValue = errors.New("unknown intent value")

// Dimension names one axis of an Intent. The string values double as the
// catalog metadata keys.
type Dimension string

const (
	DimensionStyle   Dimension = "style"
	DimensionPurpose Dimension = "purpose"
	DimensionMotion  Dimension = "motion"
)

// Dimensions lists every axis in evaluation order.
var Dimensions = []Dimension{DimensionStyle, DimensionPurpose, DimensionMotion}

// Style is the visual style of a character.
type Style string

const (
	StyleNeutral   Style = "neutral"
	StyleRealistic Style = "realistic"
	StyleCartoon   Style = "cartoon"
	StyleStylized  Style = "stylized"
	StyleRobotic   Style = "robotic"
	StyleFantasy   Style = "fantasy"
)

// StyleValues is the closed Style enumeration in table order.
var StyleValues = []Style{StyleNeutral, StyleRealistic, StyleCartoon, StyleStylized, StyleRobotic, StyleFantasy}

// Purpose is what the character will be used for.
type Purpose string

const (
	PurposeGeneral      Purpose = "general"
	PurposeAnimation    Purpose = "animation"
	PurposeGame         Purpose = "game"
	PurposePresentation Purpose = "presentation"
	PurposeSocial       Purpose = "social"
	PurposeFitness      Purpose = "fitness"
)

// PurposeValues is the closed Purpose enumeration in table order.
var PurposeValues = []Purpose{PurposeGeneral, PurposeAnimation, PurposeGame, PurposePresentation, PurposeSocial, PurposeFitness}

// Motion is what the character is doing.
type Motion string

const (
	MotionNone     Motion = "none"
	MotionIdle     Motion = "idle"
	MotionWalking  Motion = "walking"
	MotionRunning  Motion = "running"
	MotionDancing  Motion = "dancing"
	MotionJumping  Motion = "jumping"
	MotionWaving   Motion = "waving"
	MotionFighting Motion = "fighting"
	MotionSitting  Motion = "sitting"
)

// MotionValues is the closed Motion enumeration in table order.
var MotionValues = []Motion{
	MotionNone, MotionIdle, MotionWalking, MotionRunning, MotionDancing,
	MotionJumping, MotionWaving, MotionFighting, MotionSitting,
}

func parseEnum[T ~string](dim Dimension, s string, values []T) (T, error) {
	v := T(strings.ToLower(strings.TrimSpace(s)))
	for _, candidate := range values {
		if candidate == v {
			return candidate, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: %s %q", ErrUnknownValue, dim, s)
}

// ParseStyle parses a case-insensitive Style name.
func ParseStyle(s string) (Style, error) {
	return parseEnum(DimensionStyle, s, StyleValues)
}

// ParsePurpose parses a case-insensitive Purpose name.
func ParsePurpose(s string) (Purpose, error) {
	return parseEnum(DimensionPurpose, s, PurposeValues)
}

// ParseMotion parses a case-insensitive Motion name.
func ParseMotion(s string) (Motion, error) {
	return parseEnum(DimensionMotion, s, MotionValues)
}

// ParseValue parses s for the given dimension and returns the canonical
// string form.
func ParseValue(dim Dimension, s string) (string, error) {
	switch dim {
	case DimensionStyle:
		v, err := ParseStyle(s)
		return string(v), err
	case DimensionPurpose:
		v, err := ParsePurpose(s)
		return string(v), err
	case DimensionMotion:
		v, err := ParseMotion(s)
		return string(v), err
	default:
		return "", fmt.Errorf("%w: dimension %q", ErrUnknownValue, dim)
	}
}

// DefaultValue returns the fallback value of a dimension.
func DefaultValue(dim Dimension) string {
	switch dim {
	case DimensionStyle:
		return string(StyleNeutral)
	case DimensionPurpose:
		return string(PurposeGeneral)
	default:
		return string(MotionNone)
	}
}

// Intent is the structured reading of one query. It lives for a single
// request; sessions keep only the detected values.
type Intent struct {
	Style   Style   `json:"style"`
	Purpose Purpose `json:"purpose"`
	Motion  Motion  `json:"motion"`

	// DimensionConfidence holds the per-axis confidence in [0,1].
	DimensionConfidence map[Dimension]float64 `json:"dimension_confidence"`

	// Confidence is the overall confidence in [0,1].
	Confidence float64 `json:"confidence"`

	AmbiguousTerms        []string               `json:"ambiguous_terms"`
	ClarifyingSuggestions []string               `json:"clarifying_suggestions"`
	MatchedKeywords       map[Dimension][]string `json:"matched_keywords"`
	Reasoning             string                 `json:"reasoning"`
}

// Value returns the string value of a dimension.
func (in *Intent) Value(dim Dimension) string {
	switch dim {
	case DimensionStyle:
		return string(in.Style)
	case DimensionPurpose:
		return string(in.Purpose)
	default:
		return string(in.Motion)
	}
}

// IsDefault reports whether dim still holds its fallback value.
func (in *Intent) IsDefault(dim Dimension) bool {
	return in.Value(dim) == DefaultValue(dim)
}

// NonDefault lists the dimensions carrying a specific value.
func (in *Intent) NonDefault() []Dimension {
	var out []Dimension
	for _, dim := range Dimensions {
		if !in.IsDefault(dim) {
			out = append(out, dim)
		}
	}
	return out
}

// IsAmbiguous reports whether any trigger term fired.
func (in *Intent) IsAmbiguous() bool {
	return len(in.AmbiguousTerms) > 0
}

func (in *Intent) set(dim Dimension, value string) {
	switch dim {
	case DimensionStyle:
		in.Style = Style(value)
	case DimensionPurpose:
		in.Purpose = Purpose(value)
	default:
		in.Motion = Motion(value)
	}
}
