package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SettingKind is fixed per key in the schema.
type SettingKind string

const (
	KindString  SettingKind = "string"
	KindInteger SettingKind = "integer"
	KindFloat   SettingKind = "float"
	KindBoolean SettingKind = "boolean"
)

// SettingValue is a tagged variant. Only the field matching Kind is meaningful.
type SettingValue struct {
	Kind  SettingKind
	Str   string
	Int   int64
	Float float64
	Bool  bool
}

func StringValue(s string) SettingValue { return SettingValue{Kind: KindString, Str: s} }
func IntValue(i int64) SettingValue { return SettingValue{Kind: KindInteger, Int: i} }
func FloatValue(f float64) SettingValue { return SettingValue{Kind: KindFloat, Float: f} }
func BoolValue(b bool) SettingValue { return SettingValue{Kind: KindBoolean, Bool: b} }

// ParseSettingValue converts the stored text form into a typed value.
func ParseSettingValue(kind SettingKind, raw string) (SettingValue, error) {
	raw = strings.TrimSpace(raw)
	switch kind {
	case KindString:
		return StringValue(raw), nil
	case KindInteger:
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return SettingValue{}, fmt.Errorf("parse integer setting %q: %w", raw, err)
		}
		return IntValue(i), nil
	case KindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return SettingValue{}, fmt.Errorf("parse float setting %q: %w", raw, err)
		}
		return FloatValue(f), nil
	case KindBoolean:
		switch strings.ToLower(raw) {
		case "true", "1", "yes":
			return BoolValue(true), nil
		case "false", "0", "no":
			return BoolValue(false), nil
		}
		return SettingValue{}, fmt.Errorf("parse boolean setting %q", raw)
	default:
		return SettingValue{}, fmt.Errorf("unknown setting kind %q", kind)
	}
}

// Encode returns the text form written to storage.
func (v SettingValue) Encode() string {
	switch v.Kind {
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	case KindBoolean:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Str
	}
}

// Interface returns the Go value held by the variant.
func (v SettingValue) Interface() any {
	switch v.Kind {
	case KindInteger:
		return v.Int
	case KindFloat:
		return v.Float
	case KindBoolean:
		return v.Bool
	default:
		return v.Str
	}
}

func (v SettingValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON infers the kind from the JSON token. Whole numbers decode as
// integers.
func (v *SettingValue) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case nil:
	case string:
		*v = StringValue(t)
	case bool:
		*v = BoolValue(t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			*v = IntValue(i)
			return nil
		}
		f, err := t.Float64()
		if err != nil {
			return fmt.Errorf("parse setting number %q: %w", t, err)
		}
		*v = FloatValue(f)
	default:
		return fmt.Errorf("unsupported setting value %s", data)
	}
	return nil
}

// SettingValueFromJSON builds a value of the given kind from a decoded JSON scalar.
func SettingValueFromJSON(kind SettingKind, raw json.RawMessage) (SettingValue, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ParseSettingValue(kind, s)
	}
	return ParseSettingValue(kind, string(raw))
}

type Setting struct {
	Key          string       `json:"key"`
	Value        SettingValue `json:"value"`
	DefaultValue SettingValue `json:"default_value"`
	Kind         SettingKind  `json:"kind"`
	Description  string       `json:"description"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Well-known setting keys.
const (
	SettingDailyWordGoal          = "daily_word_goal"
	SettingDailyTimeGoal          = "daily_time_goal"
	SettingWrongNoteResolveStreak = "wrong_note_resolve_streak"
	SettingAutoBackupEnabled      = "auto_backup_enabled"
)
