package wikidata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// SnakType classifies the value of a statement.
type SnakType string

const (
	SnakValue     SnakType = "value"
	SnakNoValue   SnakType = "novalue"
	SnakSomeValue SnakType = "somevalue"
)

// Claims maps property ids to their statements, in the order the data
// source returned them.
type Claims = orderedmap.OrderedMap[string, []Statement]

// NewClaims returns an empty claim map.
func NewClaims() *Claims {
	return orderedmap.New[string, []Statement]()
}

// LanguageValue is a localized string.
type LanguageValue struct {
	Language string `json:"language"`
	Value    string `json:"value"`
}

// Entity is the record returned by the data source for one entity id.
//
// Empty maps are serialized by the API as JSON arrays; they decode to empty
// values instead of failing.
type Entity struct {
	ID           string
	Missing      bool
	Labels       map[string]LanguageValue
	Descriptions map[string]LanguageValue
	Aliases      map[string][]LanguageValue
	Claims       *Claims
}

// Statement is a single claim value.
type Statement struct {
	MainSnak Snak `json:"mainsnak"`
}

// Snak carries the property, the snak type and, for SnakValue, the value.
type Snak struct {
	SnakType  SnakType   `json:"snaktype"`
	Property  string     `json:"property,omitempty"`
	DataValue *DataValue `json:"datavalue,omitempty"`
}

// DataValue is the raw typed value of a snak.
type DataValue struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

type entityReference struct {
	ID         string `json:"id"`
	EntityType string `json:"entity-type"`
	NumericID  *int64 `json:"numeric-id"`
}

// IsEmpty reports whether the statement has no concrete value.
func (s Statement) IsEmpty() bool {
	return s.MainSnak.SnakType == SnakNoValue || s.MainSnak.SnakType == SnakSomeValue
}

// EntityID returns the id of the entity the statement refers to. Values that
// do not reference an entity yield ErrMalformedClaim.
func (s Statement) EntityID() (string, error) {
	dv := s.MainSnak.DataValue
	if dv == nil || len(dv.Value) == 0 {
		return "", fmt.Errorf("%w: property %s has no datavalue", ErrMalformedClaim, s.MainSnak.Property)
	}

	var ref entityReference
	if err := json.Unmarshal(dv.Value, &ref); err != nil {
		return "", fmt.Errorf("%w: property %s value is not an entity: %v", ErrMalformedClaim, s.MainSnak.Property, err)
	}
	if ref.ID != "" {
		return ref.ID, nil
	}
	if ref.NumericID != nil {
		switch ref.EntityType {
		case "item":
			return "Q" + strconv.FormatInt(*ref.NumericID, 10), nil
		case "property":
			return "P" + strconv.FormatInt(*ref.NumericID, 10), nil
		}
	}
	return "", fmt.Errorf("%w: property %s value has no entity id", ErrMalformedClaim, s.MainSnak.Property)
}

type rawEntity struct {
	ID           string          `json:"id"`
	Missing      *string         `json:"missing"`
	Labels       json.RawMessage `json:"labels"`
	Descriptions json.RawMessage `json:"descriptions"`
	Aliases      json.RawMessage `json:"aliases"`
	Claims       json.RawMessage `json:"claims"`
}

func (e *Entity) UnmarshalJSON(data []byte) error {
	var raw rawEntity
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := Entity{
		ID:      raw.ID,
		Missing: raw.Missing != nil,
		Claims:  NewClaims(),
	}
	if err := decodeObject(raw.Labels, &out.Labels); err != nil {
		return fmt.Errorf("failed to decode labels: %w", err)
	}
	if err := decodeObject(raw.Descriptions, &out.Descriptions); err != nil {
		return fmt.Errorf("failed to decode descriptions: %w", err)
	}
	if err := decodeObject(raw.Aliases, &out.Aliases); err != nil {
		return fmt.Errorf("failed to decode aliases: %w", err)
	}
	if err := decodeObject(raw.Claims, out.Claims); err != nil {
		return fmt.Errorf("failed to decode claims: %w", err)
	}

	*e = out
	return nil
}

func (e Entity) MarshalJSON() ([]byte, error) {
	claims := e.Claims
	if claims == nil {
		claims = NewClaims()
	}
	out := struct {
		ID           string                     `json:"id"`
		Missing      *string                    `json:"missing,omitempty"`
		Labels       map[string]LanguageValue   `json:"labels"`
		Descriptions map[string]LanguageValue   `json:"descriptions"`
		Aliases      map[string][]LanguageValue `json:"aliases"`
		Claims       *Claims                    `json:"claims"`
	}{
		ID:           e.ID,
		Labels:       nonNil(e.Labels),
		Descriptions: nonNil(e.Descriptions),
		Aliases:      nonNil(e.Aliases),
		Claims:       claims,
	}
	if e.Missing {
		empty := ""
		out.Missing = &empty
	}
	return json.Marshal(out)
}

// decodeObject decodes a JSON object into v, treating absent values, null
// and arrays (the API's encoding of an empty map) as empty.
func decodeObject(data json.RawMessage, v any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	return json.Unmarshal(trimmed, v)
}

func nonNil[V any](m map[string]V) map[string]V {
	if m == nil {
		return map[string]V{}
	}
	return m
}

// Label returns the label for lang, or "" if absent.
func (e *Entity) Label(lang string) string {
	return e.Labels[lang].Value
}

// Description returns the description for lang, or "" if absent.
func (e *Entity) Description(lang string) string {
	return e.Descriptions[lang].Value
}

// AliasValues returns the aliases for lang, or an empty list if absent.
func (e *Entity) AliasValues(lang string) []string {
	aliases := e.Aliases[lang]
	out := make([]string, 0, len(aliases))
	for _, a := range aliases {
		out = append(out, a.Value)
	}
	return out
}

// NewEntity returns an entity with a label and description in lang and no
// claims.
func NewEntity(id, lang, label, description string) *Entity {
	e := &Entity{
		ID:           id,
		Labels:       map[string]LanguageValue{},
		Descriptions: map[string]LanguageValue{},
		Aliases:      map[string][]LanguageValue{},
		Claims:       NewClaims(),
	}
	if label != "" {
		e.Labels[lang] = LanguageValue{Language: lang, Value: label}
	}
	if description != "" {
		e.Descriptions[lang] = LanguageValue{Language: lang, Value: description}
	}
	return e
}

// AddReferences appends one value statement per id under property.
func (e *Entity) AddReferences(property string, ids ...string) *Entity {
	for _, id := range ids {
		value, _ := json.Marshal(entityReference{ID: id, EntityType: "item"})
		e.addStatement(property, Statement{MainSnak: Snak{
			SnakType:  SnakValue,
			Property:  property,
			DataValue: &DataValue{Type: "wikibase-entityid", Value: value},
		}})
	}
	return e
}

// AddEmpty appends a statement of the given snak type without a value.
func (e *Entity) AddEmpty(property string, snakType SnakType) *Entity {
	e.addStatement(property, Statement{MainSnak: Snak{SnakType: snakType, Property: property}})
	return e
}

func (e *Entity) addStatement(property string, st Statement) {
	if e.Claims == nil {
		e.Claims = NewClaims()
	}
	statements, _ := e.Claims.Get(property)
	e.Claims.Set(property, append(statements, st))
}
