package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Text is a loosely typed JSON scalar kept as its literal text.
// null decodes to the empty string.
type Text string

// UnmarshalJSON accepts strings, numbers, booleans and null.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	case '{', '[':
		return fmt.Errorf("cannot use %s value as text", jsonKind(data[0]))
	default:
		*t = Text(data)
		return nil
	}
}

func jsonKind(c byte) string {
	if c == '{' {
		return "object"
	}
	return "array"
}

// Character is a single person record from the people endpoint
type Character struct {
	Name      Text `json:"name"`
	BirthYear Text `json:"birth_year"`
	Height    Text `json:"height"`
	EyeColor  Text `json:"eye_color"`
}

// String renders the four-line block printed for each record.
func (c Character) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name: %s\n", c.Name)
	fmt.Fprintf(&sb, "Birth year: %s\n", c.BirthYear)
	fmt.Fprintf(&sb, "Height: %s\n", c.Height)
	fmt.Fprintf(&sb, "Eye color: %s\n", c.EyeColor)
	return sb.String()
}

// searchEnvelope is the paginated wrapper returned by search requests.
// Only the current page is read.
type searchEnvelope struct {
	Results *[]*Character `json:"results"`
}

// DecodeOne parses body as a single character object
func DecodeOne(body string) (*Character, error) {
	var c *Character
	if err := json.Unmarshal([]byte(body), &c); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if c == nil {
		return nil, &DecodeError{Reason: "empty payload"}
	}
	return c, nil
}

// DecodeMany parses body as a search response and returns the records found
// under "results". An empty result set is an error.
func DecodeMany(body string) ([]Character, error) {
	var env *searchEnvelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if env == nil || env.Results == nil {
		return nil, &DecodeError{Reason: "missing results"}
	}

	results := *env.Results
	if len(results) == 0 {
		return nil, &DecodeError{Reason: "no characters found"}
	}

	characters := make([]Character, 0, len(results))
	for i, c := range results {
		if c == nil {
			return nil, &DecodeError{Reason: fmt.Sprintf("result %d is null", i)}
		}
		characters = append(characters, *c)
	}
	return characters, nil
}

// GetCharacter fetches and decodes a character by id
func (c *Client) GetCharacter(ctx context.Context, id string) (*Character, error) {
	body, err := c.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return DecodeOne(body)
}

// SearchCharacters fetches and decodes all characters matching term
func (c *Client) SearchCharacters(ctx context.Context, term string) ([]Character, error) {
	body, err := c.FetchSearch(ctx, term)
	if err != nil {
		return nil, err
	}
	return DecodeMany(body)
}
