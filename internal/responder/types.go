package responder

import (
	"bytes"
	"encoding/json"
	"strings"
)

// GenerateRequest is the generateContent request body.
type GenerateRequest struct {
	Contents []RequestContent `json:"contents"`
}

// RequestContent is one turn of the request.
type RequestContent struct {
	Parts []Part `json:"parts"`
}

// Part is a single text part.
type Part struct {
	Text string `json:"text"`
}

// newGenerateRequest wraps prompt as the single part of a single turn.
func newGenerateRequest(prompt string) GenerateRequest {
	return GenerateRequest{
		Contents: []RequestContent{
			{Parts: []Part{{Text: prompt}}},
		},
	}
}

// Envelope is the decoded generateContent reply.
type Envelope struct {
	Candidates []Candidate `json:"candidates"`
}

// Candidate is one generated completion.
type Candidate struct {
	Content Content `json:"content"`
}

// ContentKind tags which shape a Content was decoded from.
type ContentKind int

const (
	// ContentText is a bare JSON string (also used for null or a missing field).
	ContentText ContentKind = iota
	// ContentWrapped is a JSON object; the answer lives under "value".
	ContentWrapped
	// ContentRaw is any other JSON kind, kept as its JSON text.
	ContentRaw
)

func (k ContentKind) String() string {
	switch k {
	case ContentText:
		return "text"
	case ContentWrapped:
		return "wrapped"
	case ContentRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// Content is the candidate payload. The upstream sends either a string or
// an object, depending on model and API version; both are legitimate.
type Content struct {
	Kind ContentKind

	// Text holds the string for ContentText and the JSON text for ContentRaw.
	Text string

	// Value is the "value" entry of a wrapped object. HasValue reports
	// whether the key was present at all.
	Value    string
	HasValue bool

	// Parts is the concatenated parts[].text of a wrapped object.
	Parts string
}

// TextContent builds a ContentText value.
func TextContent(s string) Content {
	return Content{Kind: ContentText, Text: s}
}

// WrappedContent builds a ContentWrapped value carrying value.
func WrappedContent(value string) Content {
	return Content{Kind: ContentWrapped, Value: value, HasValue: true}
}

// UnmarshalJSON decodes the content field by its JSON kind.
func (c *Content) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*c = Content{}

	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = TextContent(s)
		return nil

	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		c.Kind = ContentWrapped
		if raw, ok := obj["value"]; ok {
			c.HasValue = true
			c.Value = stringify(raw)
		}
		if raw, ok := obj["parts"]; ok {
			var parts []Part
			if err := json.Unmarshal(raw, &parts); err == nil {
				var sb strings.Builder
				for _, p := range parts {
					sb.WriteString(p.Text)
				}
				c.Parts = sb.String()
			}
		}
		return nil

	default:
		c.Kind = ContentRaw
		c.Text = string(data)
		return nil
	}
}

// MarshalJSON writes the content back in the shape it was decoded from.
func (c Content) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case ContentWrapped:
		obj := map[string]interface{}{}
		if c.HasValue {
			obj["value"] = c.Value
		}
		if c.Parts != "" {
			obj["parts"] = []Part{{Text: c.Parts}}
		}
		return json.Marshal(obj)
	case ContentRaw:
		if json.Valid([]byte(c.Text)) {
			return []byte(c.Text), nil
		}
		return json.Marshal(c.Text)
	default:
		return json.Marshal(c.Text)
	}
}

// Resolve returns the displayable text of c. A wrapped object without a
// "value" key yields "" unless joinParts is set, in which case its joined
// parts text is used.
func (c Content) Resolve(joinParts bool) string {
	switch c.Kind {
	case ContentWrapped:
		if c.HasValue {
			return c.Value
		}
		if joinParts {
			return c.Parts
		}
		return ""
	default:
		return c.Text
	}
}

// stringify renders a raw JSON value as text: strings unquoted, null as
// empty, everything else as its JSON text.
func stringify(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}
