package transfer

import (
	"encoding/json"
	"regexp"
)

var numberPattern = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// Scalar is a server issued transfer parameter (vault id, nonce, expiration).
// It is carried verbatim: it decodes from a JSON number or string and encodes
// back in the same form.
type Scalar struct {
	text   string
	quoted bool
}

// NumberScalar is a Scalar that encodes as a JSON number. Text that is not a
// valid JSON number still encodes as a string.
func NumberScalar(text string) Scalar {
	return Scalar{text: text}
}

// StringScalar is a Scalar that encodes as a JSON string.
func StringScalar(text string) Scalar {
	return Scalar{text: text, quoted: true}
}

func (s Scalar) String() string {
	return s.text
}

// Quoted reports whether s travels as a JSON string.
func (s Scalar) Quoted() bool {
	return s.quoted || !numberPattern.MatchString(s.text)
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	if s.Quoted() {
		return json.Marshal(s.text)
	}
	return []byte(s.text), nil
}

func (s *Scalar) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = StringScalar(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = NumberScalar(n.String())
	return nil
}
