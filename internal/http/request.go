package http

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// looseString accepts a JSON string or number, or a form value, and keeps
// its textual form. JSON null decodes to the empty string.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*s = looseString(n.String())
	return nil
}

// UnmarshalParam satisfies gin's binding.BindUnmarshaler for form bodies.
func (s *looseString) UnmarshalParam(param string) error {
	*s = looseString(param)
	return nil
}

func (s looseString) String() string {
	return string(s)
}

type createUserRequest struct {
	Username looseString `json:"username" form:"username"`
}

type addExerciseRequest struct {
	Description looseString `json:"description" form:"description"`
	Duration    looseString `json:"duration" form:"duration"`
	Date        looseString `json:"date" form:"date"`
}
