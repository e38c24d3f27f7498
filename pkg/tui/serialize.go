package tui

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Serialize encodes collected values in the session's output format.
func (s *Session) Serialize(values map[string]string) ([]byte, error) {
	return Serialize(values, s.outputFormat)
}

// Serialize encodes values as format.
func Serialize(values map[string]string, format OutputFormat) ([]byte, error) {
	switch format {
	case OutputFormatJSON, "":
		return json.Marshal(values)
	case OutputFormatFormURLEncoded:
		form := url.Values{}
		for key, value := range values {
			form.Set(key, value)
		}
		return []byte(form.Encode()), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func prettyPrint(values map[string]string) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s=%s\n", key, values[key])
	}
	return b.String()
}
