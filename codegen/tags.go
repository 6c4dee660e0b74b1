package codegen

import (
	"fmt"
	"reflect"
	"strings"
)

// ParseStructTag parses the content of a struct tag value into a map.
// It handles key-value pairs (key=value) and boolean flags (key), separated
// by commas. Values may be double quoted to keep commas and spaces.
func ParseStructTag(tag string) (map[string]string, error) {
	result := make(map[string]string)

	tag = strings.TrimSpace(tag)
	if tag == "" {
		return result, nil
	}

	var key, value strings.Builder
	inValue := false
	inQuote := false
	quoted := false

	flush := func() error {
		k := strings.TrimSpace(key.String())
		v := value.String()
		if !quoted {
			v = strings.TrimSpace(v)
		}
		if k == "" {
			if inValue {
				return fmt.Errorf("empty key before %q", v)
			}
		} else {
			result[k] = v
		}
		key.Reset()
		value.Reset()
		inValue = false
		quoted = false
		return nil
	}

	for _, r := range tag {
		switch {
		case inQuote:
			if r == '"' {
				inQuote = false
				continue
			}
			value.WriteRune(r)
		case !inValue && r == '=':
			inValue = true
		case r == ',':
			if err := flush(); err != nil {
				return nil, err
			}
		case inValue && r == '"' && value.Len() == 0:
			inQuote = true
			quoted = true
		case inValue:
			value.WriteRune(r)
		default:
			key.WriteRune(r)
		}
	}
	if inQuote {
		return nil, fmt.Errorf("unterminated quote in %q", tag)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return result, nil
}

// ParseMergeTag reads the `merge:"..."` options of a struct field tag.
// "-" (or "skip") excludes the field and "replace" merges it by replacement.
func ParseMergeTag(structTag string) (skip, replace bool, err error) {
	raw, ok := reflect.StructTag(structTag).Lookup("merge")
	if !ok {
		return false, false, nil
	}
	if strings.TrimSpace(raw) == "-" {
		return true, false, nil
	}
	opts, err := ParseStructTag(raw)
	if err != nil {
		return false, false, err
	}
	for k := range opts {
		switch k {
		case "skip", "-":
			skip = true
		case "replace":
			replace = true
		default:
			return false, false, fmt.Errorf("unknown merge tag option %q", k)
		}
	}
	if skip && replace {
		return false, false, fmt.Errorf("merge tag cannot both skip and replace")
	}
	return skip, replace, nil
}
