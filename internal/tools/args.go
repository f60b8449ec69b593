// In file: internal/tools/args.go
package tools

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// DecodeArgs decodes a weakly-typed argument bag into out, a pointer to a
// struct tagged with `mapstructure`. Strings are converted to numbers and vice
// versa where possible, and keys match case- and separator-insensitively, so
// "itemId", "ItemID" and "item_id" all land in the same field. Missing keys
// leave the field untouched.
func DecodeArgs(args Args, out any) error {
	if len(args) == 0 {
		return nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		Result:           out,
		WeaklyTypedInput: true,
		MatchName: func(mapKey, fieldName string) bool {
			return normalizeKey(mapKey) == normalizeKey(fieldName)
		},
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(map[string]any(args)); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func normalizeKey(value string) string {
	value = strings.ToLower(value)
	value = strings.ReplaceAll(value, "_", "")
	value = strings.ReplaceAll(value, "-", "")
	return value
}
