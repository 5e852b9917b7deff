package annotation

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// directivePrefix starts every comment this package reads.
	directivePrefix = "//appprops:"

	// verbLoad is the only supported directive.
	verbLoad = "load"

	// optionSrc is the only supported option.
	optionSrc = "src"
)

// option is one key=value pair of a directive.
type option struct {
	key   string
	value string
}

// isDirective reports whether a raw comment is an appprops directive.
func isDirective(text string) bool {
	return strings.HasPrefix(text, directivePrefix)
}

// parseDirective splits "//appprops:load src=x.yaml" into its verb and options.
func parseDirective(text string) (string, []option, error) {
	body := strings.TrimPrefix(text, directivePrefix)
	verb, rest := body, ""
	if i := strings.IndexAny(body, " \t"); i >= 0 {
		verb, rest = body[:i], body[i:]
	}
	if verb == "" {
		return "", nil, fmt.Errorf("directive %q has no verb", text)
	}

	opts, err := parseOptions(rest)
	if err != nil {
		return verb, nil, err
	}
	return verb, opts, nil
}

// parseOptions tokenizes space-separated key=value pairs.
// Values may be bare words or Go string literals ("..." or `...`).
func parseOptions(s string) ([]option, error) {
	var opts []option

	for {
		s = strings.TrimLeft(s, " \t")
		if s == "" {
			return opts, nil
		}

		end := strings.IndexAny(s, "= \t")
		if end < 0 || s[end] != '=' {
			word := s
			if end >= 0 {
				word = s[:end]
			}
			return nil, fmt.Errorf("option %q has no value (expected %s=<path>)", word, word)
		}

		key := s[:end]
		if key == "" {
			return nil, fmt.Errorf("option value without a name")
		}
		s = s[end+1:]

		var value string
		if s != "" && (s[0] == '"' || s[0] == '`') {
			quoted, err := strconv.QuotedPrefix(s)
			if err != nil {
				return nil, fmt.Errorf("option %s: malformed quoted value", key)
			}
			value, err = strconv.Unquote(quoted)
			if err != nil {
				return nil, fmt.Errorf("option %s: %w", key, err)
			}
			s = s[len(quoted):]
			if s != "" && s[0] != ' ' && s[0] != '\t' {
				return nil, fmt.Errorf("option %s: unexpected text after quoted value", key)
			}
		} else {
			end := strings.IndexAny(s, " \t")
			if end < 0 {
				end = len(s)
			}
			value = s[:end]
			s = s[end:]
		}

		opts = append(opts, option{key: key, value: value})
	}
}

// sourceOption validates the options of a load directive and returns src.
// Unknown and repeated options are rejected so that typos never pass silently.
func sourceOption(opts []option) (string, error) {
	var src string
	found := false

	for _, opt := range opts {
		switch opt.key {
		case optionSrc:
			if found {
				return "", fmt.Errorf("duplicate option %s", optionSrc)
			}
			src = opt.value
			found = true
		default:
			return "", fmt.Errorf("unknown option %q (supported: %s)", opt.key, optionSrc)
		}
	}

	if !found {
		return "", fmt.Errorf("missing required option %s", optionSrc)
	}
	if src == "" {
		return "", fmt.Errorf("option %s must not be empty", optionSrc)
	}
	return src, nil
}
