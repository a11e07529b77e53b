package lint

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

// Schema describes the shape of rule arguments.
type Schema struct {
	// Type is one of "array", "object", "string", "number", "boolean".
	// Empty accepts any type.
	Type string `json:"type,omitempty"`

	// Items validates array elements by position.
	Items []*Schema `json:"items,omitempty"`

	// ListOf validates array elements past Items.
	ListOf *Schema `json:"listOf,omitempty"`

	// AnyOf accepts a value matching any alternative.
	AnyOf []*Schema `json:"anyOf,omitempty"`

	// Properties validates object members. Unlisted members are rejected.
	Properties map[string]*Schema `json:"properties,omitempty"`

	Enum []any `json:"enum,omitempty"`

	// MinLength and MaxLength bound array length. MaxLength 0 means unbounded.
	MinLength int `json:"minLength,omitempty"`
	MaxLength int `json:"maxLength,omitempty"`

	Minimum *float64 `json:"minimum,omitempty"`
}

// Min returns a pointer to v for Schema.Minimum.
func Min(v float64) *float64 {
	return &v
}

// Validate checks v against the schema and returns every violation.
func (s *Schema) Validate(v any) []string {
	var problems []string
	s.validate("options", v, &problems)
	return problems
}

func (s *Schema) validate(path string, v any, problems *[]string) {
	if s == nil {
		return
	}

	if len(s.AnyOf) > 0 {
		for _, alt := range s.AnyOf {
			var sub []string
			alt.validate(path, v, &sub)
			if len(sub) == 0 {
				return
			}
		}
		*problems = append(*problems, fmt.Sprintf("%s: %s does not match any allowed form", path, describe(v)))
		return
	}

	if s.Type != "" && !matchesType(s.Type, v) {
		*problems = append(*problems, fmt.Sprintf("%s: expected %s, got %s", path, s.Type, describe(v)))
		return
	}

	if len(s.Enum) > 0 && !slices.ContainsFunc(s.Enum, func(e any) bool { return reflect.DeepEqual(e, v) }) {
		*problems = append(*problems, fmt.Sprintf("%s: %s is not one of %s", path, describe(v), enumList(s.Enum)))
	}

	switch val := v.(type) {
	case float64:
		if s.Minimum != nil && val < *s.Minimum {
			*problems = append(*problems, fmt.Sprintf("%s: %v is less than minimum %v", path, val, *s.Minimum))
		}

	case []any:
		if len(val) < s.MinLength {
			*problems = append(*problems, fmt.Sprintf("%s: expected at least %d item(s), got %d", path, s.MinLength, len(val)))
		}
		if s.MaxLength > 0 && len(val) > s.MaxLength {
			*problems = append(*problems, fmt.Sprintf("%s: expected at most %d item(s), got %d", path, s.MaxLength, len(val)))
		}
		for i, item := range val {
			itemPath := fmt.Sprintf("%s[%d]", path, i)
			switch {
			case i < len(s.Items):
				s.Items[i].validate(itemPath, item, problems)
			case s.ListOf != nil:
				s.ListOf.validate(itemPath, item, problems)
			}
		}

	case map[string]any:
		if s.Properties == nil {
			return
		}
		for _, key := range slices.Sorted(maps.Keys(val)) {
			prop, ok := s.Properties[key]
			if !ok {
				*problems = append(*problems, fmt.Sprintf("%s: unknown property %q", path, key))
				continue
			}
			prop.validate(path+"."+key, val[key], problems)
		}
	}
}

func matchesType(typ string, v any) bool {
	switch typ {
	case "array":
		_, ok := v.([]any)
		return ok
	case "object":
		_, ok := v.(map[string]any)
		return ok
	case "string":
		_, ok := v.(string)
		return ok
	case "number":
		_, ok := v.(float64)
		return ok
	case "boolean":
		_, ok := v.(bool)
		return ok
	default:
		return true
	}
}

func describe(v any) string {
	switch val := v.(type) {
	case string:
		return fmt.Sprintf("%q", val)
	case nil:
		return "null"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%v", val)
	}
}

func enumList(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = describe(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ArgKeys controls how positional arguments map onto an options struct.
//
// String arguments become boolean flags named after the string, or are
// collected into ListKey when set. Number arguments set NumberKey.
// Object arguments are merged in order.
type ArgKeys struct {
	NumberKey string
	ListKey   string
}

// Configurable is implemented by rules with typed options.
type Configurable interface {
	// NewOptions returns a pointer to the rule's options struct filled
	// with defaults. It must return a fresh value on every call.
	NewOptions() any

	ArgKeys() ArgKeys
}

// OptionsValidator is implemented by options structs with checks that
// struct tags cannot express. Validate runs once, after decoding, and may
// prepare derived state such as compiled patterns.
type OptionsValidator interface {
	Validate() error
}

// OptionsDecoder turns positional rule arguments into typed options.
// It owns its validator, which caches struct metadata; one decoder is
// shared by every rule one Loader resolves.
type OptionsDecoder struct {
	validate *validator.Validate
}

// NewOptionsDecoder creates a decoder.
func NewOptionsDecoder() *OptionsDecoder {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return &OptionsDecoder{validate: v}
}

// Decode validates args against the rule's schema and decodes them. It
// returns the args unchanged for rules that are not Configurable. Every
// problem found is returned, one per element.
func (d *OptionsDecoder) Decode(rule Rule, args []any) (any, []string) {
	meta := rule.Metadata()

	if meta.OptionsSchema != nil {
		if problems := meta.OptionsSchema.Validate(orEmpty(args)); len(problems) > 0 {
			return nil, problems
		}
	} else if len(args) > 0 {
		if _, ok := rule.(Configurable); !ok {
			return nil, []string{fmt.Sprintf("options: rule takes no options, got %d", len(args))}
		}
	}

	configurable, ok := rule.(Configurable)
	if !ok {
		return args, nil
	}

	opts := configurable.NewOptions()
	input, err := argsToMap(args, configurable.ArgKeys())
	if err != nil {
		return nil, []string{err.Error()}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      opts,
		ErrorUnused: true,
		TagName:     "mapstructure",
	})
	if err != nil {
		return nil, []string{err.Error()}
	}
	if err := decoder.Decode(input); err != nil {
		return nil, []string{"options: " + err.Error()}
	}

	if err := d.validate.Struct(opts); err != nil {
		return nil, validationProblems(err)
	}
	if v, ok := opts.(OptionsValidator); ok {
		if err := v.Validate(); err != nil {
			return nil, []string{"options: " + err.Error()}
		}
	}
	return opts, nil
}

func orEmpty(args []any) []any {
	if args == nil {
		return []any{}
	}
	return args
}

func argsToMap(args []any, keys ArgKeys) (map[string]any, error) {
	out := make(map[string]any)
	var list []any
	for i, arg := range args {
		switch val := arg.(type) {
		case string:
			if keys.ListKey != "" {
				list = append(list, val)
				continue
			}
			out[val] = true
		case float64, int:
			if keys.NumberKey == "" {
				return nil, fmt.Errorf("options[%d]: unexpected number %v", i, val)
			}
			out[keys.NumberKey] = val
		case map[string]any:
			maps.Copy(out, val)
		case bool:
			return nil, fmt.Errorf("options[%d]: unexpected boolean %v", i, val)
		default:
			return nil, fmt.Errorf("options[%d]: unsupported value %s", i, describe(val))
		}
	}
	if list != nil {
		out[keys.ListKey] = list
	}
	return out, nil
}

func validationProblems(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"options: " + err.Error()}
	}
	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		constraint := fe.Tag()
		if fe.Param() != "" {
			constraint += "=" + fe.Param()
		}
		problems = append(problems, fmt.Sprintf("options.%s: value %v violates %q", fe.Field(), fe.Value(), constraint))
	}
	return problems
}
