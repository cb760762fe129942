package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
)

// PopulateFromYamlEnvironment applies environment variables of the form
// ${prefix}_${KEY}=${VALUE} to the yaml-tagged struct behind target.
//
// The KEY is matched case-insensitively against the yaml tags of the struct's
// fields; underscores descend into nested structs, so LOGGING_LEVEL addresses
// the level field of the logging struct. Inline structs are flattened into
// their parent. The VALUE is decoded as a YAML scalar, i.e. quoting works as
// it would in the config file. Variables not starting with the prefix are
// ignored; a variable addressing no known field is an error.
func PopulateFromYamlEnvironment(prefix string, target any, environ []string) error {
	targetValue := reflect.ValueOf(target)
	if targetValue.Kind() != reflect.Pointer || targetValue.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("target must be a pointer to a struct, got %T", target)
	}

	for _, env := range environ {
		key, value, found := strings.Cut(env, "=")
		if !found || !strings.HasPrefix(key, prefix+"_") {
			continue
		}

		path := strings.Split(strings.TrimPrefix(key, prefix+"_"), "_")
		if err := setYamlField(targetValue.Elem(), path, value); err != nil {
			return fmt.Errorf("cannot apply environment variable %s: %w", key, err)
		}
	}

	return nil
}

func setYamlField(structValue reflect.Value, path []string, value string) error {
	name := strings.ToLower(path[0])

	field, ok := lookupYamlField(structValue, name)
	if !ok {
		return fmt.Errorf("no configuration field with yaml tag %q", name)
	}

	if len(path) == 1 {
		return decodeYamlValue(value, field)
	}

	switch field.Kind() {
	case reflect.Struct:
		return setYamlField(field, path[1:], value)

	case reflect.Map:
		if field.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("field %q is a map not keyed by strings", name)
		}
		if field.IsNil() {
			field.Set(reflect.MakeMap(field.Type()))
		}

		elem := reflect.New(field.Type().Elem())
		if err := decodeYamlValue(value, elem.Elem()); err != nil {
			return err
		}

		mapKey := strings.ToLower(strings.Join(path[1:], "_"))
		field.SetMapIndex(reflect.ValueOf(mapKey).Convert(field.Type().Key()), elem.Elem())
		return nil

	default:
		return fmt.Errorf("field %q does not support nested keys", name)
	}
}

// lookupYamlField finds the field with the given yaml tag within structValue,
// also searching structs inlined via yaml:",inline".
func lookupYamlField(structValue reflect.Value, name string) (reflect.Value, bool) {
	structType := structValue.Type()

	var inlined []reflect.Value
	for i := 0; i < structType.NumField(); i++ {
		structField := structType.Field(i)
		if !structField.IsExported() {
			continue
		}

		tag, opts, _ := strings.Cut(structField.Tag.Get("yaml"), ",")
		if tag == name && tag != "" {
			return structValue.Field(i), true
		}

		if strings.Contains(opts, "inline") && structValue.Field(i).Kind() == reflect.Struct {
			inlined = append(inlined, structValue.Field(i))
		}
	}

	for _, inline := range inlined {
		if field, ok := lookupYamlField(inline, name); ok {
			return field, true
		}
	}

	return reflect.Value{}, false
}

func decodeYamlValue(value string, field reflect.Value) error {
	if !field.CanAddr() {
		return fmt.Errorf("field of type %s is not addressable", field.Type())
	}

	if value == "" {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}

	return yaml.Unmarshal([]byte(value), field.Addr().Interface())
}
