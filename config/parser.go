package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

// Parser reads a YAML configuration and then overrides fields from the
// environment, grounded on configuration/parser.go's Parser.Parse: a field
// path v.Abc.Xyz may be overridden by PREFIX_ABC_XYZ.
type Parser struct {
	prefix string
	env    map[string]string
}

// NewParser returns a Parser that overrides fields using environment
// variables prefixed with prefix (conventionally "KVFS").
func NewParser(prefix string) *Parser {
	p := &Parser{prefix: strings.ToUpper(prefix), env: make(map[string]string)}
	for _, kv := range os.Environ() {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) == 2 {
			p.env[parts[0]] = parts[1]
		}
	}
	return p
}

// Parse unmarshals in as YAML into a Configuration, then applies any
// matching environment variable overrides.
func (p *Parser) Parse(in []byte) (*Configuration, error) {
	var c Configuration
	if err := yaml.Unmarshal(in, &c); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}
	if c.Version != CurrentVersion {
		return nil, fmt.Errorf("config: unsupported version %q, want %q", c.Version, CurrentVersion)
	}

	if err := p.overwriteFields(reflect.ValueOf(&c), p.prefix); err != nil {
		return nil, fmt.Errorf("config: apply environment overrides: %w", err)
	}
	return &c, nil
}

func (p *Parser) overwriteFields(v reflect.Value, prefix string) error {
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			field := v.Field(i)
			if !field.CanSet() {
				continue
			}
			fieldPrefix := strings.ToUpper(prefix + "_" + t.Field(i).Name)
			if raw, ok := p.env[fieldPrefix]; ok {
				if err := setScalar(field, raw); err != nil {
					return fmt.Errorf("%s: %w", fieldPrefix, err)
				}
				continue
			}
			if err := p.overwriteFields(field, fieldPrefix); err != nil {
				return err
			}
		}
	case reflect.Map:
		for _, key := range v.MapKeys() {
			elemPrefix := strings.ToUpper(fmt.Sprintf("%s_%v", prefix, key.Interface()))
			elem := v.MapIndex(key)
			// map values aren't addressable; overrides on nested fields of
			// map entries are not supported, only scalar map entries are.
			if elem.Kind() != reflect.Struct && elem.Kind() != reflect.Map {
				if raw, ok := p.env[elemPrefix]; ok {
					nv := reflect.New(elem.Type()).Elem()
					if err := setScalar(nv, raw); err != nil {
						return fmt.Errorf("%s: %w", elemPrefix, err)
					}
					v.SetMapIndex(key, nv)
				}
			}
		}
	}
	return nil
}

func setScalar(field reflect.Value, raw string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(n)
	default:
		return fmt.Errorf("unsupported override target kind %s", field.Kind())
	}
	return nil
}
