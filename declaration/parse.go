package declaration

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/drblury/routeweaver/jsonutil"
)

// Parse decodes a declaration document. Comments and trailing commas are
// tolerated. Key order is preserved for URIs and for the verbs of each URI,
// because registration order follows declaration order.
func Parse(file string, data []byte) (*Document, error) {
	clean := jsonutil.Standardize(data)
	if !gjson.ValidBytes(clean) {
		return nil, &ParseError{File: file, Err: syntaxError(clean)}
	}

	root := gjson.ParseBytes(clean)
	if !root.IsObject() {
		return nil, &ParseError{File: file, Err: errNotObject}
	}

	doc := &Document{Name: DocumentName(file), File: file}

	var parseErr error
	root.ForEach(func(key, value gjson.Result) bool {
		uri := key.String()
		if uri == Wildcard {
			global, err := parseGlobal(value)
			if err != nil {
				parseErr = &ParseError{File: file, URI: uri, Err: err}
				return false
			}
			doc.Global = global
			return true
		}

		route, err := parseRoute(file, uri, value)
		if err != nil {
			parseErr = err
			return false
		}
		doc.Routes = append(doc.Routes, route)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return doc, nil
}

func parseGlobal(value gjson.Result) (*Global, error) {
	if !value.IsObject() {
		return nil, fmt.Errorf("global overrides must be an object, got %s", value.Type)
	}

	var global Global
	err := forEachField(value, func(key string, field gjson.Result) error {
		var err error
		switch key {
		case "controllerPath":
			global.ControllerPath, err = optionalString(key, field)
		case "controllerName":
			global.ControllerName, err = optionalString(key, field)
		case "middlewarePath":
			global.MiddlewarePath, err = optionalString(key, field)
		case "URIPrefix":
			global.URIPrefix, err = optionalString(key, field)
		case "middleware":
			err = global.Middleware.UnmarshalJSON([]byte(field.Raw))
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &global, nil
}

// parseVerb reads the known keys of a verb body. Keys are matched exactly,
// so "Handler" is an unknown key and is ignored like any other.
func parseVerb(body gjson.Result) (VerbConfig, error) {
	var cfg VerbConfig
	err := forEachField(body, func(key string, field gjson.Result) error {
		switch key {
		case "handler":
			handler, err := optionalString(key, field)
			if err != nil || handler == nil {
				return err
			}
			cfg.Handler = *handler
		case "middleware":
			return cfg.Middleware.UnmarshalJSON([]byte(field.Raw))
		}
		return nil
	})
	return cfg, err
}

func forEachField(obj gjson.Result, fn func(key string, field gjson.Result) error) error {
	var err error
	obj.ForEach(func(key, field gjson.Result) bool {
		err = fn(key.String(), field)
		return err == nil
	})
	return err
}

func optionalString(key string, field gjson.Result) (*string, error) {
	switch field.Type {
	case gjson.Null:
		return nil, nil
	case gjson.String:
		s := field.String()
		return &s, nil
	default:
		return nil, fmt.Errorf("%s must be a string, got %s", key, field.Type)
	}
}

func parseRoute(file, uri string, value gjson.Result) (Route, error) {
	if !value.IsObject() {
		return Route{}, &ParseError{File: file, URI: uri, Err: fmt.Errorf("verbs must be an object, got %s", value.Type)}
	}

	route := Route{URI: uri}

	var verbErr error
	value.ForEach(func(key, body gjson.Result) bool {
		method := key.String()
		if !body.IsObject() {
			verbErr = &ParseError{File: file, URI: uri, Verb: method, Err: fmt.Errorf("verb configuration must be an object, got %s", body.Type)}
			return false
		}

		cfg, err := parseVerb(body)
		if err != nil {
			verbErr = &ParseError{File: file, URI: uri, Verb: method, Err: err}
			return false
		}

		route.Verbs = append(route.Verbs, Verb{Method: method, Config: cfg})
		return true
	})
	if verbErr != nil {
		return Route{}, verbErr
	}

	return route, nil
}

// syntaxError asks the full decoder for a positioned message when the fast
// validity check fails.
func syntaxError(data []byte) error {
	var probe any
	if err := jsonutil.Unmarshal(data, &probe); err != nil {
		return err
	}
	return errInvalidJSON
}
