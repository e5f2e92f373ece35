package registry

import (
	"net/http"
	"reflect"
	"unicode"
	"unicode/utf8"

	"github.com/drblury/routeweaver/responder"
	"github.com/drblury/routeweaver/router"
)

var (
	handlerFuncType    = reflect.TypeOf((func(http.ResponseWriter, *http.Request))(nil))
	fallibleFuncType   = reflect.TypeOf((func(http.ResponseWriter, *http.Request) error)(nil))
	middlewareFuncType = reflect.TypeOf((func(http.Handler) http.Handler)(nil))
)

// HandlerMethods discovers the exported methods of controller that can act
// as HTTP handlers. Two shapes qualify:
//
//	func(http.ResponseWriter, *http.Request)
//	func(http.ResponseWriter, *http.Request) error
//
// Error-returning methods are adapted with rsp.Fallible, so returned errors
// become problem documents. Every method is exported under its Go name and
// under its lower-camel alias ("ListUsers" and "listUsers"), matching how
// actions are usually written in declaration files. A nil rsp uses a default
// responder.
func HandlerMethods(controller any, rsp *responder.Responder) map[string]http.Handler {
	if rsp == nil {
		rsp = responder.NewResponder()
	}

	exports := make(map[string]http.Handler)
	forEachMethod(controller, func(name string, fn reflect.Value) {
		var h http.Handler
		switch {
		case fn.Type().ConvertibleTo(handlerFuncType):
			h = http.HandlerFunc(fn.Convert(handlerFuncType).Interface().(func(http.ResponseWriter, *http.Request)))
		case fn.Type().ConvertibleTo(fallibleFuncType):
			h = rsp.Fallible(fn.Convert(fallibleFuncType).Interface().(func(http.ResponseWriter, *http.Request) error))
		default:
			return
		}
		addExport(exports, name, h)
	})
	return exports
}

// MiddlewareMethods discovers the exported methods of v with the signature
// func(http.Handler) http.Handler, under the same naming rules as
// HandlerMethods.
func MiddlewareMethods(v any) map[string]router.Middleware {
	exports := make(map[string]router.Middleware)
	forEachMethod(v, func(name string, fn reflect.Value) {
		if !fn.Type().ConvertibleTo(middlewareFuncType) {
			return
		}
		mw := router.Middleware(fn.Convert(middlewareFuncType).Interface().(func(http.Handler) http.Handler))
		addExport(exports, name, mw)
	})
	return exports
}

func forEachMethod(v any, visit func(name string, fn reflect.Value)) {
	if v == nil {
		return
	}
	value := reflect.ValueOf(v)
	typ := value.Type()
	for i := range typ.NumMethod() {
		method := typ.Method(i)
		if !method.IsExported() {
			continue
		}
		visit(method.Name, value.Method(i))
	}
}

func addExport[T any](exports map[string]T, name string, export T) {
	exports[name] = export
	if alias := lowerCamel(name); alias != name {
		if _, taken := exports[alias]; !taken {
			exports[alias] = export
		}
	}
}

func lowerCamel(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToLower(r)) + name[size:]
}
