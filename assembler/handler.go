package assembler

import (
	"net/http"
	"path"
	"strings"

	"github.com/drblury/routeweaver/registry"
)

const handlerSeparator = ":"

// HandlerRef is a parsed "controller:action" reference.
type HandlerRef struct {
	Controller string
	Action     string
}

func (h HandlerRef) String() string {
	return h.Controller + handlerSeparator + h.Action
}

// ParseHandlerRef parses a handler reference. An empty ref selects
// defaultAction on defaultController, a bare name selects that action on
// defaultController, and "Controller:action" names both. More than one
// separator, an empty side or a side padded with whitespace is rejected.
func ParseHandlerRef(ref, defaultController, defaultAction string) (HandlerRef, error) {
	if ref == "" {
		return HandlerRef{Controller: defaultController, Action: defaultAction}, nil
	}

	switch strings.Count(ref, handlerSeparator) {
	case 0:
		if err := checkSegments(ref); err != nil {
			return HandlerRef{}, err
		}
		return HandlerRef{Controller: defaultController, Action: ref}, nil
	case 1:
		controller, action, _ := strings.Cut(ref, handlerSeparator)
		if err := checkSegments(controller, action); err != nil {
			return HandlerRef{}, err
		}
		return HandlerRef{Controller: controller, Action: action}, nil
	default:
		return HandlerRef{}, errTooManySeparators
	}
}

// checkSegments rejects empty and blank segments, and segments with
// leading or trailing whitespace.
func checkSegments(segments ...string) error {
	for _, segment := range segments {
		switch {
		case strings.TrimSpace(segment) == "":
			return errEmptySegment
		case strings.TrimSpace(segment) != segment:
			return errPaddedSegment
		}
	}
	return nil
}

// controllerModule is the registry path of a controller within scope.
func controllerModule(scope Scope, controller string) string {
	return registry.Key(path.Join(scope.ControllerBase, controller))
}

func resolveHandler(
	controllers *registry.Registry[http.Handler],
	scope Scope,
	loc Location,
	ref string,
	defaultAction string,
) (HandlerRef, string, http.Handler, error) {
	parsed, err := ParseHandlerRef(ref, scope.ControllerName, defaultAction)
	if err != nil {
		return HandlerRef{}, "", nil, &ConfigurationError{Location: loc, Reference: ref, Err: err}
	}

	module := controllerModule(scope, parsed.Controller)
	handler, err := controllers.Lookup(module, parsed.Action)
	if err != nil {
		return parsed, module, nil, &ResolutionError{Location: loc, Reference: parsed.String(), Module: module, Err: err}
	}
	return parsed, module, handler, nil
}
