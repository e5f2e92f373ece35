package responder_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/drblury/routeweaver/responder"
)

func ExampleResponder_Fallible() {
	errDuplicate := errors.New("user already exists")
	r := responder.NewResponder(
		responder.WithErrorClassifier(func(err error) (int, bool) {
			if errors.Is(err, errDuplicate) {
				return http.StatusConflict, true
			}
			return 0, false
		}),
	)

	users := make(map[string]struct{})
	create := r.Fallible(func(w http.ResponseWriter, req *http.Request) error {
		var body struct {
			Name string `json:"name"`
		}
		if !r.ReadRequestBody(w, req, &body) {
			return nil
		}
		if _, exists := users[body.Name]; exists {
			return errDuplicate
		}
		users[body.Name] = struct{}{}
		r.RespondWithJSON(w, req, http.StatusCreated, map[string]string{"name": body.Name})
		return nil
	})

	first := httptest.NewRecorder()
	create(first, httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"ada"}`)))
	fmt.Println(first.Code)
	fmt.Println(strings.TrimSpace(first.Body.String()))

	second := httptest.NewRecorder()
	create(second, httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"ada"}`)))

	var problem responder.ProblemDetails
	_ = json.Unmarshal(second.Body.Bytes(), &problem)
	fmt.Println(problem.Status)
	fmt.Println(problem.Title)

	// Output:
	// 201
	// {"name":"ada"}
	// 409
	// Conflict
}

func ExampleWithStatusMetadata() {
	r := responder.NewResponder(
		responder.WithStatusMetadata(http.StatusNotFound, responder.StatusMetadata{
			Title:   "No such route",
			TypeURI: "https://status.example.com/not-found",
		}),
	)

	rec := httptest.NewRecorder()
	r.NotFound(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	fmt.Println(rec.Code)
	fmt.Println(strings.Contains(rec.Body.String(), `"title":"No such route"`))

	// Output:
	// 404
	// true
}
