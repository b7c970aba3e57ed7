package status

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	// MinStatusCode is the lowest status code echoed back.
	MinStatusCode = 100

	// MaxStatusCode is the highest status code echoed back.
	MaxStatusCode = 999

	// HelloBody is the body served on the root path.
	HelloBody = "Hello World!"

	// NotFoundBody is the body of every unmatched request.
	NotFoundBody = "Not found"
)

// Rule is a single step of the dispatch chain. Match reports
// whether the rule answers the request, and with what.
type Rule struct {
	Name  string
	Match func(req Request) (Response, bool)
}

func rootRule(anyMethod bool) Rule {
	return Rule{
		Name: "root",
		Match: func(req Request) (Response, bool) {
			if req.Path != "/" {
				return Response{}, false
			}

			if !anyMethod && !isGet(req.Method) {
				return Response{}, false
			}

			return newResponse(http.StatusOK, HelloBody), true
		},
	}
}

func echoRule() Rule {
	return Rule{
		Name: "echo",
		Match: func(req Request) (Response, bool) {
			if !isGet(req.Method) {
				return Response{}, false
			}

			candidate, ok := ParseCandidate(req.Path)
			if !ok {
				return Response{}, false
			}

			return newResponse(candidate, strconv.Itoa(candidate)), true
		},
	}
}

func notFoundRule() Rule {
	return Rule{
		Name: "not_found",
		Match: func(Request) (Response, bool) {
			return newResponse(http.StatusNotFound, NotFoundBody), true
		},
	}
}

// ParseCandidate extracts the candidate status code from a request
// path. All leading and trailing slashes are trimmed; what remains
// must consist of decimal digits only and fall into the echoed range.
func ParseCandidate(path string) (int, bool) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return 0, false
	}

	for _, c := range trimmed {
		if c < '0' || c > '9' {
			return 0, false
		}
	}

	candidate, err := strconv.Atoi(trimmed)
	if err != nil {
		// digits only, so the only failure left is overflow
		return 0, false
	}

	if candidate < MinStatusCode || candidate > MaxStatusCode {
		return 0, false
	}

	return candidate, true
}

func isGet(method string) bool {
	return strings.EqualFold(method, http.MethodGet)
}
