package status

import "net/http"

// Dispatcher answers requests by evaluating an ordered list of
// rules. The first matching rule wins; the last rule always matches.
//
// A Dispatcher holds no mutable state and may be used concurrently.
type Dispatcher struct {
	rules []Rule
}

// New creates a dispatcher with the rule chain for the given config.
func New(config Config) *Dispatcher {
	return &Dispatcher{
		rules: []Rule{
			rootRule(config.RootAnyMethod),
			echoRule(),
			notFoundRule(),
		},
	}
}

// Dispatch returns the response for the given request.
func (d *Dispatcher) Dispatch(req Request) Response {
	_, res := d.Resolve(req)
	return res
}

// Resolve returns the name of the matching rule alongside its response.
func (d *Dispatcher) Resolve(req Request) (string, Response) {
	for _, rule := range d.rules {
		if res, ok := rule.Match(req); ok {
			return rule.Name, res
		}
	}

	// unreachable as long as the chain ends with notFoundRule
	return "", newResponse(http.StatusNotFound, NotFoundBody)
}

// Rules returns the names of the configured rules in evaluation order.
func (d *Dispatcher) Rules() []string {
	names := make([]string, 0, len(d.rules))
	for _, rule := range d.rules {
		names = append(names, rule.Name)
	}

	return names
}
