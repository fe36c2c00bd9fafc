// Package host is a minimal network-facing embedding of the evaluator: a
// stateless "POST /eval" front door that registers operators, sets
// globals, evaluates source, and observes Async as a real network
// collaborator rather than a library call.
package host

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/lemonberrylabs/losp/pkg/builtins"
	"github.com/lemonberrylabs/losp/pkg/eval"
	"github.com/lemonberrylabs/losp/pkg/parser"
	"github.com/lemonberrylabs/losp/pkg/printer"
	"github.com/lemonberrylabs/losp/pkg/values"
)

// Server is the /eval HTTP front door.
type Server struct {
	app     *fiber.App
	globals map[string]values.Value
	limiter *limiterSet
}

// New creates a Server. globals are applied to every request's evaluator
// before its source runs (e.g. loaded once at startup via LoadManifest).
func New(globals map[string]values.Value) *Server {
	srv := &Server{
		globals: globals,
		limiter: newLimiterSet(rate.Limit(5), 10),
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
	})
	app.Post("/eval", srv.handleEval)

	srv.app = app
	return srv
}

// Listen starts the HTTP server on addr.
func (s *Server) Listen(addr string) error { return s.app.Listen(addr) }

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error { return s.app.Shutdown() }

// App returns the underlying fiber app, for use in tests.
func (s *Server) App() *fiber.App { return s.app }

// newEvaluator builds a fresh Evaluator per request: the standard
// built-ins, the HTTP:GET demonstration host operator, and the server's
// configured globals.
func (s *Server) newEvaluator() *eval.Evaluator {
	e := eval.NewEvaluator(nil)
	builtins.Register(e)
	_ = RegisterHTTPGet(e)
	for name, v := range s.globals {
		e.SetGlobal(name, v)
	}
	return e
}

type evalRequest struct {
	Source  string         `json:"source"`
	Globals map[string]any `json:"globals"`
}

type evalResponse struct {
	Values        []string `json:"values"`
	CorrelationID string   `json:"correlationId"`
}

// handleEval parses the request body as Losp source, evaluates it
// (blocking on Async until the proxy resolves), and reports the emitted
// values. Each request is rate-limited per remote address via
// golang.org/x/time/rate, and stamped with a github.com/google/uuid
// correlation id returned in both the response body and an
// X-Losp-Correlation-Id header, so a caller that receives a delayed
// Async completion out of band can match it back to this request.
func (s *Server) handleEval(c *fiber.Ctx) error {
	if !s.limiter.allow(c.IP()) {
		return jsonError(c, 429, "rate limit exceeded, slow down")
	}

	var req evalRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, 400, "invalid request body: "+err.Error())
	}
	if req.Source == "" {
		return jsonError(c, 400, "source is required")
	}

	node, err := parser.Parse(req.Source, nil)
	if err != nil {
		return jsonError(c, 400, "parse error: "+err.Error())
	}

	e := s.newEvaluator()
	for name, v := range req.Globals {
		e.SetGlobal(name, toValue(v))
	}

	correlationID := uuid.NewString()
	c.Set("X-Losp-Correlation-Id", correlationID)

	res := e.Eval(node)
	if res.Kind == eval.KindAsync {
		done := make(chan eval.Result, 1)
		res.Proxy.OnCompleted(func(r eval.Result) { done <- r })
		res = <-done
	}

	if res.Kind == eval.KindError {
		return jsonError(c, 400, res.Err.Error())
	}

	out := make([]string, len(res.Values))
	for i, v := range res.Values {
		out[i] = printer.FormatValue(v)
	}
	return c.JSON(evalResponse{Values: out, CorrelationID: correlationID})
}

func jsonError(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}
