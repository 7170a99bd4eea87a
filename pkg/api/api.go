// Package api implements the REST API for evaluating expressions and
// browsing evaluation history.
package api

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lemonberrylabs/numcalc/pkg/expr"
	"github.com/lemonberrylabs/numcalc/pkg/numeral"
	"github.com/lemonberrylabs/numcalc/pkg/store"
	"github.com/lemonberrylabs/numcalc/pkg/types"
)

// Server is the HTTP API server.
type Server struct {
	app    *fiber.App
	store  *store.Store
	logger *zap.Logger
}

// New creates a new API server. logger may be nil.
func New(s *store.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := &Server{
		store:  s,
		logger: logger,
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
	})

	// Evaluations API
	app.Post("/v1/evaluations", srv.createEvaluation)
	app.Get("/v1/evaluations", srv.listEvaluations)
	app.Get("/v1/evaluations/:id", srv.getEvaluation)
	app.Delete("/v1/evaluations", srv.clearEvaluations)

	// Numerals API
	app.Get("/v1/numerals/:value", srv.convertNumeral)

	srv.app = app
	return srv
}

// Listen starts the HTTP server on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App returns the underlying Fiber app (useful for testing).
func (s *Server) App() *fiber.App {
	return s.app
}

// --- Evaluation Handlers ---

type createEvaluationRequest struct {
	Expression string `json:"expression"`
}

func (s *Server) createEvaluation(c *fiber.Ctx) error {
	var req createEvaluationRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, 400, "INVALID_ARGUMENT", "", fmt.Sprintf("invalid request body: %v", err))
	}

	if strings.TrimSpace(req.Expression) == "" {
		return errorResponse(c, 400, "INVALID_ARGUMENT", "", "expression is required")
	}

	res, err := expr.EvaluateDetailed(req.Expression)
	ev := s.store.Record(req.Expression, "api", res, err)
	if err != nil {
		s.logger.Info("evaluation rejected",
			zap.String("name", ev.Name),
			zap.String("input", ev.Input),
			zap.String("kind", string(types.KindOf(err))))
		resp := errorBody(400, "INVALID_ARGUMENT", string(types.KindOf(err)), types.Message(err))
		resp["name"] = ev.Name
		return c.Status(400).JSON(resp)
	}

	s.logger.Info("evaluation succeeded",
		zap.String("name", ev.Name),
		zap.String("input", ev.Input),
		zap.String("output", res.Output))
	return c.JSON(resultToJSON(ev, res))
}

func (s *Server) getEvaluation(c *fiber.Ctx) error {
	ev, err := s.store.Get(c.Params("id"))
	if err != nil {
		return errorResponse(c, 404, "NOT_FOUND", "", err.Error())
	}
	return c.JSON(evaluationToJSON(ev))
}

func (s *Server) listEvaluations(c *fiber.Ctx) error {
	evals := s.store.List()

	if v := c.Query("pageSize"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return errorResponse(c, 400, "INVALID_ARGUMENT", "", fmt.Sprintf("invalid pageSize %q", v))
		}
		if n > 0 && n < len(evals) {
			evals = evals[:n]
		}
	}

	items := make([]fiber.Map, 0, len(evals))
	for _, ev := range evals {
		items = append(items, evaluationToJSON(ev))
	}
	return c.JSON(fiber.Map{"evaluations": items})
}

func (s *Server) clearEvaluations(c *fiber.Ctx) error {
	s.store.Clear()
	s.logger.Info("evaluation history cleared")
	return c.SendStatus(204)
}

// --- Numeral Handlers ---

// convertNumeral converts an Arabic integer to Roman or a Roman numeral to
// an integer. It is not limited to the calculator operand range.
func (s *Server) convertNumeral(c *fiber.Ctx) error {
	value := c.Params("value")

	if n, err := strconv.Atoi(value); err == nil {
		if n < 1 || n > numeral.MaxRoman {
			return errorResponse(c, 400, "INVALID_ARGUMENT", string(types.KindOperandOutOfRange),
				fmt.Sprintf("value must be between 1 and %d", numeral.MaxRoman))
		}
		return c.JSON(fiber.Map{"arabic": n, "roman": numeral.FromInt(n)})
	}

	if expr.Classify(value) != expr.KindRoman || value == "" {
		return errorResponse(c, 400, "INVALID_ARGUMENT", string(types.KindMalformedExpression),
			fmt.Sprintf("%q is neither an integer nor a Roman numeral", value))
	}
	n, err := numeral.ToIntStrict(value)
	if err != nil {
		return errorResponse(c, 400, "INVALID_ARGUMENT", string(types.KindMalformedExpression), err.Error())
	}
	return c.JSON(fiber.Map{"arabic": n, "roman": value})
}

// --- Helpers ---

func errorBody(code int, status, kind, message string) fiber.Map {
	e := fiber.Map{
		"code":    code,
		"message": message,
		"status":  status,
	}
	if kind != "" {
		e["kind"] = kind
	}
	return fiber.Map{"error": e}
}

func errorResponse(c *fiber.Ctx, code int, status, kind, message string) error {
	return c.Status(code).JSON(errorBody(code, status, kind, message))
}

func resultToJSON(ev *store.Evaluation, res *expr.Result) fiber.Map {
	return fiber.Map{
		"name":       ev.Name,
		"input":      res.Input,
		"operator":   res.Expression.Operator.String(),
		"left":       res.Left,
		"right":      res.Right,
		"value":      res.Value,
		"output":     res.Output,
		"roman":      res.Roman,
		"createTime": ev.CreateTime.Format(time.RFC3339),
	}
}

func evaluationToJSON(ev *store.Evaluation) fiber.Map {
	result := fiber.Map{
		"name":       ev.Name,
		"input":      ev.Input,
		"state":      ev.State,
		"roman":      ev.Roman,
		"source":     ev.Source,
		"createTime": ev.CreateTime.Format(time.RFC3339),
	}

	if ev.Output != "" {
		result["output"] = ev.Output
	}
	if ev.Error != nil {
		result["error"] = fiber.Map{
			"kind":    ev.Error.Kind,
			"message": ev.Error.Message,
		}
	}

	return result
}
