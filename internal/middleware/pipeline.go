package middleware

import (
	"github.com/labstack/echo/v4"
)

// Decision is what a stage tells the pipeline after it ran.
type Decision int

const (
	// Continue hands the request to the next stage (or the handler).
	Continue Decision = iota
	// Terminate stops the pipeline; the stage has written the response.
	Terminate
)

// Stage is one step of the request pipeline.
//
// Before runs on the way in. Returning an error terminates the pipeline and
// the error is rendered by the global error handler. After, when set, runs
// on the way out with the final error, in reverse stage order, for every
// stage whose Before ran.
type Stage struct {
	Name   string
	Before func(c echo.Context) (Decision, error)
	After  func(c echo.Context, err error)
}

// Pipeline executes its stages in declared order with a single loop.
type Pipeline struct {
	stages []Stage
}

// NewPipeline returns a pipeline running stages in the given order.
func NewPipeline(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Names lists the stage names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name
	}
	return names
}

// Middleware adapts the pipeline to Echo so it can be installed with Use.
func (p *Pipeline) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return p.Run(c, next)
		}
	}
}

// Run dispatches c through every stage and then to handler, unless a stage
// terminates or fails first.
func (p *Pipeline) Run(c echo.Context, handler echo.HandlerFunc) (err error) {
	ran := 0
	defer func() {
		for i := ran - 1; i >= 0; i-- {
			if after := p.stages[i].After; after != nil {
				after(c, err)
			}
		}
	}()

	for _, stage := range p.stages {
		decision := Continue
		if stage.Before != nil {
			decision, err = stage.Before(c)
		}
		ran++

		if err != nil {
			return err
		}
		if decision == Terminate {
			return nil
		}
	}

	return handler(c)
}

// FromMiddleware turns a pre-processing Echo middleware into a stage. The
// stage continues only if mw called its next handler without error.
//
// Middleware that does work after next returns is not a fit; its post-work
// would run before the handler does.
func FromMiddleware(name string, mw echo.MiddlewareFunc) Stage {
	return Stage{
		Name: name,
		Before: func(c echo.Context) (Decision, error) {
			passed := false
			err := mw(func(echo.Context) error {
				passed = true
				return nil
			})(c)
			if err != nil {
				return Terminate, err
			}
			if !passed {
				return Terminate, nil
			}
			return Continue, nil
		},
	}
}
