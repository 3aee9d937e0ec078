package eval

import (
	"errors"
	"os"

	"github.com/signadot/ogdl-format/go-ogdl/graph"

	"github.com/expr-lang/expr"
)

func (p *Program) exprOpts() []expr.Option {
	return []expr.Option{
		expr.Function("getpath", func(params ...any) (any, error) {
			v, _ := p.cur.GetString(params[0].(string))
			return v, nil
		},
			new(func(string) string)),
		expr.Function("haspath", func(params ...any) (any, error) {
			_, err := p.cur.Get(params[0].(string))
			switch {
			case err == nil:
				return true, nil
			case errors.Is(err, graph.ErrNotFound):
				return false, nil
			default:
				return nil, err
			}
		},
			new(func(string) bool)),
		expr.Function("whereami", func(params ...any) (any, error) {
			return p.cur.Path(), nil
		},
			new(func() string)),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}
