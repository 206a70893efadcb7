package funcs

import (
	"github.com/leapstack-labs/leapexpr/pkg/expr"
)

// datePart builds an extraction function over a date or timestamp value.
// Raw string arguments are cast to TIMESTAMP first, so literals like
// "2021-01-01" work the same as date columns.
func datePart(name, part string) Callable {
	return unary(name, func(e expr.Expr) expr.Expr {
		return expr.Call(part, coerceTemporal(e))
	})
}

// coerceTemporal casts string literals to TIMESTAMP and leaves everything
// else to the engine's own coercion.
func coerceTemporal(e expr.Expr) expr.Expr {
	if v, ok := e.LitValue(); ok {
		if _, isStr := v.(string); isStr {
			return e.Cast("TIMESTAMP")
		}
	}
	return e
}

// dateShift builds an interval-addition function such as add_days.
func dateShift(name, intervalFn string) Callable {
	return binaryExprs(name, func(s, n expr.Expr) expr.Expr {
		return expr.Call("date_add", coerceTemporal(s), expr.Call(intervalFn, n))
	})
}

func registerDateFuncs(r *Registry) {
	const cat = "date"

	r.mustRegister(&Descriptor{
		Name:     "now",
		Category: cat,
		Doc:      "Current timestamp.",
		Params:   nil,
		Fn: func(args []any) (any, error) {
			if err := wantArgs("now", args, 0); err != nil {
				return nil, err
			}
			return expr.Call("now"), nil
		},
	})

	r.mustRegister(&Descriptor{
		Name:     "today",
		Category: cat,
		Doc:      "Current date.",
		Params:   nil,
		Fn: func(args []any) (any, error) {
			if err := wantArgs("today", args, 0); err != nil {
				return nil, err
			}
			return expr.Call("today"), nil
		},
	})

	parts := []struct{ name, part, doc string }{
		{"year", "year", "Extract the year from a date or timestamp."},
		{"month", "month", "Extract the month from a date or timestamp."},
		{"day", "day", "Extract the day of month from a date or timestamp."},
		{"hour", "hour", "Extract the hour from a timestamp."},
		{"minute", "minute", "Extract the minute from a timestamp."},
		{"second", "second", "Extract the second from a timestamp."},
	}
	for _, p := range parts {
		r.mustRegister(&Descriptor{
			Name:     p.name,
			Category: cat,
			Doc:      p.doc,
			Params:   []ParamType{Expression},
			Fn:       datePart(p.name, p.part),
		})
	}

	shifts := []struct{ name, interval, doc string }{
		{"add_years", "to_years", "Shift a date or timestamp by a number of years."},
		{"add_days", "to_days", "Shift a date or timestamp by a number of days."},
		{"add_hours", "to_hours", "Shift a timestamp by a number of hours."},
		{"add_minutes", "to_minutes", "Shift a timestamp by a number of minutes."},
		{"add_seconds", "to_seconds", "Shift a timestamp by a number of seconds."},
	}
	for _, s := range shifts {
		r.mustRegister(&Descriptor{
			Name:     s.name,
			Category: cat,
			Doc:      s.doc,
			Params:   []ParamType{Expression, Expression},
			Fn:       dateShift(s.name, s.interval),
		})
	}

	r.mustRegister(&Descriptor{
		Name:     "date_diff_days",
		Category: cat,
		Doc:      "Whole days elapsed from the second date to the first.",
		Params:   []ParamType{Expression, Expression},
		Fn: binaryExprs("date_diff_days", func(a, b expr.Expr) expr.Expr {
			return expr.Call("date_diff", expr.Lit("day"), coerceTemporal(b), coerceTemporal(a))
		}),
	})

	r.mustRegister(&Descriptor{
		Name:     "datetime_diff_seconds",
		Category: cat,
		Doc:      "Whole seconds elapsed from the second timestamp to the first.",
		Params:   []ParamType{Expression, Expression},
		Fn: binaryExprs("datetime_diff_seconds", func(a, b expr.Expr) expr.Expr {
			return expr.Call("date_diff", expr.Lit("second"), coerceTemporal(b), coerceTemporal(a))
		}),
	})

	r.mustRegister(&Descriptor{
		Name:     "to_date",
		Category: cat,
		Doc:      "Cast a value to a date.",
		Params:   []ParamType{Expression},
		Fn:       unary("to_date", func(e expr.Expr) expr.Expr { return e.Cast("DATE") }),
	})
}
