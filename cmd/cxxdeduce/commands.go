package main

import (
	"fmt"
	"os"
	"strings"

	"cxxdeduce/resolver-go/pkg/cppexpr"
	"cxxdeduce/resolver-go/pkg/deduction"
	"cxxdeduce/resolver-go/pkg/driver"
)

type deduceOptions struct {
	scopePath  string
	pattern    deduction.Pattern
	context    deduction.BindingContext
	expression string
}

func parseDeduceArgs(args []string, wantPattern bool) (*deduceOptions, error) {
	opts := &deduceOptions{}
	var rest []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		value := ""
		hasValue := false
		if idx := strings.IndexByte(arg, '='); idx >= 0 && strings.HasPrefix(arg, "--") {
			arg, value, hasValue = arg[:idx], arg[idx+1:], true
		}
		consume := func() (string, error) {
			if hasValue {
				return value, nil
			}
			if i+1 >= len(args) {
				return "", fmt.Errorf("%s requires a value", arg)
			}
			i++
			return args[i], nil
		}
		switch arg {
		case "--scope":
			v, err := consume()
			if err != nil {
				return nil, err
			}
			opts.scopePath = v
		case "--pattern":
			if !wantPattern {
				return nil, fmt.Errorf("--pattern only applies to value deduction")
			}
			v, err := consume()
			if err != nil {
				return nil, err
			}
			pattern, err := driver.ParsePattern(strings.Split(v, ","))
			if err != nil {
				return nil, err
			}
			opts.pattern = pattern
		case "--context":
			if !wantPattern {
				return nil, fmt.Errorf("--context only applies to value deduction")
			}
			v, err := consume()
			if err != nil {
				return nil, err
			}
			context, err := driver.ParseContext(v)
			if err != nil {
				return nil, err
			}
			opts.context = context
		default:
			if strings.HasPrefix(arg, "--") {
				return nil, fmt.Errorf("unknown flag %s", arg)
			}
			rest = append(rest, args[i])
		}
	}
	if len(rest) != 1 {
		return nil, fmt.Errorf("exactly one expression is required")
	}
	opts.expression = rest[0]
	return opts, nil
}

func loadScope(path string) (cppexpr.Scope, error) {
	if path == "" {
		return cppexpr.Scope{}, nil
	}
	scenario, err := driver.Load(path)
	if err != nil {
		return nil, err
	}
	return scenario.Scope, nil
}

func runExpr(args []string) int {
	opts, err := parseDeduceArgs(args, false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return deduceAndPrint(opts, func(expr *deduction.Expr) (deduction.Type, error) {
		return deduction.ForExpression(expr)
	})
}

func runValue(args []string) int {
	opts, err := parseDeduceArgs(args, true)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return deduceAndPrint(opts, func(expr *deduction.Expr) (deduction.Type, error) {
		return deduction.ForValue(expr, opts.pattern, opts.context)
	})
}

func deduceAndPrint(opts *deduceOptions, resolve func(*deduction.Expr) (deduction.Type, error)) int {
	scope, err := loadScope(opts.scopePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	parser, err := cppexpr.NewParser()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer parser.Close()

	expr, err := parser.ParseExpression(opts.expression, scope)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	typ, err := resolve(expr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Fprintln(os.Stdout, typ)
	return 0
}

func runCheckFiles(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "check requires at least one scenario file")
		return 1
	}
	parser, err := cppexpr.NewParser()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer parser.Close()

	failed := 0
	total := 0
	for _, path := range args {
		scenario, err := driver.Load(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		results := scenario.Run(parser)
		total += len(results)
		for _, result := range driver.Failures(results) {
			failed++
			fmt.Fprintf(os.Stderr, "%s: case %s: %s\n", path, result.Case.Name, result.Detail)
		}
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d cases failed\n", failed, total)
		return 1
	}
	fmt.Fprintf(os.Stdout, "%d cases passed\n", total)
	return 0
}
