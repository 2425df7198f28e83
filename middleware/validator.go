package middleware

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ValidatorFunc checks a parsed invocation before its handler runs.
// Structural rules such as required or conflicting options belong to the
// command definition; validators cover runtime checks.
type ValidatorFunc func(ctx Context) error

// NamedValidator pairs a validator with the name used in error reports.
type NamedValidator struct {
	Name string
	Fn   ValidatorFunc
}

func Custom(name string, fn ValidatorFunc) NamedValidator {
	return NamedValidator{Name: name, Fn: fn}
}

// File requires the named string arguments, when set, to name regular files.
func File(names ...string) NamedValidator {
	return NamedValidator{Name: "file_exists", Fn: FileExists(names...)}
}

// Dir requires the named string arguments, when set, to name directories.
func Dir(names ...string) NamedValidator {
	return NamedValidator{Name: "directory_exists", Fn: DirectoryExists(names...)}
}

// Validate runs validators in order. The first failure is written to
// stderr as "error: ...", stored under KeyValidation and ends the run with
// ExitFailure.
func Validate(validators ...NamedValidator) Middleware {
	return Validator(WithValidators(validators...))
}

// Validator runs the validators configured with WithValidators.
func Validator(opts ...Option) Middleware {
	cfg := newConfig(opts)
	validators := make([]NamedValidator, 0, len(cfg.Validators))
	for _, v := range cfg.Validators {
		if v.Name != "" && v.Fn != nil {
			validators = append(validators, v)
		}
	}

	return func(next HandlerFunc) HandlerFunc {
		return func(ctx Context) int {
			for _, v := range validators {
				err := v.Fn(ctx)
				if err == nil {
					continue
				}
				verr := &ValidationError{}
				if !errors.As(err, &verr) {
					verr = &ValidationError{Field: v.Name, Message: "validation failed", Cause: err}
				}
				ctx.Set(KeyValidation, verr)
				fmt.Fprintf(ctx.Stderr(), "error: %s\n", verr.Error())
				return ExitFailure
			}
			return next(ctx)
		}
	}
}

// ConditionalRequired requires names to be set whenever condition passes.
func ConditionalRequired(condition ValidatorFunc, names ...string) ValidatorFunc {
	return func(ctx Context) error {
		if condition(ctx) != nil {
			return nil
		}
		var missing []string
		for _, n := range names {
			if !ctx.Has(n) {
				missing = append(missing, n)
			}
		}
		if len(missing) == 0 {
			return nil
		}
		list := strings.Join(missing, ", ")
		return &ValidationError{
			Field:   list,
			Message: "options required when condition is met: " + list,
		}
	}
}

func FileExists(names ...string) ValidatorFunc {
	return pathValidator("file", names, func(info os.FileInfo, path string) error {
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", path)
		}
		return nil
	})
}

func DirectoryExists(names ...string) ValidatorFunc {
	return pathValidator("directory", names, func(info os.FileInfo, path string) error {
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", path)
		}
		return nil
	})
}

func pathValidator(what string, names []string, check func(os.FileInfo, string) error) ValidatorFunc {
	return func(ctx Context) error {
		for _, n := range names {
			path := ctx.String(n)
			if !ctx.Has(n) || path == "" {
				continue
			}
			info, err := os.Stat(path)
			if err == nil {
				err = check(info, path)
			}
			if err != nil {
				return &ValidationError{
					Field:   n,
					Value:   path,
					Message: fmt.Sprintf("%s validation failed for option '%s'", what, n),
					Cause:   err,
				}
			}
		}
		return nil
	}
}

// NoopValidator passes every invocation.
func NoopValidator() Middleware {
	return func(next HandlerFunc) HandlerFunc { return next }
}
