package schema

import (
	"fmt"
	"maps"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/sirupsen/logrus"
	"github.com/zclconf/go-cty/cty"

	"github.com/arloliu/bitfield/errs"
	"github.com/arloliu/bitfield/internal/options"
)

type config struct {
	logger    logrus.FieldLogger
	variables map[string]cty.Value
}

// Option configures a Loader.
type Option = options.Option[*config]

func newConfig() *config {
	return &config{
		logger:    logrus.StandardLogger(),
		variables: make(map[string]cty.Value),
	}
}

// WithVariable exposes an integer to schema expressions as var.<name>.
func WithVariable(name string, value int64) Option {
	return WithVariables(map[string]cty.Value{name: cty.NumberIntVal(value)})
}

// WithVariables exposes arbitrary values to schema expressions under var.
// Later options override earlier ones with the same name.
func WithVariables(vars map[string]cty.Value) Option {
	return options.New(func(c *config) error {
		for name, v := range vars {
			if !hclsyntax.ValidIdentifier(name) {
				return fmt.Errorf("%w: variable name %q is not a valid identifier", errs.ErrInvalidOption, name)
			}
			if v.IsNull() {
				return fmt.Errorf("%w: variable %q is null", errs.ErrInvalidOption, name)
			}
		}
		maps.Copy(c.variables, vars)

		return nil
	})
}

// WithLogger sets the logger for load diagnostics and for the layout types
// built from the schema. The default is logrus.StandardLogger().
func WithLogger(logger logrus.FieldLogger) Option {
	return options.New(func(c *config) error {
		if logger == nil {
			return fmt.Errorf("%w: nil logger", errs.ErrInvalidOption)
		}
		c.logger = logger

		return nil
	})
}
