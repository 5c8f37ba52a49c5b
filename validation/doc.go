// Package validation checks dock configuration and catalog declarations.
//
// Struct tag validation runs through go-playground/validator and reports
// field names by their mapstructure key, so messages match the YAML the
// user wrote:
//
//	type WiringConfig struct {
//	    Mode string `mapstructure:"mode" validate:"oneof=strict lenient"`
//	}
//	err := validation.Validate(cfg)
//
// Programmatic checks collect errors fluently:
//
//	v := validation.New()
//	v.Required("module", name).Pattern("module", name, validation.ModulePattern)
//	err := v.Error()
//
// Both paths return an *errors.AppError with code INVALID_CONFIG and a
// "fields" detail listing every failure.
package validation
