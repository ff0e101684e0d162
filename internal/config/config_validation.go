// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// validate checks the `validate` struct tags of the final merged
// [StructuredConfig] before it is used at startup.
//
// Rule violations are reported as the sentinel error of the offending group
// ([ErrInvalidSettingsConfigs], [ErrInvalidDebugConfigs],
// [ErrInvalidLogConfigs]) joined with validator's field-level detail.
func (cfg *StructuredConfig) validate() error {
	err := structValidator.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("error validating config: %w", err)
	}

	var joined error
	for _, fe := range fieldErrs {
		joined = errors.Join(joined, fmt.Errorf("%w: %s failed on %q", groupError(fe.StructNamespace()), fe.StructNamespace(), fe.Tag()))
	}
	return joined
}

func groupError(namespace string) error {
	switch {
	case hasGroup(namespace, "Settings"):
		return ErrInvalidSettingsConfigs
	case hasGroup(namespace, "Debug"):
		return ErrInvalidDebugConfigs
	default:
		return ErrInvalidLogConfigs
	}
}

func hasGroup(namespace, group string) bool {
	return strings.HasPrefix(namespace, "StructuredConfig."+group+".")
}
