// Package prompt maps (ad type, tone) pairs to composed system prompts.
//
// Structure and voice are authored independently: N base templates keyed
// by ad type and M tone blocks keyed by tone, combined by substituting a
// single placeholder. This keeps the matrix at N+M authored texts instead
// of N×M.
package prompt

import (
	"fmt"
	"strings"

	"github.com/adcraft/server/internal/model"
	apperrors "github.com/adcraft/server/internal/shared/errors"
)

// Registry composes system prompts from registered templates.
// It is pure and deterministic; the zero cost of construction makes it
// safe to share across requests.
type Registry struct{}

// NewRegistry creates a prompt registry over the built-in templates.
func NewRegistry() *Registry {
	return &Registry{}
}

// Compose returns the full system prompt for the given ad type and tone.
// Both axes must have a registered entry; there is no fallback here —
// default substitution happens at the HTTP boundary before values reach
// this component.
func (r *Registry) Compose(adType model.AdType, adTone model.AdTone) (string, error) {
	base, ok := baseTemplates[adType]
	if !ok {
		return "", apperrors.TemplateNotFound(fmt.Sprintf("no base template for ad type %q", adType))
	}
	tone, ok := toneModifiers[adTone]
	if !ok {
		return "", apperrors.TemplateNotFound(fmt.Sprintf("no tone modifier for tone %q", adTone))
	}
	return strings.ReplaceAll(base, tonePlaceholder, tone), nil
}

// AdTypes returns all registered ad types.
func (r *Registry) AdTypes() []model.AdType {
	types := make([]model.AdType, 0, len(baseTemplates))
	for t := range baseTemplates {
		types = append(types, t)
	}
	return types
}

// AdTones returns all registered tones.
func (r *Registry) AdTones() []model.AdTone {
	tones := make([]model.AdTone, 0, len(toneModifiers))
	for t := range toneModifiers {
		tones = append(tones, t)
	}
	return tones
}
