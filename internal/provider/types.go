// Package provider wraps the hosted generation APIs behind small
// capability interfaces. Orchestrators depend only on these interfaces;
// SDK errors never cross the package boundary.
package provider

import (
	"context"
	"fmt"
)

// TextGenerator produces ad copy from a system prompt and product data.
type TextGenerator interface {
	// Model returns the model identifier used for generation.
	Model() string

	// GenerateText performs a single bounded-length completion.
	GenerateText(ctx context.Context, system, user string) (string, error)

	// GenerateTextStream performs a streaming completion, invoking
	// onFragment for each content fragment as it arrives. A non-nil
	// error from onFragment stops consumption; the underlying network
	// stream is released on any return path.
	GenerateTextStream(ctx context.Context, system, user string, onFragment func(fragment string) error) error

	// HealthCheck verifies the upstream API is reachable.
	HealthCheck(ctx context.Context) error
}

// GeneratedImage holds the binary output of an image generation call
// plus any accompanying text the model produced.
type GeneratedImage struct {
	Data     []byte
	MIMEType string
	Text     string
}

// ImageGenerator produces product images from a text prompt.
type ImageGenerator interface {
	// Model returns the model identifier used for generation.
	Model() string

	// GenerateImage generates one image for the prompt.
	GenerateImage(ctx context.Context, prompt string) (*GeneratedImage, error)

	// HealthCheck verifies the upstream API is reachable.
	HealthCheck(ctx context.Context) error
}

// Error wraps an upstream SDK failure with the provider and operation
// that produced it, carrying the original message.
type Error struct {
	Provider string
	Op       string
	Err      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}
