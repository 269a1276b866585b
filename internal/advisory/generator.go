// Package advisory defines the interface to the external text-generation
// collaborator behind the pros-and-cons endpoint. The service owns only the
// prompt and the chat log; producing the answer is someone else's job.
package advisory

import "context"

// Generator produces an answer for an advisory prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate implements Generator.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
