package expression

import (
	"errors"
	"fmt"
)

// ErrUnsupportedLanguage indicates an expression language no evaluator was
// registered for. This is a fatal configuration error, not a resolution
// miss.
var ErrUnsupportedLanguage = errors.New("unsupported expression language")

// Registry maps expression language names to evaluators.
type Registry struct {
	evaluators map[string]Evaluator
}

func NewRegistry() *Registry {
	return &Registry{
		evaluators: map[string]Evaluator{},
	}
}

func (r *Registry) Register(language string, evaluator Evaluator) {
	r.evaluators[language] = evaluator
}

func (r *Registry) Evaluator(language string) (Evaluator, error) {
	e, ok := r.evaluators[language]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}

	return e, nil
}
