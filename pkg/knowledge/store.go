package knowledge

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyKey     = errors.New("service key is empty")
	ErrDuplicateKey = errors.New("duplicate service key")
	ErrEmptyField   = errors.New("service record has an empty field")
	ErrNoServices   = errors.New("corpus has no services")
)

type Option func(*Store)

func WithWeights(w Weights) Option {
	return func(s *Store) {
		s.weights = w
	}
}

// Store is an immutable, in-memory corpus. It is safe for concurrent use.
type Store struct {
	services []ServiceRecord
	index    map[string]int
	general  []GeneralInfo
	weights  Weights
}

func NewStore(corpus Corpus, opts ...Option) (*Store, error) {
	if len(corpus.Services) == 0 {
		return nil, ErrNoServices
	}

	s := &Store{
		services: make([]ServiceRecord, 0, len(corpus.Services)),
		index:    make(map[string]int, len(corpus.Services)),
		general:  []GeneralInfo{corpus.About, corpus.Demo, corpus.Pricing},
		weights:  DefaultWeights(),
	}

	for _, opt := range opts {
		opt(s)
	}

	for _, svc := range corpus.Services {
		if err := validateService(svc); err != nil {
			return nil, err
		}
		if _, exists := s.index[svc.Key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, svc.Key)
		}
		s.index[svc.Key] = len(s.services)
		s.services = append(s.services, copyService(svc))
	}

	return s, nil
}

func validateService(svc ServiceRecord) error {
	if svc.Key == "" {
		return ErrEmptyKey
	}

	switch {
	case svc.Title == "":
		return fmt.Errorf("%w: %s.title", ErrEmptyField, svc.Key)
	case svc.Description == "":
		return fmt.Errorf("%w: %s.description", ErrEmptyField, svc.Key)
	case len(svc.Capabilities) == 0:
		return fmt.Errorf("%w: %s.capabilities", ErrEmptyField, svc.Key)
	case len(svc.Benefits) == 0:
		return fmt.Errorf("%w: %s.benefits", ErrEmptyField, svc.Key)
	case len(svc.FAQ) == 0:
		return fmt.Errorf("%w: %s.faq", ErrEmptyField, svc.Key)
	}

	return nil
}

func (s *Store) GetServiceInfo(key string) (ServiceRecord, bool) {
	i, ok := s.index[key]
	if !ok {
		return ServiceRecord{}, false
	}
	return copyService(s.services[i]), true
}

func (s *Store) GetGeneralInfo(key string) (GeneralInfo, bool) {
	for _, info := range s.general {
		if string(info.Kind()) == key {
			return copyGeneral(info), true
		}
	}
	return nil, false
}

// Services returns every service record in corpus order.
func (s *Store) Services() []ServiceRecord {
	out := make([]ServiceRecord, 0, len(s.services))
	for _, svc := range s.services {
		out = append(out, copyService(svc))
	}
	return out
}

func (s *Store) Weights() Weights {
	return s.weights
}

func copyService(svc ServiceRecord) ServiceRecord {
	svc.Capabilities = append([]string(nil), svc.Capabilities...)
	svc.Benefits = append([]string(nil), svc.Benefits...)
	svc.FAQ = append([]FAQ(nil), svc.FAQ...)
	return svc
}

func copyGeneral(info GeneralInfo) GeneralInfo {
	if about, ok := info.(About); ok {
		about.Differentiators = append([]string(nil), about.Differentiators...)
		return about
	}
	return info
}
