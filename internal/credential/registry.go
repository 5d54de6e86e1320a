package credential

import "go.uber.org/zap"

// Registry holds the configured strategies in detection order.
type Registry struct {
	strategies []Strategy
	byID       map[string]Strategy
	logger     *zap.Logger
}

// NewRegistry builds a registry over the default service rules.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}

	rules := defaultRules()
	r := &Registry{
		strategies: make([]Strategy, 0, len(rules)),
		byID:       make(map[string]Strategy, len(rules)),
		logger:     logger,
	}

	for _, rule := range rules {
		var s Strategy
		switch rule.ID {
		case "mapbox":
			s = newMapboxStrategy(rule)
		case "gemini":
			s = newGeminiStrategy(rule)
		default:
			s = newGenericStrategy(rule)
		}
		r.strategies = append(r.strategies, s)
		r.byID[rule.ID] = s
	}

	return r
}

// Get returns the strategy for a service ID, or nil.
func (r *Registry) Get(id string) Strategy {
	return r.byID[id]
}

// Requirements returns metadata for every supported service.
func (r *Registry) Requirements() []Requirement {
	out := make([]Requirement, 0, len(r.strategies))
	for _, s := range r.strategies {
		out = append(out, s.Info())
	}
	return out
}

// DetectRequired returns the services the document appears to use, in
// detection order.
func (r *Registry) DetectRequired(content string) []Requirement {
	if content == "" {
		return nil
	}

	var detected []Requirement
	for _, s := range r.strategies {
		if s.Detect(content) {
			detected = append(detected, s.Info())
		}
	}

	if len(detected) > 0 {
		ids := make([]string, len(detected))
		for i, d := range detected {
			ids[i] = d.ID
		}
		r.logger.Debug("detected credential requirements", zap.Strings("services", ids))
	}

	return detected
}

// InjectAll injects every provided key through its strategy. Unknown service
// IDs and unusable keys are skipped.
func (r *Registry) InjectAll(content string, keys map[string]string) string {
	if content == "" || len(keys) == 0 {
		return content
	}

	out := content
	for _, s := range r.strategies {
		key, ok := keys[s.ID()]
		if !ok || !s.Validate(key) {
			continue
		}
		out = s.Inject(out, key)
	}
	return out
}
