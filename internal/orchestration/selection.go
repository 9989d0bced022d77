package orchestration

import "github.com/agbru/picalc/internal/engine"

// EngineAll selects every registered engine.
const EngineAll = "all"

// GetEnginesToRun resolves the --engine selection against factory. "all"
// returns every engine in name order.
func GetEnginesToRun(name string, factory engine.Factory) []engine.Engine {
	if name == EngineAll {
		keys := factory.List()
		engines := make([]engine.Engine, 0, len(keys))
		for _, k := range keys {
			if e, err := factory.Get(k); err == nil {
				engines = append(engines, e)
			}
		}
		return engines
	}
	if e, err := factory.Get(name); err == nil {
		return []engine.Engine{e}
	}
	return nil
}
