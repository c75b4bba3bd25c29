package orchestration

import "github.com/agbru/nttmul/internal/multiply"

// AllEngines selects every registered engine.
const AllEngines = "all"

// GetEnginesToRun resolves name against factory. AllEngines yields every
// registered engine in name order; an unknown name yields nil.
func GetEnginesToRun(name string, factory multiply.Factory) []multiply.Engine {
	if name != AllEngines {
		if e, err := factory.Get(name); err == nil {
			return []multiply.Engine{e}
		}
		return nil
	}
	names := factory.List()
	engines := make([]multiply.Engine, 0, len(names))
	for _, n := range names {
		if e, err := factory.Get(n); err == nil {
			engines = append(engines, e)
		}
	}
	return engines
}
