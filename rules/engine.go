package rules

import (
	"fmt"

	"github.com/antonmedv/expr"
	"github.com/antonmedv/expr/vm"
)

// Engine decides which capabilities mesh nodes and channels receive. Filters
// are expr expressions evaluated against Input, rules matching the input add
// or remove named capabilities in order.
type Engine struct {
	Rules []CompiledRule
}

type Capabilities struct {
	Add    map[string]interface{}
	Remove map[string]interface{}
}

type Actions struct {
	Capabilities Capabilities
}

type Rule struct {
	Description string
	Filter      string
	Actions     Actions
}

type CompiledRule struct {
	Description string
	Filter      *vm.Program
	Actions     Actions
}

// InputNode describes a mesh node to filters. Exactly one of Input's fields
// is non-nil per execution, filters must nil check before dereferencing.
type InputNode struct {
	ID            uint32
	LongName      string
	ShortName     string
	HardwareModel string
	IsGateway     bool
}

type InputChannel struct {
	Index           uint8
	Name            string
	Role            string
	UplinkEnabled   bool
	DownlinkEnabled bool
}

type Input struct {
	Node    *InputNode
	Channel *InputChannel
}

type Output struct {
	Capabilities map[string]interface{}
}

func New(rules ...Rule) (*Engine, error) {
	e := &Engine{}

	for _, rule := range rules {
		cf, err := expr.Compile(rule.Filter, expr.Env(Input{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("filter compilation: %s: %w", rule.Description, err)
		}

		e.Rules = append(e.Rules, CompiledRule{
			Description: rule.Description,
			Filter:      cf,
			Actions:     rule.Actions,
		})
	}

	return e, nil
}

func (e *Engine) Execute(i Input) (Output, error) {
	o := Output{Capabilities: map[string]interface{}{}}

	for _, rule := range e.Rules {
		result, err := expr.Run(rule.Filter, i)
		if err != nil {
			return Output{}, fmt.Errorf("filter execution: %s: %w", rule.Description, err)
		}

		matched, ok := result.(bool)
		if !ok {
			return Output{}, fmt.Errorf("filter execution: %s: result not boolean", rule.Description)
		}

		if !matched {
			continue
		}

		for name, value := range rule.Actions.Capabilities.Add {
			o.Capabilities[name] = value
		}

		for name := range rule.Actions.Capabilities.Remove {
			delete(o.Capabilities, name)
		}
	}

	return o, nil
}
