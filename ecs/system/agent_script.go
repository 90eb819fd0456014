package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/pawbox/pawbox/prefabs"
)

// pokeScript wraps a compiled tengo snippet that picks a reaction gesture.
// Compiled once; each run works on a clone so globals never leak between
// invocations.
type pokeScript struct {
	compiled *tengo.Compiled
}

func compilePokeScript(path string) (*pokeScript, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("agent: load poke script %s: %w", path, err)
	}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap("math"))
	for _, name := range []string{"agent_x", "agent_z", "player_x", "player_z"} {
		if err := script.Add(name, 0.0); err != nil {
			return nil, fmt.Errorf("agent: declare %s: %w", name, err)
		}
	}
	if err := script.Add("repeat_count", 0); err != nil {
		return nil, fmt.Errorf("agent: declare repeat_count: %w", err)
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("agent: compile poke script %s: %w", path, err)
	}
	return &pokeScript{compiled: compiled}, nil
}

func (p *pokeScript) gesture(agentX, agentZ, playerX, playerZ float64, repeat int) (string, error) {
	c := p.compiled.Clone()
	if err := c.Set("agent_x", agentX); err != nil {
		return "", err
	}
	if err := c.Set("agent_z", agentZ); err != nil {
		return "", err
	}
	if err := c.Set("player_x", playerX); err != nil {
		return "", err
	}
	if err := c.Set("player_z", playerZ); err != nil {
		return "", err
	}
	if err := c.Set("repeat_count", repeat); err != nil {
		return "", err
	}
	if err := c.Run(); err != nil {
		return "", err
	}
	return c.Get("gesture").String(), nil
}
