package config

import (
	"fmt"
	"os"

	glua "github.com/yuin/gopher-lua"
)

// loadScript runs an init.lua and copies the globals it sets into c.
//
//	family = "small"
//	city = "Lisbon"
func loadScript(path string, c *Config) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	L := glua.NewState(glua.Options{SkipOpenLibs: true})
	defer L.Close()

	// Only the base and string libraries are opened.
	for _, lib := range []struct {
		name string
		fn   glua.LGFunction
	}{
		{glua.BaseLibName, glua.OpenBase},
		{glua.StringLibName, glua.OpenString},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(glua.LString(lib.name))
		L.Call(1, 0)
	}

	if err := L.DoFile(path); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}

	if v, ok := L.GetGlobal("family").(glua.LString); ok {
		c.Family = string(v)
	}
	if v, ok := L.GetGlobal("city").(glua.LString); ok {
		c.City = string(v)
	}
	return nil
}
