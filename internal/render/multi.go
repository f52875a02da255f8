package render

import (
	"github.com/san-kum/discwalk/internal/driver"
	"github.com/san-kum/discwalk/internal/walk"
)

type multi []driver.Renderer

// Multi draws to every renderer in order. The first failure aborts the draw.
func Multi(renderers ...driver.Renderer) driver.Renderer {
	return multi(renderers)
}

func (m multi) Draw(s walk.Snapshot) error {
	for _, r := range m {
		if err := r.Draw(s); err != nil {
			return err
		}
	}
	return nil
}

// Clear clears every renderer that supports it.
func (m multi) Clear() error {
	for _, r := range m {
		if c, ok := r.(driver.Clearer); ok {
			if err := c.Clear(); err != nil {
				return err
			}
		}
	}
	return nil
}
