package cli

import (
	"fmt"
)

type MetaCmd struct {
	Get MetaGetCmd `cmd:"" help:"Read an app metadata value."`
	Set MetaSetCmd `cmd:"" help:"Write an app metadata value."`
}

type MetaGetCmd struct {
	Key string `arg:"" help:"Metadata key."`
}

func (c *MetaGetCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	value, ok, err := ctx.Store.GetMeta(c.Key)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no value for key %q", c.Key)
	}
	fmt.Println(value)
	return nil
}

type MetaSetCmd struct {
	Key   string `arg:"" help:"Metadata key."`
	Value string `arg:"" help:"Metadata value."`
}

func (c *MetaSetCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := ctx.Store.SetMeta(c.Key, c.Value); err != nil {
		return err
	}
	fmt.Printf("%s = %s\n", c.Key, c.Value)
	return nil
}
