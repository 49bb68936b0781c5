package main

import (
	"flag"
	"fmt"

	"github.com/pipelined/scope/pattern"
)

type patternsCommand struct{}

func (cmd *patternsCommand) Name() string {
	return "patterns"
}

func (cmd *patternsCommand) Help() string {
	return "Show the list of built-in patterns"
}

func (cmd *patternsCommand) Register(fs *flag.FlagSet) {}

func (cmd *patternsCommand) Run() error {
	fmt.Println("Built-in patterns:")
	for _, name := range pattern.Names() {
		fmt.Printf("\t%s\n", name)
	}
	return nil
}
