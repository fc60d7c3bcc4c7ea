package main

import (
	"context"
	"fmt"

	"github.com/softwarefinder/ragchat"
)

type VersionCommand struct {
}

func (c VersionCommand) Run(ctx context.Context) (err error) {
	fmt.Println(ragchat.Version)
	return nil
}
