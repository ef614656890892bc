package main

import (
	"context"
	"errors"
)

func main() {
	app := mustBootstrapAPI()
	err := app.Run()
	app.Close()
	if err != nil && !errors.Is(err, context.Canceled) {
		panic(err)
	}
}
