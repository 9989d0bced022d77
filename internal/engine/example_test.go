package engine_test

import (
	"context"
	"fmt"

	"github.com/agbru/picalc/internal/engine"
)

func ExampleNewDefaultFactory() {
	factory := engine.NewDefaultFactory()
	fmt.Println(factory.List())

	e, err := factory.Get("dynamic")
	if err != nil {
		fmt.Println(err)
		return
	}
	pi, err := e.Calculate(context.Background(), nil, 0, engine.Params{
		Threads: 4, Iterations: 3, Precision: 160,
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(pi.Text('f', 35))
	// Output:
	// [dynamic pool queue]
	// 3.14159265358979323846264338327950288
}
