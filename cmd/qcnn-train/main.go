package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/theapemachine/qcnn"
)

func main() {
	app := &cli.App{
		Name:  "qcnn-train",
		Usage: "train the quantum convolutional classifier on a synthetic two-class dataset",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "iterations", Aliases: []string{"i"}, Usage: "training iterations"},
			&cli.IntFlag{Name: "batch", Aliases: []string{"b"}, Usage: "mini-batch size"},
			&cli.Float64Flag{Name: "lr", Usage: "learning rate"},
			&cli.Float64Flag{Name: "momentum", Usage: "momentum coefficient"},
			&cli.Int64Flag{Name: "seed", Usage: "random seed"},
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "evaluation workers"},
			&cli.IntFlag{Name: "per-class", Value: 50, Usage: "synthetic examples per class"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg := qcnn.LoadConfig()
	if c.IsSet("iterations") {
		cfg.Iterations = c.Int("iterations")
	}
	if c.IsSet("batch") {
		cfg.BatchSize = c.Int("batch")
	}
	if c.IsSet("lr") {
		cfg.LearningRate = c.Float64("lr")
	}
	if c.IsSet("momentum") {
		cfg.Momentum = c.Float64("momentum")
	}
	if c.IsSet("seed") {
		cfg.Seed = c.Int64("seed")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}

	perClass := c.Int("per-class")
	examples := qcnn.SyntheticTwoClass(cfg.Qubits, perClass, cfg.Seed)

	// 80/20 split; the generator already interleaves the classes.
	split := len(examples) * 4 / 5
	trainSet, testSet := examples[:split], examples[split:]

	trainer := qcnn.NewTrainer(context.Background(), cfg)
	defer trainer.Close()

	result, err := trainer.Train(trainSet)
	if err != nil {
		return err
	}

	for i, loss := range result.Losses {
		if (i+1)%10 == 0 || i == 0 {
			fmt.Printf("iter %3d  loss %.6f\n", i+1, loss)
		}
	}

	accuracy, err := trainer.Circuit().Accuracy(result.Params, testSet, trainer.Pool())
	if err != nil {
		return err
	}

	fmt.Printf("test accuracy: %.3f (%d examples)\n", accuracy, len(testSet))
	return nil
}
