package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/tferdous17/tango/http"
	"github.com/tferdous17/tango/internal/tango"
	"github.com/tferdous17/tango/store"
	"github.com/tferdous17/tango/utils"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	app := &cli.App{
		Name:  "tango",
		Usage: "red-black trees with split/join, and tango trees on top of them",
	}

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verify",
			Usage:   "check every tree invariant after each mutation",
			EnvVars: []string{"TANGO_VERIFY"},
		},
		&cli.BoolFlag{
			Name:  "trace",
			Usage: "log every tango step",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:   "rbtree",
			Usage:  "numeric menu over a table of red-black trees, read from stdin",
			Action: runRBTree,
			Flags: []cli.Flag{
				&cli.Uint64Flag{
					Name:  "filter-bits",
					Usage: "bits per tree membership filter (0 sizes it automatically)",
				},
			},
		},
		{
			Name:   "tango",
			Usage:  "numeric menu over one tango tree, read from stdin",
			Action: runTango,
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "size",
					Usage:   "key universe [1, size]; read from the input when unset",
					EnvVars: []string{"TANGO_SIZE"},
				},
			},
		},
		{
			Name:   "gen",
			Usage:  "write a random tango menu workload to stdout",
			Action: runGen,
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "size",
					Usage:   "key universe [1, size]",
					Value:   1000,
					EnvVars: []string{"TANGO_SIZE"},
				},
				&cli.IntFlag{
					Name:  "queries",
					Usage: "number of search commands",
					Value: 1000,
				},
				&cli.Int64Flag{
					Name:  "seed",
					Usage: "random seed (defaults to the current time)",
				},
				&cli.StringFlag{
					Name:  "dist",
					Usage: "key distribution: u (uniform) or g (gaussian around size/2)",
					Value: string(utils.Uniform),
				},
			},
		},
		{
			Name:   "serve",
			Usage:  "serve trees and tango trees over HTTP",
			Action: runServe,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "addr",
					Usage:   "listen address",
					Value:   ":8080",
					EnvVars: []string{"TANGO_ADDR"},
				},
				&cli.IntFlag{
					Name:    "shards",
					Usage:   "number of shards tango trees are spread over",
					Value:   3,
					EnvVars: []string{"TANGO_SHARDS"},
				},
				&cli.Uint64Flag{
					Name:  "filter-bits",
					Usage: "bits per tree membership filter (0 sizes it automatically)",
				},
			},
		},
	}

	return app
}

func registryOptions(cctx *cli.Context) []store.RegistryOption {
	var opts []store.RegistryOption
	if cctx.Bool("verify") {
		opts = append(opts, store.WithRegistryChecks())
	}
	if bits := cctx.Uint64("filter-bits"); bits > 0 {
		opts = append(opts, store.WithFilterBits(bits))
	}
	return opts
}

func tangoOptions(cctx *cli.Context) []tango.Option {
	var opts []tango.Option
	if cctx.Bool("verify") {
		opts = append(opts, tango.WithInvariantChecks())
	}
	if cctx.Bool("trace") {
		opts = append(opts, tango.WithTrace())
	}
	return opts
}

func runRBTree(cctx *cli.Context) error {
	return rbtreeMenu(cctx.App.Reader, cctx.App.Writer, store.NewRegistry(registryOptions(cctx)...))
}

func runTango(cctx *cli.Context) error {
	in := newTokens(cctx.App.Reader)

	n := cctx.Int("size")
	if !cctx.IsSet("size") {
		args, err := in.ints(1)
		if err != nil {
			return cli.Exit(fmt.Sprintf("reading tree size: %v", err), 1)
		}
		n = args[0]
	}

	tree, err := tango.Build(n, tangoOptions(cctx)...)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return tangoMenu(in, cctx.App.Writer, tree)
}

func runGen(cctx *cli.Context) error {
	dist, err := utils.ParseDist(cctx.String("dist"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	seed := cctx.Int64("seed")
	if !cctx.IsSet("seed") {
		seed = time.Now().UnixNano()
	}
	return utils.GenerateQueries(cctx.App.Writer, cctx.Int("size"), cctx.Int("queries"), seed, dist)
}

func runServe(cctx *cli.Context) error {
	forest := store.NewForest(cctx.Int("shards"), tangoOptions(cctx)...)
	service := http.NewService(cctx.String("addr"), store.NewRegistry(registryOptions(cctx)...), forest)
	if err := service.Start(); err != nil {
		return err
	}
	utils.Log("HTTP server started successfully @ %s", service.Addr().String())

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)

	// Block until a signal arrives or the app context is cancelled
	select {
	case <-signalCh:
		utils.Log[string]("signal received, shutting down...")
	case <-cctx.Context.Done():
	}

	err := service.Close()
	forest.PrintDiagnostics()
	return err
}
