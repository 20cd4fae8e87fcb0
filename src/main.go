package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/integrii/flaggy"
	"github.com/logrusorgru/aurora"

	"toruslife/src/server"
	"toruslife/src/store"
	"toruslife/src/universe"
	"toruslife/src/view"
)

type EnvOptions struct {
	interactive bool
	randomData  bool
	seed        int64
	template    string
}

type ServeOptions struct {
	port           int
	dir            string
	maxGenerations int
}

func main() {
	eo, uo, so, serve := initOptions()

	if serve.Used {
		if err := runServer(so); err != nil {
			log.Fatalln(aurora.Red("server failed:"), err)
		}
		return
	}

	var stateCh chan universe.Status
	if !eo.interactive {
		stateCh = make(chan universe.Status, 10) //the buffered channel to getting the universe status
	}

	u, err := universe.New(uo, stateCh)
	if err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}

	if eo.randomData {
		u.SettleWithRandomData(eo.seed)
	} else if err := u.SettleTemplate(eo.template); err != nil {
		u.Close()
		flaggy.ShowHelpAndExit(err.Error())
	}

	if eo.interactive {
		v, err := view.NewConsoleUI()
		if err != nil {
			log.Fatalln(err)
		}
		u.RegisterViewer(v)
		v.Start()
		u.Close()
		return
	}

	v := view.NewConsoleOut(os.Stdout)
	u.RegisterViewer(v)
	v.Start()
	u.Run()
	for st := range stateCh {
		if st.RunningMode == universe.RunningStateFinished {
			break
		}
	}
	u.Close()
	close(stateCh)
}

func runServer(so *ServeOptions) error {
	cfg := server.DefaultConfig
	cfg.Addr = ":" + strconv.Itoa(so.port)
	cfg.MaxGenerations = so.maxGenerations

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return server.New(cfg, store.New(so.dir), nil).ListenAndServe(ctx)
}

func initOptions() (eo *EnvOptions, uo *universe.Options, so *ServeOptions, serve *flaggy.Subcommand) {
	o := universe.DefaultOptions
	uo = &o
	eo = &EnvOptions{template: "testSample", seed: time.Now().UnixNano()}
	so = &ServeOptions{port: defaultPort(), dir: "gameState", maxGenerations: server.DefaultConfig.MaxGenerations}

	templateNames := make([]string, 0)
	for _, t := range universe.BuiltinTemplates() {
		templateNames = append(templateNames, t.Name)
	}

	flaggy.SetName("toruslife")
	flaggy.SetDescription("Conway's \"The Life\" game on a toroidal field")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&uo.Cols, "x", "width", "Width of a simulation field (columns)")
	flaggy.Int(&uo.Rows, "y", "height", "Height of a simulation field (rows)")
	flaggy.Duration(&uo.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&uo.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps, 0 means no limit")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&eo.randomData, "r", "random", "Settle with random data")
	flaggy.Int64(&eo.seed, "", "seed", "Seed for the random data")
	flaggy.String(&eo.template, "t", "template", "Template to settle ["+strings.Join(templateNames, "|")+"]")

	serve = flaggy.NewSubcommand("serve")
	serve.Description = "Serve the game HTTP API"
	serve.Int(&so.port, "p", "port", "Port to listen on")
	serve.String(&so.dir, "d", "dir", "Directory for the saved game states")
	serve.Int(&so.maxGenerations, "g", "maxGenerations", "Maximum generations accepted by /game/state")
	flaggy.AttachSubcommand(serve, 1)

	flaggy.Parse()

	if uo.Rows < 1 || uo.Cols < 1 {
		flaggy.ShowHelpAndExit(fmt.Sprintf("the field must be at least 1 x 1, got %v x %v", uo.Rows, uo.Cols))
	}
	return
}

//defaultPort reads PORT from the environment, 3001 if it is not set
func defaultPort() int {
	if p, err := strconv.Atoi(os.Getenv("PORT")); err == nil && p > 0 {
		return p
	}
	return 3001
}
