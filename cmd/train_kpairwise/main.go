package main

import "flag"
import "fmt"
import "os"

import "golang.org/x/exp/rand"

import "github.com/rcofre/generative-neural-models/config"
import "github.com/rcofre/generative-neural-models/datasets"
import "github.com/rcofre/generative-neural-models/history"
import "github.com/rcofre/generative-neural-models/model"
import "github.com/rcofre/generative-neural-models/parallel"
import "github.com/rcofre/generative-neural-models/trainer"

func main() {
	cfgpath := flag.String("config", "", "yaml run configuration")
	data := flag.String("data", "", "binary data matrix, one sample per line")
	initmodel := flag.String("init", "", "initial parameters .json.zlib file (zeros when empty)")
	dstmodel := flag.String("dstmodel", "", "model destination .json.zlib file")
	resume := flag.Bool("resume", false, "resume training from dstmodel")
	lr := flag.Float64("lr", 0, "learning rate")
	iterations := flag.Int("iterations", 0, "training iterations")
	samples := flag.Int("samples", 0, "chains per gradient estimate")
	steps := flag.Int("steps", 0, "gibbs steps per iteration")
	burnin := flag.Int("burnin", 0, "burn-in length as a multiple of -steps (at least 10)")
	lanes := flag.Int("lanes", 0, "parallel chain lanes (0 = one per logical core)")
	threads := flag.Int("threads", 0, "lanes advanced at once (0 = all)")
	seed := flag.Uint64("seed", 0, "random seed")
	historydb := flag.String("history", "", "sqlite database recording the run")
	logfile := flag.String("log", "", "append a per iteration trace to this file")
	saveconfig := flag.String("saveconfig", "", "write the effective configuration (file and flags merged) to this yaml file")
	synthetic := flag.Int("synthetic", 0, "without -data, fit this many independent units")
	rate := flag.Float64("rate", 0.3, "activation rate of -synthetic units")
	rows := flag.Int("rows", 1000, "number of -synthetic samples")
	flag.Bool("pgo", false, "enable pgo")
	flag.Parse()
	defer stopProfile()

	cfg, err := config.Load(*cfgpath)
	if err != nil {
		fail(err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data":
			cfg.Files.Data = *data
		case "init":
			cfg.Files.Init = *initmodel
		case "dstmodel":
			cfg.Files.Output = *dstmodel
		case "resume":
			cfg.Files.Resume = *resume
		case "history":
			cfg.Files.History = *historydb
		case "log":
			cfg.Files.Log = *logfile
		case "lr":
			cfg.Training.LearningRate = *lr
		case "iterations":
			cfg.Training.Iterations = *iterations
		case "samples":
			cfg.Training.Samples = *samples
		case "steps":
			cfg.Training.GibbsSteps = *steps
		case "burnin":
			cfg.Training.BurnInFactor = *burnin
		case "lanes":
			cfg.Training.Lanes = *lanes
		case "threads":
			cfg.Training.Threads = *threads
		case "seed":
			cfg.Training.Seed = *seed
		}
	})

	if *saveconfig != "" {
		if err := cfg.Save(*saveconfig); err != nil {
			fail(err)
		}
	}

	var dataset datasets.Dataset
	if cfg.Files.Data != "" {
		dataset, err = datasets.ReadFile(cfg.Files.Data)
		if err != nil {
			fail(err)
		}
	} else if *synthetic > 0 {
		var rates = make([]float64, *synthetic)
		for i := range rates {
			rates[i] = *rate
		}
		dataset = datasets.Bernoulli(*rows, rates, rand.NewSource(cfg.Training.Seed))
	} else {
		fail(fmt.Errorf("no data: use -data, -synthetic or files.data in -config"))
	}

	var params = model.New(dataset.Units)
	if cfg.Files.Init != "" {
		if err := params.ReadZlibFromFile(cfg.Files.Init); err != nil {
			fail(err)
		}
	}
	if err := trainer.Resume(params, &cfg.Files.Resume, &cfg.Files.Output); err != nil {
		fail(err)
	}

	hp := cfg.HyperParameters(parallel.Lanes())
	if cfg.Files.Log != "" {
		if err := hp.SetLogger(cfg.Files.Log); err != nil {
			fail(err)
		}
	}

	tr, err := trainer.New(dataset, params, hp)
	if err != nil {
		fail(err)
	}

	fmt.Printf("cpu: %s, lanes: %d\n", parallel.Describe(), hp.Lanes)
	fmt.Printf("data: %d samples x %d units\n", dataset.Len(), dataset.Units)

	if cfg.Files.History != "" {
		store, err := history.Open(cfg.Files.History)
		if err != nil {
			fail(err)
		}
		defer store.Close()
		run, err := store.Begin(dataset.Units, hp)
		if err != nil {
			fail(err)
		}
		println("history run", run.ID.String())
		tr.Recorder = run
	}

	fitted, err := tr.Run()
	if err != nil {
		fail(err)
	}
	fmt.Printf("chains: %x\n", tr.Lanes().Fingerprint())

	if cfg.Files.Output != "" {
		if err := fitted.WriteZlibToFile(cfg.Files.Output); err != nil {
			fail(err)
		}
		fmt.Println("wrote", cfg.Files.Output)
	}
}

func fail(err error) {
	println(err.Error())
	stopProfile()
	os.Exit(1)
}
