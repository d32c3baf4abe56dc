package main

import "flag"
import "fmt"
import "os"

import "github.com/rcofre/generative-neural-models/datasets"
import "github.com/rcofre/generative-neural-models/model"
import "github.com/rcofre/generative-neural-models/parallel"
import "github.com/rcofre/generative-neural-models/stats"
import "github.com/rcofre/generative-neural-models/trainer"

func main() {
	srcmodel := flag.String("srcmodel", "params.json.zlib", "fitted model .json.zlib file")
	data := flag.String("data", "", "optional data matrix to compare against")
	rows := flag.Int("rows", 10000, "number of independent chains")
	steps := flag.Int("steps", 0, "gibbs steps per chain (default 100 sweeps)")
	lanes := flag.Int("lanes", 0, "parallel lanes (0 = one per logical core)")
	seed := flag.Uint64("seed", 1, "random seed")
	out := flag.String("out", "", "write the samples to this file")
	flag.Parse()

	var params model.Params
	if err := params.ReadZlibFromFile(*srcmodel); err != nil {
		fail(err)
	}
	if *steps <= 0 {
		*steps = 100 * params.Units
	}
	if *lanes <= 0 {
		*lanes = parallel.Lanes()
	}

	var ref stats.Statistics
	if *data != "" {
		dataset, err := datasets.ReadFile(*data)
		if err != nil {
			fail(err)
		}
		if err := dataset.Validate(params.Units); err != nil {
			fail(err)
		}
		batch, err := dataset.Batch()
		if err != nil {
			fail(err)
		}
		ref = stats.Compute(batch)
	}

	report, err := trainer.Evaluate(&params, ref, *rows, *steps, *lanes, *seed)
	if err != nil {
		fail(err)
	}

	fmt.Printf("%d samples, %d units, %d steps\n", report.Samples.Rows(), params.Units, *steps)
	for k, p := range report.Model.PK {
		if ref.PK != nil {
			fmt.Printf("p(K=%d) = %.4f (data %.4f)\n", k, p, ref.PK[k])
		} else {
			fmt.Printf("p(K=%d) = %.4f\n", k, p)
		}
	}
	fmt.Printf("rates: %.4f\n", report.Model.Rates())
	if ref.PK != nil {
		fmt.Printf("max |data - model|: co-activation %.4f, p_K %.4f\n", report.CovDistance, report.PKDistance)
	}

	if *out != "" {
		file, err := os.Create(*out)
		if err != nil {
			fail(err)
		}
		err = datasets.FromBatch(report.Samples).WriteText(file)
		if cerr := file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			fail(err)
		}
	}
}

func fail(err error) {
	println(err.Error())
	os.Exit(1)
}
