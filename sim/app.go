// Package sim carries the command-line scaffolding shared by the event
// generation executables: flag handling, the event loop bookkeeping, the
// binary result writer, and optional CPU profiling and tracing.
package sim

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"
	"runtime/trace"
)

var (
	app = &App{}
)

// Main parses the command line and runs f, which launches the worker
// goroutines feeding the App's result and error channels. Main returns
// once one result or error per event has been collected and the output
// file is flushed.
func Main(f func(*App)) {
	main(f)
}

// Result is one generated event, already packed into its on-disk record.
type Result struct {
	ID   int64
	Data []byte
}

type App struct {
	nconc int // number of concurrent worker goroutines
	nevts int
	seed  uint64
	fname string

	fprof  string
	ftrace string

	errc chan error
	resc chan Result
}

func main(f func(*App)) {
	flag.Parse()

	if app.fprof != "" {
		fprof, err := os.Create(app.fprof)
		if err != nil {
			log.Fatalf("error creating pprof output file [%s]: %v\n",
				app.fprof,
				err,
			)
		}
		defer fprof.Close()
		pprof.StartCPUProfile(fprof)
		defer pprof.StopCPUProfile()
	}

	if app.ftrace != "" {
		ftrace, err := os.Create(app.ftrace)
		if err != nil {
			log.Fatalf("error creating trace output file: %v\n", err)
		}
		defer ftrace.Close()
		trace.Start(ftrace)
		defer trace.Stop()
	}

	fout, err := os.Create(app.fname)
	if err != nil {
		log.Fatalf("error creating output file [%s]: %v\n",
			app.fname,
			err,
		)
	}
	defer fout.Close()

	go app.write(fout)

	app.errc = make(chan error, app.nconc)
	app.resc = make(chan Result, app.nconc)

	go f(app)

	for i := 0; i < app.nevts; i++ {
		err := <-app.errc
		if err != nil {
			log.Fatalf("error: %v\n", err)
		}
	}
	close(app.resc)
	close(app.errc)

	err = fout.Close()
	if err != nil {
		log.Fatalf("error closing output file [%s]: %v\n",
			app.fname,
			err,
		)
	}
}

// Errors is where workers report per-event failures or, on success, nil.
func (app *App) Errors() chan<- error {
	return app.errc
}

// Results is where workers deliver packed event records.
func (app *App) Results() chan<- Result {
	return app.resc
}

// NumEvents returns the total number of events to generate.
func (app *App) NumEvents() int {
	return app.nevts
}

// NumWorkers returns the number of concurrent worker goroutines.
func (app *App) NumWorkers() int {
	return app.nconc
}

// Seed returns the base seed. Workers derive per-stream seeds from it so
// that runs with the same seed and worker count are reproducible.
func (app *App) Seed() uint64 {
	return app.seed
}

func init() {
	flag.IntVar(&app.nconc, "nprocs", 1, "number of concurrent goroutines")
	flag.IntVar(&app.nevts, "nevts", 100, "number of events to generate")
	flag.Uint64Var(&app.seed, "seed", 1234, "base pseudorandom seed")
	flag.StringVar(&app.fname, "o", "marley.out", "path to output file to store results")
	flag.StringVar(&app.fprof, "cpu-profile", "", "enable CPU profiling")
	flag.StringVar(&app.ftrace, "ftrace", "", "enable tracing")
}

func (app *App) write(f io.Writer) {
	w := bufio.NewWriter(f)
	defer w.Flush()
	for res := range app.resc {
		_, err := w.Write(res.Data)
		if err != nil {
			err = fmt.Errorf(
				"error writing result-id=%d: %v",
				res.ID, err,
			)
		}
		app.errc <- err
	}
}
