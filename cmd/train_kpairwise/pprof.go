package main

import "runtime/pprof"
import "os"
import "os/signal"
import "syscall"

// stopProfile flushes the pgo profile; a no-op unless -pgo is given.
var stopProfile = func() {}

func init() {
	for _, arg := range os.Args {
		if arg == "-pgo" || arg == "--pgo" {
			// Create a channel to receive OS signals
			sigChan := make(chan os.Signal, 1)

			// Notify the channel on SIGINT and SIGTERM
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

			// Collect profile data into default.pgo until the run ends or is interrupted
			f, err := os.Create("default.pgo")
			if err != nil {
				println(err.Error())
				return
			}
			if err := pprof.StartCPUProfile(f); err != nil {
				println(err.Error())
				f.Close()
				return
			}
			stopProfile = func() {
				pprof.StopCPUProfile()
				f.Close()
			}

			// Start a goroutine to handle the signals
			go func() {
				// Wait for a signal, then flush the profile
				<-sigChan
				stopProfile()
				os.Exit(130)
			}()
			return
		}
	}
}

