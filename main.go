package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
)

// bcdsegment -config={config file}

func watchSignals(comms commChannels) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case s := <-sigs:
			log.Printf("Got %v, stopping", s)
			comms.stop()
		case <-comms.quit:
		}
	}()
}

func main() {
	configFile := flag.String("config", defaultConfigFile, "config file path")
	dump := flag.Bool("dump", false, "print the effective settings")
	flag.Parse()

	// read config information
	settings, err := initSettings(*configFile)
	if err != nil {
		// running without a conf file is fine, a broken one isn't
		if !(os.IsNotExist(errors.Cause(err)) && *configFile == defaultConfigFile) {
			log.Fatal(err)
		}
		log.Printf("No conf file at %s, using defaults", *configFile)
	}

	// the terminal sim owns stdout
	logFile := setupLogging(settings, settings.GetString(sPort) != portTerm)
	defer logFile.Close()

	log.Printf("Features: %v", features)
	if *dump || settings.GetBool(sDebug) {
		settings.Dump()
	}

	layout, err := layoutFromSettings(settings)
	if err != nil {
		log.Fatalf("Bad port layout: %v", err)
	}

	comms := initCommChannels()
	port, err := openPort(settings, layout, comms)
	if err != nil {
		log.Fatalf("Could not open %s port: %v", settings.GetString(sPort), err)
	}
	defer port.Close()

	rt, err := initRuntime(settings, clockwork.NewRealClock(), port, comms)
	if err != nil {
		log.Fatal(err)
	}

	// pin directions first, once
	if err := rt.driver.Setup(); err != nil {
		log.Fatalf("Port setup failed: %v", err)
	}

	if settings.GetString(sMQTTBroker) != "" {
		sink, err := newMQTTSink(settings)
		if err != nil {
			// the display runs without it
			log.Printf("MQTT disabled: %v", err)
		} else {
			defer sink.close()
			rt.sinks = append(rt.sinks, sink)
			startMQTTSink(rt, sink)
		}
	}

	if err := startResetButton(rt); err != nil {
		log.Printf("Reset button disabled: %v", err)
	}
	startStatusService(rt)
	watchSignals(comms)

	// runs until a signal (or q in the terminal)
	startDisplayLoop(rt)
	rt.wg.Wait()
	log.Println("Exiting")
}
