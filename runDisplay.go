package main

func startDisplayLoop(rt runtimeConfig) {
	rt.logger = &ThreadLogger{name: "Display"}
	rt.wg.Add(1)
	go runDisplayLoop(rt)
}

// runDisplayLoop steps the sequence once per segmentDelay until quit
func runDisplayLoop(rt runtimeConfig) {
	defer rt.wg.Done()
	defer func() {
		rt.logger.Println("Exiting runDisplayLoop")
	}()

	delay := rt.settings.GetDuration(sDelay)
	st := initialCycleState()

	for true {
		select {
		case <-rt.comms.quit:
			rt.logger.Println("quit from runDisplayLoop")
			return
		case <-rt.comms.reset:
			rt.logger.Println("reset, starting from 0")
			if err := rt.driver.Clear(); err != nil {
				rt.logger.Printf("clear on reset: %v", err)
			}
			st = initialCycleState()
		default:
		}

		next, err := tick(rt.driver, st)
		if err != nil {
			rt.logger.Printf("step %d (%v): %v", next.ticks, next.shown, err)
		}
		st = next
		publishStatus(rt, st)

		rt.clock.Sleep(delay)
	}
}

func publishStatus(rt runtimeConfig, st cycleState) {
	image, err := rt.port.Read()
	if err != nil {
		rt.logger.Printf("status read: %v", err)
	}
	status := newDisplayStatus(st, image, rt.clock.Now())
	for _, sink := range rt.sinks {
		if err := sink.publish(status); err != nil {
			rt.logger.Printf("status publish: %v", err)
		}
	}
}
