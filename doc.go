// Package sequencer runs ordered lists of asynchronous steps one at a time, with stop/resume/restart control and
// grouped mutual exclusion.
//
// Each Step receives a continuation and calls it once its work is done; only then does the next Step run. Nothing
// blocks between steps: a Step backed by a timer, a goroutine or a user action simply calls its continuation later.
// Stopping a Sequencer is cooperative. A Step that is already running is not interrupted, but its eventual call to
// the continuation is ignored.
//
// Quick Start
//
// 	intro := sequencer.New([]sequencer.Step{
// 		sequencer.Do(showTitle),
// 		sequencer.Delay(500 * time.Millisecond),
// 		sequencer.Do(showMenu),
// 	}, sequencer.InGroup("screen"))
// 	intro.Start()
//
// 	// Starting another member of "screen" stops intro wherever it is.
// 	outro := sequencer.New(outroSteps, sequencer.InGroup("screen"))
// 	outro.Start()
//
// Groups live in a Registry. Sequencers use DefaultRegistry unless WithRegistry says otherwise.
// When steps complete on several goroutines, a Loop can serialize the continuations onto a single one.
package sequencer
