// This file is part of DRAMTester.
//
// DRAMTester is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// DRAMTester is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with DRAMTester.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/dramtester/environment"
	"github.com/jetsetilly/dramtester/hardware/bench"
	"github.com/jetsetilly/dramtester/hardware/descriptor"
	"github.com/jetsetilly/dramtester/hardware/preferences"
	"github.com/jetsetilly/dramtester/hardware/sim"
	"github.com/jetsetilly/dramtester/hardware/sim/script"
	"github.com/jetsetilly/dramtester/hardware/timing"
	"github.com/jetsetilly/dramtester/logger"
	"github.com/jetsetilly/dramtester/modalflag"
	"github.com/jetsetilly/dramtester/paths"
	"github.com/jetsetilly/dramtester/performance"
	"github.com/jetsetilly/dramtester/prefs"
	"github.com/jetsetilly/dramtester/report"
	"github.com/jetsetilly/dramtester/statsview"
	"github.com/jetsetilly/dramtester/tester"
	"github.com/jetsetilly/dramtester/tester/result"
	"github.com/jetsetilly/dramtester/tester/session"
	"github.com/jetsetilly/dramtester/version"
)

// values returned by launch() and used with os.Exit()
const (
	exitPass   = 0
	exitFail   = 1
	exitConfig = 2
	exitParse  = 10
	exitMode   = 20
)

func main() {
	done := make(chan int)

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	go func() {
		done <- launch(os.Args[1:], os.Stdout)
	}()

	exitVal := 0
	select {
	case <-intChan:
		// a session interrupted part way leaves the board in an unknown
		// state. the board resets when the serial line is next opened
		fmt.Println("\r")
		exitVal = exitMode
	case exitVal = <-done:
	}

	os.Exit(exitVal)
}

// launch parses the arguments and runs the selected mode. returns the exit
// value for the program.
func launch(args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("TEST", "SIM", "TYPES", "VERSION")

	var stats *bool
	if statsview.Available() {
		stats = md.AddBool("statsview", false, "run stats server")
	}

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return exitPass

	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitParse
	}

	if stats != nil && *stats {
		statsview.Launch(output)
	}

	var ret int
	switch md.Mode() {
	case "TEST":
		ret, err = benchTest(md, output)

	case "SIM":
		ret, err = simulate(md, output)

	case "TYPES":
		err = types(md, output)

	case "VERSION":
		fmt.Fprintln(output, version.Banner())
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		return exitMode
	}

	return ret
}

// flags shared by the modes that run a test session
type sessionFlags struct {
	prefsFile *string
	prefs     *string
	log       *bool
	memviz    *bool
	trace     *bool
	led       *bool
	profile   *string
}

func addSessionFlags(md *modalflag.Modes) *sessionFlags {
	return &sessionFlags{
		prefsFile: md.AddString("prefsfile", "", "preferences file to use instead of the default"),
		prefs:     md.AddString("prefs", "", "preference overrides (key::value; key::value)"),
		log:       md.AddBool("log", false, "echo session log to stdout"),
		memviz:    md.AddBool("memviz", false, "write a graph of the final session state"),
		trace:     md.AddBool("trace", false, "report decoder probes and retention windows"),
		led:       md.AddBool("led", false, "play the blink code on the terminal"),
		profile:   md.AddString("profile", "none", "run session through profiler: none, cpu, mem, trace, all (comma separated)"),
	}
}

// preferences are loaded with the command line overrides on top of the stack
func (sf *sessionFlags) preferences() (*preferences.Preferences, error) {
	prefs.PushCommandLineStack(*sf.prefs)
	defer prefs.PopCommandLineStack()

	if *sf.prefsFile != "" {
		return preferences.NewPreferencesFromFile(*sf.prefsFile)
	}
	return preferences.NewPreferences()
}

func (sf *sessionFlags) echo(output io.Writer) {
	if *sf.log {
		logger.SetEcho(output)
	} else {
		logger.SetEcho(nil)
	}
}

// run the session and report the outcome
func (sf *sessionFlags) run(output io.Writer, s *session.Session, shorts tester.ShortChecker) (int, error) {
	profile, err := performance.ParseProfile(*sf.profile)
	if err != nil {
		return exitMode, err
	}

	t := tester.NewTester(s, shorts)
	t.Trace = *sf.trace

	var o result.Outcome
	err = performance.RunProfiler(profile, paths.UniqueFilename("session", ""), func() error {
		var err error
		o, err = t.Run()
		return err
	})
	if err != nil {
		return exitMode, err
	}

	rep := report.NewReport(output)
	rep.Outcome(o)

	if *sf.trace {
		for _, p := range t.Probes {
			fmt.Fprintf(output, "  probe: %s\n", p)
		}
		if len(t.Windows) > 0 {
			shortest := t.Windows[0].Duration()
			longest := shortest
			for _, w := range t.Windows[1:] {
				shortest = min(shortest, w.Duration())
				longest = max(longest, w.Duration())
			}
			fmt.Fprintf(output, "  retention: %d windows between %s and %s\n", len(t.Windows), shortest, longest)
		}
	}

	if *sf.memviz {
		var part string
		if d := s.Part(); d != nil {
			part = d.Name
		}
		fn := fmt.Sprintf("%s.dot", paths.UniqueFilename("memviz", part))
		f, err := os.Create(fn)
		if err != nil {
			return exitMode, err
		}
		memviz.Map(f, s.Snapshot())
		if err := f.Close(); err != nil {
			return exitMode, err
		}
		fmt.Fprintf(output, "  session graph written to %s\n", fn)
	}

	if *sf.led {
		report.ForOutcome(o).Play(timing.NewBusy(), func(c report.Colour) {
			fmt.Fprintf(output, "\r  led: %-6s", c)
		})
		fmt.Fprintln(output)
	}

	if o.Pass {
		return exitPass, nil
	}
	return exitFail, nil
}

// configError reports a mistake in the operator inputs
func configError(output io.Writer, err error) int {
	report.NewReport(output).ConfigError(err)
	return exitConfig
}

func benchTest(md *modalflag.Modes, output io.Writer) (int, error) {
	md.NewMode()

	narrow := md.AddBool("narrow", false, "family switch: 16-pin socket")
	medium := md.AddBool("medium", false, "family switch: 18-pin socket")
	wide := md.AddBool("wide", false, "family switch: 20-pin socket")
	adapter := md.AddBool("adapter", false, "voltage adapter fitted to the 20-pin socket")
	port := md.AddString("port", "", "serial device of the bench board (overrides preferences)")
	sf := addSessionFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return exitPass, err
	}

	sel, err := environment.NewSelector(*narrow, *medium, *wide)
	if err != nil {
		return configError(output, err), nil
	}

	prf, err := sf.preferences()
	if err != nil {
		return exitMode, err
	}
	if *port != "" {
		if err := prf.SerialPort.Set(*port); err != nil {
			return exitMode, err
		}
	}

	sf.echo(output)

	b, err := bench.OpenFromPreferences(prf)
	if err != nil {
		return exitMode, err
	}
	defer b.Close()

	env := environment.NewEnvironment(sel, *adapter, prf)
	env.Label = environment.Label(b.String())

	return sf.run(output, session.NewSession(env, b, b, b), b)
}

func simulate(md *modalflag.Modes, output io.Writer) (int, error) {
	md.NewMode()
	md.AdditionalHelp(fmt.Sprintf("the argument is a part name, a script file or %q", script.EmptySocket))

	family := md.AddString("family", "", "family switch (narrow, medium, wide). default is the family of the part")
	adapter := md.AddBool("adapter", false, "voltage adapter fitted to the 20-pin socket")
	sf := addSessionFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return exitPass, err
	}

	if len(md.RemainingArgs()) != 1 {
		return exitParse, fmt.Errorf("a single part name or script is required for %s mode", md)
	}

	prf, err := sf.preferences()
	if err != nil {
		return exitMode, err
	}

	clk := &timing.Virtual{}
	c, err := loadChip(md.GetArg(0), clk, prf)
	if err != nil {
		return exitMode, err
	}

	// the operator sets the switches correctly unless told otherwise
	var sel environment.Selector
	useAdapter := *adapter
	if *family != "" {
		sel, err = environment.ParseFamily(*family)
		if err != nil {
			return configError(output, err), nil
		}
	} else if d := c.Descriptor(); d != nil {
		sel = environment.Selector{Family: d.Family}
		useAdapter = useAdapter || d.Protocol == descriptor.Adapter
	} else {
		return configError(output, fmt.Errorf("family required for %s", c)), nil
	}

	sf.echo(output)

	env := environment.NewEnvironment(sel, useAdapter, prf)
	env.Label = environment.Label(c.String())

	return sf.run(output, session.NewSession(env, c, clk, c), c)
}

// loadChip creates a simulated chip from a part name or a script file. the
// preferences apply to named parts only. a script sets its own op cost and
// decay
func loadChip(arg string, clk *timing.Virtual, prf *preferences.Preferences) (*sim.Chip, error) {
	var c *sim.Chip
	if arg == script.EmptySocket {
		c = sim.NewEmpty(clk)
	} else if d, err := descriptor.Lookup(arg); err == nil {
		c = sim.NewChip(d, clk)
	} else {
		return script.LoadFile(arg, clk)
	}

	c.SetOpCost(prf.SimOpCost.Get().(time.Duration))
	if prf.SimDecay.Get().(bool) {
		c.EnableDecay()
	}
	return c, nil
}

func types(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	family := md.AddString("family", "", "list only the parts of the family (narrow, medium, wide)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	parts := descriptor.All()
	if *family != "" {
		sel, err := environment.ParseFamily(*family)
		if err != nil {
			return err
		}
		parts = descriptor.FamilyMembers(sel.Family)
	}

	report.NewReport(output).Parts(parts)
	return nil
}
